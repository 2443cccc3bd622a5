// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bucket

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/zling/ztable/internal"
	"github.com/zling/ztable/internal/testutil"
)

var defaultBases = []uint32{
	0, 1, 2, 3, 4, 6, 8, 12, 16, 24, 32, 48, 64, 96, 128, 192,
	256, 384, 512, 768, 1024, 1280, 1536, 1792, 2048, 2304, 2560, 2816, 3072, 3328, 3584, 3840,
}

func TestBuild(t *testing.T) {
	var vectors = []struct {
		size  int
		sched Schedule
		blen  []uint8
		base  []uint32
		code  []uint16
		extra []uint8
	}{{
		size:  16,
		sched: Schedule{0, 0, 0, 0, 1, 1, 2, 2},
		blen:  []uint8{0, 0, 0, 0, 1, 1, 2, 2},
		base:  []uint32{0, 1, 2, 3, 4, 6, 8, 12},
		code:  []uint16{0, 1, 2, 3, 4, 4, 5, 5, 6, 6, 6, 6, 7, 7, 7, 7},
		extra: []uint8{0, 0, 0, 0, 0, 1, 0, 1, 0, 1, 2, 3, 0, 1, 2, 3},
	}, {
		size:  10, // Last bucket is truncated
		sched: Schedule{0, 0, 0, 0, 1, 1, 2, 2},
		blen:  []uint8{0, 0, 0, 0, 1, 1, 2},
		base:  []uint32{0, 1, 2, 3, 4, 6, 8},
		code:  []uint16{0, 1, 2, 3, 4, 4, 5, 5, 6, 6},
		extra: []uint8{0, 0, 0, 0, 0, 1, 0, 1, 0, 1},
	}, {
		size:  8, // Unused codes are dropped
		sched: Schedule{0, 0, 0, 0, 1, 1, 2, 2},
		blen:  []uint8{0, 0, 0, 0, 1, 1},
		base:  []uint32{0, 1, 2, 3, 4, 6},
		code:  []uint16{0, 1, 2, 3, 4, 4, 5, 5},
		extra: []uint8{0, 0, 0, 0, 0, 1, 0, 1},
	}, {
		size:  1,
		sched: Schedule{3},
		blen:  []uint8{3},
		base:  []uint32{0},
		code:  []uint16{0},
		extra: []uint8{0},
	}, {
		size:  5,
		sched: Schedule{2, 2, 2},
		blen:  []uint8{2, 2},
		base:  []uint32{0, 4},
		code:  []uint16{0, 0, 0, 0, 1},
		extra: []uint8{0, 1, 2, 3, 0},
	}}

	for i, v := range vectors {
		tb, err := Build(v.size, v.sched)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if diff := cmp.Diff(v.blen, tb.Blen); diff != "" {
			t.Errorf("test %d, blen mismatch (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(v.base, tb.Base); diff != "" {
			t.Errorf("test %d, base mismatch (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(v.code, tb.Code); diff != "" {
			t.Errorf("test %d, code mismatch (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(v.extra, tb.Extra); diff != "" {
			t.Errorf("test %d, extra mismatch (-want +got):\n%s", i, diff)
		}
		if got := tb.Size(); got != v.size {
			t.Errorf("test %d, size mismatch: got %d, want %d", i, got, v.size)
		}
		if got := tb.NumCodes(); got != len(v.base) {
			t.Errorf("test %d, code count mismatch: got %d, want %d", i, got, len(v.base))
		}
	}
}

func TestBuildScenario(t *testing.T) {
	tb, err := Build(16, Schedule{0, 0, 0, 0, 1, 1, 2, 2})
	assert.NoError(t, err)

	code, extra, nb := tb.Encode(10)
	assert.Equal(t, uint(6), code)
	assert.Equal(t, uint(8), uint(tb.Base[code]))
	assert.Equal(t, uint(2), extra)
	assert.Equal(t, uint(2), nb)
	assert.True(t, extra < 1<<nb)
	assert.Equal(t, uint(10), tb.Decode(code, extra))
}

func TestBuildDefault(t *testing.T) {
	tb, err := Build(DefaultSize, DefaultSchedule)
	assert.NoError(t, err)
	assert.Equal(t, 32, tb.NumCodes())
	assert.Equal(t, len(DefaultSchedule), tb.NumCodes())
	assert.Equal(t, defaultBases, tb.Base)
	for c, base := range tb.Base {
		if base >= DefaultSize {
			t.Errorf("code %d starts at %d", c, base)
		}
	}
	assert.Equal(t, uint16(31), tb.Code[DefaultSize-1])
	assert.Equal(t, uint8(255), tb.Extra[DefaultSize-1])
	assert.True(t, tb.Aligned())

	// The padded legacy generator must agree with the explicit schedule.
	legacy := LegacySchedule.Extend(DefaultSize, PlateauBits)
	lt, err := Build(DefaultSize, legacy)
	assert.NoError(t, err)
	if diff := cmp.Diff(tb, lt); diff != "" {
		t.Errorf("legacy tables mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	var vectors = []struct {
		size  int
		sched Schedule
		want  error
	}{{
		size:  16,
		sched: Schedule{0, 0, 0, 0, 1, 1, 2},
		want:  &ScheduleTooShortError{Size: 16, Capacity: 12},
	}, {
		size:  1,
		sched: nil,
		want:  &ScheduleTooShortError{Size: 1, Capacity: 0},
	}, {
		size:  16,
		sched: Schedule{0, 0, 1, 0, 2, 2, 3},
		want:  &ScheduleNotMonotonicError{Code: 3, Prev: 1, Next: 0},
	}, {
		size:  DefaultSize,
		sched: Schedule{0, 0, 4, 9, 9},
		want:  &ExtraBitsOverflowError{Code: 3, Bits: 9, Max: MaxExtraBits},
	}, {
		size:  4,
		sched: Schedule{0, 0, 0, 0, 1, 70}, // Unused codes are still validated
		want:  &ExtraBitsOverflowError{Code: 5, Bits: 70, Max: MaxExtraBits},
	}, {
		size:  0,
		sched: DefaultSchedule,
		want:  internal.ErrInvalidSize,
	}, {
		size:  MaxSize + 1,
		sched: Schedule{0}.Extend(MaxSize+1, 8),
		want:  internal.ErrInvalidSize,
	}}

	for i, v := range vectors {
		tb, err := Build(v.size, v.sched)
		if tb != nil {
			t.Errorf("test %d, got partial tables", i)
		}
		assert.Equal(t, v.want, err, "test %d", i)
		assert.Equal(t, v.want, v.sched.Validate(v.size), "test %d", i)
	}
}

func TestBuildMaxSize(t *testing.T) {
	tb, err := Build(MaxSize, make(Schedule, MaxSize))
	assert.NoError(t, err)
	assert.Equal(t, MaxSize, tb.NumCodes())
	assert.Equal(t, uint16(MaxSize-1), tb.Code[MaxSize-1])
}

// TestProperties checks the decoder contract on random schedules without
// relying on Tables.Check.
func TestProperties(t *testing.T) {
	r := testutil.NewRand(0)
	for i := 0; i < 200; i++ {
		sched := Schedule(r.Schedule(1+r.Intn(40), MaxExtraBits))
		capacity := int(sched.Capacity())
		n := 1 + r.Intn(capacity)

		tb, err := Build(n, sched)
		if err != nil {
			t.Fatalf("test %d, Build(%d, %v): %v", i, n, sched, err)
		}

		if tb.Base[0] != 0 {
			t.Errorf("test %d, base[0] = %d", i, tb.Base[0])
		}
		for c := 1; c < tb.NumCodes(); c++ {
			if tb.Base[c-1] >= tb.Base[c] {
				t.Errorf("test %d, base not increasing at code %d", i, c)
			}
			if tb.Blen[c-1] > tb.Blen[c] {
				t.Errorf("test %d, blen decreasing at code %d", i, c)
			}
		}
		if got, want := tb.NumCodes(), int(tb.Code[n-1])+1; got != want {
			t.Errorf("test %d, code count mismatch: got %d, want %d", i, got, want)
		}

		counts := make([]int, tb.NumCodes())
		for idx := 0; idx < n; idx++ {
			c, x := tb.Code[idx], tb.Extra[idx]
			counts[c]++
			if x>>tb.Blen[c] != 0 {
				t.Errorf("test %d, index %d: extra %d exceeds %d bits", i, idx, x, tb.Blen[c])
			}
			if uint(tb.Base[c])+uint(x) != uint(idx) {
				t.Errorf("test %d, index %d does not round-trip", i, idx)
			}
		}
		for c, cnt := range counts {
			want := 1 << tb.Blen[c]
			if end := int(tb.Base[c]) + want; end > n {
				want = n - int(tb.Base[c])
			}
			if cnt != want {
				t.Errorf("test %d, code %d covers %d indices, want %d", i, c, cnt, want)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	t1, err1 := Build(DefaultSize, DefaultSchedule)
	t2, err2 := Build(DefaultSize, DefaultSchedule)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	if diff := cmp.Diff(t1, t2); diff != "" {
		t.Errorf("tables differ (-first +second):\n%s", diff)
	}
}

func TestExtend(t *testing.T) {
	var vectors = []struct {
		input   Schedule
		size    int
		plateau uint
		output  Schedule
	}{{
		input:   Schedule{0, 1},
		size:    3,
		plateau: 2,
		output:  Schedule{0, 1},
	}, {
		input:   Schedule{0, 1},
		size:    4,
		plateau: 2,
		output:  Schedule{0, 1, 2},
	}, {
		input:   Schedule{0, 1},
		size:    12,
		plateau: 2,
		output:  Schedule{0, 1, 2, 2, 2},
	}, {
		input:   nil,
		size:    3,
		plateau: 0,
		output:  Schedule{0, 0, 0},
	}, {
		input:   LegacySchedule,
		size:    DefaultSize,
		plateau: PlateauBits,
		output:  DefaultSchedule,
	}}

	for i, v := range vectors {
		orig := append(Schedule(nil), v.input...)
		got := v.input.Extend(v.size, v.plateau)
		if diff := cmp.Diff(v.output, got); diff != "" {
			t.Errorf("test %d, schedule mismatch (-want +got):\n%s", i, diff)
		}
		assert.Equal(t, orig, v.input, "test %d, input modified", i)
	}
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, uint64(0), Schedule(nil).Capacity())
	assert.Equal(t, uint64(DefaultSize), DefaultSchedule.Capacity())
	assert.Equal(t, uint64(512), LegacySchedule.Capacity())
	assert.Equal(t, ^uint64(0), Schedule{0, 64}.Capacity())
	assert.Equal(t, ^uint64(0), Schedule{63, 63}.Capacity())
}

func TestAligned(t *testing.T) {
	tb, err := Build(3, Schedule{0, 1})
	assert.NoError(t, err)
	assert.False(t, tb.Aligned())

	tb, err = Build(DefaultSize, DefaultSchedule)
	assert.NoError(t, err)
	for i := 0; i < tb.Size(); i++ {
		code, extra, _ := tb.Encode(uint(i))
		if got := uint(tb.Base[code]) | extra; got != uint(i) {
			t.Fatalf("index %d: base|extra = %d", i, got)
		}
	}
}

func TestCheck(t *testing.T) {
	good, err := Build(16, Schedule{0, 0, 0, 0, 1, 1, 2, 2})
	assert.NoError(t, err)
	clone := func() *Tables {
		return &Tables{
			Blen:  append([]uint8(nil), good.Blen...),
			Base:  append([]uint32(nil), good.Base...),
			Code:  append([]uint16(nil), good.Code...),
			Extra: append([]uint8(nil), good.Extra...),
		}
	}

	var vectors = []struct {
		desc   string
		mutate func(*Tables)
	}{
		{"empty", func(t *Tables) { t.Code, t.Extra = nil, nil }},
		{"length mismatch", func(t *Tables) { t.Extra = t.Extra[1:] }},
		{"nonzero base", func(t *Tables) { t.Base[0] = 1 }},
		{"extra code", func(t *Tables) { t.Base, t.Blen = append(t.Base, 16), append(t.Blen, 2) }},
		{"decreasing blen", func(t *Tables) { t.Blen[7] = 1 }},
		{"wide blen", func(t *Tables) { t.Blen[7] = 9 }},
		{"gap", func(t *Tables) { t.Base[5] = 7 }},
		{"wrong code", func(t *Tables) { t.Code[3] = 2 }},
		{"wrong extra", func(t *Tables) { t.Extra[9] = 0 }},
		{"wide extra", func(t *Tables) { t.Extra[12] = 4 }},
	}

	assert.NoError(t, good.Check())
	for _, v := range vectors {
		tb := clone()
		v.mutate(tb)
		assert.Error(t, tb.Check(), v.desc)
	}
}

func TestRangeCodes(t *testing.T) {
	tb, err := Build(10, Schedule{0, 0, 0, 0, 1, 1, 2, 2})
	assert.NoError(t, err)
	rcs := tb.RangeCodes()
	assert.Equal(t, tb.NumCodes(), len(rcs))
	assert.True(t, rcs.Disjoint())
	assert.Equal(t, uint32(0), rcs.Base())
	assert.Equal(t, uint32(12), rcs.End()) // Truncated bucket extends past the size
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package matchidx

import (
	"bytes"
	"io/ioutil"
	"testing"

	"github.com/dsnet/golib/bits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zling/ztable/bucket"
	"github.com/zling/ztable/emit"
)

func TestTables(t *testing.T) {
	tb, err := bucket.Build(Size, bucket.DefaultSchedule)
	require.NoError(t, err)
	require.True(t, tb.Aligned())
	assert.Equal(t, NumCodes, tb.NumCodes())

	for c := 0; c < NumCodes; c++ {
		if blenLUT[c] != tb.Blen[c] {
			t.Errorf("code %d, bit-length mismatch: got %d, want %d", c, blenLUT[c], tb.Blen[c])
		}
		if uint32(baseLUT[c]) != tb.Base[c] {
			t.Errorf("code %d, base mismatch: got %d, want %d", c, baseLUT[c], tb.Base[c])
		}
		if blenLUT[c] > MaxBitlen {
			t.Errorf("code %d, bit-length %d exceeds %d", c, blenLUT[c], MaxBitlen)
		}
	}
	for i := 0; i < Size; i++ {
		if uint16(codeLUT[i]) != tb.Code[i] {
			t.Errorf("index %d, code mismatch: got %d, want %d", i, codeLUT[i], tb.Code[i])
		}
		if bitsLUT[i] != tb.Extra[i] {
			t.Errorf("index %d, extra mismatch: got %d, want %d", i, bitsLUT[i], tb.Extra[i])
		}
	}
}

// TestGenerated checks that tables.go is what the generator writes today.
func TestGenerated(t *testing.T) {
	tb, err := bucket.Build(bucket.DefaultSize, bucket.DefaultSchedule)
	require.NoError(t, err)
	var bb bytes.Buffer
	require.NoError(t, emit.GoEmitter{W: &bb, Package: "matchidx"}.Emit(tb))

	src, err := ioutil.ReadFile("tables.go")
	require.NoError(t, err)
	if !bytes.Equal(src, bb.Bytes()) {
		t.Error("tables.go is stale; run go generate")
	}
}

func TestRoundTrip(t *testing.T) {
	for idx := uint32(0); idx < Size; idx++ {
		code, extra, nb := IdxToCode(idx), IdxToBits(idx), IdxToBitlen(idx)
		if nb != BitlenFromCode(code) {
			t.Fatalf("index %d, bit-length mismatch: %d != %d", idx, nb, BitlenFromCode(code))
		}
		if extra>>nb != 0 {
			t.Fatalf("index %d, extra bits %d wider than %d", idx, extra, nb)
		}
		if got := IdxFromCodeBits(code, extra); got != idx {
			t.Fatalf("index mismatch: got %d, want %d", got, idx)
		}
	}
}

// TestBitStream writes each index as a 5-bit code plus its extra bits, the
// shape in which the codec stores them before entropy coding the codes.
func TestBitStream(t *testing.T) {
	const codeBits = 5
	if NumCodes > 1<<codeBits {
		t.Fatalf("%d codes do not fit in %d bits", NumCodes, codeBits)
	}

	var want []uint32
	bb := bits.NewBuffer(nil)
	for idx := uint32(0); idx < Size; idx += 7 {
		want = append(want, idx)
		bb.WriteBits(uint(IdxToCode(idx)), codeBits)
		if nb := IdxToBitlen(idx); nb > 0 {
			bb.WriteBits(uint(IdxToBits(idx)), int(nb))
		}
	}
	for !bb.WriteAligned() {
		bb.WriteBits(0, 1)
	}

	for _, idx := range want {
		code, _, err := bb.ReadBits(codeBits)
		require.NoError(t, err)
		var extra uint
		if nb := BitlenFromCode(uint32(code)); nb > 0 {
			extra, _, err = bb.ReadBits(int(nb))
			require.NoError(t, err)
		}
		assert.Equal(t, idx, IdxFromCodeBits(uint32(code), uint32(extra)))
	}
}

func BenchmarkIdxToCode(b *testing.B) {
	var sum uint32
	for i := 0; i < b.N; i++ {
		idx := uint32(i) & (Size - 1)
		sum += IdxToCode(idx) + IdxToBits(idx)
	}
	_ = sum
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bucket

import (
	"fmt"

	"github.com/dsnet/golib/errs"
	"github.com/zling/ztable/internal"
	"github.com/zling/ztable/internal/prefix"
)

// Tables is the bucket code for indices in [0, Size()).
// The four slices are parallel per code (Blen, Base) and per index
// (Code, Extra). Tables must not be modified once built.
type Tables struct {
	Blen  []uint8  // Extra bit-length of each code
	Base  []uint32 // First index of each code
	Code  []uint16 // Code of each index
	Extra []uint8  // Offset of each index within its bucket
}

// Build partitions the indices [0, n) into buckets sized by sched.
//
// Only the codes needed to cover n indices appear in the result; the last of
// those may be truncated at n. Build never extends sched; a schedule that
// cannot cover n indices is an error. No tables are returned on error.
func Build(n int, sched Schedule) (t *Tables, err error) {
	defer func() {
		if err != nil {
			t = nil
		}
	}()
	defer errs.Recover(&err)
	sched.validate(n)

	t = &Tables{
		Base:  []uint32{0},
		Code:  make([]uint16, n),
		Extra: make([]uint8, n),
	}
	var code, bits uint
	for i := 0; i < n; i++ {
		t.Code[i] = uint16(code)
		t.Extra[i] = uint8(bits)

		if bits++; bits>>sched[code] != 0 {
			bits = 0
			code++
			if i+1 < n {
				t.Base = append(t.Base, uint32(i+1))
			}
		}
	}
	t.Blen = make([]uint8, len(t.Base))
	for c := range t.Blen {
		t.Blen[c] = uint8(sched[c])
	}

	errs.Panic(t.Check())
	return t, nil
}

// Size reports the number of raw indices.
func (t *Tables) Size() int { return len(t.Code) }

// NumCodes reports the number of codes in use.
func (t *Tables) NumCodes() int { return len(t.Base) }

// Encode returns the code of idx, its extra bits, and the number of extra bits.
func (t *Tables) Encode(idx uint) (code, extra, nb uint) {
	code = uint(t.Code[idx])
	return code, uint(t.Extra[idx]), uint(t.Blen[code])
}

// Decode returns the index selected by extra within the bucket of code.
// The extra bits must be less than 1<<t.Blen[code].
func (t *Tables) Decode(code, extra uint) uint {
	return uint(t.Base[code]) + extra
}

// RangeCodes returns the bucket of every code as a range code.
// The last range may extend past Size().
func (t *Tables) RangeCodes() prefix.RangeCodes {
	rcs := make(prefix.RangeCodes, len(t.Base))
	for c := range rcs {
		rcs[c] = prefix.RangeCode{Base: t.Base[c], Len: uint32(t.Blen[c])}
	}
	return rcs
}

// Aligned reports whether every base is a multiple of its bucket size.
// When true, the index may be recovered as Base[code] | extra.
func (t *Tables) Aligned() bool {
	for c, base := range t.Base {
		if base&(1<<t.Blen[c]-1) != 0 {
			return false
		}
	}
	return true
}

// Check verifies the invariants a decoder relies on. In particular, every
// index must round-trip through its (code, extra) pair.
func (t *Tables) Check() error {
	n := len(t.Code)
	switch {
	case n == 0 || n > MaxSize:
		return internal.ErrInvalidSize
	case len(t.Extra) != n, len(t.Blen) != len(t.Base), len(t.Base) == 0:
		return internal.ErrTableMismatch
	case t.Base[0] != 0:
		return errorf("base of code 0 is %d", t.Base[0])
	case uint(t.Code[n-1])+1 != uint(len(t.Base)):
		return errorf("last index uses code %d of %d", t.Code[n-1], len(t.Base))
	case t.Base[len(t.Base)-1] >= uint32(n):
		return errorf("last code starts at %d beyond %d indices", t.Base[len(t.Base)-1], n)
	}
	for c, nb := range t.Blen {
		if nb > MaxExtraBits {
			return errorf("bit-length of code %d is %d", c, nb)
		}
		if c > 0 && nb < t.Blen[c-1] {
			return errorf("bit-length of code %d decreases", c)
		}
	}

	rcs := t.RangeCodes()
	if !rcs.Disjoint() {
		return errorf("buckets are not contiguous")
	}
	if rcs.End() < uint32(n) {
		return errorf("buckets cover %d of %d indices", rcs.End(), n)
	}
	var re prefix.RangeEncoder
	re.Init(rcs)
	for i := 0; i < n; i++ {
		if sym := re.Encode(uint(i)); sym != uint(t.Code[i]) {
			return errorf("index %d has code %d, bucket says %d", i, t.Code[i], sym)
		}
		code, extra, nb := t.Encode(uint(i))
		if extra>>nb != 0 {
			return errorf("index %d has extra bits %d wider than %d bits", i, extra, nb)
		}
		if idx := t.Decode(code, extra); idx != uint(i) {
			return errorf("index %d decodes as %d", i, idx)
		}
	}
	return nil
}

func errorf(f string, args ...interface{}) error {
	return internal.Error(fmt.Sprintf(f, args...))
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bucket

import (
	"math"

	"github.com/dsnet/golib/errs"
	"github.com/zling/ztable/internal"
)

// Schedule lists the number of extra bits for each code, in code order.
type Schedule []uint

// Capacity reports the number of indices covered by all buckets.
// The sum saturates at math.MaxUint64.
func (s Schedule) Capacity() uint64 {
	var n uint64
	for _, nb := range s {
		if nb >= 64 || n+1<<nb < n {
			return math.MaxUint64
		}
		n += 1 << nb
	}
	return n
}

// Extend returns a copy of s padded with plateau bit-lengths until it covers
// at least n indices. The receiver is never modified.
func (s Schedule) Extend(n int, plateau uint) Schedule {
	out := append(Schedule(nil), s...)
	if plateau >= 64 {
		return append(out, plateau)
	}
	for c := out.Capacity(); c < uint64(n); c += 1 << plateau {
		out = append(out, plateau)
	}
	return out
}

// Validate checks that s can build tables of n indices.
func (s Schedule) Validate(n int) (err error) {
	defer errs.Recover(&err)
	s.validate(n)
	return nil
}

// validate panics with the first violation found.
func (s Schedule) validate(n int) {
	errs.Assert(n > 0 && n <= MaxSize, internal.ErrInvalidSize)
	for c, nb := range s {
		if c > 0 && nb < s[c-1] {
			errs.Panic(&ScheduleNotMonotonicError{Code: uint(c), Prev: s[c-1], Next: nb})
		}
		if nb > MaxExtraBits {
			errs.Panic(&ExtraBitsOverflowError{Code: uint(c), Bits: nb, Max: MaxExtraBits})
		}
	}
	if c := s.Capacity(); c < uint64(n) {
		errs.Panic(&ScheduleTooShortError{Size: n, Capacity: c})
	}
}

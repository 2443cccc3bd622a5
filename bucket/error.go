// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bucket

import "fmt"

// ScheduleTooShortError reports that the buckets of a schedule cannot cover
// every raw index.
type ScheduleTooShortError struct {
	Size     int    // Number of indices to cover
	Capacity uint64 // Number of indices covered by the whole schedule
}

func (e *ScheduleTooShortError) Error() string {
	return fmt.Sprintf("ztable: schedule covers %d indices, need %d", e.Capacity, e.Size)
}

// ScheduleNotMonotonicError reports a bit-length smaller than its predecessor.
type ScheduleNotMonotonicError struct {
	Code uint // Code whose bit-length decreased
	Prev uint // Bit-length of Code-1
	Next uint // Bit-length of Code
}

func (e *ScheduleNotMonotonicError) Error() string {
	return fmt.Sprintf("ztable: bit-length of code %d decreases from %d to %d", e.Code, e.Prev, e.Next)
}

// ExtraBitsOverflowError reports a bucket too wide for the extra bits table.
type ExtraBitsOverflowError struct {
	Code uint // Offending code
	Bits uint // Requested bit-length
	Max  uint // Widest representable bit-length
}

func (e *ExtraBitsOverflowError) Error() string {
	return fmt.Sprintf("ztable: code %d needs %d extra bits, max is %d", e.Code, e.Bits, e.Max)
}

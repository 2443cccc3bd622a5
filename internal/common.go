// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of helpers shared by the table generator.
package internal

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "ztable: " + string(e) }

var (
	ErrInvalidSize   error = Error("invalid table size")
	ErrTableMismatch error = Error("inconsistent table lengths")
	ErrCorrupt       error = Error("table text is corrupted")
)

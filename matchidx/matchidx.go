// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package matchidx holds the precomputed bucket code for ROLZ match indices.
//
// A match index in [0, Size) is sent as one of NumCodes symbols followed by
// BitlenFromCode(code) extra bits. The tables in tables.go are generated by
// cmd/ztable from bucket.DefaultSchedule.
package matchidx

//go:generate go run ../cmd/ztable -format=go -pkg=matchidx -o=tables.go

// MaxBitlen is the largest number of extra bits following a code.
const MaxBitlen = 8

// IdxToCode returns the code of match index idx.
func IdxToCode(idx uint32) uint32 { return uint32(codeLUT[idx]) }

// IdxToBits returns the extra bits of match index idx.
func IdxToBits(idx uint32) uint32 { return uint32(bitsLUT[idx]) }

// IdxToBitlen returns the number of extra bits of match index idx.
func IdxToBitlen(idx uint32) uint32 { return uint32(blenLUT[codeLUT[idx]]) }

// BitlenFromCode returns the number of extra bits following code.
func BitlenFromCode(code uint32) uint32 { return uint32(blenLUT[code]) }

// IdxFromCodeBits reconstructs a match index.
// Every base is a multiple of its bucket size, so OR-ing suffices.
func IdxFromCodeBits(code, bits uint32) uint32 { return uint32(baseLUT[code]) | bits }

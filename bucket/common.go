// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bucket builds the bucket code used to transmit LZ match indices.
//
// Raw indices in [0, N) are grouped into contiguous buckets. Each bucket is
// identified by a code and holds 1<<bitlen(code) indices, so an index is sent
// as its code followed by bitlen(code) extra bits holding the offset within
// the bucket. Bit-lengths never decrease, keeping small indices cheap.
//
// The tables are built once, offline, and then frozen into constants that the
// codec consumes (see package matchidx).
package bucket

const (
	// DefaultSize is the number of match indices in a ROLZ bucket.
	DefaultSize = 4096

	// MaxSize is the largest table size whose codes fit in a uint16.
	MaxSize = 1 << 16

	// MaxExtraBits is the widest bucket; extra bits are stored in a uint8.
	MaxExtraBits = 8

	// PlateauBits is the bit-length repeated once a schedule runs out.
	PlateauBits = 8
)

var (
	// DefaultSchedule is the 32-symbol schedule used by the codec.
	// Bucket sizes double every two codes and then plateau at 256.
	DefaultSchedule = Schedule{
		0, 0, 0, 0, // 0..3
		1, 1, // 4..7
		2, 2, // 8..15
		3, 3, // 16..31
		4, 4, // 32..63
		5, 5, // 64..127
		6, 6, // 128..255
		7, 7, // 256..511
		8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, // 512..4095
	}

	// LegacySchedule is the growth prefix without its plateau.
	// It must be extended with PlateauBits before use.
	LegacySchedule = Schedule{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7,
	}
)

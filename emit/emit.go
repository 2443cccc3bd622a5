// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package emit renders bucket code tables as source text.
//
// Two layouts are supported: the .inc layout, a comma separated list with
// sixteen right-aligned values per line meant to be included inside a C array
// initializer, and a Go source file declaring the tables as arrays.
package emit

import (
	"github.com/zling/ztable/bucket"
)

// Columns is the number of values written per line.
const Columns = 16

// Table names, in the order they are emitted.
const (
	NameBlen = "blen"
	NameBase = "base"
	NameCode = "code"
	NameBits = "bits"
)

// Names lists every table name in emit order.
var Names = []string{NameBlen, NameBase, NameCode, NameBits}

// Emitter writes a complete set of tables.
type Emitter interface {
	Emit(t *bucket.Tables) error
}

// Sequences returns the tables as integer sequences keyed by table name.
func Sequences(t *bucket.Tables) map[string][]uint {
	m := map[string][]uint{
		NameBlen: make([]uint, len(t.Blen)),
		NameBase: make([]uint, len(t.Base)),
		NameCode: make([]uint, len(t.Code)),
		NameBits: make([]uint, len(t.Extra)),
	}
	for i, v := range t.Blen {
		m[NameBlen][i] = uint(v)
	}
	for i, v := range t.Base {
		m[NameBase][i] = uint(v)
	}
	for i, v := range t.Code {
		m[NameCode][i] = uint(v)
	}
	for i, v := range t.Extra {
		m[NameBits][i] = uint(v)
	}
	return m
}

// Tables assembles integer sequences keyed by table name back into tables.
// The result is verified with Tables.Check.
func Tables(m map[string][]uint) (*bucket.Tables, error) {
	t := &bucket.Tables{
		Blen:  make([]uint8, len(m[NameBlen])),
		Base:  make([]uint32, len(m[NameBase])),
		Code:  make([]uint16, len(m[NameCode])),
		Extra: make([]uint8, len(m[NameBits])),
	}
	for i, v := range m[NameBlen] {
		if v > bucket.MaxExtraBits {
			return nil, errorf("bit-length %d of code %d is too large", v, i)
		}
		t.Blen[i] = uint8(v)
	}
	for i, v := range m[NameBase] {
		if v >= bucket.MaxSize {
			return nil, errorf("base %d of code %d is too large", v, i)
		}
		t.Base[i] = uint32(v)
	}
	for i, v := range m[NameCode] {
		if v >= uint(len(t.Base)) {
			return nil, errorf("index %d has unknown code %d", i, v)
		}
		t.Code[i] = uint16(v)
	}
	for i, v := range m[NameBits] {
		if v > 0xff {
			return nil, errorf("extra bits %d of index %d are too large", v, i)
		}
		t.Extra[i] = uint8(v)
	}
	if err := t.Check(); err != nil {
		return nil, err
	}
	return t, nil
}

// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package ztable

import (
	"bytes"
	"reflect"

	"github.com/zling/ztable/bucket"
	"github.com/zling/ztable/emit"
)

// Fuzz treats the first two bytes as the table size and every following
// byte as one bit-length of the schedule.
func Fuzz(data []byte) int {
	if len(data) < 2 {
		return -1
	}
	n := int(data[0]) | int(data[1])<<8
	var sched bucket.Schedule
	for _, b := range data[2:] {
		sched = append(sched, uint(b%16))
	}

	tb, err := bucket.Build(n, sched)
	if verr := sched.Validate(n); (verr == nil) != (err == nil) {
		panic("validation disagrees with build")
	}
	if err != nil {
		if tb != nil {
			panic("partial tables on error")
		}
		return 0
	}
	testTables(tb, n)
	testInc(tb)
	return 1 // Favor valid inputs
}

// testTables checks the decoder contract independently of Tables.Check.
func testTables(tb *bucket.Tables, n int) {
	if tb.Size() != n || tb.NumCodes() != int(tb.Code[n-1])+1 || tb.Base[0] != 0 {
		panic("malformed tables")
	}
	for i := 0; i < n; i++ {
		code, extra, nb := tb.Encode(uint(i))
		if extra>>nb != 0 || tb.Decode(code, extra) != uint(i) {
			panic("index does not round-trip")
		}
	}
	used := make(bucket.Schedule, len(tb.Blen))
	for c, nb := range tb.Blen {
		used[c] = uint(nb)
	}
	again, err := bucket.Build(n, used)
	if err != nil || !reflect.DeepEqual(tb, again) {
		panic("rebuilding from the used codes differs")
	}
}

// testInc checks that every table survives the .inc layout.
func testInc(tb *bucket.Tables) {
	m := make(map[string][]uint)
	for name, vals := range emit.Sequences(tb) {
		var bb bytes.Buffer
		if err := emit.WriteInc(&bb, vals); err != nil {
			panic(err)
		}
		got, err := emit.ParseInc(&bb)
		if err != nil {
			panic(err)
		}
		m[name] = got
	}
	got, err := emit.Tables(m)
	if err != nil {
		panic(err)
	}
	if !reflect.DeepEqual(tb, got) {
		panic("mismatching tables")
	}
}

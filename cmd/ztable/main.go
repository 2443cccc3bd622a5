// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command ztable generates the match index bucket code tables.
//
// By default it writes the four libzling .inc files into the current
// directory:
//
//	ztable -size=4096 -o=src
//
// With -format=go it writes a Go source file instead (see package matchidx).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"os"
	"regexp"

	"github.com/dsnet/golib/strconv"
	"github.com/zling/ztable/bucket"
	"github.com/zling/ztable/emit"
	"github.com/zling/ztable/internal"
)

const (
	formatInc = "inc"
	formatGo  = "go"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("ztable", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f0 := fs.String("size", "4096", "Number of match indices (accepts prefixes like 4Ki)")
	f1 := fs.String("schedule", "", "Comma separated extra bit-lengths per code (default 32-symbol schedule)")
	f2 := fs.Bool("legacy", false, "Pad the growth prefix with 8-bit buckets instead of using -schedule")
	f3 := fs.String("format", formatInc, "Output format: inc or go")
	f4 := fs.String("pkg", "matchidx", "Package name for -format=go")
	f5 := fs.String("o", "", "Output directory for inc, output file for go ('-' for stdout)")
	f6 := fs.Bool("dump", false, "Print the bucket ranges to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return internal.Error(fmt.Sprintf("unexpected arguments: %q", fs.Args()))
	}

	size, err := parseUint(*f0)
	if err != nil {
		return err
	}
	n := int(size)
	if n <= 0 || n > bucket.MaxSize {
		return internal.ErrInvalidSize
	}

	sched := bucket.DefaultSchedule
	switch {
	case *f2 && *f1 != "":
		return internal.Error("-legacy and -schedule are mutually exclusive")
	case *f2:
		sched = bucket.LegacySchedule.Extend(n, bucket.PlateauBits)
	case *f1 != "":
		if sched, err = parseSchedule(*f1); err != nil {
			return err
		}
	}

	tb, err := bucket.Build(n, sched)
	if err != nil {
		return err
	}
	if *f6 {
		fmt.Fprintln(stderr, tb.RangeCodes())
	}

	switch *f3 {
	case formatInc:
		dir := *f5
		if dir == "" {
			dir = "."
		}
		err = emit.IncEmitter{Dir: dir}.Emit(tb)
	case formatGo:
		var bb bytes.Buffer
		if err = (emit.GoEmitter{W: &bb, Package: *f4}).Emit(tb); err != nil {
			break
		}
		if *f5 == "" || *f5 == "-" {
			_, err = stdout.Write(bb.Bytes())
		} else {
			err = ioutil.WriteFile(*f5, bb.Bytes(), 0644)
		}
	default:
		return internal.Error(fmt.Sprintf("unknown format: %q", *f3))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "ztable: %d indices, %d codes, %d extra bits max\n",
		tb.Size(), tb.NumCodes(), tb.Blen[len(tb.Blen)-1])
	return nil
}

var sep = regexp.MustCompile("[, ]+")

func parseSchedule(s string) (bucket.Schedule, error) {
	var sched bucket.Schedule
	for _, f := range sep.Split(s, -1) {
		if f == "" {
			continue
		}
		nb, err := parseUint(f)
		if err != nil {
			return nil, err
		}
		sched = append(sched, uint(nb))
	}
	return sched, nil
}

// parseUint parses a non-negative integer, allowing SI and IEC prefixes.
func parseUint(s string) (uint64, error) {
	f, err := strconv.ParsePrefix(s, strconv.AutoParse)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxUint32 {
		return 0, internal.Error(fmt.Sprintf("invalid number: %q", s))
	}
	return uint64(f), nil
}

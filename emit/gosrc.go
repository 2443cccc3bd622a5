// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"io"

	"github.com/zling/ztable/bucket"
)

// GoEmitter writes the tables as a Go source file.
//
// The file declares the constants Size and NumCodes and the arrays
// blenLUT, baseLUT, codeLUT and bitsLUT using the smallest unsigned integer
// type that holds every value.
type GoEmitter struct {
	W       io.Writer
	Package string // Package clause of the generated file
	Command string // Generator named in the "Code generated" header
}

func (e GoEmitter) Emit(t *bucket.Tables) error {
	if err := t.Check(); err != nil {
		return err
	}
	src, err := e.source(t)
	if err != nil {
		return err
	}
	_, err = e.W.Write(src)
	return err
}

func (e GoEmitter) source(t *bucket.Tables) ([]byte, error) {
	cmd := e.Command
	if cmd == "" {
		cmd = "ztable"
	}
	seqs := Sequences(t)

	var bb bytes.Buffer
	fmt.Fprintf(&bb, "// Code generated by %s; DO NOT EDIT.\n\n", cmd)
	fmt.Fprintf(&bb, "package %s\n\n", e.Package)
	fmt.Fprintf(&bb, "const (\n")
	fmt.Fprintf(&bb, "Size = %d\n", t.Size())
	fmt.Fprintf(&bb, "NumCodes = %d\n", t.NumCodes())
	fmt.Fprintf(&bb, ")\n")
	for _, name := range Names {
		dim := "Size"
		if name == NameBlen || name == NameBase {
			dim = "NumCodes"
		}
		vals := seqs[name]
		fmt.Fprintf(&bb, "\nvar %sLUT = [%s]%s{\n", name, dim, intType(vals))
		for i, v := range vals {
			fmt.Fprintf(&bb, "%d,", v)
			if i == len(vals)-1 {
				bb.WriteByte('\n')
			} else {
				bb.WriteByte(lineSep(i))
			}
		}
		fmt.Fprintf(&bb, "}\n")
	}

	src, err := format.Source(bb.Bytes())
	if err != nil {
		return nil, errorf("invalid Go source: %v", err)
	}
	return src, nil
}

// intType reports the smallest unsigned type holding every value.
func intType(vals []uint) string {
	var max uint
	for _, v := range vals {
		if v > max {
			max = v
		}
	}
	switch {
	case max <= 0xff:
		return "uint8"
	case max <= 0xffff:
		return "uint16"
	default:
		return "uint32"
	}
}

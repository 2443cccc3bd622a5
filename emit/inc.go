// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package emit

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zling/ztable/bucket"
	"github.com/zling/ztable/internal"
)

// IncFileName reports the file holding the named table.
func IncFileName(name string) string {
	return "ztable_matchidx_" + name + ".inc"
}

// WriteInc writes vals as "%4d," items, breaking the line after every
// Columns items and separating the rest with a single space.
func WriteInc(w io.Writer, vals []uint) error {
	bw := bufio.NewWriter(w)
	for i, v := range vals {
		fmt.Fprintf(bw, "%4d,", v)
		bw.WriteByte(lineSep(i))
	}
	return bw.Flush()
}

// ParseInc reads back values written by WriteInc.
// Any amount of whitespace may surround the items, but every item must be
// terminated by a comma.
func ParseInc(r io.Reader) ([]uint, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	items := strings.Split(string(b), ",")
	if strings.TrimSpace(items[len(items)-1]) != "" {
		return nil, internal.ErrCorrupt // Missing trailing comma
	}
	vals := make([]uint, 0, len(items)-1)
	for _, s := range items[:len(items)-1] {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return nil, internal.ErrCorrupt
		}
		vals = append(vals, uint(v))
	}
	return vals, nil
}

// IncEmitter writes the four tables as .inc files into Dir.
type IncEmitter struct {
	Dir string
}

// Emit renders every table before touching the file system. Each table is
// written to a temporary file. The temporary files then replace the existing
// tables one by one, with every replaced table kept aside until all four are
// in place. On failure the old tables are moved back, so Dir never holds a
// mix of old and new tables.
func (e IncEmitter) Emit(t *bucket.Tables) error {
	if err := t.Check(); err != nil {
		return err
	}
	seqs := Sequences(t)

	var temps []string
	defer func() {
		for _, name := range temps {
			os.Remove(name)
		}
	}()
	for _, name := range Names {
		var bb bytes.Buffer
		if err := WriteInc(&bb, seqs[name]); err != nil {
			return err
		}
		f, err := ioutil.TempFile(e.Dir, IncFileName(name)+".tmp")
		if err != nil {
			return err
		}
		temps = append(temps, f.Name())
		if _, err := f.Write(bb.Bytes()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	var done []swap
	for i, name := range Names {
		s := swap{target: filepath.Join(e.Dir, IncFileName(name))}
		if err := s.replace(temps[i]); err != nil {
			for j := len(done) - 1; j >= 0; j-- {
				done[j].undo()
			}
			return err
		}
		done = append(done, s)
	}
	for _, s := range done {
		if s.backup != "" {
			os.Remove(s.backup)
		}
	}
	return nil
}

// swap is one table moved into place. The previous file, if any, is kept at
// backup until the whole set is in place.
type swap struct {
	target string
	backup string
}

// replace moves src over s.target, keeping any previous file aside.
// On error, the previous file is back at s.target.
func (s *swap) replace(src string) error {
	fi, err := os.Lstat(s.target)
	switch {
	case err == nil && !fi.Mode().IsRegular():
		return errorf("%s is not a regular file", s.target)
	case err == nil:
		s.backup = src + ".old"
		if err := os.Rename(s.target, s.backup); err != nil {
			s.backup = ""
			return err
		}
	case !os.IsNotExist(err):
		return err
	}
	if err := os.Rename(src, s.target); err != nil {
		s.undo()
		return err
	}
	return nil
}

// undo restores the file that was at s.target before replace.
func (s *swap) undo() {
	if s.backup == "" {
		os.Remove(s.target)
		return
	}
	os.Rename(s.backup, s.target)
}

// ReadIncDir parses the four .inc files in dir back into tables.
func ReadIncDir(dir string) (*bucket.Tables, error) {
	m := make(map[string][]uint)
	for _, name := range Names {
		f, err := os.Open(filepath.Join(dir, IncFileName(name)))
		if err != nil {
			return nil, err
		}
		vals, err := ParseInc(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		m[name] = vals
	}
	return Tables(m)
}

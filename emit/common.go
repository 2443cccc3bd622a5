// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package emit

import (
	"fmt"

	"github.com/zling/ztable/internal"
)

func errorf(f string, args ...interface{}) error {
	return internal.Error(fmt.Sprintf(f, args...))
}

// lineSep returns the separator written after the i-th value.
func lineSep(i int) byte {
	if i%Columns == Columns-1 {
		return '\n'
	}
	return ' '
}

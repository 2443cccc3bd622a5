// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package ztable

import (
	"go/build/constraint"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConstraint(t *testing.T) {
	b, err := ioutil.ReadFile("ztable.go")
	require.NoError(t, err)

	var plus, goBuild []string
	for _, line := range strings.Split(string(b), "\n") {
		if strings.HasPrefix(line, "package ") {
			break
		}
		switch {
		case constraint.IsGoBuild(line):
			goBuild = append(goBuild, line)
		case constraint.IsPlusBuild(line):
			plus = append(plus, line)
		}
	}
	require.Equal(t, []string{"//go:build gofuzz"}, goBuild)
	assert.Equal(t, []string{"// +build gofuzz"}, plus)

	expr, err := constraint.Parse(goBuild[0])
	require.NoError(t, err)
	assert.True(t, expr.Eval(func(tag string) bool { return tag == "gofuzz" }))
	assert.False(t, expr.Eval(func(string) bool { return false }))
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"regexp"
	"slices"
	"strings"
	"testing"

	"cogentcore.org/canvas2d/interop/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var handleSet = regexp.MustCompile(`(?s)const handleMethods = new Set\(\[(.*?)\]\)`)

func TestHandleMethods(t *testing.T) {
	b, err := FS.ReadFile("canvas2d.js")
	require.NoError(t, err)
	m := handleSet.FindSubmatch(b)
	require.NotNil(t, m, "handleMethods set")

	var got []string
	for _, s := range strings.Split(string(m[1]), ",") {
		s = strings.Trim(strings.TrimSpace(s), `"`)
		if s != "" {
			got = append(got, s)
		}
	}
	var want []string
	for _, meth := range op.MethodsValues() {
		if meth.Signature().Handle {
			want = append(want, meth.String())
		}
	}
	slices.Sort(got)
	slices.Sort(want)
	assert.Equal(t, want, got)

	// methods taking a Path2D first are plain context calls
	for _, name := range []string{"fill", "stroke", "clip", "isPointInPath"} {
		assert.NotContains(t, got, name)
	}
}

func TestEmbedded(t *testing.T) {
	for _, name := range []string{"index.html", "canvas2d.js"} {
		b, err := FS.ReadFile(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, b, name)
	}
	b, _ := FS.ReadFile("index.html")
	assert.Contains(t, string(b), "canvas2d.js")
}

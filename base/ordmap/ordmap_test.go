// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	om := New[string, int]()
	assert.True(t, om.Add("b", 1))
	assert.True(t, om.Add("a", 2))
	assert.True(t, om.Add("c", 3))
	assert.False(t, om.Add("a", 20))
	assert.Equal(t, []string{"b", "a", "c"}, om.Keys())
	v, ok := om.ValueByKeyTry("a")
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	assert.True(t, om.DeleteKey("b"))
	assert.False(t, om.DeleteKey("b"))
	assert.Equal(t, 2, om.Len())
	assert.Equal(t, "c", om.KeyByIndex(1))
	assert.Equal(t, 3, om.ValueByIndex(1))
	v, ok = om.ValueByKeyTry("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.False(t, om.Has("b"))
}

func TestZeroMap(t *testing.T) {
	var om Map[int, string]
	_, ok := om.ValueByKeyTry(1)
	assert.False(t, ok)
	om.Add(1, "x")
	assert.True(t, om.Has(1))
}

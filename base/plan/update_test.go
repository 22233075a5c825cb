// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nameObj struct {
	name string
}

func (n *nameObj) PlanName() string {
	return n.name
}

func names(items []*nameObj) []string {
	var r []string
	for _, it := range items {
		r = append(r, it.PlanName())
	}
	return r
}

func TestUpdate(t *testing.T) {
	var s []*nameObj
	var destroyed []string
	update := func(target []string) bool {
		return Update(&s, len(target),
			func(i int) string { return target[i] },
			func(name string, i int) *nameObj { return &nameObj{name: name} },
			nil,
			func(e *nameObj) { destroyed = append(destroyed, e.name) })
	}

	assert.True(t, update([]string{"a", "b", "c"}))
	assert.Equal(t, []string{"a", "b", "c"}, names(s))

	b := s[1]
	assert.True(t, update([]string{"a", "aa", "b", "c"}))
	assert.Equal(t, []string{"a", "aa", "b", "c"}, names(s))
	assert.Same(t, b, s[2])

	assert.True(t, update([]string{"a", "aa", "bb", "c"}))
	assert.Equal(t, []string{"a", "aa", "bb", "c"}, names(s))
	assert.Equal(t, []string{"b"}, destroyed)

	assert.True(t, update([]string{"c", "aa", "bb"}))
	assert.Equal(t, []string{"c", "aa", "bb"}, names(s))
	assert.Equal(t, []string{"b", "a"}, destroyed)

	assert.False(t, update([]string{"c", "aa", "bb"}))
}

func TestUpdateCallsUpdate(t *testing.T) {
	s := []*nameObj{{name: "x"}}
	var seen []int
	Update(&s, 2,
		func(i int) string { return []string{"y", "x"}[i] },
		func(name string, i int) *nameObj { return &nameObj{name: name} },
		func(e *nameObj, i int) { seen = append(seen, i) },
		nil)
	assert.Equal(t, []int{1}, seen)
}

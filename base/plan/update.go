// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plan updates a slice of named elements to match a target
// list of names with minimal edits: elements whose names are no
// longer wanted are destroyed, missing ones are created, and the rest
// are kept and moved into target order. Names must be unique.
package plan

import (
	"log/slog"
	"slices"
)

// Namer is implemented by elements that have a name in a plan.
type Namer interface {

	// PlanName returns the name of the element in a plan.
	PlanName() string
}

// Update makes *s hold elements for the n target names given by name,
// in order. Missing elements are made with new. update, if non-nil,
// is called on every element kept from before. destroy, if non-nil,
// is called on every removed element. It returns whether *s changed.
func Update[T Namer](s *[]T, n int, name func(i int) string, new func(name string, i int) T, update func(e T, i int), destroy func(e T)) bool {
	names := make([]string, n)
	want := make(map[string]int, n)
	for i := range n {
		nm := name(i)
		names[i] = nm
		if _, has := want[nm]; has {
			slog.Error("plan.Update: duplicate name", "name", nm)
		}
		want[nm] = i
	}
	mods := false
	r := *s
	for i := len(r) - 1; i >= 0; i-- {
		if _, ok := want[r[i].PlanName()]; !ok {
			mods = true
			if destroy != nil {
				destroy(r[i])
			}
			r = slices.Delete(r, i, i+1)
		}
	}
	for i, nm := range names {
		ci := slices.IndexFunc(r, func(e T) bool { return e.PlanName() == nm })
		switch {
		case ci < 0:
			mods = true
			r = slices.Insert(r, i, new(nm, i))
			continue
		case ci != i:
			mods = true
			e := r[ci]
			r = slices.Delete(r, ci, ci+1)
			r = slices.Insert(r, i, e)
		}
		if update != nil {
			update(r[i], i)
		}
	}
	*s = r
	return mods
}

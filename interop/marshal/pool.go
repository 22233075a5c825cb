// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package marshal

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// ErrMissingElementID is returned when an element without an id
// is passed as a drawing argument.
var ErrMissingElementID = errors.New("marshal: element has no id")

// Pool issues [Reference] tokens for host-side objects. Element
// references are keyed by the element id. Created objects are keyed
// structurally by the arguments that would construct them, so the
// same logical object always maps to the same token for the lifetime
// of the pool. Tokens are never reused or invalidated individually.
//
// A Pool is safe for concurrent use.
type Pool struct {
	mu     sync.Mutex
	last   uint64
	shards map[uint64][]*poolEntry

	// hash computes the shard key; nil means [Hash].
	hash func(args ...any) uint64
}

type poolEntry struct {
	args []any
	ref  Reference
}

// NewPool returns a new empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Element returns the element reference for el, whose id is
// the element's own id.
func (p *Pool) Element(el Element) (Reference, error) {
	if el == nil {
		return Reference{}, ErrMissingElementID
	}
	id := el.ElementID()
	if id == "" {
		return Reference{}, fmt.Errorf("%w: %T", ErrMissingElementID, el)
	}
	return Reference{ID: id, IsElementRef: true}, nil
}

// Next returns the reference for the object constructed from args,
// and whether it was newly created by this call. Callers include the
// kind of constructor as the first argument so that different object
// kinds with equal parameters get distinct tokens. Unsupported argument
// types are a programming error and cause a panic; see [Normalize].
func (p *Pool) Next(args ...any) (Reference, bool) {
	nargs, err := NormalizeAll(args)
	if err != nil {
		panic(err)
	}
	hf := p.hash
	if hf == nil {
		hf = Hash
	}
	h := hf(nargs...)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shards == nil {
		p.shards = make(map[uint64][]*poolEntry)
	}
	for _, e := range p.shards[h] {
		if argsEqual(e.args, nargs) {
			return e.ref, false
		}
	}
	p.last++
	ref := Reference{ID: strconv.FormatUint(p.last, 10)}
	p.shards[h] = append(p.shards[h], &poolEntry{args: nargs, ref: ref})
	return ref, true
}

// WithClass returns a copy of ref tagged with the given class initializer.
func (p *Pool) WithClass(ref Reference, class string) Reference {
	ref.ClassInitializer = class
	return ref
}

// Len returns the number of created-object tokens issued so far.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.last)
}

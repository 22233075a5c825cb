// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render provides [Context], a 2D drawing context whose calls
// are queued as [op.Op] values and sent to the host in one batch per
// frame by [Context.Flush]. Stateful properties are mirrored locally so
// reading them never crosses the host boundary.
package render

import (
	"context"
	"log/slog"
	"sync"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/interop/marshal"
	"cogentcore.org/canvas2d/interop/op"
)

// Target is where a [Context] sends its operations: one canvas on a host.
type Target interface {

	// ProcessBatch replays ops in order on the host.
	ProcessBatch(ctx context.Context, ops []op.Op) error

	// DirectCall invokes a method immediately and returns its result.
	DirectCall(ctx context.Context, method op.Methods, args ...any) (any, error)
}

// Context is the 2D drawing context of one canvas. Drawing methods
// append operations to a pending queue, which [Context.Flush] sends
// as a single batch. It is safe for concurrent use, but operations
// from different goroutines interleave in the order they are queued.
type Context struct {
	target Target
	pool   *marshal.Pool
	gate   func() error

	mu      sync.Mutex
	queue   []op.Op
	state   State
	saved   []State
	objects map[string]any
}

// NewContext returns a new context sending to target and issuing
// object references from pool. If pool is nil a new one is used.
func NewContext(target Target, pool *marshal.Pool) *Context {
	if pool == nil {
		pool = marshal.NewPool()
	}
	return &Context{target: target, pool: pool, state: DefaultState(), objects: map[string]any{}}
}

// SetGate sets the function reporting whether the canvas accepts
// operations, and must be called before the context is used. While
// gate returns an error, drawing calls are dropped and logged, object
// creation fails, and [Context.Flush] and direct calls return the error.
func (c *Context) SetGate(gate func() error) {
	c.gate = gate
}

// Err returns the error of the gate, or nil when operations are accepted.
func (c *Context) Err() error {
	if c.gate == nil {
		return nil
	}
	return c.gate()
}

// refused returns whether the gate refuses operations, logging the
// dropped operation if so.
func (c *Context) refused(o op.Op) bool {
	err := c.Err()
	if err != nil {
		slog.Warn("render: operation dropped", "op", o.Name(), "err", err)
	}
	return err != nil
}

// Pool returns the reference pool of the context.
func (c *Context) Pool() *marshal.Pool {
	return c.pool
}

// Pending returns the number of queued operations.
func (c *Context) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Queued returns a copy of the queued operations, in order.
func (c *Context) Queued() []op.Op {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]op.Op(nil), c.queue...)
}

// Flush sends all queued operations to the host as one batch.
// The queue is cleared whether or not the send succeeds, and an
// empty queue sends nothing. A refusing gate discards the queue
// and returns its error.
func (c *Context) Flush(ctx context.Context) error {
	if err := c.Err(); err != nil {
		c.Discard()
		return err
	}
	c.mu.Lock()
	ops := c.queue
	c.queue = nil
	c.mu.Unlock()
	if len(ops) == 0 {
		return nil
	}
	return c.target.ProcessBatch(ctx, ops)
}

// ResetState resets the mirrored state to the defaults and drops the
// saved states, matching a host context reset by a resize.
func (c *Context) ResetState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = DefaultState()
	c.saved = nil
}

// Discard drops all queued operations without sending them.
func (c *Context) Discard() {
	c.mu.Lock()
	c.queue = nil
	c.mu.Unlock()
}

// push appends an operation; c.mu must be held.
func (c *Context) push(o op.Op) {
	c.queue = append(c.queue, o)
}

// call queues a method call built from arguments that are known to
// match its signature. A mismatch is a programming error and is logged.
func (c *Context) call(m op.Methods, args ...any) {
	o, err := op.MethodCall(m, args...)
	if errors.Log(err) != nil || c.refused(o) {
		return
	}
	c.mu.Lock()
	c.push(o)
	c.mu.Unlock()
}

// element resolves an element argument through the pool.
func (c *Context) element(el marshal.Element) (marshal.Reference, error) {
	return c.pool.Element(el)
}

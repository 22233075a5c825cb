// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package canvas provides canvases backed by a [host.Host], each
// with a [render.Context] that batches drawing into one host call per
// frame, and a [Manager] that keeps named canvases in sync with the
// declared set.
package canvas

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/events"
	"cogentcore.org/canvas2d/host"
	"cogentcore.org/canvas2d/interop/marshal"
	"cogentcore.org/canvas2d/interop/op"
	"cogentcore.org/canvas2d/render"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// States are the lifecycle states of a canvas.
type States int32

const (
	// Uninitialized is the state until the host confirms the context.
	Uninitialized States = iota

	// Ready is the state in which the canvas can be drawn.
	Ready

	// Disposed is the final state.
	Disposed
)

func (s States) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	case Disposed:
		return "Disposed"
	}
	return fmt.Sprintf("States(%d)", int32(s))
}

// Spec declares a canvas: its name, context options and callbacks.
type Spec struct {

	// Name is the unique name of the canvas within its manager.
	Name string

	// Options are the context creation options.
	Options host.Options

	// OnReady is called once the canvas is ready, on its goroutine.
	OnReady func(c *Canvas)

	// OnFrame is called on every animation frame with the host
	// timestamp in milliseconds, before the frame's flush.
	OnFrame func(c *Canvas, ts float64)
}

// Canvas is one host canvas with its render context. All callbacks
// of a canvas run on its own goroutine, in the order the host sent
// the events.
type Canvas struct {
	name string
	id   string
	host host.Host
	ctx  *render.Context

	onReady func(*Canvas)
	onFrame func(*Canvas, float64)

	state  atomic.Int32
	queue  events.Queue
	frame  atomic.Pointer[events.FrameEvent]
	ready  chan struct{}
	done   chan struct{}
	cancel context.CancelFunc

	mu        sync.Mutex
	opts      host.Options
	listeners events.Listeners
	started   bool
	dispose   sync.Once
}

// New returns a canvas for spec on h, with created objects keyed in
// pool. A nil pool gives the canvas its own. The canvas does nothing
// until [Canvas.Start].
func New(h host.Host, spec Spec, pool *marshal.Pool) *Canvas {
	if pool == nil {
		pool = marshal.NewPool()
	}
	opts := spec.Options
	if opts.Width <= 0 || opts.Height <= 0 {
		def := host.DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.ColorSpace == "" {
		opts.ColorSpace = host.SRGB
	}
	c := &Canvas{
		name:    spec.Name,
		id:      uuid.NewString(),
		host:    h,
		opts:    opts,
		onReady: spec.OnReady,
		onFrame: spec.OnFrame,
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
	c.ctx = render.NewContext(target{c}, pool)
	c.ctx.SetGate(c.readyErr)
	c.queue.Init()
	return c
}

// target binds the render context to the canvas id on the host.
type target struct{ c *Canvas }

func (t target) ProcessBatch(ctx context.Context, ops []op.Op) error {
	return t.c.host.ProcessBatch(ctx, t.c.id, ops)
}

func (t target) DirectCall(ctx context.Context, m op.Methods, args ...any) (any, error) {
	if t.c.State() != Ready {
		return nil, ErrNotReady
	}
	return t.c.host.DirectCall(ctx, t.c.id, m, args...)
}

// Name returns the name the canvas was declared with.
func (c *Canvas) Name() string { return c.name }

// PlanName returns the name, for reconciliation by [Manager].
func (c *Canvas) PlanName() string { return c.name }

// ID returns the unique host id of the canvas.
func (c *Canvas) ID() string { return c.id }

// ElementID returns the host id, so a canvas can be drawn into another.
func (c *Canvas) ElementID() string { return c.id }

// Context returns the render context of the canvas.
func (c *Canvas) Context() *render.Context { return c.ctx }

// State returns the lifecycle state.
func (c *Canvas) State() States { return States(c.state.Load()) }

// Options returns the current context options, including the size.
func (c *Canvas) Options() host.Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.Options().Width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.Options().Height }

// Ready returns a channel closed once the canvas is ready and its
// OnReady callback has returned.
func (c *Canvas) Ready() <-chan struct{} { return c.ready }

// Done returns a channel closed once the canvas goroutine has exited.
func (c *Canvas) Done() <-chan struct{} { return c.done }

// On adds a listener for events of the given type. Listeners are
// called last added first, until one marks the event handled.
func (c *Canvas) On(typ events.Types, fn func(ev events.Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners.Add(typ, fn)
}

// Receive queues an event from the host for the canvas goroutine.
// Frames coalesce: at most one frame waits in the queue, and it runs
// with the timestamp of the latest frame received.
func (c *Canvas) Receive(ev events.Event) {
	if c.State() == Disposed {
		return
	}
	if fe, ok := ev.(*events.FrameEvent); ok {
		if c.frame.Swap(fe) != nil {
			return
		}
	}
	c.queue.Send(ev)
}

// Start starts the canvas goroutine and asks the host to create the
// context. The canvas becomes ready when the host confirms.
func (c *Canvas) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return nil
	}
	if c.State() == Disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	c.started = true
	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	opts := c.opts
	c.mu.Unlock()

	go c.run(runCtx)
	if err := c.host.InitCanvas(ctx, c.id, opts, c); err != nil {
		return fmt.Errorf("canvas %q: init: %w", c.name, err)
	}
	return nil
}

func (c *Canvas) run(ctx context.Context) {
	defer close(c.done)
	for {
		ev, err := c.queue.Wait(ctx)
		if err != nil {
			return
		}
		c.dispatch(ctx, ev)
	}
}

func (c *Canvas) dispatch(ctx context.Context, ev events.Event) {
	switch ev := ev.(type) {
	case *events.ReadyEvent:
		if !c.state.CompareAndSwap(int32(Uninitialized), int32(Ready)) {
			return
		}
		if c.onReady != nil {
			c.onReady(c)
		}
		close(c.ready)
	case *events.FrameEvent:
		latest := c.frame.Swap(nil)
		if latest == nil || c.State() != Ready {
			return
		}
		ev = latest
		if c.onFrame != nil {
			c.onFrame(c, ev.Timestamp)
		}
		c.call(ev)
		if err := c.ctx.Flush(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("canvas: flush failed", "canvas", c.name, "err", err)
		}
		return
	case *events.ResizeEvent:
		c.mu.Lock()
		c.opts.Width, c.opts.Height = ev.Width, ev.Height
		c.mu.Unlock()
		c.ctx.ResetState()
	}
	c.call(ev)
}

// call runs the listeners of the event type on a snapshot, so that
// listeners may add listeners.
func (c *Canvas) call(ev events.Event) {
	c.mu.Lock()
	ls := events.Listeners{ev.Type(): slices.Clone(c.listeners[ev.Type()])}
	c.mu.Unlock()
	ls.Call(ev)
}

// Flush sends the queued operations to the host now.
func (c *Canvas) Flush(ctx context.Context) error {
	if err := c.readyErr(); err != nil {
		return err
	}
	return c.ctx.Flush(ctx)
}

func (c *Canvas) readyErr() error {
	switch c.State() {
	case Uninitialized:
		return fmt.Errorf("canvas %q: %w", c.name, ErrNotReady)
	case Disposed:
		return fmt.Errorf("canvas %q: %w", c.name, ErrDisposed)
	}
	return nil
}

// Resize sets the canvas size, which clears it and resets its context
// state on the host. The size is updated when the host confirms.
func (c *Canvas) Resize(ctx context.Context, width, height int) error {
	if err := c.readyErr(); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidArgument, width, height)
	}
	return c.host.ResizeCanvas(ctx, c.id, width, height)
}

// export MIME types accepted by ToBlob and ToDataURL.
var exportTypes = []string{"image/png", "image/jpeg", "image/webp"}

// checkExport validates an export format and quality in [0, 1],
// where a negative quality selects the host default.
func checkExport(mime string, quality float64) (string, float64, error) {
	if mime == "" {
		mime = "image/png"
	}
	mime = strings.ToLower(mime)
	if !slices.Contains(exportTypes, mime) {
		return "", 0, fmt.Errorf("%w: export type %q", ErrInvalidArgument, mime)
	}
	if math.IsNaN(quality) || quality > 1 {
		return "", 0, fmt.Errorf("%w: export quality %g", ErrInvalidArgument, quality)
	}
	if quality < 0 {
		quality = 0.92
	}
	return mime, quality, nil
}

// ToBlob encodes the canvas as an image of the given MIME type
// (image/png, image/jpeg or image/webp) and quality in [0, 1]; a
// negative quality selects the default. Hosts fall back to PNG for
// types they cannot encode; the returned MIME is sniffed from the
// data when the host returns it.
func (c *Canvas) ToBlob(ctx context.Context, mime string, quality float64) (*host.BlobData, error) {
	mime, quality, err := checkExport(mime, quality)
	if err != nil {
		return nil, err
	}
	if err := c.readyErr(); err != nil {
		return nil, err
	}
	b, err := c.host.ToBlob(ctx, c.id, mime, quality)
	if err != nil {
		return nil, err
	}
	if len(b.Data) > 0 {
		if kind, err := filetype.Image(b.Data); err == nil && kind.MIME.Value != "" {
			b.MIME = kind.MIME.Value
		}
	}
	if b.MIME == "" {
		b.MIME = mime
	}
	return b, nil
}

// ToDataURL encodes the canvas as a data URL; see [Canvas.ToBlob].
func (c *Canvas) ToDataURL(ctx context.Context, mime string, quality float64) (string, error) {
	mime, quality, err := checkExport(mime, quality)
	if err != nil {
		return "", err
	}
	if err := c.readyErr(); err != nil {
		return "", err
	}
	return c.host.ToDataURL(ctx, c.id, mime, quality)
}

// CreateObjectURL encodes the canvas and returns the host URL of the blob.
func (c *Canvas) CreateObjectURL(ctx context.Context, mime string, quality float64) (string, error) {
	b, err := c.ToBlob(ctx, mime, quality)
	if err != nil {
		return "", err
	}
	return b.ObjectURL, nil
}

// Dispose removes the canvas from the host and stops its goroutine.
// It is idempotent and never fails: host errors are logged.
func (c *Canvas) Dispose(ctx context.Context) {
	c.dispose.Do(func() {
		prev := States(c.state.Swap(int32(Disposed)))
		c.ctx.Discard()
		c.mu.Lock()
		started, cancel := c.started, c.cancel
		c.started = true
		c.mu.Unlock()
		if cancel != nil {
			cancel()
		} else {
			close(c.done)
		}
		if !started || prev == Disposed {
			return
		}
		if err := c.host.RemoveContext(ctx, c.id); err != nil && !errors.Is(err, host.ErrDisconnected) {
			slog.Debug("canvas: remove context", "canvas", c.name, "err", err)
		}
	})
}

func (c *Canvas) String() string {
	return fmt.Sprintf("Canvas(%s %s %v)", c.name, c.id, c.State())
}

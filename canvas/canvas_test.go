// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cogentcore.org/canvas2d/events"
	"cogentcore.org/canvas2d/host"
	"cogentcore.org/canvas2d/host/softhost"
	"cogentcore.org/canvas2d/interop/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var red = color.NRGBA{R: 255, A: 255}

func spec(name string, w, h int) Spec {
	opts := host.DefaultOptions()
	opts.Width, opts.Height, opts.Alpha = w, h, true
	return Spec{Name: name, Options: opts}
}

func startCanvas(t *testing.T, hs host.Host, sp Spec) *Canvas {
	t.Helper()
	c := New(hs, sp, nil)
	require.NoError(t, c.Start(context.Background()))
	select {
	case <-c.Ready():
	case <-time.After(timeout):
		t.Fatal("canvas not ready")
	}
	t.Cleanup(func() { c.Dispose(context.Background()) })
	return c
}

// countingHost counts the drawing, direct and resize calls it
// receives, delaying each batch.
type countingHost struct {
	*softhost.Host
	delay time.Duration
	calls atomic.Int32
}

func (h *countingHost) ProcessBatch(ctx context.Context, id string, ops []op.Op) error {
	h.calls.Add(1)
	time.Sleep(h.delay)
	return h.Host.ProcessBatch(ctx, id, ops)
}

func (h *countingHost) DirectCall(ctx context.Context, id string, m op.Methods, args ...any) (any, error) {
	h.calls.Add(1)
	return h.Host.DirectCall(ctx, id, m, args...)
}

func (h *countingHost) ResizeCanvas(ctx context.Context, id string, width, height int) error {
	h.calls.Add(1)
	return h.Host.ResizeCanvas(ctx, id, width, height)
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	hs := &countingHost{Host: softhost.New()}
	c := New(hs, spec("a", 10, 10), nil)
	assert.Equal(t, Uninitialized, c.State())
	assert.ErrorIs(t, c.Resize(ctx, 20, 20), ErrNotReady)
	assert.ErrorIs(t, c.Flush(ctx), ErrNotReady)
	_, err := c.ToBlob(ctx, "image/png", 1)
	assert.ErrorIs(t, err, ErrNotReady)
	c.Context().SetFillStyle("red")
	c.Context().FillRect(0, 0, 10, 10)
	assert.Equal(t, 0, c.Context().Pending())
	assert.ErrorIs(t, c.Context().Flush(ctx), ErrNotReady)
	_, err = c.Context().MeasureText(ctx, "x")
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Zero(t, hs.calls.Load(), "no host calls before ready")

	readied := 0
	c.onReady = func(*Canvas) { readied++ }
	require.NoError(t, c.Start(ctx))
	<-c.Ready()
	assert.Equal(t, Ready, c.State())
	assert.Equal(t, 1, readied)
	assert.Equal(t, c.ID(), c.ElementID())
	_, ok := hs.Surface(c.ID())
	assert.True(t, ok)

	c.Dispose(ctx)
	c.Dispose(ctx)
	assert.Equal(t, Disposed, c.State())
	<-c.Done()
	_, ok = hs.Surface(c.ID())
	assert.False(t, ok)
	assert.ErrorIs(t, c.Flush(ctx), ErrDisposed)
	assert.ErrorIs(t, c.Start(ctx), ErrDisposed)
	c.Context().FillRect(0, 0, 10, 10)
	assert.Equal(t, 0, c.Context().Pending())
	assert.ErrorIs(t, c.Context().Flush(ctx), ErrDisposed)
}

func TestDisposeUnstarted(t *testing.T) {
	c := New(softhost.New(), spec("a", 10, 10), nil)
	c.Dispose(context.Background())
	<-c.Done()
	assert.Equal(t, Disposed, c.State())
}

func TestFrameFlush(t *testing.T) {
	hs := softhost.New()
	var mu sync.Mutex
	var order []string
	sp := spec("a", 10, 10)
	sp.OnFrame = func(c *Canvas, ts float64) {
		mu.Lock()
		order = append(order, "frame")
		mu.Unlock()
		c.Context().SetFillStyle("red")
		c.Context().FillRect(0, 0, 10, 10)
	}
	c := startCanvas(t, hs, sp)
	c.On(events.Frame, func(ev events.Event) {
		mu.Lock()
		order = append(order, "listener")
		mu.Unlock()
		assert.Equal(t, 16.0, ev.(*events.FrameEvent).Timestamp)
	})
	hs.Tick(16)

	s, _ := hs.Surface(c.ID())
	require.Eventually(t, func() bool { return s.Image().NRGBAAt(5, 5) == red }, timeout, tick)
	assert.Equal(t, 0, c.Context().Pending())
	mu.Lock()
	assert.Equal(t, []string{"frame", "listener"}, order)
	mu.Unlock()
}

func TestFrameCoalescing(t *testing.T) {
	hs := &countingHost{Host: softhost.New(), delay: 40 * time.Millisecond}
	var runs atomic.Int32
	var last atomic.Uint64
	sp := spec("a", 10, 10)
	sp.OnFrame = func(c *Canvas, ts float64) {
		runs.Add(1)
		last.Store(math.Float64bits(ts))
		c.Context().FillRect(0, 0, 1, 1)
	}
	c := startCanvas(t, hs, sp)
	for i := 1; i <= 60; i++ {
		hs.Tick(float64(i * 16))
	}
	require.Eventually(t, func() bool { return math.Float64frombits(last.Load()) == 960 }, timeout, tick)
	assert.Less(t, runs.Load(), int32(10))
	assert.Equal(t, uint64(0), c.queue.Len())
}

func TestResizeResetsMirror(t *testing.T) {
	ctx := context.Background()
	hs := softhost.New()
	c := startCanvas(t, hs, spec("a", 10, 10))
	rc := c.Context()
	rc.SetFillStyle("#ff0000")
	require.NoError(t, c.Flush(ctx))
	resized := make(chan struct{}, 1)
	c.On(events.Resize, func(events.Event) { resized <- struct{}{} })
	require.NoError(t, c.Resize(ctx, 20, 20))
	select {
	case <-resized:
	case <-time.After(timeout):
		t.Fatal("no resize event")
	}
	assert.Equal(t, "#000000", rc.FillStyle())
	rc.FillRect(0, 0, 20, 20)
	require.NoError(t, c.Flush(ctx))
	s, _ := hs.Surface(c.ID())
	assert.Equal(t, color.NRGBA{A: 255}, s.Image().NRGBAAt(5, 5))
}

func TestListeners(t *testing.T) {
	hs := softhost.New()
	c := startCanvas(t, hs, spec("a", 10, 10))
	got := make(chan string, 4)
	c.On(events.KeyDown, func(ev events.Event) { got <- "first" })
	c.On(events.KeyDown, func(ev events.Event) {
		got <- "second"
		if ev.(*events.KeyEvent).Key == "x" {
			ev.SetHandled()
		}
	})
	hs.KeyDown(65, "a")
	hs.KeyDown(88, "x")
	assert.Equal(t, "second", <-got)
	assert.Equal(t, "first", <-got)
	assert.Equal(t, "second", <-got)
	select {
	case s := <-got:
		t.Fatalf("unexpected listener call %q", s)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestResize(t *testing.T) {
	ctx := context.Background()
	hs := softhost.New()
	c := startCanvas(t, hs, spec("a", 10, 10))
	resized := make(chan *events.ResizeEvent, 1)
	c.On(events.Resize, func(ev events.Event) { resized <- ev.(*events.ResizeEvent) })
	require.NoError(t, c.Resize(ctx, 30, 20))
	ev := <-resized
	assert.Equal(t, 30, ev.Width)
	assert.Equal(t, 30, c.Width())
	assert.Equal(t, 20, c.Height())
	assert.ErrorIs(t, c.Resize(ctx, 0, 20), ErrInvalidArgument)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	hs := softhost.New()
	c := startCanvas(t, hs, spec("a", 100, 100))
	rc := c.Context()
	rc.SetFillStyle("red")
	rc.FillRect(0, 0, 100, 100)
	require.NoError(t, c.Flush(ctx))

	b, err := c.ToBlob(ctx, "image/png", 1)
	require.NoError(t, err)
	assert.Equal(t, "image/png", b.MIME)
	img, err := png.Decode(bytes.NewReader(b.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, red, color.NRGBAModel.Convert(img.At(50, 50)))

	b, err = c.ToBlob(ctx, "image/webp", 0.5)
	require.NoError(t, err)
	assert.Equal(t, "image/png", b.MIME, "host fell back to png")

	b, err = c.ToBlob(ctx, "image/jpeg", -1)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", b.MIME)

	url, err := c.CreateObjectURL(ctx, "", -1)
	require.NoError(t, err)
	assert.Contains(t, url, "blob:")

	du, err := c.ToDataURL(ctx, "image/png", 1)
	require.NoError(t, err)
	assert.Contains(t, du, "data:image/png;base64,")

	_, err = c.ToBlob(ctx, "image/gif", 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = c.ToBlob(ctx, "image/png", 1.5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = c.ToDataURL(ctx, "text/plain", 1)
	assert.ErrorIs(t, err, op.ErrInvalidArgument)
}

func TestDrawCanvasIntoCanvas(t *testing.T) {
	ctx := context.Background()
	hs := softhost.New()
	src := startCanvas(t, hs, spec("src", 10, 10))
	dst := startCanvas(t, hs, spec("dst", 10, 10))
	src.Context().SetFillStyle("red")
	src.Context().FillRect(0, 0, 10, 10)
	require.NoError(t, src.Flush(ctx))
	require.NoError(t, dst.Context().DrawImage(src, 0, 0))
	require.NoError(t, dst.Flush(ctx))
	s, _ := hs.Surface(dst.ID())
	assert.Equal(t, red, s.Image().NRGBAAt(5, 5))
}

// silentHost never confirms readiness and reports disconnection on removal.
type silentHost struct {
	*softhost.Host
	removed int
}

func (h *silentHost) InitCanvas(ctx context.Context, id string, opts host.Options, recv host.Receiver) error {
	return h.Host.InitCanvas(ctx, id, opts, nil)
}

func (h *silentHost) RemoveContext(ctx context.Context, id string) error {
	h.removed++
	return host.ErrDisconnected
}

func TestDisposeSwallowsErrors(t *testing.T) {
	hs := &silentHost{Host: softhost.New()}
	c := New(hs, spec("a", 10, 10), nil)
	require.NoError(t, c.Start(context.Background()))
	c.Dispose(context.Background())
	c.Dispose(context.Background())
	assert.Equal(t, 1, hs.removed)
}

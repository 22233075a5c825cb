// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/base/ordmap"
	"cogentcore.org/canvas2d/base/plan"
	"cogentcore.org/canvas2d/host"
	"cogentcore.org/canvas2d/interop/marshal"
	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Manager keeps a set of named canvases on one host in sync with the
// canvases declared on it.
type Manager struct {

	// ReadyAttempts is how many times [Manager.CreateTemporary] checks
	// for readiness before failing with [ErrTimeout].
	ReadyAttempts int

	// ReadyInterval is the time between readiness checks.
	ReadyInterval time.Duration

	// SharedPool, if set, keys the created objects of all canvases,
	// instead of one pool per canvas.
	SharedPool *marshal.Pool

	// OnAdded, if set, is called with each canvas materialized by
	// [Manager.Reconcile], before it is started.
	OnAdded func(c *Canvas)

	host     host.Host
	mu       sync.Mutex
	declared *ordmap.Map[string, Spec]
	canvases []*Canvas
}

// NewManager returns a manager of canvases on h.
func NewManager(h host.Host) *Manager {
	return &Manager{
		ReadyAttempts: 50,
		ReadyInterval: 100 * time.Millisecond,
		host:          h,
		declared:      ordmap.New[string, Spec](),
	}
}

// Host returns the host of the canvases.
func (m *Manager) Host() host.Host { return m.host }

// Declare adds spec to the declared canvases. The canvas is created
// on the next [Manager.Reconcile].
func (m *Manager) Declare(spec Spec) error {
	if spec.Name == "" {
		return fmt.Errorf("%w: empty canvas name", ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.declared.Has(spec.Name) {
		return fmt.Errorf("%w: canvas %q already declared", ErrInvalidArgument, spec.Name)
	}
	m.declared.Add(spec.Name, spec)
	return nil
}

// Remove removes the declared canvas name. The canvas is disposed
// on the next [Manager.Reconcile]. It returns whether name was declared.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.declared.DeleteKey(name)
}

// Reconcile creates and starts canvases for new declarations and
// disposes the canvases whose declarations were removed.
func (m *Manager) Reconcile(ctx context.Context) error {
	m.mu.Lock()
	var added, removed []*Canvas
	plan.Update(&m.canvases, m.declared.Len(),
		func(i int) string { return m.declared.KeyByIndex(i) },
		func(name string, i int) *Canvas {
			c := New(m.host, m.declared.ValueByIndex(i), m.SharedPool)
			added = append(added, c)
			return c
		},
		nil,
		func(c *Canvas) { removed = append(removed, c) })
	m.mu.Unlock()

	for _, c := range removed {
		c.Dispose(ctx)
	}
	var errs []error
	for _, c := range added {
		if m.OnAdded != nil {
			m.OnAdded(c)
		}
		if err := c.Start(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("canvas: reconcile: %w", errors.Join(errs...))
	}
	return nil
}

// Create declares spec and reconciles, returning the new canvas.
func (m *Manager) Create(ctx context.Context, spec Spec) (*Canvas, error) {
	if err := m.Declare(spec); err != nil {
		return nil, err
	}
	if err := m.Reconcile(ctx); err != nil {
		return nil, err
	}
	c, ok := m.Canvas(spec.Name)
	if !ok {
		return nil, fmt.Errorf("canvas %q: removed while creating", spec.Name)
	}
	return c, nil
}

// Canvas returns the materialized canvas with the given name.
func (m *Manager) Canvas(name string) (*Canvas, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.canvases, func(c *Canvas) bool { return c.name == name })
	if i < 0 {
		return nil, false
	}
	return m.canvases[i], true
}

// Canvases returns the materialized canvases in declaration order.
func (m *Manager) Canvases() []*Canvas {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.canvases)
}

// Pending returns the names of declared canvases that are not ready.
func (m *Manager) Pending() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for _, name := range m.declared.Keys() {
		i := slices.IndexFunc(m.canvases, func(c *Canvas) bool { return c.name == name })
		if i < 0 || m.canvases[i].State() != Ready {
			names = append(names, name)
		}
	}
	return names
}

// CreateTemporary creates a hidden canvas of the given size, calls
// draw on it once ready, and returns it. It polls for readiness and
// fails with [ErrTimeout] after ReadyAttempts checks. The caller
// must [Manager.Release] the canvas.
func (m *Manager) CreateTemporary(ctx context.Context, width, height int, draw func(c *Canvas)) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", ErrInvalidArgument, width, height)
	}
	opts := host.DefaultOptions()
	opts.Width, opts.Height, opts.Hidden, opts.Alpha = width, height, true, true
	c, err := m.Create(ctx, Spec{Name: "temp-canvas-" + uuid.NewString(), Options: opts, OnReady: draw})
	if err != nil {
		return nil, err
	}
	t := time.NewTicker(m.ReadyInterval)
	defer t.Stop()
	for range max(m.ReadyAttempts, 1) {
		select {
		case <-c.Ready():
			return c, nil
		case <-ctx.Done():
			m.Release(ctx, c)
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	select {
	case <-c.Ready():
		return c, nil
	default:
	}
	m.Release(ctx, c)
	return nil, fmt.Errorf("canvas %q: %w", c.name, ErrTimeout)
}

// Release removes the canvas and disposes it.
func (m *Manager) Release(ctx context.Context, c *Canvas) {
	m.mu.Lock()
	m.declared.DeleteKey(c.name)
	m.canvases = slices.DeleteFunc(m.canvases, func(e *Canvas) bool { return e == c })
	m.mu.Unlock()
	c.Dispose(ctx)
}

// RenderAndExport draws on a temporary canvas of the given size and
// returns it encoded as mime with the given quality.
func (m *Manager) RenderAndExport(ctx context.Context, width, height int, draw func(c *Canvas), mime string, quality float64) (*host.BlobData, error) {
	if _, _, err := checkExport(mime, quality); err != nil {
		return nil, err
	}
	c, err := m.CreateTemporary(ctx, width, height, draw)
	if err != nil {
		return nil, err
	}
	defer m.Release(ctx, c)
	if err := c.Flush(ctx); err != nil {
		return nil, err
	}
	return c.ToBlob(ctx, mime, quality)
}

// ExportScaled exports src drawn scaled to width by height, then
// calls draw, if non-nil, with the smaller of the two scale factors.
func (m *Manager) ExportScaled(ctx context.Context, src *Canvas, width, height int, draw func(c *Canvas, scale float32), mime string, quality float64) (*host.BlobData, error) {
	sx := float32(width) / float32(src.Width())
	sy := float32(height) / float32(src.Height())
	return m.RenderAndExport(ctx, width, height, func(c *Canvas) {
		rc := c.Context()
		rc.Save()
		defer rc.Restore()
		rc.Scale(float64(sx), float64(sy))
		if errors.Log(rc.DrawImage(src, 0, 0)) != nil {
			return
		}
		if draw != nil {
			draw(c, math32.Min(sx, sy))
		}
	}, mime, quality)
}

// Size is one export size in [Manager.ExportMultipleSizes].
type Size struct {
	Width  int
	Height int

	// Suffix names the size, as in "thumb" or "2x".
	Suffix string
}

// ExportMultipleSizes renders draw at every size in parallel, passing
// the scale relative to base, and returns the blobs in size order.
func (m *Manager) ExportMultipleSizes(ctx context.Context, base Size, sizes []Size, draw func(c *Canvas, scale float32), mime string, quality float64) ([]*host.BlobData, error) {
	if base.Width <= 0 || base.Height <= 0 {
		return nil, fmt.Errorf("%w: base size %dx%d", ErrInvalidArgument, base.Width, base.Height)
	}
	blobs := make([]*host.BlobData, len(sizes))
	g, gctx := errgroup.WithContext(ctx)
	for i, sz := range sizes {
		scale := math32.Min(float32(sz.Width)/float32(base.Width), float32(sz.Height)/float32(base.Height))
		g.Go(func() error {
			b, err := m.RenderAndExport(gctx, sz.Width, sz.Height, func(c *Canvas) { draw(c, scale) }, mime, quality)
			if err != nil {
				return fmt.Errorf("export %s %dx%d: %w", sz.Suffix, sz.Width, sz.Height, err)
			}
			blobs[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blobs, nil
}

// Close disposes all canvases in parallel and forgets all declarations.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	cs := m.canvases
	m.canvases = nil
	m.declared = ordmap.New[string, Spec]()
	m.mu.Unlock()
	var g errgroup.Group
	for _, c := range cs {
		g.Go(func() error {
			c.Dispose(ctx)
			return nil
		})
	}
	return g.Wait()
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"testing"
	"time"

	"cogentcore.org/canvas2d/host/softhost"
	"cogentcore.org/canvas2d/interop/marshal"
	"cogentcore.org/canvas2d/interop/op"
	"cogentcore.org/canvas2d/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerReconcile(t *testing.T) {
	ctx := context.Background()
	hs := softhost.New()
	m := NewManager(hs)
	var added []string
	m.OnAdded = func(c *Canvas) { added = append(added, c.Name()) }

	require.NoError(t, m.Declare(spec("a", 10, 10)))
	require.NoError(t, m.Declare(spec("b", 10, 10)))
	assert.ErrorIs(t, m.Declare(spec("a", 10, 10)), ErrInvalidArgument)
	assert.ErrorIs(t, m.Declare(Spec{}), ErrInvalidArgument)
	assert.Equal(t, []string{"a", "b"}, m.Pending())

	require.NoError(t, m.Reconcile(ctx))
	assert.Equal(t, []string{"a", "b"}, added)
	a, ok := m.Canvas("a")
	require.True(t, ok)
	b, _ := m.Canvas("b")
	<-a.Ready()
	<-b.Ready()
	assert.Empty(t, m.Pending())

	assert.True(t, m.Remove("a"))
	assert.False(t, m.Remove("a"))
	require.NoError(t, m.Reconcile(ctx))
	assert.Equal(t, Disposed, a.State())
	_, ok = m.Canvas("a")
	assert.False(t, ok)
	assert.Len(t, m.Canvases(), 1)

	c, err := m.Create(ctx, spec("c", 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "c", c.Name())
	assert.Equal(t, []string{"a", "b", "c"}, added)

	require.NoError(t, m.Close(ctx))
	assert.Equal(t, Disposed, b.State())
	assert.Equal(t, Disposed, c.State())
	assert.Empty(t, m.Canvases())
}

func TestSharedPool(t *testing.T) {
	ctx := context.Background()
	m := NewManager(softhost.New())
	m.SharedPool = marshal.NewPool()
	a, err := m.Create(ctx, spec("a", 10, 10))
	require.NoError(t, err)
	b, err := m.Create(ctx, spec("b", 10, 10))
	require.NoError(t, err)
	assert.Same(t, a.Context().Pool(), b.Context().Pool())
	require.NoError(t, m.Close(ctx))
}

func TestRenderAndExport(t *testing.T) {
	ctx := context.Background()
	m := NewManager(softhost.New())
	b, err := m.RenderAndExport(ctx, 100, 100, func(c *Canvas) {
		c.Clear("red")
	}, "image/png", 1)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b.Data))
	require.NoError(t, err)
	assert.Equal(t, red, color.NRGBAModel.Convert(img.At(50, 50)))
	assert.Empty(t, m.Canvases(), "temporary canvas released")

	_, err = m.RenderAndExport(ctx, 10, 10, func(*Canvas) {}, "image/bmp", 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateTemporaryTimeout(t *testing.T) {
	hs := &silentHost{Host: softhost.New()}
	m := NewManager(hs)
	m.ReadyAttempts = 3
	m.ReadyInterval = time.Millisecond
	_, err := m.CreateTemporary(context.Background(), 10, 10, func(*Canvas) {})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, m.Canvases())
	assert.Equal(t, 1, hs.removed)
}

func TestExportScaled(t *testing.T) {
	ctx := context.Background()
	m := NewManager(softhost.New())
	src, err := m.Create(ctx, spec("src", 10, 10))
	require.NoError(t, err)
	<-src.Ready()
	src.Clear("red")
	require.NoError(t, src.Flush(ctx))

	var scale float32
	b, err := m.ExportScaled(ctx, src, 40, 20, func(c *Canvas, s float32) { scale = s }, "image/png", 1)
	require.NoError(t, err)
	assert.Equal(t, float32(2), scale)
	img, err := png.Decode(bytes.NewReader(b.Data))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, red, color.NRGBAModel.Convert(img.At(30, 15)))
}

func TestExportMultipleSizes(t *testing.T) {
	ctx := context.Background()
	m := NewManager(softhost.New())
	sizes := []Size{{Width: 250, Height: 250, Suffix: "small"}, {Width: 1000, Height: 500, Suffix: "wide"}}
	var scales [2]float32
	blobs, err := m.ExportMultipleSizes(ctx, Size{Width: 500, Height: 500}, sizes, func(c *Canvas, s float32) {
		if c.Width() == 250 {
			scales[0] = s
		} else {
			scales[1] = s
		}
		c.Clear("red")
	}, "image/png", 1)
	require.NoError(t, err)
	require.Len(t, blobs, 2)
	assert.Equal(t, [2]float32{0.5, 1}, scales)
	img, err := png.Decode(bytes.NewReader(blobs[1].Data))
	require.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())
}

func TestResponsive(t *testing.T) {
	w, h, s := CalculateDisplayDimensions(1280, 960, MaxDisplayWidth, MaxDisplayHeight)
	assert.Equal(t, []any{640, 480, float32(0.5)}, []any{w, h, s})
	w, h, s = CalculateDisplayDimensions(320, 200, MaxDisplayWidth, MaxDisplayHeight)
	assert.Equal(t, []any{320, 200, float32(1)}, []any{w, h, s})
	w, h, s = CalculateDisplayDimensions(600, 1200, MaxDisplayWidth, MaxDisplayHeight)
	assert.Equal(t, []any{240, 480, float32(0.4)}, []any{w, h, s})

	cfg := NewResponsiveConfig(1280, 960, MaxDisplayWidth, MaxDisplayHeight)
	assert.True(t, cfg.IsScaled)
	assert.Equal(t, float32(50), cfg.ScaleToDisplay(100))
	assert.Equal(t, float32(200), cfg.ScaleToActual(100))

	m := NewManager(softhost.New())
	c, err := m.CreateResponsive(context.Background(), Spec{Name: "r"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 640, c.Width())
	require.NoError(t, m.Close(context.Background()))
}

func TestHelpers(t *testing.T) {
	rc := render.NewContext(nopTarget{}, marshal.NewPool())
	DrawStyledText(rc, "a\nb\nc", 10, 100, TextStyle{Font: "bold 20px serif", Fill: "#fff", Shadow: DropShadow(4, 2)})
	var ys []float64
	for _, o := range rc.Queued() {
		if o.Method().String() == "fillText" {
			ys = append(ys, o.Args()[2].(float64))
		}
	}
	assert.Equal(t, []float64{76, 100, 124}, ys)
	assert.Equal(t, "10px sans-serif", rc.Font(), "state restored")

	assert.Equal(t, 24.0, FontSize("italic 24px Arial"))
	assert.Equal(t, 16.0, FontSize("1.5em Arial"))

	rc.Discard()
	require.NoError(t, DrawImageCentered(rc, marshal.ElementID("img"), 50, 50, 20, 10, ImageOptions{Rotation: 1, FlipHorizontal: true}))
	names := []string{}
	for _, o := range rc.Queued() {
		names = append(names, o.Name())
	}
	assert.Equal(t, []string{"save", "translate", "rotate", "scale", "drawImage", "restore"}, names)
	assert.Error(t, DrawImageCentered(rc, marshal.ElementID(""), 0, 0, 1, 1, ImageOptions{}))

	WithScale(rc, 2, func() { rc.FillRect(0, 0, 1, 1) })
	WithTransform(rc, func(rc *render.Context) { rc.Translate(1, 1) }, func() {})
}

type nopTarget struct{}

func (nopTarget) ProcessBatch(context.Context, []op.Op) error { return nil }

func (nopTarget) DirectCall(context.Context, op.Methods, ...any) (any, error) { return nil, nil }

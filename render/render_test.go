// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"sync"
	"testing"

	"cogentcore.org/canvas2d/interop/marshal"
	"cogentcore.org/canvas2d/interop/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]op.Op
	err     error
	direct  func(method op.Methods, args []any) (any, error)
}

func (r *recorder) ProcessBatch(ctx context.Context, ops []op.Op) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, ops)
	return r.err
}

func (r *recorder) DirectCall(ctx context.Context, method op.Methods, args ...any) (any, error) {
	if r.direct == nil {
		return nil, nil
	}
	return r.direct(method, args)
}

func names(ops []op.Op) []string {
	n := make([]string, len(ops))
	for i, o := range ops {
		n[i] = o.Name()
	}
	return n
}

func TestPropertyMirror(t *testing.T) {
	c := NewContext(&recorder{}, nil)
	assert.Equal(t, "#000000", c.FillStyle())
	assert.Equal(t, 1.0, c.LineWidth())
	assert.Equal(t, "10px sans-serif", c.Font())
	assert.True(t, c.ImageSmoothingEnabled())

	c.SetFillStyle("red")
	c.SetLineWidth(4)
	c.SetLineCap(CapRound)
	c.SetFont("16px serif")
	c.SetGlobalAlpha(0.5)
	c.SetImageSmoothingEnabled(false)
	c.SetShadowBlur(3)
	c.SetStrokeColor(color.RGBA{0, 0, 255, 255})

	assert.Equal(t, "red", c.FillStyle())
	assert.Equal(t, "#0000ff", c.StrokeStyle())
	assert.Equal(t, 4.0, c.LineWidth())
	assert.Equal(t, CapRound, c.LineCap())
	assert.Equal(t, "16px serif", c.Font())
	assert.Equal(t, 0.5, c.GlobalAlpha())
	assert.False(t, c.ImageSmoothingEnabled())
	assert.Equal(t, 3.0, c.ShadowBlur())

	ops := c.Queued()
	require.Len(t, ops, 8)
	for _, o := range ops {
		assert.True(t, o.IsProperty())
	}
	assert.Equal(t, "lineCap", ops[2].Name())
	assert.Equal(t, "round", ops[2].Value())
}

func TestFlushFIFO(t *testing.T) {
	rec := &recorder{}
	c := NewContext(rec, nil)
	c.SetFillStyle("red")
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(10, 10)
	c.Stroke()
	c.FillRect(0, 0, 100, 100)
	assert.Equal(t, 6, c.Pending())

	require.NoError(t, c.Flush(context.Background()))
	assert.Equal(t, 0, c.Pending())
	require.Len(t, rec.batches, 1)
	assert.Equal(t, []string{"fillStyle", "beginPath", "moveTo", "lineTo", "stroke", "fillRect"}, names(rec.batches[0]))

	require.NoError(t, c.Flush(context.Background()))
	assert.Len(t, rec.batches, 1, "empty queue sends nothing")
}

func TestFlushClearsOnError(t *testing.T) {
	rec := &recorder{err: errors.New("gone")}
	c := NewContext(rec, nil)
	c.FillRect(0, 0, 1, 1)
	assert.Error(t, c.Flush(context.Background()))
	assert.Equal(t, 0, c.Pending())

	rec.err = nil
	c.ClearRect(0, 0, 1, 1)
	require.NoError(t, c.Flush(context.Background()))
	require.Len(t, rec.batches, 2)
	assert.Equal(t, []string{"clearRect"}, names(rec.batches[1]))
}

func TestGradientDedup(t *testing.T) {
	rec := &recorder{}
	c := NewContext(rec, nil)
	for range 3 {
		g := c.CreateLinearGradient(0, 0, 100, 0)
		require.NoError(t, g.AddColorStop(0, "red"))
		require.NoError(t, g.AddColorStop(1, "blue"))
		c.SetFillGradient(g)
		c.FillRect(0, 0, 100, 100)
		require.NoError(t, c.Flush(context.Background()))
	}
	creates, stops := 0, 0
	for _, b := range rec.batches {
		for _, o := range b {
			switch o.Method() {
			case op.CreateLinearGradient:
				creates++
			case op.AddColorStop:
				stops++
			}
		}
	}
	assert.Equal(t, 1, creates)
	assert.Equal(t, 2, stops)

	g1 := c.CreateLinearGradient(0, 0, 100, 0)
	g2 := c.CreateLinearGradient(0, 0, 0, 100)
	g3 := c.CreateRadialGradient(0, 0, 100, 0, 0, 0)
	assert.NotEqual(t, g1.Reference(), g2.Reference())
	assert.NotEqual(t, g1.Reference(), g3.Reference())
	assert.Same(t, g1, c.CreateLinearGradient(0, 0, 100, 0))
	assert.Equal(t, []ColorStop{{0, "red"}, {1, "blue"}}, g1.Stops())
	assert.Equal(t, g1, c.FillStyle())

	assert.ErrorIs(t, g1.AddColorStop(1.5, "red"), op.ErrInvalidArgument)
	assert.ErrorIs(t, g1.AddColorStop(0.5, "notacolor"), op.ErrInvalidArgument)
}

func TestGradientNaNArgs(t *testing.T) {
	c := NewContext(&recorder{}, nil)
	g := c.CreateLinearGradient(0, 0, math.NaN(), 0)
	assert.Same(t, g, c.CreateLinearGradient(0, 0, math.NaN(), 0))
	assert.Equal(t, 1, c.Pending())
}

func TestGate(t *testing.T) {
	errClosed := errors.New("closed")
	var mu sync.Mutex
	gateErr := errClosed
	rec := &recorder{}
	c := NewContext(rec, nil)
	c.SetGate(func() error {
		mu.Lock()
		defer mu.Unlock()
		return gateErr
	})
	ctx := context.Background()

	c.SetFillStyle("red")
	c.FillRect(0, 0, 10, 10)
	c.Save()
	c.SetLineDash(1, 2)
	c.PutImageData(image.NewNRGBA(image.Rect(0, 0, 1, 1)), 0, 0)
	p := c.NewPath2D("M 0 0 h 1")
	c.FillPath(p, NonZero)
	g := c.CreateLinearGradient(0, 0, 1, 0)
	assert.ErrorIs(t, g.AddColorStop(0, "red"), errClosed)
	_, err := c.CreatePattern(marshal.ElementID("img"), Repeat)
	assert.ErrorIs(t, err, errClosed)

	assert.Equal(t, 0, c.Pending())
	assert.Equal(t, "#000000", c.FillStyle())
	assert.Empty(t, c.LineDash())
	assert.ErrorIs(t, c.Flush(ctx), errClosed)
	_, err = c.MeasureText(ctx, "x")
	assert.ErrorIs(t, err, errClosed)
	assert.Empty(t, rec.batches)

	mu.Lock()
	gateErr = nil
	mu.Unlock()
	c.FillRect(0, 0, 10, 10)
	require.NoError(t, c.Flush(ctx))
	assert.Len(t, rec.batches, 1)
}

func TestResetState(t *testing.T) {
	c := NewContext(&recorder{}, nil)
	c.SetFillStyle("red")
	c.Save()
	c.SetLineWidth(3)
	c.ResetState()
	assert.Equal(t, DefaultState().FillStyle, c.FillStyle())
	assert.Equal(t, 1.0, c.LineWidth())
	c.Restore()
	assert.Equal(t, 1.0, c.LineWidth(), "saved states are dropped")
}

func TestDrawImage(t *testing.T) {
	c := NewContext(&recorder{}, nil)
	err := c.DrawImage(marshal.ElementID(""), 0, 0)
	assert.ErrorIs(t, err, marshal.ErrMissingElementID)
	assert.Equal(t, 0, c.Pending())

	img := marshal.ElementID("sprite")
	require.NoError(t, c.DrawImage(img, 1, 2))
	require.NoError(t, c.DrawImageScaled(img, 1, 2, 3, 4))
	require.NoError(t, c.DrawImageSub(img, 0, 0, 8, 8, 1, 2, 3, 4))
	ops := c.Queued()
	require.Len(t, ops, 3)
	assert.Len(t, ops[0].Args(), 3)
	assert.Len(t, ops[1].Args(), 5)
	assert.Len(t, ops[2].Args(), 9)
	assert.Equal(t, marshal.Reference{ID: "sprite", IsElementRef: true}, ops[0].Args()[0])
}

func TestPatternAndPath(t *testing.T) {
	c := NewContext(&recorder{}, nil)
	p, err := c.CreatePattern(marshal.ElementID("tile"), "")
	require.NoError(t, err)
	p2, err := c.CreatePattern(marshal.ElementID("tile"), Repeat)
	require.NoError(t, err)
	assert.Same(t, p, p2)
	p.SetTransform(Matrix{A: 2, D: 2})
	p.SetTransform(Matrix{A: 2, D: 2})
	c.SetFillPattern(p)

	path := c.NewPath2D("M 0 0 L 10 0 L 10 10 Z")
	assert.Same(t, path, c.NewPath2D("M 0 0 L 10 0 L 10 10 Z"))
	c.FillPath(path, EvenOdd)

	ops := c.Queued()
	assert.Equal(t, []string{"createPattern", "setTransform", "fillStyle", "Path2D", "fill"}, names(ops))
	target, ok := ops[1].Target()
	require.True(t, ok)
	assert.Equal(t, "DOMMatrix", target.ClassInitializer)
	assert.Equal(t, op.PatternSetTransform, ops[1].Method())
	target, ok = ops[3].Target()
	require.True(t, ok)
	assert.Equal(t, "Path2D", target.ClassInitializer)
	assert.Equal(t, []any{path.Reference(), "evenodd"}, ops[4].Args())
}

func TestSaveRestore(t *testing.T) {
	c := NewContext(&recorder{}, nil)
	c.SetFillStyle("red")
	c.SetLineDash(4, 2)
	c.Save()
	c.SetFillStyle("blue")
	c.SetLineDash()
	assert.Equal(t, "blue", c.FillStyle())
	assert.Empty(t, c.LineDash())
	c.Restore()
	assert.Equal(t, "red", c.FillStyle())
	assert.Equal(t, []float64{4, 2}, c.LineDash())
	c.Restore()
	assert.Equal(t, "red", c.FillStyle())
	assert.Equal(t, 7, c.Pending())
}

func TestPutImageData(t *testing.T) {
	c := NewContext(&recorder{}, nil)
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{255, 0, 0, 255})
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)
	c.PutImageData(sub, 5, 6)
	ops := c.Queued()
	require.Len(t, ops, 1)
	args := ops[0].Args()
	pix := args[0].([]byte)
	assert.Len(t, pix, 2*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, pix[:4])
	assert.Equal(t, []any{2.0, 2.0, 5.0, 6.0}, args[1:])
}

func TestDirectCalls(t *testing.T) {
	rec := &recorder{direct: func(method op.Methods, args []any) (any, error) {
		switch method {
		case op.MeasureText:
			return map[string]any{"width": 42.0}, nil
		case op.GetTransform:
			return map[string]any{"a": 2.0, "b": 0.0, "c": 0.0, "d": 2.0, "e": 5.0, "f": 6.0}, nil
		case op.IsPointInPath:
			return true, nil
		case op.GetImageData:
			return map[string]any{"width": 1.0, "height": 1.0, "data": "/wAA/w=="}, nil
		}
		return nil, errors.New("unexpected")
	}}
	c := NewContext(rec, nil)
	ctx := context.Background()
	c.FillRect(0, 0, 1, 1)

	tm, err := c.MeasureText(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, 42.0, tm.Width)

	m, err := c.GetTransform(ctx)
	require.NoError(t, err)
	assert.Equal(t, Matrix{A: 2, D: 2, E: 5, F: 6}, m)

	in, err := c.IsPointInPath(ctx, 1, 1, EvenOdd)
	require.NoError(t, err)
	assert.True(t, in)

	img, err := c.GetImageData(ctx, 0, 0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(0, 0))

	_, err = c.IsPointInStroke(ctx, 0, 0)
	assert.Error(t, err)
	_, err = c.DirectCall(ctx, op.MeasureText)
	assert.ErrorIs(t, err, op.ErrInvalidArgument)
	_, err = c.DirectCall(ctx, op.FillRect, 0, 0, 1, 1)
	assert.ErrorIs(t, err, op.ErrInvalidArgument)

	assert.Equal(t, 1, c.Pending(), "direct calls bypass the queue")
	assert.Empty(t, rec.batches)
}

func TestMatrix(t *testing.T) {
	tr := Matrix{A: 1, D: 1, E: 10, F: 20}
	sc := Matrix{A: 2, D: 3}
	x, y := tr.Mul(sc).Apply(1, 1)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 23.0, y)
	assert.Equal(t, sc, Identity().Mul(sc))
}

func TestConcurrentEnqueue(t *testing.T) {
	rec := &recorder{}
	c := NewContext(rec, nil)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				c.FillRect(float64(i), float64(j), 1, 1)
			}
		}()
	}
	wg.Wait()
	require.NoError(t, c.Flush(context.Background()))
	assert.Len(t, rec.batches[0], 400)
}

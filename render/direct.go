// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"encoding/json"
	"fmt"
	"image"

	"cogentcore.org/canvas2d/interop/op"
)

// Matrix is a 2D affine transform [a c e; b d f; 0 0 1].
type Matrix struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
	E float64 `json:"e"`
	F float64 `json:"f"`
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Mul returns m * n, which applies n first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// TextMetrics are the measurements of a piece of text.
type TextMetrics struct {
	Width                    float64 `json:"width"`
	ActualBoundingBoxLeft    float64 `json:"actualBoundingBoxLeft"`
	ActualBoundingBoxRight   float64 `json:"actualBoundingBoxRight"`
	ActualBoundingBoxAscent  float64 `json:"actualBoundingBoxAscent"`
	ActualBoundingBoxDescent float64 `json:"actualBoundingBoxDescent"`
	FontBoundingBoxAscent    float64 `json:"fontBoundingBoxAscent"`
	FontBoundingBoxDescent   float64 `json:"fontBoundingBoxDescent"`
}

// ImageData is the wire form of pixel data read back from the host.
type ImageData struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []byte `json:"data"`
}

// Image returns the pixels as a non-premultiplied image.
func (d *ImageData) Image() (*image.NRGBA, error) {
	if len(d.Data) != d.Width*d.Height*4 {
		return nil, fmt.Errorf("render: image data has %d bytes for %dx%d", len(d.Data), d.Width, d.Height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	copy(img.Pix, d.Data)
	return img, nil
}

// DirectCall invokes method on the host immediately, bypassing the
// queue, and returns its JSON-decoded result. Queued operations are
// not flushed first. Only methods with a direct signature are accepted.
func (c *Context) DirectCall(ctx context.Context, method op.Methods, args ...any) (any, error) {
	if !method.Signature().Direct {
		return nil, fmt.Errorf("%w: %s is not a direct call", op.ErrInvalidArgument, method)
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	o, err := op.MethodCall(method, args...)
	if err != nil {
		return nil, err
	}
	return c.target.DirectCall(ctx, method, o.Args()...)
}

// decodeResult converts a generic JSON result into dst.
func decodeResult(res any, dst any) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// MeasureText measures text with the font applied on the host.
func (c *Context) MeasureText(ctx context.Context, text string) (TextMetrics, error) {
	var tm TextMetrics
	res, err := c.DirectCall(ctx, op.MeasureText, text)
	if err != nil {
		return tm, err
	}
	err = decodeResult(res, &tm)
	return tm, err
}

// GetImageData reads back the pixels of the given rectangle.
func (c *Context) GetImageData(ctx context.Context, sx, sy, sw, sh int) (*image.NRGBA, error) {
	res, err := c.DirectCall(ctx, op.GetImageData, sx, sy, sw, sh)
	if err != nil {
		return nil, err
	}
	var d ImageData
	if err := decodeResult(res, &d); err != nil {
		return nil, err
	}
	return d.Image()
}

// IsPointInPath returns whether (x, y) is inside the current path.
func (c *Context) IsPointInPath(ctx context.Context, x, y float64, rule ...FillRules) (bool, error) {
	args := []any{x, y}
	if len(rule) > 0 {
		args = append(args, string(rule[0]))
	}
	res, err := c.DirectCall(ctx, op.IsPointInPath, args...)
	if err != nil {
		return false, err
	}
	b, _ := res.(bool)
	return b, nil
}

// IsPointInStroke returns whether (x, y) is on the stroke of the current path.
func (c *Context) IsPointInStroke(ctx context.Context, x, y float64) (bool, error) {
	res, err := c.DirectCall(ctx, op.IsPointInStroke, x, y)
	if err != nil {
		return false, err
	}
	b, _ := res.(bool)
	return b, nil
}

// GetTransform returns the current transform on the host.
func (c *Context) GetTransform(ctx context.Context) (Matrix, error) {
	m := Identity()
	res, err := c.DirectCall(ctx, op.GetTransform)
	if err != nil {
		return m, err
	}
	err = decodeResult(res, &m)
	return m, err
}

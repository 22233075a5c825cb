// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/interop/marshal"
	"cogentcore.org/canvas2d/interop/op"
)

// FillRect fills the rectangle at (x, y) of size w by h.
func (c *Context) FillRect(x, y, w, h float64) {
	c.call(op.FillRect, x, y, w, h)
}

// StrokeRect strokes the outline of the rectangle at (x, y) of size w by h.
func (c *Context) StrokeRect(x, y, w, h float64) {
	c.call(op.StrokeRect, x, y, w, h)
}

// ClearRect sets the pixels in the rectangle to transparent black.
func (c *Context) ClearRect(x, y, w, h float64) {
	c.call(op.ClearRect, x, y, w, h)
}

// BeginPath starts a new current path.
func (c *Context) BeginPath() { c.call(op.BeginPath) }

// ClosePath adds a line back to the start of the current subpath.
func (c *Context) ClosePath() { c.call(op.ClosePath) }

// MoveTo starts a new subpath at (x, y).
func (c *Context) MoveTo(x, y float64) { c.call(op.MoveTo, x, y) }

// LineTo adds a line to (x, y).
func (c *Context) LineTo(x, y float64) { c.call(op.LineTo, x, y) }

// BezierCurveTo adds a cubic Bézier curve to (x, y).
func (c *Context) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.call(op.BezierCurveTo, cp1x, cp1y, cp2x, cp2y, x, y)
}

// QuadraticCurveTo adds a quadratic Bézier curve to (x, y).
func (c *Context) QuadraticCurveTo(cpx, cpy, x, y float64) {
	c.call(op.QuadraticCurveTo, cpx, cpy, x, y)
}

// Arc adds a circular arc centered at (x, y), with angles in radians.
func (c *Context) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) {
	if counterclockwise {
		c.call(op.Arc, x, y, radius, startAngle, endAngle, true)
		return
	}
	c.call(op.Arc, x, y, radius, startAngle, endAngle)
}

// ArcTo adds an arc of the given radius tangent to the lines through (x1, y1) and (x2, y2).
func (c *Context) ArcTo(x1, y1, x2, y2, radius float64) {
	c.call(op.ArcTo, x1, y1, x2, y2, radius)
}

// Ellipse adds an elliptical arc centered at (x, y), with angles in radians.
func (c *Context) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterclockwise bool) {
	if counterclockwise {
		c.call(op.Ellipse, x, y, radiusX, radiusY, rotation, startAngle, endAngle, true)
		return
	}
	c.call(op.Ellipse, x, y, radiusX, radiusY, rotation, startAngle, endAngle)
}

// Rect adds a closed rectangle subpath.
func (c *Context) Rect(x, y, w, h float64) { c.call(op.Rect, x, y, w, h) }

// RoundRect adds a rounded rectangle. Radii follow the host rules:
// one value for all corners, or up to four values clockwise from top-left.
func (c *Context) RoundRect(x, y, w, h float64, radii ...float64) {
	if len(radii) == 0 {
		c.call(op.RoundRect, x, y, w, h)
		return
	}
	c.call(op.RoundRect, x, y, w, h, radii)
}

// Fill fills the current path, with the nonzero rule unless given.
func (c *Context) Fill(rule ...FillRules) {
	if len(rule) > 0 {
		c.call(op.Fill, string(rule[0]))
		return
	}
	c.call(op.Fill)
}

// Stroke strokes the current path.
func (c *Context) Stroke() { c.call(op.Stroke) }

// Clip intersects the clip region with the current path.
func (c *Context) Clip(rule ...FillRules) {
	if len(rule) > 0 {
		c.call(op.Clip, string(rule[0]))
		return
	}
	c.call(op.Clip)
}

// FillPath fills the given path object.
func (c *Context) FillPath(p *Path2D, rule ...FillRules) {
	if len(rule) > 0 {
		c.call(op.Fill, p.ref, string(rule[0]))
		return
	}
	c.call(op.Fill, p.ref)
}

// StrokePath strokes the given path object.
func (c *Context) StrokePath(p *Path2D) { c.call(op.Stroke, p.ref) }

// ClipPath intersects the clip region with the given path object.
func (c *Context) ClipPath(p *Path2D, rule ...FillRules) {
	if len(rule) > 0 {
		c.call(op.Clip, p.ref, string(rule[0]))
		return
	}
	c.call(op.Clip, p.ref)
}

// FillText draws text at (x, y), scaled to maxWidth if given.
func (c *Context) FillText(text string, x, y float64, maxWidth ...float64) {
	if len(maxWidth) > 0 {
		c.call(op.FillText, text, x, y, maxWidth[0])
		return
	}
	c.call(op.FillText, text, x, y)
}

// StrokeText strokes text at (x, y), scaled to maxWidth if given.
func (c *Context) StrokeText(text string, x, y float64, maxWidth ...float64) {
	if len(maxWidth) > 0 {
		c.call(op.StrokeText, text, x, y, maxWidth[0])
		return
	}
	c.call(op.StrokeText, text, x, y)
}

// DrawImage draws the element at its natural size at (dx, dy).
func (c *Context) DrawImage(el marshal.Element, dx, dy float64) error {
	ref, err := c.element(el)
	if err != nil {
		return err
	}
	c.call(op.DrawImage, ref, dx, dy)
	return nil
}

// DrawImageScaled draws the element scaled into the destination rectangle.
func (c *Context) DrawImageScaled(el marshal.Element, dx, dy, dw, dh float64) error {
	ref, err := c.element(el)
	if err != nil {
		return err
	}
	c.call(op.DrawImage, ref, dx, dy, dw, dh)
	return nil
}

// DrawImageSub draws the source rectangle of the element scaled into
// the destination rectangle.
func (c *Context) DrawImageSub(el marshal.Element, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	ref, err := c.element(el)
	if err != nil {
		return err
	}
	c.call(op.DrawImage, ref, sx, sy, sw, sh, dx, dy, dw, dh)
	return nil
}

// Save pushes the current state, both on the host and in the mirror.
func (c *Context) Save() {
	o := op.MustMethodCall(op.Save)
	if c.refused(o) {
		return
	}
	c.mu.Lock()
	s := c.state
	s.LineDash = append([]float64(nil), s.LineDash...)
	c.saved = append(c.saved, s)
	c.push(o)
	c.mu.Unlock()
}

// Restore pops the last saved state. Without a saved state it only
// forwards the call, which the host ignores.
func (c *Context) Restore() {
	o := op.MustMethodCall(op.Restore)
	if c.refused(o) {
		return
	}
	c.mu.Lock()
	if n := len(c.saved); n > 0 {
		c.state = c.saved[n-1]
		c.saved = c.saved[:n-1]
	}
	c.push(o)
	c.mu.Unlock()
}

// Translate moves the origin by (x, y).
func (c *Context) Translate(x, y float64) { c.call(op.Translate, x, y) }

// Rotate rotates by angle radians clockwise.
func (c *Context) Rotate(angle float64) { c.call(op.Rotate, angle) }

// Scale scales the x and y axes.
func (c *Context) Scale(x, y float64) { c.call(op.Scale, x, y) }

// Transform multiplies the current transform by the matrix
// [a c e; b d f; 0 0 1].
func (c *Context) Transform(a, b, cc, d, e, f float64) {
	c.call(op.Transform, a, b, cc, d, e, f)
}

// SetTransform replaces the current transform.
func (c *Context) SetTransform(a, b, cc, d, e, f float64) {
	c.call(op.SetTransform, a, b, cc, d, e, f)
}

// SetMatrix replaces the current transform with m.
func (c *Context) SetMatrix(m Matrix) {
	c.SetTransform(m.A, m.B, m.C, m.D, m.E, m.F)
}

// ResetTransform sets the transform back to the identity.
func (c *Context) ResetTransform() { c.call(op.ResetTransform) }

// PutImageData writes the pixels of img at (dx, dy), bypassing
// transforms, compositing and clipping.
func (c *Context) PutImageData(img *image.NRGBA, dx, dy float64) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, 0, w*h*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		pix = append(pix, img.Pix[i:i+w*4]...)
	}
	o, err := op.MethodCall(op.PutImageData, pix, w, h, dx, dy)
	if errors.Log(err) != nil || c.refused(o) {
		return
	}
	c.mu.Lock()
	c.push(o)
	c.mu.Unlock()
}

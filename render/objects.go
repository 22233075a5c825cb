// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"cogentcore.org/canvas2d/colors"
	"cogentcore.org/canvas2d/interop/marshal"
	"cogentcore.org/canvas2d/interop/op"
)

// ColorStop is one color stop of a gradient.
type ColorStop struct {
	Offset float64
	Color  string
}

// Gradient is a host gradient object. Equal creation arguments on the
// same context return the same Gradient, so drawing it every frame does
// not create new host objects.
type Gradient struct {
	ctx   *Context
	ref   marshal.Reference
	kind  op.Methods
	stops []ColorStop
}

// Reference returns the host reference of the gradient.
func (g *Gradient) Reference() marshal.Reference { return g.ref }

// Kind returns the creation method of the gradient.
func (g *Gradient) Kind() op.Methods { return g.kind }

// Stops returns the color stops applied so far, in order.
func (g *Gradient) Stops() []ColorStop {
	g.ctx.mu.Lock()
	defer g.ctx.mu.Unlock()
	return append([]ColorStop(nil), g.stops...)
}

// AddColorStop adds a color stop at offset in [0, 1] with a CSS color.
// A stop already applied to the host object is not sent again.
func (g *Gradient) AddColorStop(offset float64, css string) error {
	if math.IsNaN(offset) || offset < 0 || offset > 1 {
		return fmt.Errorf("%w: color stop offset %g outside [0, 1]", op.ErrInvalidArgument, offset)
	}
	if _, err := colors.FromString(css); err != nil {
		return fmt.Errorf("%w: %w", op.ErrInvalidArgument, err)
	}
	stop := ColorStop{Offset: offset, Color: css}
	if err := g.ctx.Err(); err != nil {
		return err
	}
	o, err := op.MethodCall(op.AddColorStop, g.ref, offset, css)
	if err != nil {
		return err
	}
	g.ctx.mu.Lock()
	defer g.ctx.mu.Unlock()
	for _, s := range g.stops {
		if s == stop {
			return nil
		}
	}
	g.stops = append(g.stops, stop)
	g.ctx.push(o)
	return nil
}

// AddColorStopColor is like [Gradient.AddColorStop] with a Go color.
func (g *Gradient) AddColorStopColor(offset float64, clr color.Color) error {
	return g.AddColorStop(offset, colors.AsCSS(clr))
}

// CreateLinearGradient returns the linear gradient along the line
// from (x0, y0) to (x1, y1). While the context refuses operations the
// gradient has no host object, and adding stops to it fails.
func (c *Context) CreateLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return c.gradient(op.CreateLinearGradient, x0, y0, x1, y1)
}

// CreateRadialGradient returns the radial gradient between the circle
// at (x0, y0) with radius r0 and the circle at (x1, y1) with radius r1.
func (c *Context) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) *Gradient {
	return c.gradient(op.CreateRadialGradient, x0, y0, r0, x1, y1, r1)
}

// CreateConicGradient returns the conic gradient around (x, y)
// starting at startAngle radians.
func (c *Context) CreateConicGradient(startAngle, x, y float64) *Gradient {
	return c.gradient(op.CreateConicGradient, startAngle, x, y)
}

// object returns the reference for the object built by method from args,
// and the previously registered object if this context already has it.
func (c *Context) object(method op.Methods, args ...any) (marshal.Reference, bool, any) {
	ref, created := c.pool.Next(append([]any{method.String()}, args...)...)
	existing, ok := c.objects[ref.ID]
	return ref, created || !ok, existing
}

func (c *Context) gradient(kind op.Methods, args ...float64) *Gradient {
	anys := make([]any, len(args))
	for i, a := range args {
		anys[i] = a
	}
	if err := c.Err(); err != nil {
		slog.Warn("render: gradient not created", "op", kind, "err", err)
		return &Gradient{ctx: c, kind: kind}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ref, create, existing := c.object(kind, anys...)
	if !create {
		return existing.(*Gradient)
	}
	g := &Gradient{ctx: c, ref: ref, kind: kind}
	c.objects[ref.ID] = g
	c.push(op.MustMethodCall(kind, append([]any{ref}, anys...)...))
	return g
}

// Pattern is a host pattern object built from an element.
type Pattern struct {
	ctx       *Context
	ref       marshal.Reference
	transform *Matrix
}

// Reference returns the host reference of the pattern.
func (p *Pattern) Reference() marshal.Reference { return p.ref }

// CreatePattern returns the pattern repeating the element.
func (c *Context) CreatePattern(el marshal.Element, repetition Repetitions) (*Pattern, error) {
	eref, err := c.element(el)
	if err != nil {
		return nil, err
	}
	if repetition == "" {
		repetition = Repeat
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ref, create, existing := c.object(op.CreatePattern, eref, string(repetition))
	if !create {
		return existing.(*Pattern), nil
	}
	p := &Pattern{ctx: c, ref: ref}
	c.objects[ref.ID] = p
	c.push(op.MustMethodCall(op.CreatePattern, ref, eref, string(repetition)))
	return p, nil
}

// SetTransform sets the pattern transform. Setting the transform
// already applied sends nothing.
func (p *Pattern) SetTransform(m Matrix) {
	ref := p.ctx.pool.WithClass(p.ref, "DOMMatrix")
	o := op.MustMethodCall(op.PatternSetTransform, ref, m.A, m.B, m.C, m.D, m.E, m.F)
	if p.ctx.refused(o) {
		return
	}
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	if p.transform != nil && *p.transform == m {
		return
	}
	p.transform = &m
	p.ctx.push(o)
}

// Path2D is a host path object built from SVG path data.
type Path2D struct {
	ref marshal.Reference
	svg string
}

// Reference returns the host reference of the path.
func (p *Path2D) Reference() marshal.Reference { return p.ref }

// SVG returns the path data of the path.
func (p *Path2D) SVG() string { return p.svg }

// NewPath2D returns the path object for the SVG path data,
// such as "M 10 10 h 80 v 80 h -80 Z". While the context refuses
// operations the path has no host object.
func (c *Context) NewPath2D(svg string) *Path2D {
	if err := c.Err(); err != nil {
		slog.Warn("render: path not created", "err", err)
		return &Path2D{svg: svg}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ref, create, existing := c.object(op.NewPath2D, svg)
	if !create {
		return existing.(*Path2D)
	}
	ref = c.pool.WithClass(ref, "Path2D")
	p := &Path2D{ref: ref, svg: svg}
	c.objects[ref.ID] = p
	if svg == "" {
		c.push(op.MustMethodCall(op.NewPath2D, ref))
	} else {
		c.push(op.MustMethodCall(op.NewPath2D, ref, svg))
	}
	return p
}

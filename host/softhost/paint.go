// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softhost

import (
	"image"
	"image/color"
	"math"
	"slices"

	"cogentcore.org/canvas2d/interop/op"
	"cogentcore.org/canvas2d/render"
	"github.com/gogpu/gg"
)

// colorStop is one stop of a gradient.
type colorStop struct {
	offset float64
	color  gg.RGBA
}

// gradient is a host gradient object, sampled in user space.
type gradient struct {
	kind  op.Methods
	args  []float64
	stops []colorStop
}

func (g *gradient) addStop(offset float64, c color.NRGBA) {
	s := colorStop{offset: offset, color: rgba(c)}
	i, _ := slices.BinarySearchFunc(g.stops, offset, func(s colorStop, o float64) int {
		if s.offset <= o {
			return -1
		}
		return 1
	})
	g.stops = slices.Insert(g.stops, i, s)
}

// at returns the gradient color at the user space point (x, y).
func (g *gradient) at(x, y float64) gg.RGBA {
	t, ok := g.param(x, y)
	if !ok || len(g.stops) == 0 {
		return gg.RGBA{}
	}
	return g.lookup(t)
}

func (g *gradient) param(x, y float64) (float64, bool) {
	a := g.args
	switch g.kind {
	case op.CreateLinearGradient:
		dx, dy := a[2]-a[0], a[3]-a[1]
		l2 := dx*dx + dy*dy
		if l2 == 0 {
			return 0, false
		}
		return ((x-a[0])*dx + (y-a[1])*dy) / l2, true
	case op.CreateRadialGradient:
		return radialParam(x, y, a[0], a[1], a[2], a[3], a[4], a[5])
	case op.CreateConicGradient:
		ang := math.Atan2(y-a[2], x-a[1]) - a[0]
		t := math.Mod(ang/(2*math.Pi), 1)
		if t < 0 {
			t++
		}
		return t, true
	}
	return 0, false
}

// radialParam solves for the largest t whose circle, interpolated
// between the start and end circles, passes through (x, y).
func radialParam(x, y, x0, y0, r0, x1, y1, r1 float64) (float64, bool) {
	cdx, cdy, dr := x1-x0, y1-y0, r1-r0
	pdx, pdy := x-x0, y-y0
	a := cdx*cdx + cdy*cdy - dr*dr
	b := pdx*cdx + pdy*cdy + r0*dr
	c := pdx*pdx + pdy*pdy - r0*r0
	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return 0, false
		}
		t := c / (2 * b)
		return t, r0+t*dr >= 0
	}
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1, t2 := (b+sq)/a, (b-sq)/a
	if t1 < t2 {
		t1, t2 = t2, t1
	}
	if r0+t1*dr >= 0 {
		return t1, true
	}
	if r0+t2*dr >= 0 {
		return t2, true
	}
	return 0, false
}

func (g *gradient) lookup(t float64) gg.RGBA {
	s := g.stops
	if t <= s[0].offset {
		return s[0].color
	}
	last := s[len(s)-1]
	if t >= last.offset {
		return last.color
	}
	for i := 1; i < len(s); i++ {
		if t < s[i].offset {
			a, b := s[i-1], s[i]
			f := (t - a.offset) / (b.offset - a.offset)
			return gg.RGBA{
				R: a.color.R + (b.color.R-a.color.R)*f,
				G: a.color.G + (b.color.G-a.color.G)*f,
				B: a.color.B + (b.color.B-a.color.B)*f,
				A: a.color.A + (b.color.A-a.color.A)*f,
			}
		}
	}
	return last.color
}

// pattern is a host pattern object over a snapshot of an image source.
type pattern struct {
	img        *image.NRGBA
	repetition render.Repetitions
	inverse    render.Matrix
}

func (p *pattern) setTransform(m render.Matrix) {
	p.inverse = invert(m)
}

// at returns the pattern color at the user space point (x, y).
func (p *pattern) at(x, y float64) gg.RGBA {
	x, y = p.inverse.Apply(x, y)
	b := p.img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return gg.RGBA{}
	}
	ix, iy := int(math.Floor(x)), int(math.Floor(y))
	rx := p.repetition == render.Repeat || p.repetition == render.RepeatX
	ry := p.repetition == render.Repeat || p.repetition == render.RepeatY
	if rx {
		ix = ((ix % w) + w) % w
	} else if ix < 0 || ix >= w {
		return gg.RGBA{}
	}
	if ry {
		iy = ((iy % h) + h) % h
	} else if iy < 0 || iy >= h {
		return gg.RGBA{}
	}
	return rgba(p.img.NRGBAAt(b.Min.X+ix, b.Min.Y+iy))
}

// style is a fill or stroke style: a color, gradient or pattern.
type style struct {
	color color.NRGBA
	grad  *gradient
	pat   *pattern
}

// brush returns the gg brush painting s through the inverse of ctm
// with the global alpha applied.
func (s style) brush(ctm render.Matrix, alpha float64) gg.Brush {
	switch {
	case s.grad != nil:
		g, inv := s.grad, invert(ctm)
		return gg.NewCustomBrush(func(x, y float64) gg.RGBA {
			ux, uy := inv.Apply(x, y)
			return withAlpha(g.at(ux, uy), alpha)
		})
	case s.pat != nil:
		p, inv := s.pat, invert(ctm)
		return gg.NewCustomBrush(func(x, y float64) gg.RGBA {
			ux, uy := inv.Apply(x, y)
			return withAlpha(p.at(ux, uy), alpha)
		})
	}
	return gg.Solid(withAlpha(rgba(s.color), alpha))
}

// solid returns a representative color of s, for text.
func (s style) solid(alpha float64) color.NRGBA {
	c := rgba(s.color)
	switch {
	case s.grad != nil && len(s.grad.stops) > 0:
		c = s.grad.stops[0].color
	case s.pat != nil:
		c = gg.RGBA{A: 1}
	}
	c = withAlpha(c, alpha)
	return color.NRGBA{R: unit(c.R), G: unit(c.G), B: unit(c.B), A: unit(c.A)}
}

// rgba converts a straight alpha color to gg's straight float form.
func rgba(c color.NRGBA) gg.RGBA {
	return gg.RGBA{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255}
}

func withAlpha(c gg.RGBA, alpha float64) gg.RGBA {
	c.A *= alpha
	return c
}

func unit(v float64) uint8 {
	return uint8(math.Round(max(0, min(1, v)) * 255))
}

// invert returns the inverse of m, or the identity when m is singular.
func invert(m render.Matrix) render.Matrix {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return render.Identity()
	}
	return render.Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det,
	}
}

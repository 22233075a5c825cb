// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softhost

import (
	"math"

	"cogentcore.org/canvas2d/render"
	"github.com/gogpu/gg"
)

type segKind uint8

const (
	segMove segKind = iota
	segLine
	segQuad
	segCubic
	segClose
)

// segment is one path element; points are in device space except
// for [path2D] objects, whose points are in user space.
type segment struct {
	kind segKind
	pts  [3]gg.Point
}

// path is a path in the order it was built.
type path struct {
	segs    []segment
	start   gg.Point
	current gg.Point
	open    bool
}

func (p *path) reset() {
	p.segs = p.segs[:0]
	p.open = false
}

func (p *path) moveTo(pt gg.Point) {
	p.segs = append(p.segs, segment{kind: segMove, pts: [3]gg.Point{pt}})
	p.start, p.current, p.open = pt, pt, true
}

// ensure starts a subpath at pt if there is no current point.
func (p *path) ensure(pt gg.Point) {
	if !p.open {
		p.moveTo(pt)
	}
}

func (p *path) lineTo(pt gg.Point) {
	if !p.open {
		p.moveTo(pt)
		return
	}
	p.segs = append(p.segs, segment{kind: segLine, pts: [3]gg.Point{pt}})
	p.current = pt
}

func (p *path) quadTo(c, pt gg.Point) {
	p.ensure(c)
	p.segs = append(p.segs, segment{kind: segQuad, pts: [3]gg.Point{c, pt}})
	p.current = pt
}

func (p *path) cubicTo(c1, c2, pt gg.Point) {
	p.ensure(c1)
	p.segs = append(p.segs, segment{kind: segCubic, pts: [3]gg.Point{c1, c2, pt}})
	p.current = pt
}

func (p *path) close() {
	if !p.open {
		return
	}
	p.segs = append(p.segs, segment{kind: segClose})
	p.current = p.start
}

// transformed returns a copy of p with every point mapped by m.
func (p *path) transformed(m render.Matrix) *path {
	r := &path{segs: make([]segment, len(p.segs)), open: p.open}
	for i, s := range p.segs {
		r.segs[i].kind = s.kind
		for j := range s.pts {
			r.segs[i].pts[j] = apply(m, s.pts[j])
		}
	}
	r.start = apply(m, p.start)
	r.current = apply(m, p.current)
	return r
}

// appendPath adds the segments of o to p.
func (p *path) appendPath(o *path) {
	p.segs = append(p.segs, o.segs...)
	if o.open {
		p.start, p.current, p.open = o.start, o.current, true
	}
}

// replay builds the path on dc, which must have an identity transform.
func (p *path) replay(dc *gg.Context, dx, dy float64) {
	dc.ClearPath()
	for _, s := range p.segs {
		a, b, c := s.pts[0], s.pts[1], s.pts[2]
		switch s.kind {
		case segMove:
			dc.MoveTo(a.X+dx, a.Y+dy)
		case segLine:
			dc.LineTo(a.X+dx, a.Y+dy)
		case segQuad:
			dc.QuadraticTo(a.X+dx, a.Y+dy, b.X+dx, b.Y+dy)
		case segCubic:
			dc.CubicTo(a.X+dx, a.Y+dy, b.X+dx, b.Y+dy, c.X+dx, c.Y+dy)
		case segClose:
			dc.ClosePath()
		}
	}
}

func apply(m render.Matrix, p gg.Point) gg.Point {
	x, y := m.Apply(p.X, p.Y)
	return gg.Point{X: x, Y: y}
}

// arc appends a circular or elliptical arc in user space, mapped by m,
// as cubic Bézier segments of at most a quarter turn each.
func (p *path) arc(m render.Matrix, cx, cy, rx, ry, rotation, a0, a1 float64, ccw bool) {
	sweep := arcSweep(a0, a1, ccw)
	cosr, sinr := math.Cos(rotation), math.Sin(rotation)
	pt := func(a float64) gg.Point {
		x, y := rx*math.Cos(a), ry*math.Sin(a)
		return apply(m, gg.Point{X: cx + x*cosr - y*sinr, Y: cy + x*sinr + y*cosr})
	}
	deriv := func(a float64) gg.Point {
		x, y := -rx*math.Sin(a), ry*math.Cos(a)
		return gg.Point{X: x*cosr - y*sinr, Y: x*sinr + y*cosr}
	}
	p.lineTo(pt(a0))
	if sweep == 0 {
		return
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := range n {
		s := a0 + float64(i)*step
		e := s + step
		ds, de := deriv(s), deriv(e)
		us := unapply(m, pt(s))
		ue := unapply(m, pt(e))
		c1 := apply(m, gg.Point{X: us.X + k*ds.X, Y: us.Y + k*ds.Y})
		c2 := apply(m, gg.Point{X: ue.X - k*de.X, Y: ue.Y - k*de.Y})
		p.cubicTo(c1, c2, pt(e))
	}
}

// arcSweep returns the signed sweep from a0 to a1, following the
// canvas rules: a full turn or more draws a full circle.
func arcSweep(a0, a1 float64, ccw bool) float64 {
	const tau = 2 * math.Pi
	d := a1 - a0
	if !ccw {
		if d >= tau {
			return tau
		}
		d = math.Mod(d, tau)
		if d < 0 {
			d += tau
		}
		return d
	}
	if -d >= tau {
		return -tau
	}
	d = math.Mod(d, tau)
	if d > 0 {
		d -= tau
	}
	return d
}

func unapply(m render.Matrix, p gg.Point) gg.Point {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return p
	}
	x, y := p.X-m.E, p.Y-m.F
	return gg.Point{X: (m.D*x - m.C*y) / det, Y: (-m.B*x + m.A*y) / det}
}

// arcTo appends the arcTo construction in user space: a line toward
// (x1, y1) ending in an arc of the given radius tangent to both lines.
func (p *path) arcTo(m render.Matrix, x1, y1, x2, y2, r float64) {
	if !p.open {
		p.moveTo(apply(m, gg.Point{X: x1, Y: y1}))
		return
	}
	p0 := unapply(m, p.current)
	v1x, v1y := p0.X-x1, p0.Y-y1
	v2x, v2y := x2-x1, y2-y1
	l1, l2 := math.Hypot(v1x, v1y), math.Hypot(v2x, v2y)
	cross := v1x*v2y - v1y*v2x
	if r == 0 || l1 == 0 || l2 == 0 || math.Abs(cross) < 1e-9 {
		p.lineTo(apply(m, gg.Point{X: x1, Y: y1}))
		return
	}
	v1x, v1y = v1x/l1, v1y/l1
	v2x, v2y = v2x/l2, v2y/l2
	angle := math.Acos(max(-1, min(1, v1x*v2x+v1y*v2y)))
	dist := r / math.Tan(angle/2)
	t1 := gg.Point{X: x1 + v1x*dist, Y: y1 + v1y*dist}
	t2 := gg.Point{X: x1 + v2x*dist, Y: y1 + v2y*dist}
	bx, by := v1x+v2x, v1y+v2y
	bl := math.Hypot(bx, by)
	cd := r / math.Sin(angle/2)
	cx, cy := x1+bx/bl*cd, y1+by/bl*cd
	a0 := math.Atan2(t1.Y-cy, t1.X-cx)
	a1 := math.Atan2(t2.Y-cy, t2.X-cx)
	p.lineTo(apply(m, t1))
	p.arc(m, cx, cy, r, r, 0, a0, a1, cross > 0)
}

// rect appends a closed rectangle subpath.
func (p *path) rect(m render.Matrix, x, y, w, h float64) {
	p.moveTo(apply(m, gg.Point{X: x, Y: y}))
	p.lineTo(apply(m, gg.Point{X: x + w, Y: y}))
	p.lineTo(apply(m, gg.Point{X: x + w, Y: y + h}))
	p.lineTo(apply(m, gg.Point{X: x, Y: y + h}))
	p.close()
	p.moveTo(apply(m, gg.Point{X: x, Y: y}))
}

// roundRect appends a rounded rectangle with radii clockwise from top-left.
func (p *path) roundRect(m render.Matrix, x, y, w, h float64, radii []float64) {
	var r [4]float64
	switch len(radii) {
	case 0:
	case 1:
		r = [4]float64{radii[0], radii[0], radii[0], radii[0]}
	case 2:
		r = [4]float64{radii[0], radii[1], radii[0], radii[1]}
	case 3:
		r = [4]float64{radii[0], radii[1], radii[2], radii[1]}
	default:
		r = [4]float64{radii[0], radii[1], radii[2], radii[3]}
	}
	lim := min(math.Abs(w), math.Abs(h)) / 2
	for i := range r {
		r[i] = max(0, min(r[i], lim))
	}
	const hp = math.Pi / 2
	p.moveTo(apply(m, gg.Point{X: x + r[0], Y: y}))
	p.lineTo(apply(m, gg.Point{X: x + w - r[1], Y: y}))
	p.arc(m, x+w-r[1], y+r[1], r[1], r[1], 0, -hp, 0, false)
	p.lineTo(apply(m, gg.Point{X: x + w, Y: y + h - r[2]}))
	p.arc(m, x+w-r[2], y+h-r[2], r[2], r[2], 0, 0, hp, false)
	p.lineTo(apply(m, gg.Point{X: x + r[3], Y: y + h}))
	p.arc(m, x+r[3], y+h-r[3], r[3], r[3], 0, hp, math.Pi, false)
	p.lineTo(apply(m, gg.Point{X: x, Y: y + r[0]}))
	p.arc(m, x+r[0], y+r[0], r[0], r[0], 0, math.Pi, 3*hp, false)
	p.close()
	p.moveTo(apply(m, gg.Point{X: x, Y: y}))
}

// flatten returns the path as closed polygons with curves subdivided.
func (p *path) flatten() [][]gg.Point {
	var polys [][]gg.Point
	var cur []gg.Point
	flush := func() {
		if len(cur) > 1 {
			polys = append(polys, cur)
		}
		cur = nil
	}
	var last gg.Point
	const steps = 16
	for _, s := range p.segs {
		switch s.kind {
		case segMove:
			flush()
			cur = []gg.Point{s.pts[0]}
			last = s.pts[0]
		case segLine:
			cur = append(cur, s.pts[0])
			last = s.pts[0]
		case segQuad:
			for i := 1; i <= steps; i++ {
				t := float64(i) / steps
				u := 1 - t
				cur = append(cur, gg.Point{
					X: u*u*last.X + 2*u*t*s.pts[0].X + t*t*s.pts[1].X,
					Y: u*u*last.Y + 2*u*t*s.pts[0].Y + t*t*s.pts[1].Y,
				})
			}
			last = s.pts[1]
		case segCubic:
			for i := 1; i <= steps; i++ {
				t := float64(i) / steps
				u := 1 - t
				cur = append(cur, gg.Point{
					X: u*u*u*last.X + 3*u*u*t*s.pts[0].X + 3*u*t*t*s.pts[1].X + t*t*t*s.pts[2].X,
					Y: u*u*u*last.Y + 3*u*u*t*s.pts[0].Y + 3*u*t*t*s.pts[1].Y + t*t*t*s.pts[2].Y,
				})
			}
			last = s.pts[2]
		case segClose:
			if len(cur) > 0 {
				last = cur[0]
				flush()
				cur = []gg.Point{last}
			}
		}
	}
	flush()
	return polys
}

// contains returns whether pt is inside the path under the fill rule.
func (p *path) contains(pt gg.Point, evenOdd bool) bool {
	winding := 0
	for _, poly := range p.flatten() {
		n := len(poly)
		for i := range n {
			a, b := poly[i], poly[(i+1)%n]
			if a.Y <= pt.Y {
				if b.Y > pt.Y && cross(a, b, pt) > 0 {
					winding++
				}
			} else if b.Y <= pt.Y && cross(a, b, pt) < 0 {
				winding--
			}
		}
	}
	if evenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

func cross(a, b, p gg.Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// nearStroke returns whether pt is within half of width of any segment.
func (p *path) nearStroke(pt gg.Point, width float64) bool {
	hw := width / 2
	for _, poly := range p.flatten() {
		for i := 1; i < len(poly); i++ {
			if segDist(pt, poly[i-1], poly[i]) <= hw {
				return true
			}
		}
	}
	return false
}

func segDist(p, a, b gg.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := max(0, min(1, ((p.X-a.X)*dx+(p.Y-a.Y)*dy)/l2))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

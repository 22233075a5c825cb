// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softhost

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cogentcore.org/canvas2d/render"
	"github.com/gogpu/gg"
)

// parseSVGPath parses SVG path data into a user space path.
// Parsing stops at the first error, keeping what came before,
// as browsers do.
func parseSVGPath(d string) (*path, error) {
	p := &path{}
	sc := svgScanner{s: d}
	id := render.Identity()
	var cmd byte
	var cur, start, lastCtrl gg.Point
	var prev byte
	for {
		sc.skipSpace()
		if sc.done() {
			return p, nil
		}
		if c := sc.peek(); isCommand(c) {
			cmd = c
			sc.i++
		} else if cmd == 0 {
			return p, fmt.Errorf("softhost: path data must start with a command at %d", sc.i)
		}
		rel := cmd >= 'a'
		base := gg.Point{}
		if rel {
			base = cur
		}
		abs := func(x, y float64) gg.Point { return gg.Point{X: base.X + x, Y: base.Y + y} }
		switch cmd | 0x20 {
		case 'z':
			p.close()
			cur = start
			prev = 'z'
			continue
		case 'm':
			x, y, err := sc.pair()
			if err != nil {
				return p, err
			}
			cur = abs(x, y)
			start = cur
			p.moveTo(cur)
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
			prev = 'm'
			continue
		case 'l':
			x, y, err := sc.pair()
			if err != nil {
				return p, err
			}
			cur = abs(x, y)
			p.lineTo(cur)
		case 'h':
			x, err := sc.number()
			if err != nil {
				return p, err
			}
			if rel {
				cur.X += x
			} else {
				cur.X = x
			}
			p.lineTo(cur)
		case 'v':
			y, err := sc.number()
			if err != nil {
				return p, err
			}
			if rel {
				cur.Y += y
			} else {
				cur.Y = y
			}
			p.lineTo(cur)
		case 'c', 's':
			var c1 gg.Point
			if cmd|0x20 == 'c' {
				x, y, err := sc.pair()
				if err != nil {
					return p, err
				}
				c1 = abs(x, y)
			} else if prev == 'c' || prev == 's' {
				c1 = gg.Point{X: 2*cur.X - lastCtrl.X, Y: 2*cur.Y - lastCtrl.Y}
			} else {
				c1 = cur
			}
			x2, y2, err := sc.pair()
			if err != nil {
				return p, err
			}
			x, y, err := sc.pair()
			if err != nil {
				return p, err
			}
			c2 := abs(x2, y2)
			cur = abs(x, y)
			p.cubicTo(c1, c2, cur)
			lastCtrl = c2
		case 'q', 't':
			var c gg.Point
			if cmd|0x20 == 'q' {
				x, y, err := sc.pair()
				if err != nil {
					return p, err
				}
				c = abs(x, y)
			} else if prev == 'q' || prev == 't' {
				c = gg.Point{X: 2*cur.X - lastCtrl.X, Y: 2*cur.Y - lastCtrl.Y}
			} else {
				c = cur
			}
			x, y, err := sc.pair()
			if err != nil {
				return p, err
			}
			cur = abs(x, y)
			p.quadTo(c, cur)
			lastCtrl = c
		case 'a':
			var v [7]float64
			for i := range v {
				var err error
				if i == 3 || i == 4 {
					v[i], err = sc.flag()
				} else {
					v[i], err = sc.number()
				}
				if err != nil {
					return p, err
				}
			}
			end := abs(v[5], v[6])
			svgArc(p, id, cur, end, v[0], v[1], v[2]*math.Pi/180, v[3] != 0, v[4] != 0)
			cur = end
		default:
			return p, fmt.Errorf("softhost: unknown path command %q", cmd)
		}
		prev = cmd | 0x20
	}
}

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0
}

// svgArc converts an endpoint parameterized arc to a center
// parameterized one and appends it.
func svgArc(p *path, m render.Matrix, from, to gg.Point, rx, ry, phi float64, large, sweep bool) {
	if from == to {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.lineTo(to)
		return
	}
	cosp, sinp := math.Cos(phi), math.Sin(phi)
	dx, dy := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1 := cosp*dx + sinp*dy
	y1 := -sinp*dx + cosp*dy
	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx, ry = rx*s, ry*s
	}
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	co := math.Sqrt(max(0, num/den))
	if large == sweep {
		co = -co
	}
	cx1, cy1 := co*rx*y1/ry, -co*ry*x1/rx
	cx := cosp*cx1 - sinp*cy1 + (from.X+to.X)/2
	cy := sinp*cx1 + cosp*cy1 + (from.Y+to.Y)/2
	angle := func(ux, uy, vx, vy float64) float64 {
		return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	}
	ux, uy := (x1-cx1)/rx, (y1-cy1)/ry
	vx, vy := (-x1-cx1)/rx, (-y1-cy1)/ry
	a0 := angle(1, 0, ux, uy)
	da := angle(ux, uy, vx, vy)
	if !sweep && da > 0 {
		da -= 2 * math.Pi
	} else if sweep && da < 0 {
		da += 2 * math.Pi
	}
	p.arc(m, cx, cy, rx, ry, phi, a0, a0+da, !sweep)
}

type svgScanner struct {
	s string
	i int
}

func (sc *svgScanner) done() bool { return sc.i >= len(sc.s) }

func (sc *svgScanner) peek() byte { return sc.s[sc.i] }

func (sc *svgScanner) skipSpace() {
	for sc.i < len(sc.s) {
		switch sc.s[sc.i] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			sc.i++
		default:
			return
		}
	}
}

func (sc *svgScanner) number() (float64, error) {
	sc.skipSpace()
	start := sc.i
	if sc.i < len(sc.s) && (sc.s[sc.i] == '+' || sc.s[sc.i] == '-') {
		sc.i++
	}
	dot, exp := false, false
scan:
	for sc.i < len(sc.s) {
		c := sc.s[sc.i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !dot && !exp:
			dot = true
		case (c == 'e' || c == 'E') && !exp && sc.i > start:
			exp = true
			if sc.i+1 < len(sc.s) && (sc.s[sc.i+1] == '+' || sc.s[sc.i+1] == '-') {
				sc.i++
			}
		default:
			break scan
		}
		sc.i++
	}
	v, err := strconv.ParseFloat(sc.s[start:sc.i], 64)
	if err != nil {
		return 0, fmt.Errorf("softhost: bad number in path data at %d", start)
	}
	return v, nil
}

func (sc *svgScanner) pair() (float64, float64, error) {
	x, err := sc.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := sc.number()
	return x, y, err
}

// flag reads an arc flag, which may be written without a separator.
func (sc *svgScanner) flag() (float64, error) {
	sc.skipSpace()
	if sc.done() {
		return 0, fmt.Errorf("softhost: missing arc flag")
	}
	switch sc.s[sc.i] {
	case '0':
		sc.i++
		return 0, nil
	case '1':
		sc.i++
		return 1, nil
	}
	return 0, fmt.Errorf("softhost: bad arc flag at %d", sc.i)
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softhost

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"
	"sync"

	"cogentcore.org/canvas2d/colors"
	"cogentcore.org/canvas2d/host"
	"cogentcore.org/canvas2d/interop/marshal"
	"cogentcore.org/canvas2d/interop/op"
	"cogentcore.org/canvas2d/render"
	"github.com/anthonynsimon/bild/blur"
	"github.com/gogpu/gg"
)

// errIndexSize is the error of arguments outside their allowed range.
var errIndexSize = errors.New("softhost: index or size is negative or greater than the allowed amount")

// state is the drawing state saved and restored by save and restore.
type state struct {
	ctm          render.Matrix
	fill         style
	stroke       style
	lineWidth    float64
	lineCap      render.LineCaps
	lineJoin     render.LineJoins
	miterLimit   float64
	dash         []float64
	dashOffset   float64
	font         string
	textAlign    render.TextAligns
	textBaseline render.TextBaselines
	direction    render.Directions
	alpha        float64
	composite    render.CompositeOps
	shadowColor  color.NRGBA
	shadowBlur   float64
	shadowX      float64
	shadowY      float64
	smoothing    bool

	// other holds properties that are stored but not rendered.
	other map[op.Props]any
}

func defaultState() state {
	return state{
		ctm:          render.Identity(),
		fill:         style{color: color.NRGBA{A: 255}},
		stroke:       style{color: color.NRGBA{A: 255}},
		lineWidth:    1,
		lineCap:      render.CapButt,
		lineJoin:     render.JoinMiter,
		miterLimit:   10,
		font:         "10px sans-serif",
		textAlign:    render.AlignStart,
		textBaseline: render.BaselineAlphabetic,
		direction:    render.DirectionInherit,
		alpha:        1,
		composite:    render.SourceOver,
		smoothing:    true,
	}
}

func (st state) clone() state {
	st.dash = append([]float64(nil), st.dash...)
	if st.other != nil {
		o := make(map[op.Props]any, len(st.other))
		for k, v := range st.other {
			o[k] = v
		}
		st.other = o
	}
	return st
}

// scale is the factor by which the transform scales lengths.
func (st *state) scale() float64 {
	return math.Sqrt(math.Abs(st.ctm.A*st.ctm.D - st.ctm.B*st.ctm.C))
}

// Surface is one software canvas with its 2D context.
type Surface struct {
	id   string
	host *Host
	opts host.Options
	recv host.Receiver

	mu      sync.Mutex
	dc      *gg.Context
	st      state
	saved   []state
	path    path
	objects map[string]any
}

func newSurface(h *Host, id string, opts host.Options, recv host.Receiver) *Surface {
	w, ht := max(opts.Width, 1), max(opts.Height, 1)
	s := &Surface{id: id, host: h, opts: opts, recv: recv, objects: map[string]any{}}
	s.dc = gg.NewContext(w, ht)
	s.reset()
	return s
}

// reset restores the default state and clears the pixels.
func (s *Surface) reset() {
	s.st = defaultState()
	s.saved = nil
	s.path.reset()
	s.dc.ResetClip()
	s.clearAll()
}

func (s *Surface) clearAll() {
	if s.opts.Alpha {
		s.dc.Clear()
	} else {
		s.dc.ClearWithColor(gg.RGBA{A: 1})
	}
}

// ID returns the canvas id.
func (s *Surface) ID() string { return s.id }

// Size returns the canvas size in pixels.
func (s *Surface) Size() image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return image.Pt(s.dc.Width(), s.dc.Height())
}

// Image returns a snapshot of the canvas pixels.
func (s *Surface) Image() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Surface) snapshot() *image.NRGBA {
	src := s.dc.Image()
	img := image.NewNRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return img
}

// ElementID returns the canvas id, so surfaces can be image sources.
func (s *Surface) ElementID() string { return s.id }

// replay applies ops in order; failing ops are logged and skipped.
func (s *Surface) replay(ops []op.Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range ops {
		if err := s.apply(o); err != nil {
			slog.Warn("softhost: operation failed", "canvas", s.id, "op", o.Name(), "err", err)
		}
	}
}

func (s *Surface) apply(o op.Op) error {
	switch {
	case o.IsProperty():
		return s.setProp(o.Prop(), o.Value())
	case o.IsHandleCall():
		return s.handle(o.Method(), o.Args())
	}
	return s.call(o.Method(), o.Args())
}

func num(args []any, i int) float64 {
	if i < len(args) {
		if f, ok := args[i].(float64); ok {
			return f
		}
	}
	return 0
}

func str(args []any, i int) string {
	if i < len(args) {
		if s, ok := args[i].(string); ok {
			return s
		}
	}
	return ""
}

func ref(args []any, i int) (marshal.Reference, bool) {
	if i < len(args) {
		if r, ok := args[i].(marshal.Reference); ok {
			return r, true
		}
	}
	return marshal.Reference{}, false
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s *Surface) styleOf(v any) (style, error) {
	switch v := v.(type) {
	case string:
		c, err := colors.FromString(v)
		if err != nil {
			return style{}, err
		}
		return style{color: c}, nil
	case marshal.Reference:
		switch obj := s.objects[v.ID].(type) {
		case *gradient:
			return style{grad: obj}, nil
		case *pattern:
			return style{pat: obj}, nil
		}
		return style{}, fmt.Errorf("softhost: object %s is not a gradient or pattern", v.ID)
	}
	return style{}, fmt.Errorf("softhost: bad style %v", v)
}

// setProp sets a context property; invalid values are ignored.
func (s *Surface) setProp(p op.Props, v any) error {
	st := &s.st
	f, _ := v.(float64)
	sv, _ := v.(string)
	switch p {
	case op.FillStyle, op.StrokeStyle:
		sty, err := s.styleOf(v)
		if err != nil {
			return err
		}
		if p == op.FillStyle {
			st.fill = sty
		} else {
			st.stroke = sty
		}
	case op.LineWidth:
		if f > 0 && finite(f) {
			st.lineWidth = f
		}
	case op.MiterLimit:
		if f > 0 && finite(f) {
			st.miterLimit = f
		}
	case op.LineDashOffset:
		if finite(f) {
			st.dashOffset = f
		}
	case op.LineCap:
		st.lineCap = render.LineCaps(sv)
	case op.LineJoin:
		st.lineJoin = render.LineJoins(sv)
	case op.Font:
		st.font = sv
	case op.TextAlign:
		st.textAlign = render.TextAligns(sv)
	case op.TextBaseline:
		st.textBaseline = render.TextBaselines(sv)
	case op.Direction:
		st.direction = render.Directions(sv)
	case op.GlobalAlpha:
		if f >= 0 && f <= 1 {
			st.alpha = f
		}
	case op.GlobalCompositeOperation:
		st.composite = render.CompositeOps(sv)
	case op.ShadowColor:
		c, err := colors.FromString(sv)
		if err != nil {
			return err
		}
		st.shadowColor = c
	case op.ShadowBlur:
		if f >= 0 && finite(f) {
			st.shadowBlur = f
		}
	case op.ShadowOffsetX:
		if finite(f) {
			st.shadowX = f
		}
	case op.ShadowOffsetY:
		if finite(f) {
			st.shadowY = f
		}
	case op.ImageSmoothingEnabled:
		b, _ := v.(bool)
		st.smoothing = b
	default:
		if !p.IsValid() {
			return fmt.Errorf("softhost: unknown property %v", p)
		}
		if st.other == nil {
			st.other = map[op.Props]any{}
		}
		st.other[p] = v
	}
	return nil
}

// handle runs a call on a host object, creating it when the target
// does not name an existing object with that method.
func (s *Surface) handle(m op.Methods, args []any) error {
	r, _ := ref(args, 0)
	rest := args[1:]
	switch m {
	case op.CreateLinearGradient, op.CreateRadialGradient, op.CreateConicGradient:
		g := &gradient{kind: m, args: make([]float64, len(rest))}
		for i := range rest {
			g.args[i] = num(rest, i)
		}
		if !finite(g.args...) {
			return fmt.Errorf("softhost: %v: non-finite argument", m)
		}
		if m == op.CreateRadialGradient && (g.args[2] < 0 || g.args[5] < 0) {
			return errIndexSize
		}
		s.objects[r.ID] = g
	case op.CreatePattern:
		er, ok := ref(rest, 0)
		if !ok {
			return fmt.Errorf("softhost: createPattern without an image source")
		}
		img, err := s.host.source(er.ID, s)
		if err != nil {
			return err
		}
		rep := render.Repetitions(str(rest, 1))
		if rep == "" {
			rep = render.Repeat
		}
		s.objects[r.ID] = &pattern{img: img, repetition: rep, inverse: render.Identity()}
	case op.AddColorStop:
		g, ok := s.objects[r.ID].(*gradient)
		if !ok {
			return fmt.Errorf("softhost: object %s is not a gradient", r.ID)
		}
		off := num(rest, 0)
		if !finite(off) || off < 0 || off > 1 {
			return errIndexSize
		}
		c, err := colors.FromString(str(rest, 1))
		if err != nil {
			return err
		}
		g.addStop(off, c)
	case op.PatternSetTransform:
		p, ok := s.objects[r.ID].(*pattern)
		if !ok {
			return fmt.Errorf("softhost: object %s is not a pattern", r.ID)
		}
		p.setTransform(render.Matrix{A: num(rest, 0), B: num(rest, 1), C: num(rest, 2), D: num(rest, 3), E: num(rest, 4), F: num(rest, 5)})
	case op.NewPath2D:
		p, err := parseSVGPath(str(rest, 0))
		s.objects[r.ID] = p
		return err
	default:
		return fmt.Errorf("softhost: %v is not a method of host objects", m)
	}
	return nil
}

// pt maps the user space point (x, y) to device space.
func (s *Surface) pt(x, y float64) gg.Point {
	return apply(s.st.ctm, gg.Point{X: x, Y: y})
}

// target returns the path named by args[0] in device space, or the
// current path, with the remaining arguments.
func (s *Surface) target(args []any) (*path, []any, error) {
	if r, ok := ref(args, 0); ok {
		p, ok := s.objects[r.ID].(*path)
		if !ok {
			return nil, nil, fmt.Errorf("softhost: object %s is not a path", r.ID)
		}
		return p.transformed(s.st.ctm), args[1:], nil
	}
	return &s.path, args, nil
}

func (s *Surface) call(m op.Methods, args []any) error {
	st := &s.st
	n := func(i int) float64 { return num(args, i) }
	switch m {
	case op.FillRect, op.StrokeRect, op.ClearRect:
		if !finite(n(0), n(1), n(2), n(3)) {
			return nil
		}
		p := &path{}
		p.rect(st.ctm, n(0), n(1), n(2), n(3))
		switch m {
		case op.FillRect:
			return s.paint(p, st.fill, false, false)
		case op.StrokeRect:
			return s.paint(p, st.stroke, true, false)
		}
		s.clear(p)
	case op.BeginPath:
		s.path.reset()
	case op.ClosePath:
		s.path.close()
	case op.MoveTo:
		if finite(n(0), n(1)) {
			s.path.moveTo(s.pt(n(0), n(1)))
		}
	case op.LineTo:
		if finite(n(0), n(1)) {
			s.path.lineTo(s.pt(n(0), n(1)))
		}
	case op.BezierCurveTo:
		if finite(n(0), n(1), n(2), n(3), n(4), n(5)) {
			s.path.cubicTo(s.pt(n(0), n(1)), s.pt(n(2), n(3)), s.pt(n(4), n(5)))
		}
	case op.QuadraticCurveTo:
		if finite(n(0), n(1), n(2), n(3)) {
			s.path.quadTo(s.pt(n(0), n(1)), s.pt(n(2), n(3)))
		}
	case op.Arc:
		if n(2) < 0 {
			return errIndexSize
		}
		ccw, _ := args[len(args)-1].(bool)
		s.path.arc(st.ctm, n(0), n(1), n(2), n(2), 0, n(3), n(4), ccw)
	case op.ArcTo:
		if n(4) < 0 {
			return errIndexSize
		}
		s.path.arcTo(st.ctm, n(0), n(1), n(2), n(3), n(4))
	case op.Ellipse:
		if n(2) < 0 || n(3) < 0 {
			return errIndexSize
		}
		ccw, _ := args[len(args)-1].(bool)
		s.path.arc(st.ctm, n(0), n(1), n(2), n(3), n(4), n(5), n(6), ccw)
	case op.Rect:
		s.path.rect(st.ctm, n(0), n(1), n(2), n(3))
	case op.RoundRect:
		var radii []float64
		if len(args) > 4 {
			radii, _ = args[4].([]float64)
		}
		for _, r := range radii {
			if r < 0 {
				return errIndexSize
			}
		}
		s.path.roundRect(st.ctm, n(0), n(1), n(2), n(3), radii)
	case op.Fill, op.Clip:
		p, rest, err := s.target(args)
		if err != nil {
			return err
		}
		evenOdd := str(rest, 0) == string(render.EvenOdd)
		if m == op.Fill {
			return s.paint(p, st.fill, false, evenOdd)
		}
		s.clip(p, evenOdd)
	case op.Stroke:
		p, _, err := s.target(args)
		if err != nil {
			return err
		}
		return s.paint(p, st.stroke, true, false)
	case op.FillText, op.StrokeText:
		maxWidth := math.Inf(1)
		if len(args) > 3 {
			maxWidth = n(3)
		}
		return s.drawText(str(args, 0), n(1), n(2), maxWidth, m == op.StrokeText)
	case op.DrawImage:
		return s.drawImage(args)
	case op.Save:
		s.saved = append(s.saved, st.clone())
		s.dc.Push()
	case op.Restore:
		if k := len(s.saved); k > 0 {
			s.st = s.saved[k-1]
			s.saved = s.saved[:k-1]
			s.dc.Pop()
		}
	case op.Translate:
		st.ctm = st.ctm.Mul(render.Matrix{A: 1, D: 1, E: n(0), F: n(1)})
	case op.Rotate:
		sin, cos := math.Sincos(n(0))
		st.ctm = st.ctm.Mul(render.Matrix{A: cos, B: sin, C: -sin, D: cos})
	case op.Scale:
		st.ctm = st.ctm.Mul(render.Matrix{A: n(0), D: n(1)})
	case op.Transform, op.SetTransform:
		mt := render.Matrix{A: n(0), B: n(1), C: n(2), D: n(3), E: n(4), F: n(5)}
		if !finite(mt.A, mt.B, mt.C, mt.D, mt.E, mt.F) {
			return nil
		}
		if m == op.Transform {
			st.ctm = st.ctm.Mul(mt)
		} else {
			st.ctm = mt
		}
	case op.ResetTransform:
		st.ctm = render.Identity()
	case op.SetLineDash:
		var d []float64
		if len(args) > 0 {
			d, _ = args[0].([]float64)
		}
		for _, v := range d {
			if v < 0 || !finite(v) {
				return nil
			}
		}
		if len(d)%2 == 1 {
			d = append(d, d...)
		}
		st.dash = append([]float64(nil), d...)
	case op.PutImageData:
		pix, _ := args[0].([]byte)
		s.putImageData(pix, int(n(1)), int(n(2)), int(n(3)), int(n(4)))
	case op.MeasureText, op.GetImageData, op.IsPointInPath, op.IsPointInStroke, op.GetTransform:
		_, err := s.direct(m, args)
		return err
	default:
		return fmt.Errorf("softhost: unknown method %v", m)
	}
	return nil
}

// layer starts the compositing of the global composite operation
// and returns the function ending it. Operations gg cannot blend
// are drawn as source-over.
func (s *Surface) layer() func() {
	var mode gg.BlendMode
	switch s.st.composite {
	case render.Multiply:
		mode = gg.BlendMultiply
	case render.Screen:
		mode = gg.BlendScreen
	case render.Overlay:
		mode = gg.BlendOverlay
	default:
		return func() {}
	}
	s.dc.PushLayer(mode, 1)
	return s.dc.PopLayer
}

func (s *Surface) hasShadow() bool {
	st := &s.st
	return st.shadowColor.A > 0 && (st.shadowX != 0 || st.shadowY != 0 || st.shadowBlur > 0)
}

// paint fills or strokes p, which is in device space, with sty.
// The current path is left intact.
func (s *Surface) paint(p *path, sty style, stroke, evenOdd bool) error {
	st := &s.st
	dc := s.dc
	defer s.layer()()
	if evenOdd {
		dc.SetFillRule(gg.FillRuleEvenOdd)
	} else {
		dc.SetFillRule(gg.FillRuleNonZero)
	}
	if stroke {
		s.strokeStyle(dc)
	}
	do := func(b gg.Brush, dx, dy float64) error {
		p.replay(dc, dx, dy)
		if stroke {
			dc.SetStrokeBrush(b)
			return dc.Stroke()
		}
		dc.SetFillBrush(b)
		return dc.Fill()
	}
	if s.hasShadow() {
		sc := withAlpha(rgba(st.shadowColor), st.alpha)
		var err error
		if st.shadowBlur > 0 {
			err = s.blurredShadow(p, sc, stroke, evenOdd)
		} else {
			err = do(gg.Solid(sc), st.shadowX, st.shadowY)
		}
		if err != nil {
			return err
		}
	}
	return do(sty.brush(st.ctm, st.alpha), 0, 0)
}

// blurredShadow renders the offset shadow of p on a scratch layer,
// applies a gaussian blur of half the shadow blur, and paints the
// result through the current clip.
func (s *Surface) blurredShadow(p *path, c gg.RGBA, stroke, evenOdd bool) error {
	st := &s.st
	w, h := s.dc.Width(), s.dc.Height()
	tmp := gg.NewContext(w, h)
	defer tmp.Close()
	if evenOdd {
		tmp.SetFillRule(gg.FillRuleEvenOdd)
	}
	p.replay(tmp, st.shadowX, st.shadowY)
	var err error
	if stroke {
		s.strokeStyle(tmp)
		tmp.SetStrokeBrush(gg.Solid(c))
		err = tmp.Stroke()
	} else {
		tmp.SetFillBrush(gg.Solid(c))
		err = tmp.Fill()
	}
	if err != nil {
		return err
	}
	shadow := blur.Gaussian(tmp.Image(), st.shadowBlur/2)
	b := shadow.Bounds()
	brush := gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		px := image.Pt(b.Min.X+int(math.Floor(x)), b.Min.Y+int(math.Floor(y)))
		if !px.In(b) {
			return gg.RGBA{}
		}
		return rgba(color.NRGBAModel.Convert(shadow.RGBAAt(px.X, px.Y)).(color.NRGBA))
	})
	full := &path{}
	full.rect(render.Identity(), 0, 0, float64(w), float64(h))
	s.dc.SetFillRule(gg.FillRuleNonZero)
	full.replay(s.dc, 0, 0)
	s.dc.SetFillBrush(brush)
	err = s.dc.Fill()
	if evenOdd {
		s.dc.SetFillRule(gg.FillRuleEvenOdd)
	}
	return err
}

// strokeStyle sets the stroke parameters of the state on dc.
func (s *Surface) strokeStyle(dc *gg.Context) {
	st := &s.st
	k := st.scale()
	dc.SetLineWidth(st.lineWidth * k)
	dc.SetMiterLimit(st.miterLimit)
	switch st.lineCap {
	case render.CapRound:
		dc.SetLineCap(gg.LineCapRound)
	case render.CapSquare:
		dc.SetLineCap(gg.LineCapSquare)
	default:
		dc.SetLineCap(gg.LineCapButt)
	}
	switch st.lineJoin {
	case render.JoinRound:
		dc.SetLineJoin(gg.LineJoinRound)
	case render.JoinBevel:
		dc.SetLineJoin(gg.LineJoinBevel)
	default:
		dc.SetLineJoin(gg.LineJoinMiter)
	}
	if len(st.dash) == 0 {
		dc.ClearDash()
		return
	}
	d := make([]float64, len(st.dash))
	for i, v := range st.dash {
		d[i] = v * k
	}
	dc.SetDash(d...)
	dc.SetDashOffset(st.dashOffset * k)
}

func (s *Surface) clip(p *path, evenOdd bool) {
	if evenOdd {
		s.dc.SetFillRule(gg.FillRuleEvenOdd)
	} else {
		s.dc.SetFillRule(gg.FillRuleNonZero)
	}
	p.replay(s.dc, 0, 0)
	s.dc.Clip()
}

// clear sets the pixels inside p, which is in device space, to
// transparent black, or opaque black without an alpha channel.
func (s *Surface) clear(p *path) {
	w, h := s.dc.Width(), s.dc.Height()
	polys := p.flatten()
	if len(polys) == 0 {
		return
	}
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, q := range polys[0] {
		minX, maxX = min(minX, q.X), max(maxX, q.X)
		minY, maxY = min(minY, q.Y), max(maxY, q.Y)
	}
	axis := s.st.ctm.B == 0 && s.st.ctm.C == 0
	if axis && minX <= 0 && minY <= 0 && maxX >= float64(w) && maxY >= float64(h) {
		s.clearAll()
		return
	}
	c := gg.RGBA{}
	if !s.opts.Alpha {
		c.A = 1
	}
	x0, y0 := max(0, int(math.Floor(minX))), max(0, int(math.Floor(minY)))
	x1, y1 := min(w, int(math.Ceil(maxX))), min(h, int(math.Ceil(maxY)))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if p.contains(gg.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}, false) {
				s.dc.SetPixel(x, y, c)
			}
		}
	}
}

// putImageData writes straight alpha pixels, ignoring the transform,
// clip and compositing.
func (s *Surface) putImageData(pix []byte, w, h, dx, dy int) {
	if len(pix) < w*h*4 {
		return
	}
	for y := range h {
		for x := range w {
			i := (y*w + x) * 4
			c := rgba(color.NRGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]})
			if !s.opts.Alpha {
				c.A = 1
			}
			s.dc.SetPixel(dx+x, dy+y, gg.RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A})
		}
	}
}

// drawImage draws an image source through the transform as a
// rectangle painted with the scaled image.
func (s *Surface) drawImage(args []any) error {
	r, ok := ref(args, 0)
	if !ok {
		return fmt.Errorf("softhost: drawImage without an image source")
	}
	img, err := s.host.source(r.ID, s)
	if err != nil {
		return err
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	n := func(i int) float64 { return num(args, i) }
	sx, sy, sw, sh := 0.0, 0.0, iw, ih
	var dx, dy, dw, dh float64
	switch len(args) {
	case 3:
		dx, dy, dw, dh = n(1), n(2), iw, ih
	case 5:
		dx, dy, dw, dh = n(1), n(2), n(3), n(4)
	default:
		sx, sy, sw, sh = n(1), n(2), n(3), n(4)
		dx, dy, dw, dh = n(5), n(6), n(7), n(8)
	}
	if sw == 0 || sh == 0 || dw == 0 || dh == 0 || iw == 0 || ih == 0 {
		return nil
	}
	st := &s.st
	inv := invert(st.ctm)
	alpha := st.alpha
	smooth := st.smoothing
	brush := gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		ux, uy := inv.Apply(x, y)
		ix := sx + (ux-dx)*sw/dw
		iy := sy + (uy-dy)*sh/dh
		return withAlpha(sample(img, ix, iy, smooth), alpha)
	})
	p := &path{}
	p.rect(st.ctm, dx, dy, dw, dh)
	defer s.layer()()
	s.dc.SetFillRule(gg.FillRuleNonZero)
	p.replay(s.dc, 0, 0)
	s.dc.SetFillBrush(brush)
	return s.dc.Fill()
}

// sample returns the color of img at the continuous point (x, y),
// interpolated when smooth.
func sample(img *image.NRGBA, x, y float64, smooth bool) gg.RGBA {
	b := img.Bounds()
	at := func(ix, iy int) gg.RGBA {
		ix = max(0, min(b.Dx()-1, ix))
		iy = max(0, min(b.Dy()-1, iy))
		return rgba(img.NRGBAAt(b.Min.X+ix, b.Min.Y+iy))
	}
	if !smooth {
		return at(int(math.Floor(x)), int(math.Floor(y)))
	}
	fx, fy := x-0.5, y-0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := fx-float64(x0), fy-float64(y0)
	c00, c10, c01, c11 := at(x0, y0), at(x0+1, y0), at(x0, y0+1), at(x0+1, y0+1)
	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	mix := func(a, b gg.RGBA, t float64) gg.RGBA {
		return gg.RGBA{R: lerp(a.R, b.R, t), G: lerp(a.G, b.G, t), B: lerp(a.B, b.B, t), A: lerp(a.A, b.A, t)}
	}
	return mix(mix(c00, c10, tx), mix(c01, c11, tx), ty)
}

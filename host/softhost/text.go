// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softhost

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"cogentcore.org/canvas2d/interop/op"
	"cogentcore.org/canvas2d/render"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// face returns the face of the current font scaled by k.
func (s *Surface) face(k float64) (text.Face, error) {
	fs := parseFont(s.st.font)
	return s.host.fonts.Face(fs.name(s.host.fonts), fs.size*k)
}

// textOffset returns the offset from the anchor point to the start
// of the baseline for text of width w, following the alignment.
func (s *Surface) textOffset(face text.Face, w float64) (float64, float64) {
	st := &s.st
	rtl := st.direction == render.DirectionRTL
	var dx float64
	switch st.textAlign {
	case render.AlignRight:
		dx = -w
	case render.AlignCenter:
		dx = -w / 2
	case render.AlignEnd:
		if !rtl {
			dx = -w
		}
	case render.AlignStart:
		if rtl {
			dx = -w
		}
	}
	m := face.Metrics()
	var dy float64
	switch st.textBaseline {
	case render.BaselineTop:
		dy = m.Ascent
	case render.BaselineHanging:
		dy = m.Ascent * 0.8
	case render.BaselineMiddle:
		dy = (m.Ascent - m.Descent) / 2
	case render.BaselineIdeographic, render.BaselineBottom:
		dy = -m.Descent
	}
	return dx, dy
}

// drawText draws s at (x, y) in user space. Glyphs are drawn upright
// at the transformed anchor, scaled by the transform.
func (s *Surface) drawText(str string, x, y, maxWidth float64, stroke bool) error {
	st := &s.st
	if str == "" || !finite(x, y) || maxWidth <= 0 || math.IsNaN(maxWidth) {
		return nil
	}
	k := st.scale()
	if k == 0 {
		return nil
	}
	face, err := s.face(k)
	if err != nil {
		return err
	}
	w := face.Advance(str)
	if limit := maxWidth * k; w > limit {
		face, err = s.face(k * limit / w)
		if err != nil {
			return err
		}
		w = face.Advance(str)
	}
	dx, dy := s.textOffset(face, w)
	o := s.pt(x, y)
	sty := st.fill
	if stroke {
		sty = st.stroke
	}
	defer s.layer()()
	s.dc.SetFont(face)
	if s.hasShadow() {
		s.dc.SetColor(rgbaColor(withAlpha(rgba(st.shadowColor), st.alpha)))
		s.dc.DrawString(str, o.X+dx+st.shadowX, o.Y+dy+st.shadowY)
	}
	s.dc.SetColor(sty.solid(st.alpha))
	s.dc.DrawString(str, o.X+dx, o.Y+dy)
	return nil
}

func rgbaColor(c gg.RGBA) color.NRGBA {
	return color.NRGBA{R: unit(c.R), G: unit(c.G), B: unit(c.B), A: unit(c.A)}
}

// measureText measures s with the current font, untransformed.
func (s *Surface) measureText(str string) (render.TextMetrics, error) {
	var tm render.TextMetrics
	face, err := s.face(1)
	if err != nil {
		return tm, err
	}
	w := face.Advance(str)
	dx, dy := s.textOffset(face, w)
	m := face.Metrics()
	tm.Width = w
	tm.ActualBoundingBoxLeft = -dx
	tm.ActualBoundingBoxRight = w + dx
	tm.ActualBoundingBoxAscent = m.Ascent - dy
	tm.ActualBoundingBoxDescent = m.Descent + dy
	tm.FontBoundingBoxAscent = m.Ascent - dy
	tm.FontBoundingBoxDescent = m.Descent + dy
	return tm, nil
}

// direct runs a call that returns a result.
func (s *Surface) direct(m op.Methods, args []any) (any, error) {
	n := func(i int) float64 { return num(args, i) }
	switch m {
	case op.MeasureText:
		return s.measureText(str(args, 0))
	case op.GetImageData:
		return s.getImageData(int(n(0)), int(n(1)), int(n(2)), int(n(3)))
	case op.IsPointInPath:
		pt := gg.Point{X: n(0), Y: n(1)}
		if !finite(pt.X, pt.Y) {
			return false, nil
		}
		return s.path.contains(pt, str(args, 2) == string(render.EvenOdd)), nil
	case op.IsPointInStroke:
		pt := gg.Point{X: n(0), Y: n(1)}
		if !finite(pt.X, pt.Y) {
			return false, nil
		}
		return s.path.nearStroke(pt, s.st.lineWidth*s.st.scale()), nil
	case op.GetTransform:
		return s.st.ctm, nil
	}
	return nil, fmt.Errorf("softhost: %v has no result", m)
}

// getImageData reads straight alpha pixels of a rectangle; pixels
// outside the canvas are transparent black.
func (s *Surface) getImageData(sx, sy, sw, sh int) (render.ImageData, error) {
	if sw == 0 || sh == 0 {
		return render.ImageData{}, errIndexSize
	}
	if sw < 0 {
		sx, sw = sx+sw, -sw
	}
	if sh < 0 {
		sy, sh = sy+sh, -sh
	}
	src := s.dc.Image()
	out := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	b := src.Bounds()
	for y := range sh {
		for x := range sw {
			p := image.Pt(sx+x, sy+y)
			if !p.In(b) {
				continue
			}
			out.SetNRGBA(x, y, color.NRGBAModel.Convert(src.At(p.X, p.Y)).(color.NRGBA))
		}
	}
	return render.ImageData{Width: sw, Height: sh, Data: out.Pix}, nil
}

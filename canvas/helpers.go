// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"strconv"
	"strings"

	"cogentcore.org/canvas2d/interop/marshal"
	"cogentcore.org/canvas2d/render"
)

// Clear clears the canvas, or fills it with the CSS color if non-empty.
func (c *Canvas) Clear(color string) {
	rc := c.ctx
	w, h := float64(c.Width()), float64(c.Height())
	if color == "" {
		rc.ClearRect(0, 0, w, h)
		return
	}
	rc.Save()
	rc.SetFillStyle(color)
	rc.FillRect(0, 0, w, h)
	rc.Restore()
}

// ImageOptions are the placement options of [DrawImageCentered].
type ImageOptions struct {

	// Rotation is the clockwise rotation in radians.
	Rotation float64

	// FlipHorizontal mirrors the image around its vertical axis.
	FlipHorizontal bool
}

// DrawImageCentered draws el into a width by height box centered at
// (cx, cy), rotated and flipped around the center.
func DrawImageCentered(rc *render.Context, el marshal.Element, cx, cy, width, height float64, opts ImageOptions) error {
	rc.Save()
	defer rc.Restore()
	rc.Translate(cx, cy)
	if opts.Rotation != 0 {
		rc.Rotate(opts.Rotation)
	}
	if opts.FlipHorizontal {
		rc.Scale(-1, 1)
	}
	return rc.DrawImageScaled(el, -width/2, -height/2, width, height)
}

// DrawImageCenteredAspect draws el centered at (cx, cy) with its
// longer side scaled to size, keeping the aspect ratio of the
// original width and height.
func DrawImageCenteredAspect(rc *render.Context, el marshal.Element, width, height, cx, cy, size float64, opts ImageOptions) error {
	w, h := size, size
	if aspect := width / height; aspect > 1 {
		h = size / aspect
	} else {
		w = size * aspect
	}
	return DrawImageCentered(rc, el, cx, cy, w, h, opts)
}

// TextShadow is the shadow of [DrawStyledText].
type TextShadow struct {
	Color   string
	Blur    float64
	OffsetX float64
	OffsetY float64
}

// DropShadow returns a soft black shadow below text.
func DropShadow(blur, offsetY float64) *TextShadow {
	return &TextShadow{Color: "rgba(0,0,0,0.7)", Blur: blur, OffsetY: offsetY}
}

// TextStyle is the style of [DrawStyledText].
type TextStyle struct {

	// Font is the CSS font, such as "bold 24px sans-serif".
	Font string

	// Fill is the CSS fill color.
	Fill string

	// Align and Baseline are left unchanged when empty.
	Align    render.TextAligns
	Baseline render.TextBaselines

	// Shadow is drawn when non-nil.
	Shadow *TextShadow

	// LineHeight is the line spacing as a multiple of the font size,
	// 1.2 when zero.
	LineHeight float64
}

// DrawStyledText draws text at (x, y) in the given style, leaving the
// context state unchanged. Multiple lines are centered vertically
// around y.
func DrawStyledText(rc *render.Context, text string, x, y float64, st TextStyle) {
	rc.Save()
	defer rc.Restore()
	rc.SetFont(st.Font)
	rc.SetFillStyle(st.Fill)
	if st.Align != "" {
		rc.SetTextAlign(st.Align)
	}
	if st.Baseline != "" {
		rc.SetTextBaseline(st.Baseline)
	}
	if sh := st.Shadow; sh != nil {
		rc.SetShadowColor(sh.Color)
		rc.SetShadowBlur(sh.Blur)
		rc.SetShadowOffsetX(sh.OffsetX)
		rc.SetShadowOffsetY(sh.OffsetY)
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	if len(lines) == 1 {
		rc.FillText(text, x, y)
		return
	}
	lh := st.LineHeight
	if lh == 0 {
		lh = 1.2
	}
	step := FontSize(st.Font) * lh
	y0 := y - step*float64(len(lines)-1)/2
	for i, line := range lines {
		rc.FillText(line, x, y0+float64(i)*step)
	}
}

// FontSize returns the pixel size of a CSS font, or 16 if it has none.
func FontSize(font string) float64 {
	for _, f := range strings.Fields(font) {
		if v, ok := strings.CutSuffix(f, "px"); ok {
			if sz, err := strconv.ParseFloat(v, 64); err == nil {
				return sz
			}
		}
	}
	return 16
}

// DrawBackgroundImageCover draws el, whose size is width by height,
// scaled to cover the canvas and centered, as CSS background-size cover.
func (c *Canvas) DrawBackgroundImageCover(el marshal.Element, width, height float64) error {
	cw, ch := float64(c.Width()), float64(c.Height())
	aspect := width / height
	var sw, sh, ox, oy float64
	if aspect > cw/ch {
		sh = ch
		sw = sh * aspect
		ox = (cw - sw) / 2
	} else {
		sw = cw
		sh = sw / aspect
		oy = (ch - sh) / 2
	}
	return c.ctx.DrawImageScaled(el, ox, oy, sw, sh)
}

// WithScale runs draw with the context uniformly scaled.
func WithScale(rc *render.Context, scale float64, draw func()) {
	rc.Save()
	defer rc.Restore()
	rc.Scale(scale, scale)
	draw()
}

// WithTransform runs draw after transform, restoring the state after.
func WithTransform(rc *render.Context, transform func(rc *render.Context), draw func()) {
	rc.Save()
	defer rc.Restore()
	transform(rc)
	draw()
}

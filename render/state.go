// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image/color"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/colors"
	"cogentcore.org/canvas2d/interop/op"
)

// LineCaps are the shapes of line end points.
type LineCaps string

const (
	CapButt   LineCaps = "butt"
	CapRound  LineCaps = "round"
	CapSquare LineCaps = "square"
)

// LineJoins are the shapes of line corners.
type LineJoins string

const (
	JoinMiter LineJoins = "miter"
	JoinRound LineJoins = "round"
	JoinBevel LineJoins = "bevel"
)

// TextAligns are horizontal text alignments.
type TextAligns string

const (
	AlignStart  TextAligns = "start"
	AlignEnd    TextAligns = "end"
	AlignLeft   TextAligns = "left"
	AlignRight  TextAligns = "right"
	AlignCenter TextAligns = "center"
)

// TextBaselines are vertical text alignments.
type TextBaselines string

const (
	BaselineTop         TextBaselines = "top"
	BaselineHanging     TextBaselines = "hanging"
	BaselineMiddle      TextBaselines = "middle"
	BaselineAlphabetic  TextBaselines = "alphabetic"
	BaselineIdeographic TextBaselines = "ideographic"
	BaselineBottom      TextBaselines = "bottom"
)

// Directions are text directions.
type Directions string

const (
	DirectionInherit Directions = "inherit"
	DirectionLTR     Directions = "ltr"
	DirectionRTL     Directions = "rtl"
)

// TextRenderings are text rendering hints.
type TextRenderings string

const (
	TextRenderingAuto               TextRenderings = "auto"
	TextRenderingOptimizeSpeed      TextRenderings = "optimizeSpeed"
	TextRenderingOptimizeLegibility TextRenderings = "optimizeLegibility"
	TextRenderingGeometricPrecision TextRenderings = "geometricPrecision"
)

// CompositeOps are compositing and blending operations.
type CompositeOps string

const (
	SourceOver      CompositeOps = "source-over"
	SourceIn        CompositeOps = "source-in"
	SourceOut       CompositeOps = "source-out"
	SourceAtop      CompositeOps = "source-atop"
	DestinationOver CompositeOps = "destination-over"
	DestinationIn   CompositeOps = "destination-in"
	DestinationOut  CompositeOps = "destination-out"
	DestinationAtop CompositeOps = "destination-atop"
	Lighter         CompositeOps = "lighter"
	Copy            CompositeOps = "copy"
	Xor             CompositeOps = "xor"
	Multiply        CompositeOps = "multiply"
	Screen          CompositeOps = "screen"
	Overlay         CompositeOps = "overlay"
	Darken          CompositeOps = "darken"
	Lighten         CompositeOps = "lighten"
)

// SmoothingQualities are image smoothing qualities.
type SmoothingQualities string

const (
	SmoothingLow    SmoothingQualities = "low"
	SmoothingMedium SmoothingQualities = "medium"
	SmoothingHigh   SmoothingQualities = "high"
)

// FillRules are path fill rules.
type FillRules string

const (
	NonZero FillRules = "nonzero"
	EvenOdd FillRules = "evenodd"
)

// Repetitions are pattern repetition modes.
type Repetitions string

const (
	Repeat   Repetitions = "repeat"
	RepeatX  Repetitions = "repeat-x"
	RepeatY  Repetitions = "repeat-y"
	NoRepeat Repetitions = "no-repeat"
)

// State is the local mirror of the stateful context properties.
// FillStyle and StrokeStyle hold a CSS string, a *[Gradient] or
// a *[Pattern].
type State struct {
	FillStyle                any
	StrokeStyle              any
	LineWidth                float64
	LineCap                  LineCaps
	LineJoin                 LineJoins
	MiterLimit               float64
	LineDash                 []float64
	LineDashOffset           float64
	Font                     string
	TextAlign                TextAligns
	TextBaseline             TextBaselines
	Direction                Directions
	TextRendering            TextRenderings
	LetterSpacing            string
	Filter                   string
	GlobalAlpha              float64
	GlobalCompositeOperation CompositeOps
	ImageSmoothingQuality    SmoothingQualities
	ImageSmoothingEnabled    bool
	ShadowColor              string
	ShadowBlur               float64
	ShadowOffsetX            float64
	ShadowOffsetY            float64
}

// DefaultState returns the initial state of a 2D context.
func DefaultState() State {
	return State{
		FillStyle:                "#000000",
		StrokeStyle:              "#000000",
		LineWidth:                1,
		LineCap:                  CapButt,
		LineJoin:                 JoinMiter,
		MiterLimit:               10,
		Font:                     "10px sans-serif",
		TextAlign:                AlignStart,
		TextBaseline:             BaselineAlphabetic,
		Direction:                DirectionInherit,
		TextRendering:            TextRenderingAuto,
		LetterSpacing:            "0px",
		Filter:                   "none",
		GlobalAlpha:              1,
		GlobalCompositeOperation: SourceOver,
		ImageSmoothingQuality:    SmoothingLow,
		ImageSmoothingEnabled:    true,
		ShadowColor:              "rgba(0, 0, 0, 0)",
	}
}

// State returns a copy of the mirrored properties.
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.LineDash = append([]float64(nil), s.LineDash...)
	return s
}

// setProp updates the mirror and queues the property assignment.
func (c *Context) setProp(p op.Props, value any, apply func(s *State)) {
	o, err := op.PropertySet(p, value)
	if errors.Log(err) != nil || c.refused(o) {
		return
	}
	c.mu.Lock()
	apply(&c.state)
	c.push(o)
	c.mu.Unlock()
}

func (c *Context) get(f func(s *State) any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return f(&c.state)
}

// FillStyle returns the fill style: a CSS string, *Gradient or *Pattern.
func (c *Context) FillStyle() any {
	return c.get(func(s *State) any { return s.FillStyle })
}

// SetFillStyle sets the fill style to a CSS color.
func (c *Context) SetFillStyle(css string) {
	c.setProp(op.FillStyle, css, func(s *State) { s.FillStyle = css })
}

// SetFillColor sets the fill style to the given color.
func (c *Context) SetFillColor(clr color.Color) {
	c.SetFillStyle(colors.AsCSS(clr))
}

// SetFillGradient sets the fill style to a gradient.
func (c *Context) SetFillGradient(g *Gradient) {
	c.setProp(op.FillStyle, g.ref, func(s *State) { s.FillStyle = g })
}

// SetFillPattern sets the fill style to a pattern.
func (c *Context) SetFillPattern(p *Pattern) {
	c.setProp(op.FillStyle, p.ref, func(s *State) { s.FillStyle = p })
}

// StrokeStyle returns the stroke style: a CSS string, *Gradient or *Pattern.
func (c *Context) StrokeStyle() any {
	return c.get(func(s *State) any { return s.StrokeStyle })
}

// SetStrokeStyle sets the stroke style to a CSS color.
func (c *Context) SetStrokeStyle(css string) {
	c.setProp(op.StrokeStyle, css, func(s *State) { s.StrokeStyle = css })
}

// SetStrokeColor sets the stroke style to the given color.
func (c *Context) SetStrokeColor(clr color.Color) {
	c.SetStrokeStyle(colors.AsCSS(clr))
}

// SetStrokeGradient sets the stroke style to a gradient.
func (c *Context) SetStrokeGradient(g *Gradient) {
	c.setProp(op.StrokeStyle, g.ref, func(s *State) { s.StrokeStyle = g })
}

// SetStrokePattern sets the stroke style to a pattern.
func (c *Context) SetStrokePattern(p *Pattern) {
	c.setProp(op.StrokeStyle, p.ref, func(s *State) { s.StrokeStyle = p })
}

// LineWidth returns the stroke line width.
func (c *Context) LineWidth() float64 {
	return c.get(func(s *State) any { return s.LineWidth }).(float64)
}

// SetLineWidth sets the stroke line width.
func (c *Context) SetLineWidth(v float64) {
	c.setProp(op.LineWidth, v, func(s *State) { s.LineWidth = v })
}

// LineCap returns the style of line ends.
func (c *Context) LineCap() LineCaps {
	return c.get(func(s *State) any { return s.LineCap }).(LineCaps)
}

// SetLineCap sets the style of line ends.
func (c *Context) SetLineCap(v LineCaps) {
	c.setProp(op.LineCap, string(v), func(s *State) { s.LineCap = v })
}

// LineJoin returns the style of line corners.
func (c *Context) LineJoin() LineJoins {
	return c.get(func(s *State) any { return s.LineJoin }).(LineJoins)
}

// SetLineJoin sets the style of line corners.
func (c *Context) SetLineJoin(v LineJoins) {
	c.setProp(op.LineJoin, string(v), func(s *State) { s.LineJoin = v })
}

// MiterLimit returns the miter limit ratio.
func (c *Context) MiterLimit() float64 {
	return c.get(func(s *State) any { return s.MiterLimit }).(float64)
}

// SetMiterLimit sets the miter limit ratio.
func (c *Context) SetMiterLimit(v float64) {
	c.setProp(op.MiterLimit, v, func(s *State) { s.MiterLimit = v })
}

// LineDashOffset returns the offset of the line dash pattern.
func (c *Context) LineDashOffset() float64 {
	return c.get(func(s *State) any { return s.LineDashOffset }).(float64)
}

// SetLineDashOffset sets the offset of the line dash pattern.
func (c *Context) SetLineDashOffset(v float64) {
	c.setProp(op.LineDashOffset, v, func(s *State) { s.LineDashOffset = v })
}

// LineDash returns the current line dash pattern.
func (c *Context) LineDash() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]float64(nil), c.state.LineDash...)
}

// SetLineDash sets the line dash pattern. An empty pattern draws solid lines.
func (c *Context) SetLineDash(segments ...float64) {
	if segments == nil {
		segments = []float64{}
	}
	o, err := op.MethodCall(op.SetLineDash, segments)
	if errors.Log(err) != nil || c.refused(o) {
		return
	}
	c.mu.Lock()
	c.state.LineDash = append([]float64(nil), segments...)
	c.push(o)
	c.mu.Unlock()
}

// Font returns the CSS font.
func (c *Context) Font() string {
	return c.get(func(s *State) any { return s.Font }).(string)
}

// SetFont sets the CSS font, such as "bold 16px sans-serif".
func (c *Context) SetFont(v string) {
	c.setProp(op.Font, v, func(s *State) { s.Font = v })
}

// TextAlign returns the horizontal text alignment.
func (c *Context) TextAlign() TextAligns {
	return c.get(func(s *State) any { return s.TextAlign }).(TextAligns)
}

// SetTextAlign sets the horizontal text alignment.
func (c *Context) SetTextAlign(v TextAligns) {
	c.setProp(op.TextAlign, string(v), func(s *State) { s.TextAlign = v })
}

// TextBaseline returns the text baseline.
func (c *Context) TextBaseline() TextBaselines {
	return c.get(func(s *State) any { return s.TextBaseline }).(TextBaselines)
}

// SetTextBaseline sets the text baseline.
func (c *Context) SetTextBaseline(v TextBaselines) {
	c.setProp(op.TextBaseline, string(v), func(s *State) { s.TextBaseline = v })
}

// Direction returns the text direction.
func (c *Context) Direction() Directions {
	return c.get(func(s *State) any { return s.Direction }).(Directions)
}

// SetDirection sets the text direction.
func (c *Context) SetDirection(v Directions) {
	c.setProp(op.Direction, string(v), func(s *State) { s.Direction = v })
}

// TextRendering returns the text rendering hint.
func (c *Context) TextRendering() TextRenderings {
	return c.get(func(s *State) any { return s.TextRendering }).(TextRenderings)
}

// SetTextRendering sets the text rendering hint.
func (c *Context) SetTextRendering(v TextRenderings) {
	c.setProp(op.TextRendering, string(v), func(s *State) { s.TextRendering = v })
}

// LetterSpacing returns the CSS letter spacing.
func (c *Context) LetterSpacing() string {
	return c.get(func(s *State) any { return s.LetterSpacing }).(string)
}

// SetLetterSpacing sets the CSS letter spacing, such as "2px".
func (c *Context) SetLetterSpacing(v string) {
	c.setProp(op.LetterSpacing, v, func(s *State) { s.LetterSpacing = v })
}

// Filter returns the CSS filter.
func (c *Context) Filter() string {
	return c.get(func(s *State) any { return s.Filter }).(string)
}

// SetFilter sets the CSS filter, such as "blur(4px)".
func (c *Context) SetFilter(v string) {
	c.setProp(op.Filter, v, func(s *State) { s.Filter = v })
}

// GlobalAlpha returns the alpha applied to all drawing.
func (c *Context) GlobalAlpha() float64 {
	return c.get(func(s *State) any { return s.GlobalAlpha }).(float64)
}

// SetGlobalAlpha sets the alpha applied to all drawing.
func (c *Context) SetGlobalAlpha(v float64) {
	c.setProp(op.GlobalAlpha, v, func(s *State) { s.GlobalAlpha = v })
}

// GlobalCompositeOperation returns the compositing operation.
func (c *Context) GlobalCompositeOperation() CompositeOps {
	return c.get(func(s *State) any { return s.GlobalCompositeOperation }).(CompositeOps)
}

// SetGlobalCompositeOperation sets the compositing operation.
func (c *Context) SetGlobalCompositeOperation(v CompositeOps) {
	c.setProp(op.GlobalCompositeOperation, string(v), func(s *State) { s.GlobalCompositeOperation = v })
}

// ImageSmoothingQuality returns the quality of image smoothing.
func (c *Context) ImageSmoothingQuality() SmoothingQualities {
	return c.get(func(s *State) any { return s.ImageSmoothingQuality }).(SmoothingQualities)
}

// SetImageSmoothingQuality sets the quality of image smoothing.
func (c *Context) SetImageSmoothingQuality(v SmoothingQualities) {
	c.setProp(op.ImageSmoothingQuality, string(v), func(s *State) { s.ImageSmoothingQuality = v })
}

// ImageSmoothingEnabled returns whether scaled images are smoothed.
func (c *Context) ImageSmoothingEnabled() bool {
	return c.get(func(s *State) any { return s.ImageSmoothingEnabled }).(bool)
}

// SetImageSmoothingEnabled sets whether scaled images are smoothed.
func (c *Context) SetImageSmoothingEnabled(v bool) {
	c.setProp(op.ImageSmoothingEnabled, v, func(s *State) { s.ImageSmoothingEnabled = v })
}

// ShadowColor returns the CSS shadow color.
func (c *Context) ShadowColor() string {
	return c.get(func(s *State) any { return s.ShadowColor }).(string)
}

// SetShadowColor sets the shadow color to a CSS color.
func (c *Context) SetShadowColor(v string) {
	c.setProp(op.ShadowColor, v, func(s *State) { s.ShadowColor = v })
}

// ShadowBlur returns the shadow blur level.
func (c *Context) ShadowBlur() float64 {
	return c.get(func(s *State) any { return s.ShadowBlur }).(float64)
}

// SetShadowBlur sets the shadow blur level.
func (c *Context) SetShadowBlur(v float64) {
	c.setProp(op.ShadowBlur, v, func(s *State) { s.ShadowBlur = v })
}

// ShadowOffsetX returns the horizontal shadow offset.
func (c *Context) ShadowOffsetX() float64 {
	return c.get(func(s *State) any { return s.ShadowOffsetX }).(float64)
}

// SetShadowOffsetX sets the horizontal shadow offset.
func (c *Context) SetShadowOffsetX(v float64) {
	c.setProp(op.ShadowOffsetX, v, func(s *State) { s.ShadowOffsetX = v })
}

// ShadowOffsetY returns the vertical shadow offset.
func (c *Context) ShadowOffsetY() float64 {
	return c.get(func(s *State) any { return s.ShadowOffsetY }).(float64)
}

// SetShadowOffsetY sets the vertical shadow offset.
func (c *Context) SetShadowOffsetY(v float64) {
	c.setProp(op.ShadowOffsetY, v, func(s *State) { s.ShadowOffsetY = v })
}

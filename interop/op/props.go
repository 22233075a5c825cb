// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package op

// Props are the stateful 2D context properties that can be assigned
// across the host boundary.
type Props int32

const (
	UnknownProp Props = iota

	FillStyle
	StrokeStyle
	LineWidth
	LineCap
	LineJoin
	MiterLimit
	LineDashOffset
	Font
	TextAlign
	TextBaseline
	Direction
	TextRendering
	LetterSpacing
	Filter
	GlobalAlpha
	GlobalCompositeOperation
	ImageSmoothingQuality
	ImageSmoothingEnabled
	ShadowColor
	ShadowBlur
	ShadowOffsetX
	ShadowOffsetY

	propsN
)

type propInfo struct {
	name string
	typ  byte
}

var props = [propsN]propInfo{
	UnknownProp:              {"unknown", 0},
	FillStyle:                {"fillStyle", argStringRef},
	StrokeStyle:              {"strokeStyle", argStringRef},
	LineWidth:                {"lineWidth", argNumber},
	LineCap:                  {"lineCap", argString},
	LineJoin:                 {"lineJoin", argString},
	MiterLimit:               {"miterLimit", argNumber},
	LineDashOffset:           {"lineDashOffset", argNumber},
	Font:                     {"font", argString},
	TextAlign:                {"textAlign", argString},
	TextBaseline:             {"textBaseline", argString},
	Direction:                {"direction", argString},
	TextRendering:            {"textRendering", argString},
	LetterSpacing:            {"letterSpacing", argString},
	Filter:                   {"filter", argString},
	GlobalAlpha:              {"globalAlpha", argNumber},
	GlobalCompositeOperation: {"globalCompositeOperation", argString},
	ImageSmoothingQuality:    {"imageSmoothingQuality", argString},
	ImageSmoothingEnabled:    {"imageSmoothingEnabled", argBool},
	ShadowColor:              {"shadowColor", argString},
	ShadowBlur:               {"shadowBlur", argNumber},
	ShadowOffsetX:            {"shadowOffsetX", argNumber},
	ShadowOffsetY:            {"shadowOffsetY", argNumber},
}

func (p Props) info() *propInfo {
	if p < 0 || p >= propsN {
		return &props[UnknownProp]
	}
	return &props[p]
}

// String returns the host-facing property name.
func (p Props) String() string {
	return p.info().name
}

// IsValid returns whether p is a known property.
func (p Props) IsValid() bool {
	return p > UnknownProp && p < propsN
}

// PropsValues returns all known properties.
func PropsValues() []Props {
	r := make([]Props, 0, propsN-1)
	for p := UnknownProp + 1; p < propsN; p++ {
		r = append(r, p)
	}
	return r
}

// PropByName returns the property for a host-facing name.
func PropByName(name string) (Props, bool) {
	for p := UnknownProp + 1; p < propsN; p++ {
		if props[p].name == name {
			return p, true
		}
	}
	return UnknownProp, false
}

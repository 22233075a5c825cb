// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package op

// Methods are the 2D context methods that can cross the host boundary.
type Methods int32

const (
	UnknownMethod Methods = iota

	FillRect
	StrokeRect
	ClearRect

	BeginPath
	ClosePath
	MoveTo
	LineTo
	BezierCurveTo
	QuadraticCurveTo
	Arc
	ArcTo
	Ellipse
	Rect
	RoundRect
	Fill
	Stroke
	Clip

	FillText
	StrokeText
	DrawImage

	Save
	Restore
	Translate
	Rotate
	Scale
	Transform
	SetTransform
	ResetTransform
	SetLineDash

	CreateLinearGradient
	CreateRadialGradient
	CreateConicGradient
	CreatePattern
	AddColorStop
	PatternSetTransform
	NewPath2D

	PutImageData

	MeasureText
	GetImageData
	IsPointInPath
	IsPointInStroke
	GetTransform

	methodsN
)

// Argument type codes used in [Signature.Args]:
//
//	n  number
//	s  string
//	b  bool
//	r  reference
//	x  string or reference
//	d  number list
//	p  pixel bytes
const (
	argNumber    = 'n'
	argString    = 's'
	argBool      = 'b'
	argRef       = 'r'
	argStringRef = 'x'
	argNumbers   = 'd'
	argPixels    = 'p'
)

// Signature is the static description of a method kind.
type Signature struct {

	// Name is the method name on the host.
	Name string

	// Args has one type code per parameter, in order.
	Args string

	// Min is the minimum number of arguments.
	Min int

	// Counts, if non-empty, lists the only valid argument counts.
	Counts []int

	// Handle marks calls whose first argument is the reference of a
	// host object that the call creates or mutates.
	Handle bool

	// Direct marks calls that return a value and are never queued.
	Direct bool
}

// Max returns the maximum number of arguments.
func (s *Signature) Max() int { return len(s.Args) }

var signatures = [methodsN]Signature{
	UnknownMethod: {Name: "unknown"},

	FillRect:   {Name: "fillRect", Args: "nnnn", Min: 4},
	StrokeRect: {Name: "strokeRect", Args: "nnnn", Min: 4},
	ClearRect:  {Name: "clearRect", Args: "nnnn", Min: 4},

	BeginPath:        {Name: "beginPath"},
	ClosePath:        {Name: "closePath"},
	MoveTo:           {Name: "moveTo", Args: "nn", Min: 2},
	LineTo:           {Name: "lineTo", Args: "nn", Min: 2},
	BezierCurveTo:    {Name: "bezierCurveTo", Args: "nnnnnn", Min: 6},
	QuadraticCurveTo: {Name: "quadraticCurveTo", Args: "nnnn", Min: 4},
	Arc:              {Name: "arc", Args: "nnnnnb", Min: 5},
	ArcTo:            {Name: "arcTo", Args: "nnnnn", Min: 5},
	Ellipse:          {Name: "ellipse", Args: "nnnnnnnb", Min: 7},
	Rect:             {Name: "rect", Args: "nnnn", Min: 4},
	RoundRect:        {Name: "roundRect", Args: "nnnnd", Min: 4},
	Fill:             {Name: "fill", Args: "xs"},
	Stroke:           {Name: "stroke", Args: "r"},
	Clip:             {Name: "clip", Args: "xs"},

	FillText:   {Name: "fillText", Args: "snnn", Min: 3},
	StrokeText: {Name: "strokeText", Args: "snnn", Min: 3},
	DrawImage:  {Name: "drawImage", Args: "rnnnnnnnn", Min: 3, Counts: []int{3, 5, 9}},

	Save:           {Name: "save"},
	Restore:        {Name: "restore"},
	Translate:      {Name: "translate", Args: "nn", Min: 2},
	Rotate:         {Name: "rotate", Args: "n", Min: 1},
	Scale:          {Name: "scale", Args: "nn", Min: 2},
	Transform:      {Name: "transform", Args: "nnnnnn", Min: 6},
	SetTransform:   {Name: "setTransform", Args: "nnnnnn", Min: 6},
	ResetTransform: {Name: "resetTransform"},
	SetLineDash:    {Name: "setLineDash", Args: "d", Min: 1},

	CreateLinearGradient: {Name: "createLinearGradient", Args: "rnnnn", Min: 5, Handle: true},
	CreateRadialGradient: {Name: "createRadialGradient", Args: "rnnnnnn", Min: 7, Handle: true},
	CreateConicGradient:  {Name: "createConicGradient", Args: "rnnn", Min: 4, Handle: true},
	CreatePattern:        {Name: "createPattern", Args: "rrs", Min: 3, Handle: true},
	AddColorStop:         {Name: "addColorStop", Args: "rns", Min: 3, Handle: true},
	PatternSetTransform:  {Name: "setTransform", Args: "rnnnnnn", Min: 7, Handle: true},
	NewPath2D:            {Name: "Path2D", Args: "rs", Min: 1, Handle: true},

	PutImageData: {Name: "putImageData", Args: "pnnnn", Min: 5},

	MeasureText:     {Name: "measureText", Args: "s", Min: 1, Direct: true},
	GetImageData:    {Name: "getImageData", Args: "nnnn", Min: 4, Direct: true},
	IsPointInPath:   {Name: "isPointInPath", Args: "nns", Min: 2, Direct: true},
	IsPointInStroke: {Name: "isPointInStroke", Args: "nn", Min: 2, Direct: true},
	GetTransform:    {Name: "getTransform", Direct: true},
}

// Signature returns the static signature of the method kind.
func (m Methods) Signature() *Signature {
	if m < 0 || m >= methodsN {
		return &signatures[UnknownMethod]
	}
	return &signatures[m]
}

// String returns the host-facing name of the method.
func (m Methods) String() string {
	return m.Signature().Name
}

// IsValid returns whether m is a known method kind.
func (m Methods) IsValid() bool {
	return m > UnknownMethod && m < methodsN
}

// MethodsValues returns all known method kinds.
func MethodsValues() []Methods {
	r := make([]Methods, 0, methodsN-1)
	for m := UnknownMethod + 1; m < methodsN; m++ {
		r = append(r, m)
	}
	return r
}

// MethodByName returns the method kind for a host-facing name.
// Names shared between the context and a created object (setTransform)
// are disambiguated by whether the call targets a reference.
func MethodByName(name string, handle bool) (Methods, bool) {
	for m := UnknownMethod + 1; m < methodsN; m++ {
		s := &signatures[m]
		if s.Name == name && s.Handle == handle {
			return m, true
		}
	}
	return UnknownMethod, false
}

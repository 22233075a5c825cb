// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Types determines the type of a canvas event. The host broadcasts
// input events to every registered canvas, and each canvas receives
// its own copy in host order.
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// Ready is sent once, when the host has confirmed the canvas
	// and its 2D context exist. Drawing is only valid after it.
	Ready

	// Frame is sent once per animation frame. The canvas calls its
	// frame callback and then flushes its queued operations.
	Frame

	// Resize is sent when the host viewport or the canvas is resized.
	Resize

	// KeyDown is sent when a key is pressed anywhere on the page.
	KeyDown

	// KeyUp is sent when a key is released anywhere on the page.
	KeyUp

	// MouseMove is sent when the pointer moves anywhere on the page.
	// Touch moves are reported as MouseMove.
	MouseMove

	// MouseDown is sent when a button is pressed over the canvas.
	// Touch start is reported as MouseDown with button 0.
	MouseDown

	// MouseUp is sent when a button is released over the canvas.
	// Touch end is reported as MouseUp with button 0.
	MouseUp

	// Wheel is sent when the wheel is scrolled over the canvas.
	Wheel

	typesN
)

var typeNames = [typesN]string{"unknown", "ready", "frame", "resize", "keyDown", "keyUp", "mouseMove", "mouseDown", "mouseUp", "wheel"}

// String returns the wire name of the event type.
func (tp Types) String() string {
	if tp < 0 || tp >= typesN {
		return typeNames[UnknownType]
	}
	return typeNames[tp]
}

// TypeByName returns the event type with the given wire name.
func TypeByName(name string) (Types, bool) {
	for i, n := range typeNames {
		if i > 0 && n == name {
			return Types(i), true
		}
	}
	return UnknownType, false
}

// TypesValues returns all known event types.
func TypesValues() []Types {
	r := make([]Types, 0, typesN-1)
	for tp := UnknownType + 1; tp < typesN; tp++ {
		r = append(r, tp)
	}
	return r
}

// IsInput returns whether events of this type come from user input
// and are broadcast to every canvas.
func (tp Types) IsInput() bool {
	return tp >= KeyDown && tp <= Wheel
}

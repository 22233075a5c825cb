// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "fmt"

// Buttons is a mouse button, numbered as on the host:
// 0 is the main button, 1 the middle and 2 the secondary.
type Buttons int32

const (
	Left Buttons = iota
	Middle
	Right
)

// MouseMoveEvent is a pointer move anywhere on the page.
type MouseMoveEvent struct {
	Base
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// NewMouseMove returns a new [MouseMove] event.
func NewMouseMove(clientX, clientY, offsetX, offsetY float64) *MouseMoveEvent {
	ev := &MouseMoveEvent{ClientX: clientX, ClientY: clientY, OffsetX: offsetX, OffsetY: offsetY}
	ev.Init(MouseMove)
	return ev
}

func (ev *MouseMoveEvent) String() string {
	return fmt.Sprintf("%v{Client: (%g, %g), Offset: (%g, %g)}", ev.Typ, ev.ClientX, ev.ClientY, ev.OffsetX, ev.OffsetY)
}

// MouseButtonEvent is a button press or release over a canvas.
type MouseButtonEvent struct {
	Base
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
	Button  Buttons `json:"button"`
}

// NewMouseButton returns a new [MouseDown] or [MouseUp] event.
func NewMouseButton(typ Types, clientX, clientY float64, button Buttons) *MouseButtonEvent {
	ev := &MouseButtonEvent{ClientX: clientX, ClientY: clientY, Button: button}
	ev.Init(typ)
	return ev
}

func (ev *MouseButtonEvent) String() string {
	return fmt.Sprintf("%v{Button: %d, Client: (%g, %g)}", ev.Typ, ev.Button, ev.ClientX, ev.ClientY)
}

// WheelEvent is a wheel scroll over a canvas.
type WheelEvent struct {
	Base
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
	DeltaX  float64 `json:"deltaX"`
	DeltaY  float64 `json:"deltaY"`
}

// NewWheel returns a new [Wheel] event.
func NewWheel(clientX, clientY, deltaX, deltaY float64) *WheelEvent {
	ev := &WheelEvent{ClientX: clientX, ClientY: clientY, DeltaX: deltaX, DeltaY: deltaY}
	ev.Init(Wheel)
	return ev
}

func (ev *WheelEvent) String() string {
	return fmt.Sprintf("%v{Delta: (%g, %g), Client: (%g, %g)}", ev.Typ, ev.DeltaX, ev.DeltaY, ev.ClientX, ev.ClientY)
}

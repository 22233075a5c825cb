// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the events a host sends to a canvas
// (frames, resizes, keyboard and mouse input), a lock-free queue
// for delivering them to the goroutine that owns the canvas, and
// per-type listener lists.
package events

import (
	"fmt"
	"time"
)

// Event is the interface implemented by all canvas events.
type Event interface {
	fmt.Stringer

	// Type returns the type of event.
	Type() Types

	// Time returns the time at which the event was received.
	Time() time.Time

	// IsHandled returns whether a listener has marked the event handled.
	IsHandled() bool

	// SetHandled marks the event as handled, stopping further listeners.
	SetHandled()
}

// Base is the base type for all events.
type Base struct {

	// Typ is the type of event.
	Typ Types `json:"-"`

	// GenTime is when the event was received.
	GenTime time.Time `json:"-"`

	handled bool
}

// Init sets the type and time of the event.
func (ev *Base) Init(typ Types) {
	ev.Typ = typ
	ev.GenTime = time.Now()
}

func (ev *Base) Type() Types { return ev.Typ }

func (ev *Base) Time() time.Time { return ev.GenTime }

func (ev *Base) IsHandled() bool { return ev.handled }

func (ev *Base) SetHandled() { ev.handled = true }

func (ev *Base) String() string {
	return fmt.Sprintf("%v{Time: %v}", ev.Typ, ev.GenTime.Format("04:05.000"))
}

// ReadyEvent confirms the canvas exists on the host.
type ReadyEvent struct {
	Base
}

// NewReady returns a new [Ready] event.
func NewReady() *ReadyEvent {
	ev := &ReadyEvent{}
	ev.Init(Ready)
	return ev
}

// FrameEvent is one animation frame.
type FrameEvent struct {
	Base

	// Timestamp is the host frame time in milliseconds.
	Timestamp float64 `json:"timestamp"`
}

// NewFrame returns a new [Frame] event.
func NewFrame(ts float64) *FrameEvent {
	ev := &FrameEvent{Timestamp: ts}
	ev.Init(Frame)
	return ev
}

func (ev *FrameEvent) String() string {
	return fmt.Sprintf("%v{Timestamp: %.2f}", ev.Typ, ev.Timestamp)
}

// ResizeEvent reports a new size in pixels.
type ResizeEvent struct {
	Base
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewResize returns a new [Resize] event.
func NewResize(width, height int) *ResizeEvent {
	ev := &ResizeEvent{Width: width, Height: height}
	ev.Init(Resize)
	return ev
}

func (ev *ResizeEvent) String() string {
	return fmt.Sprintf("%v{%dx%d}", ev.Typ, ev.Width, ev.Height)
}

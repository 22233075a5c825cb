// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softhost

import (
	"slices"

	"cogentcore.org/canvas2d/events"
	"cogentcore.org/canvas2d/host"
)

// Key codes of the modifier keys.
const (
	KeyShift   = 16
	KeyControl = 17
	KeyAlt     = 18
	KeyMeta    = 91
)

// inputState is the simulated keyboard state of the page, shared by
// every canvas.
type inputState struct {
	held []int
	mods events.Modifiers
}

func modifierOf(code int) events.Modifiers {
	switch code {
	case KeyShift:
		return events.Shift
	case KeyControl:
		return events.Control
	case KeyAlt:
		return events.Alt
	case KeyMeta:
		return events.Meta
	}
	return 0
}

// receivers returns the receivers of all canvases.
func (h *Host) receivers() []host.Receiver {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var recvs []host.Receiver
	for _, s := range h.surfaces {
		if s.recv != nil {
			recvs = append(recvs, s.recv)
		}
	}
	return recvs
}

// broadcast sends a new event from ev to every canvas, and returns
// whether any canvas received one.
func (h *Host) broadcast(ev func() events.Event) bool {
	recvs := h.receivers()
	for _, r := range recvs {
		r.Receive(ev())
	}
	return len(recvs) > 0
}

func (h *Host) send(id string, ev events.Event) bool {
	s, ok := h.Surface(id)
	if !ok || s.recv == nil {
		return false
	}
	s.recv.Receive(ev)
	return true
}

// key updates the held keys and modifiers and broadcasts the key event.
func (h *Host) key(typ events.Types, code int, key string) bool {
	h.mu.Lock()
	in := &h.input
	if typ == events.KeyDown {
		if !slices.Contains(in.held, code) {
			in.held = append(in.held, code)
		}
	} else {
		in.held = slices.DeleteFunc(in.held, func(c int) bool { return c == code })
	}
	in.mods.Set(typ == events.KeyDown, modifierOf(code))
	held, mods := slices.Clone(in.held), in.mods
	h.mu.Unlock()
	return h.broadcast(func() events.Event { return events.NewKey(typ, code, key, held, mods) })
}

// KeyDown simulates pressing the key with the given code on the page.
// Every canvas receives the event.
func (h *Host) KeyDown(code int, key string) bool {
	return h.key(events.KeyDown, code, key)
}

// KeyUp simulates releasing the key with the given code on the page.
func (h *Host) KeyUp(code int, key string) bool {
	return h.key(events.KeyUp, code, key)
}

// MouseMove simulates moving the pointer to (x, y) on the page.
// Every canvas receives the event.
func (h *Host) MouseMove(x, y float64) bool {
	return h.broadcast(func() events.Event { return events.NewMouseMove(x, y, x, y) })
}

// MouseDown simulates pressing a mouse button at (x, y) over the canvas.
func (h *Host) MouseDown(id string, x, y float64, button events.Buttons) bool {
	return h.send(id, events.NewMouseButton(events.MouseDown, x, y, button))
}

// MouseUp simulates releasing a mouse button at (x, y) over the canvas.
func (h *Host) MouseUp(id string, x, y float64, button events.Buttons) bool {
	return h.send(id, events.NewMouseButton(events.MouseUp, x, y, button))
}

// Wheel simulates scrolling by (dx, dy) at (x, y) over the canvas.
func (h *Host) Wheel(id string, x, y, dx, dy float64) bool {
	return h.send(id, events.NewWheel(x, y, dx, dy))
}

// TouchStart simulates a touch on the canvas, reported as a left
// button press.
func (h *Host) TouchStart(id string, x, y float64) bool {
	return h.MouseDown(id, x, y, events.Left)
}

// TouchMove simulates moving a touch on the page, reported as a
// mouse move.
func (h *Host) TouchMove(x, y float64) bool {
	return h.MouseMove(x, y)
}

// TouchEnd simulates lifting a touch from the canvas, reported as a
// left button release.
func (h *Host) TouchEnd(id string, x, y float64) bool {
	return h.MouseUp(id, x, y, events.Left)
}

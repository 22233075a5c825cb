// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"encoding/json"
	"fmt"
)

// New returns a new zero event of the given type, ready to be
// decoded into.
func New(typ Types) (Event, error) {
	var ev Event
	switch typ {
	case Ready:
		ev = &ReadyEvent{}
	case Frame:
		ev = &FrameEvent{}
	case Resize:
		ev = &ResizeEvent{}
	case KeyDown, KeyUp:
		ev = &KeyEvent{IsHeld: typ == KeyDown}
	case MouseMove:
		ev = &MouseMoveEvent{}
	case MouseDown, MouseUp:
		ev = &MouseButtonEvent{}
	case Wheel:
		ev = &WheelEvent{}
	default:
		return nil, fmt.Errorf("events: unknown event type %d", typ)
	}
	ev.(interface{ Init(Types) }).Init(typ)
	return ev, nil
}

// Decode decodes the wire payload of an event with the given wire name.
func Decode(name string, data []byte) (Event, error) {
	typ, ok := TypeByName(name)
	if !ok {
		return nil, fmt.Errorf("events: unknown event %q", name)
	}
	ev, err := New(typ)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return ev, nil
	}
	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("events: decoding %s: %w", name, err)
	}
	return ev, nil
}

// Encode returns the wire name and payload of the event.
func Encode(ev Event) (string, []byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return "", nil, err
	}
	return ev.Type().String(), b, nil
}

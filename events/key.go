// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Modifiers is a bitflag set of keyboard modifier keys.
type Modifiers uint8

const (
	Shift Modifiers = 1 << iota
	Control
	Alt
	Meta
)

// Has returns whether all of the given modifiers are set.
func (m Modifiers) Has(mods Modifiers) bool {
	return m&mods == mods
}

// HasAny returns whether any of the given modifiers are set.
func (m Modifiers) HasAny(mods Modifiers) bool {
	return m&mods != 0
}

// Set sets or clears the given modifiers.
func (m *Modifiers) Set(on bool, mods Modifiers) {
	if on {
		*m |= mods
	} else {
		*m &^= mods
	}
}

func (m Modifiers) String() string {
	var parts []string
	for _, f := range []struct {
		m    Modifiers
		name string
	}{{Shift, "Shift"}, {Control, "Control"}, {Alt, "Alt"}, {Meta, "Meta"}} {
		if m.Has(f.m) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

type wireModifiers struct {
	Shift bool `json:"shift"`
	Ctrl  bool `json:"ctrl"`
	Alt   bool `json:"alt"`
	Meta  bool `json:"meta"`
}

// MarshalJSON encodes the modifiers as {"shift","ctrl","alt","meta"} booleans.
func (m Modifiers) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireModifiers{Shift: m.Has(Shift), Ctrl: m.Has(Control), Alt: m.Has(Alt), Meta: m.Has(Meta)})
}

func (m *Modifiers) UnmarshalJSON(b []byte) error {
	var w wireModifiers
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*m = 0
	m.Set(w.Shift, Shift)
	m.Set(w.Ctrl, Control)
	m.Set(w.Alt, Alt)
	m.Set(w.Meta, Meta)
	return nil
}

// KeyEvent is a key press or release. Keyboard events are global
// to the page and broadcast to every canvas.
type KeyEvent struct {
	Base

	// Code is the numeric key code.
	Code int `json:"keyCode"`

	// Key is the key value, such as "a", "Enter" or "ArrowLeft".
	Key string `json:"key"`

	// IsHeld is true for a press and false for a release.
	IsHeld bool `json:"isHeld"`

	// HeldKeys are the codes of all keys held down when the event
	// was dispatched, in press order.
	HeldKeys []int `json:"heldKeys"`

	// Modifiers are the modifier keys held when the event was dispatched.
	Modifiers Modifiers `json:"modifiers"`
}

// NewKey returns a new [KeyDown] or [KeyUp] event. The held key
// list is copied so later changes to the caller's slice do not
// affect the event.
func NewKey(typ Types, code int, key string, held []int, mods Modifiers) *KeyEvent {
	ev := &KeyEvent{Code: code, Key: key, IsHeld: typ == KeyDown, HeldKeys: slices.Clone(held), Modifiers: mods}
	if ev.HeldKeys == nil {
		ev.HeldKeys = []int{}
	}
	ev.Init(typ)
	return ev
}

// IsKeyHeld returns whether the key with the given code was held
// when the event was dispatched.
func (ev *KeyEvent) IsKeyHeld(code int) bool {
	return slices.Contains(ev.HeldKeys, code)
}

// IsPrintable returns whether the key produces text input:
// a single character, or Enter, Tab, Backspace or Delete.
func (ev *KeyEvent) IsPrintable() bool {
	if len([]rune(ev.Key)) == 1 {
		return true
	}
	switch ev.Key {
	case "Enter", "Tab", "Backspace", "Delete":
		return true
	}
	return false
}

func (ev *KeyEvent) String() string {
	return fmt.Sprintf("%v{Code: %d, Key: %q, Held: %v, Mods: %v}", ev.Typ, ev.Code, ev.Key, ev.HeldKeys, ev.Modifiers)
}

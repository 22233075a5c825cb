// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package marshal provides stable tokens that stand in for host-side
// objects (DOM elements, gradients, patterns, paths) when drawing
// operations cross the host boundary.
package marshal

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Reference is an opaque, serializable token that identifies a
// host-side object. A Reference never holds the object itself;
// the host resolves the token when it replays an operation.
type Reference struct {

	// ID identifies the object. For element references it is the
	// element's own identifier; for created objects it is a
	// sequential token issued by a [Pool].
	ID string

	// IsElementRef is true if the reference points at an element that
	// already exists on the host (an image or canvas element).
	IsElementRef bool

	// ClassInitializer optionally names the host constructor used to wrap
	// the arguments of a call replayed against a previously created object.
	ClassInitializer string
}

// IsZero returns whether the reference is unset.
func (r Reference) IsZero() bool {
	return r.ID == ""
}

func (r Reference) String() string {
	if r.IsElementRef {
		return "element:" + r.ID
	}
	if r.ClassInitializer != "" {
		return "object:" + r.ID + "(" + r.ClassInitializer + ")"
	}
	return "object:" + r.ID
}

type wireReference struct {
	ID               json.RawMessage `json:"id"`
	IsElementRef     bool            `json:"isElementRef"`
	ClassInitializer string          `json:"classInitializer,omitempty"`
}

// isNumericID reports whether id is a canonical decimal integer,
// which is encoded as a JSON number instead of a string.
func isNumericID(id string) bool {
	if id == "" || len(id) > 18 {
		return false
	}
	if id == "0" {
		return true
	}
	if id[0] == '0' {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the reference in its wire shape
// {"id": number|string, "isElementRef": bool, "classInitializer"?: string}.
func (r Reference) MarshalJSON() ([]byte, error) {
	w := wireReference{IsElementRef: r.IsElementRef, ClassInitializer: r.ClassInitializer}
	if isNumericID(r.ID) {
		w.ID = json.RawMessage(r.ID)
	} else {
		b, err := json.Marshal(r.ID)
		if err != nil {
			return nil, err
		}
		w.ID = b
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire shape, accepting numeric or string ids.
func (r *Reference) UnmarshalJSON(b []byte) error {
	var w wireReference
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if len(w.ID) == 0 {
		return fmt.Errorf("marshal: reference without id: %s", b)
	}
	if w.ID[0] == '"' {
		var s string
		if err := json.Unmarshal(w.ID, &s); err != nil {
			return err
		}
		r.ID = s
	} else {
		n, err := strconv.ParseInt(string(w.ID), 10, 64)
		if err != nil {
			return fmt.Errorf("marshal: invalid reference id %s: %w", w.ID, err)
		}
		r.ID = strconv.FormatInt(n, 10)
	}
	r.IsElementRef = w.IsElementRef
	r.ClassInitializer = w.ClassInitializer
	return nil
}

// IsReferenceJSON reports whether a decoded generic JSON object has the
// shape of a [Reference], and returns it if so.
func IsReferenceJSON(v any) (Reference, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Reference{}, false
	}
	id, hasID := m["id"]
	er, hasER := m["isElementRef"].(bool)
	if !hasID || !hasER {
		return Reference{}, false
	}
	r := Reference{IsElementRef: er}
	switch id := id.(type) {
	case string:
		r.ID = id
	case float64:
		r.ID = strconv.FormatInt(int64(id), 10)
	default:
		return Reference{}, false
	}
	if ci, ok := m["classInitializer"].(string); ok {
		r.ClassInitializer = ci
	}
	return r, true
}

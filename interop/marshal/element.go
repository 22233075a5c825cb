// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package marshal

// Element is a host-side element (an image or canvas) that can be
// passed as a drawing argument. Its id must be unique on the host.
type Element interface {
	ElementID() string
}

// ElementID is a plain string [Element].
type ElementID string

func (e ElementID) ElementID() string { return string(e) }

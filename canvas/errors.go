// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/interop/marshal"
	"cogentcore.org/canvas2d/interop/op"
)

var (
	// ErrNotReady is returned by operations that need the host
	// context of a canvas before it is ready.
	ErrNotReady = errors.New("canvas: not ready")

	// ErrDisposed is returned by operations on a disposed canvas.
	ErrDisposed = errors.New("canvas: disposed")

	// ErrTimeout is returned when a canvas does not become ready in time.
	ErrTimeout = errors.New("canvas: timed out waiting for readiness")

	// ErrInvalidArgument is returned for bad export formats, qualities,
	// sizes and duplicate canvas names.
	ErrInvalidArgument = op.ErrInvalidArgument

	// ErrMissingElementID is returned when an element has no id.
	ErrMissingElementID = marshal.ErrMissingElementID
)

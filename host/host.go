// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host defines the boundary between managed drawing code and
// the runtime that owns the native 2D drawing surfaces. Every call
// crosses an expensive asynchronous boundary, so drawing operations
// are sent in batches with [Host.ProcessBatch].
package host

import (
	"context"
	"errors"

	"cogentcore.org/canvas2d/events"
	"cogentcore.org/canvas2d/interop/op"
)

// ErrDisconnected is returned when the host side is gone.
var ErrDisconnected = errors.New("host: disconnected")

// ErrNoCanvas is returned when a call names a canvas the host does not know.
var ErrNoCanvas = errors.New("host: no such canvas")

// ColorSpaces are the color spaces of a 2D context.
type ColorSpaces string

const (
	SRGB      ColorSpaces = "srgb"
	DisplayP3 ColorSpaces = "display-p3"
)

// Options are the 2D context creation options of a canvas.
type Options struct {

	// Width is the canvas width in pixels.
	Width int `json:"width" default:"800"`

	// Height is the canvas height in pixels.
	Height int `json:"height" default:"600"`

	// Alpha is whether the canvas has an alpha channel.
	Alpha bool `json:"alpha"`

	// Desynchronized hints the host to decouple painting from the event loop.
	Desynchronized bool `json:"desynchronized" default:"true"`

	// ColorSpace is the color space of the context.
	ColorSpace ColorSpaces `json:"colorSpace" default:"srgb"`

	// WillReadFrequently hints that pixels will be read back often.
	WillReadFrequently bool `json:"willReadFrequently"`

	// Hidden is whether the canvas element is hidden from view,
	// as for temporary export canvases.
	Hidden bool `json:"hidden"`
}

// DefaultOptions returns the default context options.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Desynchronized: true, ColorSpace: SRGB}
}

// BlobData is the result of exporting a canvas to an encoded image.
type BlobData struct {

	// ObjectURL is a host URL through which the blob can be fetched.
	ObjectURL string `json:"objectUrl"`

	// MIME is the type of the encoded data, as reported by the host.
	MIME string `json:"mime,omitempty"`

	// Data is the encoded image, if the host returns it.
	Data []byte `json:"data,omitempty"`
}

// Receiver receives the events the host sends to one canvas.
// Receive is called from host goroutines and must not block.
type Receiver interface {
	Receive(ev events.Event)
}

// ReceiverFunc is a function [Receiver].
type ReceiverFunc func(ev events.Event)

func (f ReceiverFunc) Receive(ev events.Event) { f(ev) }

// Host is the boundary to a runtime owning native 2D canvases.
// All methods are safe for concurrent use. Cancelling ctx returns
// control to the caller but leaves the call in flight on the host.
type Host interface {

	// InitCanvas creates the 2D context of the canvas with the given id
	// and registers recv for its events. The host sends [events.Ready]
	// to recv once the context exists.
	InitCanvas(ctx context.Context, id string, opts Options, recv Receiver) error

	// ProcessBatch replays ops in order against the canvas context.
	// Failures of individual ops are only reported on the host side.
	ProcessBatch(ctx context.Context, id string, ops []op.Op) error

	// DirectCall invokes method immediately and returns its result
	// decoded from JSON.
	DirectCall(ctx context.Context, id string, method op.Methods, args ...any) (any, error)

	// ToBlob encodes the canvas as an image of the given MIME type
	// and quality in [0, 1].
	ToBlob(ctx context.Context, id string, mime string, quality float64) (*BlobData, error)

	// ToDataURL encodes the canvas as a data URL.
	ToDataURL(ctx context.Context, id string, mime string, quality float64) (string, error)

	// ResizeCanvas sets the canvas size; the host sends [events.Resize].
	ResizeCanvas(ctx context.Context, id string, width, height int) error

	// RemoveContext tears down the canvas context and its listeners.
	RemoveContext(ctx context.Context, id string) error
}

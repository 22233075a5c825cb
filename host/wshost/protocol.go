// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wshost implements [host.Host] over a WebSocket connection
// to a host runtime, either the browser replayer served by [Server]
// or a Go [Peer].
//
// The protocol is JSON text messages of three types. A call carries
// a sequence number, a method name, a canvas id and parameters, and
// is answered by a reply with the same sequence number holding the
// result or an error. Events flow from the runtime to the session and
// name their canvas, or none for input broadcast to every canvas.
package wshost

import (
	"encoding/json"

	"cogentcore.org/canvas2d/interop/op"
)

// message is one protocol message.
type message struct {
	Type   string          `json:"type"`
	Seq    uint64          `json:"seq,omitempty"`
	Method string          `json:"method,omitempty"`
	Canvas string          `json:"canvas,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Code   string          `json:"code,omitempty"`
	Event  string          `json:"event,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// message types
const (
	typeCall  = "call"
	typeReply = "reply"
	typeEvent = "event"
)

// error codes
const (
	codeNoCanvas = "noCanvas"
	codeInvalid  = "invalidArgument"
)

// call methods
const (
	methodInitCanvas    = "initCanvas"
	methodProcessBatch  = "processBatch"
	methodDirectCall    = "directCall"
	methodToBlob        = "toBlob"
	methodToDataURL     = "toDataUrl"
	methodResizeCanvas  = "resizeCanvas"
	methodRemoveContext = "removeContext"
)

type batchParams struct {
	Ops []op.Op `json:"ops"`
}

type exportParams struct {
	MIME    string  `json:"mime"`
	Quality float64 `json:"quality"`
}

type sizeParams struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

// Package jshost implements [host.Host] inside a browser wasm module
// by driving the canvas2d.js runtime of package assets directly,
// without a network connection.
package jshost

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/events"
	"cogentcore.org/canvas2d/host"
	"cogentcore.org/canvas2d/interop/op"
	"github.com/hack-pad/safejs"
)

// Host is a [host.Host] backed by a canvas2d.js runtime in the page.
type Host struct {
	rt   safejs.Value
	json safejs.Value
	send safejs.Func

	mu     sync.Mutex
	recvs  map[string]host.Receiver
	closed bool
}

var _ host.Host = (*Host)(nil)

// New starts a canvas2d.js runtime. The page must have loaded
// canvas2d.js before the wasm module.
func New() (*Host, error) {
	g := safejs.Global()
	c2d, err := g.Get("canvas2d")
	if err != nil {
		return nil, err
	}
	if c2d.IsUndefined() {
		return nil, errors.New("jshost: canvas2d.js is not loaded")
	}
	h := &Host{recvs: map[string]host.Receiver{}}
	if h.json, err = g.Get("JSON"); err != nil {
		return nil, err
	}
	if h.send, err = safejs.FuncOf(h.event); err != nil {
		return nil, err
	}
	if h.rt, err = c2d.Call("runtime", h.send.Value()); err != nil {
		h.send.Release()
		return nil, err
	}
	return h, nil
}

// Close stops the runtime and removes all of its canvases.
func (h *Host) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.recvs = map[string]host.Receiver{}
	h.mu.Unlock()
	_, err := h.rt.Call("close")
	h.send.Release()
	return err
}

// event receives (canvasId, eventName, data) from the runtime.
func (h *Host) event(this safejs.Value, args []safejs.Value) any {
	if len(args) < 3 {
		return nil
	}
	canvas, err1 := args[0].String()
	name, err2 := args[1].String()
	data, err3 := h.stringify(args[2])
	if errors.Log(errors.Join(err1, err2, err3)) != nil {
		return nil
	}
	typ, ok := events.TypeByName(name)
	if !ok {
		slog.Warn("jshost: unknown event", "event", name)
		return nil
	}
	h.mu.Lock()
	var recvs []host.Receiver
	if canvas != "" {
		if r := h.recvs[canvas]; r != nil {
			recvs = append(recvs, r)
		}
	} else if typ.IsInput() {
		for _, r := range h.recvs {
			recvs = append(recvs, r)
		}
	}
	h.mu.Unlock()
	for _, r := range recvs {
		ev, err := events.Decode(name, []byte(data))
		if errors.Log(err) != nil {
			return nil
		}
		r.Receive(ev)
	}
	return nil
}

func (h *Host) stringify(v safejs.Value) (string, error) {
	if v.IsUndefined() {
		return "null", nil
	}
	s, err := h.json.Call("stringify", v)
	if err != nil {
		return "", err
	}
	return s.String()
}

type outcome struct {
	result string
	code   string
	err    error
}

// call runs a runtime call and decodes its result into result, if non-nil.
func (h *Host) call(ctx context.Context, method, id string, params, result any) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return host.ErrDisconnected
	}
	pb, err := json.Marshal(params)
	if err != nil {
		return err
	}
	pv, err := h.json.Call("parse", string(pb))
	if err != nil {
		return err
	}
	promise, err := h.rt.Call("call", method, id, pv)
	if err != nil {
		return err
	}

	done := make(chan outcome, 1)
	then, err := safejs.FuncOf(func(this safejs.Value, args []safejs.Value) any {
		o := outcome{result: "null"}
		if len(args) > 0 {
			o.result, o.err = h.stringify(args[0])
		}
		done <- o
		return nil
	})
	if err != nil {
		return err
	}
	catch, err := safejs.FuncOf(func(this safejs.Value, args []safejs.Value) any {
		o := outcome{err: errors.New("jshost: call failed")}
		if len(args) > 0 {
			if msg, err := args[0].Get("message"); err == nil && !msg.IsUndefined() {
				s, _ := msg.String()
				o.err = errors.New(s)
			}
			if code, err := args[0].Get("code"); err == nil && !code.IsUndefined() {
				o.code, _ = code.String()
			}
		}
		done <- o
		return nil
	})
	if err != nil {
		then.Release()
		return err
	}
	if _, err := promise.Call("then", then.Value(), catch.Value()); err != nil {
		then.Release()
		catch.Release()
		return err
	}

	select {
	case o := <-done:
		then.Release()
		catch.Release()
		switch {
		case o.code == "noCanvas":
			return fmt.Errorf("%w: %s", host.ErrNoCanvas, id)
		case o.err != nil:
			return fmt.Errorf("jshost: %s %s: %w", method, id, o.err)
		case result == nil:
			return nil
		}
		return json.Unmarshal([]byte(o.result), result)
	case <-ctx.Done():
		// the callbacks stay alive until the call settles
		go func() {
			<-done
			then.Release()
			catch.Release()
		}()
		return ctx.Err()
	}
}

func (h *Host) InitCanvas(ctx context.Context, id string, opts host.Options, recv host.Receiver) error {
	if recv != nil {
		h.mu.Lock()
		h.recvs[id] = recv
		h.mu.Unlock()
	}
	return h.call(ctx, "initCanvas", id, opts, nil)
}

func (h *Host) ProcessBatch(ctx context.Context, id string, ops []op.Op) error {
	return h.call(ctx, "processBatch", id, map[string]any{"ops": ops}, nil)
}

func (h *Host) DirectCall(ctx context.Context, id string, method op.Methods, args ...any) (any, error) {
	o, err := op.MethodCall(method, args...)
	if err != nil {
		return nil, err
	}
	var res any
	err = h.call(ctx, "directCall", id, o, &res)
	return res, err
}

func (h *Host) ToBlob(ctx context.Context, id string, mime string, quality float64) (*host.BlobData, error) {
	b := &host.BlobData{}
	if err := h.call(ctx, "toBlob", id, map[string]any{"mime": mime, "quality": quality}, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (h *Host) ToDataURL(ctx context.Context, id string, mime string, quality float64) (string, error) {
	var url string
	err := h.call(ctx, "toDataUrl", id, map[string]any{"mime": mime, "quality": quality}, &url)
	return url, err
}

func (h *Host) ResizeCanvas(ctx context.Context, id string, width, height int) error {
	return h.call(ctx, "resizeCanvas", id, map[string]int{"width": width, "height": height}, nil)
}

func (h *Host) RemoveContext(ctx context.Context, id string) error {
	h.mu.Lock()
	delete(h.recvs, id)
	h.mu.Unlock()
	return h.call(ctx, "removeContext", id, nil, nil)
}

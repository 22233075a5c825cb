// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wshost

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/base/websocket"
	"cogentcore.org/canvas2d/events"
	"cogentcore.org/canvas2d/host"
	"cogentcore.org/canvas2d/interop/op"
	"github.com/tidwall/gjson"
)

// Session is the [host.Host] of one WebSocket connection to a host
// runtime. Calls are sent in order and matched to their replies by
// sequence number; pending calls fail with [host.ErrDisconnected]
// when the connection closes.
type Session struct {
	ws *websocket.Client

	mu      sync.Mutex
	seq     uint64
	pending map[uint64]chan *message
	recvs   map[string]host.Receiver
	closed  bool
}

var _ host.Host = (*Session)(nil)

// NewSession returns a session on the connection and starts reading it.
func NewSession(ws *websocket.Client) *Session {
	s := &Session{ws: ws, pending: map[uint64]chan *message{}, recvs: map[string]host.Receiver{}}
	ws.OnMessage(s.handle)
	ws.OnClose(s.disconnect)
	return s
}

// Done returns a channel that is closed when the connection is closed.
func (s *Session) Done() <-chan struct{} { return s.ws.Done() }

// Close closes the connection.
func (s *Session) Close() error { return s.ws.Close() }

// Canvases returns the number of canvases with registered receivers.
func (s *Session) Canvases() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recvs)
}

func (s *Session) disconnect() {
	s.mu.Lock()
	s.closed = true
	for seq, ch := range s.pending {
		close(ch)
		delete(s.pending, seq)
	}
	s.mu.Unlock()
}

func (s *Session) handle(typ websocket.MessageTypes, msg []byte) {
	if typ != websocket.TextMessage {
		return
	}
	res := gjson.GetManyBytes(msg, "type", "seq", "canvas", "event")
	switch res[0].String() {
	case typeReply:
		s.reply(res[1].Uint(), msg)
	case typeEvent:
		s.event(res[2].String(), res[3].String(), gjson.GetBytes(msg, "data").Raw)
	default:
		slog.Warn("wshost: unexpected message", "type", res[0].String())
	}
}

func (s *Session) reply(seq uint64, msg []byte) {
	s.mu.Lock()
	ch, ok := s.pending[seq]
	delete(s.pending, seq)
	s.mu.Unlock()
	if !ok {
		return
	}
	m := &message{}
	if err := json.Unmarshal(msg, m); err != nil {
		m.Error = err.Error()
	}
	ch <- m
}

// event delivers an event to its canvas, or an input event without a
// canvas to every canvas, each receiving its own copy.
func (s *Session) event(canvas, name, data string) {
	typ, ok := events.TypeByName(name)
	if !ok {
		slog.Warn("wshost: unknown event", "event", name)
		return
	}
	s.mu.Lock()
	var recvs []host.Receiver
	if canvas != "" {
		if r := s.recvs[canvas]; r != nil {
			recvs = append(recvs, r)
		}
	} else if typ.IsInput() {
		for _, r := range s.recvs {
			recvs = append(recvs, r)
		}
	}
	s.mu.Unlock()
	for _, r := range recvs {
		ev, err := events.Decode(name, []byte(data))
		if errors.Log(err) != nil {
			return
		}
		r.Receive(ev)
	}
}

// call sends a call and decodes the reply result into result, if non-nil.
func (s *Session) call(ctx context.Context, method, canvas string, params, result any) error {
	m := &message{Type: typeCall, Method: method, Canvas: canvas}
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return err
		}
		m.Params = b
	}
	ch := make(chan *message, 1)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return host.ErrDisconnected
	}
	s.seq++
	m.Seq = s.seq
	s.pending[m.Seq] = ch
	s.mu.Unlock()

	if err := s.ws.SendJSON(m); err != nil {
		s.forget(m.Seq)
		return fmt.Errorf("%w: %w", host.ErrDisconnected, err)
	}
	select {
	case r, ok := <-ch:
		if !ok {
			return host.ErrDisconnected
		}
		return r.err(method, canvas, result)
	case <-s.ws.Done():
		select {
		case r, ok := <-ch:
			if ok {
				return r.err(method, canvas, result)
			}
		default:
		}
		return host.ErrDisconnected
	case <-ctx.Done():
		s.forget(m.Seq)
		return ctx.Err()
	}
}

func (s *Session) forget(seq uint64) {
	s.mu.Lock()
	delete(s.pending, seq)
	s.mu.Unlock()
}

// err returns the error of a reply, or decodes its result.
func (m *message) err(method, canvas string, result any) error {
	switch {
	case m.Code == codeNoCanvas:
		return fmt.Errorf("%w: %s", host.ErrNoCanvas, canvas)
	case m.Code == codeInvalid:
		return fmt.Errorf("%w: %s: %s", op.ErrInvalidArgument, method, m.Error)
	case m.Error != "":
		return fmt.Errorf("wshost: %s %s: %s", method, canvas, m.Error)
	case result == nil || len(m.Result) == 0:
		return nil
	}
	return json.Unmarshal(m.Result, result)
}

func (s *Session) InitCanvas(ctx context.Context, id string, opts host.Options, recv host.Receiver) error {
	if recv != nil {
		s.mu.Lock()
		s.recvs[id] = recv
		s.mu.Unlock()
	}
	err := s.call(ctx, methodInitCanvas, id, opts, nil)
	if err != nil {
		s.mu.Lock()
		delete(s.recvs, id)
		s.mu.Unlock()
	}
	return err
}

func (s *Session) ProcessBatch(ctx context.Context, id string, ops []op.Op) error {
	return s.call(ctx, methodProcessBatch, id, batchParams{Ops: ops}, nil)
}

func (s *Session) DirectCall(ctx context.Context, id string, method op.Methods, args ...any) (any, error) {
	o, err := op.MethodCall(method, args...)
	if err != nil {
		return nil, err
	}
	var res any
	err = s.call(ctx, methodDirectCall, id, o, &res)
	return res, err
}

func (s *Session) ToBlob(ctx context.Context, id string, mime string, quality float64) (*host.BlobData, error) {
	b := &host.BlobData{}
	if err := s.call(ctx, methodToBlob, id, exportParams{MIME: mime, Quality: quality}, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Session) ToDataURL(ctx context.Context, id string, mime string, quality float64) (string, error) {
	var url string
	err := s.call(ctx, methodToDataURL, id, exportParams{MIME: mime, Quality: quality}, &url)
	return url, err
}

func (s *Session) ResizeCanvas(ctx context.Context, id string, width, height int) error {
	return s.call(ctx, methodResizeCanvas, id, sizeParams{Width: width, Height: height}, nil)
}

func (s *Session) RemoveContext(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.recvs, id)
	s.mu.Unlock()
	return s.call(ctx, methodRemoveContext, id, nil, nil)
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wshost

import (
	"context"
	"encoding/json"
	"log/slog"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/base/websocket"
	"cogentcore.org/canvas2d/events"
	"cogentcore.org/canvas2d/host"
	"cogentcore.org/canvas2d/interop/op"
	"github.com/tidwall/gjson"
)

// Peer is the runtime end of a connection: it answers the calls of a
// remote [Session] by invoking a local [host.Host], such as a software
// host, and forwards the events of that host back.
type Peer struct {
	ws   *websocket.Client
	host host.Host
}

// NewPeer returns a peer serving h on the connection.
func NewPeer(ws *websocket.Client, h host.Host) *Peer {
	return &Peer{ws: ws, host: h}
}

// Dial connects to the WebSocket URL of a [Server] and returns a peer
// serving h on it.
func Dial(ctx context.Context, url string, h host.Host) (*Peer, error) {
	ws, err := websocket.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewPeer(ws, h), nil
}

// Serve answers calls until the connection closes or ctx is done.
// Calls are handled one at a time in arrival order.
func (p *Peer) Serve(ctx context.Context) error {
	p.ws.OnMessage(func(typ websocket.MessageTypes, msg []byte) {
		if typ != websocket.TextMessage || gjson.GetBytes(msg, "type").String() != typeCall {
			return
		}
		m := &message{}
		if errors.Log(json.Unmarshal(msg, m)) != nil {
			return
		}
		reply := p.call(ctx, m)
		if err := p.ws.SendJSON(reply); err != nil {
			slog.Debug("wshost: peer reply", "err", err)
		}
	})
	select {
	case <-p.ws.Done():
		return nil
	case <-ctx.Done():
		p.ws.Close()
		return ctx.Err()
	}
}

// Broadcast sends an input event to every canvas of the session.
func (p *Peer) Broadcast(ev events.Event) error {
	return p.send("", ev)
}

func (p *Peer) send(canvas string, ev events.Event) error {
	name, data, err := events.Encode(ev)
	if err != nil {
		return err
	}
	return p.ws.SendJSON(&message{Type: typeEvent, Canvas: canvas, Event: name, Data: data})
}

// receiver forwards the events of one canvas.
func (p *Peer) receiver(canvas string) host.Receiver {
	return host.ReceiverFunc(func(ev events.Event) {
		if err := p.send(canvas, ev); err != nil {
			slog.Debug("wshost: peer event", "canvas", canvas, "event", ev.Type(), "err", err)
		}
	})
}

func (p *Peer) call(ctx context.Context, m *message) *message {
	r := &message{Type: typeReply, Seq: m.Seq}
	res, err := p.invoke(ctx, m)
	switch {
	case errors.Is(err, host.ErrNoCanvas):
		r.Code = codeNoCanvas
		r.Error = err.Error()
	case errors.Is(err, op.ErrInvalidArgument):
		r.Code = codeInvalid
		r.Error = err.Error()
	case err != nil:
		r.Error = err.Error()
	case res != nil:
		b, err := json.Marshal(res)
		if err != nil {
			r.Error = err.Error()
			break
		}
		r.Result = b
	}
	return r
}

func (p *Peer) invoke(ctx context.Context, m *message) (any, error) {
	id := m.Canvas
	switch m.Method {
	case methodInitCanvas:
		opts := host.DefaultOptions()
		if err := unmarshal(m.Params, &opts); err != nil {
			return nil, err
		}
		return nil, p.host.InitCanvas(ctx, id, opts, p.receiver(id))
	case methodProcessBatch:
		var bp batchParams
		if err := unmarshal(m.Params, &bp); err != nil {
			return nil, err
		}
		return nil, p.host.ProcessBatch(ctx, id, bp.Ops)
	case methodDirectCall:
		var o op.Op
		if err := unmarshal(m.Params, &o); err != nil {
			return nil, err
		}
		return p.host.DirectCall(ctx, id, o.Method(), o.Args()...)
	case methodToBlob:
		var ep exportParams
		if err := unmarshal(m.Params, &ep); err != nil {
			return nil, err
		}
		return p.host.ToBlob(ctx, id, ep.MIME, ep.Quality)
	case methodToDataURL:
		var ep exportParams
		if err := unmarshal(m.Params, &ep); err != nil {
			return nil, err
		}
		return p.host.ToDataURL(ctx, id, ep.MIME, ep.Quality)
	case methodResizeCanvas:
		var sp sizeParams
		if err := unmarshal(m.Params, &sp); err != nil {
			return nil, err
		}
		return nil, p.host.ResizeCanvas(ctx, id, sp.Width, sp.Height)
	case methodRemoveContext:
		return nil, p.host.RemoveContext(ctx, id)
	}
	return nil, errors.New("wshost: unknown method " + m.Method)
}

func unmarshal(b json.RawMessage, v any) error {
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Join(op.ErrInvalidArgument, err)
	}
	return nil
}

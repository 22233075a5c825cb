// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package websocket provides a message oriented WebSocket connection
// safe for concurrent senders.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageTypes are the types of WebSocket data messages.
type MessageTypes int

const (
	// TextMessage is a UTF-8 text message, such as JSON.
	TextMessage MessageTypes = websocket.TextMessage

	// BinaryMessage is a binary data message.
	BinaryMessage MessageTypes = websocket.BinaryMessage
)

// closeWait is how long [Client.Close] waits for the peer to
// acknowledge the close handshake.
const closeWait = time.Second

// Client represents a WebSocket connection.
// You can use [Connect] or [Wrap] to create a new Client.
type Client struct {

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// mu serializes writes to conn.
	mu sync.Mutex

	// done is a channel that is closed when the connection is closed.
	done chan struct{}

	// reading is set once [Client.OnMessage] has started the read loop.
	reading bool
}

// Connect connects to a WebSocket server and returns a [Client].
func Connect(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return Wrap(conn), nil
}

// Wrap returns a [Client] for an established connection, such as one
// returned by [websocket.Upgrader.Upgrade].
func Wrap(conn *websocket.Conn) *Client {
	return &Client{conn: conn, done: make(chan struct{})}
}

// OnMessage sets a callback function to be called for each received
// message, in order, on a single goroutine. This function can only be
// called once.
func (c *Client) OnMessage(f func(typ MessageTypes, msg []byte)) {
	c.mu.Lock()
	c.reading = true
	c.mu.Unlock()
	go func() {
		defer close(c.done)
		defer c.conn.Close()
		for {
			typ, msg, err := c.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					slog.Debug("websocket: read", "err", err)
				}
				return
			}
			f(MessageTypes(typ), msg)
		}
	}()
}

// Send sends a message with the given type and message.
func (c *Client) Send(typ MessageTypes, msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(int(typ), msg)
}

// SendJSON sends v encoded as a JSON text message.
func (c *Client) SendJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Send(TextMessage, b)
}

// Done returns a channel that is closed when the connection is closed.
// It is only closed after [Client.OnMessage] has been called.
func (c *Client) Done() <-chan struct{} { return c.done }

// Close cleanly closes the WebSocket connection, waiting briefly for
// the peer to acknowledge. Once the connection is closed, the read
// loop of [Client.OnMessage] ends and [Client.OnClose] is triggered.
func (c *Client) Close() error {
	c.mu.Lock()
	err := c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	reading := c.reading
	c.mu.Unlock()
	if reading {
		select {
		case <-c.done:
			return err
		case <-time.After(closeWait):
		}
	}
	c.conn.Close()
	return err
}

// OnClose sets a callback function to be called when the connection is closed.
// This function can only be called once.
func (c *Client) OnClose(f func()) {
	go func() {
		<-c.done
		f()
	}()
}

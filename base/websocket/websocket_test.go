// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcho(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		c := Wrap(conn)
		c.OnMessage(func(typ MessageTypes, msg []byte) {
			c.Send(typ, append([]byte("echo "), msg...))
		})
	}))
	defer srv.Close()

	c, err := Connect(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)
	got := make(chan string, 2)
	c.OnMessage(func(typ MessageTypes, msg []byte) {
		assert.Equal(t, TextMessage, typ)
		got <- string(msg)
	})
	closed := make(chan struct{})
	c.OnClose(func() { close(closed) })

	require.NoError(t, c.Send(TextMessage, []byte("hi")))
	require.NoError(t, c.SendJSON(map[string]int{"a": 1}))
	assert.Equal(t, "echo hi", <-got)
	assert.Equal(t, `echo {"a":1}`, <-got)

	require.NoError(t, c.Close())
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("OnClose not called")
	}
}

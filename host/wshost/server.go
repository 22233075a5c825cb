// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wshost

import (
	"log/slog"
	"net/http"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/base/websocket"
	"cogentcore.org/canvas2d/host/assets"
	gorilla "github.com/gorilla/websocket"
)

// SocketPath is the path of the WebSocket endpoint of a [Server].
const SocketPath = "/ws"

// Server serves the browser host page and its replayer script, and
// accepts WebSocket connections from host runtimes at [SocketPath],
// each of which becomes a [Session].
type Server struct {

	// Upgrader upgrades HTTP connections to WebSocket connections.
	Upgrader gorilla.Upgrader

	// OnSession is called on its own goroutine for each new session.
	// The session is closed when it returns.
	OnSession func(s *Session)

	mux *http.ServeMux
}

// NewServer returns a server calling onSession for each connection.
func NewServer(onSession func(s *Session)) *Server {
	sv := &Server{OnSession: onSession, mux: http.NewServeMux()}
	sv.mux.Handle("/", http.FileServerFS(assets.FS))
	sv.mux.HandleFunc(SocketPath, sv.serveSocket)
	return sv
}

func (sv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sv.mux.ServeHTTP(w, r)
}

func (sv *Server) serveSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := sv.Upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	s := NewSession(websocket.Wrap(conn))
	slog.Info("wshost: session opened", "remote", r.RemoteAddr)
	go func() {
		defer func() {
			s.Close()
			slog.Info("wshost: session closed", "remote", r.RemoteAddr)
		}()
		if sv.OnSession != nil {
			sv.OnSession(s)
		}
	}()
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/canvas"
	"cogentcore.org/canvas2d/config"
	"cogentcore.org/canvas2d/events"
	"cogentcore.org/canvas2d/host/wshost"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	var watch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser host and draw the demo scene on every connection",
		Long: "Serve the browser host page and draw the animated demo scene on every\n" +
			"connected page or peer. Pressing S on the page saves a snapshot.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), addr, watch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the export settings when the config file changes")
	return cmd
}

func (a *app) serve(ctx context.Context, addr string, watch bool) error {
	if addr != "" {
		a.cfg.Addr = addr
	}
	var export atomic.Pointer[config.Export]
	export.Store(&a.cfg.Export)
	if watch {
		go func() {
			err := config.Watch(ctx, a.configPath, func(c *config.Config) { export.Store(&c.Export) })
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.Warn("serve: watch config", "err", err)
			}
		}()
	}

	sv := wshost.NewServer(func(s *wshost.Session) {
		m := a.manager(s)
		defer m.Close(context.Background())
		spec := canvas.Spec{Name: "demo", Options: a.cfg.Canvas}
		start := time.Now()
		spec.OnFrame = func(c *canvas.Canvas, ts float64) {
			demo(c, time.Since(start).Seconds())
		}
		c, err := m.Create(ctx, spec)
		if err != nil {
			slog.Error("serve: create canvas", "err", err)
			return
		}
		c.On(events.KeyDown, func(ev events.Event) {
			if k := ev.(*events.KeyEvent); k.Key == "s" || k.Key == "S" {
				go snapshot(ctx, c, *export.Load())
			}
		})
		select {
		case <-s.Done():
		case <-ctx.Done():
		}
	})
	srv := &http.Server{Addr: a.cfg.Addr, Handler: sv}
	go func() {
		<-ctx.Done()
		shut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shut)
	}()
	slog.Warn("serving", "addr", "http://"+a.cfg.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// snapshot writes the canvas to the export output file.
func snapshot(ctx context.Context, c *canvas.Canvas, ex config.Export) {
	b, err := c.ToBlob(ctx, ex.MIME, ex.Quality)
	if err != nil {
		slog.Error("serve: snapshot", "err", err)
		return
	}
	if err := os.WriteFile(ex.Output, b.Data, 0o644); err != nil {
		slog.Error("serve: snapshot", "err", err)
		return
	}
	slog.Info("serve: snapshot saved", "file", ex.Output, "mime", b.MIME)
}

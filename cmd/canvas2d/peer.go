// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/host/softhost"
	"cogentcore.org/canvas2d/host/wshost"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (a *app) peerCmd() *cobra.Command {
	var url string
	var images, fonts []string
	cmd := &cobra.Command{
		Use:   "peer",
		Short: "Connect to a server as a headless software host runtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url != "" {
				a.cfg.URL = url
			}
			return a.peer(cmd.Context(), images, fonts)
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "server websocket URL (default from config)")
	cmd.Flags().StringSliceVar(&images, "image", nil, "image element as id=path (PNG, JPEG or WebP)")
	cmd.Flags().StringSliceVar(&fonts, "font", nil, "font as family=path (TTF or OTF)")
	return cmd
}

// peer serves a software host to the server until either side stops.
func (a *app) peer(ctx context.Context, images, fonts []string) error {
	sh := softhost.New()
	if err := loadFonts(sh, fonts); err != nil {
		return err
	}
	if _, err := loadImages(sh, images); err != nil {
		return err
	}
	p, err := wshost.Dial(ctx, a.cfg.URL, sh)
	if err != nil {
		return err
	}
	slog.Info("peer: connected", "url", a.cfg.URL)
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return p.Serve(gctx)
	})
	g.Go(func() error { return sh.Run(gctx, a.cfg.FPS) })
	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadFonts adds the fonts given as family=path to the software host.
func loadFonts(sh *softhost.Host, specs []string) error {
	for _, sp := range specs {
		family, path, ok := strings.Cut(sp, "=")
		if !ok {
			return errors.New("font must be given as family=path: " + sp)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := sh.Fonts().AddFont(family, data); err != nil {
			return err
		}
	}
	return nil
}

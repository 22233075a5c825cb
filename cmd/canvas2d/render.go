// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"os"

	"cogentcore.org/canvas2d/canvas"
	"cogentcore.org/canvas2d/host/softhost"
	"github.com/spf13/cobra"
)

// renderOptions are the flags of the render command.
type renderOptions struct {
	width, height int
	at            float64
	out, mime     string
	quality       float64
	images        []string
	fonts         []string
}

func (a *app) renderCmd() *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo scene headlessly to an image file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd.Context(), o)
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.width, "width", 0, "canvas width (default from config)")
	f.IntVar(&o.height, "height", 0, "canvas height (default from config)")
	f.Float64Var(&o.at, "at", 0, "scene time in seconds")
	f.StringVarP(&o.out, "out", "o", "", "output file (default from config)")
	f.StringVar(&o.mime, "mime", "", "image type: image/png, image/jpeg or image/webp (default from config)")
	f.Float64Var(&o.quality, "quality", -1, "lossy encoder quality in [0, 1] (default from config)")
	f.StringSliceVar(&o.images, "image", nil, "image element as id=path (PNG, JPEG or WebP)")
	f.StringSliceVar(&o.fonts, "font", nil, "font as family=path (TTF or OTF)")
	return cmd
}

func (a *app) render(ctx context.Context, o *renderOptions) error {
	ex := a.cfg.Export
	if o.out != "" {
		ex.Output = o.out
	}
	if o.mime != "" {
		ex.MIME = o.mime
	}
	if o.quality >= 0 {
		ex.Quality = o.quality
	}
	w, h := o.width, o.height
	if w <= 0 {
		w = a.cfg.Canvas.Width
	}
	if h <= 0 {
		h = a.cfg.Canvas.Height
	}

	sh := softhost.New()
	if err := loadFonts(sh, o.fonts); err != nil {
		return err
	}
	ids, err := loadImages(sh, o.images)
	if err != nil {
		return err
	}
	m := a.manager(sh)
	defer m.Close(ctx)
	b, err := m.RenderAndExport(ctx, w, h, func(c *canvas.Canvas) {
		demo(c, o.at, ids...)
	}, ex.MIME, ex.Quality)
	if err != nil {
		return err
	}
	if err := os.WriteFile(ex.Output, b.Data, 0o644); err != nil {
		return err
	}
	slog.Info("render: saved", "file", ex.Output, "mime", b.MIME, "width", w, "height", h)
	return nil
}

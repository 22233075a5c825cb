// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command canvas2d serves, renders and hosts batched 2D canvases.
package main

import (
	"context"
	"os"
	"os/signal"

	"cogentcore.org/canvas2d/base/logx"
	"cogentcore.org/canvas2d/canvas"
	"cogentcore.org/canvas2d/config"
	"cogentcore.org/canvas2d/host"
	"github.com/spf13/cobra"
)

// app holds the state shared by the commands.
type app struct {
	configPath string
	cfg        *config.Config
	vv, v, q   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRoot().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "canvas2d",
		Short:         "Batched 2D canvas rendering over websocket, wasm and software hosts",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "~/.canvas2d.toml", "config file (TOML or YAML)")
	pf.BoolVar(&a.vv, "vv", false, "log debug messages")
	pf.BoolVarP(&a.v, "verbose", "v", false, "log info messages")
	pf.BoolVarP(&a.q, "quiet", "q", false, "only log errors")
	root.AddCommand(a.serveCmd(), a.renderCmd(), a.peerCmd())
	return root
}

// setup loads the config and installs the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	lg := cfg.Log
	logx.UserLevel = logx.LevelFromFlags(a.vv || lg.VeryVerbose, a.v || lg.Verbose, a.q || lg.Quiet)
	logx.SetDefaultLogger()
	return nil
}

// manager returns a canvas manager on h configured from the config.
func (a *app) manager(h host.Host) *canvas.Manager {
	m := canvas.NewManager(h)
	m.ReadyAttempts = a.cfg.Ready.Attempts
	m.ReadyInterval = a.cfg.Ready.Interval()
	return m
}

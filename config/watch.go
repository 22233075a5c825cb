// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watch reloads the config file at path whenever it changes and calls
// fn with the result, until ctx is done. The directory is watched so
// that editors replacing the file are noticed. Reload errors are
// logged and the previous config is kept.
func Watch(ctx context.Context, path string, fn func(c *Config)) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config: watch", "path", path, "err", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			c := New()
			if err := Open(c, path); err != nil {
				slog.Warn("config: reload", "path", path, "err", err)
				continue
			}
			slog.Info("config: reloaded", "path", path)
			fn(c)
		}
	}
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/canvas2d/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, "localhost:8080", c.Addr)
	assert.Equal(t, 60.0, c.FPS)
	assert.Equal(t, 50, c.Ready.Attempts)
	assert.Equal(t, 100*time.Millisecond, c.Ready.Interval())
	assert.Equal(t, "image/png", c.Export.MIME)
	assert.Equal(t, 0.92, c.Export.Quality)
	assert.Equal(t, host.DefaultOptions(), c.Canvas)
}

func TestOpenTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas2d.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr = ":9000"
fps = 30

[ready]
attempts = 5

[canvas]
Width = 320
Alpha = true
`), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, 30.0, c.FPS)
	assert.Equal(t, 5, c.Ready.Attempts)
	assert.Equal(t, 100, c.Ready.IntervalMS, "default kept")
	assert.Equal(t, 320, c.Canvas.Width)
	assert.Equal(t, 600, c.Canvas.Height, "default kept")
	assert.True(t, c.Canvas.Alpha)
	assert.Equal(t, "ws://localhost:8080/ws", c.URL)
}

func TestOpenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas2d.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  mime: image/jpeg\n  quality: 0.5\nlog:\n  verbose: true\n"), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", c.Export.MIME)
	assert.Equal(t, 0.5, c.Export.Quality)
	assert.Equal(t, "canvas.png", c.Export.Output)
	assert.True(t, c.Log.Verbose)
}

func TestLoadErrors(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, New(), c)

	path := filepath.Join(t.TempDir(), "canvas2d.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrFormat)

	path = filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("addr = "), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml"} {
		path := filepath.Join(t.TempDir(), "canvas2d"+ext)
		c := New()
		c.Addr = ":7000"
		c.Canvas.Width = 100
		require.NoError(t, Save(c, path))
		got, err := Load(path)
		require.NoError(t, err, ext)
		assert.Equal(t, c, got, ext)
	}
	assert.ErrorIs(t, Save(New(), filepath.Join(t.TempDir(), "x.ini")), ErrFormat)
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas2d.toml")
	require.NoError(t, os.WriteFile(path, []byte(`fps = 30`), 0o644))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, func(c *Config) { got <- c }) }()

	var c *Config
	require.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte(`fps = 24`), 0o644); err != nil {
			return false
		}
		select {
		case c = <-got:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 24.0, c.FPS)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the canvas2d tools,
// loaded from TOML or YAML files over `default:` tag values.
package config

import (
	"time"

	"cogentcore.org/canvas2d/base/reflectx"
	"cogentcore.org/canvas2d/host"
)

// Config is the main config struct that contains all of the
// configuration options of the canvas2d tools.
type Config struct {

	// Addr is the address the websocket host server listens on.
	Addr string `toml:"addr" yaml:"addr" default:"localhost:8080"`

	// URL is the websocket URL a peer connects to.
	URL string `toml:"url" yaml:"url" default:"ws://localhost:8080/ws"`

	// FPS is the frame rate of software hosts.
	FPS float64 `toml:"fps" yaml:"fps" default:"60"`

	// Ready configures the wait for temporary canvases.
	Ready Ready `toml:"ready" yaml:"ready"`

	// Export configures image exports.
	Export Export `toml:"export" yaml:"export"`

	// Canvas holds the default context options of new canvases.
	Canvas host.Options `toml:"canvas" yaml:"canvas"`

	// Log configures logging.
	Log Log `toml:"log" yaml:"log"`
}

// Ready configures the readiness polling of temporary canvases.
type Ready struct {

	// Attempts is the number of readiness checks before timing out.
	Attempts int `toml:"attempts" yaml:"attempts" default:"50"`

	// IntervalMS is the time between readiness checks in milliseconds.
	IntervalMS int `toml:"intervalMs" yaml:"intervalMs" default:"100"`
}

// Interval returns the time between readiness checks.
func (r Ready) Interval() time.Duration {
	return time.Duration(r.IntervalMS) * time.Millisecond
}

// Export configures image exports.
type Export struct {

	// MIME is the image type, one of image/png, image/jpeg and image/webp.
	MIME string `toml:"mime" yaml:"mime" default:"image/png"`

	// Quality is the encoder quality in [0, 1] for lossy types.
	Quality float64 `toml:"quality" yaml:"quality" default:"0.92"`

	// Output is the output file.
	Output string `toml:"output" yaml:"output" default:"canvas.png"`
}

// Log configures logging.
type Log struct {

	// VeryVerbose logs debug messages.
	VeryVerbose bool `toml:"veryVerbose" yaml:"veryVerbose"`

	// Verbose logs info messages.
	Verbose bool `toml:"verbose" yaml:"verbose"`

	// Quiet only logs errors.
	Quiet bool `toml:"quiet" yaml:"quiet"`
}

// New returns a config with all defaults set.
func New() *Config {
	c := &Config{}
	SetFromDefaults(c)
	return c
}

// SetFromDefaults sets the fields of the config struct pointed to by
// obj from their `default:` tags.
func SetFromDefaults(obj any) error {
	return reflectx.SetFromDefaultTags(obj)
}

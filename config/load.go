// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/canvas2d/base/errors"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrFormat is returned for config files that are neither TOML nor YAML.
var ErrFormat = errors.New("config: unsupported file format")

// decode decodes b in the format given by the extension of path.
func decode(path string, b []byte, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(b, v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, v)
	}
	return fmt.Errorf("%w: %s", ErrFormat, path)
}

// Open reads the file at path, which may start with ~, and merges its
// non-empty values over c. Values equal to their zero value, such as
// false, cannot override a non-zero default.
func Open(c *Config, path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	file := &Config{}
	if err := decode(path, b, file); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return copier.CopyWithOption(c, file, copier.Option{IgnoreEmpty: true, DeepCopy: true})
}

// Load returns the defaults with the file at path merged over them.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	c := New()
	if path == "" {
		return c, nil
	}
	err := Open(c, path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	return c, err
}

// Save writes c to path in the format given by its extension.
func Save(c *Config, path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	var b []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		b, err = toml.Marshal(c)
	case ".yaml", ".yml":
		b, err = yaml.Marshal(c)
	default:
		err = fmt.Errorf("%w: %s", ErrFormat, path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

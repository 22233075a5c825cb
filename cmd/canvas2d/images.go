// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/canvas2d/host/softhost"
	_ "golang.org/x/image/webp"
)

// loadImages registers the images given as id=path, or as a path whose
// base name without extension is the id, as elements of h, and
// returns their ids.
func loadImages(h *softhost.Host, specs []string) ([]string, error) {
	ids := make([]string, 0, len(specs))
	for _, sp := range specs {
		id, path, ok := strings.Cut(sp, "=")
		if !ok {
			path = sp
			id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		img, err := decodeImage(path)
		if err != nil {
			return nil, err
		}
		h.RegisterElement(id, img)
		ids = append(ids, id)
	}
	return ids, nil
}

// decodeImage decodes a PNG, JPEG or WebP file.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

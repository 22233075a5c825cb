// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"context"

	"github.com/chewxy/math32"
)

// Default display limits of [CalculateDisplayDimensions].
const (
	MaxDisplayWidth  = 640
	MaxDisplayHeight = 480
)

// CalculateDisplayDimensions returns the display size of a canvas
// of the target size fitted within the maximum display size,
// keeping the aspect ratio, and the display scale. Sizes that fit
// are kept with scale 1.
func CalculateDisplayDimensions(targetWidth, targetHeight, maxWidth, maxHeight int) (int, int, float32) {
	if targetWidth <= maxWidth && targetHeight <= maxHeight {
		return targetWidth, targetHeight, 1
	}
	if targetWidth <= 0 || targetHeight <= 0 {
		return 0, 0, 0
	}
	var w, h int
	if targetWidth > targetHeight {
		w = min(targetWidth, maxWidth)
		h = targetHeight * w / targetWidth
		if h > maxHeight {
			h = maxHeight
			w = targetWidth * h / targetHeight
		}
	} else {
		h = min(targetHeight, maxHeight)
		w = targetWidth * h / targetHeight
		if w > maxWidth {
			w = maxWidth
			h = targetHeight * w / targetWidth
		}
	}
	return w, h, float32(w) / float32(targetWidth)
}

// ResponsiveConfig relates the actual size of a canvas, used for
// export, to the smaller size it is displayed at.
type ResponsiveConfig struct {
	ActualWidth   int
	ActualHeight  int
	DisplayWidth  int
	DisplayHeight int
	Scale         float32
	IsScaled      bool
}

// NewResponsiveConfig returns the config for the target size within
// the maximum display size.
func NewResponsiveConfig(targetWidth, targetHeight, maxWidth, maxHeight int) ResponsiveConfig {
	w, h, scale := CalculateDisplayDimensions(targetWidth, targetHeight, maxWidth, maxHeight)
	return ResponsiveConfig{
		ActualWidth:   targetWidth,
		ActualHeight:  targetHeight,
		DisplayWidth:  w,
		DisplayHeight: h,
		Scale:         scale,
		IsScaled:      w != targetWidth || h != targetHeight,
	}
}

// ScaleToDisplay maps a length in actual space to display space.
func (rc ResponsiveConfig) ScaleToDisplay(v float32) float32 {
	return v * rc.Scale
}

// ScaleToActual maps a length in display space to actual space.
func (rc ResponsiveConfig) ScaleToActual(v float32) float32 {
	if rc.Scale == 0 {
		return math32.Inf(1)
	}
	return v / rc.Scale
}

// CreateResponsive creates a canvas displayed at the display size of
// cfg. spec.Options width and height are replaced.
func (m *Manager) CreateResponsive(ctx context.Context, spec Spec, cfg ResponsiveConfig) (*Canvas, error) {
	spec.Options.Width = cfg.DisplayWidth
	spec.Options.Height = cfg.DisplayHeight
	spec.Options.Hidden = false
	return m.Create(ctx, spec)
}

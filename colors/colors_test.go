// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"red", color.NRGBA{255, 0, 0, 255}},
		{"Blue", color.NRGBA{0, 0, 255, 255}},
		{"#f00", color.NRGBA{255, 0, 0, 255}},
		{"#f008", color.NRGBA{255, 0, 0, 0x88}},
		{"#00ff00", color.NRGBA{0, 255, 0, 255}},
		{"#0000ff80", color.NRGBA{0, 0, 255, 0x80}},
		{"rgb(10, 20, 30)", color.NRGBA{10, 20, 30, 255}},
		{"rgba(0, 0, 0, 0.5)", color.NRGBA{0, 0, 0, 128}},
		{"rgba(0, 0, 0, 0)", color.NRGBA{}},
		{"rgb(100% 0% 0% / 50%)", color.NRGBA{255, 0, 0, 128}},
		{"hsl(120, 100%, 50%)", color.NRGBA{0, 255, 0, 255}},
		{"hsla(0, 100%, 50%, 1)", color.NRGBA{255, 0, 0, 255}},
		{"transparent", color.NRGBA{}},
		{"", color.NRGBA{}},
	}
	for _, tt := range tests {
		got, err := FromString(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"notacolor", "#12", "rgb(1, 2)", "rgb(a, b, c)"} {
		_, err := FromString(bad)
		assert.Error(t, err, bad)
	}
	assert.Panics(t, func() { MustFromString("nope") })
	assert.Equal(t, color.NRGBA{}, LogFromString("nope"))
}

func TestAsCSS(t *testing.T) {
	assert.Equal(t, "#ff0000", AsCSS(color.RGBA{255, 0, 0, 255}))
	assert.Equal(t, "rgba(0, 0, 255, 0.5019607843137255)", AsCSS(color.NRGBA{0, 0, 255, 128}))
	assert.Equal(t, "#FF000080", AsHex(color.NRGBA{255, 0, 0, 128}))
	assert.Equal(t, color.NRGBA{255, 0, 0, 64}, WithAlpha(color.NRGBA{255, 0, 0, 128}, 0.5))
}

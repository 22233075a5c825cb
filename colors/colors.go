// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors converts between CSS color strings, as used by
// 2D context styles, and Go [color.Color] values.
package colors

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Transparent is fully transparent black.
var Transparent = color.NRGBA{}

// AsNRGBA returns the given color as a non-premultiplied color.
func AsNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// AsHex returns the color as a standard
// 2-hexadecimal-digits-per-component string.
func AsHex(c color.Color) string {
	if c == nil {
		return "nil"
	}
	n := AsNRGBA(c)
	return fmt.Sprintf("#%02X%02X%02X%02X", n.R, n.G, n.B, n.A)
}

// AsCSS returns the color as a CSS color string: "#rrggbb" for opaque
// colors and "rgba(r, g, b, a)" otherwise.
func AsCSS(c color.Color) string {
	n := AsNRGBA(c)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", n.R, n.G, n.B, strconv.FormatFloat(float64(n.A)/255, 'f', -1, 64))
}

// WithAlpha returns the color with its alpha scaled by the given factor in [0, 1].
func WithAlpha(c color.Color, alpha float64) color.NRGBA {
	n := AsNRGBA(c)
	alpha = max(0, min(1, alpha))
	n.A = uint8(math.Round(float64(n.A) * alpha))
	return n
}

// FromName returns the color value specified
// by the given CSS standard color name.
func FromName(name string) (color.NRGBA, error) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return color.NRGBA{}, errors.New("colors.FromName: name not found: " + name)
	}
	return AsNRGBA(c), nil
}

// FromString returns a color value from the given CSS color string.
// It accepts hex values (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb() and
// rgba() with integer or percent channels and a number or percent
// alpha, hsl() and hsla(), standard color names, and "transparent".
// An empty string or "none" is transparent.
func FromString(str string) (color.NRGBA, error) {
	str = strings.TrimSpace(str)
	if len(str) == 0 {
		return Transparent, nil
	}
	lstr := strings.ToLower(str)
	switch {
	case lstr[0] == '#':
		return FromHex(lstr)
	case strings.HasPrefix(lstr, "rgb"):
		args, err := funcArgs(lstr)
		if err != nil {
			return color.NRGBA{}, err
		}
		if len(args) != 3 && len(args) != 4 {
			return color.NRGBA{}, fmt.Errorf("colors.FromString: rgb needs 3 or 4 values, got %q", str)
		}
		var ch [3]uint8
		for i := range 3 {
			v, err := parseChannel(args[i], 255)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("colors.FromString: %q: %w", str, err)
			}
			ch[i] = uint8(math.Round(max(0, min(255, v))))
		}
		a, err := parseAlpha(args, str)
		if err != nil {
			return color.NRGBA{}, err
		}
		return color.NRGBA{ch[0], ch[1], ch[2], a}, nil
	case strings.HasPrefix(lstr, "hsl"):
		args, err := funcArgs(lstr)
		if err != nil {
			return color.NRGBA{}, err
		}
		if len(args) != 3 && len(args) != 4 {
			return color.NRGBA{}, fmt.Errorf("colors.FromString: hsl needs 3 or 4 values, got %q", str)
		}
		h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("colors.FromString: %q: %w", str, err)
		}
		s, err := parseChannel(args[1], 1)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("colors.FromString: %q: %w", str, err)
		}
		l, err := parseChannel(args[2], 1)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("colors.FromString: %q: %w", str, err)
		}
		a, err := parseAlpha(args, str)
		if err != nil {
			return color.NRGBA{}, err
		}
		c := hslToRGB(h, s, l)
		c.A = a
		return c, nil
	}
	switch lstr {
	case "none", "transparent":
		return Transparent, nil
	}
	return FromName(lstr)
}

// MustFromString is like [FromString] but panics on error.
func MustFromString(str string) color.NRGBA {
	c, err := FromString(str)
	if err != nil {
		panic("colors.MustFromString: " + err.Error())
	}
	return c
}

// LogFromString is like [FromString] but logs any error
// and returns transparent black.
func LogFromString(str string) color.NRGBA {
	c, err := FromString(str)
	if err != nil {
		slog.Error("colors.LogFromString: " + err.Error())
	}
	return c
}

// FromHex parses the given hex color string
// and returns the resulting color.
func FromHex(hex string) (color.NRGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	expand := func(s string) string {
		var b strings.Builder
		for _, c := range s {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		return b.String()
	}
	switch len(hex) {
	case 3, 4:
		hex = expand(hex)
	case 6, 8:
	default:
		return color.NRGBA{}, errors.New("colors.FromHex: could not process: " + hex)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("colors.FromHex: %w", err)
	}
	return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// funcArgs splits the arguments of a CSS color function such as
// "rgba(1, 2, 3, 0.5)" or "rgb(1 2 3 / 50%)".
func funcArgs(s string) ([]string, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, errors.New("colors.FromString: malformed color function: " + s)
	}
	inner := s[open+1 : len(s)-1]
	inner = strings.NewReplacer(",", " ", "/", " ").Replace(inner)
	return strings.Fields(inner), nil
}

// parseChannel parses a number, or a percentage of scale.
func parseChannel(s string, scale float64) (float64, error) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		return v / 100 * scale, err
	}
	return strconv.ParseFloat(s, 64)
}

func parseAlpha(args []string, str string) (uint8, error) {
	if len(args) < 4 {
		return 255, nil
	}
	a, err := parseChannel(args[3], 1)
	if err != nil {
		return 0, fmt.Errorf("colors.FromString: alpha of %q: %w", str, err)
	}
	return uint8(math.Round(max(0, min(1, a)) * 255)), nil
}

func hslToRGB(h, s, l float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = max(0, min(1, s))
	l = max(0, min(1, l))
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	to := func(v float64) uint8 { return uint8(math.Round((v + m) * 255)) }
	return color.NRGBA{to(r), to(g), to(b), 255}
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softhost

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/gogpu/gg/text"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontLib holds the fonts available for text drawing, keyed by
// regularized name, with a cache of faces by name and size.
type FontLib struct {
	mu      sync.RWMutex
	sources map[string]*text.FontSource
	data    map[string][]byte
	faces   map[string]map[float64]text.Face
}

// builtinFonts are the built-in fonts, under the names used by [fontSpec.name].
var builtinFonts = map[string][]byte{
	"sans":             goregular.TTF,
	"sans bold":        gobold.TTF,
	"sans italic":      goitalic.TTF,
	"sans bold italic": gobolditalic.TTF,
	"mono":             gomono.TTF,
	"mono bold":        gomonobold.TTF,

	"serif":             lmroman10regular.TTF,
	"serif bold":        lmroman10bold.TTF,
	"serif italic":      lmroman10italic.TTF,
	"serif bold italic": lmroman10bolditalic.TTF,
}

// NewFontLib returns a library with the Go and Latin Modern fonts available.
func NewFontLib() *FontLib {
	fl := &FontLib{
		sources: map[string]*text.FontSource{},
		data:    map[string][]byte{},
		faces:   map[string]map[float64]text.Face{},
	}
	for name, ttf := range builtinFonts {
		fl.data[name] = ttf
	}
	return fl
}

// AddFont makes the TTF or OTF data available as the given family,
// replacing any font of that name.
func (fl *FontLib) AddFont(family string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("softhost: font %q: %w", family, err)
	}
	name := strings.ToLower(family)
	fl.mu.Lock()
	defer fl.mu.Unlock()
	fl.sources[name] = src
	delete(fl.faces, name)
	return nil
}

// Face returns the face of the named font at size pixels, loading
// the font source on first use.
func (fl *FontLib) Face(name string, size float64) (text.Face, error) {
	fl.mu.RLock()
	if face := fl.faces[name][size]; face != nil {
		fl.mu.RUnlock()
		return face, nil
	}
	fl.mu.RUnlock()

	fl.mu.Lock()
	defer fl.mu.Unlock()
	src := fl.sources[name]
	if src == nil {
		data, ok := fl.data[name]
		if !ok {
			return nil, fmt.Errorf("softhost: font %q not available", name)
		}
		var err error
		src, err = text.NewFontSource(data)
		if err != nil {
			delete(fl.data, name)
			return nil, err
		}
		fl.sources[name] = src
	}
	fm := fl.faces[name]
	if fm == nil {
		fm = map[float64]text.Face{}
		fl.faces[name] = fm
	}
	face := src.Face(size)
	fm[size] = face
	return face, nil
}

// fontSpec is a parsed CSS font shorthand.
type fontSpec struct {
	size   float64
	bold   bool
	italic bool
	family string
}

// parseFont parses a CSS font shorthand such as "italic bold 16px Arial".
// Unparsable values fall back to the 10px sans-serif default.
func parseFont(s string) fontSpec {
	fs := fontSpec{size: 10, family: "sans-serif"}
	l := css.NewLexer(parse.NewInputString(s))
	sized, lineHeight := false, false
	var families []string
	var cur []string
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt == css.WhitespaceToken || tt == css.CommentToken {
			continue
		}
		lf := strings.ToLower(string(data))
		if sized {
			switch {
			case lineHeight:
				lineHeight = false
			case tt == css.DelimToken && lf == "/" && len(families) == 0 && len(cur) == 0:
				lineHeight = true
			case tt == css.CommaToken:
				if len(cur) > 0 {
					families = append(families, strings.Join(cur, " "))
				}
				cur = nil
			case tt == css.StringToken:
				cur = append(cur, strings.Trim(string(data), `"'`))
			case tt == css.IdentToken:
				cur = append(cur, string(data))
			}
			continue
		}
		switch tt {
		case css.IdentToken:
			switch lf {
			case "italic", "oblique":
				fs.italic = true
			case "bold", "bolder":
				fs.bold = true
			}
		case css.NumberToken:
			if w, err := strconv.Atoi(lf); err == nil {
				fs.bold = w >= 600
			}
		case css.DimensionToken:
			if sz, ok := parseFontSize(lf); ok {
				fs.size = sz
				sized = true
			}
		}
	}
	if len(cur) > 0 {
		families = append(families, strings.Join(cur, " "))
	}
	if sized && len(families) > 0 {
		fs.family = strings.Join(families, ", ")
	}
	return fs
}

// fontUnits are the CSS length units of font sizes, in pixels,
// with "rem" ahead of "em".
var fontUnits = []struct {
	suffix string
	scale  float64
}{{"px", 1}, {"pt", 4.0 / 3}, {"rem", 16}, {"em", 16}}

func parseFontSize(s string) (float64, bool) {
	for _, u := range fontUnits {
		if v, ok := strings.CutSuffix(s, u.suffix); ok {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil || n <= 0 || math.IsInf(n, 0) {
				return 0, false
			}
			return n * u.scale, true
		}
	}
	return 0, false
}

// generic returns the built-in base font of a family name, if the
// family is generic or commonly available.
func generic(fam string) (string, bool) {
	switch {
	case strings.Contains(fam, "mono") || strings.Contains(fam, "courier"):
		return "mono", true
	case strings.Contains(fam, "sans") || fam == "arial" || fam == "helvetica" || fam == "system-ui":
		return "sans", true
	case strings.Contains(fam, "serif") || strings.Contains(fam, "times") || fam == "georgia":
		return "serif", true
	}
	return "", false
}

// name returns the library name of the font: the first family with
// a loaded font, or the built-in font of the first family that has one.
func (fs fontSpec) name(fl *FontLib) string {
	base := ""
	fl.mu.RLock()
	for f := range strings.SplitSeq(fs.family, ",") {
		fam := strings.ToLower(strings.Trim(strings.TrimSpace(f), `"'`))
		if _, custom := fl.sources[fam]; custom && builtinFonts[fam] == nil {
			fl.mu.RUnlock()
			return fam
		}
		if g, ok := generic(fam); ok && base == "" {
			base = g
		}
	}
	fl.mu.RUnlock()
	if base == "" {
		base = "sans"
	}
	switch {
	case fs.bold && fs.italic && base != "mono":
		return base + " bold italic"
	case fs.bold:
		return base + " bold"
	case fs.italic && base != "mono":
		return base + " italic"
	}
	return base
}

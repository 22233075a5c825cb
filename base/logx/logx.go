// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the default structured logging setup
// used throughout canvas2d, based on [log/slog].
package logx

import (
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set through [LevelFromFlags] to the end user's preference.
// The default user verbosity level depends on build tags.
var UserLevel = defaultUserLevel

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags correspond to the following values:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
//
// The flags are evaluated in that order, so, for example, if both
// vv and q are specified, it will still return [slog.LevelDebug].
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SetDefaultLogger sets the default logger to be a text
// handler at [UserLevel] writing to [os.Stderr], with level names
// colored when the output supports it.
func SetDefaultLogger() {
	slog.SetDefault(NewDefaultLogger())
}

// NewDefaultLogger returns the logger installed by [SetDefaultLogger].
func NewDefaultLogger() *slog.Logger {
	out := termenv.NewOutput(os.Stderr)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: UserLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(LevelString(out, lvl))
				}
			}
			return a
		},
	}))
}

// LevelString returns the name of the given level, colored for
// the given output. Outputs without color support get the plain name.
func LevelString(out *termenv.Output, lvl slog.Level) string {
	s := lvl.String()
	if out.Profile == termenv.Ascii {
		return s
	}
	st := out.String(s)
	switch {
	case lvl >= slog.LevelError:
		st = st.Foreground(out.Color("1")).Bold()
	case lvl >= slog.LevelWarn:
		st = st.Foreground(out.Color("3"))
	case lvl >= slog.LevelInfo:
		st = st.Foreground(out.Color("4"))
	default:
		st = st.Faint()
	}
	return st.String()
}

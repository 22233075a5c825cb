// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets embeds the browser host page and the canvas2d.js
// replayer, which executes batches of canvas operations on real
// 2D contexts and reports frame, resize and input events.
package assets

import "embed"

// FS holds index.html and canvas2d.js.
//
//go:embed index.html canvas2d.js
var FS embed.FS

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/canvas"
	"cogentcore.org/canvas2d/interop/marshal"
	"cogentcore.org/canvas2d/render"
)

const starPath = "M 0 -40 L 11 -13 L 40 -12 L 18 6 L 25 35 L 0 18 L -25 35 L -18 6 L -40 -12 L -11 -13 Z"

// demo draws the demo scene at time t in seconds. Images are drawn
// into a corner when non-empty.
func demo(c *canvas.Canvas, t float64, images ...string) {
	rc := c.Context()
	w, h := float64(c.Width()), float64(c.Height())

	bg := rc.CreateLinearGradient(0, 0, 0, h)
	errors.Log(bg.AddColorStop(0, "#1e3c72"))
	errors.Log(bg.AddColorStop(1, "#2a5298"))
	rc.SetFillGradient(bg)
	rc.FillRect(0, 0, w, h)

	rc.Save()
	rc.Translate(w/2, h/2)
	rc.Rotate(t)
	rc.SetFillStyle("rgba(255, 200, 0, 0.8)")
	rc.FillRect(-50, -50, 100, 100)
	rc.Restore()

	canvas.WithTransform(rc, func(rc *render.Context) {
		rc.Translate(w*0.2, h*0.3)
		rc.Scale(1+0.2*math.Sin(t*3), 1+0.2*math.Sin(t*3))
	}, func() {
		rc.SetFillStyle("gold")
		rc.FillPath(rc.NewPath2D(starPath))
	})

	rc.BeginPath()
	rc.Arc(w*0.8, h*0.7, 40+10*math.Sin(t*2), 0, 2*math.Pi, false)
	rc.SetStrokeStyle("white")
	rc.SetLineWidth(4)
	rc.Stroke()

	for i, id := range images {
		size := math.Min(w, h) / 4
		errors.Log(canvas.DrawImageCentered(rc, marshal.ElementID(id), size*(float64(i)+0.5)+8, size/2+8, size, size, canvas.ImageOptions{}))
	}

	canvas.DrawStyledText(rc, "canvas2d", w/2, h*0.85, canvas.TextStyle{
		Font:     "bold 32px sans-serif",
		Fill:     "white",
		Align:    render.AlignCenter,
		Baseline: render.BaselineMiddle,
		Shadow:   canvas.DropShadow(4, 2),
	})
}

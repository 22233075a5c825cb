// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package softhost provides a [host.Host] that draws into in-memory
// raster canvases. It replays batches the way a browser host does,
// and lets programs render and export images without a browser.
package softhost

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"
	"sync"
	"time"

	"cogentcore.org/canvas2d/events"
	"cogentcore.org/canvas2d/host"
	"cogentcore.org/canvas2d/interop/op"
	"github.com/google/uuid"
)

// Host owns software canvases. It is safe for concurrent use.
type Host struct {
	mu       sync.RWMutex
	surfaces map[string]*Surface
	elements map[string]image.Image
	blobs    map[string]*host.BlobData
	input    inputState
	fonts    *FontLib
}

// New returns a host without canvases.
func New() *Host {
	return &Host{
		surfaces: map[string]*Surface{},
		elements: map[string]image.Image{},
		blobs:    map[string]*host.BlobData{},
		fonts:    NewFontLib(),
	}
}

var _ host.Host = (*Host)(nil)

// Fonts returns the font library used for text.
func (h *Host) Fonts() *FontLib { return h.fonts }

// RegisterElement makes img available as an image source under id,
// as an image element is in a browser.
func (h *Host) RegisterElement(id string, img image.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.elements[id] = img
}

// Surface returns the canvas with the given id.
func (h *Host) Surface(id string) (*Surface, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.surfaces[id]
	return s, ok
}

func (h *Host) surface(id string) (*Surface, error) {
	s, ok := h.Surface(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", host.ErrNoCanvas, id)
	}
	return s, nil
}

// source returns a snapshot of the image source with the given id.
// self is the canvas being drawn, whose lock is held.
func (h *Host) source(id string, self *Surface) (*image.NRGBA, error) {
	if id == self.id {
		return self.snapshot(), nil
	}
	h.mu.RLock()
	img, ok := h.elements[id]
	s := h.surfaces[id]
	h.mu.RUnlock()
	if ok {
		if n, ok := img.(*image.NRGBA); ok {
			return n, nil
		}
		n := image.NewNRGBA(img.Bounds())
		draw.Draw(n, n.Bounds(), img, img.Bounds().Min, draw.Src)
		return n, nil
	}
	if s != nil {
		return s.Image(), nil
	}
	return nil, fmt.Errorf("softhost: no image source %q", id)
}

func (h *Host) InitCanvas(ctx context.Context, id string, opts host.Options, recv host.Receiver) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := newSurface(h, id, opts, recv)
	h.mu.Lock()
	h.surfaces[id] = s
	h.mu.Unlock()
	if recv != nil {
		recv.Receive(events.NewReady())
	}
	return nil
}

func (h *Host) ProcessBatch(ctx context.Context, id string, ops []op.Op) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s, err := h.surface(id)
	if err != nil {
		return err
	}
	s.replay(ops)
	return nil
}

// DirectCall runs method and returns its result as decoded JSON,
// as a remote host would.
func (h *Host) DirectCall(ctx context.Context, id string, method op.Methods, args ...any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := h.surface(id)
	if err != nil {
		return nil, err
	}
	o, err := op.MethodCall(method, args...)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	res, err := s.direct(method, o.Args())
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	var v any
	err = json.Unmarshal(b, &v)
	return v, err
}

// encode returns the canvas encoded as mime, or as PNG when the
// type is not supported, with the type actually used.
func (s *Surface) encode(mime string, quality float64) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var buf bytes.Buffer
	if strings.EqualFold(mime, "image/jpeg") {
		if quality <= 0 || quality > 1 || math.IsNaN(quality) {
			quality = 0.92
		}
		q := max(1, int(math.Round(quality*100)))
		if err := s.dc.EncodeJPEG(&buf, q); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "image/png", nil
}

func (h *Host) ToBlob(ctx context.Context, id string, mime string, quality float64) (*host.BlobData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := h.surface(id)
	if err != nil {
		return nil, err
	}
	data, typ, err := s.encode(mime, quality)
	if err != nil {
		return nil, err
	}
	b := &host.BlobData{ObjectURL: "blob:softhost/" + uuid.NewString(), MIME: typ, Data: data}
	h.mu.Lock()
	h.blobs[b.ObjectURL] = b
	h.mu.Unlock()
	return b, nil
}

// Blob returns a blob created by ToBlob by its object URL.
func (h *Host) Blob(url string) (*host.BlobData, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	b, ok := h.blobs[url]
	return b, ok
}

// RevokeObjectURL releases a blob created by ToBlob.
func (h *Host) RevokeObjectURL(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.blobs, url)
}

func (h *Host) ToDataURL(ctx context.Context, id string, mime string, quality float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := h.surface(id)
	if err != nil {
		return "", err
	}
	data, typ, err := s.encode(mime, quality)
	if err != nil {
		return "", err
	}
	return "data:" + typ + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ResizeCanvas resizes the canvas, which resets its context state
// and pixels, and sends a resize event.
func (h *Host) ResizeCanvas(ctx context.Context, id string, width, height int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s, err := h.surface(id)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("softhost: invalid size %dx%d", width, height)
	}
	s.mu.Lock()
	err = s.dc.Resize(width, height)
	if err == nil {
		s.opts.Width, s.opts.Height = width, height
		s.reset()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if s.recv != nil {
		s.recv.Receive(events.NewResize(width, height))
	}
	return nil
}

func (h *Host) RemoveContext(ctx context.Context, id string) error {
	h.mu.Lock()
	s, ok := h.surfaces[id]
	delete(h.surfaces, id)
	h.mu.Unlock()
	if ok {
		s.mu.Lock()
		err := s.dc.Close()
		s.mu.Unlock()
		return err
	}
	return nil
}

// Tick sends a frame event with the given timestamp in milliseconds
// to every canvas.
func (h *Host) Tick(ts float64) {
	h.broadcast(func() events.Event { return events.NewFrame(ts) })
}

// Run sends frame events at fps frames per second until ctx is done.
func (h *Host) Run(ctx context.Context, fps float64) error {
	if fps <= 0 {
		fps = 60
	}
	start := time.Now()
	t := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			h.Tick(float64(now.Sub(start).Microseconds()) / 1000)
		}
	}
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wshost

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cogentcore.org/canvas2d/base/errors"
	"cogentcore.org/canvas2d/canvas"
	"cogentcore.org/canvas2d/events"
	"cogentcore.org/canvas2d/host"
	"cogentcore.org/canvas2d/host/softhost"
	"cogentcore.org/canvas2d/interop/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timeout = 2 * time.Second

var red = color.NRGBA{R: 255, A: 255}

type collector struct {
	ch chan events.Event
}

func newCollector() *collector { return &collector{ch: make(chan events.Event, 16)} }

func (c *collector) Receive(ev events.Event) { c.ch <- ev }

func (c *collector) next(t *testing.T, typ events.Types) events.Event {
	t.Helper()
	for {
		select {
		case ev := <-c.ch:
			if ev.Type() == typ {
				return ev
			}
		case <-time.After(timeout):
			t.Fatalf("no %v event", typ)
			return nil
		}
	}
}

type fixture struct {
	session *Session
	soft    *softhost.Host
	peer    *Peer
	cancel  context.CancelFunc
}

func setup(t *testing.T) *fixture {
	t.Helper()
	sessions := make(chan *Session, 1)
	srv := httptest.NewServer(NewServer(func(s *Session) {
		sessions <- s
		<-s.Done()
	}))
	t.Cleanup(srv.Close)

	f := &fixture{soft: softhost.New()}
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	t.Cleanup(cancel)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + SocketPath
	p, err := Dial(ctx, url, f.soft)
	require.NoError(t, err)
	f.peer = p
	go p.Serve(ctx)
	select {
	case f.session = <-sessions:
	case <-time.After(timeout):
		t.Fatal("no session")
	}
	return f
}

func TestRoundTrip(t *testing.T) {
	f := setup(t)
	s := f.session
	ctx := context.Background()
	c := newCollector()
	opts := host.DefaultOptions()
	opts.Width, opts.Height, opts.Alpha = 20, 10, true
	require.NoError(t, s.InitCanvas(ctx, "a", opts, c))
	c.next(t, events.Ready)
	assert.Equal(t, 1, s.Canvases())

	ops := []op.Op{
		op.MustPropertySet(op.FillStyle, "red"),
		op.MustMethodCall(op.FillRect, 0, 0, 20, 10),
	}
	require.NoError(t, s.ProcessBatch(ctx, "a", ops))
	sf, ok := f.soft.Surface("a")
	require.True(t, ok)
	assert.Equal(t, red, sf.Image().NRGBAAt(10, 5))

	res, err := s.DirectCall(ctx, "a", op.IsPointInPath, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, false, res)
	res, err = s.DirectCall(ctx, "a", op.GetTransform)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.(map[string]any)["a"])
	_, err = s.DirectCall(ctx, "a", op.MeasureText)
	assert.ErrorIs(t, err, op.ErrInvalidArgument)

	b, err := s.ToBlob(ctx, "a", "image/png", 1)
	require.NoError(t, err)
	assert.Equal(t, "image/png", b.MIME)
	img, err := png.Decode(bytes.NewReader(b.Data))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())

	url, err := s.ToDataURL(ctx, "a", "image/png", 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	require.NoError(t, s.ResizeCanvas(ctx, "a", 40, 30))
	ev := c.next(t, events.Resize).(*events.ResizeEvent)
	assert.Equal(t, 40, ev.Width)
	assert.Equal(t, 30, ev.Height)

	f.soft.Tick(16)
	assert.Equal(t, 16.0, c.next(t, events.Frame).(*events.FrameEvent).Timestamp)

	require.NoError(t, s.RemoveContext(ctx, "a"))
	assert.Equal(t, 0, s.Canvases())
	err = s.ProcessBatch(ctx, "a", ops)
	assert.ErrorIs(t, err, host.ErrNoCanvas)
}

func TestBroadcast(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a, b := newCollector(), newCollector()
	require.NoError(t, f.session.InitCanvas(ctx, "a", host.DefaultOptions(), a))
	require.NoError(t, f.session.InitCanvas(ctx, "b", host.DefaultOptions(), b))
	a.next(t, events.Ready)
	b.next(t, events.Ready)

	require.NoError(t, f.peer.Broadcast(events.NewKey(events.KeyDown, 65, "a", []int{65}, 0)))
	ka := a.next(t, events.KeyDown).(*events.KeyEvent)
	kb := b.next(t, events.KeyDown).(*events.KeyEvent)
	assert.Equal(t, "a", ka.Key)
	assert.Equal(t, []int{65}, kb.HeldKeys)
	assert.NotSame(t, ka, kb)

	assert.True(t, f.soft.MouseDown("b", 3, 4, events.Left))
	ev := b.next(t, events.MouseDown).(*events.MouseButtonEvent)
	assert.Equal(t, 3.0, ev.ClientX)
}

func TestDisconnect(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.session.InitCanvas(ctx, "a", host.DefaultOptions(), nil))
	f.cancel()
	select {
	case <-f.session.Done():
	case <-time.After(timeout):
		t.Fatal("session not closed")
	}
	assert.Eventually(t, func() bool {
		return errors.Is(f.session.ProcessBatch(ctx, "a", nil), host.ErrDisconnected)
	}, timeout, 10*time.Millisecond)
}

func TestCanvasOverSocket(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := canvas.NewManager(f.session)
	b, err := m.RenderAndExport(ctx, 100, 100, func(c *canvas.Canvas) {
		c.Clear("red")
	}, "image/png", 1)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, red, color.NRGBAModel.Convert(img.At(50, 50)))
	assert.Equal(t, 0, f.session.Canvases())
}

func TestServerAssets(t *testing.T) {
	srv := httptest.NewServer(NewServer(nil))
	defer srv.Close()
	for path, want := range map[string]string{"/": "canvas2d.js", "/canvas2d.js": "processBatch"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, string(body), want, path)
	}
}

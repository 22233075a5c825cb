// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	var q Queue
	q.Init()
	assert.Nil(t, q.NextEvent())
	for i := range 10 {
		q.Send(NewFrame(float64(i)))
	}
	assert.Equal(t, uint64(10), q.Len())
	for i := range 10 {
		ev := q.NextEvent()
		require.NotNil(t, ev)
		assert.Equal(t, float64(i), ev.(*FrameEvent).Timestamp)
	}
	assert.Nil(t, q.NextEvent())
	assert.Equal(t, uint64(0), q.Len())
}

func TestQueueWait(t *testing.T) {
	var q Queue
	q.Init()
	const producers, per = 4, 100
	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range per {
				q.Send(NewResize(p, i))
			}
		}()
	}
	last := map[int]int{}
	for range producers * per {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		ev, err := q.Wait(ctx)
		cancel()
		require.NoError(t, err)
		rs := ev.(*ResizeEvent)
		prev, ok := last[rs.Width]
		if ok {
			assert.Greater(t, rs.Height, prev, "per-producer order")
		}
		last[rs.Width] = rs.Height
	}
	wg.Wait()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := q.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListeners(t *testing.T) {
	var ls Listeners
	var calls []string
	ls.Add(KeyDown, func(ev Event) { calls = append(calls, "first") })
	ls.Add(KeyDown, func(ev Event) {
		calls = append(calls, "second")
		ev.SetHandled()
	})
	ls.Add(KeyDown, func(ev Event) { calls = append(calls, "third") })
	assert.Equal(t, 3, ls.Len(KeyDown))

	ls.Call(NewKey(KeyDown, 65, "a", nil, 0))
	assert.Equal(t, []string{"third", "second"}, calls)

	calls = nil
	ls.Call(NewKey(KeyUp, 65, "a", nil, 0))
	assert.Empty(t, calls)
}

func TestKeyEvent(t *testing.T) {
	held := []int{16, 65}
	ev := NewKey(KeyDown, 65, "A", held, Shift)
	held[0] = 99
	assert.True(t, ev.IsHeld)
	assert.True(t, ev.IsKeyHeld(16))
	assert.False(t, ev.IsKeyHeld(99))
	assert.True(t, ev.IsPrintable())
	assert.False(t, NewKey(KeyDown, 37, "ArrowLeft", nil, 0).IsPrintable())
	assert.True(t, NewKey(KeyDown, 13, "Enter", nil, 0).IsPrintable())

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"keyCode":65,"key":"A","isHeld":true,"heldKeys":[16,65],"modifiers":{"shift":true,"ctrl":false,"alt":false,"meta":false}}`, string(b))
}

func TestModifiers(t *testing.T) {
	var m Modifiers
	m.Set(true, Control|Alt)
	assert.True(t, m.Has(Control))
	assert.True(t, m.HasAny(Shift|Alt))
	assert.False(t, m.Has(Shift|Alt))
	m.Set(false, Alt)
	assert.Equal(t, "Control", m.String())
}

func TestDecode(t *testing.T) {
	ev, err := Decode("keyUp", []byte(`{"keyCode":32,"key":" ","isHeld":false,"heldKeys":[17],"modifiers":{"shift":false,"ctrl":true,"alt":false,"meta":false}}`))
	require.NoError(t, err)
	ke := ev.(*KeyEvent)
	assert.Equal(t, KeyUp, ke.Type())
	assert.Equal(t, 32, ke.Code)
	assert.Equal(t, []int{17}, ke.HeldKeys)
	assert.Equal(t, Control, ke.Modifiers)

	ev, err = Decode("wheel", []byte(`{"clientX":1,"clientY":2,"deltaX":0,"deltaY":-120}`))
	require.NoError(t, err)
	assert.Equal(t, -120.0, ev.(*WheelEvent).DeltaY)

	ev, err = Decode("mouseDown", []byte(`{"clientX":5,"clientY":6,"button":2}`))
	require.NoError(t, err)
	assert.Equal(t, MouseDown, ev.Type())
	assert.Equal(t, Right, ev.(*MouseButtonEvent).Button)

	ev, err = Decode("ready", nil)
	require.NoError(t, err)
	assert.Equal(t, Ready, ev.Type())

	_, err = Decode("explode", nil)
	assert.Error(t, err)

	name, data, err := Encode(NewResize(640, 480))
	require.NoError(t, err)
	assert.Equal(t, "resize", name)
	back, err := Decode(name, data)
	require.NoError(t, err)
	assert.Equal(t, 640, back.(*ResizeEvent).Width)
	assert.Equal(t, 480, back.(*ResizeEvent).Height)
}

func TestTypes(t *testing.T) {
	for _, tp := range TypesValues() {
		got, ok := TypeByName(tp.String())
		assert.True(t, ok)
		assert.Equal(t, tp, got)
	}
	assert.True(t, Wheel.IsInput())
	assert.False(t, Frame.IsInput())
	assert.False(t, Resize.IsInput())
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package op

import (
	"encoding/json"
	"testing"

	"cogentcore.org/canvas2d/interop/marshal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertySet(t *testing.T) {
	o, err := PropertySet(FillStyle, "red")
	require.NoError(t, err)
	assert.True(t, o.IsProperty())
	assert.Equal(t, "fillStyle", o.Name())
	assert.Equal(t, "red", o.Value())
	assert.Nil(t, o.Args())
	assert.False(t, o.IsHandleCall())

	o, err = PropertySet(LineWidth, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, o.Value())

	o, err = PropertySet(FillStyle, marshal.Reference{ID: "1"})
	require.NoError(t, err)
	assert.Equal(t, marshal.Reference{ID: "1"}, o.Value())

	_, err = PropertySet(LineWidth, "wide")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = PropertySet(ImageSmoothingEnabled, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = PropertySet(Props(999), 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = PropertySet(Font, struct{}{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMethodCall(t *testing.T) {
	o, err := MethodCall(FillRect, 0, 0, 100, 100)
	require.NoError(t, err)
	assert.False(t, o.IsProperty())
	assert.Equal(t, FillRect, o.Method())
	assert.Equal(t, []any{0.0, 0.0, 100.0, 100.0}, o.Args())

	_, err = MethodCall(FillRect, 0, 0, 100)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = MethodCall(FillRect, 0, 0, 100, "100")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = MethodCall(BeginPath, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = MethodCall(UnknownMethod)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	img := marshal.Reference{ID: "img", IsElementRef: true}
	for _, n := range []int{3, 5, 9} {
		args := []any{img}
		for range n - 1 {
			args = append(args, 1)
		}
		_, err = MethodCall(DrawImage, args...)
		assert.NoError(t, err, n)
	}
	_, err = MethodCall(DrawImage, img, 1, 2, 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestHandleCall(t *testing.T) {
	g := marshal.Reference{ID: "7"}
	o, err := MethodCall(CreateLinearGradient, g, 0, 0, 10, 0)
	require.NoError(t, err)
	assert.True(t, o.IsHandleCall())
	target, ok := o.Target()
	assert.True(t, ok)
	assert.Equal(t, g, target)

	_, err = MethodCall(CreateLinearGradient, marshal.Reference{ID: "img", IsElementRef: true}, 0, 0, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = MethodCall(AddColorStop, "7", 0, "red")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	o, err = MethodCall(Fill, g, "evenodd")
	require.NoError(t, err)
	assert.False(t, o.IsHandleCall())
	_, ok = o.Target()
	assert.False(t, ok)
}

func TestWireShape(t *testing.T) {
	o := MustPropertySet(FillStyle, "red")
	b, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isProperty":true,"methodName":"fillStyle","args":"red"}`, string(b))

	o = MustMethodCall(BeginPath)
	b, err = json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isProperty":false,"methodName":"beginPath","args":[]}`, string(b))

	o = MustMethodCall(AddColorStop, marshal.Reference{ID: "2"}, 0.5, "blue")
	b, err = json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isProperty":false,"methodName":"addColorStop","args":[{"id":2,"isElementRef":false},0.5,"blue"]}`, string(b))
}

func TestWireRoundTrip(t *testing.T) {
	ops := []Op{
		MustPropertySet(FillStyle, marshal.Reference{ID: "3"}),
		MustPropertySet(ImageSmoothingEnabled, false),
		MustMethodCall(SetLineDash, []float64{4, 2}),
		MustMethodCall(SetTransform, 1, 0, 0, 1, 5, 5),
		MustMethodCall(PatternSetTransform, marshal.Reference{ID: "4", ClassInitializer: "DOMMatrix"}, 1, 0, 0, 1, 5, 5),
		MustMethodCall(Fill, marshal.Reference{ID: "5", ClassInitializer: "Path2D"}),
		MustMethodCall(PutImageData, []byte{255, 0, 0, 255}, 1, 1, 0, 0),
		MustMethodCall(DrawImage, marshal.Reference{ID: "img", IsElementRef: true}, 0, 0),
	}
	b, err := json.Marshal(ops)
	require.NoError(t, err)
	var back []Op
	require.NoError(t, json.Unmarshal(b, &back))
	require.Len(t, back, len(ops))
	for i := range ops {
		assert.Equal(t, ops[i], back[i], ops[i].String())
	}
	assert.Equal(t, PatternSetTransform, back[4].Method())
	assert.Equal(t, SetTransform, back[3].Method())

	var bad Op
	assert.Error(t, json.Unmarshal([]byte(`{"isProperty":false,"methodName":"explode","args":[]}`), &bad))
}

func TestHash(t *testing.T) {
	a := MustMethodCall(MoveTo, 1, 2)
	b := MustMethodCall(MoveTo, 2, 1)
	c := MustMethodCall(LineTo, 1, 2)
	assert.Equal(t, a.Hash(), MustMethodCall(MoveTo, 1.0, 2.0).Hash())
	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.NotEqual(t, MustMethodCall(Save).Hash(), MustMethodCall(Restore).Hash())
}

func TestNames(t *testing.T) {
	for _, m := range MethodsValues() {
		assert.NotEmpty(t, m.String())
		got, ok := MethodByName(m.String(), m.Signature().Handle)
		assert.True(t, ok, m.String())
		assert.Equal(t, m, got)
	}
	for _, p := range PropsValues() {
		got, ok := PropByName(p.String())
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}
}

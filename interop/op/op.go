// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package op encodes 2D drawing operations into a boundary-safe form.
// An [Op] is either a property assignment or a method invocation drawn
// from a closed set of kinds, each with a static signature that is
// checked when the operation is built. Encoding is pure and never
// touches the host.
package op

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"cogentcore.org/canvas2d/interop/marshal"
)

// ErrInvalidArgument is returned when an operation is built with
// arguments that do not match its signature.
var ErrInvalidArgument = errors.New("invalid argument")

// Op is one drawing operation. It is immutable once built and holds
// only boundary-safe values: host objects appear as [marshal.Reference]
// tokens.
type Op struct {
	isProperty bool
	prop       Props
	method     Methods
	args       []any
}

// PropertySet returns an operation that assigns value to prop.
func PropertySet(prop Props, value any) (Op, error) {
	if !prop.IsValid() {
		return Op{}, fmt.Errorf("%w: unknown property %d", ErrInvalidArgument, prop)
	}
	v, err := checkArg(prop.info().typ, value)
	if err != nil {
		return Op{}, fmt.Errorf("%w: %s: %w", ErrInvalidArgument, prop, err)
	}
	return Op{isProperty: true, prop: prop, args: []any{v}}, nil
}

// MethodCall returns an operation that invokes method with args.
// The number and types of args are checked against the method's
// [Signature]. Handle calls take the target reference as first argument.
func MethodCall(method Methods, args ...any) (Op, error) {
	if !method.IsValid() {
		return Op{}, fmt.Errorf("%w: unknown method %d", ErrInvalidArgument, method)
	}
	sig := method.Signature()
	n := len(args)
	if n < sig.Min || n > sig.Max() {
		return Op{}, fmt.Errorf("%w: %s takes %d to %d arguments, got %d", ErrInvalidArgument, sig.Name, sig.Min, sig.Max(), n)
	}
	if len(sig.Counts) > 0 && !slices.Contains(sig.Counts, n) {
		return Op{}, fmt.Errorf("%w: %s takes %v arguments, got %d", ErrInvalidArgument, sig.Name, sig.Counts, n)
	}
	nargs := make([]any, n)
	for i, a := range args {
		v, err := checkArg(sig.Args[i], a)
		if err != nil {
			return Op{}, fmt.Errorf("%w: %s argument %d: %w", ErrInvalidArgument, sig.Name, i, err)
		}
		nargs[i] = v
	}
	if sig.Handle {
		if r, ok := nargs[0].(marshal.Reference); !ok || r.IsZero() || r.IsElementRef {
			return Op{}, fmt.Errorf("%w: %s requires an object reference target", ErrInvalidArgument, sig.Name)
		}
	}
	return Op{method: method, args: nargs}, nil
}

// MustPropertySet is like [PropertySet] but panics on error.
func MustPropertySet(prop Props, value any) Op {
	o, err := PropertySet(prop, value)
	if err != nil {
		panic(err)
	}
	return o
}

// MustMethodCall is like [MethodCall] but panics on error.
func MustMethodCall(method Methods, args ...any) Op {
	o, err := MethodCall(method, args...)
	if err != nil {
		panic(err)
	}
	return o
}

// IsProperty returns whether the operation is a property assignment.
func (o Op) IsProperty() bool { return o.isProperty }

// Prop returns the assigned property, for property operations.
func (o Op) Prop() Props { return o.prop }

// Method returns the invoked method, for method operations.
func (o Op) Method() Methods { return o.method }

// IsHandleCall returns whether the operation creates or mutates
// a host object identified by its first argument.
func (o Op) IsHandleCall() bool {
	return !o.isProperty && o.method.Signature().Handle
}

// Name returns the host-facing property or method name.
func (o Op) Name() string {
	if o.isProperty {
		return o.prop.String()
	}
	return o.method.String()
}

// Value returns the assigned value, for property operations.
func (o Op) Value() any {
	if !o.isProperty || len(o.args) == 0 {
		return nil
	}
	return o.args[0]
}

// Args returns the method arguments. The returned slice must not be modified.
func (o Op) Args() []any {
	if o.isProperty {
		return nil
	}
	return o.args
}

// Target returns the object reference of a handle call.
func (o Op) Target() (marshal.Reference, bool) {
	if !o.IsHandleCall() {
		return marshal.Reference{}, false
	}
	r, ok := o.args[0].(marshal.Reference)
	return r, ok
}

// Hash returns the order-sensitive hash of the operation.
func (o Op) Hash() uint64 {
	return marshal.Hash(append([]any{o.isProperty, o.Name()}, o.args...)...)
}

func (o Op) String() string {
	if o.isProperty {
		return fmt.Sprintf("%s = %v", o.prop, o.Value())
	}
	return fmt.Sprintf("%s%v", o.method, o.args)
}

type wireOp struct {
	IsProperty bool            `json:"isProperty"`
	MethodName string          `json:"methodName"`
	Args       json.RawMessage `json:"args"`
}

// MarshalJSON encodes the operation as
// {"isProperty": bool, "methodName": string, "args": any}.
// Property operations carry their single value in args.
func (o Op) MarshalJSON() ([]byte, error) {
	var args any
	if o.isProperty {
		args = o.Value()
	} else {
		a := o.args
		if a == nil {
			a = []any{}
		}
		args = a
	}
	ab, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireOp{IsProperty: o.isProperty, MethodName: o.Name(), Args: ab})
}

// UnmarshalJSON decodes the wire form, restoring typed arguments
// from the method signature.
func (o *Op) UnmarshalJSON(b []byte) error {
	var w wireOp
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.IsProperty {
		p, ok := PropByName(w.MethodName)
		if !ok {
			return fmt.Errorf("%w: unknown property %q", ErrInvalidArgument, w.MethodName)
		}
		var raw any
		if len(w.Args) > 0 {
			if err := json.Unmarshal(w.Args, &raw); err != nil {
				return err
			}
		}
		v, err := fromWire(p.info().typ, raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidArgument, p, err)
		}
		r, err := PropertySet(p, v)
		if err != nil {
			return err
		}
		*o = r
		return nil
	}
	var raws []any
	if len(w.Args) > 0 && string(w.Args) != "null" {
		if err := json.Unmarshal(w.Args, &raws); err != nil {
			return err
		}
	}
	handle := false
	if len(raws) > 0 {
		if r, ok := marshal.IsReferenceJSON(raws[0]); ok && !r.IsElementRef {
			handle = true
		}
	}
	m, ok := MethodByName(w.MethodName, handle)
	if !ok {
		m, ok = MethodByName(w.MethodName, !handle)
	}
	if !ok {
		return fmt.Errorf("%w: unknown method %q", ErrInvalidArgument, w.MethodName)
	}
	sig := m.Signature()
	if len(raws) > sig.Max() {
		return fmt.Errorf("%w: %s takes at most %d arguments, got %d", ErrInvalidArgument, sig.Name, sig.Max(), len(raws))
	}
	args := make([]any, len(raws))
	for i, raw := range raws {
		v, err := fromWire(sig.Args[i], raw)
		if err != nil {
			return fmt.Errorf("%w: %s argument %d: %w", ErrInvalidArgument, sig.Name, i, err)
		}
		args[i] = v
	}
	r, err := MethodCall(m, args...)
	if err != nil {
		return err
	}
	*o = r
	return nil
}

// checkArg normalizes v and checks it against the type code.
// A nil value is accepted for any parameter.
func checkArg(code byte, v any) (any, error) {
	n, err := marshal.Normalize(v)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	ok := false
	switch code {
	case argNumber:
		_, ok = n.(float64)
	case argString:
		_, ok = n.(string)
	case argBool:
		_, ok = n.(bool)
	case argRef:
		_, ok = n.(marshal.Reference)
	case argStringRef:
		switch n.(type) {
		case string, marshal.Reference:
			ok = true
		}
	case argNumbers:
		_, ok = n.([]float64)
	case argPixels:
		_, ok = n.([]byte)
	}
	if !ok {
		return nil, fmt.Errorf("unexpected %T", v)
	}
	return n, nil
}

// fromWire converts a generic JSON value to the Go type for the code.
func fromWire(code byte, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch code {
	case argRef, argStringRef:
		if r, ok := marshal.IsReferenceJSON(v); ok {
			return r, nil
		}
	case argNumbers:
		l, ok := v.([]any)
		if !ok {
			if f, ok := v.(float64); ok {
				return []float64{f}, nil
			}
			return nil, fmt.Errorf("expected number list, got %T", v)
		}
		r := make([]float64, len(l))
		for i, e := range l {
			f, ok := e.(float64)
			if !ok {
				return nil, fmt.Errorf("expected number in list, got %T", e)
			}
			r[i] = f
		}
		return r, nil
	case argPixels:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected base64 pixel data, got %T", v)
		}
		return base64.StdEncoding.DecodeString(s)
	}
	return v, nil
}

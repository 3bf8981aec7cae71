// Package ojs is the runtime bridge used by generated bindings.
//
// Under GOOS=js GOARCH=wasm a Value is a syscall/js value and every operation
// goes to the JavaScript host. On every other platform the package carries a
// small in-memory object model with the same API, so generated bindings can
// be unit tested natively.
package ojs

import (
	"fmt"
	"math"
)

// intOfNumber truncates a JS number toward zero. NaN is 0 and values beyond
// the int range saturate, so the conversion never overflows. Integers are
// exact only within ±2^53, the range a JS number holds without rounding.
func intOfNumber(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}

// ArrayToJS converts xs element-wise into a new foreign array.
func ArrayToJS[T any](xs []T, conv func(T) Value) Value {
	a := NewArray(len(xs))
	for i, x := range xs {
		SetIndex(a, i, conv(x))
	}
	return a
}

// ArrayOfJS converts a foreign array element-wise, reading its length once.
func ArrayOfJS[T any](v Value, conv func(Value) T) []T {
	n := Length(v)
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = conv(Index(v, i))
	}
	return out
}

// Map converts each element of xs. It is used to spread variadic arguments
// into a flat argument list.
func Map[T any](xs []T, conv func(T) Value) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = conv(x)
	}
	return out
}

// FuncOf0 wraps a host closure as a foreign function of no arguments.
func FuncOf0(f func()) Value {
	return FuncOf(func(this Value, args []Value) Value {
		f()
		return Undefined()
	})
}

// Callback0 turns a foreign function into a host closure of no arguments.
func Callback0(v Value) func() {
	return func() { ApplyUnit(v, nil) }
}

// CallUnit invokes a method and discards its result.
func CallUnit(v Value, method string, args []Value) {
	Call(v, method, args)
}

// ApplyUnit invokes a function and discards its result.
func ApplyUnit(fn Value, args []Value) {
	Apply(fn, args)
}

// DecodeError reports a foreign value that has no host representation, such
// as an enumeration tag that matches no case and no default.
type DecodeError struct {
	Type  string
	Value string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ojs: cannot decode %s from %s", e.Type, e.Value)
}

// EncodeError reports a host value outside the declared cases of an
// enumeration, such as a converted integer with no matching constant.
type EncodeError struct {
	Type  string
	Value int
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("ojs: %s has no case %d", e.Type, e.Value)
}

//go:build js && wasm

package ojs

import "syscall/js"

type Value = js.Value

type Type = js.Type

const (
	TypeUndefined = js.TypeUndefined
	TypeNull      = js.TypeNull
	TypeBoolean   = js.TypeBoolean
	TypeNumber    = js.TypeNumber
	TypeString    = js.TypeString
	TypeSymbol    = js.TypeSymbol
	TypeObject    = js.TypeObject
	TypeFunction  = js.TypeFunction
)

func Undefined() Value { return js.Undefined() }
func Null() Value      { return js.Null() }

func StringToJS(s string) Value { return js.ValueOf(s) }
func StringOfJS(v Value) string { return v.String() }
func IntToJS(i int) Value       { return js.ValueOf(i) }
func IntOfJS(v Value) int       { return intOfNumber(v.Float()) }
func BoolToJS(b bool) Value     { return js.ValueOf(b) }
func BoolOfJS(v Value) bool     { return v.Bool() }
func FloatToJS(f float64) Value { return js.ValueOf(f) }
func FloatOfJS(v Value) float64 { return v.Float() }

func TypeOf(v Value) Type            { return v.Type() }
func Equal(a, b Value) bool          { return a.Equal(b) }
func Describe(v Value) string        { return v.String() }
func Global(name string) Value       { return js.Global().Get(name) }
func SetGlobal(name string, v Value) { js.Global().Set(name, v) }

func Get(v Value, name string) Value    { return v.Get(name) }
func Set(v Value, name string, x Value) { v.Set(name, x) }
func Length(v Value) int                { return v.Length() }
func Index(v Value, i int) Value        { return v.Index(i) }
func SetIndex(v Value, i int, x Value)  { v.SetIndex(i, x) }

func NewObject() Value     { return js.Global().Get("Object").New() }
func NewArray(n int) Value { return js.Global().Get("Array").New(n) }

func Call(v Value, method string, args []Value) Value {
	return v.Call(method, anys(args)...)
}

func Apply(fn Value, args []Value) Value {
	return fn.Invoke(anys(args)...)
}

func New(ctor Value, args []Value) Value {
	return ctor.New(anys(args)...)
}

// FuncOf wraps a host closure as a foreign function. The function is never
// released; it lives as long as the program.
func FuncOf(fn func(this Value, args []Value) Value) Value {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		return fn(this, args)
	}).Value
}

func anys(args []Value) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

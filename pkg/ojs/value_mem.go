//go:build !(js && wasm)

package ojs

import (
	"fmt"
	"strconv"
	"sync"
	"unicode/utf16"
)

// Type mirrors the JavaScript typeof classification.
type Type int

const (
	TypeUndefined Type = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeSymbol
	TypeObject
	TypeFunction
)

func (t Type) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeSymbol:
		return "symbol"
	case TypeObject:
		return "object"
	case TypeFunction:
		return "function"
	}
	return "unknown"
}

// Value is a foreign value of the in-memory object model. The zero Value is
// undefined. Objects, arrays and functions have reference semantics.
type Value struct {
	t   Type
	b   bool
	n   float64
	s   string
	obj *object
}

type object struct {
	mu    sync.Mutex
	props map[string]Value
	elems []Value
	array bool
	fn    func(this Value, args []Value) Value
}

// ValueError is raised, as a panic, when an operation is applied to a value
// of the wrong type.
type ValueError struct {
	Method string
	Type   Type
}

func (e *ValueError) Error() string {
	return "ojs: call of " + e.Method + " on " + e.Type.String()
}

func (v Value) String() string {
	switch v.t {
	case TypeString:
		return v.s
	case TypeNumber:
		return "<number: " + strconv.FormatFloat(v.n, 'g', -1, 64) + ">"
	case TypeBoolean:
		return "<boolean: " + strconv.FormatBool(v.b) + ">"
	}
	return "<" + v.t.String() + ">"
}

func Undefined() Value { return Value{} }
func Null() Value      { return Value{t: TypeNull} }

func StringToJS(s string) Value { return Value{t: TypeString, s: s} }
func IntToJS(i int) Value       { return Value{t: TypeNumber, n: float64(i)} }
func BoolToJS(b bool) Value     { return Value{t: TypeBoolean, b: b} }
func FloatToJS(f float64) Value { return Value{t: TypeNumber, n: f} }

func StringOfJS(v Value) string {
	if v.t != TypeString {
		return v.String()
	}
	return v.s
}

// IntOfJS truncates a number to int, saturating at the int range.
// IntToJS is exact only for |i| <= 2^53.
func IntOfJS(v Value) int {
	if v.t != TypeNumber {
		panic(&ValueError{Method: "IntOfJS", Type: v.t})
	}
	return intOfNumber(v.n)
}

func BoolOfJS(v Value) bool {
	if v.t != TypeBoolean {
		panic(&ValueError{Method: "BoolOfJS", Type: v.t})
	}
	return v.b
}

func FloatOfJS(v Value) float64 {
	if v.t != TypeNumber {
		panic(&ValueError{Method: "FloatOfJS", Type: v.t})
	}
	return v.n
}

func TypeOf(v Value) Type     { return v.t }
func Describe(v Value) string { return v.String() }

// Equal is strict equality: scalars compare by value, everything else by
// identity.
func Equal(a, b Value) bool {
	if a.t != b.t {
		return false
	}
	switch a.t {
	case TypeUndefined, TypeNull:
		return true
	case TypeBoolean:
		return a.b == b.b
	case TypeNumber:
		return a.n == b.n
	case TypeString:
		return a.s == b.s
	}
	return a.obj == b.obj
}

func NewObject() Value {
	return Value{t: TypeObject, obj: &object{props: make(map[string]Value)}}
}

func NewArray(n int) Value {
	return Value{t: TypeObject, obj: &object{props: make(map[string]Value), elems: make([]Value, n), array: true}}
}

// FuncOf wraps a host closure as a foreign function.
func FuncOf(fn func(this Value, args []Value) Value) Value {
	return Value{t: TypeFunction, obj: &object{props: make(map[string]Value), fn: fn}}
}

func (v Value) object(method string) *object {
	if v.obj == nil {
		panic(&ValueError{Method: method, Type: v.t})
	}
	return v.obj
}

func Get(v Value, name string) Value {
	switch v.t {
	case TypeUndefined, TypeNull:
		panic(&ValueError{Method: "Get", Type: v.t})
	case TypeString:
		if name == "length" {
			return IntToJS(len(utf16.Encode([]rune(v.s))))
		}
		return Undefined()
	case TypeObject, TypeFunction:
	default:
		return Undefined()
	}
	o := v.obj
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.array {
		if name == "length" {
			return IntToJS(len(o.elems))
		}
		if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < len(o.elems) {
			return o.elems[i]
		}
	}
	return o.props[name]
}

func Set(v Value, name string, x Value) {
	o := v.object("Set")
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.array {
		if i, err := strconv.Atoi(name); err == nil && i >= 0 {
			o.setIndex(i, x)
			return
		}
	}
	o.props[name] = x
}

func Length(v Value) int {
	return IntOfJS(Get(v, "length"))
}

func Index(v Value, i int) Value {
	o := v.object("Index")
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.array || i < 0 || i >= len(o.elems) {
		return Undefined()
	}
	return o.elems[i]
}

func SetIndex(v Value, i int, x Value) {
	o := v.object("SetIndex")
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.array {
		o.props[strconv.Itoa(i)] = x
		return
	}
	o.setIndex(i, x)
}

func (o *object) setIndex(i int, x Value) {
	for len(o.elems) <= i {
		o.elems = append(o.elems, Undefined())
	}
	o.elems[i] = x
}

func (v Value) call(method string, this Value, args []Value) Value {
	if v.t != TypeFunction {
		panic(&ValueError{Method: method, Type: v.t})
	}
	return v.obj.fn(this, args)
}

// Call invokes the method called name on v.
func Call(v Value, name string, args []Value) Value {
	return Get(v, name).call("Call", v, args)
}

// Apply invokes fn with an undefined receiver.
func Apply(fn Value, args []Value) Value {
	return fn.call("Apply", Undefined(), args)
}

// New constructs an object with ctor. The constructor receives the fresh
// object as its receiver; an object it returns replaces the fresh one.
func New(ctor Value, args []Value) Value {
	this := NewObject()
	res := ctor.call("New", this, args)
	if res.t == TypeObject || res.t == TypeFunction {
		return res
	}
	return this
}

var global = NewObject()

func Global(name string) Value {
	return Get(global, name)
}

func SetGlobal(name string, v Value) {
	Set(global, name, v)
}

// GoString renders v for test failure messages.
func (v Value) GoString() string {
	if v.t == TypeString {
		return fmt.Sprintf("ojs.StringToJS(%q)", v.s)
	}
	return v.String()
}

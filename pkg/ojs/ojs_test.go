//go:build !(js && wasm)

package ojs

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	t.Parallel()
	if got := StringOfJS(StringToJS("héllo")); got != "héllo" {
		t.Errorf("string = %q", got)
	}
	if got := IntOfJS(IntToJS(-42)); got != -42 {
		t.Errorf("int = %d", got)
	}
	if got := BoolOfJS(BoolToJS(true)); !got {
		t.Error("bool = false")
	}
	if got := FloatOfJS(FloatToJS(1.5)); got != 1.5 {
		t.Errorf("float = %v", got)
	}
	if got := FloatOfJS(IntToJS(3)); got != 3 {
		t.Errorf("int as float = %v", got)
	}
}

func TestIntOfJS_Range(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   Value
		want int
	}{
		{"max safe integer", IntToJS(1<<53 - 1), 1<<53 - 1},
		{"min safe integer", IntToJS(-(1<<53 - 1)), -(1<<53 - 1)},
		{"truncates toward zero", FloatToJS(-2.9), -2},
		{"max int", IntToJS(math.MaxInt), math.MaxInt},
		{"min int", IntToJS(math.MinInt), math.MinInt},
		{"above range", FloatToJS(1e300), math.MaxInt},
		{"below range", FloatToJS(-1e300), math.MinInt},
		{"positive infinity", FloatToJS(math.Inf(1)), math.MaxInt},
		{"negative infinity", FloatToJS(math.Inf(-1)), math.MinInt},
		{"nan", FloatToJS(math.NaN()), 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IntOfJS(tt.in); got != tt.want {
				t.Errorf("IntOfJS = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStringLengthCountsUTF16Units(t *testing.T) {
	t.Parallel()
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"😀", 2},
		{"a😀b", 4},
	}
	for _, tt := range tests {
		if got := Length(StringToJS(tt.s)); got != tt.want {
			t.Errorf("Length(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestTypeOf(t *testing.T) {
	t.Parallel()
	tests := []struct {
		v    Value
		want Type
	}{
		{Undefined(), TypeUndefined},
		{Null(), TypeNull},
		{BoolToJS(false), TypeBoolean},
		{IntToJS(1), TypeNumber},
		{StringToJS(""), TypeString},
		{NewObject(), TypeObject},
		{NewArray(0), TypeObject},
		{FuncOf(func(Value, []Value) Value { return Undefined() }), TypeFunction},
	}
	for _, tt := range tests {
		if got := TypeOf(tt.v); got != tt.want {
			t.Errorf("TypeOf(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestWrongTypePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected an error panic, got %v", r)
		}
		var ve *ValueError
		if !errors.As(err, &ve) || ve.Method != "IntOfJS" || ve.Type != TypeString {
			t.Errorf("panic = %v", err)
		}
	}()
	IntOfJS(StringToJS("1"))
}

func TestEqualIsIdentityForObjects(t *testing.T) {
	t.Parallel()
	type element Value
	o := NewObject()
	if !Equal(Value(element(o)), o) {
		t.Error("an opaque conversion must keep identity")
	}
	if Equal(o, NewObject()) {
		t.Error("distinct objects must not be equal")
	}
	if !Equal(StringToJS("a"), StringToJS("a")) {
		t.Error("equal strings must be equal")
	}
	if Equal(IntToJS(1), StringToJS("1")) {
		t.Error("equality is strict")
	}
}

func TestObjectProperties(t *testing.T) {
	t.Parallel()
	o := NewObject()
	Set(o, "width", IntToJS(10))
	if got := IntOfJS(Get(o, "width")); got != 10 {
		t.Errorf("width = %d, want 10", got)
	}
	if got := TypeOf(Get(o, "missing")); got != TypeUndefined {
		t.Errorf("missing property is %s, want undefined", got)
	}
	if got := IntOfJS(Get(StringToJS("héllo"), "length")); got != 5 {
		t.Errorf("string length = %d, want 5", got)
	}
}

func TestArrays(t *testing.T) {
	t.Parallel()
	a := ArrayToJS([]int{1, 2, 3}, IntToJS)
	if got := Length(a); got != 3 {
		t.Fatalf("length = %d, want 3", got)
	}
	if got := IntOfJS(Get(a, "1")); got != 2 {
		t.Errorf("a[1] = %d, want 2", got)
	}
	if got := ArrayOfJS(a, IntOfJS); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("round trip = %v", got)
	}

	SetIndex(a, 4, IntToJS(5))
	if got := Length(a); got != 5 {
		t.Errorf("length after grow = %d, want 5", got)
	}
	if got := TypeOf(Index(a, 3)); got != TypeUndefined {
		t.Errorf("hole is %s, want undefined", got)
	}

	nested := ArrayToJS([][]string{{"a"}, {"b", "c"}}, func(e []string) Value { return ArrayToJS(e, StringToJS) })
	got := ArrayOfJS(nested, func(e Value) []string { return ArrayOfJS(e, StringOfJS) })
	if !reflect.DeepEqual(got, [][]string{{"a"}, {"b", "c"}}) {
		t.Errorf("nested round trip = %v", got)
	}
}

func collectArgs(dst *[]string) Value {
	return FuncOf(func(this Value, args []Value) Value {
		for _, a := range args {
			*dst = append(*dst, StringOfJS(a))
		}
		return IntToJS(len(args))
	})
}

func TestVariadicSpread(t *testing.T) {
	t.Parallel()
	var got []string
	fn := collectArgs(&got)
	rest := []string{"a", "b", "c"}
	n := IntOfJS(Apply(fn, append([]Value{StringToJS("-")}, Map(rest, StringToJS)...)))
	if n != 4 {
		t.Errorf("received %d arguments, want 4", n)
	}
	if want := []string{"-", "a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("arguments = %v, want %v", got, want)
	}

	got = nil
	Apply(fn, append([]Value{StringToJS("-")}, Map([]string(nil), StringToJS)...))
	if want := []string{"-"}; !reflect.DeepEqual(got, want) {
		t.Errorf("empty spread: arguments = %v, want %v", got, want)
	}
}

func TestCallUsesReceiver(t *testing.T) {
	t.Parallel()
	o := NewObject()
	Set(o, "name", StringToJS("box"))
	Set(o, "describe", FuncOf(func(this Value, args []Value) Value {
		return StringToJS(StringOfJS(Get(this, "name")) + StringOfJS(args[0]))
	}))
	if got := StringOfJS(Call(o, "describe", []Value{StringToJS("!")})); got != "box!" {
		t.Errorf("describe = %q, want box!", got)
	}

	defer func() {
		if _, ok := recover().(*ValueError); !ok {
			t.Error("calling a non-function must panic with *ValueError")
		}
	}()
	CallUnit(o, "name", nil)
}

func TestNew(t *testing.T) {
	t.Parallel()
	point := FuncOf(func(this Value, args []Value) Value {
		Set(this, "x", args[0])
		return Undefined()
	})
	p := New(point, []Value{IntToJS(7)})
	if got := IntOfJS(Get(p, "x")); got != 7 {
		t.Errorf("x = %d, want 7", got)
	}

	replacement := NewObject()
	factory := FuncOf(func(Value, []Value) Value { return replacement })
	if got := New(factory, nil); !Equal(got, replacement) {
		t.Error("an object returned by the constructor must replace the receiver")
	}
}

func TestThunks(t *testing.T) {
	t.Parallel()
	calls := 0
	fn := FuncOf0(func() { calls++ })
	ApplyUnit(fn, nil)
	Callback0(fn)()
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestGlobals(t *testing.T) {
	t.Parallel()
	SetGlobal("ojsTestAnswer", IntToJS(42))
	if got := IntOfJS(Global("ojsTestAnswer")); got != 42 {
		t.Errorf("global = %d, want 42", got)
	}
	if got := TypeOf(Global("ojsTestMissing")); got != TypeUndefined {
		t.Errorf("missing global is %s, want undefined", got)
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()
	de := &DecodeError{Type: "Kind", Value: Describe(IntToJS(3))}
	if got := de.Error(); got != "ojs: cannot decode Kind from <number: 3>" {
		t.Errorf("decode error = %q", got)
	}
	ee := &EncodeError{Type: "Kind", Value: 9}
	if got := ee.Error(); got != "ojs: Kind has no case 9" {
		t.Errorf("encode error = %q", got)
	}
}

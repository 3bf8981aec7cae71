//go:build !(js && wasm)

package bindtest_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/funvibe/jsbind/internal/bindtest"
	"github.com/funvibe/jsbind/internal/bindtest/events"
	"github.com/funvibe/jsbind/pkg/ojs"
)

func recoverPanic(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		err, _ = r.(error)
	}()
	fn()
	return nil
}

// method installs a host function as property name of o.
func method(o ojs.Value, name string, fn func(this ojs.Value, args []ojs.Value) ojs.Value) {
	ojs.Set(o, name, ojs.FuncOf(fn))
}

func TestEnumRoundTrip(t *testing.T) {
	t.Parallel()
	for _, k := range []bindtest.Kind{bindtest.KindFoo, bindtest.KindBar, bindtest.KindBaz} {
		if got := bindtest.KindOfJS(bindtest.KindToJS(k)); got != k {
			t.Errorf("round trip of %s = %s", k, got)
		}
	}
	if got := ojs.StringOfJS(bindtest.KindToJS(bindtest.KindFoo)); got != "foo" {
		t.Errorf("Foo encodes as %q, want foo", got)
	}
	if got := ojs.IntOfJS(bindtest.KindToJS(bindtest.KindBar)); got != 42 {
		t.Errorf("Bar encodes as %d, want 42", got)
	}
	if got := ojs.StringOfJS(bindtest.KindToJS(bindtest.KindBaz)); got != "Baz" {
		t.Errorf("Baz encodes as %q, want its case name", got)
	}
	if got := bindtest.Kind(7).String(); got != "Kind(7)" {
		t.Errorf("String of an invalid case = %q", got)
	}
}

func TestEnumDecodeErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		v    ojs.Value
		want string
	}{
		{"unknown string", ojs.StringToJS("Qux"), "Qux"},
		{"case name is not a tag", ojs.StringToJS("Foo"), "Foo"},
		{"non-integral number", ojs.FloatToJS(42.5), "<number: 42.5>"},
		{"wrong type", ojs.BoolToJS(true), "<boolean: true>"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := recoverPanic(t, func() { bindtest.KindOfJS(tt.v) })
			var de *ojs.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("panic = %v, want *ojs.DecodeError", err)
			}
			if de.Type != "Kind" || de.Value != tt.want {
				t.Errorf("decode error = %+v", de)
			}
		})
	}
}

func TestEnumEncodeInvalid(t *testing.T) {
	t.Parallel()
	err := recoverPanic(t, func() { bindtest.KindToJS(bindtest.Kind(9)) })
	var ee *ojs.EncodeError
	if !errors.As(err, &ee) || ee.Value != 9 {
		t.Errorf("panic = %v, want *ojs.EncodeError for 9", err)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	t.Parallel()
	p := bindtest.Point{X: 3, Label: "origin"}
	v := bindtest.PointToJS(p)
	if got := ojs.StringOfJS(ojs.Get(v, "text")); got != "origin" {
		t.Errorf("text property = %q, want origin", got)
	}
	if got := ojs.TypeOf(ojs.Get(v, "label")); got != ojs.TypeUndefined {
		t.Errorf("label property is %s, want undefined", got)
	}
	if got := bindtest.PointOfJS(v); !reflect.DeepEqual(got, p) {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
}

func TestOpaqueIdentity(t *testing.T) {
	t.Parallel()
	o := ojs.NewObject()
	if !ojs.Equal(bindtest.ElementToJS(bindtest.ElementOfJS(o)), o) {
		t.Error("opaque conversions must keep identity")
	}
}

func TestProperties(t *testing.T) {
	t.Parallel()
	o := ojs.NewObject()
	el := bindtest.ElementOfJS(o)

	bindtest.SetWidth(el, 12)
	if got := ojs.IntOfJS(ojs.Get(o, "width")); got != 12 {
		t.Errorf("width property = %d, want 12", got)
	}
	if got := bindtest.Width(el); got != 12 {
		t.Errorf("Width = %d, want 12", got)
	}

	ojs.Set(o, "height", ojs.IntToJS(5))
	if got := bindtest.Height(el); got != 5 {
		t.Errorf("Height = %d, want 5", got)
	}
}

func TestMethods(t *testing.T) {
	t.Parallel()
	o := ojs.NewObject()
	el := bindtest.ElementOfJS(o)

	var joined []string
	method(o, "join", func(this ojs.Value, args []ojs.Value) ojs.Value {
		if !ojs.Equal(this, o) {
			t.Error("join called with the wrong receiver")
		}
		for _, a := range args {
			joined = append(joined, ojs.StringOfJS(a))
		}
		return ojs.StringToJS("joined")
	})
	if got := bindtest.Join(el, "-", "a", "b", "c"); got != "joined" {
		t.Errorf("Join = %q", got)
	}
	if want := []string{"-", "a", "b", "c"}; !reflect.DeepEqual(joined, want) {
		t.Errorf("join received %v, want %v", joined, want)
	}

	var countArgs []ojs.Value
	method(o, "count", func(this ojs.Value, args []ojs.Value) ojs.Value {
		countArgs = args
		return ojs.IntToJS(3)
	})
	if got := bindtest.Count(el); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
	if len(countArgs) != 0 {
		t.Errorf("count received %d arguments, want none", len(countArgs))
	}
}

func TestCallbackExpression(t *testing.T) {
	t.Parallel()
	o := ojs.NewObject()
	var event string
	var handler ojs.Value
	method(o, "addEventListener", func(this ojs.Value, args []ojs.Value) ojs.Value {
		event, handler = ojs.StringOfJS(args[0]), args[1]
		return ojs.Undefined()
	})
	clicks := 0
	bindtest.OnClick(bindtest.ElementOfJS(o), func() { clicks++ })
	if event != "click" {
		t.Fatalf("listener registered for %q, want click", event)
	}
	ojs.Callback0(handler)()
	ojs.Callback0(handler)()
	if clicks != 2 {
		t.Errorf("clicks = %d, want 2", clicks)
	}
}

func TestGlobalFunction(t *testing.T) {
	t.Parallel()
	ojs.SetGlobal("parseInt", ojs.FuncOf(func(this ojs.Value, args []ojs.Value) ojs.Value {
		return ojs.IntToJS(len(ojs.StringOfJS(args[0])))
	}))
	if got := bindtest.ParseInt("1234"); got != 4 {
		t.Errorf("ParseInt = %d, want 4", got)
	}
}

func TestSubmoduleUsesParentTypes(t *testing.T) {
	t.Parallel()
	target := ojs.NewObject()
	e := ojs.NewObject()
	ojs.Set(e, "target", target)
	el := events.Target(events.EventOfJS(e))
	if !ojs.Equal(bindtest.ElementToJS(el), target) {
		t.Error("Target must return the target object")
	}
}

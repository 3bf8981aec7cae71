package codegen

import (
	"strings"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/token"
)

// Marshaller produces the Go expressions converting values of a signature
// type to and from ojs.Value. Conversions of Named types go through the
// conversion-pair table; everything else is structural.
type Marshaller struct {
	uc *unitContext
	// pos locates diagnostics for the declaration being generated.
	pos token.Position
}

// ToJS returns an expression converting the host value x of type t.
func (mr *Marshaller) ToJS(t ast.Type, x string) (string, error) {
	switch t := t.(type) {
	case *ast.Foreign:
		return x, nil
	case *ast.Array:
		fn, err := mr.ToJSFunc(t.Elem)
		if err != nil {
			return "", err
		}
		return mr.uc.rt("ArrayToJS") + "(" + x + ", " + fn + ")", nil
	case *ast.Arrow:
		if !isThunk(t) {
			return "", mr.nested(t)
		}
		return mr.uc.rt("FuncOf0") + "(" + x + ")", nil
	}
	fn, err := mr.ToJSFunc(t)
	if err != nil {
		return "", err
	}
	return fn + "(" + x + ")", nil
}

// OfJS returns an expression converting the foreign value v to type t.
func (mr *Marshaller) OfJS(t ast.Type, v string) (string, error) {
	switch t := t.(type) {
	case *ast.Foreign:
		return v, nil
	case *ast.Array:
		fn, err := mr.OfJSFunc(t.Elem)
		if err != nil {
			return "", err
		}
		return mr.uc.rt("ArrayOfJS") + "(" + v + ", " + fn + ")", nil
	case *ast.Arrow:
		if !isThunk(t) {
			return "", mr.nested(t)
		}
		return mr.uc.rt("Callback0") + "(" + v + ")", nil
	}
	fn, err := mr.OfJSFunc(t)
	if err != nil {
		return "", err
	}
	return fn + "(" + v + ")", nil
}

// ToJSFunc returns a function value of type func(T) ojs.Value.
func (mr *Marshaller) ToJSFunc(t ast.Type) (string, error) {
	return ast.WalkType[conv](t, &funcBuilder{mr: mr, toJS: true}).result()
}

// OfJSFunc returns a function value of type func(ojs.Value) T.
func (mr *Marshaller) OfJSFunc(t ast.Type) (string, error) {
	return ast.WalkType[conv](t, &funcBuilder{mr: mr}).result()
}

// GoType returns the Go spelling of t. Unit has none and yields "".
func (mr *Marshaller) GoType(t ast.Type) (string, error) {
	return ast.WalkType[conv](t, &typePrinter{mr: mr}).result()
}

func (mr *Marshaller) nested(t *ast.Arrow) error {
	return diagnostics.Errorf(diagnostics.ErrUnsupportedForm, mr.pos,
		"nested function type %s cannot be converted; only func() can cross the bridge", t)
}

// isThunk reports whether t is func(), the only nested function shape with
// a fixed conversion.
func isThunk(t *ast.Arrow) bool {
	return t.Arity() == 0 && !t.Variadic && ast.IsUnit(t.Result)
}

type conv struct {
	code string
	err  error
}

func (c conv) result() (string, error) { return c.code, c.err }

// funcBuilder names the conversion function for a type, wrapping structural
// conversions in a func literal.
type funcBuilder struct {
	mr   *Marshaller
	toJS bool
}

func (fb *funcBuilder) VisitPrimitive(t *ast.Primitive) conv {
	name := primitiveConv[t.Kind]
	if name == "" {
		return conv{err: diagnostics.Errorf(diagnostics.ErrUnsupportedForm, fb.mr.pos,
			"%s has no foreign representation here", t)}
	}
	if fb.toJS {
		return conv{code: fb.mr.uc.rt(name + "ToJS")}
	}
	return conv{code: fb.mr.uc.rt(name + "OfJS")}
}

var primitiveConv = map[ast.PrimitiveKind]string{
	ast.String: "String",
	ast.Int:    "Int",
	ast.Bool:   "Bool",
	ast.Float:  "Float",
}

func (fb *funcBuilder) VisitForeign(t *ast.Foreign) conv {
	return fb.literal(t)
}

func (fb *funcBuilder) VisitNamed(t *ast.Named) conv {
	pair, err := fb.mr.uc.pair(t)
	if err != nil {
		return conv{err: err}
	}
	if fb.toJS {
		return conv{code: pair.toJS}
	}
	return conv{code: pair.ofJS}
}

func (fb *funcBuilder) VisitArray(t *ast.Array) conv { return fb.literal(t) }
func (fb *funcBuilder) VisitArrow(t *ast.Arrow) conv { return fb.literal(t) }

// literal builds func(e T) ojs.Value { return <conversion of e> } or its
// inverse.
func (fb *funcBuilder) literal(t ast.Type) conv {
	goType, err := fb.mr.GoType(t)
	if err != nil {
		return conv{err: err}
	}
	value := fb.mr.uc.rt("Value")
	var body string
	var b strings.Builder
	if fb.toJS {
		body, err = fb.mr.ToJS(t, "e")
		b.WriteString("func(e " + goType + ") " + value)
	} else {
		body, err = fb.mr.OfJS(t, "e")
		b.WriteString("func(e " + value + ") " + goType)
	}
	if err != nil {
		return conv{err: err}
	}
	b.WriteString(" { return " + body + " }")
	return conv{code: b.String()}
}

type typePrinter struct {
	mr *Marshaller
}

func (tp *typePrinter) VisitPrimitive(t *ast.Primitive) conv {
	if t.Kind == ast.Unit {
		return conv{}
	}
	return conv{code: t.Kind.String()}
}

func (tp *typePrinter) VisitForeign(t *ast.Foreign) conv {
	return conv{code: tp.mr.uc.rt("Value")}
}

func (tp *typePrinter) VisitNamed(t *ast.Named) conv {
	pair, err := tp.mr.uc.pair(t)
	return conv{code: pair.goType, err: err}
}

func (tp *typePrinter) VisitArray(t *ast.Array) conv {
	elem, err := tp.mr.GoType(t.Elem)
	return conv{code: "[]" + elem, err: err}
}

func (tp *typePrinter) VisitArrow(t *ast.Arrow) conv {
	var params []string
	for i, p := range t.Params {
		if ast.IsUnit(p.Type) {
			continue
		}
		pt, err := tp.mr.GoType(p.Type)
		if err != nil {
			return conv{err: err}
		}
		if t.Variadic && i == len(t.Params)-1 {
			pt = "..." + pt
		}
		params = append(params, pt)
	}
	var b strings.Builder
	b.WriteString("func(" + strings.Join(params, ", ") + ")")
	res, err := tp.mr.GoType(t.Result)
	if err != nil {
		return conv{err: err}
	}
	if res != "" {
		b.WriteString(" " + res)
	}
	return conv{code: b.String()}
}

package ast

import (
	"strings"

	"github.com/funvibe/jsbind/internal/token"
)

// --- Type Model ---

// Type is a type nameable in a signature.
// Primitive, Foreign, Named, Array, Arrow.
type Type interface {
	typeNode()
	String() string
}

// TypeVisitor is implemented by every algorithm that dispatches on a Type.
type TypeVisitor[R any] interface {
	VisitPrimitive(t *Primitive) R
	VisitForeign(t *Foreign) R
	VisitNamed(t *Named) R
	VisitArray(t *Array) R
	VisitArrow(t *Arrow) R
}

// WalkType dispatches t to the matching visitor method.
func WalkType[R any](t Type, v TypeVisitor[R]) R {
	switch t := t.(type) {
	case *Primitive:
		return v.VisitPrimitive(t)
	case *Foreign:
		return v.VisitForeign(t)
	case *Named:
		return v.VisitNamed(t)
	case *Array:
		return v.VisitArray(t)
	case *Arrow:
		return v.VisitArrow(t)
	}
	panic("ast: unknown type node")
}

type PrimitiveKind int

const (
	String PrimitiveKind = iota
	Int
	Bool
	Float
	Unit
)

var primitiveNames = [...]string{
	String: "string",
	Int:    "int",
	Bool:   "bool",
	Float:  "float64",
	Unit:   "unit",
}

func (k PrimitiveKind) String() string { return primitiveNames[k] }

// Primitive is one of the scalar types with a fixed bridge conversion.
type Primitive struct {
	Kind PrimitiveKind
}

func (t *Primitive) typeNode()      {}
func (t *Primitive) String() string { return t.Kind.String() }

// Shared primitive instances. Types are immutable once parsed.
var (
	StringType = &Primitive{Kind: String}
	IntType    = &Primitive{Kind: Int}
	BoolType   = &Primitive{Kind: Bool}
	FloatType  = &Primitive{Kind: Float}
	UnitType   = &Primitive{Kind: Unit}
)

// Foreign is the opaque dynamic value itself (ojs.Value).
type Foreign struct{}

func (t *Foreign) typeNode()      {}
func (t *Foreign) String() string { return "ojs.Value" }

// ForeignType is the single Foreign instance.
var ForeignType = &Foreign{}

// Named references a type declared elsewhere in the signature, optionally
// qualified by the module that declares it ("style.color").
type Named struct {
	Qualifier string
	Name      string
	Pos       token.Position
}

func (t *Named) typeNode() {}
func (t *Named) String() string {
	if t.Qualifier != "" {
		return t.Qualifier + "." + t.Name
	}
	return t.Name
}

// Array is a 0-indexed sequence, a Go slice on the host side.
type Array struct {
	Elem Type
}

func (t *Array) typeNode()      {}
func (t *Array) String() string { return "[]" + t.Elem.String() }

// Param is one Arrow parameter. Name is empty when the signature left it unnamed.
type Param struct {
	Name string
	Type Type
}

// Arrow is a (flattened) function type. Variadic marks the last parameter:
// its Type is the element type and the host value is a slice of it.
// A Unit parameter stands for an empty parameter list: alone it means the
// function takes no arguments, after a curried join it keeps the JS arity.
type Arrow struct {
	Params   []Param
	Variadic bool
	Result   Type
}

func (t *Arrow) typeNode() {}

// String prints the arrow in curried Go form: each Unit parameter is
// rendered as its own func() group.
func (t *Arrow) String() string {
	var b strings.Builder
	var group []string
	flush := func() {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("func(" + strings.Join(group, ", ") + ")")
		group = group[:0]
	}
	for i, p := range t.Params {
		if IsUnit(p.Type) {
			if len(group) > 0 {
				flush()
			}
			flush()
			continue
		}
		s := p.Type.String()
		if t.Variadic && i == len(t.Params)-1 {
			s = "..." + s
		}
		group = append(group, s)
	}
	if len(group) > 0 || b.Len() == 0 {
		flush()
	}
	if !IsUnit(t.Result) {
		b.WriteString(" ")
		b.WriteString(t.Result.String())
	}
	return b.String()
}

// Arity is the number of parameters. A sole Unit parameter counts as zero.
func (t *Arrow) Arity() int {
	if len(t.Params) == 1 && IsUnit(t.Params[0].Type) {
		return 0
	}
	return len(t.Params)
}

// IsUnit reports whether t is the Unit primitive.
func IsUnit(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.Kind == Unit
}

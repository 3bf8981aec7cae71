package ast

import "strconv"

// --- Binding kinds ---

// BindingKind is the strategy realising a ValueDecl as foreign operations.
type BindingKind interface {
	bindingNode()
	String() string
}

type BindingVisitor[R any] interface {
	VisitCast(b *Cast) R
	VisitPropertyGet(b *PropertyGet) R
	VisitPropertySet(b *PropertySet) R
	VisitMethodCall(b *MethodCall) R
	VisitGlobalVariable(b *GlobalVariable) R
	VisitCustomExpr(b *CustomExpr) R
}

func WalkBinding[R any](b BindingKind, v BindingVisitor[R]) R {
	switch b := b.(type) {
	case *Cast:
		return v.VisitCast(b)
	case *PropertyGet:
		return v.VisitPropertyGet(b)
	case *PropertySet:
		return v.VisitPropertySet(b)
	case *MethodCall:
		return v.VisitMethodCall(b)
	case *GlobalVariable:
		return v.VisitGlobalVariable(b)
	case *CustomExpr:
		return v.VisitCustomExpr(b)
	}
	panic("ast: unknown binding kind")
}

// Cast reinterprets one opaque type as another.
type Cast struct{}

func (b *Cast) bindingNode()   {}
func (b *Cast) String() string { return "cast" }

// PropertyGet reads a property off the receiver.
type PropertyGet struct{ Name string }

func (b *PropertyGet) bindingNode()   {}
func (b *PropertyGet) String() string { return "get " + strconv.Quote(b.Name) }

// PropertySet writes a property on the receiver.
type PropertySet struct{ Name string }

func (b *PropertySet) bindingNode()   {}
func (b *PropertySet) String() string { return "set " + strconv.Quote(b.Name) }

// MethodCall invokes a method on the receiver.
type MethodCall struct{ Name string }

func (b *MethodCall) bindingNode()   {}
func (b *MethodCall) String() string { return "call " + strconv.Quote(b.Name) }

// GlobalVariable reads (or applies) a global.
type GlobalVariable struct{ Name string }

func (b *GlobalVariable) bindingNode()   {}
func (b *GlobalVariable) String() string { return "global " + strconv.Quote(b.Name) }

// CustomExpr evaluates a user-supplied expression over the formal parameters.
type CustomExpr struct{ Expr Expr }

func (b *CustomExpr) bindingNode()   {}
func (b *CustomExpr) String() string { return "expr " + b.Expr.String() }

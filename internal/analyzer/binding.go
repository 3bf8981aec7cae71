package analyzer

import (
	"strings"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/config"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/symbols"
)

func (a *Analyzer) resolveBinding(m *symbols.Module, v *symbols.Value) error {
	d := v.Decl
	arrow, _ := d.Type.(*ast.Arrow)
	if arrow != nil {
		if err := checkParamNames(d, arrow); err != nil {
			return err
		}
	}

	v.Binding = d.Binding
	if v.Binding == nil {
		v.Binding = InferBinding(d.Name, d.Type)
		v.Inferred = true
	}
	sc := &shapeChecker{a: a, m: m, decl: d, arrow: arrow}
	return ast.WalkBinding[error](v.Binding, sc)
}

// InferBinding picks a binding kind from the shape of t when the declaration
// carries no attribute. The rules are tried in a fixed order:
//
//  1. func(T) R               → getter of property name
//  2. func(T, A) and "set_x"   → setter of property x
//  3. func(T, A, ...) R       → method name
//  4. anything else           → global name
//
// where T is a named type and A is not the empty list of a curried
// func(T) func(). A single-receiver function is always a getter, even
// func(T), unless an explicit attribute says otherwise.
func InferBinding(name string, t ast.Type) ast.BindingKind {
	arrow, ok := t.(*ast.Arrow)
	if !ok || len(arrow.Params) == 0 {
		return &ast.GlobalVariable{Name: name}
	}
	if _, named := arrow.Params[0].Type.(*ast.Named); !named {
		return &ast.GlobalVariable{Name: name}
	}
	switch n := len(arrow.Params); {
	case n == 1 && !arrow.Variadic:
		return &ast.PropertyGet{Name: name}
	case n == 2 && !arrow.Variadic && !ast.IsUnit(arrow.Params[1].Type) &&
		ast.IsUnit(arrow.Result) && strings.HasPrefix(name, config.SetterPrefix):
		return &ast.PropertySet{Name: strings.TrimPrefix(name, config.SetterPrefix)}
	case n >= 2:
		return &ast.MethodCall{Name: name}
	}
	return &ast.GlobalVariable{Name: name}
}

func checkParamNames(d *ast.ValueDecl, arrow *ast.Arrow) error {
	seen := make(map[string]bool, len(arrow.Params))
	for i, p := range arrow.Params {
		if ast.IsUnit(p.Type) {
			continue
		}
		name := symbols.ParamName(i, p)
		if seen[name] {
			return diagnostics.Errorf(diagnostics.ErrDuplicateDeclaration, d.TypePos,
				"val %s: duplicate parameter name %s", d.Name, name)
		}
		seen[name] = true
	}
	return nil
}

// shapeChecker verifies that the declared type has the shape the binding
// kind requires.
type shapeChecker struct {
	a     *Analyzer
	m     *symbols.Module
	decl  *ast.ValueDecl
	arrow *ast.Arrow
}

func (sc *shapeChecker) mismatch(kind ast.BindingKind, want string) error {
	pos := sc.decl.BindingPos
	if !pos.IsValid() {
		pos = sc.decl.TypePos
	}
	return diagnostics.Errorf(diagnostics.ErrBindingTypeMismatch, pos,
		"val %s: %s requires %s, got %s", sc.decl.Name, kind, want, sc.decl.Type)
}

func (sc *shapeChecker) VisitCast(b *ast.Cast) error {
	const want = "a function from one opaque type to another"
	a := sc.arrow
	if a == nil || len(a.Params) != 1 || a.Variadic {
		return sc.mismatch(b, want)
	}
	if !sc.opaque(a.Params[0].Type) || !sc.opaque(a.Result) {
		return sc.mismatch(b, want)
	}
	return nil
}

// opaque reports whether t is represented as the foreign value itself.
func (sc *shapeChecker) opaque(t ast.Type) bool {
	switch t := t.(type) {
	case *ast.Foreign:
		return true
	case *ast.Named:
		sym, ok := sc.a.program.Lookup(t)
		return ok && sym.Kind == symbols.OpaqueSymbol
	}
	return false
}

func (sc *shapeChecker) VisitPropertyGet(b *ast.PropertyGet) error {
	a := sc.arrow
	if a == nil || a.Arity() != 1 || a.Variadic {
		return sc.mismatch(b, "a function of exactly one receiver")
	}
	return nil
}

func (sc *shapeChecker) VisitPropertySet(b *ast.PropertySet) error {
	a := sc.arrow
	if a == nil || len(a.Params) != 2 || a.Variadic || !ast.IsUnit(a.Result) ||
		ast.IsUnit(a.Params[0].Type) || ast.IsUnit(a.Params[1].Type) {
		return sc.mismatch(b, "a function of a receiver and a value returning nothing")
	}
	return nil
}

func (sc *shapeChecker) VisitMethodCall(b *ast.MethodCall) error {
	a := sc.arrow
	if a == nil || a.Arity() == 0 || ast.IsUnit(a.Params[0].Type) || (len(a.Params) == 1 && a.Variadic) {
		return sc.mismatch(b, "a function whose first parameter is the receiver")
	}
	return nil
}

func (sc *shapeChecker) VisitGlobalVariable(b *ast.GlobalVariable) error {
	return nil
}

func (sc *shapeChecker) VisitCustomExpr(b *ast.CustomExpr) error {
	formals := make(map[string]bool)
	if a := sc.arrow; a != nil {
		if a.Variadic {
			return sc.mismatch(b, "a function without a variadic parameter")
		}
		for i, p := range a.Params {
			if !ast.IsUnit(p.Type) {
				formals[symbols.ParamName(i, p)] = true
			}
		}
	}
	return ast.WalkExpr[error](b.Expr, &exprChecker{decl: sc.decl, formals: formals})
}

// exprChecker accepts parameter identifiers, string literals and the three
// call forms call(obj, "m", args...), global("name") and new(ctor, args...).
type exprChecker struct {
	decl    *ast.ValueDecl
	formals map[string]bool
}

func (ec *exprChecker) VisitIdentifier(e *ast.Identifier) error {
	if !ec.formals[e.Name] {
		return diagnostics.Errorf(diagnostics.ErrInvalidExpression, e.Pos,
			"val %s: %s is not a parameter of the declaration", ec.decl.Name, e.Name)
	}
	return nil
}

func (ec *exprChecker) VisitStringLiteral(e *ast.StringLiteral) error { return nil }

func (ec *exprChecker) VisitCall(e *ast.Call) error {
	callee, ok := e.Callee.(*ast.Identifier)
	if !ok {
		return ec.invalid(e, "callee must be call, global or new")
	}
	switch callee.Name {
	case config.ExprCall:
		if len(e.Args) < 2 {
			return ec.invalid(e, `call takes an object, a method name literal and arguments`)
		}
		if _, ok := e.Args[1].(*ast.StringLiteral); !ok {
			return ec.invalid(e.Args[1], "method name must be a string literal")
		}
		return ec.each(e.Args[:1], e.Args[2:])
	case config.ExprGlobal:
		if len(e.Args) != 1 {
			return ec.invalid(e, "global takes exactly one name literal")
		}
		if _, ok := e.Args[0].(*ast.StringLiteral); !ok {
			return ec.invalid(e.Args[0], "global name must be a string literal")
		}
		return nil
	case config.ExprNew:
		if len(e.Args) < 1 {
			return ec.invalid(e, "new takes a constructor and arguments")
		}
		return ec.each(e.Args)
	}
	return ec.invalid(e, "unknown form "+callee.Name+", expected call, global or new")
}

func (ec *exprChecker) each(groups ...[]ast.Expr) error {
	for _, g := range groups {
		for _, arg := range g {
			if err := ast.WalkExpr[error](arg, ec); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ec *exprChecker) invalid(n ast.Node, msg string) error {
	return diagnostics.Errorf(diagnostics.ErrInvalidExpression, n.Position(),
		"val %s: %s", ec.decl.Name, msg)
}

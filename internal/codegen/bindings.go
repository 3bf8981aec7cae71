package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/config"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/symbols"
)

// param is a parameter of a generated function. Unit parameters, alone or
// left over from a curried join, have no param.
type param struct {
	name     string // Go identifier
	sigName  string // name visible to custom expressions
	typ      ast.Type
	variadic bool
}

// bindingGen produces the declaration realising one value binding.
type bindingGen struct {
	uc     *unitContext
	mr     *Marshaller
	v      *symbols.Value
	arrow  *ast.Arrow
	params []param
}

func generateBinding(uc *unitContext, v *symbols.Value) (string, error) {
	bg := &bindingGen{
		uc: uc,
		mr: &Marshaller{uc: uc, pos: v.Decl.TypePos},
		v:  v,
	}
	if a, ok := v.Decl.Type.(*ast.Arrow); ok {
		bg.arrow = a
		bg.params = bg.buildParams(a)
	}
	return ast.WalkBinding[conv](v.Binding, bg).result()
}

func (bg *bindingGen) buildParams(a *ast.Arrow) []param {
	used := make(map[string]bool, len(a.Params))
	var ps []param
	for i, p := range a.Params {
		if ast.IsUnit(p.Type) {
			continue
		}
		sig := symbols.ParamName(i, p)
		name := bg.uc.goIdent(sig)
		for used[name] {
			name += "_"
		}
		used[name] = true
		ps = append(ps, param{
			name:     name,
			sigName:  sig,
			typ:      p.Type,
			variadic: a.Variadic && i == len(a.Params)-1,
		})
	}
	return ps
}

// function renders a func declaration with the given doc line and body
// statements.
func (bg *bindingGen) function(doc string, body string) conv {
	var b strings.Builder
	fmt.Fprintf(&b, "// %s %s\n", bg.v.GoName, doc)
	fmt.Fprintf(&b, "func %s(", bg.v.GoName)
	for i, p := range bg.params {
		if i > 0 {
			b.WriteString(", ")
		}
		t, err := bg.mr.GoType(p.typ)
		if err != nil {
			return conv{err: err}
		}
		if p.variadic {
			t = "..." + t
		}
		b.WriteString(p.name + " " + t)
	}
	b.WriteString(")")
	res, err := bg.mr.GoType(bg.arrow.Result)
	if err != nil {
		return conv{err: err}
	}
	if res != "" {
		b.WriteString(" " + res)
	}
	b.WriteString(" {\n")
	b.WriteString(indentCode(body, "\t"))
	b.WriteString("}\n")
	return conv{code: b.String()}
}

// variable renders a package-level var initialised once from init.
func (bg *bindingGen) variable(doc string, init string) conv {
	t := bg.v.Decl.Type
	goType, err := bg.mr.GoType(t)
	if err != nil {
		return conv{err: err}
	}
	value, err := bg.mr.OfJS(t, init)
	if err != nil {
		return conv{err: err}
	}
	return conv{code: fmt.Sprintf("// %s %s\nvar %s %s = %s\n", bg.v.GoName, doc, bg.v.GoName, goType, value)}
}

// result converts the foreign value produced by call into the declared
// result, or runs call as a statement when the result is Unit.
func (bg *bindingGen) result(call string) (string, error) {
	if ast.IsUnit(bg.arrow.Result) {
		return call + "\n", nil
	}
	ret, err := bg.mr.OfJS(bg.arrow.Result, call)
	if err != nil {
		return "", err
	}
	return "return " + ret + "\n", nil
}

func (bg *bindingGen) toJS(p param) (string, error) {
	return bg.mr.ToJS(p.typ, p.name)
}

// args builds the foreign argument array. A variadic last parameter is
// spread element by element after the fixed arguments.
func (bg *bindingGen) args(ps []param) (string, error) {
	var fixed []string
	var spread string
	for _, p := range ps {
		if p.variadic {
			fn, err := bg.mr.ToJSFunc(p.typ)
			if err != nil {
				return "", err
			}
			spread = bg.uc.rt("Map") + "(" + p.name + ", " + fn + ")"
			continue
		}
		x, err := bg.toJS(p)
		if err != nil {
			return "", err
		}
		fixed = append(fixed, x)
	}
	lit := "[]" + bg.uc.rt("Value") + "{" + strings.Join(fixed, ", ") + "}"
	switch {
	case spread == "" && len(fixed) == 0:
		return "nil", nil
	case spread == "":
		return lit, nil
	case len(fixed) == 0:
		return spread, nil
	}
	return "append(" + lit + ", " + spread + "...)", nil
}

func (bg *bindingGen) VisitCast(b *ast.Cast) conv {
	x, err := bg.toJS(bg.params[0])
	if err != nil {
		return conv{err: err}
	}
	body, err := bg.result(x)
	if err != nil {
		return conv{err: err}
	}
	return bg.function("reinterprets the foreign value of "+bg.params[0].name+".", body)
}

func (bg *bindingGen) VisitPropertyGet(b *ast.PropertyGet) conv {
	recv, err := bg.toJS(bg.params[0])
	if err != nil {
		return conv{err: err}
	}
	body, err := bg.result(bg.uc.rt("Get") + "(" + recv + ", " + strconv.Quote(b.Name) + ")")
	if err != nil {
		return conv{err: err}
	}
	return bg.function(fmt.Sprintf("reads property %q of %s.", b.Name, bg.params[0].name), body)
}

func (bg *bindingGen) VisitPropertySet(b *ast.PropertySet) conv {
	recv, err := bg.toJS(bg.params[0])
	if err != nil {
		return conv{err: err}
	}
	x, err := bg.toJS(bg.params[1])
	if err != nil {
		return conv{err: err}
	}
	body := fmt.Sprintf("%s(%s, %q, %s)\n", bg.uc.rt("Set"), recv, b.Name, x)
	return bg.function(fmt.Sprintf("writes property %q of %s.", b.Name, bg.params[0].name), body)
}

func (bg *bindingGen) VisitMethodCall(b *ast.MethodCall) conv {
	recv, err := bg.toJS(bg.params[0])
	if err != nil {
		return conv{err: err}
	}
	args, err := bg.args(bg.params[1:])
	if err != nil {
		return conv{err: err}
	}
	var body string
	if ast.IsUnit(bg.arrow.Result) {
		body = fmt.Sprintf("%s(%s, %q, %s)\n", bg.uc.rt("CallUnit"), recv, b.Name, args)
	} else {
		body, err = bg.result(fmt.Sprintf("%s(%s, %q, %s)", bg.uc.rt("Call"), recv, b.Name, args))
		if err != nil {
			return conv{err: err}
		}
	}
	return bg.function(fmt.Sprintf("calls method %q of %s.", b.Name, bg.params[0].name), body)
}

func (bg *bindingGen) VisitGlobalVariable(b *ast.GlobalVariable) conv {
	global := fmt.Sprintf("%s(%q)", bg.uc.rt("Global"), b.Name)
	if bg.arrow == nil {
		return bg.variable(fmt.Sprintf("is the global %q, read once at package initialisation.", b.Name), global)
	}
	args, err := bg.args(bg.params)
	if err != nil {
		return conv{err: err}
	}
	var body string
	if ast.IsUnit(bg.arrow.Result) {
		body = fmt.Sprintf("%s(%s, %s)\n", bg.uc.rt("ApplyUnit"), global, args)
	} else {
		body, err = bg.result(fmt.Sprintf("%s(%s, %s)", bg.uc.rt("Apply"), global, args))
		if err != nil {
			return conv{err: err}
		}
	}
	return bg.function(fmt.Sprintf("calls the global function %q.", b.Name), body)
}

func (bg *bindingGen) VisitCustomExpr(b *ast.CustomExpr) conv {
	formals := make(map[string]param, len(bg.params))
	for _, p := range bg.params {
		formals[p.sigName] = p
	}
	x, err := ast.WalkExpr[conv](b.Expr, &exprGen{bg: bg, formals: formals}).result()
	if err != nil {
		return conv{err: err}
	}
	doc := "evaluates " + b.Expr.String() + "."
	if bg.arrow == nil {
		return bg.variable(doc, x)
	}
	var body string
	if ast.IsUnit(bg.arrow.Result) {
		if _, isCall := b.Expr.(*ast.Call); isCall {
			body = x + "\n"
		} else {
			body = "_ = " + x + "\n"
		}
	} else if body, err = bg.result(x); err != nil {
		return conv{err: err}
	}
	return bg.function(doc, body)
}

// exprGen translates a custom expression into a Go expression of type
// ojs.Value, substituting converted parameters for their identifiers.
type exprGen struct {
	bg      *bindingGen
	formals map[string]param
}

func (eg *exprGen) VisitIdentifier(e *ast.Identifier) conv {
	p, ok := eg.formals[e.Name]
	if !ok {
		return conv{err: diagnostics.Errorf(diagnostics.ErrInvalidExpression, e.Pos, "%s is not a parameter", e.Name)}
	}
	x, err := eg.bg.toJS(p)
	return conv{code: x, err: err}
}

func (eg *exprGen) VisitStringLiteral(e *ast.StringLiteral) conv {
	return conv{code: eg.bg.uc.rt("StringToJS") + "(" + strconv.Quote(e.Value) + ")"}
}

func (eg *exprGen) VisitCall(e *ast.Call) conv {
	callee, _ := e.Callee.(*ast.Identifier)
	if callee == nil {
		return conv{err: diagnostics.Errorf(diagnostics.ErrInvalidExpression, e.Pos, "invalid callee %s", e.Callee)}
	}
	switch callee.Name {
	case config.ExprGlobal:
		name := e.Args[0].(*ast.StringLiteral).Value
		return conv{code: fmt.Sprintf("%s(%q)", eg.bg.uc.rt("Global"), name)}
	case config.ExprCall:
		obj, err := ast.WalkExpr[conv](e.Args[0], eg).result()
		if err != nil {
			return conv{err: err}
		}
		method := e.Args[1].(*ast.StringLiteral).Value
		args, err := eg.array(e.Args[2:])
		if err != nil {
			return conv{err: err}
		}
		return conv{code: fmt.Sprintf("%s(%s, %q, %s)", eg.bg.uc.rt("Call"), obj, method, args)}
	case config.ExprNew:
		ctor, err := ast.WalkExpr[conv](e.Args[0], eg).result()
		if err != nil {
			return conv{err: err}
		}
		args, err := eg.array(e.Args[1:])
		if err != nil {
			return conv{err: err}
		}
		return conv{code: fmt.Sprintf("%s(%s, %s)", eg.bg.uc.rt("New"), ctor, args)}
	}
	return conv{err: diagnostics.Errorf(diagnostics.ErrInvalidExpression, e.Pos, "unknown form %s", callee.Name)}
}

func (eg *exprGen) array(es []ast.Expr) (string, error) {
	if len(es) == 0 {
		return "nil", nil
	}
	items := make([]string, len(es))
	for i, a := range es {
		x, err := ast.WalkExpr[conv](a, eg).result()
		if err != nil {
			return "", err
		}
		items[i] = x
	}
	return "[]" + eg.bg.uc.rt("Value") + "{" + strings.Join(items, ", ") + "}", nil
}

// indentCode adds a prefix to each line of code.
func indentCode(code, prefix string) string {
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	var result strings.Builder
	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}
		if line != "" {
			result.WriteString(prefix)
			result.WriteString(line)
		}
	}
	result.WriteString("\n")
	return result.String()
}

package parser

import (
	goast "go/ast"
	gotoken "go/token"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/config"
	"github.com/funvibe/jsbind/internal/diagnostics"
)

// parseBinding converts the single binding attribute of a val item.
// Plain-name attributes default to the declaration's own name; a setter
// default drops the "set_" prefix.
func (p *Parser) parseBinding(declName string, key, val *yaml.Node) (ast.BindingKind, error) {
	switch key.Value {
	case config.AttrCast:
		if !isNull(val) && !(val.Tag == "!!bool" && val.Value == "true") {
			return nil, p.errorf(diagnostics.ErrInvalidExpression, val, "val %s: cast takes no payload", declName)
		}
		return &ast.Cast{}, nil

	case config.AttrExpr:
		if isNull(val) || (val.Kind == yaml.ScalarNode && strings.TrimSpace(val.Value) == "") {
			return nil, p.errorf(diagnostics.ErrExpressionExpected, val, "val %s: expr requires an expression", declName)
		}
		if val.Kind != yaml.ScalarNode {
			return nil, p.errorf(diagnostics.ErrExpressionExpected, val, "val %s: expr payload must be an expression", declName)
		}
		e, err := ParseExpr(p.source(val))
		if err != nil {
			return nil, err
		}
		return &ast.CustomExpr{Expr: e}, nil
	}

	name := declName
	if key.Value == config.AttrSet {
		name = strings.TrimPrefix(declName, config.SetterPrefix)
	}
	if !isNull(val) {
		var err error
		if name, err = p.plainName(declName, key.Value, val); err != nil {
			return nil, err
		}
	}

	switch key.Value {
	case config.AttrGet:
		return &ast.PropertyGet{Name: name}, nil
	case config.AttrSet:
		return &ast.PropertySet{Name: name}, nil
	case config.AttrCall:
		return &ast.MethodCall{Name: name}, nil
	case config.AttrGlobal:
		return &ast.GlobalVariable{Name: name}, nil
	}
	return nil, p.errorf(diagnostics.ErrUnsupportedForm, key, "unknown binding attribute %q", key.Value)
}

// plainName reads a payload that must be an identifier or a string literal.
// A quoted YAML scalar is taken as a string literal verbatim, so JS names
// that are not Go identifiers can be written as get: "data-id".
func (p *Parser) plainName(declName, attr string, val *yaml.Node) (string, error) {
	if val.Kind != yaml.ScalarNode {
		return "", p.errorf(diagnostics.ErrIdentifierExpected, val, "val %s: %s expects a name", declName, attr)
	}
	if val.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		return val.Value, nil
	}
	e, err := ParseExpr(p.source(val))
	if err != nil {
		return "", p.errorf(diagnostics.ErrIdentifierExpected, val,
			"val %s: %s expects an identifier or a string literal, got %q", declName, attr, val.Value)
	}
	switch e := e.(type) {
	case *ast.Identifier:
		return e.Name, nil
	case *ast.StringLiteral:
		return e.Value, nil
	}
	return "", diagnostics.Errorf(diagnostics.ErrIdentifierExpected, e.Position(),
		"val %s: %s expects an identifier or a string literal, got %s", declName, attr, e)
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// ParseExpr converts an attribute payload into the custom expression
// language: identifiers, string literals and calls.
func ParseExpr(src Source) (ast.Expr, error) {
	e, fset, err := src.parseExpr()
	if err != nil {
		return nil, diagnostics.Errorf(diagnostics.ErrInvalidExpression, src.base,
			"invalid expression %q: %s", src.text, firstLine(err))
	}
	ec := &exprConverter{src: src, fset: fset}
	return ec.convert(e)
}

type exprConverter struct {
	src  Source
	fset *gotoken.FileSet
}

func (ec *exprConverter) convert(e goast.Expr) (ast.Expr, error) {
	pos := ec.src.at(ec.fset, e.Pos())
	switch e := e.(type) {
	case *goast.ParenExpr:
		return ec.convert(e.X)
	case *goast.Ident:
		return &ast.Identifier{Name: e.Name, Pos: pos}, nil
	case *goast.BasicLit:
		if e.Kind != gotoken.STRING {
			break
		}
		s, err := strconv.Unquote(e.Value)
		if err != nil {
			return nil, diagnostics.Errorf(diagnostics.ErrInvalidExpression, pos, "invalid string literal %s", e.Value)
		}
		return &ast.StringLiteral{Value: s, Pos: pos}, nil
	case *goast.CallExpr:
		if e.Ellipsis.IsValid() {
			return nil, diagnostics.Errorf(diagnostics.ErrInvalidExpression, ec.src.at(ec.fset, e.Ellipsis),
				"spread arguments are not supported in expressions")
		}
		callee, err := ec.convert(e.Fun)
		if err != nil {
			return nil, err
		}
		call := &ast.Call{Callee: callee, Pos: pos}
		for _, a := range e.Args {
			arg, err := ec.convert(a)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
		return call, nil
	}
	return nil, diagnostics.Errorf(diagnostics.ErrInvalidExpression, pos,
		"unsupported expression %q: only identifiers, string literals and calls are allowed", ec.text(e))
}

func (ec *exprConverter) text(n goast.Node) string {
	start := ec.fset.Position(n.Pos()).Offset
	end := ec.fset.Position(n.End()).Offset
	if start < 0 || end > len(ec.src.text) || start > end {
		return ec.src.text
	}
	return ec.src.text[start:end]
}

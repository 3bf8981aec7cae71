package parser

import (
	goast "go/ast"
	goparser "go/parser"
	"go/scanner"
	gotoken "go/token"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/config"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/token"
)

// Source is a Go snippet taken from a YAML scalar, with enough
// information to map go/parser offsets back into the signature file.
type Source struct {
	text string
	base token.Position
}

func (p *Parser) source(n *yaml.Node) Source {
	base := p.pos(n)
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		base = base.Shift(1)
	}
	return Source{text: n.Value, base: base}
}

// at maps a go/parser position inside the snippet to a signature position.
func (s Source) at(fset *gotoken.FileSet, pos gotoken.Pos) token.Position {
	if !pos.IsValid() {
		return s.base
	}
	return s.base.Shift(fset.Position(pos).Offset)
}

// parseExpr runs go/parser on the snippet.
func (s Source) parseExpr() (goast.Expr, *gotoken.FileSet, error) {
	fset := gotoken.NewFileSet()
	e, err := goparser.ParseExprFrom(fset, "", s.text, 0)
	return e, fset, err
}

func (p *Parser) parseTypeNode(n *yaml.Node) (ast.Type, error) {
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, n, "type must be a Go type expression")
	}
	return ParseType(p.source(n))
}

// ParseType converts a Go type expression into the Type Model.
// Function types in result position are curried into the enclosing Arrow.
func ParseType(src Source) (ast.Type, error) {
	e, fset, err := src.parseExpr()
	if err != nil {
		return nil, diagnostics.Errorf(diagnostics.ErrUnsupportedForm, src.base,
			"invalid type %q: %v", src.text, firstLine(err))
	}
	tc := &typeConverter{src: src, fset: fset}
	return tc.convert(e)
}

// NewSource wraps a snippet that starts at pos.
func NewSource(text string, pos token.Position) Source {
	return Source{text: text, base: pos}
}

type typeConverter struct {
	src  Source
	fset *gotoken.FileSet
}

func (tc *typeConverter) unsupported(node goast.Node, format string, args ...any) error {
	return diagnostics.Errorf(diagnostics.ErrUnsupportedForm, tc.src.at(tc.fset, node.Pos()), format, args...)
}

func (tc *typeConverter) convert(e goast.Expr) (ast.Type, error) {
	switch e := e.(type) {
	case *goast.ParenExpr:
		return tc.convert(e.X)

	case *goast.Ident:
		switch e.Name {
		case "string":
			return ast.StringType, nil
		case "int":
			return ast.IntType, nil
		case "bool":
			return ast.BoolType, nil
		case "float64":
			return ast.FloatType, nil
		}
		return &ast.Named{Name: e.Name, Pos: tc.src.at(tc.fset, e.Pos())}, nil

	case *goast.SelectorExpr:
		x, ok := e.X.(*goast.Ident)
		if !ok {
			return nil, tc.unsupported(e, "type name %q: only one level of module qualification is supported", tc.text(e))
		}
		if x.Name+"."+e.Sel.Name == config.ForeignTypeName {
			return ast.ForeignType, nil
		}
		return &ast.Named{Qualifier: x.Name, Name: e.Sel.Name, Pos: tc.src.at(tc.fset, e.Pos())}, nil

	case *goast.ArrayType:
		if e.Len != nil {
			return nil, tc.unsupported(e, "fixed-size array %q is not supported, use a slice", tc.text(e))
		}
		elem, err := tc.convert(e.Elt)
		if err != nil {
			return nil, err
		}
		return &ast.Array{Elem: elem}, nil

	case *goast.FuncType:
		return tc.convertFunc(e)
	}
	return nil, tc.unsupported(e, "unsupported type expression %q", tc.text(e))
}

func (tc *typeConverter) convertFunc(ft *goast.FuncType) (ast.Type, error) {
	if ft.TypeParams != nil {
		return nil, tc.unsupported(ft, "generic function types are not supported")
	}
	arrow := &ast.Arrow{Result: ast.UnitType}
	for i, field := range ft.Params.List {
		typ := field.Type
		variadic := false
		if ell, ok := typ.(*goast.Ellipsis); ok {
			if i != len(ft.Params.List)-1 || len(field.Names) > 1 {
				return nil, tc.unsupported(ell, "only the last parameter can be variadic")
			}
			variadic = true
			typ = ell.Elt
		}
		t, err := tc.convert(typ)
		if err != nil {
			return nil, err
		}
		if len(field.Names) == 0 {
			arrow.Params = append(arrow.Params, ast.Param{Type: t})
		}
		for _, n := range field.Names {
			name := n.Name
			if name == "_" {
				name = ""
			}
			arrow.Params = append(arrow.Params, ast.Param{Name: name, Type: t})
		}
		arrow.Variadic = variadic
	}
	if len(arrow.Params) == 0 {
		arrow.Params = []ast.Param{{Type: ast.UnitType}}
	}

	if ft.Results == nil || len(ft.Results.List) == 0 {
		return arrow, nil
	}
	if ft.Results.NumFields() > 1 {
		return nil, tc.unsupported(ft.Results, "multiple results are not supported")
	}
	res, err := tc.convert(ft.Results.List[0].Type)
	if err != nil {
		return nil, err
	}
	inner, curried := res.(*ast.Arrow)
	if !curried {
		arrow.Result = res
		return arrow, nil
	}
	if arrow.Variadic {
		return nil, tc.unsupported(ft, "variadic parameter must be the last parameter of the flattened function")
	}
	// Unit parameters survive the join: func(a) func() r has arity 2.
	params := make([]ast.Param, 0, len(arrow.Params)+len(inner.Params))
	params = append(params, arrow.Params...)
	params = append(params, inner.Params...)
	return &ast.Arrow{
		Params:   params,
		Variadic: inner.Variadic,
		Result:   inner.Result,
	}, nil
}

func (tc *typeConverter) text(n goast.Node) string {
	start := tc.fset.Position(n.Pos()).Offset
	end := tc.fset.Position(n.End()).Offset
	if start < 0 || end > len(tc.src.text) || start > end {
		return tc.src.text
	}
	return tc.src.text[start:end]
}

// firstLine reports only the first go/parser error; later ones are
// usually follow-on noise.
func firstLine(err error) string {
	if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
		return list[0].Msg
	}
	return err.Error()
}

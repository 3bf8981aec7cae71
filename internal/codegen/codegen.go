// Package codegen turns a resolved program into Go declarations: one unit
// per module, holding the conversion pairs of its types and the bodies of
// its value bindings.
package codegen

import (
	"fmt"
	gotoken "go/token"
	"go/types"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/config"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/gofile"
	"github.com/funvibe/jsbind/internal/symbols"
)

// localNames are identifiers the generated bodies declare; imports must not
// take them.
var localNames = []string{"e", "o", "v", "x"}

type Generator struct {
	program *symbols.Program
}

func New(program *symbols.Program) *Generator {
	return &Generator{program: program}
}

// Generate produces one unit per module, root first.
func (g *Generator) Generate() ([]*gofile.Unit, error) {
	units := make([]*gofile.Unit, 0, len(g.program.Modules))
	for _, m := range g.program.Modules {
		u, err := g.generateModule(m)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

func (g *Generator) generateModule(m *symbols.Module) (*gofile.Unit, error) {
	u := gofile.NewUnit(m.FileName(), m.Package, g.program.File.Name)
	if m.Parent == nil {
		u.Doc = fmt.Sprintf("Package %s contains JavaScript bindings.", m.Package)
	} else {
		u.Doc = fmt.Sprintf("Package %s contains the bindings of module %s.", m.Package, m.QualifiedName())
	}

	u.Book(config.RuntimeImportPath, config.RuntimePackage)
	u.Reserve(localNames...)
	for _, ref := range m.Imports {
		u.Book(ref.Module.ImportPath, ref.Module.Package)
	}

	uc := &unitContext{program: g.program, m: m, u: u}
	dg := &declGen{uc: uc, values: make(map[*ast.ValueDecl]*symbols.Value, len(m.Values))}
	for _, v := range m.Values {
		dg.values[v.Decl] = v
	}
	for _, d := range m.Decls {
		if err := ast.WalkDecl[error](d, dg); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// unitContext is the state shared while generating one module.
type unitContext struct {
	program *symbols.Program
	m       *symbols.Module
	u       *gofile.Unit
}

// rt qualifies a runtime bridge identifier, importing the bridge.
func (uc *unitContext) rt(name string) string {
	return uc.u.AddImport(config.RuntimeImportPath, config.RuntimePackage) + "." + name
}

type namedPair struct {
	goType string
	toJS   string
	ofJS   string
}

// pair returns the Go type and conversion pair of a resolved Named type,
// qualified for use from the current module.
func (uc *unitContext) pair(t *ast.Named) (namedPair, error) {
	sym, ok := uc.program.Lookup(t)
	if !ok {
		return namedPair{}, diagnostics.Errorf(diagnostics.ErrInternal, t.Pos, "type %s was not resolved", t)
	}
	if !sym.Qualified() {
		if sym.Import != "" {
			uc.u.AddPlainImport(sym.Import)
		}
		return namedPair{goType: sym.GoType, toJS: sym.ToJS, ofJS: sym.OfJS}, nil
	}
	if sym.Module == uc.m {
		return namedPair{goType: sym.GoType, toJS: sym.ToJS, ofJS: sym.OfJS}, nil
	}
	q := uc.u.AddImport(sym.Module.ImportPath, sym.Module.Package) + "."
	return namedPair{goType: q + sym.GoType, toJS: q + sym.ToJS, ofJS: q + sym.OfJS}, nil
}

// goIdent makes a parameter name safe to declare in a generated function:
// it must not shadow an import, a local of the generated bodies or a
// package-level identifier of the module.
func (uc *unitContext) goIdent(name string) string {
	for gotoken.IsKeyword(name) || types.Universe.Lookup(name) != nil || uc.u.Taken(name) || uc.m.HasGoName(name) {
		name += "_"
	}
	return name
}

type declGen struct {
	uc     *unitContext
	values map[*ast.ValueDecl]*symbols.Value
}

// Submodules are separate units.
func (dg *declGen) VisitModule(d *ast.ModuleDecl) error { return nil }

// Extern types are converted by code outside the signature.
func (dg *declGen) VisitExtern(d *ast.ExternTypeDecl) error { return nil }

func (dg *declGen) VisitValue(d *ast.ValueDecl) error {
	v, ok := dg.values[d]
	if !ok || v.Binding == nil {
		return diagnostics.Errorf(diagnostics.ErrInternal, d.Pos, "val %s has no resolved binding", d.Name)
	}
	code, err := generateBinding(dg.uc, v)
	if err != nil {
		return err
	}
	dg.uc.u.Add(v.GoName, code)
	return nil
}

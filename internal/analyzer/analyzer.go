// Package analyzer resolves a parsed signature: it builds the module tree and
// the conversion-pair table, resolves every type reference, picks a binding
// kind for every value and checks that the declared type fits it.
package analyzer

import (
	gotoken "go/token"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/config"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/symbols"
	"github.com/funvibe/jsbind/internal/token"
)

type Analyzer struct {
	file    *ast.File
	program *symbols.Program
}

func New(file *ast.File) *Analyzer {
	return &Analyzer{file: file}
}

// Analyze runs all checks and returns the resolved program, or the first
// diagnostic found.
func (a *Analyzer) Analyze() (*symbols.Program, error) {
	f := a.file
	if f.Package == "" {
		return nil, diagnostics.Errorf(diagnostics.ErrUnsupportedForm, f.Pos,
			"package is required: set it in the signature header or pass -package")
	}
	if !gotoken.IsIdentifier(f.Package) || f.Package == "_" {
		return nil, diagnostics.Errorf(diagnostics.ErrUnsupportedForm, f.Pos,
			"package %q is not a valid Go package name", f.Package)
	}

	root := symbols.NewRootModule(f.Package, f.ImportPath, f.Pos)
	a.program = &symbols.Program{
		File:  f,
		Root:  root,
		Types: make(map[*ast.Named]*symbols.Symbol),
	}
	root.Decls = f.Decls
	if err := a.declare(root); err != nil {
		return nil, err
	}
	root.Walk(func(m *symbols.Module) {
		a.program.Modules = append(a.program.Modules, m)
	})

	for _, m := range a.program.Modules {
		if err := a.resolveModule(m); err != nil {
			return nil, err
		}
	}
	if err := checkImportCycles(a.program); err != nil {
		return nil, err
	}
	return a.program, nil
}

// declare registers every type of m (and of its submodules) before any
// reference is resolved, so declaration order does not matter.
func (a *Analyzer) declare(m *symbols.Module) error {
	for _, d := range m.Decls {
		if err := ast.WalkDecl[error](d, &declarer{a: a, m: m}); err != nil {
			return err
		}
	}
	return nil
}

type declarer struct {
	a *Analyzer
	m *symbols.Module
}

func (dc *declarer) VisitModule(d *ast.ModuleDecl) error {
	for _, c := range dc.m.Children {
		if c.Name == d.Name || c.Package == symbols.PackageName(d.Name) {
			return diagnostics.Errorf(diagnostics.ErrDuplicateDeclaration, d.Pos,
				"module %s clashes with module %s declared at %s", d.Name, c.Name, c.Pos)
		}
	}
	child := dc.m.NewChild(d.Name, d.Pos)
	child.Decls = d.Decls
	return dc.a.declare(child)
}

func (dc *declarer) VisitOpaqueType(d *ast.OpaqueTypeDecl) error {
	return dc.defineType(d, symbols.OpaqueSymbol)
}

func (dc *declarer) VisitValue(d *ast.ValueDecl) error {
	goName := symbols.GoName(d.Name)
	if err := dc.reserve(goName, d.Pos); err != nil {
		return err
	}
	dc.m.Values = append(dc.m.Values, &symbols.Value{Decl: d, GoName: goName})
	return nil
}

func (dc *declarer) VisitEnum(d *ast.EnumDecl) error {
	if err := dc.defineType(d, symbols.EnumSymbol); err != nil {
		return err
	}
	if err := checkEnum(d); err != nil {
		return err
	}
	goName := symbols.GoName(d.Name)
	for _, c := range d.Cases {
		if err := dc.reserve(goName+symbols.GoName(c.Name), c.Pos); err != nil {
			return err
		}
	}
	return nil
}

func (dc *declarer) VisitRecord(d *ast.RecordDecl) error {
	if err := dc.defineType(d, symbols.RecordSymbol); err != nil {
		return err
	}
	fields := make(map[string]*ast.RecordField, len(d.Fields))
	props := make(map[string]*ast.RecordField, len(d.Fields))
	for _, f := range d.Fields {
		goName := symbols.GoName(f.Name)
		if prev, ok := fields[goName]; ok {
			return diagnostics.Errorf(diagnostics.ErrDuplicateDeclaration, f.Pos,
				"record %s: field %s clashes with field %s", d.Name, f.Name, prev.Name)
		}
		if prev, ok := props[f.JSName]; ok {
			return diagnostics.Errorf(diagnostics.ErrDuplicateDeclaration, f.Pos,
				"record %s: fields %s and %s map to the same property %q", d.Name, prev.Name, f.Name, f.JSName)
		}
		fields[goName] = f
		props[f.JSName] = f
	}
	return nil
}

func (dc *declarer) VisitExtern(d *ast.ExternTypeDecl) error {
	sym := &symbols.Symbol{
		Name:   d.Name,
		Kind:   symbols.ExternSymbol,
		Module: dc.m,
		Decl:   d,
		GoType: d.GoType,
		ToJS:   d.ToJS,
		OfJS:   d.OfJS,
		Import: d.Import,
	}
	return dc.define(sym, d.Pos)
}

// defineType registers a type declared by the signature; its Go type and
// conversion pair are generated in the module's package.
func (dc *declarer) defineType(d ast.Decl, kind symbols.SymbolKind) error {
	goName := symbols.GoName(d.DeclName())
	sym := &symbols.Symbol{
		Name:   d.DeclName(),
		Kind:   kind,
		Module: dc.m,
		Decl:   d,
		GoType: goName,
		ToJS:   goName + config.ToJSSuffix,
		OfJS:   goName + config.OfJSSuffix,
	}
	if err := dc.define(sym, d.Position()); err != nil {
		return err
	}
	for _, n := range []string{sym.GoType, sym.ToJS, sym.OfJS} {
		if err := dc.reserve(n, d.Position()); err != nil {
			return err
		}
	}
	return nil
}

func (dc *declarer) define(sym *symbols.Symbol, pos token.Position) error {
	if prev, ok := dc.m.Table.Define(sym); !ok {
		return diagnostics.Errorf(diagnostics.ErrDuplicateDeclaration, pos,
			"type %s is already declared as %s at %s", sym.Name, prev.Kind, prev.Decl.Position())
	}
	return nil
}

func (dc *declarer) reserve(goName string, pos token.Position) error {
	if prev, ok := dc.m.DeclareGoName(goName, pos); !ok {
		return diagnostics.Errorf(diagnostics.ErrDuplicateDeclaration, pos,
			"Go identifier %s is already declared at %s", goName, prev)
	}
	return nil
}

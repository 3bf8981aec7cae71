package symbols

import (
	"path"
	"strings"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/token"
)

// Module is a resolved signature module. Each module becomes one Go package;
// the root module is the package named in the signature header.
type Module struct {
	// Name is the signature name, empty for the root.
	Name string
	// Package is the Go package name.
	Package string
	// Dir is the slash-separated output directory relative to the root
	// package, empty for the root.
	Dir string
	// ImportPath is the Go import path of the package, empty when the
	// signature has no import_path.
	ImportPath string

	Parent   *Module
	Children []*Module
	Decls    []ast.Decl
	Pos      token.Position

	Table *SymbolTable
	// Values holds the resolved value bindings in declaration order.
	Values []*Value
	// Imports lists the modules whose packages this one references, in the
	// order the first reference was found.
	Imports []Reference

	goNames map[string]token.Position
}

// NewRootModule creates the module for the signature's top level.
func NewRootModule(pkg, importPath string, pos token.Position) *Module {
	return &Module{
		Package:    pkg,
		ImportPath: importPath,
		Pos:        pos,
		Table:      NewSymbolTable(),
		goNames:    make(map[string]token.Position),
	}
}

// NewChild creates a nested module. The child's scope is enclosed by the
// parent's, so unqualified type names resolve lexically.
func (m *Module) NewChild(name string, pos token.Position) *Module {
	pkg := PackageName(name)
	child := &Module{
		Name:    name,
		Package: pkg,
		Dir:     path.Join(m.Dir, pkg),
		Parent:  m,
		Pos:     pos,
		Table:   NewEnclosedSymbolTable(m.Table),
		goNames: make(map[string]token.Position),
	}
	if m.ImportPath != "" {
		child.ImportPath = m.ImportPath + "/" + pkg
	}
	m.Children = append(m.Children, child)
	return child
}

// QualifiedName is the dotted signature path of the module, "" for the root.
func (m *Module) QualifiedName() string {
	var parts []string
	for mod := m; mod != nil && mod.Parent != nil; mod = mod.Parent {
		parts = append(parts, mod.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// FileName is the path of the generated Go file relative to the output root.
func (m *Module) FileName() string {
	return path.Join(m.Dir, m.Package+".go")
}

// Child returns the direct submodule called name.
func (m *Module) Child(name string) *Module {
	for _, c := range m.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindModule resolves a module qualifier from inside m: a submodule of m or
// of any enclosing module, innermost first.
func (m *Module) FindModule(name string) *Module {
	for mod := m; mod != nil; mod = mod.Parent {
		if c := mod.Child(name); c != nil {
			return c
		}
	}
	return nil
}

// DeclareGoName reserves a package-level Go identifier. It returns the
// position of an earlier declaration of the same identifier, if any.
func (m *Module) DeclareGoName(name string, pos token.Position) (token.Position, bool) {
	if prev, ok := m.goNames[name]; ok {
		return prev, false
	}
	m.goNames[name] = pos
	return pos, true
}

// HasGoName reports whether name is a package-level Go identifier of m.
func (m *Module) HasGoName(name string) bool {
	_, ok := m.goNames[name]
	return ok
}

// AddImport records that m references identifiers of other.
func (m *Module) AddImport(other *Module, pos token.Position) {
	if other == m {
		return
	}
	for _, r := range m.Imports {
		if r.Module == other {
			return
		}
	}
	m.Imports = append(m.Imports, Reference{Module: other, Pos: pos})
}

// Walk visits m and its submodules in declaration order.
func (m *Module) Walk(fn func(*Module)) {
	fn(m)
	for _, c := range m.Children {
		c.Walk(fn)
	}
}

// Value is a resolved value declaration.
type Value struct {
	Decl    *ast.ValueDecl
	GoName  string
	Binding ast.BindingKind
	// Inferred is true when Binding came from auto-detection.
	Inferred bool
}

// Program is the result of analysis: the module tree plus the resolution of
// every type reference in it.
type Program struct {
	File    *ast.File
	Root    *Module
	Modules []*Module
	// Types maps each Named occurrence to the symbol it denotes.
	Types map[*ast.Named]*Symbol
}

// Lookup returns the symbol a Named occurrence was resolved to.
func (p *Program) Lookup(t *ast.Named) (*Symbol, bool) {
	sym, ok := p.Types[t]
	return sym, ok
}

package analyzer

import (
	"strings"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/symbols"
)

func (a *Analyzer) resolveModule(m *symbols.Module) error {
	tr := &typeResolver{a: a, m: m}
	for _, d := range m.Decls {
		switch d := d.(type) {
		case *ast.RecordDecl:
			for _, f := range d.Fields {
				if err := ast.WalkType[error](f.Type, tr); err != nil {
					return err
				}
			}
		}
	}
	for _, v := range m.Values {
		if err := ast.WalkType[error](v.Decl.Type, tr); err != nil {
			return err
		}
		if err := a.resolveBinding(m, v); err != nil {
			return err
		}
	}
	return nil
}

// typeResolver binds every Named occurrence to its symbol and records the
// package imports the reference implies.
type typeResolver struct {
	a *Analyzer
	m *symbols.Module
}

func (tr *typeResolver) VisitPrimitive(t *ast.Primitive) error { return nil }
func (tr *typeResolver) VisitForeign(t *ast.Foreign) error     { return nil }

func (tr *typeResolver) VisitNamed(t *ast.Named) error {
	var sym *symbols.Symbol
	if t.Qualifier != "" {
		mod := tr.m.FindModule(t.Qualifier)
		if mod == nil {
			return diagnostics.Errorf(diagnostics.ErrUnresolvedType, t.Pos,
				"type %s: no module %s is visible from %s", t, t.Qualifier, tr.where())
		}
		s, ok := mod.Table.FindLocal(t.Name)
		if !ok {
			return diagnostics.Errorf(diagnostics.ErrUnresolvedType, t.Pos,
				"type %s: module %s declares no type %s", t, t.Qualifier, t.Name)
		}
		sym = s
	} else {
		s, ok := tr.m.Table.Find(t.Name)
		if !ok {
			return diagnostics.Errorf(diagnostics.ErrUnresolvedType, t.Pos,
				"type %s has no conversion pair: declare it with type, enum, record or extern", t.Name)
		}
		sym = s
	}

	if sym.Qualified() && sym.Module != tr.m {
		if tr.a.program.Root.ImportPath == "" {
			return diagnostics.Errorf(diagnostics.ErrUnresolvedType, t.Pos,
				"type %s is declared in %s; set import_path so that %s can import it",
				t, describe(sym.Module), describe(tr.m))
		}
		tr.m.AddImport(sym.Module, t.Pos)
	}
	tr.a.program.Types[t] = sym
	return nil
}

func (tr *typeResolver) VisitArray(t *ast.Array) error {
	return ast.WalkType[error](t.Elem, tr)
}

func (tr *typeResolver) VisitArrow(t *ast.Arrow) error {
	for _, p := range t.Params {
		if err := ast.WalkType[error](p.Type, tr); err != nil {
			return err
		}
	}
	return ast.WalkType[error](t.Result, tr)
}

func (tr *typeResolver) where() string { return describe(tr.m) }

func describe(m *symbols.Module) string {
	if m.Parent == nil {
		return "the root module"
	}
	return "module " + m.QualifiedName()
}

// checkImportCycles rejects module references that would make two generated
// packages import each other, directly or transitively.
func checkImportCycles(p *symbols.Program) error {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[*symbols.Module]int, len(p.Modules))
	var stack []*symbols.Module

	var visit func(m *symbols.Module) error
	visit = func(m *symbols.Module) error {
		state[m] = active
		stack = append(stack, m)
		for _, ref := range m.Imports {
			switch state[ref.Module] {
			case active:
				return cycleError(stack, ref)
			case unvisited:
				if err := visit(ref.Module); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[m] = done
		return nil
	}

	for _, m := range p.Modules {
		if state[m] == unvisited {
			if err := visit(m); err != nil {
				return err
			}
		}
	}
	return nil
}

func cycleError(stack []*symbols.Module, closing symbols.Reference) error {
	start := 0
	for i, m := range stack {
		if m == closing.Module {
			start = i
			break
		}
	}
	var names []string
	for _, m := range stack[start:] {
		names = append(names, packagePath(m))
	}
	names = append(names, packagePath(closing.Module))
	return diagnostics.Errorf(diagnostics.ErrImportCycle, closing.Pos,
		"generated packages would import each other: %s", strings.Join(names, " -> "))
}

func packagePath(m *symbols.Module) string {
	if m.Dir == "" {
		return m.Package
	}
	return m.Package + " (" + m.Dir + ")"
}

package symbols

import (
	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/token"
)

type SymbolKind int

const (
	OpaqueSymbol SymbolKind = iota // type t, represented as ojs.Value
	EnumSymbol                     // nullary sum type, tagged scalar
	RecordSymbol                   // property bag
	ExternSymbol                   // conversion pair declared outside the signature
)

func (k SymbolKind) String() string {
	switch k {
	case OpaqueSymbol:
		return "opaque type"
	case EnumSymbol:
		return "enum"
	case RecordSymbol:
		return "record"
	case ExternSymbol:
		return "extern type"
	}
	return "symbol"
}

// Symbol is one entry of the conversion-pair table: a signature type name
// together with the Go type and the two functions that convert it.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Module *Module
	Decl   ast.Decl

	// GoType is the Go type expression. For declared types it is an
	// identifier of Module's package; for extern types it is taken verbatim.
	GoType string
	// ToJS and OfJS name the conversion pair, in the same form as GoType.
	ToJS string
	OfJS string
	// Import is the package an extern type and its pair live in.
	Import string
}

// Qualified reports whether the Go names of the symbol are local
// identifiers of Module's package (and must be qualified from elsewhere).
func (s *Symbol) Qualified() bool { return s.Kind != ExternSymbol }

// SymbolTable is one lexical scope of type names. Module scopes chain to the
// scope of the enclosing module.
type SymbolTable struct {
	store map[string]*Symbol
	outer *SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{store: make(map[string]*Symbol)}
}

func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	st := NewSymbolTable()
	st.outer = outer
	return st
}

// Define adds sym to this scope. It returns the already defined symbol of the
// same name, if any, and leaves the table unchanged in that case.
func (s *SymbolTable) Define(sym *Symbol) (*Symbol, bool) {
	if prev, ok := s.store[sym.Name]; ok {
		return prev, false
	}
	s.store[sym.Name] = sym
	return sym, true
}

// Find looks name up in this scope, then in enclosing ones.
func (s *SymbolTable) Find(name string) (*Symbol, bool) {
	for st := s; st != nil; st = st.outer {
		if sym, ok := st.store[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// FindLocal looks name up in this scope only.
func (s *SymbolTable) FindLocal(name string) (*Symbol, bool) {
	sym, ok := s.store[name]
	return sym, ok
}

// Reference is a use of a Go identifier declared in another module's package.
type Reference struct {
	Module *Module
	Pos    token.Position
}

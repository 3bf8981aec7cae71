package ast

import (
	"strconv"

	"github.com/funvibe/jsbind/internal/token"
)

// --- Declarations ---

// Decl is one signature item.
type Decl interface {
	Node
	declNode()
	DeclName() string
}

type DeclVisitor[R any] interface {
	VisitModule(d *ModuleDecl) R
	VisitOpaqueType(d *OpaqueTypeDecl) R
	VisitValue(d *ValueDecl) R
	VisitEnum(d *EnumDecl) R
	VisitRecord(d *RecordDecl) R
	VisitExtern(d *ExternTypeDecl) R
}

func WalkDecl[R any](d Decl, v DeclVisitor[R]) R {
	switch d := d.(type) {
	case *ModuleDecl:
		return v.VisitModule(d)
	case *OpaqueTypeDecl:
		return v.VisitOpaqueType(d)
	case *ValueDecl:
		return v.VisitValue(d)
	case *EnumDecl:
		return v.VisitEnum(d)
	case *RecordDecl:
		return v.VisitRecord(d)
	case *ExternTypeDecl:
		return v.VisitExtern(d)
	}
	panic("ast: unknown declaration node")
}

// ModuleDecl is a nested module; it becomes a nested Go package.
type ModuleDecl struct {
	Name  string
	Decls []Decl
	Pos   token.Position
}

func (d *ModuleDecl) declNode()                {}
func (d *ModuleDecl) DeclName() string         { return d.Name }
func (d *ModuleDecl) Position() token.Position { return d.Pos }

// OpaqueTypeDecl introduces a Named type represented as the foreign value.
type OpaqueTypeDecl struct {
	Name string
	Pos  token.Position
}

func (d *OpaqueTypeDecl) declNode()                {}
func (d *OpaqueTypeDecl) DeclName() string         { return d.Name }
func (d *OpaqueTypeDecl) Position() token.Position { return d.Pos }

// ValueDecl is a value binding. Binding is nil when no attribute was given
// and the kind must be auto-detected.
type ValueDecl struct {
	Name       string
	Type       Type
	Binding    BindingKind
	Pos        token.Position
	TypePos    token.Position
	BindingPos token.Position
}

func (d *ValueDecl) declNode()                {}
func (d *ValueDecl) DeclName() string         { return d.Name }
func (d *ValueDecl) Position() token.Position { return d.Pos }

type TagKind int

const (
	TagString TagKind = iota
	TagInt
)

func (k TagKind) String() string {
	if k == TagInt {
		return "int"
	}
	return "string"
}

// Tag is the foreign scalar an enumeration case is encoded as.
type Tag struct {
	Kind TagKind
	Str  string
	Int  int
}

func (t Tag) String() string {
	if t.Kind == TagInt {
		return strconv.Itoa(t.Int)
	}
	return strconv.Quote(t.Str)
}

// EnumCase is one nullary constructor. Default marks the decode-time
// catch-all for foreign values of Tag.Kind that match no literal tag.
type EnumCase struct {
	Name    string
	Tag     Tag
	Default bool
	Pos     token.Position
}

// EnumDecl is a sum type whose constructors are all constant.
type EnumDecl struct {
	Name  string
	Cases []*EnumCase
	Pos   token.Position
}

func (d *EnumDecl) declNode()                {}
func (d *EnumDecl) DeclName() string         { return d.Name }
func (d *EnumDecl) Position() token.Position { return d.Pos }

// RecordField maps one record field to one foreign property.
type RecordField struct {
	Name   string
	JSName string
	Type   Type
	Pos    token.Position
}

// RecordDecl is a record converted to and from a property bag.
type RecordDecl struct {
	Name   string
	Fields []*RecordField
	Pos    token.Position
}

func (d *RecordDecl) declNode()                {}
func (d *RecordDecl) DeclName() string         { return d.Name }
func (d *RecordDecl) Position() token.Position { return d.Pos }

// ExternTypeDecl registers a type whose conversion pair lives outside the
// signature, e.g. in a hand-written package.
type ExternTypeDecl struct {
	Name   string
	GoType string
	Import string
	ToJS   string
	OfJS   string
	Pos    token.Position
}

func (d *ExternTypeDecl) declNode()                {}
func (d *ExternTypeDecl) DeclName() string         { return d.Name }
func (d *ExternTypeDecl) Position() token.Position { return d.Pos }

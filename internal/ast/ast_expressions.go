package ast

import (
	"strconv"
	"strings"

	"github.com/funvibe/jsbind/internal/token"
)

// --- Custom binding expressions ---

// Expr is the small expression language of custom bindings.
type Expr interface {
	Node
	exprNode()
	String() string
}

type ExprVisitor[R any] interface {
	VisitIdentifier(e *Identifier) R
	VisitStringLiteral(e *StringLiteral) R
	VisitCall(e *Call) R
}

func WalkExpr[R any](e Expr, v ExprVisitor[R]) R {
	switch e := e.(type) {
	case *Identifier:
		return v.VisitIdentifier(e)
	case *StringLiteral:
		return v.VisitStringLiteral(e)
	case *Call:
		return v.VisitCall(e)
	}
	panic("ast: unknown expression node")
}

type Identifier struct {
	Name string
	Pos  token.Position
}

func (e *Identifier) exprNode()                {}
func (e *Identifier) Position() token.Position { return e.Pos }
func (e *Identifier) String() string           { return e.Name }

type StringLiteral struct {
	Value string
	Pos   token.Position
}

func (e *StringLiteral) exprNode()                {}
func (e *StringLiteral) Position() token.Position { return e.Pos }
func (e *StringLiteral) String() string           { return strconv.Quote(e.Value) }

type Call struct {
	Callee Expr
	Args   []Expr
	Pos    token.Position
}

func (e *Call) exprNode()                {}
func (e *Call) Position() token.Position { return e.Pos }
func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

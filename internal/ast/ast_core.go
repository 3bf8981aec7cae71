// Package ast is the declaration model consumed by every stage of the
// generator: the closed set of signature types, declarations, binding kinds
// and custom-binding expressions.
//
// Each of the four families is a sealed interface paired with a generic
// visitor. Algorithms implement the visitor, so adding a variant adds a
// method and breaks compilation everywhere a case must be handled.
package ast

import "github.com/funvibe/jsbind/internal/token"

// Node is anything that can be located in the signature file.
type Node interface {
	Position() token.Position
}

// File is the root of a parsed signature.
type File struct {
	// Name is the signature file path, used in diagnostics.
	Name string
	// Package is the Go package name of the root module.
	Package string
	// ImportPath is the Go import path of the root package. Empty when the
	// signature never references a type across modules.
	ImportPath string
	// Decls are the top-level declarations in source order.
	Decls []Decl
	Pos   token.Position
}

func (f *File) Position() token.Position { return f.Pos }

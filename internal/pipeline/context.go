package pipeline

import (
	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/gofile"
	"github.com/funvibe/jsbind/internal/symbols"
	"github.com/funvibe/jsbind/internal/token"
)

// Processor is one stage of the generator.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the input and every stage's output.
type PipelineContext struct {
	FilePath string
	Source   []byte

	// PackageOverride and ImportPathOverride replace the signature header
	// values when non-empty.
	PackageOverride    string
	ImportPathOverride string

	File    *ast.File
	Program *symbols.Program
	Units   []*gofile.Unit
	Files   []gofile.GeneratedFile

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(filePath string, source []byte) *PipelineContext {
	return &PipelineContext{FilePath: filePath, Source: source}
}

// Err returns the first recorded error, or nil.
func (ctx *PipelineContext) Err() error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}

// Fail records err. Errors that are not diagnostics become Internal ones.
func (ctx *PipelineContext) Fail(err error) {
	if de, ok := err.(*diagnostics.DiagnosticError); ok {
		ctx.Errors = append(ctx.Errors, de)
		return
	}
	ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrInternal, ctx.position(), err.Error()))
}

func (ctx *PipelineContext) position() token.Position {
	return token.Position{File: ctx.FilePath}
}

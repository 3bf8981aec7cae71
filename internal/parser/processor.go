package parser

import (
	"go.uber.org/zap"

	"github.com/funvibe/jsbind/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	file, err := Parse(ctx.FilePath, ctx.Source)
	if err != nil {
		ctx.Fail(err)
		return ctx
	}
	if ctx.PackageOverride != "" {
		file.Package = ctx.PackageOverride
	}
	if ctx.ImportPathOverride != "" {
		file.ImportPath = ctx.ImportPathOverride
	}
	ctx.File = file

	pipeline.Logger().Debug("parsed signature",
		zap.String("file", ctx.FilePath),
		zap.String("package", file.Package),
		zap.Int("decls", len(file.Decls)))
	return ctx
}

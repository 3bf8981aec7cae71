package codegen

import (
	"go.uber.org/zap"

	"github.com/funvibe/jsbind/internal/pipeline"
)

type CodegenProcessor struct{}

func (cp *CodegenProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil {
		return ctx
	}
	units, err := New(ctx.Program).Generate()
	if err != nil {
		ctx.Fail(err)
		return ctx
	}
	ctx.Units = units

	for _, u := range units {
		pipeline.Logger().Debug("generated unit",
			zap.String("file", u.Filename),
			zap.String("package", u.Package),
			zap.Int("decls", len(u.Decls)))
	}
	return ctx
}

package analyzer

import (
	"go.uber.org/zap"

	"github.com/funvibe/jsbind/internal/pipeline"
)

type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.File == nil {
		return ctx
	}
	program, err := New(ctx.File).Analyze()
	if err != nil {
		ctx.Fail(err)
		return ctx
	}
	ctx.Program = program

	log := pipeline.Logger()
	for _, m := range program.Modules {
		for _, v := range m.Values {
			log.Debug("resolved binding",
				zap.String("module", m.QualifiedName()),
				zap.String("val", v.Decl.Name),
				zap.Stringer("kind", v.Binding),
				zap.Bool("inferred", v.Inferred))
		}
	}
	return ctx
}

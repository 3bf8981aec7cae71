package emitter

import (
	"go.uber.org/zap"

	"github.com/funvibe/jsbind/internal/pipeline"
)

type EmitterProcessor struct{}

func (ep *EmitterProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Units) == 0 {
		return ctx
	}
	files, err := Emit(ctx.Units)
	if err != nil {
		ctx.Fail(err)
		return ctx
	}
	ctx.Files = files

	for _, f := range files {
		pipeline.Logger().Debug("emitted file",
			zap.String("file", f.Filename),
			zap.Int("bytes", len(f.Content)))
	}
	return ctx
}

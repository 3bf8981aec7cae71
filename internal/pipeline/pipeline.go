package pipeline

import "go.uber.org/zap"

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. It stops after the first stage that reports an
// error, so later stages never see a partially built context.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if len(ctx.Errors) > 0 {
			Logger().Debug("pipeline stopped",
				zap.String("file", ctx.FilePath),
				zap.String("code", string(ctx.Errors[0].Code)))
			break
		}
	}
	return ctx
}

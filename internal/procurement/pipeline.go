package procurement

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "procurement-desk/pipeline"

// Generator produces one completion for a fully composed prompt. A single
// call is a single attempt; retry policy, if any, belongs to the caller's
// environment, not here.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Retriever returns the k reference passages most relevant to the query,
// best first.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// Config tunes the pipeline. Zero values select the defaults.
type Config struct {
	// RetrieveK is how many reference passages are pulled into the
	// {context} slot per stage. Defaults to 5.
	RetrieveK int
}

const defaultRetrieveK = 5

// Pipeline runs one workflow stage at a time: retrieve context, compose the
// stage prompt, call the generator once, store the output. Stages within a
// session are processed strictly sequentially; concurrency control across
// sessions belongs to the caller.
type Pipeline struct {
	retriever Retriever
	generator Generator
	cfg       Config
}

func NewPipeline(retriever Retriever, generator Generator, cfg Config) *Pipeline {
	if cfg.RetrieveK <= 0 {
		cfg.RetrieveK = defaultRetrieveK
	}
	return &Pipeline{retriever: retriever, generator: generator, cfg: cfg}
}

// ProcessStage runs one stage against the given input and, on success,
// writes the generator's response verbatim into state and returns it.
// Re-processing a stage overwrites its previous output. On any failure the
// state is left untouched: collaborator errors come back wrapped in
// *StageError, a blank input comes back as ErrEmptyInput before any
// collaborator is called.
func (p *Pipeline) ProcessStage(ctx context.Context, state *PipelineState, stage Stage, input string) (string, error) {
	if _, ok := stageSpecs[stage]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "pipeline.process_stage")
	span.SetAttributes(attribute.String("procurement.stage", string(stage)))
	defer span.End()

	passages, err := p.retriever.Retrieve(ctx, input, p.cfg.RetrieveK)
	if err != nil {
		err = &StageError{Stage: stage, Err: fmt.Errorf("retrieve context: %w", err)}
		span.RecordError(err)
		span.SetStatus(codes.Error, "retrieval failed")
		return "", err
	}
	contextText := strings.Join(passages, "\n\n")

	prompt, err := ComposePrompt(stage, contextText, input)
	if err != nil {
		return "", err
	}

	output, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		err = &StageError{Stage: stage, Err: fmt.Errorf("generate: %w", err)}
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return "", err
	}

	state.set(stage, output)
	return output, nil
}

// SeedInput builds the editable input draft for a stage from its
// predecessors' stored outputs. It returns false when the stage declares no
// predecessors or when any predecessor has not produced output yet; a seed
// is all-or-nothing.
func SeedInput(state *PipelineState, stage Stage) (string, bool) {
	preds := stageSpecs[stage].predecessors
	if len(preds) == 0 {
		return "", false
	}
	outputs := make([]string, len(preds))
	for i, pred := range preds {
		out, ok := state.Output(pred)
		if !ok {
			return "", false
		}
		outputs[i] = out
	}
	switch stage {
	case StageTenderEmail:
		return fmt.Sprintf("RFP Document:\n%s\n\nSelected Vendors:\n%s", outputs[0], outputs[1]), true
	case StageRiskContract:
		return fmt.Sprintf("Bid Information:\n%s\n\nNegotiation Strategy:\n%s", outputs[0], outputs[1]), true
	default:
		return outputs[0], true
	}
}

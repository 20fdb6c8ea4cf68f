package procurement

// PipelineState holds the outputs a workflow session has produced so far,
// keyed by stage. Each session owns exactly one PipelineState; stages of one
// session never observe another session's outputs. A stage id appears at most
// once, and only after its stage completed successfully.
type PipelineState struct {
	outputs map[Stage]string
}

// NewPipelineState returns an empty state.
func NewPipelineState() *PipelineState {
	return &PipelineState{outputs: make(map[Stage]string)}
}

// Output returns the stored output for a stage and whether one exists.
func (ps *PipelineState) Output(stage Stage) (string, bool) {
	out, ok := ps.outputs[stage]
	return out, ok
}

// Completed lists the stages that have produced output, in workflow order.
func (ps *PipelineState) Completed() []Stage {
	var done []Stage
	for _, stage := range stageOrder {
		if _, ok := ps.outputs[stage]; ok {
			done = append(done, stage)
		}
	}
	return done
}

// Len returns how many stages have produced output.
func (ps *PipelineState) Len() int { return len(ps.outputs) }

func (ps *PipelineState) set(stage Stage, output string) {
	ps.outputs[stage] = output
}

package procurement

import (
	"errors"
	"fmt"
)

// ErrEmptyInput reports that the text submitted to a stage was empty or
// whitespace-only. The stage is not run and no collaborator is called.
var ErrEmptyInput = errors.New("input is empty")

// ErrUnknownStage reports a stage identifier outside the workflow's set.
var ErrUnknownStage = errors.New("unknown stage")

// StageError wraps a collaborator failure with the stage it occurred in.
// The pipeline performs one attempt per request; the wrapped error reaches
// the caller unchanged for errors.Is / errors.As inspection.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// StageFromError extracts the stage a pipeline error occurred in, or ""
// when the error did not originate from a stage run.
func StageFromError(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

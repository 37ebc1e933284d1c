package roadmap

import (
	"errors"
	"fmt"
)

var ErrStepIndexOutOfRange = errors.New("step index out of range")

// CompleteStep returns a new step slice with steps[idx] completed and the
// following step promoted to current, unless that step is already completed.
// changed is false when steps[idx] was already completed; the input is never
// modified.
func CompleteStep(steps []Step, idx int) (next []Step, changed bool, err error) {
	if idx < 0 || idx >= len(steps) {
		return nil, false, fmt.Errorf("%w: %d not in [0,%d)", ErrStepIndexOutOfRange, idx, len(steps))
	}
	if steps[idx].Status == StepCompleted {
		return CloneSteps(steps), false, nil
	}
	next = CloneSteps(steps)
	next[idx].Status = StepCompleted
	if idx+1 < len(next) && next[idx+1].Status != StepCompleted {
		next[idx+1].Status = StepCurrent
	}
	return next, true, nil
}

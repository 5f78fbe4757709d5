package workflow

import (
	"time"

	"github.com/seyio/leadpilot/pkg/models"
)

// stepIndex returns the position of a step in the pipeline order, or -1
func stepIndex(step models.Step) int {
	for i, s := range models.StepOrder {
		if s == step {
			return i
		}
	}
	return -1
}

// SetCurrentStep jumps to a step unconditionally. Whether earlier steps are
// complete is the caller's policy, not enforced here.
func SetCurrentStep(run models.WorkflowRun, step models.Step) models.WorkflowRun {
	if stepIndex(step) < 0 {
		return run
	}
	run.CurrentStep = step
	return touch(run)
}

// NextStep advances to the following step; no-op at the terminal step
func NextStep(run models.WorkflowRun) models.WorkflowRun {
	i := stepIndex(run.CurrentStep)
	if i < 0 || i >= len(models.StepOrder)-1 {
		return run
	}
	run.CurrentStep = models.StepOrder[i+1]
	return touch(run)
}

// PrevStep moves back one step; no-op at the initial step
func PrevStep(run models.WorkflowRun) models.WorkflowRun {
	i := stepIndex(run.CurrentStep)
	if i <= 0 {
		return run
	}
	run.CurrentStep = models.StepOrder[i-1]
	return touch(run)
}

// UpdateStepStatus sets a step's status. Transition to running stamps
// StartedAt, transition to completed stamps CompletedAt. The error message
// is attached verbatim for error status and cleared otherwise.
func UpdateStepStatus(run models.WorkflowRun, step models.Step, status models.StepStatus, errMsg string) models.WorkflowRun {
	state, ok := run.Steps[step]
	if !ok {
		return run
	}

	now := time.Now()
	state.Status = status
	switch status {
	case models.StepRunning:
		state.StartedAt = &now
	case models.StepCompleted:
		state.CompletedAt = &now
	}
	if status == models.StepError {
		state.Error = errMsg
	} else {
		state.Error = ""
	}

	run.Steps = cloneSteps(run.Steps)
	run.Steps[step] = state
	return touch(run)
}

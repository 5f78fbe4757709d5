package workflow

import (
	"testing"

	"github.com/seyio/leadpilot/pkg/models"
)

func TestStepNavigation(t *testing.T) {
	run := NewRun("nav")

	run = NextStep(run)
	if run.CurrentStep != models.StepQualify {
		t.Errorf("after next, step = %q", run.CurrentStep)
	}

	run = PrevStep(run)
	if run.CurrentStep != models.StepSource {
		t.Errorf("after back, step = %q", run.CurrentStep)
	}

	// Back at the first step is a no-op
	run = PrevStep(run)
	if run.CurrentStep != models.StepSource {
		t.Errorf("back at first step moved to %q", run.CurrentStep)
	}

	// Next at the last step is a no-op
	run = SetCurrentStep(run, models.StepExport)
	run = NextStep(run)
	if run.CurrentStep != models.StepExport {
		t.Errorf("next at last step moved to %q", run.CurrentStep)
	}
}

func TestSetCurrentStepUnknown(t *testing.T) {
	run := NewRun("nav")
	run = SetCurrentStep(run, models.Step("bogus"))
	if run.CurrentStep != models.StepSource {
		t.Errorf("unknown step changed current to %q", run.CurrentStep)
	}
}

func TestUpdateStepStatusTimestamps(t *testing.T) {
	run := NewRun("status")

	run = UpdateStepStatus(run, models.StepQualify, models.StepRunning, "")
	state := run.Steps[models.StepQualify]
	if state.Status != models.StepRunning {
		t.Errorf("status = %q", state.Status)
	}
	if state.StartedAt == nil {
		t.Error("running must stamp StartedAt")
	}
	if state.CompletedAt != nil {
		t.Error("running must not stamp CompletedAt")
	}

	run = UpdateStepStatus(run, models.StepQualify, models.StepCompleted, "")
	state = run.Steps[models.StepQualify]
	if state.CompletedAt == nil {
		t.Error("completed must stamp CompletedAt")
	}
	if state.StartedAt == nil {
		t.Error("completed must keep StartedAt")
	}
}

func TestUpdateStepStatusError(t *testing.T) {
	run := NewRun("status")

	run = UpdateStepStatus(run, models.StepCompose, models.StepError, "provider timeout")
	if run.Steps[models.StepCompose].Error != "provider timeout" {
		t.Errorf("error = %q", run.Steps[models.StepCompose].Error)
	}

	// Recovering clears the attached error
	run = UpdateStepStatus(run, models.StepCompose, models.StepCompleted, "")
	if run.Steps[models.StepCompose].Error != "" {
		t.Errorf("error not cleared: %q", run.Steps[models.StepCompose].Error)
	}
}

func TestUpdateStepStatusDoesNotMutateOriginal(t *testing.T) {
	original := NewRun("immutability")
	_ = UpdateStepStatus(original, models.StepSource, models.StepCompleted, "")
	if original.Steps[models.StepSource].Status != models.StepPending {
		t.Error("reducer mutated the input run's step map")
	}
}

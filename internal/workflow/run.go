// Package workflow holds the campaign-run state machine. Every function is
// a reducer: it takes a WorkflowRun value and returns a new one, never
// mutating shared slices or maps, so each transition is observable and
// replayable. Reducers are total: partial failure produces a valid run
// state, never an error across this boundary.
package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seyio/leadpilot/pkg/models"
)

// NewRun builds a fresh run with all steps pending, empty stage data and
// zeroed stats. An empty name gets a generated label.
func NewRun(name string) models.WorkflowRun {
	now := time.Now()
	if name == "" {
		name = fmt.Sprintf("Campaign %s", now.Format("Jan 2 15:04"))
	}

	steps := make(map[models.Step]models.StepState, len(models.StepOrder))
	for _, step := range models.StepOrder {
		steps[step] = models.StepState{Status: models.StepPending}
	}

	return models.WorkflowRun{
		ID:          uuid.NewString(),
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
		CurrentStep: models.StepSource,
		Steps:       steps,
	}
}

// Reset re-initializes all stage data while preserving the run's identity
func Reset(run models.WorkflowRun) models.WorkflowRun {
	fresh := NewRun(run.Name)
	fresh.ID = run.ID
	fresh.CreatedAt = run.CreatedAt
	return fresh
}

// Rename updates the run's name
func Rename(run models.WorkflowRun, name string) models.WorkflowRun {
	run.Name = name
	return touch(run)
}

// touch recomputes every derived aggregate and stamps UpdatedAt. Called at
// the end of every reducer so stats can never drift from the collections
// they summarize.
func touch(run models.WorkflowRun) models.WorkflowRun {
	run.Stats = models.RunStats{
		TotalJobs:     len(run.SourceData.Jobs),
		QualifiedJobs: len(run.QualifyData.QualifiedJobs),
		TotalContacts: len(run.EnrichData.Contacts),
		TotalMessages: len(run.ComposeData.Messages),
		ReadyToSend:   len(run.ExportData.Rows),
	}

	approved := 0
	for _, m := range run.ComposeData.Messages {
		if m.Status == models.MessageApproved {
			approved++
		}
	}
	run.ComposeData.ApprovedCount = approved

	counts := make(map[string]int)
	for _, c := range run.EnrichData.Contacts {
		switch {
		case c.Source == models.SourceJobPoster:
			counts["job_poster"]++
		case len(c.Source) >= 10 && c.Source[:10] == "enrichment":
			counts["enrichment"]++
		default:
			counts[string(c.Source)]++
		}
	}
	run.EnrichData.SourceCounts = counts

	run.UpdatedAt = time.Now()
	return run
}

// cloneSteps copies the step map before a reducer mutates it
func cloneSteps(steps map[models.Step]models.StepState) map[models.Step]models.StepState {
	out := make(map[models.Step]models.StepState, len(steps))
	for k, v := range steps {
		out[k] = v
	}
	return out
}

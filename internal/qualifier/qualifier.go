package qualifier

import (
	"context"
	"fmt"

	"github.com/seyio/leadpilot/internal/ai"
	"github.com/seyio/leadpilot/internal/config"
	"github.com/seyio/leadpilot/internal/matcher"
	"github.com/seyio/leadpilot/internal/workflow"
	"github.com/seyio/leadpilot/pkg/models"
)

// Classifier is the external classification collaborator consumed by the
// bulk pass. Satisfied by *ai.Client.
type Classifier interface {
	ClassifyJobs(ctx context.Context, jobs []models.JobPost, locationPreference string) ([]ai.Classification, error)
}

// Qualify runs the bulk automatic pass over every source job. Jobs lacking
// a poster are disqualified up front when the poster-required policy is
// active, without spending a classifier call on them. The rest are
// submitted in sequential batches; each batch's verdicts are folded into
// the run in one mutation before the next batch is sent.
//
// A mid-pass classifier failure returns the partially-updated run together
// with the error: progress made by earlier batches is kept, never rolled
// back.
func Qualify(ctx context.Context, run models.WorkflowRun, cfg *config.Config, classifier Classifier) (models.WorkflowRun, error) {
	operatorStack := cfg.OperatorTechStack()

	var pending []models.JobPost
	var prefiltered []workflow.Assessment
	for _, job := range run.SourceData.Jobs {
		if cfg.Qualification.PosterRequired && (job.Poster == nil || job.Poster.Name == "") {
			prefiltered = append(prefiltered, workflow.Assessment{
				JobID:     job.ID,
				Qualified: false,
				Reason:    "no poster contact available",
			})
			continue
		}
		pending = append(pending, job)
	}
	if len(prefiltered) > 0 {
		run = workflow.ApplyAssessments(run, prefiltered)
	}

	batchSize := cfg.ClassifyBatchSize
	if batchSize <= 0 {
		batchSize = 10
	}

	for start := 0; start < len(pending); start += batchSize {
		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		results, err := classifier.ClassifyJobs(ctx, batch, cfg.Qualification.LocationPreference)
		if err != nil {
			return run, fmt.Errorf("classify batch: %w", err)
		}

		run = workflow.ApplyAssessments(run, assessBatch(batch, results, operatorStack))
	}

	return run, nil
}

// assessBatch converts classifier verdicts into assessments. Every
// submitted job gets exactly one assessment: jobs the classifier omitted
// are disqualified as unprocessed at zero confidence rather than silently
// dropped, so the partition always covers the full batch.
func assessBatch(batch []models.JobPost, results []ai.Classification, operatorStack []string) []workflow.Assessment {
	byID := make(map[string]ai.Classification, len(results))
	for _, r := range results {
		byID[r.JobID] = r
	}

	assessments := make([]workflow.Assessment, 0, len(batch))
	for _, job := range batch {
		r, ok := byID[job.ID]
		if !ok {
			assessments = append(assessments, workflow.Assessment{
				JobID:     job.ID,
				Qualified: false,
				Reason:    "job not processed",
			})
			continue
		}

		score := matcher.TechStackScore(r.TechStack, operatorStack)
		qualified := r.LocationQualified && matcher.Passes(score)
		isRemote := r.IsRemote

		assessments = append(assessments, workflow.Assessment{
			JobID:      job.ID,
			Qualified:  qualified,
			Reason:     buildReason(r, score),
			MatchScore: score,
			TechStack:  r.TechStack,
			IsRemote:   &isRemote,
		})
	}
	return assessments
}

// buildReason renders the human-readable qualification reason: the remote
// determination, where it was detected, optional verbatim evidence, and
// the weighted tech match.
func buildReason(r ai.Classification, score float64) string {
	remote := "Not remote"
	if r.IsRemote {
		remote = "Remote"
	}

	reason := fmt.Sprintf("%s (detected from %s", remote, r.DetectedFrom)
	if r.Evidence != "" {
		reason += fmt.Sprintf(": %q", r.Evidence)
	}
	reason += fmt.Sprintf("); tech match %.0f%%", score*100)
	return reason
}

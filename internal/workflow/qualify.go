package workflow

import (
	"time"

	"github.com/seyio/leadpilot/pkg/models"
)

// Assessment is the outcome of qualifying one job, produced either by the
// bulk classification pass or a manual decision.
type Assessment struct {
	JobID      string
	Qualified  bool
	Reason     string
	MatchScore float64
	// Classification results written back onto the source job when present
	TechStack []string
	IsRemote  *bool
}

// QualifyJob is the manual single-job entry point: it moves the job into
// the qualified or disqualified partition with the given reason. Unknown
// ids are a no-op.
func QualifyJob(run models.WorkflowRun, id string, qualified bool, reason string) models.WorkflowRun {
	if reason == "" {
		if qualified {
			reason = "Manually qualified"
		} else {
			reason = "Manually disqualified"
		}
	}
	return ApplyAssessments(run, []Assessment{{
		JobID:     id,
		Qualified: qualified,
		Reason:    reason,
	}})
}

// ApplyAssessments folds a batch of qualification outcomes into the run.
// Each assessed job is removed from whichever partition previously held it
// before being re-inserted into exactly one, so re-qualification and manual
// overrides never duplicate. Classification tech stacks and remote flags
// are written back onto the source jobs.
func ApplyAssessments(run models.WorkflowRun, assessments []Assessment) models.WorkflowRun {
	now := time.Now()

	jobs := append([]models.JobPost(nil), run.SourceData.Jobs...)
	qualified := append([]models.QualifiedJob(nil), run.QualifyData.QualifiedJobs...)
	disqualified := append([]models.QualifiedJob(nil), run.QualifyData.DisqualifiedJobs...)

	for _, a := range assessments {
		idx := -1
		for i, job := range jobs {
			if job.ID == a.JobID {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		if a.TechStack != nil {
			jobs[idx].TechStack = a.TechStack
		}
		if a.IsRemote != nil {
			jobs[idx].IsRemote = a.IsRemote
		}

		qualified = withoutJob(qualified, a.JobID)
		disqualified = withoutJob(disqualified, a.JobID)

		entry := models.QualifiedJob{
			JobPost:     jobs[idx],
			Reason:      a.Reason,
			MatchScore:  a.MatchScore,
			QualifiedAt: now,
		}
		if a.Qualified {
			qualified = append(qualified, entry)
		} else {
			disqualified = append(disqualified, entry)
		}
	}

	run.SourceData.Jobs = jobs
	run.QualifyData.QualifiedJobs = qualified
	run.QualifyData.DisqualifiedJobs = disqualified
	return touch(run)
}

func withoutJob(list []models.QualifiedJob, id string) []models.QualifiedJob {
	out := list[:0:0]
	for _, j := range list {
		if j.ID != id {
			out = append(out, j)
		}
	}
	return out
}

// FindQualifiedJob looks up a job in the qualified partition
func FindQualifiedJob(run models.WorkflowRun, id string) (models.QualifiedJob, bool) {
	for _, j := range run.QualifyData.QualifiedJobs {
		if j.ID == id {
			return j, true
		}
	}
	return models.QualifiedJob{}, false
}

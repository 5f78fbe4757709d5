package workflow

import "github.com/seyio/leadpilot/pkg/models"

// AddJobs merges newly-imported jobs into the run by id. First write wins:
// an incoming job whose id already exists is dropped, so importing the same
// payload twice is a no-op.
func AddJobs(run models.WorkflowRun, jobs []models.JobPost) models.WorkflowRun {
	existing := make(map[string]bool, len(run.SourceData.Jobs))
	for _, job := range run.SourceData.Jobs {
		existing[job.ID] = true
	}

	merged := make([]models.JobPost, 0, len(run.SourceData.Jobs)+len(jobs))
	merged = append(merged, run.SourceData.Jobs...)
	for _, job := range jobs {
		if existing[job.ID] {
			continue
		}
		existing[job.ID] = true
		merged = append(merged, job)
	}

	run.SourceData.Jobs = merged
	run.SourceData.TotalImported = len(merged)
	return touch(run)
}

// RemoveJob removes one job from the source list. Contacts or messages
// already derived from the job are left in place; later stages tolerate
// the dangling reference.
func RemoveJob(run models.WorkflowRun, id string) models.WorkflowRun {
	jobs := make([]models.JobPost, 0, len(run.SourceData.Jobs))
	for _, job := range run.SourceData.Jobs {
		if job.ID != id {
			jobs = append(jobs, job)
		}
	}
	run.SourceData.Jobs = jobs
	run.SourceData.TotalImported = len(jobs)
	return touch(run)
}

// ClearJobs drops every imported job
func ClearJobs(run models.WorkflowRun) models.WorkflowRun {
	run.SourceData.Jobs = nil
	run.SourceData.TotalImported = 0
	return touch(run)
}

// FindJob looks up a source job by id
func FindJob(run models.WorkflowRun, id string) (models.JobPost, bool) {
	for _, job := range run.SourceData.Jobs {
		if job.ID == id {
			return job, true
		}
	}
	return models.JobPost{}, false
}

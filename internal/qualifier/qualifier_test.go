package qualifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/seyio/leadpilot/internal/ai"
	"github.com/seyio/leadpilot/internal/config"
	"github.com/seyio/leadpilot/internal/workflow"
	"github.com/seyio/leadpilot/pkg/models"
)

// fakeClassifier replays canned verdicts and records the batches it saw
type fakeClassifier struct {
	results []ai.Classification
	err     error
	batches [][]models.JobPost
}

func (f *fakeClassifier) ClassifyJobs(ctx context.Context, jobs []models.JobPost, locationPreference string) ([]ai.Classification, error) {
	f.batches = append(f.batches, jobs)
	if f.err != nil {
		return nil, f.err
	}
	// Return only the verdicts belonging to this batch
	ids := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		ids[j.ID] = true
	}
	var out []ai.Classification
	for _, r := range f.results {
		if ids[r.JobID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ClassifyBatchSize: 10,
		TechStack:         map[string][]string{"languages": {"Go", "Rust"}},
		Qualification: config.Qualification{
			LocationPreference: "remote_or_hybrid",
		},
	}
}

func importedRun(jobs ...models.JobPost) models.WorkflowRun {
	return workflow.AddJobs(workflow.NewRun("test"), jobs)
}

func TestQualifyPartitionsByVerdict(t *testing.T) {
	run := importedRun(
		models.JobPost{ID: "j1", Title: "Go Engineer"},
		models.JobPost{ID: "j2", Title: "PHP Developer"},
	)
	fake := &fakeClassifier{results: []ai.Classification{
		{JobID: "j1", TechStack: []string{"Go", "Rust"}, IsRemote: true, LocationQualified: true, DetectedFrom: "title"},
		{JobID: "j2", TechStack: []string{"PHP"}, IsRemote: true, LocationQualified: true, DetectedFrom: "description"},
	}}

	updated, err := Qualify(context.Background(), run, testConfig(), fake)
	if err != nil {
		t.Fatalf("Qualify failed: %v", err)
	}

	if len(updated.QualifyData.QualifiedJobs) != 1 {
		t.Fatalf("qualified = %d", len(updated.QualifyData.QualifiedJobs))
	}
	if updated.QualifyData.QualifiedJobs[0].ID != "j1" {
		t.Errorf("wrong job qualified: %s", updated.QualifyData.QualifiedJobs[0].ID)
	}
	if len(updated.QualifyData.DisqualifiedJobs) != 1 {
		t.Fatalf("disqualified = %d", len(updated.QualifyData.DisqualifiedJobs))
	}
}

func TestQualifyLocationGate(t *testing.T) {
	run := importedRun(models.JobPost{ID: "j1", Title: "Go Engineer"})
	fake := &fakeClassifier{results: []ai.Classification{
		// Perfect tech match but location disqualified
		{JobID: "j1", TechStack: []string{"Go", "Rust"}, IsRemote: false, LocationQualified: false, DetectedFrom: "location"},
	}}

	updated, err := Qualify(context.Background(), run, testConfig(), fake)
	if err != nil {
		t.Fatalf("Qualify failed: %v", err)
	}
	if len(updated.QualifyData.QualifiedJobs) != 0 {
		t.Error("location-disqualified job must not qualify on tech match alone")
	}
}

func TestQualifyPosterRequiredPrefilter(t *testing.T) {
	run := importedRun(
		models.JobPost{ID: "with-poster", Poster: &models.Poster{Name: "Dana"}},
		models.JobPost{ID: "no-poster"},
	)
	cfg := testConfig()
	cfg.Qualification.PosterRequired = true
	fake := &fakeClassifier{results: []ai.Classification{
		{JobID: "with-poster", TechStack: []string{"Go"}, IsRemote: true, LocationQualified: true, DetectedFrom: "title"},
	}}

	updated, err := Qualify(context.Background(), run, cfg, fake)
	if err != nil {
		t.Fatalf("Qualify failed: %v", err)
	}

	// The posterless job never reaches the classifier
	for _, batch := range fake.batches {
		for _, j := range batch {
			if j.ID == "no-poster" {
				t.Error("posterless job was sent to the classifier")
			}
		}
	}

	dq := updated.QualifyData.DisqualifiedJobs
	if len(dq) != 1 || dq[0].ID != "no-poster" {
		t.Fatalf("disqualified = %+v", dq)
	}
	if dq[0].Reason != "no poster contact available" {
		t.Errorf("reason = %q", dq[0].Reason)
	}
}

func TestQualifyMissingVerdictDisqualifies(t *testing.T) {
	run := importedRun(
		models.JobPost{ID: "j1"},
		models.JobPost{ID: "omitted"},
	)
	fake := &fakeClassifier{results: []ai.Classification{
		{JobID: "j1", TechStack: []string{"Go"}, IsRemote: true, LocationQualified: true, DetectedFrom: "title"},
	}}

	updated, err := Qualify(context.Background(), run, testConfig(), fake)
	if err != nil {
		t.Fatalf("Qualify failed: %v", err)
	}

	var found bool
	for _, j := range updated.QualifyData.DisqualifiedJobs {
		if j.ID == "omitted" {
			found = true
			if j.Reason != "job not processed" {
				t.Errorf("reason = %q", j.Reason)
			}
			if j.MatchScore != 0 {
				t.Errorf("match score = %v", j.MatchScore)
			}
		}
	}
	if !found {
		t.Error("classifier-omitted job not placed in a partition")
	}
}

func TestQualifyBatching(t *testing.T) {
	var jobs []models.JobPost
	var results []ai.Classification
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		jobs = append(jobs, models.JobPost{ID: id})
		results = append(results, ai.Classification{
			JobID: id, TechStack: []string{"Go"}, IsRemote: true, LocationQualified: true, DetectedFrom: "title",
		})
	}
	run := importedRun(jobs...)
	cfg := testConfig()
	cfg.ClassifyBatchSize = 2
	fake := &fakeClassifier{results: results}

	updated, err := Qualify(context.Background(), run, cfg, fake)
	if err != nil {
		t.Fatalf("Qualify failed: %v", err)
	}
	if len(fake.batches) != 3 {
		t.Errorf("expected 3 batches of size 2, got %d", len(fake.batches))
	}
	if len(updated.QualifyData.QualifiedJobs) != 5 {
		t.Errorf("qualified = %d", len(updated.QualifyData.QualifiedJobs))
	}
}

func TestQualifyKeepsPartialProgressOnError(t *testing.T) {
	run := importedRun(
		models.JobPost{ID: "no-poster"},
		models.JobPost{ID: "with-poster", Poster: &models.Poster{Name: "Dana"}},
	)
	cfg := testConfig()
	cfg.Qualification.PosterRequired = true
	fake := &fakeClassifier{err: errors.New("provider down")}

	updated, err := Qualify(context.Background(), run, cfg, fake)
	if err == nil {
		t.Fatal("expected a classifier error")
	}
	// The pre-filter verdict is kept even though the batch failed
	if len(updated.QualifyData.DisqualifiedJobs) != 1 {
		t.Errorf("prefiltered verdict lost: %d disqualified", len(updated.QualifyData.DisqualifiedJobs))
	}
}

func TestQualifyReasonFormat(t *testing.T) {
	run := importedRun(models.JobPost{ID: "j1"})
	fake := &fakeClassifier{results: []ai.Classification{{
		JobID: "j1", TechStack: []string{"Go"}, IsRemote: true, LocationQualified: true,
		DetectedFrom: "description", Evidence: "fully remote team",
	}}}

	updated, err := Qualify(context.Background(), run, testConfig(), fake)
	if err != nil {
		t.Fatalf("Qualify failed: %v", err)
	}

	reason := updated.QualifyData.QualifiedJobs[0].Reason
	if !strings.HasPrefix(reason, "Remote (detected from description: \"fully remote team\")") {
		t.Errorf("reason = %q", reason)
	}
	if !strings.Contains(reason, "tech match") {
		t.Errorf("reason missing tech match: %q", reason)
	}
}

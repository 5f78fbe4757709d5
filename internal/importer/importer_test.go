package importer

import "testing"

func TestParseJobsAliasing(t *testing.T) {
	payload := `[
		{"jobId": "j1", "jobTitle": "Backend Engineer", "companyName": "Acme", "job_location": "Berlin", "link": "https://acme.example/j1"},
		{"id": "j2", "position": "SRE", "employer": "Globex", "summary": "keep the lights on"}
	]`

	jobs, err := ParseJobs([]byte(payload))
	if err != nil {
		t.Fatalf("ParseJobs failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	if jobs[0].ID != "j1" || jobs[0].Title != "Backend Engineer" || jobs[0].Company != "Acme" {
		t.Errorf("aliased fields not resolved: %+v", jobs[0])
	}
	if jobs[0].Location != "Berlin" || jobs[0].URL != "https://acme.example/j1" {
		t.Errorf("aliased location/url not resolved: %+v", jobs[0])
	}
	if jobs[1].Title != "SRE" || jobs[1].Company != "Globex" || jobs[1].Description != "keep the lights on" {
		t.Errorf("aliased fields not resolved: %+v", jobs[1])
	}
}

func TestParseJobsSentinelDefaults(t *testing.T) {
	payload := `[{"description": "a job with no title or company"}]`

	jobs, err := ParseJobs([]byte(payload))
	if err != nil {
		t.Fatalf("ParseJobs failed: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}

	if jobs[0].Title != UnknownTitle {
		t.Errorf("expected sentinel title %q, got %q", UnknownTitle, jobs[0].Title)
	}
	if jobs[0].Company != UnknownCompany {
		t.Errorf("expected sentinel company %q, got %q", UnknownCompany, jobs[0].Company)
	}
	if jobs[0].ID == "" {
		t.Error("expected a generated id for a record without one")
	}
}

func TestParseJobsNestedPoster(t *testing.T) {
	payload := `[{"id": "j1", "title": "CTO", "company": "Acme",
		"poster": {"name": "Dana Okafor", "title": "Founder", "profileUrl": "https://linkedin.example/dana"}}]`

	jobs, err := ParseJobs([]byte(payload))
	if err != nil {
		t.Fatalf("ParseJobs failed: %v", err)
	}

	p := jobs[0].Poster
	if p == nil {
		t.Fatal("expected poster to be parsed")
	}
	if p.Name != "Dana Okafor" || p.Title != "Founder" || p.ProfileURL != "https://linkedin.example/dana" {
		t.Errorf("poster fields wrong: %+v", p)
	}
}

func TestParseJobsFlattenedPoster(t *testing.T) {
	payload := `[{"id": "j1", "title": "CTO", "company": "Acme",
		"posterName": "Lee Park", "posterTitle": "VP Eng"}]`

	jobs, err := ParseJobs([]byte(payload))
	if err != nil {
		t.Fatalf("ParseJobs failed: %v", err)
	}
	if jobs[0].Poster == nil || jobs[0].Poster.Name != "Lee Park" {
		t.Errorf("flattened poster not resolved: %+v", jobs[0].Poster)
	}
}

func TestParseJobsWrappedArray(t *testing.T) {
	payload := `{"jobs": [{"id": "j1", "title": "Dev", "company": "Acme"}]}`

	jobs, err := ParseJobs([]byte(payload))
	if err != nil {
		t.Fatalf("ParseJobs failed: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "j1" {
		t.Errorf("wrapped payload not parsed: %+v", jobs)
	}
}

func TestParseJobsMalformedPayload(t *testing.T) {
	if _, err := ParseJobs([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed payload")
	}
	if _, err := ParseJobs([]byte(`{"other": true}`)); err == nil {
		t.Error("expected error for payload without a job array")
	}
}

func TestParseJobsPostedDate(t *testing.T) {
	payload := `[{"id": "j1", "title": "Dev", "company": "Acme", "datePosted": "2024-01-15"}]`

	jobs, err := ParseJobs([]byte(payload))
	if err != nil {
		t.Fatalf("ParseJobs failed: %v", err)
	}
	if jobs[0].PostedDate == nil {
		t.Fatal("expected posted date to be parsed")
	}
	if got := jobs[0].PostedDate.Format("2006-01-02"); got != "2024-01-15" {
		t.Errorf("posted date = %s, expected 2024-01-15", got)
	}
}

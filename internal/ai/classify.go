package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seyio/leadpilot/pkg/models"
)

// Classification is the classifier's verdict for one submitted job. The
// location policy (what counts as remote vs hybrid vs onsite for the
// configured preference) lives in the classifier's contract, not here.
type Classification struct {
	JobID             string   `json:"job_id"`
	TechStack         []string `json:"tech_stack"`
	IsRemote          bool     `json:"is_remote"`
	LocationQualified bool     `json:"location_qualified"`
	DetectedFrom      string   `json:"detected_from"` // description, title, location, none
	Evidence          string   `json:"evidence,omitempty"`
	Confidence        float64  `json:"confidence"`
}

const classifySystemPrompt = `You are a job-listing classifier. For each job you receive, extract the ordered tech stack (most prominent technologies first) and determine the work location arrangement. Respond with a JSON array only, no commentary. Each element: {"job_id": string, "tech_stack": [string], "is_remote": bool, "location_qualified": bool, "detected_from": "description"|"title"|"location"|"none", "evidence": string, "confidence": number between 0 and 1}. "location_qualified" means the job satisfies the stated location preference. "evidence" is a short verbatim quote supporting the location determination, or empty.`

// ClassifyJobs submits one batch of jobs to the configured provider and
// parses its structured verdicts. Jobs the model omits from its answer are
// simply absent from the result; the caller decides what that means.
func (c *Client) ClassifyJobs(ctx context.Context, jobs []models.JobPost, locationPreference string) ([]Classification, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Location preference: %s\n\nJobs:\n", locationPreference)
	for _, job := range jobs {
		fmt.Fprintf(&sb, "---\njob_id: %s\ntitle: %s\ncompany: %s\nlocation: %s\ndescription: %s\n",
			job.ID, job.Title, job.Company, job.Location, snippet(job.Description, 1500))
	}

	raw, err := c.Generate(ctx, classifySystemPrompt, sb.String())
	if err != nil {
		return nil, fmt.Errorf("classification call: %w", err)
	}

	return parseClassifications(raw)
}

// parseClassifications decodes the model's JSON array, tolerating fenced
// code blocks and surrounding prose.
func parseClassifications(raw string) ([]Classification, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in classifier response")
	}

	var out []Classification
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}
	return out, nil
}

func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

package importer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seyio/leadpilot/pkg/models"
)

// Sentinel values used when an imported record is missing a required field.
const (
	UnknownTitle   = "Unknown Title"
	UnknownCompany = "Unknown Company"
)

// fieldAliases maps each canonical JobPost field to the set of source field
// names it may arrive under. Exports from different tools disagree on
// naming, so the table is kept explicit rather than probing ad hoc.
var fieldAliases = map[string][]string{
	"id":          {"id", "jobId", "job_id", "uuid", "externalId"},
	"title":       {"title", "jobTitle", "job_title", "position", "role"},
	"company":     {"company", "companyName", "company_name", "employer", "organization"},
	"location":    {"location", "jobLocation", "job_location", "city", "region"},
	"description": {"description", "jobDescription", "job_description", "summary", "details"},
	"url":         {"url", "jobUrl", "job_url", "link", "postUrl", "post_url"},
	"postedDate":  {"postedDate", "posted_date", "datePosted", "date_posted", "postedAt", "posted_at"},
	"companySize": {"companySize", "company_size", "employees", "headcount"},
	"seniority":   {"seniority", "seniorityLevel", "seniority_level", "experienceLevel"},
	"posterName":  {"posterName", "poster_name", "hiringManager", "hiring_manager", "recruiterName", "postedBy", "posted_by"},
	"posterTitle": {"posterTitle", "poster_title", "hiringManagerTitle", "recruiterTitle"},
	"posterURL":   {"posterUrl", "poster_url", "posterProfileUrl", "hiringManagerUrl", "recruiterProfile"},
}

// dateLayouts are tried in order when parsing posted dates
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ParseJobs decodes a JSON array of loosely-structured job records into
// canonical JobPost values. Field names are resolved through the alias
// table; records missing title or company get sentinel values rather than
// being rejected. Records that have no id anywhere get a generated one.
func ParseJobs(data []byte) ([]models.JobPost, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		// Some exports wrap the array in a top-level object
		var wrapped struct {
			Jobs []map[string]any `json:"jobs"`
		}
		if werr := json.Unmarshal(data, &wrapped); werr != nil || wrapped.Jobs == nil {
			return nil, fmt.Errorf("parse import payload: %w", err)
		}
		raw = wrapped.Jobs
	}

	now := time.Now()
	jobs := make([]models.JobPost, 0, len(raw))
	for _, record := range raw {
		jobs = append(jobs, parseRecord(record, now))
	}
	return jobs, nil
}

func parseRecord(record map[string]any, now time.Time) models.JobPost {
	job := models.JobPost{
		ID:          lookupString(record, "id"),
		Title:       lookupString(record, "title"),
		Company:     lookupString(record, "company"),
		Location:    lookupString(record, "location"),
		Description: lookupString(record, "description"),
		URL:         lookupString(record, "url"),
		CompanySize: lookupString(record, "companySize"),
		Seniority:   lookupString(record, "seniority"),
		ScrapedAt:   now,
	}

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Title == "" {
		job.Title = UnknownTitle
	}
	if job.Company == "" {
		job.Company = UnknownCompany
	}

	if posted := lookupString(record, "postedDate"); posted != "" {
		if t, ok := parseDate(posted); ok {
			job.PostedDate = &t
		}
	}

	if poster := parsePoster(record); poster != nil {
		job.Poster = poster
	}

	return job
}

// parsePoster reads poster fields either from a nested object or from
// flattened top-level aliases.
func parsePoster(record map[string]any) *models.Poster {
	if nested, ok := record["poster"].(map[string]any); ok {
		p := &models.Poster{
			Name:       lookupString(nested, "posterName"),
			Title:      lookupString(nested, "posterTitle"),
			ProfileURL: lookupString(nested, "posterURL"),
		}
		// Nested posters commonly use plain field names
		if p.Name == "" {
			p.Name = stringValue(nested["name"])
		}
		if p.Title == "" {
			p.Title = stringValue(nested["title"])
		}
		if p.ProfileURL == "" {
			p.ProfileURL = stringValue(nested["profileUrl"])
		}
		if p.Name != "" {
			return p
		}
		return nil
	}

	name := lookupString(record, "posterName")
	if name == "" {
		return nil
	}
	return &models.Poster{
		Name:       name,
		Title:      lookupString(record, "posterTitle"),
		ProfileURL: lookupString(record, "posterURL"),
	}
}

// lookupString resolves a canonical field through the alias table, returning
// the first non-empty match.
func lookupString(record map[string]any, canonical string) string {
	for _, alias := range fieldAliases[canonical] {
		if v, ok := record[alias]; ok {
			if s := stringValue(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", s), "0"), ".")
	default:
		return ""
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

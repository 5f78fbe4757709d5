package workflow

import (
	"strings"
	"time"

	"github.com/seyio/leadpilot/pkg/models"
)

// ReadyStatus is the status every freshly generated export row starts with
const ReadyStatus = "Ready to Send"

// GenerateExportRows rebuilds the export projection wholesale from the
// current approved-message set. A message whose contact or job can no
// longer be resolved is silently omitted; a dangling reference is not
// corruption, the row just cannot be exported. Regeneration clears any
// prior exported mark.
func GenerateExportRows(run models.WorkflowRun) models.WorkflowRun {
	contacts := make(map[string]models.Contact, len(run.EnrichData.Contacts))
	for _, c := range run.EnrichData.Contacts {
		contacts[c.ID] = c
	}
	jobs := make(map[string]models.QualifiedJob, len(run.QualifyData.QualifiedJobs))
	for _, j := range run.QualifyData.QualifiedJobs {
		jobs[j.ID] = j
	}

	var rows []models.ExportRow
	for _, m := range run.ComposeData.Messages {
		if m.Status != models.MessageApproved {
			continue
		}
		contact, ok := contacts[m.ContactID]
		if !ok {
			continue
		}
		job, ok := jobs[m.JobID]
		if !ok {
			continue
		}

		priority := "medium"
		if contact.Source == models.SourceJobPoster {
			priority = "high"
		}

		rows = append(rows, models.ExportRow{
			Status:            ReadyStatus,
			Priority:          priority,
			SequenceStep:      string(m.SequenceStep),
			Channel:           string(m.Channel),
			ContactName:       contact.Name,
			ContactTitle:      contact.Title,
			Company:           contact.Company,
			LinkedInURL:       contact.LinkedInURL,
			Email:             contact.Email,
			JobTitle:          job.Title,
			TechStack:         strings.Join(job.TechStack, ", "),
			MessageBody:       m.Body,
			Personalization:   strings.Join(m.Personalization, "; "),
			JobPostURL:        job.URL,
			SuggestedSendDate: m.SuggestedSendDate.Format("2006-01-02"),
		})
	}

	run.ExportData.Rows = rows
	run.ExportData.ExportedAt = nil
	run.ExportData.DestinationRef = ""
	return touch(run)
}

// MarkExported stamps the export timestamp and optional destination
// reference without touching the rows.
func MarkExported(run models.WorkflowRun, destinationRef string) models.WorkflowRun {
	now := time.Now()
	run.ExportData.ExportedAt = &now
	if destinationRef != "" {
		run.ExportData.DestinationRef = destinationRef
	}
	return touch(run)
}

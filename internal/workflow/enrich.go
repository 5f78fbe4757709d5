package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/seyio/leadpilot/pkg/models"
)

// PlaceholderName marks a derived contact that needs manual enrichment
// because the job had no named poster.
const PlaceholderName = "[needs enrichment]"

// AddContacts merges contacts into the run by id, first write wins
func AddContacts(run models.WorkflowRun, contacts []models.Contact) models.WorkflowRun {
	existing := make(map[string]bool, len(run.EnrichData.Contacts))
	for _, c := range run.EnrichData.Contacts {
		existing[c.ID] = true
	}

	merged := append([]models.Contact(nil), run.EnrichData.Contacts...)
	for _, c := range contacts {
		if existing[c.ID] {
			continue
		}
		existing[c.ID] = true
		merged = append(merged, c)
	}

	run.EnrichData.Contacts = merged
	return touch(run)
}

// DeriveContacts builds one contact for each qualified job not yet
// represented in the run. A job with a named poster yields a poster-sourced
// contact; anything else yields a placeholder needing manual enrichment.
// Jobs that already have a contact are skipped, so re-running derivation
// never duplicates. Manual contacts added by the operator are not subject
// to the one-per-job rule.
func DeriveContacts(run models.WorkflowRun) []models.Contact {
	covered := make(map[string]bool, len(run.EnrichData.Contacts))
	for _, c := range run.EnrichData.Contacts {
		covered[c.JobID] = true
	}

	now := time.Now()
	var contacts []models.Contact
	for _, job := range run.QualifyData.QualifiedJobs {
		if covered[job.ID] {
			continue
		}
		covered[job.ID] = true

		contact := models.Contact{
			ID:        uuid.NewString(),
			JobID:     job.ID,
			Company:   job.Company,
			Status:    models.ContactNew,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if job.Poster != nil && job.Poster.Name != "" {
			contact.Name = job.Poster.Name
			contact.Title = job.Poster.Title
			contact.LinkedInURL = job.Poster.ProfileURL
			contact.Source = models.SourceJobPoster
			contact.Confidence = 90
		} else {
			contact.Name = PlaceholderName
			contact.Source = models.SourceManual
		}
		contacts = append(contacts, contact)
	}
	return contacts
}

// ContactUpdate carries the fields an edit may change; nil means unchanged
type ContactUpdate struct {
	Name        *string
	Title       *string
	Company     *string
	LinkedInURL *string
	Email       *string
	Phone       *string
	Source      *models.ContactSource
	Confidence  *int
	Status      *models.ContactStatus
}

// UpdateContact shallow-merges an update into one contact and stamps
// UpdatedAt. Unknown ids are a no-op.
func UpdateContact(run models.WorkflowRun, id string, update ContactUpdate) models.WorkflowRun {
	contacts := append([]models.Contact(nil), run.EnrichData.Contacts...)
	for i, c := range contacts {
		if c.ID != id {
			continue
		}
		if update.Name != nil {
			c.Name = *update.Name
		}
		if update.Title != nil {
			c.Title = *update.Title
		}
		if update.Company != nil {
			c.Company = *update.Company
		}
		if update.LinkedInURL != nil {
			c.LinkedInURL = *update.LinkedInURL
		}
		if update.Email != nil {
			c.Email = *update.Email
		}
		if update.Phone != nil {
			c.Phone = *update.Phone
		}
		if update.Source != nil {
			c.Source = *update.Source
		}
		if update.Confidence != nil {
			c.Confidence = *update.Confidence
		}
		if update.Status != nil {
			c.Status = *update.Status
		}
		c.UpdatedAt = time.Now()
		contacts[i] = c
		break
	}
	run.EnrichData.Contacts = contacts
	return touch(run)
}

// FindContact looks up a contact by id
func FindContact(run models.WorkflowRun, id string) (models.Contact, bool) {
	for _, c := range run.EnrichData.Contacts {
		if c.ID == id {
			return c, true
		}
	}
	return models.Contact{}, false
}

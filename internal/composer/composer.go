package composer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/seyio/leadpilot/internal/config"
	"github.com/seyio/leadpilot/internal/template"
	"github.com/seyio/leadpilot/internal/workflow"
	"github.com/seyio/leadpilot/pkg/models"
)

// batchSize bounds how many per-contact draft pipelines run concurrently,
// to stay under provider rate limits.
const batchSize = 3

// Drafter is the external text-generation collaborator. Satisfied by
// *ai.Client.
type Drafter interface {
	Generate(ctx context.Context, system, task string) (string, error)
}

// Composer generates the four-message outreach sequence for each eligible
// contact of a run.
type Composer struct {
	cfg     *config.Config
	drafter Drafter
}

// New builds a Composer
func New(cfg *config.Config, drafter Drafter) *Composer {
	return &Composer{cfg: cfg, drafter: drafter}
}

// Compose drafts messages for every eligible contact and returns them along
// with skip notes for the operator. Results accumulate locally and are
// committed by the caller in a single mutation; nothing is written into
// the run mid-batch.
//
// A contact is skipped when it already has any message on file, when it has
// neither an email nor a LinkedIn URL, or when its job can no longer be
// resolved in the qualified partition. A failed drafting call skips only
// that sequence step.
func (c *Composer) Compose(ctx context.Context, run models.WorkflowRun, now time.Time) ([]models.GeneratedMessage, []string) {
	drafted := workflow.ContactsWithMessages(run)

	jobs := make(map[string]models.QualifiedJob, len(run.QualifyData.QualifiedJobs))
	for _, j := range run.QualifyData.QualifiedJobs {
		jobs[j.ID] = j
	}

	type pipelineResult struct {
		messages []models.GeneratedMessage
		notes    []string
	}

	var mu sync.Mutex
	var results []pipelineResult
	var notes []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchSize)

	for _, contact := range run.EnrichData.Contacts {
		if drafted[contact.ID] {
			notes = append(notes, fmt.Sprintf("skipped %s: already has messages", contact.Name))
			continue
		}
		if contact.Email == "" && contact.LinkedInURL == "" {
			notes = append(notes, fmt.Sprintf("skipped %s: no email or LinkedIn URL", contact.Name))
			continue
		}
		job, ok := jobs[contact.JobID]
		if !ok {
			// Dangling reference, not an error
			continue
		}

		contact := contact
		g.Go(func() error {
			result := pipelineResult{}
			vars := c.buildVars(contact, job)

			for _, step := range models.SequenceOrder {
				msg, err := c.draftStep(gctx, contact, job, step, vars, now)
				if err != nil {
					result.notes = append(result.notes,
						fmt.Sprintf("skipped %s step for %s: %v", step, contact.Name, err))
					continue
				}
				result.messages = append(result.messages, msg)
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}

	// Workers only record results, they never fail the group
	_ = g.Wait()

	var messages []models.GeneratedMessage
	for _, r := range results {
		messages = append(messages, r.messages...)
		notes = append(notes, r.notes...)
	}
	return messages, notes
}

// draftStep produces one message for one (contact, step) pair
func (c *Composer) draftStep(ctx context.Context, contact models.Contact, job models.QualifiedJob, step models.SequenceStep, vars map[string]string, now time.Time) (models.GeneratedMessage, error) {
	tmpl := c.cfg.TemplateFor(step)

	stepVars := make(map[string]string, len(vars)+2)
	for k, v := range vars {
		stepVars[k] = v
	}
	stepVars["sequenceStep"] = string(step)
	stepVars["baseDraft"] = template.Render(tmpl.Body, vars)

	system := template.Render(config.DraftSystemPrompt, stepVars)
	task := template.Render(config.DraftTaskPrompt, stepVars)

	body, err := c.drafter.Generate(ctx, system, task)
	if err != nil {
		return models.GeneratedMessage{}, err
	}

	channel := models.ChannelLinkedIn
	if contact.Email != "" {
		channel = models.ChannelBoth
	}

	return models.GeneratedMessage{
		ID:                uuid.NewString(),
		ContactID:         contact.ID,
		JobID:             contact.JobID,
		SequenceStep:      step,
		Channel:           channel,
		Subject:           template.Render(tmpl.Subject, stepVars),
		Body:              body,
		Personalization:   personalization(contact, job),
		SuggestedSendDate: workflow.SendDateFor(step, now),
		Status:            models.MessageDraft,
		CreatedAt:         time.Now(),
	}, nil
}

// buildVars assembles the token substitution map shared by every step of a
// contact's pipeline.
func (c *Composer) buildVars(contact models.Contact, job models.QualifiedJob) map[string]string {
	valueProps := ""
	if len(c.cfg.Business.ValueProps) > 0 {
		valueProps = "- " + strings.Join(c.cfg.Business.ValueProps, "\n- ")
	}

	return map[string]string{
		"contactName":        contact.Name,
		"contactTitle":       contact.Title,
		"company":            contact.Company,
		"jobTitle":           job.Title,
		"techStack":          strings.Join(job.TechStack, ", "),
		"jobSnippet":         snippet(job.Description, 300),
		"senderName":         c.cfg.Business.SenderName,
		"senderTitle":        c.cfg.Business.SenderTitle,
		"senderCompany":      c.cfg.Business.CompanyName,
		"companyDescription": c.cfg.Business.Description,
		"tone":               c.cfg.Business.Tone,
		"valueProps":         valueProps,
	}
}

// personalization collects the free-text facts attached to each message
func personalization(contact models.Contact, job models.QualifiedJob) []string {
	facts := []string{fmt.Sprintf("Posted %q at %s", job.Title, job.Company)}
	if len(job.TechStack) > 0 {
		n := len(job.TechStack)
		if n > 3 {
			n = 3
		}
		facts = append(facts, "Stack: "+strings.Join(job.TechStack[:n], ", "))
	}
	if contact.Source == models.SourceJobPoster {
		facts = append(facts, "Contact posted the job themselves")
	}
	return facts
}

func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

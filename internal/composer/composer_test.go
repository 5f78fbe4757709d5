package composer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/seyio/leadpilot/internal/config"
	"github.com/seyio/leadpilot/internal/workflow"
	"github.com/seyio/leadpilot/pkg/models"
)

// fakeDrafter returns the task prompt as the body, or fails on tasks
// containing failOn.
type fakeDrafter struct {
	failOn string
}

func (f *fakeDrafter) Generate(ctx context.Context, system, task string) (string, error) {
	if f.failOn != "" && strings.Contains(task, f.failOn) {
		return "", errors.New("provider refused")
	}
	return "drafted: " + task[:min(40, len(task))], nil
}

func composeConfig() *config.Config {
	return &config.Config{
		Business: config.BusinessProfile{
			CompanyName: "Seyio Consulting",
			SenderName:  "Sam Rivera",
			SenderTitle: "Principal",
			Tone:        "friendly and direct",
			ValueProps:  []string{"ship fast", "senior only"},
		},
	}
}

// composeRun builds a run with one qualified job and one poster contact
func composeRun(t *testing.T, contacts ...models.Contact) models.WorkflowRun {
	t.Helper()
	run := workflow.NewRun("compose")
	run = workflow.AddJobs(run, []models.JobPost{{
		ID: "j1", Title: "Backend Engineer", Company: "Acme",
		TechStack:   []string{"Go", "Postgres"},
		Description: "We build payments infrastructure.",
	}})
	run = workflow.ApplyAssessments(run, []workflow.Assessment{{JobID: "j1", Qualified: true, Reason: "fit"}})
	return workflow.AddContacts(run, contacts)
}

func TestComposeFullSequence(t *testing.T) {
	run := composeRun(t, models.Contact{
		ID: "c1", JobID: "j1", Name: "Dana Okafor", Company: "Acme",
		Email: "dana@acme.example", Source: models.SourceJobPoster,
	})

	c := New(composeConfig(), &fakeDrafter{})
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	messages, notes := c.Compose(context.Background(), run, now)

	if len(messages) != len(models.SequenceOrder) {
		t.Fatalf("expected %d messages, got %d (notes: %v)", len(models.SequenceOrder), len(messages), notes)
	}

	seen := make(map[models.SequenceStep]models.GeneratedMessage)
	for _, m := range messages {
		seen[m.SequenceStep] = m
		if m.Status != models.MessageDraft {
			t.Errorf("status = %q, expected draft", m.Status)
		}
		if m.ContactID != "c1" || m.JobID != "j1" {
			t.Errorf("linkage wrong: %+v", m)
		}
		// Email on file makes the channel both
		if m.Channel != models.ChannelBoth {
			t.Errorf("channel = %q, expected both", m.Channel)
		}
	}
	for _, step := range models.SequenceOrder {
		if _, ok := seen[step]; !ok {
			t.Errorf("missing step %s", step)
		}
	}

	// Send dates follow the fixed cadence offsets
	if got := seen[models.SeqFinalTouch].SuggestedSendDate.Format("2006-01-02"); got != "2024-01-15" {
		t.Errorf("final touch send date = %s", got)
	}
}

func TestComposeChannelLinkedInOnly(t *testing.T) {
	run := composeRun(t, models.Contact{
		ID: "c1", JobID: "j1", Name: "Dana", Company: "Acme",
		LinkedInURL: "https://linkedin.example/dana",
	})

	c := New(composeConfig(), &fakeDrafter{})
	messages, _ := c.Compose(context.Background(), run, time.Now())

	for _, m := range messages {
		if m.Channel != models.ChannelLinkedIn {
			t.Errorf("channel = %q, expected linkedin", m.Channel)
		}
	}
}

func TestComposeSkipsAlreadyDrafted(t *testing.T) {
	run := composeRun(t, models.Contact{
		ID: "c1", JobID: "j1", Name: "Dana", Email: "dana@acme.example",
	})
	run = workflow.AddMessages(run, []models.GeneratedMessage{{
		ID: "m-prior", ContactID: "c1", JobID: "j1", Status: models.MessageDraft,
	}})

	c := New(composeConfig(), &fakeDrafter{})
	messages, notes := c.Compose(context.Background(), run, time.Now())

	if len(messages) != 0 {
		t.Errorf("re-run drafted %d new messages", len(messages))
	}
	if len(notes) != 1 || !strings.Contains(notes[0], "already has messages") {
		t.Errorf("notes = %v", notes)
	}
}

func TestComposeSkipsUnreachableContact(t *testing.T) {
	run := composeRun(t, models.Contact{ID: "c1", JobID: "j1", Name: "No Channels"})

	c := New(composeConfig(), &fakeDrafter{})
	messages, notes := c.Compose(context.Background(), run, time.Now())

	if len(messages) != 0 {
		t.Errorf("drafted for a contact with no email or LinkedIn: %d", len(messages))
	}
	if len(notes) != 1 || !strings.Contains(notes[0], "no email or LinkedIn") {
		t.Errorf("notes = %v", notes)
	}
}

func TestComposeSkipsDanglingJob(t *testing.T) {
	run := composeRun(t, models.Contact{
		ID: "c1", JobID: "gone", Name: "Dana", Email: "dana@acme.example",
	})

	c := New(composeConfig(), &fakeDrafter{})
	messages, _ := c.Compose(context.Background(), run, time.Now())
	if len(messages) != 0 {
		t.Errorf("drafted for a dangling job reference: %d", len(messages))
	}
}

func TestComposeStepFailureSkipsStepOnly(t *testing.T) {
	run := composeRun(t, models.Contact{
		ID: "c1", JobID: "j1", Name: "Dana", Email: "dana@acme.example",
	})

	// Fail only the final touch draft
	c := New(composeConfig(), &fakeDrafter{failOn: string(models.SeqFinalTouch)})
	messages, notes := c.Compose(context.Background(), run, time.Now())

	if len(messages) != len(models.SequenceOrder)-1 {
		t.Fatalf("expected %d messages, got %d", len(models.SequenceOrder)-1, len(messages))
	}
	for _, m := range messages {
		if m.SequenceStep == models.SeqFinalTouch {
			t.Error("failed step still produced a message")
		}
	}
	var noted bool
	for _, n := range notes {
		if strings.Contains(n, string(models.SeqFinalTouch)) {
			noted = true
		}
	}
	if !noted {
		t.Errorf("failed step not noted: %v", notes)
	}
}

func TestComposePersonalization(t *testing.T) {
	run := composeRun(t, models.Contact{
		ID: "c1", JobID: "j1", Name: "Dana", Email: "dana@acme.example",
		Source: models.SourceJobPoster,
	})

	c := New(composeConfig(), &fakeDrafter{})
	messages, _ := c.Compose(context.Background(), run, time.Now())
	if len(messages) == 0 {
		t.Fatal("no messages drafted")
	}

	joined := strings.Join(messages[0].Personalization, "; ")
	if !strings.Contains(joined, "Backend Engineer") {
		t.Errorf("missing job fact: %q", joined)
	}
	if !strings.Contains(joined, "Stack: Go, Postgres") {
		t.Errorf("missing stack fact: %q", joined)
	}
	if !strings.Contains(joined, "posted the job themselves") {
		t.Errorf("missing poster fact: %q", joined)
	}
}

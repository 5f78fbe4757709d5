package workflow

import (
	"time"

	"github.com/seyio/leadpilot/pkg/models"
)

// AddMessages merges generated messages into the run by id
func AddMessages(run models.WorkflowRun, messages []models.GeneratedMessage) models.WorkflowRun {
	existing := make(map[string]bool, len(run.ComposeData.Messages))
	for _, m := range run.ComposeData.Messages {
		existing[m.ID] = true
	}

	merged := append([]models.GeneratedMessage(nil), run.ComposeData.Messages...)
	for _, m := range messages {
		if existing[m.ID] {
			continue
		}
		existing[m.ID] = true
		merged = append(merged, m)
	}

	run.ComposeData.Messages = merged
	return touch(run)
}

// ContactsWithMessages returns the set of contact ids that already have at
// least one message on file. Generation is skipped for these contacts so a
// re-run never produces duplicate drafts.
func ContactsWithMessages(run models.WorkflowRun) map[string]bool {
	drafted := make(map[string]bool)
	for _, m := range run.ComposeData.Messages {
		drafted[m.ContactID] = true
	}
	return drafted
}

// ApproveMessage marks one message approved. Unknown ids are a no-op.
func ApproveMessage(run models.WorkflowRun, id string) models.WorkflowRun {
	messages := append([]models.GeneratedMessage(nil), run.ComposeData.Messages...)
	for i, m := range messages {
		if m.ID == id {
			messages[i].Status = models.MessageApproved
			break
		}
	}
	run.ComposeData.Messages = messages
	return touch(run)
}

// ApproveAllMessages marks every draft approved
func ApproveAllMessages(run models.WorkflowRun) models.WorkflowRun {
	messages := append([]models.GeneratedMessage(nil), run.ComposeData.Messages...)
	for i, m := range messages {
		if m.Status == models.MessageDraft {
			messages[i].Status = models.MessageApproved
		}
	}
	run.ComposeData.Messages = messages
	return touch(run)
}

// MessageUpdate carries the fields an edit may change; nil means unchanged
type MessageUpdate struct {
	Subject *string
	Body    *string
	Status  *models.MessageStatus
}

// UpdateMessage shallow-merges an edit into one message. Status only
// changes when the update explicitly includes it.
func UpdateMessage(run models.WorkflowRun, id string, update MessageUpdate) models.WorkflowRun {
	messages := append([]models.GeneratedMessage(nil), run.ComposeData.Messages...)
	for i, m := range messages {
		if m.ID != id {
			continue
		}
		if update.Subject != nil {
			m.Subject = *update.Subject
		}
		if update.Body != nil {
			m.Body = *update.Body
		}
		if update.Status != nil {
			m.Status = *update.Status
		}
		messages[i] = m
		break
	}
	run.ComposeData.Messages = messages
	return touch(run)
}

// SendDateFor computes the suggested send date for a sequence step relative
// to now, using the fixed per-step day offsets.
func SendDateFor(step models.SequenceStep, now time.Time) time.Time {
	return now.AddDate(0, 0, models.SendOffsetDays[step])
}

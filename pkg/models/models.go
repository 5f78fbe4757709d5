package models

import "time"

// Step identifies one phase of the linear campaign pipeline
type Step string

const (
	StepSource  Step = "source"
	StepQualify Step = "qualify"
	StepEnrich  Step = "enrich"
	StepCompose Step = "compose"
	StepExport  Step = "export"
)

// StepOrder is the fixed traversal order of the pipeline
var StepOrder = []Step{StepSource, StepQualify, StepEnrich, StepCompose, StepExport}

// StepStatus is the lifecycle status of one pipeline step
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepError     StepStatus = "error"
	StepSkipped   StepStatus = "skipped"
)

// StepState tracks status and timing for one step of a run
type StepState struct {
	Status      StepStatus `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Poster is the person credited with posting a job listing
type Poster struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	ProfileURL string `json:"profile_url"`
}

// JobPost represents a single imported job listing
type JobPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	PostedDate  *time.Time `json:"posted_date,omitempty"`
	ScrapedAt   time.Time  `json:"scraped_at"`
	Poster      *Poster    `json:"poster,omitempty"`
	TechStack   []string   `json:"tech_stack,omitempty"` // order matters for scoring
	Seniority   string     `json:"seniority,omitempty"`  // junior, mid, senior, lead, unknown
	IsRemote    *bool      `json:"is_remote,omitempty"`
	CompanySize string     `json:"company_size,omitempty"`
}

// QualifiedJob is a job placed into the qualified or disqualified partition
type QualifiedJob struct {
	JobPost
	Reason      string    `json:"reason"`
	MatchScore  float64   `json:"match_score"`
	QualifiedAt time.Time `json:"qualified_at"`
}

// ContactSource tags where a contact record came from
type ContactSource string

const (
	SourceJobPoster   ContactSource = "job_poster"
	SourceEnrichmentA ContactSource = "enrichment_apollo"
	SourceEnrichmentB ContactSource = "enrichment_hunter"
	SourceManual      ContactSource = "manual"
)

// ContactStatus is the outreach status of a contact
type ContactStatus string

const (
	ContactNew          ContactStatus = "new"
	ContactPending      ContactStatus = "pending"
	ContactContacted    ContactStatus = "contacted"
	ContactReplied      ContactStatus = "replied"
	ContactOptedOut     ContactStatus = "opted_out"
	ContactDisqualified ContactStatus = "disqualified"
)

// Contact is a candidate outreach target tied to exactly one job
type Contact struct {
	ID          string        `json:"id"`
	JobID       string        `json:"job_id"`
	Name        string        `json:"name"`
	Title       string        `json:"title"`
	Company     string        `json:"company"`
	LinkedInURL string        `json:"linkedin_url,omitempty"`
	Email       string        `json:"email,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Source      ContactSource `json:"source"`
	Confidence  int           `json:"confidence"` // 0-100
	Status      ContactStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// SequenceStep is one of the four fixed positions in the outreach cadence
type SequenceStep string

const (
	SeqFirstTouch     SequenceStep = "first_touch"
	SeqSecondFollowUp SequenceStep = "second_follow_up"
	SeqThirdFollowUp  SequenceStep = "third_follow_up"
	SeqFinalTouch     SequenceStep = "final_touch"
)

// SequenceOrder is the cadence order
var SequenceOrder = []SequenceStep{SeqFirstTouch, SeqSecondFollowUp, SeqThirdFollowUp, SeqFinalTouch}

// SendOffsetDays maps each sequence step to the number of days added to
// "now" when computing its suggested send date.
var SendOffsetDays = map[SequenceStep]int{
	SeqFirstTouch:     0,
	SeqSecondFollowUp: 3,
	SeqThirdFollowUp:  7,
	SeqFinalTouch:     14,
}

// Channel is the delivery channel of a message
type Channel string

const (
	ChannelLinkedIn Channel = "linkedin"
	ChannelEmail    Channel = "email"
	ChannelBoth     Channel = "both"
)

// MessageStatus is the lifecycle status of a generated message
type MessageStatus string

const (
	MessageDraft    MessageStatus = "draft"
	MessageApproved MessageStatus = "approved"
	MessageSent     MessageStatus = "sent"
	MessageFailed   MessageStatus = "failed"
)

// GeneratedMessage is one drafted outreach message for one contact at one
// sequence position.
type GeneratedMessage struct {
	ID                string        `json:"id"`
	ContactID         string        `json:"contact_id"`
	JobID             string        `json:"job_id"`
	SequenceStep      SequenceStep  `json:"sequence_step"`
	Channel           Channel       `json:"channel"`
	Subject           string        `json:"subject,omitempty"`
	Body              string        `json:"body"`
	Personalization   []string      `json:"personalization,omitempty"`
	SuggestedSendDate time.Time     `json:"suggested_send_date"`
	Status            MessageStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
}

// ExportRow is a flattened projection of one approved message joined with
// its contact and job. Recomputed wholesale on every export build; never a
// source of truth.
type ExportRow struct {
	Status            string `json:"status"`
	Priority          string `json:"priority"`
	SequenceStep      string `json:"sequence_step"`
	Channel           string `json:"channel"`
	ContactName       string `json:"contact_name"`
	ContactTitle      string `json:"contact_title"`
	Company           string `json:"company"`
	LinkedInURL       string `json:"linkedin_url"`
	Email             string `json:"email"`
	JobTitle          string `json:"job_title"`
	TechStack         string `json:"tech_stack"`      // comma-joined
	MessageBody       string `json:"message_body"`
	Personalization   string `json:"personalization"` // semicolon-joined
	JobPostURL        string `json:"job_post_url"`
	SuggestedSendDate string `json:"suggested_send_date"`
	SentDate          string `json:"sent_date"`
	Response          string `json:"response"`
	Notes             string `json:"notes"`
}

// SourceData holds the Source stage's collections
type SourceData struct {
	Jobs          []JobPost `json:"jobs"`
	TotalImported int       `json:"total_imported"`
}

// QualifyData holds the Qualify stage's partitions. A job id appears in at
// most one of the two lists at any time.
type QualifyData struct {
	QualifiedJobs    []QualifiedJob `json:"qualified_jobs"`
	DisqualifiedJobs []QualifiedJob `json:"disqualified_jobs"`
}

// EnrichData holds the Enrich stage's contacts plus a by-source breakdown
type EnrichData struct {
	Contacts     []Contact      `json:"contacts"`
	SourceCounts map[string]int `json:"source_counts,omitempty"`
}

// ComposeData holds generated messages and the approved aggregate
type ComposeData struct {
	Messages      []GeneratedMessage `json:"messages"`
	ApprovedCount int                `json:"approved_count"`
}

// ExportData holds the projected rows and export bookkeeping
type ExportData struct {
	Rows           []ExportRow `json:"rows"`
	ExportedAt     *time.Time  `json:"exported_at,omitempty"`
	DestinationRef string      `json:"destination_ref,omitempty"`
}

// RunStats is a denormalized summary recomputed after every stage mutation.
// Values always equal the live length of the corresponding collection.
type RunStats struct {
	TotalJobs     int `json:"total_jobs"`
	QualifiedJobs int `json:"qualified_jobs"`
	TotalContacts int `json:"total_contacts"`
	TotalMessages int `json:"total_messages"`
	ReadyToSend   int `json:"ready_to_send"`
}

// WorkflowRun is the aggregate root: one campaign's complete state across
// all five stages.
type WorkflowRun struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	CurrentStep Step               `json:"current_step"`
	Steps       map[Step]StepState `json:"steps"`
	SourceData  SourceData         `json:"source_data"`
	QualifyData QualifyData        `json:"qualify_data"`
	EnrichData  EnrichData         `json:"enrich_data"`
	ComposeData ComposeData        `json:"compose_data"`
	ExportData  ExportData         `json:"export_data"`
	Stats       RunStats           `json:"stats"`
}

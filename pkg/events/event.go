package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "STAGE_DECIDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeSubmissionCreated = "SUBMISSION_CREATED"
	TypeStageDecided      = "STAGE_DECIDED"
)

// PipelineEvent is emitted whenever a submission enters the pipeline or a
// reviewer stage records its decision. NextStage is the inferred stage after
// the change.
type PipelineEvent struct {
	Type         string    `json:"type"`
	SubmissionId string    `json:"submissionId"`
	CompanyName  string    `json:"companyName"`
	SubmittedBy  string    `json:"submittedBy"`
	Stage        string    `json:"stage,omitempty"`
	Decision     string    `json:"decision,omitempty"`
	NextStage    string    `json:"nextStage"`
	Status       string    `json:"status"`
	Version      int64     `json:"version"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func (e PipelineEvent) EventType() string {
	return e.Type
}

func (e PipelineEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"submissionId": e.SubmissionId,
		"companyName":  e.CompanyName,
		"submittedBy":  e.SubmittedBy,
		"stage":        e.Stage,
		"decision":     e.Decision,
		"nextStage":    e.NextStage,
		"status":       e.Status,
		"version":      e.Version,
	}
}

func (e PipelineEvent) Timestamp() time.Time {
	return e.OccurredAt
}

package dto

import (
	"time"

	"supplier-onboarding-be/pkg/intake"

	"github.com/google/uuid"
)

type PatchAnswersRequest struct {
	SessionId uuid.UUID
	// Answers is merged into the stored answers; a null value removes the key.
	Answers map[string]any `json:"answers" validate:"required"`
}

type UploadDocumentRequest struct {
	SessionId uuid.UUID
	Slot      intake.Slot
	Name      string `json:"name" validate:"required,max=255"`
	MimeType  string `json:"mimeType" validate:"required"`
	// Content is base64, optionally as a data: URL.
	Content string `json:"content" validate:"required"`
}

type SectionRequest struct {
	SessionId uuid.UUID
	Section   int `json:"section" validate:"required,min=1,max=7"`
}

type DocumentMeta struct {
	Slot       intake.Slot `json:"slot"`
	Name       string      `json:"name"`
	SizeBytes  int64       `json:"sizeBytes"`
	MimeType   string      `json:"mimeType"`
	UploadedAt time.Time   `json:"uploadedAt"`
}

type LedgerResponse struct {
	Completed []intake.SectionID `json:"completed"`
	Visited   []intake.SectionID `json:"visited"`
}

// IntakeOverviewResponse is everything a client needs to render the form
// for the current state.
type IntakeOverviewResponse struct {
	SessionId           uuid.UUID                `json:"sessionId"`
	Role                string                   `json:"role"`
	CurrentSection      intake.SectionID         `json:"currentSection"`
	CurrentSectionTitle string                   `json:"currentSectionTitle"`
	Ledger              LedgerResponse           `json:"ledger"`
	Sections            []intake.SectionOverview `json:"sections"`
	PreScreening        intake.PreScreeningState `json:"preScreening"`
	RequiredUploads     []intake.Requirement     `json:"requiredUploads"`
	Answers             intake.Answers           `json:"answers"`
	Documents           []DocumentMeta           `json:"documents"`
	ReadyToSubmit       bool                     `json:"readyToSubmit"`
	UpdatedAt           time.Time                `json:"updatedAt"`
}

type NavigateResponse struct {
	Navigated bool                    `json:"navigated"`
	Overview  *IntakeOverviewResponse `json:"overview"`
}

type SubmitIntakeResponse struct {
	SubmissionId string `json:"submissionId"`
	Status       string `json:"status"`
	CurrentStage string `json:"currentStage"`
}

package contract

import (
	"context"
	"errors"

	"supplier-onboarding-be/internal/entity"
)

var (
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrMalformedSubmission = errors.New("submission not found: stored record is malformed")
	ErrVersionConflict     = errors.New("submission was changed by another reviewer, reload and try again")
	ErrDocumentNotFound    = errors.New("document not found")
)

type SubmissionFilter struct {
	Status entity.SubmissionStatus
	Limit  int
	Offset int
}

// SubmissionRepository persists whole submission records keyed by id and
// keeps the summary registry in step with them.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.Submission) error
	FindByID(ctx context.Context, id string) (*entity.Submission, error)
	// Save writes submission only if the stored version still equals
	// baseVersion, otherwise it returns ErrVersionConflict.
	Save(ctx context.Context, submission *entity.Submission, baseVersion int64) error
	ListSummaries(ctx context.Context, filter SubmissionFilter) ([]entity.SubmissionSummary, int64, error)
}

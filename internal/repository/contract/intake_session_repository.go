package contract

import (
	"context"
	"errors"

	"supplier-onboarding-be/internal/entity"

	"github.com/google/uuid"
)

var ErrIntakeSessionNotFound = errors.New("intake session not found or expired")

// IntakeSessionRepository holds in-progress forms. Sessions are never
// deleted: submit and reset clear them in place and expiry removes them.
type IntakeSessionRepository interface {
	Save(ctx context.Context, session *entity.IntakeSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.IntakeSession, error)
}

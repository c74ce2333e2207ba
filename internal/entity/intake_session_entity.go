// FILE: internal/entity/intake_session_entity.go
package entity

import (
	"time"

	"supplier-onboarding-be/pkg/intake"

	"github.com/google/uuid"
)

// IntakeSession is one requester's in-progress onboarding form.
type IntakeSession struct {
	Id        uuid.UUID
	State     intake.State
	CreatedAt time.Time
	UpdatedAt time.Time
}

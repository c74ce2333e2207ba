package specification

import (
	"supplier-onboarding-be/internal/entity"

	"gorm.io/gorm"
)

type BySubmissionID struct {
	ID string
}

func (s BySubmissionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("submission_id = ?", s.ID)
}

// ByStatus filters by record status; an empty status matches everything.
type ByStatus struct {
	Status entity.SubmissionStatus
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	if s.Status == "" {
		return db
	}
	return db.Where("status = ?", string(s.Status))
}

// AtVersion matches only the row still carrying the given version.
type AtVersion struct {
	Version int64
}

func (s AtVersion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("version = ?", s.Version)
}

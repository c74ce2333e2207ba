package model

import (
	"time"

	"gorm.io/datatypes"
)

// Submission stores the record core as columns and each decision
// sub-object as its own jsonb column so a stage write never rewrites a
// sibling's column with different content.
type Submission struct {
	SubmissionId   string         `gorm:"type:varchar(64);primaryKey"`
	SchemaVersion  int            `gorm:"not null;default:1"`
	Version        int64          `gorm:"not null;default:1"`
	SubmissionDate time.Time      `gorm:"not null;index"`
	SubmittedBy    string         `gorm:"type:varchar(255);not null"`
	CompanyName    string         `gorm:"type:varchar(255)"`
	Status         string         `gorm:"type:varchar(32);not null;index"`
	CurrentStage   string         `gorm:"type:varchar(32);not null"`
	FormData       datatypes.JSON `gorm:"type:jsonb;not null"`
	UploadedFiles  datatypes.JSON `gorm:"type:jsonb;not null"`

	PBPReview         datatypes.JSON `gorm:"type:jsonb"`
	ProcurementReview datatypes.JSON `gorm:"type:jsonb"`
	OPWReview         datatypes.JSON `gorm:"type:jsonb"`
	ContractDrafter   datatypes.JSON `gorm:"type:jsonb"`
	APReview          datatypes.JSON `gorm:"type:jsonb"`

	UpdatedAt time.Time
}

func (Submission) TableName() string {
	return "submissions"
}

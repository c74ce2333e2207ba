// FILE: internal/entity/submission_entity.go
package entity

import (
	"time"

	"supplier-onboarding-be/pkg/intake"
)

type SubmissionStatus string
type Decision string
type Classification string
type IR35Status string

const (
	SubmissionStatusPendingReview SubmissionStatus = "pending_review"
	SubmissionStatusApproved      SubmissionStatus = "approved"
	SubmissionStatusRejected      SubmissionStatus = "rejected"
	SubmissionStatusInfoRequired  SubmissionStatus = "info_required"

	DecisionApproved     Decision = "approved"
	DecisionRejected     Decision = "rejected"
	DecisionInfoRequired Decision = "info_required"

	ClassificationStandard Classification = "standard"
	ClassificationOPWIR35  Classification = "opw_ir35"

	IR35Inside  IR35Status = "inside"
	IR35Outside IR35Status = "outside"
)

// CurrentSchemaVersion is the layout written by this build.
const CurrentSchemaVersion = 1

// ReviewDecision is the part every reviewer stage shares.
type ReviewDecision struct {
	Decision   Decision  `json:"decision"`
	Comments   string    `json:"comments,omitempty"`
	SignerName string    `json:"signerName"`
	SignedDate string    `json:"signedDate"`
	ReviewedAt time.Time `json:"reviewedAt"`
}

type ProcurementDecision struct {
	ReviewDecision
	Classification Classification `json:"classification,omitempty"`
	Reference      string         `json:"reference,omitempty"`
}

type OPWDecision struct {
	ReviewDecision
	IR35Status IR35Status `json:"ir35Status"`
	Rationale  string     `json:"rationale"`
}

type ContractRecord struct {
	Contract   intake.Document `json:"contract"`
	UploadedBy string          `json:"uploadedBy"`
	Date       string          `json:"date"`
	UploadedAt time.Time       `json:"uploadedAt"`
}

type APDecision struct {
	ReviewDecision
	BankDetailsVerified    bool   `json:"bankDetailsVerified"`
	CompanyDetailsVerified bool   `json:"companyDetailsVerified"`
	VATVerified            bool   `json:"vatVerified"`
	InsuranceVerified      bool   `json:"insuranceVerified"`
	SupplierNumber         string `json:"supplierNumber,omitempty"`
}

// Submission is the record each reviewer stage reads and rewrites. Core
// fields are fixed at creation; each stage adds exactly one sub-object.
type Submission struct {
	SubmissionId   string           `json:"submissionId"`
	SchemaVersion  int              `json:"schemaVersion"`
	Version        int64            `json:"version"`
	SubmissionDate time.Time        `json:"submissionDate"`
	SubmittedBy    string           `json:"submittedBy"`
	Status         SubmissionStatus `json:"status"`
	CurrentStage   string           `json:"currentStage"`
	FormData       intake.Answers   `json:"formData"`
	UploadedFiles  intake.Uploads   `json:"uploadedFiles"`

	PBPReview         *ReviewDecision      `json:"pbpReview"`
	ProcurementReview *ProcurementDecision `json:"procurementReview"`
	OPWReview         *OPWDecision         `json:"opwReview"`
	ContractDrafter   *ContractRecord      `json:"contractDrafter"`
	APReview          *APDecision          `json:"apReview"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// SubmissionSummary is one row of the submission registry.
type SubmissionSummary struct {
	SubmissionId   string           `json:"submissionId"`
	SubmissionDate time.Time        `json:"submissionDate"`
	SubmittedBy    string           `json:"submittedBy"`
	CompanyName    string           `json:"companyName,omitempty"`
	Status         SubmissionStatus `json:"status"`
	CurrentStage   string           `json:"currentStage"`
}

// Summary projects the registry row for s.
func (s *Submission) Summary() SubmissionSummary {
	return SubmissionSummary{
		SubmissionId:   s.SubmissionId,
		SubmissionDate: s.SubmissionDate,
		SubmittedBy:    s.SubmittedBy,
		CompanyName:    s.FormData.String(intake.FieldCompanyName),
		Status:         s.Status,
		CurrentStage:   s.CurrentStage,
	}
}

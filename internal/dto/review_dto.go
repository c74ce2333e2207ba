package dto

import (
	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/internal/pkg/logger"
	"supplier-onboarding-be/pkg/pipeline"
)

// ReviewDecisionRequest carries the fields shared by every decision stage.
// Missing signer, date or comments are reported by the stage precondition
// check, not by request validation.
type ReviewDecisionRequest struct {
	SubmissionId string
	Decision     string `json:"decision" validate:"omitempty,oneof=approved rejected info_required"`
	Comments     string `json:"comments" validate:"max=4000"`
	SignerName   string `json:"signerName" validate:"max=255"`
	SignedDate   string `json:"signedDate"`
	// BaseVersion is the record version the reviewer loaded. Zero skips
	// the client-side staleness check.
	BaseVersion int64 `json:"baseVersion" validate:"min=0"`
}

type ProcurementDecisionRequest struct {
	ReviewDecisionRequest
	Classification string `json:"classification" validate:"omitempty,oneof=standard opw_ir35"`
	Reference      string `json:"reference" validate:"max=100"`
}

type OPWDecisionRequest struct {
	ReviewDecisionRequest
	IR35Status string `json:"ir35Status" validate:"omitempty,oneof=inside outside"`
	Rationale  string `json:"rationale" validate:"max=4000"`
}

type ContractUploadRequest struct {
	SubmissionId string
	Contract     *UploadDocumentRequest `json:"contract"`
	UploadedBy   string                 `json:"uploadedBy" validate:"max=255"`
	Date         string                 `json:"date"`
	BaseVersion  int64                  `json:"baseVersion" validate:"min=0"`
}

type APDecisionRequest struct {
	ReviewDecisionRequest
	BankDetailsVerified    bool   `json:"bankDetailsVerified"`
	CompanyDetailsVerified bool   `json:"companyDetailsVerified"`
	VATVerified            bool   `json:"vatVerified"`
	InsuranceVerified      bool   `json:"insuranceVerified"`
	SupplierNumber         string `json:"supplierNumber" validate:"max=64"`
}

type ListSubmissionsRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=pending_review approved rejected info_required"`
	Page     int    `query:"page" validate:"min=0"`
	PageSize int    `query:"pageSize" validate:"min=0,max=100"`
}

type ListSubmissionsResponse struct {
	Items    []entity.SubmissionSummary `json:"items"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	PageSize int                        `json:"pageSize"`
}

// SubmissionDetailResponse is the record with document content stripped,
// plus where it sits in the pipeline.
type SubmissionDetailResponse struct {
	Submission      *entity.Submission   `json:"submission"`
	CurrentStage    pipeline.Stage       `json:"currentStage"`
	CurrentLabel    string               `json:"currentStageLabel"`
	Stages          []pipeline.StageView `json:"stages"`
	RequiresPBP     bool                 `json:"requiresPbp"`
	DocumentSummary []DocumentMeta       `json:"documents"`
}

type DecisionResponse struct {
	SubmissionId string                  `json:"submissionId"`
	Status       entity.SubmissionStatus `json:"status"`
	CurrentStage pipeline.Stage          `json:"currentStage"`
	Version      int64                   `json:"version"`
}

type AuditRequest struct {
	SubmissionId string `query:"submissionId"`
	Level        string `query:"level" validate:"omitempty,oneof=INFO WARN ERROR"`
	Limit        int    `query:"limit" validate:"min=0,max=500"`
	Offset       int    `query:"offset" validate:"min=0"`
}

type AuditResponse struct {
	Entries []logger.LogEntry `json:"entries"`
}

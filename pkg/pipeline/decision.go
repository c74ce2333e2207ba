package pipeline

import (
	"strings"
	"time"

	"supplier-onboarding-be/internal/entity"
)

// checks collects precondition problems in a stable order.
type checks []string

func (c *checks) require(ok bool, problem string) {
	if !ok {
		*c = append(*c, problem)
	}
}

func (c checks) err(stage Stage) error {
	if len(c) == 0 {
		return nil
	}
	return &PreconditionError{Stage: stage, Problems: c}
}

func (c *checks) review(d entity.ReviewDecision) {
	switch d.Decision {
	case entity.DecisionApproved, entity.DecisionRejected, entity.DecisionInfoRequired:
	default:
		*c = append(*c, "decision must be approved, rejected or info_required")
	}
	c.require(strings.TrimSpace(d.SignerName) != "", "signer name is required")
	c.require(validDate(d.SignedDate), "signature date is required (YYYY-MM-DD)")
	if d.Decision == entity.DecisionRejected || d.Decision == entity.DecisionInfoRequired {
		c.require(strings.TrimSpace(d.Comments) != "", "comments are required when rejecting or requesting information")
	}
}

func ValidatePBP(d entity.ReviewDecision) error {
	var c checks
	c.review(d)
	return c.err(StagePBPReview)
}

func ValidateProcurement(d entity.ProcurementDecision) error {
	var c checks
	c.review(d.ReviewDecision)
	if d.Classification != "" {
		c.require(d.Classification == entity.ClassificationStandard || d.Classification == entity.ClassificationOPWIR35,
			"classification must be standard or opw_ir35")
	}
	if d.Decision == entity.DecisionApproved {
		c.require(d.Classification != "", "classification is required when approving")
		c.require(strings.TrimSpace(d.Reference) != "", "external reference is required when approving")
	}
	return c.err(StageProcurementReview)
}

func ValidateOPW(d entity.OPWDecision) error {
	var c checks
	c.review(d.ReviewDecision)
	c.require(d.IR35Status == entity.IR35Inside || d.IR35Status == entity.IR35Outside, "IR35 status must be inside or outside")
	c.require(strings.TrimSpace(d.Rationale) != "", "IR35 rationale is required")
	return c.err(StageOPWReview)
}

func ValidateContract(r entity.ContractRecord) error {
	var c checks
	c.require(r.Contract.Content != "", "contract document is required")
	c.require(strings.TrimSpace(r.UploadedBy) != "", "uploader name is required")
	c.require(validDate(r.Date), "contract date is required (YYYY-MM-DD)")
	return c.err(StageContractUpload)
}

// ValidateAP refuses any decision until bank and company details have been
// verified.
func ValidateAP(d entity.APDecision) error {
	var c checks
	c.require(d.BankDetailsVerified, "bank details must be verified")
	c.require(d.CompanyDetailsVerified, "company details must be verified")
	c.review(d.ReviewDecision)
	if d.Decision == entity.DecisionApproved {
		c.require(strings.TrimSpace(d.SupplierNumber) != "", "supplier number is required when approving")
	}
	return c.err(StageAPReview)
}

func validDate(value string) bool {
	_, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	return err == nil
}

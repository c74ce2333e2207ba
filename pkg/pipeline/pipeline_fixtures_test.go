package pipeline

import (
	"time"

	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/pkg/intake"
)

var fixedNow = time.Date(2026, 10, 2, 10, 30, 0, 0, time.UTC)

func newRecord(procurementEngaged string) *entity.Submission {
	answers := intake.Answers{
		intake.FieldProcurementEngaged: procurementEngaged,
		intake.FieldCompanyName:        "Acme Servicing Ltd",
	}
	uploads := intake.Uploads{
		intake.SlotLetterhead: {Name: "letterhead.pdf", SizeBytes: 5, MimeType: "application/pdf", Content: "aGVsbG8="},
	}
	return NewSubmission("sub-1", "Sam Requester", answers, uploads, fixedNow)
}

func review(decision entity.Decision) entity.ReviewDecision {
	return entity.ReviewDecision{
		Decision:   decision,
		Comments:   "Checked against policy",
		SignerName: "Pat Reviewer",
		SignedDate: "2026-10-02",
	}
}

func procurement(decision entity.Decision, classification entity.Classification) entity.ProcurementDecision {
	return entity.ProcurementDecision{
		ReviewDecision: review(decision),
		Classification: classification,
		Reference:      "PRC-2026-0042",
	}
}

func opw(decision entity.Decision) entity.OPWDecision {
	return entity.OPWDecision{
		ReviewDecision: review(decision),
		IR35Status:     entity.IR35Outside,
		Rationale:      "Supplier controls how the work is done",
	}
}

func contract() entity.ContractRecord {
	return entity.ContractRecord{
		Contract:   intake.Document{Name: "contract.pdf", SizeBytes: 5, MimeType: "application/pdf", Content: "aGVsbG8="},
		UploadedBy: "Chris Drafter",
		Date:       "2026-10-03",
	}
}

func ap(decision entity.Decision) entity.APDecision {
	return entity.APDecision{
		ReviewDecision:         review(decision),
		BankDetailsVerified:    true,
		CompanyDetailsVerified: true,
		VATVerified:            true,
		SupplierNumber:         "SUP-10001",
	}
}

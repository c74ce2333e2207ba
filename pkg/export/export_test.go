package export

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/pkg/intake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportRecord() *entity.Submission {
	when := time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC)
	return &entity.Submission{
		SubmissionId:   "5b0c",
		SubmissionDate: when,
		SubmittedBy:    "Sam Requester",
		Status:         entity.SubmissionStatusPendingReview,
		FormData: intake.Answers{
			intake.FieldCompanyName:          "Acme <Servicing> Ltd",
			intake.FieldSupplierType:         intake.SupplierLimitedCompany,
			intake.FieldProcurementEngaged:   intake.Yes,
			intake.FieldContactEmail:         "first_last@acme.example",
			intake.FieldEstimatedAnnualValue: 12500.5,
		},
		UploadedFiles: intake.Uploads{
			intake.SlotLetterhead: {Name: "letterhead.pdf", SizeBytes: 2048, MimeType: "application/pdf", Content: "aGVsbG8="},
		},
		ProcurementReview: &entity.ProcurementDecision{
			ReviewDecision: entity.ReviewDecision{Decision: entity.DecisionApproved, SignerName: "Pat Reviewer", SignedDate: "2026-09-15"},
			Classification: entity.ClassificationStandard,
			Reference:      "PRC-77",
		},
	}
}

func TestRenderSubmissionHTML(t *testing.T) {
	html, err := RenderSubmissionHTML(exportRecord())
	require.NoError(t, err)

	assert.Contains(t, html, "Acme &lt;Servicing&gt; Ltd")
	assert.NotContains(t, html, "<Servicing>")
	assert.Contains(t, html, "Limited company")
	assert.Contains(t, html, "first_last@acme.example")
	assert.Contains(t, html, "12500.5")
	assert.Contains(t, html, "Letterhead document")
	assert.Contains(t, html, "2.0 KB")
	assert.Contains(t, html, "PRC-77")
	assert.Contains(t, html, "Accounts Payable control", "current stage label")
	assert.NotContains(t, html, "aGVsbG8=", "document content stays out of the export")
}

func TestBuildTemplateData_NoDecisions(t *testing.T) {
	rec := exportRecord()
	rec.ProcurementReview = nil
	rec.FormData = intake.Answers{}

	data := BuildTemplateData(rec)
	assert.Equal(t, "Unnamed supplier", data.CompanyName)
	assert.Empty(t, data.Decisions)
	assert.Empty(t, data.Sections)
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"companyName":     "Company name",
		"pending_review":  "Pending review",
		"vatRegistered":   "Vat registered",
		"approved":        "Approved",
		"prescreeningAck": "Prescreening ack",
	}
	for in, want := range tests {
		assert.Equal(t, want, humanize(in), in)
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Supplier-onboarding---Acme-Ltd", sanitizeFilename("Supplier onboarding - Acme Ltd"))
	assert.Equal(t, "submission", sanitizeFilename("!!!"))
	assert.Len(t, sanitizeFilename(strings.Repeat("a", 100)), 60)
}

func TestPercentEncodeForDataURL(t *testing.T) {
	assert.Equal(t, "a%20b%3Cp%3E", percentEncodeForDataURL("a b<p>"))
	assert.Equal(t, "%C3%A9", percentEncodeForDataURL("é"))
}

func TestExport_MissingChrome(t *testing.T) {
	e := NewPDFExporter("/nonexistent/chrome-binary")
	_, err := e.Export(context.Background(), "<p>x</p>", "x")
	assert.True(t, errors.Is(err, ErrPDFDependencyMissing))
}

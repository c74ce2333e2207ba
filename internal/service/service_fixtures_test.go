package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"supplier-onboarding-be/internal/repository/keyvalue"
	"supplier-onboarding-be/internal/repository/memory"
	"supplier-onboarding-be/pkg/events"
	"supplier-onboarding-be/pkg/intake"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var testNow = time.Date(2026, 10, 5, 14, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fakePublisher struct {
	mu     sync.Mutex
	events []events.PipelineEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event events.PipelineEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *fakePublisher) published() []events.PipelineEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.PipelineEvent(nil), p.events...)
}

func newSubmissionStore(t *testing.T) *keyvalue.SubmissionRepository {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return keyvalue.NewSubmissionRepositoryWithClient(client)
}

func newSessionStore() *memory.IntakeSessionRepository {
	return memory.NewIntakeSessionRepository(time.Hour)
}

const pdfBase64 = "aGVsbG8="

// validAnswers satisfies every section for a limited company. engaged
// decides whether the PBP stage applies after submission.
func validAnswers(engaged string) map[string]any {
	return map[string]any{
		intake.FieldSupplierConnection:       intake.No,
		intake.FieldLetterheadAvailable:      intake.Yes,
		intake.FieldJustification:            "Specialist equipment servicing for theatres",
		intake.FieldUsageFrequency:           intake.UsageRegular,
		intake.FieldServiceCategory:          intake.CategoryNonClinical,
		intake.FieldProcurementEngaged:       engaged,
		intake.FieldQuestionnaireCompleted:   intake.Yes,
		intake.FieldPreScreeningAcknowledged: true,

		intake.FieldCompaniesHouseRegistered: intake.Yes,
		intake.FieldSupplierType:             intake.SupplierLimitedCompany,

		intake.FieldCompanyName:       "Acme Servicing Ltd",
		intake.FieldCRN:               "12345678",
		intake.FieldRegisteredAddress: "1 High Street, Leeds",
		intake.FieldPostcode:          "LS1 1AA",
		intake.FieldContactName:       "Jo Bloggs",
		intake.FieldContactEmail:      "jo@acme.co.uk",
		intake.FieldContactPhone:      "0113 000 0000",

		intake.FieldServiceDescription:   "Quarterly servicing of theatre equipment",
		intake.FieldStartDate:            "2026-11-01",
		intake.FieldEstimatedAnnualValue: 12000.0,
		intake.FieldCostCentre:           "CC-100",

		intake.FieldVATRegistered: intake.No,
		intake.FieldAccountName:   "Acme Servicing Ltd",
		intake.FieldSortCode:      "12-34-56",
		intake.FieldAccountNumber: "12345678",

		intake.FieldPublicLiability:       intake.Yes,
		intake.FieldPublicLiabilityCover:  5000000.0,
		intake.FieldProfessionalIndemnity: intake.No,
		intake.FieldDataProtection:        true,

		intake.FieldSubmitterName:        "Sam Requester",
		intake.FieldSubmitterEmail:       "sam@trust.nhs.uk",
		intake.FieldFinalAcknowledgement: true,
	}
}

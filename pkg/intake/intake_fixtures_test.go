package intake

import "time"

var fixedTime = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func testDocument(name string) Document {
	return Document{
		Name:       name,
		SizeBytes:  5,
		MimeType:   "application/pdf",
		Content:    "aGVsbG8=",
		UploadedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

// completeAnswers satisfies every section for a VAT-less limited company
// that has already engaged procurement.
func completeAnswers() Answers {
	return Answers{
		FieldSupplierConnection:       No,
		FieldLetterheadAvailable:      Yes,
		FieldJustification:            "Specialist equipment servicing for theatres",
		FieldUsageFrequency:           UsageRegular,
		FieldServiceCategory:          CategoryNonClinical,
		FieldProcurementEngaged:       Yes,
		FieldPreScreeningAcknowledged: true,

		FieldCompaniesHouseRegistered: Yes,
		FieldSupplierType:             SupplierLimitedCompany,

		FieldCompanyName:       "Acme Servicing Ltd",
		FieldCRN:               "12345678",
		FieldRegisteredAddress: "1 High Street, Leeds",
		FieldPostcode:          "LS1 1AA",
		FieldContactName:       "Jo Bloggs",
		FieldContactEmail:      "jo@acme.co.uk",
		FieldContactPhone:      "0113 000 0000",

		FieldServiceDescription:   "Quarterly servicing of theatre equipment",
		FieldStartDate:            "2026-11-01",
		FieldEstimatedAnnualValue: 12000.0,
		FieldCostCentre:           "CC-100",

		FieldVATRegistered: No,
		FieldAccountName:   "Acme Servicing Ltd",
		FieldSortCode:      "12-34-56",
		FieldAccountNumber: "12345678",

		FieldPublicLiability:       Yes,
		FieldPublicLiabilityCover:  5000000.0,
		FieldProfessionalIndemnity: No,
		FieldDataProtection:        true,

		FieldSubmitterName:        "Sam Requester",
		FieldSubmitterEmail:       "sam@trust.nhs.uk",
		FieldFinalAcknowledgement: true,
	}
}

func completeUploads() Uploads {
	return Uploads{
		SlotLetterhead:          testDocument("letterhead.pdf"),
		SlotProcurementApproval: testDocument("approval.pdf"),
	}
}

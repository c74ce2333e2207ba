package intake

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	crnPattern           = regexp.MustCompile(`^[A-Za-z0-9]{8}$`)
	sortCodePattern      = regexp.MustCompile(`^[0-9]{6}$`)
	accountNumberPattern = regexp.MustCompile(`^[0-9]{8}$`)

	fieldValidator = validator.New()
)

// missing collects requirement labels in check order.
type missing []string

func (m *missing) need(ok bool, label string) {
	if !ok {
		*m = append(*m, label)
	}
}

func (m *missing) add(labels ...string) {
	*m = append(*m, labels...)
}

// MissingFields returns the unmet requirements of a section in a fixed order.
// It never fails: absent or malformed answers are reported as missing.
func MissingFields(section SectionID, a Answers, u Uploads) []string {
	var m missing
	switch section {
	case SectionPreScreening:
		preScreeningMissing(&m, a, u)
	case SectionSupplierType:
		supplierTypeMissing(&m, a, u)
	case SectionCompanyDetails:
		companyDetailsMissing(&m, a)
	case SectionServiceDetails:
		serviceDetailsMissing(&m, a)
	case SectionFinancial:
		financialMissing(&m, a)
	case SectionInsurance:
		insuranceMissing(&m, a)
	case SectionReviewSubmit:
		reviewSubmitMissing(&m, a, u)
	}
	if m == nil {
		return []string{}
	}
	return m
}

func preScreeningMissing(m *missing, a Answers, u Uploads) {
	m.need(a.OneOf(FieldSupplierConnection, Yes, No), "Supplier connection declaration")
	if a.Is(FieldSupplierConnection, Yes) {
		m.need(a.String(FieldConnectionDetails) != "", "Connection details")
	}
	m.need(a.OneOf(FieldLetterheadAvailable, Yes, No), "Letterhead availability")
	m.add(MissingUploads(a, u, SlotLetterhead)...)
	m.need(justificationValid(a), "Justification (minimum 10 characters)")
	m.need(a.OneOf(FieldUsageFrequency, usageFrequencies...), "Usage frequency")
	m.need(a.OneOf(FieldServiceCategory, serviceCategories...), "Service category")
	m.need(a.OneOf(FieldProcurementEngaged, Yes, No), "Procurement engagement")
	switch a.String(FieldProcurementEngaged) {
	case Yes:
		m.add(MissingUploads(a, u, SlotProcurementApproval)...)
	case No:
		m.need(a.Bool(FieldQuestionnaireCompleted), "Supplier justification questionnaire")
	}
	m.need(a.Bool(FieldPreScreeningAcknowledged), "Pre-screening acknowledgement")
}

func supplierTypeMissing(m *missing, a Answers, u Uploads) {
	m.need(a.OneOf(FieldCompaniesHouseRegistered, Yes, No), "Companies House registration")
	m.need(a.OneOf(FieldSupplierType, supplierTypes...), "Supplier type")
	if !isSoleTrader(a) {
		return
	}
	m.add(MissingUploads(a, u, SlotCESTForm)...)
	m.need(a.OneOf(FieldIDDocumentType, idDocumentTypes...), "Identity document type")
	m.add(MissingUploads(a, u, identitySlots...)...)
}

func companyDetailsMissing(m *missing, a Answers) {
	m.need(a.String(FieldCompanyName) != "", "Company name")
	if crnRequired(a) {
		m.need(crnPattern.MatchString(a.String(FieldCRN)), "Company Registration Number")
	}
	m.need(a.String(FieldRegisteredAddress) != "", "Registered address")
	m.need(a.String(FieldPostcode) != "", "Postcode")
	m.need(a.String(FieldContactName) != "", "Contact name")
	m.need(validEmail(a.String(FieldContactEmail)), "Contact email")
	m.need(a.String(FieldContactPhone) != "", "Contact phone")
}

func serviceDetailsMissing(m *missing, a Answers) {
	m.need(a.String(FieldServiceDescription) != "", "Service description")
	m.need(validDate(a.String(FieldStartDate)), "Expected start date")
	value, ok := a.Number(FieldEstimatedAnnualValue)
	m.need(ok && value > 0, "Estimated annual value")
	m.need(a.String(FieldCostCentre) != "", "Cost centre")
}

func financialMissing(m *missing, a Answers) {
	m.need(a.OneOf(FieldVATRegistered, Yes, No), "VAT registration")
	if a.Is(FieldVATRegistered, Yes) {
		m.need(a.String(FieldVATNumber) != "", "VAT number")
	}
	m.need(a.String(FieldAccountName) != "", "Account name")
	m.need(sortCodePattern.MatchString(digitsOnly(a.String(FieldSortCode))), "Sort code")
	m.need(accountNumberPattern.MatchString(digitsOnly(a.String(FieldAccountNumber))), "Account number")
}

func insuranceMissing(m *missing, a Answers) {
	m.need(a.OneOf(FieldPublicLiability, Yes, No), "Public liability insurance")
	if a.Is(FieldPublicLiability, Yes) {
		cover, ok := a.Number(FieldPublicLiabilityCover)
		m.need(ok && cover > 0, "Public liability cover")
	}
	if a.Is(FieldServiceCategory, CategoryClinical) {
		m.need(a.Is(FieldProfessionalIndemnity, Yes), "Professional indemnity insurance (required for clinical services)")
	} else {
		m.need(a.OneOf(FieldProfessionalIndemnity, Yes, No), "Professional indemnity insurance")
	}
	if a.Is(FieldProfessionalIndemnity, Yes) {
		cover, ok := a.Number(FieldProfessionalIndemnityCov)
		m.need(ok && cover > 0, "Professional indemnity cover")
	}
	m.need(a.Bool(FieldDataProtection), "Data protection declaration")
}

func reviewSubmitMissing(m *missing, a Answers, u Uploads) {
	m.add(MissingUploads(a, u, append([]Slot{SlotLetterhead, SlotCESTForm}, identitySlots...)...)...)
	if isSoleTrader(a) && !a.OneOf(FieldIDDocumentType, idDocumentTypes...) {
		m.add("Identity document")
	}
	m.need(a.String(FieldSubmitterName) != "", "Submitter name")
	m.need(validEmail(a.String(FieldSubmitterEmail)), "Submitter email")
	m.need(a.Bool(FieldFinalAcknowledgement), "Final declaration")
}

var identitySlots = []Slot{SlotPassportPhoto, SlotLicenceFront, SlotLicenceBack}

func crnRequired(a Answers) bool {
	return a.Is(FieldCompaniesHouseRegistered, Yes) && a.Is(FieldSupplierType, SupplierLimitedCompany)
}

func validEmail(email string) bool {
	return email != "" && fieldValidator.Var(email, "email") == nil
}

func validDate(value string) bool {
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}

func digitsOnly(value string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(value)
}

package intake

// Answer keys used by the form. Values are whatever the client sends; the
// readers in answers.go decide what counts as an answer.
const (
	FieldSupplierConnection       = "supplierConnection"
	FieldConnectionDetails        = "connectionDetails"
	FieldLetterheadAvailable      = "letterheadAvailable"
	FieldJustification            = "justification"
	FieldUsageFrequency           = "usageFrequency"
	FieldServiceCategory          = "serviceCategory"
	FieldProcurementEngaged       = "procurementEngaged"
	FieldQuestionnaireCompleted   = "questionnaireCompleted"
	FieldPreScreeningAcknowledged = "prescreeningAcknowledged"

	FieldCompaniesHouseRegistered = "companiesHouseRegistered"
	FieldSupplierType             = "supplierType"
	FieldIDDocumentType           = "idDocumentType"

	FieldCompanyName       = "companyName"
	FieldCRN               = "crn"
	FieldRegisteredAddress = "registeredAddress"
	FieldPostcode          = "postcode"
	FieldContactName       = "contactName"
	FieldContactEmail      = "contactEmail"
	FieldContactPhone      = "contactPhone"

	FieldServiceDescription   = "serviceDescription"
	FieldStartDate            = "startDate"
	FieldEstimatedAnnualValue = "estimatedAnnualValue"
	FieldCostCentre           = "costCentre"

	FieldVATRegistered = "vatRegistered"
	FieldVATNumber     = "vatNumber"
	FieldAccountName   = "accountName"
	FieldSortCode      = "sortCode"
	FieldAccountNumber = "accountNumber"

	FieldPublicLiability          = "publicLiability"
	FieldPublicLiabilityCover     = "publicLiabilityCover"
	FieldProfessionalIndemnity    = "professionalIndemnity"
	FieldProfessionalIndemnityCov = "professionalIndemnityCover"
	FieldDataProtection           = "dataProtectionDeclaration"

	FieldSubmitterName        = "submitterName"
	FieldSubmitterEmail       = "submitterEmail"
	FieldFinalAcknowledgement = "finalAcknowledgement"
)

const (
	Yes = "yes"
	No  = "no"

	UsageOneOff     = "one_off"
	UsageOccasional = "occasional"
	UsageRegular    = "regular"

	CategoryClinical    = "clinical"
	CategoryNonClinical = "non_clinical"

	SupplierLimitedCompany = "limited_company"
	SupplierSoleTrader     = "sole_trader"
	SupplierPartnership    = "partnership"
	SupplierCharity        = "charity"
	SupplierPublicSector   = "public_sector"

	IDPassport       = "passport"
	IDDrivingLicence = "driving_licence"
)

var (
	usageFrequencies  = []string{UsageOneOff, UsageOccasional, UsageRegular}
	serviceCategories = []string{CategoryClinical, CategoryNonClinical}
	supplierTypes     = []string{SupplierLimitedCompany, SupplierSoleTrader, SupplierPartnership, SupplierCharity, SupplierPublicSector}
	idDocumentTypes   = []string{IDPassport, IDDrivingLicence}
)

var sectionFields = map[SectionID][]string{
	SectionPreScreening: {
		FieldSupplierConnection, FieldConnectionDetails, FieldLetterheadAvailable, FieldJustification,
		FieldUsageFrequency, FieldServiceCategory, FieldProcurementEngaged, FieldQuestionnaireCompleted,
		FieldPreScreeningAcknowledged,
	},
	SectionSupplierType: {FieldCompaniesHouseRegistered, FieldSupplierType, FieldIDDocumentType},
	SectionCompanyDetails: {
		FieldCompanyName, FieldCRN, FieldRegisteredAddress, FieldPostcode,
		FieldContactName, FieldContactEmail, FieldContactPhone,
	},
	SectionServiceDetails: {FieldServiceDescription, FieldStartDate, FieldEstimatedAnnualValue, FieldCostCentre},
	SectionFinancial:      {FieldVATRegistered, FieldVATNumber, FieldAccountName, FieldSortCode, FieldAccountNumber},
	SectionInsurance: {
		FieldPublicLiability, FieldPublicLiabilityCover, FieldProfessionalIndemnity,
		FieldProfessionalIndemnityCov, FieldDataProtection,
	},
	SectionReviewSubmit: {FieldSubmitterName, FieldSubmitterEmail, FieldFinalAcknowledgement},
}

// SectionFields lists the answer keys a section collects, in form order.
func SectionFields(section SectionID) []string {
	return append([]string(nil), sectionFields[section]...)
}

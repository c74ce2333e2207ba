// Package intake holds the requester-side rules of the onboarding form: which
// sections may be visited, which pre-screening questions are unlocked and what
// is still missing before a section counts as complete.
package intake

import "fmt"

// SectionID identifies one of the seven top-level form sections.
type SectionID int

const (
	SectionPreScreening SectionID = iota + 1
	SectionSupplierType
	SectionCompanyDetails
	SectionServiceDetails
	SectionFinancial
	SectionInsurance
	SectionReviewSubmit
)

// SectionCount is the number of sections in the form.
const SectionCount = 7

var sectionTitles = map[SectionID]string{
	SectionPreScreening:   "Pre-Screening",
	SectionSupplierType:   "Supplier Type",
	SectionCompanyDetails: "Company Details",
	SectionServiceDetails: "Service Details",
	SectionFinancial:      "Financial Information",
	SectionInsurance:      "Insurance & Compliance",
	SectionReviewSubmit:   "Review & Submit",
}

func (s SectionID) Valid() bool {
	return s >= SectionPreScreening && s <= SectionReviewSubmit
}

func (s SectionID) Title() string {
	if title, ok := sectionTitles[s]; ok {
		return title
	}
	return fmt.Sprintf("Section %d", int(s))
}

// AllSections returns the sections in form order.
func AllSections() []SectionID {
	sections := make([]SectionID, 0, SectionCount)
	for s := SectionPreScreening; s <= SectionReviewSubmit; s++ {
		sections = append(sections, s)
	}
	return sections
}

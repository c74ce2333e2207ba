package intake

// Requirement is a document slot that must be uploaded given the current answers.
type Requirement struct {
	Slot  Slot   `json:"slot"`
	Label string `json:"label"`
}

// RequiredUploads is the single upload policy shared by the disclosure chain,
// the section validator and the final pre-submit check. The order is fixed.
func RequiredUploads(a Answers) []Requirement {
	required := []Requirement{requirement(SlotLetterhead)}
	if a.Is(FieldProcurementEngaged, Yes) {
		required = append(required, requirement(SlotProcurementApproval))
	}
	if isSoleTrader(a) {
		required = append(required, requirement(SlotCESTForm))
		switch a.String(FieldIDDocumentType) {
		case IDPassport:
			required = append(required, requirement(SlotPassportPhoto))
		case IDDrivingLicence:
			required = append(required, requirement(SlotLicenceFront), requirement(SlotLicenceBack))
		}
	}
	return required
}

// Requires reports whether slot is currently required.
func Requires(a Answers, slot Slot) bool {
	for _, r := range RequiredUploads(a) {
		if r.Slot == slot {
			return true
		}
	}
	return false
}

// MissingUploads returns the labels of required slots in only that are not uploaded.
func MissingUploads(a Answers, u Uploads, only ...Slot) []string {
	var out []string
	for _, r := range RequiredUploads(a) {
		if len(only) > 0 && !containsSlot(only, r.Slot) {
			continue
		}
		if !u.Has(r.Slot) {
			out = append(out, r.Label)
		}
	}
	return out
}

func requirement(slot Slot) Requirement {
	return Requirement{Slot: slot, Label: slot.Label()}
}

func isSoleTrader(a Answers) bool {
	return a.Is(FieldSupplierType, SupplierSoleTrader)
}

func containsSlot(slots []Slot, slot Slot) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

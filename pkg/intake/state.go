package intake

import "fmt"

// State is the requester's in-progress form: answers, uploads, navigation
// ledger and the section on screen. It is passed explicitly to every caller
// so sessions stay isolated from each other.
type State struct {
	Answers        Answers   `json:"answers"`
	Uploads        Uploads   `json:"uploads"`
	Ledger         Ledger    `json:"ledger"`
	CurrentSection SectionID `json:"currentSection"`
}

// NewState returns an empty form positioned on the first section.
func NewState() State {
	s := State{
		Answers:        Answers{},
		Uploads:        Uploads{},
		CurrentSection: SectionPreScreening,
	}
	s.Ledger.MarkVisited(SectionPreScreening)
	return s
}

// GoToSection moves to target when gating allows it. A denied move leaves the
// state untouched and returns false.
func (s *State) GoToSection(target SectionID) bool {
	if !CanNavigateTo(target, s.Ledger, s.CurrentSection) {
		return false
	}
	s.CurrentSection = target
	s.Ledger.MarkVisited(target)
	return true
}

// MarkSectionComplete records progress past section. It does not re-validate.
func (s *State) MarkSectionComplete(section SectionID) {
	if !section.Valid() {
		return
	}
	s.Ledger.MarkCompleted(section)
}

// Next is a section's submit action: the section must have nothing missing,
// then it is marked complete and the following section is opened.
func (s *State) Next(section SectionID) error {
	if !section.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownSection, int(section))
	}
	if missing := s.Missing(section); len(missing) > 0 {
		return &ValidationError{Section: section, Missing: missing}
	}
	s.MarkSectionComplete(section)
	if section < SectionReviewSubmit {
		s.GoToSection(section + 1)
	}
	return nil
}

// SetAnswers merges patch into the answers; nil values clear keys.
func (s *State) SetAnswers(patch map[string]any) {
	if s.Answers == nil {
		s.Answers = Answers{}
	}
	s.Answers.Apply(patch)
}

// Upload stores doc in slot, replacing any previous document.
func (s *State) Upload(slot Slot, doc Document) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}
	if s.Uploads == nil {
		s.Uploads = Uploads{}
	}
	s.Uploads[slot] = doc
	return nil
}

func (s *State) RemoveUpload(slot Slot) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}
	delete(s.Uploads, slot)
	return nil
}

// Reset discards everything, ledger included.
func (s *State) Reset() {
	*s = NewState()
}

func (s *State) Missing(section SectionID) []string {
	return MissingFields(section, s.Answers, s.Uploads)
}

func (s *State) Overview() []SectionOverview {
	return Overview(s.CurrentSection, s.Ledger, s.Answers, s.Uploads)
}

func (s *State) PreScreening() PreScreeningState {
	return PreScreeningLocks(s.Answers, s.Uploads)
}

// ReadyToSubmit checks the final section and that every earlier section was
// completed through its Next action.
func (s *State) ReadyToSubmit() error {
	var missing []string
	for section := SectionPreScreening; section < SectionReviewSubmit; section++ {
		if !s.Ledger.IsCompleted(section) {
			missing = append(missing, fmt.Sprintf("%s section not completed", section.Title()))
		}
	}
	missing = append(missing, s.Missing(SectionReviewSubmit)...)
	if len(missing) > 0 {
		return &ValidationError{Section: SectionReviewSubmit, Missing: missing}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{
		Answers:        s.Answers.Clone(),
		Uploads:        s.Uploads.Clone(),
		Ledger:         s.Ledger.Clone(),
		CurrentSection: s.CurrentSection,
	}
}

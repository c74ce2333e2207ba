package intake

import "sort"

// Ledger records navigation progress. Both sets only grow until a reset.
type Ledger struct {
	Completed []SectionID `json:"completedSections"`
	Visited   []SectionID `json:"visitedSections"`
}

func (l Ledger) IsCompleted(s SectionID) bool {
	return containsSection(l.Completed, s)
}

func (l Ledger) IsVisited(s SectionID) bool {
	return containsSection(l.Visited, s)
}

// MarkCompleted keeps Completed sorted; it is a set.
func (l *Ledger) MarkCompleted(s SectionID) {
	if l.IsCompleted(s) {
		return
	}
	l.Completed = append(l.Completed, s)
	sort.Slice(l.Completed, func(i, j int) bool { return l.Completed[i] < l.Completed[j] })
}

// MarkVisited keeps Visited in first-visit order.
func (l *Ledger) MarkVisited(s SectionID) {
	if l.IsVisited(s) {
		return
	}
	l.Visited = append(l.Visited, s)
}

func (l Ledger) Clone() Ledger {
	return Ledger{
		Completed: append([]SectionID(nil), l.Completed...),
		Visited:   append([]SectionID(nil), l.Visited...),
	}
}

// CanNavigateTo allows any backward move and a forward move only when every
// earlier section has been completed.
func CanNavigateTo(target SectionID, ledger Ledger, current SectionID) bool {
	if !target.Valid() {
		return false
	}
	if target <= current {
		return true
	}
	for s := SectionPreScreening; s < target; s++ {
		if !ledger.IsCompleted(s) {
			return false
		}
	}
	return true
}

type SectionStatus string

const (
	StatusActive     SectionStatus = "active"
	StatusPending    SectionStatus = "pending"
	StatusComplete   SectionStatus = "complete"
	StatusIncomplete SectionStatus = "incomplete"
)

// SectionStatusOf derives the display status of s.
func SectionStatusOf(s, current SectionID, ledger Ledger, a Answers, u Uploads) SectionStatus {
	switch {
	case s == current:
		return StatusActive
	case !ledger.IsVisited(s):
		return StatusPending
	case len(MissingFields(s, a, u)) == 0:
		return StatusComplete
	default:
		return StatusIncomplete
	}
}

type SectionOverview struct {
	Section   SectionID     `json:"section"`
	Title     string        `json:"title"`
	Status    SectionStatus `json:"status"`
	Completed bool          `json:"completed"`
	CanVisit  bool          `json:"canVisit"`
	Missing   []string      `json:"missing"`
}

// Overview describes every section for progress display.
func Overview(current SectionID, ledger Ledger, a Answers, u Uploads) []SectionOverview {
	out := make([]SectionOverview, 0, SectionCount)
	for _, s := range AllSections() {
		out = append(out, SectionOverview{
			Section:   s,
			Title:     s.Title(),
			Status:    SectionStatusOf(s, current, ledger, a, u),
			Completed: ledger.IsCompleted(s),
			CanVisit:  CanNavigateTo(s, ledger, current),
			Missing:   MissingFields(s, a, u),
		})
	}
	return out
}

func containsSection(sections []SectionID, s SectionID) bool {
	for _, candidate := range sections {
		if candidate == s {
			return true
		}
	}
	return false
}

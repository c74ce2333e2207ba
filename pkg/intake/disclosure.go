package intake

import "unicode/utf8"

// Question numbers of the pre-screening chain.
const (
	QuestionSupplierConnection = iota + 1
	QuestionLetterhead
	QuestionJustification
	QuestionUsageFrequency
	QuestionServiceCategory
	QuestionProcurementEngaged
	QuestionAcknowledgement
)

// PreScreeningQuestions is the length of the chain.
const PreScreeningQuestions = 7

// MinJustificationLength is the shortest accepted justification, in characters.
const MinJustificationLength = 10

var questionKeys = map[int]string{
	QuestionSupplierConnection: FieldSupplierConnection,
	QuestionLetterhead:         FieldLetterheadAvailable,
	QuestionJustification:      FieldJustification,
	QuestionUsageFrequency:     FieldUsageFrequency,
	QuestionServiceCategory:    FieldServiceCategory,
	QuestionProcurementEngaged: FieldProcurementEngaged,
	QuestionAcknowledgement:    FieldPreScreeningAcknowledged,
}

type QuestionState struct {
	Question  int    `json:"question"`
	Field     string `json:"field"`
	Unlocked  bool   `json:"unlocked"`
	Satisfied bool   `json:"satisfied"`
}

type PreScreeningState struct {
	Questions []QuestionState `json:"questions"`
	// HardBlocked is set while the requester has declared no letterhead.
	HardBlocked bool `json:"hardBlocked"`
}

// QuestionSatisfied evaluates one question's own predicate. It does not look
// at earlier questions.
func QuestionSatisfied(question int, a Answers, u Uploads) bool {
	switch question {
	case QuestionSupplierConnection:
		if !a.OneOf(FieldSupplierConnection, Yes, No) {
			return false
		}
		return !a.Is(FieldSupplierConnection, Yes) || a.String(FieldConnectionDetails) != ""
	case QuestionLetterhead:
		return a.Is(FieldLetterheadAvailable, Yes) && u.Has(SlotLetterhead)
	case QuestionJustification:
		return justificationValid(a)
	case QuestionUsageFrequency:
		return a.OneOf(FieldUsageFrequency, usageFrequencies...)
	case QuestionServiceCategory:
		return a.OneOf(FieldServiceCategory, serviceCategories...)
	case QuestionProcurementEngaged:
		switch a.String(FieldProcurementEngaged) {
		case Yes:
			return !Requires(a, SlotProcurementApproval) || u.Has(SlotProcurementApproval)
		case No:
			return a.Bool(FieldQuestionnaireCompleted)
		}
		return false
	case QuestionAcknowledgement:
		return a.Bool(FieldPreScreeningAcknowledged)
	}
	return false
}

// QuestionUnlocked reports whether every earlier question is satisfied.
// Question 1 is always unlocked.
func QuestionUnlocked(question int, a Answers, u Uploads) bool {
	if question < QuestionSupplierConnection || question > PreScreeningQuestions {
		return false
	}
	for prior := QuestionSupplierConnection; prior < question; prior++ {
		if !QuestionSatisfied(prior, a, u) {
			return false
		}
	}
	return true
}

// PreScreeningLocks recomputes the whole chain from answers and uploads.
func PreScreeningLocks(a Answers, u Uploads) PreScreeningState {
	state := PreScreeningState{
		Questions:   make([]QuestionState, 0, PreScreeningQuestions),
		HardBlocked: a.Is(FieldLetterheadAvailable, No),
	}
	chainIntact := true
	for q := QuestionSupplierConnection; q <= PreScreeningQuestions; q++ {
		satisfied := QuestionSatisfied(q, a, u)
		state.Questions = append(state.Questions, QuestionState{
			Question:  q,
			Field:     questionKeys[q],
			Unlocked:  chainIntact,
			Satisfied: satisfied,
		})
		chainIntact = chainIntact && satisfied
	}
	return state
}

func justificationValid(a Answers) bool {
	return utf8.RuneCountInString(a.String(FieldJustification)) >= MinJustificationLength
}

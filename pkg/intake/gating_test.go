package intake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanNavigateTo(t *testing.T) {
	ledger := Ledger{Completed: []SectionID{1, 2}}

	tests := []struct {
		name    string
		target  SectionID
		current SectionID
		want    bool
	}{
		{"backward", 1, 3, true},
		{"same section", 3, 3, true},
		{"forward after completed predecessors", 3, 1, true},
		{"forward past incomplete section", 4, 3, false},
		{"below range", 0, 3, false},
		{"above range", 8, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanNavigateTo(tt.target, ledger, tt.current))
		})
	}
}

func TestCanNavigateTo_ForwardNeedsEveryEarlierSection(t *testing.T) {
	// Section 2 missing from an otherwise complete run.
	ledger := Ledger{Completed: []SectionID{1, 3, 4, 5, 6}}
	for target := SectionCompanyDetails; target <= SectionReviewSubmit; target++ {
		assert.False(t, CanNavigateTo(target, ledger, SectionPreScreening), "target %d", target)
	}
	assert.True(t, CanNavigateTo(SectionSupplierType, ledger, SectionPreScreening))
}

func TestState_GoToSectionDeniedIsNoOp(t *testing.T) {
	s := NewState()

	assert.False(t, s.GoToSection(SectionFinancial))
	assert.Equal(t, SectionPreScreening, s.CurrentSection)
	assert.Equal(t, []SectionID{SectionPreScreening}, s.Ledger.Visited)
}

func TestState_NextValidatesThenAdvances(t *testing.T) {
	s := NewState()

	err := s.Next(SectionPreScreening)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, SectionPreScreening, verr.Section)
	assert.NotEmpty(t, verr.Missing)
	assert.Empty(t, s.Ledger.Completed)

	s.SetAnswers(completeAnswers())
	for slot, doc := range completeUploads() {
		require.NoError(t, s.Upload(slot, doc))
	}

	require.NoError(t, s.Next(SectionPreScreening))
	assert.Equal(t, SectionSupplierType, s.CurrentSection)
	assert.Equal(t, []SectionID{SectionPreScreening}, s.Ledger.Completed)
	assert.Equal(t, []SectionID{SectionPreScreening, SectionSupplierType}, s.Ledger.Visited)
}

func TestState_StatusDrift(t *testing.T) {
	s := NewState()
	s.SetAnswers(completeAnswers())
	for slot, doc := range completeUploads() {
		require.NoError(t, s.Upload(slot, doc))
	}
	require.NoError(t, s.Next(SectionPreScreening))

	assert.Equal(t, StatusComplete, SectionStatusOf(SectionPreScreening, s.CurrentSection, s.Ledger, s.Answers, s.Uploads))
	assert.Equal(t, StatusActive, SectionStatusOf(SectionSupplierType, s.CurrentSection, s.Ledger, s.Answers, s.Uploads))
	assert.Equal(t, StatusPending, SectionStatusOf(SectionCompanyDetails, s.CurrentSection, s.Ledger, s.Answers, s.Uploads))

	// Completion stays even though the section no longer validates.
	require.NoError(t, s.RemoveUpload(SlotLetterhead))
	assert.True(t, s.Ledger.IsCompleted(SectionPreScreening))
	assert.Equal(t, StatusIncomplete, SectionStatusOf(SectionPreScreening, s.CurrentSection, s.Ledger, s.Answers, s.Uploads))
}

func TestState_WalkAllSections(t *testing.T) {
	s := NewState()
	s.SetAnswers(completeAnswers())
	for slot, doc := range completeUploads() {
		require.NoError(t, s.Upload(slot, doc))
	}

	for section := SectionPreScreening; section < SectionReviewSubmit; section++ {
		require.NoError(t, s.Next(section), "section %d", section)
	}
	assert.Equal(t, SectionReviewSubmit, s.CurrentSection)
	require.NoError(t, s.ReadyToSubmit())

	assert.True(t, s.GoToSection(SectionCompanyDetails))
	assert.True(t, s.GoToSection(SectionReviewSubmit))

	for _, o := range s.Overview() {
		assert.True(t, o.CanVisit, "section %d", o.Section)
	}
}

func TestState_ReadyToSubmitListsUncompletedSections(t *testing.T) {
	s := NewState()
	s.SetAnswers(completeAnswers())
	for slot, doc := range completeUploads() {
		require.NoError(t, s.Upload(slot, doc))
	}

	err := s.ReadyToSubmit()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Missing, 6)
	assert.Equal(t, "Pre-Screening section not completed", verr.Missing[0])
}

func TestState_UploadUnknownSlot(t *testing.T) {
	s := NewState()
	err := s.Upload(Slot("selfie"), testDocument("me.png"))
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestState_SetAnswersNilClears(t *testing.T) {
	s := NewState()
	s.SetAnswers(map[string]any{FieldCompanyName: "Acme", FieldCRN: "12345678"})
	s.SetAnswers(map[string]any{FieldCRN: nil})

	assert.Equal(t, Answers{FieldCompanyName: "Acme"}, s.Answers)
}

func TestState_Reset(t *testing.T) {
	s := NewState()
	s.SetAnswers(completeAnswers())
	for slot, doc := range completeUploads() {
		require.NoError(t, s.Upload(slot, doc))
	}
	require.NoError(t, s.Next(SectionPreScreening))

	s.Reset()

	assert.Equal(t, NewState(), s)
}

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument(" quote.pdf ", "Application/PDF", "data:application/pdf;base64,aGVsbG8=", fixedTime)
	require.NoError(t, err)
	assert.Equal(t, "quote.pdf", doc.Name)
	assert.Equal(t, int64(5), doc.SizeBytes)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.Equal(t, "aGVsbG8=", doc.Content)

	_, err = NewDocument("x.exe", "application/x-msdownload", "aGVsbG8=", fixedTime)
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = NewDocument("x.pdf", "application/pdf", "%%%", fixedTime)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestAnswersClone_IsDeep(t *testing.T) {
	a := Answers{"contacts": []any{map[string]any{"name": "A"}}}
	c := a.Clone()

	c["contacts"].([]any)[0].(map[string]any)["name"] = "B"

	assert.Equal(t, "A", a["contacts"].([]any)[0].(map[string]any)["name"])
}

package pipeline

import (
	"testing"

	"supplier-onboarding-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestCurrentStage(t *testing.T) {
	approvedPBP := review(entity.DecisionApproved)
	rejectedPBP := review(entity.DecisionRejected)
	infoPBP := review(entity.DecisionInfoRequired)
	standard := procurement(entity.DecisionApproved, entity.ClassificationStandard)
	ir35 := procurement(entity.DecisionApproved, entity.ClassificationOPWIR35)
	rejectedProc := procurement(entity.DecisionRejected, "")
	approvedOPW := opw(entity.DecisionApproved)
	rejectedOPW := opw(entity.DecisionRejected)
	uploaded := contract()
	approvedAP := ap(entity.DecisionApproved)
	infoAP := ap(entity.DecisionInfoRequired)

	tests := []struct {
		name   string
		engage string
		mutate func(*entity.Submission)
		want   Stage
	}{
		{"no engagement starts at PBP", "no", func(*entity.Submission) {}, StagePBPReview},
		{"engaged skips PBP", "yes", func(*entity.Submission) {}, StageProcurementReview},
		{"PBP approved", "no", func(r *entity.Submission) { r.PBPReview = &approvedPBP }, StageProcurementReview},
		{"PBP rejected", "no", func(r *entity.Submission) { r.PBPReview = &rejectedPBP }, StageTerminated},
		{"PBP info required", "no", func(r *entity.Submission) { r.PBPReview = &infoPBP }, StageAwaitingRequester},
		{"procurement rejected", "yes", func(r *entity.Submission) { r.ProcurementReview = &rejectedProc }, StageTerminated},
		{"standard goes to AP", "yes", func(r *entity.Submission) { r.ProcurementReview = &standard }, StageAPReview},
		{"IR35 goes to OPW", "yes", func(r *entity.Submission) { r.ProcurementReview = &ir35 }, StageOPWReview},
		{"OPW approved needs contract", "yes", func(r *entity.Submission) {
			r.ProcurementReview = &ir35
			r.OPWReview = &approvedOPW
		}, StageContractUpload},
		{"OPW rejected", "yes", func(r *entity.Submission) {
			r.ProcurementReview = &ir35
			r.OPWReview = &rejectedOPW
		}, StageTerminated},
		{"contract uploaded goes to AP", "yes", func(r *entity.Submission) {
			r.ProcurementReview = &ir35
			r.OPWReview = &approvedOPW
			r.ContractDrafter = &uploaded
		}, StageAPReview},
		{"AP approved verifies", "yes", func(r *entity.Submission) {
			r.ProcurementReview = &standard
			r.APReview = &approvedAP
		}, StageVerified},
		{"AP info required", "yes", func(r *entity.Submission) {
			r.ProcurementReview = &standard
			r.APReview = &infoAP
		}, StageAwaitingRequester},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecord(tt.engage)
			tt.mutate(rec)
			assert.Equal(t, tt.want, CurrentStage(rec))
		})
	}
}

func TestReachable_StandardClassificationNeverReachesOPW(t *testing.T) {
	standard := procurement(entity.DecisionApproved, entity.ClassificationStandard)
	approvedOPW := opw(entity.DecisionApproved)
	uploaded := contract()
	approvedAP := ap(entity.DecisionApproved)

	for mask := 0; mask < 8; mask++ {
		rec := newRecord("yes")
		rec.ProcurementReview = &standard
		if mask&1 != 0 {
			rec.OPWReview = &approvedOPW
		}
		if mask&2 != 0 {
			rec.ContractDrafter = &uploaded
		}
		if mask&4 != 0 {
			rec.APReview = &approvedAP
		}
		assert.False(t, Reachable(StageOPWReview, rec), "mask %d", mask)
		assert.False(t, Reachable(StageContractUpload, rec), "mask %d", mask)
	}
}

func TestReachable_IR35ApprovalOpensOPW(t *testing.T) {
	rec := newRecord("yes")
	ir35 := procurement(entity.DecisionInfoRequired, entity.ClassificationOPWIR35)
	rec.ProcurementReview = &ir35
	assert.False(t, Reachable(StageOPWReview, rec))

	ir35.Decision = entity.DecisionApproved
	assert.True(t, Reachable(StageOPWReview, rec))
	assert.False(t, Reachable(StageAPReview, rec))
}

func TestReachable_StandardApprovalScenario(t *testing.T) {
	rec := newRecord("yes")
	standard := procurement(entity.DecisionApproved, entity.ClassificationStandard)
	rec.ProcurementReview = &standard

	assert.True(t, Reachable(StageAPReview, rec))
	assert.False(t, Reachable(StageOPWReview, rec))
}

func TestReachable_OutcomeStatesAreNotActionable(t *testing.T) {
	rec := newRecord("no")
	rejected := review(entity.DecisionRejected)
	rec.PBPReview = &rejected

	assert.False(t, Reachable(StageTerminated, rec))
	for _, stage := range ReviewStages() {
		assert.False(t, Reachable(stage, rec), "stage %s", stage)
	}
}

func TestViews(t *testing.T) {
	rec := newRecord("yes")
	views := Views(rec)

	assert.Len(t, views, 5)
	assert.False(t, views[0].Applies, "PBP does not apply when procurement was engaged")
	assert.True(t, views[1].Reachable)
	assert.False(t, views[2].Applies)
	assert.True(t, views[4].Applies)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, entity.SubmissionStatusRejected, StatusFor(StageTerminated))
	assert.Equal(t, entity.SubmissionStatusInfoRequired, StatusFor(StageAwaitingRequester))
	assert.Equal(t, entity.SubmissionStatusApproved, StatusFor(StageVerified))
	assert.Equal(t, entity.SubmissionStatusPendingReview, StatusFor(StageOPWReview))
}

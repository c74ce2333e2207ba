package pipeline

import (
	"fmt"
	"time"

	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/pkg/intake"
)

// NewSubmission snapshots answers and uploads by value into a fresh record.
func NewSubmission(id, submittedBy string, answers intake.Answers, uploads intake.Uploads, now time.Time) *entity.Submission {
	now = now.UTC()
	rec := &entity.Submission{
		SubmissionId:   id,
		SchemaVersion:  entity.CurrentSchemaVersion,
		Version:        1,
		SubmissionDate: now,
		SubmittedBy:    submittedBy,
		Status:         entity.SubmissionStatusPendingReview,
		FormData:       answers.Clone(),
		UploadedFiles:  uploads.Clone(),
		UpdatedAt:      now,
	}
	rec.CurrentStage = string(CurrentStage(rec))
	return rec
}

// ApplyPBP returns a copy of rec carrying the PBP decision. rec is not modified.
func ApplyPBP(rec *entity.Submission, d entity.ReviewDecision, now time.Time) (*entity.Submission, error) {
	if err := guard(StagePBPReview, rec); err != nil {
		return nil, err
	}
	if err := ValidatePBP(d); err != nil {
		return nil, err
	}
	d.ReviewedAt = now.UTC()
	return advance(rec, now, func(next *entity.Submission) { next.PBPReview = &d }), nil
}

func ApplyProcurement(rec *entity.Submission, d entity.ProcurementDecision, now time.Time) (*entity.Submission, error) {
	if err := guard(StageProcurementReview, rec); err != nil {
		return nil, err
	}
	if err := ValidateProcurement(d); err != nil {
		return nil, err
	}
	if d.Decision != entity.DecisionApproved {
		d.Reference = ""
	}
	d.ReviewedAt = now.UTC()
	return advance(rec, now, func(next *entity.Submission) { next.ProcurementReview = &d }), nil
}

func ApplyOPW(rec *entity.Submission, d entity.OPWDecision, now time.Time) (*entity.Submission, error) {
	if err := guard(StageOPWReview, rec); err != nil {
		return nil, err
	}
	if err := ValidateOPW(d); err != nil {
		return nil, err
	}
	d.ReviewedAt = now.UTC()
	return advance(rec, now, func(next *entity.Submission) { next.OPWReview = &d }), nil
}

func ApplyContract(rec *entity.Submission, r entity.ContractRecord, now time.Time) (*entity.Submission, error) {
	if err := guard(StageContractUpload, rec); err != nil {
		return nil, err
	}
	if err := ValidateContract(r); err != nil {
		return nil, err
	}
	r.UploadedAt = now.UTC()
	return advance(rec, now, func(next *entity.Submission) { next.ContractDrafter = &r }), nil
}

func ApplyAP(rec *entity.Submission, d entity.APDecision, now time.Time) (*entity.Submission, error) {
	if err := guard(StageAPReview, rec); err != nil {
		return nil, err
	}
	if err := ValidateAP(d); err != nil {
		return nil, err
	}
	d.ReviewedAt = now.UTC()
	return advance(rec, now, func(next *entity.Submission) { next.APReview = &d }), nil
}

// guard rejects a second decision for the same stage and any out-of-order one.
func guard(stage Stage, rec *entity.Submission) error {
	if rec == nil {
		return fmt.Errorf("%w: no submission", ErrStageNotReachable)
	}
	if Decided(stage, rec) {
		return fmt.Errorf("%w: %s", ErrAlreadyDecided, stage.Label())
	}
	if !Reachable(stage, rec) {
		return fmt.Errorf("%w: %s (current stage is %s)", ErrStageNotReachable, stage.Label(), CurrentStage(rec).Label())
	}
	return nil
}

// advance copies rec, lets set add the new sub-object and recomputes the
// derived fields. Existing sub-objects are carried over untouched.
func advance(rec *entity.Submission, now time.Time, set func(next *entity.Submission)) *entity.Submission {
	next := *rec
	set(&next)
	stage := CurrentStage(&next)
	next.CurrentStage = string(stage)
	next.Status = StatusFor(stage)
	next.Version = rec.Version + 1
	next.UpdatedAt = now.UTC()
	return &next
}

// Package pipeline is the reviewer-side state machine. The current stage of a
// submission is never stored as the source of truth: it is inferred from
// which stage decisions already exist on the record.
package pipeline

import (
	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/pkg/intake"
)

type Stage string

const (
	StagePBPReview         Stage = "pbp_review"
	StageProcurementReview Stage = "procurement_review"
	StageOPWReview         Stage = "opw_review"
	StageContractUpload    Stage = "contract_upload"
	StageAPReview          Stage = "ap_review"

	StageAwaitingRequester Stage = "awaiting_requester"
	StageTerminated        Stage = "terminated"
	StageVerified          Stage = "verified"
)

var stageLabels = map[Stage]string{
	StagePBPReview:         "Procurement Business Partner review",
	StageProcurementReview: "Procurement review",
	StageOPWReview:         "Off-Payroll Working (IR35) review",
	StageContractUpload:    "Contract upload",
	StageAPReview:          "Accounts Payable control",
	StageAwaitingRequester: "Awaiting requester",
	StageTerminated:        "Rejected",
	StageVerified:          "Verified",
}

// ReviewStages lists the actionable stages in pipeline order.
func ReviewStages() []Stage {
	return []Stage{StagePBPReview, StageProcurementReview, StageOPWReview, StageContractUpload, StageAPReview}
}

func (s Stage) Label() string {
	if label, ok := stageLabels[s]; ok {
		return label
	}
	return string(s)
}

// Actionable reports whether a reviewer can act at s.
func (s Stage) Actionable() bool {
	switch s {
	case StagePBPReview, StageProcurementReview, StageOPWReview, StageContractUpload, StageAPReview:
		return true
	}
	return false
}

// RequiresPBP is true when the requester declared no prior procurement
// engagement; only those submissions go through the PBP stage.
func RequiresPBP(rec *entity.Submission) bool {
	return rec.FormData.Is(intake.FieldProcurementEngaged, intake.No)
}

// CurrentStage infers the stage from the decisions present on rec.
func CurrentStage(rec *entity.Submission) Stage {
	if RequiresPBP(rec) {
		if rec.PBPReview == nil {
			return StagePBPReview
		}
		if halt, ok := halted(rec.PBPReview.Decision); ok {
			return halt
		}
	}

	proc := rec.ProcurementReview
	if proc == nil {
		return StageProcurementReview
	}
	if halt, ok := halted(proc.Decision); ok {
		return halt
	}

	if proc.Classification == entity.ClassificationOPWIR35 {
		if rec.OPWReview == nil {
			return StageOPWReview
		}
		if halt, ok := halted(rec.OPWReview.Decision); ok {
			return halt
		}
		if rec.ContractDrafter == nil {
			return StageContractUpload
		}
	}

	if rec.APReview == nil {
		return StageAPReview
	}
	if halt, ok := halted(rec.APReview.Decision); ok {
		return halt
	}
	return StageVerified
}

// Reachable reports whether stage is the one a reviewer may act on now.
func Reachable(stage Stage, rec *entity.Submission) bool {
	return stage.Actionable() && CurrentStage(rec) == stage
}

// Decided reports whether stage already has its decision on rec.
func Decided(stage Stage, rec *entity.Submission) bool {
	switch stage {
	case StagePBPReview:
		return rec.PBPReview != nil
	case StageProcurementReview:
		return rec.ProcurementReview != nil
	case StageOPWReview:
		return rec.OPWReview != nil
	case StageContractUpload:
		return rec.ContractDrafter != nil
	case StageAPReview:
		return rec.APReview != nil
	}
	return false
}

// StatusFor maps a pipeline position to the record status.
func StatusFor(stage Stage) entity.SubmissionStatus {
	switch stage {
	case StageTerminated:
		return entity.SubmissionStatusRejected
	case StageAwaitingRequester:
		return entity.SubmissionStatusInfoRequired
	case StageVerified:
		return entity.SubmissionStatusApproved
	}
	return entity.SubmissionStatusPendingReview
}

// StageView is the per-stage summary a reviewer page renders from.
type StageView struct {
	Stage     Stage  `json:"stage"`
	Label     string `json:"label"`
	Applies   bool   `json:"applies"`
	Decided   bool   `json:"decided"`
	Reachable bool   `json:"reachable"`
}

// Views describes every review stage for rec.
func Views(rec *entity.Submission) []StageView {
	current := CurrentStage(rec)
	views := make([]StageView, 0, 5)
	for _, stage := range ReviewStages() {
		views = append(views, StageView{
			Stage:     stage,
			Label:     stage.Label(),
			Applies:   applies(stage, rec),
			Decided:   Decided(stage, rec),
			Reachable: stage == current,
		})
	}
	return views
}

func applies(stage Stage, rec *entity.Submission) bool {
	switch stage {
	case StagePBPReview:
		return RequiresPBP(rec)
	case StageOPWReview, StageContractUpload:
		return rec.ProcurementReview != nil && rec.ProcurementReview.Classification == entity.ClassificationOPWIR35
	}
	return true
}

// halted maps a non-approving decision to the state it parks the record in.
func halted(d entity.Decision) (Stage, bool) {
	switch d {
	case entity.DecisionApproved:
		return "", false
	case entity.DecisionRejected:
		return StageTerminated, true
	default:
		return StageAwaitingRequester, true
	}
}

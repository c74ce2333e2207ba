// FILE: internal/service/review_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"supplier-onboarding-be/internal/dto"
	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/internal/pkg/logger"
	"supplier-onboarding-be/internal/repository/contract"
	"supplier-onboarding-be/pkg/events"
	"supplier-onboarding-be/pkg/intake"
	"supplier-onboarding-be/pkg/pipeline"
)

type IReviewService interface {
	List(ctx context.Context, req *dto.ListSubmissionsRequest) (*dto.ListSubmissionsResponse, error)
	Show(ctx context.Context, submissionId string) (*dto.SubmissionDetailResponse, error)
	DecidePBP(ctx context.Context, req *dto.ReviewDecisionRequest) (*dto.DecisionResponse, error)
	DecideProcurement(ctx context.Context, req *dto.ProcurementDecisionRequest) (*dto.DecisionResponse, error)
	DecideOPW(ctx context.Context, req *dto.OPWDecisionRequest) (*dto.DecisionResponse, error)
	UploadContract(ctx context.Context, req *dto.ContractUploadRequest) (*dto.DecisionResponse, error)
	DecideAP(ctx context.Context, req *dto.APDecisionRequest) (*dto.DecisionResponse, error)
	Document(ctx context.Context, submissionId string, slot intake.Slot) (*intake.Document, error)
	Audit(ctx context.Context, req *dto.AuditRequest) (*dto.AuditResponse, error)
}

const defaultPageSize = 20

type reviewService struct {
	submissions      contract.SubmissionRepository
	publisherService IPublisherService
	logger           logger.ILogger
	audit            logger.ILogger
	auditReader      logger.ILogReader
	now              func() time.Time
}

// NewReviewService wires the reviewer side. audit receives one entry per
// accepted or refused decision and auditReader reads them back.
func NewReviewService(
	submissions contract.SubmissionRepository,
	publisherService IPublisherService,
	log logger.ILogger,
	audit logger.ILogger,
	auditReader logger.ILogReader,
) IReviewService {
	return &reviewService{
		submissions:      submissions,
		publisherService: publisherService,
		logger:           log,
		audit:            audit,
		auditReader:      auditReader,
		now:              time.Now,
	}
}

func (s *reviewService) List(ctx context.Context, req *dto.ListSubmissionsRequest) (*dto.ListSubmissionsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size < 1 {
		size = defaultPageSize
	}

	items, total, err := s.submissions.ListSummaries(ctx, contract.SubmissionFilter{
		Status: entity.SubmissionStatus(req.Status),
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.SubmissionSummary{}
	}

	return &dto.ListSubmissionsResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

func (s *reviewService) Show(ctx context.Context, submissionId string) (*dto.SubmissionDetailResponse, error) {
	rec, err := s.submissions.FindByID(ctx, submissionId)
	if err != nil {
		return nil, err
	}

	stage := pipeline.CurrentStage(rec)
	docs := documentMetas(rec.UploadedFiles)
	if rec.ContractDrafter != nil {
		c := rec.ContractDrafter.Contract
		docs = append(docs, dto.DocumentMeta{
			Slot:       intake.SlotContract,
			Name:       c.Name,
			SizeBytes:  c.SizeBytes,
			MimeType:   c.MimeType,
			UploadedAt: c.UploadedAt,
		})
	}

	return &dto.SubmissionDetailResponse{
		Submission:      withoutContent(rec),
		CurrentStage:    stage,
		CurrentLabel:    stage.Label(),
		Stages:          pipeline.Views(rec),
		RequiresPBP:     pipeline.RequiresPBP(rec),
		DocumentSummary: docs,
	}, nil
}

func (s *reviewService) DecidePBP(ctx context.Context, req *dto.ReviewDecisionRequest) (*dto.DecisionResponse, error) {
	d := toReviewDecision(req)
	return s.decide(ctx, req.SubmissionId, pipeline.StagePBPReview, req.BaseVersion, d.SignerName, string(d.Decision),
		func(rec *entity.Submission, now time.Time) (*entity.Submission, error) {
			return pipeline.ApplyPBP(rec, d, now)
		})
}

func (s *reviewService) DecideProcurement(ctx context.Context, req *dto.ProcurementDecisionRequest) (*dto.DecisionResponse, error) {
	d := entity.ProcurementDecision{
		ReviewDecision: toReviewDecision(&req.ReviewDecisionRequest),
		Classification: entity.Classification(req.Classification),
		Reference:      req.Reference,
	}
	return s.decide(ctx, req.SubmissionId, pipeline.StageProcurementReview, req.BaseVersion, d.SignerName, string(d.Decision),
		func(rec *entity.Submission, now time.Time) (*entity.Submission, error) {
			return pipeline.ApplyProcurement(rec, d, now)
		})
}

func (s *reviewService) DecideOPW(ctx context.Context, req *dto.OPWDecisionRequest) (*dto.DecisionResponse, error) {
	d := entity.OPWDecision{
		ReviewDecision: toReviewDecision(&req.ReviewDecisionRequest),
		IR35Status:     entity.IR35Status(req.IR35Status),
		Rationale:      req.Rationale,
	}
	return s.decide(ctx, req.SubmissionId, pipeline.StageOPWReview, req.BaseVersion, d.SignerName, string(d.Decision),
		func(rec *entity.Submission, now time.Time) (*entity.Submission, error) {
			return pipeline.ApplyOPW(rec, d, now)
		})
}

func (s *reviewService) UploadContract(ctx context.Context, req *dto.ContractUploadRequest) (*dto.DecisionResponse, error) {
	r := entity.ContractRecord{
		UploadedBy: req.UploadedBy,
		Date:       req.Date,
	}
	if req.Contract != nil {
		doc, err := intake.NewDocument(req.Contract.Name, req.Contract.MimeType, req.Contract.Content, s.now())
		if err != nil {
			return nil, err
		}
		r.Contract = doc
	}
	return s.decide(ctx, req.SubmissionId, pipeline.StageContractUpload, req.BaseVersion, r.UploadedBy, "uploaded",
		func(rec *entity.Submission, now time.Time) (*entity.Submission, error) {
			return pipeline.ApplyContract(rec, r, now)
		})
}

func (s *reviewService) DecideAP(ctx context.Context, req *dto.APDecisionRequest) (*dto.DecisionResponse, error) {
	d := entity.APDecision{
		ReviewDecision:         toReviewDecision(&req.ReviewDecisionRequest),
		BankDetailsVerified:    req.BankDetailsVerified,
		CompanyDetailsVerified: req.CompanyDetailsVerified,
		VATVerified:            req.VATVerified,
		InsuranceVerified:      req.InsuranceVerified,
		SupplierNumber:         req.SupplierNumber,
	}
	return s.decide(ctx, req.SubmissionId, pipeline.StageAPReview, req.BaseVersion, d.SignerName, string(d.Decision),
		func(rec *entity.Submission, now time.Time) (*entity.Submission, error) {
			return pipeline.ApplyAP(rec, d, now)
		})
}

// decide is the read-modify-write every stage goes through: a fresh load,
// the optional client staleness check, the pure merge and a versioned save.
func (s *reviewService) decide(
	ctx context.Context,
	submissionId string,
	stage pipeline.Stage,
	baseVersion int64,
	actor string,
	decision string,
	apply func(rec *entity.Submission, now time.Time) (*entity.Submission, error),
) (*dto.DecisionResponse, error) {
	rec, err := s.submissions.FindByID(ctx, submissionId)
	if err != nil {
		return nil, err
	}
	if baseVersion != 0 && baseVersion != rec.Version {
		s.refused(submissionId, stage, actor, contract.ErrVersionConflict)
		return nil, fmt.Errorf("%w: loaded version %d, current version %d", contract.ErrVersionConflict, baseVersion, rec.Version)
	}

	now := s.now()
	next, err := apply(rec, now)
	if err != nil {
		s.refused(submissionId, stage, actor, err)
		return nil, err
	}

	if err := s.submissions.Save(ctx, next, rec.Version); err != nil {
		s.refused(submissionId, stage, actor, err)
		return nil, err
	}

	nextStage := pipeline.CurrentStage(next)
	s.audit.Info("ReviewService", "Stage decided", map[string]interface{}{
		"submissionId": submissionId,
		"stage":        string(stage),
		"decision":     decision,
		"actor":        actor,
		"nextStage":    string(nextStage),
		"status":       string(next.Status),
		"version":      next.Version,
	})

	event := events.PipelineEvent{
		Type:         events.TypeStageDecided,
		SubmissionId: next.SubmissionId,
		CompanyName:  next.FormData.String(intake.FieldCompanyName),
		SubmittedBy:  next.SubmittedBy,
		Stage:        string(stage),
		Decision:     decision,
		NextStage:    string(nextStage),
		Status:       string(next.Status),
		Version:      next.Version,
		OccurredAt:   now,
	}
	if err := s.publisherService.Publish(ctx, event); err != nil {
		s.logger.Warn("ReviewService", "Failed to publish stage event", map[string]interface{}{"error": err.Error(), "submissionId": submissionId})
	}

	return &dto.DecisionResponse{
		SubmissionId: next.SubmissionId,
		Status:       next.Status,
		CurrentStage: nextStage,
		Version:      next.Version,
	}, nil
}

func (s *reviewService) refused(submissionId string, stage pipeline.Stage, actor string, err error) {
	s.audit.Warn("ReviewService", "Stage decision refused", map[string]interface{}{
		"submissionId": submissionId,
		"stage":        string(stage),
		"actor":        actor,
		"reason":       err.Error(),
	})
}

// Document returns a stored upload, including the contract attached by the
// contract stage.
func (s *reviewService) Document(ctx context.Context, submissionId string, slot intake.Slot) (*intake.Document, error) {
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: %s", intake.ErrUnknownSlot, slot)
	}
	rec, err := s.submissions.FindByID(ctx, submissionId)
	if err != nil {
		return nil, err
	}

	if slot == intake.SlotContract {
		if rec.ContractDrafter == nil {
			return nil, contract.ErrDocumentNotFound
		}
		doc := rec.ContractDrafter.Contract
		return &doc, nil
	}
	doc, ok := rec.UploadedFiles[slot]
	if !ok {
		return nil, contract.ErrDocumentNotFound
	}
	return &doc, nil
}

func (s *reviewService) Audit(ctx context.Context, req *dto.AuditRequest) (*dto.AuditResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 100
	}
	entries, err := s.auditReader.GetLogs(logger.LogFilter{
		Level:        req.Level,
		SubmissionId: req.SubmissionId,
		Limit:        limit,
		Offset:       req.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.AuditResponse{Entries: entries}, nil
}

func toReviewDecision(req *dto.ReviewDecisionRequest) entity.ReviewDecision {
	return entity.ReviewDecision{
		Decision:   entity.Decision(req.Decision),
		Comments:   req.Comments,
		SignerName: req.SignerName,
		SignedDate: req.SignedDate,
	}
}

// withoutContent copies rec with every document body removed; previews are
// served one at a time by Document.
func withoutContent(rec *entity.Submission) *entity.Submission {
	out := *rec
	out.UploadedFiles = make(intake.Uploads, len(rec.UploadedFiles))
	for slot, doc := range rec.UploadedFiles {
		doc.Content = ""
		out.UploadedFiles[slot] = doc
	}
	if rec.ContractDrafter != nil {
		c := *rec.ContractDrafter
		c.Contract.Content = ""
		out.ContractDrafter = &c
	}
	return &out
}

// FILE: internal/service/intake_service.go
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"supplier-onboarding-be/internal/dto"
	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/internal/pkg/logger"
	"supplier-onboarding-be/internal/repository/contract"
	"supplier-onboarding-be/pkg/events"
	"supplier-onboarding-be/pkg/intake"
	"supplier-onboarding-be/pkg/pipeline"

	"github.com/google/uuid"
)

type IIntakeService interface {
	Create(ctx context.Context, role string) (*dto.IntakeOverviewResponse, error)
	Overview(ctx context.Context, sessionId uuid.UUID, role string) (*dto.IntakeOverviewResponse, error)
	PatchAnswers(ctx context.Context, req *dto.PatchAnswersRequest, role string) (*dto.IntakeOverviewResponse, error)
	Upload(ctx context.Context, req *dto.UploadDocumentRequest, role string) (*dto.IntakeOverviewResponse, error)
	RemoveUpload(ctx context.Context, sessionId uuid.UUID, slot intake.Slot, role string) (*dto.IntakeOverviewResponse, error)
	GoTo(ctx context.Context, req *dto.SectionRequest, role string) (*dto.NavigateResponse, error)
	Next(ctx context.Context, req *dto.SectionRequest, role string) (*dto.IntakeOverviewResponse, error)
	Reset(ctx context.Context, sessionId uuid.UUID, role string) (*dto.IntakeOverviewResponse, error)
	Submit(ctx context.Context, sessionId uuid.UUID) (*dto.SubmitIntakeResponse, error)
}

// Presentation roles accepted on the overview. They gate nothing.
var roles = map[string]bool{
	"requester":   true,
	"pbp":         true,
	"procurement": true,
	"opw":         true,
	"contract":    true,
	"ap":          true,
}

func normalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if roles[role] {
		return role
	}
	return "requester"
}

type intakeService struct {
	sessions         contract.IntakeSessionRepository
	submissions      contract.SubmissionRepository
	publisherService IPublisherService
	logger           logger.ILogger
	now              func() time.Time
}

func NewIntakeService(
	sessions contract.IntakeSessionRepository,
	submissions contract.SubmissionRepository,
	publisherService IPublisherService,
	log logger.ILogger,
) IIntakeService {
	return &intakeService{
		sessions:         sessions,
		submissions:      submissions,
		publisherService: publisherService,
		logger:           log,
		now:              time.Now,
	}
}

func (s *intakeService) Create(ctx context.Context, role string) (*dto.IntakeOverviewResponse, error) {
	now := s.now()
	session := &entity.IntakeSession{
		Id:        uuid.New(),
		State:     intake.NewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.overview(session, role), nil
}

func (s *intakeService) Overview(ctx context.Context, sessionId uuid.UUID, role string) (*dto.IntakeOverviewResponse, error) {
	session, err := s.sessions.FindByID(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return s.overview(session, role), nil
}

func (s *intakeService) PatchAnswers(ctx context.Context, req *dto.PatchAnswersRequest, role string) (*dto.IntakeOverviewResponse, error) {
	return s.mutate(ctx, req.SessionId, role, func(state *intake.State) error {
		state.SetAnswers(req.Answers)
		return nil
	})
}

func (s *intakeService) Upload(ctx context.Context, req *dto.UploadDocumentRequest, role string) (*dto.IntakeOverviewResponse, error) {
	if req.Slot == intake.SlotContract {
		return nil, fmt.Errorf("%w: %s is uploaded by the contract stage", intake.ErrUnknownSlot, req.Slot)
	}
	doc, err := intake.NewDocument(req.Name, req.MimeType, req.Content, s.now())
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.SessionId, role, func(state *intake.State) error {
		return state.Upload(req.Slot, doc)
	})
}

func (s *intakeService) RemoveUpload(ctx context.Context, sessionId uuid.UUID, slot intake.Slot, role string) (*dto.IntakeOverviewResponse, error) {
	return s.mutate(ctx, sessionId, role, func(state *intake.State) error {
		return state.RemoveUpload(slot)
	})
}

// GoTo never fails on a denied move; the response says whether it happened.
func (s *intakeService) GoTo(ctx context.Context, req *dto.SectionRequest, role string) (*dto.NavigateResponse, error) {
	target := intake.SectionID(req.Section)
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %d", intake.ErrUnknownSection, req.Section)
	}

	var navigated bool
	overview, err := s.mutate(ctx, req.SessionId, role, func(state *intake.State) error {
		navigated = state.GoToSection(target)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.NavigateResponse{Navigated: navigated, Overview: overview}, nil
}

func (s *intakeService) Next(ctx context.Context, req *dto.SectionRequest, role string) (*dto.IntakeOverviewResponse, error) {
	return s.mutate(ctx, req.SessionId, role, func(state *intake.State) error {
		return state.Next(intake.SectionID(req.Section))
	})
}

func (s *intakeService) Reset(ctx context.Context, sessionId uuid.UUID, role string) (*dto.IntakeOverviewResponse, error) {
	return s.mutate(ctx, sessionId, role, func(state *intake.State) error {
		state.Reset()
		return nil
	})
}

// Submit snapshots the session into a new submission record, then clears
// the session so the next request starts from an empty form.
func (s *intakeService) Submit(ctx context.Context, sessionId uuid.UUID) (*dto.SubmitIntakeResponse, error) {
	session, err := s.sessions.FindByID(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if err := session.State.ReadyToSubmit(); err != nil {
		return nil, err
	}

	answers := session.State.Answers
	submittedBy := answers.String(intake.FieldSubmitterName)
	if submittedBy == "" {
		submittedBy = answers.String(intake.FieldContactName)
	}

	now := s.now()
	rec := pipeline.NewSubmission(uuid.NewString(), submittedBy, answers, session.State.Uploads, now)
	if err := s.submissions.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("IntakeService", "Submission created", map[string]interface{}{
		"submissionId": rec.SubmissionId,
		"sessionId":    sessionId.String(),
		"currentStage": rec.CurrentStage,
	})

	event := events.PipelineEvent{
		Type:         events.TypeSubmissionCreated,
		SubmissionId: rec.SubmissionId,
		CompanyName:  rec.FormData.String(intake.FieldCompanyName),
		SubmittedBy:  rec.SubmittedBy,
		NextStage:    rec.CurrentStage,
		Status:       string(rec.Status),
		Version:      rec.Version,
		OccurredAt:   now,
	}
	if err := s.publisherService.Publish(ctx, event); err != nil {
		s.logger.Warn("IntakeService", "Failed to publish submission event", map[string]interface{}{"error": err.Error(), "submissionId": rec.SubmissionId})
	}

	session.State.Reset()
	session.UpdatedAt = now
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Warn("IntakeService", "Failed to reset intake session after submit", map[string]interface{}{"error": err.Error(), "sessionId": sessionId.String()})
	}

	return &dto.SubmitIntakeResponse{
		SubmissionId: rec.SubmissionId,
		Status:       string(rec.Status),
		CurrentStage: rec.CurrentStage,
	}, nil
}

// mutate loads the session, applies fn and saves only when fn succeeds.
func (s *intakeService) mutate(ctx context.Context, sessionId uuid.UUID, role string, fn func(state *intake.State) error) (*dto.IntakeOverviewResponse, error) {
	session, err := s.sessions.FindByID(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if err := fn(&session.State); err != nil {
		return nil, err
	}
	session.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.overview(session, role), nil
}

func (s *intakeService) overview(session *entity.IntakeSession, role string) *dto.IntakeOverviewResponse {
	state := &session.State
	return &dto.IntakeOverviewResponse{
		SessionId:           session.Id,
		Role:                normalizeRole(role),
		CurrentSection:      state.CurrentSection,
		CurrentSectionTitle: state.CurrentSection.Title(),
		Ledger: dto.LedgerResponse{
			Completed: nonNilSections(state.Ledger.Completed),
			Visited:   nonNilSections(state.Ledger.Visited),
		},
		Sections:        state.Overview(),
		PreScreening:    state.PreScreening(),
		RequiredUploads: intake.RequiredUploads(state.Answers),
		Answers:         state.Answers,
		Documents:       documentMetas(state.Uploads),
		ReadyToSubmit:   state.ReadyToSubmit() == nil,
		UpdatedAt:       session.UpdatedAt,
	}
}

func nonNilSections(in []intake.SectionID) []intake.SectionID {
	if in == nil {
		return []intake.SectionID{}
	}
	return in
}

// documentMetas lists uploads without their content, ordered by slot.
func documentMetas(uploads intake.Uploads) []dto.DocumentMeta {
	out := make([]dto.DocumentMeta, 0, len(uploads))
	for slot, doc := range uploads {
		out = append(out, dto.DocumentMeta{
			Slot:       slot,
			Name:       doc.Name,
			SizeBytes:  doc.SizeBytes,
			MimeType:   doc.MimeType,
			UploadedAt: doc.UploadedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

package service

import (
	"context"

	"supplier-onboarding-be/internal/pkg/logger"
	"supplier-onboarding-be/internal/repository/contract"
	"supplier-onboarding-be/pkg/export"
)

type IExportService interface {
	ExportPDF(ctx context.Context, submissionId string) (*export.Result, error)
	ExportHTML(ctx context.Context, submissionId string) (*export.Result, error)
}

// PDFPrinter prints an HTML page to PDF.
type PDFPrinter interface {
	Export(ctx context.Context, html, title string) (*export.Result, error)
}

type exportService struct {
	submissions contract.SubmissionRepository
	printer     PDFPrinter
	logger      logger.ILogger
}

func NewExportService(submissions contract.SubmissionRepository, printer PDFPrinter, log logger.ILogger) IExportService {
	return &exportService{
		submissions: submissions,
		printer:     printer,
		logger:      log,
	}
}

func (s *exportService) ExportHTML(ctx context.Context, submissionId string) (*export.Result, error) {
	rec, err := s.submissions.FindByID(ctx, submissionId)
	if err != nil {
		return nil, err
	}
	html, err := export.RenderSubmissionHTML(rec)
	if err != nil {
		return nil, err
	}
	return &export.Result{
		Data:     []byte(html),
		Filename: "submission-" + rec.SubmissionId + ".html",
		MimeType: "text/html; charset=utf-8",
	}, nil
}

func (s *exportService) ExportPDF(ctx context.Context, submissionId string) (*export.Result, error) {
	rec, err := s.submissions.FindByID(ctx, submissionId)
	if err != nil {
		return nil, err
	}
	data := export.BuildTemplateData(rec)
	html, err := export.RenderSubmissionHTML(rec)
	if err != nil {
		return nil, err
	}

	res, err := s.printer.Export(ctx, html, data.Title)
	if err != nil {
		s.logger.Error("ExportService", "PDF export failed", map[string]interface{}{"error": err, "submissionId": submissionId})
		return nil, err
	}
	return res, nil
}

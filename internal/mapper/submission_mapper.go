package mapper

import (
	"encoding/json"
	"errors"
	"fmt"

	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/internal/model"
	"supplier-onboarding-be/pkg/intake"

	"gorm.io/datatypes"
)

var (
	ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")
	ErrMissingSubmissionId      = errors.New("record has no submission id")
)

type SubmissionMapper struct{}

func NewSubmissionMapper() *SubmissionMapper {
	return &SubmissionMapper{}
}

// Encode serializes s as the stored JSON document.
func (m *SubmissionMapper) Encode(s *entity.Submission) ([]byte, error) {
	if s.SchemaVersion == 0 {
		s.SchemaVersion = entity.CurrentSchemaVersion
	}
	return json.Marshal(s)
}

// Decode parses a stored JSON document. Documents written before schema
// versioning existed are read as version 1.
func (m *SubmissionMapper) Decode(raw []byte) (*entity.Submission, error) {
	var s entity.Submission
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if err := m.normalize(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *SubmissionMapper) ToModel(s *entity.Submission) (*model.Submission, error) {
	if s == nil {
		return nil, nil
	}
	formData, err := json.Marshal(s.FormData)
	if err != nil {
		return nil, err
	}
	uploads, err := json.Marshal(s.UploadedFiles)
	if err != nil {
		return nil, err
	}

	out := &model.Submission{
		SubmissionId:   s.SubmissionId,
		SchemaVersion:  s.SchemaVersion,
		Version:        s.Version,
		SubmissionDate: s.SubmissionDate,
		SubmittedBy:    s.SubmittedBy,
		CompanyName:    s.FormData.String(intake.FieldCompanyName),
		Status:         string(s.Status),
		CurrentStage:   s.CurrentStage,
		FormData:       datatypes.JSON(formData),
		UploadedFiles:  datatypes.JSON(uploads),
		UpdatedAt:      s.UpdatedAt,
	}
	if out.SchemaVersion == 0 {
		out.SchemaVersion = entity.CurrentSchemaVersion
	}

	if out.PBPReview, err = encodeOptional(s.PBPReview); err != nil {
		return nil, err
	}
	if out.ProcurementReview, err = encodeOptional(s.ProcurementReview); err != nil {
		return nil, err
	}
	if out.OPWReview, err = encodeOptional(s.OPWReview); err != nil {
		return nil, err
	}
	if out.ContractDrafter, err = encodeOptional(s.ContractDrafter); err != nil {
		return nil, err
	}
	if out.APReview, err = encodeOptional(s.APReview); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *SubmissionMapper) ToEntity(row *model.Submission) (*entity.Submission, error) {
	if row == nil {
		return nil, nil
	}
	s := &entity.Submission{
		SubmissionId:   row.SubmissionId,
		SchemaVersion:  row.SchemaVersion,
		Version:        row.Version,
		SubmissionDate: row.SubmissionDate,
		SubmittedBy:    row.SubmittedBy,
		Status:         entity.SubmissionStatus(row.Status),
		CurrentStage:   row.CurrentStage,
		UpdatedAt:      row.UpdatedAt,
	}
	if err := json.Unmarshal(row.FormData, &s.FormData); err != nil {
		return nil, fmt.Errorf("formData: %w", err)
	}
	if err := json.Unmarshal(row.UploadedFiles, &s.UploadedFiles); err != nil {
		return nil, fmt.Errorf("uploadedFiles: %w", err)
	}

	var err error
	if s.PBPReview, err = decodeOptional[entity.ReviewDecision](row.PBPReview); err != nil {
		return nil, fmt.Errorf("pbpReview: %w", err)
	}
	if s.ProcurementReview, err = decodeOptional[entity.ProcurementDecision](row.ProcurementReview); err != nil {
		return nil, fmt.Errorf("procurementReview: %w", err)
	}
	if s.OPWReview, err = decodeOptional[entity.OPWDecision](row.OPWReview); err != nil {
		return nil, fmt.Errorf("opwReview: %w", err)
	}
	if s.ContractDrafter, err = decodeOptional[entity.ContractRecord](row.ContractDrafter); err != nil {
		return nil, fmt.Errorf("contractDrafter: %w", err)
	}
	if s.APReview, err = decodeOptional[entity.APDecision](row.APReview); err != nil {
		return nil, fmt.Errorf("apReview: %w", err)
	}

	if err := m.normalize(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *SubmissionMapper) ToSummary(row *model.Submission) entity.SubmissionSummary {
	return entity.SubmissionSummary{
		SubmissionId:   row.SubmissionId,
		SubmissionDate: row.SubmissionDate,
		SubmittedBy:    row.SubmittedBy,
		CompanyName:    row.CompanyName,
		Status:         entity.SubmissionStatus(row.Status),
		CurrentStage:   row.CurrentStage,
	}
}

func (m *SubmissionMapper) normalize(s *entity.Submission) error {
	if s.SubmissionId == "" {
		return ErrMissingSubmissionId
	}
	switch {
	case s.SchemaVersion == 0:
		s.SchemaVersion = 1
	case s.SchemaVersion > entity.CurrentSchemaVersion:
		return fmt.Errorf("%w: %d", ErrUnsupportedSchemaVersion, s.SchemaVersion)
	}
	if s.Version == 0 {
		s.Version = 1
	}
	if s.FormData == nil {
		s.FormData = intake.Answers{}
	}
	if s.UploadedFiles == nil {
		s.UploadedFiles = intake.Uploads{}
	}
	return nil
}

func encodeOptional[T any](v *T) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func decodeOptional[T any](raw datatypes.JSON) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

package implementation

import (
	"context"
	"errors"
	"fmt"

	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/internal/mapper"
	"supplier-onboarding-be/internal/model"
	"supplier-onboarding-be/internal/repository/contract"
	"supplier-onboarding-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SubmissionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubmissionMapper
}

func NewSubmissionRepository(db *gorm.DB) contract.SubmissionRepository {
	return &SubmissionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubmissionMapper(),
	}
}

func (r *SubmissionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SubmissionRepositoryImpl) Create(ctx context.Context, submission *entity.Submission) error {
	m, err := r.mapper.ToModel(submission)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *SubmissionRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Submission, error) {
	var m model.Submission
	query := r.applySpecifications(r.db.WithContext(ctx), specification.BySubmissionID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contract.ErrSubmissionNotFound
		}
		return nil, err
	}
	s, err := r.mapper.ToEntity(&m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrMalformedSubmission, err)
	}
	return s, nil
}

// Save updates the row only while it still carries baseVersion. Zero rows
// affected means either the row is gone or another stage got there first.
func (r *SubmissionRepositoryImpl) Save(ctx context.Context, submission *entity.Submission, baseVersion int64) error {
	m, err := r.mapper.ToModel(submission)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := r.applySpecifications(tx.Model(&model.Submission{}),
			specification.BySubmissionID{ID: submission.SubmissionId},
			specification.AtVersion{Version: baseVersion},
		)
		res := query.Select("*").Omit("submission_id", "submission_date").Updates(m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			return nil
		}

		var count int64
		if err := r.applySpecifications(tx.Model(&model.Submission{}), specification.BySubmissionID{ID: submission.SubmissionId}).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return contract.ErrSubmissionNotFound
		}
		return contract.ErrVersionConflict
	})
}

func (r *SubmissionRepositoryImpl) ListSummaries(ctx context.Context, filter contract.SubmissionFilter) ([]entity.SubmissionSummary, int64, error) {
	var total int64
	status := specification.ByStatus{Status: filter.Status}
	if err := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Submission{}), status).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	specs := []specification.Specification{
		status,
		specification.OrderBy{Field: "submission_date", Desc: false},
	}
	if filter.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: filter.Limit, Offset: filter.Offset})
	} else if filter.Offset > 0 {
		specs = append(specs, specification.Pagination{Limit: -1, Offset: filter.Offset})
	}

	var rows []*model.Submission
	query := r.applySpecifications(r.db.WithContext(ctx).
		Select("submission_id", "submission_date", "submitted_by", "company_name", "status", "current_stage"), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]entity.SubmissionSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.mapper.ToSummary(row))
	}
	return out, total, nil
}

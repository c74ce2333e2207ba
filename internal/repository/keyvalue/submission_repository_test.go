package keyvalue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/internal/repository/contract"
	"supplier-onboarding-be/pkg/intake"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*SubmissionRepository, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	repo, err := NewSubmissionRepository("redis://" + s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo, s
}

func newSubmission(id string, status entity.SubmissionStatus) *entity.Submission {
	when := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return &entity.Submission{
		SubmissionId:   id,
		SchemaVersion:  entity.CurrentSchemaVersion,
		Version:        1,
		SubmissionDate: when,
		SubmittedBy:    "Sam Requester",
		Status:         status,
		CurrentStage:   "procurement_review",
		FormData:       intake.Answers{intake.FieldCompanyName: "Acme " + id},
		UploadedFiles:  intake.Uploads{},
		UpdatedAt:      when,
	}
}

func TestCreateAndFind(t *testing.T) {
	repo, s := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSubmission("a1", entity.SubmissionStatusPendingReview)))

	assert.True(t, s.Exists("submission_a1"))
	got, err := repo.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Acme a1", got.FormData.String(intake.FieldCompanyName))

	var summary entity.SubmissionSummary
	require.NoError(t, json.Unmarshal([]byte(s.HGet(registryKey, "a1")), &summary))
	assert.Equal(t, "a1", summary.SubmissionId)
	order, err := s.List(registryOrderKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, order)

	assert.Error(t, repo.Create(ctx, newSubmission("a1", entity.SubmissionStatusPendingReview)), "ids are never reused")
}

func TestFindByID_MissingAndMalformed(t *testing.T) {
	repo, s := setupTestRedis(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, contract.ErrSubmissionNotFound)

	require.NoError(t, s.Set("submission_broken", "{not json"))
	_, err = repo.FindByID(ctx, "broken")
	assert.ErrorIs(t, err, contract.ErrMalformedSubmission)

	require.NoError(t, s.Set("submission_future", `{"submissionId":"future","schemaVersion":7}`))
	_, err = repo.FindByID(ctx, "future")
	assert.ErrorIs(t, err, contract.ErrMalformedSubmission)
}

func TestSave_PatchesRegistryAndChecksVersion(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSubmission("a1", entity.SubmissionStatusPendingReview)))
	require.NoError(t, repo.Create(ctx, newSubmission("b2", entity.SubmissionStatusPendingReview)))

	loaded, err := repo.FindByID(ctx, "a1")
	require.NoError(t, err)
	next := *loaded
	next.Status = entity.SubmissionStatusRejected
	next.CurrentStage = "terminated"
	next.Version = loaded.Version + 1

	require.NoError(t, repo.Save(ctx, &next, loaded.Version))

	stale := *loaded
	stale.Status = entity.SubmissionStatusApproved
	stale.Version = loaded.Version + 1
	err = repo.Save(ctx, &stale, loaded.Version)
	assert.ErrorIs(t, err, contract.ErrVersionConflict)

	got, err := repo.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, entity.SubmissionStatusRejected, got.Status)

	rows, total, err := repo.ListSummaries(ctx, contract.SubmissionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "a1", rows[0].SubmissionId, "registry keeps insertion order")
	assert.Equal(t, entity.SubmissionStatusRejected, rows[0].Status)
	assert.Equal(t, "terminated", rows[0].CurrentStage)
}

func TestSave_UnknownSubmission(t *testing.T) {
	repo, _ := setupTestRedis(t)
	err := repo.Save(context.Background(), newSubmission("ghost", entity.SubmissionStatusApproved), 1)
	assert.ErrorIs(t, err, contract.ErrSubmissionNotFound)
}

func TestListSummaries_FilterAndPage(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3", "s4"} {
		require.NoError(t, repo.Create(ctx, newSubmission(id, entity.SubmissionStatusPendingReview)))
	}
	require.NoError(t, repo.Create(ctx, newSubmission("r1", entity.SubmissionStatusRejected)))

	rows, total, err := repo.ListSummaries(ctx, contract.SubmissionFilter{Status: entity.SubmissionStatusPendingReview, Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "s2", rows[0].SubmissionId)
	assert.Equal(t, "s3", rows[1].SubmissionId)

	rows, _, err = repo.ListSummaries(ctx, contract.SubmissionFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListSummaries_EmptyRegistry(t *testing.T) {
	repo, _ := setupTestRedis(t)
	rows, total, err := repo.ListSummaries(context.Background(), contract.SubmissionFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
}

func TestCreate_ConcurrentDistinctSubmissions(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(ctx, newSubmission(fmt.Sprintf("c%02d", i), entity.SubmissionStatusPendingReview))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	_, total, err := repo.ListSummaries(ctx, contract.SubmissionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(n), total)
}

func TestSave_ConcurrentWritesToDifferentSubmissions(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	const n = 20
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Create(ctx, newSubmission(fmt.Sprintf("d%02d", i), entity.SubmissionStatusPendingReview)))
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			next := newSubmission(fmt.Sprintf("d%02d", i), entity.SubmissionStatusRejected)
			next.Version = 2
			errs <- repo.Save(ctx, next, 1)
		}(i)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(ctx, newSubmission(fmt.Sprintf("e%02d", i), entity.SubmissionStatusPendingReview))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	rows, total, err := repo.ListSummaries(ctx, contract.SubmissionFilter{Status: entity.SubmissionStatusRejected})
	require.NoError(t, err)
	assert.Equal(t, int64(n), total)
	assert.Equal(t, "d00", rows[0].SubmissionId)
}

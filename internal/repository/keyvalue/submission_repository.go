// Package keyvalue stores submissions in Redis as whole JSON documents, one
// key per submission plus a registry hash of summaries keyed by id and a list
// holding the ids in submission order.
package keyvalue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/internal/mapper"
	"supplier-onboarding-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const (
	submissionPrefix = "submission_"
	registryKey      = "submission_registry"
	registryOrderKey = "submission_registry_order"

	// maxTxAttempts bounds re-runs after a WATCH abort on a record key. Every
	// attempt re-reads the stored version, so a real conflict still surfaces.
	maxTxAttempts = 3
)

type SubmissionRepository struct {
	client *redis.Client
	mapper *mapper.SubmissionMapper
}

// NewSubmissionRepository connects to redisURL and verifies the connection.
func NewSubmissionRepository(redisURL string) (*SubmissionRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewSubmissionRepositoryWithClient(client), nil
}

func NewSubmissionRepositoryWithClient(client *redis.Client) *SubmissionRepository {
	return &SubmissionRepository{
		client: client,
		mapper: mapper.NewSubmissionMapper(),
	}
}

var _ contract.SubmissionRepository = (*SubmissionRepository)(nil)

func key(id string) string {
	return submissionPrefix + id
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *entity.Submission) error {
	data, err := r.mapper.Encode(submission)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	summary, err := json.Marshal(submission.Summary())
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	k := key(submission.SubmissionId)

	txf := func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, k).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return fmt.Errorf("submission %s already exists", submission.SubmissionId)
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, k, data, 0)
			p.HSet(ctx, registryKey, submission.SubmissionId, summary)
			p.RPush(ctx, registryOrderKey, submission.SubmissionId)
			return nil
		})
		return err
	}

	return r.watch(ctx, txf, k)
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*entity.Submission, error) {
	raw, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, contract.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	return r.decode(raw)
}

func (r *SubmissionRepository) Save(ctx context.Context, submission *entity.Submission, baseVersion int64) error {
	data, err := r.mapper.Encode(submission)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	summary, err := json.Marshal(submission.Summary())
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	k := key(submission.SubmissionId)

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return contract.ErrSubmissionNotFound
		}
		if err != nil {
			return err
		}
		stored, err := r.decode(raw)
		if err != nil {
			return err
		}
		if stored.Version != baseVersion {
			return contract.ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, k, data, 0)
			p.HSet(ctx, registryKey, submission.SubmissionId, summary)
			return nil
		})
		return err
	}

	return r.watch(ctx, txf, k)
}

func (r *SubmissionRepository) ListSummaries(ctx context.Context, filter contract.SubmissionFilter) ([]entity.SubmissionSummary, int64, error) {
	registry, err := r.readRegistry(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]entity.SubmissionSummary, 0, len(registry))
	for _, s := range registry {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		matched = append(matched, s)
	}
	total := int64(len(matched))

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []entity.SubmissionSummary{}, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *SubmissionRepository) Close() error {
	return r.client.Close()
}

func (r *SubmissionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *SubmissionRepository) watch(ctx context.Context, txf func(tx *redis.Tx) error, k string) error {
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return contract.ErrVersionConflict
}

func (r *SubmissionRepository) decode(raw []byte) (*entity.Submission, error) {
	s, err := r.mapper.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrMalformedSubmission, err)
	}
	return s, nil
}

// readRegistry returns the summaries in submission order. Ids without a
// summary entry are skipped.
func (r *SubmissionRepository) readRegistry(ctx context.Context) ([]entity.SubmissionSummary, error) {
	ids, err := r.client.LRange(ctx, registryOrderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load registry order: %w", err)
	}
	if len(ids) == 0 {
		return []entity.SubmissionSummary{}, nil
	}

	values, err := r.client.HMGet(ctx, registryKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	registry := make([]entity.SubmissionSummary, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var summary entity.SubmissionSummary
		if err := json.Unmarshal([]byte(raw), &summary); err != nil {
			return nil, fmt.Errorf("decode registry entry %s: %w", ids[i], err)
		}
		registry = append(registry, summary)
	}
	return registry, nil
}

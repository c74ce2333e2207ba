package memory

import (
	"context"
	"time"

	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// IntakeSessionRepository keeps in-progress forms in process memory. A
// session that is not touched for ttl expires with everything in it.
type IntakeSessionRepository struct {
	cache *cache.Cache
}

func NewIntakeSessionRepository(ttl time.Duration) *IntakeSessionRepository {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &IntakeSessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

var _ contract.IntakeSessionRepository = (*IntakeSessionRepository)(nil)

func (r *IntakeSessionRepository) Save(ctx context.Context, session *entity.IntakeSession) error {
	stored := *session
	stored.State = session.State.Clone()
	r.cache.Set(session.Id.String(), &stored, cache.DefaultExpiration)
	return nil
}

// FindByID returns a copy; callers mutate it and Save it back.
func (r *IntakeSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.IntakeSession, error) {
	x, found := r.cache.Get(id.String())
	if !found {
		return nil, contract.ErrIntakeSessionNotFound
	}
	stored := x.(*entity.IntakeSession)
	out := *stored
	out.State = stored.State.Clone()
	return &out, nil
}

package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/receiptbook-api/internal/domain/repository"
)

type idempotencyRepository struct {
	db *DB
}

// NewIdempotencyRepository creates a new in-memory idempotency repository
func NewIdempotencyRepository(db *DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func idempotencyMapKey(key string, userID uuid.UUID) string {
	return userID.String() + "|" + key
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ikey, ok := r.db.idempotencyKeys[idempotencyMapKey(key, userID)]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey, now time.Time) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	k := idempotencyMapKey(ikey.Key, ikey.UserID)
	if existing, ok := r.db.idempotencyKeys[k]; ok && !existing.ExpiresAt.Before(now) {
		return false, nil
	}
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = now
	}
	r.db.idempotencyKeys[k] = *ikey
	return true, nil
}

func (r *idempotencyRepository) Complete(ctx context.Context, key string, userID uuid.UUID, responseCode int, responseBody string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	k := idempotencyMapKey(key, userID)
	ikey, ok := r.db.idempotencyKeys[k]
	if !ok {
		return fmt.Errorf("idempotency key %q is not reserved", key)
	}
	ikey.ResponseCode = responseCode
	ikey.ResponseBody = responseBody
	r.db.idempotencyKeys[k] = ikey
	return nil
}

func (r *idempotencyRepository) Release(ctx context.Context, key string, userID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	k := idempotencyMapKey(key, userID)
	if ikey, ok := r.db.idempotencyKeys[k]; ok && ikey.IsPending() {
		delete(r.db.idempotencyKeys, k)
	}
	return nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var deleted int64
	for k, ikey := range r.db.idempotencyKeys {
		if ikey.ExpiresAt.Before(now) {
			delete(r.db.idempotencyKeys, k)
			deleted++
		}
	}
	return deleted, nil
}

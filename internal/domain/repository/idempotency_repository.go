package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and user ID
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Reserve stores ikey as pending unless a live key with the same key and user
	// exists. A key that expired before now is replaced. It reports whether ikey was stored.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey, now time.Time) (bool, error)
	// Complete records the response of a reserved key
	Complete(ctx context.Context, key string, userID uuid.UUID, responseCode int, responseBody string) error
	// Release drops a pending key so the request can be retried
	Release(ctx context.Context, key string, userID uuid.UUID) error
	// DeleteExpired removes keys that expired before now and reports how many went
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Package scheduler runs periodic store maintenance.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sangkips/receiptbook-api/internal/domain/repository"
)

// IdempotencyCleaner purges expired idempotency keys on a cron schedule.
type IdempotencyCleaner struct {
	repo repository.IdempotencyRepository
	cron *cron.Cron
	now  func() time.Time
}

// NewIdempotencyCleaner registers the purge job under schedule, a standard
// five-field cron expression or a descriptor such as "@hourly".
func NewIdempotencyCleaner(repo repository.IdempotencyRepository, schedule string) (*IdempotencyCleaner, error) {
	c := &IdempotencyCleaner{
		repo: repo,
		cron: cron.New(),
		now:  time.Now,
	}
	if _, err := c.cron.AddFunc(schedule, c.run); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	return c, nil
}

// Start runs the schedule in the background
func (c *IdempotencyCleaner) Start() {
	c.cron.Start()
	log.Println("Idempotency key cleanup scheduler started")
}

// Stop waits for a running purge to finish
func (c *IdempotencyCleaner) Stop() {
	<-c.cron.Stop().Done()
}

func (c *IdempotencyCleaner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := c.Purge(ctx); err != nil {
		log.Printf("Idempotency key cleanup failed: %v", err)
	}
}

// Purge deletes keys that have expired and reports how many were removed
func (c *IdempotencyCleaner) Purge(ctx context.Context) (int64, error) {
	deleted, err := c.repo.DeleteExpired(ctx, c.now())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Printf("Removed %d expired idempotency keys", deleted)
	}
	return deleted, nil
}

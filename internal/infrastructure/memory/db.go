// Package memory is a process-local store implementing the domain repositories.
// It backs tests and the STORE_DRIVER=memory mode; nothing survives a restart.
package memory

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
)

// DB holds every collection behind one lock, so each repository call is
// serialized the same way a single authoritative database would serialize it.
type DB struct {
	mu   sync.RWMutex
	node *snowflake.Node

	receipts      []entity.Receipt
	receiptIndex  map[int64]int
	receiptNumber map[string]int64

	serviceItems []entity.ServiceItem
	customers    []entity.Customer

	businessProfile *entity.BusinessProfile
	userProfiles    map[uuid.UUID]entity.UserProfile
	roles           map[uuid.UUID]enum.UserRole

	idempotencyKeys map[string]entity.IdempotencyKey
}

// NewDB creates an empty store. nodeID seeds the snowflake generator (0-1023).
func NewDB(nodeID int64) (*DB, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	return &DB{
		node:            node,
		receiptIndex:    make(map[int64]int),
		receiptNumber:   make(map[string]int64),
		userProfiles:    make(map[uuid.UUID]entity.UserProfile),
		roles:           make(map[uuid.UUID]enum.UserRole),
		idempotencyKeys: make(map[string]entity.IdempotencyKey),
	}, nil
}

// nextID issues a monotonically increasing id. Callers hold mu.
func (db *DB) nextID() int64 {
	return db.node.Generate().Int64()
}

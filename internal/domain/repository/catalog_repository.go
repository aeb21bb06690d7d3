package repository

import (
	"context"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
)

// ServiceItemRepository holds the catalog of billable services.
// Names are unique and compared exactly; Create reports a DuplicateName error.
type ServiceItemRepository interface {
	Create(ctx context.Context, item *entity.ServiceItem) error
	// FindByName returns nil, nil when no item has that exact name
	FindByName(ctx context.Context, name string) (*entity.ServiceItem, error)
	List(ctx context.Context) ([]entity.ServiceItem, error)
}

// CustomerRepository holds customers in registration order. Names may repeat.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// FindByName returns the first customer registered under name, or nil, nil
	FindByName(ctx context.Context, name string) (*entity.Customer, error)
	List(ctx context.Context) ([]entity.Customer, error)
}

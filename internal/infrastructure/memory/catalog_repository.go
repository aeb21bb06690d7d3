package memory

import (
	"context"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
)

type serviceItemRepository struct {
	db *DB
}

// NewServiceItemRepository creates a new in-memory service item repository
func NewServiceItemRepository(db *DB) domainRepo.ServiceItemRepository {
	return &serviceItemRepository{db: db}
}

func (r *serviceItemRepository) Create(ctx context.Context, item *entity.ServiceItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.serviceItems {
		if existing.Name == item.Name {
			return apperror.New(apperror.KindDuplicateName, "service item "+item.Name+" already exists")
		}
	}
	r.db.serviceItems = append(r.db.serviceItems, *item)
	return nil
}

func (r *serviceItemRepository) FindByName(ctx context.Context, name string) (*entity.ServiceItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, item := range r.db.serviceItems {
		if item.Name == name {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *serviceItemRepository) List(ctx context.Context) ([]entity.ServiceItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return append([]entity.ServiceItem{}, r.db.serviceItems...), nil
}

type customerRepository struct {
	db *DB
}

// NewCustomerRepository creates a new in-memory customer repository
func NewCustomerRepository(db *DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.customers = append(r.db.customers, *customer)
	return nil
}

func (r *customerRepository) FindByName(ctx context.Context, name string) (*entity.Customer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, customer := range r.db.customers {
		if customer.Name == name {
			found := customer
			return &found, nil
		}
	}
	return nil, nil
}

func (r *customerRepository) List(ctx context.Context) ([]entity.Customer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return append([]entity.Customer{}, r.db.customers...), nil
}

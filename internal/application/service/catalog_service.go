package service

import (
	"context"
	"strings"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
	"github.com/sangkips/receiptbook-api/pkg/money"
)

// CatalogService manages the service item registry and the customer list
type CatalogService struct {
	serviceItemRepo repository.ServiceItemRepository
	customerRepo    repository.CustomerRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceItemRepo repository.ServiceItemRepository, customerRepo repository.CustomerRepository) *CatalogService {
	return &CatalogService{
		serviceItemRepo: serviceItemRepo,
		customerRepo:    customerRepo,
	}
}

// AddServiceItem registers a billable service. Names are compared exactly, so
// "Haircut" and "haircut" are different items.
func (s *CatalogService) AddServiceItem(ctx context.Context, caller Caller, name string, price money.Money) (*entity.ServiceItem, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewInvalidInputError("service item name is required")
	}
	if price < 0 {
		return nil, apperror.New(apperror.KindInvalidAmount, "service item price cannot be negative")
	}

	existing, err := s.serviceItemRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(apperror.KindDuplicateName, "service item "+name+" already exists")
	}

	item := &entity.ServiceItem{Name: name, Price: price}
	if err := s.serviceItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// AddCustomer registers a customer. Names are not required to be unique.
func (s *CatalogService) AddCustomer(ctx context.Context, caller Caller, name, contact string) (*entity.Customer, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewInvalidInputError("customer name is required")
	}

	customer := &entity.Customer{Name: name, Contact: strings.TrimSpace(contact)}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CatalogService) GetServiceItems(ctx context.Context, caller Caller) ([]entity.ServiceItem, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}
	return s.serviceItemRepo.List(ctx)
}

func (s *CatalogService) GetCustomers(ctx context.Context, caller Caller) ([]entity.Customer, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}
	return s.customerRepo.List(ctx)
}

// LookupServiceItem finds a service item by exact name
func (s *CatalogService) LookupServiceItem(ctx context.Context, name string) (*entity.ServiceItem, error) {
	item, err := s.serviceItemRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Service item " + name)
	}
	return item, nil
}

// LookupCustomer finds the first customer registered under an exact name
func (s *CatalogService) LookupCustomer(ctx context.Context, name string) (*entity.Customer, error) {
	customer, err := s.customerRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer " + name)
	}
	return customer, nil
}

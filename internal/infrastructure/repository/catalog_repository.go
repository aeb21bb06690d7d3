package repository

import (
	"context"
	"errors"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
	"github.com/sangkips/receiptbook-api/pkg/money"
	"gorm.io/gorm"
)

type serviceItemRepository struct {
	db *gorm.DB
}

// NewServiceItemRepository creates a new service item repository
func NewServiceItemRepository(db *gorm.DB) domainRepo.ServiceItemRepository {
	return &serviceItemRepository{db: db}
}

func (r *serviceItemRepository) Create(ctx context.Context, item *entity.ServiceItem) error {
	rec := ServiceItemRecord{Name: item.Name, Price: item.Price.Cents()}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return apperror.New(apperror.KindDuplicateName, "service item "+item.Name+" already exists")
		}
		return err
	}
	return nil
}

func (r *serviceItemRepository) FindByName(ctx context.Context, name string) (*entity.ServiceItem, error) {
	var rec ServiceItemRecord
	err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity.ServiceItem{Name: rec.Name, Price: money.FromCents(rec.Price)}, nil
}

func (r *serviceItemRepository) List(ctx context.Context) ([]entity.ServiceItem, error) {
	var records []ServiceItemRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	items := make([]entity.ServiceItem, 0, len(records))
	for _, rec := range records {
		items = append(items, entity.ServiceItem{Name: rec.Name, Price: money.FromCents(rec.Price)})
	}
	return items, nil
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	rec := CustomerRecord{Name: customer.Name, Contact: customer.Contact}
	return r.db.WithContext(ctx).Create(&rec).Error
}

// FindByName returns the earliest registered customer with that exact name
func (r *customerRepository) FindByName(ctx context.Context, name string) (*entity.Customer, error) {
	var rec CustomerRecord
	err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity.Customer{Name: rec.Name, Contact: rec.Contact}, nil
}

func (r *customerRepository) List(ctx context.Context) ([]entity.Customer, error) {
	var records []CustomerRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	customers := make([]entity.Customer, 0, len(records))
	for _, rec := range records {
		customers = append(customers, entity.Customer{Name: rec.Name, Contact: rec.Contact})
	}
	return customers, nil
}

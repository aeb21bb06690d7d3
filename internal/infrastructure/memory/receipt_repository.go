package memory

import (
	"context"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/query"
	domainRepo "github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
)

type receiptRepository struct {
	db *DB
}

// NewReceiptRepository creates a new in-memory receipt repository
func NewReceiptRepository(db *DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, taken := r.db.receiptNumber[receipt.Number]; taken {
		return apperror.New(apperror.KindDuplicateReceiptNumber, "receipt number "+receipt.Number+" already exists")
	}

	stored := receipt.Clone()
	stored.ID = r.db.nextID()
	for i := range stored.Payments {
		if stored.Payments[i].ID == 0 {
			stored.Payments[i].ID = r.db.nextID()
		}
	}

	r.db.receiptIndex[stored.ID] = len(r.db.receipts)
	r.db.receiptNumber[stored.Number] = stored.ID
	r.db.receipts = append(r.db.receipts, stored)

	*receipt = stored.Clone()
	return nil
}

func (r *receiptRepository) GetByID(ctx context.Context, id int64) (*entity.Receipt, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	pos, ok := r.db.receiptIndex[id]
	if !ok {
		return nil, nil
	}
	receipt := r.db.receipts[pos].Clone()
	return &receipt, nil
}

func (r *receiptRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.receiptNumber[number]
	return ok, nil
}

func (r *receiptRepository) List(ctx context.Context) ([]entity.Receipt, error) {
	r.db.mu.RLock()
	receipts := make([]entity.Receipt, 0, len(r.db.receipts))
	for _, receipt := range r.db.receipts {
		receipts = append(receipts, receipt.Clone())
	}
	r.db.mu.RUnlock()

	return query.Sort(receipts, query.SortByDate), nil
}

func (r *receiptRepository) AppendPayment(ctx context.Context, id int64, apply domainRepo.PaymentFunc) (*entity.Receipt, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	pos, ok := r.db.receiptIndex[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	updated, err := apply(r.db.receipts[pos].Clone())
	if err != nil {
		return nil, err
	}
	updated = updated.Clone()
	updated.ID = id
	for i := range updated.Payments {
		if updated.Payments[i].ID == 0 {
			updated.Payments[i].ID = r.db.nextID()
		}
	}
	r.db.receipts[pos] = updated

	result := updated.Clone()
	return &result, nil
}

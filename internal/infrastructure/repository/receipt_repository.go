package repository

import (
	"context"
	"errors"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db     *gorm.DB
	policy ledger.Policy
}

// NewReceiptRepository creates a new receipt repository.
// policy is used to reconcile receipts as they are read back.
func NewReceiptRepository(db *gorm.DB, policy ledger.Policy) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db, policy: policy}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	rec := receiptToRecord(receipt)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return apperror.New(apperror.KindDuplicateReceiptNumber, "receipt number "+receipt.Number+" already exists")
		}
		return err
	}

	receipt.ID = rec.ID
	for i := range rec.Payments {
		receipt.Payments[i].ID = rec.Payments[i].ID
	}
	return nil
}

func (r *receiptRepository) GetByID(ctx context.Context, id int64) (*entity.Receipt, error) {
	var rec ReceiptRecord
	err := r.db.WithContext(ctx).
		Scopes(withLines).
		First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	receipt := recordToReceipt(rec, r.policy)
	return &receipt, nil
}

func (r *receiptRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ReceiptRecord{}).
		Where("number = ?", number).
		Count(&count).Error
	return count > 0, err
}

func (r *receiptRepository) List(ctx context.Context) ([]entity.Receipt, error) {
	var records []ReceiptRecord
	err := r.db.WithContext(ctx).
		Scopes(withLines, newestFirst).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	receipts := make([]entity.Receipt, 0, len(records))
	for _, rec := range records {
		receipts = append(receipts, recordToReceipt(rec, r.policy))
	}
	return receipts, nil
}

// AppendPayment locks the receipt row for the duration of the transaction, so
// concurrent payments against one receipt are applied one after another.
func (r *receiptRepository) AppendPayment(ctx context.Context, id int64, apply domainRepo.PaymentFunc) (*entity.Receipt, error) {
	var result entity.Receipt

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec ReceiptRecord
		err := tx.Scopes(forUpdate).
			First(&rec, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFoundError("Receipt")
		}
		if err != nil {
			return err
		}
		if err := tx.Scopes(orderedItems).Where("receipt_id = ?", id).Find(&rec.Items).Error; err != nil {
			return err
		}
		if err := tx.Scopes(orderedPayments).Where("receipt_id = ?", id).Find(&rec.Payments).Error; err != nil {
			return err
		}

		updated, err := apply(recordToReceipt(rec, r.policy))
		if err != nil {
			return err
		}

		for i := range updated.Payments {
			if updated.Payments[i].ID != 0 {
				continue
			}
			payment := paymentToRecord(id, updated.Payments[i])
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
			updated.Payments[i].ID = payment.ID
		}

		if err := tx.Model(&ReceiptRecord{}).Where("id = ?", id).Updates(map[string]interface{}{
			"balance": updated.Balance.Cents(),
			"status":  updated.Status,
		}).Error; err != nil {
			return err
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

package repository

import (
	"context"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
)

// PaymentFunc computes the receipt that results from recording a payment.
// It receives the current stored receipt and must not retain it.
type PaymentFunc func(current entity.Receipt) (entity.Receipt, error)

// ReceiptRepository is the authoritative store for receipts and their payments
type ReceiptRepository interface {
	// Create stores a new receipt and sets its ID. A taken number yields a DuplicateReceiptNumber error.
	Create(ctx context.Context, receipt *entity.Receipt) error
	// GetByID returns nil, nil when the receipt does not exist
	GetByID(ctx context.Context, id int64) (*entity.Receipt, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	// List returns every receipt, most recent first
	List(ctx context.Context) ([]entity.Receipt, error)
	// AppendPayment runs apply against the current receipt and persists the result
	// as one step: no other payment for the same receipt interleaves. Payments the
	// result adds with a zero ID are given one. When apply fails nothing is written.
	AppendPayment(ctx context.Context, id int64, apply PaymentFunc) (*entity.Receipt, error)
}

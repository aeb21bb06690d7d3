package repository

import (
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/ledger"
	"github.com/sangkips/receiptbook-api/pkg/money"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func receiptToRecord(r *entity.Receipt) ReceiptRecord {
	rec := ReceiptRecord{
		ID:              r.ID,
		Number:          r.Number,
		Date:            r.Date,
		CustomerName:    r.Customer.Name,
		CustomerContact: r.Customer.Contact,
		Total:           r.Total.Cents(),
		Balance:         r.Balance.Cents(),
		Status:          r.Status,
	}
	for i, item := range r.Items {
		rec.Items = append(rec.Items, ReceiptItemRecord{
			Position:    i,
			ServiceName: item.ServiceItem.Name,
			UnitPrice:   item.ServiceItem.Price.Cents(),
			Quantity:    item.Quantity,
			Total:       item.Total.Cents(),
		})
	}
	for _, p := range r.Payments {
		rec.Payments = append(rec.Payments, paymentToRecord(r.ID, p))
	}
	return rec
}

func paymentToRecord(receiptID int64, p entity.Payment) PaymentRecord {
	return PaymentRecord{
		ID:        p.ID,
		ReceiptID: receiptID,
		Method:    p.Method,
		Date:      p.Date,
		Notes:     p.Notes,
		Amount:    p.Amount.Cents(),
	}
}

// recordToReceipt rebuilds the entity and reconciles its derived fields.
// Stored totals that disagree with the items and payments are logged and replaced.
func recordToReceipt(rec ReceiptRecord, policy ledger.Policy) entity.Receipt {
	r := entity.Receipt{
		ID:       rec.ID,
		Number:   rec.Number,
		Date:     rec.Date,
		Customer: entity.Customer{Name: rec.CustomerName, Contact: rec.CustomerContact},
		Items:    make([]entity.LineItem, 0, len(rec.Items)),
		Total:    money.FromCents(rec.Total),
		Payments: make([]entity.Payment, 0, len(rec.Payments)),
		Balance:  money.FromCents(rec.Balance),
		Status:   rec.Status,
	}
	for _, item := range rec.Items {
		r.Items = append(r.Items, entity.LineItem{
			ServiceItem: entity.ServiceItem{Name: item.ServiceName, Price: money.FromCents(item.UnitPrice)},
			Quantity:    item.Quantity,
			Total:       money.FromCents(item.Total),
		})
	}
	for _, p := range rec.Payments {
		r.Payments = append(r.Payments, entity.Payment{
			ID:     p.ID,
			Method: p.Method,
			Date:   p.Date,
			Notes:  p.Notes,
			Amount: money.FromCents(p.Amount),
		})
	}

	if drift := policy.Reconcile(&r); len(drift) > 0 {
		log.Printf("Warning: receipt %d (%s) stored values disagree with its ledger: %s",
			r.ID, r.Number, strings.Join(drift, ", "))
	}
	return r
}

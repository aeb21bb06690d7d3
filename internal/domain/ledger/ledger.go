// Package ledger holds the rules that keep a receipt's totals, balance and
// status consistent while payments accrue. Every function here is pure: it
// takes values, returns new values, and never touches a store.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
	"github.com/sangkips/receiptbook-api/pkg/money"
)

// ItemInput is one requested line: a service snapshot and how many of it.
type ItemInput struct {
	ServiceItem entity.ServiceItem
	Quantity    int64
}

// NewReceipt is the validated input for CreateReceipt.
type NewReceipt struct {
	Number   string
	Date     time.Time
	Customer entity.Customer
	Items    []ItemInput
}

// PaymentRequest is a payment submitted against a receipt.
type PaymentRequest struct {
	Method enum.PaymentMethod
	Amount money.Money
	Notes  string
	Date   time.Time
}

// CreateReceipt prices every line, totals the receipt and opens its ledger.
// Receipt number uniqueness depends on the collection and is checked by the caller.
func (p Policy) CreateReceipt(in NewReceipt) (entity.Receipt, error) {
	if len(in.Items) == 0 {
		return entity.Receipt{}, apperror.New(apperror.KindEmptyItemList, "receipt must have at least one line item")
	}
	number := strings.TrimSpace(in.Number)
	if number == "" {
		return entity.Receipt{}, apperror.NewInvalidInputError("receipt number is required")
	}
	if strings.TrimSpace(in.Customer.Name) == "" {
		return entity.Receipt{}, apperror.NewInvalidInputError("customer name is required")
	}

	items := make([]entity.LineItem, 0, len(in.Items))
	var total money.Money
	for i, item := range in.Items {
		if item.Quantity < 1 {
			return entity.Receipt{}, apperror.New(apperror.KindInvalidQuantity,
				fmt.Sprintf("line %d: quantity must be at least 1", i+1))
		}
		if strings.TrimSpace(item.ServiceItem.Name) == "" {
			return entity.Receipt{}, apperror.NewInvalidInputError(fmt.Sprintf("line %d: service item name is required", i+1))
		}
		if item.ServiceItem.Price < 0 {
			return entity.Receipt{}, apperror.New(apperror.KindInvalidAmount,
				fmt.Sprintf("line %d: price cannot be negative", i+1))
		}
		lineTotal, err := money.Multiply(item.Quantity, item.ServiceItem.Price)
		if err != nil {
			return entity.Receipt{}, apperror.New(apperror.KindInvalidAmount,
				fmt.Sprintf("line %d: total exceeds the maximum amount", i+1))
		}
		if total, err = money.AddChecked(total, lineTotal); err != nil {
			return entity.Receipt{}, apperror.New(apperror.KindInvalidAmount, "receipt total exceeds the maximum amount")
		}
		items = append(items, entity.LineItem{
			ServiceItem: item.ServiceItem,
			Quantity:    item.Quantity,
			Total:       lineTotal,
		})
	}

	return entity.Receipt{
		Number:   number,
		Date:     in.Date,
		Customer: in.Customer,
		Items:    items,
		Total:    total,
		Payments: []entity.Payment{},
		Balance:  total,
		Status:   p.DeriveStatus(total, nil),
	}, nil
}

// ApplyPayment returns a copy of r with the payment appended and balance and
// status recomputed. r itself is never modified, so a rejected payment leaves
// the caller's receipt exactly as it was. The new payment's ID is left zero
// for the store to issue.
func (p Policy) ApplyPayment(r entity.Receipt, req PaymentRequest) (entity.Receipt, error) {
	if req.Amount <= 0 {
		return r, apperror.New(apperror.KindNonPositiveAmount, "payment amount must be greater than zero")
	}
	if !req.Method.IsValid() {
		return r, apperror.NewInvalidInputError("payment method is required")
	}

	balance := Balance(r.Total, r.Payments)
	if req.Amount > balance {
		return r, apperror.New(apperror.KindOverpaymentRejected,
			fmt.Sprintf("payment exceeds balance due: %s > %s", money.Format(req.Amount), money.Format(balance)))
	}

	updated := r.Clone()
	updated.Payments = append(updated.Payments, entity.Payment{
		Method: req.Method,
		Date:   req.Date,
		Notes:  req.Notes,
		Amount: req.Amount,
	})
	updated.Balance = Balance(updated.Total, updated.Payments)
	updated.Status = p.DeriveStatus(updated.Total, updated.Payments)
	return updated, nil
}

// TotalOf sums the line totals, saturating at money.MaxAmount.
func TotalOf(items []entity.LineItem) money.Money {
	var total money.Money
	for _, item := range items {
		total = money.Add(total, item.Total)
	}
	return total
}

// Reconcile recomputes every derived field of r from its items and payments
// and reports which fields disagreed with what was stored.
func (p Policy) Reconcile(r *entity.Receipt) []string {
	var drift []string

	for i := range r.Items {
		want, err := money.Multiply(r.Items[i].Quantity, r.Items[i].ServiceItem.Price)
		if err != nil {
			want = money.MaxAmount
		}
		if r.Items[i].Total != want {
			drift = append(drift, fmt.Sprintf("items[%d].total", i))
			r.Items[i].Total = want
		}
	}
	if total := TotalOf(r.Items); r.Total != total {
		drift = append(drift, "total")
		r.Total = total
	}
	if balance := Balance(r.Total, r.Payments); r.Balance != balance {
		drift = append(drift, "balance")
		r.Balance = balance
	}
	if status := p.DeriveStatus(r.Total, r.Payments); r.Status != status {
		drift = append(drift, "status")
		r.Status = status
	}
	if r.Payments == nil {
		r.Payments = []entity.Payment{}
	}
	return drift
}

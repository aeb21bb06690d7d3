package ledger

import (
	"fmt"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/pkg/money"
)

// Policy holds the ledger decisions that are product choices rather than arithmetic.
type Policy struct {
	// ZeroTotalStatus is the status of a receipt whose total is zero.
	// Paid means nothing is owed; Open keeps it on the unpaid list.
	ZeroTotalStatus enum.ReceiptStatus
}

// DefaultPolicy treats a zero-total receipt as settled on creation.
var DefaultPolicy = Policy{ZeroTotalStatus: enum.ReceiptStatusPaid}

// NewPolicy validates the configured zero-total status.
func NewPolicy(zeroTotalStatus string) (Policy, error) {
	status, err := enum.ParseReceiptStatus(zeroTotalStatus)
	if err != nil {
		return Policy{}, err
	}
	if status == enum.ReceiptStatusPartial {
		return Policy{}, fmt.Errorf("zero-total receipts cannot be %q", status)
	}
	return Policy{ZeroTotalStatus: status}, nil
}

// DeriveStatus maps a total and its payments to a settlement status.
func (p Policy) DeriveStatus(total money.Money, payments []entity.Payment) enum.ReceiptStatus {
	paid := AmountPaid(payments)
	if total == 0 && paid == 0 && p.ZeroTotalStatus != "" {
		return p.ZeroTotalStatus
	}
	switch {
	case paid >= total:
		return enum.ReceiptStatusPaid
	case paid == 0:
		return enum.ReceiptStatusOpen
	default:
		return enum.ReceiptStatusPartial
	}
}

// DeriveStatus applies DefaultPolicy.
func DeriveStatus(total money.Money, payments []entity.Payment) enum.ReceiptStatus {
	return DefaultPolicy.DeriveStatus(total, payments)
}

// AmountPaid sums the payment amounts.
func AmountPaid(payments []entity.Payment) money.Money {
	var paid money.Money
	for _, p := range payments {
		paid = money.Add(paid, p.Amount)
	}
	return paid
}

// Balance is what remains owed, never below zero.
func Balance(total money.Money, payments []entity.Payment) money.Money {
	return money.Subtract(total, AmountPaid(payments))
}

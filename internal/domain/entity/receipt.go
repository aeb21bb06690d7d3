package entity

import (
	"time"

	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/pkg/money"
)

// LineItem is one priced row of a receipt. ServiceItem is a snapshot taken at
// creation time; later catalog edits never reach it.
type LineItem struct {
	ServiceItem ServiceItem `json:"service_item"`
	Quantity    int64       `json:"quantity"`
	Total       money.Money `json:"total"`
}

// Payment is one append-only entry in a receipt's ledger
type Payment struct {
	ID     int64              `json:"id"`
	Method enum.PaymentMethod `json:"method"`
	Date   time.Time          `json:"date"`
	Notes  string             `json:"notes"`
	Amount money.Money        `json:"amount"`
}

// Receipt is a customer bill with its ordered payment history.
// Total is fixed at creation; Balance and Status are derived from Total and Payments.
type Receipt struct {
	ID       int64              `json:"id"`
	Number   string             `json:"number"`
	Date     time.Time          `json:"date"`
	Customer Customer           `json:"customer"`
	Items    []LineItem         `json:"items"`
	Total    money.Money        `json:"total"`
	Payments []Payment          `json:"payments"`
	Balance  money.Money        `json:"balance"`
	Status   enum.ReceiptStatus `json:"status"`
}

// Clone returns a copy that shares no slices with r
func (r Receipt) Clone() Receipt {
	r.Items = append([]LineItem(nil), r.Items...)
	r.Payments = append([]Payment(nil), r.Payments...)
	if r.Payments == nil {
		r.Payments = []Payment{}
	}
	return r
}

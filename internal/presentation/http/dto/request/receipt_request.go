package request

import (
	"time"

	"github.com/sangkips/receiptbook-api/internal/domain/enum"
)

// LineItemRequest is one line of a new receipt. Price is in cents; when it is
// omitted the catalog price of ServiceName is used.
type LineItemRequest struct {
	ServiceName string `json:"service_name"`
	Price       *int64 `json:"price"`
	Quantity    int64  `json:"quantity"`
}

// CustomerRequest names the customer on a receipt
type CustomerRequest struct {
	Name    string `json:"name" binding:"max=255"`
	Contact string `json:"contact"`
}

// CreateReceiptRequest represents a receipt creation request
type CreateReceiptRequest struct {
	Number   string            `json:"number" binding:"omitempty,max=100"`
	Date     *time.Time        `json:"date"`
	Customer CustomerRequest   `json:"customer"`
	Items    []LineItemRequest `json:"items" binding:"dive"`
	Total    *int64            `json:"total"`
}

// AddPaymentRequest represents a payment against a receipt. Either amount (cents)
// or display_amount such as "$20.00" must be set.
type AddPaymentRequest struct {
	Method        enum.PaymentMethod `json:"method"`
	Amount        *int64             `json:"amount"`
	DisplayAmount string             `json:"display_amount"`
	Notes         string             `json:"notes" binding:"max=1000"`
	Date          *time.Time         `json:"date"`
}

// ReceiptFilterRequest represents the receipt listing query parameters
type ReceiptFilterRequest struct {
	Status  string `form:"status"`
	Search  string `form:"search"`
	Sort    string `form:"sort"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Format  string `form:"format"`
}

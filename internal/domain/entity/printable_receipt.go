package entity

// ReceiptHeader holds the business header printed at the top of a receipt.
type ReceiptHeader struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
}

// PrintableLine is a line item with amounts already formatted for display.
type PrintableLine struct {
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

// PrintablePayment is a payment row formatted for display.
type PrintablePayment struct {
	Date   string `json:"date"`
	Method string `json:"method"`
	Amount string `json:"amount"`
	Notes  string `json:"notes,omitempty"`
}

// PrintableReceipt is a value object composed from a receipt and the business
// profile at print time. It is never persisted.
type PrintableReceipt struct {
	Header   ReceiptHeader      `json:"header"`
	Number   string             `json:"number"`
	Date     string             `json:"date"`
	Customer string             `json:"customer"`
	Contact  string             `json:"contact,omitempty"`
	Items    []PrintableLine    `json:"items"`
	Payments []PrintablePayment `json:"payments"`
	Total    string             `json:"total"`
	Paid     string             `json:"paid"`
	Balance  string             `json:"balance"`
	Status   string             `json:"status"`
}

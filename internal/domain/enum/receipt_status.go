package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ReceiptStatus is the settlement state of a receipt
type ReceiptStatus string

const (
	ReceiptStatusOpen    ReceiptStatus = "open"
	ReceiptStatusPartial ReceiptStatus = "partial"
	ReceiptStatusPaid    ReceiptStatus = "paid"
)

// ParseReceiptStatus accepts the wire value of a status
func ParseReceiptStatus(s string) (ReceiptStatus, error) {
	switch ReceiptStatus(s) {
	case ReceiptStatusOpen, ReceiptStatusPartial, ReceiptStatusPaid:
		return ReceiptStatus(s), nil
	}
	return "", fmt.Errorf("unknown receipt status %q", s)
}

func (s ReceiptStatus) String() string {
	return string(s)
}

// Label is the human-facing name shown on listings and printed receipts
func (s ReceiptStatus) Label() string {
	switch s {
	case ReceiptStatusOpen:
		return "Unpaid"
	case ReceiptStatusPartial:
		return "Partially Paid"
	case ReceiptStatusPaid:
		return "Paid"
	}
	return string(s)
}

func (s *ReceiptStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseReceiptStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s ReceiptStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ReceiptStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReceiptStatusOpen
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ReceiptStatus(v)
	case []byte:
		*s = ReceiptStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into ReceiptStatus", value)
	}
	return nil
}

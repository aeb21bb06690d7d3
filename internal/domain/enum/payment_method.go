package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sangkips/receiptbook-api/pkg/apperror"
)

// PaymentMethodKind tags the variant held by a PaymentMethod
type PaymentMethodKind string

const (
	PaymentMethodCash         PaymentMethodKind = "cash"
	PaymentMethodCard         PaymentMethodKind = "card"
	PaymentMethodBankTransfer PaymentMethodKind = "bankTransfer"
	PaymentMethodOther        PaymentMethodKind = "other"
)

// PaymentMethod is a closed variant: Cash, Card, BankTransfer or Other(label).
// The zero value is invalid; build one with the constructors or NewPaymentMethod.
type PaymentMethod struct {
	kind  PaymentMethodKind
	label string
}

func Cash() PaymentMethod         { return PaymentMethod{kind: PaymentMethodCash} }
func Card() PaymentMethod         { return PaymentMethod{kind: PaymentMethodCard} }
func BankTransfer() PaymentMethod { return PaymentMethod{kind: PaymentMethodBankTransfer} }

// MaxOtherLabelLength bounds the Other label so the stored "other:<label>" fits its column.
const MaxOtherLabelLength = 100

// Other builds the free-form variant. The label must not be blank or longer
// than MaxOtherLabelLength characters.
func Other(label string) (PaymentMethod, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return PaymentMethod{}, apperror.NewInvalidInputError(
			fmt.Sprintf("payment method %q requires a label", PaymentMethodOther))
	}
	if utf8.RuneCountInString(label) > MaxOtherLabelLength {
		return PaymentMethod{}, apperror.NewInvalidInputError(
			fmt.Sprintf("payment method label cannot exceed %d characters", MaxOtherLabelLength))
	}
	return PaymentMethod{kind: PaymentMethodOther, label: label}, nil
}

// NewPaymentMethod builds a method from its wire kind and optional label
func NewPaymentMethod(kind, label string) (PaymentMethod, error) {
	switch PaymentMethodKind(kind) {
	case PaymentMethodCash:
		return Cash(), nil
	case PaymentMethodCard:
		return Card(), nil
	case PaymentMethodBankTransfer:
		return BankTransfer(), nil
	case PaymentMethodOther:
		return Other(label)
	}
	return PaymentMethod{}, fmt.Errorf("unknown payment method %q", kind)
}

func (m PaymentMethod) Kind() PaymentMethodKind { return m.kind }

// Label is only set for the Other variant
func (m PaymentMethod) Label() string { return m.label }

func (m PaymentMethod) IsValid() bool { return m.kind != "" }

// String returns a display name
func (m PaymentMethod) String() string {
	switch m.kind {
	case PaymentMethodCash:
		return "Cash"
	case PaymentMethodCard:
		return "Card"
	case PaymentMethodBankTransfer:
		return "Bank Transfer"
	case PaymentMethodOther:
		return m.label
	}
	return ""
}

type paymentMethodJSON struct {
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(paymentMethodJSON{Kind: string(m.kind), Label: m.label})
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var raw paymentMethodJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		// Bare strings such as "cash" are accepted as well
		var kind string
		if err := json.Unmarshal(data, &kind); err != nil {
			return err
		}
		raw.Kind = kind
	}
	parsed, err := NewPaymentMethod(raw.Kind, raw.Label)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value stores the method as "cash", "card", "bankTransfer" or "other:<label>"
func (m PaymentMethod) Value() (driver.Value, error) {
	if m.kind == PaymentMethodOther {
		return string(m.kind) + ":" + m.label, nil
	}
	return string(m.kind), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentMethod", value)
	}
	kind, label, _ := strings.Cut(s, ":")
	parsed, err := NewPaymentMethod(kind, label)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Package query filters and orders snapshots of the receipt collection for
// listings. Nothing here mutates its input or reaches the store.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Predicate selects receipts. Empty fields match everything; set fields are ANDed.
type Predicate struct {
	Status string
	Text   string
}

// NewPredicate validates the status filter.
func NewPredicate(status, text string) (Predicate, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && status != StatusAll {
		if _, err := enum.ParseReceiptStatus(status); err != nil {
			return Predicate{}, apperror.NewInvalidInputError(err.Error())
		}
	}
	return Predicate{Status: status, Text: strings.TrimSpace(text)}, nil
}

// Matches reports whether r satisfies every set field of p.
func (p Predicate) Matches(r entity.Receipt) bool {
	if p.Status != "" && p.Status != StatusAll && string(r.Status) != p.Status {
		return false
	}
	if p.Text == "" {
		return true
	}
	needle := strings.ToLower(p.Text)
	return strings.Contains(strings.ToLower(r.Number), needle) ||
		strings.Contains(strings.ToLower(r.Customer.Name), needle)
}

// Filter returns the receipts matching p in their original order.
func Filter(receipts []entity.Receipt, p Predicate) []entity.Receipt {
	out := make([]entity.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if p.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortKey names a listing order.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByNumber   SortKey = "number"
	SortByCustomer SortKey = "customer"
	SortByTotal    SortKey = "total"
	SortByBalance  SortKey = "balance"
)

// DefaultSortKey lists the most recent receipts first.
const DefaultSortKey = SortByDate

// ParseSortKey maps the query value to a key. An empty value means DefaultSortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case "":
		return DefaultSortKey, nil
	case SortByDate, SortByNumber, SortByCustomer, SortByTotal, SortByBalance:
		return key, nil
	}
	return "", apperror.NewInvalidInputError(fmt.Sprintf("unknown sort key %q", s))
}

// less compares a and b under key. Date sorts newest first, the rest ascend.
func (k SortKey) less(a, b entity.Receipt) (less, equal bool) {
	switch k {
	case SortByNumber:
		return a.Number < b.Number, a.Number == b.Number
	case SortByCustomer:
		an, bn := strings.ToLower(a.Customer.Name), strings.ToLower(b.Customer.Name)
		return an < bn, an == bn
	case SortByTotal:
		return a.Total < b.Total, a.Total == b.Total
	case SortByBalance:
		return a.Balance < b.Balance, a.Balance == b.Balance
	default:
		return a.Date.After(b.Date), a.Date.Equal(b.Date)
	}
}

// Sort returns a sorted copy of receipts. Equal keys fall back to id ascending
// and the sort is stable beyond that.
func Sort(receipts []entity.Receipt, key SortKey) []entity.Receipt {
	out := make([]entity.Receipt, len(receipts))
	copy(out, receipts)
	sort.SliceStable(out, func(i, j int) bool {
		less, equal := key.less(out[i], out[j])
		if !equal {
			return less
		}
		return out[i].ID < out[j].ID
	})
	return out
}

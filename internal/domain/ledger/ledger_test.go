package ledger

import (
	"testing"
	"time"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
	"github.com/sangkips/receiptbook-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var haircut = entity.ServiceItem{Name: "Haircut", Price: 3000}

func newHaircutReceipt(t *testing.T) entity.Receipt {
	t.Helper()
	r, err := DefaultPolicy.CreateReceipt(NewReceipt{
		Number:   "RCP-1",
		Date:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Customer: entity.Customer{Name: "Alice"},
		Items:    []ItemInput{{ServiceItem: haircut, Quantity: 2}},
	})
	require.NoError(t, err)
	return r
}

func pay(amount money.Money) PaymentRequest {
	return PaymentRequest{
		Method: enum.Cash(),
		Amount: amount,
		Date:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func assertReconciled(t *testing.T, r entity.Receipt) {
	t.Helper()
	assert.Equal(t, r.Total, money.Add(r.Balance, AmountPaid(r.Payments)), "balance + paid must equal total")
	assert.Equal(t, DeriveStatus(r.Total, r.Payments), r.Status)
	assert.Equal(t, TotalOf(r.Items), r.Total)
}

func TestCreateReceipt(t *testing.T) {
	r := newHaircutReceipt(t)

	assert.Equal(t, "RCP-1", r.Number)
	assert.Equal(t, money.Money(6000), r.Total)
	assert.Equal(t, money.Money(6000), r.Balance)
	assert.Equal(t, enum.ReceiptStatusOpen, r.Status)
	require.Len(t, r.Items, 1)
	assert.Equal(t, money.Money(6000), r.Items[0].Total)
	assert.NotNil(t, r.Payments)
	assert.Empty(t, r.Payments)
	assertReconciled(t, r)
}

func TestCreateReceipt_MultipleLines(t *testing.T) {
	r, err := DefaultPolicy.CreateReceipt(NewReceipt{
		Number:   "RCP-2",
		Customer: entity.Customer{Name: "Bob", Contact: "555-0100"},
		Items: []ItemInput{
			{ServiceItem: haircut, Quantity: 1},
			{ServiceItem: entity.ServiceItem{Name: "Beard Trim", Price: 1250}, Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, money.Money(3000+3750), r.Total)
	assert.Equal(t, "Beard Trim", r.Items[1].ServiceItem.Name)
	assertReconciled(t, r)
}

func TestCreateReceipt_Rejections(t *testing.T) {
	tests := []struct {
		name string
		in   NewReceipt
		want *apperror.AppError
	}{
		{
			name: "empty item list",
			in:   NewReceipt{Number: "RCP-1", Customer: entity.Customer{Name: "Alice"}},
			want: apperror.ErrEmptyItemList,
		},
		{
			name: "zero quantity",
			in: NewReceipt{Number: "RCP-1", Customer: entity.Customer{Name: "Alice"},
				Items: []ItemInput{{ServiceItem: haircut, Quantity: 0}}},
			want: apperror.ErrInvalidQuantity,
		},
		{
			name: "negative quantity on second line",
			in: NewReceipt{Number: "RCP-1", Customer: entity.Customer{Name: "Alice"},
				Items: []ItemInput{{ServiceItem: haircut, Quantity: 1}, {ServiceItem: haircut, Quantity: -2}}},
			want: apperror.ErrInvalidQuantity,
		},
		{
			name: "missing customer name",
			in: NewReceipt{Number: "RCP-1", Customer: entity.Customer{Name: "  "},
				Items: []ItemInput{{ServiceItem: haircut, Quantity: 1}}},
			want: apperror.ErrInvalidInput,
		},
		{
			name: "missing number",
			in: NewReceipt{Customer: entity.Customer{Name: "Alice"},
				Items: []ItemInput{{ServiceItem: haircut, Quantity: 1}}},
			want: apperror.ErrInvalidInput,
		},
		{
			name: "empty item list without number or customer",
			in:   NewReceipt{},
			want: apperror.ErrEmptyItemList,
		},
		{
			name: "line total past the maximum amount",
			in: NewReceipt{Number: "RCP-1", Customer: entity.Customer{Name: "Alice"},
				Items: []ItemInput{{ServiceItem: entity.ServiceItem{Name: "Gold", Price: money.MaxAmount / 2}, Quantity: 3}}},
			want: apperror.ErrInvalidAmount,
		},
		{
			name: "receipt total past the maximum amount",
			in: NewReceipt{Number: "RCP-1", Customer: entity.Customer{Name: "Alice"},
				Items: []ItemInput{
					{ServiceItem: entity.ServiceItem{Name: "Gold", Price: money.MaxAmount}, Quantity: 1},
					{ServiceItem: entity.ServiceItem{Name: "Tip", Price: 1}, Quantity: 1},
				}},
			want: apperror.ErrInvalidAmount,
		},
		{
			name: "negative price",
			in: NewReceipt{Number: "RCP-1", Customer: entity.Customer{Name: "Alice"},
				Items: []ItemInput{{ServiceItem: entity.ServiceItem{Name: "Refund", Price: -100}, Quantity: 1}}},
			want: apperror.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultPolicy.CreateReceipt(tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateReceipt_OverflowMessages(t *testing.T) {
	_, err := DefaultPolicy.CreateReceipt(NewReceipt{
		Number:   "RCP-1",
		Customer: entity.Customer{Name: "Alice"},
		Items: []ItemInput{
			{ServiceItem: haircut, Quantity: 1},
			{ServiceItem: entity.ServiceItem{Name: "Gold", Price: money.MaxAmount / 2}, Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "line 2: total exceeds the maximum amount", err.Error())

	_, err = DefaultPolicy.CreateReceipt(NewReceipt{
		Number:   "RCP-1",
		Customer: entity.Customer{Name: "Alice"},
		Items: []ItemInput{
			{ServiceItem: entity.ServiceItem{Name: "Gold", Price: money.MaxAmount}, Quantity: 1},
			{ServiceItem: entity.ServiceItem{Name: "Tip", Price: 1}, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "receipt total exceeds the maximum amount", err.Error())
}

func TestCreateReceipt_LargestTotal(t *testing.T) {
	r, err := DefaultPolicy.CreateReceipt(NewReceipt{
		Number:   "RCP-1",
		Customer: entity.Customer{Name: "Alice"},
		Items: []ItemInput{
			{ServiceItem: entity.ServiceItem{Name: "Gold", Price: money.MaxAmount - 1}, Quantity: 1},
			{ServiceItem: entity.ServiceItem{Name: "Tip", Price: 1}, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, money.MaxAmount, r.Total)
	assert.Equal(t, enum.ReceiptStatusOpen, r.Status)
	assertReconciled(t, r)
}

func TestApplyPayment_FullThenOverpay(t *testing.T) {
	r := newHaircutReceipt(t)

	paid, err := DefaultPolicy.ApplyPayment(r, pay(6000))
	require.NoError(t, err)
	assert.Equal(t, money.Zero, paid.Balance)
	assert.Equal(t, enum.ReceiptStatusPaid, paid.Status)
	assertReconciled(t, paid)

	after, err := DefaultPolicy.ApplyPayment(paid, pay(1))
	assert.ErrorIs(t, err, apperror.ErrOverpaymentRejected)
	assert.Contains(t, err.Error(), "exceeds balance due")
	assert.Equal(t, paid, after)
	assert.Len(t, paid.Payments, 1)
}

func TestApplyPayment_PartialThenSettle(t *testing.T) {
	r := newHaircutReceipt(t)

	partial, err := DefaultPolicy.ApplyPayment(r, pay(2000))
	require.NoError(t, err)
	assert.Equal(t, money.Money(4000), partial.Balance)
	assert.Equal(t, enum.ReceiptStatusPartial, partial.Status)
	assertReconciled(t, partial)

	second := pay(4000)
	second.Method = enum.Card()
	second.Notes = "rest on card"
	settled, err := DefaultPolicy.ApplyPayment(partial, second)
	require.NoError(t, err)
	assert.Equal(t, money.Zero, settled.Balance)
	assert.Equal(t, enum.ReceiptStatusPaid, settled.Status)
	assertReconciled(t, settled)

	require.Len(t, settled.Payments, 2)
	assert.Equal(t, money.Money(2000), settled.Payments[0].Amount)
	assert.Equal(t, money.Money(4000), settled.Payments[1].Amount)
	assert.Equal(t, enum.PaymentMethodCard, settled.Payments[1].Method.Kind())
	assert.Equal(t, "rest on card", settled.Payments[1].Notes)
}

func TestApplyPayment_DoesNotMutateInput(t *testing.T) {
	r := newHaircutReceipt(t)

	updated, err := DefaultPolicy.ApplyPayment(r, pay(1000))
	require.NoError(t, err)

	assert.Empty(t, r.Payments)
	assert.Equal(t, money.Money(6000), r.Balance)
	assert.Equal(t, enum.ReceiptStatusOpen, r.Status)
	assert.Len(t, updated.Payments, 1)
}

func TestApplyPayment_Rejections(t *testing.T) {
	r := newHaircutReceipt(t)

	tests := []struct {
		name string
		req  PaymentRequest
		want *apperror.AppError
	}{
		{"zero amount", pay(0), apperror.ErrNonPositiveAmount},
		{"negative amount", pay(-500), apperror.ErrNonPositiveAmount},
		{"over balance", pay(6001), apperror.ErrOverpaymentRejected},
		{"missing method", PaymentRequest{Amount: 100}, apperror.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultPolicy.ApplyPayment(r, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, r, got)
		})
	}
}

func TestApplyPayment_UsesRecomputedBalance(t *testing.T) {
	r := newHaircutReceipt(t)
	// a stale balance field must not allow overpayment
	r.Payments = []entity.Payment{{ID: 1, Method: enum.Cash(), Amount: 5000}}
	r.Balance = 6000

	_, err := DefaultPolicy.ApplyPayment(r, pay(2000))
	assert.ErrorIs(t, err, apperror.ErrOverpaymentRejected)
}

func TestReconcile(t *testing.T) {
	r := newHaircutReceipt(t)
	r, err := DefaultPolicy.ApplyPayment(r, pay(2500))
	require.NoError(t, err)

	assert.Empty(t, DefaultPolicy.Reconcile(&r))

	r.Total = 1
	r.Balance = 100
	r.Status = enum.ReceiptStatusPaid
	r.Items[0].Total = 1

	drift := DefaultPolicy.Reconcile(&r)
	assert.ElementsMatch(t, []string{"items[0].total", "total", "balance", "status"}, drift)
	assert.Equal(t, money.Money(6000), r.Total)
	assert.Equal(t, money.Money(3500), r.Balance)
	assert.Equal(t, enum.ReceiptStatusPartial, r.Status)
}

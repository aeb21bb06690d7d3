package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/internal/domain/ledger"
	"github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/internal/infrastructure/memory"
	"github.com/sangkips/receiptbook-api/pkg/money"
	"github.com/sangkips/receiptbook-api/pkg/printer"
	"github.com/stretchr/testify/require"
)

var (
	admin = Caller{UserID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), Role: enum.UserRoleAdmin}
	clerk = Caller{UserID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), Role: enum.UserRoleUser}
	guest = Caller{UserID: uuid.MustParse("00000000-0000-0000-0000-00000000000c"), Role: enum.UserRoleGuest}

	fixedNow = time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
)

type testServices struct {
	receipts    *ReceiptService
	catalog     *CatalogService
	profiles    *ProfileService
	roles       *RoleService
	printer     *PrinterService
	exports     *ExportService
	paper       *printer.Buffer
	receiptRepo repository.ReceiptRepository
	profileRepo repository.ProfileRepository
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db, err := memory.NewDB(1)
	require.NoError(t, err)

	receiptRepo := memory.NewReceiptRepository(db)
	profileRepo := memory.NewProfileRepository(db)
	catalog := NewCatalogService(memory.NewServiceItemRepository(db), memory.NewCustomerRepository(db))
	receipts := NewReceiptService(receiptRepo, catalog, ledger.DefaultPolicy, "RCP-")
	receipts.now = func() time.Time { return fixedNow }
	paper := &printer.Buffer{}
	exports := NewExportService(receipts, "$")
	exports.now = func() time.Time { return fixedNow }

	return &testServices{
		receipts:    receipts,
		catalog:     catalog,
		profiles:    NewProfileService(profileRepo),
		roles:       NewRoleService(memory.NewRoleRepository(db)),
		printer:     NewPrinterService(paper, receipts, profileRepo, "network", printer.Width58mm, "$"),
		exports:     exports,
		paper:       paper,
		receiptRepo: receiptRepo,
		profileRepo: profileRepo,
	}
}

func cents(v int64) *money.Money {
	m := money.FromCents(v)
	return &m
}

// haircutReceipt creates RCP-1 for Alice: two haircuts at 30.00
func (s *testServices) haircutReceipt(t *testing.T) int64 {
	t.Helper()
	r, err := s.receipts.CreateReceipt(context.Background(), clerk, &CreateReceiptInput{
		Number:   "RCP-1",
		Customer: customerNamed("Alice"),
		Items:    []LineItemInput{{ServiceName: "Haircut", Price: cents(3000), Quantity: 2}},
		Total:    cents(6000),
	})
	require.NoError(t, err)
	return r.ID
}

func customerNamed(name string) entity.Customer {
	return entity.Customer{Name: name}
}

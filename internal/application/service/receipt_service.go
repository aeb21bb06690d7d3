package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/internal/domain/ledger"
	"github.com/sangkips/receiptbook-api/internal/domain/query"
	"github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
	"github.com/sangkips/receiptbook-api/pkg/money"
	"github.com/sangkips/receiptbook-api/pkg/pagination"
	"github.com/sangkips/receiptbook-api/pkg/utils"
)

// ReceiptService creates receipts, records payments and serves receipt listings
type ReceiptService struct {
	receiptRepo   repository.ReceiptRepository
	catalog       *CatalogService
	policy        ledger.Policy
	receiptPrefix string
	now           func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	catalog *CatalogService,
	policy ledger.Policy,
	receiptPrefix string,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:   receiptRepo,
		catalog:       catalog,
		policy:        policy,
		receiptPrefix: receiptPrefix,
		now:           time.Now,
	}
}

// LineItemInput names a service and how many of it were sold. When Price is
// nil the current catalog price is used.
type LineItemInput struct {
	ServiceName string
	Price       *money.Money
	Quantity    int64
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	Number   string
	Date     time.Time
	Customer entity.Customer
	Items    []LineItemInput
	// Total is what the client computed; it must equal the ledger's total
	Total *money.Money
}

// CreateReceipt validates and stores a new receipt
func (s *ReceiptService) CreateReceipt(ctx context.Context, caller Caller, input *CreateReceiptInput) (*entity.Receipt, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, apperror.New(apperror.KindEmptyItemList, "receipt must have at least one line item")
	}
	if input.Total == nil {
		return nil, apperror.NewInvalidInputError("receipt total is required")
	}

	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	customer := entity.Customer{
		Name:    strings.TrimSpace(input.Customer.Name),
		Contact: strings.TrimSpace(input.Customer.Contact),
	}
	if customer.Contact == "" && customer.Name != "" {
		if known, err := s.catalog.LookupCustomer(ctx, customer.Name); err == nil {
			customer.Contact = known.Contact
		}
	}

	number := strings.TrimSpace(input.Number)
	if number == "" {
		number, err = s.nextNumber(ctx)
		if err != nil {
			return nil, err
		}
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	receipt, err := s.policy.CreateReceipt(ledger.NewReceipt{
		Number:   number,
		Date:     date,
		Customer: customer,
		Items:    items,
	})
	if err != nil {
		return nil, err
	}

	if *input.Total != receipt.Total {
		return nil, apperror.New(apperror.KindTotalMismatch, fmt.Sprintf(
			"submitted total %s does not match the line items total %s",
			money.Format(*input.Total), money.Format(receipt.Total)))
	}

	exists, err := s.receiptRepo.ExistsByNumber(ctx, receipt.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.New(apperror.KindDuplicateReceiptNumber, "receipt number "+receipt.Number+" already exists")
	}

	if err := s.receiptRepo.Create(ctx, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (s *ReceiptService) resolveItems(ctx context.Context, inputs []LineItemInput) ([]ledger.ItemInput, error) {
	items := make([]ledger.ItemInput, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.ServiceName)
		if name == "" {
			return nil, apperror.NewInvalidInputError(fmt.Sprintf("line %d: service item name is required", i+1))
		}

		item := entity.ServiceItem{Name: name}
		if in.Price != nil {
			item.Price = *in.Price
		} else {
			known, err := s.catalog.LookupServiceItem(ctx, name)
			if err != nil {
				return nil, err
			}
			item = *known
		}

		items = append(items, ledger.ItemInput{ServiceItem: item, Quantity: in.Quantity})
	}
	return items, nil
}

// nextNumber generates a default receipt number, suffixing it in the rare case
// that two receipts are created within the same millisecond.
func (s *ReceiptService) nextNumber(ctx context.Context) (string, error) {
	base := utils.GenerateReceiptNumber(s.receiptPrefix, s.now())
	number := base
	for attempt := 2; ; attempt++ {
		exists, err := s.receiptRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
		number = base + "-" + strconv.Itoa(attempt)
	}
}

// AddPaymentInput represents a payment submission. Amount takes precedence;
// DisplayAmount such as "$20.00" is parsed when Amount is nil.
type AddPaymentInput struct {
	Method        enum.PaymentMethod
	Amount        *money.Money
	DisplayAmount string
	Notes         string
	Date          time.Time
}

// AddPayment records a payment against an existing receipt
func (s *ReceiptService) AddPayment(ctx context.Context, caller Caller, receiptID int64, input *AddPaymentInput) (*entity.Receipt, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}

	var amount money.Money
	switch {
	case input.Amount != nil:
		amount = *input.Amount
	case strings.TrimSpace(input.DisplayAmount) != "":
		parsed, err := money.Parse(input.DisplayAmount)
		if err != nil {
			return nil, err
		}
		amount = parsed
	default:
		return nil, apperror.NewInvalidInputError("payment amount is required")
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	req := ledger.PaymentRequest{
		Method: input.Method,
		Amount: amount,
		Notes:  strings.TrimSpace(input.Notes),
		Date:   date,
	}
	return s.receiptRepo.AppendPayment(ctx, receiptID, func(current entity.Receipt) (entity.Receipt, error) {
		return s.policy.ApplyPayment(current, req)
	})
}

// GetReceipt retrieves a receipt by ID
func (s *ReceiptService) GetReceipt(ctx context.Context, caller Caller, id int64) (*entity.Receipt, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// GetReceiptPayments returns the payments of a receipt in the order they were recorded
func (s *ReceiptService) GetReceiptPayments(ctx context.Context, caller Caller, id int64) ([]entity.Payment, error) {
	receipt, err := s.GetReceipt(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return receipt.Payments, nil
}

// GetReceipts lists every receipt, most recent first
func (s *ReceiptService) GetReceipts(ctx context.Context, caller Caller) ([]entity.Receipt, error) {
	return s.GetReceiptsSorted(ctx, caller, string(query.DefaultSortKey))
}

// GetReceiptsSorted lists every receipt ordered by key
func (s *ReceiptService) GetReceiptsSorted(ctx context.Context, caller Caller, key string) ([]entity.Receipt, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}
	sortKey, err := query.ParseSortKey(key)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Sort(receipts, sortKey), nil
}

// ListReceiptsInput represents the listing filters, order and page
type ListReceiptsInput struct {
	Status string
	Search string
	Sort   string
	Page   pagination.Params
}

// FindReceipts filters and orders the receipt collection
func (s *ReceiptService) FindReceipts(ctx context.Context, caller Caller, input *ListReceiptsInput) ([]entity.Receipt, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}
	predicate, err := query.NewPredicate(input.Status, input.Search)
	if err != nil {
		return nil, err
	}
	sortKey, err := query.ParseSortKey(input.Sort)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Sort(query.Filter(receipts, predicate), sortKey), nil
}

// ListReceipts returns one page of FindReceipts
func (s *ReceiptService) ListReceipts(ctx context.Context, caller Caller, input *ListReceiptsInput) (*pagination.Result[entity.Receipt], error) {
	receipts, err := s.FindReceipts(ctx, caller, input)
	if err != nil {
		return nil, err
	}
	return pagination.Slice(receipts, input.Page), nil
}

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/ledger"
	"github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/pkg/money"
	"github.com/sangkips/receiptbook-api/pkg/printer"
)

const printDateLayout = "2006-01-02 15:04"

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	receipts    *ReceiptService
	profileRepo repository.ProfileRepository
	printerType string
	width       int
	symbol      string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	receipts *ReceiptService,
	profileRepo repository.ProfileRepository,
	printerType string,
	width int,
	currencySymbol string,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		receipts:    receipts,
		profileRepo: profileRepo,
		printerType: printerType,
		width:       width,
		symbol:      currencySymbol,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.Ready(ctx),
		Type:       s.printerType,
	}
}

// PrintReceipt renders a stored receipt and sends it to the printer.
// When the printer fails the rendered receipt is still returned with the error.
func (s *PrinterService) PrintReceipt(ctx context.Context, caller Caller, receiptID int64) (*entity.PrintableReceipt, error) {
	receipt, err := s.receipts.GetReceipt(ctx, caller, receiptID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetBusinessProfile(ctx)
	if err != nil {
		return nil, err
	}

	view := BuildPrintableReceipt(receipt, profile, s.symbol)
	if err := s.printer.Print(ctx, FormatReceipt(view, s.width)); err != nil {
		log.Printf("Printer error (receipt %d): %v", receiptID, err)
		return view, fmt.Errorf("failed to print receipt: %w", err)
	}
	return view, nil
}

// BuildPrintableReceipt formats every amount of r for display under the business header.
func BuildPrintableReceipt(r *entity.Receipt, profile *entity.BusinessProfile, symbol string) *entity.PrintableReceipt {
	format := func(m money.Money) string { return money.FormatWith(m, symbol) }

	view := &entity.PrintableReceipt{
		Header:   entity.ReceiptHeader{BusinessName: "Receipt"},
		Number:   r.Number,
		Date:     r.Date.Format(printDateLayout),
		Customer: r.Customer.Name,
		Contact:  r.Customer.Contact,
		Items:    make([]entity.PrintableLine, 0, len(r.Items)),
		Payments: make([]entity.PrintablePayment, 0, len(r.Payments)),
		Total:    format(r.Total),
		Paid:     format(ledger.AmountPaid(r.Payments)),
		Balance:  format(r.Balance),
		Status:   r.Status.Label(),
	}
	if profile != nil {
		view.Header = entity.ReceiptHeader{
			BusinessName: profile.Name,
			Address:      profile.Address,
			Phone:        profile.Phone,
			Email:        profile.Email,
		}
	}

	for _, item := range r.Items {
		view.Items = append(view.Items, entity.PrintableLine{
			Name:      item.ServiceItem.Name,
			Quantity:  item.Quantity,
			UnitPrice: format(item.ServiceItem.Price),
			Total:     format(item.Total),
		})
	}
	for _, p := range r.Payments {
		view.Payments = append(view.Payments, entity.PrintablePayment{
			Date:   p.Date.Format(printDateLayout),
			Method: p.Method.String(),
			Amount: format(p.Amount),
			Notes:  p.Notes,
		})
	}
	return view
}

// FormatReceipt converts a printable receipt into ESC/POS bytes.
func FormatReceipt(r *entity.PrintableReceipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.SizeDouble).
		Line(r.Header.BusinessName).
		Size(printer.SizeNormal).
		Bold(false)
	for _, line := range []string{r.Header.Address, r.Header.Phone, r.Header.Email} {
		if line != "" {
			doc.Line(line)
		}
	}

	doc.Align(printer.AlignLeft).Rule('-')

	doc.Columns("Receipt:", r.Number).
		Columns("Date:", r.Date).
		Columns("Customer:", r.Customer)
	if r.Contact != "" {
		doc.Columns("Contact:", r.Contact)
	}

	doc.Rule('-')

	for _, item := range r.Items {
		doc.Columns(fmt.Sprintf("%dx %s", item.Quantity, item.Name), item.Total)
		if item.Quantity > 1 {
			doc.Linef("  @ %s each", item.UnitPrice)
		}
	}

	doc.Rule('-')

	doc.Bold(true).
		Columns("TOTAL:", r.Total).
		Bold(false)

	if len(r.Payments) > 0 {
		doc.Rule('-')
		for _, p := range r.Payments {
			doc.Columns(p.Date+" "+p.Method, p.Amount)
			if p.Notes != "" {
				doc.Line("  " + p.Notes)
			}
		}
		doc.Columns("Paid:", r.Paid)
	}

	doc.Bold(true).
		Columns("Balance:", r.Balance).
		Bold(false).
		Columns("Status:", r.Status)

	doc.Rule('-').
		Align(printer.AlignCenter).
		Feed(1).
		Line("Thank you for your business!").
		Feed(1).
		Align(printer.AlignLeft)

	return doc.Feed(3).Cut().Bytes()
}

// TestPrint sends a sample receipt to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.PrintableReceipt, error) {
	sample := &entity.Receipt{
		Number:   "TEST-001",
		Date:     time.Now(),
		Customer: entity.Customer{Name: "Printer Test"},
		Items: []entity.LineItem{
			{ServiceItem: entity.ServiceItem{Name: "Test Item 1", Price: 1000}, Quantity: 1, Total: 1000},
			{ServiceItem: entity.ServiceItem{Name: "Test Item 2", Price: 500}, Quantity: 2, Total: 1000},
		},
		Payments: []entity.Payment{},
	}
	ledger.DefaultPolicy.Reconcile(sample)

	view := BuildPrintableReceipt(sample, &entity.BusinessProfile{Name: "PRINTER TEST"}, s.symbol)
	if err := s.printer.Print(ctx, FormatReceipt(view, s.width)); err != nil {
		return view, fmt.Errorf("test print failed: %w", err)
	}
	return view, nil
}

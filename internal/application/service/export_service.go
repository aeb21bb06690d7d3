package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/ledger"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
	"github.com/sangkips/receiptbook-api/pkg/money"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
)

// ExportFile is a rendered receipt listing ready to download
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders filtered receipt listings as spreadsheets
type ExportService struct {
	receipts *ReceiptService
	symbol   string
	now      func() time.Time
}

// NewExportService creates a new export service
func NewExportService(receipts *ReceiptService, currencySymbol string) *ExportService {
	return &ExportService{receipts: receipts, symbol: currencySymbol, now: time.Now}
}

var exportHeader = []string{"ID", "Number", "Date", "Customer", "Contact", "Items", "Total", "Paid", "Balance", "Status"}

// ExportReceipts renders every receipt matching input, ignoring paging
func (s *ExportService) ExportReceipts(ctx context.Context, caller Caller, input *ListReceiptsInput, format string) (*ExportFile, error) {
	if format != ExportCSV && format != ExportXLSX && format != "excel" {
		return nil, apperror.NewInvalidInputError(fmt.Sprintf("unknown export format %q (use csv or xlsx)", format))
	}

	receipts, err := s.receipts.FindReceipts(ctx, caller, input)
	if err != nil {
		return nil, err
	}

	stamp := s.now().Format("20060102_150405")
	if format == ExportCSV {
		data, err := s.receiptsCSV(receipts)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    "receipts_" + stamp + ".csv",
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	}

	data, err := s.receiptsXLSX(receipts)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Filename:    "receipts_" + stamp + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

func (s *ExportService) row(r entity.Receipt) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Number,
		r.Date.Format("2006-01-02 15:04"),
		r.Customer.Name,
		r.Customer.Contact,
		strconv.Itoa(len(r.Items)),
		money.FormatWith(r.Total, s.symbol),
		money.FormatWith(ledger.AmountPaid(r.Payments), s.symbol),
		money.FormatWith(r.Balance, s.symbol),
		r.Status.Label(),
	}
}

func (s *ExportService) receiptsCSV(receipts []entity.Receipt) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write(exportHeader)
	for _, r := range receipts {
		_ = w.Write(s.row(r))
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (s *ExportService) receiptsXLSX(receipts []entity.Receipt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Receipts"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for c, v := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for i, r := range receipts {
		row := i + 2
		// amounts stay numeric so the sheet can sum them
		values := []any{
			r.ID,
			r.Number,
			r.Date.Format("2006-01-02 15:04"),
			r.Customer.Name,
			r.Customer.Contact,
			len(r.Items),
			float64(r.Total.Cents()) / 100,
			float64(ledger.AmountPaid(r.Payments).Cents()) / 100,
			float64(r.Balance.Cents()) / 100,
			r.Status.Label(),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 20)
	_ = f.SetColWidth(sheet, "C", "C", 18)
	_ = f.SetColWidth(sheet, "D", "E", 24)
	_ = f.SetColWidth(sheet, "F", "F", 8)
	_ = f.SetColWidth(sheet, "G", "I", 14)
	_ = f.SetColWidth(sheet, "J", "J", 16)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "J1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

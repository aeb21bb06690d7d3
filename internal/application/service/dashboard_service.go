package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/internal/domain/ledger"
	"github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/pkg/money"
)

// DashboardService summarizes the receipt ledger
type DashboardService struct {
	receiptRepo repository.ReceiptRepository
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(receiptRepo repository.ReceiptRepository) *DashboardService {
	return &DashboardService{receiptRepo: receiptRepo, now: time.Now}
}

// DashboardStats represents ledger totals. Amounts are in cents.
type DashboardStats struct {
	TotalReceipts     int                `json:"total_receipts"`
	OpenReceipts      int                `json:"open_receipts"`
	PartialReceipts   int                `json:"partial_receipts"`
	PaidReceipts      int                `json:"paid_receipts"`
	TotalBilled       money.Money        `json:"total_billed"`
	TotalCollected    money.Money        `json:"total_collected"`
	Outstanding       money.Money        `json:"outstanding"`
	MonthlyCollected  money.Money        `json:"monthly_collected"`
	DailyCollections  []DailyCollection  `json:"daily_collections"`
	CollectionsByType []MethodCollection `json:"collections_by_method"`
}

// DailyCollection is the sum of payments taken on one day
type DailyCollection struct {
	Date   string      `json:"date"`
	Amount money.Money `json:"amount"`
}

// MethodCollection is the sum of payments taken with one payment method
type MethodCollection struct {
	Method string      `json:"method"`
	Amount money.Money `json:"amount"`
}

// GetDashboardStats computes the ledger summary over every stored receipt
func (s *DashboardService) GetDashboardStats(ctx context.Context, caller Caller) (*DashboardStats, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	daily := make(map[string]money.Money, 7)
	byMethod := make(map[string]money.Money)

	stats := &DashboardStats{TotalReceipts: len(receipts)}
	for _, r := range receipts {
		switch r.Status {
		case enum.ReceiptStatusOpen:
			stats.OpenReceipts++
		case enum.ReceiptStatusPartial:
			stats.PartialReceipts++
		case enum.ReceiptStatusPaid:
			stats.PaidReceipts++
		}
		stats.TotalBilled = money.Add(stats.TotalBilled, r.Total)
		stats.TotalCollected = money.Add(stats.TotalCollected, ledger.AmountPaid(r.Payments))
		stats.Outstanding = money.Add(stats.Outstanding, r.Balance)

		for _, p := range r.Payments {
			if !p.Date.Before(startOfMonth) {
				stats.MonthlyCollected = money.Add(stats.MonthlyCollected, p.Amount)
			}
			day := p.Date.In(now.Location()).Format("2006-01-02")
			daily[day] = money.Add(daily[day], p.Amount)
			byMethod[p.Method.String()] = money.Add(byMethod[p.Method.String()], p.Amount)
		}
	}

	// Last 7 days, oldest first
	stats.DailyCollections = make([]DailyCollection, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		stats.DailyCollections = append(stats.DailyCollections, DailyCollection{
			Date:   date.Format("2006-01-02"),
			Amount: daily[date.Format("2006-01-02")],
		})
	}

	stats.CollectionsByType = make([]MethodCollection, 0, len(byMethod))
	for method, amount := range byMethod {
		stats.CollectionsByType = append(stats.CollectionsByType, MethodCollection{Method: method, Amount: amount})
	}
	sort.Slice(stats.CollectionsByType, func(i, j int) bool {
		return stats.CollectionsByType[i].Method < stats.CollectionsByType[j].Method
	})

	return stats, nil
}

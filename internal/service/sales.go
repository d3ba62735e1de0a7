package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/salesdata/internal/domain/models"
	"github.com/guttosm/salesdata/internal/metrics"
	"github.com/guttosm/salesdata/internal/storage"
	"github.com/shopspring/decimal"
)

// revenuePlaces is the number of decimals kept in the reported revenue.
const revenuePlaces = 2

// SalesService defines business logic for computing sales aggregates.
type SalesService interface {
	GetSalesSummary(ctx context.Context, interval models.Interval) (*models.SalesSummary, error)
}

type salesService struct {
	store storage.DateRangeOrderStore
}

func NewSalesService(store storage.DateRangeOrderStore) SalesService {
	return &salesService{store: store}
}

// GetSalesSummary queries every order created inside interval and reduces
// them to a purchase count and a revenue total.
func (s *salesService) GetSalesSummary(ctx context.Context, interval models.Interval) (*models.SalesSummary, error) {
	start := time.Now()
	page, err := s.store.QueryOrders(ctx, interval)
	metrics.ObserveStoreQuery(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	return Summarize(page), nil
}

// Summarize aggregates an order page.
//
// Purchases is the store reported TotalCount, which may exceed len(Items)
// when the store caps its page size. Revenue adds every Totals.Total with
// exact decimal arithmetic, counting a missing total as zero, and rounds
// the sum once, half away from zero, to two places.
func Summarize(page *models.OrderPage) *models.SalesSummary {
	if page == nil {
		return &models.SalesSummary{}
	}

	sum := decimal.Zero
	for _, o := range page.Items {
		if o.Totals.Total.Valid {
			sum = sum.Add(o.Totals.Total.Decimal)
		}
	}

	revenue, _ := sum.Round(revenuePlaces).Float64()
	return &models.SalesSummary{
		Purchases: page.TotalCount,
		Revenue:   revenue,
	}
}

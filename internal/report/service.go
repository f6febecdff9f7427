package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gerai-retail/api/internal/database"
	"github.com/gerai-retail/api/internal/enum"
	"golang.org/x/sync/errgroup"
)

// SalesRecordStore defines the DB methods the report service needs.
// Satisfied by *database.Queries.
type SalesRecordStore interface {
	ListSalesRecordsByDateRange(ctx context.Context, arg database.ListSalesRecordsByDateRangeParams) ([]database.SalesRecord, error)
}

// Cache stores serialized report payloads. Satisfied by
// *cache.RedisReportCache. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service computes analytics over sales records.
type Service struct {
	store SalesRecordStore
	cache Cache
	ttl   time.Duration
}

func NewService(store SalesRecordStore, cache Cache, ttl time.Duration) *Service {
	return &Service{store: store, cache: cache, ttl: ttl}
}

// ProductSalesReport is the per-product sales view for a date range,
// sorted by revenue descending.
type ProductSalesReport struct {
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	Totals    Totals           `json:"totals"`
	Products  []ProductSummary `json:"products"`
}

// PeriodTotals is one dashboard window's summary.
type PeriodTotals struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Totals    Totals    `json:"totals"`
}

// DashboardReport holds the day/month/year windows anchored at one
// reference date.
type DashboardReport struct {
	Day   PeriodTotals `json:"day"`
	Month PeriodTotals `json:"month"`
	Year  PeriodTotals `json:"year"`
}

func (s *Service) fetch(ctx context.Context, start, end time.Time) ([]database.SalesRecord, error) {
	records, err := s.store.ListSalesRecordsByDateRange(ctx, database.ListSalesRecordsByDateRangeParams{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("list sales records: %w", err)
	}
	return records, nil
}

// ProductSales aggregates per-product revenue, cost, and profit for the
// range, sorted by revenue descending.
func (s *Service) ProductSales(ctx context.Context, start, end time.Time) (*ProductSalesReport, error) {
	key := fmt.Sprintf("report:sales:%d:%d", start.Unix(), end.Unix())
	if s.cache != nil {
		var cached ProductSalesReport
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("ERROR: report cache get %s: %v", key, err)
		} else if hit {
			return &cached, nil
		}
	}

	records, err := s.fetch(ctx, start, end)
	if err != nil {
		return nil, err
	}

	products := AggregateByProduct(records)
	SortByRevenue(products)

	result := &ProductSalesReport{
		StartDate: start,
		EndDate:   end,
		Totals:    Summarize(records),
		Products:  products,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
			log.Printf("ERROR: report cache set %s: %v", key, err)
		}
	}
	return result, nil
}

// Profits aggregates the same per-product figures as ProductSales but
// sorts by total profit descending, for the profit-focused view.
func (s *Service) Profits(ctx context.Context, start, end time.Time) (*ProductSalesReport, error) {
	key := fmt.Sprintf("report:profits:%d:%d", start.Unix(), end.Unix())
	if s.cache != nil {
		var cached ProductSalesReport
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("ERROR: report cache get %s: %v", key, err)
		} else if hit {
			return &cached, nil
		}
	}

	records, err := s.fetch(ctx, start, end)
	if err != nil {
		return nil, err
	}

	products := AggregateByProduct(records)
	SortByProfit(products)

	result := &ProductSalesReport{
		StartDate: start,
		EndDate:   end,
		Totals:    Summarize(records),
		Products:  products,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
			log.Printf("ERROR: report cache set %s: %v", key, err)
		}
	}
	return result, nil
}

// TrendingProducts returns the top products for the range, sorted by
// quantity or revenue and truncated to TrendingLimit.
func (s *Service) TrendingProducts(ctx context.Context, start, end time.Time, sortBy string) ([]ProductSummary, error) {
	if sortBy != enum.TrendingSortQuantity && sortBy != enum.TrendingSortRevenue {
		sortBy = enum.TrendingSortQuantity
	}

	records, err := s.fetch(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return Trending(AggregateByProduct(records), sortBy), nil
}

// Dashboard computes the day, month, and year windows anchored at ref.
// The three windows are independent read-only aggregations, so they
// are fetched concurrently.
func (s *Service) Dashboard(ctx context.Context, ref time.Time) (*DashboardReport, error) {
	key := fmt.Sprintf("report:dashboard:%s", ref.Format("2006-01-02"))
	if s.cache != nil {
		var cached DashboardReport
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("ERROR: report cache get %s: %v", key, err)
		} else if hit {
			return &cached, nil
		}
	}

	var result DashboardReport
	g, gctx := errgroup.WithContext(ctx)

	for _, w := range []struct {
		period string
		dest   *PeriodTotals
	}{
		{enum.PeriodDay, &result.Day},
		{enum.PeriodMonth, &result.Month},
		{enum.PeriodYear, &result.Year},
	} {
		g.Go(func() error {
			start, end, err := PeriodRange(w.period, ref)
			if err != nil {
				return err
			}
			records, err := s.fetch(gctx, start, end)
			if err != nil {
				return err
			}
			*w.dest = PeriodTotals{
				Period:    w.period,
				StartDate: start,
				EndDate:   end,
				Totals:    Summarize(records),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, &result, s.ttl); err != nil {
			log.Printf("ERROR: report cache set %s: %v", key, err)
		}
	}
	return &result, nil
}

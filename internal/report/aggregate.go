package report

import (
	"sort"
	"time"

	"github.com/gerai-retail/api/internal/database"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// TrendingLimit caps the trending view after sorting.
const TrendingLimit = 20

// ProductSummary is one product's aggregated totals over a set of
// sales records.
type ProductSummary struct {
	ProductID    string          `json:"product_id,omitempty"`
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	Revenue      decimal.Decimal `json:"revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	AvgSalePrice decimal.Decimal `json:"avg_sale_price"`
	AvgCostPrice decimal.Decimal `json:"avg_cost_price"`
}

// Totals is the overall summary across all records in a range.
// Cost and profit come from the raw per-line sums, not from the
// precomputed total_profit snapshots, so a stale snapshot cannot skew
// the overall numbers.
type Totals struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	TotalProfit       decimal.Decimal `json:"total_profit"`
	TotalQuantity     int64           `json:"total_quantity"`
	TotalTransactions int64           `json:"total_transactions"`
}

// FilterByDate returns the records whose sale_date falls inside
// [start, end], inclusive on both ends.
func FilterByDate(records []database.SalesRecord, start, end time.Time) []database.SalesRecord {
	var out []database.SalesRecord
	for _, r := range records {
		if r.SaleDate.Before(start) || r.SaleDate.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// groupKey groups by product_id, falling back to product_name for
// records whose product was deleted.
func groupKey(r database.SalesRecord) string {
	if r.ProductID.Valid {
		return uuidString(r.ProductID)
	}
	return "name:" + r.ProductName
}

func uuidString(u pgtype.UUID) string {
	v, err := u.Value()
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// AggregateByProduct groups records by product and sums quantity,
// revenue, cost, and profit. Cost is accumulated as cost_per_unit ×
// quantity per line. Result order follows first appearance in the
// input, which keeps downstream sorts stable and deterministic.
func AggregateByProduct(records []database.SalesRecord) []ProductSummary {
	index := make(map[string]int)
	var out []ProductSummary

	for _, r := range records {
		key := groupKey(r)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			s := ProductSummary{ProductName: r.ProductName}
			if r.ProductID.Valid {
				s.ProductID = uuidString(r.ProductID)
			}
			out = append(out, s)
		}

		qty := decimal.NewFromInt32(r.Quantity)
		out[i].Quantity += int64(r.Quantity)
		out[i].Revenue = out[i].Revenue.Add(numericToDecimal(r.TotalPrice))
		out[i].TotalCost = out[i].TotalCost.Add(numericToDecimal(r.CostPerUnit).Mul(qty))
	}

	for i := range out {
		out[i].TotalProfit = out[i].Revenue.Sub(out[i].TotalCost)
		// Quantity > 0 for any grouped product, but keep the guard explicit.
		if out[i].Quantity > 0 {
			qty := decimal.NewFromInt(out[i].Quantity)
			out[i].AvgSalePrice = out[i].Revenue.Div(qty).Round(2)
			out[i].AvgCostPrice = out[i].TotalCost.Div(qty).Round(2)
		}
	}

	return out
}

// SortByRevenue orders summaries by revenue descending, ties keeping
// their original order.
func SortByRevenue(summaries []ProductSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Revenue.GreaterThan(summaries[j].Revenue)
	})
}

// SortByProfit orders summaries by total profit descending, ties
// keeping their original order.
func SortByProfit(summaries []ProductSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalProfit.GreaterThan(summaries[j].TotalProfit)
	})
}

// SortByQuantity orders summaries by quantity descending, ties keeping
// their original order.
func SortByQuantity(summaries []ProductSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Quantity > summaries[j].Quantity
	})
}

// Trending sorts by the requested key ("quantity" or "revenue") and
// truncates to the top TrendingLimit products.
func Trending(summaries []ProductSummary, sortBy string) []ProductSummary {
	if sortBy == "revenue" {
		SortByRevenue(summaries)
	} else {
		SortByQuantity(summaries)
	}
	if len(summaries) > TrendingLimit {
		summaries = summaries[:TrendingLimit]
	}
	return summaries
}

// Summarize computes the overall totals for a set of records.
// Transactions count distinct invoices.
func Summarize(records []database.SalesRecord) Totals {
	t := Totals{
		TotalRevenue: decimal.Zero,
		TotalCost:    decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	seen := make(map[string]struct{})
	for _, r := range records {
		qty := decimal.NewFromInt32(r.Quantity)
		t.TotalRevenue = t.TotalRevenue.Add(numericToDecimal(r.TotalPrice))
		t.TotalCost = t.TotalCost.Add(numericToDecimal(r.CostPerUnit).Mul(qty))
		t.TotalQuantity += int64(r.Quantity)
		if _, ok := seen[r.InvoiceID.String()]; !ok {
			seen[r.InvoiceID.String()] = struct{}{}
			t.TotalTransactions++
		}
	}
	t.TotalProfit = t.TotalRevenue.Sub(t.TotalCost)
	return t
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

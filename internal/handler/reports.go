package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gerai-retail/api/internal/enum"
	"github.com/gerai-retail/api/internal/report"
	"github.com/go-chi/chi/v5"
)

// ReportServicer defines the service methods needed by report handlers.
// Satisfied by *report.Service; narrow interface for testability.
type ReportServicer interface {
	ProductSales(ctx context.Context, start, end time.Time) (*report.ProductSalesReport, error)
	Profits(ctx context.Context, start, end time.Time) (*report.ProductSalesReport, error)
	TrendingProducts(ctx context.Context, start, end time.Time, sortBy string) ([]report.ProductSummary, error)
	Dashboard(ctx context.Context, ref time.Time) (*report.DashboardReport, error)
}

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	svc ReportServicer
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(svc ReportServicer) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// RegisterRoutes registers report endpoints on the given Chi router.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/product-sales", h.ProductSales)
	r.Get("/profits", h.Profits)
	r.Get("/trending", h.Trending)
	r.Get("/dashboard", h.Dashboard)
}

// ProductSales returns per-product sales totals for a date range.
func (h *ReportsHandler) ProductSales(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.svc.ProductSales(r.Context(), startDate, endDate)
	if err != nil {
		log.Printf("ERROR: product sales report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Profits returns per-product profit totals for a date range, ordered
// by profit.
func (h *ReportsHandler) Profits(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.svc.Profits(r.Context(), startDate, endDate)
	if err != nil {
		log.Printf("ERROR: profits report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Trending returns the top-selling products for a date range, sorted by
// quantity (default) or revenue via ?sort_by=.
func (h *ReportsHandler) Trending(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sortBy := r.URL.Query().Get("sort_by")
	if sortBy != "" && sortBy != enum.TrendingSortQuantity && sortBy != enum.TrendingSortRevenue {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sort_by must be quantity or revenue"})
		return
	}

	products, err := h.svc.TrendingProducts(r.Context(), startDate, endDate, sortBy)
	if err != nil {
		log.Printf("ERROR: trending report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Dashboard returns today/this-month/this-year summaries in one call.
func (h *ReportsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ref := time.Now().In(reportLocation())

	if s := r.URL.Query().Get("date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, reportLocation())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format"})
			return
		}
		ref = t
	}

	result, err := h.svc.Dashboard(r.Context(), ref)
	if err != nil {
		log.Printf("ERROR: dashboard report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// --- Helpers ---

// reportLocation returns the store's local timezone for report windows.
func reportLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.FixedZone("WIB", 7*3600)
	}
	return loc
}

// parseDateRange parses start_date and end_date query params in the store's
// local timezone. Defaults to the last 30 days if not provided.
// The returned end is inclusive (last nanosecond of the end day).
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	const layout = "2006-01-02"

	loc := reportLocation()
	now := time.Now().In(loc)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	startDate := today.AddDate(0, 0, -30)
	endDate := today.AddDate(0, 0, 1).Add(-time.Nanosecond)

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format: %w", err)
		}
		startDate = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format: %w", err)
		}
		endDate = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	if !startDate.Before(endDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be before end_date")
	}

	return startDate, endDate, nil
}

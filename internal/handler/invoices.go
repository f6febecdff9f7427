package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gerai-retail/api/internal/database"
	"github.com/gerai-retail/api/internal/enum"
	"github.com/gerai-retail/api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// InvoiceServicer defines the service methods needed by invoice handlers.
// Satisfied by *service.InvoiceService; narrow interface for testability.
type InvoiceServicer interface {
	CreateInvoice(ctx context.Context, req service.CreateInvoiceRequest) (*service.CreateInvoiceResult, error)
	SetPaymentStatus(ctx context.Context, invoiceID uuid.UUID, newStatus string) (*service.StatusChangeResult, error)
}

// InvoiceReadStore defines the database methods needed by invoice
// read/delete handlers. Satisfied by *database.Queries.
type InvoiceReadStore interface {
	GetInvoice(ctx context.Context, id uuid.UUID) (database.Invoice, error)
	ListInvoices(ctx context.Context, arg database.ListInvoicesParams) ([]database.Invoice, error)
	ListInvoiceItemsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]database.InvoiceItem, error)
	ListSalesRecordsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]database.SalesRecord, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// Notifier publishes invoice events to connected clients.
// Satisfied by *ws.Hub; a nil Notifier disables events.
type Notifier interface {
	Notify(eventType string, payload any)
}

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	svc      InvoiceServicer
	store    InvoiceReadStore
	notifier Notifier
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(svc InvoiceServicer, store InvoiceReadStore, notifier Notifier) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, store: store, notifier: notifier}
}

// RegisterRoutes registers invoice endpoints on the given Chi router.
func (h *InvoiceHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/sales-records", h.SalesRecords)
}

// --- Request / Response types ---

type createInvoiceRequest struct {
	CustomerName  string                     `json:"customer_name"`
	CustomerPhone string                     `json:"customer_phone"`
	DiscountType  string                     `json:"discount_type"`
	DiscountValue string                     `json:"discount_value"`
	PaymentStatus string                     `json:"payment_status"`
	Items         []createInvoiceItemRequest `json:"items"`
}

type createInvoiceItemRequest struct {
	ProductID string `json:"product_id"`
	SizeID    string `json:"size_id"`
	ColorID   string `json:"color_id"`
	Quantity  int32  `json:"quantity"`
}

type updateStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

type invoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	InvoiceNumber  string                `json:"invoice_number"`
	CustomerName   *string               `json:"customer_name"`
	CustomerPhone  *string               `json:"customer_phone"`
	Subtotal       string                `json:"subtotal"`
	TaxAmount      string                `json:"tax_amount"`
	DiscountAmount string                `json:"discount_amount"`
	GrandTotal     string                `json:"grand_total"`
	PaymentStatus  string                `json:"payment_status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Items          []invoiceItemResponse `json:"items,omitempty"`
}

type invoiceItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   *string   `json:"product_id"`
	ProductName string    `json:"product_name"`
	SizeName    *string   `json:"size_name"`
	ColorName   *string   `json:"color_name"`
	Quantity    int32     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	TotalPrice  string    `json:"total_price"`
}

type salesRecordResponse struct {
	ID            uuid.UUID `json:"id"`
	InvoiceID     uuid.UUID `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	ProductID     *string   `json:"product_id"`
	ProductName   string    `json:"product_name"`
	SizeName      *string   `json:"size_name"`
	ColorName     *string   `json:"color_name"`
	Quantity      int32     `json:"quantity"`
	UnitPrice     string    `json:"unit_price"`
	TotalPrice    string    `json:"total_price"`
	CostPerUnit   string    `json:"cost_per_unit"`
	ProfitPerUnit string    `json:"profit_per_unit"`
	TotalProfit   string    `json:"total_profit"`
	SaleDate      time.Time `json:"sale_date"`
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func uuidPtr(u pgtype.UUID) *string {
	if !u.Valid {
		return nil
	}
	s := uuid.UUID(u.Bytes).String()
	return &s
}

func toInvoiceResponse(inv database.Invoice, items []database.InvoiceItem) invoiceResponse {
	resp := invoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		CustomerName:   textPtr(inv.CustomerName),
		CustomerPhone:  textPtr(inv.CustomerPhone),
		Subtotal:       numericToString(inv.Subtotal),
		TaxAmount:      numericToString(inv.TaxAmount),
		DiscountAmount: numericToString(inv.DiscountAmount),
		GrandTotal:     numericToString(inv.GrandTotal),
		PaymentStatus:  inv.PaymentStatus,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, invoiceItemResponse{
			ID:          item.ID,
			ProductID:   uuidPtr(item.ProductID),
			ProductName: item.ProductName,
			SizeName:    textPtr(item.SizeName),
			ColorName:   textPtr(item.ColorName),
			Quantity:    item.Quantity,
			UnitPrice:   numericToString(item.UnitPrice),
			TotalPrice:  numericToString(item.TotalPrice),
		})
	}
	return resp
}

func toSalesRecordResponse(rec database.SalesRecord) salesRecordResponse {
	return salesRecordResponse{
		ID:            rec.ID,
		InvoiceID:     rec.InvoiceID,
		InvoiceNumber: rec.InvoiceNumber,
		ProductID:     uuidPtr(rec.ProductID),
		ProductName:   rec.ProductName,
		SizeName:      textPtr(rec.SizeName),
		ColorName:     textPtr(rec.ColorName),
		Quantity:      rec.Quantity,
		UnitPrice:     numericToString(rec.UnitPrice),
		TotalPrice:    numericToString(rec.TotalPrice),
		CostPerUnit:   numericToString(rec.CostPerUnit),
		ProfitPerUnit: numericToString(rec.ProfitPerUnit),
		TotalProfit:   numericToString(rec.TotalProfit),
		SaleDate:      rec.SaleDate,
	}
}

// --- Handlers ---

// Create creates an invoice with its line items.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	items := make([]service.CreateInvoiceItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CreateInvoiceItemRequest{
			ProductID: item.ProductID,
			SizeID:    item.SizeID,
			ColorID:   item.ColorID,
			Quantity:  item.Quantity,
		}
	}

	result, err := h.svc.CreateInvoice(r.Context(), service.CreateInvoiceRequest{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		PaymentStatus: req.PaymentStatus,
		Items:         items,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := toInvoiceResponse(result.Invoice, result.Items)
	if h.notifier != nil {
		h.notifier.Notify("invoice.created", resp)
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List returns invoices, optionally filtered by payment status and
// creation date range.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	params := database.ListInvoicesParams{
		Limit:  50,
		Offset: 0,
	}

	if s := r.URL.Query().Get("payment_status"); s != "" {
		if s != enum.PaymentStatusPending && s != enum.PaymentStatusDone {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payment_status"})
			return
		}
		params.PaymentStatus = pgtype.Text{String: s, Valid: true}
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date format"})
			return
		}
		params.StartDate = pgtype.Timestamptz{Time: t, Valid: true}
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date format"})
			return
		}
		// Inclusive end date.
		params.EndDate = pgtype.Timestamptz{Time: t.AddDate(0, 0, 1).Add(-time.Nanosecond), Valid: true}
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 200 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		params.Limit = int32(n)
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid offset"})
			return
		}
		params.Offset = int32(n)
	}

	invoices, err := h.store.ListInvoices(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list invoices: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toInvoiceResponse(inv, nil)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single invoice with its items.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid invoice ID"})
		return
	}

	invoice, err := h.store.GetInvoice(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "invoice not found"})
			return
		}
		log.Printf("ERROR: get invoice: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	items, err := h.store.ListInvoiceItemsByInvoice(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: list invoice items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toInvoiceResponse(invoice, items))
}

// UpdateStatus transitions the invoice's payment status and keeps its
// sales records in sync.
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid invoice ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.svc.SetPaymentStatus(r.Context(), id, req.PaymentStatus)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := toInvoiceResponse(result.Invoice, nil)
	if h.notifier != nil {
		h.notifier.Notify("invoice.payment_status_changed", resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete removes an invoice; its items and sales records cascade.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid invoice ID"})
		return
	}

	if _, err := h.store.DeleteInvoice(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "invoice not found"})
			return
		}
		log.Printf("ERROR: delete invoice: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SalesRecords returns the sales records materialized for an invoice.
// Empty unless the invoice is currently DONE.
func (h *InvoiceHandler) SalesRecords(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid invoice ID"})
		return
	}

	if _, err := h.store.GetInvoice(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "invoice not found"})
			return
		}
		log.Printf("ERROR: get invoice: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	records, err := h.store.ListSalesRecordsByInvoice(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: list sales records: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]salesRecordResponse, len(records))
	for i, rec := range records {
		resp[i] = toSalesRecordResponse(rec)
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeServiceError maps invoice service errors to HTTP responses.
func (h *InvoiceHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvoiceNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "invoice not found"})
	case errors.Is(err, service.ErrNumberConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "invoice number conflict, please retry"})
	case errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidProductID),
		errors.Is(err, service.ErrInvalidSizeID),
		errors.Is(err, service.ErrInvalidColorID),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrSizeNotForProduct),
		errors.Is(err, service.ErrColorNotForProduct),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrInvalidDiscount),
		errors.Is(err, service.ErrInvalidDiscountValue),
		errors.Is(err, service.ErrInvalidPaymentStatus):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: invoice operation: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gerai-retail/api/internal/database"
	"github.com/gerai-retail/api/internal/enum"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const maxInvoiceNumberRetries = 3

// Errors returned by the invoice service.
var (
	ErrEmptyItems           = errors.New("items are required")
	ErrInvalidQuantity      = errors.New("quantity must be > 0")
	ErrInvalidProductID     = errors.New("invalid product_id")
	ErrInvalidSizeID        = errors.New("invalid size_id")
	ErrInvalidColorID       = errors.New("invalid color_id")
	ErrProductNotFound      = errors.New("product not found")
	ErrSizeNotForProduct    = errors.New("size not configured for product")
	ErrColorNotForProduct   = errors.New("color not configured for product")
	ErrOutOfStock           = errors.New("product is out of stock")
	ErrInvalidDiscount      = errors.New("invalid discount_type")
	ErrInvalidDiscountValue = errors.New("invalid discount_value")
	ErrInvalidPaymentStatus = errors.New("invalid payment_status")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrNumberConflict       = errors.New("invoice number conflict, please retry")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// InvoiceStore defines the DB methods needed to create invoices and
// maintain their sales records. Satisfied by *database.Queries (and its
// WithTx variant).
type InvoiceStore interface {
	GetStoreSettings(ctx context.Context) (database.StoreSetting, error)
	GetNextInvoiceNumber(ctx context.Context) (int64, error)
	GetProductForSale(ctx context.Context, id uuid.UUID) (database.GetProductForSaleRow, error)
	GetProductSizePrice(ctx context.Context, arg database.GetProductSizePriceParams) (database.GetProductSizePriceRow, error)
	GetProductColorName(ctx context.Context, arg database.GetProductColorNameParams) (string, error)
	CreateInvoice(ctx context.Context, arg database.CreateInvoiceParams) (database.Invoice, error)
	CreateInvoiceItem(ctx context.Context, arg database.CreateInvoiceItemParams) (database.InvoiceItem, error)
	DecrementProductStock(ctx context.Context, arg database.DecrementProductStockParams) error
	GetInvoiceForUpdate(ctx context.Context, id uuid.UUID) (database.Invoice, error)
	UpdateInvoicePaymentStatus(ctx context.Context, arg database.UpdateInvoicePaymentStatusParams) (database.Invoice, error)
	ListInvoiceItemsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]database.InvoiceItem, error)
	GetProductCost(ctx context.Context, id uuid.UUID) (pgtype.Numeric, error)
	CreateSalesRecord(ctx context.Context, arg database.CreateSalesRecordParams) (database.SalesRecord, error)
	DeleteSalesRecordsByInvoice(ctx context.Context, invoiceID uuid.UUID) error
	CountSalesRecordsByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)
}

// NewInvoiceStore creates an InvoiceStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewInvoiceStore func(db database.DBTX) InvoiceStore

// CreateInvoiceRequest is the validated input for creating an invoice.
type CreateInvoiceRequest struct {
	CustomerName  string
	CustomerPhone string
	DiscountType  string
	DiscountValue string
	PaymentStatus string // empty means PENDING
	Items         []CreateInvoiceItemRequest
}

// CreateInvoiceItemRequest is a single line on the invoice.
type CreateInvoiceItemRequest struct {
	ProductID string
	SizeID    string
	ColorID   string
	Quantity  int32
}

// CreateInvoiceResult is the full created invoice with items and, when
// created directly as DONE, the sales records materialized for it.
type CreateInvoiceResult struct {
	Invoice database.Invoice
	Items   []database.InvoiceItem
	Records []database.SalesRecord
}

// StatusChangeResult is the invoice after a payment-status transition
// plus the sales records materialized by it (nil on retraction).
type StatusChangeResult struct {
	Invoice database.Invoice
	Records []database.SalesRecord
}

// InvoiceService handles invoice business logic.
type InvoiceService struct {
	pool     TxBeginner
	newStore NewInvoiceStore
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(pool TxBeginner, newStore NewInvoiceStore) *InvoiceService {
	return &InvoiceService{pool: pool, newStore: newStore}
}

// stagedItem holds a prepared invoice line plus the product data needed
// to decrement stock after the invoice row exists.
type stagedItem struct {
	params    database.CreateInvoiceItemParams
	productID uuid.UUID
}

// CreateInvoice validates, snapshots prices, and creates an invoice with
// its items atomically. When the invoice is created directly as DONE the
// sales records are materialized inside the same transaction, strictly
// after the item rows exist. Retries up to maxInvoiceNumberRetries times
// on invoice_number unique constraint violations (race condition where
// concurrent transactions compute the same MAX suffix).
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*CreateInvoiceResult, error) {
	status := req.PaymentStatus
	if status == "" {
		status = enum.PaymentStatusPending
	}
	if !isValidPaymentStatus(status) {
		return nil, ErrInvalidPaymentStatus
	}

	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	if req.DiscountType != "" && !isValidDiscountType(req.DiscountType) {
		return nil, ErrInvalidDiscount
	}

	// Retry loop: handles invoice_number unique constraint race condition.
	var lastErr error
	for attempt := 0; attempt < maxInvoiceNumberRetries; attempt++ {
		result, err := s.createInvoiceTx(ctx, req, status)
		if err == nil {
			return result, nil
		}
		if isInvoiceNumberConflict(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: %w", ErrNumberConflict, lastErr)
}

// isInvoiceNumberConflict checks if the error is a unique constraint
// violation on the invoice number (pgconn error code 23505).
func isInvoiceNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "invoices_invoice_number_key"
	}
	return false
}

// createInvoiceTx executes the full invoice creation in a single transaction.
func (s *InvoiceService) createInvoiceTx(ctx context.Context, req CreateInvoiceRequest, status string) (*CreateInvoiceResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	// --- Tax rate from store settings (explicit load, never a global) ---
	taxRate := decimal.Zero
	settings, err := store.GetStoreSettings(ctx)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get store settings: %w", err)
		}
	} else {
		taxRate = numericToDecimal(settings.TaxRate)
	}

	// --- Generate invoice number ---
	nextNum, err := store.GetNextInvoiceNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("get next invoice number: %w", err)
	}
	invoiceNumber := fmt.Sprintf("INV-%06d", nextNum)

	// --- Process items: validate + snapshot prices ---
	subtotal := decimal.Zero
	var staged []stagedItem

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidQuantity)
		}

		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidProductID)
		}

		product, err := store.GetProductForSale(ctx, productID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrProductNotFound)
			}
			return nil, fmt.Errorf("items[%d]: get product: %w", i, err)
		}

		// Stock guard: selection-time precondition, not DB-enforced.
		// Two concurrent drafts can both pass before either commits.
		if product.Stock <= 0 {
			return nil, fmt.Errorf("items[%d]: %s: %w", i, product.Name, ErrOutOfStock)
		}

		unitPrice := numericToDecimal(product.BasePrice)

		// Per-size price override wins over the base price.
		sizeName := pgtype.Text{}
		if item.SizeID != "" {
			sid, err := uuid.Parse(item.SizeID)
			if err != nil {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidSizeID)
			}
			override, err := store.GetProductSizePrice(ctx, database.GetProductSizePriceParams{
				ProductID: productID,
				SizeID:    sid,
			})
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, fmt.Errorf("items[%d]: %w", i, ErrSizeNotForProduct)
				}
				return nil, fmt.Errorf("items[%d]: get size price: %w", i, err)
			}
			sizeName = pgtype.Text{String: override.SizeName, Valid: true}
			if override.Price.Valid {
				unitPrice = numericToDecimal(override.Price)
			}
		}

		colorName := pgtype.Text{}
		if item.ColorID != "" {
			cid, err := uuid.Parse(item.ColorID)
			if err != nil {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidColorID)
			}
			name, err := store.GetProductColorName(ctx, database.GetProductColorNameParams{
				ProductID: productID,
				ColorID:   cid,
			})
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, fmt.Errorf("items[%d]: %w", i, ErrColorNotForProduct)
				}
				return nil, fmt.Errorf("items[%d]: get product color: %w", i, err)
			}
			colorName = pgtype.Text{String: name, Valid: true}
		}

		totalPrice := unitPrice.Mul(decimal.NewFromInt32(item.Quantity))
		subtotal = subtotal.Add(totalPrice)

		staged = append(staged, stagedItem{
			params: database.CreateInvoiceItemParams{
				ProductID:   pgtype.UUID{Bytes: productID, Valid: true},
				ProductName: product.Name,
				SizeName:    sizeName,
				ColorName:   colorName,
				Quantity:    item.Quantity,
				UnitPrice:   decimalToNumeric(unitPrice),
				TotalPrice:  decimalToNumeric(totalPrice),
			},
			productID: productID,
		})
	}

	// --- Tax and discount ---
	taxAmount := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100))

	discountAmount := decimal.Zero
	if req.DiscountType != "" {
		dv, err := decimal.NewFromString(req.DiscountValue)
		if err != nil {
			return nil, ErrInvalidDiscountValue
		}
		if req.DiscountType == enum.DiscountTypePercentage {
			discountAmount = subtotal.Mul(dv).Div(decimal.NewFromInt(100))
		} else {
			discountAmount = dv
		}
	}

	grandTotal := subtotal.Add(taxAmount).Sub(discountAmount)
	if grandTotal.IsNegative() {
		grandTotal = decimal.Zero
	}

	customerName := pgtype.Text{}
	if req.CustomerName != "" {
		customerName = pgtype.Text{String: req.CustomerName, Valid: true}
	}
	customerPhone := pgtype.Text{}
	if req.CustomerPhone != "" {
		customerPhone = pgtype.Text{String: req.CustomerPhone, Valid: true}
	}

	// --- Insert invoice ---
	invoice, err := store.CreateInvoice(ctx, database.CreateInvoiceParams{
		InvoiceNumber:  invoiceNumber,
		CustomerName:   customerName,
		CustomerPhone:  customerPhone,
		Subtotal:       decimalToNumeric(subtotal),
		TaxAmount:      decimalToNumeric(taxAmount),
		DiscountAmount: decimalToNumeric(discountAmount),
		GrandTotal:     decimalToNumeric(grandTotal),
		PaymentStatus:  status,
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	// --- Insert items ---
	var items []database.InvoiceItem
	for _, si := range staged {
		si.params.InvoiceID = invoice.ID
		item, err := store.CreateInvoiceItem(ctx, si.params)
		if err != nil {
			return nil, fmt.Errorf("create invoice item: %w", err)
		}
		items = append(items, item)

		if err := store.DecrementProductStock(ctx, database.DecrementProductStockParams{
			ID:       si.productID,
			Quantity: si.params.Quantity,
		}); err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
	}

	// --- Materialize sales records for invoices created directly as DONE ---
	// This runs after the item inserts above, so the records always see
	// the full item set.
	var records []database.SalesRecord
	if status == enum.PaymentStatusDone {
		records, err = materializeInvoice(ctx, store, invoice)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &CreateInvoiceResult{
		Invoice: invoice,
		Items:   items,
		Records: records,
	}, nil
}

// SetPaymentStatus transitions an invoice between PENDING and DONE and
// keeps its sales records consistent with the new status, atomically.
// Same-status updates are no-ops and never touch the records.
func (s *InvoiceService) SetPaymentStatus(ctx context.Context, invoiceID uuid.UUID, newStatus string) (*StatusChangeResult, error) {
	if !isValidPaymentStatus(newStatus) {
		return nil, ErrInvalidPaymentStatus
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	// Lock the invoice row to serialize concurrent status flips.
	invoice, err := store.GetInvoiceForUpdate(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	oldStatus := invoice.PaymentStatus
	if oldStatus == newStatus {
		return &StatusChangeResult{Invoice: invoice}, nil
	}

	updated, err := store.UpdateInvoicePaymentStatus(ctx, database.UpdateInvoicePaymentStatusParams{
		ID:            invoiceID,
		PaymentStatus: newStatus,
	})
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	records, err := applyStatusTransition(ctx, store, updated, oldStatus, newStatus)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &StatusChangeResult{Invoice: updated, Records: records}, nil
}

// --- Helpers ---

func isValidPaymentStatus(s string) bool {
	switch s {
	case enum.PaymentStatusPending, enum.PaymentStatusDone:
		return true
	}
	return false
}

func isValidDiscountType(s string) bool {
	switch s {
	case enum.DiscountTypePercentage, enum.DiscountTypeFixed:
		return true
	}
	return false
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

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gerai-retail/api/internal/database"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ProductStore defines the database methods needed by product handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]database.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (database.Product, error)
	CreateProduct(ctx context.Context, arg database.CreateProductParams) (database.Product, error)
	UpdateProduct(ctx context.Context, arg database.UpdateProductParams) (database.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListLowStockProducts(ctx context.Context, threshold int32) ([]database.Product, error)
	ListProductSizes(ctx context.Context, productID uuid.UUID) ([]database.ListProductSizesRow, error)
	UpsertProductSize(ctx context.Context, arg database.UpsertProductSizeParams) (database.ProductSize, error)
	DeleteProductSizes(ctx context.Context, productID uuid.UUID) error
	ListProductColors(ctx context.Context, productID uuid.UUID) ([]database.ListProductColorsRow, error)
	AddProductColor(ctx context.Context, arg database.AddProductColorParams) (database.ProductColor, error)
	DeleteProductColors(ctx context.Context, productID uuid.UUID) error
	GetStoreSettings(ctx context.Context) (database.StoreSetting, error)
}

// ProductHandler handles product CRUD endpoints.
type ProductHandler struct {
	store ProductStore
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

// RegisterRoutes registers product endpoints on the given Chi router.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/low-stock", h.LowStock)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/sizes", h.ListSizes)
	r.Put("/{id}/sizes", h.SetSizes)
	r.Get("/{id}/colors", h.ListColors)
	r.Put("/{id}/colors", h.SetColors)
}

// --- Request / Response types ---

type sizePriceRequest struct {
	SizeID string `json:"size_id"`
	Price  string `json:"price"` // empty means "use base price"
}

type createProductRequest struct {
	CategoryID string             `json:"category_id"`
	Name       string             `json:"name"`
	Sku        string             `json:"sku"`
	BasePrice  string             `json:"base_price"`
	Cost       string             `json:"cost"`
	Stock      int32              `json:"stock"`
	ImageURL   string             `json:"image_url"`
	QrCodeURL  string             `json:"qr_code_url"`
	Sizes      []sizePriceRequest `json:"sizes"`
	Colors     []string           `json:"colors"` // color IDs
}

type productResponse struct {
	ID         uuid.UUID `json:"id"`
	CategoryID *string   `json:"category_id"`
	Name       string    `json:"name"`
	Sku        *string   `json:"sku"`
	BasePrice  string    `json:"base_price"`
	Cost       string    `json:"cost"`
	Stock      int32     `json:"stock"`
	ImageURL   *string   `json:"image_url"`
	QrCodeURL  *string   `json:"qr_code_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type productSizeResponse struct {
	SizeID   uuid.UUID `json:"size_id"`
	SizeName string    `json:"size_name"`
	Price    *string   `json:"price"`
}

type productColorResponse struct {
	ColorID   uuid.UUID `json:"color_id"`
	ColorName string    `json:"color_name"`
	HexCode   *string   `json:"hex_code"`
}

func toProductResponse(p database.Product) productResponse {
	resp := productResponse{
		ID:        p.ID,
		Name:      p.Name,
		BasePrice: numericToString(p.BasePrice),
		Cost:      numericToString(p.Cost),
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.CategoryID.Valid {
		s := uuid.UUID(p.CategoryID.Bytes).String()
		resp.CategoryID = &s
	}
	if p.Sku.Valid {
		resp.Sku = &p.Sku.String
	}
	if p.ImageUrl.Valid {
		resp.ImageURL = &p.ImageUrl.String
	}
	if p.QrCodeUrl.Valid {
		resp.QrCodeURL = &p.QrCodeUrl.String
	}
	return resp
}

// --- Helpers ---

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var errNegativePrice = errors.New("negative price")

func parseMoney(s string) (pgtype.Numeric, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return pgtype.Numeric{}, err
	}
	if d.IsNegative() {
		return pgtype.Numeric{}, errNegativePrice
	}
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}

// parseProductRequest validates and converts the shared create/update body.
func parseProductRequest(req createProductRequest) (database.CreateProductParams, string, error) {
	if req.Name == "" {
		return database.CreateProductParams{}, "name is required", errors.New("validation")
	}
	if req.BasePrice == "" {
		return database.CreateProductParams{}, "base_price is required", errors.New("validation")
	}

	price, err := parseMoney(req.BasePrice)
	if err != nil {
		if errors.Is(err, errNegativePrice) {
			return database.CreateProductParams{}, "base_price must be >= 0", err
		}
		return database.CreateProductParams{}, "invalid base_price", err
	}

	cost := pgtype.Numeric{}
	if req.Cost != "" {
		cost, err = parseMoney(req.Cost)
		if err != nil {
			if errors.Is(err, errNegativePrice) {
				return database.CreateProductParams{}, "cost must be >= 0", err
			}
			return database.CreateProductParams{}, "invalid cost", err
		}
	}

	if req.Stock < 0 {
		return database.CreateProductParams{}, "stock must be >= 0", errors.New("validation")
	}

	categoryID := pgtype.UUID{}
	if req.CategoryID != "" {
		cid, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return database.CreateProductParams{}, "invalid category_id", err
		}
		categoryID = pgtype.UUID{Bytes: cid, Valid: true}
	}

	sku := pgtype.Text{}
	if req.Sku != "" {
		sku = pgtype.Text{String: req.Sku, Valid: true}
	}
	imageURL := pgtype.Text{}
	if req.ImageURL != "" {
		imageURL = pgtype.Text{String: req.ImageURL, Valid: true}
	}
	qrCodeURL := pgtype.Text{}
	if req.QrCodeURL != "" {
		qrCodeURL = pgtype.Text{String: req.QrCodeURL, Valid: true}
	}

	return database.CreateProductParams{
		CategoryID: categoryID,
		Name:       req.Name,
		Sku:        sku,
		BasePrice:  price,
		Cost:       cost,
		Stock:      req.Stock,
		ImageUrl:   imageURL,
		QrCodeUrl:  qrCodeURL,
	}, "", nil
}

// applySizes replaces a product's per-size price overrides.
func (h *ProductHandler) applySizes(ctx context.Context, productID uuid.UUID, sizes []sizePriceRequest) (string, error) {
	if err := h.store.DeleteProductSizes(ctx, productID); err != nil {
		return "internal server error", err
	}
	for _, s := range sizes {
		sizeID, err := uuid.Parse(s.SizeID)
		if err != nil {
			return "invalid size_id", err
		}
		price := pgtype.Numeric{}
		if s.Price != "" {
			price, err = parseMoney(s.Price)
			if err != nil {
				return "invalid size price", err
			}
		}
		if _, err := h.store.UpsertProductSize(ctx, database.UpsertProductSizeParams{
			ProductID: productID,
			SizeID:    sizeID,
			Price:     price,
		}); err != nil {
			if isForeignKeyViolation(err) {
				return "unknown size_id", err
			}
			return "internal server error", err
		}
	}
	return "", nil
}

// applyColors replaces the set of colors a product is offered in.
func (h *ProductHandler) applyColors(ctx context.Context, productID uuid.UUID, colors []string) (string, error) {
	if err := h.store.DeleteProductColors(ctx, productID); err != nil {
		return "internal server error", err
	}
	for _, c := range colors {
		colorID, err := uuid.Parse(c)
		if err != nil {
			return "invalid color id", err
		}
		if _, err := h.store.AddProductColor(ctx, database.AddProductColorParams{
			ProductID: productID,
			ColorID:   colorID,
		}); err != nil {
			if isForeignKeyViolation(err) {
				return "unknown color id", err
			}
			return "internal server error", err
		}
	}
	return "", nil
}

// --- Handlers ---

// List returns the whole product catalog.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		log.Printf("ERROR: list products: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

// LowStock returns products at or below the configured low-stock threshold.
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := int32(5)
	settings, err := h.store.GetStoreSettings(r.Context())
	if err == nil {
		threshold = settings.LowStockThreshold
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("ERROR: get store settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	products, err := h.store.ListLowStockProducts(r.Context(), threshold)
	if err != nil {
		log.Printf("ERROR: list low stock products: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: get product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Create adds a new product, optionally with per-size price overrides.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	params, msg, err := parseProductRequest(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	product, err := h.store.CreateProduct(r.Context(), params)
	if err != nil {
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category_id"})
			return
		}
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "sku already exists"})
			return
		}
		log.Printf("ERROR: create product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if len(req.Sizes) > 0 {
		if msg, err := h.applySizes(r.Context(), product.ID, req.Sizes); err != nil {
			log.Printf("ERROR: set product sizes: %v", err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
			return
		}
	}
	if len(req.Colors) > 0 {
		if msg, err := h.applyColors(r.Context(), product.ID, req.Colors); err != nil {
			log.Printf("ERROR: set product colors: %v", err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
			return
		}
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// Update modifies an existing product.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	params, msg, err := parseProductRequest(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	product, err := h.store.UpdateProduct(r.Context(), database.UpdateProductParams{
		ID:         id,
		CategoryID: params.CategoryID,
		Name:       params.Name,
		Sku:        params.Sku,
		BasePrice:  params.BasePrice,
		Cost:       params.Cost,
		Stock:      params.Stock,
		ImageUrl:   params.ImageUrl,
		QrCodeUrl:  params.QrCodeUrl,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category_id"})
			return
		}
		log.Printf("ERROR: update product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if req.Sizes != nil {
		if msg, err := h.applySizes(r.Context(), product.ID, req.Sizes); err != nil {
			log.Printf("ERROR: set product sizes: %v", err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
			return
		}
	}
	if req.Colors != nil {
		if msg, err := h.applyColors(r.Context(), product.ID, req.Colors); err != nil {
			log.Printf("ERROR: set product colors: %v", err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
			return
		}
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Delete removes a product. Historical invoice items and sales records
// keep their snapshot text; their product reference becomes null.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	if _, err := h.store.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: delete product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSizes returns the product's per-size price overrides.
func (h *ProductHandler) ListSizes(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	sizes, err := h.store.ListProductSizes(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: list product sizes: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productSizeResponse, len(sizes))
	for i, s := range sizes {
		resp[i] = productSizeResponse{SizeID: s.SizeID, SizeName: s.SizeName}
		if s.Price.Valid {
			p := numericToString(s.Price)
			resp[i].Price = &p
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// SetSizes replaces the product's per-size price overrides.
func (h *ProductHandler) SetSizes(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	var req []sizePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if msg, err := h.applySizes(r.Context(), id, req); err != nil {
		log.Printf("ERROR: set product sizes: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListColors returns the colors the product is offered in.
func (h *ProductHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	colors, err := h.store.ListProductColors(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: list product colors: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productColorResponse, len(colors))
	for i, c := range colors {
		resp[i] = productColorResponse{ColorID: c.ColorID, ColorName: c.ColorName}
		if c.HexCode.Valid {
			resp[i].HexCode = &c.HexCode.String
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// SetColors replaces the product's color set. The body is a bare array
// of color IDs.
func (h *ProductHandler) SetColors(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	var req []string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if msg, err := h.applyColors(r.Context(), id, req); err != nil {
		log.Printf("ERROR: set product colors: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func numericToString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.00"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.00"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}

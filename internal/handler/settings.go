package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gerai-retail/api/internal/database"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// SettingsStore defines the database methods needed by settings handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type SettingsStore interface {
	GetStoreSettings(ctx context.Context) (database.StoreSetting, error)
	UpsertStoreSettings(ctx context.Context, arg database.UpsertStoreSettingsParams) (database.StoreSetting, error)
}

// SettingsHandler handles store settings endpoints.
type SettingsHandler struct {
	store SettingsStore
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// RegisterRoutes registers settings endpoints on the given Chi router.
// The PUT route should be wrapped with an owner-only middleware by the caller.
func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/", h.Update)
}

type updateSettingsRequest struct {
	StoreName         string  `json:"store_name"`
	TaxRate           string  `json:"tax_rate"`
	Currency          string  `json:"currency"`
	LogoURL           *string `json:"logo_url"`
	InstagramURL      *string `json:"instagram_url"`
	WhatsappNumber    *string `json:"whatsapp_number"`
	LowStockThreshold int32   `json:"low_stock_threshold"`
}

type settingsResponse struct {
	StoreName         string  `json:"store_name"`
	TaxRate           string  `json:"tax_rate"`
	Currency          string  `json:"currency"`
	LogoURL           *string `json:"logo_url"`
	InstagramURL      *string `json:"instagram_url"`
	WhatsappNumber    *string `json:"whatsapp_number"`
	LowStockThreshold int32   `json:"low_stock_threshold"`
}

func toSettingsResponse(s database.StoreSetting) settingsResponse {
	return settingsResponse{
		StoreName:         s.StoreName,
		TaxRate:           numericToString(s.TaxRate),
		Currency:          s.Currency,
		LogoURL:           textPtr(s.LogoUrl),
		InstagramURL:      textPtr(s.InstagramUrl),
		WhatsappNumber:    textPtr(s.WhatsappNumber),
		LowStockThreshold: s.LowStockThreshold,
	}
}

func optionalText(s *string) pgtype.Text {
	if s == nil || *s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// Get returns the store settings. Defaults are returned when no
// settings row exists yet.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.GetStoreSettings(r.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, settingsResponse{
				TaxRate:           "0.00",
				Currency:          "IDR",
				LowStockThreshold: 5,
			})
			return
		}
		log.Printf("ERROR: get store settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// Update replaces the store settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.StoreName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "store_name is required"})
		return
	}

	taxRateStr := req.TaxRate
	if taxRateStr == "" {
		taxRateStr = "0"
	}
	taxRate, err := parseMoney(taxRateStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tax_rate"})
		return
	}
	if req.LowStockThreshold < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "low_stock_threshold must not be negative"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "IDR"
	}

	settings, err := h.store.UpsertStoreSettings(r.Context(), database.UpsertStoreSettingsParams{
		StoreName:         req.StoreName,
		TaxRate:           taxRate,
		Currency:          currency,
		LogoUrl:           optionalText(req.LogoURL),
		InstagramUrl:      optionalText(req.InstagramURL),
		WhatsappNumber:    optionalText(req.WhatsappNumber),
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		log.Printf("ERROR: upsert store settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

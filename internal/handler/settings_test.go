package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gerai-retail/api/internal/database"
	"github.com/gerai-retail/api/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// --- Mock store ---

type mockSettingsStore struct {
	settings *database.StoreSetting
}

func (m *mockSettingsStore) GetStoreSettings(_ context.Context) (database.StoreSetting, error) {
	if m.settings == nil {
		return database.StoreSetting{}, pgx.ErrNoRows
	}
	return *m.settings, nil
}

func (m *mockSettingsStore) UpsertStoreSettings(_ context.Context, arg database.UpsertStoreSettingsParams) (database.StoreSetting, error) {
	s := database.StoreSetting{
		ID:                1,
		StoreName:         arg.StoreName,
		TaxRate:           arg.TaxRate,
		Currency:          arg.Currency,
		LogoUrl:           arg.LogoUrl,
		InstagramUrl:      arg.InstagramUrl,
		WhatsappNumber:    arg.WhatsappNumber,
		LowStockThreshold: arg.LowStockThreshold,
		UpdatedAt:         time.Now(),
	}
	m.settings = &s
	return s, nil
}

func setupSettingsRouter(store *mockSettingsStore) *chi.Mux {
	h := handler.NewSettingsHandler(store)
	r := chi.NewRouter()
	r.Route("/settings", h.RegisterRoutes)
	return r
}

// --- Tests ---

func TestSettingsGet_DefaultsWhenMissing(t *testing.T) {
	store := &mockSettingsStore{}
	router := setupSettingsRouter(store)

	rr := doRequest(t, router, "GET", "/settings", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["tax_rate"] != "0.00" {
		t.Errorf("tax_rate: got %v, want '0.00'", resp["tax_rate"])
	}
	if resp["currency"] != "IDR" {
		t.Errorf("currency: got %v, want 'IDR'", resp["currency"])
	}
	if resp["low_stock_threshold"] != float64(5) {
		t.Errorf("low_stock_threshold: got %v, want 5", resp["low_stock_threshold"])
	}
}

func TestSettingsGet_Existing(t *testing.T) {
	store := &mockSettingsStore{settings: &database.StoreSetting{
		ID:                1,
		StoreName:         "Toko Gerai",
		TaxRate:           testNumeric("11"),
		Currency:          "IDR",
		WhatsappNumber:    pgtype.Text{String: "+628123456789", Valid: true},
		LowStockThreshold: 10,
	}}
	router := setupSettingsRouter(store)

	rr := doRequest(t, router, "GET", "/settings", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["store_name"] != "Toko Gerai" {
		t.Errorf("store_name: got %v, want 'Toko Gerai'", resp["store_name"])
	}
	if resp["tax_rate"] != "11.00" {
		t.Errorf("tax_rate: got %v, want '11.00'", resp["tax_rate"])
	}
	if resp["whatsapp_number"] != "+628123456789" {
		t.Errorf("whatsapp_number: got %v, want '+628123456789'", resp["whatsapp_number"])
	}
}

func TestSettingsUpdate_Valid(t *testing.T) {
	store := &mockSettingsStore{}
	router := setupSettingsRouter(store)

	rr := doRequest(t, router, "PUT", "/settings", map[string]interface{}{
		"store_name":          "Toko Baru",
		"tax_rate":            "10",
		"low_stock_threshold": 8,
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["store_name"] != "Toko Baru" {
		t.Errorf("store_name: got %v, want 'Toko Baru'", resp["store_name"])
	}
	if resp["tax_rate"] != "10.00" {
		t.Errorf("tax_rate: got %v, want '10.00'", resp["tax_rate"])
	}
	// Currency falls back to IDR when omitted
	if resp["currency"] != "IDR" {
		t.Errorf("currency: got %v, want 'IDR'", resp["currency"])
	}
	if store.settings == nil {
		t.Fatal("expected settings to be stored")
	}
}

func TestSettingsUpdate_MissingStoreName(t *testing.T) {
	store := &mockSettingsStore{}
	router := setupSettingsRouter(store)

	rr := doRequest(t, router, "PUT", "/settings", map[string]interface{}{
		"tax_rate": "10",
	})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSettingsUpdate_NegativeTaxRate(t *testing.T) {
	store := &mockSettingsStore{}
	router := setupSettingsRouter(store)

	rr := doRequest(t, router, "PUT", "/settings", map[string]interface{}{
		"store_name": "Toko",
		"tax_rate":   "-5",
	})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSettingsUpdate_NegativeThreshold(t *testing.T) {
	store := &mockSettingsStore{}
	router := setupSettingsRouter(store)

	rr := doRequest(t, router, "PUT", "/settings", map[string]interface{}{
		"store_name":          "Toko",
		"low_stock_threshold": -1,
	})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gerai-retail/api/internal/database"
	"github.com/gerai-retail/api/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// --- Mock store ---

type mockCatalogStore struct {
	categories map[uuid.UUID]database.Category
	sizes      map[uuid.UUID]database.Size
	colors     map[uuid.UUID]database.Color
	dupError   bool // simulate unique violation
}

func newMockCatalogStore() *mockCatalogStore {
	return &mockCatalogStore{
		categories: make(map[uuid.UUID]database.Category),
		sizes:      make(map[uuid.UUID]database.Size),
		colors:     make(map[uuid.UUID]database.Color),
	}
}

func (m *mockCatalogStore) ListCategories(_ context.Context) ([]database.Category, error) {
	var result []database.Category
	for _, c := range m.categories {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCatalogStore) CreateCategory(_ context.Context, name string) (database.Category, error) {
	if m.dupError {
		return database.Category{}, &pgconn.PgError{Code: "23505"}
	}
	c := database.Category{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	m.categories[c.ID] = c
	return c, nil
}

func (m *mockCatalogStore) UpdateCategory(_ context.Context, arg database.UpdateCategoryParams) (database.Category, error) {
	c, ok := m.categories[arg.ID]
	if !ok {
		return database.Category{}, pgx.ErrNoRows
	}
	c.Name = arg.Name
	m.categories[c.ID] = c
	return c, nil
}

func (m *mockCatalogStore) DeleteCategory(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	if _, ok := m.categories[id]; !ok {
		return uuid.Nil, pgx.ErrNoRows
	}
	delete(m.categories, id)
	return id, nil
}

func (m *mockCatalogStore) ListSizes(_ context.Context) ([]database.Size, error) {
	var result []database.Size
	for _, s := range m.sizes {
		result = append(result, s)
	}
	return result, nil
}

func (m *mockCatalogStore) CreateSize(_ context.Context, name string) (database.Size, error) {
	if m.dupError {
		return database.Size{}, &pgconn.PgError{Code: "23505"}
	}
	s := database.Size{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	m.sizes[s.ID] = s
	return s, nil
}

func (m *mockCatalogStore) DeleteSize(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	if _, ok := m.sizes[id]; !ok {
		return uuid.Nil, pgx.ErrNoRows
	}
	delete(m.sizes, id)
	return id, nil
}

func (m *mockCatalogStore) ListColors(_ context.Context) ([]database.Color, error) {
	var result []database.Color
	for _, c := range m.colors {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCatalogStore) CreateColor(_ context.Context, arg database.CreateColorParams) (database.Color, error) {
	if m.dupError {
		return database.Color{}, &pgconn.PgError{Code: "23505"}
	}
	c := database.Color{ID: uuid.New(), Name: arg.Name, HexCode: arg.HexCode, CreatedAt: time.Now()}
	m.colors[c.ID] = c
	return c, nil
}

func (m *mockCatalogStore) DeleteColor(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	if _, ok := m.colors[id]; !ok {
		return uuid.Nil, pgx.ErrNoRows
	}
	delete(m.colors, id)
	return id, nil
}

// --- Helpers ---

func setupCatalogRouter(store *mockCatalogStore) *chi.Mux {
	h := handler.NewCatalogHandler(store)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// --- Category tests ---

func TestCategoryCreate_Valid(t *testing.T) {
	store := newMockCatalogStore()
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "POST", "/categories", map[string]interface{}{"name": "Shirts"})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["name"] != "Shirts" {
		t.Errorf("name: got %v, want 'Shirts'", resp["name"])
	}
}

func TestCategoryCreate_MissingName(t *testing.T) {
	store := newMockCatalogStore()
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "POST", "/categories", map[string]interface{}{})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCategoryCreate_Duplicate(t *testing.T) {
	store := newMockCatalogStore()
	store.dupError = true
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "POST", "/categories", map[string]interface{}{"name": "Shirts"})

	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d; body: %s", rr.Code, http.StatusConflict, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["error"] != "category already exists" {
		t.Errorf("error: got %v, want 'category already exists'", resp["error"])
	}
}

func TestCategoryUpdate_Valid(t *testing.T) {
	store := newMockCatalogStore()
	id := uuid.New()
	store.categories[id] = database.Category{ID: id, Name: "Old", CreatedAt: time.Now()}
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "PUT", "/categories/"+id.String(), map[string]interface{}{"name": "New"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if store.categories[id].Name != "New" {
		t.Errorf("name: got %s, want 'New'", store.categories[id].Name)
	}
}

func TestCategoryUpdate_NotFound(t *testing.T) {
	store := newMockCatalogStore()
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "PUT", "/categories/"+uuid.New().String(), map[string]interface{}{"name": "New"})

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCategoryDelete_Valid(t *testing.T) {
	store := newMockCatalogStore()
	id := uuid.New()
	store.categories[id] = database.Category{ID: id, Name: "Gone", CreatedAt: time.Now()}
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "DELETE", "/categories/"+id.String(), nil)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusNoContent, rr.Body.String())
	}
	if _, ok := store.categories[id]; ok {
		t.Error("expected category to be deleted")
	}
}

func TestCategoryDelete_InvalidID(t *testing.T) {
	store := newMockCatalogStore()
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "DELETE", "/categories/not-a-uuid", nil)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Size tests ---

func TestSizeCreate_Valid(t *testing.T) {
	store := newMockCatalogStore()
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "POST", "/sizes", map[string]interface{}{"name": "XL"})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if len(store.sizes) != 1 {
		t.Errorf("expected 1 size stored, got %d", len(store.sizes))
	}
}

func TestSizeCreate_Duplicate(t *testing.T) {
	store := newMockCatalogStore()
	store.dupError = true
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "POST", "/sizes", map[string]interface{}{"name": "XL"})

	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestSizeDelete_NotFound(t *testing.T) {
	store := newMockCatalogStore()
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "DELETE", "/sizes/"+uuid.New().String(), nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

// --- Color tests ---

func TestColorCreate_WithHexCode(t *testing.T) {
	store := newMockCatalogStore()
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "POST", "/colors", map[string]interface{}{
		"name":     "Navy",
		"hex_code": "#000080",
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["name"] != "Navy" {
		t.Errorf("name: got %v, want 'Navy'", resp["name"])
	}
	if resp["hex_code"] != "#000080" {
		t.Errorf("hex_code: got %v, want '#000080'", resp["hex_code"])
	}
}

func TestColorCreate_WithoutHexCode(t *testing.T) {
	store := newMockCatalogStore()
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "POST", "/colors", map[string]interface{}{"name": "Maroon"})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["hex_code"] != nil {
		t.Errorf("hex_code: expected null, got %v", resp["hex_code"])
	}
}

func TestColorList_ReturnsColors(t *testing.T) {
	store := newMockCatalogStore()
	id := uuid.New()
	store.colors[id] = database.Color{
		ID: id, Name: "Red",
		HexCode:   pgtype.Text{String: "#FF0000", Valid: true},
		CreatedAt: time.Now(),
	}
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "GET", "/colors", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeListResponse(t, rr)
	if len(resp) != 1 {
		t.Fatalf("expected 1 color, got %d", len(resp))
	}
	if resp[0]["hex_code"] != "#FF0000" {
		t.Errorf("hex_code: got %v, want '#FF0000'", resp[0]["hex_code"])
	}
}

func TestColorDelete_Valid(t *testing.T) {
	store := newMockCatalogStore()
	id := uuid.New()
	store.colors[id] = database.Color{ID: id, Name: "Gone", CreatedAt: time.Now()}
	router := setupCatalogRouter(store)

	rr := doRequest(t, router, "DELETE", "/colors/"+id.String(), nil)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusNoContent, rr.Body.String())
	}
	if _, ok := store.colors[id]; ok {
		t.Error("expected color to be deleted")
	}
}

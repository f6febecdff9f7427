package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gerai-retail/api/internal/database"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// CatalogStore defines the database methods needed by the category,
// size, and color handlers. Satisfied by *database.Queries.
type CatalogStore interface {
	ListCategories(ctx context.Context) ([]database.Category, error)
	CreateCategory(ctx context.Context, name string) (database.Category, error)
	UpdateCategory(ctx context.Context, arg database.UpdateCategoryParams) (database.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListSizes(ctx context.Context) ([]database.Size, error)
	CreateSize(ctx context.Context, name string) (database.Size, error)
	DeleteSize(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListColors(ctx context.Context) ([]database.Color, error)
	CreateColor(ctx context.Context, arg database.CreateColorParams) (database.Color, error)
	DeleteColor(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// CatalogHandler handles the catalog dimension endpoints: categories,
// sizes, and colors.
type CatalogHandler struct {
	store CatalogStore
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(store CatalogStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// RegisterRoutes registers catalog endpoints on the given Chi router.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Put("/{id}", h.UpdateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})
	r.Route("/sizes", func(r chi.Router) {
		r.Get("/", h.ListSizes)
		r.Post("/", h.CreateSize)
		r.Delete("/{id}", h.DeleteSize)
	})
	r.Route("/colors", func(r chi.Router) {
		r.Get("/", h.ListColors)
		r.Post("/", h.CreateColor)
		r.Delete("/{id}", h.DeleteColor)
	})
}

// --- Request / Response types ---

type nameRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type sizeResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type createColorRequest struct {
	Name    string `json:"name"`
	HexCode string `json:"hex_code"`
}

type colorResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	HexCode *string   `json:"hex_code"`
}

func toColorResponse(c database.Color) colorResponse {
	resp := colorResponse{ID: c.ID, Name: c.Name}
	if c.HexCode.Valid {
		resp.HexCode = &c.HexCode.String
	}
	return resp
}

// --- Category handlers ---

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		log.Printf("ERROR: list categories: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = categoryResponse{ID: c.ID, Name: c.Name}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	category, err := h.store.CreateCategory(r.Context(), req.Name)
	if err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "category already exists"})
			return
		}
		log.Printf("ERROR: create category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, categoryResponse{ID: category.ID, Name: category.Name})
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	category, err := h.store.UpdateCategory(r.Context(), database.UpdateCategoryParams{ID: id, Name: req.Name})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return
		}
		log.Printf("ERROR: update category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{ID: category.ID, Name: category.Name})
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}

	if _, err := h.store.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return
		}
		log.Printf("ERROR: delete category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Size handlers ---

func (h *CatalogHandler) ListSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.store.ListSizes(r.Context())
	if err != nil {
		log.Printf("ERROR: list sizes: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]sizeResponse, len(sizes))
	for i, s := range sizes {
		resp[i] = sizeResponse{ID: s.ID, Name: s.Name}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CatalogHandler) CreateSize(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	size, err := h.store.CreateSize(r.Context(), req.Name)
	if err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "size already exists"})
			return
		}
		log.Printf("ERROR: create size: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, sizeResponse{ID: size.ID, Name: size.Name})
}

func (h *CatalogHandler) DeleteSize(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid size ID"})
		return
	}

	if _, err := h.store.DeleteSize(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "size not found"})
			return
		}
		log.Printf("ERROR: delete size: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Color handlers ---

func (h *CatalogHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	colors, err := h.store.ListColors(r.Context())
	if err != nil {
		log.Printf("ERROR: list colors: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]colorResponse, len(colors))
	for i, c := range colors {
		resp[i] = toColorResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CatalogHandler) CreateColor(w http.ResponseWriter, r *http.Request) {
	var req createColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	hexCode := pgtype.Text{}
	if req.HexCode != "" {
		hexCode = pgtype.Text{String: req.HexCode, Valid: true}
	}

	color, err := h.store.CreateColor(r.Context(), database.CreateColorParams{
		Name:    req.Name,
		HexCode: hexCode,
	})
	if err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "color already exists"})
			return
		}
		log.Printf("ERROR: create color: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toColorResponse(color))
}

func (h *CatalogHandler) DeleteColor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid color ID"})
		return
	}

	if _, err := h.store.DeleteColor(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "color not found"})
			return
		}
		log.Printf("ERROR: delete color: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

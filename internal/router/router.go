package router

import (
	"log"
	"net/http"
	"time"

	"github.com/gerai-retail/api/internal/config"
	"github.com/gerai-retail/api/internal/database"
	"github.com/gerai-retail/api/internal/handler"
	mw "github.com/gerai-retail/api/internal/middleware"
	"github.com/gerai-retail/api/internal/report"
	"github.com/gerai-retail/api/internal/service"
	"github.com/gerai-retail/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// New creates a Chi router with all application routes wired up.
// reportCache may be nil, in which case reports are computed on every request.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub, reportCache report.Cache) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/invoices", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Catalog dimensions: categories, sizes, colors
		catalogHandler := handler.NewCatalogHandler(queries)
		catalogHandler.RegisterRoutes(r)

		// Products
		productHandler := handler.NewProductHandler(queries)
		r.Route("/products", productHandler.RegisterRoutes)

		// Invoices
		newInvoiceStore := func(db database.DBTX) service.InvoiceStore {
			return database.New(db)
		}
		invoiceService := service.NewInvoiceService(pool, newInvoiceStore)
		invoiceHandler := handler.NewInvoiceHandler(invoiceService, queries, hub)
		r.Route("/invoices", invoiceHandler.RegisterRoutes)

		// Reports
		reportService := report.NewService(queries, reportCache, time.Duration(cfg.ReportCacheTTLSeconds)*time.Second)
		reportsHandler := handler.NewReportsHandler(reportService)
		r.Route("/reports", reportsHandler.RegisterRoutes)

		// Settings: reads for any authenticated user, writes owner-only
		settingsHandler := handler.NewSettingsHandler(queries)
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole("OWNER"))
				r.Put("/", settingsHandler.Update)
			})
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}

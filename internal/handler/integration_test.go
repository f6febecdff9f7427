//go:build integration

package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gerai-retail/api/internal/config"
	"github.com/gerai-retail/api/internal/database"
	"github.com/gerai-retail/api/internal/router"
	"github.com/gerai-retail/api/internal/ws"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

// TestIntegrationFlow exercises the full invoice lifecycle against a real
// PostgreSQL database: catalog setup, invoice creation, payment status
// transitions, sales record materialization, and reports.
func TestIntegrationFlow(t *testing.T) {
	ctx := context.Background()

	_, connStr, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	runMigrations(t, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	defer pool.Close()

	cfg := &config.Config{
		Port:        "8081",
		DatabaseURL: connStr,
		JWTSecret:   "integration-test-secret",
	}
	queries := database.New(pool)
	hub := ws.NewHub()
	// NOTE: hub.Run() leaks its goroutine on test exit; Hub has no shutdown mechanism.
	// Acceptable for tests; production should add context-based shutdown.
	go hub.Run()

	r := router.New(cfg, queries, pool, hub, nil)

	server := httptest.NewServer(r)
	defer server.Close()

	// --- 1. Bootstrap owner user (manual DB insert) ---
	createOwnerUser(t, ctx, pool)

	// --- 2. Login as owner ---
	token := login(t, server, "owner@test.com", "password123")

	// --- 3. Configure store settings (10% tax) ---
	settingsResp := doAuthed(t, server, "PUT", "/settings", token, map[string]interface{}{
		"store_name":          "Integration Store",
		"tax_rate":            "10",
		"low_stock_threshold": 3,
	})
	assertStatus(t, settingsResp, http.StatusOK)

	// --- 4. Build the catalog: category, size, color ---
	catResp := doAuthed(t, server, "POST", "/categories", token, map[string]interface{}{"name": "Shirts"})
	assertStatus(t, catResp, http.StatusCreated)
	categoryID := decodeBody(t, catResp)["id"].(string)

	sizeResp := doAuthed(t, server, "POST", "/sizes", token, map[string]interface{}{"name": "XL"})
	assertStatus(t, sizeResp, http.StatusCreated)
	sizeID := decodeBody(t, sizeResp)["id"].(string)

	colorResp := doAuthed(t, server, "POST", "/colors", token, map[string]interface{}{
		"name": "Navy", "hex_code": "#000080",
	})
	assertStatus(t, colorResp, http.StatusCreated)
	colorID := decodeBody(t, colorResp)["id"].(string)

	// --- 5. Create a product offered in Navy with an XL price override ---
	prodResp := doAuthed(t, server, "POST", "/products", token, map[string]interface{}{
		"category_id": categoryID,
		"name":        "Batik Shirt",
		"sku":         "BS-001",
		"base_price":  "100000",
		"cost":        "60000",
		"stock":       10,
		"sizes": []map[string]interface{}{
			{"size_id": sizeID, "price": "120000"},
		},
		"colors": []string{colorID},
	})
	assertStatus(t, prodResp, http.StatusCreated)
	productID := decodeBody(t, prodResp)["id"].(string)

	colorsResp := doAuthed(t, server, "GET", "/products/"+productID+"/colors", token, nil)
	assertStatus(t, colorsResp, http.StatusOK)
	if colors := decodeListBody(t, colorsResp); len(colors) != 1 || colors[0]["color_name"] != "Navy" {
		t.Fatalf("expected product offered in Navy, got %v", colors)
	}

	// --- 6. Create a PENDING invoice: 2x XL Navy at the override price ---
	invResp := doAuthed(t, server, "POST", "/invoices", token, map[string]interface{}{
		"customer_name": "Budi",
		"items": []map[string]interface{}{
			{"product_id": productID, "size_id": sizeID, "color_id": colorID, "quantity": 2},
		},
	})
	assertStatus(t, invResp, http.StatusCreated)
	invoice := decodeBody(t, invResp)
	invoiceID := invoice["id"].(string)

	if invoice["invoice_number"] != "INV-000001" {
		t.Errorf("invoice_number: got %v, want 'INV-000001'", invoice["invoice_number"])
	}
	if invoice["subtotal"] != "240000.00" {
		t.Errorf("subtotal: got %v, want '240000.00'", invoice["subtotal"])
	}
	if invoice["tax_amount"] != "24000.00" {
		t.Errorf("tax_amount: got %v, want '24000.00'", invoice["tax_amount"])
	}
	if invoice["grand_total"] != "264000.00" {
		t.Errorf("grand_total: got %v, want '264000.00'", invoice["grand_total"])
	}
	if invoice["payment_status"] != "PENDING" {
		t.Errorf("payment_status: got %v, want 'PENDING'", invoice["payment_status"])
	}

	// --- 7. Stock decremented ---
	stockResp := doAuthed(t, server, "GET", "/products/"+productID, token, nil)
	assertStatus(t, stockResp, http.StatusOK)
	if stock := decodeBody(t, stockResp)["stock"]; stock != float64(8) {
		t.Errorf("stock after sale: got %v, want 8", stock)
	}

	// --- 8. No sales records while pending ---
	recResp := doAuthed(t, server, "GET", "/invoices/"+invoiceID+"/sales-records", token, nil)
	assertStatus(t, recResp, http.StatusOK)
	if records := decodeListBody(t, recResp); len(records) != 0 {
		t.Errorf("expected no sales records while pending, got %d", len(records))
	}

	// --- 9. Mark as DONE: records materialize ---
	statusResp := doAuthed(t, server, "PATCH", "/invoices/"+invoiceID+"/status", token, map[string]interface{}{
		"payment_status": "DONE",
	})
	assertStatus(t, statusResp, http.StatusOK)

	recResp = doAuthed(t, server, "GET", "/invoices/"+invoiceID+"/sales-records", token, nil)
	assertStatus(t, recResp, http.StatusOK)
	records := decodeListBody(t, recResp)
	if len(records) != 1 {
		t.Fatalf("expected 1 sales record after DONE, got %d", len(records))
	}
	if records[0]["total_profit"] != "120000.00" {
		t.Errorf("total_profit: got %v, want '120000.00'", records[0]["total_profit"])
	}
	if records[0]["cost_per_unit"] != "60000.00" {
		t.Errorf("cost_per_unit: got %v, want '60000.00'", records[0]["cost_per_unit"])
	}

	// --- 10. Marking DONE again is a no-op ---
	statusResp = doAuthed(t, server, "PATCH", "/invoices/"+invoiceID+"/status", token, map[string]interface{}{
		"payment_status": "DONE",
	})
	assertStatus(t, statusResp, http.StatusOK)
	recResp = doAuthed(t, server, "GET", "/invoices/"+invoiceID+"/sales-records", token, nil)
	if records := decodeListBody(t, recResp); len(records) != 1 {
		t.Errorf("expected still 1 sales record, got %d", len(records))
	}

	// --- 11. Reports see the sale ---
	reportResp := doAuthed(t, server, "GET", "/reports/product-sales", token, nil)
	assertStatus(t, reportResp, http.StatusOK)
	report := decodeBody(t, reportResp)
	totals := report["totals"].(map[string]interface{})
	if totals["total_quantity"] != float64(2) {
		t.Errorf("report total_quantity: got %v, want 2", totals["total_quantity"])
	}

	trendResp := doAuthed(t, server, "GET", "/reports/trending?sort_by=revenue", token, nil)
	assertStatus(t, trendResp, http.StatusOK)
	if trending := decodeListBody(t, trendResp); len(trending) != 1 {
		t.Errorf("expected 1 trending product, got %d", len(trending))
	}

	profitResp := doAuthed(t, server, "GET", "/reports/profits", token, nil)
	assertStatus(t, profitResp, http.StatusOK)

	dashResp := doAuthed(t, server, "GET", "/reports/dashboard", token, nil)
	assertStatus(t, dashResp, http.StatusOK)

	// --- 12. Back to PENDING: records retracted ---
	statusResp = doAuthed(t, server, "PATCH", "/invoices/"+invoiceID+"/status", token, map[string]interface{}{
		"payment_status": "PENDING",
	})
	assertStatus(t, statusResp, http.StatusOK)
	recResp = doAuthed(t, server, "GET", "/invoices/"+invoiceID+"/sales-records", token, nil)
	if records := decodeListBody(t, recResp); len(records) != 0 {
		t.Errorf("expected records retracted after PENDING, got %d", len(records))
	}

	// --- 13. Selling past the remaining stock goes through ---
	overResp := doAuthed(t, server, "POST", "/invoices", token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": 20},
		},
	})
	assertStatus(t, overResp, http.StatusCreated)
	stockResp = doAuthed(t, server, "GET", "/products/"+productID, token, nil)
	assertStatus(t, stockResp, http.StatusOK)
	if stock := decodeBody(t, stockResp)["stock"]; stock != float64(-12) {
		t.Errorf("stock after oversell: got %v, want -12", stock)
	}

	// --- 14. Date-range list includes invoices from the end day ---
	wib := time.FixedZone("WIB", 7*3600)
	today := time.Now().In(wib).Format("2006-01-02")
	listResp := doAuthed(t, server, "GET", "/invoices?start_date="+today+"&end_date="+today, token, nil)
	assertStatus(t, listResp, http.StatusOK)
	if invoices := decodeListBody(t, listResp); len(invoices) != 2 {
		t.Errorf("expected 2 invoices in today's range, got %d", len(invoices))
	}

	// --- 15. Unauthenticated requests are rejected ---
	plainResp := doAuthed(t, server, "GET", "/invoices", "", nil)
	assertStatus(t, plainResp, http.StatusUnauthorized)
}

// --- Helpers ---

func setupPostgresContainer(t *testing.T, ctx context.Context) (testcontainers.Container, string, func()) {
	t.Helper()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("gerai_test"),
		tcpostgres.WithUsername("gerai"),
		tcpostgres.WithPassword("gerai"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	}

	return pgContainer, connStr, cleanup
}

func runMigrations(t *testing.T, connStr string) {
	t.Helper()

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open db for migrations: %v", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		t.Fatalf("create migrate driver: %v", err)
	}

	// Path relative to this test file's package directory.
	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"postgres", driver)
	if err != nil {
		t.Fatalf("create migrate instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("run migrations: %v", err)
	}
}

func createOwnerUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	var id uuid.UUID
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role, is_active)
		VALUES ($1, $2, 'Test Owner', 'OWNER', true)
		RETURNING id
	`, "owner@test.com", string(hashed)).Scan(&id)
	if err != nil {
		t.Fatalf("insert owner: %v", err)
	}
	return id
}

func login(t *testing.T, server *httptest.Server, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(server.URL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	token, ok := result["access_token"].(string)
	if !ok || token == "" {
		t.Fatal("login response missing access_token")
	}
	return token
}

func doAuthed(t *testing.T, server *httptest.Server, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		var body bytes.Buffer
		_, _ = body.ReadFrom(resp.Body)
		t.Fatalf("status: got %d, want %d; body: %s", resp.StatusCode, want, body.String())
	}
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return result
}

func decodeListBody(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode list body: %v", err)
	}
	return result
}

package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"glamour-inventory/internal/database/models"
	"glamour-inventory/internal/inventory"
	"glamour-inventory/internal/server"
)

type itemBody struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Brand         *string `json:"brand"`
	Category      string  `json:"category"`
	SKU           *string `json:"sku"`
	Quantity      int64   `json:"quantity"`
	MinStockLevel int64   `json:"min_stock_level"`
	UnitPrice     float64 `json:"unit_price"`
	TotalValue    float64 `json:"total_value"`
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.InventoryItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return server.NewRouter(inventory.NewStore(db, nil), "1000-M")
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func TestHealthCheck(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	decode(t, w, &body)
	if body["status"] != "Server is running" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestInventoryLifecycle(t *testing.T) {
	r := setupTestRouter(t)

	// Create
	w := doJSON(t, r, http.MethodPost, "/api/inventory", map[string]interface{}{
		"name":       "Ruby Red Lipstick",
		"category":   "Lipstick",
		"quantity":   5,
		"unit_price": 12.50,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created itemBody
	decode(t, w, &created)
	if created.TotalValue != 62.5 {
		t.Errorf("expected total_value 62.5, got %v", created.TotalValue)
	}
	if created.MinStockLevel != 10 {
		t.Errorf("expected default min_stock_level 10, got %d", created.MinStockLevel)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}

	// Partial update
	w = doJSON(t, r, http.MethodPut, "/api/inventory/"+created.ID, map[string]interface{}{
		"quantity": 20,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated itemBody
	decode(t, w, &updated)
	if updated.TotalValue != 250.0 {
		t.Errorf("expected total_value 250.0, got %v", updated.TotalValue)
	}
	if updated.Name != "Ruby Red Lipstick" {
		t.Errorf("expected name unchanged, got %q", updated.Name)
	}

	// Delete
	w = doJSON(t, r, http.MethodDelete, "/api/inventory/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var deleted struct {
		Message     string   `json:"message"`
		DeletedItem itemBody `json:"deletedItem"`
	}
	decode(t, w, &deleted)
	if deleted.Message != "Item deleted successfully" {
		t.Errorf("unexpected delete message %q", deleted.Message)
	}
	if deleted.DeletedItem.ID != created.ID {
		t.Errorf("expected deleted item %s, got %s", created.ID, deleted.DeletedItem.ID)
	}

	// Gone
	w = doJSON(t, r, http.MethodGet, "/api/inventory/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}

	// Delete again
	w = doJSON(t, r, http.MethodDelete, "/api/inventory/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	r := setupTestRouter(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"category": "Lipstick", "unit_price": 1.0}},
		{"missing category", map[string]interface{}{"name": "Gloss", "unit_price": 1.0}},
		{"missing unit_price", map[string]interface{}{"name": "Gloss", "category": "Lipstick"}},
		{"negative quantity", map[string]interface{}{"name": "Gloss", "category": "Lipstick", "quantity": -1, "unit_price": 1.0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/inventory", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}

			var body map[string]string
			decode(t, w, &body)
			if body["error"] == "" {
				t.Error("expected an error message in the body")
			}
		})
	}

	// No record was created by the rejected requests.
	w := doJSON(t, r, http.MethodGet, "/api/inventory", nil)
	var items []itemBody
	decode(t, w, &items)
	if len(items) != 0 {
		t.Errorf("expected empty inventory, got %d items", len(items))
	}
}

func TestGetUnknownItem(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/inventory/does-not-exist", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var body map[string]string
	decode(t, w, &body)
	if body["error"] != "Item not found" {
		t.Errorf("unexpected error body: %v", body)
	}
}

func TestUpdateUnknownItem(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/inventory/does-not-exist", map[string]interface{}{
		"quantity": 1,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListOrdering(t *testing.T) {
	r := setupTestRouter(t)

	for _, name := range []string{"A", "B", "C"} {
		w := doJSON(t, r, http.MethodPost, "/api/inventory", map[string]interface{}{
			"name":       name,
			"category":   "Lipstick",
			"unit_price": 1.0,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create %s: %d", name, w.Code)
		}
		time.Sleep(2 * time.Millisecond)
	}

	w := doJSON(t, r, http.MethodGet, "/api/inventory", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var items []itemBody
	decode(t, w, &items)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"C", "B", "A"} {
		if items[i].Name != want {
			t.Errorf("position %d: expected %q, got %q", i, want, items[i].Name)
		}
	}
}

func TestStatsAndLowStock(t *testing.T) {
	r := setupTestRouter(t)

	for _, item := range []map[string]interface{}{
		{"name": "Plenty", "category": "Mascara", "quantity": 50, "unit_price": 5.0},
		{"name": "Scarce", "category": "Blush", "quantity": 2, "unit_price": 8.0},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/inventory", item)
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create item: %d", w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/inventory/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var stats struct {
		TotalItems    int64   `json:"total_items"`
		TotalUnits    int64   `json:"total_units"`
		TotalValue    float64 `json:"total_value"`
		LowStockItems int64   `json:"low_stock_items"`
		Categories    int64   `json:"categories"`
	}
	decode(t, w, &stats)
	if stats.TotalItems != 2 || stats.TotalUnits != 52 || stats.TotalValue != 266.0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LowStockItems != 1 || stats.Categories != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	w = doJSON(t, r, http.MethodGet, "/api/inventory/low-stock", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var low []itemBody
	decode(t, w, &low)
	if len(low) != 1 || low[0].Name != "Scarce" {
		t.Errorf("unexpected low-stock items: %+v", low)
	}
}

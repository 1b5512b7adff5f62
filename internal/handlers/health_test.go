package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"notecal/internal/caldate"
	"notecal/internal/handlers"
	"notecal/internal/index"
	"notecal/internal/storage"
)

func TestHealthHandler_Healthy(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	store := index.NewStore()
	store.AddEntry(&index.Entry{ID: "a", Start: caldate.MustNew(2025, 1, 1)})

	handler := handlers.NewHealthHandler(db, store)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp handlers.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want %q", resp.Status, "healthy")
	}
	if resp.Checks["database"] != "ok" {
		t.Errorf("database check = %q, want %q", resp.Checks["database"], "ok")
	}
	if resp.Entries != 1 {
		t.Errorf("entries = %d, want 1", resp.Entries)
	}
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.Close() // Closed connection makes the ping fail.

	handler := handlers.NewHealthHandler(db, index.NewStore())
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	var resp handlers.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("status = %q, want %q", resp.Status, "unhealthy")
	}
	if len(resp.Issues) == 0 {
		t.Error("issues list is empty, want database_unavailable")
	}
}

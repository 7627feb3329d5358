package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/statementlens/statementlens/internal/dataset"
	"github.com/statementlens/statementlens/internal/extract"
	"github.com/statementlens/statementlens/internal/ingest"
	"github.com/statementlens/statementlens/internal/logger"
	"github.com/statementlens/statementlens/internal/models"
)

func setupTestApp(store *dataset.Store) *fiber.App {
	log := logger.NewWithWriter(io.Discard)
	runner := ingest.NewRunner(extract.New(models.DefaultColumnSchema()), store, log)
	app := fiber.New()
	NewHandler(store, runner, log).RegisterRoutes(app)
	return app
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp(dataset.NewStore())

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}
	if result["engine"] != "fiber" {
		t.Errorf("expected engine=fiber, got %q", result["engine"])
	}
}

func TestUploadEndpointRequiresFile(t *testing.T) {
	app := setupTestApp(dataset.NewStore())

	req := httptest.NewRequest("POST", "/api/upload", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode == fiber.StatusOK {
		t.Error("expected non-200 for missing file")
	}
}

func TestTransactionsEndpointEmptyDataset(t *testing.T) {
	app := setupTestApp(dataset.NewStore())

	req := httptest.NewRequest("GET", "/api/transactions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result TransactionsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result.Count != 0 || result.Total != 0 {
		t.Errorf("expected empty counts, got count=%d total=%d", result.Count, result.Total)
	}
	if result.Transactions == nil {
		t.Error("transactions must marshal as [], not null")
	}
}

func TestTransactionsEndpointFiltersByType(t *testing.T) {
	store := dataset.NewStore()
	store.Ingest("a.pdf", []models.Transaction{
		{FileName: "a.pdf", RawLine: "r1", Type: "Send Money", Out: "100.00"},
		{FileName: "a.pdf", RawLine: "r2", Type: "Cash Out", Out: "50.00"},
	})
	app := setupTestApp(store)

	req := httptest.NewRequest("GET", "/api/transactions?type=Cash+Out", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	var result TransactionsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result.Total != 2 || result.Count != 1 {
		t.Errorf("expected total=2 count=1, got total=%d count=%d", result.Total, result.Count)
	}
	if result.Summary.TotalOut != 50 {
		t.Errorf("expected filtered summary, got %+v", result.Summary)
	}
}

func TestRemoveFileEndpointUnknownFile(t *testing.T) {
	app := setupTestApp(dataset.NewStore())

	req := httptest.NewRequest("DELETE", "/api/files/nope.pdf", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestExportCSVEndpoint(t *testing.T) {
	store := dataset.NewStore()
	store.Ingest("a.pdf", []models.Transaction{
		{FileName: "a.pdf", RawLine: "r1", Date: "15-Mar-24", Type: "Send Money", Out: "100.00"},
	})
	app := setupTestApp(store)

	req := httptest.NewRequest("GET", "/api/export/csv", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if got := string(body); !strings.Contains(got, "15-Mar-24") {
		t.Errorf("expected transaction in CSV, got %q", got)
	}
}

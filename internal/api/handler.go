package api

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/statementlens/statementlens/internal/dataset"
	"github.com/statementlens/statementlens/internal/ingest"
	"github.com/statementlens/statementlens/internal/models"
	"github.com/statementlens/statementlens/internal/writer"
)

const (
	version = "1.0.0"

	cacheExpiration      = 15 * time.Minute
	cacheCleanupInterval = 30 * time.Minute
)

// Handler holds the HTTP handlers for the statement API.
type Handler struct {
	store  *dataset.Store
	runner *ingest.Runner
	cache  *cache.Cache
	log    zerolog.Logger
}

// NewHandler wires the handlers to the shared store and ingestion runner.
func NewHandler(store *dataset.Store, runner *ingest.Runner, log zerolog.Logger) *Handler {
	return &Handler{
		store:  store,
		runner: runner,
		cache:  cache.New(cacheExpiration, cacheCleanupInterval),
		log:    log,
	}
}

// RegisterRoutes sets up the API routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/upload", h.HandleUpload)
	app.Get("/api/transactions", h.HandleTransactions)
	app.Get("/api/summary", h.HandleSummary)
	app.Get("/api/breakdown", h.HandleBreakdown)
	app.Get("/api/types", h.HandleTypes)
	app.Get("/api/files", h.HandleFiles)
	app.Delete("/api/files/:name", h.HandleRemoveFile)
	app.Post("/api/clear", h.HandleClear)
	app.Get("/api/export/csv", h.HandleExportCSV)
}

// UploadResponse is the JSON response from /api/upload.
type UploadResponse struct {
	Success            bool   `json:"success"`
	Error              string `json:"error,omitempty"`
	CredentialRequired bool   `json:"credentialRequired,omitempty"`
	ID                 string `json:"id,omitempty"`
	FileName           string `json:"fileName,omitempty"`
	Status             string `json:"status,omitempty"`
	Rows               int    `json:"rows"`
	Added              int    `json:"added"`
	TotalRows          int    `json:"totalRows"`
}

// TransactionsResponse is the JSON response from /api/transactions.
type TransactionsResponse struct {
	Success      bool                 `json:"success"`
	Total        int                  `json:"total"`
	Count        int                  `json:"count"`
	Transactions []models.Transaction `json:"transactions"`
	Summary      models.Summary       `json:"summary"`
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
		"engine":  "fiber",
	})
}

func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return uploadError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return uploadError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return uploadError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := c.SaveFile(header, tmp.Name()); err != nil {
		return uploadError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	// A credential, when supplied, is handed to the retry path through a
	// prompter; with none the file parks in awaiting_credential and the
	// client resubmits with the password.
	var prompt ingest.CredentialPrompter
	if password := c.FormValue("password"); password != "" {
		prompt = func(string) (string, bool) { return password, true }
	}

	res := h.runner.ProcessFile(tmp.Name(), header.Filename, prompt)
	resp := UploadResponse{
		ID:        res.ID,
		FileName:  res.FileName,
		Status:    string(res.Status),
		Rows:      res.Rows,
		Added:     res.Added,
		Error:     res.Error,
		TotalRows: h.store.Len(),
	}

	switch res.Status {
	case ingest.StatusSucceeded:
		resp.Success = true
		return c.JSON(resp)
	case ingest.StatusSkipped:
		resp.Error = "file already uploaded"
		return c.Status(fiber.StatusConflict).JSON(resp)
	case ingest.StatusAwaitingCredential:
		resp.CredentialRequired = true
		return c.Status(fiber.StatusUnauthorized).JSON(resp)
	case ingest.StatusFailed:
		if strings.Contains(res.Error, "wrong credential") {
			resp.CredentialRequired = true
			return c.Status(fiber.StatusUnauthorized).JSON(resp)
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	default:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}
}

func (h *Handler) HandleTransactions(c *fiber.Ctx) error {
	rows := dataset.Apply(h.store.Snapshot(), criteriaFromQuery(c))
	return c.JSON(TransactionsResponse{
		Success:      true,
		Total:        h.store.Len(),
		Count:        len(rows),
		Transactions: rows,
		Summary:      dataset.Summarize(rows),
	})
}

func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	key := h.cacheKey("summary", c)
	if v, ok := h.cache.Get(key); ok {
		return c.JSON(v)
	}
	sum := dataset.Summarize(dataset.Apply(h.store.Snapshot(), criteriaFromQuery(c)))
	h.cache.Set(key, sum, cache.DefaultExpiration)
	return c.JSON(sum)
}

func (h *Handler) HandleBreakdown(c *fiber.Ctx) error {
	key := h.cacheKey("breakdown", c)
	if v, ok := h.cache.Get(key); ok {
		return c.JSON(v)
	}
	breakdown := dataset.BreakdownByType(dataset.Apply(h.store.Snapshot(), criteriaFromQuery(c)))
	if breakdown == nil {
		breakdown = []models.CategoryTotal{}
	}
	h.cache.Set(key, breakdown, cache.DefaultExpiration)
	return c.JSON(breakdown)
}

func (h *Handler) HandleTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"types": h.store.Types()})
}

func (h *Handler) HandleFiles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"files": h.store.Files()})
}

func (h *Handler) HandleRemoveFile(c *fiber.Ctx) error {
	name := c.Params("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	removed, ok := h.store.RemoveFile(name)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("unknown file %q", name),
		})
	}
	h.log.Info().Str("file", name).Int("removed", removed).Msg("file removed")
	return c.JSON(fiber.Map{
		"success":   true,
		"removed":   removed,
		"totalRows": h.store.Len(),
	})
}

func (h *Handler) HandleClear(c *fiber.Ctx) error {
	h.store.Clear()
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) HandleExportCSV(c *fiber.Ctx) error {
	rows := dataset.Apply(h.store.Snapshot(), criteriaFromQuery(c))

	var buf bytes.Buffer
	w := &writer.CSVWriter{IncludeSummary: c.Query("summary") == "true"}
	if err := w.Write(&buf, rows); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("CSV generation failed: %v", err),
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="export.csv"`)
	return c.Send(buf.Bytes())
}

// criteriaFromQuery reads the filter constraints from the query string:
// text, counterpart, type, start and end (YYYY-MM-DD). Absent or malformed
// values leave that constraint inactive.
func criteriaFromQuery(c *fiber.Ctx) dataset.Criteria {
	return dataset.Criteria{
		Text:          c.Query("text"),
		CounterpartID: c.Query("counterpart"),
		Type:          c.Query("type"),
		StartDate:     parseDateParam(c.Query("start")),
		EndDate:       parseDateParam(c.Query("end")),
	}
}

func parseDateParam(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

func (h *Handler) cacheKey(kind string, c *fiber.Ctx) string {
	return fmt.Sprintf("%s:%d:%s|%s|%s|%s|%s", kind, h.store.Revision(),
		c.Query("text"), c.Query("counterpart"), c.Query("type"), c.Query("start"), c.Query("end"))
}

func uploadError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(UploadResponse{Success: false, Error: msg})
}

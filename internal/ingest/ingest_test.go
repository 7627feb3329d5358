package ingest

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/statementlens/statementlens/internal/dataset"
	"github.com/statementlens/statementlens/internal/extract"
	"github.com/statementlens/statementlens/internal/logger"
	"github.com/statementlens/statementlens/internal/models"
)

func testRunner(store *dataset.Store) *Runner {
	return NewRunner(extract.New(models.DefaultColumnSchema()), store, logger.NewWithWriter(io.Discard))
}

func TestProcessFileMissingPathFails(t *testing.T) {
	r := testRunner(dataset.NewStore())

	res := r.ProcessFile("/no/such/file.pdf", "file.pdf", nil)
	if res.Status != StatusFailed {
		t.Errorf("expected failed, got %s", res.Status)
	}
	if res.Error == "" {
		t.Error("expected an error message")
	}
	if res.ID == "" {
		t.Error("expected a result id")
	}
}

func TestProcessFileCorruptDocumentFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := testRunner(dataset.NewStore())
	res := r.ProcessFile(path, "garbage.pdf", nil)
	if res.Status != StatusFailed {
		t.Errorf("expected failed for corrupt document, got %s", res.Status)
	}
}

func TestProcessFileSkipsAlreadyIngestedName(t *testing.T) {
	store := dataset.NewStore()
	store.Ingest("seen.pdf", nil)

	r := testRunner(store)
	res := r.ProcessFile("/irrelevant/seen.pdf", "seen.pdf", nil)
	if res.Status != StatusSkipped {
		t.Errorf("expected skipped, got %s", res.Status)
	}
}

func TestProcessBatchContinuesPastFailures(t *testing.T) {
	store := dataset.NewStore()
	store.Ingest("seen.pdf", nil)

	r := testRunner(store)
	results := r.ProcessBatch([]string{"/no/such/a.pdf", "/x/seen.pdf", "/no/such/b.pdf"}, nil)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Status != StatusFailed || results[2].Status != StatusFailed {
		t.Errorf("expected failures to be recorded: %+v", results)
	}
	if results[1].Status != StatusSkipped {
		t.Errorf("expected middle file skipped, got %s", results[1].Status)
	}
}

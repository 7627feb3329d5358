package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/statementlens/statementlens/internal/dataset"
	"github.com/statementlens/statementlens/internal/models"
)

// CSVWriter serializes an export table to CSV.
type CSVWriter struct {
	// IncludeSummary appends the aggregate totals as trailing comment rows.
	IncludeSummary bool
}

// WriteToFile writes the transactions as CSV to the given path.
func (w *CSVWriter) WriteToFile(path string, rows []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, rows)
}

// Write writes the transactions as CSV to the given writer.
func (w *CSVWriter) Write(out io.Writer, rows []models.Transaction) error {
	table := BuildTable(rows)

	cw := csv.NewWriter(out)
	defer cw.Flush()

	if err := cw.Write(table.Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if w.IncludeSummary {
		for _, kv := range BuildReport(nil, dataset.Summarize(rows)).Summary {
			if err := cw.Write([]string{"# " + kv.Key, kv.Value}); err != nil {
				return fmt.Errorf("failed to write CSV summary: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

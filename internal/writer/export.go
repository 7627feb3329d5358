package writer

import (
	"strconv"

	"github.com/statementlens/statementlens/internal/models"
)

// Table is the row-oriented export shape handed to serializers. The engine
// only shapes this structure; byte-level formatting (CSV quoting, PDF
// layout) belongs to the serializer consuming it.
type Table struct {
	Header []string
	Rows   [][]string
}

// Report couples the export table with a key/value summary block for
// document-style output.
type Report struct {
	Table   Table
	Summary []KV
}

// KV is one summary line of a report.
type KV struct {
	Key   string
	Value string
}

var exportHeader = []string{"File", "Date", "Type", "Details", "TRX ID", "Out", "In", "Charge", "Balance"}

// BuildTable shapes the given transactions for tabular export, in order.
func BuildTable(rows []models.Transaction) Table {
	t := Table{Header: exportHeader, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.FileName, r.Date, r.Type, r.Details, r.TrxID,
			r.Out, r.In, r.Charge, r.Balance,
		})
	}
	return t
}

// BuildReport shapes transactions plus their aggregate totals for
// document-style export.
func BuildReport(rows []models.Transaction, sum models.Summary) Report {
	return Report{
		Table: BuildTable(rows),
		Summary: []KV{
			{Key: "Total In", Value: FormatAmount(sum.TotalIn)},
			{Key: "Total Out", Value: FormatAmount(sum.TotalOut)},
			{Key: "Total Charge", Value: FormatAmount(sum.TotalCharge)},
		},
	}
}

// FormatAmount renders a numeric total with two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

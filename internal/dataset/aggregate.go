package dataset

import (
	"sort"

	"github.com/statementlens/statementlens/internal/extract"
	"github.com/statementlens/statementlens/internal/models"
)

// Summarize computes running totals over the given rows, whether that is the
// full dataset or a filtered view. Totals are recomputed from the raw amount
// strings every time, so they are trivially consistent with the input.
func Summarize(rows []models.Transaction) models.Summary {
	var s models.Summary
	for _, r := range rows {
		s.TotalIn += extract.ParseAmount(r.In)
		s.TotalOut += extract.ParseAmount(r.Out)
		s.TotalCharge += extract.ParseAmount(r.Charge)
	}
	return s
}

// BreakdownByType accumulates outflow per category label over rows with a
// non-empty type and an out amount greater than zero, then returns the
// entries sorted descending by value (ties broken by name for determinism).
// Categories with no qualifying rows are absent, not zero-valued.
func BreakdownByType(rows []models.Transaction) []models.CategoryTotal {
	totals := make(map[string]float64)
	for _, r := range rows {
		if r.Type == "" {
			continue
		}
		out := extract.ParseAmount(r.Out)
		if out <= 0 {
			continue
		}
		totals[r.Type] += out
	}

	result := make([]models.CategoryTotal, 0, len(totals))
	for name, value := range totals {
		result = append(result, models.CategoryTotal{Name: name, Value: value})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Value != result[j].Value {
			return result[i].Value > result[j].Value
		}
		return result[i].Name < result[j].Name
	})
	return result
}

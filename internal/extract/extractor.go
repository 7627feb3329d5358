package extract

import (
	"fmt"

	"github.com/statementlens/statementlens/internal/models"
)

// Document is the decoder collaborator contract: page count plus positioned
// text tokens per page (1-based index).
type Document interface {
	PageCount() int
	PageTokens(pageIndex int) ([]models.Token, error)
}

// Extractor reconstructs transactions from a decoded statement document.
type Extractor struct {
	Schema models.ColumnSchema
}

// New returns an extractor for the given column schema.
func New(schema models.ColumnSchema) *Extractor {
	return &Extractor{Schema: schema}
}

// ExtractFile walks every page of the document and returns the reconstructed
// transactions, tagged with fileName. Pages with no tokens are skipped.
func (e *Extractor) ExtractFile(doc Document, fileName string) ([]models.Transaction, error) {
	var rows []models.Transaction
	for p := 1; p <= doc.PageCount(); p++ {
		tokens, err := doc.PageTokens(p)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", p, err)
		}
		if len(tokens) == 0 {
			continue
		}
		rows = append(rows, e.ExtractPage(tokens, fileName)...)
	}
	return rows, nil
}

// ExtractPage groups one page's tokens into lines and walks them top to
// bottom building logical rows. A line without a date anchor is skipped. A
// dated line absorbs the immediately following line when that line has no
// date of its own and sits within the schema's merge tolerance; wrapped
// details columns produce exactly that shape. Two real rows are assumed never
// to sit within the tolerance of each other.
func (e *Extractor) ExtractPage(tokens []models.Token, fileName string) []models.Transaction {
	lines := GroupLines(tokens)

	var rows []models.Transaction
	for i := 0; i < len(lines); i++ {
		anchor := lines[i]
		date, ok := ParseStatementDate(anchor.Text())
		if !ok {
			continue
		}

		var cont *models.Line
		if i+1 < len(lines) {
			next := lines[i+1]
			if _, hasDate := ParseStatementDate(next.Text()); !hasDate && abs(anchor.Y-next.Y) < e.Schema.MergeTolerance {
				cont = &next
			}
		}

		rows = append(rows, BuildRow(e.Schema, fileName, anchor, cont, date))
		if cont != nil {
			i++
		}
	}
	return rows
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package dataset

import (
	"strings"
	"time"

	"github.com/statementlens/statementlens/internal/models"
)

// Criteria is a composable filter over the dataset. Zero values mean
// unconstrained; with no constraint active, Apply is the identity.
type Criteria struct {
	// Text matches case-insensitively against the raw line.
	Text string
	// CounterpartID matches case-sensitively against the raw line; mobile
	// numbers are not a distinct field, they live in the narrative.
	CounterpartID string
	// Type must match the category label exactly.
	Type string
	// StartDate and EndDate bound the transaction date inclusively. EndDate
	// covers its whole calendar day.
	StartDate *time.Time
	EndDate   *time.Time
}

// Apply evaluates the criteria independently per transaction and returns the
// matching subset in input order. All active constraints are ANDed. A row
// without a parsed date always passes the date constraint: it cannot be
// excluded by a date it does not have.
func Apply(rows []models.Transaction, c Criteria) []models.Transaction {
	text := strings.ToLower(strings.TrimSpace(c.Text))
	counterpart := strings.TrimSpace(c.CounterpartID)

	var end *time.Time
	if c.EndDate != nil {
		e := time.Date(c.EndDate.Year(), c.EndDate.Month(), c.EndDate.Day(), 23, 59, 59, 0, c.EndDate.Location())
		end = &e
	}

	out := make([]models.Transaction, 0, len(rows))
	for _, r := range rows {
		if text != "" && !strings.Contains(strings.ToLower(r.RawLine), text) {
			continue
		}
		if counterpart != "" && !strings.Contains(r.RawLine, counterpart) {
			continue
		}
		if c.Type != "" && r.Type != c.Type {
			continue
		}
		if r.DateObj != nil {
			if c.StartDate != nil && r.DateObj.Before(*c.StartDate) {
				continue
			}
			if end != nil && r.DateObj.After(*end) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

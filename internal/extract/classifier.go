package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/statementlens/statementlens/internal/models"
)

// Transaction reference embedded in the details narrative, e.g.
// "TRX ID: 9AB34CD7EF".
var trxIDPattern = regexp.MustCompile(`(?i)TRX ID:\s*([A-Z0-9]+)`)

// BuildRow maps the tokens of one logical row (a dated anchor line plus an
// optional continuation line) into a Transaction using the schema's column
// boundaries.
//
// Tokens in the date/type/details columns are joined with spaces and trimmed;
// amount columns are concatenated without separators because the source
// renders each amount as one contiguous run. A trailing TRX ID reference is
// lifted out of the details text into its own field.
func BuildRow(schema models.ColumnSchema, fileName string, anchor models.Line, cont *models.Line, anchorDate time.Time) models.Transaction {
	raw := anchor.Text()
	if cont != nil {
		raw += " " + cont.Text()
	}
	date := anchorDate
	txn := models.Transaction{
		FileName: fileName,
		RawLine:  raw,
		DateObj:  &date,
	}

	mapLine := func(ln models.Line) {
		for _, t := range ln.Tokens {
			s := strings.TrimSpace(t.Text)
			if s == "" {
				continue
			}
			switch {
			case t.X < schema.DateMax:
				txn.Date += s + " "
			case t.X < schema.TypeMax:
				txn.Type += s + " "
			case t.X < schema.DetailsMax:
				txn.Details += s + " "
			case t.X < schema.OutMax:
				txn.Out += s
			case t.X < schema.InMax:
				txn.In += s
			case t.X < schema.ChargeMax:
				txn.Charge += s
			default:
				txn.Balance += s
			}
		}
	}
	mapLine(anchor)
	if cont != nil {
		mapLine(*cont)
	}

	txn.Date = strings.TrimSpace(txn.Date)
	txn.Type = strings.TrimSpace(txn.Type)
	txn.Details = strings.TrimSpace(txn.Details)

	if m := trxIDPattern.FindStringSubmatch(txn.Details); m != nil {
		txn.TrxID = m[1]
		txn.Details = strings.TrimSpace(strings.Replace(txn.Details, m[0], "", 1))
	}
	return txn
}

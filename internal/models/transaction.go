package models

import (
	"strings"
	"time"
)

// Token is one fragment of rendered text together with its page-relative
// position, as produced by the PDF decoder.
type Token struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Line is an ordered group of tokens sharing a rounded vertical position,
// sorted left to right. Lines are transient and rebuilt per page.
type Line struct {
	Y      int
	Tokens []Token
}

// Text returns the concatenated token texts of the line, space separated.
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Tokens))
	for _, t := range l.Tokens {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}

// Transaction represents a single reconstructed statement entry.
//
// RawLine is the concatenated text of the 1-2 source lines and acts as the
// identity key when merging uploads; the TRX ID is not unique enough for that
// (it may be absent or repeated). DateObj is derived once at extraction time
// and is nil only when the date pattern failed to match. Field values are ""
// when no token fell into that column, never absent.
type Transaction struct {
	FileName string     `json:"fileName"`
	Date     string     `json:"date"`
	Type     string     `json:"type"`
	Details  string     `json:"details"`
	Out      string     `json:"out"`
	In       string     `json:"in"`
	Charge   string     `json:"charge"`
	Balance  string     `json:"balance"`
	TrxID    string     `json:"trxId"`
	RawLine  string     `json:"rawLine"`
	DateObj  *time.Time `json:"dateObj,omitempty"`
}

// Summary holds running totals over a set of transactions. It is always
// recomputed from the raw amount strings, never cached incrementally.
type Summary struct {
	TotalIn     float64 `json:"totalIn"`
	TotalOut    float64 `json:"totalOut"`
	TotalCharge float64 `json:"totalCharge"`
}

// CategoryTotal is one entry of a per-category outflow breakdown.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

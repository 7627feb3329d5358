package extract

import (
	"testing"
	"time"
)

func TestParseStatementDate(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
		ok       bool
	}{
		{"15-Mar-24 Send Money", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local), true},
		{"01-Jan-24 Cash In 500.00", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), true},
		{"prefix text 31-Dec-23 suffix", time.Date(2023, time.December, 31, 0, 0, 0, 0, time.Local), true},
		{"07-Sep-25", time.Date(2025, time.September, 7, 0, 0, 0, 0, time.Local), true},
		{"15-MAR-24", time.Time{}, false}, // month table is case-sensitive
		{"15-Foo-24", time.Time{}, false},
		{"5-Mar-24", time.Time{}, false}, // day must be two digits
		{"no date here", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseStatementDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseStatementDate(%q): got ok=%v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.expected) {
				t.Errorf("ParseStatementDate(%q): got %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseStatementDateTwoDigitYear(t *testing.T) {
	got, ok := ParseStatementDate("01-Jan-05")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Year() != 2005 {
		t.Errorf("expected year 2005, got %d", got.Year())
	}
}

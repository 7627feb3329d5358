package extract

import (
	"regexp"
	"strconv"
	"time"
)

// DD-MMM-YY anywhere in the line, e.g. "15-Mar-24".
var statementDatePattern = regexp.MustCompile(`(\d{2})-(\w{3})-(\d{2})`)

// Month abbreviations are matched case-sensitively: the source renders them
// exactly as "Jan".."Dec", and anything else is not a date anchor.
var monthIndex = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// ParseStatementDate finds the first DD-MMM-YY date in s and returns it as a
// calendar date. Two-digit years are interpreted as 2000+YY. It never errors:
// a miss, including an unrecognized month abbreviation, reports ok=false.
func ParseStatementDate(s string) (time.Time, bool) {
	m := statementDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthIndex[m[2]]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	return time.Date(2000+year, month, day, 0, 0, 0, 0, time.Local), true
}

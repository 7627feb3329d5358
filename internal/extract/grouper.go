package extract

import (
	"math"
	"sort"
	"strings"

	"github.com/statementlens/statementlens/internal/models"
)

// GroupLines clusters one page's tokens into physical lines. Tokens whose y
// rounds to the same integer share a line; within a line tokens are ordered
// by x ascending. Lines come out ordered by y descending, i.e. top of page
// first, since the page coordinate system is bottom-up.
func GroupLines(tokens []models.Token) []models.Line {
	buckets := make(map[int][]models.Token)
	for _, t := range tokens {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		y := int(math.Round(t.Y))
		buckets[y] = append(buckets[y], t)
	}

	ys := make([]int, 0, len(buckets))
	for y := range buckets {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	lines := make([]models.Line, 0, len(ys))
	for _, y := range ys {
		toks := buckets[y]
		sort.SliceStable(toks, func(i, j int) bool {
			return toks[i].X < toks[j].X
		})
		lines = append(lines, models.Line{Y: y, Tokens: toks})
	}
	return lines
}

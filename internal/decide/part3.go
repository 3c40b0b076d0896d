package decide

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"omr-grader/internal/cell"
)

// Part3Symbols maps Part III row indices to their printed symbols. The
// comma is the Vietnamese decimal separator.
var Part3Symbols = []string{"-", ",", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

// Part3Column picks the marked symbol of one digit column, or "" when no
// bubble clears the strong or marginal gate.
func Part3Column(column []cell.Features, p Params) string {
	if len(column) == 0 {
		return ""
	}
	sorted := append([]cell.Features(nil), column...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].FilledRatio > sorted[j].FilledRatio
	})

	best := sorted[0]
	gap := 0.5
	if len(sorted) > 1 {
		gap = best.FilledRatio - sorted[1].FilledRatio
	}

	strong := best.FilledRatio >= p.StrongFill ||
		(best.FilledRatio >= p.StrongFillDark && best.Mean < p.StrongMean)
	marginal := best.FilledRatio >= p.MarginalFill &&
		gap >= p.MarginalGap &&
		best.Mean < p.MarginalMean
	if !strong && !marginal {
		return ""
	}
	if best.Row < 0 || best.Row >= len(Part3Symbols) {
		return ""
	}
	return Part3Symbols[best.Row]
}

// Part3Tile assembles the signed decimal of one Part III tile from its four
// digit columns. question is used only for the error. The error is
// *UnparseableNumberError when symbols were selected but do not form a
// finite number; a fully empty selection returns (0, false, nil).
func Part3Tile(cells []cell.Features, question int, p Params) (float64, bool, error) {
	columns := make([][]cell.Features, 4)
	for _, c := range cells {
		if c.Col >= 0 && c.Col < 4 {
			columns[c.Col] = append(columns[c.Col], c)
		}
	}

	var sb strings.Builder
	for _, col := range columns {
		sb.WriteString(Part3Column(col, p))
	}

	raw := strings.ReplaceAll(sb.String(), ",", ".")
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, false, &UnparseableNumberError{Question: question, Raw: raw}
	}
	return value, true, nil
}

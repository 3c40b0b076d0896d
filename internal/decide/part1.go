package decide

import (
	"sort"

	"omr-grader/internal/cell"
	"omr-grader/internal/exam"
	"omr-grader/internal/stats"
)

// Part1Decision is the scored outcome for one question row.
type Part1Decision struct {
	Row        int
	Column     int // raw winning column, 0..3
	Letter     exam.Letter
	Confidence float64
	Scores     [4]float64
}

// tileStats are the adaptive thresholds computed once over all cells of a
// tile. Each field is a percentile of the corresponding feature.
type tileStats struct {
	mean25, mean35         float64
	p25at20, p25at30       float64
	dark75, dark60         float64
	veryDark70, veryDark50 float64
}

func newTileStats(cells []cell.Features) tileStats {
	means := make([]float64, len(cells))
	p25s := make([]float64, len(cells))
	darks := make([]float64, len(cells))
	veryDarks := make([]float64, len(cells))
	for i, c := range cells {
		means[i] = c.Mean
		p25s[i] = c.P25
		darks[i] = c.DarkRatio
		veryDarks[i] = c.VeryDarkRatio
	}
	sort.Float64s(means)
	sort.Float64s(p25s)
	sort.Float64s(darks)
	sort.Float64s(veryDarks)

	q := func(p float64, vals []float64) float64 {
		return stats.Percentile(vals, p)
	}
	return tileStats{
		mean25:     q(0.25, means),
		mean35:     q(0.35, means),
		p25at20:    q(0.20, p25s),
		p25at30:    q(0.30, p25s),
		dark75:     q(0.75, darks),
		dark60:     q(0.60, darks),
		veryDark70: q(0.70, veryDarks),
		veryDark50: q(0.50, veryDarks),
	}
}

// score rates how confidently one cell looks filled, relative to the tile.
func (t tileStats) score(c cell.Features) float64 {
	s := 0.0

	switch {
	case c.Mean < t.mean25:
		s += 4.0
	case c.Mean < t.mean35:
		s += 2.0
	}
	switch {
	case c.P25 < t.p25at20:
		s += 3.0
	case c.P25 < t.p25at30:
		s += 1.5
	}
	switch {
	case c.DarkRatio > t.dark75:
		s += 2.5
	case c.DarkRatio > t.dark60:
		s += 1.0
	}
	switch {
	case c.VeryDarkRatio > t.veryDark70:
		s += 2.0
	case c.VeryDarkRatio > t.veryDark50:
		s += 0.5
	}
	switch {
	case c.Min < 40:
		s += 1.5
	case c.Min < 70:
		s += 0.5
	}
	return s
}

// Part1Tile scores every complete question row of a Part I tile. Rows with
// fewer than four sampled cells are omitted; the assembler fills those
// questions in as empty. Ties go to the smaller column index.
func Part1Tile(cells []cell.Features, p Params) []Part1Decision {
	if len(cells) == 0 {
		return nil
	}
	stats := newTileStats(cells)

	rows := map[int][]cell.Features{}
	for _, c := range cells {
		rows[c.Row] = append(rows[c.Row], c)
	}
	rowNums := make([]int, 0, len(rows))
	for r := range rows {
		rowNums = append(rowNums, r)
	}
	sort.Ints(rowNums)

	var decisions []Part1Decision
	for _, r := range rowNums {
		rowCells := rows[r]
		if len(rowCells) != 4 {
			continue
		}
		sort.Slice(rowCells, func(i, j int) bool { return rowCells[i].Col < rowCells[j].Col })

		d := Part1Decision{Row: r}
		best := 0
		for i, c := range rowCells {
			d.Scores[i] = stats.score(c)
			if d.Scores[i] > d.Scores[best] {
				best = i
			}
		}
		d.Column = best
		d.Confidence = d.Scores[best]
		if d.Confidence >= p.MinConfidence {
			d.Letter = exam.LetterFromColumn(best)
		}
		decisions = append(decisions, d)
	}
	return decisions
}

// RemapColumn applies the Part I column correction for regions whose
// printed answer columns are shifted two positions (region indices 2 and 3).
func RemapColumn(col int) int {
	return ((col-2)%4 + 4) % 4
}

// NeedsRemap reports whether a Part I region's columns are shifted.
func NeedsRemap(regionIdx int) bool {
	return regionIdx == 2 || regionIdx == 3
}

package decide

import (
	"math"

	"omr-grader/internal/cell"
	"omr-grader/internal/exam"
)

// deltaEps absorbs binary rounding so a difference of exactly MinDelta
// (e.g. 0.30 vs 0.25) stays on the filled-ratio branch.
const deltaEps = 1e-9

// Part2Pair compares the Đúng (true) and Sai (false) bubbles of one
// (question, option). When the filled ratios differ by at least MinDelta
// the more-filled bubble wins; otherwise the darker grayscale mean decides.
// The comparison always yields a boolean.
func Part2Pair(trueCell, falseCell cell.Features, p Params) bool {
	diff := trueCell.FilledRatio - falseCell.FilledRatio
	if math.Abs(diff) >= p.MinDelta-deltaEps {
		return trueCell.FilledRatio > falseCell.FilledRatio
	}
	return trueCell.Mean < falseCell.Mean
}

// Part2Tile decides both questions of a Part II tile. Rows are the options
// a..d; columns are (left Đúng, left Sai, right Đúng, right Sai). Options
// whose bubble pair was not fully sampled default to false.
func Part2Tile(cells []cell.Features, p Params) [2]map[exam.Option]bool {
	byPos := map[[2]int]cell.Features{}
	for _, c := range cells {
		byPos[[2]int{c.Row, c.Col}] = c
	}

	var out [2]map[exam.Option]bool
	for q := 0; q < 2; q++ {
		answers := make(map[exam.Option]bool, len(exam.Options))
		for row, opt := range exam.Options {
			answers[opt] = false
			trueCell, okT := byPos[[2]int{row, q * 2}]
			falseCell, okF := byPos[[2]int{row, q*2 + 1}]
			if okT && okF {
				answers[opt] = Part2Pair(trueCell, falseCell, p)
			}
		}
		out[q] = answers
	}
	return out
}

// Package digitgrid reads the exam-code (10×4) and student-ID (10×8)
// bubble grids. Each column encodes one digit: the row index of its
// filled cell.
package digitgrid

import (
	"sort"
	"strconv"
	"strings"

	"omr-grader/internal/imageio"
	"omr-grader/internal/preprocess"
	"omr-grader/internal/stats"

	"gocv.io/x/gocv"
)

// Grid dimensions.
const (
	Rows           = 10
	ExamCodeCols   = 4
	StudentIDCols  = 8
	thresholdQuant = 0.10
)

// Read extracts the digit string from a rectified, rotated grid tile.
// cols is ExamCodeCols or StudentIDCols. Returns "" when the marks do not
// form exactly one digit per column.
func Read(tile gocv.Mat, cols int) string {
	if tile.Empty() || cols <= 0 {
		return ""
	}

	gray := imageio.Gray(tile)
	defer gray.Close()
	otsu := preprocess.OtsuBinary(gray)
	defer otsu.Close()

	means := CellMeans(otsu, Rows, cols)
	return Digits(means)
}

// CellMeans splits a single-channel Mat into rows×cols equal cells and
// returns the mean intensity of each, indexed [col][row].
func CellMeans(m gocv.Mat, rows, cols int) [][]float64 {
	h := m.Rows()
	w := m.Cols()
	if h < rows || w < cols {
		return nil
	}
	cellH := h / rows
	cellW := w / cols

	var data []byte
	if m.IsContinuous() {
		data = m.ToBytes()
	} else {
		cont := m.Clone()
		data = cont.ToBytes()
		cont.Close()
	}

	means := make([][]float64, cols)
	for c := 0; c < cols; c++ {
		means[c] = make([]float64, rows)
		for r := 0; r < rows; r++ {
			sum := 0
			for y := r * cellH; y < (r+1)*cellH; y++ {
				rowOff := y * w
				for x := c * cellW; x < (c+1)*cellW; x++ {
					sum += int(data[rowOff+x])
				}
			}
			means[c][r] = float64(sum) / float64(cellH*cellW)
		}
	}
	return means
}

// Digits decides one digit per column from the Otsu cell means. The fill
// threshold is the 10th percentile of all means; a cell is filled iff its
// mean falls below it. Per column the topmost filled cell wins, with the
// lowest mean breaking ties. Columns with no filled cell make the whole
// read invalid.
func Digits(means [][]float64) string {
	if len(means) == 0 {
		return ""
	}

	var all []float64
	for _, col := range means {
		all = append(all, col...)
	}
	if len(all) == 0 {
		return ""
	}
	sort.Float64s(all)
	threshold := stats.Percentile(all, thresholdQuant)

	var sb strings.Builder
	for _, col := range means {
		digit := -1
		for row, mean := range col {
			if mean < threshold {
				digit = row
				break
			}
		}
		if digit < 0 {
			return ""
		}
		sb.WriteString(strconv.Itoa(digit))
	}
	return sb.String()
}

// Package cell samples bubble cells out of a rectified tile and computes
// the feature bag the decision engine consumes.
package cell

import (
	"sort"

	"omr-grader/internal/stats"

	"gonum.org/v1/gonum/stat"
)

// Intensity cutoffs for the darkness ratios.
const (
	darkCutoff     = 120
	veryDarkCutoff = 80
)

// Features is the closed feature set of one bubble cell.
type Features struct {
	Row  int
	Col  int
	Area int

	Mean   float64
	Median float64
	Min    float64
	StdDev float64

	P10 float64
	P25 float64
	P50 float64

	DarkRatio     float64 // fraction of pixels below 120
	VeryDarkRatio float64 // fraction of pixels below 80
	FilledRatio   float64 // fraction of foreground pixels in the inverted binary
}

// Compute builds the feature bag from a cell's grayscale and inverted
// binary pixels. Returns false when the cell is empty after inset.
func Compute(row, col int, gray, binary []byte) (Features, bool) {
	if len(gray) == 0 {
		return Features{}, false
	}

	vals := make([]float64, len(gray))
	min := float64(gray[0])
	dark, veryDark := 0, 0
	for i, b := range gray {
		v := float64(b)
		vals[i] = v
		if v < min {
			min = v
		}
		if b < darkCutoff {
			dark++
		}
		if b < veryDarkCutoff {
			veryDark++
		}
	}

	n := float64(len(vals))
	mean := stat.Mean(vals, nil)
	std := stat.PopStdDev(vals, nil)

	sort.Float64s(vals)
	p10 := stats.Percentile(vals, 0.10)
	p25 := stats.Percentile(vals, 0.25)
	p50 := stats.Percentile(vals, 0.50)

	filled := 0.0
	if len(binary) > 0 {
		set := 0
		for _, b := range binary {
			if b > 0 {
				set++
			}
		}
		filled = float64(set) / float64(len(binary))
	}

	return Features{
		Row:           row,
		Col:           col,
		Area:          len(gray),
		Mean:          mean,
		Median:        p50,
		Min:           min,
		StdDev:        std,
		P10:           p10,
		P25:           p25,
		P50:           p50,
		DarkRatio:     float64(dark) / n,
		VeryDarkRatio: float64(veryDark) / n,
		FilledRatio:   filled,
	}, true
}

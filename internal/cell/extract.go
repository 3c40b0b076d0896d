package cell

import (
	"image"

	"omr-grader/internal/grid"

	"gocv.io/x/gocv"
)

// InsetFrac is the fraction trimmed from each cell side before sampling,
// keeping grid lines and printed labels out of the statistics.
const InsetFrac = 0.05

// Extract samples every bubble cell of a tile. enhanced is the
// contrast-enhanced smoothed grayscale, binary the adaptive inverted
// threshold of the same tile; both must share dimensions. Cells that are
// empty after inset are skipped, which downstream decisions read as
// "no answer".
func Extract(enhanced, binary gocv.Mat, layout grid.Layout) []Features {
	cells := make([]Features, 0, layout.DataRows()*layout.DataCols())

	for r := 0; r < layout.DataRows(); r++ {
		for c := 0; c < layout.DataCols(); c++ {
			x1, y1, x2, y2 := layout.CellBounds(r, c)
			x1, y1, x2, y2 = inset(x1, y1, x2, y2)
			if x2 <= x1 || y2 <= y1 {
				continue
			}

			rect := image.Rect(x1, y1, x2, y2)
			gray := matBytes(enhanced, rect)
			if len(gray) == 0 {
				continue
			}
			bin := matBytes(binary, rect)

			if f, ok := Compute(r, c, gray, bin); ok {
				cells = append(cells, f)
			}
		}
	}
	return cells
}

// inset trims InsetFrac (at least 2 px) from every side.
func inset(x1, y1, x2, y2 int) (int, int, int, int) {
	padX := max(2, int(float64(x2-x1)*InsetFrac))
	padY := max(2, int(float64(y2-y1)*InsetFrac))
	return x1 + padX, y1 + padY, x2 - padX, y2 - padY
}

// matBytes copies a sub-rectangle of a single-channel Mat into a flat
// byte slice. Returns nil if the rect falls outside the Mat.
func matBytes(m gocv.Mat, rect image.Rectangle) []byte {
	if m.Empty() {
		return nil
	}
	bounds := image.Rect(0, 0, m.Cols(), m.Rows())
	rect = rect.Intersect(bounds)
	if rect.Empty() {
		return nil
	}

	sub := m.Region(rect)
	defer sub.Close()
	cont := sub.Clone()
	defer cont.Close()
	return cont.ToBytes()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

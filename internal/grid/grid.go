// Package grid computes the row and column line positions dividing a
// rectified tile into bubble cells. Layouts are pure functions of
// (tile width, tile height, part); all empirical offsets live in Params.
package grid

import (
	"fmt"

	"omr-grader/internal/region"
)

// Layout holds the line offsets of one tile's grid. Lines are strictly
// increasing; HLines starts at 0 and ends at the tile height, VLines at 0
// and the tile width. The first HeaderRows row bands and the first
// LabelCols column bands carry printed labels, not bubbles.
type Layout struct {
	HLines []int
	VLines []int

	HeaderRows int
	LabelCols  int
}

// Rows returns the number of row bands, header included.
func (l Layout) Rows() int { return len(l.HLines) - 1 }

// Cols returns the number of column bands, label included.
func (l Layout) Cols() int { return len(l.VLines) - 1 }

// DataRows returns the number of bubble row bands.
func (l Layout) DataRows() int { return l.Rows() - l.HeaderRows }

// DataCols returns the number of bubble column bands.
func (l Layout) DataCols() int { return l.Cols() - l.LabelCols }

// CellBounds returns the pixel bounds (x1, y1, x2, y2) of the bubble cell
// at data row r and data column c, before any inset.
func (l Layout) CellBounds(r, c int) (int, int, int, int) {
	ri := r + l.HeaderRows
	ci := c + l.LabelCols
	return l.VLines[ci], l.HLines[ri], l.VLines[ci+1], l.HLines[ri+1]
}

// LineShift is an upward correction applied to one horizontal line:
// Frac of the tile height plus Px pixels.
type LineShift struct {
	Frac float64
	Px   int
}

// Params holds the per-part geometry constants. The pixel offsets are
// hand-tuned for ~1440-pixel-wide scans and do not scale with tile height.
type Params struct {
	LabelFrac float64 // label / question-number column, fraction of width

	P1HeaderFrac  float64 // Part I header band
	P1DriftPerRow float64 // upward px per row from row 5 on

	P2HeaderFrac float64   // Part II header band
	P2RowStops   []float64 // option row ends, fractions of the body

	P3HeaderFrac float64           // Part III header band
	P3Shifts     map[int]LineShift // upward shifts for lines 5..11
}

// DefaultParams returns the balanced-grid geometry constants.
func DefaultParams() Params {
	return Params{
		LabelFrac:     0.15,
		P1HeaderFrac:  0.09,
		P1DriftPerRow: 1.5,
		P2HeaderFrac:  0.32,
		P2RowStops:    []float64{0.35, 0.50, 0.70, 1.00},
		P3HeaderFrac:  0.08,
		P3Shifts: map[int]LineShift{
			5:  {Frac: 0.02},
			6:  {Px: 10},
			7:  {Px: 14},
			8:  {Px: 20},
			9:  {Px: 22},
			10: {Px: 20},
			11: {Px: 25},
		},
	}
}

// ForPart computes the grid for a rectified, rotated tile.
func ForPart(part region.Part, width, height int, p Params) (Layout, error) {
	if width < 8 || height < 16 {
		return Layout{}, fmt.Errorf("tile %dx%d too small for %s grid", width, height, part)
	}
	switch part {
	case region.Part1:
		return part1Grid(width, height, p), nil
	case region.Part2:
		return part2Grid(width, height, p), nil
	case region.Part3:
		return part3Grid(width, height, p), nil
	default:
		return Layout{}, fmt.Errorf("no grid defined for %s", part)
	}
}

// part1Grid lays out the header plus ten question rows. Rows five and up
// drift upward on the printed sheet, so their lines shift by
// DriftPerRow*(row-4) pixels.
func part1Grid(width, height int, p Params) Layout {
	header := int(float64(height) * p.P1HeaderFrac)
	h := []int{0, header}

	base := float64(height-header) / 10
	for i := 1; i <= 10; i++ {
		correction := 0
		if i >= 5 {
			correction = int(float64(i-4) * p.P1DriftPerRow)
		}
		h = append(h, header+int(float64(i)*base)-correction)
	}
	h[len(h)-1] = height

	return Layout{
		HLines:     sanitize(h, height),
		VLines:     answerColumns(width, p.LabelFrac, 4),
		HeaderRows: 1,
		LabelCols:  1,
	}
}

// part2Grid lays out the header plus the four option rows a..d at fixed
// fractional stops. Columns are label, Q-left Đúng, Q-left Sai,
// Q-right Đúng, Q-right Sai.
func part2Grid(width, height int, p Params) Layout {
	header := int(float64(height) * p.P2HeaderFrac)
	h := []int{0, header}

	body := height - header
	for _, stop := range p.P2RowStops {
		h = append(h, header+int(float64(body)*stop))
	}
	h[len(h)-1] = height

	return Layout{
		HLines:     sanitize(h, height),
		VLines:     answerColumns(width, p.LabelFrac, 4),
		HeaderRows: 1,
		LabelCols:  1,
	}
}

// part3Grid lays out the header plus twelve symbol rows ('-', ',', '0'..'9').
// Lines five through eleven take the configured upward drift compensation.
func part3Grid(width, height int, p Params) Layout {
	header := int(float64(height) * p.P3HeaderFrac)
	h := []int{0, header}

	rowHeight := float64(height-header) / 12
	for i := 1; i < 12; i++ {
		y := header + int(rowHeight*float64(i))
		if shift, ok := p.P3Shifts[i]; ok {
			y -= int(shift.Frac*float64(height)) + shift.Px
		}
		h = append(h, y)
	}
	h = append(h, height)

	return Layout{
		HLines:     sanitize(h, height),
		VLines:     answerColumns(width, p.LabelFrac, 4),
		HeaderRows: 1,
		LabelCols:  1,
	}
}

// answerColumns splits the width into a label column and n equal bubble
// columns.
func answerColumns(width int, labelFrac float64, n int) []int {
	label := int(float64(width) * labelFrac)
	colWidth := float64(width-label) / float64(n)

	v := []int{0, label}
	for i := 1; i < n; i++ {
		v = append(v, label+int(float64(i)*colWidth))
	}
	v = append(v, width)
	return v
}

// sanitize enforces strict monotonicity, pinning the last line to max.
// Degenerate tiles produce crowded lines whose empty cells decay to empty
// answers downstream.
func sanitize(lines []int, max int) []int {
	for i := 1; i < len(lines); i++ {
		if lines[i] <= lines[i-1] {
			lines[i] = lines[i-1] + 1
		}
		if lines[i] > max {
			lines[i] = max
		}
	}
	for i := len(lines) - 2; i > 0; i-- {
		if lines[i] >= lines[i+1] {
			lines[i] = lines[i+1] - 1
		}
	}
	return lines
}

package grid

import (
	"testing"

	"omr-grader/internal/region"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertLines checks the grid invariants: strictly increasing lines
// spanning exactly [0, size].
func assertLines(t *testing.T, lines []int, size int) {
	t.Helper()
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, 0, lines[0])
	assert.Equal(t, size, lines[len(lines)-1])
	for i := 1; i < len(lines); i++ {
		assert.Greater(t, lines[i], lines[i-1], "line %d not increasing", i)
	}
}

func TestPart1Grid(t *testing.T) {
	const w, h = 400, 1000
	l, err := ForPart(region.Part1, w, h, DefaultParams())
	require.NoError(t, err)

	// Header band plus ten question rows
	assert.Len(t, l.HLines, 12)
	assert.Equal(t, 11, l.Rows())
	assert.Equal(t, 10, l.DataRows())
	assert.Equal(t, 4, l.DataCols())
	assertLines(t, l.HLines, h)
	assertLines(t, l.VLines, w)

	// Header is 9% of the tile
	assert.Equal(t, 90, l.HLines[1])
	// Question-number column is 15% of the width
	assert.Equal(t, 60, l.VLines[1])

	// Rows 1-4 sit on the uncorrected raster; row 5 on is pulled up by
	// 1.5 px per row
	base := float64(h-90) / 10
	assert.Equal(t, 90+int(1*base), l.HLines[2])
	assert.Equal(t, 90+int(4*base), l.HLines[5])
	assert.Equal(t, 90+int(5*base)-1, l.HLines[6])
	assert.Equal(t, 90+int(9*base)-7, l.HLines[10])
}

func TestPart2Grid(t *testing.T) {
	const w, h = 400, 500
	l, err := ForPart(region.Part2, w, h, DefaultParams())
	require.NoError(t, err)

	// Header plus option rows a..d
	assert.Len(t, l.HLines, 6)
	assert.Equal(t, 4, l.DataRows())
	assert.Equal(t, 4, l.DataCols())
	assertLines(t, l.HLines, h)
	assertLines(t, l.VLines, w)

	header := int(0.32 * h)
	body := h - header
	assert.Equal(t, header, l.HLines[1])
	assert.Equal(t, header+int(0.35*float64(body)), l.HLines[2])
	assert.Equal(t, header+int(0.50*float64(body)), l.HLines[3])
	assert.Equal(t, header+int(0.70*float64(body)), l.HLines[4])
	assert.Equal(t, h, l.HLines[5])
}

func TestPart3Grid(t *testing.T) {
	const w, h = 1000, 600
	l, err := ForPart(region.Part3, w, h, DefaultParams())
	require.NoError(t, err)

	// Header plus the twelve symbol rows
	assert.Len(t, l.HLines, 14)
	assert.Equal(t, 12, l.DataRows())
	assertLines(t, l.HLines, h)
	assertLines(t, l.VLines, w)

	header := int(0.08 * h)
	rowH := float64(h-header) / 12
	// Lines 1-4 are even; line 5 is pulled up by 2% of the height, the
	// later lines by their fixed pixel shifts
	assert.Equal(t, header+int(2*rowH), l.HLines[3])
	assert.Equal(t, header+int(5*rowH)-int(0.02*h), l.HLines[6])
	assert.Equal(t, header+int(6*rowH)-10, l.HLines[7])
	assert.Equal(t, header+int(11*rowH)-25, l.HLines[12])
}

func TestTinyTileRejected(t *testing.T) {
	_, err := ForPart(region.Part3, 4, 10, DefaultParams())
	assert.Error(t, err)
}

func TestUnknownPartRejected(t *testing.T) {
	_, err := ForPart(region.ExamCode, 400, 400, DefaultParams())
	assert.Error(t, err)
}

func TestCellBounds(t *testing.T) {
	l, err := ForPart(region.Part2, 400, 500, DefaultParams())
	require.NoError(t, err)

	x1, y1, x2, y2 := l.CellBounds(0, 0)
	assert.Equal(t, l.VLines[1], x1)
	assert.Equal(t, l.HLines[1], y1)
	assert.Equal(t, l.VLines[2], x2)
	assert.Equal(t, l.HLines[2], y2)
}

package decide

import (
	"testing"

	"omr-grader/internal/cell"
	"omr-grader/internal/exam"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPart2PairFilledRatioDominance(t *testing.T) {
	p := DefaultParams()

	trueCell := cell.Features{FilledRatio: 0.40, Mean: 90}
	falseCell := cell.Features{FilledRatio: 0.10, Mean: 80}
	// Đúng clearly more filled wins even though Sai is darker on average
	assert.True(t, Part2Pair(trueCell, falseCell, p))
	assert.False(t, Part2Pair(falseCell, trueCell, p))
}

func TestPart2PairBoundaryDelta(t *testing.T) {
	p := DefaultParams()

	// Δ exactly 0.05 stays on the filled-ratio branch; the means would
	// have decided the other way
	trueCell := cell.Features{FilledRatio: 0.30, Mean: 200}
	falseCell := cell.Features{FilledRatio: 0.25, Mean: 50}
	assert.True(t, Part2Pair(trueCell, falseCell, p))
}

func TestPart2PairMeanTieBreak(t *testing.T) {
	p := DefaultParams()

	trueCell := cell.Features{FilledRatio: 0.22, Mean: 80}
	falseCell := cell.Features{FilledRatio: 0.20, Mean: 120}
	// Δ below threshold: the darker Đúng bubble wins
	assert.True(t, Part2Pair(trueCell, falseCell, p))

	trueCell.Mean = 150
	assert.False(t, Part2Pair(trueCell, falseCell, p))
}

func TestPart2TileDecidesBothQuestions(t *testing.T) {
	// Question 1 (columns 0,1): option a marked true, the rest false.
	// Question 2 (columns 2,3): option d marked true.
	var cells []cell.Features
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			f := cell.Features{Row: row, Col: col, FilledRatio: 0.05, Mean: 200}
			isTrueBubble := col%2 == 0
			switch {
			case col < 2 && row == 0 && isTrueBubble:
				f.FilledRatio = 0.5
				f.Mean = 60
			case col < 2 && row != 0 && !isTrueBubble:
				f.FilledRatio = 0.5
				f.Mean = 60
			case col >= 2 && row == 3 && isTrueBubble:
				f.FilledRatio = 0.5
				f.Mean = 60
			case col >= 2 && row != 3 && !isTrueBubble:
				f.FilledRatio = 0.5
				f.Mean = 60
			}
			cells = append(cells, f)
		}
	}

	out := Part2Tile(cells, DefaultParams())

	left := out[0]
	require.Len(t, left, 4)
	assert.True(t, left[exam.OptionA])
	assert.False(t, left[exam.OptionB])
	assert.False(t, left[exam.OptionC])
	assert.False(t, left[exam.OptionD])

	right := out[1]
	assert.False(t, right[exam.OptionA])
	assert.False(t, right[exam.OptionB])
	assert.False(t, right[exam.OptionC])
	assert.True(t, right[exam.OptionD])
}

func TestPart2TileMissingCellsDefaultFalse(t *testing.T) {
	out := Part2Tile(nil, DefaultParams())
	for q := 0; q < 2; q++ {
		require.Len(t, out[q], 4)
		for _, opt := range exam.Options {
			assert.False(t, out[q][opt])
		}
	}
}

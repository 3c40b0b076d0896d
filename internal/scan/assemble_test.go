package scan

import (
	"testing"

	"omr-grader/internal/exam"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblePart1FillsAllQuestions(t *testing.T) {
	found := map[int]exam.Part1Answer{
		3:  {Question: 3, Letter: exam.LetterB, Confidence: 7.5},
		40: {Question: 40, Letter: exam.LetterD, Confidence: 4.0, Remapped: true, RawLetter: exam.LetterB},
	}
	out := AssemblePart1(found)
	require.Len(t, out, exam.Part1Questions)

	for i, a := range out {
		assert.Equal(t, i+1, a.Question)
	}
	assert.Equal(t, exam.LetterB, out[2].Letter)
	assert.Equal(t, exam.LetterD, out[39].Letter)
	assert.True(t, out[39].Remapped)
	assert.Equal(t, exam.LetterNone, out[0].Letter)
}

func TestAssemblePart1Empty(t *testing.T) {
	out := AssemblePart1(nil)
	require.Len(t, out, exam.Part1Questions)
	for i, a := range out {
		assert.Equal(t, i+1, a.Question)
		assert.Equal(t, exam.LetterNone, a.Letter)
	}
}

func TestAssemblePart2OptionMapsComplete(t *testing.T) {
	found := map[int]exam.Part2Answer{
		2: {
			Question: 2,
			Answers:  map[exam.Option]bool{"a": true, "b": false, "c": true, "d": false},
			Detected: true,
		},
	}
	out := AssemblePart2(found)
	require.Len(t, out, exam.Part2Questions)

	for i, a := range out {
		assert.Equal(t, i+1, a.Question)
		require.Len(t, a.Answers, 4)
		for _, opt := range exam.Options {
			_, ok := a.Answers[opt]
			assert.True(t, ok, "q%d missing option %s", a.Question, opt)
		}
	}
	assert.True(t, out[1].Detected)
	assert.True(t, out[1].Answers[exam.OptionA])
	assert.False(t, out[0].Detected)
}

func TestAssemblePart3FillsAllQuestions(t *testing.T) {
	found := map[int]exam.Part3Answer{
		5: {Question: 5, Value: -1.5, Valid: true},
	}
	out := AssemblePart3(found)
	require.Len(t, out, exam.Part3Questions)

	for i, a := range out {
		assert.Equal(t, i+1, a.Question)
	}
	assert.True(t, out[4].Valid)
	assert.InDelta(t, -1.5, out[4].Value, 1e-9)
	assert.False(t, out[0].Valid)
}

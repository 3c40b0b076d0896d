package grade

import (
	"testing"

	"omr-grader/internal/exam"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// fullKey answers every question: Part I all 'A', Part II alternating,
// Part III simple decimals.
func fullKey() exam.AnswerKey {
	key := exam.AnswerKey{ExamCode: "2912"}
	for q := 1; q <= exam.Part1Questions; q++ {
		key.Part1 = append(key.Part1, exam.Part1KeyEntry{Question: q, Letter: exam.LetterA})
	}
	for q := 1; q <= exam.Part2Questions; q++ {
		for i, opt := range exam.Options {
			key.Part2 = append(key.Part2, exam.Part2KeyEntry{
				Question: q, Option: opt, Value: i%2 == 0,
			})
		}
	}
	for q := 1; q <= exam.Part3Questions; q++ {
		key.Part3 = append(key.Part3, exam.Part3KeyEntry{Question: q, Value: float64(q) - 0.5})
	}
	return key
}

// extractionMatching builds an extraction that answers exactly per the key.
func extractionMatching(key exam.AnswerKey) exam.Extracted {
	var ex exam.Extracted
	ex.ExamCode = key.ExamCode

	p1 := key.Part1Map()
	for q := 1; q <= exam.Part1Questions; q++ {
		ex.Part1 = append(ex.Part1, exam.Part1Answer{Question: q, Letter: p1[q], Confidence: 8})
	}
	p2 := key.Part2Map()
	for q := 1; q <= exam.Part2Questions; q++ {
		answers := make(map[exam.Option]bool, 4)
		for _, opt := range exam.Options {
			answers[opt] = p2[q][opt]
		}
		ex.Part2 = append(ex.Part2, exam.Part2Answer{Question: q, Answers: answers, Detected: true})
	}
	p3 := key.Part3Map()
	for q := 1; q <= exam.Part3Questions; q++ {
		ex.Part3 = append(ex.Part3, exam.Part3Answer{Question: q, Value: p3[q], Valid: true})
	}
	return ex
}

// emptyExtraction answers nothing.
func emptyExtraction() exam.Extracted {
	var ex exam.Extracted
	for q := 1; q <= exam.Part1Questions; q++ {
		ex.Part1 = append(ex.Part1, exam.Part1Answer{Question: q})
	}
	for q := 1; q <= exam.Part2Questions; q++ {
		answers := map[exam.Option]bool{"a": false, "b": false, "c": false, "d": false}
		ex.Part2 = append(ex.Part2, exam.Part2Answer{Question: q, Answers: answers})
	}
	for q := 1; q <= exam.Part3Questions; q++ {
		ex.Part3 = append(ex.Part3, exam.Part3Answer{Question: q})
	}
	return ex
}

func TestScoreSelfConsistency(t *testing.T) {
	key := fullKey()
	s := Score(extractionMatching(key), key)

	assert.Equal(t, 10.0, s.P1)
	assert.Equal(t, 10.0, s.P2)
	assert.Equal(t, 10.0, s.P3)
	assert.Equal(t, 10.0, s.Total)
}

func TestScoreAllEmpty(t *testing.T) {
	s := Score(emptyExtraction(), fullKey())
	assert.Zero(t, s.P1)
	assert.Zero(t, s.P2)
	assert.Zero(t, s.P3)
	assert.Zero(t, s.Total)
}

func TestScorePartialPart1(t *testing.T) {
	key := fullKey()
	ex := emptyExtraction()
	// Ten correct answers out of forty
	for q := 0; q < 10; q++ {
		ex.Part1[q].Letter = exam.LetterA
	}
	// Ten wrong ones
	for q := 10; q < 20; q++ {
		ex.Part1[q].Letter = exam.LetterC
	}

	s := Score(ex, key)
	assert.InDelta(t, 2.5, s.P1, 1e-9)
}

func TestScoreTotalIsMean(t *testing.T) {
	key := fullKey()
	ex := extractionMatching(key)
	// Spoil all of Part III
	for i := range ex.Part3 {
		ex.Part3[i].Valid = false
	}

	s := Score(ex, key)
	assert.Equal(t, 10.0, s.P1)
	assert.Equal(t, 10.0, s.P2)
	assert.Zero(t, s.P3)
	assert.InDelta(t, (s.P1+s.P2+s.P3)/3, s.Total, 0.01)

	assert.GreaterOrEqual(t, s.Total, 0.0)
	assert.LessOrEqual(t, s.Total, 10.0)
}

func TestScorePart3Tolerance(t *testing.T) {
	key := fullKey()
	ex := extractionMatching(key)

	// Within tolerance: still correct
	ex.Part3[0].Value += 0.01
	s := Score(ex, key)
	assert.Equal(t, 10.0, s.P3)

	// Beyond tolerance: wrong
	ex.Part3[0].Value += 0.05
	s = Score(ex, key)
	assert.InDelta(t, 8.75, s.P3, 1e-9)
}

func TestScoreUndetectedPart2CountsWrong(t *testing.T) {
	key := fullKey()
	ex := extractionMatching(key)

	// The all-false map of an undetected question would match half the
	// alternating key; Detected=false must force all four options wrong.
	ex.Part2[0].Detected = false
	for _, opt := range exam.Options {
		ex.Part2[0].Answers[opt] = false
	}

	s := Score(ex, key)
	assert.InDelta(t, 10.0*28/32, s.P2, 1e-9)
}

func TestServiceKeyNotFound(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, testLogger())

	_, err := svc.Grade("9999", emptyExtraction())
	var notFound *KeyNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "9999", notFound.ExamCode)
}

func TestServiceGradesStoredKey(t *testing.T) {
	key := fullKey()
	store := &stubStore{keys: map[string]exam.AnswerKey{key.ExamCode: key}}
	svc := NewService(store, testLogger())

	s, err := svc.Grade("", extractionMatching(key))
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.Total)
}

type stubStore struct {
	keys map[string]exam.AnswerKey
}

func (s *stubStore) Get(code string) (exam.AnswerKey, bool) {
	k, ok := s.keys[code]
	return k, ok
}

func (s *stubStore) Put(code string, k exam.AnswerKey) {
	if s.keys == nil {
		s.keys = map[string]exam.AnswerKey{}
	}
	s.keys[code] = k
}

// Package grade compares extracted answers against an answer key.
package grade

import (
	"math"

	"omr-grader/internal/exam"
)

// Tolerance is the absolute tolerance for Part III numeric equality.
const Tolerance = 1e-2

// Scores holds the per-part and aggregate results, each in [0, 10].
type Scores struct {
	P1    float64 `json:"p1_score"`
	P2    float64 `json:"p2_score"`
	P3    float64 `json:"p3_score"`
	Total float64 `json:"total_score"`
}

// Score grades an extraction against a key. Each part is worth ten points,
// split evenly over its 40 letters, 32 true/false options, and 8 numbers;
// the total is the mean of the three. Empty answers never match.
func Score(extracted exam.Extracted, key exam.AnswerKey) Scores {
	s := Scores{
		P1: scorePart1(extracted.Part1, key.Part1Map()),
		P2: scorePart2(extracted.Part2, key.Part2Map()),
		P3: scorePart3(extracted.Part3, key.Part3Map()),
	}
	s.Total = round2((s.P1 + s.P2 + s.P3) / 3)
	return s
}

func scorePart1(answers []exam.Part1Answer, key map[int]exam.Letter) float64 {
	correct := 0
	for _, a := range answers {
		if a.Letter == exam.LetterNone {
			continue
		}
		if want, ok := key[a.Question]; ok && a.Letter == want {
			correct++
		}
	}
	return round2(float64(correct) / exam.Part1Questions * 10)
}

func scorePart2(answers []exam.Part2Answer, key map[int]map[exam.Option]bool) float64 {
	correct := 0
	for _, a := range answers {
		if !a.Detected {
			continue
		}
		qKey, ok := key[a.Question]
		if !ok {
			continue
		}
		for _, opt := range exam.Options {
			if want, ok := qKey[opt]; ok && a.Answers[opt] == want {
				correct++
			}
		}
	}
	return round2(float64(correct) / exam.Part2Options * 10)
}

func scorePart3(answers []exam.Part3Answer, key map[int]float64) float64 {
	// eps absorbs binary rounding so a difference of exactly Tolerance
	// (e.g. 0.51 vs 0.5) still counts as equal.
	const eps = 1e-9
	correct := 0
	for _, a := range answers {
		if !a.Valid {
			continue
		}
		if want, ok := key[a.Question]; ok && math.Abs(a.Value-want) <= Tolerance+eps {
			correct++
		}
	}
	return round2(float64(correct) / exam.Part3Questions * 10)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

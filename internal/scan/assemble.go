package scan

import "omr-grader/internal/exam"

// AssemblePart1 produces the forty-entry Part I answer list in question
// order, filling undetected questions with empty letters.
func AssemblePart1(found map[int]exam.Part1Answer) []exam.Part1Answer {
	out := make([]exam.Part1Answer, 0, exam.Part1Questions)
	for q := 1; q <= exam.Part1Questions; q++ {
		if a, ok := found[q]; ok {
			out = append(out, a)
			continue
		}
		out = append(out, exam.Part1Answer{Question: q})
	}
	return out
}

// AssemblePart2 produces the eight-entry Part II answer list. Undetected
// questions get a complete all-false option map with Detected unset.
func AssemblePart2(found map[int]exam.Part2Answer) []exam.Part2Answer {
	out := make([]exam.Part2Answer, 0, exam.Part2Questions)
	for q := 1; q <= exam.Part2Questions; q++ {
		if a, ok := found[q]; ok && a.Answers != nil {
			out = append(out, a)
			continue
		}
		answers := make(map[exam.Option]bool, len(exam.Options))
		for _, opt := range exam.Options {
			answers[opt] = false
		}
		out = append(out, exam.Part2Answer{Question: q, Answers: answers})
	}
	return out
}

// AssemblePart3 produces the eight-entry Part III answer list, invalid
// where no number was detected.
func AssemblePart3(found map[int]exam.Part3Answer) []exam.Part3Answer {
	out := make([]exam.Part3Answer, 0, exam.Part3Questions)
	for q := 1; q <= exam.Part3Questions; q++ {
		if a, ok := found[q]; ok {
			out = append(out, a)
			continue
		}
		out = append(out, exam.Part3Answer{Question: q})
	}
	return out
}

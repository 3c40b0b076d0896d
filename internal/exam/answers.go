// Package exam defines the answer and answer-key value types shared by the
// extraction pipeline, the key store, and the grader.
package exam

// Letter is a Part I answer choice. The zero value means no confident mark
// was detected.
type Letter string

// Part I answer letters.
const (
	LetterNone Letter = ""
	LetterA    Letter = "A"
	LetterB    Letter = "B"
	LetterC    Letter = "C"
	LetterD    Letter = "D"
)

// LetterFromColumn maps an answer-column index 0..3 to its letter.
func LetterFromColumn(col int) Letter {
	if col < 0 || col > 3 {
		return LetterNone
	}
	return Letter(rune('A' + col))
}

// Column returns the 0-based answer-column index, or -1 for LetterNone.
func (l Letter) Column() int {
	if len(l) != 1 || l[0] < 'A' || l[0] > 'D' {
		return -1
	}
	return int(l[0] - 'A')
}

// Option is a Part II sub-answer label.
type Option string

// Part II options.
const (
	OptionA Option = "a"
	OptionB Option = "b"
	OptionC Option = "c"
	OptionD Option = "d"
)

// Options lists the Part II options in order.
var Options = []Option{OptionA, OptionB, OptionC, OptionD}

// Part1Answer is one extracted single-choice answer.
type Part1Answer struct {
	Question   int        `json:"question"`
	Letter     Letter     `json:"letter"`
	Confidence float64    `json:"confidence"`
	Scores     [4]float64 `json:"scores"`
	RawLetter  Letter     `json:"raw_letter,omitempty"`
	Remapped   bool       `json:"remapped,omitempty"`
}

// Part2Answer is the true/false map for one Part II question. Answers maps
// every option in Options to a boolean. Detected is false when the question's
// region was not found in the image; the values are then all false and the
// grader treats every option as wrong.
type Part2Answer struct {
	Question int             `json:"question"`
	Answers  map[Option]bool `json:"answers"`
	Detected bool            `json:"detected"`
}

// Part3Answer is one extracted signed decimal. Valid is false when no
// confident number was assembled.
type Part3Answer struct {
	Question int     `json:"question"`
	Value    float64 `json:"value"`
	Valid    bool    `json:"valid"`
}

// Extracted bundles everything read from one answer sheet.
type Extracted struct {
	ExamCode  string        `json:"exam_code,omitempty"`
	StudentID string        `json:"student_id,omitempty"`
	Part1     []Part1Answer `json:"part1"`
	Part2     []Part2Answer `json:"part2"`
	Part3     []Part3Answer `json:"part3"`
}

// Part sizes fixed by the sheet layout.
const (
	Part1Questions = 40
	Part2Questions = 8
	Part2Options   = 32
	Part3Questions = 8
)

package exam

// Part1KeyEntry is one (question, letter) pair of an answer key.
type Part1KeyEntry struct {
	Question int    `json:"question"`
	Letter   Letter `json:"letter"`
}

// Part2KeyEntry is one ((question, option), bool) pair of an answer key.
type Part2KeyEntry struct {
	Question int    `json:"question"`
	Option   Option `json:"option"`
	Value    bool   `json:"value"`
}

// Part3KeyEntry is one (question, value) pair of an answer key.
type Part3KeyEntry struct {
	Question int     `json:"question"`
	Value    float64 `json:"value"`
}

// AnswerKey is the stored key for one exam code.
type AnswerKey struct {
	ExamCode string          `json:"exam_code"`
	Part1    []Part1KeyEntry `json:"p1"`
	Part2    []Part2KeyEntry `json:"p2"`
	Part3    []Part3KeyEntry `json:"p3"`
}

// Clone returns a deep copy of the key. The key store hands out clones so
// callers never alias cached entries.
func (k AnswerKey) Clone() AnswerKey {
	out := AnswerKey{ExamCode: k.ExamCode}
	out.Part1 = append([]Part1KeyEntry(nil), k.Part1...)
	out.Part2 = append([]Part2KeyEntry(nil), k.Part2...)
	out.Part3 = append([]Part3KeyEntry(nil), k.Part3...)
	return out
}

// Part1Map indexes the Part I key by question number.
func (k AnswerKey) Part1Map() map[int]Letter {
	m := make(map[int]Letter, len(k.Part1))
	for _, e := range k.Part1 {
		m[e.Question] = e.Letter
	}
	return m
}

// Part2Map indexes the Part II key by (question, option).
func (k AnswerKey) Part2Map() map[int]map[Option]bool {
	m := make(map[int]map[Option]bool, Part2Questions)
	for _, e := range k.Part2 {
		qm, ok := m[e.Question]
		if !ok {
			qm = make(map[Option]bool, len(Options))
			m[e.Question] = qm
		}
		qm[e.Option] = e.Value
	}
	return m
}

// Part3Map indexes the Part III key by question number.
func (k AnswerKey) Part3Map() map[int]float64 {
	m := make(map[int]float64, len(k.Part3))
	for _, e := range k.Part3 {
		m[e.Question] = e.Value
	}
	return m
}

// KeyFromExtracted builds an answer key from an extraction result.
// Questions with no detected answer are omitted from the key.
func KeyFromExtracted(examCode string, ex Extracted) AnswerKey {
	key := AnswerKey{ExamCode: examCode}
	for _, a := range ex.Part1 {
		if a.Letter != LetterNone {
			key.Part1 = append(key.Part1, Part1KeyEntry{Question: a.Question, Letter: a.Letter})
		}
	}
	for _, a := range ex.Part2 {
		if !a.Detected {
			continue
		}
		for _, opt := range Options {
			key.Part2 = append(key.Part2, Part2KeyEntry{Question: a.Question, Option: opt, Value: a.Answers[opt]})
		}
	}
	for _, a := range ex.Part3 {
		if a.Valid {
			key.Part3 = append(key.Part3, Part3KeyEntry{Question: a.Question, Value: a.Value})
		}
	}
	return key
}

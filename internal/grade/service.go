package grade

import (
	"fmt"

	"omr-grader/internal/exam"

	"github.com/rs/zerolog"
)

// KeyNotFoundError reports a grade request whose exam code has no stored
// answer key. Fatal to the grade request, not to extraction.
type KeyNotFoundError struct {
	ExamCode string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("no answer key for exam code %q", e.ExamCode)
}

// KeyStore resolves answer keys by exam code. Implemented by keystore.Store;
// persistence behind it is the storage collaborator's concern.
type KeyStore interface {
	Get(examCode string) (exam.AnswerKey, bool)
	Put(examCode string, key exam.AnswerKey)
}

// Service grades extractions against stored keys.
type Service struct {
	keys KeyStore
	log  zerolog.Logger
}

// NewService creates a grading service over a key store.
func NewService(keys KeyStore, log zerolog.Logger) *Service {
	return &Service{keys: keys, log: log}
}

// Grade resolves the key for the extraction's exam code and scores it.
// examCode overrides the extracted code when non-empty.
func (s *Service) Grade(examCode string, extracted exam.Extracted) (Scores, error) {
	code := examCode
	if code == "" {
		code = extracted.ExamCode
	}
	key, ok := s.keys.Get(code)
	if !ok {
		return Scores{}, &KeyNotFoundError{ExamCode: code}
	}

	scores := Score(extracted, key)
	s.log.Info().Str("exam_code", code).
		Float64("p1", scores.P1).Float64("p2", scores.P2).Float64("p3", scores.P3).
		Float64("total", scores.Total).Msg("graded")
	return scores, nil
}

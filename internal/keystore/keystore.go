// Package keystore caches answer keys by exam code with a bounded LRU.
package keystore

import (
	"encoding/json"
	"fmt"
	"os"

	"omr-grader/internal/exam"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity bounds the number of cached keys.
const DefaultCapacity = 100

// Store is a read-mostly LRU of exam_code → AnswerKey. Reads return deep
// copies so callers never alias cached entries. Safe for concurrent use.
type Store struct {
	cache *lru.Cache[string, exam.AnswerKey]
}

// New creates a store with the given capacity; values below 1 fall back to
// DefaultCapacity.
func New(capacity int) *Store {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New[string, exam.AnswerKey](capacity)
	if err != nil {
		// lru.New only fails for non-positive sizes, excluded above.
		panic(err)
	}
	return &Store{cache: cache}
}

// Get returns a copy of the key for an exam code.
func (s *Store) Get(examCode string) (exam.AnswerKey, bool) {
	key, ok := s.cache.Get(examCode)
	if !ok {
		return exam.AnswerKey{}, false
	}
	return key.Clone(), true
}

// Put stores a key under an exam code, evicting the least recently used
// entry when full.
func (s *Store) Put(examCode string, key exam.AnswerKey) {
	key.ExamCode = examCode
	s.cache.Add(examCode, key.Clone())
}

// Len returns the number of cached keys.
func (s *Store) Len() int {
	return s.cache.Len()
}

// EncodeKey marshals an answer key to its persisted JSON form.
func EncodeKey(key exam.AnswerKey) ([]byte, error) {
	return json.MarshalIndent(key, "", "  ")
}

// DecodeKey unmarshals a persisted answer key.
func DecodeKey(data []byte) (exam.AnswerKey, error) {
	var key exam.AnswerKey
	if err := json.Unmarshal(data, &key); err != nil {
		return exam.AnswerKey{}, fmt.Errorf("decode answer key: %w", err)
	}
	return key, nil
}

// LoadFile reads and decodes an answer key file.
func LoadFile(path string) (exam.AnswerKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return exam.AnswerKey{}, err
	}
	return DecodeKey(data)
}

// SaveFile encodes and writes an answer key file.
func SaveFile(path string, key exam.AnswerKey) error {
	data, err := EncodeKey(key)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

package keystore

import (
	"fmt"
	"path/filepath"
	"testing"

	"omr-grader/internal/exam"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleKey(code string) exam.AnswerKey {
	return exam.AnswerKey{
		ExamCode: code,
		Part1: []exam.Part1KeyEntry{
			{Question: 1, Letter: exam.LetterA},
			{Question: 2, Letter: exam.LetterD},
		},
		Part2: []exam.Part2KeyEntry{
			{Question: 1, Option: exam.OptionA, Value: true},
			{Question: 1, Option: exam.OptionB, Value: false},
		},
		Part3: []exam.Part3KeyEntry{
			{Question: 1, Value: -1.5},
			{Question: 2, Value: 0.30000000000000004},
		},
	}
}

func TestStorePutGet(t *testing.T) {
	s := New(10)
	s.Put("2912", sampleKey("2912"))

	key, ok := s.Get("2912")
	require.True(t, ok)
	assert.Equal(t, "2912", key.ExamCode)
	assert.Len(t, key.Part1, 2)

	_, ok = s.Get("0000")
	assert.False(t, ok)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s := New(10)
	s.Put("2912", sampleKey("2912"))

	first, ok := s.Get("2912")
	require.True(t, ok)
	first.Part1[0].Letter = exam.LetterC

	second, ok := s.Get("2912")
	require.True(t, ok)
	assert.Equal(t, exam.LetterA, second.Part1[0].Letter)
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	s := New(3)
	for i := 0; i < 3; i++ {
		code := fmt.Sprintf("%04d", i)
		s.Put(code, sampleKey(code))
	}

	// Touch 0000 so 0001 becomes the eviction candidate
	_, ok := s.Get("0000")
	require.True(t, ok)

	s.Put("9999", sampleKey("9999"))
	assert.Equal(t, 3, s.Len())

	_, ok = s.Get("0001")
	assert.False(t, ok)
	_, ok = s.Get("0000")
	assert.True(t, ok)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	key := sampleKey("2912")
	data, err := EncodeKey(key)
	require.NoError(t, err)

	decoded, err := DecodeKey(data)
	require.NoError(t, err)
	assert.Equal(t, key, decoded)

	// Part III values survive to full float precision
	assert.Equal(t, 0.30000000000000004, decoded.Part3[1].Value)
}

func TestDecodeKeyInvalid(t *testing.T) {
	_, err := DecodeKey([]byte("{not json"))
	assert.Error(t, err)
}

func TestSaveLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2912.json")

	key := sampleKey("2912")
	require.NoError(t, SaveFile(path, key))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, key, loaded)
}

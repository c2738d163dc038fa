package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/reel/internal/storage"
)

type staticSource struct {
	trends []*storage.SearchTrend
	err    error
}

func (s *staticSource) ListTrends(...storage.QueryOption) ([]*storage.SearchTrend, error) {
	return s.trends, s.err
}

func sampleTrends() []*storage.SearchTrend {
	return []*storage.SearchTrend{
		{ID: "1", SearchTerm: "star wars", Count: 9, PosterURL: "sw.jpg"},
		{ID: "2", SearchTerm: "star trek", Count: 4},
		{ID: "3", SearchTerm: "a star is born", Count: 12},
		{ID: "4", SearchTerm: "alien", Count: 2},
		{ID: "5", SearchTerm: "Star", Count: 30},
	}
}

func terms(s []*Suggestion) []string {
	out := make([]string, 0, len(s))
	for _, x := range s {
		out = append(out, x.Term)
	}
	return out
}

func TestEngine_SuggestPrefixBeforeWordMatch(t *testing.T) {
	e := NewEngine(&staticSource{trends: sampleTrends()})

	got, err := e.Suggest("star", 10)
	require.NoError(t, err)

	// "Star" equals the input and is skipped; whole prefix matches rank by
	// count ahead of word-prefix matches
	assert.Equal(t, []string{"star wars", "star trek", "a star is born"}, terms(got))
	assert.Equal(t, "sw.jpg", got[0].PosterURL)
	assert.Equal(t, 9, got[0].Count)
}

func TestEngine_SuggestMultiWord(t *testing.T) {
	e := NewEngine(&staticSource{trends: sampleTrends()})

	got, err := e.Suggest("star w", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"star wars"}, terms(got))
}

func TestEngine_SuggestCaseInsensitive(t *testing.T) {
	e := NewEngine(&staticSource{trends: sampleTrends()})

	got, err := e.Suggest("ALI", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"alien"}, terms(got))
}

func TestEngine_SuggestLimit(t *testing.T) {
	e := NewEngine(&staticSource{trends: sampleTrends()})

	got, err := e.Suggest("star", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestEngine_SuggestEmptyInputs(t *testing.T) {
	e := NewEngine(&staticSource{trends: sampleTrends()})

	for _, prefix := range []string{"", "   "} {
		got, err := e.Suggest(prefix, 5)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}

	got, err := e.Suggest("star", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEngine_SuggestStoreError(t *testing.T) {
	e := NewEngine(&staticSource{err: errors.New("closed")})

	_, err := e.Suggest("star", 5)
	assert.Error(t, err)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple words", "hello world", []string{"hello", "world"}},
		{"with punctuation", "hello, world! test.", []string{"hello", "world", "test"}},
		{"with numbers", "blade runner 2049", []string{"blade", "runner", "2049"}},
		{"mixed case", "Hello WORLD", []string{"hello", "world"}},
		{"single characters kept", "a b", []string{"a", "b"}},
		{"empty string", "", nil},
		{"hyphenated", "spider-man", []string{"spider", "man"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenize(tt.input))
		})
	}
}

func TestScoreTerm(t *testing.T) {
	tests := []struct {
		term   string
		prefix string
		want   float64
	}{
		{"star wars", "sta", 3.0},
		{"a star is born", "star", 1.0},
		{"a star is born", "star bo", 1.0},
		{"a star is born", "star x", 0},
		{"alien", "zz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.term+"/"+tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreTerm(tt.term, tt.prefix, tokenize(tt.prefix)))
		})
	}
}

func TestOpen_EmptyPathUsesEngine(t *testing.T) {
	s := Open(&staticSource{}, "")
	_, ok := s.(*Engine)
	assert.True(t, ok)
}

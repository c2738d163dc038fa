package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pders01/reel/internal/search"
	"github.com/pders01/reel/internal/storage"
)

func TestTruncateEnd(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"dune", 10, "dune"},
		{"dune", 4, "dune"},
		{"the matrix", 5, "the …"},
		{"amélie", 4, "amé…"},
		{"x", 0, ""},
		{"long", 1, "…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateEnd(tt.in, tt.limit), "%q/%d", tt.in, tt.limit)
	}
}

func TestTruncateMiddle(t *testing.T) {
	assert.Equal(t, "abc", truncateMiddle("abc", 5))
	assert.Equal(t, "ab…fg", truncateMiddle("abcdefg", 5))
	assert.Equal(t, "…g", truncateMiddle("abcdefg", 2))
	assert.Equal(t, "", truncateMiddle("abc", 0))
}

func TestRenderSuggestions(t *testing.T) {
	assert.Equal(t, "", renderSuggestions(nil, 80))

	out := renderSuggestions([]*search.Suggestion{
		{Term: "alien", Count: 3},
		{Term: "aliens", Count: 1},
	}, 80)
	assert.Contains(t, out, "⇥ alien (3)")
	assert.Contains(t, out, "aliens (1)")
}

func TestRenderTrendingStrip(t *testing.T) {
	assert.Equal(t, "", renderTrendingStrip(nil, 80))

	out := renderTrendingStrip([]*storage.SearchTrend{
		{SearchTerm: "dune"},
		{SearchTerm: "alien"},
	}, 80)
	assert.Contains(t, out, "trending")
	assert.Contains(t, out, "dune")
	assert.Contains(t, out, "alien")
}

func TestMsgResultsCount(t *testing.T) {
	assert.Equal(t, "1 result • popular", MsgResultsCount("", 1))
	assert.Equal(t, "20 results for 'dune'", MsgResultsCount("dune", 20))
}

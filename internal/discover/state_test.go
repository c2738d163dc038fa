package discover

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pders01/reel/internal/catalog"
	"github.com/pders01/reel/internal/storage"
)

func movies(ids ...int) []catalog.Movie {
	out := make([]catalog.Movie, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog.Movie{ID: id, Title: fmt.Sprintf("movie %d", id)})
	}
	return out
}

func TestState_BeginClearsErrorAndSetsLoading(t *testing.T) {
	st := NewState()
	st.ErrorMessage = "old"

	seq := st.Begin("alien")

	assert.Equal(t, uint64(1), seq)
	assert.True(t, st.Loading)
	assert.Empty(t, st.ErrorMessage)
	assert.Equal(t, "alien", st.DebouncedQuery)
	assert.True(t, st.Current(seq))
}

func TestState_ApplySuccess(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		movies     []catalog.Movie
		wantRecord bool
	}{
		{"query with results", "alien", movies(1, 2), true},
		{"query without results", "zzzz", movies(), false},
		{"empty query", "", movies(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState()
			seq := st.Begin(tt.query)

			record := st.Apply(Result{Seq: seq, Query: tt.query, Movies: tt.movies}, false)

			assert.Equal(t, tt.wantRecord, record)
			assert.Equal(t, OutcomeSuccess, st.Last)
			assert.Equal(t, tt.movies, st.Results)
			assert.Empty(t, st.ErrorMessage)
			assert.True(t, st.Loading, "loading is cleared by Settle, not Apply")
		})
	}
}

func TestState_ApplyAPIErrorClearsResults(t *testing.T) {
	st := NewState()
	st.Results = movies(9)
	seq := st.Begin("x")

	record := st.Apply(Result{Seq: seq, Query: "x", Err: &catalog.APIError{Message: "Too many results."}}, false)

	assert.False(t, record)
	assert.Equal(t, OutcomeAPIError, st.Last)
	assert.Equal(t, "Too many results.", st.ErrorMessage)
	assert.NotNil(t, st.Results)
	assert.Empty(t, st.Results)
}

func TestState_ApplyAPIErrorFallbackMessage(t *testing.T) {
	st := NewState()
	seq := st.Begin("x")

	st.Apply(Result{Seq: seq, Query: "x", Err: &catalog.APIError{}}, false)

	assert.Equal(t, "Failed to fetch movies", st.ErrorMessage)
}

func TestState_ApplyNetworkErrorKeepsResults(t *testing.T) {
	st := NewState()
	st.Results = movies(4, 5)
	seq := st.Begin("x")

	record := st.Apply(Result{Seq: seq, Query: "x", Err: fmt.Errorf("%w: HTTP 500", catalog.ErrFetchFailed)}, false)

	assert.False(t, record)
	assert.Equal(t, OutcomeNetworkError, st.Last)
	assert.Equal(t, "Error fetching movies. Please try again later.", st.ErrorMessage)
	assert.Equal(t, movies(4, 5), st.Results)
}

func TestState_ApplyNilMoviesBecomesEmpty(t *testing.T) {
	st := NewState()
	seq := st.Begin("")

	st.Apply(Result{Seq: seq}, false)

	assert.NotNil(t, st.Results)
	assert.Empty(t, st.Results)
}

func TestState_LastCompletionWinsByDefault(t *testing.T) {
	st := NewState()
	older := st.Begin("a")
	newer := st.Begin("ab")

	st.Apply(Result{Seq: newer, Query: "ab", Movies: movies(2)}, false)
	st.Settle(newer, false)
	st.Apply(Result{Seq: older, Query: "a", Movies: movies(1)}, false)
	st.Settle(older, false)

	assert.Equal(t, movies(1), st.Results, "the late older response overwrites")
	assert.False(t, st.Loading)
}

func TestState_DiscardStaleIgnoresOlderOutcome(t *testing.T) {
	st := NewState()
	older := st.Begin("a")
	newer := st.Begin("ab")

	st.Apply(Result{Seq: newer, Query: "ab", Movies: movies(2)}, true)

	record := st.Apply(Result{Seq: older, Query: "a", Movies: movies(1)}, true)
	st.Settle(older, true)

	assert.False(t, record)
	assert.Equal(t, movies(2), st.Results)
	assert.True(t, st.Loading, "a superseded settle must not clear loading")

	st.Settle(newer, true)
	assert.False(t, st.Loading)
}

func TestState_DiscardStaleIgnoresOlderError(t *testing.T) {
	st := NewState()
	older := st.Begin("a")
	newer := st.Begin("ab")

	st.Apply(Result{Seq: newer, Query: "ab", Movies: movies(2)}, true)
	st.Apply(Result{Seq: older, Query: "a", Err: errors.New("dial tcp: refused")}, true)

	assert.Empty(t, st.ErrorMessage)
	assert.Equal(t, OutcomeSuccess, st.Last)
}

func TestState_SetTrending(t *testing.T) {
	st := NewState()

	st.SetTrending([]*storage.SearchTrend{{SearchTerm: "alien"}})
	assert.Len(t, st.Trending, 1)

	st.SetTrending(nil)
	assert.NotNil(t, st.Trending)
	assert.Empty(t, st.Trending)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "none", OutcomeNone.String())
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "api-error", OutcomeAPIError.String())
	assert.Equal(t, "network-error", OutcomeNetworkError.String())
}

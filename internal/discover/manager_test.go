package discover

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/reel/internal/catalog"
	"github.com/pders01/reel/internal/config"
	"github.com/pders01/reel/internal/storage"
	"github.com/pders01/reel/internal/trend"
)

type stubFetcher struct {
	movies  []catalog.Movie
	err     error
	queries []string
}

func (f *stubFetcher) Fetch(_ context.Context, query string) ([]catalog.Movie, error) {
	f.queries = append(f.queries, query)
	return f.movies, f.err
}

// loadingProbe records whether loading was still set while a trend write ran.
type loadingProbe struct {
	state         *State
	loadingDuring []bool
	terms         []string
	first         []catalog.Movie
}

func (p *loadingProbe) RecordSearch(_ context.Context, term string, movie catalog.Movie) trend.Result {
	p.loadingDuring = append(p.loadingDuring, p.state.Loading)
	p.terms = append(p.terms, term)
	p.first = append(p.first, movie)
	return trend.Result{Term: term, Count: 1}
}

func (p *loadingProbe) Trending(context.Context) []*storage.SearchTrend {
	return []*storage.SearchTrend{{SearchTerm: "alien", Count: 3}}
}

func TestFetchMovies_SuccessRecordsFirstResult(t *testing.T) {
	st := NewState()
	fetcher := &stubFetcher{movies: movies(11, 12)}
	probe := &loadingProbe{state: st}
	m := NewManager(fetcher, probe, config.TestConfig())

	m.FetchMovies(context.Background(), st, "star wars")

	assert.Equal(t, []string{"star wars"}, fetcher.queries)
	assert.Equal(t, movies(11, 12), st.Results)
	assert.False(t, st.Loading)
	assert.Empty(t, st.ErrorMessage)
	require.Equal(t, []string{"star wars"}, probe.terms)
	assert.Equal(t, 11, probe.first[0].ID)
	assert.Equal(t, []bool{true}, probe.loadingDuring, "loading clears after the trend write")
}

func TestFetchMovies_NoRecordCases(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		fetcher *stubFetcher
	}{
		{"empty query", "", &stubFetcher{movies: movies(1)}},
		{"no results", "qwzx", &stubFetcher{movies: movies()}},
		{"api error", "x", &stubFetcher{err: &catalog.APIError{Message: "nope"}}},
		{"transport error", "x", &stubFetcher{err: errors.New("connection refused")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState()
			probe := &loadingProbe{state: st}
			m := NewManager(tt.fetcher, probe, config.TestConfig())

			m.FetchMovies(context.Background(), st, tt.query)

			assert.Empty(t, probe.terms)
			assert.False(t, st.Loading)
		})
	}
}

func TestFetchMovies_EndToEndWithStore(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "reel.db"))
	require.NoError(t, err)
	defer store.Close()

	cfg := config.TestConfig()
	tracker := trend.NewTracker(store, cfg)
	fetcher := &stubFetcher{movies: []catalog.Movie{{ID: 348, PosterPath: "/a.jpg"}}}
	m := NewManager(fetcher, tracker, cfg)
	st := NewState()
	ctx := context.Background()

	m.FetchMovies(ctx, st, "alien")
	m.FetchMovies(ctx, st, "alien")
	m.FetchMovies(ctx, st, "")
	m.LoadTrending(ctx, st)

	require.Len(t, st.Trending, 1)
	assert.Equal(t, "alien", st.Trending[0].SearchTerm)
	assert.Equal(t, 2, st.Trending[0].Count)
	assert.Equal(t, 348, st.Trending[0].MovieID)
}

func TestManager_SearchTagsResult(t *testing.T) {
	m := NewManager(&stubFetcher{movies: movies(1)}, &loadingProbe{state: NewState()}, config.TestConfig())

	res := m.Search(context.Background(), 7, "q")

	assert.Equal(t, uint64(7), res.Seq)
	assert.Equal(t, "q", res.Query)
	assert.NoError(t, res.Err)
	assert.Len(t, res.Movies, 1)
}

func TestManager_DiscardStaleFromConfig(t *testing.T) {
	cfg := config.TestConfig()
	assert.False(t, NewManager(nil, nil, cfg).DiscardStale())

	cfg.Search.DiscardStale = true
	assert.True(t, NewManager(nil, nil, cfg).DiscardStale())
}

func TestManager_LoadTrending(t *testing.T) {
	st := NewState()
	m := NewManager(&stubFetcher{}, &loadingProbe{state: st}, config.TestConfig())

	m.LoadTrending(context.Background(), st)

	require.Len(t, st.Trending, 1)
	assert.Equal(t, 3, st.Trending[0].Count)
}

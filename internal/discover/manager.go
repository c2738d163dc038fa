package discover

import (
	"context"
	"errors"

	"github.com/pders01/reel/internal/catalog"
	"github.com/pders01/reel/internal/config"
	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/storage"
	"github.com/pders01/reel/internal/trend"
)

type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]catalog.Movie, error)
}

type Tracker interface {
	RecordSearch(ctx context.Context, term string, movie catalog.Movie) trend.Result
	Trending(ctx context.Context) []*storage.SearchTrend
}

type Manager struct {
	client       Fetcher
	tracker      Tracker
	discardStale bool
}

func NewManager(client Fetcher, tracker Tracker, cfg *config.Config) *Manager {
	return &Manager{
		client:       client,
		tracker:      tracker,
		discardStale: cfg.Search.DiscardStale,
	}
}

// DiscardStale reports whether results of superseded fetches are dropped.
func (m *Manager) DiscardStale() bool {
	return m.discardStale
}

// Search performs the request half of a fetch. Transport failures are
// logged here; API failures are the caller's to display.
func (m *Manager) Search(ctx context.Context, seq uint64, query string) Result {
	movies, err := m.client.Fetch(ctx, query)
	if err != nil {
		var apiErr *catalog.APIError
		if !errors.As(err, &apiErr) {
			debuglog.WithFields(debuglog.Fields{"query": query, "seq": seq}).
				Errorf("Error fetching movies: %v", err)
		}
	}
	return Result{Seq: seq, Query: query, Movies: movies, Err: err}
}

// Record bumps the trend counter for query using the first result.
func (m *Manager) Record(ctx context.Context, query string, first catalog.Movie) trend.Result {
	return m.tracker.RecordSearch(ctx, query, first)
}

// Trending reads the current top search terms.
func (m *Manager) Trending(ctx context.Context) []*storage.SearchTrend {
	return m.tracker.Trending(ctx)
}

// FetchMovies runs one complete fetch against st: begin, request, apply,
// record the trend when warranted, settle. Loading stays set until the
// trend write has finished.
func (m *Manager) FetchMovies(ctx context.Context, st *State, query string) {
	seq := st.Begin(query)
	defer st.Settle(seq, m.discardStale)

	res := m.Search(ctx, seq, query)
	if st.Apply(res, m.discardStale) {
		m.Record(ctx, query, res.Movies[0])
	}
}

// LoadTrending refreshes st.Trending from the tracker.
func (m *Manager) LoadTrending(ctx context.Context, st *State) {
	st.SetTrending(m.tracker.Trending(ctx))
}

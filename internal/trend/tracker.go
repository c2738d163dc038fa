// Package trend keeps a persisted popularity counter per search term.
//
// Writes are best effort: failures are logged and reported in the returned
// Result, never as an error the caller has to handle.
package trend

import (
	"context"
	"sync"

	"github.com/pders01/reel/internal/catalog"
	"github.com/pders01/reel/internal/config"
	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/storage"
)

// Store is the subset of the document store the tracker needs.
type Store interface {
	ListTrends(opts ...storage.QueryOption) ([]*storage.SearchTrend, error)
	CreateTrend(t *storage.SearchTrend) (*storage.SearchTrend, error)
	UpdateTrendCount(id string, count int) (*storage.SearchTrend, error)
}

// Listener is told about every successfully written trend record.
type Listener interface {
	OnTrendRecorded(t *storage.SearchTrend)
}

// Result describes what RecordSearch did.
type Result struct {
	Term    string
	Created bool
	Count   int
	Err     error
}

type Tracker struct {
	store          Store
	limit          int
	imageBaseURL   string
	fallbackPoster string

	mu        sync.RWMutex
	listeners []Listener
}

func NewTracker(store Store, cfg *config.Config) *Tracker {
	limit := cfg.Trends.Limit
	if limit <= 0 {
		limit = 5
	}
	return &Tracker{
		store:          store,
		limit:          limit,
		imageBaseURL:   cfg.Catalog.ImageBaseURL,
		fallbackPoster: cfg.Catalog.FallbackPoster,
	}
}

func (t *Tracker) AddListener(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

func (t *Tracker) notify(rec *storage.SearchTrend) {
	t.mu.RLock()
	listeners := append([]Listener(nil), t.listeners...)
	t.mu.RUnlock()

	for _, l := range listeners {
		l.OnTrendRecorded(rec)
	}
}

// RecordSearch bumps the counter for term, creating the record from movie
// when the term has not been seen before. Only the first matching record is
// touched if several exist.
func (t *Tracker) RecordSearch(ctx context.Context, term string, movie catalog.Movie) Result {
	log := debuglog.WithFields(debuglog.Fields{"component": "trend", "term": term})
	res := Result{Term: term}

	if err := ctx.Err(); err != nil {
		res.Err = err
		log.Warnf("skipping trend write: %v", err)
		return res
	}

	existing, err := t.store.ListTrends(storage.WithSearchTerm(term))
	if err != nil {
		res.Err = err
		log.Errorf("looking up trend: %v", err)
		return res
	}

	var rec *storage.SearchTrend
	if len(existing) > 0 {
		rec, err = t.store.UpdateTrendCount(existing[0].ID, existing[0].Count+1)
	} else {
		res.Created = true
		rec, err = t.store.CreateTrend(&storage.SearchTrend{
			SearchTerm: term,
			Count:      1,
			MovieID:    movie.ID,
			PosterURL:  catalog.PosterURL(t.imageBaseURL, movie.PosterPath, t.fallbackPoster),
		})
	}
	if err != nil {
		res.Err = err
		log.Errorf("writing trend: %v", err)
		return res
	}

	res.Count = rec.Count
	log.With("count", rec.Count).Debugf("recorded search")
	t.notify(rec)
	return res
}

// Trending returns the most searched terms, highest count first. Errors are
// logged and yield an empty list.
func (t *Tracker) Trending(ctx context.Context) []*storage.SearchTrend {
	if err := ctx.Err(); err != nil {
		return []*storage.SearchTrend{}
	}

	trends, err := t.store.ListTrends(storage.OrderByCountDesc(), storage.Limit(t.limit))
	if err != nil {
		debuglog.WithFields(debuglog.Fields{"component": "trend"}).Errorf("fetching trending: %v", err)
		return []*storage.SearchTrend{}
	}
	return trends
}

// Limit is the number of entries Trending returns at most.
func (t *Tracker) Limit() int {
	return t.limit
}

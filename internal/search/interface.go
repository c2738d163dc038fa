package search

import "github.com/pders01/reel/internal/storage"

// Suggestion is a previously searched term offered while the user types.
type Suggestion struct {
	Term      string
	Count     int
	PosterURL string
	Score     float64
}

// Suggester defines the minimal suggestion API used by the TUI.
type Suggester interface {
	Suggest(prefix string, limit int) ([]*Suggestion, error)
}

// TrendSource is the store view the engines read from.
type TrendSource interface {
	ListTrends(opts ...storage.QueryOption) ([]*storage.SearchTrend, error)
}

// UpdateListener can be implemented by engines that maintain an external
// index and want to hear about every recorded search.
type UpdateListener interface {
	OnTrendRecorded(t *storage.SearchTrend)
}

// DebugStatser provides lightweight stats for visibility/debugging.
type DebugStatser interface {
	DocCount() (int, error)
}

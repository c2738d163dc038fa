// Package discover holds the movie listing state and the fetch-then-record
// flow that drives it.
package discover

import (
	"errors"

	"github.com/pders01/reel/internal/catalog"
	"github.com/pders01/reel/internal/storage"
)

// Outcome is how the most recently applied fetch ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeAPIError
	OutcomeNetworkError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeAPIError:
		return "api-error"
	case OutcomeNetworkError:
		return "network-error"
	default:
		return "none"
	}
}

// Result is the outcome of one fetch, tagged with the sequence number
// Begin handed out for it.
type Result struct {
	Seq    uint64
	Query  string
	Movies []catalog.Movie
	Err    error
}

// State is the listing state shown to the user. It is not safe for
// concurrent use; the owning event loop serialises all calls.
type State struct {
	Query          string
	DebouncedQuery string
	Results        []catalog.Movie
	ErrorMessage   string
	Loading        bool
	Trending       []*storage.SearchTrend
	Last           Outcome

	seq uint64
}

func NewState() *State {
	return &State{
		Results:  []catalog.Movie{},
		Trending: []*storage.SearchTrend{},
	}
}

// Begin marks the start of a fetch for query and returns its sequence
// number.
func (s *State) Begin(query string) uint64 {
	s.seq++
	s.DebouncedQuery = query
	s.Loading = true
	s.ErrorMessage = ""
	return s.seq
}

// Seq is the sequence number of the most recent Begin.
func (s *State) Seq() uint64 {
	return s.seq
}

// Current reports whether seq belongs to the most recent Begin.
func (s *State) Current(seq uint64) bool {
	return seq == s.seq
}

// Apply folds a fetch result into the state. Without discardStale every
// result is applied in arrival order, so the last one to complete wins.
// It reports whether the search should be recorded as a trend.
func (s *State) Apply(res Result, discardStale bool) bool {
	if discardStale && !s.Current(res.Seq) {
		return false
	}

	if res.Err != nil {
		var apiErr *catalog.APIError
		if errors.As(res.Err, &apiErr) {
			s.Last = OutcomeAPIError
			s.Results = []catalog.Movie{}
		} else {
			s.Last = OutcomeNetworkError
		}
		s.ErrorMessage = catalog.UserMessage(res.Err)
		return false
	}

	s.Last = OutcomeSuccess
	s.Results = res.Movies
	if s.Results == nil {
		s.Results = []catalog.Movie{}
	}
	return res.Query != "" && len(res.Movies) > 0
}

// Settle ends the loading phase of the fetch numbered seq.
func (s *State) Settle(seq uint64, discardStale bool) {
	if discardStale && !s.Current(seq) {
		return
	}
	s.Loading = false
}

// SetTrending replaces the trending list. A nil list becomes empty.
func (s *State) SetTrending(trends []*storage.SearchTrend) {
	if trends == nil {
		trends = []*storage.SearchTrend{}
	}
	s.Trending = trends
}

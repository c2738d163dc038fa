package storage

import (
	"time"
)

// SearchTrend is the persisted popularity counter for one search term.
// MovieID and PosterURL describe the first result seen when the term was
// first recorded and are never changed afterwards.
type SearchTrend struct {
	ID         string    `json:"$id"`
	SearchTerm string    `json:"searchTerm"`
	Count      int       `json:"count"`
	MovieID    int       `json:"movie_id"`
	PosterURL  string    `json:"poster_url"`
	CreatedAt  time.Time `json:"$createdAt"`
	UpdatedAt  time.Time `json:"$updatedAt"`
}

type trendQuery struct {
	searchTerm  *string
	orderByDesc bool
	limit       int
}

// QueryOption narrows or orders a ListTrends call.
type QueryOption func(*trendQuery)

// WithSearchTerm keeps only documents whose term equals term exactly.
func WithSearchTerm(term string) QueryOption {
	return func(q *trendQuery) {
		q.searchTerm = &term
	}
}

// OrderByCountDesc sorts by count, highest first. Ties keep key order.
func OrderByCountDesc() QueryOption {
	return func(q *trendQuery) {
		q.orderByDesc = true
	}
}

// Limit caps the number of returned documents. Zero or less means no cap.
func Limit(n int) QueryOption {
	return func(q *trendQuery) {
		q.limit = n
	}
}

package catalog

import (
	"fmt"
	"strings"
)

// Movie is a single entry of a search or discover listing.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path"`
	VoteAverage      float64 `json:"vote_average"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
}

const notAvailable = "N/A"

// Rating formats the vote average with one decimal, or N/A when unrated.
func (m Movie) Rating() string {
	if m.VoteAverage == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%.1f", m.VoteAverage)
}

// Year returns the year part of the release date, or N/A.
func (m Movie) Year() string {
	if m.ReleaseDate == "" {
		return notAvailable
	}
	year, _, _ := strings.Cut(m.ReleaseDate, "-")
	return year
}

// Language returns the original language code, or N/A.
func (m Movie) Language() string {
	if m.OriginalLanguage == "" {
		return notAvailable
	}
	return m.OriginalLanguage
}

// PosterURL joins imageBase and path with a single slash. An empty path
// yields fallback.
func PosterURL(imageBase, path, fallback string) string {
	if path == "" {
		return fallback
	}
	return strings.TrimRight(imageBase, "/") + "/" + strings.TrimLeft(path, "/")
}

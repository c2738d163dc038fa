package tui

import (
	"fmt"
	"strings"
)

// Canonical short status messages used across the app.
const (
	MsgLoadingMovies   = "Loading movies…"
	MsgNoResults       = "No movies found"
	MsgNoPoster        = "No poster available"
	MsgLoadingTrending = "Loading trending searches…"
	MsgNoTrending      = "No searches recorded yet"
	MsgRendering       = "Rendering…"
)

func MsgResultsCount(query string, n int) string {
	count := fmt.Sprintf("%d results", n)
	if n == 1 {
		count = "1 result"
	}
	if query == "" {
		return count + " • popular"
	}
	return fmt.Sprintf("%s for '%s'", count, strings.TrimSpace(query))
}

func MsgOpened(what string) string {
	return fmt.Sprintf("Opened %s", what)
}

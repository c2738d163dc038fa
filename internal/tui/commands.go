package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/pders01/reel/internal/catalog"
	"github.com/pders01/reel/internal/media"
)

func (a *App) fetchMovies(seq uint64, query string) tea.Cmd {
	return func() tea.Msg {
		return moviesFetchedMsg{res: a.manager.Search(a.ctx, seq, query)}
	}
}

func (a *App) recordTrend(seq uint64, query string, first catalog.Movie) tea.Cmd {
	return func() tea.Msg {
		return trendRecordedMsg{seq: seq, res: a.manager.Record(a.ctx, query, first)}
	}
}

func (a *App) loadTrending() tea.Cmd {
	return func() tea.Msg {
		return trendingLoadedMsg{trends: a.manager.Trending(a.ctx)}
	}
}

func (a *App) suggest(prefix string) tea.Cmd {
	limit := a.config.Search.SuggestionLimit
	if a.suggester == nil || limit <= 0 {
		return nil
	}
	return func() tea.Msg {
		items, err := a.suggester.Suggest(prefix, limit)
		if err != nil {
			return errorMsg{err: wrapErr("suggestions", err)}
		}
		return suggestionsMsg{prefix: prefix, items: items}
	}
}

// wordWrapWidth keeps the detail text readable on very wide and very
// narrow terminals.
func (a *App) wordWrapWidth() int {
	d := a.config.UI.Detail
	w := (a.width * 9) / 10
	if d.WordWrapMaxWidth > 0 && w > d.WordWrapMaxWidth {
		w = d.WordWrapMaxWidth
	}
	if w < d.WordWrapMinWidth {
		w = d.WordWrapMinWidth
	}
	if a.width > 0 && a.width < 50 {
		w = max(a.width-4, 20)
	}
	return w
}

func (a *App) getRenderer(width int) (*glamour.TermRenderer, error) {
	if a.renderer != nil && a.rendererWidth == width {
		return a.renderer, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	a.renderer = r
	a.rendererWidth = width
	return r, nil
}

// renderDetail produces the detail page for m, reusing a cached rendering
// for the same movie and wrap width.
func (a *App) renderDetail(m catalog.Movie) tea.Cmd {
	width := a.wordWrapWidth()
	cacheKey := fmt.Sprintf("%d:%d", m.ID, width)
	if content, ok := a.detailCache.Get(cacheKey); ok {
		return func() tea.Msg { return detailRenderedMsg{id: m.ID, content: content} }
	}

	md := movieMarkdown(m, a.posterURL(m), a.launcher.PageURL(m.ID))
	r, err := a.getRenderer(width)
	if err != nil {
		return func() tea.Msg { return detailRenderedMsg{id: m.ID, content: md} }
	}

	return func() tea.Msg {
		out, err := r.Render(md)
		if err != nil {
			return detailRenderedMsg{id: m.ID, content: md}
		}
		a.detailCache.Add(cacheKey, out)
		return detailRenderedMsg{id: m.ID, content: out}
	}
}

func movieMarkdown(m catalog.Movie, posterURL, pageURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Title)
	fmt.Fprintf(&b, "**★ %s** · %s · %s\n\n", m.Rating(), m.Year(), m.Language())

	if m.Overview != "" {
		b.WriteString(m.Overview)
	} else {
		b.WriteString("_No overview available._")
	}
	b.WriteString("\n\n---\n\n")

	fmt.Fprintf(&b, "- Poster: %s\n", posterURL)
	fmt.Fprintf(&b, "- Page: %s\n", pageURL)
	return b.String()
}

// openTarget hands target to the external launcher. label names the
// target in status messages.
func (a *App) openTarget(target, label string) tea.Cmd {
	return func() tea.Msg {
		if err := a.launcher.Open(target); err != nil {
			if errors.Is(err, media.ErrNotOpenable) {
				return statusMsg{text: MsgNoPoster, kind: StatusWarn}
			}
			return errorMsg{err: wrapErr("open "+label, err)}
		}
		return statusMsg{text: MsgOpened(label), kind: StatusSuccess}
	}
}

func (a *App) openPoster(m catalog.Movie) tea.Cmd {
	return a.openTarget(a.posterURL(m), "poster")
}

func (a *App) openPage(m catalog.Movie) tea.Cmd {
	return a.openTarget(a.launcher.PageURL(m.ID), "movie page")
}

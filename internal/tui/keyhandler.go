package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/reel/internal/catalog"
)

type KeyHandler struct {
	app  *App
	keys keyMap
}

func NewKeyHandler(app *App) *KeyHandler {
	return &KeyHandler{app: app, keys: app.keys}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, kh.keys.ForceQuit) {
		return kh.quit()
	}

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(msg); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	return kh.app.view == ViewSearch && kh.app.input.Focused()
}

func (kh *KeyHandler) quit() (tea.Model, tea.Cmd) {
	kh.app.shutdown()
	return kh.app, tea.Quit
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Back):
		if a.input.Value() == "" {
			return kh.quit()
		}
		a.input.Reset()
		return a, a.onQueryChanged("")

	case key.Matches(msg, kh.keys.Focus):
		if len(a.suggestions) > 0 {
			return kh.acceptSuggestion()
		}
		kh.focusResults()
		return a, nil

	case msg.Type == tea.KeyDown:
		kh.focusResults()
		return a, nil

	case key.Matches(msg, kh.keys.Select):
		return kh.submitQuery()

	case key.Matches(msg, kh.keys.Trending):
		return kh.showTrending()

	case key.Matches(msg, kh.keys.OpenPoster):
		if m, ok := a.selectedMovie(); ok {
			return a, a.openPoster(m)
		}
		return a, nil

	case key.Matches(msg, kh.keys.OpenPage):
		if m, ok := a.selectedMovie(); ok {
			return a, a.openPage(m)
		}
		return a, nil
	}

	return kh.delegateToTextInput(msg)
}

// delegateToTextInput passes the key to the search box and debounces the
// new value when it changed.
func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	prev := a.input.Value()

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)

	if a.input.Value() != prev {
		return a, tea.Batch(cmd, a.onQueryChanged(a.input.Value()))
	}
	return a, cmd
}

// submitQuery runs the typed query now instead of waiting out the
// debounce. With nothing new to search it opens the highlighted movie.
func (kh *KeyHandler) submitQuery() (tea.Model, tea.Cmd) {
	a := kh.app
	if a.gate.Pending() {
		a.gate.Cancel()
		if a.state.Query != a.state.DebouncedQuery {
			return a, a.startFetch(a.state.Query)
		}
	}
	if m, ok := a.selectedMovie(); ok {
		return kh.showDetail(m)
	}
	return a, nil
}

func (kh *KeyHandler) acceptSuggestion() (tea.Model, tea.Cmd) {
	a := kh.app
	term := a.suggestions[0].Term
	a.input.SetValue(term)
	a.input.CursorEnd()
	a.suggestions = nil
	return a, a.onQueryChanged(term)
}

func (kh *KeyHandler) focusResults() {
	if len(kh.app.results.Items()) == 0 {
		return
	}
	kh.app.input.Blur()
}

// handleCustomKeys handles app actions outside the search box.
func (kh *KeyHandler) handleCustomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Quit):
		model, cmd := kh.quit()
		return model, cmd, true
	case key.Matches(msg, kh.keys.Back):
		model, cmd := kh.navigateBack()
		return model, cmd, true
	case key.Matches(msg, kh.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil, true
	case key.Matches(msg, kh.keys.Trending):
		if a.view == ViewTrending {
			model, cmd := kh.navigateBack()
			return model, cmd, true
		}
		model, cmd := kh.showTrending()
		return model, cmd, true
	}

	switch a.view {
	case ViewSearch:
		return kh.handleResultsKeys(msg)
	case ViewDetail:
		return kh.handleDetailKeys(msg)
	case ViewTrending:
		return kh.handleTrendingKeys(msg)
	}
	return a, nil, false
}

func (kh *KeyHandler) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Focus), msg.String() == "/":
		a.input.Focus()
		return a, nil, true
	case msg.Type == tea.KeyUp && a.results.Index() == 0:
		a.input.Focus()
		return a, nil, true
	case key.Matches(msg, kh.keys.Select):
		if m, ok := a.selectedMovie(); ok {
			model, cmd := kh.showDetail(m)
			return model, cmd, true
		}
		return a, nil, true
	case key.Matches(msg, kh.keys.OpenPoster):
		if m, ok := a.selectedMovie(); ok {
			return a, a.openPoster(m), true
		}
		return a, nil, true
	case key.Matches(msg, kh.keys.OpenPage):
		if m, ok := a.selectedMovie(); ok {
			return a, a.openPage(m), true
		}
		return a, nil, true
	}
	return a, nil, false
}

func (kh *KeyHandler) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	if a.current == nil {
		return a, nil, false
	}

	switch {
	case key.Matches(msg, kh.keys.OpenPoster):
		return a, a.openPoster(*a.current), true
	case key.Matches(msg, kh.keys.OpenPage):
		return a, a.openPage(*a.current), true
	}
	return a, nil, false
}

func (kh *KeyHandler) handleTrendingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Select):
		if t, ok := a.selectedTrend(); ok {
			model, cmd := kh.rerunSearch(t.SearchTerm)
			return model, cmd, true
		}
		return a, nil, true
	case key.Matches(msg, kh.keys.OpenPoster):
		if t, ok := a.selectedTrend(); ok {
			return a, a.openTarget(t.PosterURL, "poster"), true
		}
		return a, nil, true
	}
	return a, nil, false
}

// delegateToCharm lets the bubbles components handle navigation.
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	var cmd tea.Cmd

	switch a.view {
	case ViewSearch:
		a.results, cmd = a.results.Update(msg)
	case ViewDetail:
		a.viewport, cmd = a.viewport.Update(msg)
	case ViewTrending:
		a.trendList, cmd = a.trendList.Update(msg)
	}
	return a, cmd
}

func (kh *KeyHandler) showDetail(m catalog.Movie) (tea.Model, tea.Cmd) {
	a := kh.app
	movie := m
	a.current = &movie
	a.view = ViewDetail
	a.rendering = true
	a.viewport.SetContent("")
	return a, tea.Batch(a.spinner.Tick, a.renderDetail(movie))
}

func (kh *KeyHandler) showTrending() (tea.Model, tea.Cmd) {
	a := kh.app
	a.view = ViewTrending
	a.input.Blur()
	a.trendList.Select(0)
	return a, a.loadTrending()
}

// rerunSearch searches term right away, as if it had been typed and the
// debounce had expired.
func (kh *KeyHandler) rerunSearch(term string) (tea.Model, tea.Cmd) {
	a := kh.app
	a.view = ViewSearch
	a.input.SetValue(term)
	a.input.CursorEnd()
	a.input.Focus()
	a.suggestions = nil
	a.gate.Cancel()
	a.state.Query = term
	return a, a.startFetch(term)
}

// navigateBack returns to the search view, or from the result list to the
// search box.
func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	a := kh.app

	switch a.view {
	case ViewDetail:
		a.view = ViewSearch
		a.rendering = false
		return a, nil
	case ViewTrending:
		a.view = ViewSearch
		a.input.Focus()
		return a, nil
	default:
		a.input.Focus()
		return a, nil
	}
}

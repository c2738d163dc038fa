package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/pders01/reel/internal/config"
)

func TestNewKeyMap_UsesConfiguredBindings(t *testing.T) {
	km := newKeyMap(config.KeyConfig{
		Modifier: "alt",
		Bindings: config.KeyBindings{
			Quit:       "x",
			Trending:   "t",
			OpenPoster: "p",
			OpenPage:   "w",
			Focus:      "tab",
			Back:       "esc",
			Help:       "?",
		},
	})

	assert.Equal(t, []string{"alt+t"}, km.Trending.Keys())
	assert.Equal(t, []string{"alt+p"}, km.OpenPoster.Keys())
	assert.Equal(t, []string{"x"}, km.Quit.Keys())
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, km.Quit))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.ForceQuit))
}

func TestViewKeys_ShortHelpPerView(t *testing.T) {
	km := newKeyMap(config.TestConfig().Keys)

	assert.Contains(t, viewKeys{keys: km, view: ViewSearch}.ShortHelp(), km.Trending)
	assert.Contains(t, viewKeys{keys: km, view: ViewDetail}.ShortHelp(), km.OpenPage)
	assert.Contains(t, viewKeys{keys: km, view: ViewTrending}.ShortHelp(), km.Select)
	assert.Len(t, viewKeys{keys: km}.FullHelp(), 3)
}

func TestKeyHandler_QuitOnlyOutsideInput(t *testing.T) {
	env := newTestApp(t)
	app := env.app

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, "q", app.input.Value(), "q is typed while the search box has focus")
	assert.NotNil(t, cmd)

	app.view = ViewTrending
	app.input.Blur()
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.NotNil(t, cmd)
	assert.Error(t, app.ctx.Err(), "quitting cancels in-flight work")
}

func TestKeyHandler_EscClearsThenQuits(t *testing.T) {
	env := newTestApp(t)
	app := env.app

	typeText(app, "dune")
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", app.input.Value())
	assert.Equal(t, "", app.State().Query)
	assert.NoError(t, app.ctx.Err())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotNil(t, cmd)
	assert.Error(t, app.ctx.Err())
}

func TestKeyHandler_FocusMovesBetweenInputAndResults(t *testing.T) {
	env := newTestApp(t)
	app := env.app

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, app.input.Focused(), "no results to focus yet")

	app.Init()
	completeFetch(app)

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, app.input.Focused())

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, app.input.Focused())

	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, app.input.Focused())

	app.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.True(t, app.input.Focused(), "up from the first result returns to the search box")
}

func TestKeyHandler_EnterSkipsDebounce(t *testing.T) {
	env := newTestApp(t)
	app := env.app

	typeText(app, "alien")
	assert.False(t, app.State().Loading)

	app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, app.State().Loading)
	assert.Equal(t, "alien", app.State().DebouncedQuery)
	assert.False(t, app.gate.Pending())
	assert.Equal(t, ViewSearch, app.view)
}

func TestKeyHandler_HelpToggle(t *testing.T) {
	env := newTestApp(t)
	app := env.app
	app.input.Blur()

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.True(t, app.help.ShowAll)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.False(t, app.help.ShowAll)
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pders01/reel/internal/catalog"
	"github.com/pders01/reel/internal/config"
	"github.com/pders01/reel/internal/debounce"
	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/discover"
	"github.com/pders01/reel/internal/media"
	"github.com/pders01/reel/internal/search"
	"github.com/pders01/reel/internal/storage"
	"github.com/pders01/reel/internal/trend"
	"github.com/pders01/reel/internal/validation"
)

// chromeHeight is the number of rows the search view spends outside the
// result list: header, input frame, suggestions, trending strip and the
// status area.
const chromeHeight = 11

type App struct {
	config     *config.Config
	manager    *discover.Manager
	state      *discover.State
	suggester  search.Suggester
	launcher   *media.Launcher
	gate       *debounce.Gate[string]
	keys       keyMap
	keyHandler *KeyHandler

	ctx    context.Context
	cancel context.CancelFunc

	input       textinput.Model
	results     list.Model
	trendList   list.Model
	viewport    viewport.Model
	spinner     spinner.Model
	help        help.Model
	view        View
	suggestions []*search.Suggestion
	current     *catalog.Movie

	// searchTicket is the debounce ticket of the latest keystroke.
	searchTicket uint64
	// started is set once the first fetch has begun; until then an empty
	// debounced value still triggers the popular listing.
	started bool

	detailCache   *lru.Cache[string, string]
	renderer      *glamour.TermRenderer
	rendererWidth int
	rendering     bool

	status     string
	statusKind StatusKind
	width      int
	height     int
}

func NewApp(manager *discover.Manager, suggester search.Suggester, launcher *media.Launcher, cfg *config.Config) *App {
	ApplyColors(cfg.UI.Colors)

	results := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	results.Title = "› movies"
	results.SetShowStatusBar(false)
	results.SetFilteringEnabled(false)
	results.SetShowHelp(false)

	trendList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	trendList.Title = "› trending searches"
	trendList.SetShowStatusBar(false)
	trendList.SetFilteringEnabled(false)
	trendList.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "Search through thousands of movies"
	ti.CharLimit = cfg.Search.MaxQueryLength
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	cacheSize := cfg.UI.Detail.CacheSize
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, _ := lru.New[string, string](cacheSize)

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		config:      cfg,
		manager:     manager,
		state:       discover.NewState(),
		suggester:   suggester,
		launcher:    launcher,
		gate:        debounce.New[string](time.Duration(cfg.Search.DebounceMillis) * time.Millisecond),
		keys:        newKeyMap(cfg.Keys),
		ctx:         ctx,
		cancel:      cancel,
		input:       ti,
		results:     results,
		trendList:   trendList,
		viewport:    viewport.New(0, 0),
		spinner:     sp,
		help:        help.New(),
		view:        ViewSearch,
		detailCache: cache,
	}
	app.keyHandler = NewKeyHandler(app)

	return app
}

// State exposes the listing state, mainly for tests and the CLI.
func (a *App) State() *discover.State {
	return a.state
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.startFetch(""),
		a.loadTrending(),
		textinput.Blink,
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case searchDebounceFireMsg:
		query, ok := a.gate.Fire(msg.ticket)
		if !ok {
			return a, nil
		}
		if a.started && query == a.state.DebouncedQuery {
			return a, nil
		}
		return a, a.startFetch(query)

	case moviesFetchedMsg:
		return a, a.applyFetch(msg.res)

	case trendRecordedMsg:
		a.state.Settle(msg.seq, a.manager.DiscardStale())
		if msg.res.Err == nil && a.view == ViewTrending {
			return a, a.loadTrending()
		}
		a.updateStatusFromState()
		return a, nil

	case trendingLoadedMsg:
		a.state.SetTrending(msg.trends)
		a.syncTrending()
		if a.view == ViewTrending && len(msg.trends) == 0 {
			a.setStatus(MsgNoTrending, StatusInfo)
		}
		return a, nil

	case suggestionsMsg:
		if msg.prefix == a.state.Query {
			a.suggestions = msg.items
		}
		return a, nil

	case detailRenderedMsg:
		if a.view == ViewDetail && a.current != nil && a.current.ID == msg.id {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.rendering = false
			a.setStatus("", StatusInfo)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.state.Loading && !a.rendering {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case statusMsg:
		a.setStatus(msg.text, msg.kind)
		return a, nil

	case errorMsg:
		debuglog.Errorf("%v", msg.err)
		a.setStatus(msg.err.Error(), StatusError)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.view {
	case ViewSearch:
		a.input, cmd = a.input.Update(msg)
	case ViewDetail:
		a.viewport, cmd = a.viewport.Update(msg)
	}
	return a, cmd
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	listHeight := height - chromeHeight
	if listHeight < 5 {
		listHeight = 5
	}
	a.results.SetSize(width, listHeight)
	a.trendList.SetSize(width, max(height-4, 5))
	a.viewport.Width = width
	a.viewport.Height = max(height-4, 3)
	a.help.Width = width

	inputWidth := width - 8
	if inputWidth < 10 {
		inputWidth = max(width-4, 1)
	}
	a.input.Width = inputWidth
}

// startFetch begins a fetch for query. It must run on the event loop since
// it mutates the listing state.
func (a *App) startFetch(query string) tea.Cmd {
	seq := a.state.Begin(query)
	a.started = true
	return tea.Batch(a.spinner.Tick, a.fetchMovies(seq, query))
}

// applyFetch folds a finished request into the state. A search that
// produced results is recorded before loading is cleared.
func (a *App) applyFetch(res discover.Result) tea.Cmd {
	discardStale := a.manager.DiscardStale()
	record := a.state.Apply(res, discardStale)
	if discardStale && !a.state.Current(res.Seq) {
		return nil
	}

	a.syncResults()
	if record {
		return a.recordTrend(res.Seq, res.Query, res.Movies[0])
	}

	a.state.Settle(res.Seq, discardStale)
	a.updateStatusFromState()
	return nil
}

func (a *App) updateStatusFromState() {
	if a.state.Loading {
		return
	}
	switch a.state.Last {
	case discover.OutcomeAPIError, discover.OutcomeNetworkError:
		a.setStatus(a.state.ErrorMessage, StatusError)
	case discover.OutcomeSuccess:
		if len(a.state.Results) == 0 {
			a.setStatus(MsgNoResults, StatusWarn)
		} else {
			a.setStatus(MsgResultsCount(a.state.DebouncedQuery, len(a.state.Results)), StatusSuccess)
		}
	}
}

func (a *App) syncResults() {
	items := make([]list.Item, len(a.state.Results))
	for i, m := range a.state.Results {
		items[i] = movieItem{movie: m}
	}
	a.results.SetItems(items)
	a.results.Select(0)
}

func (a *App) syncTrending() {
	items := make([]list.Item, len(a.state.Trending))
	for i, t := range a.state.Trending {
		items[i] = trendItem{rank: i + 1, trend: t}
	}
	a.trendList.SetItems(items)
}

// onQueryChanged debounces a new raw input value and asks for suggestions.
func (a *App) onQueryChanged(raw string) tea.Cmd {
	query := validation.SanitizeQuery(raw, a.config.Search.MaxQueryLength)
	a.state.Query = query

	ticket := a.gate.Push(query)
	a.searchTicket = ticket
	tick := tea.Tick(a.gate.Delay(), func(time.Time) tea.Msg {
		return searchDebounceFireMsg{ticket: ticket}
	})

	if query == "" {
		a.suggestions = nil
		return tick
	}
	return tea.Batch(tick, a.suggest(query))
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

// selectedMovie is the highlighted result, if any.
func (a *App) selectedMovie() (catalog.Movie, bool) {
	if i, ok := a.results.SelectedItem().(movieItem); ok {
		return i.movie, true
	}
	return catalog.Movie{}, false
}

func (a *App) selectedTrend() (*storage.SearchTrend, bool) {
	if i, ok := a.trendList.SelectedItem().(trendItem); ok {
		return i.trend, true
	}
	return nil, false
}

func (a *App) posterURL(m catalog.Movie) string {
	c := a.config.Catalog
	return catalog.PosterURL(c.ImageBaseURL, m.PosterPath, c.FallbackPoster)
}

// shutdown cancels the pending debounce and in-flight requests.
func (a *App) shutdown() {
	a.gate.Cancel()
	a.cancel()
}

func (a *App) View() string {
	var content string
	bodyHeight := max(a.height-3, 0)

	switch a.view {
	case ViewSearch:
		content = a.searchView(bodyHeight)
	case ViewDetail:
		if a.rendering {
			content = renderCentered(a.width, bodyHeight, a.spinner.View()+" "+renderMuted(MsgRendering))
		} else {
			content = a.viewport.View()
		}
	case ViewTrending:
		if len(a.state.Trending) == 0 {
			content = renderCentered(a.width, bodyHeight, renderMuted(MsgNoTrending))
		} else {
			content = a.trendList.View()
		}
	}

	separator := SeparatorStyle.Render(strings.Repeat("─", max(a.width-1, 0)))
	return lipgloss.JoinVertical(lipgloss.Top, content, separator, a.statusBar())
}

func (a *App) searchView(height int) string {
	header := renderHeader("› reel", "Find the movies you'll enjoy without the hassle", a.width)
	input := renderInputFrame(a.input.View(), a.input.Focused(), a.input.Width)

	rows := []string{header, input}
	if s := renderSuggestions(a.suggestions, a.width); s != "" {
		rows = append(rows, s)
	} else {
		rows = append(rows, "")
	}
	rows = append(rows, renderTrendingStrip(a.state.Trending, a.width), "")

	switch {
	case len(a.state.Results) > 0:
		rows = append(rows, a.results.View())
	case !a.started:
		rows = append(rows, GetWelcomeMessage())
	case a.state.Loading:
		rows = append(rows, renderMuted(MsgLoadingMovies))
	case a.state.ErrorMessage == "":
		rows = append(rows, renderMuted(MsgNoResults))
	}

	return ContentWrapper(a.width, height).Render(lipgloss.JoinVertical(lipgloss.Top, rows...))
}

func (a *App) statusBar() string {
	var line string
	switch {
	case a.state.Loading:
		line = a.spinner.View() + " " + StatusInfoStyle.Render(MsgLoadingMovies)
	case a.status != "":
		prefix := ""
		if a.statusKind == StatusError {
			prefix = "✗ "
		}
		line = a.statusKind.style().Render(prefix + a.status)
	}

	helpView := a.help.View(viewKeys{keys: a.keys, view: a.view})
	if line == "" {
		return StatusBarStyle.Width(a.width).Render(helpView)
	}
	return StatusBarStyle.Width(a.width).Render(line + renderMuted("  •  ") + helpView)
}

type movieItem struct {
	movie catalog.Movie
}

func (i movieItem) Title() string { return i.movie.Title }

func (i movieItem) Description() string {
	return RatingStyle.Render("★ "+i.movie.Rating()) +
		renderMuted(fmt.Sprintf(" • %s • %s", i.movie.Year(), i.movie.Language()))
}

func (i movieItem) FilterValue() string { return i.movie.Title }

type trendItem struct {
	rank  int
	trend *storage.SearchTrend
}

func (i trendItem) Title() string {
	return RankStyle.Render(fmt.Sprintf("%d ", i.rank)) + i.trend.SearchTerm
}

func (i trendItem) Description() string {
	searches := "searches"
	if i.trend.Count == 1 {
		searches = "search"
	}
	return renderMuted(fmt.Sprintf("%d %s • %s", i.trend.Count, searches, truncateMiddle(i.trend.PosterURL, 60)))
}

func (i trendItem) FilterValue() string { return i.trend.SearchTerm }

type searchDebounceFireMsg struct {
	ticket uint64
}

type moviesFetchedMsg struct {
	res discover.Result
}

type trendRecordedMsg struct {
	seq uint64
	res trend.Result
}

type trendingLoadedMsg struct {
	trends []*storage.SearchTrend
}

type suggestionsMsg struct {
	prefix string
	items  []*search.Suggestion
}

type detailRenderedMsg struct {
	id      int
	content string
}

type statusMsg struct {
	text string
	kind StatusKind
}

type errorMsg struct {
	err error
}

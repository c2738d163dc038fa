package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pders01/reel/internal/catalog"
	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/discover"
	"github.com/pders01/reel/internal/media"
	"github.com/pders01/reel/internal/search"
	"github.com/pders01/reel/internal/storage"
	"github.com/pders01/reel/internal/tui"
	"github.com/pders01/reel/internal/validation"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	ph := pathHandler()
	if err := setupLogging(cfg, ph, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not set up logging: %v\n", err)
	}

	rt, err := openRuntime(cfg, ph, validation.NewEndpointValidator())
	if err != nil {
		return err
	}
	defer rt.Close()

	if !quiet {
		tui.ShowBanner(Version)
	}

	app := tui.NewApp(rt.manager, rt.suggester, media.NewLauncher(cfg), cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	ph := pathHandler()
	if err := setupLogging(cfg, ph, cmd.ErrOrStderr()); err != nil {
		return err
	}

	rt, err := openRuntime(cfg, ph, validation.NewEndpointValidator())
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	query := validation.SanitizeQuery(strings.Join(args, " "), cfg.Search.MaxQueryLength)
	return searchOnce(ctx, rt, query, cmd.OutOrStdout())
}

func runTrending(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ph := pathHandler()
	if err := setupLogging(cfg, ph, cmd.ErrOrStderr()); err != nil {
		return err
	}

	rt, err := openRuntime(cfg, ph, validation.NewEndpointValidator())
	if err != nil {
		return err
	}
	defer rt.Close()

	printTrending(cmd.OutOrStdout(), rt.manager.Trending(cmd.Context()))
	return nil
}

// searchOnce runs a single fetch, then reads related searches and the
// trending list in parallel so both reflect the search just recorded.
func searchOnce(ctx context.Context, rt *runtime, query string, w io.Writer) error {
	st := discover.NewState()
	rt.manager.FetchMovies(ctx, st, query)

	var related []*search.Suggestion
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st.SetTrending(rt.manager.Trending(gctx))
		return nil
	})
	if query != "" {
		g.Go(func() error {
			s, err := rt.suggester.Suggest(query, rt.cfg.Search.SuggestionLimit)
			if err != nil {
				debuglog.Warnf("suggestions for %q: %v", query, err)
				return nil
			}
			related = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if st.ErrorMessage != "" {
		fmt.Fprintln(w, tui.ErrorMessageStyle.Render(st.ErrorMessage))
		return errors.New(st.ErrorMessage)
	}

	printMovies(w, st.DebouncedQuery, st.Results, rt.cfg.Catalog.ImageBaseURL, rt.cfg.Catalog.FallbackPoster)
	if len(related) > 0 {
		fmt.Fprintln(w)
		printRelated(w, related)
	}
	fmt.Fprintln(w)
	printTrending(w, st.Trending)
	return nil
}

func printMovies(w io.Writer, query string, movies []catalog.Movie, imageBase, fallback string) {
	if len(movies) == 0 {
		fmt.Fprintln(w, tui.HelpStyle.Render(tui.MsgNoResults))
		return
	}

	fmt.Fprintln(w, tui.TitleStyle.Render(tui.MsgResultsCount(query, len(movies))))
	for i, m := range movies {
		fmt.Fprintf(w, "%3d. %s (%s)  %s  %s\n",
			i+1,
			m.Title,
			m.Year(),
			tui.RatingStyle.Render("★ "+m.Rating()),
			m.Language(),
		)
		if m.PosterPath != "" {
			fmt.Fprintf(w, "     %s\n", tui.HelpStyle.Render(catalog.PosterURL(imageBase, m.PosterPath, fallback)))
		}
	}
}

func printRelated(w io.Writer, related []*search.Suggestion) {
	fmt.Fprintln(w, tui.HeaderStyle.Render("Related searches"))
	for _, s := range related {
		fmt.Fprintf(w, "  %s %s\n", tui.SuggestionStyle.Render(s.Term), tui.HelpStyle.Render(fmt.Sprintf("(%d)", s.Count)))
	}
}

func printTrending(w io.Writer, trends []*storage.SearchTrend) {
	fmt.Fprintln(w, tui.HeaderStyle.Render("Trending searches"))
	if len(trends) == 0 {
		fmt.Fprintln(w, tui.HelpStyle.Render(tui.MsgNoTrending))
		return
	}
	for i, t := range trends {
		fmt.Fprintf(w, "%s %s %s\n",
			tui.RankStyle.Render(fmt.Sprintf("%2d.", i+1)),
			t.SearchTerm,
			tui.HelpStyle.Render(fmt.Sprintf("(%d)", t.Count)),
		)
	}
}

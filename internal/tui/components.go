package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/reel/internal/search"
	"github.com/pders01/reel/internal/storage"
)

// renderHeader returns a styled header with an optional muted subtitle.
func renderHeader(title, subtitle string, width int) string {
	title = truncateEnd(title, width-2)
	subtitle = truncateEnd(subtitle, width-2)
	rows := []string{HeaderStyle.Render(title)}
	if subtitle != "" {
		rows = append(rows, renderMuted(subtitle))
	}
	return lipgloss.JoinVertical(lipgloss.Top, rows...)
}

// renderInputFrame draws a rounded border around an already rendered input.
func renderInputFrame(inputView string, focused bool, contentWidth int) string {
	borderColor := MutedColor
	if focused {
		borderColor = AccentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(contentWidth + 4).
		Render(inputView)
}

func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

// renderSuggestions lists past search terms matching the current input.
// The first entry is the one tab accepts.
func renderSuggestions(suggestions []*search.Suggestion, width int) string {
	if len(suggestions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(suggestions))
	for i, s := range suggestions {
		label := fmt.Sprintf("%s (%d)", s.Term, s.Count)
		if i == 0 {
			label = "⇥ " + label
		}
		parts = append(parts, SuggestionStyle.Render(label))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, renderMuted("  ·  ")))
}

// renderTrendingStrip is the single-line trending summary above results.
func renderTrendingStrip(trends []*storage.SearchTrend, width int) string {
	if len(trends) == 0 {
		return ""
	}
	parts := make([]string, 0, len(trends))
	for i, t := range trends {
		parts = append(parts, RankStyle.Render(fmt.Sprintf("%d", i+1))+" "+truncateEnd(t.SearchTerm, 20))
	}
	line := renderMuted("trending  ") + strings.Join(parts, renderMuted("  "))
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

// truncateEnd shortens s to at most limit runes, ending with an ellipsis
// when cut.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}

// truncateMiddle keeps both ends of s around a single ellipsis. Used for
// URLs, where the host and file name both matter.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	n := len(r)
	if n <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	keep := limit - 1
	left := keep / 2
	right := keep - left
	if left == 0 {
		return "…" + string(r[n-right:])
	}
	return string(r[:left]) + "…" + string(r[n-right:])
}

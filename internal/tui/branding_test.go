package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/pders01/reel/internal/config"
)

func TestRenderBanner(t *testing.T) {
	out := RenderBanner("1.0.0-test")

	assert.Contains(t, out, "Terminal Movie Discovery")
	assert.Contains(t, out, "v1.0.0-test")
	assert.Contains(t, out, "╔")
	assert.Contains(t, out, "╝")
	assert.Contains(t, out, "▪")
}

func TestRenderBanner_DevHasNoVersion(t *testing.T) {
	out := RenderBanner("dev")

	assert.Contains(t, out, "Terminal Movie Discovery")
	assert.NotContains(t, out, "vdev")
}

func TestGetCompactBanner(t *testing.T) {
	result := GetCompactBanner("Test message")

	assert.Contains(t, result, "Test message")
	assert.Contains(t, result, "█▄▄▀")
}

func TestGetWelcomeMessage(t *testing.T) {
	result := GetWelcomeMessage()

	assert.Contains(t, result, "without the hassle")
	assert.True(t, strings.Contains(result, "█▀▀▄"))
}

func TestApplyColors(t *testing.T) {
	orig := PrimaryColor
	origMuted := MutedColor
	t.Cleanup(func() {
		PrimaryColor = orig
		MutedColor = origMuted
		buildStyles()
	})

	ApplyColors(config.UIColors{Primary: "#123456"})

	assert.Equal(t, lipgloss.Color("#123456"), PrimaryColor)
	assert.Equal(t, origMuted, MutedColor, "empty entries keep the built-in color")
	assert.Equal(t, lipgloss.TerminalColor(lipgloss.Color("#123456")), LogoStyle.GetForeground())
}

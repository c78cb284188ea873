package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/azlab/mctscore/internal/generics"
)

// Report summarizes the outcome of one self-play match.
type Report struct {
	ID     int
	Game   string
	Plies  int
	Winner int
	Values []float64
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	winStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// RenderSummary lays out one bordered block per match, centered to the
// current terminal width when attached to one, falling back to a fixed
// width otherwise.
func RenderSummary(reports []Report) string {
	width := terminalWidth()
	blocks := generics.SliceMap(reports, renderReport)
	joined := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, joined)
}

func renderReport(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("match %d (%s)", r.ID, r.Game)))
	fmt.Fprintf(&b, "plies:  %d\n", r.Plies)
	fmt.Fprintf(&b, "winner: %s\n", winStyle.Render(fmt.Sprintf("player %d", r.Winner)))
	fmt.Fprintf(&b, "values: %v", r.Values)
	return boxStyle.Render(b.String())
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

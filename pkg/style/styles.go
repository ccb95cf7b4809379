package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/rxr/pkg/catalog"
)

// Colors
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#8E8E8E", Dark: "#6C6C6C"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#2E8540", Dark: "#73D216"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#C4314B", Dark: "#EF2929"}
	PathColor    = lipgloss.AdaptiveColor{Light: "#0070A0", Dark: "#5FAFD7"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)
)

// RenderError formats err for the terminal.
func RenderError(err error) string {
	return ErrorStyle.Render("Error:") + " " + err.Error()
}

// WriteScores prints one line per profile score, marking the chosen profile.
func WriteScores(w io.Writer, scores []catalog.Score, chosen string) {
	width := 0
	for _, s := range scores {
		if len(s.Profile) > width {
			width = len(s.Profile)
		}
	}

	for _, s := range scores {
		name := s.Profile + strings.Repeat(" ", width-len(s.Profile))
		line := fmt.Sprintf("  %s  %d", name, s.Score)
		if s.Profile == chosen {
			line = SuccessStyle.Render(line)
		} else {
			line = MutedStyle.Render(line)
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

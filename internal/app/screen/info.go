package screen

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazyselect/internal/theme"
	"github.com/muesli/reflow/wordwrap"
)

// InfoScreen shows a titled list of lines, e.g. the recent diagnostics.
type InfoScreen struct {
	Title string
	Lines []string
	Empty string
	Width int
	Thm   *theme.Theme

	OnClose func() tea.Cmd
}

// NewInfoScreen creates an informational overlay.
func NewInfoScreen(title string, lines []string, thm *theme.Theme) *InfoScreen {
	return &InfoScreen{
		Title: title,
		Lines: lines,
		Empty: "Nothing to show.",
		Width: 60,
		Thm:   thm,
	}
}

// Type returns the screen type.
func (s *InfoScreen) Type() Type {
	return TypeInfo
}

// Update closes the overlay on enter, esc or q.
func (s *InfoScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc, keyQ, keyCtrlC:
		if s.OnClose != nil {
			return nil, s.OnClose()
		}
		return nil, nil
	}
	return s, nil
}

// View renders the overlay.
func (s *InfoScreen) View() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(0, 1).
		Width(s.Width)

	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width - 2)

	lineStyle := lipgloss.NewStyle().Foreground(s.Thm.TextFg)
	mutedStyle := lipgloss.NewStyle().Foreground(s.Thm.MutedFg).Italic(true)

	body := make([]string, 0, len(s.Lines))
	for _, line := range s.Lines {
		body = append(body, lineStyle.Render(wordwrap.String("• "+line, s.Width-4)))
	}
	if len(body) == 0 {
		body = append(body, mutedStyle.Render(s.Empty))
	}

	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Right).
		Width(s.Width - 2).
		PaddingTop(1).
		Render("Enter or Esc to close")

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(s.Title),
		strings.Join(body, "\n"),
		footer,
	))
}

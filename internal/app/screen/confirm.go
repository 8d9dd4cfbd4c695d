package screen

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazyselect/internal/theme"
)

// Key constants for navigation.
const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyQ        = "q"
	keyCtrlC    = "ctrl+c"
	keySpace    = " "
)

// ConfirmScreen asks a yes/no question, e.g. before discarding a selection.
type ConfirmScreen struct {
	Message        string
	SelectedButton int // 0 = Confirm, 1 = Cancel
	Thm            *theme.Theme

	OnConfirm func() tea.Cmd
	OnCancel  func() tea.Cmd
}

// NewConfirmScreen creates a confirm screen with the Cancel button focused.
func NewConfirmScreen(message string, thm *theme.Theme) *ConfirmScreen {
	return &ConfirmScreen{
		Message:        message,
		SelectedButton: 1,
		Thm:            thm,
	}
}

// Type returns the screen type.
func (s *ConfirmScreen) Type() Type {
	return TypeConfirm
}

// Update processes keyboard events for the confirmation dialog.
func (s *ConfirmScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyTab, keyShiftTab, "right", "left", "l", "h":
		s.SelectedButton = 1 - s.SelectedButton
		return s, nil
	case "y", "Y":
		return nil, s.confirm()
	case "n", "N", keyEsc, keyQ, keyCtrlC:
		return nil, s.cancel()
	case keyEnter:
		if s.SelectedButton == 0 {
			return nil, s.confirm()
		}
		return nil, s.cancel()
	}
	return s, nil
}

func (s *ConfirmScreen) confirm() tea.Cmd {
	if s.OnConfirm == nil {
		return nil
	}
	return s.OnConfirm()
}

func (s *ConfirmScreen) cancel() tea.Cmd {
	if s.OnCancel == nil {
		return nil
	}
	return s.OnCancel()
}

// View renders the dialog with the focused button highlighted.
func (s *ConfirmScreen) View() string {
	width := 50

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.WarnFg).
		Padding(1, 2).
		Width(width)

	messageStyle := lipgloss.NewStyle().
		Width(width-4).
		Align(lipgloss.Center).
		Foreground(s.Thm.TextFg)

	button := func(label string, focused bool, bg lipgloss.Color) string {
		style := lipgloss.NewStyle().
			Width((width-6)/2).
			Align(lipgloss.Center).
			Foreground(s.Thm.MutedFg).
			Background(s.Thm.BorderDim)
		if focused {
			style = style.Foreground(s.Thm.AccentFg).Background(bg).Bold(true)
		}
		return style.Render(label)
	}

	return boxStyle.Render(fmt.Sprintf("%s\n\n%s  %s",
		messageStyle.Render(s.Message),
		button("[Yes]", s.SelectedButton == 0, s.Thm.ErrorFg),
		button("[No]", s.SelectedButton == 1, s.Thm.Accent),
	))
}

package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/chmouel/lazyselect/internal/picker"
	"github.com/chmouel/lazyselect/internal/theme"
)

// SelectScreen renders a picker and feeds it user input. It is the picker's
// host: every Flush ends in Invalidate, which resyncs the cursor.
type SelectScreen struct {
	Picker *picker.Picker

	// UI state
	FilterInput  textinput.Model
	Cursor       int
	ScrollOffset int
	ButtonCursor int // -1 when no segmented button is focused
	Width        int
	Height       int
	MaxWidth     int // 0 means no cap
	Title        string
	NoResults    string
	Status       string
	ShowIcons    bool
	Thm          *theme.Theme

	// IconFor returns an icon for an item text, or "".
	IconFor func(text string) string

	// Callbacks
	OnSubmit      func(*picker.Picker) tea.Cmd
	OnCancel      func(*picker.Picker) tea.Cmd
	OnPress       func(picker.Button) tea.Cmd
	OnDiagnostics func() tea.Cmd

	Redraws int
}

// NewSelectScreen builds the picker described by opts, attached to a new
// screen, using 80% of the given size.
func NewSelectScreen(opts picker.Options, title, placeholder, noResults string, maxWidth, maxHeight int, thm *theme.Theme) *SelectScreen {
	if placeholder == "" {
		placeholder = "Filter..."
	}
	if noResults == "" {
		noResults = "No results found."
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Prompt = "> "

	s := &SelectScreen{
		FilterInput:  ti,
		ButtonCursor: -1,
		Title:        title,
		NoResults:    noResults,
		Thm:          thm,
	}
	s.SetSize(maxWidth, maxHeight)

	opts.Host = s
	s.Picker = picker.New(opts)
	s.Picker.Focus()
	if s.Picker.Autocomplete() {
		s.FilterInput.Focus()
	}

	s.Cursor = s.initialCursor()
	return s
}

// SetSize resizes the screen to 80% of the terminal, within sane minimums.
func (s *SelectScreen) SetSize(maxWidth, maxHeight int) {
	s.Width = max(int(float64(maxWidth)*0.8), 40)
	if s.MaxWidth > 0 && s.Width > s.MaxWidth {
		s.Width = max(s.MaxWidth, 40)
	}
	s.Height = max(int(float64(maxHeight)*0.8), 12)
	s.FilterInput.Width = s.Width - 6
	s.clampScroll()
}

// Invalidate implements picker.Host.
func (s *SelectScreen) Invalidate() {
	s.Redraws++
	entries := s.Picker.FilteredEntries()
	if len(entries) == 0 {
		s.Cursor = -1
	} else if s.Cursor < 0 || s.Cursor >= len(entries) || entries[s.Cursor].Disabled {
		s.Cursor = firstEnabled(entries, 0, 1)
	}
	if s.ButtonCursor >= len(s.Picker.Buttons()) {
		s.ButtonCursor = len(s.Picker.Buttons()) - 1
	}
	s.clampScroll()
}

// Type returns the screen type.
func (s *SelectScreen) Type() Type {
	return TypeSelect
}

// Update handles keyboard input. The select screen never closes itself;
// the callbacks decide what happens on submit and cancel.
func (s *SelectScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	filtering := s.Picker.Autocomplete()

	switch keyStr := msg.String(); keyStr {
	case keyEnter:
		if s.ButtonCursor >= 0 {
			return s, s.press()
		}
		return s, s.submit()
	case keyEsc, keyCtrlC:
		if s.OnCancel != nil {
			return s, s.OnCancel(s.Picker)
		}
		return s, nil
	case "up", "ctrl+k", "ctrl+p":
		s.moveCursor(-1)
		return s, nil
	case "down", "ctrl+j", "ctrl+n":
		s.moveCursor(1)
		return s, nil
	case keyTab:
		s.toggleCurrent()
		return s, nil
	case keyShiftTab:
		s.cycleButton()
		return s, nil
	case "ctrl+x":
		s.Picker.Clear()
		s.Picker.Flush()
		return s, nil
	case "ctrl+d":
		if s.OnDiagnostics != nil {
			return s, s.OnDiagnostics()
		}
		return s, nil
	default:
		if !filtering {
			switch keyStr {
			case "k":
				s.moveCursor(-1)
			case "j":
				s.moveCursor(1)
			case keySpace, "x":
				s.toggleCurrent()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	before := s.FilterInput.Value()
	s.FilterInput, cmd = s.FilterInput.Update(msg)
	if after := s.FilterInput.Value(); after != before {
		s.Picker.SetSearchValue(after)
		s.ScrollOffset = 0
		s.Picker.Flush()
	}
	return s, cmd
}

// Current returns the entry under the cursor, if any.
func (s *SelectScreen) Current() (picker.Entry, bool) {
	entries := s.Picker.FilteredEntries()
	if s.Cursor < 0 || s.Cursor >= len(entries) {
		return picker.Entry{}, false
	}
	return entries[s.Cursor], true
}

func (s *SelectScreen) toggleCurrent() {
	e, ok := s.Current()
	if !ok {
		return
	}
	if s.Picker.SelectItem(e.Raw) {
		s.Status = ""
	}
	s.Picker.Flush()
}

// submit blurs the picker so its rules run. On failure the picker is focused
// again and the screen stays open with the messages shown.
func (s *SelectScreen) submit() tea.Cmd {
	if !s.Picker.Multiple() {
		if e, ok := s.Current(); ok && !s.Picker.IsSelected(e.Raw) {
			s.Picker.SelectItem(e.Raw)
		}
	}

	s.Picker.Blur()
	s.Picker.Flush()
	if s.Picker.HasError() {
		s.Picker.Focus()
		return nil
	}
	if s.OnSubmit != nil {
		return s.OnSubmit(s.Picker)
	}
	return nil
}

func (s *SelectScreen) press() tea.Cmd {
	buttons := s.Picker.Buttons()
	if s.ButtonCursor < 0 || s.ButtonCursor >= len(buttons) {
		return nil
	}
	b := buttons[s.ButtonCursor]
	if s.OnPress != nil {
		return s.OnPress(b)
	}
	b.Press()
	return nil
}

func (s *SelectScreen) cycleButton() {
	n := len(s.Picker.Buttons())
	if n == 0 {
		s.ButtonCursor = -1
		return
	}
	// -1, 0 .. n-1, back to -1
	s.ButtonCursor++
	if s.ButtonCursor >= n {
		s.ButtonCursor = -1
	}
}

func (s *SelectScreen) moveCursor(delta int) {
	entries := s.Picker.FilteredEntries()
	if len(entries) == 0 {
		return
	}
	next := firstEnabled(entries, s.Cursor+delta, delta)
	if next < 0 {
		return
	}
	s.Cursor = next
	s.clampScroll()
}

func (s *SelectScreen) initialCursor() int {
	entries := s.Picker.FilteredEntries()
	for i, e := range entries {
		if !e.Disabled && s.Picker.IsSelected(e.Raw) {
			return i
		}
	}
	return firstEnabled(entries, 0, 1)
}

// firstEnabled walks from start in direction step and returns the first
// enabled entry, or -1.
func firstEnabled(entries []picker.Entry, start, step int) int {
	for i := start; i >= 0 && i < len(entries); i += step {
		if !entries[i].Disabled {
			return i
		}
	}
	return -1
}

func (s *SelectScreen) clampScroll() {
	maxVisible := s.maxVisible()
	if s.Cursor < 0 {
		s.ScrollOffset = 0
		return
	}
	if s.Cursor < s.ScrollOffset {
		s.ScrollOffset = s.Cursor
	}
	if s.Cursor >= s.ScrollOffset+maxVisible {
		s.ScrollOffset = s.Cursor - maxVisible + 1
	}
}

func (s *SelectScreen) maxVisible() int {
	reserved := 6
	if s.Picker != nil {
		if s.Picker.Autocomplete() {
			reserved += 2
		}
		reserved += len(s.Picker.ErrorMessages())
		if s.Picker.Segmented() {
			reserved += 2
		}
	}
	return max(s.Height-reserved, 3)
}

// View renders the select screen.
func (s *SelectScreen) View() string {
	inner := s.Width - 2

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width).
		Padding(0)

	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(inner).
		Padding(0, 1)

	separator := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(inner).
		Render("")

	title := s.Title
	if title == "" {
		title = "Select"
		if s.Picker.Multiple() {
			title = "Select one or more"
		}
	}
	contentLines := []string{titleStyle.Render(title)}

	if s.Picker.Autocomplete() {
		inputStyle := lipgloss.NewStyle().
			Padding(0, 1).
			Width(inner).
			Foreground(s.Thm.TextFg)
		contentLines = append(contentLines, inputStyle.Render(s.FilterInput.View()), separator)
	}

	contentLines = append(contentLines, s.renderItems(inner))

	if msgs := s.Picker.ErrorMessages(); s.Picker.HasError() && len(msgs) > 0 {
		errStyle := lipgloss.NewStyle().Foreground(s.Thm.ErrorFg).Padding(0, 1).Width(inner)
		for _, msg := range msgs {
			contentLines = append(contentLines, errStyle.Render("✗ "+msg))
		}
	}

	if s.Picker.Segmented() {
		contentLines = append(contentLines, separator, s.renderButtons(inner))
	}

	if s.Status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(s.Thm.SuccessFg).Padding(0, 1).Width(inner)
		contentLines = append(contentLines, statusStyle.Render(s.Status))
	}

	footerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Right).
		Width(inner).
		PaddingTop(1)
	contentLines = append(contentLines, footerStyle.Render(s.footerText()))

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, contentLines...))
}

func (s *SelectScreen) footerText() string {
	parts := []string{}
	if s.Picker.Multiple() {
		parts = append(parts, fmt.Sprintf("%d selected", len(s.Picker.Selected())), "Tab toggle")
	}
	if s.Picker.Segmented() {
		parts = append(parts, "S-Tab buttons")
	}
	parts = append(parts, "Enter confirm", "Esc cancel")
	return strings.Join(parts, " • ")
}

func (s *SelectScreen) renderItems(inner int) string {
	itemStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(inner).
		Foreground(s.Thm.TextFg)

	cursorStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(inner).
		Background(s.Thm.Accent).
		Foreground(s.Thm.AccentFg).
		Bold(true)

	disabledStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(inner).
		Foreground(s.Thm.DisabledFg).
		Strikethrough(true)

	markStyle := lipgloss.NewStyle().Foreground(s.Thm.SuccessFg)

	noResultsStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(inner).
		Foreground(s.Thm.MutedFg).
		Italic(true)

	entries := s.Picker.FilteredEntries()
	if len(entries) == 0 {
		return noResultsStyle.Render(s.NoResults)
	}

	end := min(s.ScrollOffset+s.maxVisible(), len(entries))
	start := min(s.ScrollOffset, end)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := entries[i]
		mark := s.mark(s.Picker.IsSelected(e.Raw))
		text := e.Text
		if s.ShowIcons && s.IconFor != nil {
			if icon := s.IconFor(text); icon != "" {
				text = icon + " " + text
			}
		}
		// padding and the mark take 2 + 4 cells
		text = truncate.StringWithTail(text, uint(max(inner-6, 1)), "…")

		switch {
		case e.Disabled:
			lines = append(lines, disabledStyle.Render(mark+text))
		case i == s.Cursor:
			lines = append(lines, cursorStyle.Render(ansi.Strip(markStyle.Render(mark)+text)))
		default:
			lines = append(lines, itemStyle.Render(markStyle.Render(mark)+text))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *SelectScreen) mark(selected bool) string {
	switch {
	case s.Picker.Multiple() && selected:
		return "[x] "
	case s.Picker.Multiple():
		return "[ ] "
	case selected:
		return "(•) "
	default:
		return "( ) "
	}
}

// renderButtons lays the segmented buttons out left to right, wrapping when
// a row would overflow.
func (s *SelectScreen) renderButtons(inner int) string {
	buttons := s.Picker.Buttons()
	if len(buttons) == 0 {
		return lipgloss.NewStyle().Foreground(s.Thm.MutedFg).Italic(true).Padding(0, 1).Render("No actions")
	}

	buttonStyle := lipgloss.NewStyle().
		Background(s.Thm.ButtonBg).
		Foreground(s.Thm.ButtonFg)
	focusedStyle := lipgloss.NewStyle().
		Background(s.Thm.Accent).
		Foreground(s.Thm.AccentFg).
		Bold(true)

	limit := inner - 2
	var rows []string
	var row []string
	used := 0
	for i, b := range buttons {
		label := " " + b.Text + " "
		w := runewidth.StringWidth(label)
		if w > limit {
			label = runewidth.Truncate(label, limit, "…")
			w = runewidth.StringWidth(label)
		}
		if used > 0 && used+1+w > limit {
			rows = append(rows, strings.Join(row, " "))
			row, used = nil, 0
		}
		style := buttonStyle
		if i == s.ButtonCursor {
			style = focusedStyle
		}
		row = append(row, style.Render(label))
		if used > 0 {
			used++
		}
		used += w
	}
	rows = append(rows, strings.Join(row, " "))

	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(rows, "\n"))
}

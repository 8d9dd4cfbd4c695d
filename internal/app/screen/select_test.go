package screen

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/chmouel/lazyselect/internal/picker"
	"github.com/chmouel/lazyselect/internal/theme"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestSelect(opts picker.Options) *SelectScreen {
	opts.Warnf = func(string, ...any) {}
	return NewSelectScreen(opts, "Pick", "", "", 100, 40, theme.Dracula())
}

func TestSelectScreenSkipsDisabledItems(t *testing.T) {
	scr := newTestSelect(picker.Options{
		Items: []any{"one", picker.NewObject("two").WithDisabled(true), "three"},
	})

	if scr.Cursor != 0 {
		t.Fatalf("expected cursor to start at 0, got %d", scr.Cursor)
	}

	scr.Update(runeKey('j'))
	if scr.Cursor != 2 {
		t.Fatalf("expected j to skip the disabled item, got cursor %d", scr.Cursor)
	}

	scr.Update(tea.KeyMsg{Type: tea.KeyDown})
	if scr.Cursor != 2 {
		t.Fatalf("expected cursor to stay on the last item, got %d", scr.Cursor)
	}

	scr.Update(runeKey('k'))
	if scr.Cursor != 0 {
		t.Fatalf("expected k to skip back over the disabled item, got %d", scr.Cursor)
	}
}

func TestSelectScreenStartsOnSelectedItem(t *testing.T) {
	scr := newTestSelect(picker.Options{
		Items: []any{"one", "two", "three"},
		Value: "three",
	})
	if scr.Cursor != 2 {
		t.Fatalf("expected cursor on the selected item, got %d", scr.Cursor)
	}
}

func TestSelectScreenFilterUpdatesPicker(t *testing.T) {
	scr := newTestSelect(picker.Options{
		Items:        []any{"apple", "banana", "cherry"},
		Autocomplete: true,
		FilterMode:   picker.FilterContains,
	})

	var searches []string
	scr.Picker.Subscribe(func(e picker.Event) {
		if ev, ok := e.(picker.SearchInputEvent); ok {
			searches = append(searches, ev.Search)
		}
	})

	scr.Update(runeKey('a'))
	scr.Update(runeKey('n'))

	got := scr.Picker.FilteredItems()
	if len(got) != 1 || got[0] != "banana" {
		t.Fatalf("expected only banana to match, got %v", got)
	}
	if strings.Join(searches, ",") != "a,an" {
		t.Fatalf("expected one search event per keystroke, got %v", searches)
	}
	if scr.Cursor != 0 {
		t.Fatalf("expected cursor reset to the first match, got %d", scr.Cursor)
	}
	if scr.Redraws == 0 {
		t.Fatal("expected the picker to invalidate the screen")
	}

	scr.Update(runeKey('z'))
	if scr.Cursor != -1 {
		t.Fatalf("expected no cursor without matches, got %d", scr.Cursor)
	}
	if !strings.Contains(scr.View(), "No results found.") {
		t.Fatal("expected the no results message")
	}
}

func TestSelectScreenMultipleToggleAndSubmit(t *testing.T) {
	scr := newTestSelect(picker.Options{
		Items:    []any{"one", "two", "three"},
		Multiple: true,
	})

	var submitted any
	scr.OnSubmit = func(p *picker.Picker) tea.Cmd {
		submitted = p.InputValue()
		return nil
	}

	scr.Update(tea.KeyMsg{Type: tea.KeyTab})
	scr.Update(runeKey('j'))
	scr.Update(runeKey('j'))
	scr.Update(runeKey(' '))

	if !strings.Contains(scr.View(), "2 selected") {
		t.Fatalf("expected footer to count two selected items, got:\n%s", scr.View())
	}

	next, _ := scr.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != scr {
		t.Fatal("expected the select screen to stay current")
	}
	values, ok := submitted.([]any)
	if !ok || len(values) != 2 || values[0] != "one" || values[1] != "three" {
		t.Fatalf("expected [one three] to be submitted, got %v", submitted)
	}

	scr.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if len(scr.Picker.Selected()) != 0 {
		t.Fatalf("expected ctrl+x to clear the selection, got %v", scr.Picker.InputValue())
	}
}

func TestSelectScreenSingleSubmitPicksCursor(t *testing.T) {
	scr := newTestSelect(picker.Options{Items: []any{"one", 2}})

	var submitted any
	scr.OnSubmit = func(p *picker.Picker) tea.Cmd {
		submitted = p.InputValue()
		return nil
	}

	scr.Update(runeKey('j'))
	scr.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if submitted != 2 {
		t.Fatalf("expected 2 to be submitted, got %v", submitted)
	}
}

func TestSelectScreenValidationKeepsScreenOpen(t *testing.T) {
	scr := newTestSelect(picker.Options{
		Items:    []any{"one", "two"},
		Multiple: true,
		Rules:    []picker.Rule{picker.MinSelected(2, "Pick two")},
	})

	submitted := false
	scr.OnSubmit = func(*picker.Picker) tea.Cmd {
		submitted = true
		return nil
	}

	scr.Update(tea.KeyMsg{Type: tea.KeyTab})
	scr.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if submitted {
		t.Fatal("expected submit to be refused while rules fail")
	}
	if scr.Picker.FocusState() != picker.Focused {
		t.Fatal("expected the picker to be focused again after a failed submit")
	}
	if !strings.Contains(scr.View(), "Pick two") {
		t.Fatalf("expected the rule message in the view, got:\n%s", scr.View())
	}

	scr.Update(runeKey('j'))
	scr.Update(tea.KeyMsg{Type: tea.KeyTab})
	if scr.Picker.HasError() {
		t.Fatal("expected the error to clear once the value satisfies the rules")
	}

	scr.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !submitted {
		t.Fatal("expected submit once the rules pass")
	}
}

func TestSelectScreenSegmentedButtons(t *testing.T) {
	pressed := ""
	deploy := picker.NewObject("Deploy").WithCallback(func() { pressed = "deploy" })
	broken := picker.NewObject("Broken")

	var warnings []string
	scr := NewSelectScreen(picker.Options{
		Items:     []any{deploy, broken},
		Multiple:  true,
		Segmented: true,
		Warnf: func(format string, args ...any) {
			warnings = append(warnings, args[0].(string))
		},
	}, "Actions", "", "", 100, 40, theme.Nord())

	if !strings.Contains(scr.View(), "No actions") {
		t.Fatal("expected an empty button row before anything is selected")
	}

	scr.Update(tea.KeyMsg{Type: tea.KeyTab})
	scr.Update(runeKey('j'))
	scr.Update(tea.KeyMsg{Type: tea.KeyTab})

	if n := len(scr.Picker.Buttons()); n != 1 {
		t.Fatalf("expected one button for the conforming item, got %d", n)
	}
	if len(warnings) == 0 || warnings[len(warnings)-1] != picker.SegmentedItemMessage {
		t.Fatalf("expected a segmented diagnostic, got %v", warnings)
	}

	scr.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if scr.ButtonCursor != 0 {
		t.Fatalf("expected the first button to be focused, got %d", scr.ButtonCursor)
	}
	scr.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if pressed != "deploy" {
		t.Fatal("expected enter on a focused button to run its callback")
	}

	scr.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if scr.ButtonCursor != -1 {
		t.Fatalf("expected focus to leave the buttons, got %d", scr.ButtonCursor)
	}
}

func TestSelectScreenSegmentedCustomSelection(t *testing.T) {
	hello := picker.NewObject("Hello")

	var warnings []string
	scr := NewSelectScreen(picker.Options{
		Items:     []any{hello},
		Segmented: true,
		Selection: func(e picker.Entry) string { return "<" + e.Text + ">" },
		Warnf: func(format string, args ...any) {
			warnings = append(warnings, args[0].(string))
		},
	}, "Actions", "", "", 100, 40, theme.Nord())

	scr.Update(tea.KeyMsg{Type: tea.KeyTab})

	if n := len(scr.Picker.Buttons()); n != 1 {
		t.Fatalf("expected the custom selection to render one button, got %d", n)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no diagnostic with a custom selection, got %v", warnings)
	}
	if !strings.Contains(ansi.Strip(scr.View()), "<Hello>") {
		t.Fatal("expected the button label to come from the custom selection")
	}
}

func TestSelectScreenCancelAndDiagnostics(t *testing.T) {
	scr := newTestSelect(picker.Options{Items: []any{"one"}})

	cancelled := false
	scr.OnCancel = func(*picker.Picker) tea.Cmd {
		cancelled = true
		return nil
	}
	shown := false
	scr.OnDiagnostics = func() tea.Cmd {
		shown = true
		return nil
	}

	scr.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	scr.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if !shown {
		t.Fatal("expected ctrl+d to request diagnostics")
	}
	if !cancelled {
		t.Fatal("expected esc to call OnCancel")
	}
}

func TestSelectScreenViewMarksAndIcons(t *testing.T) {
	scr := newTestSelect(picker.Options{
		Items: []any{"main.go", "README.md"},
		Value: "README.md",
	})
	scr.ShowIcons = true
	scr.IconFor = func(text string) string {
		if strings.HasSuffix(text, ".go") {
			return "G"
		}
		return ""
	}

	view := scr.View()
	for _, want := range []string{"Pick", "( ) G main.go", "(•) README.md", "Enter confirm"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestSelectScreenTruncatesLongItems(t *testing.T) {
	long := strings.Repeat("x", 200)
	scr := newTestSelect(picker.Options{Items: []any{long}})

	if strings.Contains(scr.View(), long) {
		t.Fatal("expected long item text to be truncated")
	}
	if !strings.Contains(scr.View(), "…") {
		t.Fatal("expected a truncation marker")
	}
}

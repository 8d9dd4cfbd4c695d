package app

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/chmouel/lazyselect/internal/config"
	"github.com/chmouel/lazyselect/internal/picker"
)

func TestProgramSingleSelect(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Title = "Pick one"

	tm := teatest.NewTestModel(
		t,
		NewModel(Options{Config: cfg, Picker: quietOptions("apple", "banana", "cherry")}),
		teatest.WithInitialTermSize(120, 40),
	)

	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("Pick one"))
		},
		teatest.WithCheckInterval(50*time.Millisecond),
		teatest.WithDuration(2*time.Second),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	m, ok := tm.FinalModel(t).(*Model)
	if !ok {
		t.Fatal("expected final model to be *Model")
	}
	res := m.Result()
	if !res.Submitted || res.Value != "banana" {
		t.Fatalf("expected banana to be submitted, got %+v", res)
	}
}

func TestProgramAutocompleteMultiple(t *testing.T) {
	opts := quietOptions("apple", "apricot", "banana")
	opts.Multiple = true
	opts.Autocomplete = true
	opts.FilterMode = picker.FilterContains

	tm := teatest.NewTestModel(
		t,
		NewModel(Options{Config: config.DefaultConfig(), Picker: opts}),
		teatest.WithInitialTermSize(120, 40),
	)

	tm.Type("ap")
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	m := tm.FinalModel(t).(*Model)
	values, ok := m.Result().Value.([]any)
	if !ok || len(values) != 2 || values[0] != "apple" || values[1] != "apricot" {
		t.Fatalf("expected [apple apricot], got %v", m.Result().Value)
	}
	if got := m.Picker().SearchValue(); got != "ap" {
		t.Fatalf("expected search to be kept, got %v", got)
	}
}

func TestProgramRequiredRuleBlocksSubmit(t *testing.T) {
	opts := quietOptions("one", "two")
	opts.Multiple = true
	opts.Rules = []picker.Rule{picker.Required("Pick something")}

	tm := teatest.NewTestModel(
		t,
		NewModel(Options{Config: config.DefaultConfig(), Picker: opts}),
		teatest.WithInitialTermSize(120, 40),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("Pick something"))
		},
		teatest.WithCheckInterval(50*time.Millisecond),
		teatest.WithDuration(2*time.Second),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	m := tm.FinalModel(t).(*Model)
	if !m.Result().Submitted {
		t.Fatal("expected the second submit to succeed")
	}
}

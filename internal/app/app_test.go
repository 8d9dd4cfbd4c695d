package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazyselect/internal/app/screen"
	"github.com/chmouel/lazyselect/internal/app/services"
	"github.com/chmouel/lazyselect/internal/config"
	"github.com/chmouel/lazyselect/internal/picker"
)

func quietOptions(items ...any) picker.Options {
	return picker.Options{Items: items, Warnf: func(string, ...any) {}}
}

func newTestModel(t *testing.T, cfg *config.AppConfig, opts picker.Options) *Model {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return NewModel(Options{Config: cfg, Picker: opts})
}

func TestNewModelAppliesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Title = "Pick a fruit"
	cfg.Theme = "nord"
	cfg.Icons = true
	cfg.MaxWidth = 50

	m := newTestModel(t, cfg, quietOptions("apple", "banana"))

	assert.Equal(t, "nord", m.thm.Name)
	assert.Equal(t, screen.TypeSelect, m.screens.Type())
	assert.True(t, m.sel.ShowIcons)
	assert.Equal(t, 50, m.sel.Width)

	m.Update(tea.WindowSizeMsg{Width: 200, Height: 50})
	assert.Equal(t, 50, m.sel.Width, "max_width caps the box")
	assert.Contains(t, m.View(), "Pick a fruit")
}

func TestModelCancelAsksBeforeDiscarding(t *testing.T) {
	opts := quietOptions("a", "b")
	opts.Multiple = true
	m := newTestModel(t, nil, opts)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	require.Equal(t, screen.TypeConfirm, m.screens.Type())
	assert.Contains(t, m.View(), "Discard 1 selected item(s)?")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Equal(t, screen.TypeSelect, m.screens.Type())
	assert.False(t, m.quitting)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.False(t, m.Result().Submitted)
	assert.Empty(t, m.View())
}

func TestModelCancelWithoutSelectionQuits(t *testing.T) {
	m := newTestModel(t, nil, quietOptions("a"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestModelSubmitStoresResult(t *testing.T) {
	two := picker.NewObject("Two").WithValue(2)
	m := newTestModel(t, nil, quietOptions("one", two))

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	res := m.Result()
	assert.True(t, res.Submitted)
	assert.Equal(t, 2, res.Value)
	require.Len(t, res.Selected, 1)
	assert.Equal(t, "Two", res.Selected[0].Text)
}

func TestModelButtonPress(t *testing.T) {
	ran := false
	deploy := picker.NewObject("Deploy").WithCallback(func() { ran = true })
	opts := quietOptions(deploy)
	opts.Segmented = true
	opts.Value = deploy
	m := newTestModel(t, nil, opts)

	require.Len(t, m.Picker().Buttons(), 1)
	cmd := m.press(m.Picker().Buttons()[0])
	msg := cmd()
	assert.True(t, ran)

	m.Update(msg)
	assert.Equal(t, "Ran Deploy", m.sel.Status)

	m.Update(buttonPressedMsg{text: "Deploy", err: errors.New("exit status 1")})
	assert.Equal(t, "Deploy failed: exit status 1", m.sel.Status)
}

func TestRunButtonRecoversPanics(t *testing.T) {
	b := picker.SegmentButtons(picker.NormalizeAll([]any{
		picker.NewObject("Boom").WithCallback(func() { panic("kaboom") }),
	}), nil, nil)[0]

	msg := runButton(b)
	require.Error(t, msg.err)
	assert.Equal(t, "kaboom", msg.err.Error())
	assert.Equal(t, "Boom", msg.text)
}

func TestModelDiagnosticsOverlay(t *testing.T) {
	m := newTestModel(t, nil, quietOptions("a"))

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.Equal(t, screen.TypeInfo, m.screens.Type())
	assert.Contains(t, m.View(), "Diagnostics")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screen.TypeSelect, m.screens.Type())
	assert.False(t, m.quitting)
}

func TestModelReloadsItems(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ItemsFile = "items.yaml"

	calls := 0
	m := NewModel(Options{
		Config: cfg,
		Picker: quietOptions("old"),
		LoadItems: func() ([]any, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("boom")
			}
			return []any{"new", "newer"}, nil
		},
	})
	m.watch = services.NewItemsWatchService(cfg.ItemsFile, nil)

	_, cmd := m.Update(itemsChangedMsg{})
	assert.Nil(t, cmd, "an unstarted watcher has no further events")
	assert.Equal(t, []any{"new", "newer"}, m.Picker().FilteredItems())
	assert.Equal(t, "Reloaded 2 item(s)", m.sel.Status)

	m.reloadItems()
	assert.True(t, strings.HasPrefix(m.sel.Status, "Reload failed"))
	assert.Equal(t, []any{"new", "newer"}, m.Picker().Items())
}

func TestModelReloadKeepsSelection(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ItemsFile = "items.yaml"

	decode := func() []any {
		return []any{
			picker.ObjectFromMap(map[string]any{"text": "A"}),
			picker.ObjectFromMap(map[string]any{"text": "B"}),
		}
	}
	opts := quietOptions(decode()...)
	opts.Multiple = true
	opts.ReturnObject = true

	var reloaded []any
	m := NewModel(Options{
		Config: cfg,
		Picker: opts,
		LoadItems: func() ([]any, error) {
			reloaded = decode()
			return reloaded, nil
		},
	})
	m.watch = services.NewItemsWatchService(cfg.ItemsFile, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Len(t, m.Picker().Selected(), 1)

	m.Update(itemsChangedMsg{})
	require.Len(t, reloaded, 2)
	assert.True(t, m.Picker().IsSelected(reloaded[0]), "the selection follows the reloaded item")
	assert.False(t, m.Picker().IsSelected(reloaded[1]))

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	res := m.Result()
	require.True(t, res.Submitted)
	require.Len(t, res.Selected, 1)
	assert.Same(t, reloaded[0], res.Selected[0].Raw)
}

func TestModelSchedulesTrailingReload(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ItemsFile = "items.yaml"

	calls := 0
	m := NewModel(Options{
		Config: cfg,
		Picker: quietOptions("old"),
		LoadItems: func() ([]any, error) {
			calls++
			return []any{"new"}, nil
		},
	})
	m.watch = services.NewItemsWatchService(cfg.ItemsFile, nil)
	m.watch.LastReload = time.Now()

	_, cmd := m.Update(itemsChangedMsg{})
	require.NotNil(t, cmd, "an event inside the window schedules a reload")
	assert.Equal(t, 0, calls)
	assert.True(t, m.watch.Pending)

	_, again := m.Update(itemsChangedMsg{})
	assert.Nil(t, again, "only one trailing reload is scheduled")

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				msg = c()
			}
		}
	}
	require.IsType(t, itemsReloadDueMsg{}, msg)

	m.Update(msg)
	assert.Equal(t, 1, calls)
	assert.False(t, m.watch.Pending)
	assert.Equal(t, []any{"new"}, m.Picker().Items())
	assert.Equal(t, "Reloaded 1 item(s)", m.sel.Status)
}

func TestStartItemsWatcherNeedsWatchAndFile(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewModel(Options{Config: cfg, Picker: quietOptions("a"), LoadItems: func() ([]any, error) { return nil, nil }})
	assert.Nil(t, m.startItemsWatcher())

	cfg.Watch = true
	assert.Nil(t, m.startItemsWatcher(), "no items file to watch")
	assert.Nil(t, m.watch)
}

func TestIconForItem(t *testing.T) {
	assert.Empty(t, iconForItem("plain text"))
	assert.Empty(t, iconForItem("Makefile-like"))
	assert.Empty(t, iconForItem(""))
	assert.NotEmpty(t, iconForItem("main.go"))
}

// Package app hosts the select screen in a Bubble Tea program.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazyselect/internal/app/screen"
	"github.com/chmouel/lazyselect/internal/app/services"
	"github.com/chmouel/lazyselect/internal/config"
	"github.com/chmouel/lazyselect/internal/log"
	"github.com/chmouel/lazyselect/internal/picker"
	"github.com/chmouel/lazyselect/internal/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures the application model.
type Options struct {
	Config *config.AppConfig
	Picker picker.Options
	// LoadItems re-reads the items file when --watch is on.
	LoadItems func() ([]any, error)
}

// Result is what the program leaves behind when it exits.
type Result struct {
	Submitted bool
	Value     any
	Selected  []picker.Entry
}

// Model is the root Bubble Tea model.
type Model struct {
	config    *config.AppConfig
	thm       *theme.Theme
	screens   *screen.Manager
	sel       *screen.SelectScreen
	watch     *services.ItemsWatchService
	loadItems func() ([]any, error)

	result   Result
	width    int
	height   int
	quitting bool
}

// NewModel builds the select screen and the model around it.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		config:    cfg,
		thm:       theme.GetTheme(cfg.Theme),
		screens:   screen.NewManager(),
		loadItems: opts.LoadItems,
	}

	sel := screen.NewSelectScreen(opts.Picker, cfg.Title, cfg.Placeholder, cfg.NoResults, defaultWidth, defaultHeight, m.thm)
	sel.MaxWidth = cfg.MaxWidth
	sel.SetSize(defaultWidth, defaultHeight)
	sel.ShowIcons = cfg.Icons
	sel.IconFor = iconForItem
	sel.OnSubmit = m.submit
	sel.OnCancel = m.cancel
	sel.OnPress = m.press
	sel.OnDiagnostics = m.showDiagnostics

	m.sel = sel
	m.screens.Push(sel)
	return m
}

// Init starts the items watcher and the cursor blink.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startItemsWatcher()}
	if m.sel.Picker.Autocomplete() {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the whole program.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.sel.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		cmd := m.screens.Update(msg)
		if !m.screens.IsActive() {
			return m, m.quit()
		}
		return m, cmd
	case itemsChangedMsg:
		return m, m.handleItemsChanged()
	case itemsReloadDueMsg:
		return m, m.handleItemsReloadDue()
	case buttonPressedMsg:
		if msg.err != nil {
			m.sel.Status = fmt.Sprintf("%s failed: %v", msg.text, msg.err)
		} else {
			m.sel.Status = "Ran " + msg.text
		}
		return m, nil
	case errMsg:
		log.Printf("error: %v", msg.err)
		m.sel.Status = msg.err.Error()
		return m, nil
	}

	// forward blink and other input messages to the filter input
	var cmd tea.Cmd
	m.sel.FilterInput, cmd = m.sel.FilterInput.Update(msg)
	return m, cmd
}

// View renders the current screen centred in the terminal.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	content := m.screens.View()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Result returns the outcome of the program.
func (m *Model) Result() Result {
	return m.result
}

// Picker exposes the picker driven by the select screen.
func (m *Model) Picker() *picker.Picker {
	return m.sel.Picker
}

func (m *Model) submit(p *picker.Picker) tea.Cmd {
	m.result = Result{
		Submitted: true,
		Value:     p.InputValue(),
		Selected:  p.Selected(),
	}
	return m.quit()
}

// cancel asks before throwing a multiple selection away.
func (m *Model) cancel(p *picker.Picker) tea.Cmd {
	if !p.Multiple() || len(p.Selected()) == 0 {
		return m.quit()
	}
	confirm := screen.NewConfirmScreen(fmt.Sprintf("Discard %d selected item(s)?", len(p.Selected())), m.thm)
	confirm.OnConfirm = m.quit
	m.screens.Push(confirm)
	return nil
}

func (m *Model) press(b picker.Button) tea.Cmd {
	return func() tea.Msg {
		return runButton(b)
	}
}

func (m *Model) showDiagnostics() tea.Cmd {
	info := screen.NewInfoScreen("Diagnostics", log.Recent(), m.thm)
	info.Width = m.sel.Width
	m.screens.Push(info)
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.stopItemsWatcher()
	return tea.Quit
}

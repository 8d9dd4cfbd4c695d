package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazyselect/internal/app/services"
	"github.com/chmouel/lazyselect/internal/log"
)

func (m *Model) startItemsWatcher() tea.Cmd {
	if !m.config.Watch || m.config.ItemsFile == "" || m.loadItems == nil {
		return nil
	}
	if m.watch == nil {
		m.watch = services.NewItemsWatchService(m.config.ItemsFile, log.Printf)
	}
	started, err := m.watch.Start()
	if err != nil {
		return func() tea.Msg {
			return errMsg{err: fmt.Errorf("watch %s: %w", m.config.ItemsFile, err)}
		}
	}
	if !started {
		return nil
	}
	return m.waitForItemsEvent()
}

func (m *Model) stopItemsWatcher() {
	if m.watch == nil {
		return
	}
	m.watch.Stop()
}

func (m *Model) waitForItemsEvent() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	events := m.watch.NextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-events
		if !ok {
			return nil
		}
		return itemsChangedMsg{}
	}
}

// handleItemsChanged reloads the items file and hands the new list to the
// picker. The filter and selection are kept. An event inside the debounce
// window schedules one trailing reload for when the window closes.
func (m *Model) handleItemsChanged() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	m.watch.ResetWaiting()
	now := time.Now()
	if m.watch.ShouldReload(now) {
		m.reloadItems()
		return m.waitForItemsEvent()
	}

	delay, ok := m.watch.DeferReload(now)
	if !ok {
		return m.waitForItemsEvent()
	}
	tick := tea.Tick(delay, func(time.Time) tea.Msg {
		return itemsReloadDueMsg{}
	})
	return tea.Batch(m.waitForItemsEvent(), tick)
}

func (m *Model) handleItemsReloadDue() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	m.watch.TrailingReload(time.Now())
	m.reloadItems()
	return nil
}

func (m *Model) reloadItems() {
	items, err := m.loadItems()
	if err != nil {
		log.Printf("reload %s: %v", m.config.ItemsFile, err)
		m.sel.Status = fmt.Sprintf("Reload failed: %v", err)
		return
	}
	m.sel.Picker.ReplaceItems(items)
	m.sel.Picker.Flush()
	m.sel.Status = fmt.Sprintf("Reloaded %d item(s)", len(items))
}

package screen

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Manager keeps the screen stack. The bottom screen is the select screen;
// confirm and info overlays are pushed on top of it.
type Manager struct {
	current Screen
	stack   []Screen
}

// NewManager creates a new screen manager.
func NewManager() *Manager {
	return &Manager{
		stack: make([]Screen, 0),
	}
}

// Push adds a screen to the stack and sets it as the current screen.
func (m *Manager) Push(s Screen) {
	if s == nil {
		return
	}
	if m.current != nil {
		m.stack = append(m.stack, m.current)
	}
	m.current = s
}

// Pop removes the current screen and restores the previous one.
// Returns the screen that was removed, or nil if no screen was active.
func (m *Manager) Pop() Screen {
	removed := m.current
	if n := len(m.stack); n > 0 {
		m.current = m.stack[n-1]
		m.stack = m.stack[:n-1]
	} else {
		m.current = nil
	}
	return removed
}

// Current returns the currently active screen, or nil if none.
func (m *Manager) Current() Screen {
	return m.current
}

// IsActive returns true if there is a screen currently displayed.
func (m *Manager) IsActive() bool {
	return m.current != nil
}

// Type returns the type of the current screen, or TypeNone if no screen is active.
func (m *Manager) Type() Type {
	if m.current == nil {
		return TypeNone
	}
	return m.current.Type()
}

// StackDepth returns the number of screens in the stack (excluding current).
func (m *Manager) StackDepth() int {
	return len(m.stack)
}

// Update routes a key to the current screen. A screen that returns nil is
// popped; a screen that returns a different screen replaces it.
func (m *Manager) Update(msg tea.KeyMsg) tea.Cmd {
	if m.current == nil {
		return nil
	}
	top := m.current
	next, cmd := top.Update(msg)
	// a callback run by the screen may already have pushed an overlay
	if m.current != top {
		return cmd
	}
	switch {
	case next == nil:
		m.Pop()
	case next != top:
		m.current = next
	}
	return cmd
}

// View renders the current screen.
func (m *Manager) View() string {
	if m.current == nil {
		return ""
	}
	return m.current.View()
}

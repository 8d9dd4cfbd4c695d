// Package screen provides the select screen and the modal overlays stacked
// on top of it.
package screen

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen represents a screen that can handle input and render itself.
type Screen interface {
	// Update processes a key message and returns the updated screen and any command.
	// Returning nil for the Screen signals that this screen should be closed.
	Update(msg tea.KeyMsg) (Screen, tea.Cmd)

	// View renders the screen's content.
	View() string

	// Type returns the screen's type identifier.
	Type() Type
}

// Type identifies the kind of screen being displayed.
type Type int

// Screen type constants.
const (
	TypeNone Type = iota
	TypeSelect
	TypeConfirm
	TypeInfo
)

// String returns a human-readable name for the screen type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeSelect:
		return "select"
	case TypeConfirm:
		return "confirm"
	case TypeInfo:
		return "info"
	default:
		return "unknown"
	}
}

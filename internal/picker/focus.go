package picker

// FocusState is the focus state of a picker.
type FocusState int

// Focus states.
const (
	Unfocused FocusState = iota
	Focused
)

// String returns a human-readable name for the state.
func (f FocusState) String() string {
	if f == Focused {
		return "focused"
	}
	return "unfocused"
}

// focusMachine tracks focus and remembers that a blur asked for validation.
type focusMachine struct {
	state         FocusState
	validationDue bool
}

// focus moves to Focused and reports whether the state changed.
func (m *focusMachine) focus() bool {
	if m.state == Focused {
		return false
	}
	m.state = Focused
	return true
}

// blur moves to Unfocused and schedules validation. Blurring an unfocused
// machine does nothing.
func (m *focusMachine) blur() bool {
	if m.state != Focused {
		return false
	}
	m.state = Unfocused
	m.validationDue = true
	return true
}

// takeValidation reports and clears a pending validation request.
func (m *focusMachine) takeValidation() bool {
	due := m.validationDue
	m.validationDue = false
	return due
}

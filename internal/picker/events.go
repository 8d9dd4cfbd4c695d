package picker

// Event is a notification published by a Picker.
type Event interface {
	Name() string
}

// ChangeEvent is published when the user changes the selection. Value is a
// single value, or a []any in multiple mode.
type ChangeEvent struct {
	Value any
}

// InputEvent is published when the active value is assigned directly.
type InputEvent struct {
	Value any
}

// SearchInputEvent is published on every search assignment.
type SearchInputEvent struct {
	Search string
}

// DiagnosticEvent carries a non-fatal usage warning.
type DiagnosticEvent struct {
	Message string
}

// Name returns the event name.
func (ChangeEvent) Name() string { return "change" }

// Name returns the event name.
func (InputEvent) Name() string { return "input" }

// Name returns the event name.
func (SearchInputEvent) Name() string { return "update:searchInput" }

// Name returns the event name.
func (DiagnosticEvent) Name() string { return "diagnostic" }

// Handler receives published events.
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// bus delivers events synchronously, in subscription order.
type bus struct {
	subs   []subscription
	nextID int
}

// subscribe registers a handler and returns a function that removes it.
func (b *bus) subscribe(h Handler) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: h})

	return func() {
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) publish(e Event) {
	// handlers may unsubscribe while we iterate
	subs := append([]subscription(nil), b.subs...)
	for _, sub := range subs {
		sub.handler(e)
	}
}

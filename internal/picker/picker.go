package picker

import (
	"github.com/chmouel/lazyselect/internal/log"
)

// MissingHostMessage is reported when a picker is created without a host.
const MissingHostMessage = "picker is not attached to a host"

// Host is the container a picker renders into. Invalidate is called after
// every Flush so the host can redraw.
type Host interface {
	Invalidate()
}

// Options configures a Picker.
type Options struct {
	Items        []any
	Value        any
	Multiple     bool
	Autocomplete bool
	Segmented    bool
	// ReturnObject makes the selection hold whole items instead of their values.
	ReturnObject bool
	Rules        []Rule
	FilterMode   FilterMode
	// Selection renders selected entries in place of the default segmented
	// buttons. Entries then need neither text nor callback.
	Selection    func(Entry) string
	Host         Host
	// Warnf receives diagnostics. Defaults to log.Warnf.
	Warnf        func(format string, args ...any)
}

type dirtyFlags struct {
	items  bool
	search bool
	value  bool
}

// Picker is one select control instance. It is not safe for concurrent use.
type Picker struct {
	opts    Options
	entries []Entry
	sel     *Selection
	search  any
	focus   focusMachine

	filtered  []Entry
	errs      ErrorState
	validated bool
	buttons   []Button

	dirty dirtyFlags
	bus   bus
	warnf func(format string, args ...any)
}

// New creates a picker and computes its initial derived state.
func New(opts Options) *Picker {
	p := &Picker{
		opts:    opts,
		entries: NormalizeAll(opts.Items),
		sel:     NewSelection(opts.Multiple, opts.Value),
		warnf:   opts.Warnf,
	}
	if p.warnf == nil {
		p.warnf = log.Warnf
	}
	if opts.Host == nil {
		p.diagnose(MissingHostMessage)
	}

	p.filtered = p.computeFiltered()
	if opts.Segmented {
		p.buttons = SegmentButtons(p.Selected(), p.opts.Selection, p.diagnose)
	}
	return p
}

// Subscribe registers h for every published event and returns a function
// that removes it.
func (p *Picker) Subscribe(h Handler) func() {
	return p.bus.subscribe(h)
}

// Multiple reports whether the picker is in multiple mode.
func (p *Picker) Multiple() bool { return p.opts.Multiple }

// Autocomplete reports whether search filtering is enabled.
func (p *Picker) Autocomplete() bool { return p.opts.Autocomplete }

// Segmented reports whether selected items render as buttons.
func (p *Picker) Segmented() bool { return p.opts.Segmented }

// SetItems replaces the item list.
func (p *Picker) SetItems(items []any) {
	p.opts.Items = items
	p.entries = NormalizeAll(items)
	p.dirty.items = true
}

// ReplaceItems swaps in a reloaded item list and carries the selection
// over. Each selected value moves to the new item with the same value, or
// else the same text; values with no counterpart are dropped. No event is
// published.
func (p *Picker) ReplaceItems(items []any) {
	selected := p.Selected()
	p.SetItems(items)

	values := make([]any, 0, len(selected))
	for _, old := range selected {
		if v, ok := p.carryOver(old); ok {
			values = append(values, v)
		}
	}
	switch {
	case p.opts.Multiple:
		p.sel.Set(values)
	case len(values) > 0:
		p.sel.Set(values[0])
	default:
		p.sel.Set(nil)
	}
	p.dirty.value = true
}

func (p *Picker) carryOver(old Entry) (any, bool) {
	key := p.keyOf(old)
	for _, e := range p.entries {
		if SameValue(p.keyOf(e), key) {
			return p.keyOf(e), true
		}
	}
	for _, e := range p.entries {
		if e.Kind != KindInvalid && e.Text == old.Text {
			return p.keyOf(e), true
		}
	}
	return nil, false
}

// Items returns the item list as supplied.
func (p *Picker) Items() []any {
	return append([]any(nil), p.opts.Items...)
}

// Entries returns the normalized items.
func (p *Picker) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

// SelectItem applies a user selection of item. In multiple mode it toggles
// the item, otherwise it replaces the value. Disabled items are refused.
// It reports whether the selection changed and a ChangeEvent was published.
func (p *Picker) SelectItem(item any) bool {
	e := p.resolve(item)
	if e.Disabled || e.Kind == KindInvalid {
		return false
	}

	p.sel.Toggle(p.keyOf(e))
	p.dirty.value = true
	p.bus.publish(ChangeEvent{Value: p.sel.Value()})
	return true
}

// SetInputValue assigns the active value directly, bypassing toggle
// semantics, and publishes an InputEvent.
func (p *Picker) SetInputValue(v any) {
	p.sel.Set(v)
	p.dirty.value = true
	p.bus.publish(InputEvent{Value: p.sel.Value()})
}

// InputValue returns the current value: a single value, or a []any in
// multiple mode.
func (p *Picker) InputValue() any {
	return p.sel.Value()
}

// Value returns the same value as InputValue, for controlled owners.
func (p *Picker) Value() any {
	return p.sel.Value()
}

// SetValue is the controlled counterpart of SetInputValue: the owner pushes
// a new value and no event is published.
func (p *Picker) SetValue(v any) {
	p.sel.Set(v)
	p.dirty.value = true
}

// Clear empties the selection and publishes a ChangeEvent.
func (p *Picker) Clear() {
	p.sel.Clear()
	p.dirty.value = true
	p.bus.publish(ChangeEvent{Value: p.sel.Value()})
}

// IsSelected reports whether item is part of the selection.
func (p *Picker) IsSelected(item any) bool {
	return p.sel.Contains(p.keyOf(p.resolve(item)))
}

// Selected returns the entries for the current selection, in selection
// order. Values that match no item are normalized on their own.
func (p *Picker) Selected() []Entry {
	values := p.sel.Values()
	out := make([]Entry, 0, len(values))
	for _, v := range values {
		out = append(out, p.entryFor(v))
	}
	return out
}

// SetSearchValue assigns the search text and publishes a SearchInputEvent.
func (p *Picker) SetSearchValue(search any) {
	p.search = search
	p.dirty.search = true
	p.bus.publish(SearchInputEvent{Search: SearchText(search)})
}

// SearchValue returns the search value as assigned.
func (p *Picker) SearchValue() any {
	return p.search
}

// Focus marks the picker focused.
func (p *Picker) Focus() {
	p.focus.focus()
}

// Blur marks the picker unfocused. Rules run on the next Flush.
func (p *Picker) Blur() {
	p.focus.blur()
}

// FocusState returns the current focus state.
func (p *Picker) FocusState() FocusState {
	return p.focus.state
}

// Validate runs the rules immediately and reports whether the value passes.
func (p *Picker) Validate() bool {
	p.errs = Evaluate(p.sel.Value(), p.opts.Rules)
	p.validated = true
	return !p.errs.HasError
}

// Reset clears the selection, the search and any validation result.
func (p *Picker) Reset() {
	p.sel.Clear()
	p.search = nil
	p.errs = ErrorState{}
	p.validated = false
	p.dirty = dirtyFlags{items: true, search: true, value: true}
}

// Flush brings derived state up to date with every mutation since the last
// flush, then asks the host to redraw.
func (p *Picker) Flush() {
	if p.dirty.items || p.dirty.search {
		p.filtered = p.computeFiltered()
	}

	if p.focus.takeValidation() || (p.validated && p.dirty.value) {
		p.Validate()
	}

	if p.opts.Segmented && (p.dirty.items || p.dirty.value) {
		p.buttons = SegmentButtons(p.Selected(), p.opts.Selection, p.diagnose)
	}

	p.dirty = dirtyFlags{}
	if p.opts.Host != nil {
		p.opts.Host.Invalidate()
	}
}

// FilteredItems returns the raw items that match the search as of the last
// flush.
func (p *Picker) FilteredItems() []any {
	out := make([]any, 0, len(p.filtered))
	for _, e := range p.filtered {
		out = append(out, e.Raw)
	}
	return out
}

// FilteredEntries returns the matching entries as of the last flush.
func (p *Picker) FilteredEntries() []Entry {
	return append([]Entry(nil), p.filtered...)
}

// HasError reports whether the last validation failed.
func (p *Picker) HasError() bool {
	return p.errs.HasError
}

// ErrorMessages returns the messages of the last validation.
func (p *Picker) ErrorMessages() []string {
	return append([]string(nil), p.errs.Messages...)
}

// Buttons returns the segmented buttons as of the last flush.
func (p *Picker) Buttons() []Button {
	return append([]Button(nil), p.buttons...)
}

func (p *Picker) computeFiltered() []Entry {
	if !p.opts.Autocomplete {
		return append([]Entry(nil), p.entries...)
	}
	return Filter(p.entries, p.search, p.opts.FilterMode)
}

func (p *Picker) keyOf(e Entry) any {
	if p.opts.ReturnObject {
		return e.Raw
	}
	return e.Value
}

// resolve prefers the known entry for item so its disabled flag applies.
func (p *Picker) resolve(item any) Entry {
	for _, e := range p.entries {
		if SameValue(e.Raw, item) {
			return e
		}
	}
	return Normalize(item)
}

func (p *Picker) entryFor(v any) Entry {
	for _, e := range p.entries {
		if SameValue(p.keyOf(e), v) {
			return e
		}
	}
	return Normalize(v)
}

func (p *Picker) diagnose(msg string) {
	p.warnf("%s", msg)
	p.bus.publish(DiagnosticEvent{Message: msg})
}

package picker

// Selection holds the selected value, or the ordered selected values in
// multiple mode. Values are compared with SameValue.
type Selection struct {
	multiple bool
	value    any
	values   []any
}

// NewSelection creates a selection seeded with initial. In multiple mode a
// []any seeds every element, any other non-nil value seeds a single element.
func NewSelection(multiple bool, initial any) *Selection {
	s := &Selection{multiple: multiple}
	s.Set(initial)
	return s
}

// Multiple reports whether the selection holds several values.
func (s *Selection) Multiple() bool {
	return s.multiple
}

// Toggle adds v, or removes it when it is already selected in multiple mode.
// In single mode v simply replaces the current value. It reports whether v
// is selected afterwards.
func (s *Selection) Toggle(v any) bool {
	if !s.multiple {
		s.value = v
		return true
	}
	if i := s.index(v); i >= 0 {
		s.values = append(s.values[:i:i], s.values[i+1:]...)
		return false
	}
	s.values = append(s.values, v)
	return true
}

// Set replaces the selection without toggle semantics. Duplicate values
// are dropped in multiple mode, keeping the first occurrence.
func (s *Selection) Set(v any) {
	if !s.multiple {
		s.value = v
		return
	}
	s.values = nil
	switch vals := v.(type) {
	case nil:
		return
	case []any:
		for _, item := range vals {
			if s.index(item) < 0 {
				s.values = append(s.values, item)
			}
		}
	default:
		s.values = []any{v}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.value = nil
	s.values = nil
}

// Contains reports whether v is selected.
func (s *Selection) Contains(v any) bool {
	if !s.multiple {
		return s.value != nil && SameValue(s.value, v)
	}
	return s.index(v) >= 0
}

// Value returns the externally visible value: the single value, or a fresh
// non-nil []any in multiple mode.
func (s *Selection) Value() any {
	if !s.multiple {
		return s.value
	}
	return s.Values()
}

// Values returns the selected values as a fresh slice.
func (s *Selection) Values() []any {
	if !s.multiple {
		if s.value == nil {
			return []any{}
		}
		return []any{s.value}
	}
	out := make([]any, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of selected values.
func (s *Selection) Len() int {
	if !s.multiple {
		if s.value == nil {
			return 0
		}
		return 1
	}
	return len(s.values)
}

func (s *Selection) index(v any) int {
	for i, existing := range s.values {
		if SameValue(existing, v) {
			return i
		}
	}
	return -1
}

// Package picker implements the selection and filtering state behind the
// select control: item normalization, selection, search filtering, rule
// validation, segmented buttons and the focus/blur cycle.
//
// A Picker is mutated through plain method calls. Derived state (filtered
// items, error state, segmented buttons) only catches up with those
// mutations when Flush is called, so callers flush before reading it.
package picker

import (
	"fmt"
	"reflect"
	"strings"
)

// Object is a structured item. Value is only meaningful when HasValue is set;
// otherwise the object itself acts as its value.
type Object struct {
	Text     string
	Value    any
	HasValue bool
	Disabled bool
	Callback func()
}

// NewObject returns an object item labelled text.
func NewObject(text string) *Object {
	return &Object{Text: text}
}

// WithValue sets the semantic value of the object.
func (o *Object) WithValue(v any) *Object {
	o.Value = v
	o.HasValue = true
	return o
}

// WithCallback sets the action run when the object is pressed as a segmented button.
func (o *Object) WithCallback(fn func()) *Object {
	o.Callback = fn
	return o
}

// WithDisabled marks the object as not selectable.
func (o *Object) WithDisabled(disabled bool) *Object {
	o.Disabled = disabled
	return o
}

// ObjectFromMap builds an object from decoded configuration data. Recognised
// keys are text, value and disabled; a present value key always sets HasValue,
// even when it is null.
func ObjectFromMap(data map[string]any) *Object {
	obj := &Object{}
	if text, ok := data["text"]; ok && text != nil {
		obj.Text = fmt.Sprint(text)
	}
	if value, ok := data["value"]; ok {
		obj.Value = value
		obj.HasValue = true
	}
	if disabled, ok := data["disabled"].(bool); ok {
		obj.Disabled = disabled
	}
	return obj
}

// Kind tags the shape an item had before normalization.
type Kind int

// Item kinds.
const (
	KindInvalid Kind = iota
	KindPrimitive
	KindObject
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Entry is the canonical form of an item. Raw keeps the item as supplied so
// callers get back exactly what they passed in.
type Entry struct {
	Kind     Kind
	Text     string
	Value    any
	Disabled bool
	Callback func()
	Raw      any
}

// Normalize converts an item into an Entry. It never fails: unsupported
// shapes come back as KindInvalid with no text.
func Normalize(item any) Entry {
	if obj, ok := item.(*Object); ok {
		if obj == nil {
			return Entry{Kind: KindInvalid, Raw: item}
		}
		value := any(obj)
		if obj.HasValue {
			value = obj.Value
		}
		return Entry{
			Kind:     KindObject,
			Text:     obj.Text,
			Value:    value,
			Disabled: obj.Disabled,
			Callback: obj.Callback,
			Raw:      obj,
		}
	}

	if isPrimitive(item) {
		return Entry{Kind: KindPrimitive, Text: fmt.Sprint(item), Value: item, Raw: item}
	}
	return Entry{Kind: KindInvalid, Value: item, Raw: item}
}

// NormalizeAll normalizes every item, preserving order.
func NormalizeAll(items []any) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Normalize(item))
	}
	return entries
}

func isPrimitive(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// SameValue reports strict equality: identical dynamic type and ==, which is
// pointer identity for objects. Maps and slices compare by reference: the
// same map, or the same backing array and length. Other values whose type is
// not comparable are never equal.
func SameValue(a, b any) (equal bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return sameReference(reflect.ValueOf(a), reflect.ValueOf(b))
	}
	// structs with interface fields can still hold uncomparable values
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}

func sameReference(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Map:
		return a.Pointer() == b.Pointer()
	case reflect.Slice:
		return a.Pointer() == b.Pointer() && a.Len() == b.Len()
	}
	// func pointers identify code, not closures
	return false
}

// TextOf returns the display text for a selection value.
func TextOf(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case *Object:
		if val == nil {
			return ""
		}
		return val.Text
	case string:
		return val
	}
	return fmt.Sprint(v)
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case *Object:
		return val == nil
	}
	return false
}

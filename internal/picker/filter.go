package picker

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/sahilm/fuzzy"
)

// FilterMode selects how search text is matched against items.
type FilterMode int

// Filter modes.
const (
	// FilterExact matches primitives whose text equals the search, ignoring
	// case, and objects whose text contains it.
	FilterExact FilterMode = iota
	// FilterContains matches any item whose text contains the search.
	FilterContains
	// FilterFuzzy ranks items by fuzzy score.
	FilterFuzzy
	// FilterGlob treats the search as a glob pattern.
	FilterGlob
)

// String returns the configuration name of the mode.
func (m FilterMode) String() string {
	switch m {
	case FilterContains:
		return "contains"
	case FilterFuzzy:
		return "fuzzy"
	case FilterGlob:
		return "glob"
	default:
		return "exact"
	}
}

// ParseFilterMode converts a configuration name into a FilterMode.
func ParseFilterMode(name string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exact":
		return FilterExact, nil
	case "contains", "substring":
		return FilterContains, nil
	case "fuzzy":
		return FilterFuzzy, nil
	case "glob":
		return FilterGlob, nil
	}
	return FilterExact, fmt.Errorf("unknown filter mode %q", name)
}

// SearchText coerces a search value to its string form.
func SearchText(search any) string {
	switch s := search.(type) {
	case nil:
		return ""
	case string:
		return s
	}
	return fmt.Sprint(search)
}

// Filter returns the entries matching search. An empty search matches
// everything. The input slice is never modified.
func Filter(entries []Entry, search any, mode FilterMode) []Entry {
	query := strings.TrimSpace(SearchText(search))
	if query == "" {
		return append([]Entry(nil), entries...)
	}

	switch mode {
	case FilterFuzzy:
		return fuzzyFilter(entries, query)
	case FilterGlob:
		if g, err := glob.Compile(strings.ToLower(query)); err == nil {
			return globFilter(entries, g)
		}
		// half-typed patterns fall back to plain matching
		mode = FilterContains
	}

	lower := strings.ToLower(query)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e, query, lower, mode) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e Entry, query, lower string, mode FilterMode) bool {
	switch e.Kind {
	case KindPrimitive:
		if mode == FilterExact {
			return strings.EqualFold(e.Text, query)
		}
		return strings.Contains(strings.ToLower(e.Text), lower)
	case KindObject:
		return strings.Contains(strings.ToLower(e.Text), lower)
	}
	return false
}

func globFilter(entries []Entry, g glob.Glob) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Kind != KindInvalid && g.Match(strings.ToLower(e.Text)) {
			out = append(out, e)
		}
	}
	return out
}

// entrySource adapts entries to fuzzy.Source.
type entrySource []Entry

func (s entrySource) String(i int) string { return s[i].Text }

func (s entrySource) Len() int { return len(s) }

func fuzzyFilter(entries []Entry, query string) []Entry {
	found := fuzzy.FindFrom(query, entrySource(entries))
	out := make([]Entry, 0, len(found))
	for _, match := range found {
		if entries[match.Index].Kind == KindInvalid {
			continue
		}
		out = append(out, entries[match.Index])
	}
	return out
}

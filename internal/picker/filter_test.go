package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func texts(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Text)
	}
	return out
}

func TestFilter(t *testing.T) {
	entries := NormalizeAll([]any{
		"foo",
		"Foobar",
		1,
		12,
		NewObject("Apple pie").WithValue("apple"),
		NewObject("Banana"),
		struct{}{},
	})

	tests := []struct {
		name     string
		search   any
		mode     FilterMode
		expected []string
	}{
		{
			name:     "empty search keeps everything",
			search:   "",
			mode:     FilterExact,
			expected: []string{"foo", "Foobar", "1", "12", "Apple pie", "Banana", ""},
		},
		{
			name:     "nil search keeps everything",
			search:   nil,
			mode:     FilterExact,
			expected: []string{"foo", "Foobar", "1", "12", "Apple pie", "Banana", ""},
		},
		{
			name:     "exact primitive match ignores case",
			search:   "FOO",
			mode:     FilterExact,
			expected: []string{"foo"},
		},
		{
			name:     "exact numeric search",
			search:   1,
			mode:     FilterExact,
			expected: []string{"1"},
		},
		{
			name:     "exact mode matches object text by substring",
			search:   "pie",
			mode:     FilterExact,
			expected: []string{"Apple pie"},
		},
		{
			name:     "contains mode",
			search:   "foo",
			mode:     FilterContains,
			expected: []string{"foo", "Foobar"},
		},
		{
			name:     "contains numeric",
			search:   "1",
			mode:     FilterContains,
			expected: []string{"1", "12"},
		},
		{
			name:     "glob mode",
			search:   "*a*",
			mode:     FilterGlob,
			expected: []string{"Foobar", "Apple pie", "Banana"},
		},
		{
			name:     "broken glob falls back to contains",
			search:   "[ban",
			mode:     FilterGlob,
			expected: []string{},
		},
		{
			name:     "fuzzy mode",
			search:   "bnn",
			mode:     FilterFuzzy,
			expected: []string{"Banana"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, texts(Filter(entries, tt.search, tt.mode)))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	entries := NormalizeAll([]any{"a", "b"})

	out := Filter(entries, "", FilterExact)
	out[0].Text = "changed"

	assert.Equal(t, "a", entries[0].Text)
}

func TestParseFilterMode(t *testing.T) {
	tests := []struct {
		input    string
		expected FilterMode
		wantErr  bool
	}{
		{input: "", expected: FilterExact},
		{input: "Exact", expected: FilterExact},
		{input: "substring", expected: FilterContains},
		{input: " fuzzy ", expected: FilterFuzzy},
		{input: "glob", expected: FilterGlob},
		{input: "regex", expected: FilterExact, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseFilterMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, mode)
		})
	}

	for _, mode := range []FilterMode{FilterExact, FilterContains, FilterFuzzy, FilterGlob} {
		parsed, err := ParseFilterMode(mode.String())
		assert.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
}

package picker

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
)

// Rule validates a value. It returns an empty string when the value passes
// and the failure message otherwise.
type Rule func(value any) string

// ErrorState is the outcome of running the rules against a value.
type ErrorState struct {
	HasError bool
	Messages []string
}

// Evaluate runs every rule in order and collects the failure messages.
func Evaluate(value any, rules []Rule) ErrorState {
	var state ErrorState
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		if msg := rule(value); msg != "" {
			state.Messages = append(state.Messages, msg)
		}
	}
	state.HasError = len(state.Messages) > 0
	return state
}

// Required fails for nil, blank strings and empty selections. Zero and false
// are real values and pass.
func Required(msg string) Rule {
	if msg == "" {
		msg = "Required"
	}
	return func(value any) string {
		if isEmptyValue(value) {
			return msg
		}
		return ""
	}
}

// MinSelected fails when fewer than n values are selected.
func MinSelected(n int, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Select at least %d", n)
	}
	return func(value any) string {
		if len(valuesOf(value)) < n {
			return msg
		}
		return ""
	}
}

// MaxSelected fails when more than n values are selected.
func MaxSelected(n int, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Select at most %d", n)
	}
	return func(value any) string {
		if len(valuesOf(value)) > n {
			return msg
		}
		return ""
	}
}

// Pattern fails when any selected value's text does not match re.
func Pattern(re *regexp.Regexp, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Must match %s", re.String())
	}
	return func(value any) string {
		for _, v := range valuesOf(value) {
			if !re.MatchString(TextOf(v)) {
				return msg
			}
		}
		return ""
	}
}

// Glob fails when any selected value's text does not match the glob pattern.
func Glob(pattern, msg string) (Rule, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	if msg == "" {
		msg = fmt.Sprintf("Must match %s", pattern)
	}
	return func(value any) string {
		for _, v := range valuesOf(value) {
			if !g.Match(TextOf(v)) {
				return msg
			}
		}
		return ""
	}, nil
}

// RuleByName builds a rule from its configuration name and argument.
// Supported names: required, min, max, pattern, glob.
func RuleByName(name, arg, msg string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "required":
		return Required(msg), nil
	case "min", "max":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("rule %s needs a non-negative count, got %q", name, arg)
		}
		if strings.EqualFold(name, "min") {
			return MinSelected(n, msg), nil
		}
		return MaxSelected(n, msg), nil
	case "pattern":
		re, err := regexp.Compile(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		return Pattern(re, msg), nil
	case "glob":
		return Glob(arg, msg)
	default:
		return nil, fmt.Errorf("unknown rule %q", name)
	}
}

func valuesOf(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	}
	if isEmptyValue(value) {
		return nil
	}
	return []any{value}
}

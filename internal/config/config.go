// Package config loads lazyselect configuration from YAML, TOML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chmouel/lazyselect/internal/picker"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// RuleSpec is a validation rule declared by name, e.g. "min=2".
type RuleSpec struct {
	Name    string
	Arg     string
	Message string
}

// AppConfig defines the lazyselect configuration options.
type AppConfig struct {
	Items []any
	// ItemCommands maps object items to the shell command bound as their
	// segmented callback.
	ItemCommands map[*picker.Object]string
	ItemsFile    string
	Value        any
	HasValue     bool
	Multiple     bool
	Autocomplete bool
	Segmented    bool
	ReturnObject bool
	FilterMode   string // exact, contains, fuzzy or glob
	Rules        []RuleSpec
	Title        string
	Placeholder  string
	NoResults    string
	Theme        string // Theme name: see AvailableThemes in internal/theme
	DebugLog     string
	Output       string // plain, json, yaml or table
	Watch        bool
	Icons        bool
	MaxWidth     int
	// Selection is the segmented button label template. {text} and {value}
	// are replaced per selected item.
	Selection    string
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		ItemCommands: map[*picker.Object]string{},
		FilterMode:   picker.FilterExact.String(),
		Placeholder:  "Type to filter...",
		NoResults:    "No matches",
		Output:       "plain",
		MaxWidth:     80,
	}
}

var configExtensions = []string{".yaml", ".yml", ".toml", ".json"}

// normalizeScalar maps decoder specific number types onto int and float64 so
// that config values compare equal to the items they name.
func normalizeScalar(value any) any {
	switch v := value.(type) {
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = normalizeScalar(val)
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, val := range v {
			out = append(out, normalizeScalar(val))
		}
		return out
	}
	return value
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := normalizeScalar(value).(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := normalizeScalar(value).(type) {
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func coerceString(value any, defaultVal string) string {
	if value == nil {
		return defaultVal
	}
	text := strings.TrimSpace(fmt.Sprint(normalizeScalar(value)))
	if text == "" {
		return defaultVal
	}
	return text
}

var knownKeys = map[string]bool{
	"items":         true,
	"items_file":    true,
	"value":         true,
	"multiple":      true,
	"autocomplete":  true,
	"segmented":     true,
	"return_object": true,
	"filter_mode":   true,
	"rules":         true,
	"title":         true,
	"placeholder":   true,
	"no_results":    true,
	"theme":         true,
	"debug_log":     true,
	"output":        true,
	"watch":         true,
	"icons":         true,
	"max_width":     true,
	"selection":     true,
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	applyData(cfg, data)
	return cfg
}

func applyData(cfg *AppConfig, data map[string]any) {
	if raw, ok := data["items"]; ok {
		cfg.Items, cfg.ItemCommands = parseItems(raw)
	}
	if raw, ok := data["value"]; ok {
		cfg.Value = normalizeScalar(raw)
		cfg.HasValue = true
	}
	if raw, ok := data["rules"]; ok {
		cfg.Rules = parseRules(raw)
	}

	cfg.ItemsFile = coerceString(data["items_file"], cfg.ItemsFile)
	cfg.Multiple = coerceBool(data["multiple"], cfg.Multiple)
	cfg.Autocomplete = coerceBool(data["autocomplete"], cfg.Autocomplete)
	cfg.Segmented = coerceBool(data["segmented"], cfg.Segmented)
	cfg.ReturnObject = coerceBool(data["return_object"], cfg.ReturnObject)
	cfg.FilterMode = strings.ToLower(coerceString(data["filter_mode"], cfg.FilterMode))
	cfg.Title = coerceString(data["title"], cfg.Title)
	cfg.Placeholder = coerceString(data["placeholder"], cfg.Placeholder)
	cfg.NoResults = coerceString(data["no_results"], cfg.NoResults)
	cfg.Theme = strings.ToLower(coerceString(data["theme"], cfg.Theme))
	cfg.DebugLog = coerceString(data["debug_log"], cfg.DebugLog)
	cfg.Output = strings.ToLower(coerceString(data["output"], cfg.Output))
	cfg.Watch = coerceBool(data["watch"], cfg.Watch)
	cfg.Icons = coerceBool(data["icons"], cfg.Icons)
	cfg.Selection = coerceString(data["selection"], cfg.Selection)

	if width := coerceInt(data["max_width"], cfg.MaxWidth); width > 0 {
		cfg.MaxWidth = width
	}
}

// parseItems turns decoded item data into picker items. Mappings become
// objects; a "command" key is kept aside for segmented callbacks.
func parseItems(raw any) ([]any, map[*picker.Object]string) {
	commands := map[*picker.Object]string{}

	var list []any
	switch v := normalizeScalar(raw).(type) {
	case nil:
		return []any{}, commands
	case string:
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
	case []any:
		list = v
	default:
		list = []any{v}
	}

	items := make([]any, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case nil:
			continue
		case map[string]any:
			obj := picker.ObjectFromMap(v)
			if cmd := coerceString(v["command"], ""); cmd != "" {
				commands[obj] = cmd
			}
			items = append(items, obj)
		default:
			items = append(items, v)
		}
	}
	return items, commands
}

func parseRules(raw any) []RuleSpec {
	var list []any
	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			list = append(list, part)
		}
	case []any:
		list = v
	default:
		return nil
	}

	rules := []RuleSpec{}
	for _, item := range list {
		switch v := item.(type) {
		case string:
			if spec := ParseRuleFlag(v); spec.Name != "" {
				rules = append(rules, spec)
			}
		case map[string]any:
			spec := RuleSpec{
				Name:    strings.ToLower(coerceString(v["name"], "")),
				Arg:     coerceString(v["arg"], ""),
				Message: coerceString(v["message"], ""),
			}
			if spec.Name != "" {
				rules = append(rules, spec)
			}
		}
	}
	return rules
}

// ParseRuleFlag parses "name" or "name=arg". The argument keeps any further
// '=' characters.
func ParseRuleFlag(text string) RuleSpec {
	name, arg, _ := strings.Cut(strings.TrimSpace(text), "=")
	return RuleSpec{
		Name: strings.ToLower(strings.TrimSpace(name)),
		Arg:  strings.TrimSpace(arg),
	}
}

// BuildRules compiles rule specs into picker rules.
func BuildRules(specs []RuleSpec) ([]picker.Rule, error) {
	rules := make([]picker.Rule, 0, len(specs))
	for _, spec := range specs {
		rule, err := picker.RuleByName(spec.Name, spec.Arg, spec.Message)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", spec.Name, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// PickerOptions builds the picker options described by the configuration.
// The caller attaches the host.
func (c *AppConfig) PickerOptions() (picker.Options, error) {
	mode, err := picker.ParseFilterMode(c.FilterMode)
	if err != nil {
		return picker.Options{}, err
	}
	rules, err := BuildRules(c.Rules)
	if err != nil {
		return picker.Options{}, err
	}

	opts := picker.Options{
		Items:        c.Items,
		Multiple:     c.Multiple,
		Autocomplete: c.Autocomplete,
		Segmented:    c.Segmented,
		ReturnObject: c.ReturnObject,
		Rules:        rules,
		FilterMode:   mode,
	}
	if c.HasValue {
		opts.Value = ResolveValue(c.Items, c.Value, c.ReturnObject)
	}
	if c.Selection != "" {
		opts.Selection = SelectionRenderer(c.Selection)
	}
	return opts, nil
}

// SelectionRenderer returns a segmented button renderer for format.
func SelectionRenderer(format string) func(picker.Entry) string {
	return func(e picker.Entry) string {
		return strings.NewReplacer(
			"{text}", e.Text,
			"{value}", picker.TextOf(e.Value),
		).Replace(format)
	}
}

// ResolveValue maps a configured value onto the items it names. An element
// equal to an item's value is kept; otherwise an element whose text matches
// an item's text is replaced by that item's value (or the item itself when
// returnObject is set). Lists are resolved element by element.
func ResolveValue(items []any, value any, returnObject bool) any {
	entries := picker.NormalizeAll(items)
	resolve := func(v any) any {
		key := func(e picker.Entry) any {
			if returnObject {
				return e.Raw
			}
			return e.Value
		}
		for _, e := range entries {
			if picker.SameValue(key(e), v) {
				return v
			}
		}
		text := picker.TextOf(v)
		for _, e := range entries {
			if e.Kind != picker.KindInvalid && e.Text == text {
				return key(e)
			}
		}
		return v
	}

	if list, ok := value.([]any); ok {
		out := make([]any, 0, len(list))
		for _, v := range list {
			out = append(out, resolve(v))
		}
		return out
	}
	return resolve(value)
}

// ApplyCLIOverrides applies key=value overrides given with --config. Keys
// may carry an "ls." or "lazyselect." prefix.
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	data := map[string]any{}
	for _, override := range overrides {
		key, value, ok := strings.Cut(override, "=")
		if !ok {
			return fmt.Errorf("invalid override %q: expected key=value", override)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		for _, prefix := range []string{"lazyselect.", "ls."} {
			key = strings.TrimPrefix(key, prefix)
		}
		key = strings.ReplaceAll(key, "-", "_")
		if !knownKeys[key] {
			return fmt.Errorf("invalid override %q: unknown key %q", override, key)
		}
		data[key] = strings.TrimSpace(value)
	}
	applyData(c, data)
	return nil
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the application configuration. With an empty path the
// first config.{yaml,yml,toml,json} found in the lazyselect config directory
// is used; no file at all yields the defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	var paths []string
	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	} else {
		base := filepath.Join(getConfigDir(), "lazyselect")
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(base, "config"+ext))
		}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if configPath != "" {
				return DefaultConfig(), fmt.Errorf("config file %s does not exist", path)
			}
			continue
		}

		raw, err := decodeFile(path)
		if err != nil {
			return DefaultConfig(), err
		}
		data, ok := raw.(map[string]any)
		if !ok {
			return DefaultConfig(), fmt.Errorf("config file %s: expected a mapping at the top level", path)
		}

		cfg := parseConfig(data)
		if cfg.ItemsFile != "" {
			if cfg.ItemsFile, err = resolveRelative(path, cfg.ItemsFile); err != nil {
				return DefaultConfig(), err
			}
		}
		return cfg, nil
	}

	return DefaultConfig(), nil
}

// LoadItemsFile reads items from a YAML, TOML or JSON file. The file holds
// either a list of items or a mapping with an "items" key.
func LoadItemsFile(path string) ([]any, map[*picker.Object]string, error) {
	raw, err := decodeFile(path)
	if err != nil {
		return nil, nil, err
	}

	switch v := raw.(type) {
	case []any:
		items, commands := parseItems(v)
		return items, commands, nil
	case map[string]any:
		list, ok := v["items"]
		if !ok {
			return nil, nil, fmt.Errorf("items file %s: missing items key", path)
		}
		items, commands := parseItems(list)
		return items, commands, nil
	case nil:
		return []any{}, map[*picker.Object]string{}, nil
	}
	return nil, nil, fmt.Errorf("items file %s: expected a list or a mapping", path)
}

func decodeFile(path string) (any, error) {
	// #nosec G304 -- the path is chosen by the user running the command
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var out any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var table map[string]any
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		out = table
	case ".json":
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return normalizeScalar(out), nil
}

func resolveRelative(configPath, target string) (string, error) {
	expanded, err := ExpandPath(target)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return expanded, nil
	}
	return filepath.Join(filepath.Dir(configPath), expanded), nil
}

// ExpandPath expands a leading ~ and environment variables in path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/chmouel/lazyselect/internal/config"
	"github.com/chmouel/lazyselect/internal/log"
	"github.com/chmouel/lazyselect/internal/picker"
	"github.com/chmouel/lazyselect/internal/theme"
	urfavecli "github.com/urfave/cli/v2"
	"golang.org/x/term"
)

var (
	stdinReader     io.Reader = os.Stdin
	stdinIsTerminal           = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) } //nolint:gosec
	detectTheme               = theme.Detect
	runItemCommand            = func(command string) ([]byte, error) {
		return exec.Command("sh", "-c", command).CombinedOutput() //nolint:gosec
	}
)

// loadCLIConfig builds the configuration from the config file, the command
// line flags and the --config overrides, in that order of precedence. items
// replace any configured items; without them items come from the items file
// or from stdin when it is not a terminal.
func loadCLIConfig(c *urfavecli.Context, items []string) (*config.AppConfig, error) {
	setupDebugLog(c.String("debug-log"))

	cfg, err := config.LoadConfig(c.String("config-file"))
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if c.String("debug-log") == "" {
		if cfg.DebugLog != "" {
			setupDebugLog(cfg.DebugLog)
		} else {
			// No debug log configured, discard any buffered logs
			_ = log.SetFile("")
		}
	}

	if err := applyFlags(c, cfg); err != nil {
		return nil, err
	}
	if overrides := c.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}
	if values := c.StringSlice("value"); len(values) > 0 {
		cfg.HasValue = true
		if cfg.Multiple {
			list := make([]any, 0, len(values))
			for _, v := range values {
				list = append(list, v)
			}
			cfg.Value = list
		} else {
			cfg.Value = values[len(values)-1]
		}
	}

	switch {
	case len(items) > 0:
		cfg.Items = stringItems(items)
	case cfg.ItemsFile != "":
		loaded, commands, err := config.LoadItemsFile(cfg.ItemsFile)
		if err != nil {
			return nil, err
		}
		cfg.Items = loaded
		for obj, command := range commands {
			cfg.ItemCommands[obj] = command
		}
	case len(cfg.Items) == 0 && !stdinIsTerminal():
		lines, err := readLines(stdinReader)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		cfg.Items = stringItems(lines)
	}

	bindItemCommands(cfg.ItemCommands)
	log.Printf("loaded %d item(s)", len(cfg.Items))
	return cfg, nil
}

func setupDebugLog(path string) {
	if path == "" {
		return
	}
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}

func applyFlags(c *urfavecli.Context, cfg *config.AppConfig) error {
	bools := map[string]*bool{
		"multiple":      &cfg.Multiple,
		"autocomplete":  &cfg.Autocomplete,
		"segmented":     &cfg.Segmented,
		"return-object": &cfg.ReturnObject,
		"watch":         &cfg.Watch,
		"icons":         &cfg.Icons,
	}
	for name, target := range bools {
		if c.IsSet(name) {
			*target = c.Bool(name)
		}
	}

	strs := map[string]*string{
		"filter-mode": &cfg.FilterMode,
		"title":       &cfg.Title,
		"placeholder": &cfg.Placeholder,
		"output":      &cfg.Output,
		"selection":   &cfg.Selection,
	}
	for name, target := range strs {
		if c.IsSet(name) {
			*target = c.String(name)
		}
	}
	cfg.Output = strings.ToLower(cfg.Output)

	if itemsFile := c.String("items-file"); itemsFile != "" {
		expanded, err := config.ExpandPath(itemsFile)
		if err != nil {
			return fmt.Errorf("error expanding items-file: %w", err)
		}
		cfg.ItemsFile = expanded
	}
	for _, rule := range c.StringSlice("rule") {
		cfg.Rules = append(cfg.Rules, config.ParseRuleFlag(rule))
	}
	return nil
}

// applyThemeConfig resolves the theme from the flag, the config, or the
// terminal background, in that order.
func applyThemeConfig(cfg *config.AppConfig, themeName string) error {
	if themeName != "" {
		normalized := theme.NormalizeName(themeName)
		if normalized == "" {
			return fmt.Errorf("unknown theme %q", themeName)
		}
		cfg.Theme = normalized
		return nil
	}

	if cfg.Theme != "" {
		if normalized := theme.NormalizeName(cfg.Theme); normalized != "" {
			cfg.Theme = normalized
			return nil
		}
		log.Warnf("unknown theme %q in config, detecting from terminal", cfg.Theme)
	}
	cfg.Theme = detectTheme()
	return nil
}

// bindItemCommands turns the command of each configured object into the
// callback run when its segmented button is pressed.
func bindItemCommands(commands map[*picker.Object]string) {
	for obj, command := range commands {
		if obj.Callback != nil || strings.TrimSpace(command) == "" {
			continue
		}
		obj.Callback = commandCallback(obj.Text, command)
	}
}

func commandCallback(text, command string) func() {
	return func() {
		out, err := runItemCommand(command)
		if trimmed := strings.TrimSpace(string(out)); trimmed != "" {
			log.Printf("%s: %s", text, trimmed)
		}
		if err != nil {
			log.Warnf("%s: command %q failed: %v", text, command, err)
		}
	}
}

// itemsLoader re-reads the items file for the watcher.
func itemsLoader(cfg *config.AppConfig) func() ([]any, error) {
	if cfg.ItemsFile == "" {
		return nil
	}
	path := cfg.ItemsFile
	return func() ([]any, error) {
		items, commands, err := config.LoadItemsFile(path)
		if err != nil {
			return nil, err
		}
		bindItemCommands(commands)
		return items, nil
	}
}

func stringItems(values []string) []any {
	items := make([]any, 0, len(values))
	for _, v := range values {
		items = append(items, v)
	}
	return items
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

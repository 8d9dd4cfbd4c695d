// Package main provides CLI command definitions for lazyselect.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chmouel/lazyselect/internal/config"
	"github.com/chmouel/lazyselect/internal/output"
	"github.com/chmouel/lazyselect/internal/picker"
	"github.com/chmouel/lazyselect/internal/theme"
	urfavecli "github.com/urfave/cli/v2"
)

// headless hosts a picker outside the TUI.
type headless struct{}

func (headless) Invalidate() {}

func newHeadlessPicker(cfg *config.AppConfig) (*picker.Picker, error) {
	opts, err := cfg.PickerOptions()
	if err != nil {
		return nil, err
	}
	opts.Host = headless{}
	return picker.New(opts), nil
}

// filterCommand returns the filter subcommand definition.
func filterCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "filter",
		Usage:     "Print the items matching a query without starting the UI",
		ArgsUsage: "<query> [items...]",
		Action:    handleFilterAction,
	}
}

func handleFilterAction(c *urfavecli.Context) error {
	defer closeLog(c)

	if c.NArg() == 0 {
		return errors.New("usage: lazyselect filter <query> [items...]")
	}
	cfg, err := loadCLIConfig(c, c.Args().Tail())
	if err != nil {
		return err
	}
	if err := output.ValidateFormat(cfg.Output); err != nil {
		return err
	}

	// filtering only applies while autocomplete is on
	cfg.Autocomplete = true
	p, err := newHeadlessPicker(cfg)
	if err != nil {
		return err
	}
	p.SetSearchValue(c.Args().First())
	p.Flush()

	return output.Write(c.App.Writer, cfg.Output, output.Records(p.FilteredEntries()), true)
}

// validateCommand returns the validate subcommand definition.
func validateCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "validate",
		Usage:     "Check values against the configured rules",
		ArgsUsage: "[values...]",
		Action:    handleValidateAction,
	}
}

func handleValidateAction(c *urfavecli.Context) error {
	defer closeLog(c)

	cfg, err := loadCLIConfig(c, nil)
	if err != nil {
		return err
	}
	p, err := newHeadlessPicker(cfg)
	if err != nil {
		return err
	}

	if c.NArg() > 0 {
		var value any
		if cfg.Multiple {
			value = config.ResolveValue(cfg.Items, stringItems(c.Args().Slice()), cfg.ReturnObject)
		} else {
			value = config.ResolveValue(cfg.Items, c.Args().First(), cfg.ReturnObject)
		}
		p.SetInputValue(value)
	}

	// rules run on the tick after blur
	p.Focus()
	p.Blur()
	p.Flush()

	// main prints the returned error, so the messages are not written here
	if p.HasError() {
		return fmt.Errorf("validation failed: %s", strings.Join(p.ErrorMessages(), "; "))
	}
	fmt.Fprintln(c.App.Writer, "ok")
	return nil
}

// themesCommand returns the themes subcommand definition.
func themesCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "themes",
		Usage: "List available themes",
		Action: func(c *urfavecli.Context) error {
			for _, name := range theme.AvailableThemes() {
				fmt.Fprintln(c.App.Writer, name)
			}
			return nil
		},
	}
}

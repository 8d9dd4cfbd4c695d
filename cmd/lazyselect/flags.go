// Package main provides CLI flag definitions for lazyselect.
package main

import (
	"fmt"

	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.BoolFlag{
			Name:    "multiple",
			Aliases: []string{"m"},
			Usage:   "Allow selecting more than one item",
		},
		&urfavecli.BoolFlag{
			Name:    "autocomplete",
			Aliases: []string{"a"},
			Usage:   "Filter items while typing",
		},
		&urfavecli.BoolFlag{
			Name:  "segmented",
			Usage: "Show the selection as action buttons",
		},
		&urfavecli.BoolFlag{
			Name:  "return-object",
			Usage: "Keep whole items in the selection instead of their values",
		},
		&urfavecli.StringFlag{
			Name:  "filter-mode",
			Usage: "How typed text matches items: exact, contains, fuzzy or glob",
		},
		&urfavecli.StringSliceFlag{
			Name:  "rule",
			Usage: "Validation rule (repeatable): required, min=N, max=N, pattern=RE, glob=PATTERN",
		},
		&urfavecli.StringSliceFlag{
			Name:  "value",
			Usage: "Initial selection (repeatable in multiple mode)",
		},
		&urfavecli.StringFlag{
			Name:  "title",
			Usage: "Title shown above the items",
		},
		&urfavecli.StringFlag{
			Name:  "selection",
			Usage: "Segmented button label, with {text} and {value} placeholders",
		},
		&urfavecli.StringFlag{
			Name:  "placeholder",
			Usage: "Placeholder of the filter input",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Result format: plain, json, yaml or table",
		},
		&urfavecli.StringFlag{
			Name:    "items-file",
			Aliases: []string{"f"},
			Usage:   "Read items from a YAML, TOML or JSON file",
		},
		&urfavecli.BoolFlag{
			Name:  "watch",
			Usage: "Reload the items file when it changes",
		},
		&urfavecli.BoolFlag{
			Name:  "icons",
			Usage: "Show file icons for items that look like paths",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=ls.key=value",
		},
	}
}

// completeGlobalFlags provides basic completion for global flags.
func completeGlobalFlags(c *urfavecli.Context) {
	if c.NArg() == 0 {
		for _, cmd := range c.App.Commands {
			fmt.Fprintln(c.App.Writer, cmd.Name)
		}
	}
}

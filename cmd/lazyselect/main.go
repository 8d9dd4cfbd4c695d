// Package main is the entry point for the lazyselect application.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazyselect/internal/app"
	"github.com/chmouel/lazyselect/internal/buildinfo"
	"github.com/chmouel/lazyselect/internal/log"
	"github.com/chmouel/lazyselect/internal/output"
	urfavecli "github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// exitCancelled is the status used when the selection is dismissed.
const exitCancelled = 130

var errCancelled = errors.New("selection cancelled")

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()
	urfavecli.VersionPrinter = printVersion

	if err := newApp().Run(os.Args); err != nil {
		if errors.Is(err, errCancelled) {
			os.Exit(exitCancelled)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newApp() *urfavecli.App {
	return &urfavecli.App{
		Name:                      "lazyselect",
		Usage:                     "Pick items from a list in the terminal",
		ArgsUsage:                 "[items...]",
		Version:                   buildinfo.Version(),
		EnableBashCompletion:      true,
		DisableSliceFlagSeparator: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			filterCommand(),
			validateCommand(),
			themesCommand(),
		},

		Action: runTUI,

		BashComplete: completeGlobalFlags,
	}
}

// runTUI is the default action that launches the TUI when no subcommand is given.
func runTUI(c *urfavecli.Context) error {
	defer closeLog(c)

	cfg, err := loadCLIConfig(c, c.Args().Slice())
	if err != nil {
		return err
	}
	if err := output.ValidateFormat(cfg.Output); err != nil {
		return err
	}
	if err := applyThemeConfig(cfg, c.String("theme")); err != nil {
		return err
	}
	opts, err := cfg.PickerOptions()
	if err != nil {
		return err
	}

	model := app.NewModel(app.Options{
		Config:    cfg,
		Picker:    opts,
		LoadItems: itemsLoader(cfg),
	})
	// stdout only carries the result so it can be piped
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}

	printDiagnostics(c)

	res := model.Result()
	if !res.Submitted {
		return errCancelled
	}
	return output.Write(c.App.Writer, cfg.Output, output.Records(res.Selected), cfg.Multiple)
}

func printDiagnostics(c *urfavecli.Context) {
	for _, msg := range log.Recent() {
		fmt.Fprintf(c.App.ErrWriter, "warning: %s\n", msg)
	}
}

func closeLog(c *urfavecli.Context) {
	if err := log.Close(); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "Error closing debug log: %v\n", err)
	}
}

// printVersion prints version information.
func printVersion(c *urfavecli.Context) {
	fmt.Fprint(c.App.Writer, buildinfo.Summary(c.App.Name))
}

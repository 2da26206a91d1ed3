// Package cli implements the consolekit command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/consolekit/internal/app"
)

// appName is used for display and default file names.
const appName = "consolekit"

// Version is set at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

// ErrNotTerminal is returned by run when stdin or stdout is redirected.
var ErrNotTerminal = errors.New("run needs an interactive terminal")

// CLI holds shared state for all commands.
type CLI struct {
	Out    io.Writer
	Logger *log.Logger

	// isTerminal and runApp are replaced in tests.
	isTerminal func() bool
	runApp     func(ctx context.Context, opts app.Options) error
}

// New creates a CLI writing command output to out and logs to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{
		Out: out,
		Logger: log.NewWithOptions(errOut, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Level:           log.InfoLevel,
		}),
		isTerminal: stdioIsTerminal,
		runApp:     runSession,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "consolekit maps a character-cell console onto a host window",
		Long:         `consolekit renders a fixed-size character console onto a resizable host surface using a selectable resize policy, and shows a movable window over a larger backing grid.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.SetOut(c.Out)
	root.SetVersionTemplate(versionLine())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.versionCommand())

	return root
}

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runSession(ctx context.Context, opts app.Options) error {
	a, err := app.New(opts)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

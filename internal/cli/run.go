package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/consolekit/internal/app"
)

// runCommand starts the interactive session.
func (c *CLI) runCommand() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive console session",
		Long: `Start an interactive console session in the terminal.

Each terminal cell is one physical pixel. Arrow keys pan the camera over the
world grid, p cycles the resize policy and q quits. The session logs to a
file because the terminal owns the screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.isTerminal() {
				return ErrNotTerminal
			}
			c.Logger.Debug("starting session", "config", opts.ConfigPath, "policy", opts.Policy)
			return c.runApp(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "configuration file (.toml, .yaml)")
	cmd.Flags().StringVarP(&opts.Policy, "policy", "p", "", "resize policy: none, center, scale, fit, stretch")
	cmd.Flags().StringVarP(&opts.ScriptPath, "script", "s", "", "Lua scene script")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "log file (default: "+app.DefaultLogFile()+")")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

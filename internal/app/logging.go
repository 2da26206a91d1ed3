package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/dshills/consolekit/internal/config"
)

// DefaultLogFile is where the interactive session logs when no file is
// configured. The terminal owns stdout and stderr while it runs.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "consolekit.log")
}

// NewLogger builds the application logger writing to out.
func NewLogger(out io.Writer, settings config.LoggingSettings) (*log.Logger, error) {
	level := log.InfoLevel
	if settings.Level != "" {
		var err error
		if level, err = log.ParseLevel(settings.Level); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}

	timeFormat := settings.TimeFormat
	if timeFormat == "" {
		timeFormat = config.Default().Logging.TimeFormat
	}

	return log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "consolekit",
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
	}), nil
}

// openLogFile opens path for appending, creating it if needed.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		path = DefaultLogFile()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// component returns a sub-logger tagged with a component name.
func component(logger *log.Logger, name string) *log.Logger {
	return logger.With("component", name)
}

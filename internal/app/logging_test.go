package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dshills/consolekit/internal/config"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"", log.InfoLevel},
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := NewLogger(&bytes.Buffer{}, config.LoggingSettings{Level: tt.level})
			if err != nil {
				t.Fatalf("NewLogger failed: %v", err)
			}
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("expected level %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	if _, err := NewLogger(&bytes.Buffer{}, config.LoggingSettings{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, config.LoggingSettings{Level: "info"})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	component(logger, "renderer").Info("frame", "n", 3)
	logger.Debug("hidden")

	out := buf.String()
	for _, want := range []string{"consolekit", "frame", "component=renderer", "n=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug message filtered, got %q", out)
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	f, err := openLogFile(path)
	if err != nil {
		t.Fatalf("openLogFile failed: %v", err)
	}
	if _, err := f.WriteString("line\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "line\n" {
		t.Errorf("expected appended line, got %q", data)
	}

	if _, err := openLogFile(filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDefaultLogFile(t *testing.T) {
	if got := filepath.Base(DefaultLogFile()); got != "consolekit.log" {
		t.Errorf("expected consolekit.log, got %s", got)
	}
}

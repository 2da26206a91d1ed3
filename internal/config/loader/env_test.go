package loader

import (
	"reflect"
	"testing"
)

func newTestEnvLoader(env ...string) *EnvLoader {
	l := NewEnvLoader(DefaultPrefix)
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := newTestEnvLoader(
		"CONSOLEKIT_RENDER_CELL_WIDTH=8",
		"CONSOLEKIT_POLICY=center",
		"CONSOLEKIT_LOG_LEVEL=debug",
		"CONSOLEKIT_VIEW_TINT_STRENGTH=0.5",
		"CONSOLEKIT_CONFIG=/etc/x.toml",
		"HOME=/root",
	)

	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"render":  map[string]any{"cell_width": int64(8), "policy": "center"},
		"logging": map[string]any{"level": "debug"},
		"view":    map[string]any{"tint_strength": 0.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := newTestEnvLoader("CONSOLEKIT_FPS=30")
	l.AddMapping("CONSOLEKIT_FPS", "render.max_fps")

	got, _ := l.Load()
	render, ok := got["render"].(map[string]any)
	if !ok || render["max_fps"] != int64(30) {
		t.Errorf("expected render.max_fps = 30, got %v", got)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"42", int64(42)},
		{"1", int64(1)},
		{"0.75", 0.75},
		{"true", true},
		{"Off", false},
		{"#ff0000", "#ff0000"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}

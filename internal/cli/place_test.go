package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/consolekit/internal/renderer/core"
)

func TestPlaceFitJSON(t *testing.T) {
	c, out := newTestCLI()
	err := execute(c, "place", "--logical", "80x25", "--cell", "8x16", "--physical", "1280x600", "--policy", "fit", "--json")
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}

	doc := out.String()
	if !gjson.Valid(doc) {
		t.Fatalf("expected valid JSON, got %q", doc)
	}

	ints := []struct {
		path string
		want int64
	}{
		{"logical.width", 80},
		{"cell.height", 16},
		{"output.width", 640},
		{"output.height", 400},
		{"placement.x", 160},
		{"placement.y", 0},
		{"placement.width", 960},
		{"placement.height", 600},
		{"multiple", 0},
	}
	for _, tt := range ints {
		if got := gjson.Get(doc, tt.path).Int(); got != tt.want {
			t.Errorf("expected %s = %d, got %d", tt.path, tt.want, got)
		}
	}

	if got := gjson.Get(doc, "policy").String(); got != "fit" {
		t.Errorf("expected policy fit, got %s", got)
	}
	if got := gjson.Get(doc, "scale.x").Float(); math.Abs(got-640.0/960.0) > 1e-9 {
		t.Errorf("expected scale.x 0.6667, got %v", got)
	}
	if gjson.Get(doc, "degenerate").Bool() {
		t.Error("expected non-degenerate placement")
	}
	if gjson.Get(doc, "pointer").Exists() {
		t.Error("expected no pointer without --pointer")
	}
}

func TestPlacePointerJSON(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		hit     bool
		wantHit core.Point
	}{
		{
			name:    "inside integer scaled console",
			args:    []string{"--logical", "80x25", "--cell", "8x16", "--physical", "1280x800", "--policy", "scale", "--pointer", "100,50"},
			hit:     true,
			wantHit: core.NewPoint(6, 1),
		},
		{
			name: "in the letterbox",
			args: []string{"--logical", "80x25", "--cell", "8x16", "--physical", "1000x600", "--policy", "center", "--pointer", "0,0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestCLI()
			args := append([]string{"place", "--json"}, tt.args...)
			if err := execute(c, args...); err != nil {
				t.Fatalf("place failed: %v", err)
			}
			doc := out.String()

			cell := gjson.Get(doc, "pointer.cell")
			if !cell.Exists() {
				t.Fatalf("expected pointer.cell in %q", doc)
			}
			if !tt.hit {
				if cell.Type != gjson.Null {
					t.Errorf("expected null cell, got %s", cell.Raw)
				}
				return
			}
			got := core.NewPoint(int(cell.Get("x").Int()), int(cell.Get("y").Int()))
			if got != tt.wantHit {
				t.Errorf("expected cell %v, got %v", tt.wantHit, got)
			}
		})
	}
}

func TestPlaceText(t *testing.T) {
	c, out := newTestCLI()
	err := execute(c, "place", "--logical", "80x25", "--cell", "8x16", "--physical", "1280x600", "--policy", "fit", "--pointer", "644,304")
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}
	for _, want := range []string{"Placement", "fit", "640x400", "(160,0 960x600)", "cell (40,12)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected report to contain %q, got %q", want, out.String())
		}
	}
}

func TestPlaceDegenerate(t *testing.T) {
	c, out := newTestCLI()
	if err := execute(c, "place", "--physical", "0x600"); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if !strings.Contains(out.String(), "degenerate") {
		t.Errorf("expected degenerate warning, got %q", out.String())
	}

	c, out = newTestCLI()
	if err := execute(c, "place", "--physical", "0x600", "--json"); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if !gjson.Get(out.String(), "degenerate").Bool() {
		t.Errorf("expected degenerate true, got %q", out.String())
	}
}

func TestPlaceErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown policy", []string{"--policy", "zoom"}},
		{"bad size", []string{"--logical", "80by25"}},
		{"bad width", []string{"--physical", "ax25"}},
		{"bad pointer", []string{"--pointer", "10"}},
		{"bad pointer number", []string{"--pointer", "1,b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI()
			if err := execute(c, append([]string{"place"}, tt.args...)...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want core.Size
	}{
		{"80x25", core.NewSize(80, 25)},
		{" 640X400 ", core.NewSize(640, 400)},
		{"0x-1", core.NewSize(0, -1)},
	}
	for _, tt := range tests {
		got, err := parseSize("test", tt.in)
		if err != nil {
			t.Errorf("parseSize(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("expected %v, got %v", tt.want, got)
		}
	}
}

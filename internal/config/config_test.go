package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Business.HourlyRate != 24 || cfg.Business.OverheadMultiplier != 1.0 {
		t.Fatalf("business defaults = %+v", cfg.Business)
	}
	if cfg.Business.FileMarker != "processing weights" {
		t.Fatalf("file marker = %q", cfg.Business.FileMarker)
	}
	r := cfg.Rates()
	if r.HourlyRate != 24 || r.OverheadMultiplier != 1.0 {
		t.Fatalf("rates = %+v", r)
	}
}

func TestIsPortSpecifiedInToml(t *testing.T) {
	t.Parallel()

	if !isPortSpecifiedInToml([]byte("[server]\nport = 9000\n")) {
		t.Fatalf("port not detected")
	}
	if isPortSpecifiedInToml([]byte("[server]\ndev_mode = true\n")) {
		t.Fatalf("port detected where none set")
	}
	if isPortSpecifiedInToml([]byte("not toml at all {")) {
		t.Fatalf("port detected in invalid toml")
	}
}

func TestLayout_Override(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	layout, err := cfg.Layout()
	if err != nil {
		t.Fatalf("default layout: %v", err)
	}
	if len(layout.Machines) != 9 {
		t.Fatalf("default machines = %d, want 9", len(layout.Machines))
	}

	path := filepath.Join(t.TempDir(), "layout.toml")
	override := `
[[machines]]
name = "BALER 1"
start_row = 2
end_row = 5
`
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	cfg.Data.LayoutPath = path

	layout, err = cfg.Layout()
	if err != nil {
		t.Fatalf("override layout: %v", err)
	}
	if len(layout.Machines) != 1 || layout.Machines[0].Name != "BALER 1" {
		t.Fatalf("machines = %+v", layout.Machines)
	}
	// Column roles keep their defaults when the override omits them.
	if layout.Daily.InputItem != 3 || layout.WeeklySheet != "Weekly Report" {
		t.Fatalf("defaults lost: %+v", layout)
	}
}

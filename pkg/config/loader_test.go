package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SymbolsPerSlot != 14 {
		t.Errorf("expected 14 symbols per slot, got %d", cfg.SymbolsPerSlot)
	}
	if cfg.SlotDurationUs != 500 {
		t.Errorf("expected 500us slot duration, got %d", cfg.SlotDurationUs)
	}
	if cfg.NumCells != 24 {
		t.Errorf("expected 24 cells, got %d", cfg.NumCells)
	}
	if cfg.NumLinks != 3 {
		t.Errorf("expected 3 links, got %d", cfg.NumLinks)
	}
	if !cfg.SyntheticFallback {
		t.Errorf("expected synthetic fallback enabled by default")
	}
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestConfigDerivedTimings(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.SlotDurationSeconds(); got != 0.0005 {
		t.Errorf("expected 0.0005s slot duration, got %f", got)
	}
}

func TestParseYAMLOverridesDefaults(t *testing.T) {
	cfg, err := ParseYAMLString(`
log_level: debug
num_cells: 6
num_links: 2
synthetic_fallback: false
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.NumCells != 6 {
		t.Errorf("expected 6 cells, got %d", cfg.NumCells)
	}
	if cfg.NumLinks != 2 {
		t.Errorf("expected 2 links, got %d", cfg.NumLinks)
	}
	if cfg.SyntheticFallback {
		t.Errorf("expected synthetic fallback disabled")
	}
	// Omitted fields keep defaults
	if cfg.SymbolsPerSlot != 14 {
		t.Errorf("expected default symbols per slot, got %d", cfg.SymbolsPerSlot)
	}
}

func TestParseYAMLValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad log level", "log_level: verbose"},
		{"zero cells", "num_cells: 0"},
		{"more links than cells", "num_cells: 2\nnum_links: 5"},
		{"negative loss budget", "loss_budget_percent: -1"},
		{"bad buffer factor", "buffer_factor: 1.5"},
		{"zero window", "correlation_window_slots: 0"},
		{"zero step", "aggregation_step_slots: 0"},
		{"not yaml", ": ["},
	}

	for _, tt := range tests {
		if _, err := ParseYAMLString(tt.yaml); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("num_links: 2\nnum_cells: 8\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NumLinks != 2 || cfg.NumCells != 8 {
		t.Errorf("expected 2 links / 8 cells, got %d / %d", cfg.NumLinks, cfg.NumCells)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.ThroughputDir = filepath.Join(dir, "data", "throughput")
	cfg.PacketStatsDir = filepath.Join(dir, "data", "packet_stats")
	cfg.OutputDir = filepath.Join(dir, "output")

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range []string{cfg.ThroughputDir, cfg.PacketStatsDir, cfg.OutputDir} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory %s to exist", d)
		}
	}
}

package config

import (
	"fmt"
	"os"
)

// Load loads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// EnsureDirs creates the data and output directories if they do not exist.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.ThroughputDir, c.PacketStatsDir, c.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// validateConfig performs validation on the configuration.
func validateConfig(cfg *Config) error {
	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if cfg.SymbolsPerSlot <= 0 {
		return fmt.Errorf("symbols_per_slot must be positive, got %d", cfg.SymbolsPerSlot)
	}
	if cfg.SlotDurationUs <= 0 {
		return fmt.Errorf("slot_duration_us must be positive, got %d", cfg.SlotDurationUs)
	}
	if cfg.NumCells <= 0 {
		return fmt.Errorf("num_cells must be positive, got %d", cfg.NumCells)
	}
	if cfg.NumLinks <= 0 {
		return fmt.Errorf("num_links must be positive, got %d", cfg.NumLinks)
	}
	if cfg.NumLinks > cfg.NumCells {
		return fmt.Errorf("num_links (%d) cannot exceed num_cells (%d)", cfg.NumLinks, cfg.NumCells)
	}

	// A loss budget >= 100% is handled by the estimator's degenerate-case
	// rule, but budgets below zero have no meaning.
	if cfg.LossBudgetPercent < 0 {
		return fmt.Errorf("loss_budget_percent cannot be negative, got %f", cfg.LossBudgetPercent)
	}
	if cfg.BufferFactor <= 0 || cfg.BufferFactor > 1 {
		return fmt.Errorf("buffer_factor must be in (0, 1], got %f", cfg.BufferFactor)
	}
	if cfg.BufferSymbols < 0 {
		return fmt.Errorf("buffer_symbols cannot be negative, got %d", cfg.BufferSymbols)
	}

	if cfg.CorrelationWindowSlots <= 0 {
		return fmt.Errorf("correlation_window_slots must be positive, got %d", cfg.CorrelationWindowSlots)
	}
	if cfg.AggregationStepSlots <= 0 {
		return fmt.Errorf("aggregation_step_slots must be positive, got %d", cfg.AggregationStepSlots)
	}
	if cfg.LoaderWorkers <= 0 {
		return fmt.Errorf("loader_workers must be positive, got %d", cfg.LoaderWorkers)
	}
	if cfg.SyntheticSlots <= 0 {
		return fmt.Errorf("synthetic_slots must be positive, got %d", cfg.SyntheticSlots)
	}

	return nil
}

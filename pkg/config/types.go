package config

// Config represents one analytics run configuration. Every pipeline
// component receives it at construction; nothing reads constants from
// package globals, so differently tuned runs can coexist in tests.
type Config struct {
	LogLevel string `yaml:"log_level"`

	// Data layout
	ThroughputDir  string `yaml:"throughput_dir"`
	PacketStatsDir string `yaml:"packet_stats_dir"`
	OutputDir      string `yaml:"output_dir"`

	// Time base (3GPP fronthaul numerology)
	SymbolsPerSlot int `yaml:"symbols_per_slot"`
	SlotDurationUs int `yaml:"slot_duration_us"`

	// Network shape
	NumCells int `yaml:"num_cells"`
	NumLinks int `yaml:"num_links"`

	// Capacity model
	LossBudgetPercent float64 `yaml:"loss_budget_percent"`
	BufferSymbols     int     `yaml:"buffer_symbols"`
	BufferDurationUs  int     `yaml:"buffer_duration_us"`
	BufferFactor      float64 `yaml:"buffer_factor"`

	// Pipeline tuning
	CorrelationWindowSlots int64 `yaml:"correlation_window_slots"`
	AggregationStepSlots   int64 `yaml:"aggregation_step_slots"`
	LoaderWorkers          int   `yaml:"loader_workers"`

	// SyntheticFallback substitutes generated data when both input
	// directories are empty. Demo convenience; disable in production so an
	// empty directory surfaces as a run failure instead.
	SyntheticFallback bool  `yaml:"synthetic_fallback"`
	SyntheticSeed     int64 `yaml:"synthetic_seed"`
	SyntheticSlots    int64 `yaml:"synthetic_slots"`
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:               "info",
		ThroughputDir:          "data/throughput",
		PacketStatsDir:         "data/packet_stats",
		OutputDir:              "output",
		SymbolsPerSlot:         14,
		SlotDurationUs:         500,
		NumCells:               24,
		NumLinks:               3,
		LossBudgetPercent:      1.0,
		BufferSymbols:          4,
		BufferDurationUs:       143,
		BufferFactor:           0.85,
		CorrelationWindowSlots: 120000,
		AggregationStepSlots:   2000,
		LoaderWorkers:          8,
		SyntheticFallback:      true,
		SyntheticSeed:          42,
		SyntheticSlots:         12000,
	}
}

// SlotDurationSeconds returns the slot duration in seconds, the denominator
// of the throughput conversion.
func (c *Config) SlotDurationSeconds() float64 {
	return float64(c.SlotDurationUs) / 1e6
}

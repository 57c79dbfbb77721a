// fhgen writes sample .dat measurement fixtures (one throughput and one
// packet-stats file per cell) for local development.
package main

import (
	"flag"
	"os"

	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/synthetic"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/logger"
)

func main() {
	var configPath string
	var seed int64
	var slots int64

	flag.StringVar(&configPath, "config", "", "path to YAML config (defaults apply when empty)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed override (0 keeps the configured seed)")
	flag.Int64Var(&slots, "slots", 0, "slots per fixture override (0 keeps the configured count)")
	flag.Parse()

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			logger.Error("failed to load config", "path", configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if seed != 0 {
		cfg.SyntheticSeed = seed
	}
	if slots != 0 {
		cfg.SyntheticSlots = slots
	}
	logger.SetDefault(logger.NewText(cfg.LogLevel, os.Stdout))

	if err := synthetic.NewGenerator(cfg).WriteFixtures(); err != nil {
		logger.Error("fixture generation failed", "error", err)
		os.Exit(1)
	}
	logger.Info("fixtures written",
		"cells", cfg.NumCells,
		"slots", cfg.SyntheticSlots,
		"throughput_dir", cfg.ThroughputDir,
		"packet_stats_dir", cfg.PacketStatsDir)
}

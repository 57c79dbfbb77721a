// Package synthetic fabricates per-cell telemetry for development fixtures
// and for the empty-input pipeline fallback. Generation is fully seeded:
// the same configuration always produces the same data set.
package synthetic

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/measurement"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/utils"
)

// Generator produces synthetic throughput and packet-loss series. Cells are
// wired round-robin onto links (cell % NumLinks) and cells on the same link
// share a loss baseline, so the clustering stage has real structure to
// recover.
type Generator struct {
	cfg *config.Config
	rng *utils.RandSource
}

// NewGenerator creates a Generator seeded from the configuration
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: utils.NewRandSource(cfg.SyntheticSeed),
	}
}

// Generate builds in-memory series for every known cell: one throughput
// series (Gbps) and one loss-rate series per cell.
func (g *Generator) Generate() (map[int]*measurement.Series, map[int]*measurement.Series) {
	numSlots := g.cfg.SyntheticSlots
	throughput := make(map[int]*measurement.Series, g.cfg.NumCells)
	packets := make(map[int]*measurement.Series, g.cfg.NumCells)

	for cid := 0; cid < g.cfg.NumCells; cid++ {
		linkID := cid % g.cfg.NumLinks

		base := 0.5 + float64(linkID)*0.3 + g.rng.Float64()*0.2
		thSamples := make([]measurement.Sample, numSlots)
		for slot := int64(0); slot < numSlots; slot++ {
			trend := 0.1*math.Sin(float64(slot)/500) + g.rng.NormFloat64(0, 0.05)
			thSamples[slot] = measurement.Sample{
				Slot:  slot,
				Value: utils.ClampFloat64(base+trend, 0.1, 2.0),
			}
		}
		throughput[cid] = measurement.NewSeries(measurement.SignalThroughput, thSamples)

		lossBase := 0.002 + float64(linkID)*0.001 + g.rng.Float64()*0.002
		psSamples := make([]measurement.Sample, numSlots)
		for slot := int64(0); slot < numSlots; slot++ {
			loss := utils.ClampFloat64(lossBase+g.rng.NormFloat64(0, 0.001), 0, 0.05)
			psSamples[slot] = measurement.Sample{Slot: slot, Value: loss}
		}
		packets[cid] = measurement.NewSeries(measurement.SignalPacketStats, psSamples)
	}

	return throughput, packets
}

// WriteFixtures writes one throughput and one packet-stats .dat file per
// cell into the configured data directories, tab-delimited, in the raw
// on-the-wire units (symbol ticks, bytes per symbol, packet counters).
func (g *Generator) WriteFixtures() error {
	if err := g.cfg.EnsureDirs(); err != nil {
		return err
	}
	norm := measurement.NewNormalizer(g.cfg)
	numSlots := g.cfg.SyntheticSlots

	for cid := 0; cid < g.cfg.NumCells; cid++ {
		linkID := cid % g.cfg.NumLinks

		thPath := filepath.Join(g.cfg.ThroughputDir, fmt.Sprintf("throughput_cell_%02d.dat", cid))
		base := 0.5 + float64(linkID)*0.3 + g.rng.Float64()*0.2
		err := writeRows(thPath, numSlots, func(slot int64) string {
			trend := 0.1*math.Sin(float64(slot)/500) + g.rng.NormFloat64(0, 0.05)
			gbps := utils.ClampFloat64(base+trend, 0.1, 2.0)
			// Invert the Gbps derivation back to bytes per symbol tick.
			bytesPerSymbol := gbps * 1e9 / 8 * norm.SlotTimeSeconds(1) / float64(g.cfg.SymbolsPerSlot)
			return fmt.Sprintf("%d\t%.2f", slot*int64(g.cfg.SymbolsPerSlot), bytesPerSymbol)
		})
		if err != nil {
			return err
		}

		psPath := filepath.Join(g.cfg.PacketStatsDir, fmt.Sprintf("packet_stats_cell_%02d.dat", cid))
		lossBase := 0.002 + float64(linkID)*0.001 + g.rng.Float64()*0.002
		err = writeRows(psPath, numSlots, func(slot int64) string {
			loss := utils.ClampFloat64(lossBase+g.rng.NormFloat64(0, 0.001), 0, 0.05)
			sent := g.rng.PoissonInt(1000)
			lost := int(loss * float64(sent))
			return fmt.Sprintf("%d\t%d\t%d", slot*int64(g.cfg.SymbolsPerSlot), sent, lost)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeRows(path string, numSlots int64, row func(slot int64) string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create fixture %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for slot := int64(0); slot < numSlots; slot++ {
		if _, err := fmt.Fprintln(w, row(slot)); err != nil {
			f.Close()
			return fmt.Errorf("failed to write fixture %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush fixture %s: %w", path, err)
	}
	return f.Close()
}

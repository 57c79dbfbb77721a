package synthetic

import (
	"context"
	"io"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/measurement"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/logger"
)

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SyntheticSlots = 200
	cfg.NumCells = 6
	return cfg
}

func TestGenerateCoversAllCells(t *testing.T) {
	cfg := smallConfig(t)
	throughput, packets := NewGenerator(cfg).Generate()

	if len(throughput) != cfg.NumCells || len(packets) != cfg.NumCells {
		t.Fatalf("expected %d cells, got %d throughput / %d packets",
			cfg.NumCells, len(throughput), len(packets))
	}
	for cid := 0; cid < cfg.NumCells; cid++ {
		if throughput[cid].Len() != int(cfg.SyntheticSlots) {
			t.Errorf("cell %d: expected %d throughput slots, got %d",
				cid, cfg.SyntheticSlots, throughput[cid].Len())
		}
		for _, v := range throughput[cid].Values() {
			if v < 0.1 || v > 2.0 {
				t.Fatalf("cell %d: throughput %f outside clamp range", cid, v)
			}
		}
		for _, v := range packets[cid].Values() {
			if v < 0 || v > 0.05 {
				t.Fatalf("cell %d: loss rate %f outside clamp range", cid, v)
			}
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	cfg := smallConfig(t)

	th1, ps1 := NewGenerator(cfg).Generate()
	th2, ps2 := NewGenerator(cfg).Generate()

	for cid := 0; cid < cfg.NumCells; cid++ {
		if !reflect.DeepEqual(th1[cid].Values(), th2[cid].Values()) {
			t.Fatalf("cell %d: throughput differs across equal seeds", cid)
		}
		if !reflect.DeepEqual(ps1[cid].Values(), ps2[cid].Values()) {
			t.Fatalf("cell %d: loss differs across equal seeds", cid)
		}
	}
}

func TestGenerateDiffersAcrossSeeds(t *testing.T) {
	cfg := smallConfig(t)
	th1, _ := NewGenerator(cfg).Generate()

	cfg2 := smallConfig(t)
	cfg2.SyntheticSeed = 7
	th2, _ := NewGenerator(cfg2).Generate()

	if reflect.DeepEqual(th1[0].Values(), th2[0].Values()) {
		t.Errorf("expected different data for different seeds")
	}
}

// Fixtures written to disk must round-trip through the measurement loader.
func TestWriteFixturesLoadable(t *testing.T) {
	cfg := smallConfig(t)
	dir := t.TempDir()
	cfg.ThroughputDir = filepath.Join(dir, "throughput")
	cfg.PacketStatsDir = filepath.Join(dir, "packet_stats")
	cfg.OutputDir = filepath.Join(dir, "output")

	if err := NewGenerator(cfg).WriteFixtures(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loader := measurement.NewLoader(cfg, logger.New("error", io.Discard))
	ctx := context.Background()

	throughput, thResults, err := loader.LoadDir(ctx, cfg.ThroughputDir, measurement.SignalThroughput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	packets, psResults, err := loader.LoadDir(ctx, cfg.PacketStatsDir, measurement.SignalPacketStats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(thResults) != cfg.NumCells || len(psResults) != cfg.NumCells {
		t.Fatalf("expected %d files per kind, got %d/%d", cfg.NumCells, len(thResults), len(psResults))
	}
	for _, r := range append(thResults, psResults...) {
		if r.Skipped {
			t.Errorf("fixture %s must parse, skipped: %s", r.File, r.Reason)
		}
	}
	if len(throughput) != cfg.NumCells || len(packets) != cfg.NumCells {
		t.Fatalf("expected %d cells per kind, got %d/%d", cfg.NumCells, len(throughput), len(packets))
	}

	// Raw fixture rows are bytes per symbol tick; loading converts back to
	// Gbps inside the generator's clamp range (2% slack for the %.2f
	// serialization of the raw values).
	for cid, s := range throughput {
		for _, v := range s.Values() {
			if v < 0.08 || v > 2.1 {
				t.Errorf("cell %d: loaded throughput %f outside expected range", cid, v)
			}
		}
	}
	for cid, s := range packets {
		for _, v := range s.Values() {
			if v < 0 || v > 0.06 {
				t.Errorf("cell %d: loaded loss rate %f outside expected range", cid, v)
			}
		}
	}
}

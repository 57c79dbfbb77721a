// Package pipeline orchestrates one full analytics run: load measurements,
// correlate packet loss, cluster cells into links, build the topology
// graph, aggregate traffic, and summarize congestion. A run is a one-shot
// batch computation producing a single immutable snapshot; nothing is
// shared across runs.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/correlation"
	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/measurement"
	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/synthetic"
	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/topology"
	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/traffic"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/logger"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/models"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/utils"
)

// ErrNoInput is returned when both input directories are empty and the
// synthetic fallback is disabled.
var ErrNoInput = errors.New("no measurement files found")

// Pipeline wires the analytics stages for one run configuration
type Pipeline struct {
	cfg        *config.Config
	log        *slog.Logger
	loader     *measurement.Loader
	engine     *correlation.Engine
	clusterer  *topology.Clusterer
	aggregator *traffic.Aggregator
}

// New creates a Pipeline. A nil partitioner selects the built-in
// average-linkage clustering.
func New(cfg *config.Config, part topology.Partitioner, log *slog.Logger) *Pipeline {
	if log == nil {
		log = logger.Default
	}
	return &Pipeline{
		cfg:        cfg,
		log:        log,
		loader:     measurement.NewLoader(cfg, log),
		engine:     correlation.NewEngine(cfg, log),
		clusterer:  topology.NewClusterer(cfg, part, log),
		aggregator: traffic.NewAggregator(cfg, log),
	}
}

// Run executes one full pipeline pass and returns the snapshot. The run
// never aborts because of a single bad file or missing signal; only
// directory-level failures, export failures, and cancellation surface as
// errors. The snapshot is also exported as JSON files to the output dir.
func (p *Pipeline) Run(ctx context.Context) (*models.Snapshot, error) {
	started := time.Now().UTC()
	runID := utils.GenerateRunID()
	p.log.Info("pipeline run starting", "run_id", runID)

	throughput, thResults, err := p.loader.LoadDir(ctx, p.cfg.ThroughputDir, measurement.SignalThroughput)
	if err != nil {
		return nil, err
	}
	packets, psResults, err := p.loader.LoadDir(ctx, p.cfg.PacketStatsDir, measurement.SignalPacketStats)
	if err != nil {
		return nil, err
	}

	source := models.DataSourceMeasured
	if len(throughput) == 0 && len(packets) == 0 {
		if !p.cfg.SyntheticFallback {
			return nil, ErrNoInput
		}
		p.log.Warn("no measurement files found, falling back to synthetic data",
			"throughput_dir", p.cfg.ThroughputDir, "packet_stats_dir", p.cfg.PacketStatsDir)
		throughput, packets = synthetic.NewGenerator(p.cfg).Generate()
		source = models.DataSourceSynthetic
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cellIDs := unionCellIDs(throughput, packets)
	if len(cellIDs) == 0 {
		cellIDs = make([]int, p.cfg.NumCells)
		for i := range cellIDs {
			cellIDs[i] = i
		}
	}

	corr := p.engine.Correlate(packets)
	cellToLink, err := p.clusterer.Assign(corr.Matrix, corr.CellIDs)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topo := topology.BuildGraph(cellToLink)
	samples := p.aggregator.Aggregate(throughput, cellToLink, nil, p.cfg.AggregationStepSlots)
	congestion := traffic.Summarize(throughput, cellToLink, cellIDs)
	linkPeaks := traffic.LinkPeaks(samples)

	snapshot := &models.Snapshot{
		RunID:          runID,
		StartedAt:      started,
		Duration:       time.Since(started),
		Source:         source,
		Topology:       topo,
		CellToLink:     cellToLink,
		Traffic:        samples,
		Congestion:     congestion,
		LinkCapacities: linkPeaks,
		CellIDs:        cellIDs,
	}

	if err := exportSnapshot(p.cfg.OutputDir, snapshot); err != nil {
		return nil, err
	}

	p.log.Info("pipeline run completed",
		"run_id", runID,
		"source", string(source),
		"cells", len(cellIDs),
		"throughput_files", len(thResults),
		"packet_files", len(psResults),
		"traffic_samples", len(samples),
		"duration", snapshot.Duration)
	return snapshot, nil
}

// unionCellIDs returns the sorted union of cell ids across both signal maps
func unionCellIDs(throughput, packets map[int]*measurement.Series) []int {
	seen := make(map[int]struct{}, len(throughput)+len(packets))
	for cid := range throughput {
		seen[cid] = struct{}{}
	}
	for cid := range packets {
		seen[cid] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for cid := range seen {
		out = append(out, cid)
	}
	sort.Ints(out)
	return out
}

// Package traffic sums per-cell throughput into per-link time series and
// derives per-cell congestion statistics.
package traffic

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/measurement"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/logger"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/models"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/utils"
)

// SlotRange restricts aggregation to an inclusive slot interval
type SlotRange struct {
	Min int64
	Max int64
}

// Aggregator sums per-cell throughput into per-link throughput over a
// down-sampled slot grid.
type Aggregator struct {
	cfg  *config.Config
	norm *measurement.Normalizer
	log  *slog.Logger
}

// NewAggregator creates an Aggregator for the run configuration
func NewAggregator(cfg *config.Config, log *slog.Logger) *Aggregator {
	if log == nil {
		log = logger.Default
	}
	return &Aggregator{
		cfg:  cfg,
		norm: measurement.NewNormalizer(cfg),
		log:  log,
	}
}

// LinkKey renders the exported per-link field name, e.g. link id 0 becomes
// "link_1_gbps".
func LinkKey(linkID int) string {
	return fmt.Sprintf("link_%d_gbps", linkID+1)
}

// Aggregate sums the throughput of every cell with an exact value at each
// sampled slot, grouped by the cell's link. Cells assigned to a link with
// no data at a sampled slot contribute zero. The output slots are strictly
// increasing; an empty input yields an empty sequence.
func (a *Aggregator) Aggregate(
	throughput map[int]*measurement.Series,
	cellToLink map[int]int,
	slotRange *SlotRange,
	step int64,
) []models.TrafficSample {
	if len(throughput) == 0 || len(cellToLink) == 0 {
		return []models.TrafficSample{}
	}
	if step < 1 {
		step = 1
	}

	// Union of observed slots, optionally restricted to the caller's range.
	slotSet := make(map[int64]struct{})
	for _, s := range throughput {
		for _, slot := range s.Slots() {
			if slotRange != nil && (slot < slotRange.Min || slot > slotRange.Max) {
				continue
			}
			slotSet[slot] = struct{}{}
		}
	}
	if len(slotSet) == 0 {
		return []models.TrafficSample{}
	}
	var slotMin, slotMax int64
	first := true
	for slot := range slotSet {
		if first {
			slotMin, slotMax = slot, slot
			first = false
			continue
		}
		if slot < slotMin {
			slotMin = slot
		}
		if slot > slotMax {
			slotMax = slot
		}
	}

	linkIDs := make(map[int]struct{})
	for _, lid := range cellToLink {
		linkIDs[lid] = struct{}{}
	}
	for cid := range throughput {
		if _, ok := cellToLink[cid]; !ok {
			// Cells absent from the assignment report under link 0.
			linkIDs[0] = struct{}{}
		}
	}

	cellIDs := make([]int, 0, len(throughput))
	for cid := range throughput {
		cellIDs = append(cellIDs, cid)
	}
	sort.Ints(cellIDs)

	samples := make([]models.TrafficSample, 0, (slotMax-slotMin)/step+1)
	for slot := slotMin; slot <= slotMax; slot += step {
		sums := make(map[int]float64, len(linkIDs))
		for lid := range linkIDs {
			sums[lid] = 0
		}
		for _, cid := range cellIDs {
			v, ok := throughput[cid].Value(slot)
			if !ok {
				continue
			}
			// Cells absent from the assignment fall back to link 0.
			sums[cellToLink[cid]] += v
		}

		links := make(map[string]float64, len(sums))
		for lid, gbps := range sums {
			links[LinkKey(lid)] = utils.Round(gbps, 4)
		}
		samples = append(samples, models.TrafficSample{
			Slot:    slot,
			TimeSec: utils.Round(a.norm.SlotTimeSeconds(slot), 3),
			Links:   links,
		})
	}

	a.log.Debug("aggregated traffic", "samples", len(samples),
		"slot_min", slotMin, "slot_max", slotMax, "step", step)
	return samples
}

// LinkPeaks returns the maximum observed Gbps per link key over the
// aggregated sequence.
func LinkPeaks(samples []models.TrafficSample) map[string]float64 {
	peaks := make(map[string]float64)
	for _, sample := range samples {
		for key, gbps := range sample.Links {
			if gbps > peaks[key] {
				peaks[key] = gbps
			}
		}
	}
	return peaks
}

package traffic

import (
	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/measurement"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/models"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/utils"
)

// Summarize computes per-cell congestion statistics (95th percentile and
// mean throughput) annotated with link membership. Every id in cellIDs
// receives an entry; cells without throughput data report zeros rather
// than being omitted.
func Summarize(
	throughput map[int]*measurement.Series,
	cellToLink map[int]int,
	cellIDs []int,
) map[int]models.CellCongestion {
	out := make(map[int]models.CellCongestion, len(cellIDs))
	for _, cid := range cellIDs {
		entry := models.CellCongestion{LinkID: cellToLink[cid]}
		if s, ok := throughput[cid]; ok && s.Len() > 0 {
			values := s.Values()
			entry.P95Gbps = utils.Round(utils.P95(values), 4)
			entry.MeanGbps = utils.Round(utils.Mean(values), 4)
		}
		out[cid] = entry
	}
	return out
}

// Package correlation aligns per-cell packet-loss series onto a shared slot
// window and computes the pairwise Pearson correlation matrix that drives
// topology inference: cells sharing a transport link see correlated loss.
package correlation

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/measurement"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/logger"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/utils"
)

// Result is a sanitized correlation matrix over the participating cells.
// Invariants: symmetric, unit diagonal, no NaN/Inf entries.
type Result struct {
	CellIDs []int
	Matrix  *mat.SymDense
}

// Engine computes pairwise loss correlation for one run configuration
type Engine struct {
	cfg *config.Config
	log *slog.Logger
}

// NewEngine creates a correlation engine
func NewEngine(cfg *config.Config, log *slog.Logger) *Engine {
	if log == nil {
		log = logger.Default
	}
	return &Engine{cfg: cfg, log: log}
}

// Correlate builds the pairwise correlation matrix of the given loss-rate
// series. Fewer than 2 cells with loss data carries no correlation signal;
// that degenerate case yields an identity matrix over the full known cell
// count rather than a failure.
func (e *Engine) Correlate(loss map[int]*measurement.Series) *Result {
	cellIDs := make([]int, 0, len(loss))
	for cid := range loss {
		cellIDs = append(cellIDs, cid)
	}
	sort.Ints(cellIDs)

	if len(cellIDs) < 2 {
		return identityResult(e.cfg.NumCells)
	}

	// Common slot window: start at the latest per-cell minimum, end at the
	// earliest per-cell maximum, capped to bound memory.
	slotMin := loss[cellIDs[0]].MinSlot()
	slotMax := loss[cellIDs[0]].MaxSlot()
	for _, cid := range cellIDs[1:] {
		s := loss[cid]
		if s.MinSlot() > slotMin {
			slotMin = s.MinSlot()
		}
		if s.MaxSlot() < slotMax {
			slotMax = s.MaxSlot()
		}
	}
	slotEnd := slotMin + e.cfg.CorrelationWindowSlots - 1
	if slotMax < slotEnd {
		slotEnd = slotMax
	}
	numSlots := int(slotEnd - slotMin + 1)
	if numSlots <= 0 {
		// Disjoint slot ranges: no overlapping observations to correlate.
		e.log.Warn("loss series share no common slot range, using identity correlation",
			"cells", len(cellIDs))
		return identityResult(e.cfg.NumCells)
	}

	// Reindex every series onto the exact window grid, zero-filling gaps.
	// Rows are slots, columns are cells, the layout stat.CorrelationMatrix
	// expects.
	samples := mat.NewDense(numSlots, len(cellIDs), nil)
	for j, cid := range cellIDs {
		s := loss[cid]
		for i := 0; i < numSlots; i++ {
			samples.Set(i, j, utils.SanitizeFloat64(s.ValueOrZero(slotMin+int64(i))))
		}
	}

	corr := mat.NewSymDense(len(cellIDs), nil)
	stat.CorrelationMatrix(corr, samples, nil)
	sanitizeMatrix(corr)

	e.log.Debug("computed loss correlation",
		"cells", len(cellIDs), "window_slots", numSlots, "slot_min", slotMin)
	return &Result{CellIDs: cellIDs, Matrix: corr}
}

// identityResult returns the no-signal fallback: every cell correlates only
// with itself.
func identityResult(numCells int) *Result {
	cellIDs := make([]int, numCells)
	eye := mat.NewSymDense(numCells, nil)
	for i := 0; i < numCells; i++ {
		cellIDs[i] = i
		eye.SetSym(i, i, 1)
	}
	return &Result{CellIDs: cellIDs, Matrix: eye}
}

// sanitizeMatrix replaces NaN/Inf entries (constant-zero series have zero
// variance) with zero and forces the diagonal to 1.
func sanitizeMatrix(m *mat.SymDense) {
	n := m.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			m.SetSym(i, j, utils.SanitizeFloat64(m.At(i, j)))
		}
		m.SetSym(i, i, 1)
	}
}

package measurement

import (
	"math"

	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
)

// Normalizer converts the raw per-row time axis (symbol ticks) into the
// pipeline's common slot index and derives the per-slot quantities used by
// every downstream component.
type Normalizer struct {
	symbolsPerSlot  int64
	slotDurationSec float64
}

// NewNormalizer creates a Normalizer from the run configuration
func NewNormalizer(cfg *config.Config) *Normalizer {
	return &Normalizer{
		symbolsPerSlot:  int64(cfg.SymbolsPerSlot),
		slotDurationSec: cfg.SlotDurationSeconds(),
	}
}

// SlotForTick converts a raw symbol-tick time value to a slot index
// (integer division, 14 ticks = 1 slot at default numerology).
func (n *Normalizer) SlotForTick(tick float64) int64 {
	return int64(math.Floor(tick)) / n.symbolsPerSlot
}

// SlotForRow assigns a positional slot when the raw time column is
// non-numeric: consecutive rows are treated as consecutive symbol ticks.
func (n *Normalizer) SlotForRow(row int) int64 {
	return int64(row) / n.symbolsPerSlot
}

// Gbps converts a raw bytes-per-symbol sample into Gbps:
// bytes per slot = raw * symbols-per-slot, times 8 bits, over the slot
// duration, scaled to 1e9.
func (n *Normalizer) Gbps(bytesPerSymbol float64) float64 {
	bytesPerSlot := bytesPerSymbol * float64(n.symbolsPerSlot)
	return bytesPerSlot * 8 / n.slotDurationSec / 1e9
}

// LossRate derives the packet-loss rate, never dividing by zero
func (n *Normalizer) LossRate(sent, lost float64) float64 {
	if sent > 0 {
		return lost / sent
	}
	return 0
}

// SlotTimeSeconds converts a slot index to wall-clock seconds
func (n *Normalizer) SlotTimeSeconds(slot int64) float64 {
	return float64(slot) * n.slotDurationSec
}

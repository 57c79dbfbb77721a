package measurement

import (
	"math"
	"testing"

	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
)

func TestSlotForTick(t *testing.T) {
	norm := NewNormalizer(config.DefaultConfig())

	tests := []struct {
		tick     float64
		expected int64
	}{
		{0, 0},
		{13, 0},
		{14, 1},
		{27, 1},
		{28, 2},
		{168, 12},
		{168.9, 12},
	}

	for _, tt := range tests {
		if got := norm.SlotForTick(tt.tick); got != tt.expected {
			t.Errorf("SlotForTick(%f) = %d, expected %d", tt.tick, got, tt.expected)
		}
	}
}

func TestSlotForRow(t *testing.T) {
	norm := NewNormalizer(config.DefaultConfig())

	if got := norm.SlotForRow(0); got != 0 {
		t.Errorf("SlotForRow(0) = %d, expected 0", got)
	}
	if got := norm.SlotForRow(13); got != 0 {
		t.Errorf("SlotForRow(13) = %d, expected 0", got)
	}
	if got := norm.SlotForRow(14); got != 1 {
		t.Errorf("SlotForRow(14) = %d, expected 1", got)
	}
}

// Gbps must satisfy the defining formula:
// gbps = raw * symbolsPerSlot * 8 / slotDurationSeconds / 1e9.
func TestGbpsFormula(t *testing.T) {
	cfg := config.DefaultConfig()
	norm := NewNormalizer(cfg)

	for _, raw := range []float64{0, 1, 4464.29, 1e6} {
		expected := raw * float64(cfg.SymbolsPerSlot) * 8 / cfg.SlotDurationSeconds() / 1e9
		if got := norm.Gbps(raw); math.Abs(got-expected) > 1e-12*math.Max(1, expected) {
			t.Errorf("Gbps(%f) = %g, expected %g", raw, got, expected)
		}
	}
}

// Round trip: invert the formula to bytes-per-symbol for a target Gbps and
// normalize back.
func TestGbpsRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	norm := NewNormalizer(cfg)

	target := 1.5 // Gbps
	bytesPerSymbol := target * 1e9 / 8 * cfg.SlotDurationSeconds() / float64(cfg.SymbolsPerSlot)
	if got := norm.Gbps(bytesPerSymbol); math.Abs(got-target) > 1e-9 {
		t.Errorf("round trip Gbps = %g, expected %g", got, target)
	}
}

func TestLossRate(t *testing.T) {
	norm := NewNormalizer(config.DefaultConfig())

	tests := []struct {
		sent, lost, expected float64
	}{
		{1000, 10, 0.01},
		{1000, 0, 0},
		{0, 5, 0}, // never divide by zero
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := norm.LossRate(tt.sent, tt.lost); got != tt.expected {
			t.Errorf("LossRate(%f, %f) = %f, expected %f", tt.sent, tt.lost, got, tt.expected)
		}
	}
}

func TestSlotTimeSeconds(t *testing.T) {
	norm := NewNormalizer(config.DefaultConfig())

	if got := norm.SlotTimeSeconds(2000); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("SlotTimeSeconds(2000) = %f, expected 1.0", got)
	}
}

// Package capacity converts observed peak per-link throughput into the
// provisioned capacity required under a fixed packet-loss budget, with and
// without a short jitter buffer.
package capacity

import (
	"strings"

	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/models"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/utils"
)

// Estimator holds the capacity model constants. All methods are pure.
type Estimator struct {
	bufferFactor      float64
	bufferDurationUs  int
	lossBudgetPercent float64
}

// NewEstimator creates an Estimator from the run configuration
func NewEstimator(cfg *config.Config) *Estimator {
	return &Estimator{
		bufferFactor:      cfg.BufferFactor,
		bufferDurationUs:  cfg.BufferDurationUs,
		lossBudgetPercent: cfg.LossBudgetPercent,
	}
}

// Estimate sizes one link for the observed peak throughput. The loss budget
// allows slight underprovisioning (effective rate = peak / (1 - loss/100));
// a budget of 100% or more is degenerate and applies no scaling. When
// buffering is enabled, the jitter buffer (nominally 4 symbol periods,
// ~143 us) smooths the peak by the configured buffer factor.
func (e *Estimator) Estimate(peakGbps float64, withBuffer bool, lossBudgetPercent float64) models.CapacityEstimate {
	lossFactor := 1.0
	if lossBudgetPercent < 100 {
		lossFactor = 1.0 / (1.0 - lossBudgetPercent/100.0)
	}
	withoutBuffer := peakGbps * lossFactor

	withBufferGbps := withoutBuffer
	bufferDuration := 0
	if withBuffer {
		withBufferGbps = peakGbps * e.bufferFactor * lossFactor
		bufferDuration = e.bufferDurationUs
	}

	return models.CapacityEstimate{
		WithBufferGbps:    utils.Round(withBufferGbps, 4),
		WithoutBufferGbps: utils.Round(withoutBuffer, 4),
		PeakGbps:          utils.Round(peakGbps, 4),
		BufferDurationUs:  bufferDuration,
		LossBudgetPercent: lossBudgetPercent,
	}
}

// EstimateDefault sizes one link at the configured loss budget
func (e *Estimator) EstimateDefault(peakGbps float64, withBuffer bool) models.CapacityEstimate {
	return e.Estimate(peakGbps, withBuffer, e.lossBudgetPercent)
}

// EstimateAll sizes every link in a name-to-peak map at the configured loss
// budget. Only keys carrying the "_gbps" suffix are link peaks; the suffix
// is stripped to form the link name.
func (e *Estimator) EstimateAll(linkPeaks map[string]float64, withBuffer bool) map[string]models.CapacityEstimate {
	out := make(map[string]models.CapacityEstimate, len(linkPeaks))
	for key, peak := range linkPeaks {
		if !strings.HasSuffix(key, "_gbps") {
			continue
		}
		name := strings.TrimSuffix(key, "_gbps")
		out[name] = e.EstimateDefault(peak, withBuffer)
	}
	return out
}

// Package topology infers which cells share a transport link. Correlated
// packet loss across cells is the observable proxy for shared contention on
// one link; no out-of-band wiring metadata is assumed to exist.
package topology

import (
	"fmt"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/logger"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/utils"
)

// Clusterer partitions cells into link groups using a correlation matrix as
// the similarity measure.
type Clusterer struct {
	cfg  *config.Config
	part Partitioner
	log  *slog.Logger
}

// NewClusterer creates a Clusterer. A nil partitioner selects the built-in
// average-linkage implementation.
func NewClusterer(cfg *config.Config, part Partitioner, log *slog.Logger) *Clusterer {
	if part == nil {
		part = AverageLinkage{}
	}
	if log == nil {
		log = logger.Default
	}
	return &Clusterer{cfg: cfg, part: part, log: log}
}

// Assign maps every cell in cellIDs to a link id in [0, NumLinks). The
// raw cluster labels carry no order, so links are re-labeled by the minimum
// cell id of each cluster: re-running with reordered input yields the same
// display ordering.
func (c *Clusterer) Assign(corr *mat.SymDense, cellIDs []int) (map[int]int, error) {
	n := len(cellIDs)
	if n == 0 {
		return map[int]int{}, nil
	}
	if corr.SymmetricDim() != n {
		return nil, fmt.Errorf("correlation matrix size %d does not match %d cells",
			corr.SymmetricDim(), n)
	}

	// Distance: negative correlation is treated as equally dissimilar as
	// zero correlation; cells never repel past maximum distance.
	dist := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			dist.Set(i, j, 1-utils.ClampFloat64(corr.At(i, j), 0, 1))
		}
	}

	labels, err := c.part.Partition(dist, c.cfg.NumLinks)
	if err != nil {
		return nil, fmt.Errorf("link partition failed: %w", err)
	}

	assignment := make(map[int]int, n)
	for i, lid := range stabilizeLabels(labels, cellIDs) {
		assignment[cellIDs[i]] = lid
	}
	c.log.Debug("assigned cells to links", "cells", n, "links", c.cfg.NumLinks)
	return assignment, nil
}

// stabilizeLabels renumbers cluster labels by ascending minimum member cell
// id, so link 0 always contains the lowest-numbered cell.
func stabilizeLabels(labels []int, cellIDs []int) []int {
	minCell := make(map[int]int)
	for i, label := range labels {
		if cur, ok := minCell[label]; !ok || cellIDs[i] < cur {
			minCell[label] = cellIDs[i]
		}
	}
	order := make([]int, 0, len(minCell))
	for label := range minCell {
		order = append(order, label)
	}
	sort.Slice(order, func(a, b int) bool { return minCell[order[a]] < minCell[order[b]] })

	remap := make(map[int]int, len(order))
	for newLabel, label := range order {
		remap[label] = newLabel
	}
	out := make([]int, len(labels))
	for i, label := range labels {
		out[i] = remap[label]
	}
	return out
}

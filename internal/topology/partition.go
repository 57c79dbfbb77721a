package topology

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Partitioner partitions n items into k groups given a precomputed n x n
// pairwise distance matrix. Implementations must be deterministic: the same
// matrix always yields the same labels. Labels carry no semantic order.
type Partitioner interface {
	Partition(dist *mat.Dense, k int) ([]int, error)
}

// AverageLinkage is an agglomerative hierarchical clusterer with average
// linkage: the distance between two clusters is the mean pairwise distance
// of their members. Ties merge the lowest-indexed pair, which keeps the
// agglomeration order stable.
type AverageLinkage struct{}

// Partition merges clusters until exactly k remain and returns one label
// per item. Labels are assigned by ascending lowest member index.
func (AverageLinkage) Partition(dist *mat.Dense, k int) ([]int, error) {
	r, c := dist.Dims()
	if r != c {
		return nil, fmt.Errorf("distance matrix must be square, got %dx%d", r, c)
	}
	n := r
	if k <= 0 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", k)
	}
	if n == 0 {
		return []int{}, nil
	}
	if k >= n {
		labels := make([]int, n)
		for i := range labels {
			labels[i] = i
		}
		return labels, nil
	}

	// clusters[i] holds the member indices of the i-th active cluster.
	clusters := make([][]int, n)
	for i := 0; i < n; i++ {
		clusters[i] = []int{i}
	}

	for len(clusters) > k {
		bestA, bestB := -1, -1
		bestDist := 0.0
		for a := 0; a < len(clusters); a++ {
			for b := a + 1; b < len(clusters); b++ {
				d := averageDistance(dist, clusters[a], clusters[b])
				if bestA < 0 || d < bestDist {
					bestA, bestB, bestDist = a, b, d
				}
			}
		}
		merged := append(append([]int{}, clusters[bestA]...), clusters[bestB]...)
		clusters[bestA] = merged
		clusters = append(clusters[:bestB], clusters[bestB+1:]...)
	}

	labels := make([]int, n)
	for label, members := range clusters {
		for _, item := range members {
			labels[item] = label
		}
	}
	return labels, nil
}

// averageDistance is the mean pairwise item distance between two clusters
func averageDistance(dist *mat.Dense, a, b []int) float64 {
	sum := 0.0
	for _, i := range a {
		for _, j := range b {
			sum += dist.At(i, j)
		}
	}
	return sum / float64(len(a)*len(b))
}

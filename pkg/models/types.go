package models

import "time"

// NodeType classifies a topology graph node
type NodeType string

const (
	NodeTypeDU   NodeType = "du"
	NodeTypeLink NodeType = "link"
	NodeTypeRU   NodeType = "ru"
	NodeTypeCell NodeType = "cell"
)

// Node represents one node of the DU -> Link -> RU -> Cell hierarchy
type Node struct {
	ID    string   `json:"id"`
	Type  NodeType `json:"type"`
	Label string   `json:"label"`
}

// Edge represents a directed edge between two topology nodes
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Topology is the rendered wiring graph for one pipeline run
type Topology struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// TrafficSample carries the per-link throughput sums for one sampled slot.
// Links is keyed "link_<n>_gbps" with n starting at 1, matching the
// exported snapshot convention consumed by the capacity estimator.
type TrafficSample struct {
	Slot    int64              `json:"slot"`
	TimeSec float64            `json:"time_sec"`
	Links   map[string]float64 `json:"links"`
}

// CellCongestion contains descriptive throughput statistics for one cell
type CellCongestion struct {
	P95Gbps  float64 `json:"p95_gbps"`
	MeanGbps float64 `json:"mean_gbps"`
	LinkID   int     `json:"link_id"`
}

// CapacityEstimate contains the provisioning figures for one link
type CapacityEstimate struct {
	WithBufferGbps    float64 `json:"with_buffer_gbps"`
	WithoutBufferGbps float64 `json:"without_buffer_gbps"`
	PeakGbps          float64 `json:"peak_throughput_gbps"`
	BufferDurationUs  int     `json:"buffer_duration_us"`
	LossBudgetPercent float64 `json:"packet_loss_budget_percent"`
}

// DataSource records whether a snapshot was computed from measured files or
// from the synthetic fallback
type DataSource string

const (
	DataSourceMeasured  DataSource = "measured"
	DataSourceSynthetic DataSource = "synthetic"
)

// Dashboard is the per-cell/per-link summary view of one run
type Dashboard struct {
	Congestion     map[int]CellCongestion `json:"congestion"`
	LinkCapacities map[string]float64     `json:"link_capacities"`
	CellIDs        []int                  `json:"cell_ids"`
	CellToLink     map[int]int            `json:"cell_to_link"`
}

// Snapshot is the immutable result of one full pipeline run
type Snapshot struct {
	RunID          string                 `json:"run_id"`
	StartedAt      time.Time              `json:"started_at"`
	Duration       time.Duration          `json:"duration"`
	Source         DataSource             `json:"source"`
	Topology       *Topology              `json:"topology"`
	CellToLink     map[int]int            `json:"cell_to_link"`
	Traffic        []TrafficSample        `json:"aggregated_traffic"`
	Congestion     map[int]CellCongestion `json:"congestion"`
	LinkCapacities map[string]float64     `json:"link_capacities"`
	CellIDs        []int                  `json:"cell_ids"`
}

// DashboardView extracts the dashboard slice of a snapshot
func (s *Snapshot) DashboardView() *Dashboard {
	return &Dashboard{
		Congestion:     s.Congestion,
		LinkCapacities: s.LinkCapacities,
		CellIDs:        s.CellIDs,
		CellToLink:     s.CellToLink,
	}
}

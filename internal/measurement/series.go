package measurement

import "sort"

// SignalKind identifies which telemetry a series carries
type SignalKind string

const (
	// SignalThroughput series carry Gbps values derived from bytes-per-symbol rows
	SignalThroughput SignalKind = "throughput"
	// SignalPacketStats series carry loss rates derived from sent/lost counters
	SignalPacketStats SignalKind = "packet_stats"
)

// Sample is one (slot, value) measurement point
type Sample struct {
	Slot  int64
	Value float64
}

// Series is the time-indexed measurement sequence for one cell and one
// signal kind. Slots are unique and ascending; the series is immutable
// after construction. Gaps between slots are allowed.
type Series struct {
	kind   SignalKind
	slots  []int64
	values []float64
	bySlot map[int64]float64
}

// NewSeries builds a Series from unordered samples. When the same slot
// appears more than once (several symbol ticks normalize into one slot),
// the first occurrence wins.
func NewSeries(kind SignalKind, samples []Sample) *Series {
	s := &Series{
		kind:   kind,
		bySlot: make(map[int64]float64, len(samples)),
	}
	for _, p := range samples {
		if _, seen := s.bySlot[p.Slot]; seen {
			continue
		}
		s.bySlot[p.Slot] = p.Value
		s.slots = append(s.slots, p.Slot)
	}
	sort.Slice(s.slots, func(i, j int) bool { return s.slots[i] < s.slots[j] })
	s.values = make([]float64, len(s.slots))
	for i, slot := range s.slots {
		s.values[i] = s.bySlot[slot]
	}
	return s
}

// Kind returns the signal kind of the series
func (s *Series) Kind() SignalKind {
	return s.kind
}

// Len returns the number of distinct slots in the series
func (s *Series) Len() int {
	return len(s.slots)
}

// Value returns the value recorded at the exact slot, if any
func (s *Series) Value(slot int64) (float64, bool) {
	v, ok := s.bySlot[slot]
	return v, ok
}

// ValueOrZero returns the value at the slot, treating gaps as zero
func (s *Series) ValueOrZero(slot int64) float64 {
	return s.bySlot[slot]
}

// Slots returns the ascending slot indices. Callers must not modify the
// returned slice.
func (s *Series) Slots() []int64 {
	return s.slots
}

// Values returns the values in slot order. Callers must not modify the
// returned slice.
func (s *Series) Values() []float64 {
	return s.values
}

// MinSlot returns the first slot of the series (0 when empty)
func (s *Series) MinSlot() int64 {
	if len(s.slots) == 0 {
		return 0
	}
	return s.slots[0]
}

// MaxSlot returns the last slot of the series (0 when empty)
func (s *Series) MaxSlot() int64 {
	if len(s.slots) == 0 {
		return 0
	}
	return s.slots[len(s.slots)-1]
}

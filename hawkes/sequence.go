package hawkes

import "fmt"

// RawSequence is one observed event stream before padding: parallel slices of
// event type codes and inter-arrival times, plus the observation horizon.
// TotalTime == 0 means "use the sum of inter-arrival times".
type RawSequence struct {
	Types        []int
	InterArrival []float64
	TotalTime    float64
}

// EventSequence is a padded event stream ready for the recurrent network.
// Position 0 holds the synthetic beginning-of-stream marker; positions
// 1..Length hold the real events; anything past Length+1 is right padding
// and must never enter a computation.
type EventSequence struct {
	Types        []int     // Types[0] == BOSType(typeCount); padding reuses the sentinel
	InterArrival []float64 // InterArrival[0] == 0; padding is 0
	TotalTime    float64   // observation horizon T
	Length       int       // count of real events (excludes BOS and padding)
}

// BOSType returns the sentinel type id for the beginning-of-stream marker:
// one past all real type codes. It is never a valid prediction target.
func BOSType(typeCount int) int {
	return typeCount
}

// PadBOS prepends the BOS marker (type = typeCount, dt = 0) to a raw
// sequence. Applied exactly once before a sequence enters the recurrent
// network. Returns an error for mismatched slice lengths, out-of-range type
// codes, or negative times; those are caller contract violations.
func PadBOS(raw RawSequence, typeCount int) (EventSequence, error) {
	n := len(raw.Types)
	if len(raw.InterArrival) != n {
		return EventSequence{}, fmt.Errorf("padding: %d types but %d inter-arrival times", n, len(raw.InterArrival))
	}
	if raw.TotalTime < 0 {
		return EventSequence{}, fmt.Errorf("padding: negative total time %v", raw.TotalTime)
	}

	total := raw.TotalTime
	var elapsed float64
	for i := 0; i < n; i++ {
		if raw.Types[i] < 0 || raw.Types[i] >= typeCount {
			return EventSequence{}, fmt.Errorf("padding: event type %d at position %d outside [0, %d)", raw.Types[i], i, typeCount)
		}
		if raw.InterArrival[i] < 0 {
			return EventSequence{}, fmt.Errorf("padding: negative inter-arrival time %v at position %d", raw.InterArrival[i], i)
		}
		elapsed += raw.InterArrival[i]
	}
	if total == 0 {
		total = elapsed
	}

	seq := EventSequence{
		Types:        make([]int, n+1),
		InterArrival: make([]float64, n+1),
		TotalTime:    total,
		Length:       n,
	}
	seq.Types[0] = BOSType(typeCount)
	copy(seq.Types[1:], raw.Types)
	copy(seq.InterArrival[1:], raw.InterArrival)
	return seq, nil
}

// PadBatch pads every raw sequence with the BOS marker and right-pads all of
// them to a common buffer length, so a batch can be processed with uniform
// shapes. Padding positions reuse the sentinel type and a zero dt.
func PadBatch(raw []RawSequence, typeCount int) ([]EventSequence, error) {
	batch := make([]EventSequence, len(raw))
	maxLen := 0
	for b, r := range raw {
		seq, err := PadBOS(r, typeCount)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", b, err)
		}
		batch[b] = seq
		if len(seq.Types) > maxLen {
			maxLen = len(seq.Types)
		}
	}
	for b := range batch {
		for len(batch[b].Types) < maxLen {
			batch[b].Types = append(batch[b].Types, BOSType(typeCount))
			batch[b].InterArrival = append(batch[b].InterArrival, 0)
		}
	}
	return batch, nil
}

// checkPadded verifies the structural invariants a padded sequence must hold
// before it is consumed. Violations are hard failures to the caller, never
// silently recovered.
func (s EventSequence) checkPadded() error {
	if len(s.Types) != len(s.InterArrival) {
		return fmt.Errorf("sequence: %d types but %d inter-arrival times", len(s.Types), len(s.InterArrival))
	}
	if s.Length < 0 || s.Length+1 > len(s.Types) {
		return fmt.Errorf("sequence: length %d exceeds padded buffer capacity %d", s.Length, len(s.Types))
	}
	if s.TotalTime < 0 {
		return fmt.Errorf("sequence: negative total time %v", s.TotalTime)
	}
	if len(s.InterArrival) > 0 && s.InterArrival[0] != 0 {
		return fmt.Errorf("sequence: BOS inter-arrival time is %v, want 0", s.InterArrival[0])
	}
	return nil
}

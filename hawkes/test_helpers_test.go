package hawkes

import "math"

// constIntensity ignores the hidden state and returns fixed per-type rates.
// With it, the Monte-Carlo integral reduces to the closed form T * sum(rates)
// regardless of the sampled offsets.
type constIntensity struct {
	rates []float64
}

func (m constIntensity) Intensity([]float64) []float64 {
	return append([]float64(nil), m.rates...)
}

func (m constIntensity) NumTypes() int {
	return len(m.rates)
}

// frozenState builds a DecayState with decay rate zero, so the hidden state
// is identical at every elapsed time.
func frozenState(size int) DecayState {
	cell := fill(size, 0.5)
	hidden := make([]float64, size)
	for i := range hidden {
		hidden[i] = math.Tanh(0.5)
	}
	return DecayState{
		Hidden:     hidden,
		Cell:       cell,
		CellTarget: fill(size, 0.5),
		OutputGate: fill(size, 1.0),
		DecayRate:  make([]float64, size),
	}
}

func fill(size int, v float64) []float64 {
	out := make([]float64, size)
	for i := range out {
		out[i] = v
	}
	return out
}

func frozenStates(count, size int) []DecayState {
	states := make([]DecayState, count)
	for i := range states {
		states[i] = frozenState(size)
	}
	return states
}

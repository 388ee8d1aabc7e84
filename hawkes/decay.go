package hawkes

import "math"

// DecayState is the per-event tuple produced by the recurrent network after
// reading one padded event. The (Cell, CellTarget, OutputGate, DecayRate)
// fields reconstruct the hidden state at any elapsed time after that event;
// Hidden caches the state already decayed across the observed inter-arrival
// to the next event. Produced once per forward pass and read-only afterwards.
type DecayState struct {
	Hidden     []float64
	Cell       []float64
	CellTarget []float64
	OutputGate []float64
	DecayRate  []float64
}

// DecayCell evaluates the closed-form state decay at elapsed time dt >= 0:
//
//	cell(dt)   = cellTarget + (cell - cellTarget) * exp(-decayRate * dt)
//	hidden(dt) = outputGate * tanh(cell(dt))
//
// Callable at arbitrary non-negative dt, not just observed event boundaries.
// dt = 0 returns outputGate * tanh(cell) exactly.
func DecayCell(cell, cellTarget, outputGate, decayRate []float64, dt float64) (cellAt, hiddenAt []float64) {
	cellAt = make([]float64, len(cell))
	hiddenAt = make([]float64, len(cell))
	for i := range cell {
		cellAt[i] = cellTarget[i] + (cell[i]-cellTarget[i])*math.Exp(-decayRate[i]*dt)
		hiddenAt[i] = outputGate[i] * math.Tanh(cellAt[i])
	}
	return cellAt, hiddenAt
}

// HiddenAt returns the hidden state decayed dt time units past the event
// that produced this state.
func (s DecayState) HiddenAt(dt float64) []float64 {
	_, hidden := DecayCell(s.Cell, s.CellTarget, s.OutputGate, s.DecayRate, dt)
	return hidden
}

// IntensityModel maps a hidden state to a per-type intensity vector.
// Implementations must return strictly positive values; the estimator floors
// them regardless before taking logarithms.
type IntensityModel interface {
	// Intensity returns the instantaneous event rate per type, length NumTypes().
	Intensity(hidden []float64) []float64

	// NumTypes returns the size of the real event-type vocabulary
	// (excluding the BOS sentinel).
	NumTypes() int
}

// RecurrentNetwork is the full collaborator contract: an intensity read-out
// plus the embedding lookup and the per-event LSTM-style update that produce
// DecayState tuples.
type RecurrentNetwork interface {
	IntensityModel

	// HiddenSize returns the dimensionality of hidden/cell vectors.
	HiddenSize() int

	// Embed maps a type id (including the BOS sentinel, id == NumTypes())
	// to a fixed-size embedding vector.
	Embed(typeID int) []float64

	// Step performs one update from the embedding of the event just read and
	// the state decayed to that event's time. It returns the new cell, the
	// cell's asymptotic target, the output gate, and the decay rate.
	Step(embedding, hidden, cell, cellTarget []float64) (newCell, newCellTarget, outputGate, decayRate []float64)
}

package hawkes

import "fmt"

// Forward runs the recurrent network over a padded sequence and returns one
// DecayState per real event position i in [0, Length): the tuple produced
// after reading padded event i (the BOS marker at i = 0 first), with Hidden
// already decayed across InterArrival[i+1]. states[i].Hidden therefore
// carries the intensity of the observed event at padded position i+1. The
// final event of the sequence is only ever a prediction target, never input.
func Forward(net RecurrentNetwork, seq EventSequence) ([]DecayState, error) {
	if err := seq.checkPadded(); err != nil {
		return nil, err
	}

	size := net.HiddenSize()
	hidden := make([]float64, size)
	cell := make([]float64, size)
	cellTarget := make([]float64, size)

	states := make([]DecayState, 0, seq.Length)
	for i := 0; i < seq.Length; i++ {
		c, cTarget, output, decay := net.Step(net.Embed(seq.Types[i]), hidden, cell, cellTarget)
		cellAt, hiddenAt := DecayCell(c, cTarget, output, decay, seq.InterArrival[i+1])

		states = append(states, DecayState{
			Hidden:     hiddenAt,
			Cell:       c,
			CellTarget: cTarget,
			OutputGate: output,
			DecayRate:  decay,
		})

		// The decayed state at the next event's time feeds the next update.
		hidden, cell, cellTarget = hiddenAt, cellAt, cTarget
	}
	return states, nil
}

// ForwardBatch runs Forward over every sequence of a batch. Sequences are
// independent; the batch dimension exists only for shape convenience.
func ForwardBatch(net RecurrentNetwork, batch []EventSequence) ([][]DecayState, error) {
	states := make([][]DecayState, len(batch))
	for b, seq := range batch {
		s, err := Forward(net, seq)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", b, err)
		}
		states[b] = s
	}
	return states, nil
}

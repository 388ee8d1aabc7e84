package hawkes

import (
	"math"
	"testing"
)

func TestDecayCell_ZeroElapsedIdentity(t *testing.T) {
	cell := []float64{0.8, -0.3, 1.2}
	cellTarget := []float64{0.1, 0.1, 0.1}
	output := []float64{0.9, 0.5, 0.7}
	decay := []float64{2.0, 0.5, 10.0}

	cellAt, hiddenAt := DecayCell(cell, cellTarget, output, decay, 0)

	for i := range cell {
		if cellAt[i] != cell[i] {
			t.Errorf("cell[%d] = %v after zero elapsed time, want %v", i, cellAt[i], cell[i])
		}
		want := output[i] * math.Tanh(cell[i])
		if hiddenAt[i] != want {
			t.Errorf("hidden[%d] = %v after zero elapsed time, want %v", i, hiddenAt[i], want)
		}
	}
}

func TestDecayCell_ConvergesToTarget(t *testing.T) {
	cell := []float64{2.0}
	cellTarget := []float64{-1.0}
	output := []float64{1.0}
	decay := []float64{3.0}

	cellAt, hiddenAt := DecayCell(cell, cellTarget, output, decay, 50)

	if math.Abs(cellAt[0]-cellTarget[0]) > 1e-12 {
		t.Errorf("cell = %v after long decay, want target %v", cellAt[0], cellTarget[0])
	}
	want := math.Tanh(cellTarget[0])
	if math.Abs(hiddenAt[0]-want) > 1e-12 {
		t.Errorf("hidden = %v after long decay, want %v", hiddenAt[0], want)
	}
}

func TestDecayCell_MonotoneInterpolation(t *testing.T) {
	// Between dt=0 and dt->inf the cell moves monotonically from cell to
	// cellTarget along the exponential.
	prev := math.Inf(1)
	for _, dt := range []float64{0, 0.1, 0.5, 1, 2, 5} {
		cellAt, _ := DecayCell([]float64{1}, []float64{0}, []float64{1}, []float64{1}, dt)
		if cellAt[0] > prev {
			t.Fatalf("cell increased from %v to %v at dt=%v", prev, cellAt[0], dt)
		}
		prev = cellAt[0]
	}
}

func TestHiddenAt_MatchesDecayCell(t *testing.T) {
	state := DecayState{
		Cell:       []float64{1.5, -0.5},
		CellTarget: []float64{0.2, 0.2},
		OutputGate: []float64{0.6, 0.9},
		DecayRate:  []float64{1.0, 4.0},
	}

	_, want := DecayCell(state.Cell, state.CellTarget, state.OutputGate, state.DecayRate, 0.7)
	got := state.HiddenAt(0.7)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("HiddenAt[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

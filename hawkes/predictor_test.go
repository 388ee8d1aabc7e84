package hawkes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expDecayIntensity produces a single-type intensity exp(h[0]); paired with a
// decaying state it yields a density whose mass stays strictly inside (0, 1).
type expDecayIntensity struct{}

func (expDecayIntensity) Intensity(hidden []float64) []float64 {
	return []float64{math.Exp(hidden[0])}
}

func (expDecayIntensity) NumTypes() int { return 1 }

func TestNewPredictor_Validation(t *testing.T) {
	model := constIntensity{rates: []float64{1}}

	_, err := NewPredictor(model, 0, 100)
	assert.Error(t, err, "zero horizon")
	_, err = NewPredictor(model, -1, 100)
	assert.Error(t, err, "negative horizon")
	_, err = NewPredictor(model, 10, 0)
	assert.Error(t, err, "zero samples")
}

func TestPredictNext_ConstantIntensityMatchesExponential(t *testing.T) {
	// With constant total intensity mu the survival density is mu*exp(-mu*t)
	// and the expected inter-arrival is 1/mu once the horizon captures
	// essentially all the mass.
	model := constIntensity{rates: []float64{0.5, 1.5}}
	p, err := NewPredictor(model, 40, 4000)
	require.NoError(t, err)

	pred := p.PredictNext(frozenState(2))

	assert.InDelta(t, 0.5, pred.InterArrival, 0.03)
	assert.Equal(t, 1, pred.Type, "type 1 carries three quarters of the intensity")
	assert.Greater(t, pred.DensityMass, 0.95)
	assert.LessOrEqual(t, pred.DensityMass, 1.0)
}

func TestPredictNext_ZeroIntensityConcentratesAtHorizon(t *testing.T) {
	model := constIntensity{rates: []float64{0, 0, 0}}
	p, err := NewPredictor(model, 40, 500)
	require.NoError(t, err)

	pred := p.PredictNext(frozenState(2))

	assert.Equal(t, 40.0, pred.InterArrival, "zero density leaves all mass in the survival tail")
	assert.Equal(t, 0, pred.Type, "tie-break defaults to the lowest type index")
	assert.Zero(t, pred.DensityMass)
}

func TestPredictNext_DensityMassWithinUnitInterval(t *testing.T) {
	state := DecayState{
		Cell:       []float64{1.0},
		CellTarget: []float64{0.0},
		OutputGate: []float64{1.0},
		DecayRate:  []float64{1.0},
	}
	p, err := NewPredictor(expDecayIntensity{}, 20, 2000)
	require.NoError(t, err)

	pred := p.PredictNext(state)

	assert.Greater(t, pred.DensityMass, 0.0)
	assert.LessOrEqual(t, pred.DensityMass, 1.0)
	assert.GreaterOrEqual(t, pred.InterArrival, 0.0)
}

func TestPredictNext_SampleCountSensitivity(t *testing.T) {
	model := constIntensity{rates: []float64{2.0}}
	coarse, err := NewPredictor(model, 40, 500)
	require.NoError(t, err)
	fine, err := NewPredictor(model, 40, 5000)
	require.NoError(t, err)

	state := frozenState(1)
	dtCoarse := coarse.PredictNext(state).InterArrival
	dtFine := fine.PredictNext(state).InterArrival

	// Refining the grid must converge toward the analytic 1/mu = 0.5.
	assert.Less(t, math.Abs(dtFine-0.5), math.Abs(dtCoarse-0.5))
	assert.InDelta(t, 0.5, dtFine, 0.02)
}

func TestPredictNext_HorizonTruncationBias(t *testing.T) {
	// A horizon short of the density support drops mass beyond it: the
	// captured mass shrinks to roughly 1-exp(-mu*hMax) and the expectation
	// collapses toward E[min(T, hMax)]. Documented approximation, not an error.
	model := constIntensity{rates: []float64{2.0}}
	full, err := NewPredictor(model, 40, 4000)
	require.NoError(t, err)
	truncated, err := NewPredictor(model, 0.5, 4000)
	require.NoError(t, err)

	state := frozenState(1)
	fullPred := full.PredictNext(state)
	truncPred := truncated.PredictNext(state)

	assert.Less(t, truncPred.DensityMass, fullPred.DensityMass)
	assert.InDelta(t, 1-math.Exp(-1), truncPred.DensityMass, 0.02)
	assert.Less(t, truncPred.InterArrival, fullPred.InterArrival)
	// E[min(T, 0.5)] for Exp(2): (1-e^-1)/2.
	assert.InDelta(t, (1-math.Exp(-1))/2, truncPred.InterArrival, 0.02)
}

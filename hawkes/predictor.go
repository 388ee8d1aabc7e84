package hawkes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"
)

// Prediction is one next-event prediction: the expected inter-arrival time
// under the survival density truncated to the horizon, the most probable
// type, and the density mass captured inside [0, horizonMax]. Mass close to
// 1 means the horizon was long enough; mass well below 1 flags truncation.
type Prediction struct {
	InterArrival float64
	Type         int
	DensityMass  float64
}

// Predictor computes next-event predictions by deterministic quadrature over
// a decayed intensity curve. No randomness: the grid is evenly spaced with
// SampleCount+1 points on [0, HorizonMax].
//
// HorizonMax trades accuracy for cost: density mass beyond it is dropped, so
// it must be large enough that the survival density has decayed to near zero
// by the end of the grid. DensityMass in the result reports how much mass the
// grid actually captured.
type Predictor struct {
	model       IntensityModel
	HorizonMax  float64
	SampleCount int
}

// NewPredictor validates the quadrature parameters and returns a Predictor.
func NewPredictor(model IntensityModel, horizonMax float64, sampleCount int) (*Predictor, error) {
	if horizonMax <= 0 {
		return nil, fmt.Errorf("predictor: horizon %v must be positive", horizonMax)
	}
	if sampleCount < 1 {
		return nil, fmt.Errorf("predictor: sample count %d must be at least 1", sampleCount)
	}
	return &Predictor{model: model, HorizonMax: horizonMax, SampleCount: sampleCount}, nil
}

// PredictNext predicts the next inter-arrival time and event type from the
// decay state produced immediately after the last observed event.
//
// Pipeline over the grid t_0..t_n:
//  1. decay the hidden state to each grid point and read the intensity vector
//  2. accumulate the cumulative hazard by running rectangle sums, step * total
//  3. survival density d(t) = totalIntensity(t) * exp(-hazard(t))
//  4. expected inter-arrival = trapezoid of t*d(t) plus the truncated tail
//     horizonMax * exp(-hazard(horizonMax)), i.e. E[min(T, horizonMax)]
//  5. per-type mass = trapezoid of (lambda_k(t)/total(t)) * d(t); the
//     predicted type maximizes it, ties broken toward the lowest index
//
// A totalIntensity of zero at a grid point contributes zero type mass instead
// of dividing by zero; with intensity zero everywhere the survival tail keeps
// the full mass, the predicted inter-arrival is exactly horizonMax, and the
// type defaults to 0.
func (p *Predictor) PredictNext(state DecayState) Prediction {
	n := p.SampleCount
	step := p.HorizonMax / float64(n)
	kinds := p.model.NumTypes()

	grid := make([]float64, n+1)
	density := make([]float64, n+1)
	weighted := make([]float64, n+1) // t * density(t)
	typeMass := make([][]float64, kinds)
	for k := range typeMass {
		typeMass[k] = make([]float64, n+1)
	}

	var hazard float64
	for i := 0; i <= n; i++ {
		t := float64(i) * step
		if i == n {
			t = p.HorizonMax
		}
		grid[i] = t

		lambda := p.model.Intensity(state.HiddenAt(t))
		var total float64
		for _, v := range lambda {
			total += v
		}

		hazard += step * total
		d := total * math.Exp(-hazard)
		density[i] = d
		weighted[i] = t * d
		if total > 0 {
			for k := 0; k < kinds; k++ {
				typeMass[k][i] = lambda[k] / total * d
			}
		}
	}

	survival := math.Exp(-hazard)
	dt := integrate.Trapezoidal(grid, weighted) + p.HorizonMax*survival

	best, bestMass := 0, math.Inf(-1)
	for k := 0; k < kinds; k++ {
		if m := integrate.Trapezoidal(grid, typeMass[k]); m > bestMass {
			best, bestMass = k, m
		}
	}

	return Prediction{
		InterArrival: dt,
		Type:         best,
		DensityMass:  integrate.Trapezoidal(grid, density),
	}
}

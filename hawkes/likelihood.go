package hawkes

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// DefaultIntensityFloor is the minimum intensity admitted into a logarithm.
// Anything below it is a degenerate intensity: floored, counted, and logged
// at warn level rather than corrupting the batch sum with -Inf.
const DefaultIntensityFloor = 1e-9

// LogLikelihood computes the negative log-likelihood of event batches under
// an intensity model:
//
//	loss = -( sum_b sum_i log lambda(t_i, k_i)  -  sum_b integral_0^T_b sum_k lambda_k dt )
//
// The event term is exact; the integral has no closed form (nonlinear decay
// composed with the read-out layer) and is estimated by Monte-Carlo over the
// uniform draws of SimulateUniformGaps, with coefficient T_b / L_b per
// sequence. The scalar is batch-summed; normalization is the caller's choice.
type LogLikelihood struct {
	model IntensityModel
	floor float64

	anomalies int64
}

// NewLogLikelihood creates an estimator over the given intensity model.
// A non-positive floor selects DefaultIntensityFloor.
func NewLogLikelihood(model IntensityModel, floor float64) *LogLikelihood {
	if floor <= 0 {
		floor = DefaultIntensityFloor
	}
	return &LogLikelihood{model: model, floor: floor}
}

// AnomalyCount returns the number of degenerate intensities floored since
// construction, for offline diagnosis.
func (l *LogLikelihood) AnomalyCount() int64 {
	return l.anomalies
}

// Loss computes the batch negative log-likelihood. states[b][i] is the decay
// tuple produced after reading padded event i of sequence b; its Hidden field
// is the state decayed to just before event i+1, so it carries the intensity
// of the observed event at position i+1. rng drives the Monte-Carlo draws
// (SubsystemSampler); a fixed seed makes the loss deterministic.
func (l *LogLikelihood) Loss(rng *rand.Rand, states [][]DecayState, batch []EventSequence) (float64, error) {
	eventTerm, integral, err := l.Terms(rng, states, batch)
	if err != nil {
		return 0, err
	}
	return -(eventTerm - integral), nil
}

// Terms computes the two halves of the log-likelihood separately: the exact
// event term and the Monte-Carlo non-event integral estimate.
func (l *LogLikelihood) Terms(rng *rand.Rand, states [][]DecayState, batch []EventSequence) (eventTerm, integral float64, err error) {
	if len(states) != len(batch) {
		return 0, 0, fmt.Errorf("loss: %d state sequences for %d event sequences", len(states), len(batch))
	}
	if len(batch) == 0 {
		return 0, 0, nil
	}

	bufLen := len(batch[0].Types)
	totalTimes := make([]float64, len(batch))
	for b, seq := range batch {
		if err := seq.checkPadded(); err != nil {
			return 0, 0, fmt.Errorf("loss: sequence %d: %w", b, err)
		}
		if len(seq.Types) != bufLen {
			return 0, 0, fmt.Errorf("loss: sequence %d has buffer length %d, batch uses %d", b, len(seq.Types), bufLen)
		}
		if seq.Length > len(states[b]) {
			return 0, 0, fmt.Errorf("loss: sequence %d has %d events but only %d decay states", b, seq.Length, len(states[b]))
		}
		totalTimes[b] = seq.TotalTime
	}

	var degenerate int64

	// Event term: sum of log-intensities of the actually observed types.
	for b, seq := range batch {
		for i := 0; i < seq.Length; i++ {
			kind := seq.Types[i+1]
			if kind < 0 || kind >= l.model.NumTypes() {
				return 0, 0, fmt.Errorf("loss: sequence %d event %d has type %d outside [0, %d)", b, i+1, kind, l.model.NumTypes())
			}
			lambda := l.model.Intensity(states[b][i].Hidden)
			v := lambda[kind]
			if v < l.floor {
				v = l.floor
				degenerate++
			}
			eventTerm += math.Log(v)
		}
	}

	// Non-event term: decay each per-event state forward by a simulated
	// uniform offset and scale the total-intensity sum by T_b / L_b.
	// L_b == 0 contributes exactly zero, never a division by zero.
	sims := SimulateUniformGaps(rng, totalTimes, bufLen)
	for b, seq := range batch {
		if seq.Length == 0 {
			continue
		}
		var sum float64
		for i := 0; i < seq.Length; i++ {
			hidden := states[b][i].HiddenAt(sims[b][i])
			sum += floats.Sum(l.model.Intensity(hidden))
		}
		integral += seq.TotalTime / float64(seq.Length) * sum
	}

	if degenerate > 0 {
		l.anomalies += degenerate
		logrus.Warnf("floored %d degenerate intensities below %g in one loss computation", degenerate, l.floor)
	}
	return eventTerm, integral, nil
}

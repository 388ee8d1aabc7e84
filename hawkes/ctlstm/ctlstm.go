// Package ctlstm is the reference recurrent collaborator for the hawkes
// package: a forward-only continuous-time LSTM cell with a type embedding
// table and a softplus intensity read-out. It implements
// hawkes.RecurrentNetwork; training the weights is out of scope here, so the
// cell is initialized from a seeded RNG and evaluated as-is.
package ctlstm

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Gate indices into the weight/bias tables. The cell keeps two memory paths:
// the usual cell state and its asymptotic target, each with its own
// input/forget pair, plus a decay gate controlling how fast the cell relaxes
// toward the target between events.
const (
	gateInput = iota
	gateForget
	gateCandidate
	gateOutput
	gateInputTarget
	gateForgetTarget
	gateDecay
	numGates
)

// Config sizes the network.
type Config struct {
	TypeCount     int // real event-type vocabulary size (BOS adds one embedding row)
	HiddenSize    int
	EmbeddingSize int
}

// Model is a forward-only continuous-time LSTM with a softplus intensity
// layer. Immutable after New; safe for concurrent read-only use.
type Model struct {
	cfg Config

	embedding [][]float64 // (TypeCount+1) x EmbeddingSize; last row is the BOS sentinel

	gateWeights [numGates][][]float64 // per gate: HiddenSize x (EmbeddingSize + HiddenSize)
	gateBias    [numGates][]float64   // per gate: HiddenSize

	intensityWeights [][]float64 // TypeCount x HiddenSize
	intensityScale   []float64   // TypeCount, strictly positive
}

// New builds a model with weights drawn uniformly from [-r, r], r =
// 1/sqrt(HiddenSize). Pass the SubsystemInit RNG for reproducible weights.
func New(cfg Config, rng *rand.Rand) (*Model, error) {
	if cfg.TypeCount < 1 {
		return nil, fmt.Errorf("ctlstm: type count %d must be at least 1", cfg.TypeCount)
	}
	if cfg.HiddenSize < 1 {
		return nil, fmt.Errorf("ctlstm: hidden size %d must be at least 1", cfg.HiddenSize)
	}
	if cfg.EmbeddingSize < 1 {
		return nil, fmt.Errorf("ctlstm: embedding size %d must be at least 1", cfg.EmbeddingSize)
	}

	m := &Model{cfg: cfg}
	r := 1.0 / math.Sqrt(float64(cfg.HiddenSize))
	uniform := func() float64 { return (2*rng.Float64() - 1) * r }

	m.embedding = make([][]float64, cfg.TypeCount+1)
	for k := range m.embedding {
		m.embedding[k] = make([]float64, cfg.EmbeddingSize)
		for j := range m.embedding[k] {
			m.embedding[k][j] = uniform()
		}
	}

	inputSize := cfg.EmbeddingSize + cfg.HiddenSize
	for g := 0; g < numGates; g++ {
		m.gateWeights[g] = make([][]float64, cfg.HiddenSize)
		m.gateBias[g] = make([]float64, cfg.HiddenSize)
		for h := 0; h < cfg.HiddenSize; h++ {
			row := make([]float64, inputSize)
			for j := range row {
				row[j] = uniform()
			}
			m.gateWeights[g][h] = row
			m.gateBias[g][h] = uniform()
		}
	}

	m.intensityWeights = make([][]float64, cfg.TypeCount)
	m.intensityScale = make([]float64, cfg.TypeCount)
	for k := 0; k < cfg.TypeCount; k++ {
		row := make([]float64, cfg.HiddenSize)
		for j := range row {
			row[j] = uniform()
		}
		m.intensityWeights[k] = row
		// Scales stay >= 1 so the softplus read-out keeps a usable range.
		m.intensityScale[k] = 1.0 + rng.Float64()
	}
	return m, nil
}

// HiddenSize returns the dimensionality of hidden/cell vectors.
func (m *Model) HiddenSize() int { return m.cfg.HiddenSize }

// NumTypes returns the real event-type vocabulary size.
func (m *Model) NumTypes() int { return m.cfg.TypeCount }

// Embed maps a type id to its embedding row. The BOS sentinel id TypeCount
// is valid; anything outside [0, TypeCount] is a caller contract violation.
func (m *Model) Embed(typeID int) []float64 {
	if typeID < 0 || typeID > m.cfg.TypeCount {
		panic(fmt.Sprintf("ctlstm: type id %d outside [0, %d]", typeID, m.cfg.TypeCount))
	}
	return m.embedding[typeID]
}

// Step performs one continuous-time LSTM update from the embedding of the
// event just read and the state decayed to that event's time.
func (m *Model) Step(embedding, hidden, cell, cellTarget []float64) (newCell, newCellTarget, outputGate, decayRate []float64) {
	input := make([]float64, 0, len(embedding)+len(hidden))
	input = append(input, embedding...)
	input = append(input, hidden...)

	size := m.cfg.HiddenSize
	gates := make([][]float64, numGates)
	for g := 0; g < numGates; g++ {
		vals := make([]float64, size)
		for h := 0; h < size; h++ {
			vals[h] = floats.Dot(m.gateWeights[g][h], input) + m.gateBias[g][h]
		}
		gates[g] = vals
	}

	newCell = make([]float64, size)
	newCellTarget = make([]float64, size)
	outputGate = make([]float64, size)
	decayRate = make([]float64, size)
	for h := 0; h < size; h++ {
		in := sigmoid(gates[gateInput][h])
		forget := sigmoid(gates[gateForget][h])
		candidate := math.Tanh(gates[gateCandidate][h])
		inTarget := sigmoid(gates[gateInputTarget][h])
		forgetTarget := sigmoid(gates[gateForgetTarget][h])

		newCell[h] = forget*cell[h] + in*candidate
		newCellTarget[h] = forgetTarget*cellTarget[h] + inTarget*candidate
		outputGate[h] = sigmoid(gates[gateOutput][h])
		decayRate[h] = softplus(gates[gateDecay][h])
	}
	return newCell, newCellTarget, outputGate, decayRate
}

// Intensity implements the scaled-softplus read-out
// lambda_k = s_k * softplus(w_k . h / s_k), strictly positive for any finite
// hidden state.
func (m *Model) Intensity(hidden []float64) []float64 {
	lambda := make([]float64, m.cfg.TypeCount)
	for k := range lambda {
		s := m.intensityScale[k]
		lambda[k] = s * softplus(floats.Dot(m.intensityWeights[k], hidden)/s)
	}
	return lambda
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// softplus computes log(1 + e^x); for large x the identity avoids overflow.
func softplus(x float64) float64 {
	if x > 30 {
		return x
	}
	return math.Log1p(math.Exp(x))
}

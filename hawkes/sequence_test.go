package hawkes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadBOS_InsertsSentinel(t *testing.T) {
	raw := RawSequence{
		Types:        []int{2, 0, 1},
		InterArrival: []float64{1.0, 2.0, 0.5},
		TotalTime:    3.5,
	}

	seq, err := PadBOS(raw, 3)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 2, 0, 1}, seq.Types, "BOS sentinel must be the vocabulary size")
	assert.Equal(t, []float64{0, 1.0, 2.0, 0.5}, seq.InterArrival)
	assert.Equal(t, 3, seq.Length, "length counts real events only")
	assert.Equal(t, 3.5, seq.TotalTime)
}

func TestPadBOS_DerivesTotalTime(t *testing.T) {
	raw := RawSequence{Types: []int{0, 1}, InterArrival: []float64{1.5, 2.5}}

	seq, err := PadBOS(raw, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, seq.TotalTime)
}

func TestPadBOS_EmptySequence(t *testing.T) {
	seq, err := PadBOS(RawSequence{}, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, seq.Length)
	assert.Equal(t, []int{4}, seq.Types)
	assert.Equal(t, []float64{0}, seq.InterArrival)
}

func TestPadBOS_ContractViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  RawSequence
	}{
		{"mismatched lengths", RawSequence{Types: []int{0}, InterArrival: []float64{1, 2}}},
		{"negative time", RawSequence{Types: []int{0}, InterArrival: []float64{-1}}},
		{"negative total time", RawSequence{Types: []int{0}, InterArrival: []float64{1}, TotalTime: -2}},
		{"type out of range", RawSequence{Types: []int{5}, InterArrival: []float64{1}}},
		{"negative type", RawSequence{Types: []int{-1}, InterArrival: []float64{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PadBOS(tt.raw, 3)
			assert.Error(t, err)
		})
	}
}

func TestPadBatch_CommonBufferLength(t *testing.T) {
	raw := []RawSequence{
		{Types: []int{0, 1, 0}, InterArrival: []float64{1, 1, 1}},
		{Types: []int{1}, InterArrival: []float64{2}},
	}

	batch, err := PadBatch(raw, 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	assert.Equal(t, len(batch[0].Types), len(batch[1].Types), "rows must share a buffer length")
	assert.Equal(t, 1, batch[1].Length)
	// Right padding reuses the sentinel type and a zero dt.
	assert.Equal(t, []int{2, 1, 2, 2}, batch[1].Types)
	assert.Equal(t, []float64{0, 2, 0, 0}, batch[1].InterArrival)
}

func TestCheckPadded_LengthExceedsBuffer(t *testing.T) {
	seq := EventSequence{
		Types:        []int{3, 0},
		InterArrival: []float64{0, 1},
		TotalTime:    1,
		Length:       5,
	}
	assert.Error(t, seq.checkPadded())
}

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadModelConfig_ParsesFields(t *testing.T) {
	path := writeConfig(t, `
type_count: 7
hidden_size: 64
embedding_size: 32
intensity_floor: 1e-8
horizon_max: 25.0
prediction_samples: 2000
`)

	cfg, err := LoadModelConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.TypeCount)
	assert.Equal(t, 64, cfg.HiddenSize)
	assert.Equal(t, 32, cfg.EmbeddingSize)
	assert.Equal(t, 1e-8, cfg.IntensityFloor)
	assert.Equal(t, 25.0, cfg.HorizonMax)
	assert.Equal(t, 2000, cfg.PredictionSamples)
}

func TestLoadModelConfig_RejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "hiden_size: 64\n")

	_, err := LoadModelConfig(path)
	assert.Error(t, err, "typoed keys must fail instead of silently keeping defaults")
}

func TestLoadModelConfig_MissingFile(t *testing.T) {
	_, err := LoadModelConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestModelConfig_MergeKeepsDefaultsForZeroFields(t *testing.T) {
	base := ModelConfig{
		TypeCount:         5,
		HiddenSize:        32,
		EmbeddingSize:     16,
		IntensityFloor:    1e-9,
		HorizonMax:        40,
		PredictionSamples: 1000,
	}
	merged := base.merge(ModelConfig{HiddenSize: 128, HorizonMax: 10})

	assert.Equal(t, 5, merged.TypeCount)
	assert.Equal(t, 128, merged.HiddenSize)
	assert.Equal(t, 16, merged.EmbeddingSize)
	assert.Equal(t, 10.0, merged.HorizonMax)
	assert.Equal(t, 1000, merged.PredictionSamples)
}

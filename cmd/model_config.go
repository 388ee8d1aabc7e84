package cmd

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ModelConfig holds the network and estimator parameters. All fields are
// optional in the YAML file; zero values fall back to the CLI flag values.
type ModelConfig struct {
	TypeCount         int     `yaml:"type_count"`
	HiddenSize        int     `yaml:"hidden_size"`
	EmbeddingSize     int     `yaml:"embedding_size"`
	IntensityFloor    float64 `yaml:"intensity_floor"`
	HorizonMax        float64 `yaml:"horizon_max"`
	PredictionSamples int     `yaml:"prediction_samples"`
}

// LoadModelConfig reads a YAML model config with strict field checking, so
// typos in key names cause errors instead of silently keeping defaults.
func LoadModelConfig(path string) (ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ModelConfig{}, errors.Wrapf(err, "read model config %s", path)
	}

	var cfg ModelConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return ModelConfig{}, errors.Wrapf(err, "parse model config %s", path)
	}
	return cfg, nil
}

// merge overlays non-zero fields of other onto the receiver.
func (c ModelConfig) merge(other ModelConfig) ModelConfig {
	if other.TypeCount != 0 {
		c.TypeCount = other.TypeCount
	}
	if other.HiddenSize != 0 {
		c.HiddenSize = other.HiddenSize
	}
	if other.EmbeddingSize != 0 {
		c.EmbeddingSize = other.EmbeddingSize
	}
	if other.IntensityFloor != 0 {
		c.IntensityFloor = other.IntensityFloor
	}
	if other.HorizonMax != 0 {
		c.HorizonMax = other.HorizonMax
	}
	if other.PredictionSamples != 0 {
		c.PredictionSamples = other.PredictionSamples
	}
	return c
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadModel returns the default model configuration overlaid with the YAML
// file at path. An empty path returns the defaults unchanged. Unknown keys
// and invalid coefficients are errors.
func LoadModel(path string) (domain.ModelConfig, error) {
	cfg := domain.DefaultModelConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.ModelConfig{}, fmt.Errorf("open RISK_MODEL_FILE: %w", err)
	}
	defer f.Close()

	return decodeModel(f, cfg)
}

func decodeModel(r io.Reader, base domain.ModelConfig) (domain.ModelConfig, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&base); err != nil && !errors.Is(err, io.EOF) {
		return domain.ModelConfig{}, fmt.Errorf("decode RISK_MODEL_FILE: %w", err)
	}
	if err := base.Validate(); err != nil {
		return domain.ModelConfig{}, fmt.Errorf("invalid RISK_MODEL_FILE: %w", err)
	}
	return base, nil
}

package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"wingman/internal/errors"
)

// Defaults holds optional settings loaded from a wingman.yaml file. Flags
// always take precedence; file values only fill gaps.
type Defaults struct {
	Org         string `yaml:"org"`
	BatchSize   int    `yaml:"batch_size"`
	ReportsPath string `yaml:"reports_path"`
	OutputDir   string `yaml:"output_dir"`
}

// LoadDefaults reads a YAML defaults file.
func LoadDefaults(path string) (*Defaults, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigErrorWithPath(path, "failed to read config file", err)
	}

	var d Defaults
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, errors.NewConfigErrorWithPath(path, "invalid config file", err)
	}
	return &d, nil
}

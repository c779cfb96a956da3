// Package config handles .depvizrc.yaml project-level configuration and
// its layering under CLI flags.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig represents the .depvizrc.yaml configuration file. Every
// field here is a default that a CLI flag overrides when explicitly set.
type ProjectConfig struct {
	Version         int      `yaml:"version"`
	Exclude         []string `yaml:"exclude"`
	OversizedLines  int      `yaml:"oversized_lines"`
	MaxDepth        int      `yaml:"max_depth"`
	MinSplitLines   int      `yaml:"min_split_lines"`
	MinSplitFuncs   int      `yaml:"min_split_functions"`
}

// LoadProjectConfig loads configuration from explicitPath, or from
// .depvizrc.yaml / .depvizrc.yml in dir if explicitPath is empty. Returns
// nil, nil when no config file is found anywhere. Unknown keys are a hard
// error: a typo'd option should never be silently ignored.
func LoadProjectConfig(dir, explicitPath string) (*ProjectConfig, error) {
	configPath := explicitPath
	if configPath == "" {
		for _, name := range []string{".depvizrc.yaml", ".depvizrc.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
				break
			}
		}
	}
	if configPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}

	cfg := &ProjectConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// Validate checks that ProjectConfig values are self-consistent.
func (c *ProjectConfig) Validate() error {
	if c.Version != 0 && c.Version != 1 {
		return fmt.Errorf("unsupported config version %d (expected 1)", c.Version)
	}
	if c.OversizedLines < 0 {
		return fmt.Errorf("oversized_lines must be >= 0, got %d", c.OversizedLines)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	return nil
}

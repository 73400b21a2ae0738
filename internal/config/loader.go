package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const runnerConfigFile = "runner.yaml"

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.arcade/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
// A custom path that cannot be read, parsed or validated is an error; the
// other locations are skipped silently when unusable.
func LoadRunner(customPath string) (RunnerConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseRunner(data)
		if err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(runnerConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRunner(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", runnerConfigFile)); err == nil {
		if cfg, err := ParseRunner(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseRunner(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseRunner decodes YAML over the built-in defaults and validates the result.
func ParseRunner(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse runner config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

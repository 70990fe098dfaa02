package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded is reported by LoadBreakout when no config file was found.
const SourceEmbedded = "embedded"

// LoadBreakout loads Breakout configuration and reports where it came from.
// Search order: customPath -> ~/.breakout/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default
//
// Files only need to set the keys they change; everything else keeps its
// default value. An explicit customPath that cannot be read or parsed is an
// error, while broken files found during the search are skipped.
func LoadBreakout(customPath string) (BreakoutConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BreakoutConfig{}, "", fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return BreakoutConfig{}, "", fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	candidates := []string{filepath.Join("configs", "breakout.yaml")}
	if userCfgPath := userConfigPath("breakout.yaml"); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// Parse decodes YAML on top of the default configuration and validates the
// result.
func Parse(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BreakoutConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BreakoutConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breakout", "configs", filename)
}

package config

import "math"

// DifficultyConfig defines how the ball speeds up over a game.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives the difficulty level up.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "bricks", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Bricks destroyed or frames at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to ball speed at max difficulty
}

// DifficultyManager calculates the ball speed factor from game progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none" && d.cfg.Progression.Type != ""
}

// Level returns the current difficulty level (0.0 to 1.0) based on bricks
// destroyed or frames played.
func (d *DifficultyManager) Level(destroyed int, frames int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "bricks":
		progress = float64(destroyed) / maxAt
	case "time":
		progress = float64(frames) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpeedFactor returns the multiplier applied to the ball's base velocity.
// It is 1 when progression is disabled.
func (d *DifficultyManager) SpeedFactor(destroyed int, frames int) float64 {
	if !d.IsEnabled() {
		return 1.0
	}
	return 1.0 + d.Level(destroyed, frames)*d.cfg.Scaling.SpeedMultiplier
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// Package config provides YAML-based game configuration loading and
// difficulty presets for breakout.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/breakout/internal/core"
)

// BreakoutConfig contains all tunables for a game of breakout.
// Distances are in playfield units; velocities in units per frame.
type BreakoutConfig struct {
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Ball       BallConfig       `yaml:"ball"`
	Bricks     BricksConfig     `yaml:"bricks"`
	Input      InputConfig      `yaml:"input"`
	Window     WindowConfig     `yaml:"window"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayfieldConfig defines the bounds the ball bounces inside.
type PlayfieldConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// PaddleConfig defines the paddle's starting box, speed and color.
type PaddleConfig struct {
	X      float32  `yaml:"x"`
	Y      float32  `yaml:"y"`
	Width  float32  `yaml:"width"`
	Height float32  `yaml:"height"`
	Speed  float32  `yaml:"speed"`
	Color  core.RGB `yaml:"color"`
}

// BallConfig defines the ball's starting box, velocity and color.
type BallConfig struct {
	X         float32  `yaml:"x"`
	Y         float32  `yaml:"y"`
	Size      float32  `yaml:"size"`
	VelocityX float32  `yaml:"velocity_x"`
	VelocityY float32  `yaml:"velocity_y"`
	Color     core.RGB `yaml:"color"`
}

// BricksConfig places the brick grid. Layout names one of the built-in
// layouts; each layout cell maps to one brick at
// (OriginX + col*StrideX, OriginY + row*StrideY).
type BricksConfig struct {
	Layout   string  `yaml:"layout"`
	OriginX  float32 `yaml:"origin_x"`
	OriginY  float32 `yaml:"origin_y"`
	Width    float32 `yaml:"width"`
	Height   float32 `yaml:"height"`
	StrideX  float32 `yaml:"stride_x"`
	StrideY  float32 `yaml:"stride_y"`
	Capacity int     `yaml:"capacity"` // Maximum number of bricks, 0 = unbounded
}

// InputConfig tunes how key events are synthesized on terminals.
type InputConfig struct {
	// KeyHoldTicks is how many ticks a key counts as held after its last
	// press. Terminals do not report key releases.
	KeyHoldTicks int `yaml:"key_hold_ticks"`
}

// WindowConfig configures the native window backend.
type WindowConfig struct {
	Title string  `yaml:"title"`
	Scale float64 `yaml:"scale"`
}

// Validate reports the first setting that cannot produce a playable game.
func (c BreakoutConfig) Validate() error {
	var errs []error
	positive := func(name string, v float32) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("playfield.width", c.Playfield.Width)
	positive("playfield.height", c.Playfield.Height)
	positive("paddle.width", c.Paddle.Width)
	positive("paddle.height", c.Paddle.Height)
	positive("ball.size", c.Ball.Size)
	positive("bricks.width", c.Bricks.Width)
	positive("bricks.height", c.Bricks.Height)

	if c.Paddle.Speed < 0 {
		errs = append(errs, fmt.Errorf("paddle.speed must not be negative, got %v", c.Paddle.Speed))
	}
	if c.Bricks.Capacity < 0 {
		errs = append(errs, fmt.Errorf("bricks.capacity must not be negative, got %d", c.Bricks.Capacity))
	}
	if c.Input.KeyHoldTicks < 1 {
		errs = append(errs, fmt.Errorf("input.key_hold_ticks must be at least 1, got %d", c.Input.KeyHoldTicks))
	}
	if c.Window.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window.scale must be positive, got %v", c.Window.Scale))
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "bricks", "time":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type must be bricks, time or none, got %q", c.Difficulty.Progression.Type))
	}
	if c.Difficulty.Progression.MaxAt < 0 {
		errs = append(errs, fmt.Errorf("difficulty.progression.max_at must not be negative, got %d", c.Difficulty.Progression.MaxAt))
	}
	if c.Difficulty.Scaling.SpeedMultiplier < 0 {
		errs = append(errs, fmt.Errorf("difficulty.scaling.speed_multiplier must not be negative, got %v", c.Difficulty.Scaling.SpeedMultiplier))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid breakout config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string selects no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
// The empty preset leaves the config untouched.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Ball.VelocityX *= 0.75
		cfg.Ball.VelocityY *= 0.75
		cfg.Paddle.Width *= 1.25
	case DifficultyHard:
		cfg.Ball.VelocityX *= 1.5
		cfg.Ball.VelocityY *= 1.5
		cfg.Paddle.Width *= 0.75
		cfg.Paddle.Speed *= 1.25
	}
}

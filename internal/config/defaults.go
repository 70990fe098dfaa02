package config

import (
	_ "embed"

	"github.com/vovakirdan/breakout/internal/core"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
// It matches defaults/breakout.yaml.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Playfield: PlayfieldConfig{
			Width:  800,
			Height: 800,
		},
		Paddle: PaddleConfig{
			X:      300,
			Y:      780,
			Width:  300,
			Height: 20,
			Speed:  1.0,
			Color:  core.ColorWhite,
		},
		Ball: BallConfig{
			X:         420,
			Y:         400,
			Size:      10,
			VelocityX: 0,
			VelocityY: 0.1,
			Color:     core.ColorWhite,
		},
		Bricks: BricksConfig{
			Layout:   "classic",
			OriginX:  20,
			OriginY:  50,
			Width:    58,
			Height:   20,
			StrideX:  78,
			StrideY:  30,
			Capacity: 256,
		},
		Input: InputConfig{
			KeyHoldTicks: 8,
		},
		Window: WindowConfig{
			Title: "Breakout",
			Scale: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "bricks",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}

package core

// RuntimeConfig contains configuration passed to backends at startup.
type RuntimeConfig struct {
	ScreenW  int // Terminal width in characters (terminal backend only)
	ScreenH  int // Terminal height in characters (terminal backend only)
	TickRate int // Frames per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Renderer presents frames. A frame is a BeginFrame call, any number of
// DrawBox calls and a closing EndFrame call. Boxes are in playfield
// coordinates; the renderer maps them to its own surface.
type Renderer interface {
	BeginFrame() error
	DrawBox(b Box, c RGB) error
	EndFrame() error
	Close() error
}

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is an opaque 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Predefined colors for game elements.
var (
	ColorBlack  = RGB{0x00, 0x00, 0x00}
	ColorWhite  = RGB{0xff, 0xff, 0xff}
	ColorRed    = RGB{0xff, 0x00, 0x00}
	ColorOrange = RGB{0xff, 0xa5, 0x00}
	ColorGreen  = RGB{0x00, 0xff, 0x00}
	ColorYellow = RGB{0xff, 0xff, 0x00}
	ColorBlue   = RGB{0x00, 0x00, 0xff}
)

// Hex returns the color in "#rrggbb" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return c.Hex()
}

// ParseHex parses a "#rrggbb" (or "rrggbb") color.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("core: invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("core: invalid color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MarshalYAML writes the color as a "#rrggbb" string.
func (c RGB) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// UnmarshalYAML reads a "#rrggbb" string.
func (c *RGB) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

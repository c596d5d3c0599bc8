package stroke

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/example/colorbook/internal/canvas"
	"golang.org/x/image/colornames"
)

const (
	DefaultBrushWidth  = 5
	DefaultEraserWidth = 20
	MaxWidth           = 100
)

// DefaultColor is the brush colour selected at start up.
var DefaultColor = color.RGBA{255, 0, 0, 255}

// Settings are the live tool options. The UI mutates them independently of any
// stroke in progress; segments read them at draw time.
type Settings struct {
	Tool        canvas.Tool
	Color       color.RGBA
	BrushWidth  int
	EraserWidth int
}

// DefaultSettings returns the start up tool options.
func DefaultSettings() *Settings {
	return &Settings{
		Tool:        canvas.ToolBrush,
		Color:       DefaultColor,
		BrushWidth:  DefaultBrushWidth,
		EraserWidth: DefaultEraserWidth,
	}
}

// Pen returns the pen for the current tool.
func (s *Settings) Pen() canvas.Pen {
	if s.Tool == canvas.ToolEraser {
		return canvas.Pen{Tool: canvas.ToolEraser, Width: ClampWidth(s.EraserWidth)}
	}
	return canvas.Pen{Tool: canvas.ToolBrush, Color: s.Color, Width: ClampWidth(s.BrushWidth)}
}

// ClampWidth limits a stroke width to the slider range.
func ClampWidth(w int) int {
	if w < 1 {
		return 1
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}

// Palette is the fixed swatch grid offered by the colour picker.
var Palette = []color.RGBA{
	hex(0xFF0000), hex(0xFF8000), hex(0xFFFF00), hex(0x80FF00), hex(0x00FF00), hex(0x00FF80),
	hex(0x00FFFF), hex(0x0080FF), hex(0x0000FF), hex(0x8000FF), hex(0xFF00FF), hex(0xFF0080),
	hex(0xFFFFFF), hex(0x808080), hex(0x000000), hex(0xFFC0CB), hex(0x90EE90), hex(0xADD8E6),
	hex(0xFFD700), hex(0xFF69B4), hex(0x00CED1), hex(0x9370DB), hex(0x32CD32), hex(0xFF4500),
}

// Widths are the preset stroke widths offered on the toolbar.
var Widths = []int{2, 5, 10, 20, 40}

func hex(v uint32) color.RGBA {
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

// Hex formats an opaque colour as #RRGGBB.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseColor accepts a colour name, a palette index or a #RRGGBB value.
// Colours are always opaque.
func ParseColor(s string) (color.RGBA, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[key]; ok {
		return color.RGBA{c.R, c.G, c.B, 255}, nil
	}
	if idx, err := strconv.Atoi(key); err == nil {
		if idx < 0 || idx >= len(Palette) {
			return color.RGBA{}, fmt.Errorf("palette index %d out of range", idx)
		}
		return Palette[idx], nil
	}
	if strings.HasPrefix(key, "#") && len(key) == 7 {
		v, err := strconv.ParseUint(key[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		return hex(uint32(v)), nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

package canvas

import (
	"fmt"
	"image/color"
	"strings"
)

// Tool selects how a segment is composited onto the surface.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
)

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolEraser:
		return "eraser"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool resolves a tool by name.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brush", "b", "draw", "pen":
		return ToolBrush, nil
	case "eraser", "e", "erase":
		return ToolEraser, nil
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// Pen describes one segment draw.
type Pen struct {
	Tool  Tool
	Color color.RGBA
	Width int
}

package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/colorbook/internal/theme"
)

const (
	DefaultWidth        = 1024
	DefaultHeight       = 720
	DefaultHistoryLimit = 50
	DefaultBrushSize    = 5
	DefaultEraserSize   = 20
	DefaultColor        = "#FF0000"
	DefaultOutput       = "my-coloring-page.png"
	DefaultOrigin       = "app://colorbook"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
	Load bool
}

// GalleryEntry names a colouring page by file path or URL.
type GalleryEntry struct {
	Name   string
	Source string
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	SaveDir      string
	Output       string
	Width        int
	Height       int
	HistoryLimit int
	BrushSize    int
	EraserSize   int
	Color        string
	Fit          string
	GalleryDir   string
	Origin       string
	Notify       Notify
	Gallery      []GalleryEntry
	Themes       map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:        "", // Default to empty to allow fallback to Env/Default
		Output:       DefaultOutput,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		HistoryLimit: DefaultHistoryLimit,
		BrushSize:    DefaultBrushSize,
		EraserSize:   DefaultEraserSize,
		Color:        DefaultColor,
		Fit:          "contain",
		Origin:       DefaultOrigin,
		Themes:       make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "output = %s\n", c.Output)
	fmt.Fprintf(&sb, "width = %d\n", c.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Height)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	fmt.Fprintf(&sb, "brush_size = %d\n", c.BrushSize)
	fmt.Fprintf(&sb, "eraser_size = %d\n", c.EraserSize)
	fmt.Fprintf(&sb, "color = %s\n", c.Color)
	fmt.Fprintf(&sb, "fit = %s\n", c.Fit)
	if c.GalleryDir != "" {
		fmt.Fprintf(&sb, "gallery_dir = %s\n", c.GalleryDir)
	}
	fmt.Fprintf(&sb, "origin = %s\n", c.Origin)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "load = %v\n", c.Notify.Load)
	sb.WriteString("\n")

	if len(c.Gallery) > 0 {
		sb.WriteString("[gallery]\n")
		for _, e := range c.Gallery {
			fmt.Fprintf(&sb, "%s = %s\n", e.Name, e.Source)
		}
		sb.WriteString("\n")
	}

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, toHex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

package main

import (
	"flag"
	"fmt"

	"github.com/example/colorbook/internal/stroke"
)

type galleryCmd struct {
	*root
	fs      *flag.FlagSet
	program string
}

func parseGalleryCmd(args []string, r *root) (*galleryCmd, error) {
	fs := flag.NewFlagSet("gallery", flag.ExitOnError)
	cmd := &galleryCmd{root: r, fs: fs, program: r.subcommand("gallery")}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *galleryCmd) Run() error {
	g, err := c.openGallery()
	if err != nil {
		return err
	}
	entries := g.Entries()
	if len(entries) == 0 {
		return writeln(c.stdout, "no gallery entries configured")
	}
	if err := writeln(c.stdout, "gallery pages (* marks remote images):"); err != nil {
		return err
	}
	for idx, e := range entries {
		marker := " "
		if e.Remote() {
			marker = "*"
		}
		if err := writef(c.stdout, "%s %2d: %-20s %s\n", marker, idx+1, e.Name, e.Source); err != nil {
			return err
		}
	}
	return nil
}

func (c *galleryCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *galleryCmd) Program() string { return c.program }

type colorsCmd struct {
	*root
	fs      *flag.FlagSet
	program string
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs, program: r.subcommand("colors")}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	def := stroke.DefaultColor
	if parsed, err := stroke.ParseColor(c.config.Color); err == nil {
		def = parsed
	}
	if err := writeln(c.stdout, "available palette colors (* marks the default color):"); err != nil {
		return err
	}
	for idx, col := range stroke.Palette {
		marker := " "
		if col == def {
			marker = "*"
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", col.R, col.G, col.B)
		if err := writef(c.stdout, "%s %2d: %s %s\n", marker, idx, stroke.Hex(col), block); err != nil {
			return err
		}
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *colorsCmd) Program() string { return c.program }

type widthsCmd struct {
	*root
	fs      *flag.FlagSet
	program string
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	fs := flag.NewFlagSet("widths", flag.ExitOnError)
	cmd := &widthsCmd{root: r, fs: fs, program: r.subcommand("widths")}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *widthsCmd) Run() error {
	if err := writeln(c.stdout, "available stroke widths (b marks the brush default, e the eraser default):"); err != nil {
		return err
	}
	for _, w := range stroke.Widths {
		marker := " "
		switch w {
		case c.config.BrushSize:
			marker = "b"
		case c.config.EraserSize:
			marker = "e"
		}
		if err := writef(c.stdout, "%s %3dpx\n", marker, w); err != nil {
			return err
		}
	}
	return nil
}

func (c *widthsCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *widthsCmd) Program() string { return c.program }

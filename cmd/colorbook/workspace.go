package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/colorbook/internal/board"
	"github.com/example/colorbook/internal/canvas"
	"github.com/example/colorbook/internal/config"
	"github.com/example/colorbook/internal/gallery"
	"github.com/example/colorbook/internal/imageio"
	"github.com/example/colorbook/internal/stroke"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func closeWithLog(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("%s: close: %v", name, err)
	}
}

// boardOptions converts the drawing defaults from the config into board
// options.
func (r *root) boardOptions() ([]board.Option, error) {
	cfg := r.config
	settings := stroke.DefaultSettings()
	settings.BrushWidth = stroke.ClampWidth(cfg.BrushSize)
	settings.EraserWidth = stroke.ClampWidth(cfg.EraserSize)
	if cfg.Color != "" {
		c, err := stroke.ParseColor(cfg.Color)
		if err != nil {
			return nil, fmt.Errorf("config color: %w", err)
		}
		settings.Color = c
	}
	fit := canvas.FitContain
	if cfg.Fit != "" {
		f, err := canvas.ParseFit(cfg.Fit)
		if err != nil {
			return nil, fmt.Errorf("config fit: %w", err)
		}
		fit = f
	}
	opts := []board.Option{
		board.WithSettings(settings),
		board.WithCapacity(cfg.HistoryLimit),
		board.WithFit(fit),
	}
	if r.notifier != nil {
		opts = append(opts, board.WithNotifier(r.notifier))
	}
	return opts, nil
}

func (r *root) fetcher() *imageio.Fetcher {
	origin := r.config.Origin
	if origin == "" {
		origin = config.DefaultOrigin
	}
	return imageio.NewFetcher(origin)
}

// openGallery merges the configured entries with the images in gallery_dir.
func (r *root) openGallery() (*gallery.Gallery, error) {
	var entries []gallery.Entry
	for _, e := range r.config.Gallery {
		entries = append(entries, gallery.Entry{Name: e.Name, Source: e.Source})
	}
	if dir := r.config.GalleryDir; dir != "" {
		found, err := gallery.ScanDir(dir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		entries = append(entries, found...)
	}
	return gallery.New(entries, r.fetcher()), nil
}

// outputPath places bare file names in save_dir.
func (r *root) outputPath(name string) string {
	if name == "" {
		name = r.config.Output
	}
	if name == "" {
		name = config.DefaultOutput
	}
	if r.config.SaveDir == "" || filepath.Base(name) != name {
		return name
	}
	return filepath.Join(r.config.SaveDir, name)
}

// Package gallery lists the ready-made colouring pages offered to the user and
// loads them from disk or over HTTP.
package gallery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/example/colorbook/internal/imageio"
)

// Entry is one gallery page.
type Entry struct {
	Name   string
	Source string // file path or http(s) URL
}

// Remote reports whether the entry is fetched over HTTP.
func (e Entry) Remote() bool {
	s := strings.ToLower(e.Source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Gallery is an ordered list of pages.
type Gallery struct {
	entries []Entry
	fetcher *imageio.Fetcher
}

// New creates a Gallery. fetcher may be nil when no entry is remote.
func New(entries []Entry, fetcher *imageio.Fetcher) *Gallery {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return &Gallery{entries: out, fetcher: fetcher}
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// ScanDir returns an entry for every image file directly inside dir, sorted
// by file name.
func ScanDir(dir string) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan gallery %s: %w", dir, err)
	}
	var out []Entry
	for _, it := range items {
		if it.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(it.Name()))
		if !imageExts[ext] {
			continue
		}
		out = append(out, Entry{
			Name:   strings.TrimSuffix(it.Name(), filepath.Ext(it.Name())),
			Source: filepath.Join(dir, it.Name()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Entries returns the pages in display order.
func (g *Gallery) Entries() []Entry {
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

// Len returns the number of pages.
func (g *Gallery) Len() int { return len(g.entries) }

// Find resolves a page by case-insensitive name or 1-based position.
func (g *Gallery) Find(key string) (int, bool) {
	key = strings.TrimSpace(key)
	for i, e := range g.entries {
		if strings.EqualFold(e.Name, key) {
			return i, true
		}
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(g.entries) {
		return n - 1, true
	}
	return -1, false
}

// Load decodes the page at idx.
func (g *Gallery) Load(ctx context.Context, idx int) (*imageio.Asset, error) {
	if idx < 0 || idx >= len(g.entries) {
		return nil, fmt.Errorf("gallery index %d out of range", idx)
	}
	e := g.entries[idx]
	if !e.Remote() {
		return imageio.Open(e.Source)
	}
	if g.fetcher == nil {
		return nil, fmt.Errorf("gallery entry %q is remote but no fetcher is configured", e.Name)
	}
	return g.fetcher.Fetch(ctx, e.Source)
}

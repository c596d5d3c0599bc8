package imageio

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxFetchBytes caps how much of a remote image body is read.
const maxFetchBytes = 32 << 20

// Asset is a decoded image together with where it came from.
type Asset struct {
	Image  image.Image
	Format string
	Source string
	// Opaque reports that the asset came from an origin that did not grant
	// cross-origin read access. Drawing it taints the canvas for export.
	Opaque bool
}

// Fetcher downloads remote images.
type Fetcher struct {
	Client *http.Client
	// Origin is sent with each request and compared against the response's
	// Access-Control-Allow-Origin header.
	Origin string
}

// NewFetcher returns a Fetcher with a bounded request timeout.
func NewFetcher(origin string) *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: 30 * time.Second}, Origin: origin}
}

// Fetch downloads and decodes the image at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Asset, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if f.Origin != "" {
		req.Header.Set("Origin", f.Origin)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", u, resp.Status)
	}
	img, format, err := Decode(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	return &Asset{
		Image:  img,
		Format: format,
		Source: u.String(),
		Opaque: !f.allowed(resp.Header.Get("Access-Control-Allow-Origin")),
	}, nil
}

func (f *Fetcher) allowed(allow string) bool {
	allow = strings.TrimSpace(allow)
	switch {
	case allow == "":
		return false
	case allow == "*":
		return true
	default:
		return f.Origin != "" && strings.EqualFold(allow, f.Origin)
	}
}

// Open loads a local file as an Asset. Local files are never opaque.
func Open(path string) (*Asset, error) {
	img, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Asset{Image: img, Source: path}, nil
}

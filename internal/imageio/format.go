package imageio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an export encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatPDF  Format = "pdf"
)

// Formats returns every supported export format.
func Formats() []Format {
	return []Format{FormatPNG, FormatJPEG, FormatBMP, FormatTIFF, FormatPDF}
}

// ParseFormat resolves a format name or common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png", "":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// FormatFromPath picks the format matching the file extension, defaulting to PNG
// when the extension is missing.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

package canvas

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Fit selects how an imported image is placed on the surface.
type Fit int

const (
	// FitContain scales the image to fit entirely inside the surface keeping
	// its aspect ratio, centred with letterboxing.
	FitContain Fit = iota
	// FitStretch scales the image to cover the surface exactly.
	FitStretch
	// FitNone centres the image at its natural size.
	FitNone
)

func (f Fit) String() string {
	switch f {
	case FitContain:
		return "contain"
	case FitStretch:
		return "stretch"
	case FitNone:
		return "none"
	}
	return fmt.Sprintf("Fit(%d)", int(f))
}

// ParseFit resolves a fit mode by name.
func ParseFit(s string) (Fit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "contain":
		return FitContain, nil
	case "stretch", "fill":
		return FitStretch, nil
	case "none", "center", "centre":
		return FitNone, nil
	}
	return 0, fmt.Errorf("unknown fit mode %q", s)
}

// PlaceRect returns where an image of size src lands on a surface of size dst.
func PlaceRect(dst image.Rectangle, src image.Point, fit Fit) image.Rectangle {
	if src.X <= 0 || src.Y <= 0 {
		return image.Rectangle{}
	}
	dw, dh := float64(dst.Dx()), float64(dst.Dy())
	var w, h float64
	switch fit {
	case FitStretch:
		return dst
	case FitNone:
		w, h = float64(src.X), float64(src.Y)
	default:
		ratio := math.Min(dw/float64(src.X), dh/float64(src.Y))
		w, h = float64(src.X)*ratio, float64(src.Y)*ratio
	}
	x := dst.Min.X + int(math.Round((dw-w)/2))
	y := dst.Min.Y + int(math.Round((dh-h)/2))
	return image.Rect(x, y, x+int(math.Round(w)), y+int(math.Round(h)))
}

// BlitImage clears the surface and draws img placed according to fit.
func (s *Surface) BlitImage(img image.Image, fit Fit) {
	s.Clear()
	if img == nil {
		return
	}
	sb := img.Bounds()
	dr := PlaceRect(s.img.Bounds(), sb.Size(), fit)
	if dr.Empty() {
		return
	}
	if dr.Size() == sb.Size() {
		draw.Draw(s.img, dr, img, sb.Min, draw.Over)
		return
	}
	xdraw.CatmullRom.Scale(s.img, dr, img, sb, draw.Over, nil)
}

// BlitOver composites img unscaled with its top-left corner at at, keeping
// the existing content around it.
func (s *Surface) BlitOver(img image.Image, at image.Point) {
	sb := img.Bounds()
	draw.Draw(s.img, sb.Sub(sb.Min).Add(at), img, sb.Min, draw.Over)
}

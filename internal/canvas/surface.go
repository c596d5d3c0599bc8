// Package canvas owns the live raster buffer of a drawing and the primitive
// operations that mutate it.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/example/colorbook/internal/imageio"
)

var (
	// ErrDimensionMismatch is the panic value raised when a frame captured at
	// one size is restored onto a surface of another size.
	ErrDimensionMismatch = errors.New("frame dimensions do not match surface")
	// ErrCrossOriginAsset is returned when exporting a surface that has had an
	// opaque cross-origin image drawn onto it.
	ErrCrossOriginAsset = errors.New("canvas contains a cross-origin image")
)

// Surface is the mutable pixel buffer shown to the user. It is not safe for
// concurrent use.
type Surface struct {
	img     *image.RGBA
	tainted bool
}

// New returns a transparent surface of the given size.
func New(width, height int) *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, clampDim(width), clampDim(height)))}
}

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// Bounds returns the surface dimensions.
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Image exposes the live buffer for rendering. Callers must not modify it.
func (s *Surface) Image() image.Image { return s.img }

// RGBAAt returns the live pixel at (x, y).
func (s *Surface) RGBAAt(x, y int) color.RGBA { return s.img.RGBAAt(x, y) }

// Capture copies the whole buffer into a new Frame.
func (s *Surface) Capture() *Frame { return newFrame(s.img) }

// Restore replaces the whole buffer with the frame's pixels. The frame must
// have been captured at the surface's current size.
func (s *Surface) Restore(f *Frame) {
	if !f.rect.Eq(s.img.Rect) {
		panic(fmt.Errorf("%w: frame %v, surface %v", ErrDimensionMismatch, f.rect, s.img.Rect))
	}
	copy(s.img.Pix, f.pix)
}

// ClearToWhite fills the buffer with opaque white.
func (s *Surface) ClearToWhite() {
	draw.Draw(s.img, s.img.Bounds(), image.White, image.Point{}, draw.Src)
}

// Clear resets every pixel to transparent.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// Resize discards the current content and allocates a buffer of the new size.
// Frames captured before the resize can no longer be restored.
func (s *Surface) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, clampDim(width), clampDim(height)))
	s.tainted = false
}

// MarkTainted records that an opaque cross-origin image was drawn.
func (s *Surface) MarkTainted() { s.tainted = true }

// Tainted reports whether exports are blocked by a cross-origin image.
func (s *Surface) Tainted() bool { return s.tainted }

// Snapshot returns a copy of the current pixels suitable for handing to
// encoders or the clipboard.
func (s *Surface) Snapshot() (*image.RGBA, error) {
	if s.tainted {
		return nil, ErrCrossOriginAsset
	}
	return s.Capture().Image(), nil
}

// Export encodes the current pixels. It has no effect on the surface.
func (s *Surface) Export(w io.Writer, format imageio.Format) error {
	img, err := s.Snapshot()
	if err != nil {
		return err
	}
	return imageio.Encode(w, img, format)
}

package canvas

import (
	"bytes"
	"image"
	"image/color"
)

// Frame is an immutable copy of a Surface's pixels taken at a point in time.
// Frames never share memory with the live buffer.
type Frame struct {
	pix    []uint8
	stride int
	rect   image.Rectangle
}

func newFrame(img *image.RGBA) *Frame {
	pix := make([]uint8, len(img.Pix))
	copy(pix, img.Pix)
	return &Frame{pix: pix, stride: img.Stride, rect: img.Rect}
}

// Bounds returns the pixel dimensions the frame was captured with.
func (f *Frame) Bounds() image.Rectangle { return f.rect }

// RGBAAt returns the premultiplied colour of the pixel at (x, y).
func (f *Frame) RGBAAt(x, y int) color.RGBA {
	if !image.Pt(x, y).In(f.rect) {
		return color.RGBA{}
	}
	i := (y-f.rect.Min.Y)*f.stride + (x-f.rect.Min.X)*4
	s := f.pix[i : i+4 : i+4]
	return color.RGBA{s[0], s[1], s[2], s[3]}
}

// Image returns a new RGBA image holding the frame's pixels. Mutating the
// result does not affect the frame.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(f.rect)
	copy(img.Pix, f.pix)
	return img
}

// Equal reports whether both frames have the same bounds and pixels.
func (f *Frame) Equal(o *Frame) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.rect.Eq(o.rect) && bytes.Equal(f.pix, o.pix)
}

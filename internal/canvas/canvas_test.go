package canvas

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/example/colorbook/internal/imageio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	white = color.RGBA{255, 255, 255, 255}
)

func TestClearToWhite(t *testing.T) {
	s := New(8, 6)
	assert.Equal(t, color.RGBA{}, s.RGBAAt(3, 3))
	s.ClearToWhite()
	for _, p := range []image.Point{{0, 0}, {7, 5}, {4, 2}} {
		assert.Equal(t, white, s.RGBAAt(p.X, p.Y))
	}
}

func TestCaptureDoesNotAlias(t *testing.T) {
	s := New(10, 10)
	s.ClearToWhite()
	f := s.Capture()
	s.DrawSegment(image.Pt(1, 5), image.Pt(8, 5), Pen{Tool: ToolBrush, Color: red, Width: 3})
	assert.Equal(t, red, s.RGBAAt(5, 5))
	assert.Equal(t, white, f.RGBAAt(5, 5), "frame changed after live buffer mutation")

	img := f.Image()
	img.SetRGBA(0, 0, red)
	assert.Equal(t, white, f.RGBAAt(0, 0), "frame changed after mutating its image copy")
}

func TestRestore(t *testing.T) {
	s := New(10, 10)
	s.ClearToWhite()
	blank := s.Capture()
	s.DrawSegment(image.Pt(0, 0), image.Pt(9, 9), Pen{Tool: ToolBrush, Color: red, Width: 2})
	require.False(t, blank.Equal(s.Capture()))
	s.Restore(blank)
	assert.True(t, blank.Equal(s.Capture()))
}

func TestRestoreDimensionMismatchPanics(t *testing.T) {
	s := New(10, 10)
	f := s.Capture()
	s.Resize(12, 10)
	assert.PanicsWithError(t, "frame dimensions do not match surface: frame (0,0)-(10,10), surface (0,0)-(12,10)", func() {
		s.Restore(f)
	})
}

func TestBrushSegmentRoundCaps(t *testing.T) {
	s := New(40, 40)
	s.ClearToWhite()
	s.DrawSegment(image.Pt(10, 20), image.Pt(30, 20), Pen{Tool: ToolBrush, Color: red, Width: 8})

	assert.Equal(t, red, s.RGBAAt(20, 20), "segment centre")
	assert.Equal(t, red, s.RGBAAt(20, 17), "within half width")
	assert.Equal(t, white, s.RGBAAt(20, 27), "outside half width")
	// The round cap extends beyond the end point by the radius.
	assert.Equal(t, red, s.RGBAAt(7, 20), "start cap")
	assert.Equal(t, red, s.RGBAAt(33, 20), "end cap")
	assert.Equal(t, white, s.RGBAAt(37, 20), "past end cap")
	// Round rather than square: the corner of the cap's bounding square is empty.
	assert.Equal(t, white, s.RGBAAt(34, 24))
}

func TestDotForZeroLengthSegment(t *testing.T) {
	s := New(20, 20)
	s.ClearToWhite()
	s.DrawSegment(image.Pt(10, 10), image.Pt(10, 10), Pen{Tool: ToolBrush, Color: red, Width: 6})
	assert.Equal(t, red, s.RGBAAt(10, 10))
	assert.Equal(t, white, s.RGBAAt(18, 10))
}

func TestEraserCutsOut(t *testing.T) {
	s := New(30, 30)
	s.ClearToWhite()
	s.DrawSegment(image.Pt(5, 15), image.Pt(25, 15), Pen{Tool: ToolEraser, Color: red, Width: 6})
	assert.Equal(t, color.RGBA{}, s.RGBAAt(15, 15), "eraser leaves transparent pixels")
	assert.Equal(t, white, s.RGBAAt(15, 25), "eraser stays inside its width")
}

func TestSegmentOutsideSurfaceIsIgnored(t *testing.T) {
	s := New(10, 10)
	s.ClearToWhite()
	before := s.Capture()
	s.DrawSegment(image.Pt(-50, -50), image.Pt(-40, -40), Pen{Tool: ToolBrush, Color: red, Width: 4})
	assert.True(t, before.Equal(s.Capture()))
}

func TestSegmentWithFarEndpoint(t *testing.T) {
	s := New(40, 40)
	s.ClearToWhite()
	s.DrawSegment(image.Pt(10, 10), image.Pt(1000000, 1000000), Pen{Tool: ToolBrush, Color: red, Width: 6})

	assert.Equal(t, red, s.RGBAAt(10, 10), "start point")
	assert.Equal(t, red, s.RGBAAt(25, 25), "on the diagonal")
	assert.Equal(t, red, s.RGBAAt(39, 39), "edge of the surface")
	assert.Equal(t, white, s.RGBAAt(30, 10), "off the diagonal")
	assert.Equal(t, white, s.RGBAAt(4, 4), "behind the start cap")
}

func TestFarSegmentMatchesShortOne(t *testing.T) {
	pen := Pen{Tool: ToolBrush, Color: red, Width: 5}
	short := New(30, 30)
	short.ClearToWhite()
	short.DrawSegment(image.Pt(5, 15), image.Pt(60, 15), pen)
	far := New(30, 30)
	far.ClearToWhite()
	far.DrawSegment(image.Pt(5, 15), image.Pt(5000000, 15), pen)
	assert.True(t, short.Capture().Equal(far.Capture()))
}

func TestClipSegment(t *testing.T) {
	ax, ay, bx, by, ok := clipSegment(-10, 5, 30, 5, 0, 0, 20, 10)
	require.True(t, ok)
	assert.Equal(t, [4]float64{0, 5, 20, 5}, [4]float64{ax, ay, bx, by})

	_, _, _, _, ok = clipSegment(-10, -5, 30, -5, 0, 0, 20, 10)
	assert.False(t, ok, "parallel and outside")

	_, _, _, _, ok = clipSegment(25, 0, 40, 30, 0, 0, 20, 10)
	assert.False(t, ok, "passes beside the rectangle")
}

func TestPlaceRect(t *testing.T) {
	dst := image.Rect(0, 0, 200, 100)
	cases := []struct {
		name string
		src  image.Point
		fit  Fit
		want image.Rectangle
	}{
		{"contain wide", image.Pt(400, 100), FitContain, image.Rect(0, 25, 200, 75)},
		{"contain tall", image.Pt(50, 100), FitContain, image.Rect(75, 0, 125, 100)},
		{"contain upscale", image.Pt(20, 10), FitContain, image.Rect(0, 0, 200, 100)},
		{"stretch", image.Pt(20, 30), FitStretch, dst},
		{"none", image.Pt(20, 10), FitNone, image.Rect(90, 45, 110, 55)},
		{"empty", image.Pt(0, 10), FitContain, image.Rectangle{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PlaceRect(dst, tc.src, tc.fit))
		})
	}
}

func TestBlitImageLetterboxes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 5))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:i+4], []uint8{0, 0, 255, 255})
	}
	s := New(20, 20)
	s.ClearToWhite()
	s.BlitImage(src, FitContain)

	blue := color.RGBA{B: 255, A: 255}
	assert.Equal(t, blue, s.RGBAAt(10, 10), "image centred")
	assert.Equal(t, color.RGBA{}, s.RGBAAt(10, 1), "letterbox is cleared, not white")
	assert.Equal(t, color.RGBA{}, s.RGBAAt(10, 18))
}

func TestExportTainted(t *testing.T) {
	s := New(4, 4)
	s.ClearToWhite()
	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf, imageio.FormatPNG))
	assert.NotZero(t, buf.Len())

	s.MarkTainted()
	buf.Reset()
	assert.ErrorIs(t, s.Export(&buf, imageio.FormatPNG), ErrCrossOriginAsset)

	// Drawing remains possible on a tainted surface.
	s.DrawSegment(image.Pt(1, 1), image.Pt(2, 2), Pen{Tool: ToolBrush, Color: red, Width: 1})
	s.Resize(4, 4)
	assert.False(t, s.Tainted())
}

func TestParseToolAndFit(t *testing.T) {
	tool, err := ParseTool("Eraser")
	require.NoError(t, err)
	assert.Equal(t, ToolEraser, tool)
	_, err = ParseTool("lasso")
	assert.Error(t, err)

	fit, err := ParseFit("stretch")
	require.NoError(t, err)
	assert.Equal(t, FitStretch, fit)
	assert.Equal(t, "contain", FitContain.String())
}

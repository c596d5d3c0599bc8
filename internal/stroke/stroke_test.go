package stroke

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/colorbook/internal/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type segment struct {
	from, to image.Point
	pen      canvas.Pen
}

type recorder struct {
	segments []segment
	commits  int
}

func (r *recorder) DrawSegment(from, to image.Point, pen canvas.Pen) {
	r.segments = append(r.segments, segment{from, to, pen})
}

func (r *recorder) RecordCommit() { r.commits++ }

func TestStrokeLifecycle(t *testing.T) {
	rec := &recorder{}
	m := New(rec, rec, nil)
	assert.False(t, m.Active())

	m.PointerDown(image.Pt(1, 1))
	assert.True(t, m.Active())
	assert.Empty(t, rec.segments, "pointer down draws nothing")

	m.PointerMove(image.Pt(4, 1))
	m.PointerMove(image.Pt(4, 6))
	require.Len(t, rec.segments, 2)
	assert.Equal(t, image.Pt(1, 1), rec.segments[0].from)
	assert.Equal(t, image.Pt(4, 1), rec.segments[0].to)
	assert.Equal(t, image.Pt(4, 1), rec.segments[1].from)
	assert.Equal(t, image.Pt(4, 6), rec.segments[1].to)
	assert.Equal(t, 0, rec.commits, "moves never commit")

	assert.True(t, m.PointerUp())
	assert.False(t, m.Active())
	assert.Equal(t, 1, rec.commits)
	assert.Equal(t, 2, m.Segments())
}

func TestIdleEventsIgnored(t *testing.T) {
	rec := &recorder{}
	m := New(rec, rec, nil)
	m.PointerMove(image.Pt(3, 3))
	assert.False(t, m.PointerUp())
	assert.False(t, m.PointerLeave())
	assert.Empty(t, rec.segments)
	assert.Zero(t, rec.commits)
}

func TestPointerLeaveCommits(t *testing.T) {
	rec := &recorder{}
	m := New(rec, rec, nil)
	m.PointerDown(image.Pt(0, 0))
	m.PointerMove(image.Pt(2, 2))
	assert.True(t, m.PointerLeave())
	assert.Equal(t, 1, rec.commits)
	assert.False(t, m.PointerUp(), "stroke already finished")
	assert.Equal(t, 1, rec.commits)
}

func TestClickWithoutMoveCommits(t *testing.T) {
	rec := &recorder{}
	m := New(rec, rec, nil)
	m.PointerDown(image.Pt(5, 5))
	m.PointerUp()
	assert.Empty(t, rec.segments)
	assert.Equal(t, 1, rec.commits)
}

func TestSettingsReadPerSegment(t *testing.T) {
	rec := &recorder{}
	s := DefaultSettings()
	m := New(rec, rec, s)
	m.PointerDown(image.Pt(0, 0))
	m.PointerMove(image.Pt(1, 0))
	s.Color = color.RGBA{B: 255, A: 255}
	s.BrushWidth = 12
	m.PointerMove(image.Pt(2, 0))
	s.Tool = canvas.ToolEraser
	m.PointerMove(image.Pt(3, 0))
	m.PointerUp()

	require.Len(t, rec.segments, 3)
	assert.Equal(t, canvas.Pen{Tool: canvas.ToolBrush, Color: DefaultColor, Width: DefaultBrushWidth}, rec.segments[0].pen)
	assert.Equal(t, canvas.Pen{Tool: canvas.ToolBrush, Color: color.RGBA{B: 255, A: 255}, Width: 12}, rec.segments[1].pen)
	assert.Equal(t, canvas.Pen{Tool: canvas.ToolEraser, Width: DefaultEraserWidth}, rec.segments[2].pen)
	assert.Equal(t, 1, rec.commits)
}

func TestDrawsOntoSurface(t *testing.T) {
	surface := canvas.New(20, 20)
	surface.ClearToWhite()
	rec := &recorder{}
	m := New(surface, rec, DefaultSettings())
	m.PointerDown(image.Pt(2, 10))
	m.PointerMove(image.Pt(18, 10))
	m.PointerUp()
	assert.Equal(t, DefaultColor, surface.RGBAAt(10, 10))
	assert.Equal(t, 1, rec.commits)
}

func TestClampWidth(t *testing.T) {
	assert.Equal(t, 1, ClampWidth(0))
	assert.Equal(t, 7, ClampWidth(7))
	assert.Equal(t, MaxWidth, ClampWidth(1000))
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#FF0000", color.RGBA{255, 0, 0, 255}},
		{"#00ced1", color.RGBA{0, 0xCE, 0xD1, 255}},
		{"navy", color.RGBA{0, 0, 128, 255}},
		{"14", color.RGBA{0, 0, 0, 255}},
		{" 0 ", color.RGBA{255, 0, 0, 255}},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
	for _, bad := range []string{"", "#12", "#GGGGGG", "24", "chartreuse-ish"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "#FF4500", Hex(Palette[len(Palette)-1]))
}

package board

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/colorbook/internal/canvas"
	"github.com/example/colorbook/internal/history"
	"github.com/example/colorbook/internal/imageio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	saves, copies, loads []string
}

func (f *fakeNotifier) Save(p string) { f.saves = append(f.saves, p) }
func (f *fakeNotifier) Copy(d string) { f.copies = append(f.copies, d) }
func (f *fakeNotifier) Load(d string) { f.loads = append(f.loads, d) }

var white = color.RGBA{255, 255, 255, 255}

func drawStroke(b *Board, from image.Point, pts ...image.Point) {
	b.PointerDown(from)
	for _, p := range pts {
		b.PointerMove(p)
	}
	b.PointerUp()
}

func TestNewBoardIsWhiteWithOneFrame(t *testing.T) {
	b := New(40, 30)
	assert.Equal(t, image.Rect(0, 0, 40, 30), b.Bounds())
	assert.Equal(t, white, b.Surface().RGBAAt(20, 15))
	assert.Equal(t, history.State{Len: 1, Cursor: 0, Capacity: history.DefaultCapacity}, b.History().State())
}

func TestStrokeUndoScenario(t *testing.T) {
	b := New(40, 40)
	blank := b.Surface().Capture()

	drawStroke(b, image.Pt(5, 10), image.Pt(35, 10))
	afterA := b.Surface().Capture()
	drawStroke(b, image.Pt(5, 30), image.Pt(35, 30))
	assert.Equal(t, 3, b.History().Len())

	st := b.Undo()
	assert.Equal(t, Status{Message: "Undo performed", OK: true}, st)
	assert.True(t, afterA.Equal(b.Surface().Capture()))

	b.Undo()
	assert.True(t, blank.Equal(b.Surface().Capture()))

	st = b.Undo()
	assert.Equal(t, Status{Message: "Nothing to undo"}, st)
	assert.Equal(t, st, b.Status())
	assert.True(t, blank.Equal(b.Surface().Capture()))
}

func TestRedoAfterNewStrokeFails(t *testing.T) {
	b := New(20, 20)
	drawStroke(b, image.Pt(1, 1), image.Pt(18, 1))
	drawStroke(b, image.Pt(1, 5), image.Pt(18, 5))
	b.Undo()
	drawStroke(b, image.Pt(1, 9), image.Pt(18, 9))
	assert.Equal(t, Status{Message: "Nothing to redo"}, b.Redo())
}

func TestLoadImageScenario(t *testing.T) {
	b := New(20, 20)
	blank := b.Surface().Capture()

	src := image.NewRGBA(image.Rect(0, 0, 10, 5))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:i+4], []uint8{0, 128, 0, 255})
	}
	notes := &fakeNotifier{}
	b.notifier = notes
	st := b.LoadAsset(&imageio.Asset{Image: src, Source: "page.png"}, "Image uploaded successfully!")
	assert.True(t, st.OK)
	assert.Equal(t, []string{"page.png"}, notes.loads)
	loaded := b.Surface().Capture()
	assert.Equal(t, color.RGBA{0, 128, 0, 255}, loaded.RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{}, loaded.RGBAAt(10, 1), "letterbox")

	b.Undo()
	assert.True(t, blank.Equal(b.Surface().Capture()))
	b.Redo()
	assert.True(t, loaded.Equal(b.Surface().Capture()))
}

func TestResizeReinitialisesHistory(t *testing.T) {
	b := New(20, 20)
	drawStroke(b, image.Pt(2, 2), image.Pt(10, 2))
	drawStroke(b, image.Pt(2, 6), image.Pt(10, 6))
	drawn := b.Surface().RGBAAt(5, 2)

	b.Resize(30, 25)
	assert.Equal(t, image.Rect(0, 0, 30, 25), b.Bounds())
	assert.Equal(t, 1, b.History().Len())
	assert.Equal(t, drawn, b.Surface().RGBAAt(5, 2), "drawing kept at top-left")
	assert.Equal(t, white, b.Surface().RGBAAt(28, 23), "new area is white")
	assert.NotPanics(t, func() { b.Undo() })
	assert.Equal(t, Status{Message: "Nothing to undo"}, b.Status())
}

func TestResizeDuringStrokeCommitsFirst(t *testing.T) {
	b := New(20, 20)
	b.PointerDown(image.Pt(1, 1))
	b.PointerMove(image.Pt(5, 5))
	b.Resize(10, 10)
	assert.False(t, b.Stroking())
	assert.Equal(t, 1, b.History().Len())
}

func TestSettings(t *testing.T) {
	b := New(10, 10)
	assert.Equal(t, "Color selected: #0000FF", b.SelectColor(color.RGBA{B: 255}).Message)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, b.Settings().Color)
	b.SelectTool(canvas.ToolEraser)
	assert.Equal(t, canvas.ToolEraser, b.Settings().Pen().Tool)
	b.SetBrushWidth(0)
	assert.Equal(t, 1, b.Settings().BrushWidth)
	b.SetEraserWidth(30)
	assert.Equal(t, 30, b.Settings().Pen().Width)
}

func TestSaveAndTaint(t *testing.T) {
	dir := t.TempDir()
	notes := &fakeNotifier{}
	b := New(10, 10, WithNotifier(notes))

	path := filepath.Join(dir, "my-coloring-page.png")
	st, err := b.Save(path)
	require.NoError(t, err)
	assert.Equal(t, "Artwork saved!", st.Message)
	assert.Equal(t, []string{path}, notes.saves)
	img, err := imageio.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())

	b.LoadAsset(&imageio.Asset{Image: image.NewRGBA(image.Rect(0, 0, 2, 2)), Opaque: true}, "Image loaded from gallery")
	tainted := filepath.Join(dir, "tainted.png")
	st, err = b.Save(tainted)
	assert.ErrorIs(t, err, canvas.ErrCrossOriginAsset)
	assert.Equal(t, "Save failed due to cross-origin image!", st.Message)
	_, statErr := os.Stat(tainted)
	assert.True(t, os.IsNotExist(statErr))

	// The board stays drawable.
	drawStroke(b, image.Pt(1, 1), image.Pt(8, 8))
	assert.Equal(t, 3, b.History().Len())
}

func TestSaveUnknownExtension(t *testing.T) {
	b := New(4, 4)
	_, err := b.Save(filepath.Join(t.TempDir(), "out.xcf"))
	assert.Error(t, err)
}

func TestCopy(t *testing.T) {
	notes := &fakeNotifier{}
	b := New(4, 4, WithNotifier(notes))
	var got image.Image
	st, err := b.Copy(func(img image.Image) error { got = img; return nil })
	require.NoError(t, err)
	assert.Equal(t, "Copied to clipboard", st.Message)
	assert.Equal(t, 4, got.Bounds().Dx())
	assert.Len(t, notes.copies, 1)

	boom := errors.New("no display")
	_, err = b.Copy(func(image.Image) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestCapacityOption(t *testing.T) {
	var last history.State
	b := New(8, 8, WithCapacity(3), WithHistoryListener(func(s history.State) { last = s }))
	for i := 0; i < 5; i++ {
		drawStroke(b, image.Pt(0, i), image.Pt(7, i))
	}
	assert.Equal(t, history.State{Len: 3, Cursor: 2, Capacity: 3}, last)
}

func TestLoadFile(t *testing.T) {
	b := New(8, 8)
	_, err := b.LoadFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
	assert.Equal(t, 1, b.History().Len())
}

// Package board wires the canvas, its history and the stroke machine into the
// single object every front end drives.
package board

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/example/colorbook/internal/canvas"
	"github.com/example/colorbook/internal/history"
	"github.com/example/colorbook/internal/imageio"
	"github.com/example/colorbook/internal/stroke"
)

// Status is a transient notice for the user.
type Status struct {
	Message string
	OK      bool
}

func ok(msg string) Status   { return Status{Message: msg, OK: true} }
func fail(msg string) Status { return Status{Message: msg} }

// Notifier receives completed user actions. *notify.Notifier satisfies it.
type Notifier interface {
	Save(path string)
	Copy(detail string)
	Load(detail string)
}

// Board is a drawing session. It is not safe for concurrent use; front ends
// call it from their event loop only.
type Board struct {
	surface  *canvas.Surface
	history  *history.Manager
	stroke   *stroke.Machine
	settings *stroke.Settings
	fit      canvas.Fit
	notifier Notifier
	status   Status

	capacity int
	listener func(history.State)
}

// Option modifies a Board during creation.
type Option func(*Board)

// WithCapacity bounds the undo history.
func WithCapacity(n int) Option { return func(b *Board) { b.capacity = n } }

// WithSettings supplies the live tool settings.
func WithSettings(s *stroke.Settings) Option { return func(b *Board) { b.settings = s } }

// WithFit selects how imported images are placed.
func WithFit(f canvas.Fit) Option { return func(b *Board) { b.fit = f } }

// WithNotifier registers a notifier for saves, copies and loads.
func WithNotifier(n Notifier) Option { return func(b *Board) { b.notifier = n } }

// WithHistoryListener registers a callback for timeline changes.
func WithHistoryListener(fn func(history.State)) Option {
	return func(b *Board) { b.listener = fn }
}

// New creates a white board of the given size with a single history frame.
func New(width, height int, opts ...Option) *Board {
	b := &Board{capacity: history.DefaultCapacity, fit: canvas.FitContain}
	for _, o := range opts {
		o(b)
	}
	if b.settings == nil {
		b.settings = stroke.DefaultSettings()
	}
	b.surface = canvas.New(width, height)
	b.history = history.New(b.surface, history.WithCapacity(b.capacity), history.WithListener(b.listener))
	b.stroke = stroke.New(b.surface, b.history, b.settings)
	b.surface.ClearToWhite()
	b.history.Init()
	return b
}

func (b *Board) Surface() *canvas.Surface   { return b.surface }
func (b *Board) History() *history.Manager  { return b.history }
func (b *Board) Settings() *stroke.Settings { return b.settings }
func (b *Board) Image() image.Image         { return b.surface.Image() }
func (b *Board) Bounds() image.Rectangle    { return b.surface.Bounds() }
func (b *Board) Stroking() bool             { return b.stroke.Active() }

// Status returns the most recent notice.
func (b *Board) Status() Status { return b.status }

func (b *Board) report(s Status) Status {
	b.status = s
	return s
}

// Resize changes the surface dimensions. The visible drawing is kept anchored
// at the top-left corner over white, and history restarts from it because
// older frames no longer match the buffer size.
func (b *Board) Resize(width, height int) {
	if b.surface.Bounds().Size() == image.Pt(width, height) {
		return
	}
	if b.stroke.Active() {
		b.stroke.PointerUp()
	}
	old := b.surface.Capture().Image()
	tainted := b.surface.Tainted()
	b.surface.Resize(width, height)
	b.surface.ClearToWhite()
	b.surface.BlitOver(old, image.Point{})
	if tainted {
		b.surface.MarkTainted()
	}
	b.history.Init()
}

// PointerDown starts a stroke at p in buffer coordinates.
func (b *Board) PointerDown(p image.Point) { b.stroke.PointerDown(p) }

// PointerMove extends the active stroke to p.
func (b *Board) PointerMove(p image.Point) { b.stroke.PointerMove(p) }

// PointerUp finishes the active stroke and records it in history.
func (b *Board) PointerUp() { b.stroke.PointerUp() }

// PointerLeave finishes the active stroke the same way as PointerUp.
func (b *Board) PointerLeave() { b.stroke.PointerLeave() }

// Undo steps back one edit.
func (b *Board) Undo() Status {
	if err := b.history.Undo(); err != nil {
		return b.report(fail("Nothing to undo"))
	}
	return b.report(ok("Undo performed"))
}

// Redo re-applies one undone edit.
func (b *Board) Redo() Status {
	if err := b.history.Redo(); err != nil {
		return b.report(fail("Nothing to redo"))
	}
	return b.report(ok("Redo performed"))
}

// SelectTool switches between brush and eraser.
func (b *Board) SelectTool(t canvas.Tool) Status {
	b.settings.Tool = t
	return b.report(ok(fmt.Sprintf("Tool selected: %s", t)))
}

// SelectColor sets the brush colour.
func (b *Board) SelectColor(c color.RGBA) Status {
	c.A = 255
	b.settings.Color = c
	return b.report(ok(fmt.Sprintf("Color selected: %s", stroke.Hex(c))))
}

// SetBrushWidth sets the brush width in pixels.
func (b *Board) SetBrushWidth(w int) Status {
	b.settings.BrushWidth = stroke.ClampWidth(w)
	return b.report(ok(fmt.Sprintf("Brush size: %d", b.settings.BrushWidth)))
}

// SetEraserWidth sets the eraser width in pixels.
func (b *Board) SetEraserWidth(w int) Status {
	b.settings.EraserWidth = stroke.ClampWidth(w)
	return b.report(ok(fmt.Sprintf("Eraser size: %d", b.settings.EraserWidth)))
}

// LoadImage replaces the drawing with img and records it as one edit.
func (b *Board) LoadImage(img image.Image) {
	b.surface.BlitImage(img, b.fit)
	b.history.RecordCommit()
}

// LoadAsset loads a decoded asset, marking the surface when the asset's
// origin does not permit export. notice is reported on success.
func (b *Board) LoadAsset(a *imageio.Asset, notice string) Status {
	if a == nil || a.Image == nil {
		return b.report(fail("No image to load"))
	}
	if a.Opaque {
		b.surface.MarkTainted()
	}
	b.LoadImage(a.Image)
	if b.notifier != nil {
		b.notifier.Load(a.Source)
	}
	return b.report(ok(notice))
}

// LoadFile decodes the image at path and loads it.
func (b *Board) LoadFile(path string) (Status, error) {
	a, err := imageio.Open(path)
	if err != nil {
		return b.report(fail("Image upload failed")), err
	}
	return b.LoadAsset(a, "Image uploaded successfully!"), nil
}

// Snapshot returns a copy of the drawing for export.
func (b *Board) Snapshot() (*image.RGBA, error) { return b.surface.Snapshot() }

// Export encodes the drawing without touching history.
func (b *Board) Export(w io.Writer, format imageio.Format) error {
	return b.surface.Export(w, format)
}

// Save writes the drawing to path, choosing the format from the extension.
func (b *Board) Save(path string) (Status, error) {
	format, err := imageio.FormatFromPath(path)
	if err != nil {
		return b.report(fail("Save failed")), err
	}
	img, err := b.surface.Snapshot()
	if errors.Is(err, canvas.ErrCrossOriginAsset) {
		return b.report(fail("Save failed due to cross-origin image!")), err
	}
	out, err := os.Create(path)
	if err != nil {
		return b.report(fail("Save failed")), fmt.Errorf("save %s: %w", path, err)
	}
	if err := imageio.Encode(out, img, format); err != nil {
		out.Close()
		if rmErr := os.Remove(path); rmErr != nil {
			log.Printf("remove partial %s: %v", path, rmErr)
		}
		return b.report(fail("Save failed")), fmt.Errorf("save %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return b.report(fail("Save failed")), fmt.Errorf("save %s: %w", path, err)
	}
	if b.notifier != nil {
		b.notifier.Save(path)
	}
	return b.report(ok("Artwork saved!")), nil
}

// Copy hands a snapshot of the drawing to write, typically the clipboard.
func (b *Board) Copy(write func(image.Image) error) (Status, error) {
	img, err := b.surface.Snapshot()
	if errors.Is(err, canvas.ErrCrossOriginAsset) {
		return b.report(fail("Copy failed due to cross-origin image!")), err
	}
	if err := write(img); err != nil {
		return b.report(fail("Copy failed")), err
	}
	if b.notifier != nil {
		b.notifier.Copy("drawing")
	}
	return b.report(ok("Copied to clipboard")), nil
}

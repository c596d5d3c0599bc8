package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/colorbook/internal/canvas"
	"github.com/example/colorbook/internal/stroke"
)

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// render paints the whole window into dst.
func (a *AppState) render(dst *image.RGBA) {
	t := a.theme
	draw.Draw(dst, dst.Bounds(), &image.Uniform{t.Background}, image.Point{}, draw.Src)
	a.drawCanvas(dst)
	a.drawToolbar(dst)
	a.drawStatusBar(dst)
	a.drawMessage(dst)
}

// drawCanvas shows the drawing over a checkerboard so erased pixels read as
// transparent.
func (a *AppState) drawCanvas(dst *image.RGBA) {
	rect := a.lay.canvas.Intersect(a.board.Bounds().Add(a.lay.canvas.Min))
	if rect.Empty() {
		return
	}
	if a.backdrop == nil || a.backdrop.Bounds() != rect {
		a.backdrop = image.NewRGBA(rect)
		drawCheckerboard(a.backdrop, rect, checkerSquare, a.theme.CheckerLight, a.theme.CheckerDark)
	}
	draw.Draw(dst, rect, a.backdrop, rect.Min, draw.Src)
	draw.Draw(dst, rect, a.board.Image(), image.Point{}, draw.Over)
}

func (a *AppState) drawToolbar(dst *image.RGBA) {
	t := a.theme
	draw.Draw(dst, a.lay.toolbar, &image.Uniform{t.ToolbarBackground}, image.Point{}, draw.Src)

	settings := a.board.Settings()
	for i, cb := range a.buttons {
		state := StateDefault
		ab := cb.Button.(*ActionButton)
		switch {
		case ab.action == actionBrush && settings.Tool == canvas.ToolBrush,
			ab.action == actionEraser && settings.Tool == canvas.ToolEraser:
			state = StateActive
		case !a.enabled(ab.action):
			state = StateDisabled
		case a.hover == (hit{region: regionButton, index: i}):
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	for i, r := range a.lay.swatches {
		c := stroke.Palette[i]
		draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Src)
		border := t.SwatchBorder
		thick := 1
		if c == settings.Color {
			border = t.SwatchSelected
			thick = 2
		} else if a.hover == (hit{region: regionSwatch, index: i}) {
			draw.Draw(dst, r, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		drawRect(dst, r, border, thick)
	}

	cur := a.currentWidth()
	preview := settings.Color
	if settings.Tool == canvas.ToolEraser {
		preview = t.Foreground
	}
	for i, r := range a.lay.widths {
		w := stroke.Widths[i]
		bg := t.ToolbarBackground
		if w == cur {
			bg = t.ButtonBackgroundPress
		} else if a.hover == (hit{region: regionWidth, index: i}) {
			bg = t.ButtonBackgroundHover
		}
		draw.Draw(dst, r, &image.Uniform{bg}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(t.ButtonText), Face: basicfont.Face7x13,
			Dot: fixed.P(r.Min.X+toolbarPad, r.Min.Y+13)}
		d.DrawString(fmt.Sprintf("%d", w))
		radius := w / 2
		if limit := widthRowH/2 - 2; radius > limit {
			radius = limit
		}
		fillCircle(dst, r.Max.X-widthRowH, r.Min.Y+widthRowH/2, radius, preview)
	}
}

// statusLine summarises the live settings and history position.
func (a *AppState) statusLine() string {
	s := a.board.Settings()
	h := a.board.History().State()
	line := fmt.Sprintf("%s %dpx", s.Tool, a.currentWidth())
	if s.Tool == canvas.ToolBrush {
		line += "  " + stroke.Hex(s.Color)
	}
	line += fmt.Sprintf("  history %d/%d", h.Cursor+1, h.Len)
	if a.board.Surface().Tainted() {
		line += "  (cross-origin)"
	}
	return line
}

func (a *AppState) drawStatusBar(dst *image.RGBA) {
	t := a.theme
	draw.Draw(dst, a.lay.status, &image.Uniform{t.StatusBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(t.StatusText), Face: basicfont.Face7x13,
		Dot: fixed.P(a.lay.status.Min.X+toolbarPad, a.lay.status.Min.Y+16)}
	d.DrawString(a.statusLine())
}

// messageVisible reports whether the last notice has not yet expired.
func (a *AppState) messageVisible() bool {
	return a.message != "" && a.now().Before(a.messageUntil)
}

func (a *AppState) drawMessage(dst *image.RGBA) {
	if !a.messageVisible() {
		return
	}
	t := a.theme
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(t.StatusText), Face: messageFace}
	wmsg := d.MeasureString(a.message).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	area := a.lay.canvas
	px := area.Min.X + (area.Dx()-wmsg)/2
	py := area.Min.Y + (area.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{t.StatusBackground}, image.Point{}, draw.Over)
	border := t.ButtonActive
	if !a.messageOK {
		border = color.RGBA{200, 40, 40, 255}
	}
	drawRect(dst, rect, border, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(a.message)
}

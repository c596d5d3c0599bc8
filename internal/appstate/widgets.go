package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/colorbook/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateActive
	StateDisabled
	buttonStates
)

// Button represents an interactive toolbar element.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [buttonStates]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [buttonStates]*image.RGBA{}
	}
}

// ActionButton runs a named action when clicked.
type ActionButton struct {
	label  string
	action string
	theme  *theme.Theme
	rect   image.Rectangle
	// onActivate receives action when the button is clicked.
	onActivate func(action string)
}

func (ab *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	bg := ab.theme.ButtonBackground
	fg := ab.theme.ButtonText
	switch state {
	case StateHover:
		bg = ab.theme.ButtonBackgroundHover
	case StatePressed:
		bg = ab.theme.ButtonBackgroundPress
	case StateActive:
		bg = ab.theme.ButtonActive
	case StateDisabled:
		fg = mix(fg, bg)
	}
	inner := ab.rect.Inset(1)
	draw.Draw(dst, ab.rect, &image.Uniform{ab.theme.ToolbarBackground}, image.Point{}, draw.Src)
	draw.Draw(dst, inner, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, inner, ab.theme.ButtonBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(ab.rect.Min.X+toolbarPad, ab.rect.Min.Y+16)}
	d.DrawString(ab.label)
}

func (ab *ActionButton) Rect() image.Rectangle { return ab.rect }

func (ab *ActionButton) SetRect(r image.Rectangle) { ab.rect = r }

func (ab *ActionButton) Activate() {
	if ab.onActivate != nil {
		ab.onActivate(ab.action)
	}
}

// KeyShortcut is one key combination bound to an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

var shortcuts = map[KeyShortcut]string{
	{Rune: 'b'}:                            actionBrush,
	{Rune: 'e'}:                            actionEraser,
	{Rune: 'z', Modifiers: key.ModControl}: actionUndo,
	{Rune: 'y', Modifiers: key.ModControl}: actionRedo,
	{Rune: 'z', Modifiers: key.ModControl | key.ModShift}: actionRedo,
	{Rune: 's', Modifiers: key.ModControl}:                actionSave,
	{Rune: 'c', Modifiers: key.ModControl}:                actionCopy,
	{Rune: 'v', Modifiers: key.ModControl}:                actionPaste,
	{Rune: 'g'}:                                           actionGallery,
	{Rune: '['}:                                           actionSmaller,
	{Rune: ']'}:                                           actionLarger,
	{Rune: 'q'}:                                           actionQuit,
	{Code: key.CodeEscape}:                                actionQuit,
}

// actionForKey resolves a key press to an action name. Shift is ignored
// for plain letters so that B and b both select the brush.
func actionForKey(e key.Event) (string, bool) {
	mods := e.Modifiers & (key.ModControl | key.ModShift)
	if e.Rune > 0 {
		r := unicode.ToLower(e.Rune)
		if name, ok := shortcuts[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return name, true
		}
		if mods&key.ModShift != 0 {
			if name, ok := shortcuts[KeyShortcut{Rune: r, Modifiers: mods &^ key.ModShift}]; ok {
				return name, true
			}
		}
	}
	name, ok := shortcuts[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return name, ok
}

func drawRect(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	src := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}

// drawCheckerboard fills rect of dst with a checkerboard pattern anchored at
// rect.Min.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x-rect.Min.X)/size+(y-rect.Min.Y)/size)%2 == 0 {
				dst.SetRGBA(x, y, light)
			} else {
				dst.SetRGBA(x, y, dark)
			}
		}
	}
}

func fillCircle(dst *image.RGBA, cx, cy, r int, col color.RGBA) {
	if r < 1 {
		r = 1
	}
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				dst.SetRGBA(cx+x, cy+y, col)
			}
		}
	}
}

// mix averages two colours.
func mix(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
		A: uint8((uint16(a.A) + uint16(b.A)) / 2),
	}
}

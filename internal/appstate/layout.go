package appstate

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	statusHeight  = 24
	buttonHeight  = 24
	swatchSize    = 16
	swatchPitch   = 18
	widthRowH     = 18
	toolbarPad    = 4
	minToolbarW   = toolbarPad + 6*swatchPitch
	checkerSquare = 8
)

// ProgramTitle is shown in the window title bar.
const ProgramTitle = "Colorbook"

type region int

const (
	regionNone region = iota
	regionButton
	regionSwatch
	regionWidth
	regionCanvas
)

// hit identifies the element under a window point.
type hit struct {
	region region
	index  int
}

var noHit = hit{region: regionNone, index: -1}

// layout places the toolbar, canvas and status bar inside the window.
// The canvas is drawn unscaled, so window and buffer pixels map 1:1.
type layout struct {
	toolbar  image.Rectangle
	canvas   image.Rectangle
	status   image.Rectangle
	buttons  []image.Rectangle
	swatches []image.Rectangle
	widths   []image.Rectangle
}

// toolbarWidthFor returns a toolbar wide enough for every label and at
// least six swatch columns.
func toolbarWidthFor(labels []string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := minToolbarW
	for _, l := range labels {
		if lw := d.MeasureString(l).Ceil() + 2*toolbarPad; lw > w {
			w = lw
		}
	}
	return w
}

func computeLayout(winW, winH, toolbarW, nButtons, nSwatches, nWidths int) layout {
	if winH < statusHeight {
		winH = statusHeight
	}
	if winW < toolbarW {
		winW = toolbarW
	}
	body := winH - statusHeight
	l := layout{
		toolbar: image.Rect(0, 0, toolbarW, body),
		canvas:  image.Rect(toolbarW, 0, winW, body),
		status:  image.Rect(0, body, winW, winH),
	}
	y := toolbarPad
	for i := 0; i < nButtons; i++ {
		l.buttons = append(l.buttons, image.Rect(0, y, toolbarW, y+buttonHeight))
		y += buttonHeight
	}
	y += toolbarPad
	cols := (toolbarW - toolbarPad) / swatchPitch
	if cols < 1 {
		cols = 1
	}
	for i := 0; i < nSwatches; i++ {
		x := toolbarPad + (i%cols)*swatchPitch
		sy := y + (i/cols)*swatchPitch
		l.swatches = append(l.swatches, image.Rect(x, sy, x+swatchSize, sy+swatchSize))
	}
	y += ((nSwatches + cols - 1) / cols) * swatchPitch
	y += toolbarPad
	for i := 0; i < nWidths; i++ {
		l.widths = append(l.widths, image.Rect(0, y, toolbarW, y+widthRowH))
		y += widthRowH
	}
	return l
}

func (l layout) hit(p image.Point) hit {
	if p.In(l.canvas) {
		return hit{region: regionCanvas, index: 0}
	}
	if !p.In(l.toolbar) {
		return noHit
	}
	for i, r := range l.buttons {
		if p.In(r) {
			return hit{region: regionButton, index: i}
		}
	}
	for i, r := range l.swatches {
		if p.In(r) {
			return hit{region: regionSwatch, index: i}
		}
	}
	for i, r := range l.widths {
		if p.In(r) {
			return hit{region: regionWidth, index: i}
		}
	}
	return noHit
}

// local converts a window point to buffer coordinates.
func (l layout) local(p image.Point) image.Point {
	return p.Sub(l.canvas.Min)
}

package appstate

import (
	"context"
	"image"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/colorbook/internal/board"
	"github.com/example/colorbook/internal/canvas"
	"github.com/example/colorbook/internal/clipboard"
	"github.com/example/colorbook/internal/config"
	"github.com/example/colorbook/internal/gallery"
	"github.com/example/colorbook/internal/history"
	"github.com/example/colorbook/internal/imageio"
	"github.com/example/colorbook/internal/stroke"
	"github.com/example/colorbook/internal/theme"
)

const (
	actionBrush   = "brush"
	actionEraser  = "eraser"
	actionUndo    = "undo"
	actionRedo    = "redo"
	actionSave    = "save"
	actionCopy    = "copy"
	actionPaste   = "paste"
	actionGallery = "gallery"
	actionSmaller = "smaller"
	actionLarger  = "larger"
	actionQuit    = "quit"
)

// messageDuration is how long a status notice stays on screen.
const messageDuration = 2 * time.Second

// galleryTimeout bounds a single gallery fetch.
const galleryTimeout = 30 * time.Second

// AppState drives a board from a shiny window. The board is only touched
// from the window's event goroutine.
type AppState struct {
	board    *board.Board
	newBoard func() *board.Board
	gallery  *gallery.Gallery
	theme    *theme.Theme
	output   string
	onClose  func()

	writeClipboard func(image.Image) error
	readClipboard  func() (image.Image, error)

	// send posts an event to the window; nil runs gallery loads inline.
	send func(event interface{})
	ctx  context.Context
	now  func() time.Time

	buttons  []*CacheButton
	toolbarW int
	lay      layout
	hover    hit
	backdrop *image.RGBA

	message      string
	messageOK    bool
	messageUntil time.Time
	galleryNext  int
	quit         bool

	// Mirrors of the history counters, kept by historyChanged.
	canUndo bool
	canRedo bool
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithBoard sizes the board the window edits. The window registers itself
// as the board's history listener to grey out Undo and Redo.
func WithBoard(width, height int, opts ...board.Option) Option {
	return func(a *AppState) {
		a.newBoard = func() *board.Board {
			return board.New(width, height, append(opts, board.WithHistoryListener(a.historyChanged))...)
		}
	}
}

// WithGallery enables the gallery action.
func WithGallery(g *gallery.Gallery) Option { return func(a *AppState) { a.gallery = g } }

// WithTheme sets the UI colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithOutput sets the file written by the save action.
func WithOutput(out string) Option { return func(a *AppState) { a.output = out } }

// WithClipboard replaces the system clipboard.
func WithClipboard(write func(image.Image) error, read func() (image.Image, error)) Option {
	return func(a *AppState) {
		a.writeClipboard = write
		a.readClipboard = read
	}
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		output:         config.DefaultOutput,
		writeClipboard: clipboard.WriteImage,
		readClipboard:  clipboard.ReadImage,
		ctx:            context.Background(),
		now:            time.Now,
		hover:          noHit,
	}
	for _, o := range opts {
		o(a)
	}
	if a.newBoard == nil {
		WithBoard(config.DefaultWidth, config.DefaultHeight)(a)
	}
	a.board = a.newBoard()
	if a.theme == nil {
		a.theme = theme.Default()
	}
	a.buildButtons()
	b := a.board.Bounds()
	a.relayout(b.Dx()+a.toolbarW, b.Dy()+statusHeight)
	return a
}

// Board returns the board the window edits.
func (a *AppState) Board() *board.Board { return a.board }

func (a *AppState) historyChanged(s history.State) {
	a.canUndo = s.CanUndo()
	a.canRedo = s.CanRedo()
}

// enabled reports whether a toolbar action can currently do anything.
func (a *AppState) enabled(action string) bool {
	switch action {
	case actionUndo:
		return a.canUndo
	case actionRedo:
		return a.canRedo
	}
	return true
}

func (a *AppState) buildButtons() {
	type buttonDef struct{ label, action string }
	defs := []buttonDef{
		{"B:Brush", actionBrush},
		{"E:Eraser", actionEraser},
		{"Undo", actionUndo},
		{"Redo", actionRedo},
		{"Save", actionSave},
		{"Copy", actionCopy},
		{"Paste", actionPaste},
	}
	if a.gallery != nil && a.gallery.Len() > 0 {
		defs = append(defs, buttonDef{"G:Gallery", actionGallery})
	}
	labels := make([]string, 0, len(defs))
	a.buttons = a.buttons[:0]
	for _, s := range defs {
		labels = append(labels, s.label)
		a.buttons = append(a.buttons, &CacheButton{Button: &ActionButton{
			label:      s.label,
			action:     s.action,
			theme:      a.theme,
			onActivate: a.perform,
		}})
	}
	a.toolbarW = toolbarWidthFor(labels)
}

// relayout recomputes the layout for a window size and resizes the board
// to fill the canvas area.
func (a *AppState) relayout(winW, winH int) {
	a.lay = computeLayout(winW, winH, a.toolbarW, len(a.buttons), len(stroke.Palette), len(stroke.Widths))
	for i, cb := range a.buttons {
		cb.SetRect(a.lay.buttons[i])
	}
	cs := a.lay.canvas.Size()
	if cs.X > 0 && cs.Y > 0 {
		a.board.Resize(cs.X, cs.Y)
	}
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

type galleryEvent struct {
	index int
	asset *imageio.Asset
	err   error
}

type expireEvent struct{}

func (a *AppState) Main(s screen.Screen) {
	b := a.board.Bounds()
	width, height := b.Dx()+a.toolbarW, b.Dy()+statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: ProgramTitle})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer func() {
		if a.onClose != nil {
			a.onClose()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.ctx = ctx
	a.send = w.Send
	defer func() { a.send = nil }()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff && a.board.Stroking() {
				a.board.PointerLeave()
				w.Send(paint.Event{})
			}
		case size.Event:
			a.relayout(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			a.drawFrame(s, w)
		case mouse.Event:
			if a.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			if name, ok := actionForKey(e); ok {
				a.perform(name)
				if a.quit {
					return
				}
				w.Send(paint.Event{})
			}
		case galleryEvent:
			a.finishGallery(e)
			w.Send(paint.Event{})
		case expireEvent:
			w.Send(paint.Event{})
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func (a *AppState) drawFrame(s screen.Screen, w screen.Window) {
	buf, err := s.NewBuffer(a.lay.status.Max)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer buf.Release()
	a.render(buf.RGBA())
	w.Upload(image.Point{}, buf, buf.Bounds())
	w.Publish()
}

// handleMouse applies a mouse event and reports whether a repaint is needed.
func (a *AppState) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	h := a.lay.hit(p)
	if a.board.Stroking() {
		switch {
		case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
			a.board.PointerUp()
		case h.region != regionCanvas:
			a.board.PointerLeave()
		case e.Direction == mouse.DirNone:
			a.board.PointerMove(a.lay.local(p))
		default:
			return false
		}
		return true
	}

	prev := a.hover
	a.hover = h
	if e.Button != mouse.ButtonLeft || e.Direction != mouse.DirPress {
		return a.hover != prev
	}
	switch h.region {
	case regionCanvas:
		a.board.PointerDown(a.lay.local(p))
	case regionButton:
		if !a.enabled(a.buttons[h.index].Button.(*ActionButton).action) {
			return a.hover != prev
		}
		a.buttons[h.index].Activate()
	case regionSwatch:
		a.show(a.board.SelectColor(stroke.Palette[h.index]))
	case regionWidth:
		a.setWidth(stroke.Widths[h.index])
	default:
		return a.hover != prev
	}
	return true
}

func (a *AppState) perform(name string) {
	switch name {
	case actionBrush:
		a.show(a.board.SelectTool(canvas.ToolBrush))
	case actionEraser:
		a.show(a.board.SelectTool(canvas.ToolEraser))
	case actionUndo:
		a.show(a.board.Undo())
	case actionRedo:
		a.show(a.board.Redo())
	case actionSave:
		st, err := a.board.Save(a.output)
		if err != nil {
			log.Printf("save: %v", err)
		}
		a.show(st)
	case actionCopy:
		st, err := a.board.Copy(a.writeClipboard)
		if err != nil {
			log.Printf("copy: %v", err)
		}
		a.show(st)
	case actionPaste:
		img, err := a.readClipboard()
		if err != nil {
			log.Printf("paste: %v", err)
			a.show(board.Status{Message: "Nothing to paste"})
			return
		}
		a.show(a.board.LoadAsset(&imageio.Asset{Image: img, Source: "clipboard"}, "Image pasted from clipboard"))
	case actionGallery:
		a.loadGallery()
	case actionSmaller:
		a.stepWidth(-1)
	case actionLarger:
		a.stepWidth(1)
	case actionQuit:
		a.quit = true
	default:
		log.Printf("unknown action %q", name)
	}
}

func (a *AppState) show(st board.Status) {
	if st.Message == "" {
		return
	}
	a.message = st.Message
	a.messageOK = st.OK
	a.messageUntil = a.now().Add(messageDuration)
	if a.send != nil {
		send := a.send
		time.AfterFunc(messageDuration, func() { send(expireEvent{}) })
	}
}

func (a *AppState) currentWidth() int {
	s := a.board.Settings()
	if s.Tool == canvas.ToolEraser {
		return s.EraserWidth
	}
	return s.BrushWidth
}

func (a *AppState) setWidth(w int) {
	if a.board.Settings().Tool == canvas.ToolEraser {
		a.show(a.board.SetEraserWidth(w))
		return
	}
	a.show(a.board.SetBrushWidth(w))
}

// stepWidth moves to the next preset width above or below the current one.
func (a *AppState) stepWidth(dir int) {
	cur := a.currentWidth()
	if dir > 0 {
		for _, w := range stroke.Widths {
			if w > cur {
				a.setWidth(w)
				return
			}
		}
		return
	}
	for i := len(stroke.Widths) - 1; i >= 0; i-- {
		if stroke.Widths[i] < cur {
			a.setWidth(stroke.Widths[i])
			return
		}
	}
}

// loadGallery fetches the next gallery entry. With a window attached the
// fetch runs in the background and the result comes back as an event.
func (a *AppState) loadGallery() {
	if a.gallery == nil || a.gallery.Len() == 0 {
		a.show(board.Status{Message: "Gallery is empty"})
		return
	}
	idx := a.galleryNext % a.gallery.Len()
	a.galleryNext = idx + 1
	load := func() galleryEvent {
		ctx, cancel := context.WithTimeout(a.ctx, galleryTimeout)
		defer cancel()
		asset, err := a.gallery.Load(ctx, idx)
		return galleryEvent{index: idx, asset: asset, err: err}
	}
	if a.send == nil {
		a.finishGallery(load())
		return
	}
	a.show(board.Status{Message: "Loading " + a.gallery.Entries()[idx].Name, OK: true})
	send := a.send
	go func() { send(load()) }()
}

func (a *AppState) finishGallery(e galleryEvent) {
	if e.err != nil {
		log.Printf("gallery: %v", e.err)
		a.show(board.Status{Message: "Gallery image failed to load"})
		return
	}
	a.show(a.board.LoadAsset(e.asset, "Image loaded from gallery"))
}

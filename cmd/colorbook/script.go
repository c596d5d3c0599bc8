package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/colorbook/internal/board"
	"github.com/example/colorbook/internal/canvas"
	"github.com/example/colorbook/internal/gallery"
	"github.com/example/colorbook/internal/imageio"
	"github.com/example/colorbook/internal/stroke"
)

const fetchTimeout = 30 * time.Second

// scriptCmd draws on an off-screen board from a list of commands.
type scriptCmd struct {
	*root
	fs      *flag.FlagSet
	program string
	execs   commandList
	width   int
	height  int
	limit   int
	load    string
	output  string
}

func (s *scriptCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func (s *scriptCmd) Program() string {
	return s.program
}

func parseScriptCmd(args []string, r *root) (*scriptCmd, error) {
	fs := flag.NewFlagSet("script", flag.ExitOnError)
	s := &scriptCmd{root: r, fs: fs, program: r.subcommand("script")}
	fs.Var(&s.execs, "e", "execute a drawing command (may be specified multiple times)")
	fs.IntVar(&s.width, "width", r.config.Width, "canvas width in pixels")
	fs.IntVar(&s.height, "height", r.config.Height, "canvas height in pixels")
	fs.IntVar(&s.limit, "limit", r.config.HistoryLimit, "number of undo snapshots to keep")
	fs.StringVar(&s.load, "load", "", "image file loaded before the first command")
	fs.StringVar(&s.output, "output", "", "save the drawing here once the script finishes")
	fs.Usage = usageFunc(s)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 || (fs.NArg() == 1 && len(s.execs) > 0) {
		return nil, &UsageError{of: s}
	}
	return s, nil
}

func (s *scriptCmd) Run() error {
	opts, err := s.boardOptions()
	if err != nil {
		return err
	}
	opts = append(opts, board.WithCapacity(s.limit))
	gal, err := s.openGallery()
	if err != nil {
		return err
	}
	sess := &session{
		board:   board.New(s.width, s.height, opts...),
		gallery: gal,
		fetcher: s.fetcher(),
		output:  s.outputPath(s.output),
		out:     s.stdout,
		ctx:     context.Background(),
	}
	if s.load != "" {
		if _, err := sess.board.LoadFile(s.load); err != nil {
			return fmt.Errorf("load %s: %w", s.load, err)
		}
	}

	switch {
	case len(s.execs) > 0:
		err = sess.runLines(s.execs)
	case s.fs.NArg() == 1:
		err = sess.runFile(s.fs.Arg(0))
	default:
		err = sess.repl(s.stdin, s.stderr)
	}
	if err != nil {
		return err
	}
	if s.output != "" {
		return sess.save(sess.output)
	}
	return nil
}

// session executes script commands against one board.
type session struct {
	board   *board.Board
	gallery *gallery.Gallery
	fetcher *imageio.Fetcher
	output  string
	out     io.Writer
	ctx     context.Context
}

func (s *session) runLines(lines []string) error {
	for i, line := range lines {
		done, err := s.executeLine(line)
		if err != nil {
			return fmt.Errorf("command %d (%s): %w", i+1, strings.TrimSpace(line), err)
		}
		if done {
			break
		}
	}
	return nil
}

func (s *session) runFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer closeWithLog(path, f)
	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		done, err := s.executeLine(scanner.Text())
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, n, err)
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

// repl reads commands until exit or end of input. Errors are reported and
// the session continues.
func (s *session) repl(in io.Reader, errOut io.Writer) error {
	if err := writeln(s.out, "Enter commands (type 'exit' to quit)"); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for {
		if err := writef(s.out, "> "); err != nil {
			return err
		}
		if !scanner.Scan() {
			break
		}
		done, err := s.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(errOut, err)
			continue
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command. done reports an exit request.
func (s *session) executeLine(line string) (done bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	args := strings.Fields(line)
	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "exit", "quit":
		return true, nil
	case "help":
		return false, writeln(s.out, scriptCommands)
	case "down", "move":
		p, err := point(args)
		if err != nil {
			return false, err
		}
		if cmd == "down" {
			s.board.PointerDown(p)
		} else {
			s.board.PointerMove(p)
		}
	case "up":
		s.board.PointerUp()
	case "leave":
		s.board.PointerLeave()
	case "line":
		return false, s.line(args)
	case "tool":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: tool brush|eraser")
		}
		t, err := canvas.ParseTool(args[0])
		if err != nil {
			return false, err
		}
		return false, s.report(s.board.SelectTool(t))
	case "color", "colour":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: color NAME|INDEX|#RRGGBB")
		}
		c, err := stroke.ParseColor(args[0])
		if err != nil {
			return false, err
		}
		return false, s.report(s.board.SelectColor(c))
	case "width", "brush-size", "eraser-size":
		n, err := ints(args, 1)
		if err != nil {
			return false, err
		}
		eraser := cmd == "eraser-size" || (cmd == "width" && s.board.Settings().Tool == canvas.ToolEraser)
		if eraser {
			return false, s.report(s.board.SetEraserWidth(n[0]))
		}
		return false, s.report(s.board.SetBrushWidth(n[0]))
	case "load":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: load PATH")
		}
		st, err := s.board.LoadFile(args[0])
		if err != nil {
			return false, err
		}
		return false, s.report(st)
	case "fetch":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: fetch URL")
		}
		ctx, cancel := context.WithTimeout(s.ctx, fetchTimeout)
		defer cancel()
		asset, err := s.fetcher.Fetch(ctx, args[0])
		if err != nil {
			return false, err
		}
		return false, s.report(s.board.LoadAsset(asset, "Image uploaded successfully!"))
	case "gallery":
		return false, s.loadGallery(args)
	case "undo":
		return false, s.report(s.board.Undo())
	case "redo":
		return false, s.report(s.board.Redo())
	case "resize":
		n, err := ints(args, 2)
		if err != nil {
			return false, err
		}
		if n[0] < 1 || n[1] < 1 {
			return false, fmt.Errorf("resize needs positive dimensions")
		}
		s.board.Resize(n[0], n[1])
	case "save":
		path := s.output
		if len(args) > 0 {
			path = args[0]
		}
		return false, s.save(path)
	case "status":
		return false, writeln(s.out, s.describe())
	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}
	return false, nil
}

const scriptCommands = `down X Y | move X Y | up | leave
line X1 Y1 X2 Y2 [X Y ...]
tool brush|eraser
color NAME|INDEX|#RRGGBB
width N | brush-size N | eraser-size N
load PATH | fetch URL | gallery NAME|INDEX
undo | redo | resize W H
save [PATH] | status | help | exit`

func (s *session) report(st board.Status) error {
	if st.Message == "" {
		return nil
	}
	return writeln(s.out, st.Message)
}

// line draws one stroke through the given points.
func (s *session) line(args []string) error {
	if len(args) < 4 || len(args)%2 != 0 {
		return fmt.Errorf("usage: line X1 Y1 X2 Y2 [X Y ...]")
	}
	n, err := ints(args, len(args))
	if err != nil {
		return err
	}
	s.board.PointerDown(image.Pt(n[0], n[1]))
	for i := 2; i < len(n); i += 2 {
		s.board.PointerMove(image.Pt(n[i], n[i+1]))
	}
	s.board.PointerUp()
	return nil
}

func (s *session) loadGallery(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: gallery NAME|INDEX")
	}
	idx, ok := s.gallery.Find(args[0])
	if !ok {
		return fmt.Errorf("no gallery entry %q", args[0])
	}
	ctx, cancel := context.WithTimeout(s.ctx, fetchTimeout)
	defer cancel()
	asset, err := s.gallery.Load(ctx, idx)
	if err != nil {
		return err
	}
	return s.report(s.board.LoadAsset(asset, "Image loaded from gallery"))
}

func (s *session) save(path string) error {
	st, err := s.board.Save(path)
	if rerr := s.report(st); rerr != nil {
		return rerr
	}
	return err
}

func (s *session) describe() string {
	b := s.board.Bounds()
	set := s.board.Settings()
	h := s.board.History().State()
	desc := fmt.Sprintf("size %dx%d tool %s color %s brush %d eraser %d history %d/%d capacity %d",
		b.Dx(), b.Dy(), set.Tool, stroke.Hex(set.Color), set.BrushWidth, set.EraserWidth,
		h.Cursor+1, h.Len, h.Capacity)
	if s.board.Surface().Tainted() {
		desc += " cross-origin"
	}
	return desc
}

func ints(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func point(args []string) (p image.Point, err error) {
	n, err := ints(args, 2)
	if err != nil {
		return p, err
	}
	return image.Pt(n[0], n[1]), nil
}

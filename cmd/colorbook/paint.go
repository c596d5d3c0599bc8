package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/example/colorbook/internal/appstate"
	"github.com/example/colorbook/internal/board"
)

// paintCmd opens the drawing window.
type paintCmd struct {
	*root
	fs      *flag.FlagSet
	program string
	width   int
	height  int
	limit   int
	load    string
	output  string
}

func (p *paintCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func (p *paintCmd) Program() string {
	return p.program
}

func parsePaintCmd(args []string, r *root) (*paintCmd, error) {
	fs := flag.NewFlagSet("paint", flag.ExitOnError)
	p := &paintCmd{root: r, fs: fs, program: r.subcommand("paint")}
	fs.IntVar(&p.width, "width", r.config.Width, "initial canvas width in pixels")
	fs.IntVar(&p.height, "height", r.config.Height, "initial canvas height in pixels")
	fs.IntVar(&p.limit, "limit", r.config.HistoryLimit, "number of undo snapshots to keep")
	fs.StringVar(&p.load, "load", "", "image file to start colouring")
	fs.StringVar(&p.output, "output", "", "file written by ctrl+s (default from config)")
	fs.Usage = usageFunc(p)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: p}
	}
	return p, nil
}

func (p *paintCmd) Run() error {
	opts, err := p.boardOptions()
	if err != nil {
		return err
	}
	opts = append(opts, board.WithCapacity(p.limit))
	gal, err := p.openGallery()
	if err != nil {
		log.Printf("gallery: %v", err)
	}
	st := appstate.New(
		appstate.WithBoard(p.width, p.height, opts...),
		appstate.WithGallery(gal),
		appstate.WithTheme(p.activeTheme),
		appstate.WithOutput(p.outputPath(p.output)),
	)
	if p.load != "" {
		if _, err := st.Board().LoadFile(p.load); err != nil {
			return fmt.Errorf("load %s: %w", p.load, err)
		}
	}
	st.Run()
	return nil
}

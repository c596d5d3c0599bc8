// Package stroke turns pointer events into canvas segments and commits one
// history entry per completed stroke.
package stroke

import (
	"image"

	"github.com/example/colorbook/internal/canvas"
)

// Drawer rasterises segments.
type Drawer interface {
	DrawSegment(from, to image.Point, pen canvas.Pen)
}

// Committer records a finished edit.
type Committer interface {
	RecordCommit()
}

// Machine tracks a single pointer between down and up. Only one pointer is
// handled; callers forward the primary touch point only.
type Machine struct {
	drawer   Drawer
	commit   Committer
	settings *Settings

	active bool
	last   image.Point
	moves  int
}

// New returns an idle Machine drawing onto d with the live settings s.
func New(d Drawer, c Committer, s *Settings) *Machine {
	if s == nil {
		s = DefaultSettings()
	}
	return &Machine{drawer: d, commit: c, settings: s}
}

// Settings returns the live settings read on every segment.
func (m *Machine) Settings() *Settings { return m.settings }

// Active reports whether a stroke is in progress.
func (m *Machine) Active() bool { return m.active }

// PointerDown starts a stroke at p. Nothing is drawn until the pointer moves.
func (m *Machine) PointerDown(p image.Point) {
	m.active = true
	m.last = p
	m.moves = 0
}

// PointerMove draws from the previous point to p. Tool, colour and width are
// read at this moment, so a settings change mid-stroke applies to later
// segments of the same stroke.
func (m *Machine) PointerMove(p image.Point) {
	if !m.active {
		return
	}
	m.drawer.DrawSegment(m.last, p, m.settings.Pen())
	m.last = p
	m.moves++
}

// PointerUp finishes the stroke and commits it. It returns false when no
// stroke was active.
func (m *Machine) PointerUp() bool {
	if !m.active {
		return false
	}
	m.active = false
	m.commit.RecordCommit()
	return true
}

// PointerLeave is treated exactly like PointerUp: the partial stroke is kept
// and committed.
func (m *Machine) PointerLeave() bool { return m.PointerUp() }

// Segments returns the number of segments drawn by the current or last stroke.
func (m *Machine) Segments() int { return m.moves }

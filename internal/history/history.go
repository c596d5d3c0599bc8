// Package history keeps a bounded, linear timeline of canvas frames and moves
// a cursor through it for undo and redo.
package history

import (
	"errors"

	"github.com/example/colorbook/internal/canvas"
)

// DefaultCapacity is the number of frames kept when no capacity is configured.
const DefaultCapacity = 50

var (
	// ErrNothingToUndo is returned by Undo when the cursor is at the oldest frame.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo when the cursor is at the newest frame.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Store is the pixel buffer the timeline snapshots.
type Store interface {
	Capture() *canvas.Frame
	Restore(*canvas.Frame)
}

// State summarises the timeline for display.
type State struct {
	Len      int
	Cursor   int
	Capacity int
}

// CanUndo reports whether an older frame exists.
func (s State) CanUndo() bool { return s.Cursor > 0 }

// CanRedo reports whether a newer frame exists.
func (s State) CanRedo() bool { return s.Cursor < s.Len-1 }

// Manager owns the frames and the cursor. It is not safe for concurrent use.
type Manager struct {
	store    Store
	frames   []*canvas.Frame
	cursor   int
	capacity int
	listener func(State)
}

// Option configures a Manager during creation.
type Option func(*Manager)

// WithCapacity bounds the number of frames kept. Values below one are raised to one.
func WithCapacity(n int) Option { return func(m *Manager) { m.capacity = n } }

// WithListener registers a callback run after every change to the timeline.
func WithListener(fn func(State)) Option { return func(m *Manager) { m.listener = fn } }

// New creates an empty Manager over store. Init must be called before the
// first undo or redo.
func New(store Store, opts ...Option) *Manager {
	m := &Manager{store: store, cursor: -1, capacity: DefaultCapacity}
	for _, o := range opts {
		o(m)
	}
	if m.capacity < 1 {
		m.capacity = 1
	}
	return m
}

// Init discards every frame and records the store's current content as the
// only frame. Call it again whenever the store changes dimensions.
func (m *Manager) Init() {
	clear(m.frames)
	m.frames = append(m.frames[:0], m.store.Capture())
	m.cursor = 0
	m.changed()
}

// RecordCommit appends the store's current content after the cursor,
// dropping any redo branch and evicting the oldest frame when full.
func (m *Manager) RecordCommit() {
	if m.cursor < len(m.frames)-1 {
		clear(m.frames[m.cursor+1:])
		m.frames = m.frames[:m.cursor+1]
	}
	m.frames = append(m.frames, m.store.Capture())
	m.cursor = len(m.frames) - 1
	if len(m.frames) > m.capacity {
		m.frames[0] = nil
		m.frames = m.frames[1:]
		m.cursor--
	}
	m.changed()
}

// Undo steps back one frame and restores it.
func (m *Manager) Undo() error {
	if m.cursor <= 0 {
		return ErrNothingToUndo
	}
	m.cursor--
	m.store.Restore(m.frames[m.cursor])
	m.changed()
	return nil
}

// Redo steps forward one frame and restores it.
func (m *Manager) Redo() error {
	if m.cursor >= len(m.frames)-1 {
		return ErrNothingToRedo
	}
	m.cursor++
	m.store.Restore(m.frames[m.cursor])
	m.changed()
	return nil
}

// Len returns the number of frames held.
func (m *Manager) Len() int { return len(m.frames) }

// Cursor returns the index of the current frame, or -1 when empty.
func (m *Manager) Cursor() int { return m.cursor }

// Capacity returns the maximum number of frames kept.
func (m *Manager) Capacity() int { return m.capacity }

// CanUndo reports whether Undo would succeed.
func (m *Manager) CanUndo() bool { return m.State().CanUndo() }

// CanRedo reports whether Redo would succeed.
func (m *Manager) CanRedo() bool { return m.State().CanRedo() }

// State returns a snapshot of the timeline counters.
func (m *Manager) State() State {
	return State{Len: len(m.frames), Cursor: m.cursor, Capacity: m.capacity}
}

// Current returns the frame under the cursor, or nil when empty.
func (m *Manager) Current() *canvas.Frame {
	if m.cursor < 0 {
		return nil
	}
	return m.frames[m.cursor]
}

// Frames returns the timeline oldest first. Frames are immutable, so only the
// slice is copied.
func (m *Manager) Frames() []*canvas.Frame {
	out := make([]*canvas.Frame, len(m.frames))
	copy(out, m.frames)
	return out
}

func (m *Manager) changed() {
	if m.listener != nil {
		m.listener(m.State())
	}
}

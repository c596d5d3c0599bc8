package history

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/colorbook/internal/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSurface() *canvas.Surface {
	s := canvas.New(32, 32)
	s.ClearToWhite()
	return s
}

// mark draws a recognisable horizontal bar for commit number n.
func mark(s *canvas.Surface, n int) {
	pen := canvas.Pen{Tool: canvas.ToolBrush, Color: color.RGBA{R: uint8(n * 20), G: 40, B: 200, A: 255}, Width: 2}
	s.DrawSegment(image.Pt(2, n*2), image.Pt(28, n*2), pen)
}

func TestNewIsEmpty(t *testing.T) {
	m := New(newSurface())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, -1, m.Cursor())
	assert.Nil(t, m.Current())
	assert.ErrorIs(t, m.Undo(), ErrNothingToUndo)
	assert.ErrorIs(t, m.Redo(), ErrNothingToRedo)
}

func TestCapacityClamp(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(newSurface()).Capacity())
	assert.Equal(t, 1, New(newSurface(), WithCapacity(0)).Capacity())
	assert.Equal(t, 1, New(newSurface(), WithCapacity(-4)).Capacity())
}

func TestInit(t *testing.T) {
	s := newSurface()
	m := New(s)
	m.Init()
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Cursor())
	assert.True(t, m.Current().Equal(s.Capture()))

	mark(s, 1)
	m.RecordCommit()
	m.Init()
	assert.Equal(t, 1, m.Len(), "init discards previous frames")
}

func TestCommitsBelowCapacity(t *testing.T) {
	for n := 0; n <= 10; n++ {
		s := newSurface()
		m := New(s, WithCapacity(10))
		m.Init()
		for i := 1; i <= n; i++ {
			mark(s, i)
			m.RecordCommit()
		}
		assert.Equal(t, n+1, m.Len(), "commits=%d", n)
		assert.Equal(t, m.Len()-1, m.Cursor(), "commits=%d", n)
	}
}

func TestCommitsOverCapacityEvictOldest(t *testing.T) {
	const c = 5
	s := newSurface()
	m := New(s, WithCapacity(c))
	m.Init()
	var snaps []*canvas.Frame
	for i := 1; i <= 12; i++ {
		mark(s, i)
		m.RecordCommit()
		snaps = append(snaps, s.Capture())
		if i+1 >= c {
			assert.Equal(t, c, m.Len(), "after commit %d", i)
		}
		assert.Equal(t, m.Len()-1, m.Cursor())
	}
	frames := m.Frames()
	want := snaps[len(snaps)-c:]
	for i := range want {
		assert.True(t, want[i].Equal(frames[i]), "frame %d is not commit %d", i, len(snaps)-c+i+1)
	}
}

func TestCapacityThreeHoldsLastThree(t *testing.T) {
	s := newSurface()
	m := New(s, WithCapacity(3))
	m.Init()
	var f []*canvas.Frame
	for i := 1; i <= 5; i++ {
		mark(s, i)
		m.RecordCommit()
		f = append(f, s.Capture())
	}
	frames := m.Frames()
	require.Len(t, frames, 3)
	assert.True(t, frames[0].Equal(f[2]), "want F3")
	assert.True(t, frames[1].Equal(f[3]), "want F4")
	assert.True(t, frames[2].Equal(f[4]), "want F5")
	assert.Equal(t, 2, m.Cursor())
	assert.True(t, m.Current().Equal(f[4]))
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := newSurface()
	m := New(s)
	m.Init()
	for i := 1; i <= 3; i++ {
		mark(s, i)
		m.RecordCommit()
	}
	before := s.Capture()
	require.NoError(t, m.Undo())
	assert.False(t, before.Equal(s.Capture()))
	require.NoError(t, m.Redo())
	assert.True(t, before.Equal(s.Capture()))
	assert.ErrorIs(t, m.Redo(), ErrNothingToRedo)
}

func TestCommitAfterUndoPrunesRedoBranch(t *testing.T) {
	s := newSurface()
	m := New(s)
	m.Init()
	for i := 1; i <= 4; i++ {
		mark(s, i)
		m.RecordCommit()
	}
	require.NoError(t, m.Undo())
	require.NoError(t, m.Undo())
	assert.True(t, m.CanRedo())

	mark(s, 9)
	m.RecordCommit()
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, 3, m.Cursor())
	assert.False(t, m.CanRedo())
	assert.ErrorIs(t, m.Redo(), ErrNothingToRedo)
}

func TestUndoAtInitialStateLeavesBuffer(t *testing.T) {
	s := newSurface()
	m := New(s)
	m.Init()
	before := s.Capture()
	assert.ErrorIs(t, m.Undo(), ErrNothingToUndo)
	assert.True(t, before.Equal(s.Capture()))
	assert.Equal(t, 0, m.Cursor())
}

func TestStrokeScenario(t *testing.T) {
	s := newSurface()
	m := New(s)
	m.Init()
	blank := s.Capture()

	mark(s, 1)
	m.RecordCommit()
	afterA := s.Capture()
	mark(s, 5)
	m.RecordCommit()

	require.NoError(t, m.Undo())
	assert.True(t, afterA.Equal(s.Capture()), "only stroke A remains")
	require.NoError(t, m.Undo())
	assert.True(t, blank.Equal(s.Capture()), "blank initial state")
	assert.ErrorIs(t, m.Undo(), ErrNothingToUndo)
}

func TestCapacityOneKeepsLatest(t *testing.T) {
	s := newSurface()
	m := New(s, WithCapacity(1))
	m.Init()
	mark(s, 1)
	m.RecordCommit()
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Cursor())
	assert.True(t, m.Current().Equal(s.Capture()))
	assert.ErrorIs(t, m.Undo(), ErrNothingToUndo)
}

func TestListener(t *testing.T) {
	var got []State
	s := newSurface()
	m := New(s, WithCapacity(2), WithListener(func(st State) { got = append(got, st) }))
	m.Init()
	m.RecordCommit()
	m.RecordCommit()
	require.NoError(t, m.Undo())
	_ = m.Undo()
	want := []State{
		{Len: 1, Cursor: 0, Capacity: 2},
		{Len: 2, Cursor: 1, Capacity: 2},
		{Len: 2, Cursor: 1, Capacity: 2},
		{Len: 2, Cursor: 0, Capacity: 2},
	}
	assert.Equal(t, want, got, "failed undo does not notify")
}

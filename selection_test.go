package purfectview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSelection(e *fakeEngine) (*SelectionManager, *Viewport, *memClipboard) {
	v, _ := newTestViewport(e, 0)
	clip := &memClipboard{}
	m := &SelectionManager{
		engine:    e,
		vp:        v,
		clipboard: clip,
	}
	return m, v, clip
}

func TestSelectionDragAndCopy(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.setLine(2, "hello world")
	m, _, clip := newTestSelection(e)

	m.Press(0, 2)
	assert.True(t, m.IsSelecting())
	m.Move(4, 2)
	m.Release()

	assert.False(t, m.IsSelecting())
	assert.True(t, m.HasSelection())
	assert.Equal(t, "hello", m.GetSelectedText())
	assert.Equal(t, "hello", clip.text, "release copies the selection")
}

func TestSelectionBackwardDragNormalizes(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.setLine(0, "first")
	e.setLine(1, "second")
	m, _, _ := newTestSelection(e)

	m.Press(2, 1)
	m.Move(1, 0)
	m.Release()

	r, ok := m.GetSelection()
	require.True(t, ok)
	assert.Equal(t, SelectionRange{StartX: 1, StartY: 0, EndX: 2, EndY: 1}, r)
}

func TestSelectionSameRowBackwardNormalizes(t *testing.T) {
	e := newFakeEngine(80, 24)
	m, _, _ := newTestSelection(e)

	m.Press(10, 3)
	m.Move(4, 3)

	r, ok := m.GetSelection()
	require.True(t, ok)
	assert.Equal(t, SelectionRange{StartX: 4, StartY: 3, EndX: 10, EndY: 3}, r)
}

func TestSelectionPinnedWhileScrolling(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.pushScrollback("zero", "one", "two", "three", "four")
	m, v, _ := newTestSelection(e)

	// Select a live row, then scroll back: the absolute range is fixed.
	m.Press(0, 0)
	m.Move(3, 0)
	m.Release()
	before, ok := m.GetSelection()
	require.True(t, ok)
	assert.Equal(t, 5, before.StartY, "live row 0 sits past the scrollback")

	v.ScrollToLine(3)
	after, _ := m.GetSelection()
	assert.Equal(t, before, after)
}

func TestSelectionInScrollback(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.pushScrollback("history line")
	m, v, _ := newTestSelection(e)
	v.ScrollToLine(1)

	// Viewport row 0 now shows scrollback line 0.
	m.Press(0, 0)
	m.Move(6, 0)
	m.Release()

	assert.Equal(t, "history", m.GetSelectedText())
}

func TestSelectionDragOvershoot(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.pushScrollback("a", "b", "c")
	m, _, _ := newTestSelection(e)

	m.Press(0, 5)
	m.Move(0, -2)
	assert.Equal(t, -2, m.DragOvershoot())

	m.Move(0, 26)
	assert.Equal(t, 3, m.DragOvershoot())

	m.Move(0, 10)
	assert.Equal(t, 0, m.DragOvershoot())

	m.Release()
	assert.Equal(t, 0, m.DragOvershoot())
}

func TestSelectionDoubleClickWord(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.setLine(0, "run my-tool now")
	m, _, clip := newTestSelection(e)

	m.DoubleClick(6, 0)

	r, ok := m.GetSelection()
	require.True(t, ok)
	assert.Equal(t, 4, r.StartX)
	assert.Equal(t, 10, r.EndX, "hyphen joins the word run")
	assert.Equal(t, "my-tool", clip.text)
}

func TestSelectionDoubleClickOnSpaceIsNoop(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.setLine(0, "one two")
	m, _, _ := newTestSelection(e)

	m.DoubleClick(3, 0)
	assert.False(t, m.HasSelection())
}

func TestSelectionSelectAll(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.pushScrollback("old")
	m, _, _ := newTestSelection(e)

	m.SelectAll()

	r, ok := m.GetSelection()
	require.True(t, ok)
	assert.Equal(t, SelectionRange{StartX: 0, StartY: 0, EndX: 79, EndY: 24}, r)
}

func TestSelectionSelectWraps(t *testing.T) {
	e := newFakeEngine(10, 24)
	e.setLine(0, "0123456789")
	e.setLine(1, "abcdefghij")
	m, _, _ := newTestSelection(e)

	m.Select(7, 0, 6)

	r, ok := m.GetSelection()
	require.True(t, ok)
	assert.Equal(t, SelectionRange{StartX: 7, StartY: 0, EndX: 2, EndY: 1}, r)
	assert.Equal(t, "789\nabc", m.GetSelectedText())
}

func TestSelectionSelectClampsToContent(t *testing.T) {
	e := newFakeEngine(10, 4)
	m, _, _ := newTestSelection(e)

	m.Select(0, 3, 1000)

	r, ok := m.GetSelection()
	require.True(t, ok)
	assert.Equal(t, 3, r.EndY)
	assert.Equal(t, 9, r.EndX)
}

func TestSelectionSelectLines(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.setLine(1, "alpha")
	e.setLine(2, "beta")
	m, _, _ := newTestSelection(e)

	m.SelectLines(2, 1)

	r, ok := m.GetSelection()
	require.True(t, ok)
	assert.Equal(t, SelectionRange{StartX: 0, StartY: 1, EndX: 79, EndY: 2}, r)
}

func TestSelectionClearRemembersPrevious(t *testing.T) {
	e := newFakeEngine(80, 24)
	m, _, _ := newTestSelection(e)

	m.Press(1, 1)
	m.Move(5, 1)
	m.Release()
	m.Clear()

	assert.False(t, m.HasSelection())
	prev := m.TakePrevious()
	require.NotNil(t, prev)
	assert.Equal(t, SelectionRange{StartX: 1, StartY: 1, EndX: 5, EndY: 1}, *prev)
	assert.Nil(t, m.TakePrevious(), "previous is consumed once")
}

func TestSelectionNewPressRemembersPrevious(t *testing.T) {
	e := newFakeEngine(80, 24)
	m, _, _ := newTestSelection(e)

	m.Press(0, 0)
	m.Move(3, 0)
	m.Release()
	m.Press(0, 5)

	prev := m.TakePrevious()
	require.NotNil(t, prev)
	assert.Equal(t, 0, prev.StartY)
}

func TestSelectedTextSkipsFillersAndPadsEmpty(t *testing.T) {
	e := newFakeEngine(10, 4)
	line := make([]Cell, 10)
	line[0] = Cell{Char: '漢'}
	line[1] = Cell{Filler: true}
	line[2] = Cell{Char: 'x'}
	e.lines[0] = line
	m, _, _ := newTestSelection(e)

	m.Select(0, 0, 5)
	assert.Equal(t, "漢x  ", m.GetSelectedText())
}

func TestCopyFallsBackToSecondaryClipboard(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.setLine(0, "text")
	m, _, clip := newTestSelection(e)
	clip.failing = true
	fallback := &memClipboard{}
	m.fallback = fallback

	m.Press(0, 0)
	m.Move(3, 0)
	m.Release()

	assert.Equal(t, "text", fallback.text)
}

func TestCopyEmptySelectionSkipsClipboard(t *testing.T) {
	e := newFakeEngine(80, 24)
	m, _, clip := newTestSelection(e)

	m.CopyToClipboard()
	assert.Zero(t, clip.writes)
}

// Package gridengine is a self-contained screen-grid engine for
// purfectview: a live grid with scrollback, cursor tracking, per-row
// dirty flags and a small VT interpreter covering the sequences
// everyday programs emit. It backs the cli and tcellhost adapters and
// the test suites; richer emulation plugs in through the same
// purfectview.Engine interface (see purfectermengine).
package gridengine

import (
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/phroun/purfectview"
)

// Engine is a purfectview.Engine over an in-memory grid.
type Engine struct {
	mu            sync.Mutex
	cols, rows    int
	screen        [][]purfectview.Cell
	scrollback    [][]purfectview.Cell
	maxScrollback int
	curX, curY    int
	cursorVisible bool
	modes         map[int]bool
	dirty         []bool
	parser        parser
}

// New creates an engine with the given screen size and scrollback
// capacity.
func New(cols, rows, maxScrollback int) *Engine {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	e := &Engine{
		cols:          cols,
		rows:          rows,
		maxScrollback: maxScrollback,
		cursorVisible: true,
		modes:         make(map[int]bool),
		dirty:         make([]bool, rows),
	}
	e.screen = makeGrid(cols, rows)
	for i := range e.dirty {
		e.dirty[i] = true
	}
	return e
}

func makeGrid(cols, rows int) [][]purfectview.Cell {
	grid := make([][]purfectview.Cell, rows)
	for i := range grid {
		grid[i] = make([]purfectview.Cell, cols)
	}
	return grid
}

// GetSize returns the live screen dimensions.
func (e *Engine) GetSize() (cols, rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cols, e.rows
}

// GetLine returns a copy of a live screen row.
func (e *Engine) GetLine(row int) []purfectview.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	if row < 0 || row >= e.rows {
		return nil
	}
	return copyLine(e.screen[row])
}

// GetScrollbackLine returns a copy of a scrollback row; index 0 is the
// oldest retained line.
func (e *Engine) GetScrollbackLine(index int) []purfectview.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.scrollback) {
		return nil
	}
	return copyLine(e.scrollback[index])
}

// GetScrollbackSize returns the number of retained scrollback lines.
func (e *Engine) GetScrollbackSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.scrollback)
}

// GetCursor returns the cursor state.
func (e *Engine) GetCursor() purfectview.Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return purfectview.Cursor{X: e.curX, Y: e.curY, Visible: e.cursorVisible}
}

// GetMode reports a DEC private mode.
func (e *Engine) GetMode(mode int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modes[mode]
}

// SetMode sets a DEC private mode directly, for embedders that manage
// modes outside the byte stream.
func (e *Engine) SetMode(mode int, on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modes[mode] = on
}

// IsRowDirty reports whether a live row changed since ClearDirty.
func (e *Engine) IsRowDirty(row int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if row < 0 || row >= len(e.dirty) {
		return false
	}
	return e.dirty[row]
}

// ClearDirty resets all row dirty flags.
func (e *Engine) ClearDirty() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.dirty {
		e.dirty[i] = false
	}
}

// Feed interprets remote output.
func (e *Engine) Feed(data []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, b := range data {
		e.parser.consume(e, b)
	}
}

// EncodeKey implements key encoding with the stock xterm rules.
func (e *Engine) EncodeKey(req purfectview.KeyRequest) ([]byte, error) {
	return purfectview.EncodeXtermKey(req)
}

// Resize changes the screen size, clipping or padding rows.
func (e *Engine) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if cols == e.cols && rows == e.rows {
		return
	}
	next := makeGrid(cols, rows)
	for y := 0; y < rows && y < e.rows; y++ {
		copy(next[y], e.screen[y])
	}
	e.screen = next
	e.cols, e.rows = cols, rows
	e.dirty = make([]bool, rows)
	e.markAllDirty()
	if e.curX >= cols {
		e.curX = cols - 1
	}
	if e.curY >= rows {
		e.curY = rows - 1
	}
}

func copyLine(line []purfectview.Cell) []purfectview.Cell {
	out := make([]purfectview.Cell, len(line))
	copy(out, line)
	return out
}

func (e *Engine) markDirty(row int) {
	if row >= 0 && row < len(e.dirty) {
		e.dirty[row] = true
	}
}

func (e *Engine) markAllDirty() {
	for i := range e.dirty {
		e.dirty[i] = true
	}
}

// putRune writes a rune at the cursor, advancing it and wrapping at
// the right margin. Wide characters occupy two cells, the second a
// filler.
func (e *Engine) putRune(r rune) {
	width := runewidth.RuneWidth(r)
	if width == 0 {
		// Combining marks fold into the previous cell; the grid keeps
		// only the base character.
		return
	}
	if e.curX+width > e.cols {
		e.curX = 0
		e.lineFeed()
	}
	e.screen[e.curY][e.curX] = purfectview.Cell{Char: r}
	e.markDirty(e.curY)
	e.curX++
	if width == 2 && e.curX < e.cols {
		e.screen[e.curY][e.curX] = purfectview.Cell{Filler: true}
		e.curX++
	}
}

// lineFeed moves the cursor down, scrolling when at the bottom.
func (e *Engine) lineFeed() {
	if e.curY < e.rows-1 {
		e.curY++
		return
	}
	e.scrollUp()
}

// scrollUp pushes the top line into scrollback and shifts the screen.
func (e *Engine) scrollUp() {
	if e.maxScrollback > 0 {
		e.scrollback = append(e.scrollback, e.screen[0])
		if len(e.scrollback) > e.maxScrollback {
			e.scrollback = e.scrollback[1:]
		}
	}
	copy(e.screen, e.screen[1:])
	e.screen[e.rows-1] = make([]purfectview.Cell, e.cols)
	e.markAllDirty()
}

func (e *Engine) carriageReturn() {
	e.curX = 0
}

func (e *Engine) backspace() {
	if e.curX > 0 {
		e.curX--
	}
}

func (e *Engine) tab() {
	next := (e.curX/8 + 1) * 8
	if next >= e.cols {
		next = e.cols - 1
	}
	e.curX = next
}

func (e *Engine) moveCursor(x, y int) {
	if x < 0 {
		x = 0
	}
	if x >= e.cols {
		x = e.cols - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= e.rows {
		y = e.rows - 1
	}
	e.markDirty(e.curY)
	e.curX, e.curY = x, y
	e.markDirty(e.curY)
}

// eraseLine clears part of the cursor row. 0 = to end, 1 = to start,
// 2 = whole line.
func (e *Engine) eraseLine(mode int) {
	line := e.screen[e.curY]
	switch mode {
	case 0:
		for x := e.curX; x < e.cols; x++ {
			line[x] = purfectview.Cell{}
		}
	case 1:
		for x := 0; x <= e.curX && x < e.cols; x++ {
			line[x] = purfectview.Cell{}
		}
	case 2:
		for x := range line {
			line[x] = purfectview.Cell{}
		}
	}
	e.markDirty(e.curY)
}

// eraseScreen clears part of the screen. 0 = below, 1 = above,
// 2 = all.
func (e *Engine) eraseScreen(mode int) {
	switch mode {
	case 0:
		e.eraseLine(0)
		for y := e.curY + 1; y < e.rows; y++ {
			e.screen[y] = make([]purfectview.Cell, e.cols)
		}
	case 1:
		e.eraseLine(1)
		for y := 0; y < e.curY; y++ {
			e.screen[y] = make([]purfectview.Cell, e.cols)
		}
	case 2:
		e.screen = makeGrid(e.cols, e.rows)
	}
	e.markAllDirty()
}

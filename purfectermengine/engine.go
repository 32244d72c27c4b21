// Package purfectermengine adapts a purfecterm Buffer/Parser pair to
// the purfectview.Engine interface, so the full PurfecTerm emulation
// (colors, graphics, splits) can sit behind the purfectview
// coordination layer. Hosts that want styled rendering can reach the
// underlying Buffer directly; the adapter surface carries only what
// the coordination layer needs.
package purfectermengine

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/phroun/purfecterm"
	"github.com/phroun/purfectview"
)

// Engine wraps a purfecterm Buffer and Parser.
type Engine struct {
	buf    *purfecterm.Buffer
	parser *purfecterm.Parser

	mu        sync.Mutex
	dirtyAll  bool
	appCursor bool

	// Scrollback line cache, rebuilt when the buffer reports changes.
	cacheGen  uint64
	gen       uint64
	cacheRows [][]purfectview.Cell
}

// New creates an engine with the given screen size and scrollback
// capacity.
func New(cols, rows, maxScrollback int) *Engine {
	buf := purfecterm.NewBuffer(cols, rows, maxScrollback)
	e := &Engine{
		buf:    buf,
		parser: purfecterm.NewParser(buf),
	}
	buf.SetDirtyCallback(func() {
		e.mu.Lock()
		e.dirtyAll = true
		e.gen++
		e.mu.Unlock()
	})
	return e
}

// Buffer exposes the underlying purfecterm buffer for hosts that
// render styled cells.
func (e *Engine) Buffer() *purfecterm.Buffer { return e.buf }

// GetSize returns the live screen dimensions.
func (e *Engine) GetSize() (cols, rows int) {
	return e.buf.GetSize()
}

// GetLine returns a live screen row, reduced to characters and
// wide-character fillers.
func (e *Engine) GetLine(row int) []purfectview.Cell {
	cols, rows := e.buf.GetSize()
	if row < 0 || row >= rows {
		return nil
	}
	line := make([]purfectview.Cell, cols)
	for x := 0; x < cols; x++ {
		line[x] = purfectview.Cell{Char: e.buf.GetCell(x, row).Char}
	}
	markFillers(line)
	return line
}

// GetScrollbackLine returns a scrollback row; index 0 is the oldest.
func (e *Engine) GetScrollbackLine(index int) []purfectview.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refreshCacheLocked()
	if index < 0 || index >= len(e.cacheRows) {
		return nil
	}
	out := make([]purfectview.Cell, len(e.cacheRows[index]))
	copy(out, e.cacheRows[index])
	return out
}

// GetScrollbackSize returns the number of retained scrollback lines.
func (e *Engine) GetScrollbackSize() int {
	return e.buf.GetScrollbackSize()
}

// GetCursor returns the cursor state.
func (e *Engine) GetCursor() purfectview.Cursor {
	x, y := e.buf.GetCursor()
	return purfectview.Cursor{X: x, Y: y, Visible: e.buf.IsCursorVisible()}
}

// GetMode reports a DEC private mode. Bracketed paste tracks the
// buffer; application cursor mode is kept here since the purfecterm
// parser does not interpret DECCKM yet.
func (e *Engine) GetMode(mode int) bool {
	switch mode {
	case purfectview.ModeBracketedPaste:
		return e.buf.IsBracketedPasteModeEnabled()
	case purfectview.ModeApplicationCursor:
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.appCursor
	}
	return false
}

// SetApplicationCursor toggles application cursor mode.
func (e *Engine) SetApplicationCursor(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.appCursor = on
}

// IsRowDirty reports whether a row changed since ClearDirty. The
// buffer tracks dirtiness globally, so any change marks every row.
func (e *Engine) IsRowDirty(row int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirtyAll
}

// ClearDirty resets the dirty flag.
func (e *Engine) ClearDirty() {
	e.mu.Lock()
	e.dirtyAll = false
	e.mu.Unlock()
	e.buf.ClearDirty()
}

// Feed routes remote output through the purfecterm parser.
func (e *Engine) Feed(data []byte) {
	e.parser.Parse(data)
}

// EncodeKey implements key encoding with the stock xterm rules.
func (e *Engine) EncodeKey(req purfectview.KeyRequest) ([]byte, error) {
	return purfectview.EncodeXtermKey(req)
}

// Resize changes the screen size.
func (e *Engine) Resize(cols, rows int) {
	e.buf.Resize(cols, rows)
}

// refreshCacheLocked rebuilds the scrollback cell cache when the
// buffer changed. The buffer has no public per-cell scrollback access,
// so lines are recovered from its plain-text export; that loses
// styling, which the coordination layer does not consume anyway.
func (e *Engine) refreshCacheLocked() {
	if e.cacheGen == e.gen && e.cacheRows != nil {
		return
	}
	e.cacheGen = e.gen

	sb := e.buf.GetScrollbackSize()
	cols, _ := e.buf.GetSize()
	text := e.buf.SaveScrollbackText()
	lines := strings.Split(text, "\n")
	if len(lines) > sb {
		lines = lines[:sb]
	}
	e.cacheRows = make([][]purfectview.Cell, len(lines))
	for i, line := range lines {
		cells := make([]purfectview.Cell, 0, cols)
		for _, r := range line {
			if len(cells) >= cols {
				break
			}
			cells = append(cells, purfectview.Cell{Char: r})
			if runewidth.RuneWidth(r) == 2 && len(cells) < cols {
				cells = append(cells, purfectview.Cell{Filler: true})
			}
		}
		for len(cells) < cols {
			cells = append(cells, purfectview.Cell{})
		}
		e.cacheRows[i] = cells
	}
}

// markFillers tags the continuation cell after each wide character.
// The buffer stores wide glyphs with an empty following cell; the
// coordination layer wants that cell flagged explicitly.
func markFillers(line []purfectview.Cell) {
	for x := 1; x < len(line); x++ {
		prev := line[x-1].Char
		if prev != 0 && runewidth.RuneWidth(prev) == 2 &&
			(line[x].Char == 0 || line[x].Char == ' ') {
			line[x] = purfectview.Cell{Filler: true}
		}
	}
}

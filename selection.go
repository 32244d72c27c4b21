package purfectview

import (
	"log"
	"strings"
	"sync"
	"unicode"
)

// SelectionRange is a normalized selection in content-absolute
// coordinates: Y 0 is the oldest scrollback line, increasing toward
// the bottom of the live screen. Start never sorts after End.
type SelectionRange struct {
	StartX, StartY int
	EndX, EndY     int
}

// ContainsRow reports whether the range touches a content-absolute row.
func (r SelectionRange) ContainsRow(absY int) bool {
	return absY >= r.StartY && absY <= r.EndY
}

// SelectionManager owns text selection: pointer gestures arrive in
// viewport coordinates and are pinned to content-absolute coordinates
// at gesture time, so the selection stays on its text while the
// viewport scrolls. The raw anchor/head pair is stored as-is and
// normalized only when read.
type SelectionManager struct {
	mu        sync.Mutex
	engine    Engine
	vp        *Viewport
	clipboard Clipboard
	fallback  Clipboard
	logger    *log.Logger

	active    bool
	selecting bool
	anchorX   int
	anchorY   int
	headX     int
	headY     int

	// previous holds the range cleared by the last gesture for exactly
	// one redraw, so the renderer can repaint the vacated rows.
	previous *SelectionRange

	// overshoot is the number of rows the pointer sits beyond the
	// viewport edge during a drag; the frame loop scrolls by it.
	overshoot int
}

// Press starts a new selection at a viewport position. Any existing
// selection is cleared, with its range remembered for one redraw.
func (m *SelectionManager) Press(x, viewRow int) {
	absY := m.absRow(viewRow)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rememberLocked()
	m.active = true
	m.selecting = true
	m.anchorX, m.anchorY = x, absY
	m.headX, m.headY = x, absY
	m.overshoot = 0
}

// Move extends the selection head during a drag. Rows beyond the
// viewport edges are accepted; the overshoot drives edge auto-scroll.
func (m *SelectionManager) Move(x, viewRow int) {
	m.mu.Lock()
	if !m.selecting {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	_, rows := m.engine.GetSize()
	overshoot := 0
	clamped := viewRow
	if viewRow < 0 {
		overshoot = viewRow
		clamped = 0
	} else if viewRow >= rows {
		overshoot = viewRow - rows + 1
		clamped = rows - 1
	}
	absY := m.absRow(clamped)

	m.mu.Lock()
	if m.selecting {
		m.headX, m.headY = x, absY
		m.overshoot = overshoot
	}
	m.mu.Unlock()
}

// Release ends the drag and copies the selected text, if any, to the
// clipboard.
func (m *SelectionManager) Release() {
	m.mu.Lock()
	m.selecting = false
	m.overshoot = 0
	m.mu.Unlock()
	m.CopyToClipboard()
}

// DoubleClick selects the word run under a viewport position and
// copies it. Word characters are letters, digits, underscore and
// hyphen; anything else makes this a no-op.
func (m *SelectionManager) DoubleClick(x, viewRow int) {
	line := m.vp.LineAt(viewRow)
	cols, _ := m.engine.GetSize()
	chars := effectiveRunes(line, cols)
	if x < 0 || x >= len(chars) || !isWordRune(chars[x]) {
		return
	}
	start, end := x, x
	for start > 0 && isWordRune(chars[start-1]) {
		start--
	}
	for end+1 < len(chars) && isWordRune(chars[end+1]) {
		end++
	}
	absY := m.absRow(viewRow)

	m.mu.Lock()
	m.rememberLocked()
	m.active = true
	m.selecting = false
	m.anchorX, m.anchorY = start, absY
	m.headX, m.headY = end, absY
	m.mu.Unlock()
	m.CopyToClipboard()
}

// SelectAll selects the entire content, scrollback included.
func (m *SelectionManager) SelectAll() {
	cols, rows := m.engine.GetSize()
	sb := m.engine.GetScrollbackSize()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rememberLocked()
	m.active = true
	m.selecting = false
	m.anchorX, m.anchorY = 0, 0
	m.headX, m.headY = cols-1, sb+rows-1
}

// Select selects length cells starting at a viewport position,
// wrapping across row ends.
func (m *SelectionManager) Select(col, viewRow, length int) {
	if length <= 0 {
		return
	}
	cols, _ := m.engine.GetSize()
	if cols <= 0 {
		return
	}
	if col < 0 {
		col = 0
	}
	if col >= cols {
		col = cols - 1
	}
	absY := m.absRow(viewRow)
	endLinear := col + length - 1
	endY := absY + endLinear/cols
	endX := endLinear % cols
	maxY := m.engine.GetScrollbackSize() + m.screenRows() - 1
	if endY > maxY {
		endY = maxY
		endX = cols - 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rememberLocked()
	m.active = true
	m.selecting = false
	m.anchorX, m.anchorY = col, absY
	m.headX, m.headY = endX, endY
}

// SelectLines selects whole viewport rows from start through end,
// inclusive.
func (m *SelectionManager) SelectLines(startRow, endRow int) {
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	cols, _ := m.engine.GetSize()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rememberLocked()
	m.active = true
	m.selecting = false
	m.anchorX, m.anchorY = 0, m.absRow(startRow)
	m.headX, m.headY = cols-1, m.absRow(endRow)
}

// Clear drops the selection, remembering it for one redraw.
func (m *SelectionManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rememberLocked()
	m.active = false
	m.selecting = false
}

// HasSelection reports whether a selection exists.
func (m *SelectionManager) HasSelection() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// IsSelecting reports whether a pointer drag is in progress.
func (m *SelectionManager) IsSelecting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selecting
}

// GetSelection returns the normalized selection range.
func (m *SelectionManager) GetSelection() (SelectionRange, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return SelectionRange{}, false
	}
	return m.normalizedLocked(), true
}

// TakePrevious returns the range cleared by the last gesture and
// forgets it. The frame planner calls this once per redraw.
func (m *SelectionManager) TakePrevious() *SelectionRange {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.previous
	m.previous = nil
	return prev
}

// DragOvershoot returns how many rows the pointer is beyond the
// viewport edge (negative above, positive below) during a drag.
func (m *SelectionManager) DragOvershoot() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.selecting {
		return 0
	}
	return m.overshoot
}

// GetSelectedText extracts the selected text. Wide-character filler
// cells are skipped and empty cells render as a single space; rows are
// joined with newlines, without a trailing one.
func (m *SelectionManager) GetSelectedText() string {
	r, ok := m.GetSelection()
	if !ok {
		return ""
	}
	cols, rows := m.engine.GetSize()
	sb := m.engine.GetScrollbackSize()
	total := sb + rows

	var lines []string
	for absY := r.StartY; absY <= r.EndY && absY < total; absY++ {
		if absY < 0 {
			continue
		}
		var line []Cell
		if absY < sb {
			line = m.engine.GetScrollbackLine(absY)
		} else {
			line = m.engine.GetLine(absY - sb)
		}
		startX := 0
		endX := cols - 1
		if absY == r.StartY {
			startX = r.StartX
		}
		if absY == r.EndY {
			endX = r.EndX
		}
		var b strings.Builder
		for x := startX; x <= endX && x < cols; x++ {
			var cell Cell
			if x < len(line) {
				cell = line[x]
			}
			if cell.Filler {
				continue
			}
			if cell.Char == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(cell.Char)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// CopyToClipboard writes the selected text to the primary clipboard,
// falling back to the secondary one. Failure of both is logged, never
// surfaced; selection gestures must not error.
func (m *SelectionManager) CopyToClipboard() {
	text := m.GetSelectedText()
	if text == "" {
		return
	}
	if m.clipboard != nil {
		if err := m.clipboard.WriteText(text); err == nil {
			return
		}
	}
	if m.fallback != nil {
		if err := m.fallback.WriteText(text); err == nil {
			return
		}
	}
	if m.logger != nil && (m.clipboard != nil || m.fallback != nil) {
		m.logger.Printf("purfectview: clipboard write failed, selection not copied")
	}
}

// rememberLocked snapshots the current range as the previous one.
func (m *SelectionManager) rememberLocked() {
	if !m.active {
		return
	}
	r := m.normalizedLocked()
	m.previous = &r
}

func (m *SelectionManager) normalizedLocked() SelectionRange {
	sx, sy := m.anchorX, m.anchorY
	ex, ey := m.headX, m.headY
	if sy > ey || (sy == ey && sx > ex) {
		sx, sy, ex, ey = ex, ey, sx, sy
	}
	return SelectionRange{StartX: sx, StartY: sy, EndX: ex, EndY: ey}
}

// absRow converts a viewport row to a content-absolute row at the
// current scroll position.
func (m *SelectionManager) absRow(viewRow int) int {
	sb := m.engine.GetScrollbackSize()
	return sb - m.vp.GetRow() + viewRow
}

func (m *SelectionManager) screenRows() int {
	_, rows := m.engine.GetSize()
	return rows
}

// effectiveRunes flattens a line to one rune per column, with filler
// cells inheriting the wide character they continue.
func effectiveRunes(line []Cell, cols int) []rune {
	chars := make([]rune, cols)
	for x := 0; x < cols; x++ {
		var cell Cell
		if x < len(line) {
			cell = line[x]
		}
		switch {
		case cell.Filler && x > 0:
			chars[x] = chars[x-1]
		case cell.Char == 0:
			chars[x] = ' '
		default:
			chars[x] = cell.Char
		}
	}
	return chars
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

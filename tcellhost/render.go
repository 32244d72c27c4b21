package tcellhost

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phroun/purfectview"
)

// DrawFrame implements purfectview.Renderer. tcell keeps its own back
// buffer and diffs on Show, so every frame repaints the whole grid and
// lets tcell decide what reaches the wire.
func (h *Host) DrawFrame(f *purfectview.Frame) {
	vp := h.view.Viewport()
	link := h.view.HoveredLink()
	thumbTop, thumbLen := h.scrollbarSpan(f)

	for y := 0; y < f.Rows; y++ {
		line := vp.LineAt(y)
		for x := 0; x < f.Cols; x++ {
			var cell purfectview.Cell
			if x < len(line) {
				cell = line[x]
			}
			ch := cell.Char
			if ch == 0 || cell.Filler {
				ch = ' '
			}

			style := tcell.StyleDefault
			if h.inSelection(f.Selection, x, y) {
				style = style.Reverse(true)
			}
			if link != nil && y == f.HoverRow && x >= link.StartX && x <= link.EndX {
				style = style.Underline(true)
			}

			if thumbLen > 0 && x == f.Cols-1 {
				ch = '░'
				if y >= thumbTop && y < thumbTop+thumbLen {
					ch = '█'
				}
				style = tcell.StyleDefault.Dim(true)
			}

			h.screen.SetContent(x, y, ch, nil, style)
		}
	}

	if f.Cursor.Visible && f.Offset == 0 {
		h.screen.ShowCursor(f.Cursor.X, f.Cursor.Y)
	} else {
		h.screen.HideCursor()
	}

	h.screen.Show()
}

// scrollbarSpan computes the overlay thumb extent in rows, or a zero
// length when the scrollbar is invisible.
func (h *Host) scrollbarSpan(f *purfectview.Frame) (top, length int) {
	if f.ScrollbarOpacity <= 0 || f.Rows <= 0 {
		return 0, 0
	}
	pos, l := h.view.Scrollbar().ThumbRect(float64(f.Rows))
	top = int(pos)
	length = int(l + 0.5)
	if length < 1 {
		length = 1
	}
	return top, length
}

// inSelection reports whether a viewport cell is inside the selection.
func (h *Host) inSelection(sel *purfectview.SelectionRange, x, y int) bool {
	if sel == nil {
		return false
	}
	pos := h.view.Viewport().ContentPosition(y)
	absY := pos.Index
	if !pos.Scrollback {
		absY += h.engine.GetScrollbackSize()
	}
	if absY < sel.StartY || absY > sel.EndY {
		return false
	}
	if absY == sel.StartY && x < sel.StartX {
		return false
	}
	if absY == sel.EndY && x > sel.EndX {
		return false
	}
	return true
}

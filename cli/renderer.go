package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/phroun/purfectview"
)

// Renderer paints purfectview frames onto the host terminal with ANSI
// codes. It keeps the previously drawn cells and rewrites only the
// positions that changed; a full frame (scroll, resize, invalidation)
// rewrites the window.
type Renderer struct {
	term *Terminal
	mu   sync.Mutex

	// lastCells is the previous frame for differential rendering;
	// nil forces a full rewrite.
	lastCells [][]renderedCell

	// Output buffer for batching writes
	output strings.Builder

	borderChars borderCharSet
}

// renderedCell is the last drawn state of a host cell.
type renderedCell struct {
	char     rune
	selected bool
	hovered  bool
	overlay  rune
}

// borderCharSet contains the characters for drawing borders
type borderCharSet struct {
	topLeft     rune
	topRight    rune
	bottomLeft  rune
	bottomRight rune
	horizontal  rune
	vertical    rune
	titleLeft   rune
	titleRight  rune
}

var borderStyles = map[BorderStyle]borderCharSet{
	BorderSingle: {
		topLeft: '┌', topRight: '┐', bottomLeft: '└', bottomRight: '┘',
		horizontal: '─', vertical: '│', titleLeft: '┤', titleRight: '├',
	},
	BorderDouble: {
		topLeft: '╔', topRight: '╗', bottomLeft: '╚', bottomRight: '╝',
		horizontal: '═', vertical: '║', titleLeft: '╡', titleRight: '╞',
	},
	BorderHeavy: {
		topLeft: '┏', topRight: '┓', bottomLeft: '┗', bottomRight: '┛',
		horizontal: '━', vertical: '┃', titleLeft: '┫', titleRight: '┣',
	},
	BorderRounded: {
		topLeft: '╭', topRight: '╮', bottomLeft: '╰', bottomRight: '╯',
		horizontal: '─', vertical: '│', titleLeft: '┤', titleRight: '├',
	},
}

// NewRenderer creates a renderer for the terminal.
func NewRenderer(term *Terminal) *Renderer {
	r := &Renderer{term: term}
	if term.options.BorderStyle != BorderNone {
		r.borderChars = borderStyles[term.options.BorderStyle]
	}
	return r
}

// Invalidate drops the differential state so the next frame rewrites
// the whole window.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	r.lastCells = nil
	r.mu.Unlock()
}

// DrawFrame implements purfectview.Renderer. It runs on the frame loop
// goroutine.
func (r *Renderer) DrawFrame(f *purfectview.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	opts := r.term.options
	view := r.term.view
	vp := view.Viewport()

	startX := opts.OffsetX
	startY := opts.OffsetY
	contentStartX := startX
	contentStartY := startY
	if opts.BorderStyle != BorderNone {
		contentStartX++
		contentStartY++
	}

	r.output.Reset()
	r.output.WriteString("\033[?25l")

	if opts.BorderStyle != BorderNone {
		r.renderBorder(startX, startY, f.Cols, f.Rows, opts.Title, f.Offset)
	}

	prevCells := r.lastCells
	full := f.Full || prevCells == nil || len(prevCells) != f.Rows

	newCells := make([][]renderedCell, f.Rows)
	thumbTop, thumbLen := scrollbarSpan(view, f)

	for y := 0; y < f.Rows; y++ {
		newCells[y] = make([]renderedCell, f.Cols)
		rowDirty := full || (f.RowDirty != nil && f.RowDirty[y])

		line := vp.LineAt(y)
		for x := 0; x < f.Cols; x++ {
			var cell purfectview.Cell
			if x < len(line) {
				cell = line[x]
			}
			ch := cell.Char
			if ch == 0 {
				ch = ' '
			}
			if cell.Filler {
				// The wide rune in the previous cell spans here.
				ch = 0
			}

			rc := renderedCell{
				char:     ch,
				selected: inSelection(f.Selection, x, y, view),
				hovered:  y == f.HoverRow,
				overlay:  overlayRune(f, x, y, thumbTop, thumbLen),
			}
			newCells[y][x] = rc

			if !rowDirty && prevCells[y] != nil && x < len(prevCells[y]) && prevCells[y][x] == rc {
				continue
			}
			if rc.char == 0 && rc.overlay == 0 {
				continue
			}
			r.drawCell(contentStartX+x, contentStartY+y, rc)
		}
	}

	if opts.ShowStatusBar {
		r.renderStatusBar(startX, contentStartY+f.Rows, f.Cols, f.Offset)
	}

	r.output.WriteString("\033[0m")

	// The host cursor stands in for the emulated one at the live tail.
	if f.Cursor.Visible && f.Offset == 0 {
		r.output.WriteString(fmt.Sprintf("\033[%d;%dH", contentStartY+f.Cursor.Y+1, contentStartX+f.Cursor.X+1))
		r.output.WriteString("\033[?25h")
	}

	os.Stdout.WriteString(r.output.String())
	r.lastCells = newCells
}

// drawCell writes one cell at a host position.
func (r *Renderer) drawCell(hostX, hostY int, rc renderedCell) {
	r.output.WriteString(fmt.Sprintf("\033[%d;%dH", hostY+1, hostX+1))

	switch {
	case rc.overlay != 0:
		r.output.WriteString("\033[0;2m")
		r.output.WriteRune(rc.overlay)
	case rc.selected:
		r.output.WriteString("\033[0;7m")
		r.output.WriteRune(rc.char)
	case rc.hovered:
		r.output.WriteString("\033[0;4m")
		r.output.WriteRune(rc.char)
	default:
		r.output.WriteString("\033[0m")
		r.output.WriteRune(rc.char)
	}
}

// scrollbarSpan computes the overlay thumb extent in rows, or a zero
// length when the scrollbar is invisible.
func scrollbarSpan(view *purfectview.Terminal, f *purfectview.Frame) (top, length int) {
	if f.ScrollbarOpacity <= 0 || f.Rows <= 0 {
		return 0, 0
	}
	pos, l := view.Scrollbar().ThumbRect(float64(f.Rows))
	top = int(pos)
	length = int(l + 0.5)
	if length < 1 {
		length = 1
	}
	return top, length
}

// overlayRune returns the scrollbar glyph for a position, or 0.
func overlayRune(f *purfectview.Frame, x, y, thumbTop, thumbLen int) rune {
	if thumbLen == 0 || x != f.Cols-1 {
		return 0
	}
	if y >= thumbTop && y < thumbTop+thumbLen {
		return '█'
	}
	return '░'
}

// inSelection reports whether a viewport cell is inside the selection.
func inSelection(sel *purfectview.SelectionRange, x, y int, view *purfectview.Terminal) bool {
	if sel == nil {
		return false
	}
	pos := view.Viewport().ContentPosition(y)
	absY := pos.Index
	if !pos.Scrollback {
		absY += view.Engine().GetScrollbackSize()
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

// renderBorder draws the window border, with the title in the top edge
// and a scroll marker when scrolled back.
func (r *Renderer) renderBorder(startX, startY, cols, rows int, title string, scrollOffset int) {
	bc := r.borderChars

	// Top border
	r.output.WriteString(fmt.Sprintf("\033[%d;%dH\033[0m", startY+1, startX+1))
	r.output.WriteRune(bc.topLeft)
	if title != "" && len(title)+4 < cols {
		r.output.WriteRune(bc.titleLeft)
		r.output.WriteString(title)
		r.output.WriteRune(bc.titleRight)
		for i := len(title) + 2; i < cols; i++ {
			r.output.WriteRune(bc.horizontal)
		}
	} else {
		for i := 0; i < cols; i++ {
			r.output.WriteRune(bc.horizontal)
		}
	}
	r.output.WriteRune(bc.topRight)

	// Side borders
	for y := 0; y < rows; y++ {
		r.output.WriteString(fmt.Sprintf("\033[%d;%dH", startY+y+2, startX+1))
		r.output.WriteRune(bc.vertical)
		r.output.WriteString(fmt.Sprintf("\033[%d;%dH", startY+y+2, startX+cols+2))
		r.output.WriteRune(bc.vertical)
	}

	// Bottom border, with a scrollback marker when applicable
	r.output.WriteString(fmt.Sprintf("\033[%d;%dH", startY+rows+2, startX+1))
	r.output.WriteRune(bc.bottomLeft)
	if scrollOffset > 0 {
		marker := fmt.Sprintf(" scrollback +%d ", scrollOffset)
		if len(marker)+2 < cols {
			r.output.WriteRune(bc.titleLeft)
			r.output.WriteString(marker)
			r.output.WriteRune(bc.titleRight)
			for i := len(marker) + 2; i < cols; i++ {
				r.output.WriteRune(bc.horizontal)
			}
		} else {
			for i := 0; i < cols; i++ {
				r.output.WriteRune(bc.horizontal)
			}
		}
	} else {
		for i := 0; i < cols; i++ {
			r.output.WriteRune(bc.horizontal)
		}
	}
	r.output.WriteRune(bc.bottomRight)
}

// renderStatusBar draws the status line under the window.
func (r *Renderer) renderStatusBar(startX, hostY, cols, scrollOffset int) {
	status := "live"
	if scrollOffset > 0 {
		status = fmt.Sprintf("scrollback +%d (Shift+End to return)", scrollOffset)
	}
	if len(status) > cols {
		status = status[:cols]
	}
	r.output.WriteString(fmt.Sprintf("\033[%d;%dH\033[0;7m", hostY+1, startX+1))
	r.output.WriteString(status)
	for i := len(status); i < cols; i++ {
		r.output.WriteByte(' ')
	}
	r.output.WriteString("\033[0m")
}

package purfectview

// Frame is the per-frame draw plan handed to the renderer: which rows
// need repainting and the overlay state to paint them with. Row flags
// are in viewport coordinates.
type Frame struct {
	Cols int
	Rows int

	// Offset is the floored scroll offset the frame was planned at.
	Offset int

	// Full requests a repaint of every row; RowDirty is then nil.
	Full     bool
	RowDirty []bool

	// Cursor is in viewport coordinates; Visible is false when the
	// cursor row is scrolled out of view.
	Cursor Cursor

	// Selection and Previous are the active selection and the one a
	// gesture just cleared. Previous appears in exactly one frame.
	Selection *SelectionRange
	Previous  *SelectionRange

	ScrollbarOpacity float64

	// HoverRow is the viewport row of a hovered link, or -1.
	HoverRow int
}

// Renderer paints frames. Hosts implement it over their graphics
// surface; DrawFrame runs on the goroutine driving Terminal.Frame.
type Renderer interface {
	DrawFrame(f *Frame)
}

// framePlanner decides, frame by frame, between a full repaint and a
// per-row one, and tracks the row state that went into the previous
// frame so rows the cursor or hover left behind get repainted.
type framePlanner struct {
	forceFull     bool
	lastOffset    int
	lastCursorY   int
	lastHoverRow  int
	lastSelection *SelectionRange
}

func newFramePlanner() *framePlanner {
	return &framePlanner{forceFull: true, lastCursorY: -1, lastHoverRow: -1}
}

// invalidate forces the next frame to repaint everything.
func (p *framePlanner) invalidate() {
	p.forceFull = true
}

func (p *framePlanner) plan(engine Engine, vp *Viewport, sel *SelectionManager, sb *ScrollBar, hover *linkHover) *Frame {
	cols, rows := engine.GetSize()
	offset := vp.GetRow()

	f := &Frame{
		Cols:             cols,
		Rows:             rows,
		Offset:           offset,
		ScrollbarOpacity: sb.GetOpacity(),
		HoverRow:         hover.HoverRow(),
	}
	if r, ok := sel.GetSelection(); ok {
		f.Selection = &r
	}
	f.Previous = sel.TakePrevious()

	cursor := engine.GetCursor()
	cursorY := cursor.Y + offset
	f.Cursor = Cursor{
		X:       cursor.X,
		Y:       cursorY,
		Visible: cursor.Visible && cursorY >= 0 && cursorY < rows,
	}
	if !f.Cursor.Visible {
		cursorY = -1
	}

	// Any scroll movement, and any scrolled-back view, repaints fully:
	// rows then show scrollback content the engine's dirty flags know
	// nothing about.
	f.Full = p.forceFull || offset > 0 || offset != p.lastOffset

	if !f.Full {
		// offset is 0 here, so viewport rows and live rows coincide.
		dirty := make([]bool, rows)
		for row := 0; row < rows; row++ {
			if engine.IsRowDirty(row) {
				dirty[row] = true
			}
		}
		sbSize := engine.GetScrollbackSize()
		if !sameRange(f.Selection, p.lastSelection) {
			markSelectionRows(dirty, f.Selection, sbSize, offset)
			markSelectionRows(dirty, p.lastSelection, sbSize, offset)
		}
		markSelectionRows(dirty, f.Previous, sbSize, offset)
		if cursorY != p.lastCursorY {
			markRow(dirty, cursorY)
			markRow(dirty, p.lastCursorY)
		}
		if f.HoverRow != p.lastHoverRow {
			markRow(dirty, f.HoverRow)
			markRow(dirty, p.lastHoverRow)
		}
		f.RowDirty = dirty
	}

	p.forceFull = false
	p.lastOffset = offset
	p.lastCursorY = cursorY
	p.lastHoverRow = f.HoverRow
	p.lastSelection = f.Selection
	return f
}

func sameRange(a, b *SelectionRange) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// markSelectionRows flags the viewport rows a content-absolute range
// currently covers.
func markSelectionRows(dirty []bool, r *SelectionRange, scrollback, offset int) {
	if r == nil {
		return
	}
	// Clamp to the visible band first; a select-all range can span the
	// whole scrollback.
	top := scrollback - offset
	start, end := r.StartY, r.EndY
	if start < top {
		start = top
	}
	if last := top + len(dirty) - 1; end > last {
		end = last
	}
	for absY := start; absY <= end; absY++ {
		markRow(dirty, absY-scrollback+offset)
	}
}

func markRow(dirty []bool, row int) {
	if row >= 0 && row < len(dirty) {
		dirty[row] = true
	}
}

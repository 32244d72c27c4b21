package purfectviewgtk

/*
#cgo pkg-config: gtk+-3.0 pangocairo
#include <stdlib.h>
#include <gtk/gtk.h>
#include <gdk/gdk.h>
#include <pango/pangocairo.h>

// Helper to get event coordinates
static void get_event_coords(GdkEvent *ev, double *x, double *y) {
    gdk_event_get_coords(ev, x, y);
}

// Render text using Pango for proper Unicode combining character support
static void pango_render_text(cairo_t *cr, const char *text, const char *font_family,
                              int font_size, double r, double g, double b) {
    PangoLayout *layout = pango_cairo_create_layout(cr);

    PangoFontDescription *desc = pango_font_description_new();
    pango_font_description_set_family(desc, font_family);
    pango_font_description_set_size(desc, font_size * PANGO_SCALE);

    pango_layout_set_font_description(layout, desc);
    pango_layout_set_text(layout, text, -1);

    cairo_set_source_rgb(cr, r, g, b);
    pango_cairo_show_layout(cr, layout);

    pango_font_description_free(desc);
    g_object_unref(layout);
}

// Get font metrics for proper baseline positioning (creates its own temp surface)
static void pango_get_font_metrics_standalone(const char *font_family, int font_size,
                                              int *out_ascent, int *out_descent, int *out_height) {
    cairo_surface_t *surface = cairo_image_surface_create(CAIRO_FORMAT_ARGB32, 1, 1);
    cairo_t *cr = cairo_create(surface);

    PangoLayout *layout = pango_cairo_create_layout(cr);

    PangoFontDescription *desc = pango_font_description_new();
    pango_font_description_set_family(desc, font_family);
    pango_font_description_set_size(desc, font_size * PANGO_SCALE);

    pango_layout_set_font_description(layout, desc);
    pango_layout_set_text(layout, "M", -1); // Use M for metrics

    PangoContext *context = pango_layout_get_context(layout);
    PangoFontMetrics *metrics = pango_context_get_metrics(context, desc, NULL);

    *out_ascent = pango_font_metrics_get_ascent(metrics) / PANGO_SCALE;
    *out_descent = pango_font_metrics_get_descent(metrics) / PANGO_SCALE;
    *out_height = (*out_ascent) + (*out_descent);

    pango_font_metrics_unref(metrics);
    pango_font_description_free(desc);
    g_object_unref(layout);

    cairo_destroy(cr);
    cairo_surface_destroy(surface);
}

// Get text width standalone (creates its own temp surface)
static int pango_text_width_standalone(const char *text, const char *font_family, int font_size) {
    cairo_surface_t *surface = cairo_image_surface_create(CAIRO_FORMAT_ARGB32, 1, 1);
    cairo_t *cr = cairo_create(surface);

    PangoLayout *layout = pango_cairo_create_layout(cr);

    PangoFontDescription *desc = pango_font_description_new();
    pango_font_description_set_family(desc, font_family);
    pango_font_description_set_size(desc, font_size * PANGO_SCALE);

    pango_layout_set_font_description(layout, desc);
    pango_layout_set_text(layout, text, -1);

    int width, height;
    pango_layout_get_pixel_size(layout, &width, &height);

    pango_font_description_free(desc);
    g_object_unref(layout);

    cairo_destroy(cr);
    cairo_surface_destroy(surface);

    return width;
}
*/
import "C"

import (
	"math"
	"time"
	"unicode"
	"unsafe"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/phroun/purfectview"
	"github.com/phroun/purfectview/gridengine"
)

// Left padding for terminal content (pixels)
const terminalLeftPadding = 8

// Width of the overlay scrollbar and its wider hit strip (pixels)
const (
	scrollbarWidth    = 8
	scrollbarHitWidth = 16
)

// Two presses on the same cell within this window count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// frameIntervalMS paces the view's frame loop (~60fps).
const frameIntervalMS = 16

// Widget is a GTK widget hosting a purfectview terminal. The widget
// owns the gridengine interpreter, translates GDK events into view
// events, and paints the view's frame plans with cairo and Pango.
type Widget struct {
	view   *purfectview.Terminal
	engine *gridengine.Engine

	box         *gtk.Box
	drawingArea *gtk.DrawingArea
	contextMenu *gtk.Menu

	fontFamily string
	fontSize   int
	charWidth  int
	charHeight int
	charAscent int

	frameTimerID glib.SourceHandle

	// Last plan handed over by the view; onDraw paints from it.
	plan *purfectview.Frame

	hasFocus       bool
	cursorBlinkOn  bool
	blinkTickCount int

	mouseDown     bool
	scrollbarDrag bool
	lastClickAt   time.Time
	lastClickX    int
	lastClickY    int

	onResize func(cols, rows int)
}

// NewWidget creates a terminal widget with its own gridengine screen.
func NewWidget(cols, rows, scrollbackSize int) (*Widget, error) {
	w := &Widget{
		fontFamily:    "Monospace",
		fontSize:      14,
		charWidth:     10, // Will be calculated properly
		charHeight:    20,
		charAscent:    16,
		cursorBlinkOn: true,
	}
	w.engine = gridengine.New(cols, rows, scrollbackSize)

	// The desktop clipboard is primary; the X11 primary selection
	// serves as fallback.
	clipboard, err := newClipboard(gdk.SELECTION_CLIPBOARD)
	if err != nil {
		return nil, err
	}
	primary, _ := newClipboard(gdk.SELECTION_PRIMARY)

	opts := purfectview.Options{
		Engine:    w.engine,
		Renderer:  w,
		Clipboard: clipboard,
		Links:     purfectview.NewURLLinkProvider(),
	}
	if primary != nil {
		opts.FallbackClipboard = primary
	}
	w.view, err = purfectview.New(opts)
	if err != nil {
		return nil, err
	}

	w.box, err = gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 0)
	if err != nil {
		return nil, err
	}
	w.drawingArea, err = gtk.DrawingAreaNew()
	if err != nil {
		return nil, err
	}

	w.drawingArea.AddEvents(int(gdk.BUTTON_PRESS_MASK | gdk.BUTTON_RELEASE_MASK |
		gdk.POINTER_MOTION_MASK | gdk.SCROLL_MASK | gdk.KEY_PRESS_MASK |
		gdk.LEAVE_NOTIFY_MASK))
	w.drawingArea.SetCanFocus(true)

	w.drawingArea.Connect("draw", w.onDraw)
	w.drawingArea.Connect("button-press-event", w.onButtonPress)
	w.drawingArea.Connect("button-release-event", w.onButtonRelease)
	w.drawingArea.Connect("motion-notify-event", w.onMotionNotify)
	w.drawingArea.Connect("leave-notify-event", w.onLeaveNotify)
	w.drawingArea.Connect("scroll-event", w.onScroll)
	w.drawingArea.Connect("key-press-event", w.onKeyPress)
	w.drawingArea.Connect("configure-event", w.onConfigure)
	w.drawingArea.Connect("focus-in-event", w.onFocusIn)
	w.drawingArea.Connect("focus-out-event", w.onFocusOut)

	w.box.PackStart(w.drawingArea, true, true, 0)

	// Create context menu for right-click
	w.contextMenu, _ = gtk.MenuNew()
	copyItem, _ := gtk.MenuItemNewWithLabel("Copy")
	copyItem.Connect("activate", func() {
		w.CopySelection()
	})
	w.contextMenu.Append(copyItem)

	pasteItem, _ := gtk.MenuItemNewWithLabel("Paste")
	pasteItem.Connect("activate", func() {
		w.PasteClipboard()
	})
	w.contextMenu.Append(pasteItem)

	separator, _ := gtk.SeparatorMenuItemNew()
	w.contextMenu.Append(separator)

	selectAllItem, _ := gtk.MenuItemNewWithLabel("Select All")
	selectAllItem.Connect("activate", func() {
		w.SelectAll()
	})
	w.contextMenu.Append(selectAllItem)

	w.contextMenu.ShowAll()

	w.updateFontMetrics()
	w.drawingArea.SetSizeRequest(100, 50)

	if err := w.view.Open(); err != nil {
		return nil, err
	}

	// Frame timer: advances scroll and fade animations, replays
	// throttled link lookups and hands us a draw plan when anything
	// changed. Cursor blink rides the same tick.
	w.frameTimerID = glib.TimeoutAdd(frameIntervalMS, func() bool {
		w.blinkTickCount++
		if w.blinkTickCount >= 30 { // ~500ms phase
			w.blinkTickCount = 0
			if w.hasFocus {
				w.cursorBlinkOn = !w.cursorBlinkOn
				w.drawingArea.QueueDraw()
			} else if !w.cursorBlinkOn {
				w.cursorBlinkOn = true
				w.drawingArea.QueueDraw()
			}
		}
		w.view.Frame(time.Now())
		return true // Keep timer running
	})

	return w, nil
}

// DrawFrame implements purfectview.Renderer. The view calls it on the
// frame tick, which runs on the GTK main loop, so queueing the redraw
// directly is safe.
func (w *Widget) DrawFrame(f *purfectview.Frame) {
	w.plan = f
	w.drawingArea.QueueDraw()
}

// Box returns the container widget
func (w *Widget) Box() *gtk.Box {
	return w.box
}

// DrawingArea returns the drawing area widget
func (w *Widget) DrawingArea() *gtk.DrawingArea {
	return w.drawingArea
}

// View returns the hosted purfectview terminal for direct viewport,
// selection and scrollbar access.
func (w *Widget) View() *purfectview.Terminal {
	return w.view
}

// Engine returns the screen-grid engine.
func (w *Widget) Engine() *gridengine.Engine {
	return w.engine
}

// SetFont sets the terminal font
func (w *Widget) SetFont(family string, size int) {
	w.fontFamily = family
	w.fontSize = size
	w.updateFontMetrics()
	w.onConfigure(w.drawingArea, nil)
	w.view.Refresh()
	w.drawingArea.QueueDraw()
}

// SetInputCallback subscribes to the byte stream destined for the
// remote process.
func (w *Widget) SetInputCallback(fn func([]byte)) {
	w.view.OnOutput(fn)
}

// SetResizeCallback sets a callback invoked when the widget's cell
// grid changes size.
func (w *Widget) SetResizeCallback(fn func(cols, rows int)) {
	w.onResize = fn
}

// Feed writes remote output into the terminal
func (w *Widget) Feed(data []byte) {
	w.view.Feed(data)
}

// FeedString writes a string to the terminal
func (w *Widget) FeedString(data string) {
	w.view.Feed([]byte(data))
}

// Resize resizes the terminal grid
func (w *Widget) Resize(cols, rows int) {
	w.engine.Resize(cols, rows)
	w.view.Refresh()
	if w.onResize != nil {
		w.onResize(cols, rows)
	}
}

// GetSize returns the terminal size in cells
func (w *Widget) GetSize() (cols, rows int) {
	return w.engine.GetSize()
}

// GetSelectedText returns currently selected text
func (w *Widget) GetSelectedText() string {
	return w.view.GetSelectedText()
}

// CopySelection copies selected text to the clipboard
func (w *Widget) CopySelection() {
	w.view.CopySelection()
}

// PasteClipboard pastes text from the clipboard into the terminal
func (w *Widget) PasteClipboard() {
	w.view.PasteFromClipboard()
}

// SelectAll selects the scrollback and screen
func (w *Widget) SelectAll() {
	w.view.SelectAll()
}

// Destroy stops the frame timer and disposes the hosted terminal.
// Device events arriving afterwards are dropped.
func (w *Widget) Destroy() {
	if w.frameTimerID != 0 {
		glib.SourceRemove(w.frameTimerID)
		w.frameTimerID = 0
	}
	w.view.Dispose()
}

// pangoRenderText renders text with Pango at the context's current
// origin. This replaces Cairo's ShowText which doesn't handle complex
// text shaping.
func pangoRenderText(cr *cairo.Context, text, fontFamily string, fontSize int, r, g, b float64) {
	cText := C.CString(text)
	cFont := C.CString(fontFamily)
	defer C.free(unsafe.Pointer(cText))
	defer C.free(unsafe.Pointer(cFont))

	crNative := (*C.cairo_t)(unsafe.Pointer(cr.Native()))
	C.pango_render_text(crNative, cText, cFont, C.int(fontSize), C.double(r), C.double(g), C.double(b))
}

func (w *Widget) updateFontMetrics() {
	cFont := C.CString(w.fontFamily)
	defer C.free(unsafe.Pointer(cFont))

	var ascent, descent, height C.int
	C.pango_get_font_metrics_standalone(cFont, C.int(w.fontSize), &ascent, &descent, &height)

	cText := C.CString("M")
	defer C.free(unsafe.Pointer(cText))
	width := C.pango_text_width_standalone(cText, cFont, C.int(w.fontSize))

	w.charAscent = int(ascent)
	w.charHeight = int(height)
	w.charWidth = int(width)
	if w.charWidth <= 0 {
		w.charWidth = w.fontSize * 3 / 5
	}
	if w.charHeight <= 0 {
		w.charHeight = w.fontSize * 3 / 2
	}
}

// Terminal color palette. The view layer has no color model of its
// own; cells are plain runes and selection, hover and the scrollbar
// are drawn as overlays.
var (
	colorBackground = [3]float64{0.12, 0.12, 0.13}
	colorForeground = [3]float64{0.85, 0.85, 0.85}
	colorSelection  = [3]float64{0.25, 0.35, 0.55}
	colorCursor     = [3]float64{0.85, 0.85, 0.85}
	colorLink       = [3]float64{0.45, 0.65, 0.95}
	colorScrollbar  = [3]float64{0.65, 0.65, 0.65}
)

func (w *Widget) onDraw(da *gtk.DrawingArea, cr *cairo.Context) bool {
	width := float64(da.GetAllocatedWidth())
	height := float64(da.GetAllocatedHeight())

	cr.SetSourceRGB(colorBackground[0], colorBackground[1], colorBackground[2])
	cr.Rectangle(0, 0, width, height)
	cr.Fill()

	plan := w.plan
	if plan == nil {
		return false
	}

	vp := w.view.Viewport()
	cellW := float64(w.charWidth)
	cellH := float64(w.charHeight)

	// The fractional part of an in-flight smooth scroll becomes a
	// pixel shift; one extra history row fills the gap at the top.
	offset := vp.GetOffset()
	frac := offset - math.Floor(offset)

	cr.Save()
	cr.Rectangle(0, 0, width, height)
	cr.Clip()
	cr.Translate(terminalLeftPadding, frac*cellH)

	firstRow := 0
	if frac > 0 && vp.GetRow() < vp.GetMaxOffset() {
		firstRow = -1
	}
	for y := firstRow; y < plan.Rows; y++ {
		w.drawRow(cr, plan, y, cellW, cellH)
	}

	if plan.Cursor.Visible && w.cursorBlinkOn {
		w.drawCursor(cr, plan, cellW, cellH)
	}
	cr.Restore()

	if plan.ScrollbarOpacity > 0 {
		w.drawScrollbar(cr, plan.ScrollbarOpacity, width, height)
	}

	return false
}

// drawRow paints one viewport row: selection band, cell runes and the
// hovered link underline.
func (w *Widget) drawRow(cr *cairo.Context, plan *purfectview.Frame, y int, cellW, cellH float64) {
	line := w.view.Viewport().LineAt(y)
	if line == nil {
		return
	}
	top := float64(y) * cellH

	selStart, selEnd, selOK := w.selectionSpan(plan.Selection, y, plan.Cols)
	if selOK {
		cr.SetSourceRGB(colorSelection[0], colorSelection[1], colorSelection[2])
		cr.Rectangle(float64(selStart)*cellW, top, float64(selEnd-selStart+1)*cellW, cellH)
		cr.Fill()
	}

	for x := 0; x < plan.Cols && x < len(line); x++ {
		cell := line[x]
		if cell.Filler || cell.Char == 0 || cell.Char == ' ' {
			continue
		}
		cr.Save()
		cr.Translate(float64(x)*cellW, top)
		pangoRenderText(cr, string(cell.Char), w.fontFamily, w.fontSize,
			colorForeground[0], colorForeground[1], colorForeground[2])
		cr.Restore()
	}

	if link := w.view.HoveredLink(); link != nil && y == plan.HoverRow {
		cr.SetSourceRGB(colorLink[0], colorLink[1], colorLink[2])
		cr.Rectangle(float64(link.StartX)*cellW, top+cellH-2, float64(link.EndX-link.StartX+1)*cellW, 1.5)
		cr.Fill()
	}
}

// selectionSpan clips the selection to one viewport row, returning the
// covered column range.
func (w *Widget) selectionSpan(sel *purfectview.SelectionRange, y, cols int) (start, end int, ok bool) {
	if sel == nil {
		return 0, 0, false
	}
	pos := w.view.Viewport().ContentPosition(y)
	absY := pos.Index
	if !pos.Scrollback {
		absY += w.engine.GetScrollbackSize()
	}
	if absY < sel.StartY || absY > sel.EndY {
		return 0, 0, false
	}
	start, end = 0, cols-1
	if absY == sel.StartY {
		start = sel.StartX
	}
	if absY == sel.EndY {
		end = sel.EndX
	}
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}

func (w *Widget) drawCursor(cr *cairo.Context, plan *purfectview.Frame, cellW, cellH float64) {
	x := float64(plan.Cursor.X) * cellW
	y := float64(plan.Cursor.Y) * cellH

	cr.SetSourceRGB(colorCursor[0], colorCursor[1], colorCursor[2])
	if w.hasFocus {
		cr.Rectangle(x, y, cellW, cellH)
		cr.Fill()

		// Repaint the covered rune in the background color.
		line := w.view.Viewport().LineAt(plan.Cursor.Y)
		if plan.Cursor.X < len(line) {
			cell := line[plan.Cursor.X]
			if !cell.Filler && cell.Char != 0 && cell.Char != ' ' {
				cr.Save()
				cr.Translate(x, y)
				pangoRenderText(cr, string(cell.Char), w.fontFamily, w.fontSize,
					colorBackground[0], colorBackground[1], colorBackground[2])
				cr.Restore()
			}
		}
	} else {
		// Hollow cursor while unfocused
		cr.SetLineWidth(1)
		cr.Rectangle(x+0.5, y+0.5, cellW-1, cellH-1)
		cr.Stroke()
	}
}

// drawScrollbar paints the overlay thumb along the right edge at the
// fade opacity the view reports.
func (w *Widget) drawScrollbar(cr *cairo.Context, opacity, width, height float64) {
	pos, length := w.view.Scrollbar().ThumbRect(height)
	x := width - scrollbarWidth - 2

	cr.SetSourceRGBA(colorScrollbar[0], colorScrollbar[1], colorScrollbar[2], 0.25*opacity)
	cr.Rectangle(x, 0, scrollbarWidth, height)
	cr.Fill()

	cr.SetSourceRGBA(colorScrollbar[0], colorScrollbar[1], colorScrollbar[2], 0.9*opacity)
	cr.Rectangle(x, pos, scrollbarWidth, length)
	cr.Fill()
}

// screenToCell converts pixel coordinates to cell coordinates. The row
// is left unclamped so drags beyond the edges report overshoot.
func (w *Widget) screenToCell(screenX, screenY float64) (cellX, cellY int) {
	cellY = int(math.Floor(screenY / float64(w.charHeight)))

	relativeX := screenX - float64(terminalLeftPadding)
	if relativeX < 0 {
		return 0, cellY
	}
	cellX = int(relativeX / float64(w.charWidth))

	cols, _ := w.engine.GetSize()
	if cellX >= cols {
		cellX = cols - 1
	}
	return cellX, cellY
}

// inScrollbarStrip reports whether a press lands on the scrollbar hit
// area while the overlay is showing.
func (w *Widget) inScrollbarStrip(x float64) bool {
	if w.view.Scrollbar().GetOpacity() <= 0 {
		return false
	}
	width := float64(w.drawingArea.GetAllocatedWidth())
	return x >= width-scrollbarHitWidth
}

func (w *Widget) onButtonPress(da *gtk.DrawingArea, ev *gdk.Event) bool {
	btn := gdk.EventButtonNewFromEvent(ev)
	x, y := btn.X(), btn.Y()
	button := btn.Button()

	if button == 1 { // Left button
		da.GrabFocus()

		if w.inScrollbarStrip(x) {
			height := float64(da.GetAllocatedHeight())
			if w.view.HandleScrollbarPress(y, height) {
				w.scrollbarDrag = true
				return true
			}
		}

		cellX, cellY := w.screenToCell(x, y)
		now := time.Now()
		if now.Sub(w.lastClickAt) < doubleClickWindow && cellX == w.lastClickX && cellY == w.lastClickY {
			w.lastClickAt = time.Time{}
			w.view.HandleDoubleClick(cellX, cellY)
			return true
		}
		w.lastClickAt = now
		w.lastClickX = cellX
		w.lastClickY = cellY

		w.mouseDown = true
		w.view.HandleMouseDown(cellX, cellY)
		return true
	}

	if button == 3 { // Right button - show context menu
		if w.contextMenu != nil {
			w.contextMenu.PopupAtPointer(ev)
		}
		return true
	}

	return false
}

func (w *Widget) onButtonRelease(da *gtk.DrawingArea, ev *gdk.Event) bool {
	btn := gdk.EventButtonNewFromEvent(ev)
	if btn.Button() != 1 {
		return false
	}

	if w.scrollbarDrag {
		w.scrollbarDrag = false
		w.view.HandleScrollbarRelease()
		return true
	}
	if w.mouseDown {
		w.mouseDown = false
		cellX, cellY := w.screenToCell(btn.X(), btn.Y())
		w.view.HandleMouseUp(cellX, cellY)
	}
	return true
}

func (w *Widget) onMotionNotify(da *gtk.DrawingArea, ev *gdk.Event) bool {
	// Use C helper to get coordinates from the event
	var x, y C.double
	C.get_event_coords((*C.GdkEvent)(unsafe.Pointer(ev.Native())), &x, &y)

	if w.scrollbarDrag {
		w.view.HandleScrollbarMove(float64(y), float64(da.GetAllocatedHeight()))
		return true
	}

	cellX, cellY := w.screenToCell(float64(x), float64(y))
	w.view.HandleMouseMove(cellX, cellY)
	return w.mouseDown
}

func (w *Widget) onLeaveNotify(da *gtk.DrawingArea, ev *gdk.Event) bool {
	w.view.HandleMouseLeave()
	return false
}

func (w *Widget) onScroll(da *gtk.DrawingArea, ev *gdk.Event) bool {
	scroll := gdk.EventScrollNewFromEvent(ev)
	switch scroll.Direction() {
	case gdk.SCROLL_UP:
		w.view.HandleWheel(-1)
	case gdk.SCROLL_DOWN:
		w.view.HandleWheel(1)
	default:
		return false
	}
	return true
}

func (w *Widget) onConfigure(da *gtk.DrawingArea, ev *gdk.Event) bool {
	width := da.GetAllocatedWidth()
	height := da.GetAllocatedHeight()
	if width <= 0 || height <= 0 {
		return false
	}

	cols := (width - terminalLeftPadding) / w.charWidth
	rows := height / w.charHeight
	if cols < 2 || rows < 2 {
		return false
	}

	oldCols, oldRows := w.engine.GetSize()
	if cols == oldCols && rows == oldRows {
		return false
	}

	w.engine.Resize(cols, rows)
	w.view.Refresh()
	if w.onResize != nil {
		w.onResize(cols, rows)
	}
	return false
}

func (w *Widget) onFocusIn(da *gtk.DrawingArea, ev *gdk.Event) bool {
	w.hasFocus = true
	w.cursorBlinkOn = true
	da.QueueDraw()
	return false
}

func (w *Widget) onFocusOut(da *gtk.DrawingArea, ev *gdk.Event) bool {
	w.hasFocus = false
	w.cursorBlinkOn = true
	da.QueueDraw()
	return false
}

func (w *Widget) onKeyPress(da *gtk.DrawingArea, ev *gdk.Event) bool {
	key := gdk.EventKeyNewFromEvent(ev)
	keyval := key.KeyVal()
	state := key.State()

	if isModifierKey(keyval) {
		return false
	}

	hasShift := state&uint(gdk.SHIFT_MASK) != 0
	hasCtrl := state&uint(gdk.CONTROL_MASK) != 0
	hasAlt := state&uint(gdk.MOD1_MASK) != 0
	hasMeta := state&uint(gdk.META_MASK) != 0 || state&uint(gdk.SUPER_MASK) != 0

	// Leave Ctrl+Tab and bare Shift+Tab to GTK focus navigation.
	if keyval == gdk.KEY_Tab || keyval == gdk.KEY_ISO_Left_Tab {
		if hasCtrl {
			return false
		}
		if hasShift && !hasAlt && !hasMeta {
			return false
		}
	}

	// Shift-modified navigation keys page the scrollback locally.
	if hasShift && !hasCtrl && !hasAlt && !hasMeta {
		switch keyval {
		case gdk.KEY_Page_Up:
			w.view.ScrollPages(1)
			return true
		case gdk.KEY_Page_Down:
			w.view.ScrollPages(-1)
			return true
		case gdk.KEY_Home:
			w.view.ScrollToTop()
			return true
		case gdk.KEY_End:
			w.view.ScrollToBottom()
			return true
		}
	}

	var mods purfectview.Modifiers
	if hasShift {
		mods |= purfectview.ModShift
	}
	if hasCtrl {
		mods |= purfectview.ModCtrl
	}
	if hasAlt {
		mods |= purfectview.ModAlt
	}
	if hasMeta {
		mods |= purfectview.ModMeta
	}

	code, text := translateKeyval(keyval)
	if code == "" && text == "" {
		return false
	}

	w.view.HandleKeyDown(purfectview.KeyEvent{
		Code:      code,
		Text:      text,
		Modifiers: mods,
	})
	return true
}

// specialKeyCodes maps GDK keyvals for non-character keys to physical
// key code identifiers.
var specialKeyCodes = map[uint]string{
	gdk.KEY_Return:       "Enter",
	gdk.KEY_KP_Enter:     "NumpadEnter",
	gdk.KEY_BackSpace:    "Backspace",
	gdk.KEY_Tab:          "Tab",
	gdk.KEY_ISO_Left_Tab: "Tab",
	gdk.KEY_Escape:       "Escape",
	gdk.KEY_Up:           "ArrowUp",
	gdk.KEY_KP_Up:        "ArrowUp",
	gdk.KEY_Down:         "ArrowDown",
	gdk.KEY_KP_Down:      "ArrowDown",
	gdk.KEY_Right:        "ArrowRight",
	gdk.KEY_KP_Right:     "ArrowRight",
	gdk.KEY_Left:         "ArrowLeft",
	gdk.KEY_KP_Left:      "ArrowLeft",
	gdk.KEY_Home:         "Home",
	gdk.KEY_KP_Home:      "Home",
	gdk.KEY_End:          "End",
	gdk.KEY_KP_End:       "End",
	gdk.KEY_Page_Up:      "PageUp",
	gdk.KEY_KP_Page_Up:   "PageUp",
	gdk.KEY_Page_Down:    "PageDown",
	gdk.KEY_KP_Page_Down: "PageDown",
	gdk.KEY_Insert:       "Insert",
	gdk.KEY_KP_Insert:    "Insert",
	gdk.KEY_Delete:       "Delete",
	gdk.KEY_KP_Delete:    "Delete",
	gdk.KEY_F1:           "F1",
	gdk.KEY_F2:           "F2",
	gdk.KEY_F3:           "F3",
	gdk.KEY_F4:           "F4",
	gdk.KEY_F5:           "F5",
	gdk.KEY_F6:           "F6",
	gdk.KEY_F7:           "F7",
	gdk.KEY_F8:           "F8",
	gdk.KEY_F9:           "F9",
	gdk.KEY_F10:          "F10",
	gdk.KEY_F11:          "F11",
	gdk.KEY_F12:          "F12",
}

// punctCodes maps printable punctuation (base and shifted variants) to
// the physical key that produces it on a US layout.
var punctCodes = map[rune]string{
	' ': "Space",
	'-': "Minus", '_': "Minus",
	'=': "Equal", '+': "Equal",
	'[': "BracketLeft", '{': "BracketLeft",
	']': "BracketRight", '}': "BracketRight",
	'\\': "Backslash", '|': "Backslash",
	';': "Semicolon", ':': "Semicolon",
	'\'': "Quote", '"': "Quote",
	'`': "Backquote", '~': "Backquote",
	',': "Comma", '<': "Comma",
	'.': "Period", '>': "Period",
	'/': "Slash", '?': "Slash",
	'!': "Digit1", '@': "Digit2", '#': "Digit3", '$': "Digit4",
	'%': "Digit5", '^': "Digit6", '&': "Digit7", '*': "Digit8",
	'(': "Digit9", ')': "Digit0",
}

// translateKeyval resolves a GDK keyval to a physical key code and the
// text it produces.
func translateKeyval(keyval uint) (code, text string) {
	if c, ok := specialKeyCodes[keyval]; ok {
		return c, ""
	}

	r := gdk.KeyvalToUnicode(keyval)
	if r == 0 || !unicode.IsPrint(r) {
		return "", ""
	}
	text = string(r)

	switch {
	case r >= 'a' && r <= 'z':
		code = "Key" + string(r-'a'+'A')
	case r >= 'A' && r <= 'Z':
		code = "Key" + string(r)
	case r >= '0' && r <= '9':
		code = "Digit" + string(r)
	default:
		code = punctCodes[r]
	}
	return code, text
}

// isModifierKey returns true for bare modifier presses, which carry no
// input of their own.
func isModifierKey(keyval uint) bool {
	switch keyval {
	case gdk.KEY_Shift_L, gdk.KEY_Shift_R,
		gdk.KEY_Control_L, gdk.KEY_Control_R,
		gdk.KEY_Alt_L, gdk.KEY_Alt_R,
		gdk.KEY_Meta_L, gdk.KEY_Meta_R,
		gdk.KEY_Super_L, gdk.KEY_Super_R,
		gdk.KEY_Hyper_L, gdk.KEY_Hyper_R,
		gdk.KEY_Caps_Lock, gdk.KEY_Num_Lock, gdk.KEY_Scroll_Lock:
		return true
	}
	return false
}

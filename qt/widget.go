package purfectviewqt

import (
	"math"
	"runtime"
	"time"
	"unicode"

	"github.com/mappu/miqt/qt"

	"github.com/phroun/purfectview"
	"github.com/phroun/purfectview/gridengine"
)

// Left padding for terminal content (pixels)
const terminalLeftPadding = 8

// Qt font size scale factor to match GTK/Pango font rendering
// Qt interprets font sizes differently than Pango, so we multiply by this factor
const qtFontSizeScale = 1.333

// Width of the overlay scrollbar and its wider hit strip (pixels)
const (
	scrollbarWidth    = 8
	scrollbarHitWidth = 16
)

// frameIntervalMS paces the view's frame loop (~60fps).
const frameIntervalMS = 16

// Widget is a Qt widget hosting a purfectview terminal. It owns the
// gridengine interpreter, translates Qt events into view events, and
// paints the view's frame plans with QPainter.
type Widget struct {
	widget *qt.QWidget
	view   *purfectview.Terminal
	engine *gridengine.Engine

	contextMenu *qt.QMenu
	frameTimer  *qt.QTimer

	fontFamily string
	fontSize   int
	charWidth  int
	charHeight int
	charAscent int

	// Last plan handed over by the view; paintEvent paints from it.
	plan *purfectview.Frame

	hasFocus       bool
	cursorBlinkOn  bool
	blinkTickCount int

	mouseDown     bool
	scrollbarDrag bool

	onResize func(cols, rows int)
}

// NewWidget creates a terminal widget with its own gridengine screen.
func NewWidget(cols, rows, scrollbackSize int) (*Widget, error) {
	w := &Widget{
		widget:        qt.NewQWidget2(),
		fontFamily:    "Monospace",
		fontSize:      14,
		charWidth:     10,
		charHeight:    20,
		charAscent:    16,
		cursorBlinkOn: true,
	}
	w.engine = gridengine.New(cols, rows, scrollbackSize)

	view, err := purfectview.New(purfectview.Options{
		Engine:    w.engine,
		Renderer:  w,
		Clipboard: &qtClipboard{},
		Links:     purfectview.NewURLLinkProvider(),
	})
	if err != nil {
		return nil, err
	}
	w.view = view

	// Enable focus and mouse tracking on the terminal widget
	w.widget.SetFocusPolicy(qt.StrongFocus)
	w.widget.SetMouseTracking(true)
	w.widget.SetAttribute(qt.WA_InputMethodEnabled)

	w.updateFontMetrics()
	w.widget.SetMinimumSize2(100, 50)

	// Connect events using miqt's OnXxxEvent pattern
	w.widget.OnPaintEvent(func(super func(event *qt.QPaintEvent), event *qt.QPaintEvent) {
		w.paintEvent(event)
	})
	w.widget.OnKeyPressEvent(func(super func(event *qt.QKeyEvent), event *qt.QKeyEvent) {
		w.keyPressEvent(event)
	})
	w.widget.OnMousePressEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		w.mousePressEvent(event)
	})
	w.widget.OnMouseReleaseEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		w.mouseReleaseEvent(event)
	})
	w.widget.OnMouseMoveEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		w.mouseMoveEvent(event)
	})
	w.widget.OnMouseDoubleClickEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		w.mouseDoubleClickEvent(event)
	})
	w.widget.OnWheelEvent(func(super func(event *qt.QWheelEvent), event *qt.QWheelEvent) {
		w.wheelEvent(event)
	})
	w.widget.OnLeaveEvent(func(super func(event *qt.QEvent), event *qt.QEvent) {
		w.view.HandleMouseLeave()
		super(event)
	})
	w.widget.OnFocusInEvent(func(super func(event *qt.QFocusEvent), event *qt.QFocusEvent) {
		w.hasFocus = true
		w.cursorBlinkOn = true
		w.widget.Update()
	})
	w.widget.OnFocusOutEvent(func(super func(event *qt.QFocusEvent), event *qt.QFocusEvent) {
		w.hasFocus = false
		w.cursorBlinkOn = true
		w.widget.Update()
	})
	w.widget.OnResizeEvent(func(super func(event *qt.QResizeEvent), event *qt.QResizeEvent) {
		w.resizeEvent(event)
	})

	// Create context menu for right-click
	w.contextMenu = qt.NewQMenu(w.widget)

	copyAction := w.contextMenu.AddAction("Copy")
	copyAction.OnTriggered(func() {
		w.CopySelection()
	})

	pasteAction := w.contextMenu.AddAction("Paste")
	pasteAction.OnTriggered(func() {
		w.PasteClipboard()
	})

	w.contextMenu.AddSeparator()

	selectAllAction := w.contextMenu.AddAction("Select All")
	selectAllAction.OnTriggered(func() {
		w.SelectAll()
	})

	w.widget.SetContextMenuPolicy(qt.CustomContextMenu)
	w.widget.OnCustomContextMenuRequested(func(pos *qt.QPoint) {
		w.contextMenu.ExecWithPos(w.widget.MapToGlobal(pos))
	})

	// Tab key handling: Qt intercepts Tab for focus navigation before
	// keyPressEvent, so shortcuts capture it while this widget has
	// focus. Plain Tab goes to the terminal; Ctrl+Tab and Shift+Tab
	// keep their focus navigation role.
	tabShortcut := qt.NewQShortcut2(qt.NewQKeySequence2("Tab"), w.widget)
	tabShortcut.SetContext(qt.WidgetWithChildrenShortcut)
	tabShortcut.OnActivated(func() {
		w.view.HandleKeyDown(purfectview.KeyEvent{Code: "Tab"})
	})

	ctrlTabShortcut := qt.NewQShortcut2(qt.NewQKeySequence2("Ctrl+Tab"), w.widget)
	ctrlTabShortcut.SetContext(qt.WidgetWithChildrenShortcut)
	ctrlTabShortcut.OnActivated(func() {
		w.widget.FocusNextChild()
	})

	shiftTabShortcut := qt.NewQShortcut2(qt.NewQKeySequence2("Shift+Tab"), w.widget)
	shiftTabShortcut.SetContext(qt.WidgetWithChildrenShortcut)
	shiftTabShortcut.OnActivated(func() {
		w.widget.FocusPreviousChild()
	})

	if err := w.view.Open(); err != nil {
		return nil, err
	}

	// Frame timer: advances scroll and fade animations, replays
	// throttled link lookups and hands us a draw plan when anything
	// changed. Cursor blink rides the same tick.
	w.frameTimer = qt.NewQTimer2(w.widget.QObject)
	w.frameTimer.OnTimeout(func() {
		w.blinkTickCount++
		if w.blinkTickCount >= 30 { // ~500ms phase
			w.blinkTickCount = 0
			if w.hasFocus {
				w.cursorBlinkOn = !w.cursorBlinkOn
				w.widget.Update()
			}
		}
		w.view.Frame(time.Now())
	})
	w.frameTimer.Start(frameIntervalMS)

	return w, nil
}

// DrawFrame implements purfectview.Renderer. The view calls it on the
// frame tick, which runs on the Qt main thread.
func (w *Widget) DrawFrame(f *purfectview.Frame) {
	w.plan = f
	w.widget.Update()
}

// QWidget returns the underlying Qt widget for embedding in layouts
func (w *Widget) QWidget() *qt.QWidget {
	return w.widget
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
	w.view.Refresh()
	w.widget.Update()
}

func (w *Widget) effectiveFontSize() int {
	return int(float64(w.fontSize) * qtFontSizeScale)
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

// GetSize returns the terminal size in cells
func (w *Widget) GetSize() (cols, rows int) {
	return w.engine.GetSize()
}

// GetSelectedText returns the currently selected text
func (w *Widget) GetSelectedText() string {
	return w.view.GetSelectedText()
}

// CopySelection copies selected text to clipboard
func (w *Widget) CopySelection() {
	w.view.CopySelection()
}

// PasteClipboard pastes text from clipboard
func (w *Widget) PasteClipboard() {
	w.view.PasteFromClipboard()
}

// SelectAll selects the scrollback and screen
func (w *Widget) SelectAll() {
	w.view.SelectAll()
}

// Destroy stops the frame timer and disposes the hosted terminal.
func (w *Widget) Destroy() {
	if w.frameTimer != nil {
		w.frameTimer.Stop()
	}
	w.view.Dispose()
}

func (w *Widget) updateFontMetrics() {
	font := qt.NewQFont6(w.fontFamily, w.effectiveFontSize())
	font.SetFixedPitch(true)
	metrics := qt.NewQFontMetrics(font)
	w.charWidth = metrics.AverageCharWidth()
	w.charHeight = metrics.Height()
	w.charAscent = metrics.Ascent()
	if w.charWidth < 1 {
		w.charWidth = w.fontSize * 6 / 10
	}
	if w.charHeight < 1 {
		w.charHeight = w.fontSize * 12 / 10
	}
}

// Terminal color palette. Cells are plain runes; selection, hover and
// the scrollbar are drawn as overlays.
var (
	colorBackground = [3]int{31, 31, 33}
	colorForeground = [3]int{217, 217, 217}
	colorSelection  = [3]int{64, 89, 140}
	colorCursor     = [3]int{217, 217, 217}
	colorLink       = [3]int{115, 166, 242}
	colorScrollbar  = [3]int{166, 166, 166}
)

func qcolor(c [3]int) *qt.QColor {
	return qt.NewQColor3(c[0], c[1], c[2])
}

func (w *Widget) paintEvent(event *qt.QPaintEvent) {
	painter := qt.NewQPainter2(w.widget.QPaintDevice)
	defer painter.End()

	width := w.widget.Width()
	height := w.widget.Height()
	painter.FillRect5(0, 0, width, height, qcolor(colorBackground))

	plan := w.plan
	if plan == nil {
		return
	}

	font := qt.NewQFont6(w.fontFamily, w.effectiveFontSize())
	font.SetFixedPitch(true)
	painter.SetFont(font)

	vp := w.view.Viewport()
	cellW := w.charWidth
	cellH := w.charHeight

	// The fractional part of an in-flight smooth scroll becomes a
	// pixel shift; one extra history row fills the gap at the top.
	offset := vp.GetOffset()
	frac := offset - math.Floor(offset)
	shift := int(frac * float64(cellH))

	firstRow := 0
	if shift > 0 && vp.GetRow() < vp.GetMaxOffset() {
		firstRow = -1
	}
	for y := firstRow; y < plan.Rows; y++ {
		w.drawRow(painter, plan, y, cellW, cellH, shift)
	}

	if plan.Cursor.Visible && w.cursorBlinkOn {
		w.drawCursor(painter, plan, cellW, cellH, shift)
	}

	if plan.ScrollbarOpacity > 0 {
		w.drawScrollbar(painter, plan.ScrollbarOpacity, width, height)
	}
}

// drawRow paints one viewport row: selection band, cell runes and the
// hovered link underline.
func (w *Widget) drawRow(painter *qt.QPainter, plan *purfectview.Frame, y, cellW, cellH, shift int) {
	line := w.view.Viewport().LineAt(y)
	if line == nil {
		return
	}
	top := y*cellH + shift
	baseline := top + w.charAscent

	selStart, selEnd, selOK := w.selectionSpan(plan.Selection, y, plan.Cols)
	if selOK {
		painter.FillRect5(terminalLeftPadding+selStart*cellW, top,
			(selEnd-selStart+1)*cellW, cellH, qcolor(colorSelection))
	}

	painter.SetPen(qcolor(colorForeground))
	for x := 0; x < plan.Cols && x < len(line); x++ {
		cell := line[x]
		if cell.Filler || cell.Char == 0 || cell.Char == ' ' {
			continue
		}
		painter.DrawText3(terminalLeftPadding+x*cellW, baseline, string(cell.Char))
	}

	if link := w.view.HoveredLink(); link != nil && y == plan.HoverRow {
		painter.FillRect5(terminalLeftPadding+link.StartX*cellW, top+cellH-2,
			(link.EndX-link.StartX+1)*cellW, 2, qcolor(colorLink))
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

func (w *Widget) drawCursor(painter *qt.QPainter, plan *purfectview.Frame, cellW, cellH, shift int) {
	x := terminalLeftPadding + plan.Cursor.X*cellW
	y := plan.Cursor.Y*cellH + shift

	if w.hasFocus {
		painter.FillRect5(x, y, cellW, cellH, qcolor(colorCursor))

		// Repaint the covered rune in the background color.
		line := w.view.Viewport().LineAt(plan.Cursor.Y)
		if plan.Cursor.X < len(line) {
			cell := line[plan.Cursor.X]
			if !cell.Filler && cell.Char != 0 && cell.Char != ' ' {
				painter.SetPen(qcolor(colorBackground))
				painter.DrawText3(x, y+w.charAscent, string(cell.Char))
			}
		}
	} else {
		// Hollow cursor while unfocused
		painter.SetPen(qcolor(colorCursor))
		painter.DrawRect2(x, y, cellW-1, cellH-1)
	}
}

// drawScrollbar paints the overlay thumb along the right edge at the
// fade opacity the view reports.
func (w *Widget) drawScrollbar(painter *qt.QPainter, opacity float64, width, height int) {
	pos, length := w.view.Scrollbar().ThumbRect(float64(height))
	x := width - scrollbarWidth - 2

	painter.SetOpacity(0.25 * opacity)
	painter.FillRect5(x, 0, scrollbarWidth, height, qcolor(colorScrollbar))

	painter.SetOpacity(0.9 * opacity)
	painter.FillRect5(x, int(pos), scrollbarWidth, int(length), qcolor(colorScrollbar))

	painter.SetOpacity(1.0)
}

// screenToCell converts pixel coordinates to cell coordinates. The row
// is left unclamped so drags beyond the edges report overshoot.
func (w *Widget) screenToCell(screenX, screenY int) (cellX, cellY int) {
	cellY = screenY / w.charHeight
	if screenY < 0 {
		cellY--
	}

	relativeX := screenX - terminalLeftPadding
	if relativeX < 0 {
		return 0, cellY
	}
	cellX = relativeX / w.charWidth

	cols, _ := w.engine.GetSize()
	if cellX >= cols {
		cellX = cols - 1
	}
	return cellX, cellY
}

// inScrollbarStrip reports whether a press lands on the scrollbar hit
// area while the overlay is showing.
func (w *Widget) inScrollbarStrip(x int) bool {
	if w.view.Scrollbar().GetOpacity() <= 0 {
		return false
	}
	return x >= w.widget.Width()-scrollbarHitWidth
}

func (w *Widget) mousePressEvent(event *qt.QMouseEvent) {
	if event.Button() != qt.LeftButton {
		return
	}
	w.widget.SetFocus()

	pos := event.Pos()
	if w.inScrollbarStrip(pos.X()) {
		if w.view.HandleScrollbarPress(float64(pos.Y()), float64(w.widget.Height())) {
			w.scrollbarDrag = true
			return
		}
	}

	cellX, cellY := w.screenToCell(pos.X(), pos.Y())
	w.mouseDown = true
	w.view.HandleMouseDown(cellX, cellY)
}

func (w *Widget) mouseReleaseEvent(event *qt.QMouseEvent) {
	if event.Button() != qt.LeftButton {
		return
	}
	if w.scrollbarDrag {
		w.scrollbarDrag = false
		w.view.HandleScrollbarRelease()
		return
	}
	if w.mouseDown {
		w.mouseDown = false
		pos := event.Pos()
		cellX, cellY := w.screenToCell(pos.X(), pos.Y())
		w.view.HandleMouseUp(cellX, cellY)
	}
}

func (w *Widget) mouseMoveEvent(event *qt.QMouseEvent) {
	pos := event.Pos()
	if w.scrollbarDrag {
		w.view.HandleScrollbarMove(float64(pos.Y()), float64(w.widget.Height()))
		return
	}
	cellX, cellY := w.screenToCell(pos.X(), pos.Y())
	w.view.HandleMouseMove(cellX, cellY)
}

func (w *Widget) mouseDoubleClickEvent(event *qt.QMouseEvent) {
	if event.Button() != qt.LeftButton {
		return
	}
	pos := event.Pos()
	cellX, cellY := w.screenToCell(pos.X(), pos.Y())
	w.view.HandleDoubleClick(cellX, cellY)
}

func (w *Widget) wheelEvent(event *qt.QWheelEvent) {
	deltaY := event.AngleDelta().Y()
	if deltaY == 0 {
		return
	}
	// AngleDelta is in eighths of a degree; one notch is 120. Positive
	// deltaY is wheel up, which scrolls into history.
	w.view.HandleWheel(float64(-deltaY) / 120)
}

func (w *Widget) resizeEvent(event *qt.QResizeEvent) {
	width := w.widget.Width()
	height := w.widget.Height()
	if width <= 0 || height <= 0 {
		return
	}

	cols := (width - terminalLeftPadding) / w.charWidth
	rows := height / w.charHeight
	if cols < 2 || rows < 2 {
		return
	}

	oldCols, oldRows := w.engine.GetSize()
	if cols == oldCols && rows == oldRows {
		return
	}

	w.engine.Resize(cols, rows)
	w.view.Refresh()
	if w.onResize != nil {
		w.onResize(cols, rows)
	}
}

func (w *Widget) keyPressEvent(event *qt.QKeyEvent) {
	// Accept all key events immediately to prevent them from
	// propagating to system shortcut handlers.
	event.Accept()

	key := qt.Key(event.Key())
	if isModifierKey(key) {
		return
	}

	modifiers := event.Modifiers()
	hasShift := modifiers&qt.ShiftModifier != 0
	hasCtrl := modifiers&qt.ControlModifier != 0
	hasAlt := modifiers&qt.AltModifier != 0
	hasMeta := modifiers&qt.MetaModifier != 0

	// On macOS, Qt swaps Control and Meta modifiers:
	// - Qt ControlModifier = Command key
	// - Qt MetaModifier = Control key
	if runtime.GOOS == "darwin" {
		hasCtrl, hasMeta = hasMeta, hasCtrl
	}

	// Shift-modified navigation keys page the scrollback locally.
	if hasShift && !hasCtrl && !hasAlt && !hasMeta {
		switch key {
		case qt.Key_PageUp:
			w.view.ScrollPages(1)
			return
		case qt.Key_PageDown:
			w.view.ScrollPages(-1)
			return
		case qt.Key_Home:
			w.view.ScrollToTop()
			return
		case qt.Key_End:
			w.view.ScrollToBottom()
			return
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

	code, text := translateQtKey(key, event.Text())
	if code == "" && text == "" {
		return
	}

	w.view.HandleKeyDown(purfectview.KeyEvent{
		Code:      code,
		Text:      text,
		Modifiers: mods,
	})
}

// specialKeyCodes maps Qt keys for non-character keys to physical key
// code identifiers.
var specialKeyCodes = map[qt.Key]string{
	qt.Key_Return:    "Enter",
	qt.Key_Enter:     "NumpadEnter",
	qt.Key_Backspace: "Backspace",
	qt.Key_Tab:       "Tab",
	qt.Key_Backtab:   "Tab",
	qt.Key_Escape:    "Escape",
	qt.Key_Up:        "ArrowUp",
	qt.Key_Down:      "ArrowDown",
	qt.Key_Right:     "ArrowRight",
	qt.Key_Left:      "ArrowLeft",
	qt.Key_Home:      "Home",
	qt.Key_End:       "End",
	qt.Key_PageUp:    "PageUp",
	qt.Key_PageDown:  "PageDown",
	qt.Key_Insert:    "Insert",
	qt.Key_Delete:    "Delete",
	qt.Key_F1:        "F1",
	qt.Key_F2:        "F2",
	qt.Key_F3:        "F3",
	qt.Key_F4:        "F4",
	qt.Key_F5:        "F5",
	qt.Key_F6:        "F6",
	qt.Key_F7:        "F7",
	qt.Key_F8:        "F8",
	qt.Key_F9:        "F9",
	qt.Key_F10:       "F10",
	qt.Key_F11:       "F11",
	qt.Key_F12:       "F12",
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

// translateQtKey resolves a Qt key and its event text to a physical
// key code and the text it produces. Qt reports control characters in
// Text() for Ctrl chords; those are dropped in favor of the code.
func translateQtKey(key qt.Key, eventText string) (code, text string) {
	if c, ok := specialKeyCodes[key]; ok {
		return c, ""
	}

	if key >= qt.Key_A && key <= qt.Key_Z {
		code = "Key" + string(rune('A'+key-qt.Key_A))
	} else if key >= qt.Key_0 && key <= qt.Key_9 {
		code = "Digit" + string(rune('0'+key-qt.Key_0))
	}

	for _, r := range eventText {
		if unicode.IsPrint(r) {
			text = string(r)
			if code == "" {
				code = punctCodes[r]
			}
		}
		break
	}
	if text == "" && code != "" && key >= qt.Key_Space && key <= qt.Key_AsciiTilde {
		// Ctrl chords strip the text; recover the base character from
		// the key itself.
		text = string(unicode.ToLower(rune(key)))
	}
	return code, text
}

// isModifierKey returns true for bare modifier presses, which carry no
// input of their own.
func isModifierKey(key qt.Key) bool {
	switch key {
	case qt.Key_Shift, qt.Key_Control, qt.Key_Alt, qt.Key_AltGr,
		qt.Key_Meta, qt.Key_Super_L, qt.Key_Super_R,
		qt.Key_Hyper_L, qt.Key_Hyper_R,
		qt.Key_CapsLock, qt.Key_NumLock, qt.Key_ScrollLock:
		return true
	}
	return false
}

// qtClipboard adapts the Qt application clipboard to
// purfectview.Clipboard.
type qtClipboard struct{}

func (c *qtClipboard) WriteText(text string) error {
	qt.QGuiApplication_Clipboard().SetText(text)
	return nil
}

func (c *qtClipboard) ReadText() (string, error) {
	return qt.QGuiApplication_Clipboard().Text(), nil
}

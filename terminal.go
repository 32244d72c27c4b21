package purfectview

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// Programmer misuse is reported by panicking with these sentinels
// wrapped: driving a Terminal before Open or mutating one after
// Dispose is a bug in the embedding host, not a runtime condition.
var (
	ErrNotOpen  = errors.New("terminal not open")
	ErrDisposed = errors.New("terminal disposed")
)

// Defaults applied by New for zero Option fields.
const (
	DefaultDedupWindow          = 100 * time.Millisecond
	DefaultSmoothScrollDuration = 120 * time.Millisecond
	DefaultScrollbarVisibleFor  = 1200 * time.Millisecond
	DefaultScrollbarFadeIn      = 80 * time.Millisecond
	DefaultScrollbarFadeOut     = 300 * time.Millisecond
	DefaultLinkHoverThrottle    = 16 * time.Millisecond
	DefaultWheelLines           = 3
)

// Options configures a Terminal. Engine is required; everything else
// is optional with sensible defaults.
type Options struct {
	// Engine is the external screen-grid engine to coordinate.
	Engine Engine

	// Renderer receives per-frame draw plans. Nil runs headless.
	Renderer Renderer

	// Output receives the bytes destined for the remote process.
	// Further sinks can subscribe with OnOutput.
	Output func(data []byte)

	// Clipboard and FallbackClipboard receive copied selections;
	// the fallback is tried when the primary write fails.
	Clipboard         Clipboard
	FallbackClipboard Clipboard

	// Links enables link hover detection.
	Links LinkProvider

	// OnRawKey observes every key press before any other handling.
	OnRawKey func(KeyEvent)

	// KeyOverride, when it returns true, claims a key press entirely.
	KeyOverride func(KeyEvent) bool

	// WheelOverride, when it returns true, claims a wheel gesture.
	WheelOverride func(delta float64) bool

	// CompositionScrub runs when an IME composition ends, letting the
	// host clean up any visual artifacts its input method left behind.
	CompositionScrub func()

	// SmoothScrollDuration is the time constant of scroll animation.
	// Zero selects the default; negative disables animation entirely.
	SmoothScrollDuration time.Duration

	// DedupWindow is how long an emission can suppress the same text
	// arriving on another input path.
	DedupWindow time.Duration

	ScrollbarVisibleFor time.Duration
	ScrollbarFadeIn     time.Duration
	ScrollbarFadeOut    time.Duration

	// LinkHoverThrottle is the minimum spacing between link lookups.
	LinkHoverThrottle time.Duration

	// WheelLines is how many lines one wheel notch scrolls.
	WheelLines int

	// FrameInterval, when positive, makes Open start an internal
	// frame ticker. Zero leaves frame driving to the host.
	FrameInterval time.Duration

	Logger *log.Logger
}

// Terminal ties the pieces together: one engine, one viewport, one
// selection, one scrollbar, one input coordinator, one frame loop.
// All device events and Frame must be driven from a single goroutine;
// the individual components tolerate concurrent reads.
type Terminal struct {
	mu       sync.Mutex
	opened   bool
	disposed bool
	stop     chan struct{}

	opts      Options
	logger    *log.Logger
	engine    Engine
	input     *InputCoordinator
	viewport  *Viewport
	selection *SelectionManager
	scrollbar *ScrollBar
	hover     *linkHover
	planner   *framePlanner

	output   *Emitter[[]byte]
	scrollEv *Emitter[int]
	cursorEv *Emitter[int]

	lastCursorRow int
	now           func() time.Time
}

// New builds a Terminal around an engine. The Terminal is inert until
// Open is called.
func New(opts Options) (*Terminal, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("purfectview: Options.Engine is required")
	}
	if opts.SmoothScrollDuration == 0 {
		opts.SmoothScrollDuration = DefaultSmoothScrollDuration
	} else if opts.SmoothScrollDuration < 0 {
		opts.SmoothScrollDuration = 0
	}
	if opts.DedupWindow <= 0 {
		opts.DedupWindow = DefaultDedupWindow
	}
	if opts.ScrollbarVisibleFor <= 0 {
		opts.ScrollbarVisibleFor = DefaultScrollbarVisibleFor
	}
	if opts.ScrollbarFadeIn <= 0 {
		opts.ScrollbarFadeIn = DefaultScrollbarFadeIn
	}
	if opts.ScrollbarFadeOut <= 0 {
		opts.ScrollbarFadeOut = DefaultScrollbarFadeOut
	}
	if opts.LinkHoverThrottle <= 0 {
		opts.LinkHoverThrottle = DefaultLinkHoverThrottle
	}
	if opts.WheelLines <= 0 {
		opts.WheelLines = DefaultWheelLines
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	t := &Terminal{
		opts:          opts,
		logger:        logger,
		engine:        opts.Engine,
		planner:       newFramePlanner(),
		output:        NewEmitter[[]byte](),
		scrollEv:      NewEmitter[int](),
		cursorEv:      NewEmitter[int](),
		lastCursorRow: -1,
		now:           time.Now,
	}

	t.viewport = &Viewport{
		engine:   opts.Engine,
		duration: opts.SmoothScrollDuration,
		notify: func(offset int) {
			t.scrollEv.Emit(offset)
		},
	}
	t.scrollbar = &ScrollBar{
		vp:         t.viewport,
		fadeIn:     opts.ScrollbarFadeIn,
		fadeOut:    opts.ScrollbarFadeOut,
		visibleFor: opts.ScrollbarVisibleFor,
	}
	t.selection = &SelectionManager{
		engine:    opts.Engine,
		vp:        t.viewport,
		clipboard: opts.Clipboard,
		fallback:  opts.FallbackClipboard,
		logger:    logger,
	}
	t.hover = &linkHover{
		provider: opts.Links,
		vp:       t.viewport,
		throttle: opts.LinkHoverThrottle,
	}
	t.input = &InputCoordinator{
		engine:   opts.Engine,
		send:     t.output.Emit,
		logger:   logger,
		window:   opts.DedupWindow,
		now:      time.Now,
		onRawKey: opts.OnRawKey,
		override: opts.KeyOverride,
		scrub:    opts.CompositionScrub,
		onCopy:   t.copyShortcut,
	}

	if opts.Output != nil {
		t.output.On(opts.Output)
	}
	return t, nil
}

// Open activates the Terminal. With a positive FrameInterval an
// internal ticker drives frames; otherwise the host calls Frame.
func (t *Terminal) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return fmt.Errorf("purfectview: %w", ErrDisposed)
	}
	if t.opened {
		return fmt.Errorf("purfectview: already open")
	}
	t.opened = true
	if t.opts.FrameInterval > 0 {
		t.stop = make(chan struct{})
		go t.frameLoop(t.stop, t.opts.FrameInterval)
	}
	return nil
}

// Dispose tears the Terminal down: the frame loop stops, animations
// and pending lookups are cancelled, subscribers are dropped, and all
// further device events become no-ops. Safe to call more than once.
func (t *Terminal) Dispose() {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.disposed = true
	stop := t.stop
	t.stop = nil
	t.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	t.input.Dispose()
	t.hover.Dispose()
	t.output.Close()
	t.scrollEv.Close()
	t.cursorEv.Close()
}

// IsDisposed reports whether Dispose has run.
func (t *Terminal) IsDisposed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disposed
}

func (t *Terminal) frameLoop(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			t.Frame(now)
		}
	}
}

// guard is the check for device event handlers: events after Dispose
// are silently dropped, events before Open are a programmer error.
func (t *Terminal) guard() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return false
	}
	if !t.opened {
		panic(fmt.Errorf("purfectview: %w", ErrNotOpen))
	}
	return true
}

// ensureLive is the check for API operations: both use-before-open and
// use-after-dispose panic.
func (t *Terminal) ensureLive() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		panic(fmt.Errorf("purfectview: %w", ErrDisposed))
	}
	if !t.opened {
		panic(fmt.Errorf("purfectview: %w", ErrNotOpen))
	}
}

// Feed routes remote output into the engine. New output while scrolled
// back snaps the viewport to the live tail.
func (t *Terminal) Feed(data []byte) {
	if !t.guard() {
		return
	}
	t.engine.Feed(data)
	t.viewport.NotifyOutput()
}

// Frame advances animations, replays throttled work and hands the
// renderer a draw plan. Hosts without FrameInterval call this on their
// paint tick.
func (t *Terminal) Frame(now time.Time) {
	if !t.guard() {
		return
	}

	// Edge auto-scroll while a selection drag sits beyond the
	// viewport: overshoot below the bottom pulls toward the live tail.
	if overshoot := t.selection.DragOvershoot(); overshoot != 0 {
		before := t.viewport.Destination()
		t.viewport.ScrollLines(-overshoot)
		t.pokeOnMove(before)
	}

	scrolled := t.viewport.Step(now)
	faded := t.scrollbar.Step(now)
	t.hover.Flush(now)

	plan := t.planner.plan(t.engine, t.viewport, t.selection, t.scrollbar, t.hover)

	if t.opts.Renderer != nil && (plan.Full || anyRow(plan.RowDirty) || scrolled || faded) {
		t.opts.Renderer.DrawFrame(plan)
	}
	t.engine.ClearDirty()

	// Cursor movement is the engine's, so scrolling alone never fires.
	cursor := t.engine.GetCursor()
	cursorRow := -1
	if cursor.Visible {
		cursorRow = cursor.Y
	}
	if cursorRow != t.lastCursorRow {
		t.lastCursorRow = cursorRow
		t.cursorEv.Emit(cursorRow)
	}
}

// pokeOnMove shows the scrollbar only when a scroll request actually
// moved its destination; clamped no-ops stay quiet.
func (t *Terminal) pokeOnMove(before float64) {
	if t.viewport.Destination() != before {
		t.scrollbar.Poke(t.now())
	}
}

func anyRow(rows []bool) bool {
	for _, d := range rows {
		if d {
			return true
		}
	}
	return false
}

// Refresh forces the next frame to repaint everything.
func (t *Terminal) Refresh() {
	t.ensureLive()
	t.planner.invalidate()
}

// --- Event subscriptions ---

// OnOutput subscribes to the byte stream for the remote process.
func (t *Terminal) OnOutput(fn func([]byte)) func() {
	return t.output.On(fn)
}

// OnScroll subscribes to scroll position changes. The value is the
// floored offset; during smooth scrolls one notification fires per
// animation step that lands on a new line.
func (t *Terminal) OnScroll(fn func(offset int)) func() {
	return t.scrollEv.On(fn)
}

// OnCursorMove subscribes to engine cursor row changes, observed
// between frames. The value is the live-screen row, or -1 while the
// cursor is hidden.
func (t *Terminal) OnCursorMove(fn func(row int)) func() {
	return t.cursorEv.On(fn)
}

// --- Input events ---

func (t *Terminal) HandleKeyDown(ev KeyEvent) {
	if !t.guard() {
		return
	}
	t.input.HandleKeyDown(ev)
}

func (t *Terminal) HandleBeforeInput(ev InputEvent) {
	if !t.guard() {
		return
	}
	t.input.HandleBeforeInput(ev)
}

func (t *Terminal) HandleCompositionStart() {
	if !t.guard() {
		return
	}
	t.input.HandleCompositionStart()
}

func (t *Terminal) HandleCompositionUpdate(text string) {
	if !t.guard() {
		return
	}
	t.input.HandleCompositionUpdate(text)
}

func (t *Terminal) HandleCompositionEnd(text string) {
	if !t.guard() {
		return
	}
	t.input.HandleCompositionEnd(text)
}

func (t *Terminal) HandlePaste(text string) {
	if !t.guard() {
		return
	}
	t.input.HandlePaste(text)
}

// HandleWheel processes a wheel gesture. Delta is in notches, positive
// toward the live tail (wheel down); each notch moves WheelLines lines
// through the smooth scroller.
func (t *Terminal) HandleWheel(delta float64) {
	if !t.guard() {
		return
	}
	if t.opts.WheelOverride != nil && t.opts.WheelOverride(delta) {
		return
	}
	before := t.viewport.Destination()
	t.viewport.SmoothScrollBy(-delta * float64(t.opts.WheelLines))
	t.pokeOnMove(before)
}

// --- Mouse events (content area, cell coordinates) ---

func (t *Terminal) HandleMouseDown(x, y int) {
	if !t.guard() {
		return
	}
	if t.scrollbar.IsDragging() {
		return
	}
	t.selection.Press(x, y)
}

func (t *Terminal) HandleMouseMove(x, y int) {
	if !t.guard() {
		return
	}
	if t.scrollbar.IsDragging() {
		return
	}
	if t.selection.IsSelecting() {
		t.selection.Move(x, y)
		return
	}
	t.hover.HandleMove(x, y, t.now())
}

func (t *Terminal) HandleMouseUp(x, y int) {
	if !t.guard() {
		return
	}
	if t.selection.IsSelecting() {
		t.selection.Move(x, y)
		t.selection.Release()
	}
}

func (t *Terminal) HandleDoubleClick(x, y int) {
	if !t.guard() {
		return
	}
	t.selection.DoubleClick(x, y)
}

// HandleMouseLeave clears link hover when the pointer leaves the
// content area.
func (t *Terminal) HandleMouseLeave() {
	if !t.guard() {
		return
	}
	t.hover.Leave()
}

// --- Scrollbar events (track coordinates, host units) ---

func (t *Terminal) HandleScrollbarPress(pos, trackLen float64) bool {
	if !t.guard() {
		return false
	}
	return t.scrollbar.HandlePress(pos, trackLen, t.now())
}

func (t *Terminal) HandleScrollbarMove(pos, trackLen float64) {
	if !t.guard() {
		return
	}
	t.scrollbar.HandleMove(pos, trackLen, t.now())
}

func (t *Terminal) HandleScrollbarRelease() {
	if !t.guard() {
		return
	}
	t.scrollbar.HandleRelease()
}

// --- Scrolling operations ---

func (t *Terminal) ScrollLines(n int) {
	t.ensureLive()
	before := t.viewport.Destination()
	t.viewport.ScrollLines(n)
	t.pokeOnMove(before)
}

func (t *Terminal) ScrollPages(n int) {
	t.ensureLive()
	before := t.viewport.Destination()
	t.viewport.ScrollPages(n)
	t.pokeOnMove(before)
}

func (t *Terminal) ScrollToTop() {
	t.ensureLive()
	before := t.viewport.Destination()
	t.viewport.ScrollToTop()
	t.pokeOnMove(before)
}

func (t *Terminal) ScrollToBottom() {
	t.ensureLive()
	before := t.viewport.Destination()
	t.viewport.ScrollToBottom()
	t.pokeOnMove(before)
}

func (t *Terminal) ScrollToLine(offset int) {
	t.ensureLive()
	before := t.viewport.Destination()
	t.viewport.ScrollToLine(offset)
	t.pokeOnMove(before)
}

func (t *Terminal) SmoothScrollTo(offset float64) {
	t.ensureLive()
	before := t.viewport.Destination()
	t.viewport.SmoothScrollTo(offset)
	t.pokeOnMove(before)
}

// --- Selection operations ---

func (t *Terminal) SelectAll() {
	t.ensureLive()
	t.selection.SelectAll()
}

func (t *Terminal) Select(col, row, length int) {
	t.ensureLive()
	t.selection.Select(col, row, length)
}

func (t *Terminal) SelectLines(start, end int) {
	t.ensureLive()
	t.selection.SelectLines(start, end)
}

func (t *Terminal) ClearSelection() {
	t.ensureLive()
	t.selection.Clear()
}

func (t *Terminal) HasSelection() bool {
	return t.selection.HasSelection()
}

func (t *Terminal) GetSelectedText() string {
	return t.selection.GetSelectedText()
}

// CopySelection copies the current selection to the clipboard chain.
// Returns true when a selection existed.
func (t *Terminal) CopySelection() bool {
	t.ensureLive()
	if !t.selection.HasSelection() {
		return false
	}
	t.selection.CopyToClipboard()
	return true
}

// PasteFromClipboard reads the clipboard chain and sends the text as a
// paste.
func (t *Terminal) PasteFromClipboard() error {
	t.ensureLive()
	text, err := t.readClipboard()
	if err != nil {
		return err
	}
	t.input.HandlePaste(text)
	return nil
}

func (t *Terminal) readClipboard() (string, error) {
	var firstErr error
	if t.opts.Clipboard != nil {
		text, err := t.opts.Clipboard.ReadText()
		if err == nil {
			return text, nil
		}
		firstErr = err
	}
	if t.opts.FallbackClipboard != nil {
		text, err := t.opts.FallbackClipboard.ReadText()
		if err == nil {
			return text, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("purfectview: no clipboard configured")
	}
	return "", firstErr
}

// copyShortcut backs the coordinator's copy-shortcut hook: a copy
// chord with a live selection copies it and consumes the key.
func (t *Terminal) copyShortcut() bool {
	if !t.selection.HasSelection() {
		return false
	}
	t.selection.CopyToClipboard()
	return true
}

// --- Component access ---

// Viewport returns the scroll controller.
func (t *Terminal) Viewport() *Viewport { return t.viewport }

// Selection returns the selection manager.
func (t *Terminal) Selection() *SelectionManager { return t.selection }

// Scrollbar returns the overlay scrollbar.
func (t *Terminal) Scrollbar() *ScrollBar { return t.scrollbar }

// Input returns the input coordinator.
func (t *Terminal) Input() *InputCoordinator { return t.input }

// Engine returns the engine the Terminal coordinates.
func (t *Terminal) Engine() Engine { return t.engine }

// HoveredLink returns the link under the pointer, if any.
func (t *Terminal) HoveredLink() *Link { return t.hover.Current() }

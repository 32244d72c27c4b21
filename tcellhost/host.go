// Package tcellhost hosts a purfectview terminal on a tcell screen.
// Compared to the cli package, which paints raw ANSI onto stdout, this
// host delegates terminal setup, cell output and event decoding to
// tcell and so also works on Windows consoles.
package tcellhost

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phroun/purfectview"
	"github.com/phroun/purfectview/gridengine"
)

const frameInterval = 16 * time.Millisecond

const doubleClickWindow = 400 * time.Millisecond

// Options configures host creation. Columns and rows always track the
// tcell screen size.
type Options struct {
	ScrollbackSize int    // Number of scrollback lines (default: 10000)
	Shell          string // Shell to run (default: $SHELL or /bin/sh)
	WorkingDir     string // Initial working directory (default: current dir)
}

// Host is a purfectview terminal running full-screen on tcell.
type Host struct {
	mu sync.Mutex

	screen  tcell.Screen
	engine  *gridengine.Engine
	view    *purfectview.Terminal
	proc    *purfectview.Process
	detach  func()
	options Options

	running bool
	done    chan struct{}
	quit    chan struct{}
	quitOne sync.Once

	mouseDown     bool
	scrollbarDrag bool
	lastClickAt   time.Time
	lastClickX    int
	lastClickY    int

	pasting  bool
	pasteBuf strings.Builder

	onExit func(int)
}

// New creates the tcell screen and the hosted terminal. The screen is
// initialized here; call Stop (or Run until it returns) to restore the
// host terminal.
func New(opts Options) (*Host, error) {
	if opts.ScrollbackSize <= 0 {
		opts.ScrollbackSize = 10000
	}
	if opts.Shell == "" {
		opts.Shell = os.Getenv("SHELL")
		if opts.Shell == "" {
			opts.Shell = "/bin/sh"
		}
	}
	if opts.WorkingDir == "" {
		opts.WorkingDir, _ = os.Getwd()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcellhost: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tcellhost: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.EnableMouse()
	screen.EnablePaste()
	screen.HideCursor()

	cols, rows := screen.Size()
	engine := gridengine.New(cols, rows, opts.ScrollbackSize)

	h := &Host{
		screen:  screen,
		engine:  engine,
		options: opts,
		done:    make(chan struct{}),
		quit:    make(chan struct{}),
	}

	view, err := purfectview.New(purfectview.Options{
		Engine:   engine,
		Renderer: h,
		// Scroll animation would only alias on a cell grid.
		SmoothScrollDuration: -1,
		Links:                purfectview.NewURLLinkProvider(),
	})
	if err != nil {
		screen.Fini()
		return nil, err
	}
	h.view = view

	return h, nil
}

// View returns the hosted purfectview terminal.
func (h *Host) View() *purfectview.Terminal {
	return h.view
}

// Engine returns the screen-grid engine.
func (h *Host) Engine() *gridengine.Engine {
	return h.engine
}

// GetSize returns the terminal size in columns and rows.
func (h *Host) GetSize() (cols, rows int) {
	return h.engine.GetSize()
}

// Feed writes data directly to the terminal display, bypassing the pty.
func (h *Host) Feed(data []byte) {
	h.view.Feed(data)
}

// FeedString writes a string to the terminal display.
func (h *Host) FeedString(data string) {
	h.view.Feed([]byte(data))
}

// Write sends input to the child process.
func (h *Host) Write(data []byte) (int, error) {
	h.mu.Lock()
	proc := h.proc
	h.mu.Unlock()
	if proc == nil {
		return 0, nil
	}
	return proc.Write(data)
}

// RunShell starts the default shell in the terminal.
func (h *Host) RunShell() error {
	return h.RunCommand(h.options.Shell)
}

// RunCommand runs a command in the terminal.
func (h *Host) RunCommand(name string, args ...string) error {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return fmt.Errorf("command already running")
	}
	h.mu.Unlock()

	cols, rows := h.engine.GetSize()
	proc, err := purfectview.StartProcess(name, args, h.options.WorkingDir, cols, rows)
	if err != nil {
		return fmt.Errorf("failed to start process: %w", err)
	}

	done := make(chan struct{})
	detach := purfectview.Attach(h.view, proc, func() {
		proc.Wait()
		h.mu.Lock()
		h.running = false
		onExit := h.onExit
		h.mu.Unlock()
		if onExit != nil {
			onExit(proc.ExitCode())
		}
		close(done)
	})

	h.mu.Lock()
	h.proc = proc
	h.detach = detach
	h.running = true
	h.done = done
	h.mu.Unlock()

	return nil
}

// SetOnExit sets a callback for when the child process exits.
func (h *Host) SetOnExit(fn func(int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onExit = fn
}

// IsRunning returns true if a command is running.
func (h *Host) IsRunning() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// Wait waits for the child process to exit.
func (h *Host) Wait() {
	h.mu.Lock()
	done := h.done
	h.mu.Unlock()
	<-done
}

// Run drives the host until Stop is called or the event loop ends.
// Device events and frames are handled on the calling goroutine.
func (h *Host) Run() error {
	if err := h.view.Open(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-h.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.quit:
			return nil
		case now := <-ticker.C:
			h.view.Frame(now)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			h.handleEvent(ev)
		}
	}
}

// Stop ends the event loop, kills the child and restores the host
// terminal. Safe to call more than once.
func (h *Host) Stop() {
	h.quitOne.Do(func() {
		close(h.quit)

		h.mu.Lock()
		proc := h.proc
		detach := h.detach
		h.proc = nil
		h.detach = nil
		h.mu.Unlock()

		if detach != nil {
			detach()
		}
		if proc != nil {
			proc.Close()
		}
		h.view.Dispose()
		h.screen.Fini()
	})
}

// handleEvent dispatches one tcell event into the view.
func (h *Host) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		curCols, curRows := h.engine.GetSize()
		if cols == curCols && rows == curRows {
			return
		}
		h.engine.Resize(cols, rows)
		h.mu.Lock()
		proc := h.proc
		h.mu.Unlock()
		if proc != nil {
			proc.Resize(cols, rows)
		}
		h.view.Refresh()
		h.screen.Sync()

	case *tcell.EventPaste:
		if ev.Start() {
			h.pasting = true
			h.pasteBuf.Reset()
			return
		}
		h.pasting = false
		h.view.HandlePaste(h.pasteBuf.String())
		h.pasteBuf.Reset()

	case *tcell.EventKey:
		h.handleKey(ev)

	case *tcell.EventMouse:
		h.handleMouse(ev)
	}
}

func (h *Host) handleKey(ev *tcell.EventKey) {
	if h.pasting {
		// tcell delivers pasted text as individual key events between
		// the paste markers.
		switch ev.Key() {
		case tcell.KeyRune:
			h.pasteBuf.WriteRune(ev.Rune())
		case tcell.KeyEnter:
			h.pasteBuf.WriteByte('\r')
		case tcell.KeyTab:
			h.pasteBuf.WriteByte('\t')
		}
		return
	}

	kev := translateKey(ev)
	if kev.Code == "" && kev.Text == "" {
		return
	}

	// Scrollback navigation chords stay local to the host.
	if kev.Modifiers == purfectview.ModShift {
		switch kev.Code {
		case "PageUp":
			h.view.ScrollPages(1)
			return
		case "PageDown":
			h.view.ScrollPages(-1)
			return
		case "Home":
			h.view.ScrollToTop()
			return
		case "End":
			h.view.ScrollToBottom()
			return
		}
	}

	h.view.HandleKeyDown(kev)
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	if buttons&tcell.WheelUp != 0 {
		h.view.HandleWheel(-1)
	}
	if buttons&tcell.WheelDown != 0 {
		h.view.HandleWheel(1)
	}

	pressed := buttons&tcell.Button1 != 0
	switch {
	case pressed && !h.mouseDown && !h.scrollbarDrag:
		h.mousePress(x, y)
	case h.scrollbarDrag:
		if pressed {
			_, rows := h.engine.GetSize()
			h.view.HandleScrollbarMove(float64(y), float64(rows))
		} else {
			h.view.HandleScrollbarRelease()
			h.scrollbarDrag = false
		}
	case h.mouseDown:
		if pressed {
			h.view.HandleMouseMove(x, y)
		} else {
			h.view.HandleMouseUp(x, y)
			h.mouseDown = false
		}
	default:
		h.view.HandleMouseMove(x, y)
	}
}

func (h *Host) mousePress(x, y int) {
	cols, rows := h.engine.GetSize()

	if x == cols-1 && h.view.Scrollbar().GetOpacity() > 0 {
		if h.view.HandleScrollbarPress(float64(y), float64(rows)) {
			h.scrollbarDrag = true
			return
		}
	}

	now := time.Now()
	if now.Sub(h.lastClickAt) < doubleClickWindow && x == h.lastClickX && y == h.lastClickY {
		h.lastClickAt = time.Time{}
		h.view.HandleDoubleClick(x, y)
		return
	}
	h.lastClickAt = now
	h.lastClickX = x
	h.lastClickY = y

	h.mouseDown = true
	h.view.HandleMouseDown(x, y)
}

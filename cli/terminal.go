package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/phroun/purfectview"
	"github.com/phroun/purfectview/gridengine"
)

// BorderStyle defines the visual style for the terminal window border
type BorderStyle int

const (
	BorderNone   BorderStyle = iota // No border
	BorderSingle                    // Single-line box drawing characters
	BorderDouble                    // Double-line box drawing characters
	BorderHeavy                     // Heavy/thick box drawing characters
	BorderRounded                   // Rounded corners (single line)
)

// Options configures terminal creation
type Options struct {
	Cols           int    // Terminal width in columns (default: 80)
	Rows           int    // Terminal height in rows (default: 24)
	ScrollbackSize int    // Number of scrollback lines (default: 10000)
	Shell          string // Shell to run (default: $SHELL or /bin/sh)
	WorkingDir     string // Initial working directory (default: current dir)

	// Display options
	BorderStyle BorderStyle // Border style around the terminal window
	Title       string      // Window title (displayed in top border if applicable)
	OffsetX     int         // X offset from top-left of the host terminal
	OffsetY     int         // Y offset from top-left of the host terminal

	// If true, the terminal window auto-sizes to fill available space
	AutoSize bool

	// If true, render a status bar at the bottom
	ShowStatusBar bool
}

// Terminal is a purfectview terminal running within a CLI terminal.
type Terminal struct {
	mu sync.Mutex

	engine  *gridengine.Engine
	view    *purfectview.Terminal
	proc    *purfectview.Process
	options Options

	renderer *Renderer
	input    *InputHandler

	running    bool
	done       chan struct{}
	stopRender chan struct{}

	// Original terminal state for restoration
	oldState *term.State

	hostCols int
	hostRows int

	onExit   func(int)
	onResize func(cols, rows int)

	inputCallback func([]byte) bool
}

// New creates a new CLI-hosted terminal.
func New(opts Options) (*Terminal, error) {
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.Rows <= 0 {
		opts.Rows = 24
	}
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

	hostCols, hostRows := getHostTerminalSize()
	if opts.AutoSize {
		borderOffset := 0
		if opts.BorderStyle != BorderNone {
			borderOffset = 2
		}
		statusOffset := 0
		if opts.ShowStatusBar {
			statusOffset = 1
		}
		opts.Cols = hostCols - opts.OffsetX*2
		opts.Rows = hostRows - opts.OffsetY*2 - borderOffset - statusOffset
		if opts.Cols < 20 {
			opts.Cols = 20
		}
		if opts.Rows < 5 {
			opts.Rows = 5
		}
	}

	engine := gridengine.New(opts.Cols, opts.Rows, opts.ScrollbackSize)

	t := &Terminal{
		engine:     engine,
		options:    opts,
		done:       make(chan struct{}),
		stopRender: make(chan struct{}),
		hostCols:   hostCols,
		hostRows:   hostRows,
	}

	t.renderer = NewRenderer(t)
	t.input = NewInputHandler(t)

	view, err := purfectview.New(purfectview.Options{
		Engine:   engine,
		Renderer: t.renderer,
		// Animation has no place in a cell-grid host; scrolls land
		// immediately.
		SmoothScrollDuration: -1,
	})
	if err != nil {
		return nil, err
	}
	t.view = view

	return t, nil
}

// getHostTerminalSize returns the current size of the host terminal
func getHostTerminalSize() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24
	}
	return cols, rows
}

// Start enters raw mode and starts the render and input loops.
func (t *Terminal) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.view.Open(); err != nil {
		return err
	}

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.oldState = oldState

	// Hide host cursor, enable the alternate screen, clear.
	fmt.Print("\033[?25l")
	fmt.Print("\033[?1049h")
	fmt.Print("\033[2J\033[H")

	go t.handleSIGWINCH()
	go t.frameLoop()
	go t.input.InputLoop()

	return nil
}

// frameLoop drives purfectview frames at ~60fps. The renderer decides
// per frame whether anything reaches the host screen.
func (t *Terminal) frameLoop() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-t.stopRender:
			return
		case now := <-ticker.C:
			t.view.Frame(now)
		}
	}
}

// handleSIGWINCH listens for host terminal resize signals
func (t *Terminal) handleSIGWINCH() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGWINCH)
	defer signal.Stop(sigChan)

	for {
		select {
		case <-sigChan:
			t.handleResize()
		case <-t.stopRender:
			return
		}
	}
}

func (t *Terminal) handleResize() {
	t.mu.Lock()
	defer t.mu.Unlock()

	newCols, newRows := getHostTerminalSize()
	if newCols == t.hostCols && newRows == t.hostRows {
		return
	}
	t.hostCols = newCols
	t.hostRows = newRows

	if t.options.AutoSize {
		borderOffset := 0
		if t.options.BorderStyle != BorderNone {
			borderOffset = 2
		}
		statusOffset := 0
		if t.options.ShowStatusBar {
			statusOffset = 1
		}
		cols := newCols - t.options.OffsetX*2
		rows := newRows - t.options.OffsetY*2 - borderOffset - statusOffset
		if cols < 20 {
			cols = 20
		}
		if rows < 5 {
			rows = 5
		}

		t.engine.Resize(cols, rows)
		if t.proc != nil {
			t.proc.Resize(cols, rows)
		}
		t.options.Cols = cols
		t.options.Rows = rows
	}

	t.renderer.Invalidate()
	t.view.Refresh()

	if t.onResize != nil {
		t.onResize(t.options.Cols, t.options.Rows)
	}
}

// RunShell starts the default shell in the terminal
func (t *Terminal) RunShell() error {
	return t.RunCommand(t.options.Shell)
}

// RunCommand runs a command in the terminal
func (t *Terminal) RunCommand(name string, args ...string) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return fmt.Errorf("command already running")
	}
	t.done = make(chan struct{})
	t.mu.Unlock()

	proc, err := purfectview.StartProcess(name, args, t.options.WorkingDir, t.options.Cols, t.options.Rows)
	if err != nil {
		return fmt.Errorf("failed to start process: %w", err)
	}

	t.mu.Lock()
	t.proc = proc
	t.running = true
	t.mu.Unlock()

	go t.readLoop(proc)

	go func() {
		proc.Wait()
		exitCode := proc.ExitCode()
		t.mu.Lock()
		t.running = false
		onExit := t.onExit
		t.mu.Unlock()

		if onExit != nil {
			onExit(exitCode)
		}
		close(t.done)
	}()

	return nil
}

// readLoop feeds child output into the viewport.
func (t *Terminal) readLoop(proc *purfectview.Process) {
	buf := make([]byte, 4096)
	for {
		n, err := proc.Read(buf)
		if n > 0 {
			t.view.Feed(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				t.renderer.Invalidate()
			}
			return
		}
	}
}

// Feed writes data directly to the terminal display, bypassing the PTY.
func (t *Terminal) Feed(data []byte) {
	t.view.Feed(data)
}

// FeedString writes a string to the terminal display
func (t *Terminal) FeedString(data string) {
	t.view.Feed([]byte(data))
}

// Write sends input to the child process.
func (t *Terminal) Write(data []byte) (int, error) {
	t.mu.Lock()
	proc := t.proc
	t.mu.Unlock()
	if proc == nil {
		return 0, nil
	}
	return proc.Write(data)
}

// WriteString writes a string to the child process.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// View returns the purfectview terminal for direct viewport, selection
// and scrollbar access.
func (t *Terminal) View() *purfectview.Terminal {
	return t.view
}

// Engine returns the screen-grid engine.
func (t *Terminal) Engine() *gridengine.Engine {
	return t.engine
}

// GetSize returns the terminal size in columns and rows
func (t *Terminal) GetSize() (cols, rows int) {
	return t.engine.GetSize()
}

// GetHostSize returns the host terminal size
func (t *Terminal) GetHostSize() (cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hostCols, t.hostRows
}

// Resize resizes the terminal
func (t *Terminal) Resize(cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.engine.Resize(cols, rows)
	t.options.Cols = cols
	t.options.Rows = rows

	if t.proc != nil {
		t.proc.Resize(cols, rows)
	}

	t.renderer.Invalidate()
	t.view.Refresh()
}

// ScrollUp scrolls the view up by n lines (into scrollback)
func (t *Terminal) ScrollUp(n int) {
	t.view.ScrollLines(n)
}

// ScrollDown scrolls the view down by n lines (toward current output)
func (t *Terminal) ScrollDown(n int) {
	t.view.ScrollLines(-n)
}

// ScrollToTop scrolls to the top of scrollback
func (t *Terminal) ScrollToTop() {
	t.view.ScrollToTop()
}

// ScrollToBottom scrolls to the bottom (current output)
func (t *Terminal) ScrollToBottom() {
	t.view.ScrollToBottom()
}

// GetScrollOffset returns the current scroll offset in lines.
func (t *Terminal) GetScrollOffset() int {
	return t.view.Viewport().GetRow()
}

// IsRunning returns true if a command is running
func (t *Terminal) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Wait waits for the child process to exit
func (t *Terminal) Wait() {
	<-t.done
}

// SetInputCallback sets a callback for intercepting input
// Return true from the callback to consume the input
func (t *Terminal) SetInputCallback(fn func([]byte) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inputCallback = fn
}

// SetOnExit sets a callback for when the child process exits
func (t *Terminal) SetOnExit(fn func(int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onExit = fn
}

// SetOnResize sets a callback for terminal resize events
func (t *Terminal) SetOnResize(fn func(cols, rows int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResize = fn
}

// SetTitle sets the terminal window title
func (t *Terminal) SetTitle(title string) {
	t.mu.Lock()
	t.options.Title = title
	t.mu.Unlock()
	t.renderer.Invalidate()
}

// Stop stops the terminal and restores the original terminal state
func (t *Terminal) Stop() error {
	close(t.stopRender)

	t.mu.Lock()
	proc := t.proc
	oldState := t.oldState
	t.mu.Unlock()

	if proc != nil {
		proc.Close()
	}
	t.view.Dispose()

	if oldState != nil {
		fmt.Print("\033[?1049l")
		fmt.Print("\033[?25h")
		fmt.Print("\033[0m")
		term.Restore(int(os.Stdin.Fd()), oldState)
	}

	return nil
}

// Close is an alias for Stop
func (t *Terminal) Close() error {
	return t.Stop()
}

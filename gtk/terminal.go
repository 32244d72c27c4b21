package purfectviewgtk

import (
	"os"
	"sync"

	"github.com/gotk3/gotk3/gtk"

	"github.com/phroun/purfectview"
)

// Options configures terminal creation
type Options struct {
	Cols           int    // Terminal width in columns (default: 80)
	Rows           int    // Terminal height in rows (default: 24)
	ScrollbackSize int    // Number of scrollback lines (default: 10000)
	FontFamily     string // Font family (default: "Monospace")
	FontSize       int    // Font size in points (default: 14)
	Shell          string // Shell to run (default: $SHELL or /bin/sh)
	WorkingDir     string // Initial working directory (default: current dir)
}

// Terminal is a complete terminal emulator widget: a Widget with a
// child process attached through a pty.
type Terminal struct {
	mu sync.Mutex

	widget  *Widget
	proc    *purfectview.Process
	detach  func()
	options Options

	running bool
	done    chan struct{}
	onExit  func(int)
}

// New creates a new terminal emulator
func New(opts Options) (*Terminal, error) {
	// Apply defaults
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.Rows <= 0 {
		opts.Rows = 24
	}
	if opts.ScrollbackSize <= 0 {
		opts.ScrollbackSize = 10000
	}
	if opts.FontFamily == "" {
		opts.FontFamily = "Monospace"
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 14
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

	widget, err := NewWidget(opts.Cols, opts.Rows, opts.ScrollbackSize)
	if err != nil {
		return nil, err
	}
	widget.SetFont(opts.FontFamily, opts.FontSize)

	t := &Terminal{
		widget:  widget,
		options: opts,
		done:    make(chan struct{}),
	}

	// Keep the child's pty in step with the widget's cell grid.
	widget.SetResizeCallback(func(cols, rows int) {
		t.mu.Lock()
		proc := t.proc
		t.mu.Unlock()
		if proc != nil {
			proc.Resize(cols, rows)
		}
	})

	return t, nil
}

// Widget returns the GTK box containing the terminal
func (t *Terminal) Widget() *gtk.Box {
	return t.widget.Box()
}

// View returns the hosted purfectview terminal.
func (t *Terminal) View() *purfectview.Terminal {
	return t.widget.View()
}

// Feed writes data directly to the terminal display
func (t *Terminal) Feed(data string) {
	t.widget.FeedString(data)
}

// FeedBytes writes binary data to the terminal display
func (t *Terminal) FeedBytes(data []byte) {
	t.widget.Feed(data)
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
		return nil // Already running
	}
	t.done = make(chan struct{})
	t.mu.Unlock()

	// Size the pty to the actual widget grid; the widget may have
	// been resized since creation.
	cols, rows := t.widget.GetSize()
	proc, err := purfectview.StartProcess(name, args, t.options.WorkingDir, cols, rows)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	detach := purfectview.Attach(t.widget.View(), proc, func() {
		proc.Wait()
		t.mu.Lock()
		t.running = false
		onExit := t.onExit
		t.mu.Unlock()
		if onExit != nil {
			onExit(proc.ExitCode())
		}
		close(done)
	})

	t.mu.Lock()
	t.proc = proc
	t.detach = detach
	t.running = true
	t.done = done
	t.mu.Unlock()

	return nil
}

// Write writes to the terminal's pty (for sending input)
func (t *Terminal) Write(data []byte) (int, error) {
	t.mu.Lock()
	proc := t.proc
	t.mu.Unlock()
	if proc == nil {
		return 0, nil
	}
	return proc.Write(data)
}

// WriteString writes a string to the terminal's pty
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// Resize resizes the terminal
func (t *Terminal) Resize(cols, rows int) {
	t.widget.Resize(cols, rows)
}

// GetSize returns the terminal size
func (t *Terminal) GetSize() (cols, rows int) {
	return t.widget.GetSize()
}

// SetOnExit sets a callback for when the child process exits
func (t *Terminal) SetOnExit(fn func(int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onExit = fn
}

// Close detaches and kills the child and disposes the widget's
// terminal
func (t *Terminal) Close() error {
	t.mu.Lock()
	proc := t.proc
	detach := t.detach
	t.proc = nil
	t.detach = nil
	t.mu.Unlock()

	if detach != nil {
		detach()
	}
	if proc != nil {
		proc.Close()
	}
	t.widget.Destroy()
	return nil
}

// Wait waits for the terminal process to exit
func (t *Terminal) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	<-done
}

// IsRunning returns true if a command is running
func (t *Terminal) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// GetSelectedText returns currently selected text
func (t *Terminal) GetSelectedText() string {
	return t.widget.GetSelectedText()
}

// CopySelection copies selected text to clipboard
func (t *Terminal) CopySelection() {
	t.widget.CopySelection()
}

// PasteClipboard pastes text from clipboard into terminal
func (t *Terminal) PasteClipboard() {
	t.widget.PasteClipboard()
}

// SelectAll selects all text
func (t *Terminal) SelectAll() {
	t.widget.SelectAll()
}

// SetWorkingDirectory sets the working directory for future commands
func (t *Terminal) SetWorkingDirectory(dir string) {
	t.mu.Lock()
	t.options.WorkingDir = dir
	t.mu.Unlock()
}

// SetFont sets the terminal font family and size
func (t *Terminal) SetFont(family string, size int) {
	t.widget.SetFont(family, size)
}

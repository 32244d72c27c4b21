package purfectview

import (
	"time"
)

// fakeEngine is a scriptable Engine for tests.
type fakeEngine struct {
	cols, rows int
	lines      [][]Cell
	scrollback [][]Cell
	cursor     Cursor
	modes      map[int]bool
	dirtyRows  map[int]bool
	fed        [][]byte
	encode     func(KeyRequest) ([]byte, error)
}

func newFakeEngine(cols, rows int) *fakeEngine {
	e := &fakeEngine{
		cols:      cols,
		rows:      rows,
		modes:     make(map[int]bool),
		dirtyRows: make(map[int]bool),
		cursor:    Cursor{Visible: true},
	}
	e.lines = make([][]Cell, rows)
	for i := range e.lines {
		e.lines[i] = make([]Cell, cols)
	}
	return e
}

func (e *fakeEngine) GetSize() (int, int) { return e.cols, e.rows }

func (e *fakeEngine) GetLine(row int) []Cell {
	if row < 0 || row >= len(e.lines) {
		return nil
	}
	return e.lines[row]
}

func (e *fakeEngine) GetScrollbackLine(index int) []Cell {
	if index < 0 || index >= len(e.scrollback) {
		return nil
	}
	return e.scrollback[index]
}

func (e *fakeEngine) GetScrollbackSize() int { return len(e.scrollback) }

func (e *fakeEngine) GetCursor() Cursor { return e.cursor }

func (e *fakeEngine) GetMode(mode int) bool { return e.modes[mode] }

func (e *fakeEngine) IsRowDirty(row int) bool { return e.dirtyRows[row] }

func (e *fakeEngine) ClearDirty() { e.dirtyRows = make(map[int]bool) }

func (e *fakeEngine) Feed(data []byte) {
	e.fed = append(e.fed, append([]byte(nil), data...))
}

func (e *fakeEngine) EncodeKey(req KeyRequest) ([]byte, error) {
	if e.encode != nil {
		return e.encode(req)
	}
	return EncodeXtermKey(req)
}

// setLine fills a live row from a string, one rune per cell.
func (e *fakeEngine) setLine(row int, text string) {
	line := make([]Cell, e.cols)
	for i, r := range []rune(text) {
		if i >= e.cols {
			break
		}
		line[i] = Cell{Char: r}
	}
	e.lines[row] = line
}

// pushScrollback appends scrollback lines from strings.
func (e *fakeEngine) pushScrollback(texts ...string) {
	for _, text := range texts {
		line := make([]Cell, e.cols)
		for i, r := range []rune(text) {
			if i >= e.cols {
				break
			}
			line[i] = Cell{Char: r}
		}
		e.scrollback = append(e.scrollback, line)
	}
}

// collector gathers emitted byte sequences.
type collector struct {
	sent [][]byte
}

func (c *collector) send(data []byte) {
	c.sent = append(c.sent, append([]byte(nil), data...))
}

func (c *collector) joined() string {
	var out []byte
	for _, s := range c.sent {
		out = append(out, s...)
	}
	return string(out)
}

// fakeClock is an adjustable time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

// newTestCoordinator builds an InputCoordinator against a fake engine
// and collector with a controllable clock.
func newTestCoordinator(e *fakeEngine) (*InputCoordinator, *collector, *fakeClock) {
	c := &collector{}
	clock := newFakeClock()
	ic := &InputCoordinator{
		engine: e,
		send:   c.send,
		window: DefaultDedupWindow,
		now:    clock.now,
	}
	return ic, c, clock
}

// newTestViewport builds a Viewport over an engine, recording
// notifications.
func newTestViewport(e Engine, duration time.Duration) (*Viewport, *[]int) {
	var notified []int
	v := &Viewport{
		engine:   e,
		duration: duration,
	}
	v.notify = func(off int) { notified = append(notified, off) }
	return v, &notified
}

// memClipboard is an in-memory Clipboard; failing makes writes and
// reads error.
type memClipboard struct {
	text    string
	failing bool
	writes  int
}

func (c *memClipboard) WriteText(text string) error {
	if c.failing {
		return errClipboard
	}
	c.text = text
	c.writes++
	return nil
}

func (c *memClipboard) ReadText() (string, error) {
	if c.failing {
		return "", errClipboard
	}
	return c.text, nil
}

var errClipboard = errTest("clipboard unavailable")

type errTest string

func (e errTest) Error() string { return string(e) }

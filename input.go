package purfectview

import (
	"log"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"
)

// KeyEvent is a host key press. Code is the physical, layout-independent
// key identifier ("KeyA", "Enter", "ArrowUp"); Text is the printable
// text the key produces with the current layout and modifiers, empty
// for non-printing keys.
type KeyEvent struct {
	Code      string
	Text      string
	Modifiers Modifiers

	// Composing is set when the host reports an active IME composition;
	// such presses are left to the composition path.
	Composing bool
}

// InputType classifies host text-input events.
type InputType int

const (
	InputInsertText InputType = iota
	InputInsertReplacementText
	InputInsertLineBreak
	InputInsertParagraph
	InputInsertFromPaste
	InputInsertCompositionText
	InputDeleteContentBackward
	InputDeleteContentForward
)

// InputEvent is a host text-input event (the editing path, as opposed
// to the raw key path).
type InputEvent struct {
	Type InputType
	Text string
}

// Input delivery paths. The same user action can surface on more than
// one of them, so emissions are de-duplicated across paths.
type inputPath int

const (
	pathKey inputPath = iota
	pathInput
	pathComposition
	pathPaste
	pathCount
)

// dedupRingSize bounds how many recent emissions each path remembers.
const dedupRingSize = 4

type dedupEntry struct {
	text string
	at   time.Time
}

// InputCoordinator owns keyboard, text-input, composition and paste
// handling: it resolves each host event to at most one byte sequence
// for the remote process, suppressing the duplicate deliveries that
// arrive on a second path.
type InputCoordinator struct {
	mu        sync.Mutex
	engine    Engine
	send      func([]byte)
	logger    *log.Logger
	window    time.Duration
	now       func() time.Time
	recent    [pathCount][]dedupEntry
	composing bool
	disposed  bool

	// Hooks, all optional.
	onRawKey func(KeyEvent)
	override func(KeyEvent) bool
	onCopy   func() bool
	scrub    func()
}

// HandleKeyDown processes a raw key press.
//
// Order of resolution: raw-key observer, override hook, composition
// skip, platform copy/paste shortcuts, printable fast path, physical
// code lookup, fixed sequences, engine encoding.
func (c *InputCoordinator) HandleKeyDown(ev KeyEvent) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	onRawKey := c.onRawKey
	override := c.override
	onCopy := c.onCopy
	composing := c.composing
	c.mu.Unlock()

	if onRawKey != nil {
		onRawKey(ev)
	}
	if override != nil && override(ev) {
		return
	}

	// Presses inside an IME composition commit through the
	// composition path instead.
	if ev.Composing || composing {
		return
	}

	// The platform paste shortcut delivers its text through the host's
	// paste event; emitting here would double it.
	if isPasteShortcut(ev) {
		return
	}
	if isCopyShortcut(ev) && onCopy != nil && onCopy() {
		return
	}

	// Printable fast path: a single rune of text with no
	// Ctrl/Alt/Meta held goes out as-is.
	if _, ok := printableRune(ev.Text); ok &&
		!ev.Modifiers.Ctrl() && !ev.Modifiers.Alt() && !ev.Modifiers.Meta() {
		c.emit(pathKey, []byte(ev.Text), ev.Text)
		return
	}

	key, ok := LookupKeyCode(ev.Code)
	if !ok {
		// Unknown physical key: nothing sensible to send.
		return
	}

	// Common non-printable keys pressed bare or with shift only use
	// their fixed sequence. Enter, Backspace and Delete record for
	// dedup since hosts can echo them on the text-input path too.
	if key != KeyChar && ev.Modifiers&^ModShift == 0 {
		if seq, ok := PlainSequence(key); ok {
			switch key {
			case KeyEnter, KeyBackspace, KeyDelete:
				c.emit(pathKey, seq, string(seq))
			default:
				c.emit(pathKey, seq, "")
			}
			return
		}
	}

	req := KeyRequest{
		Key:       key,
		Modifiers: ev.Modifiers,
		AppCursor: c.engine.GetMode(ModeApplicationCursor),
	}
	if key == KeyChar {
		req.Hint = keyHint(ev)
	}

	data, err := c.engine.EncodeKey(req)
	if err != nil {
		c.logf("purfectview: key encoding failed for %q: %v", ev.Code, err)
		return
	}
	if len(data) > 0 {
		c.emit(pathKey, data, "")
	}
}

// HandleBeforeInput processes a host text-input event. Text that was
// already emitted by the key or composition path within the dedup
// window is consumed silently.
func (c *InputCoordinator) HandleBeforeInput(ev InputEvent) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	switch ev.Type {
	case InputInsertText, InputInsertReplacementText:
		if ev.Text == "" {
			return
		}
		text := normalizeNewlines(ev.Text)
		if c.suppress(pathInput, text) {
			return
		}
		c.emit(pathInput, []byte(text), text)

	case InputInsertLineBreak, InputInsertParagraph:
		if c.suppress(pathInput, "\r") {
			return
		}
		c.emit(pathInput, []byte{'\r'}, "\r")

	case InputDeleteContentBackward:
		if c.suppress(pathInput, "\x7f") {
			return
		}
		c.emit(pathInput, []byte{0x7f}, "\x7f")

	case InputDeleteContentForward:
		seq, _ := PlainSequence(KeyDelete)
		if c.suppress(pathInput, string(seq)) {
			return
		}
		c.emit(pathInput, seq, string(seq))

	case InputInsertFromPaste:
		c.paste(ev.Text)

	case InputInsertCompositionText:
		// Composition text commits through HandleCompositionEnd.
	}
}

// HandleCompositionStart marks an IME composition as active; key
// presses are ignored until it ends.
func (c *InputCoordinator) HandleCompositionStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.composing = true
}

// HandleCompositionUpdate observes in-progress composition text. The
// text is not emitted; only the final commit is.
func (c *InputCoordinator) HandleCompositionUpdate(text string) {
}

// HandleCompositionEnd commits the composed text, unless another path
// already delivered it.
func (c *InputCoordinator) HandleCompositionEnd(text string) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.composing = false
	scrub := c.scrub
	c.mu.Unlock()

	if scrub != nil {
		scrub()
	}
	if text == "" {
		return
	}
	if c.suppress(pathComposition, text) {
		return
	}
	c.emit(pathComposition, []byte(text), text)
}

// HandlePaste sends pasted text to the remote process, normalizing
// line endings to CR and honoring bracketed paste mode. Text another
// path already delivered inside the dedup window is consumed silently.
func (c *InputCoordinator) HandlePaste(text string) {
	c.paste(text)
}

// paste is the shared delivery behind HandlePaste and insertFromPaste.
// Hosts can surface one clipboard insert on both, so paste dedups
// against every path, its own included, and records the emission for
// the other paths.
func (c *InputCoordinator) paste(text string) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	if text == "" {
		return
	}

	text = normalizeNewlines(text)
	if c.suppressAny(text) {
		return
	}

	if c.engine.GetMode(ModeBracketedPaste) {
		data := make([]byte, 0, len(text)+12)
		data = append(data, []byte("\x1b[200~")...)
		data = append(data, []byte(text)...)
		data = append(data, []byte("\x1b[201~")...)
		c.emit(pathPaste, data, text)
		return
	}
	c.emit(pathPaste, []byte(text), text)
}

// IsComposing reports whether an IME composition is active.
func (c *InputCoordinator) IsComposing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composing
}

// Dispose makes all further events no-ops.
func (c *InputCoordinator) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
	for i := range c.recent {
		c.recent[i] = nil
	}
}

// emit records the emission for cross-path dedup (when dedupText is
// non-empty) and sends the bytes.
func (c *InputCoordinator) emit(path inputPath, data []byte, dedupText string) {
	if dedupText != "" {
		c.mu.Lock()
		if c.disposed {
			c.mu.Unlock()
			return
		}
		ring := c.recent[path]
		if len(ring) >= dedupRingSize {
			ring = ring[1:]
		}
		c.recent[path] = append(ring, dedupEntry{text: dedupText, at: c.now()})
		c.mu.Unlock()
	}
	c.send(data)
}

// suppress reports whether text was recently emitted by one of the
// other paths. A match is consumed so it can only suppress once.
// Repeats on the same path are never suppressed.
func (c *InputCoordinator) suppress(path inputPath, text string) bool {
	return c.consumeRecent(text, path)
}

// suppressAny is the paste variant: paste deliveries dedup against
// every path, their own included.
func (c *InputCoordinator) suppressAny(text string) bool {
	return c.consumeRecent(text, -1)
}

// consumeRecent scans the dedup rings for a fresh emission of text,
// skipping the skip path when it is a valid path. A match is removed
// so it can only suppress once.
func (c *InputCoordinator) consumeRecent(text string, skip inputPath) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for p := inputPath(0); p < pathCount; p++ {
		if p == skip {
			continue
		}
		ring := c.recent[p]
		for i, e := range ring {
			if e.text != text {
				continue
			}
			if now.Sub(e.at) > c.window {
				continue
			}
			c.recent[p] = append(ring[:i], ring[i+1:]...)
			return true
		}
	}
	return false
}

// normalizeNewlines converts host line endings to the CR a terminal
// expects.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\r")
	return strings.ReplaceAll(text, "\n", "\r")
}

func (c *InputCoordinator) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// printableRune returns the single printable rune of text, if that is
// what it holds.
func printableRune(text string) (rune, bool) {
	if text == "" || utf8.RuneCountInString(text) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(text)
	if r < 0x20 || r == 0x7f {
		return 0, false
	}
	return r, true
}

// keyHint derives the lower-cased base character for a character key,
// preferring the event text and falling back to the physical code.
func keyHint(ev KeyEvent) rune {
	if r, _ := utf8.DecodeRuneInString(ev.Text); r != utf8.RuneError && r >= 0x20 {
		return unicode.ToLower(r)
	}
	code := ev.Code
	switch {
	case len(code) == 4 && strings.HasPrefix(code, "Key"):
		return unicode.ToLower(rune(code[3]))
	case len(code) == 6 && strings.HasPrefix(code, "Digit"):
		return rune(code[5])
	case len(code) == 7 && strings.HasPrefix(code, "Numpad") && code[6] >= '0' && code[6] <= '9':
		return rune(code[6])
	}
	if r, ok := codeHints[code]; ok {
		return r
	}
	return 0
}

var codeHints = map[string]rune{
	"Space":          ' ',
	"Minus":          '-',
	"Equal":          '=',
	"BracketLeft":    '[',
	"BracketRight":   ']',
	"Backslash":      '\\',
	"Semicolon":      ';',
	"Quote":          '\'',
	"Backquote":      '`',
	"Comma":          ',',
	"Period":         '.',
	"Slash":          '/',
	"IntlBackslash":  '\\',
	"NumpadAdd":      '+',
	"NumpadSubtract": '-',
	"NumpadMultiply": '*',
	"NumpadDivide":   '/',
	"NumpadDecimal":  '.',
}

// isPasteShortcut matches the platform paste chords: Ctrl+V, Meta+V
// and Shift+Insert.
func isPasteShortcut(ev KeyEvent) bool {
	if ev.Code == "KeyV" {
		m := ev.Modifiers &^ ModShift
		return m == ModCtrl || m == ModMeta
	}
	if ev.Code == "Insert" {
		return ev.Modifiers == ModShift
	}
	return false
}

// isCopyShortcut matches the platform copy chords: Ctrl+C, Meta+C and
// Ctrl+Shift+C.
func isCopyShortcut(ev KeyEvent) bool {
	if ev.Code != "KeyC" {
		return false
	}
	m := ev.Modifiers &^ ModShift
	return m == ModCtrl || m == ModMeta
}

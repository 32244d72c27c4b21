package purfectview

import (
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDownPrintableFastPath(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "KeyA", Text: "a"})
	ic.HandleKeyDown(KeyEvent{Code: "KeyA", Text: "A", Modifiers: ModShift})
	ic.HandleKeyDown(KeyEvent{Code: "Digit1", Text: "!", Modifiers: ModShift})

	assert.Equal(t, "aA!", c.joined())
}

func TestKeyDownFixedSequences(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "Enter"})
	ic.HandleKeyDown(KeyEvent{Code: "Tab"})
	ic.HandleKeyDown(KeyEvent{Code: "Backspace"})
	ic.HandleKeyDown(KeyEvent{Code: "Escape"})
	ic.HandleKeyDown(KeyEvent{Code: "Home"})
	ic.HandleKeyDown(KeyEvent{Code: "PageUp", Modifiers: ModShift})
	ic.HandleKeyDown(KeyEvent{Code: "F5"})

	assert.Equal(t, "\r\t\x7f\x1b\x1b[H\x1b[5~\x1b[15~", c.joined())
}

func TestKeyDownDelegatesToEngineEncoding(t *testing.T) {
	e := newFakeEngine(80, 24)
	ic, c, _ := newTestCoordinator(e)

	ic.HandleKeyDown(KeyEvent{Code: "ArrowUp"})
	assert.Equal(t, "\x1b[A", c.joined())

	// Application cursor mode is sampled from the engine per press.
	e.modes[ModeApplicationCursor] = true
	ic.HandleKeyDown(KeyEvent{Code: "ArrowUp"})
	assert.Equal(t, "\x1b[A\x1bOA", c.joined())
}

func TestKeyDownCtrlLetter(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "KeyC", Text: "c", Modifiers: ModCtrl})
	assert.Equal(t, "\x03", c.joined(), "Ctrl+C without a copy hook sends ETX")
}

func TestKeyDownUnknownCodeDropped(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "MediaPlayPause"})
	assert.Empty(t, c.sent)
}

func TestKeyDownEncodeErrorDroppedAndLogged(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.encode = func(KeyRequest) ([]byte, error) {
		return nil, errTest("unmappable")
	}
	ic, c, _ := newTestCoordinator(e)
	var buf strings.Builder
	ic.logger = log.New(&buf, "", 0)

	ic.HandleKeyDown(KeyEvent{Code: "ArrowUp"})

	assert.Empty(t, c.sent)
	assert.Contains(t, buf.String(), "key encoding failed")
}

func TestKeyDownOverrideClaimsKey(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))
	var seen []string
	ic.onRawKey = func(ev KeyEvent) { seen = append(seen, ev.Code) }
	ic.override = func(ev KeyEvent) bool { return ev.Code == "F1" }

	ic.HandleKeyDown(KeyEvent{Code: "F1"})
	ic.HandleKeyDown(KeyEvent{Code: "F2"})

	assert.Equal(t, []string{"F1", "F2"}, seen, "observer sees every key")
	assert.Equal(t, "\x1bOQ", c.joined(), "claimed key emits nothing")
}

func TestKeyDownCopyShortcut(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))
	copied := false
	ic.onCopy = func() bool { return copied }

	ic.HandleKeyDown(KeyEvent{Code: "KeyC", Text: "c", Modifiers: ModCtrl})
	assert.Equal(t, "\x03", c.joined(), "no selection: Ctrl+C reaches the terminal")

	copied = true
	ic.HandleKeyDown(KeyEvent{Code: "KeyC", Text: "c", Modifiers: ModCtrl})
	assert.Equal(t, "\x03", c.joined(), "copy hook consumed the chord")
}

func TestKeyDownPasteShortcutIgnored(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "KeyV", Text: "v", Modifiers: ModCtrl})
	ic.HandleKeyDown(KeyEvent{Code: "KeyV", Text: "v", Modifiers: ModMeta})
	ic.HandleKeyDown(KeyEvent{Code: "Insert", Modifiers: ModShift})

	assert.Empty(t, c.sent, "paste chords deliver through the paste event")
}

func TestDedupSuppressesCrossPath(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "KeyA", Text: "a"})
	ic.HandleBeforeInput(InputEvent{Type: InputInsertText, Text: "a"})

	assert.Equal(t, "a", c.joined(), "text-input echo of the key press is suppressed")
}

func TestDedupConsumesOnSuppress(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "KeyA", Text: "a"})
	ic.HandleBeforeInput(InputEvent{Type: InputInsertText, Text: "a"})
	ic.HandleBeforeInput(InputEvent{Type: InputInsertText, Text: "a"})

	assert.Equal(t, "aa", c.joined(), "a record suppresses exactly once")
}

func TestDedupSamePathNeverSuppressed(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "KeyA", Text: "a"})
	ic.HandleKeyDown(KeyEvent{Code: "KeyA", Text: "a"})

	assert.Equal(t, "aa", c.joined(), "repeated presses are real input")
}

func TestDedupWindowExpires(t *testing.T) {
	ic, c, clock := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "KeyA", Text: "a"})
	clock.advance(DefaultDedupWindow + time.Millisecond)
	ic.HandleBeforeInput(InputEvent{Type: InputInsertText, Text: "a"})

	assert.Equal(t, "aa", c.joined(), "stale records no longer suppress")
}

func TestDedupEnterAcrossPaths(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "Enter"})
	ic.HandleBeforeInput(InputEvent{Type: InputInsertLineBreak})

	assert.Equal(t, "\r", c.joined())
}

func TestCompositionCommit(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleCompositionStart()
	ic.HandleKeyDown(KeyEvent{Code: "KeyN", Text: "n", Composing: true})
	ic.HandleKeyDown(KeyEvent{Code: "KeyI", Text: "i"})
	ic.HandleCompositionUpdate("に")
	ic.HandleCompositionEnd("に")

	assert.Equal(t, "に", c.joined(), "only the committed text is sent")
	assert.False(t, ic.IsComposing())
}

func TestCompositionEndDedupsAgainstInput(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleBeforeInput(InputEvent{Type: InputInsertText, Text: "字"})
	ic.HandleCompositionEnd("字")

	assert.Equal(t, "字", c.joined())
}

func TestCompositionScrubHook(t *testing.T) {
	ic, _, _ := newTestCoordinator(newFakeEngine(80, 24))
	scrubbed := 0
	ic.scrub = func() { scrubbed++ }

	ic.HandleCompositionStart()
	ic.HandleCompositionEnd("")

	assert.Equal(t, 1, scrubbed, "scrub runs even for an empty commit")
}

func TestPastePlain(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandlePaste("one\r\ntwo\nthree")

	assert.Equal(t, "one\rtwo\rthree", c.joined())
}

func TestPasteBracketed(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.modes[ModeBracketedPaste] = true
	ic, c, _ := newTestCoordinator(e)

	ic.HandlePaste("hello")

	require.Len(t, c.sent, 1)
	assert.Equal(t, "\x1b[200~hello\x1b[201~", string(c.sent[0]))
}

func TestPasteDedupsAgainstComposition(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleCompositionEnd("X")
	ic.HandlePaste("X")

	assert.Equal(t, "X", c.joined(), "paste of text the IME just committed is suppressed")
}

func TestInputDedupsAgainstPaste(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandlePaste("Y")
	ic.HandleBeforeInput(InputEvent{Type: InputInsertText, Text: "Y"})

	assert.Equal(t, "Y", c.joined(), "text-input echo of the paste is suppressed")
}

func TestPasteDoubleDeliverySuppressed(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandlePaste("clip")
	ic.HandleBeforeInput(InputEvent{Type: InputInsertFromPaste, Text: "clip"})

	assert.Equal(t, "clip", c.joined(), "same paste surfacing on both delivery routes sends once")
}

func TestPasteBracketedRecordsInnerText(t *testing.T) {
	e := newFakeEngine(80, 24)
	e.modes[ModeBracketedPaste] = true
	ic, c, _ := newTestCoordinator(e)

	ic.HandlePaste("hello")
	ic.HandleBeforeInput(InputEvent{Type: InputInsertText, Text: "hello"})

	require.Len(t, c.sent, 1)
	assert.Equal(t, "\x1b[200~hello\x1b[201~", string(c.sent[0]))
}

func TestPasteDedupWindowExpires(t *testing.T) {
	ic, c, clock := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandlePaste("Z")
	clock.advance(DefaultDedupWindow + time.Millisecond)
	ic.HandlePaste("Z")

	assert.Equal(t, "ZZ", c.joined(), "a later paste of the same text is real input")
}

func TestPasteNewlinesNormalizedBeforeDedup(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandlePaste("a\nb")
	ic.HandleBeforeInput(InputEvent{Type: InputInsertText, Text: "a\r\nb"})

	assert.Equal(t, "a\rb", c.joined(), "both paths dedup on the CR form")
}

func TestInputInsertTextConvertsNewlines(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleBeforeInput(InputEvent{Type: InputInsertText, Text: "a\nb"})

	assert.Equal(t, "a\rb", c.joined())
}

func TestInputInsertReplacementText(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "KeyA", Text: "a"})
	ic.HandleBeforeInput(InputEvent{Type: InputInsertReplacementText, Text: "a"})
	ic.HandleBeforeInput(InputEvent{Type: InputInsertReplacementText, Text: "word"})

	assert.Equal(t, "aword", c.joined(), "replacement text behaves like insert text")
}

func TestInputDeleteContentForward(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleBeforeInput(InputEvent{Type: InputDeleteContentForward})

	assert.Equal(t, "\x1b[3~", c.joined())
}

func TestDedupDeleteAcrossPaths(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.HandleKeyDown(KeyEvent{Code: "Delete"})
	ic.HandleBeforeInput(InputEvent{Type: InputDeleteContentForward})

	assert.Equal(t, "\x1b[3~", c.joined(), "text-input echo of the Delete key is suppressed")
}

func TestPasteEmptyIsNoop(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))
	ic.HandlePaste("")
	assert.Empty(t, c.sent)
}

func TestInputAfterDisposeIsNoop(t *testing.T) {
	ic, c, _ := newTestCoordinator(newFakeEngine(80, 24))

	ic.Dispose()
	ic.HandleKeyDown(KeyEvent{Code: "KeyA", Text: "a"})
	ic.HandlePaste("x")
	ic.HandleBeforeInput(InputEvent{Type: InputInsertText, Text: "y"})
	ic.HandleCompositionEnd("z")

	assert.Empty(t, c.sent)
}

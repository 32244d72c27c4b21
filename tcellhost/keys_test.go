package tcellhost

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/phroun/purfectview"
)

func TestTranslateKeyRunes(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		mods tcell.ModMask
		want purfectview.KeyEvent
	}{
		{"lowercase letter", 'a', 0,
			purfectview.KeyEvent{Code: "KeyA", Text: "a"}},
		{"shifted letter", 'G', tcell.ModShift,
			purfectview.KeyEvent{Code: "KeyG", Text: "G", Modifiers: purfectview.ModShift}},
		{"digit", '7', 0,
			purfectview.KeyEvent{Code: "Digit7", Text: "7"}},
		{"shifted digit", '!', tcell.ModShift,
			purfectview.KeyEvent{Code: "Digit1", Text: "!", Modifiers: purfectview.ModShift}},
		{"space", ' ', 0,
			purfectview.KeyEvent{Code: "Space", Text: " "}},
		{"punctuation", ';', 0,
			purfectview.KeyEvent{Code: "Semicolon", Text: ";"}},
		{"shifted punctuation", '_', tcell.ModShift,
			purfectview.KeyEvent{Code: "Minus", Text: "_", Modifiers: purfectview.ModShift}},
		{"alt letter", 'b', tcell.ModAlt,
			purfectview.KeyEvent{Code: "KeyB", Text: "b", Modifiers: purfectview.ModAlt}},
		{"unmapped rune keeps text", 'é', 0,
			purfectview.KeyEvent{Text: "é"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tcell.KeyRune, tc.r, tc.mods)
			assert.Equal(t, tc.want, translateKey(ev))
		})
	}
}

func TestTranslateKeySpecials(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		mods tcell.ModMask
		want purfectview.KeyEvent
	}{
		{"enter", tcell.KeyEnter, 0,
			purfectview.KeyEvent{Code: "Enter"}},
		{"tab", tcell.KeyTab, 0,
			purfectview.KeyEvent{Code: "Tab"}},
		{"backtab implies shift", tcell.KeyBacktab, 0,
			purfectview.KeyEvent{Code: "Tab", Modifiers: purfectview.ModShift}},
		{"escape", tcell.KeyEscape, 0,
			purfectview.KeyEvent{Code: "Escape"}},
		{"del backspace", tcell.KeyBackspace2, 0,
			purfectview.KeyEvent{Code: "Backspace"}},
		{"arrow with shift", tcell.KeyUp, tcell.ModShift,
			purfectview.KeyEvent{Code: "ArrowUp", Modifiers: purfectview.ModShift}},
		{"page up", tcell.KeyPgUp, 0,
			purfectview.KeyEvent{Code: "PageUp"}},
		{"function key", tcell.KeyF5, 0,
			purfectview.KeyEvent{Code: "F5"}},
		{"delete", tcell.KeyDelete, 0,
			purfectview.KeyEvent{Code: "Delete"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tc.key, 0, tc.mods)
			assert.Equal(t, tc.want, translateKey(ev))
		})
	}
}

func TestTranslateKeyCtrlChords(t *testing.T) {
	// Ctrl+C arrives as the dedicated key value, not as a rune.
	ev := tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	assert.Equal(t, purfectview.KeyEvent{
		Code:      "KeyC",
		Modifiers: purfectview.ModCtrl,
	}, translateKey(ev))

	// Ctrl aliased control bytes stay named keys, not chords.
	ev = tcell.NewEventKey(tcell.KeyTab, 0, 0)
	assert.Equal(t, "Tab", translateKey(ev).Code)
	ev = tcell.NewEventKey(tcell.KeyEnter, 0, 0)
	assert.Equal(t, "Enter", translateKey(ev).Code)

	ev = tcell.NewEventKey(tcell.KeyCtrlSpace, 0, tcell.ModCtrl)
	assert.Equal(t, purfectview.KeyEvent{
		Code:      "Space",
		Modifiers: purfectview.ModCtrl,
	}, translateKey(ev))

	// Ctrl+Shift chord keeps both modifiers.
	ev = tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl|tcell.ModShift)
	got := translateKey(ev)
	assert.Equal(t, "KeyA", got.Code)
	assert.True(t, got.Modifiers.Ctrl())
	assert.True(t, got.Modifiers.Shift())
}

func TestTranslateKeyUnmapped(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyF64, 0, 0)
	got := translateKey(ev)
	assert.Empty(t, got.Code)
	assert.Empty(t, got.Text)
}

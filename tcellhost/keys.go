package tcellhost

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phroun/purfectview"
)

// specialKeyCodes maps tcell's named keys to physical key codes. tcell
// aliases several control bytes to named keys (Tab, Enter, Backspace,
// Escape); those take precedence over the Ctrl-letter range below.
var specialKeyCodes = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyEscape:     "Escape",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyInsert:     "Insert",
	tcell.KeyDelete:     "Delete",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// punctCodes maps punctuation runes, shifted and unshifted, to the
// physical key that produces them on a US layout.
var punctCodes = map[rune]string{
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

// translateKey converts a tcell key event into a purfectview key event.
// A zero-valued result means the key has no mapping and should be
// dropped.
func translateKey(ev *tcell.EventKey) purfectview.KeyEvent {
	mods := translateMods(ev.Modifiers())

	if code, ok := specialKeyCodes[ev.Key()]; ok {
		if ev.Key() == tcell.KeyBacktab {
			mods |= purfectview.ModShift
		}
		return purfectview.KeyEvent{Code: code, Modifiers: mods}
	}

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		kev := purfectview.KeyEvent{
			Code:      runeCode(r),
			Modifiers: mods,
		}
		if !mods.Ctrl() {
			kev.Text = string(r)
		}
		return kev
	}

	// tcell folds Ctrl chords into dedicated key values carrying the
	// control byte. Recover the base letter so the encoder sees the
	// chord, not the byte.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		letter := rune('a' + ev.Key() - tcell.KeyCtrlA)
		return purfectview.KeyEvent{
			Code:      "Key" + string(letter-32),
			Modifiers: mods | purfectview.ModCtrl,
		}
	}
	if ev.Key() == tcell.KeyCtrlSpace {
		return purfectview.KeyEvent{
			Code:      "Space",
			Modifiers: mods | purfectview.ModCtrl,
		}
	}

	return purfectview.KeyEvent{}
}

func translateMods(m tcell.ModMask) purfectview.Modifiers {
	var mods purfectview.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= purfectview.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= purfectview.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= purfectview.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= purfectview.ModMeta
	}
	return mods
}

// runeCode returns the physical key code behind a produced rune, or ""
// for runes with no US-layout key, which still reach the coordinator
// through their text.
func runeCode(r rune) string {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + string(r-32)
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r)
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	case r == ' ':
		return "Space"
	}
	return punctCodes[r]
}

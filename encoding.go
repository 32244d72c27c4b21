package purfectview

import "fmt"

// EncodeXtermKey translates a key request into the xterm-style byte
// sequence a remote process expects. Engines may use it directly as
// their EncodeKey implementation. It preserves traditional encodings
// (Ctrl+letter control characters, Alt ESC prefix, SS3 cursor keys in
// application cursor mode) and falls back to the kitty CSI-u form for
// multi-modifier combinations that have no traditional encoding.
func EncodeXtermKey(req KeyRequest) ([]byte, error) {
	mod := req.Modifiers.XtermParam()
	hasModifiers := mod > 1

	switch req.Key {
	case KeyEnter:
		if hasModifiers {
			return modifiedSpecialKey(mod, 13), nil
		}
		return []byte{'\r'}, nil

	case KeyTab:
		if req.Modifiers.Alt() || req.Modifiers.Meta() || req.Modifiers.Ctrl() {
			return modifiedSpecialKey(mod, 9), nil
		}
		return []byte{'\t'}, nil

	case KeyBackspace:
		if req.Modifiers.Ctrl() {
			return []byte{0x08}, nil
		}
		if req.Modifiers.Alt() {
			return []byte{0x1b, 0x7f}, nil
		}
		return []byte{0x7f}, nil

	case KeyEscape:
		if hasModifiers {
			return modifiedSpecialKey(mod, 27), nil
		}
		return []byte{0x1b}, nil

	case KeyUp:
		return cursorKey('A', mod, hasModifiers, req.AppCursor), nil
	case KeyDown:
		return cursorKey('B', mod, hasModifiers, req.AppCursor), nil
	case KeyRight:
		return cursorKey('C', mod, hasModifiers, req.AppCursor), nil
	case KeyLeft:
		return cursorKey('D', mod, hasModifiers, req.AppCursor), nil

	case KeyHome:
		return cursorKey('H', mod, hasModifiers, req.AppCursor), nil
	case KeyEnd:
		return cursorKey('F', mod, hasModifiers, req.AppCursor), nil
	case KeyInsert:
		return tildeKey(2, mod, hasModifiers), nil
	case KeyDelete:
		return tildeKey(3, mod, hasModifiers), nil
	case KeyPageUp:
		return tildeKey(5, mod, hasModifiers), nil
	case KeyPageDown:
		return tildeKey(6, mod, hasModifiers), nil

	case KeyF1:
		return functionKey('P', mod, hasModifiers), nil
	case KeyF2:
		return functionKey('Q', mod, hasModifiers), nil
	case KeyF3:
		return functionKey('R', mod, hasModifiers), nil
	case KeyF4:
		return functionKey('S', mod, hasModifiers), nil
	case KeyF5:
		return tildeKey(15, mod, hasModifiers), nil
	case KeyF6:
		return tildeKey(17, mod, hasModifiers), nil
	case KeyF7:
		return tildeKey(18, mod, hasModifiers), nil
	case KeyF8:
		return tildeKey(19, mod, hasModifiers), nil
	case KeyF9:
		return tildeKey(20, mod, hasModifiers), nil
	case KeyF10:
		return tildeKey(21, mod, hasModifiers), nil
	case KeyF11:
		return tildeKey(23, mod, hasModifiers), nil
	case KeyF12:
		return tildeKey(24, mod, hasModifiers), nil

	case KeyChar:
		return encodeCharKey(req, mod)

	default:
		return nil, fmt.Errorf("no encoding for key %d (modifiers %d)", int(req.Key), mod)
	}
}

// encodeCharKey handles character-producing keys with modifiers held.
// We preserve traditional handling for:
//   - Ctrl+letter → control character (^A, ^B, etc.)
//   - Alt+key → ESC + character
//
// But use the kitty CSI-u protocol for:
//   - Combinations like Ctrl+Shift, Ctrl+Alt, Meta+anything
//   - Ctrl+symbol (symbols have no traditional control character)
func encodeCharKey(req KeyRequest, mod int) ([]byte, error) {
	ch := req.Hint
	if ch == 0 {
		return nil, fmt.Errorf("character key without base character (modifiers %d)", mod)
	}

	mods := req.Modifiers
	useKittyMultiMod := mods.Meta() ||
		(mods.Ctrl() && mods.Shift()) ||
		(mods.Ctrl() && mods.Alt()) ||
		(mods.Alt() && mods.Shift())

	// Ctrl+Space produces NUL - traditional behavior. Other modifier
	// combinations on space use the kitty protocol.
	if ch == ' ' {
		if mods == ModCtrl {
			return []byte{0x00}, nil
		}
		if mod > 1 {
			return modifiedSpecialKey(mod, 32), nil
		}
		return []byte{' '}, nil
	}

	if ch < 128 {
		b := byte(ch)

		if mods.Ctrl() || mods.Alt() {
			if isSymbolChar(b) && !isCtrlSymbol(b) {
				return kittyChar(b, mods), nil
			}
			if b >= '0' && b <= '9' {
				// Plain Ctrl+number keeps the historic quirky mappings.
				if mods == ModCtrl {
					switch b {
					case '2':
						return []byte{0x00}, nil
					case '3':
						return []byte{0x1b}, nil
					case '4':
						return []byte{0x1c}, nil
					case '5':
						return []byte{0x1d}, nil
					case '6':
						return []byte{0x1e}, nil
					case '7':
						return []byte{0x1f}, nil
					case '8':
						return []byte{0x7f}, nil
					}
				}
				return kittyChar(b, mods), nil
			}
		}

		if useKittyMultiMod && (b >= 'a' && b <= 'z' || isSymbolChar(b)) {
			return kittyChar(b, mods), nil
		}

		return applyCharModifiers(b, mods), nil
	}

	// Non-ASCII character: send as UTF-8, with ESC prefix for Alt.
	if mods.Alt() && !mods.Ctrl() {
		return append([]byte{0x1b}, []byte(string(ch))...), nil
	}
	return []byte(string(ch)), nil
}

// applyCharModifiers applies modifier transformations to an ASCII
// character.
func applyCharModifiers(ch byte, mods Modifiers) []byte {
	if mods.Ctrl() {
		switch {
		case ch >= 'a' && ch <= 'z':
			ch = ch - 'a' + 1
		case ch >= 'A' && ch <= 'Z':
			ch = ch - 'A' + 1
		default:
			switch ch {
			case '@':
				ch = 0 // NUL
			case '[':
				ch = 0x1b // ESC
			case '\\':
				ch = 0x1c // FS
			case ']':
				ch = 0x1d // GS
			case '^':
				ch = 0x1e // RS
			case '_':
				ch = 0x1f // US
			case '?':
				ch = 0x7f // DEL
			}
		}
	}

	if mods.Alt() || mods.Meta() {
		// Control chars that double as named keys go through the kitty
		// protocol so the receiver can tell Ctrl+M from Enter. Ctrl is
		// not included in the parameter; it was consumed producing the
		// control char.
		var keycode int
		switch ch {
		case 0x0d:
			keycode = 13
		case 0x09:
			keycode = 9
		case 0x08, 0x7f:
			keycode = 127
		case 0x1b:
			keycode = 27
		}
		if keycode != 0 {
			param := 1
			if mods.Shift() {
				param += 1
			}
			if mods.Alt() {
				param += 2
			}
			if mods.Meta() {
				param += 8
			}
			return modifiedSpecialKey(param, keycode)
		}
		return []byte{0x1b, ch}
	}

	return []byte{ch}
}

// kittyChar builds a kitty CSI-u sequence for a base character.
func kittyChar(ch byte, mods Modifiers) []byte {
	return modifiedSpecialKey(mods.XtermParam(), int(ch))
}

// isSymbolChar reports whether b is a printable ASCII symbol
// (punctuation, not a letter, digit or space).
func isSymbolChar(b byte) bool {
	if b <= ' ' || b >= 0x7f {
		return false
	}
	if b >= '0' && b <= '9' {
		return false
	}
	if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' {
		return false
	}
	return true
}

// isCtrlSymbol reports whether b has a traditional Ctrl mapping
// (Ctrl+@ = NUL, Ctrl+[ = ESC and friends).
func isCtrlSymbol(b byte) bool {
	switch b {
	case '@', '[', '\\', ']', '^', '_', '?':
		return true
	}
	return false
}

// cursorKey generates the escape sequence for cursor keys (arrows,
// home, end).
// Without modifiers: ESC [ <key>, or ESC O <key> in application cursor mode.
// With modifiers: ESC [ 1 ; <mod> <key>
func cursorKey(key byte, mod int, hasModifiers, appCursor bool) []byte {
	if hasModifiers {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mod, key))
	}
	if appCursor {
		return []byte{0x1b, 'O', key}
	}
	return []byte{0x1b, '[', key}
}

// tildeKey generates the escape sequence for tilde-style keys (PgUp,
// PgDn, Insert, Delete, F5-F12).
// Without modifiers: ESC [ <num> ~
// With modifiers: ESC [ <num> ; <mod> ~
func tildeKey(num int, mod int, hasModifiers bool) []byte {
	if hasModifiers {
		return []byte(fmt.Sprintf("\x1b[%d;%d~", num, mod))
	}
	return []byte(fmt.Sprintf("\x1b[%d~", num))
}

// functionKey generates the escape sequence for F1-F4.
// Without modifiers: ESC O <key> (SS3 format)
// With modifiers: ESC [ 1 ; <mod> <key> (CSI format)
func functionKey(key byte, mod int, hasModifiers bool) []byte {
	if hasModifiers {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mod, key))
	}
	return []byte{0x1b, 'O', key}
}

// modifiedSpecialKey generates the CSI-u form for special keys with
// modifiers (kitty protocol style).
func modifiedSpecialKey(mod int, keycode int) []byte {
	return []byte(fmt.Sprintf("\x1b[%d;%du", keycode, mod))
}

package purfectview

// Key is an abstract, layout-independent key identity.
type Key int

const (
	KeyNone Key = iota

	// KeyChar is any character-producing key (letters, digits,
	// punctuation, space). The base character travels as the request
	// hint.
	KeyChar

	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape

	KeyUp
	KeyDown
	KeyRight
	KeyLeft

	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Meta() bool  { return m&ModMeta != 0 }

// XtermParam returns the xterm modifier parameter for escape sequences:
// 1 + shift + 2*alt + 4*ctrl + 8*meta.
func (m Modifiers) XtermParam() int {
	param := 1
	if m.Shift() {
		param += 1
	}
	if m.Alt() {
		param += 2
	}
	if m.Ctrl() {
		param += 4
	}
	if m.Meta() {
		param += 8
	}
	return param
}

// keyCodes maps physical key code identifiers (the host's stable,
// layout-independent names) to abstract keys. Hosts that don't use
// these names translate to Key values directly instead.
var keyCodes = map[string]Key{
	"Enter":          KeyEnter,
	"NumpadEnter":    KeyEnter,
	"Tab":            KeyTab,
	"Backspace":      KeyBackspace,
	"Escape":         KeyEscape,
	"ArrowUp":        KeyUp,
	"ArrowDown":      KeyDown,
	"ArrowRight":     KeyRight,
	"ArrowLeft":      KeyLeft,
	"Home":           KeyHome,
	"End":            KeyEnd,
	"Insert":         KeyInsert,
	"Delete":         KeyDelete,
	"PageUp":         KeyPageUp,
	"PageDown":       KeyPageDown,
	"F1":             KeyF1,
	"F2":             KeyF2,
	"F3":             KeyF3,
	"F4":             KeyF4,
	"F5":             KeyF5,
	"F6":             KeyF6,
	"F7":             KeyF7,
	"F8":             KeyF8,
	"F9":             KeyF9,
	"F10":            KeyF10,
	"F11":            KeyF11,
	"F12":            KeyF12,
	"Space":          KeyChar,
	"Minus":          KeyChar,
	"Equal":          KeyChar,
	"BracketLeft":    KeyChar,
	"BracketRight":   KeyChar,
	"Backslash":      KeyChar,
	"Semicolon":      KeyChar,
	"Quote":          KeyChar,
	"Backquote":      KeyChar,
	"Comma":          KeyChar,
	"Period":         KeyChar,
	"Slash":          KeyChar,
	"IntlBackslash":  KeyChar,
	"NumpadAdd":      KeyChar,
	"NumpadSubtract": KeyChar,
	"NumpadMultiply": KeyChar,
	"NumpadDivide":   KeyChar,
	"NumpadDecimal":  KeyChar,
}

func init() {
	// KeyA..KeyZ, Digit0..Digit9, Numpad0..Numpad9 are all character keys.
	for c := 'A'; c <= 'Z'; c++ {
		keyCodes["Key"+string(c)] = KeyChar
	}
	for c := '0'; c <= '9'; c++ {
		keyCodes["Digit"+string(c)] = KeyChar
		keyCodes["Numpad"+string(c)] = KeyChar
	}
}

// LookupKeyCode resolves a physical key code identifier to an abstract
// key. Unknown codes return (KeyNone, false) and are dropped by the
// coordinator.
func LookupKeyCode(code string) (Key, bool) {
	k, ok := keyCodes[code]
	return k, ok
}

// plainSequences are the fixed escape sequences for non-printable keys
// pressed with no modifier, or with shift only.
var plainSequences = map[Key][]byte{
	KeyEnter:     {'\r'},
	KeyTab:       {'\t'},
	KeyBackspace: {0x7f},
	KeyEscape:    {0x1b},
	KeyHome:      []byte("\x1b[H"),
	KeyEnd:       []byte("\x1b[F"),
	KeyInsert:    []byte("\x1b[2~"),
	KeyDelete:    []byte("\x1b[3~"),
	KeyPageUp:    []byte("\x1b[5~"),
	KeyPageDown:  []byte("\x1b[6~"),
	KeyF1:        []byte("\x1bOP"),
	KeyF2:        []byte("\x1bOQ"),
	KeyF3:        []byte("\x1bOR"),
	KeyF4:        []byte("\x1bOS"),
	KeyF5:        []byte("\x1b[15~"),
	KeyF6:        []byte("\x1b[17~"),
	KeyF7:        []byte("\x1b[18~"),
	KeyF8:        []byte("\x1b[19~"),
	KeyF9:        []byte("\x1b[20~"),
	KeyF10:       []byte("\x1b[21~"),
	KeyF11:       []byte("\x1b[23~"),
	KeyF12:       []byte("\x1b[24~"),
}

// PlainSequence returns the fixed sequence for a key pressed bare or
// with shift only. KeyChar and unknown keys return (nil, false).
func PlainSequence(key Key) ([]byte, bool) {
	seq, ok := plainSequences[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(seq))
	copy(out, seq)
	return out, true
}

package gridengine

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCSI
	stateOSC
	stateOSCEscape
)

// parser is a byte-at-a-time VT interpreter. It covers cursor motion,
// erase, DEC private modes and UTF-8 text; SGR and other styling
// sequences are parsed and discarded since the grid stores characters
// only.
type parser struct {
	state    parserState
	params   strings.Builder
	private  bool
	utf8Buf  []byte
	utf8Need int
}

func (p *parser) consume(e *Engine, b byte) {
	switch p.state {
	case stateGround:
		p.ground(e, b)
	case stateEscape:
		p.escape(e, b)
	case stateCSI:
		p.csi(e, b)
	case stateOSC:
		// OSC payloads end with BEL or ST (ESC \).
		if b == 0x07 {
			p.state = stateGround
		} else if b == 0x1b {
			p.state = stateOSCEscape
		}
	case stateOSCEscape:
		p.state = stateGround
	}
}

func (p *parser) ground(e *Engine, b byte) {
	if p.utf8Need > 0 {
		p.utf8Buf = append(p.utf8Buf, b)
		p.utf8Need--
		if p.utf8Need == 0 {
			if r, _ := utf8.DecodeRune(p.utf8Buf); r != utf8.RuneError {
				e.putRune(r)
			}
			p.utf8Buf = p.utf8Buf[:0]
		}
		return
	}

	switch {
	case b == 0x1b:
		p.state = stateEscape
	case b == '\r':
		e.carriageReturn()
	case b == '\n', b == 0x0b, b == 0x0c:
		e.lineFeed()
	case b == 0x08:
		e.backspace()
	case b == '\t':
		e.tab()
	case b == 0x07:
		// Bell: nothing to ring here.
	case b < 0x20:
		// Other C0 controls are ignored.
	case b < 0x80:
		e.putRune(rune(b))
	default:
		p.utf8Buf = append(p.utf8Buf[:0], b)
		switch {
		case b&0xe0 == 0xc0:
			p.utf8Need = 1
		case b&0xf0 == 0xe0:
			p.utf8Need = 2
		case b&0xf8 == 0xf0:
			p.utf8Need = 3
		default:
			p.utf8Buf = p.utf8Buf[:0]
		}
	}
}

func (p *parser) escape(e *Engine, b byte) {
	switch b {
	case '[':
		p.state = stateCSI
		p.params.Reset()
		p.private = false
	case ']':
		p.state = stateOSC
	case 'D':
		e.lineFeed()
		p.state = stateGround
	case 'M':
		// Reverse index: cursor up, no scroll region support.
		if e.curY > 0 {
			e.curY--
		}
		p.state = stateGround
	case 'c':
		e.eraseScreen(2)
		e.moveCursor(0, 0)
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *parser) csi(e *Engine, b byte) {
	switch {
	case b == '?':
		p.private = true
	case b >= '0' && b <= '9' || b == ';':
		p.params.WriteByte(b)
	case b >= 0x40 && b <= 0x7e:
		p.executeCSI(e, b)
		p.state = stateGround
	case b >= 0x20 && b <= 0x2f:
		// Intermediate bytes: sequence unsupported, swallow to final.
	default:
		p.state = stateGround
	}
}

func (p *parser) executeCSI(e *Engine, final byte) {
	params := splitParams(p.params.String())

	if p.private {
		switch final {
		case 'h', 'l':
			on := final == 'h'
			for _, mode := range params {
				switch mode {
				case 25:
					e.cursorVisible = on
					e.markDirty(e.curY)
				default:
					e.modes[mode] = on
				}
			}
		}
		return
	}

	switch final {
	case 'A':
		e.moveCursor(e.curX, e.curY-param(params, 0, 1))
	case 'B':
		e.moveCursor(e.curX, e.curY+param(params, 0, 1))
	case 'C':
		e.moveCursor(e.curX+param(params, 0, 1), e.curY)
	case 'D':
		e.moveCursor(e.curX-param(params, 0, 1), e.curY)
	case 'G':
		e.moveCursor(param(params, 0, 1)-1, e.curY)
	case 'H', 'f':
		e.moveCursor(param(params, 1, 1)-1, param(params, 0, 1)-1)
	case 'J':
		e.eraseScreen(param(params, 0, 0))
	case 'K':
		e.eraseLine(param(params, 0, 0))
	case 'd':
		e.moveCursor(e.curX, param(params, 0, 1)-1)
	case 'm':
		// SGR: styling is out of scope for the grid.
	}
}

func splitParams(raw string) []int {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]int, len(parts))
	for i, s := range parts {
		n, err := strconv.Atoi(s)
		if err != nil {
			n = 0
		}
		out[i] = n
	}
	return out
}

// param returns the idx'th parameter, treating missing and zero values
// as the default.
func param(params []int, idx, def int) int {
	if idx >= len(params) || params[idx] == 0 {
		return def
	}
	return params[idx]
}

package cli

import (
	"bytes"
	"os"
)

// InputHandler reads raw input from the host terminal. Scrollback
// navigation chords are handled locally through the viewport; every
// other byte goes to the child process untouched, since the host
// terminal already speaks the same wire encoding the child expects.
type InputHandler struct {
	term         *Terminal
	escapeBuffer []byte
}

// Special key constants for internal handling
const (
	keyNone = iota
	keyUp
	keyDown
	keyLeft
	keyRight
	keyHome
	keyEnd
	keyPageUp
	keyPageDown
)

// Modifier flags
const (
	modShift = 1 << iota
	modAlt
	modCtrl
)

// NewInputHandler creates a new input handler
func NewInputHandler(term *Terminal) *InputHandler {
	return &InputHandler{
		term:         term,
		escapeBuffer: make([]byte, 0, 32),
	}
}

// InputLoop reads and processes input from stdin
func (h *InputHandler) InputLoop() {
	buf := make([]byte, 256)

	for {
		select {
		case <-h.term.stopRender:
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}

		h.processInput(buf[:n])
	}
}

// processInput handles raw input bytes
func (h *InputHandler) processInput(data []byte) {
	for i := 0; i < len(data); {
		b := data[i]

		if b == 0x1b {
			h.escapeBuffer = append(h.escapeBuffer[:0], b)
			i++

			for i < len(data) && len(h.escapeBuffer) < 32 {
				h.escapeBuffer = append(h.escapeBuffer, data[i])
				i++

				key, mods, consumed, passthrough := h.parseEscapeSequence(h.escapeBuffer)
				if consumed > 0 {
					if passthrough != nil {
						h.forward(passthrough)
					} else if key != keyNone {
						h.handleScrollKey(key, mods)
					}
					h.escapeBuffer = h.escapeBuffer[:0]
					break
				}
			}

			// Leftovers are a lone ESC or a sequence we do not
			// recognize; either way the child gets it verbatim.
			if len(h.escapeBuffer) > 0 {
				h.forward(h.escapeBuffer)
				h.escapeBuffer = h.escapeBuffer[:0]
			}
		} else {
			h.handleRegularInput(b)
			i++
		}
	}
}

// parseEscapeSequence attempts to parse an escape sequence.
// Returns: key code, modifiers, bytes consumed, passthrough bytes (if
// the sequence should be sent to the child as-is).
func (h *InputHandler) parseEscapeSequence(seq []byte) (key int, mods int, consumed int, passthrough []byte) {
	if len(seq) < 2 {
		return keyNone, 0, 0, nil
	}

	if seq[1] == '[' {
		return h.parseCSISequence(seq)
	}
	if seq[1] == 'O' {
		return h.parseSS3Sequence(seq)
	}

	// Alt+key: ESC followed by a regular character, pass through.
	if len(seq) == 2 && seq[1] >= 0x20 && seq[1] < 0x7f {
		return keyNone, modAlt, 2, seq
	}

	return keyNone, 0, 0, nil
}

// parseCSISequence parses CSI (ESC [) sequences
func (h *InputHandler) parseCSISequence(seq []byte) (key int, mods int, consumed int, passthrough []byte) {
	if len(seq) < 3 {
		return keyNone, 0, 0, nil
	}

	lastByte := seq[len(seq)-1]

	if lastByte >= 'A' && lastByte <= 'Z' || lastByte == '~' {
		switch lastByte {
		case 'A':
			key = keyUp
		case 'B':
			key = keyDown
		case 'C':
			key = keyRight
		case 'D':
			key = keyLeft
		case 'H':
			key = keyHome
		case 'F':
			key = keyEnd
		case '~':
			if len(seq) >= 4 {
				switch seq[2] {
				case '1':
					key = keyHome
				case '4':
					key = keyEnd
				case '5':
					key = keyPageUp
				case '6':
					key = keyPageDown
				}
			}
		}

		// Modifiers in extended format: ESC [ <n> ; <mod> <key>
		if idx := bytes.IndexByte(seq, ';'); idx > 0 && idx+1 < len(seq)-1 {
			modByte := seq[idx+1]
			if modByte >= '2' && modByte <= '8' {
				modNum := int(modByte - '1')
				if modNum&1 != 0 {
					mods |= modShift
				}
				if modNum&2 != 0 {
					mods |= modAlt
				}
				if modNum&4 != 0 {
					mods |= modCtrl
				}
			}
		}

		consumed = len(seq)
		if h.shouldHandleLocally(key, mods) {
			return key, mods, consumed, nil
		}
		return keyNone, 0, consumed, seq
	}

	// Incomplete sequence, need more data.
	if lastByte >= '0' && lastByte <= '9' || lastByte == ';' {
		return keyNone, 0, 0, nil
	}

	return keyNone, 0, len(seq), seq
}

// parseSS3Sequence parses SS3 (ESC O) sequences
func (h *InputHandler) parseSS3Sequence(seq []byte) (key int, mods int, consumed int, passthrough []byte) {
	if len(seq) < 3 {
		return keyNone, 0, 0, nil
	}

	switch seq[2] {
	case 'A':
		key = keyUp
	case 'B':
		key = keyDown
	case 'C':
		key = keyRight
	case 'D':
		key = keyLeft
	case 'H':
		key = keyHome
	case 'F':
		key = keyEnd
	default:
		return keyNone, 0, 3, seq[:3]
	}

	consumed = 3
	if h.shouldHandleLocally(key, mods) {
		return key, mods, consumed, nil
	}
	return keyNone, 0, consumed, seq[:3]
}

// shouldHandleLocally reports whether a key navigates the scrollback
// instead of reaching the child process.
func (h *InputHandler) shouldHandleLocally(key int, mods int) bool {
	if mods&modShift == 0 {
		return false
	}
	switch key {
	case keyPageUp, keyPageDown, keyUp, keyDown, keyHome, keyEnd:
		return true
	}
	return false
}

// handleScrollKey drives the viewport for locally handled keys.
func (h *InputHandler) handleScrollKey(key int, mods int) {
	if mods&modShift == 0 {
		return
	}
	view := h.term.view
	switch key {
	case keyPageUp:
		view.ScrollPages(1)
	case keyPageDown:
		view.ScrollPages(-1)
	case keyUp:
		view.ScrollLines(1)
	case keyDown:
		view.ScrollLines(-1)
	case keyHome:
		view.ScrollToTop()
	case keyEnd:
		view.ScrollToBottom()
	}
}

// handleRegularInput handles regular (non-escape) input
func (h *InputHandler) handleRegularInput(b byte) {
	h.term.mu.Lock()
	callback := h.term.inputCallback
	h.term.mu.Unlock()

	if callback != nil && callback([]byte{b}) {
		return
	}

	// Typing while scrolled back returns to the live tail.
	if h.term.GetScrollOffset() > 0 {
		h.term.ScrollToBottom()
	}

	h.forward([]byte{b})
}

// forward sends bytes to the child process.
func (h *InputHandler) forward(data []byte) {
	h.term.Write(data)
}

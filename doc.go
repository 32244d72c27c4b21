// Package purfectview is the host-agnostic front-end layer of a
// terminal emulator: everything between the raw device events a host
// widget receives and the screen-grid engine that parses VT output.
//
// It coordinates five concerns around an external Engine:
//
//   - Input: keyboard, IME composition, paste and clipboard shortcuts
//     are resolved to at most one byte sequence each, with duplicate
//     deliveries across the key, text-input, composition and paste
//     paths suppressed inside a small time window.
//   - Viewport: a fractional scroll offset over live screen plus
//     scrollback, with smooth ease-out animation, immediate jumps, and
//     an automatic snap to the live tail when new output arrives.
//   - Selection: pointer gestures pinned to content at gesture time,
//     word and line selection, and clipboard hand-off with a fallback.
//   - Scrollbar: a fading overlay thumb with drag and track-jump.
//   - Rendering: per-frame draw plans that tell the host exactly which
//     rows to repaint.
//
// Hosts embed a Terminal, forward their device events to its Handle*
// methods, drive Frame from their paint tick (or let an internal
// ticker do it), and implement Renderer over their graphics surface.
// The gtk, qt, cli and tcellhost subpackages do exactly that.
//
// # Basic Usage
//
//	eng := gridengine.New(80, 24, 1000)
//	term, err := purfectview.New(purfectview.Options{
//	    Engine:   eng,
//	    Renderer: myRenderer,
//	    Output:   func(b []byte) { pty.Write(b) },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := term.Open(); err != nil {
//	    log.Fatal(err)
//	}
//	defer term.Dispose()
package purfectview

// Package cli hosts a purfectview terminal inside an actual CLI
// terminal. It puts the host terminal into raw mode, interprets child
// output through the gridengine interpreter, and renders the viewport
// into a window on the host screen with differential updates.
//
// The viewport niceties of purfectview carry over: Shift+PageUp and
// friends page through scrollback, an overlay scrollbar appears on the
// right edge while scrolling, and new child output snaps the view back
// to the live tail.
//
// # Basic Usage
//
//	term, err := cli.New(cli.Options{
//	    AutoSize:      true,
//	    BorderStyle:   cli.BorderRounded,
//	    Title:         "shell",
//	    ShowStatusBar: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start the terminal (enters raw mode)
//	if err := term.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer term.Stop()
//
//	if err := term.RunShell(); err != nil {
//	    log.Fatal(err)
//	}
//	term.Wait()
//
// # Scrollback Navigation
//
// While running, the following keys navigate the scrollback:
//
//   - Shift+PageUp: Scroll up one page
//   - Shift+PageDown: Scroll down one page
//   - Shift+Up: Scroll up one line
//   - Shift+Down: Scroll down one line
//   - Shift+Home: Jump to top of scrollback
//   - Shift+End: Jump to bottom (current output)
//
// Any regular input automatically scrolls to the bottom.
package cli

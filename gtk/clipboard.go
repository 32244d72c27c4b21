package purfectviewgtk

import (
	"fmt"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

// gtkClipboard adapts a GTK clipboard to purfectview.Clipboard.
type gtkClipboard struct {
	cb *gtk.Clipboard
}

func newClipboard(selection gdk.Atom) (*gtkClipboard, error) {
	cb, err := gtk.ClipboardGet(selection)
	if err != nil {
		return nil, err
	}
	return &gtkClipboard{cb: cb}, nil
}

func (c *gtkClipboard) WriteText(text string) error {
	if c.cb == nil {
		return fmt.Errorf("purfectviewgtk: clipboard unavailable")
	}
	c.cb.SetText(text)
	return nil
}

func (c *gtkClipboard) ReadText() (string, error) {
	if c.cb == nil {
		return "", fmt.Errorf("purfectviewgtk: clipboard unavailable")
	}
	return c.cb.WaitForText()
}

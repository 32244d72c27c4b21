package purfectview

// Cell is the view of a single character cell that the coordination
// layer needs. Styling attributes stay inside the engine; the front-end
// only cares about the character itself and wide-character continuation
// cells, which selection and text extraction must skip.
type Cell struct {
	Char   rune
	Filler bool
}

// Cursor describes the engine's cursor position on the live screen.
type Cursor struct {
	X       int
	Y       int
	Visible bool
}

// DEC private modes the coordination layer queries from the engine.
const (
	// ModeApplicationCursor switches arrow keys from CSI to SS3 encoding.
	ModeApplicationCursor = 1
	// ModeBracketedPaste wraps pasted text in ESC[200~ .. ESC[201~.
	ModeBracketedPaste = 2004
)

// Engine is the external screen-grid engine this layer coordinates: a
// parser/grid that owns the live screen, the scrollback ring, the
// cursor, terminal modes, and key encoding. Implementations must be
// safe for use from the goroutine that drives the Terminal.
type Engine interface {
	// GetSize returns the live screen dimensions in cells.
	GetSize() (cols, rows int)

	// GetLine returns the cells of a live screen row. Rows out of
	// range return nil.
	GetLine(row int) []Cell

	// GetScrollbackLine returns the cells of a scrollback row.
	// Index 0 is the oldest retained line.
	GetScrollbackLine(index int) []Cell

	// GetScrollbackSize returns the number of retained scrollback lines.
	GetScrollbackSize() int

	// GetCursor returns the cursor position on the live screen.
	GetCursor() Cursor

	// GetMode reports whether a DEC private mode is currently set.
	GetMode(mode int) bool

	// IsRowDirty reports whether a live screen row changed since the
	// last ClearDirty.
	IsRowDirty(row int) bool

	// ClearDirty resets all row dirty flags. Called once per frame
	// after the renderer has consumed them.
	ClearDirty()

	// Feed routes bytes from the remote process into the engine's
	// parser.
	Feed(data []byte)

	// EncodeKey translates an abstract key plus modifiers into the
	// byte sequence to send to the remote process. An error means the
	// combination has no encoding.
	EncodeKey(req KeyRequest) ([]byte, error)
}

// KeyRequest is the input to Engine.EncodeKey.
type KeyRequest struct {
	Key       Key
	Modifiers Modifiers

	// Hint is the lower-cased base character for character keys
	// (KeyChar), 0 otherwise.
	Hint rune

	// AppCursor carries the engine's application cursor mode, sampled
	// by the coordinator just before encoding.
	AppCursor bool
}

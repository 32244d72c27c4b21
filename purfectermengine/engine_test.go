package purfectermengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phroun/purfectview"
)

func lineText(line []purfectview.Cell) string {
	out := make([]rune, 0, len(line))
	for _, c := range line {
		if c.Filler || c.Char == 0 {
			continue
		}
		out = append(out, c.Char)
	}
	return string(out)
}

func TestEngineFeedAndGetLine(t *testing.T) {
	e := New(20, 4, 100)

	e.Feed([]byte("hello"))

	line := e.GetLine(0)
	require.Len(t, line, 20)
	assert.Equal(t, "hello", lineText(line))

	cur := e.GetCursor()
	assert.Equal(t, 5, cur.X)
	assert.Equal(t, 0, cur.Y)
	assert.True(t, cur.Visible)
}

func TestEngineGetLineOutOfRange(t *testing.T) {
	e := New(20, 4, 100)
	assert.Nil(t, e.GetLine(-1))
	assert.Nil(t, e.GetLine(4))
}

func TestEngineScrollback(t *testing.T) {
	e := New(20, 4, 100)

	// Six lines through a four-row screen push the first two into
	// scrollback.
	e.Feed([]byte("l1\r\nl2\r\nl3\r\nl4\r\nl5\r\nl6"))

	require.Equal(t, 2, e.GetScrollbackSize())
	assert.Equal(t, "l1", lineText(e.GetScrollbackLine(0)))
	assert.Equal(t, "l2", lineText(e.GetScrollbackLine(1)))
	assert.Nil(t, e.GetScrollbackLine(2))
	assert.Equal(t, "l3", lineText(e.GetLine(0)))
}

func TestEngineBracketedPasteMode(t *testing.T) {
	e := New(20, 4, 100)

	assert.False(t, e.GetMode(purfectview.ModeBracketedPaste))
	e.Feed([]byte("\x1b[?2004h"))
	assert.True(t, e.GetMode(purfectview.ModeBracketedPaste))
	e.Feed([]byte("\x1b[?2004l"))
	assert.False(t, e.GetMode(purfectview.ModeBracketedPaste))
}

func TestEngineApplicationCursor(t *testing.T) {
	e := New(20, 4, 100)

	assert.False(t, e.GetMode(purfectview.ModeApplicationCursor))
	e.SetApplicationCursor(true)
	assert.True(t, e.GetMode(purfectview.ModeApplicationCursor))
}

func TestEngineDirtyTracking(t *testing.T) {
	e := New(20, 4, 100)

	e.Feed([]byte("x"))
	assert.True(t, e.IsRowDirty(0))

	e.ClearDirty()
	assert.False(t, e.IsRowDirty(0))

	e.Feed([]byte("y"))
	assert.True(t, e.IsRowDirty(0))
}

func TestEngineResize(t *testing.T) {
	e := New(20, 4, 100)
	e.Resize(40, 10)
	cols, rows := e.GetSize()
	assert.Equal(t, 40, cols)
	assert.Equal(t, 10, rows)
}

func TestEngineEncodeKey(t *testing.T) {
	e := New(20, 4, 100)
	seq, err := e.EncodeKey(purfectview.KeyRequest{Key: purfectview.KeyEnter})
	require.NoError(t, err)
	assert.Equal(t, []byte("\r"), seq)
}

func TestMarkFillers(t *testing.T) {
	line := []purfectview.Cell{
		{Char: '漢'}, {Char: 0}, {Char: 'x'}, {Char: 0},
	}
	markFillers(line)

	assert.True(t, line[1].Filler)
	assert.Equal(t, 'x', line[2].Char)
	assert.False(t, line[3].Filler)
}

package purfectview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeXtermKeySpecial(t *testing.T) {
	tests := []struct {
		name string
		req  KeyRequest
		want string
	}{
		{"enter", KeyRequest{Key: KeyEnter}, "\r"},
		{"enter ctrl", KeyRequest{Key: KeyEnter, Modifiers: ModCtrl}, "\x1b[13;5u"},
		{"tab", KeyRequest{Key: KeyTab}, "\t"},
		{"tab shift", KeyRequest{Key: KeyTab, Modifiers: ModShift}, "\t"},
		{"tab alt", KeyRequest{Key: KeyTab, Modifiers: ModAlt}, "\x1b[9;3u"},
		{"backspace", KeyRequest{Key: KeyBackspace}, "\x7f"},
		{"backspace ctrl", KeyRequest{Key: KeyBackspace, Modifiers: ModCtrl}, "\x08"},
		{"backspace alt", KeyRequest{Key: KeyBackspace, Modifiers: ModAlt}, "\x1b\x7f"},
		{"escape", KeyRequest{Key: KeyEscape}, "\x1b"},
		{"escape shift", KeyRequest{Key: KeyEscape, Modifiers: ModShift}, "\x1b[27;2u"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeXtermKey(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestEncodeXtermKeyCursor(t *testing.T) {
	tests := []struct {
		name string
		req  KeyRequest
		want string
	}{
		{"up", KeyRequest{Key: KeyUp}, "\x1b[A"},
		{"up app cursor", KeyRequest{Key: KeyUp, AppCursor: true}, "\x1bOA"},
		{"down", KeyRequest{Key: KeyDown}, "\x1b[B"},
		{"left ctrl", KeyRequest{Key: KeyLeft, Modifiers: ModCtrl}, "\x1b[1;5D"},
		{"right shift app", KeyRequest{Key: KeyRight, Modifiers: ModShift, AppCursor: true}, "\x1b[1;2C"},
		{"home", KeyRequest{Key: KeyHome}, "\x1b[H"},
		{"home app cursor", KeyRequest{Key: KeyHome, AppCursor: true}, "\x1bOH"},
		{"end alt", KeyRequest{Key: KeyEnd, Modifiers: ModAlt}, "\x1b[1;3F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeXtermKey(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestEncodeXtermKeyTildeAndFunction(t *testing.T) {
	tests := []struct {
		name string
		req  KeyRequest
		want string
	}{
		{"page up", KeyRequest{Key: KeyPageUp}, "\x1b[5~"},
		{"page up shift", KeyRequest{Key: KeyPageUp, Modifiers: ModShift}, "\x1b[5;2~"},
		{"insert", KeyRequest{Key: KeyInsert}, "\x1b[2~"},
		{"delete ctrl", KeyRequest{Key: KeyDelete, Modifiers: ModCtrl}, "\x1b[3;5~"},
		{"f1", KeyRequest{Key: KeyF1}, "\x1bOP"},
		{"f1 shift", KeyRequest{Key: KeyF1, Modifiers: ModShift}, "\x1b[1;2P"},
		{"f5", KeyRequest{Key: KeyF5}, "\x1b[15~"},
		{"f12 ctrl", KeyRequest{Key: KeyF12, Modifiers: ModCtrl}, "\x1b[24;5~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeXtermKey(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestEncodeXtermKeyChar(t *testing.T) {
	tests := []struct {
		name string
		req  KeyRequest
		want string
	}{
		{"ctrl a", KeyRequest{Key: KeyChar, Modifiers: ModCtrl, Hint: 'a'}, "\x01"},
		{"ctrl z", KeyRequest{Key: KeyChar, Modifiers: ModCtrl, Hint: 'z'}, "\x1a"},
		{"ctrl space", KeyRequest{Key: KeyChar, Modifiers: ModCtrl, Hint: ' '}, "\x00"},
		{"ctrl bracket", KeyRequest{Key: KeyChar, Modifiers: ModCtrl, Hint: '['}, "\x1b"},
		{"ctrl backslash", KeyRequest{Key: KeyChar, Modifiers: ModCtrl, Hint: '\\'}, "\x1c"},
		{"ctrl 2 NUL", KeyRequest{Key: KeyChar, Modifiers: ModCtrl, Hint: '2'}, "\x00"},
		{"ctrl 8 DEL", KeyRequest{Key: KeyChar, Modifiers: ModCtrl, Hint: '8'}, "\x7f"},
		{"alt x", KeyRequest{Key: KeyChar, Modifiers: ModAlt, Hint: 'x'}, "\x1bx"},
		{"ctrl shift c kitty", KeyRequest{Key: KeyChar, Modifiers: ModCtrl | ModShift, Hint: 'c'}, "\x1b[99;6u"},
		{"meta a kitty", KeyRequest{Key: KeyChar, Modifiers: ModMeta, Hint: 'a'}, "\x1b[97;9u"},
		{"ctrl comma kitty", KeyRequest{Key: KeyChar, Modifiers: ModCtrl, Hint: ','}, "\x1b[44;5u"},
		{"ctrl alt f kitty", KeyRequest{Key: KeyChar, Modifiers: ModCtrl | ModAlt, Hint: 'f'}, "\x1b[102;7u"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeXtermKey(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestEncodeXtermKeyErrors(t *testing.T) {
	_, err := EncodeXtermKey(KeyRequest{Key: KeyNone})
	assert.Error(t, err)

	_, err = EncodeXtermKey(KeyRequest{Key: KeyChar, Modifiers: ModCtrl})
	assert.Error(t, err, "character key without hint has no encoding")
}

func TestModifiersXtermParam(t *testing.T) {
	assert.Equal(t, 1, Modifiers(0).XtermParam())
	assert.Equal(t, 2, ModShift.XtermParam())
	assert.Equal(t, 3, ModAlt.XtermParam())
	assert.Equal(t, 5, ModCtrl.XtermParam())
	assert.Equal(t, 9, ModMeta.XtermParam())
	assert.Equal(t, 8, (ModShift | ModAlt | ModCtrl).XtermParam())
	assert.Equal(t, 16, (ModShift | ModAlt | ModCtrl | ModMeta).XtermParam())
}

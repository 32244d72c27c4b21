package purfectview

// Clipboard abstracts a host clipboard. Hosts provide an
// implementation; a second one can serve as a fallback when the
// primary write path is unavailable (focus rules, platform quirks).
type Clipboard interface {
	WriteText(text string) error
	ReadText() (string, error)
}

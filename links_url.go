package purfectview

import (
	"regexp"
	"strings"
)

// urlPattern matches http and https URLs. Trailing punctuation that is
// more likely prose than URL is trimmed after matching.
var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

const urlTrimSet = `.,;:!?'"` + "`" + `)]}>`

// URLLinkProvider detects http and https URLs in terminal lines. It is
// the stock LinkProvider for hosts without their own detection; lookups
// complete synchronously.
type URLLinkProvider struct{}

// NewURLLinkProvider returns a provider recognizing http/https URLs.
func NewURLLinkProvider() *URLLinkProvider {
	return &URLLinkProvider{}
}

// LookupLink implements LinkProvider.
func (p *URLLinkProvider) LookupLink(x, viewRow int, line []Cell, report func(*Link)) {
	text, cols := flattenLine(line)
	s := string(text)

	for _, m := range urlPattern.FindAllStringIndex(s, -1) {
		url := strings.TrimRight(s[m[0]:m[1]], urlTrimSet)
		if url == "" {
			continue
		}
		start := len([]rune(s[:m[0]]))
		end := start + len([]rune(url)) - 1

		startX := cols[start]
		endX := cellSpanEnd(cols, line, end)
		if x < startX || x > endX {
			continue
		}
		report(&Link{
			URL:    url,
			StartX: startX,
			EndX:   endX,
			Row:    viewRow,
		})
		return
	}
	report(nil)
}

// flattenLine extracts the rune content of a line along with the
// display column each rune starts at. Fillers belong to the preceding
// wide rune and produce no rune of their own.
func flattenLine(line []Cell) ([]rune, []int) {
	text := make([]rune, 0, len(line))
	cols := make([]int, 0, len(line))
	for i, cell := range line {
		if cell.Filler {
			continue
		}
		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}
		text = append(text, ch)
		cols = append(cols, i)
	}
	return text, cols
}

// cellSpanEnd returns the last display column of the rune at index i,
// extending over any trailing filler cell.
func cellSpanEnd(cols []int, line []Cell, i int) int {
	end := cols[i]
	for end+1 < len(line) && line[end+1].Filler {
		end++
	}
	return end
}

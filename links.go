package purfectview

import (
	"sync"
	"time"
)

// Link is a detected hyperlink under the pointer, spanning cells
// StartX..EndX of a viewport row.
type Link struct {
	URL    string
	StartX int
	EndX   int
	Row    int
}

// LinkProvider detects links under a cell. The lookup may complete
// asynchronously; report must be called exactly once, with nil when no
// link is present. Late reports are discarded if the pointer has moved
// on.
type LinkProvider interface {
	LookupLink(x, viewRow int, line []Cell, report func(*Link))
}

// linkHover throttles pointer-move link lookups and keeps only the
// result of the newest one. Mouse moves arrive far faster than lookups
// are worth running; at most one lookup starts per throttle interval
// and the latest position seen in between is retained and replayed.
type linkHover struct {
	mu       sync.Mutex
	provider LinkProvider
	vp       *Viewport
	throttle time.Duration
	onChange func(*Link)

	lastLookup time.Time
	pendingX   int
	pendingY   int
	hasPending bool
	seq        uint64
	current    *Link
	disposed   bool
}

// HandleMove processes a pointer move over the content area.
func (h *linkHover) HandleMove(x, viewRow int, now time.Time) {
	if h == nil || h.provider == nil {
		return
	}
	h.mu.Lock()
	if h.disposed {
		h.mu.Unlock()
		return
	}
	if now.Sub(h.lastLookup) < h.throttle {
		h.pendingX, h.pendingY = x, viewRow
		h.hasPending = true
		h.mu.Unlock()
		return
	}
	h.lastLookup = now
	h.hasPending = false
	seq := h.nextSeqLocked()
	h.mu.Unlock()

	h.lookup(x, viewRow, seq)
}

// Flush runs the retained pending move once the throttle interval has
// passed. Called from the frame loop.
func (h *linkHover) Flush(now time.Time) {
	if h == nil || h.provider == nil {
		return
	}
	h.mu.Lock()
	if h.disposed || !h.hasPending || now.Sub(h.lastLookup) < h.throttle {
		h.mu.Unlock()
		return
	}
	x, y := h.pendingX, h.pendingY
	h.hasPending = false
	h.lastLookup = now
	seq := h.nextSeqLocked()
	h.mu.Unlock()

	h.lookup(x, y, seq)
}

// Leave clears the hover state when the pointer leaves the content
// area.
func (h *linkHover) Leave() {
	if h == nil {
		return
	}
	h.mu.Lock()
	if h.disposed {
		h.mu.Unlock()
		return
	}
	h.hasPending = false
	h.nextSeqLocked()
	changed := h.current != nil
	h.current = nil
	onChange := h.onChange
	h.mu.Unlock()

	if changed && onChange != nil {
		onChange(nil)
	}
}

// Current returns the link under the pointer, if any.
func (h *linkHover) Current() *Link {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// HoverRow returns the viewport row of the hovered link, or -1.
func (h *linkHover) HoverRow() int {
	if l := h.Current(); l != nil {
		return l.Row
	}
	return -1
}

func (h *linkHover) Dispose() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disposed = true
	h.current = nil
	h.hasPending = false
}

// nextSeqLocked invalidates any lookup still in flight.
func (h *linkHover) nextSeqLocked() uint64 {
	h.seq++
	return h.seq
}

func (h *linkHover) lookup(x, viewRow int, seq uint64) {
	line := h.vp.LineAt(viewRow)
	h.provider.LookupLink(x, viewRow, line, func(l *Link) {
		h.mu.Lock()
		// A completion is only relevant while it is still the newest
		// lookup; the pointer may have moved or the hover been disposed.
		if h.disposed || seq != h.seq {
			h.mu.Unlock()
			return
		}
		changed := !sameLink(h.current, l)
		h.current = l
		onChange := h.onChange
		h.mu.Unlock()

		if changed && onChange != nil {
			onChange(l)
		}
	})
}

func sameLink(a, b *Link) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

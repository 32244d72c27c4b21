package purfectview

import (
	"math"
	"sync"
	"time"
)

type scrollbarState int

const (
	scrollbarHidden scrollbarState = iota
	scrollbarFadingIn
	scrollbarVisible
	scrollbarFadingOut
)

// ScrollBar is the overlay scrollbar affordance: it appears when the
// viewport scrolls, stays for a fixed time, then fades out. It owns
// only presentation state (opacity, drag); the scroll position itself
// lives in the Viewport.
type ScrollBar struct {
	mu         sync.Mutex
	vp         *Viewport
	fadeIn     time.Duration
	fadeOut    time.Duration
	visibleFor time.Duration

	state    scrollbarState
	opacity  float64
	hideAt   time.Time
	lastStep time.Time

	dragging        bool
	dragStart       float64
	dragStartOffset int
}

// Poke makes the scrollbar visible (fading in if hidden) and restarts
// its visibility timer. Called on every scroll activity.
func (s *ScrollBar) Poke(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pokeLocked(now)
}

func (s *ScrollBar) pokeLocked(now time.Time) {
	s.hideAt = now.Add(s.visibleFor)
	switch s.state {
	case scrollbarHidden, scrollbarFadingOut:
		s.state = scrollbarFadingIn
		s.lastStep = now
	case scrollbarVisible, scrollbarFadingIn:
		// Timer restarted above; fade-in keeps its progress.
	}
}

// Step advances fade animations. Returns true when the opacity changed
// and a redraw is needed.
func (s *ScrollBar) Step(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case scrollbarHidden:
		return false

	case scrollbarFadingIn:
		dt := now.Sub(s.lastStep)
		s.lastStep = now
		if s.fadeIn <= 0 {
			s.opacity = 1
		} else {
			s.opacity += float64(dt) / float64(s.fadeIn)
		}
		if s.opacity >= 1 {
			s.opacity = 1
			s.state = scrollbarVisible
		}
		return true

	case scrollbarVisible:
		s.lastStep = now
		// A drag holds the scrollbar on screen.
		if s.dragging {
			s.hideAt = now.Add(s.visibleFor)
			return false
		}
		if now.Before(s.hideAt) {
			return false
		}
		s.state = scrollbarFadingOut
		return false

	case scrollbarFadingOut:
		dt := now.Sub(s.lastStep)
		s.lastStep = now
		if s.fadeOut <= 0 {
			s.opacity = 0
		} else {
			s.opacity -= float64(dt) / float64(s.fadeOut)
		}
		if s.opacity <= 0 {
			s.opacity = 0
			s.state = scrollbarHidden
		}
		return true
	}
	return false
}

// GetOpacity returns the current overlay opacity in [0, 1].
func (s *ScrollBar) GetOpacity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opacity
}

// IsDragging reports whether a thumb drag is in progress. Text
// selection is suspended while it is.
func (s *ScrollBar) IsDragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging
}

// ThumbRect returns the thumb position and length along a track of the
// given length, in the same units. The thumb length is proportional to
// the visible share of total content; offset 0 puts it at the bottom
// (end) of the track.
func (s *ScrollBar) ThumbRect(trackLen float64) (pos, length float64) {
	_, rows := s.vp.engine.GetSize()
	sb := s.vp.engine.GetScrollbackSize()
	total := rows + sb
	if total <= 0 || rows <= 0 {
		return 0, trackLen
	}
	length = trackLen * float64(rows) / float64(total)
	if sb == 0 {
		return 0, trackLen
	}
	travel := trackLen - length
	frac := s.vp.GetOffset() / float64(sb)
	pos = travel * (1 - frac)
	return pos, length
}

// HandlePress handles a pointer press inside the scrollbar gutter at
// the given position along the track. A press on the thumb starts a
// drag; a press elsewhere on the track jumps there and then drags.
// Returns true when the press was consumed.
func (s *ScrollBar) HandlePress(pos, trackLen float64, now time.Time) bool {
	if trackLen <= 0 {
		return false
	}
	thumbPos, thumbLen := s.ThumbRect(trackLen)

	if pos < thumbPos || pos > thumbPos+thumbLen {
		// Track jump: center the thumb on the press point.
		s.vp.ScrollToLine(s.offsetForThumb(pos-thumbLen/2, trackLen))
	}

	s.mu.Lock()
	s.dragging = true
	s.dragStart = pos
	s.dragStartOffset = s.vp.GetRow()
	s.pokeLocked(now)
	s.mu.Unlock()
	return true
}

// HandleMove updates a drag in progress.
func (s *ScrollBar) HandleMove(pos, trackLen float64, now time.Time) {
	s.mu.Lock()
	if !s.dragging {
		s.mu.Unlock()
		return
	}
	start := s.dragStart
	startOffset := s.dragStartOffset
	s.pokeLocked(now)
	s.mu.Unlock()

	_, thumbLen := s.ThumbRect(trackLen)
	travel := trackLen - thumbLen
	sb := s.vp.engine.GetScrollbackSize()
	if travel <= 0 || sb == 0 {
		return
	}
	// Pointer movement down the track reduces the offset.
	delta := (pos - start) / travel * float64(sb)
	s.vp.ScrollToLine(startOffset - int(math.Round(delta)))
}

// HandleRelease ends a drag.
func (s *ScrollBar) HandleRelease() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = false
}

// offsetForThumb converts a desired thumb position to a scroll offset.
func (s *ScrollBar) offsetForThumb(thumbPos, trackLen float64) int {
	_, thumbLen := s.ThumbRect(trackLen)
	travel := trackLen - thumbLen
	sb := s.vp.engine.GetScrollbackSize()
	if travel <= 0 || sb == 0 {
		return 0
	}
	frac := 1 - thumbPos/travel
	return int(math.Round(frac * float64(sb)))
}

package purfectview

import (
	"math"
	"sync"
	"time"
)

const (
	// scrollEpsilon is the remaining distance below which an animation
	// snaps to its target.
	scrollEpsilon = 0.05

	// scrollConvergeRatio is the fraction of the start distance still
	// remaining when the configured duration has fully elapsed. Small
	// enough that the epsilon snap lands within the duration.
	scrollConvergeRatio = 0.002
)

// ContentPos identifies a content line: either a scrollback line
// (index 0 = oldest) or a live screen row.
type ContentPos struct {
	Scrollback bool
	Index      int
}

// Viewport owns the vertical scroll position over live screen plus
// scrollback. The offset counts lines scrolled back from the live tail
// and is fractional while a smooth scroll is in flight; every consumer
// of a row position sees the floored value.
type Viewport struct {
	mu        sync.Mutex
	engine    Engine
	duration  time.Duration
	offset    float64
	target    float64
	animating bool
	lastStep  time.Time

	lastNotified int
	notify       func(offset int)
}

// GetOffset returns the current offset, including any fractional part
// from an in-flight animation.
func (v *Viewport) GetOffset() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

// GetRow returns the floored offset, the value all row mapping uses.
func (v *Viewport) GetRow() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return int(math.Floor(v.offset))
}

// GetMaxOffset returns the current scroll limit. Re-queried from the
// engine on every call since scrollback grows and shrinks underneath us.
func (v *Viewport) GetMaxOffset() int {
	return v.engine.GetScrollbackSize()
}

// Destination returns where the offset is headed: the in-flight
// animation target, or the offset itself when settled.
func (v *Viewport) Destination() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.animating {
		return v.target
	}
	return v.offset
}

// IsAnimating reports whether a smooth scroll is in flight.
func (v *Viewport) IsAnimating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.animating
}

// IsScrolledBack reports whether any scrollback is in view.
func (v *Viewport) IsScrolledBack() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset > 0
}

// ScrollLines scrolls immediately by n lines (positive = into history).
func (v *Viewport) ScrollLines(n int) {
	v.mu.Lock()
	settled := int(math.Floor(v.offset))
	fire := v.setLocked(float64(settled + n))
	v.mu.Unlock()
	v.fire(fire)
}

// ScrollPages scrolls immediately by n screen heights.
func (v *Viewport) ScrollPages(n int) {
	_, rows := v.engine.GetSize()
	v.ScrollLines(n * rows)
}

// ScrollToTop jumps to the oldest retained line.
func (v *Viewport) ScrollToTop() {
	v.ScrollToLine(v.GetMaxOffset())
}

// ScrollToBottom jumps back to the live tail.
func (v *Viewport) ScrollToBottom() {
	v.ScrollToLine(0)
}

// ScrollToLine jumps to an absolute offset.
func (v *Viewport) ScrollToLine(offset int) {
	v.mu.Lock()
	fire := v.setLocked(float64(offset))
	v.mu.Unlock()
	v.fire(fire)
}

// SmoothScrollTo animates toward the given offset. If an animation is
// already in flight only its destination changes; the motion continues
// from the current position without restarting.
func (v *Viewport) SmoothScrollTo(target float64) {
	if v.duration <= 0 {
		v.ScrollToLine(int(math.Round(target)))
		return
	}
	v.mu.Lock()
	v.target = v.clampLocked(target)
	if !v.animating && v.target != v.offset {
		v.animating = true
		v.lastStep = time.Time{}
	}
	v.mu.Unlock()
}

// SmoothScrollBy animates by a relative number of lines, measured from
// the in-flight destination when one exists so that successive wheel
// notches accumulate.
func (v *Viewport) SmoothScrollBy(lines float64) {
	v.mu.Lock()
	base := v.offset
	if v.animating {
		base = v.target
	}
	v.mu.Unlock()
	v.SmoothScrollTo(base + lines)
}

// Step advances the animation to the given time. Each step covers a
// fraction of the remaining distance derived from the configured
// duration, so motion eases out and never overshoots. Returns true
// while the offset is still changing.
func (v *Viewport) Step(now time.Time) bool {
	v.mu.Lock()
	if !v.animating {
		v.mu.Unlock()
		return false
	}
	if v.lastStep.IsZero() {
		v.lastStep = now
		v.mu.Unlock()
		return true
	}
	dt := now.Sub(v.lastStep)
	v.lastStep = now

	remaining := v.target - v.offset
	if math.Abs(remaining) < scrollEpsilon {
		v.offset = v.target
		v.animating = false
	} else {
		decay := math.Pow(scrollConvergeRatio, float64(dt)/float64(v.duration))
		v.offset = v.target - remaining*decay
		if math.Abs(v.target-v.offset) < scrollEpsilon {
			v.offset = v.target
			v.animating = false
		}
	}
	fire := v.notifyLocked()
	v.mu.Unlock()
	v.fire(fire)
	return true
}

// NotifyOutput snaps back to the live tail when new output arrives
// while scrolled back. At most one notification fires for the snap.
func (v *Viewport) NotifyOutput() {
	v.mu.Lock()
	if v.offset == 0 && !v.animating {
		v.mu.Unlock()
		return
	}
	v.offset = 0
	v.target = 0
	v.animating = false
	fire := v.notifyLocked()
	v.mu.Unlock()
	v.fire(fire)
}

// ContentPosition maps a viewport row to the content line it shows at
// the current (floored) offset.
func (v *Viewport) ContentPosition(viewRow int) ContentPos {
	floored := v.GetRow()
	if viewRow < floored {
		sb := v.engine.GetScrollbackSize()
		return ContentPos{Scrollback: true, Index: sb - floored + viewRow}
	}
	return ContentPos{Index: viewRow - floored}
}

// LineAt returns the cells of the content line a viewport row shows.
func (v *Viewport) LineAt(viewRow int) []Cell {
	pos := v.ContentPosition(viewRow)
	if pos.Scrollback {
		return v.engine.GetScrollbackLine(pos.Index)
	}
	return v.engine.GetLine(pos.Index)
}

// setLocked clamps and applies an immediate scroll, cancelling any
// animation. Returns the notification to fire, if any.
func (v *Viewport) setLocked(offset float64) (fire func()) {
	offset = v.clampLocked(offset)
	v.offset = offset
	v.target = offset
	v.animating = false
	return v.notifyLocked()
}

func (v *Viewport) clampLocked(offset float64) float64 {
	if offset < 0 {
		return 0
	}
	max := float64(v.engine.GetScrollbackSize())
	if offset > max {
		return max
	}
	return offset
}

// notifyLocked arms a notification when the floored offset moved since
// the last one. The returned func must be called after unlocking.
func (v *Viewport) notifyLocked() func() {
	floored := int(math.Floor(v.offset))
	if floored == v.lastNotified || v.notify == nil {
		return nil
	}
	v.lastNotified = floored
	notify := v.notify
	return func() { notify(floored) }
}

func (v *Viewport) fire(fn func()) {
	if fn != nil {
		fn()
	}
}

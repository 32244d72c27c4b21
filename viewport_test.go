package purfectview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrolledEngine(scrollback int) *fakeEngine {
	e := newFakeEngine(80, 24)
	for i := 0; i < scrollback; i++ {
		e.pushScrollback("old line")
	}
	return e
}

func TestViewportClamping(t *testing.T) {
	v, _ := newTestViewport(scrolledEngine(50), 0)

	v.ScrollToLine(200)
	assert.Equal(t, 50, v.GetRow())

	v.ScrollLines(-300)
	assert.Equal(t, 0, v.GetRow())

	v.ScrollToTop()
	assert.Equal(t, 50, v.GetRow())

	v.ScrollToBottom()
	assert.Equal(t, 0, v.GetRow())
}

func TestViewportImmediateNotifiesOnlyOnChange(t *testing.T) {
	v, notified := newTestViewport(scrolledEngine(50), 0)

	v.ScrollToBottom()
	assert.Empty(t, *notified, "already settled at 0")

	v.ScrollLines(10)
	v.ScrollLines(0)
	v.ScrollToLine(10)
	assert.Equal(t, []int{10}, *notified)
}

func TestViewportScrollPages(t *testing.T) {
	v, _ := newTestViewport(scrolledEngine(100), 0)

	v.ScrollPages(2)
	assert.Equal(t, 48, v.GetRow())
	v.ScrollPages(-1)
	assert.Equal(t, 24, v.GetRow())
}

func TestViewportZeroDurationJumps(t *testing.T) {
	v, _ := newTestViewport(scrolledEngine(50), 0)

	v.SmoothScrollTo(20)
	assert.Equal(t, 20, v.GetRow())
	assert.False(t, v.IsAnimating())
}

func TestViewportSmoothScrollConverges(t *testing.T) {
	v, notified := newTestViewport(scrolledEngine(100), 120*time.Millisecond)
	now := time.Unix(0, 0)

	v.SmoothScrollTo(40)
	require.True(t, v.IsAnimating())

	prev := 0.0
	for i := 0; i < 120 && v.IsAnimating(); i++ {
		now = now.Add(16 * time.Millisecond)
		v.Step(now)
		cur := v.GetOffset()
		assert.GreaterOrEqual(t, cur, prev, "motion toward target is monotonic")
		assert.LessOrEqual(t, cur, 40.0, "never overshoots")
		prev = cur
	}

	assert.False(t, v.IsAnimating())
	assert.Equal(t, 40.0, v.GetOffset(), "snaps exactly onto the target")

	// Notifications fire once per line crossed, in order.
	require.NotEmpty(t, *notified)
	last := 0
	for _, off := range *notified {
		assert.Greater(t, off, last)
		last = off
	}
	assert.Equal(t, 40, last)
}

func TestViewportFlooredReads(t *testing.T) {
	v, _ := newTestViewport(scrolledEngine(100), 120*time.Millisecond)
	now := time.Unix(0, 0)

	v.SmoothScrollTo(10)
	v.Step(now)
	v.Step(now.Add(16 * time.Millisecond))

	off := v.GetOffset()
	require.Greater(t, off, 0.0)
	require.Less(t, off, 10.0)
	assert.Equal(t, int(off), v.GetRow(), "row mapping sees the floor")
}

func TestViewportRetargetWithoutRestart(t *testing.T) {
	v, _ := newTestViewport(scrolledEngine(100), 120*time.Millisecond)
	now := time.Unix(0, 0)

	v.SmoothScrollTo(30)
	v.Step(now)
	now = now.Add(40 * time.Millisecond)
	v.Step(now)
	mid := v.GetOffset()
	require.Greater(t, mid, 0.0)

	// Retarget mid-flight: motion continues from the current position.
	v.SmoothScrollTo(60)
	now = now.Add(16 * time.Millisecond)
	v.Step(now)
	assert.Greater(t, v.GetOffset(), mid)
	assert.True(t, v.IsAnimating())
}

func TestViewportWheelAccumulates(t *testing.T) {
	v, _ := newTestViewport(scrolledEngine(100), 120*time.Millisecond)

	v.SmoothScrollBy(3)
	v.SmoothScrollBy(3)
	v.SmoothScrollBy(3)

	v.mu.Lock()
	target := v.target
	v.mu.Unlock()
	assert.Equal(t, 9.0, target, "notches accumulate on the destination")
}

func TestViewportOutputSnapsToTail(t *testing.T) {
	v, notified := newTestViewport(scrolledEngine(100), 0)

	v.ScrollToLine(30)
	require.Equal(t, []int{30}, *notified)

	v.NotifyOutput()
	assert.Equal(t, 0.0, v.GetOffset())
	assert.Equal(t, []int{30, 0}, *notified, "the snap notifies exactly once")

	v.NotifyOutput()
	assert.Equal(t, []int{30, 0}, *notified, "already at the tail: no notification")
}

func TestViewportOutputCancelsAnimation(t *testing.T) {
	v, _ := newTestViewport(scrolledEngine(100), 120*time.Millisecond)

	v.SmoothScrollTo(50)
	v.Step(time.Unix(0, 0))
	v.NotifyOutput()

	assert.False(t, v.IsAnimating())
	assert.Equal(t, 0.0, v.GetOffset())
}

func TestViewportContentPosition(t *testing.T) {
	e := scrolledEngine(10)
	v, _ := newTestViewport(e, 0)

	// At the live tail every row is a live row.
	assert.Equal(t, ContentPos{Index: 0}, v.ContentPosition(0))
	assert.Equal(t, ContentPos{Index: 23}, v.ContentPosition(23))

	// Scrolled back 4 lines: the top 4 rows show the newest scrollback.
	v.ScrollToLine(4)
	assert.Equal(t, ContentPos{Scrollback: true, Index: 6}, v.ContentPosition(0))
	assert.Equal(t, ContentPos{Scrollback: true, Index: 9}, v.ContentPosition(3))
	assert.Equal(t, ContentPos{Index: 0}, v.ContentPosition(4))
	assert.Equal(t, ContentPos{Index: 19}, v.ContentPosition(23))
}

func TestViewportMaxOffsetTracksEngine(t *testing.T) {
	e := scrolledEngine(5)
	v, _ := newTestViewport(e, 0)

	v.ScrollToTop()
	assert.Equal(t, 5, v.GetRow())

	// Scrollback grows: the limit is re-queried, not cached.
	e.pushScrollback("more")
	v.ScrollToTop()
	assert.Equal(t, 6, v.GetRow())
}

package purfectview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingProvider resolves lookups on demand so tests can interleave
// completions with pointer movement.
type recordingProvider struct {
	lookups []func(*Link)
	cells   []int
}

func (p *recordingProvider) LookupLink(x, viewRow int, line []Cell, report func(*Link)) {
	p.cells = append(p.cells, x)
	p.lookups = append(p.lookups, report)
}

func (p *recordingProvider) resolve(i int, l *Link) {
	p.lookups[i](l)
}

// immediateProvider reports a link for every cell synchronously.
type immediateProvider struct {
	link *Link
}

func (p *immediateProvider) LookupLink(x, viewRow int, line []Cell, report func(*Link)) {
	report(p.link)
}

func newTestHover(p LinkProvider) (*linkHover, *[]*Link) {
	e := newFakeEngine(80, 24)
	v, _ := newTestViewport(e, 0)
	var changes []*Link
	h := &linkHover{
		provider: p,
		vp:       v,
		throttle: 16 * time.Millisecond,
	}
	h.onChange = func(l *Link) { changes = append(changes, l) }
	return h, &changes
}

func TestHoverReportsLink(t *testing.T) {
	link := &Link{URL: "https://example.com", StartX: 2, EndX: 20, Row: 5}
	h, changes := newTestHover(&immediateProvider{link: link})
	now := time.Unix(0, 0)

	h.HandleMove(5, 5, now)

	require.Len(t, *changes, 1)
	assert.Equal(t, link, (*changes)[0])
	assert.Equal(t, 5, h.HoverRow())
}

func TestHoverThrottleRetainsNewestMove(t *testing.T) {
	p := &recordingProvider{}
	h, _ := newTestHover(p)
	now := time.Unix(0, 0)

	h.HandleMove(1, 0, now)
	h.HandleMove(2, 0, now.Add(2*time.Millisecond))
	h.HandleMove(3, 0, now.Add(4*time.Millisecond))
	require.Equal(t, []int{1}, p.cells, "only the first move looks up immediately")

	// The throttle window passes: the newest retained move replays.
	h.Flush(now.Add(20 * time.Millisecond))
	assert.Equal(t, []int{1, 3}, p.cells)

	h.Flush(now.Add(40 * time.Millisecond))
	assert.Equal(t, []int{1, 3}, p.cells, "nothing pending: flush is a no-op")
}

func TestHoverStaleCompletionDiscarded(t *testing.T) {
	p := &recordingProvider{}
	h, changes := newTestHover(p)
	now := time.Unix(0, 0)

	h.HandleMove(1, 0, now)
	h.HandleMove(2, 0, now.Add(20*time.Millisecond))
	require.Len(t, p.lookups, 2)

	// The newer lookup completes first; the older one is then stale.
	p.resolve(1, &Link{URL: "https://new.example", Row: 0})
	p.resolve(0, &Link{URL: "https://old.example", Row: 0})

	require.Len(t, *changes, 1)
	assert.Equal(t, "https://new.example", h.Current().URL)
}

func TestHoverNoChangeNotificationForSameLink(t *testing.T) {
	link := &Link{URL: "https://example.com", StartX: 0, EndX: 10, Row: 3}
	h, changes := newTestHover(&immediateProvider{link: link})
	now := time.Unix(0, 0)

	h.HandleMove(2, 3, now)
	h.HandleMove(4, 3, now.Add(20*time.Millisecond))

	assert.Len(t, *changes, 1, "moving within the same link stays quiet")
}

func TestHoverLeaveClears(t *testing.T) {
	link := &Link{URL: "https://example.com", Row: 2}
	h, changes := newTestHover(&immediateProvider{link: link})

	h.HandleMove(0, 2, time.Unix(0, 0))
	h.Leave()

	assert.Nil(t, h.Current())
	assert.Equal(t, -1, h.HoverRow())
	require.Len(t, *changes, 2)
	assert.Nil(t, (*changes)[1])

	h.Leave()
	assert.Len(t, *changes, 2, "already cleared: no extra notification")
}

func TestHoverLeaveInvalidatesInFlightLookup(t *testing.T) {
	p := &recordingProvider{}
	h, changes := newTestHover(p)

	h.HandleMove(1, 0, time.Unix(0, 0))
	h.Leave()
	p.resolve(0, &Link{URL: "https://late.example", Row: 0})

	assert.Nil(t, h.Current())
	assert.Empty(t, *changes)
}

func TestHoverNilProviderIsInert(t *testing.T) {
	h := &linkHover{}
	h.HandleMove(1, 1, time.Unix(0, 0))
	h.Flush(time.Unix(1, 0))
	h.Leave()
	assert.Nil(t, h.Current())
	assert.Equal(t, -1, h.HoverRow())
}

func TestHoverAfterDispose(t *testing.T) {
	p := &recordingProvider{}
	h, changes := newTestHover(p)

	h.HandleMove(1, 0, time.Unix(0, 0))
	h.Dispose()
	p.resolve(0, &Link{URL: "https://example.com", Row: 0})

	assert.Nil(t, h.Current())
	assert.Empty(t, *changes)

	h.HandleMove(2, 0, time.Unix(1, 0))
	assert.Len(t, p.cells, 1, "disposed hover starts no lookups")
}

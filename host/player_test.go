package host

import (
	"testing"

	"github.com/phanxgames/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor(t *testing.T) *timeline.GraphProcessor {
	t.Helper()
	p, err := timeline.NewGraphProcessor(&timeline.TimelineGraph{Name: "intro", Length: 1}, timeline.Config{})
	require.NoError(t, err)
	return p
}

func fixedTPS(n int) func() int { return func() int { return n } }

func TestPlayerStep(t *testing.T) {
	pl := &Player{TickRate: fixedTPS(10)}
	assert.InDelta(t, 0.1, pl.Step(), 1e-12, "zero speed means 1")

	pl.Speed = 2
	assert.InDelta(t, 0.2, pl.Step(), 1e-12)

	pl.TickRate = fixedTPS(0)
	assert.Zero(t, pl.Step())
}

func TestPlayerUpdateAdvances(t *testing.T) {
	p := newProcessor(t)
	pl := NewPlayer(p)
	pl.TickRate = fixedTPS(4)

	require.NoError(t, pl.Update())
	assert.Zero(t, p.CurrentTime(), "inactive processor should not advance")

	require.NoError(t, p.PlayAll())
	require.NoError(t, pl.Update())
	assert.InDelta(t, 0.25, p.CurrentTime(), 1e-12)

	pl.Pause()
	assert.True(t, pl.Paused())
	require.NoError(t, pl.Update())
	assert.InDelta(t, 0.25, p.CurrentTime(), 1e-12)

	pl.Resume()
	for range 3 {
		require.NoError(t, pl.Update())
	}
	assert.False(t, p.Active(), "playback should stop at the end")
}

func TestPlayerUpdateDisposed(t *testing.T) {
	p := newProcessor(t)
	p.Dispose()
	assert.NoError(t, NewPlayer(p).Update())
	assert.NoError(t, (&Player{}).Update())
}

func TestGameLayoutAndStatus(t *testing.T) {
	p := newProcessor(t)
	pl := NewPlayer(p)
	g := &game{player: pl, cfg: RunConfig{Width: 320, Height: 200}}

	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)

	assert.Contains(t, g.status(), "stopped 0.00 / 1.00")
	require.NoError(t, p.PlayAll())
	assert.Contains(t, g.status(), "playing")
	pl.Pause()
	assert.Contains(t, g.status(), "paused")
}

package ecs

import (
	"testing"

	"github.com/phanxgames/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yohamta/donburi"
)

func newGraph() *timeline.TimelineGraph {
	return &timeline.TimelineGraph{
		Name:   "cutscene",
		Length: 4,
		Groups: []timeline.GroupModel{&timeline.Group{
			Name: "G",
			Tracks: []timeline.TrackModel{&timeline.Track{
				Name:  "T",
				Clips: []timeline.ClipModel{&timeline.Clip{Name: "C", StartTime: 1, Length: 1}},
			}},
		}},
	}
}

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	require.NotNil(t, NewDonburiSink(world))
}

func TestDonburiSink_EmitLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	p, err := timeline.NewGraphProcessor(newGraph(), timeline.Config{Sink: NewDonburiSink(world)})
	require.NoError(t, err)

	var received []timeline.LifecycleEvent
	LifecycleEventType.Subscribe(world, func(w donburi.World, e timeline.LifecycleEvent) {
		received = append(received, e)
	})

	p.Sample(1.5)
	assert.Empty(t, received, "events are queued until ProcessEvents")

	LifecycleEventType.ProcessEvents(world)
	require.NotEmpty(t, received)

	var clipEnter *timeline.LifecycleEvent
	for i := range received {
		if received[i].Name == "C" && received[i].Phase == timeline.PhaseEnter {
			clipEnter = &received[i]
		}
	}
	require.NotNil(t, clipEnter, "clip enter not forwarded")
	assert.Equal(t, "cutscene", clipEnter.Graph)
	assert.Equal(t, timeline.KindClip, clipEnter.Kind)
	assert.InDelta(t, 0.5, clipEnter.Inner.CurrentTime, 1e-9)
}

func TestAttachSetsOwner(t *testing.T) {
	world := donburi.NewWorld()
	p, err := timeline.NewGraphProcessor(newGraph(), timeline.Config{})
	require.NoError(t, err)

	entity := Attach(world, p, 2)
	require.True(t, world.Valid(entity))
	assert.Equal(t, entity, p.Owner())

	pb := PlaybackComponent.Get(world.Entry(entity))
	assert.Same(t, p, pb.Processor)
	assert.Equal(t, 2.0, pb.Speed)
}

func TestAdvanceAll(t *testing.T) {
	world := donburi.NewWorld()

	normal, err := timeline.NewGraphProcessor(newGraph(), timeline.Config{})
	require.NoError(t, err)
	fast, err := timeline.NewGraphProcessor(newGraph(), timeline.Config{})
	require.NoError(t, err)
	paused, err := timeline.NewGraphProcessor(newGraph(), timeline.Config{})
	require.NoError(t, err)
	idle, err := timeline.NewGraphProcessor(newGraph(), timeline.Config{})
	require.NoError(t, err)

	Attach(world, normal, 0)
	Attach(world, fast, 2)
	pausedEntity := Attach(world, paused, 1)
	PlaybackComponent.Get(world.Entry(pausedEntity)).Paused = true
	Attach(world, idle, 1)

	for _, p := range []*timeline.GraphProcessor{normal, fast, paused} {
		require.NoError(t, p.PlayAll())
	}

	n := AdvanceAll(world, 0.5)
	assert.Equal(t, 2, n)
	assert.InDelta(t, 0.5, normal.CurrentTime(), 1e-9)
	assert.InDelta(t, 1.0, fast.CurrentTime(), 1e-9)
	assert.Zero(t, paused.CurrentTime())
	assert.Zero(t, idle.CurrentTime())
}

func TestAdvanceAllRemovesDisposed(t *testing.T) {
	world := donburi.NewWorld()
	p, err := timeline.NewGraphProcessor(newGraph(), timeline.Config{})
	require.NoError(t, err)
	entity := Attach(world, p, 1)

	p.Dispose()
	assert.Equal(t, 0, AdvanceAll(world, 0.1))
	assert.False(t, world.Valid(entity))
}

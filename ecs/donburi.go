package ecs

import (
	"github.com/phanxgames/timeline"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// LifecycleEventType is the Donburi event type for timeline lifecycle calls.
// Subscribe to this in your ECS systems to react to clips entering, updating
// and exiting.
var LifecycleEventType = events.NewEventType[timeline.LifecycleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Lifecycle events are published to LifecycleEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) timeline.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitLifecycle(event timeline.LifecycleEvent) {
	LifecycleEventType.Publish(s.world, event)
}

// Playback is the component that attaches a graph processor to an entity.
type Playback struct {
	Processor *timeline.GraphProcessor
	// Speed scales dt in AdvanceAll. Zero means 1.
	Speed  float64
	Paused bool
}

// PlaybackComponent is the Donburi component type for Playback.
var PlaybackComponent = donburi.NewComponentType[Playback]()

var playbackQuery = donburi.NewQuery(filter.Contains(PlaybackComponent))

// Attach creates an entity owning p and makes the entity p's owner, so
// behaviors can reach sibling components through Node.Owner.
func Attach(world donburi.World, p *timeline.GraphProcessor, speed float64) donburi.Entity {
	entity := world.Create(PlaybackComponent)
	entry := world.Entry(entity)
	PlaybackComponent.SetValue(entry, Playback{Processor: p, Speed: speed})
	p.SetOwner(entity)
	return entity
}

// AdvanceAll advances every active, unpaused processor in the world by dt
// scaled by its speed, and returns how many were advanced. Entities whose
// processor has been disposed are removed from the world.
func AdvanceAll(world donburi.World, dt float64) int {
	var stale []donburi.Entity
	advanced := 0
	playbackQuery.Each(world, func(entry *donburi.Entry) {
		pb := PlaybackComponent.Get(entry)
		switch {
		case pb.Processor == nil || pb.Processor.IsDisposed():
			stale = append(stale, entry.Entity())
			return
		case pb.Paused || !pb.Processor.Active():
			return
		}
		speed := pb.Speed
		if speed == 0 {
			speed = 1
		}
		pb.Processor.Advance(dt * speed)
		advanced++
	})
	for _, e := range stale {
		world.Remove(e)
	}
	return advanced
}

// Package ecs bridges timeline playback into a Donburi world.
//
// [NewDonburiSink] forwards every lifecycle call of a graph processor to
// [LifecycleEventType], so ECS systems can react to clips entering and
// exiting. [PlaybackComponent] lets a world own processors; [AdvanceAll]
// steps every attached one from a single system.
//
// Usage:
//
//	p, _ := timeline.NewGraphProcessor(graph, timeline.Config{
//		Sink: ecs.NewDonburiSink(world),
//	})
//	ecs.Attach(world, p, 1)
//	p.PlayAll()
//	// each tick
//	ecs.AdvanceAll(world, dt)
//	ecs.LifecycleEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

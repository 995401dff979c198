// Package timeline is a non-linear sequencing engine for cutscenes and other
// scripted sequences driven from a game loop.
//
// An authored [TimelineGraph] holds groups of tracks of time-bounded clips.
// A [GraphProcessor] built from it is sampled at an arbitrary current time,
// moving forward, backward or jumping, and tells every node exactly when to
// Enter, Update, Exit, ReverseEnter and Reverse. The engine never decides
// what a clip does; that is the job of the [Behavior] bound to it.
//
// # Quick start
//
//	graph := &timeline.TimelineGraph{
//		Length: 10,
//		Groups: []timeline.GroupModel{&timeline.Group{
//			Tracks: []timeline.TrackModel{&timeline.Track{
//				Clips: []timeline.ClipModel{&timeline.TweenClip{
//					Clip: timeline.Clip{Name: "fade", StartTime: 2, Length: 4},
//					Key:  "alpha", From: 0, To: 1,
//				}},
//			}},
//		}},
//	}
//	reg := timeline.NewRegistry()
//	timeline.RegisterTween(reg)
//	p, err := timeline.NewGraphProcessor(graph, timeline.Config{Registry: reg})
//	// ...
//	p.PlayAll()
//	p.Advance(dt) // once per tick
//
// # Behaviors
//
// A model type embeds [Clip], [Track] or [Group] and overrides Kind with a
// dotted key ("clip.tween"). The [Registry] maps kinds to behavior factories;
// the most specific registered prefix wins and unregistered kinds get
// [NopBehavior]. Optional interfaces ([ReverseBehavior], [Initializer],
// [Resetter], [Disposer], [PreviewOverride]) add hooks.
//
// A behavior that returns an error or panics is reported through the
// configured slog logger and [Config.OnFault]; the rest of the sample pass
// still runs.
//
// # Time
//
// Every boundary comparison uses the tolerance [Epsilon]. Inner (local) time
// is always clamped to [0, node length].
//
// See the host package for an Ebitengine game-loop driver and the ecs
// package for a Donburi bridge.
package timeline

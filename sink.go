package timeline

// EventSink is the interface for optional lifecycle forwarding. When set on a
// processor through Config.Sink, every successful lifecycle call is reported
// after the behavior has run.
type EventSink interface {
	EmitLifecycle(event LifecycleEvent)
}

// LifecycleEvent describes one lifecycle call on one node.
type LifecycleEvent struct {
	Graph string
	Phase Phase
	Kind  NodeKind
	Name  string
	Outer FrameData
	Inner FrameData
}

// SinkFunc adapts a plain function to EventSink.
type SinkFunc func(LifecycleEvent)

// EmitLifecycle calls f(event).
func (f SinkFunc) EmitLifecycle(event LifecycleEvent) { f(event) }

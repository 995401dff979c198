package timeline

import (
	"fmt"
	"testing"
)

// traceSink records lifecycle calls as "node.Phase" strings.
type traceSink struct {
	events []LifecycleEvent
}

func (s *traceSink) EmitLifecycle(e LifecycleEvent) {
	s.events = append(s.events, e)
}

// take returns the recorded calls and clears the buffer.
func (s *traceSink) take() []string {
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = fmt.Sprintf("%s.%s", e.Name, e.Phase)
	}
	s.events = s.events[:0]
	return out
}

// takeEvents returns the recorded events and clears the buffer.
func (s *traceSink) takeEvents() []LifecycleEvent {
	out := append([]LifecycleEvent(nil), s.events...)
	s.events = s.events[:0]
	return out
}

// transitionsOnly drops Update calls from a trace.
func transitionsOnly(trace []string) []string {
	var out []string
	for _, c := range trace {
		if len(c) > 7 && c[len(c)-7:] == ".Update" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// newGraph returns a graph with one group "G" holding one track "T" with the
// given clips.
func newGraph(length float64, warp WarpCategory, clips ...ClipModel) *TimelineGraph {
	return &TimelineGraph{
		Name:   "test",
		Length: length,
		Warp:   warp,
		Groups: []GroupModel{&Group{
			Name:   "G",
			Tracks: []TrackModel{&Track{Name: "T", Clips: clips}},
		}},
	}
}

func newProcessor(t *testing.T, graph *TimelineGraph, cfg Config) (*GraphProcessor, *traceSink) {
	t.Helper()
	sink := &traceSink{}
	cfg.Sink = sink
	p, err := NewGraphProcessor(graph, cfg)
	if err != nil {
		t.Fatalf("NewGraphProcessor: %v", err)
	}
	return p, sink
}

// findNode returns the first node named name, depth-first.
func findNode(p *GraphProcessor, name string) *Node {
	var walk func(n *Node) *Node
	walk = func(n *Node) *Node {
		if n.Name() == name {
			return n
		}
		for _, c := range n.ChildNodes() {
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	for _, g := range p.Groups() {
		if found := walk(g); found != nil {
			return found
		}
	}
	return nil
}

// hookBehavior lets a test plug functions into each hook.
type hookBehavior struct {
	enter, update, exit func(n *Node, outer, inner FrameData) error
}

func (b *hookBehavior) OnEnter(n *Node, outer, inner FrameData) error {
	if b.enter != nil {
		return b.enter(n, outer, inner)
	}
	return nil
}

func (b *hookBehavior) OnUpdate(n *Node, outer, inner FrameData) error {
	if b.update != nil {
		return b.update(n, outer, inner)
	}
	return nil
}

func (b *hookBehavior) OnExit(n *Node, outer, inner FrameData) error {
	if b.exit != nil {
		return b.exit(n, outer, inner)
	}
	return nil
}

// kindClip is a clip model with a custom kind key.
type kindClip struct {
	Clip
	kind string
}

func (c *kindClip) Kind() string { return c.kind }

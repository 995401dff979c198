package timeline

import (
	"fmt"
	"log/slog"
)

// debugCheckDisposed panics with a descriptive message when a disposed
// processor is used. Only called in debug mode; release builds skip the
// operation silently.
func debugCheckDisposed(p *GraphProcessor, op string) {
	if p.disposed {
		panic(fmt.Sprintf("timeline debug: %s on disposed graph processor", op))
	}
}

// debugLogTransition logs one lifecycle call at debug level.
func debugLogTransition(p *GraphProcessor, phase Phase, n *Node, outer, inner FrameData) {
	p.logger.Debug("timeline: transition",
		slog.String("graph", p.Name()),
		slog.String("phase", phase.String()),
		slog.String("kind", n.kind.String()),
		slog.String("node", n.name),
		slog.Float64("time", outer.CurrentTime),
		slog.Float64("previous", outer.PreviousTime),
		slog.Float64("local", inner.CurrentTime),
	)
}

// debugTreeDepth is the deepest tree the processor builds (group, track, clip).
const debugTreeDepth = 3

// DebugDump logs the node tree with spans and triggered state at debug level.
// Useful when a host needs to see why a clip did or did not fire.
func (p *GraphProcessor) DebugDump() {
	p.logger.Debug("timeline: graph",
		slog.String("graph", p.Name()),
		slog.Float64("length", p.Length()),
		slog.String("warp", p.Warp().String()),
		slog.Bool("active", p.active),
		slog.Float64("current", p.currentTime),
		slog.Float64("previous", p.previousTime),
		slog.Int("pointers", len(p.pointers.ordered)),
	)
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		p.logger.Debug("timeline: node",
			slog.Int("depth", depth),
			slog.String("kind", n.kind.String()),
			slog.String("node", n.name),
			slog.Float64("start", n.start),
			slog.Float64("end", n.end),
			slog.Bool("triggered", n.triggered),
			slog.Bool("disabled", n.disabled),
		)
		if depth >= debugTreeDepth {
			return
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	for _, g := range p.groups {
		walk(g, 1)
	}
}

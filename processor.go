package timeline

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math"
)

// Config holds the optional collaborators of a GraphProcessor. The zero value
// is usable: every node gets NopBehavior, nodes come from a private pool and
// faults are logged to slog.Default().
type Config struct {
	// Registry binds model kinds to behaviors.
	Registry *Registry
	// Pool supplies runtime nodes. Processors driven from the same goroutine
	// may share one.
	Pool *Pool
	// Logger receives callback faults and, in debug mode, every transition.
	Logger *slog.Logger
	// Owner is an opaque host handle behaviors can read through Node.Owner.
	Owner any
	// Sink, when set, receives every successful lifecycle call.
	Sink EventSink
	// Preview runs both directional passes on every sample and swaps in
	// PreviewOverride behaviors, the way an editor scrubs a timeline.
	Preview bool
	// Debug logs every transition at debug level and panics when a disposed
	// processor is sampled.
	Debug bool
	// OnFault is called with every callback failure after it is logged.
	OnFault func(err error)
}

// GraphProcessor samples one TimelineGraph. It owns the runtime node tree,
// the pointer lists and the playback clock. It is single-threaded: Sample and
// friends must be called from one goroutine, once per tick, and every
// behavior runs synchronously inside that call.
type GraphProcessor struct {
	graph  *TimelineGraph
	groups []*Node

	registry *Registry
	pool     *Pool
	logger   *slog.Logger
	sink     EventSink
	onFault  func(error)
	owner    any
	preview  bool
	debug    bool

	blackboard *Blackboard
	events     *Events

	active   bool
	disposed bool

	startTime    float64
	endTime      float64
	currentTime  float64
	previousTime float64
	onStop       func()

	pointersReady bool

	// pointerGen changes whenever the pointer lists are rebuilt or dropped.
	pointerGen uint64
	pointers   pointerLists
}

// NewGraphProcessor validates graph and builds its runtime tree: one node per
// group, track and clip, each bound to the behavior the registry resolves for
// its model kind. OnInit runs on every node once the tree is complete.
func NewGraphProcessor(graph *TimelineGraph, cfg Config) (*GraphProcessor, error) {
	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("build graph processor: %w", err)
	}
	p := &GraphProcessor{
		graph:    graph,
		registry: cfg.Registry,
		pool:     cfg.Pool,
		logger:   cfg.Logger,
		sink:     cfg.Sink,
		onFault:  cfg.OnFault,
		owner:    cfg.Owner,
		preview:  cfg.Preview,
		debug:    cfg.Debug,
	}
	if p.pool == nil {
		p.pool = NewPool()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.endTime = graph.Length

	p.groups = make([]*Node, 0, len(graph.Groups))
	for _, gm := range graph.Groups {
		g := p.spawn(KindGroup, gm, gm.Kind(), nil)
		tracks := gm.GroupBase().Tracks
		for _, tm := range tracks {
			t := p.spawn(KindTrack, tm, tm.Kind(), g)
			for _, cm := range tm.TrackBase().Clips {
				c := p.spawn(KindClip, cm, cm.Kind(), t)
				t.children = append(t.children, c)
			}
			g.children = append(g.children, t)
		}
		p.groups = append(p.groups, g)
	}
	for _, g := range p.groups {
		g.initialize()
	}
	return p, nil
}

// spawn acquires a node, binds it to model and resolves its behavior.
func (p *GraphProcessor) spawn(kind NodeKind, model any, modelKind string, parent *Node) *Node {
	n := p.pool.Acquire(kind)
	n.setUp(model, parent, p)
	n.behavior = p.behaviorFor(modelKind)
	return n
}

func (p *GraphProcessor) behaviorFor(kind string) Behavior {
	b := p.registry.Resolve(kind)
	if p.preview {
		if po, ok := b.(PreviewOverride); ok {
			if pb := po.PreviewBehavior(); pb != nil {
				b = pb
			}
		}
	}
	return b
}

// --- Accessors ---

// Graph returns the authored graph, or nil after Dispose.
func (p *GraphProcessor) Graph() *TimelineGraph { return p.graph }

// Name returns the graph name.
func (p *GraphProcessor) Name() string {
	if p.graph == nil {
		return ""
	}
	return p.graph.Name
}

// Length returns the graph length.
func (p *GraphProcessor) Length() float64 {
	if p.graph == nil {
		return 0
	}
	return p.graph.Length
}

// Warp returns the graph's end-of-playback behavior.
func (p *GraphProcessor) Warp() WarpCategory {
	if p.graph == nil {
		return WarpOnce
	}
	return p.graph.Warp
}

// Active reports whether a playback started by Play is running.
func (p *GraphProcessor) Active() bool { return p.active }

// IsDisposed returns true once Dispose has run.
func (p *GraphProcessor) IsDisposed() bool { return p.disposed }

// Preview reports whether the processor was built in preview mode.
func (p *GraphProcessor) Preview() bool { return p.preview }

// CurrentTime returns the time of the latest sample.
func (p *GraphProcessor) CurrentTime() float64 { return p.currentTime }

// SetCurrentTime moves the clock without sampling. The value is clamped to
// [0, Length]; call SampleCurrent to apply it. NaN is ignored.
func (p *GraphProcessor) SetCurrentTime(t float64) {
	if math.IsNaN(t) {
		return
	}
	p.currentTime = clamp(t, 0, p.Length())
}

// PreviousTime returns the time committed by the previous sample.
func (p *GraphProcessor) PreviousTime() float64 { return p.previousTime }

// StartTime returns the start of the current play range.
func (p *GraphProcessor) StartTime() float64 { return p.startTime }

// EndTime returns the end of the current play range.
func (p *GraphProcessor) EndTime() float64 { return p.endTime }

// Groups returns the group nodes. The returned slice MUST NOT be mutated.
func (p *GraphProcessor) Groups() []*Node { return p.groups }

// Children yields the group nodes in authored order.
func (p *GraphProcessor) Children() iter.Seq[Directable] {
	return func(yield func(Directable) bool) {
		for _, g := range p.groups {
			if !yield(g) {
				return
			}
		}
	}
}

// Logger returns the logger faults are reported to.
func (p *GraphProcessor) Logger() *slog.Logger { return p.logger }

// Owner returns the opaque host handle.
func (p *GraphProcessor) Owner() any { return p.owner }

// SetOwner replaces the opaque host handle.
func (p *GraphProcessor) SetOwner(owner any) { p.owner = owner }

// Events returns the processor's event bus, creating it on first use.
func (p *GraphProcessor) Events() *Events {
	if p.events == nil {
		p.events = NewEvents()
	}
	return p.events
}

// Blackboard returns the processor's blackboard, creating it on first use.
// Changes are published on Events.
func (p *GraphProcessor) Blackboard() *Blackboard {
	if p.blackboard == nil {
		p.blackboard = NewBlackboard(p.Events())
	}
	return p.blackboard
}

// --- Playback ---

// PlayAll plays the whole graph with no stop callback.
func (p *GraphProcessor) PlayAll() error {
	return p.Play(0, p.Length(), nil)
}

// Play starts playback of [start, end], both clamped to [0, Length].
// onStop, if non-nil, is called once when playback stops. Playback starting
// past zero enters every node whose span already covers start, as if time
// had jumped there from zero.
func (p *GraphProcessor) Play(start, end float64, onStop func()) error {
	if p.disposed {
		return ErrDisposed
	}
	if p.active {
		return ErrAlreadyActive
	}
	if math.IsNaN(start) || math.IsNaN(end) || start > end {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, start, end)
	}

	// Settle anything a previous scrub left triggered before the clock jumps.
	if p.pointersReady && aboveZero(p.previousTime) {
		p.samplePointers(0, p.previousTime)
	}

	p.startTime = clamp(start, 0, p.Length())
	p.endTime = clamp(end, 0, p.Length())
	p.active = true
	p.onStop = onStop
	p.previousTime = 0
	p.currentTime = p.startTime

	p.Sample(p.startTime)
	return nil
}

// SampleCurrent samples at CurrentTime.
func (p *GraphProcessor) SampleCurrent() {
	p.Sample(p.currentTime)
}

// Advance samples at CurrentTime + dt.
func (p *GraphProcessor) Advance(dt float64) {
	p.Sample(p.currentTime + dt)
}

// Sample moves the clock to t (clamped to [0, Length]) and fires every
// lifecycle transition the move implies. Sampling again at a boundary the
// clock has already settled on does nothing. While a playback is active,
// reaching the end time stops it (WarpOnce) or rewinds it to the start time
// (WarpLoop). Sampling at NaN does nothing.
func (p *GraphProcessor) Sample(t float64) {
	if p.disposed {
		if p.debug {
			debugCheckDisposed(p, "Sample")
		}
		return
	}
	if math.IsNaN(t) {
		return
	}

	p.currentTime = clamp(t, 0, p.Length())
	cur := p.currentTime

	settled := (atOrBelowZero(cur) || approxEqual(cur, p.Length())) && approxEqual(p.previousTime, cur)
	if !settled {
		if !p.pointersReady && aboveZero(cur) {
			p.InitializePointers()
		}
		if p.pointersReady && !p.samplePointers(cur, p.previousTime) {
			return
		}
	}

	if !p.active || before(cur, p.endTime) {
		p.commitPreviousTime(cur)
		return
	}

	switch p.Warp() {
	case WarpLoop:
		// Drive every pointer back to the start before the next lap so no
		// node is entered twice without an exit.
		if p.pointersReady && !p.samplePointers(p.startTime, cur) {
			return
		}
		p.previousTime = p.startTime
		p.currentTime = p.startTime
	default:
		p.Stop(StopExit)
	}
}

// InitializePointers (re)builds the pointer lists from the current tree.
// Sample calls it lazily on the first sample past zero; calling it directly
// discards the triggered state of every pointer.
func (p *GraphProcessor) InitializePointers() {
	p.pointers.build(p.groups)
	p.pointersReady = true
	p.pointerGen++
}

// discardPointers drops the pointer lists; the next sample past zero rebuilds them.
func (p *GraphProcessor) discardPointers() {
	p.pointers.reset()
	p.pointersReady = false
	p.pointerGen++
}

// commitPreviousTime records cur as the previous time once the clock has moved
// more than Epsilon away from it. Smaller moves accumulate until they cross a
// boundary.
func (p *GraphProcessor) commitPreviousTime(cur float64) {
	if !approxEqual(cur, p.previousTime) {
		p.previousTime = cur
	}
}

// samplePointers runs one pass over the pointer lists: forward triggers in
// list order when time advanced, backward triggers in reverse list order
// when it went back, then the per-sample updates. A failing callback is
// reported and the pass continues with the next pointer.
//
// A callback may stop, reset the pointers of or dispose the processor. The
// pass then ends at once and samplePointers returns false.
func (p *GraphProcessor) samplePointers(currentTime, previousTime float64) bool {
	gen := p.pointerGen
	if p.preview || before(previousTime, currentTime) {
		for _, tp := range p.pointers.ordered {
			p.fault(tp.triggerForward(currentTime, previousTime))
			if p.pointerGen != gen {
				return false
			}
		}
	}
	if p.preview || before(currentTime, previousTime) {
		for i := len(p.pointers.ordered) - 1; i >= 0; i-- {
			p.fault(p.pointers.ordered[i].triggerBackward(currentTime, previousTime))
			if p.pointerGen != gen {
				return false
			}
		}
	}
	for _, tp := range p.pointers.starts {
		p.fault(tp.update(currentTime, previousTime))
		if p.pointerGen != gen {
			return false
		}
	}
	return true
}

// Stop ends the active playback. StopExit calls Exit on every node that is
// still triggered, children before parents, using the latest frame.
// StopSkip samples the end time first so pending exits fire naturally; nodes
// reaching past the end are then exited the same way. onStop runs last, after
// the clock has been reset to zero.
func (p *GraphProcessor) Stop(mode StopMode) {
	if !p.active {
		return
	}
	p.active = false

	if mode == StopSkip {
		p.Sample(p.endTime)
	}
	p.exitTriggered()

	p.currentTime = 0
	p.previousTime = 0
	p.discardPointers()

	if cb := p.onStop; cb != nil {
		p.onStop = nil
		cb()
	}
}

// exitTriggered synthesizes Exit for every triggered node.
func (p *GraphProcessor) exitTriggered() {
	for _, g := range p.groups {
		for _, t := range g.children {
			for _, c := range t.children {
				p.exitNode(c)
			}
			p.exitNode(t)
		}
		p.exitNode(g)
	}
}

func (p *GraphProcessor) exitNode(n *Node) {
	if !n.triggered {
		return
	}
	outer := FrameData{
		PreviousTime: p.previousTime,
		CurrentTime:  p.currentTime,
		DeltaTime:    p.currentTime - p.previousTime,
	}
	localCurrent := n.ToLocalTime(p.currentTime)
	localPrevious := n.ToLocalTime(p.previousTime)
	inner := FrameData{
		PreviousTime: localPrevious,
		CurrentTime:  localCurrent,
		DeltaTime:    localCurrent - localPrevious,
	}
	p.fault(n.Exit(outer, inner))
}

// Reset resets every node and clears the blackboard and event bus. It does
// nothing unless a playback is active.
func (p *GraphProcessor) Reset() {
	if !p.active {
		return
	}
	for _, g := range p.groups {
		g.Reset()
	}
	if p.blackboard != nil {
		p.blackboard.Clear()
	}
	if p.events != nil {
		p.events.Clear()
	}
}

// Dispose stops playback, disposes the node tree back into the pool and drops
// the graph. Disposing twice is a no-op.
func (p *GraphProcessor) Dispose() {
	if p.disposed {
		return
	}
	p.Stop(StopExit)
	for i, g := range p.groups {
		g.Dispose()
		p.groups[i] = nil
	}
	p.groups = nil
	p.discardPointers()
	if p.blackboard != nil {
		p.blackboard.Clear()
	}
	if p.events != nil {
		p.events.Clear()
	}
	p.graph = nil
	p.onStop = nil
	p.disposed = true
}

// --- Reporting ---

// fault logs a callback failure and forwards it to OnFault. Sampling never
// stops because of one.
func (p *GraphProcessor) fault(err error) {
	if err == nil {
		return
	}
	attrs := []any{"graph", p.Name(), "err", err}
	var cbErr *CallbackError
	if errors.As(err, &cbErr) && cbErr.Node != nil {
		attrs = append(attrs,
			"node", cbErr.Node.Name(),
			"kind", cbErr.Node.Kind().String(),
			"phase", cbErr.Phase.String())
	}
	p.logger.Error("timeline: callback failed", attrs...)
	if p.onFault != nil {
		p.onFault(err)
	}
}

// emit reports a successful lifecycle call.
func (p *GraphProcessor) emit(phase Phase, n *Node, outer, inner FrameData) {
	if p.debug {
		debugLogTransition(p, phase, n, outer, inner)
	}
	if p.sink != nil {
		p.sink.EmitLifecycle(LifecycleEvent{
			Graph: p.Name(),
			Phase: phase,
			Kind:  n.kind,
			Name:  n.name,
			Outer: outer,
			Inner: inner,
		})
	}
}

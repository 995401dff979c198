package timeline

import "iter"

// Node is the runtime processor bound to one authored group, track or clip.
// A single flat struct serves all three kinds; Kind says which one it is.
// Nodes are created by NewGraphProcessor and owned by their parent: disposing
// a node disposes its whole subtree.
type Node struct {
	kind     NodeKind
	name     string
	model    any
	behavior Behavior

	// Hierarchy. parent and root are back-references and never owned.
	parent   *Node
	root     *GraphProcessor
	children []*Node

	start, end float64

	triggered bool
	disabled  bool
	disposed  bool

	// pool receives the node on Dispose. Nil for nodes built outside a processor.
	pool *Pool
}

// setUp binds n to a model, its parent and the owning processor. Group and
// track spans always cover [0, graph length]; clips use their own start and
// length.
func (n *Node) setUp(model any, parent *Node, root *GraphProcessor) {
	n.model = model
	n.parent = parent
	n.root = root
	switch m := model.(type) {
	case GroupModel:
		g := m.GroupBase()
		n.name, n.disabled = g.Name, g.Disabled
		n.start, n.end = 0, root.Length()
	case TrackModel:
		t := m.TrackBase()
		n.name, n.disabled = t.Name, t.Disabled
		n.start, n.end = 0, root.Length()
	case ClipModel:
		c := m.ClipBase()
		n.name, n.disabled = c.Name, c.Disabled
		n.start, n.end = c.StartTime, c.EndTime()
	}
}

// --- Accessors ---

// Kind returns whether n is a group, track or clip.
func (n *Node) Kind() NodeKind { return n.kind }

// Name returns the authored name.
func (n *Node) Name() string { return n.name }

// Model returns the authored model bound to n. Behaviors type-assert it, or
// use ModelAs.
func (n *Node) Model() any { return n.model }

// Behavior returns the behavior bound to n.
func (n *Node) Behavior() Behavior { return n.behavior }

// Root returns the owning processor.
func (n *Node) Root() *GraphProcessor { return n.root }

// Parent returns the parent node, or nil for groups.
func (n *Node) Parent() Directable {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// ParentNode returns the parent as a *Node, or nil for groups.
func (n *Node) ParentNode() *Node { return n.parent }

// Children yields the child nodes in authored order.
func (n *Node) Children() iter.Seq[Directable] {
	return func(yield func(Directable) bool) {
		for _, c := range n.children {
			if !yield(c) {
				return
			}
		}
	}
}

// ChildNodes returns the child list. The returned slice MUST NOT be mutated.
func (n *Node) ChildNodes() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node { return n.children[index] }

// StartTime returns the start of the node's span in graph time.
func (n *Node) StartTime() float64 { return n.start }

// EndTime returns the end of the node's span in graph time.
func (n *Node) EndTime() float64 { return n.end }

// Length returns EndTime - StartTime.
func (n *Node) Length() float64 { return n.end - n.start }

// IsTriggered reports whether Enter (or ReverseEnter) fired without a
// matching Exit (or Reverse).
func (n *Node) IsTriggered() bool { return n.triggered }

// Disabled reports whether the node was authored as inactive. Disabled nodes
// and their subtrees never receive lifecycle calls.
func (n *Node) Disabled() bool { return n.disabled }

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool { return n.disposed }

// Owner returns the opaque host handle set on the owning processor.
func (n *Node) Owner() any {
	if n.root == nil {
		return nil
	}
	return n.root.Owner()
}

// Blackboard returns the owning processor's blackboard.
func (n *Node) Blackboard() *Blackboard {
	if n.root == nil {
		return nil
	}
	return n.root.Blackboard()
}

// Events returns the owning processor's event bus.
func (n *Node) Events() *Events {
	if n.root == nil {
		return nil
	}
	return n.root.Events()
}

// ToLocalTime converts a graph time into n's local time, clamped to
// [0, Length].
func (n *Node) ToLocalTime(t float64) float64 {
	return clamp(t-n.start, 0, n.Length())
}

// ModelAs returns n's model as T.
func ModelAs[T any](n *Node) (T, bool) {
	m, ok := n.model.(T)
	return m, ok
}

// --- Lifecycle ---

// Enter marks n triggered and calls the behavior's OnEnter.
func (n *Node) Enter(outer, inner FrameData) error {
	n.triggered = true
	return n.run(PhaseEnter, outer, inner, n.behavior.OnEnter)
}

// Update calls the behavior's OnUpdate.
func (n *Node) Update(outer, inner FrameData) error {
	return n.run(PhaseUpdate, outer, inner, n.behavior.OnUpdate)
}

// Exit clears the triggered flag and calls the behavior's OnExit.
func (n *Node) Exit(outer, inner FrameData) error {
	n.triggered = false
	return n.run(PhaseExit, outer, inner, n.behavior.OnExit)
}

// ReverseEnter marks n triggered while time moves backward into its span.
func (n *Node) ReverseEnter(outer, inner FrameData) error {
	n.triggered = true
	if rb, ok := n.behavior.(ReverseBehavior); ok {
		return n.run(PhaseReverseEnter, outer, inner, rb.OnReverseEnter)
	}
	return n.run(PhaseReverseEnter, outer, inner, n.behavior.OnEnter)
}

// Reverse clears the triggered flag while time moves backward out of its span.
func (n *Node) Reverse(outer, inner FrameData) error {
	n.triggered = false
	if rb, ok := n.behavior.(ReverseBehavior); ok {
		return n.run(PhaseReverse, outer, inner, rb.OnReverse)
	}
	return n.run(PhaseReverse, outer, inner, n.behavior.OnExit)
}

// run invokes a behavior hook, converting errors and panics into a
// *CallbackError, and reports successful transitions to the root.
func (n *Node) run(phase Phase, outer, inner FrameData, hook func(*Node, FrameData, FrameData) error) error {
	if err := invokeHook(n, outer, inner, hook); err != nil {
		return &CallbackError{Node: n, Phase: phase, Err: err}
	}
	if n.root != nil {
		n.root.emit(phase, n, outer, inner)
	}
	return nil
}

func invokeHook(n *Node, outer, inner FrameData, hook func(*Node, FrameData, FrameData) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return hook(n, outer, inner)
}

// Reset resets children first, then calls the behavior's OnReset.
func (n *Node) Reset() {
	for _, c := range n.children {
		c.Reset()
	}
	if r, ok := n.behavior.(Resetter); ok {
		r.OnReset(n)
	}
}

// Dispose recursively disposes the subtree, detaches n from its parent and
// root, and returns it to the pool it came from. Disposing twice is a no-op.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	for _, c := range n.children {
		c.Dispose()
	}
	if d, ok := n.behavior.(Disposer); ok {
		d.OnDispose(n)
	}
	pool := n.pool
	n.unbind()
	if pool != nil {
		pool.Release(n)
	}
}

// unbind clears every reference so the node can be reused.
func (n *Node) unbind() {
	n.disposed = true
	for i := range n.children {
		n.children[i] = nil
	}
	n.children = n.children[:0]
	n.model = nil
	n.behavior = nil
	n.parent = nil
	n.root = nil
	n.name = ""
	n.start, n.end = 0, 0
	n.triggered = false
	n.disabled = false
	n.pool = nil
}

// initialize calls OnInit depth-first, parents before children.
func (n *Node) initialize() {
	if i, ok := n.behavior.(Initializer); ok {
		i.OnInit(n)
	}
	for _, c := range n.children {
		c.initialize()
	}
}

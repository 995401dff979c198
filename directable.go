package timeline

import (
	"errors"
	"fmt"
	"iter"
)

// Directable is a node with a time span and a lifecycle. Time pointers drive
// every node through this interface.
type Directable interface {
	// Root is the graph processor that owns the tree. Not owned by the node.
	Root() *GraphProcessor
	// Parent is nil for groups. Not owned by the node.
	Parent() Directable
	// Children yields child nodes in authored order. The sequence is
	// restartable and reflects the tree at the time it is ranged over.
	Children() iter.Seq[Directable]

	StartTime() float64
	EndTime() float64
	Length() float64
	IsTriggered() bool

	Enter(outer, inner FrameData) error
	Update(outer, inner FrameData) error
	Exit(outer, inner FrameData) error
	ReverseEnter(outer, inner FrameData) error
	Reverse(outer, inner FrameData) error

	Reset()
	Dispose()
}

// Behavior is the pluggable logic bound to a node. It decides what a node
// does; the engine only decides when it is told to do it.
type Behavior interface {
	OnEnter(n *Node, outer, inner FrameData) error
	OnUpdate(n *Node, outer, inner FrameData) error
	OnExit(n *Node, outer, inner FrameData) error
}

// ReverseBehavior is implemented by behaviors that treat backward crossings
// differently from forward ones. Without it ReverseEnter calls OnEnter and
// Reverse calls OnExit.
type ReverseBehavior interface {
	OnReverseEnter(n *Node, outer, inner FrameData) error
	OnReverse(n *Node, outer, inner FrameData) error
}

// Initializer is called once per node after the whole tree has been built.
type Initializer interface {
	OnInit(n *Node)
}

// Resetter is called when the node is reset, after its children.
type Resetter interface {
	OnReset(n *Node)
}

// Disposer is called when the node is disposed, after its children and before
// the node is cleared.
type Disposer interface {
	OnDispose(n *Node)
}

// PreviewOverride is implemented by behaviors that want different logic while
// a graph is previewed in an editor. The returned behavior replaces the
// receiver for processors built with Config.Preview set.
type PreviewOverride interface {
	PreviewBehavior() Behavior
}

// NopBehavior does nothing. Nodes whose kind has no registered factory use it.
type NopBehavior struct{}

func (NopBehavior) OnEnter(*Node, FrameData, FrameData) error  { return nil }
func (NopBehavior) OnUpdate(*Node, FrameData, FrameData) error { return nil }
func (NopBehavior) OnExit(*Node, FrameData, FrameData) error   { return nil }

// --- Errors ---

var (
	// ErrAlreadyActive is returned by Play while a playback is running.
	ErrAlreadyActive = errors.New("timeline: already playing")
	// ErrInvalidRange is returned by Play when start is after end or either
	// bound is NaN.
	ErrInvalidRange = errors.New("timeline: invalid play range")
	// ErrDisposed is returned when a disposed processor is asked to play.
	ErrDisposed = errors.New("timeline: processor disposed")
)

// CallbackError wraps a failure raised by a node's behavior during sampling.
type CallbackError struct {
	Node  *Node
	Phase Phase
	Err   error
}

func (e *CallbackError) Error() string {
	name := "<nil>"
	kind := "unknown"
	if e.Node != nil {
		name = e.Node.Name()
		kind = e.Node.Kind().String()
	}
	return fmt.Sprintf("timeline: %s %q %s: %v", kind, name, e.Phase, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

// PanicError carries a value recovered from a panicking behavior.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("behavior panicked: %v", e.Value)
}

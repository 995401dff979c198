package timeline

import "math"

// FrameData describes one sampling step in a single coordinate space. Lifecycle
// callbacks receive two of these: the outer (graph-global) frame and the inner
// frame localized to the node's own [0, Length] span.
type FrameData struct {
	PreviousTime float64
	CurrentTime  float64
	DeltaTime    float64
}

// WarpCategory selects what happens when playback reaches the end time.
type WarpCategory uint8

const (
	WarpOnce WarpCategory = iota // stop playback at the end
	WarpLoop                     // rewind to the start and keep playing
)

func (w WarpCategory) String() string {
	switch w {
	case WarpOnce:
		return "once"
	case WarpLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// StopMode selects how Stop settles nodes that are still triggered.
type StopMode uint8

const (
	StopExit StopMode = iota // synthesize Exit for every triggered node at the current time
	StopSkip                 // sample straight to the end time and let pointers fire naturally
)

func (m StopMode) String() string {
	switch m {
	case StopExit:
		return "exit"
	case StopSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// NodeKind distinguishes the three levels of the directable tree.
type NodeKind uint8

const (
	KindGroup NodeKind = iota // top-level container, spans the whole graph
	KindTrack                 // clip container, spans the whole graph
	KindClip                  // time-bounded leaf
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindTrack:
		return "track"
	case KindClip:
		return "clip"
	default:
		return "unknown"
	}
}

// Phase identifies a lifecycle transition.
type Phase uint8

const (
	PhaseEnter        Phase = iota // forward crossing of a start boundary
	PhaseUpdate                    // per-sample update while inside the span
	PhaseExit                      // forward crossing of an end boundary
	PhaseReverseEnter              // backward crossing of an end boundary
	PhaseReverse                   // backward crossing of a start boundary
)

func (p Phase) String() string {
	switch p {
	case PhaseEnter:
		return "Enter"
	case PhaseUpdate:
		return "Update"
	case PhaseExit:
		return "Exit"
	case PhaseReverseEnter:
		return "ReverseEnter"
	case PhaseReverse:
		return "Reverse"
	default:
		return "Unknown"
	}
}

// --- Time comparison policy ---

// Epsilon is the tolerance used for every time boundary test. Two times closer
// than Epsilon are treated as equal, so a clip ending at 5 has been reached by
// a sample at 4.9999999. Moves of the clock smaller than Epsilon accumulate
// until they add up to more than Epsilon; only then do they fire transitions.
const Epsilon = 1e-6

// approxEqual reports whether a and b are within Epsilon of each other.
func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// reached reports whether t is at or past boundary b.
func reached(t, b float64) bool {
	return t >= b-Epsilon
}

// before reports whether t is strictly before boundary b.
func before(t, b float64) bool {
	return t < b-Epsilon
}

// atOrBelowZero reports whether t is at the origin (or below it).
func atOrBelowZero(t float64) bool {
	return t <= Epsilon
}

// aboveZero reports whether t is strictly past the origin.
func aboveZero(t float64) bool {
	return t > Epsilon
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clamp limits v to [lo, hi]. When hi < lo the result is lo.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

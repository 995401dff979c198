package timeline

import (
	"errors"
	"math"
)

// timePointer fires lifecycle transitions when graph time crosses one of a
// node's boundaries. Every node owns one start and one end pointer; each
// carries a single bit of state.
type timePointer interface {
	// time is the boundary this pointer watches.
	time() float64
	target() Directable
	triggerForward(currentTime, previousTime float64) error
	triggerBackward(currentTime, previousTime float64) error
	update(currentTime, previousTime float64) error
}

// --- Start pointer ---

// startPointer fires Enter when time reaches the node's start moving forward
// and Reverse when time drops back below it. It also drives the per-sample
// Update while time is inside the node's span.
type startPointer struct {
	node      Directable
	triggered bool
}

func (p *startPointer) time() float64      { return p.node.StartTime() }
func (p *startPointer) target() Directable { return p.node }

func (p *startPointer) triggerForward(currentTime, previousTime float64) error {
	n := p.node
	if p.triggered || !reached(currentTime, n.StartTime()) {
		return nil
	}
	p.triggered = true

	outer := FrameData{
		PreviousTime: previousTime,
		CurrentTime:  currentTime,
		DeltaTime:    currentTime - previousTime,
	}
	local := clamp(currentTime-n.StartTime(), 0, n.Length())
	inner := FrameData{PreviousTime: 0, CurrentTime: local, DeltaTime: local}

	if err := n.Enter(outer, inner); err != nil {
		return err
	}
	if !n.IsTriggered() {
		// OnEnter stopped the playback.
		return nil
	}
	return n.Update(outer, inner)
}

func (p *startPointer) triggerBackward(currentTime, previousTime float64) error {
	n := p.node
	if !p.triggered {
		return nil
	}
	if !before(currentTime, n.StartTime()) && !atOrBelowZero(currentTime) {
		return nil
	}
	p.triggered = false

	outer := FrameData{
		PreviousTime: previousTime,
		CurrentTime:  currentTime,
		DeltaTime:    previousTime - currentTime,
	}
	local := clamp(previousTime-n.StartTime(), 0, n.Length())
	inner := FrameData{PreviousTime: local, CurrentTime: 0, DeltaTime: local}

	// Update precedes Reverse, mirroring Enter preceding Update going forward.
	// Reverse always runs so the node cannot stay triggered after a failed Update.
	errUpdate := n.Update(outer, inner)
	if !n.IsTriggered() {
		return errUpdate
	}
	errReverse := n.Reverse(outer, inner)
	return errors.Join(errUpdate, errReverse)
}

func (p *startPointer) update(currentTime, previousTime float64) error {
	n := p.node
	if !reached(currentTime, n.StartTime()) || !before(currentTime, n.EndTime()) || !aboveZero(currentTime) {
		return nil
	}

	outer := FrameData{
		PreviousTime: previousTime,
		CurrentTime:  currentTime,
		DeltaTime:    math.Abs(currentTime - previousTime),
	}
	localCurrent := clamp(currentTime-n.StartTime(), 0, n.Length())
	localPrevious := clamp(previousTime-n.StartTime(), 0, n.Length())
	inner := FrameData{
		PreviousTime: localPrevious,
		CurrentTime:  localCurrent,
		DeltaTime:    math.Abs(localCurrent - localPrevious),
	}
	return n.Update(outer, inner)
}

// --- End pointer ---

// endPointer fires Exit when time reaches the node's end moving forward and
// ReverseEnter when time drops back below it. It never drives per-sample
// updates; the paired start pointer does.
type endPointer struct {
	node      Directable
	triggered bool
}

func (p *endPointer) time() float64      { return p.node.EndTime() }
func (p *endPointer) target() Directable { return p.node }

func (p *endPointer) triggerForward(currentTime, previousTime float64) error {
	n := p.node
	if p.triggered || !reached(currentTime, n.EndTime()) {
		return nil
	}
	p.triggered = true

	outer := FrameData{
		PreviousTime: previousTime,
		CurrentTime:  currentTime,
		DeltaTime:    currentTime - previousTime,
	}
	localPrevious := clamp(previousTime-n.StartTime(), 0, n.Length())
	inner := FrameData{
		PreviousTime: localPrevious,
		CurrentTime:  n.Length(),
		DeltaTime:    n.Length() - localPrevious,
	}

	// Exit always runs so the node cannot stay triggered after a failed Update.
	errUpdate := n.Update(outer, inner)
	if !n.IsTriggered() {
		return errUpdate
	}
	errExit := n.Exit(outer, inner)
	return errors.Join(errUpdate, errExit)
}

func (p *endPointer) triggerBackward(currentTime, previousTime float64) error {
	n := p.node
	if !p.triggered {
		return nil
	}
	if !before(currentTime, n.EndTime()) && !atOrBelowZero(currentTime) {
		return nil
	}
	p.triggered = false

	outer := FrameData{
		PreviousTime: previousTime,
		CurrentTime:  currentTime,
		DeltaTime:    previousTime - currentTime,
	}
	local := clamp(currentTime-n.StartTime(), 0, n.Length())
	inner := FrameData{
		PreviousTime: n.Length(),
		CurrentTime:  local,
		DeltaTime:    n.Length() - local,
	}

	if err := n.ReverseEnter(outer, inner); err != nil {
		return err
	}
	if !n.IsTriggered() {
		return nil
	}
	return n.Update(outer, inner)
}

func (p *endPointer) update(float64, float64) error { return nil }

// --- List construction ---

// pointerLists holds the two ordered pointer lists of one sampling session.
type pointerLists struct {
	// ordered interleaves start/end pairs: groups in reverse, each group's
	// pair before its tracks, tracks in reverse, each track's pair before its
	// clips, clips in authored order. Ties at the same boundary time resolve
	// in this order going forward and in the opposite order going backward.
	ordered []timePointer
	// starts holds only the start pointers, in construction order, for the
	// per-sample Update pass.
	starts []timePointer
}

func (l *pointerLists) reset() {
	for i := range l.ordered {
		l.ordered[i] = nil
	}
	for i := range l.starts {
		l.starts[i] = nil
	}
	l.ordered = l.ordered[:0]
	l.starts = l.starts[:0]
}

func (l *pointerLists) add(n Directable) {
	sp := &startPointer{node: n}
	l.ordered = append(l.ordered, sp, &endPointer{node: n})
	l.starts = append(l.starts, sp)
}

// build fills the lists for the given groups. Disabled nodes and everything
// below them are skipped.
func (l *pointerLists) build(groups []*Node) {
	l.reset()
	for gi := len(groups) - 1; gi >= 0; gi-- {
		g := groups[gi]
		if g.disabled {
			continue
		}
		l.add(g)
		for ti := len(g.children) - 1; ti >= 0; ti-- {
			t := g.children[ti]
			if t.disabled {
				continue
			}
			l.add(t)
			for _, c := range t.children {
				if c.disabled {
					continue
				}
				l.add(c)
			}
		}
	}
}

package timeline

import (
	"errors"
	"testing"
)

func TestNodeLocalTime(t *testing.T) {
	p, _ := newProcessor(t, newGraph(10, WarpOnce, &Clip{Name: "C", StartTime: 2, Length: 3}), Config{})
	c := findNode(p, "C")

	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{2, 0},
		{3.5, 1.5},
		{5, 3},
		{9, 3},
	}
	for _, tt := range tests {
		if got := c.ToLocalTime(tt.in); got != tt.want {
			t.Errorf("ToLocalTime(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNodeLifecycleFlags(t *testing.T) {
	n := &Node{behavior: NopBehavior{}}

	if err := n.Enter(FrameData{}, FrameData{}); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if !n.IsTriggered() {
		t.Error("Enter should set triggered")
	}
	if err := n.Exit(FrameData{}, FrameData{}); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if n.IsTriggered() {
		t.Error("Exit should clear triggered")
	}
	if err := n.ReverseEnter(FrameData{}, FrameData{}); err != nil {
		t.Fatalf("ReverseEnter: %v", err)
	}
	if !n.IsTriggered() {
		t.Error("ReverseEnter should set triggered")
	}
	if err := n.Reverse(FrameData{}, FrameData{}); err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if n.IsTriggered() {
		t.Error("Reverse should clear triggered")
	}
}

type reverseRecorder struct {
	NopBehavior
	calls []string
}

func (r *reverseRecorder) OnEnter(*Node, FrameData, FrameData) error {
	r.calls = append(r.calls, "enter")
	return nil
}

func (r *reverseRecorder) OnExit(*Node, FrameData, FrameData) error {
	r.calls = append(r.calls, "exit")
	return nil
}

func (r *reverseRecorder) OnReverseEnter(*Node, FrameData, FrameData) error {
	r.calls = append(r.calls, "reverse-enter")
	return nil
}

func (r *reverseRecorder) OnReverse(*Node, FrameData, FrameData) error {
	r.calls = append(r.calls, "reverse")
	return nil
}

type forwardRecorder struct {
	NopBehavior
	calls []string
}

func (r *forwardRecorder) OnEnter(*Node, FrameData, FrameData) error {
	r.calls = append(r.calls, "enter")
	return nil
}

func (r *forwardRecorder) OnExit(*Node, FrameData, FrameData) error {
	r.calls = append(r.calls, "exit")
	return nil
}

func TestNodeReverseHooks(t *testing.T) {
	rev := &reverseRecorder{}
	n := &Node{behavior: rev}
	n.ReverseEnter(FrameData{}, FrameData{})
	n.Reverse(FrameData{}, FrameData{})
	if len(rev.calls) != 2 || rev.calls[0] != "reverse-enter" || rev.calls[1] != "reverse" {
		t.Errorf("calls = %v, want [reverse-enter reverse]", rev.calls)
	}

	fwd := &forwardRecorder{}
	n = &Node{behavior: fwd}
	n.ReverseEnter(FrameData{}, FrameData{})
	n.Reverse(FrameData{}, FrameData{})
	if len(fwd.calls) != 2 || fwd.calls[0] != "enter" || fwd.calls[1] != "exit" {
		t.Errorf("fallback calls = %v, want [enter exit]", fwd.calls)
	}
}

func TestNodeCallbackError(t *testing.T) {
	sentinel := errors.New("missing asset")
	n := &Node{name: "C", kind: KindClip, behavior: &hookBehavior{
		update: func(*Node, FrameData, FrameData) error { return sentinel },
	}}

	err := n.Update(FrameData{}, FrameData{})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Update = %v, want wrapped sentinel", err)
	}
	var cbErr *CallbackError
	if !errors.As(err, &cbErr) || cbErr.Phase != PhaseUpdate || cbErr.Node != n {
		t.Errorf("CallbackError = %+v", cbErr)
	}
	if got, want := err.Error(), `timeline: clip "C" Update: missing asset`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNodeDispose(t *testing.T) {
	var disposed []string
	reg := NewRegistry()
	reg.Register(ClipKind, func() Behavior { return &disposeRecorder{order: &disposed} })
	reg.Register(TrackKind, func() Behavior { return &disposeRecorder{order: &disposed} })

	p, _ := newProcessor(t, newGraph(5, WarpOnce, &Clip{Name: "A"}, &Clip{Name: "B"}), Config{Registry: reg})
	tr := findNode(p, "T")
	tr.Dispose()

	if len(disposed) != 3 || disposed[2] != "T" {
		t.Errorf("dispose order = %v, want children then T", disposed)
	}
	if !tr.IsDisposed() || tr.NumChildren() != 0 || tr.ParentNode() != nil || tr.Root() != nil {
		t.Error("disposed node still bound")
	}

	tr.Dispose()
	if len(disposed) != 3 {
		t.Error("second Dispose should be a no-op")
	}
}

type disposeRecorder struct {
	NopBehavior
	order *[]string
}

func (r *disposeRecorder) OnDispose(n *Node) { *r.order = append(*r.order, n.Name()) }

func TestNodeWithoutRoot(t *testing.T) {
	n := &Node{behavior: NopBehavior{}}
	if n.Owner() != nil || n.Blackboard() != nil || n.Events() != nil {
		t.Error("detached node should have no shared state")
	}
	if n.Parent() != nil {
		t.Error("detached node Parent should be nil")
	}
}

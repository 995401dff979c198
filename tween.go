package timeline

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenKind is the model kind of TweenClip.
const TweenKind = "clip.tween"

// TweenClip eases a float64 blackboard value from From to To over the clip's
// length. The value is written under Key on every lifecycle call, so
// scrubbing backward restores earlier values.
type TweenClip struct {
	Clip
	Key  string
	From float64
	To   float64
	// Ease defaults to ease.Linear.
	Ease ease.TweenFunc
}

// Kind returns TweenKind.
func (c *TweenClip) Kind() string { return TweenKind }

// RegisterTween binds TweenKind to NewTweenBehavior.
func RegisterTween(r *Registry) {
	r.Register(TweenKind, NewTweenBehavior)
}

// NewTweenBehavior returns the behavior for TweenClip nodes.
func NewTweenBehavior() Behavior {
	return &tweenBehavior{}
}

type tweenBehavior struct {
	tween *gween.Tween
	clip  *TweenClip
}

func (b *tweenBehavior) OnInit(n *Node) {
	if err := b.bind(n); err != nil && n.Root() != nil {
		n.Root().Logger().Error("timeline: tween init failed",
			"graph", n.Root().Name(), "node", n.Name(), "err", err)
	}
}

func (b *tweenBehavior) OnEnter(n *Node, _, inner FrameData) error {
	return b.seek(n, inner.CurrentTime)
}

func (b *tweenBehavior) OnUpdate(n *Node, _, inner FrameData) error {
	return b.seek(n, inner.CurrentTime)
}

func (b *tweenBehavior) OnExit(n *Node, _, _ FrameData) error {
	return b.write(n, func(c *TweenClip) float64 { return c.To })
}

func (b *tweenBehavior) OnReverseEnter(n *Node, _, inner FrameData) error {
	return b.seek(n, inner.CurrentTime)
}

func (b *tweenBehavior) OnReverse(n *Node, _, _ FrameData) error {
	return b.write(n, func(c *TweenClip) float64 { return c.From })
}

func (b *tweenBehavior) OnReset(*Node) {
	if b.tween != nil {
		b.tween.Reset()
	}
}

func (b *tweenBehavior) OnDispose(*Node) {
	b.tween = nil
	b.clip = nil
}

// bind builds the tween from n's model. It runs at init and again lazily if
// the behavior was reused on another node.
func (b *tweenBehavior) bind(n *Node) error {
	c, ok := ModelAs[*TweenClip](n)
	if !ok {
		return fmt.Errorf("tween: model %T is not a *TweenClip", n.Model())
	}
	fn := c.Ease
	if fn == nil {
		fn = ease.Linear
	}
	b.clip = c
	b.tween = gween.New(float32(c.From), float32(c.To), float32(n.Length()), fn)
	return nil
}

// seek sets the tween to local time t and writes the eased value.
func (b *tweenBehavior) seek(n *Node, t float64) error {
	if b.tween == nil || b.clip != n.Model() {
		if err := b.bind(n); err != nil {
			return err
		}
	}
	v, _ := b.tween.Set(float32(t))
	n.Blackboard().Set(b.clip.Key, float64(v))
	return nil
}

func (b *tweenBehavior) write(n *Node, value func(*TweenClip) float64) error {
	if b.clip == nil || b.clip != n.Model() {
		if err := b.bind(n); err != nil {
			return err
		}
	}
	n.Blackboard().Set(b.clip.Key, value(b.clip))
	return nil
}

// easings maps names to gween easing functions for hosts that describe tweens
// as text.
var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// EaseByName returns the gween easing function registered under name.
func EaseByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

package timeline

import "strings"

// Factory creates a fresh behavior for one node.
type Factory func() Behavior

// Registry maps model kind keys to behavior factories. It is filled once at
// start-up and consulted only while a processor builds its tree.
//
// Kind keys are dotted paths from least to most specific ("clip",
// "clip.tween", "clip.tween.position"). Resolve tries the full key first and
// then drops trailing segments, so the most specific registration wins.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry. Every kind resolves to NopBehavior
// until something is registered.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds kind to f, replacing any previous binding.
// Panics if kind is empty or f is nil.
func (r *Registry) Register(kind string, f Factory) {
	if kind == "" {
		panic("timeline: cannot register an empty kind")
	}
	if f == nil {
		panic("timeline: cannot register a nil factory")
	}
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[kind] = f
}

// Lookup returns the factory registered for the most specific prefix of kind.
func (r *Registry) Lookup(kind string) (Factory, bool) {
	if r == nil {
		return nil, false
	}
	for key := kind; key != ""; {
		if f, ok := r.factories[key]; ok {
			return f, true
		}
		i := strings.LastIndexByte(key, '.')
		if i < 0 {
			break
		}
		key = key[:i]
	}
	return nil, false
}

// Resolve creates the behavior for kind, or NopBehavior when no prefix of
// kind is registered or the factory returns nil.
func (r *Registry) Resolve(kind string) Behavior {
	if f, ok := r.Lookup(kind); ok {
		if b := f(); b != nil {
			return b
		}
	}
	return NopBehavior{}
}

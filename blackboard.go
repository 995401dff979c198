package timeline

// BlackboardChanged is the Events key under which every Blackboard write is
// published as a BlackboardChange.
const BlackboardChanged = "blackboard.changed"

// BlackboardChange is published after a key is set or deleted. Value is nil
// and Deleted is true for deletions.
type BlackboardChange struct {
	Key     string
	Value   any
	Deleted bool
}

// Blackboard is a string-keyed store behaviors use to share state with each
// other and with the host during playback.
type Blackboard struct {
	values map[string]any
	events *Events
}

// NewBlackboard returns an empty blackboard. When events is non-nil every
// change is published on it under BlackboardChanged.
func NewBlackboard(events *Events) *Blackboard {
	return &Blackboard{values: make(map[string]any), events: events}
}

// Set stores v under key.
func (b *Blackboard) Set(key string, v any) {
	if b.values == nil {
		b.values = make(map[string]any)
	}
	b.values[key] = v
	if b.events != nil {
		Publish(b.events, BlackboardChanged, BlackboardChange{Key: key, Value: v})
	}
}

// Get returns the value stored under key.
func (b *Blackboard) Get(key string) (any, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Has reports whether key is set.
func (b *Blackboard) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

// Delete removes key. Deleting a missing key publishes nothing.
func (b *Blackboard) Delete(key string) {
	if _, ok := b.values[key]; !ok {
		return
	}
	delete(b.values, key)
	if b.events != nil {
		Publish(b.events, BlackboardChanged, BlackboardChange{Key: key, Deleted: true})
	}
}

// Len returns the number of keys.
func (b *Blackboard) Len() int {
	return len(b.values)
}

// Clear removes every key without publishing changes.
func (b *Blackboard) Clear() {
	clear(b.values)
}

// BlackboardValue returns the value under key as T. The second result is
// false when the key is missing or holds a different type.
func BlackboardValue[T any](b *Blackboard, key string) (T, bool) {
	var zero T
	if b == nil {
		return zero, false
	}
	v, ok := b.values[key]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

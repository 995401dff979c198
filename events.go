package timeline

// Events is a string-keyed publish/subscribe bus shared by all behaviors of
// one processor. Payloads are typed per subscription: a handler only receives
// values published with the same type parameter.
type Events struct {
	handlers map[string][]eventHandler
	nextID   uint64
}

type eventHandler struct {
	id uint64
	fn any
}

// Subscription identifies one registered handler.
type Subscription struct {
	events *Events
	key    string
	id     uint64
}

// NewEvents returns an empty bus.
func NewEvents() *Events {
	return &Events{}
}

// Subscribe registers fn for values of type T published under key.
// Panics if fn is nil.
func Subscribe[T any](e *Events, key string, fn func(T)) Subscription {
	if fn == nil {
		panic("timeline: cannot subscribe a nil handler")
	}
	if e.handlers == nil {
		e.handlers = make(map[string][]eventHandler)
	}
	e.nextID++
	e.handlers[key] = append(e.handlers[key], eventHandler{id: e.nextID, fn: fn})
	return Subscription{events: e, key: key, id: e.nextID}
}

// Publish delivers v to every handler subscribed under key with type T, in
// subscription order, and returns how many handlers ran. Handlers may
// subscribe or unsubscribe while being called; changes apply to the next
// Publish.
func Publish[T any](e *Events, key string, v T) int {
	if e == nil {
		return 0
	}
	list := e.handlers[key]
	if len(list) == 0 {
		return 0
	}
	snapshot := make([]eventHandler, len(list))
	copy(snapshot, list)
	called := 0
	for _, h := range snapshot {
		if fn, ok := h.fn.(func(T)); ok {
			fn(v)
			called++
		}
	}
	return called
}

// Unsubscribe removes the handler. Unsubscribing twice is a no-op.
func (s Subscription) Unsubscribe() {
	if s.events == nil {
		return
	}
	list := s.events.handlers[s.key]
	for i, h := range list {
		if h.id == s.id {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = eventHandler{}
			list = list[:len(list)-1]
			break
		}
	}
	if len(list) == 0 {
		delete(s.events.handlers, s.key)
		return
	}
	s.events.handlers[s.key] = list
}

// Exists reports whether any handler is subscribed under key.
func (e *Events) Exists(key string) bool {
	return len(e.handlers[key]) > 0
}

// Clear removes every handler.
func (e *Events) Clear() {
	clear(e.handlers)
}

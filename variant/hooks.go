package variant

import "github.com/hvml/purc-go/internal/atom"

// EventKind names a container post-change notification (spec.md §4.C).
type EventKind int

const (
	EventChange EventKind = iota
	EventGrow
	EventShrink
)

// Atom returns the interned event name atom for use in observer matching.
func (k EventKind) Atom() atom.Atom {
	switch k {
	case EventGrow:
		return atom.EventGrow
	case EventShrink:
		return atom.EventShrink
	default:
		return atom.EventChange
	}
}

// Event is delivered to a container's listeners after a successful
// mutation. Affected holds the variants added, removed, or replaced.
type Event struct {
	Kind     EventKind
	Affected []*Variant
}

// Listener observes a container's post-change events. It must not mutate
// the publishing container.
type Listener func(Event)

// hooks is embedded in each container and centralizes listener bookkeeping.
type hooks struct {
	listeners []Listener
}

// Observe registers l to run on every future post-change event.
func (h *hooks) Observe(l Listener) {
	h.listeners = append(h.listeners, l)
}

// emit invokes every registered listener synchronously, in registration
// order.
func (h *hooks) emit(ev Event) {
	for _, l := range h.listeners {
		l(ev)
	}
}

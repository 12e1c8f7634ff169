// Package message implements the cross-coroutine envelope and the
// per-coroutine FIFO queue it travels through (spec.md §3, §4.F).
package message

import "github.com/hvml/purc-go/variant"

// Type is the envelope's message type.
type Type int

const (
	Event Type = iota
	Request
	Response
	Void
)

func (t Type) String() string {
	switch t {
	case Event:
		return "event"
	case Request:
		return "request"
	case Response:
		return "response"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// Target names the seven destinations an envelope may be routed to, plus
// Broadcast, which the router (package scheduler) fans out to every
// coroutine in the heap.
type Target int

const (
	Session Target = iota
	Workspace
	PlainWindow
	Widget
	DOM
	User
	Coroutine
	Broadcast
)

func (t Target) String() string {
	switch t {
	case Session:
		return "session"
	case Workspace:
		return "workspace"
	case PlainWindow:
		return "plainwindow"
	case Widget:
		return "widget"
	case DOM:
		return "dom"
	case User:
		return "user"
	case Coroutine:
		return "coroutine"
	case Broadcast:
		return "broadcast"
	default:
		return "unknown"
	}
}

// ReduceOpt names how two pending events addressed to the same observer
// should combine, before the first is dequeued and acted on. Queue does
// not apply it: Append keeps every envelope whatever its ReduceOpt, and
// the value only travels with the envelope (including on the wire).
type ReduceOpt int

const (
	// ReduceNone keeps every event distinct; the default.
	ReduceNone ReduceOpt = iota
	// ReduceOverlay discards an older pending event of the same name in
	// favor of a newer one (the observer only ever acts on the latest).
	ReduceOverlay
)

// ElementType names how Envelope.ElementValue identifies its element.
type ElementType int

const (
	ElementID ElementType = iota
	ElementHandle
	ElementCSS
	ElementVariant
)

// Envelope is the message unit routed between coroutines, the renderer
// channel, and the DOM/window/widget targets (spec.md §3).
type Envelope struct {
	Type      Type
	Target    Target
	TargetValue uint64
	ReduceOpt ReduceOpt

	SourceURI *variant.Variant

	ElementType  ElementType
	ElementValue *variant.Variant

	EventName *variant.Variant

	DataType string
	Data     *variant.Variant
}

// Clone makes a shallow copy of the envelope, sharing the underlying
// variants (which are reference-counted) but independent of the
// original's Target/TargetValue so a broadcast fan-out can retarget each
// copy without the clones aliasing each other's routing fields.
func (e *Envelope) Clone() *Envelope {
	clone := *e
	if e.SourceURI != nil {
		e.SourceURI.Ref()
	}
	if e.ElementValue != nil {
		e.ElementValue.Ref()
	}
	if e.EventName != nil {
		e.EventName.Ref()
	}
	if e.Data != nil {
		e.Data.Ref()
	}
	return &clone
}

// RetargetCoroutine returns a clone of e addressed at a single coroutine,
// the shape a broadcast fan-out hands to each destination queue.
func (e *Envelope) RetargetCoroutine(id uint64) *Envelope {
	clone := e.Clone()
	clone.Target = Coroutine
	clone.TargetValue = id
	return clone
}

// EventNameParts splits an event name of the form "<type>[:<subtype>]"
// as required by the dispatcher (spec.md §4.H).
func EventNameParts(name string) (typ, subtype string) {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}

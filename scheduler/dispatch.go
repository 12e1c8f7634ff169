// Package scheduler implements dispatch_msg: the run-loop entry point
// that drains each ready coroutine's queue, matches events against
// observers, and advances the VDOM one step per matched observer
// (spec.md §4.H).
package scheduler

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hvml/purc-go/coroutine"
	"github.com/hvml/purc-go/internal/atom"
	"github.com/hvml/purc-go/message"
	"github.com/hvml/purc-go/variant"
)

// StepFunc advances one execution frame. It reports wait=true when the
// frame yields awaiting a future event, leaving it on the stack; a
// returned error aborts the step without popping the frame. The
// dispatcher doesn't implement VDOM execution itself — SPEC_FULL's VDOM
// builder owns that — this is the seam it plugs into.
type StepFunc func(co *coroutine.Coroutine, fr *coroutine.Frame) (wait bool, err error)

// Resolver looks up the coroutine that owns a DOM/page/window/widget
// handle, implementing target_dom_handle / target_page_handle.
type Resolver func(target message.Target, value uint64) (atom.Atom, bool)

// Dispatcher holds the process-wide state dispatch_msg operates over.
type Dispatcher struct {
	Heap    *coroutine.Heap
	Step    StepFunc
	Resolve Resolver
}

// New returns a Dispatcher wired to heap, step, and resolve. step and
// resolve may be nil; a nil step is a no-op that never waits, a nil
// resolve drops every non-coroutine/non-broadcast message without error.
func New(heap *coroutine.Heap, step StepFunc, resolve Resolver) *Dispatcher {
	if step == nil {
		step = func(*coroutine.Coroutine, *coroutine.Frame) (bool, error) { return false, nil }
	}
	return &Dispatcher{Heap: heap, Step: step, Resolve: resolve}
}

// DispatchMsg is the run-loop entry point: for each coroutine in heap
// order whose state is Ready or Stopped, it drains the queue one
// message at a time (spec.md §4.H).
func (d *Dispatcher) DispatchMsg() error {
	for _, co := range d.Heap.Ordered() {
		if co.State != coroutine.Ready && co.State != coroutine.Stopped {
			continue
		}
		for {
			env, ok := co.Queue.Get()
			if !ok {
				break
			}
			if err := d.dispatchOne(co, env); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dispatcher) dispatchOne(co *coroutine.Coroutine, env *message.Envelope) error {
	switch env.Type {
	case message.Event:
		return d.dispatchEvent(co, env)
	case message.Request, message.Response, message.Void:
		// Reserved in this revision: receipt is a logic error (spec.md
		// §4.H). The host run-loop is expected to treat this as fatal.
		return message.ErrReserved(env.Type)
	default:
		return nil
	}
}

func (d *Dispatcher) dispatchEvent(co *coroutine.Coroutine, env *message.Envelope) error {
	name := ""
	if env.EventName != nil {
		name, _ = env.EventName.AsString()
	}
	typeName, subtype := message.EventNameParts(name)
	eventType := atom.Intern(atom.MSG, typeName)

	observed := env.ElementValue

	var matched []*coroutine.Observer
	for _, ob := range co.Observers {
		if coroutine.IsObserverMatch(ob, observed, eventType, subtype) {
			matched = append(matched, ob)
		}
	}

	// Observer invocation order within one event follows declaration
	// order (spec.md §5): each matched observer pushes/pops a frame on
	// the same coroutine stack, so they run one at a time in list order
	// rather than concurrently — concurrency belongs across independent
	// coroutines, not within one's own frame stack.
	for _, ob := range matched {
		if err := d.onObserverMatched(co, ob, env); err != nil {
			return err
		}
	}
	return nil
}

// onObserverMatched implements the frame-push sequence spec.md §4.H
// describes: a new frame keyed by the observer's position, scope, and
// element, with $? bound to the payload and the exclamation-variables
// _eventName/_eventSource set, followed by one single-step VDOM advance.
func (d *Dispatcher) onObserverMatched(co *coroutine.Coroutine, ob *coroutine.Observer, env *message.Envelope) error {
	fr := coroutine.NewFrame(ob.Position, ob.Scope, ob.Element)
	fr.Question = env.Data

	if env.EventName != nil {
		fr.Exclamation["_eventName"] = env.EventName
	}
	if env.SourceURI != nil {
		fr.Exclamation["_eventSource"] = env.SourceURI
	}

	co.PushFrame(fr)

	wait, err := d.Step(co, fr)
	if err != nil {
		return err
	}
	if wait {
		fr.State = coroutine.Wait
		co.State = coroutine.Wait
		return nil
	}
	co.PopFrame()
	return nil
}

// PostEvent builds a message envelope for eventName/payload and hands it
// to the cross-coroutine router, attaching sourceURI (spec.md §4.H,
// post_event).
func (d *Dispatcher) PostEvent(co *coroutine.Coroutine, eventName string, payload, sourceURI *variant.Variant) error {
	name := variant.MustString(eventName)
	env := &message.Envelope{
		Type:      message.Event,
		Target:    message.Coroutine,
		SourceURI: sourceURI,
		EventName: name,
		Data:      payload,
	}
	return d.Route(env)
}

// Route implements the external-channel intake half of dispatch_msg:
// coroutine-targeted messages go straight to that coroutine's queue,
// broadcast targets fan out to every live coroutine, and DOM/window/
// widget/plain-window targets are translated through Resolve and
// re-posted as coroutine events (dispatch_move_buffer_event).
func (d *Dispatcher) Route(env *message.Envelope) error {
	switch env.Target {
	case message.Coroutine:
		co, ok := d.Heap.Get(atom.Atom(env.TargetValue))
		if !ok {
			return nil
		}
		co.Queue.Append(env)
		return nil
	case message.Broadcast:
		destinations := map[uint64]*message.Queue{}
		for _, co := range d.Heap.Ordered() {
			destinations[uint64(co.ID)] = co.Queue
		}
		order := maps.Keys(destinations)
		slices.Sort(order)
		message.Broadcast(env, destinations, order)
		return nil
	default:
		if d.Resolve == nil {
			return nil
		}
		id, ok := d.Resolve(env.Target, env.TargetValue)
		if !ok {
			return nil
		}
		retargeted := env.RetargetCoroutine(uint64(id))
		return d.Route(retargeted)
	}
}

// Package coroutine implements the cooperative execution unit (spec.md
// §3, §4.G): a per-coroutine message queue, a stack of execution frames,
// and an observer list, all keyed in the process-wide heap by atom id.
package coroutine

import (
	"github.com/hvml/purc-go/internal/atom"
	"github.com/hvml/purc-go/message"
	"github.com/hvml/purc-go/variant"
)

// State is the coroutine's run state.
type State int

const (
	Ready State = iota
	Run
	Wait
	Stopped
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Run:
		return "run"
	case Wait:
		return "wait"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Frame is one execution-frame entry in a coroutine's stack. Position
// names the VDOM node the frame is executing (the "ops dispatcher keyed
// by the observer's position node" of spec.md §4.H); Scope is the
// variable scope active while executing it.
type Frame struct {
	Position string
	Scope    interface{}
	Element  interface{}

	// Question holds $? for this frame: the payload bound by the
	// observer match that pushed it.
	Question *variant.Variant
	// Exclamation holds the frame-local exclamation-variables, at least
	// _eventName and _eventSource per spec.md §4.H.
	Exclamation map[string]*variant.Variant

	// State is Ready until a single step yields with Wait.
	State State
}

// NewFrame returns a fresh, Ready frame for position.
func NewFrame(position string, scope interface{}, element interface{}) *Frame {
	return &Frame{
		Position:    position,
		Scope:       scope,
		Element:     element,
		Exclamation: map[string]*variant.Variant{},
		State:       Ready,
	}
}

// Coroutine is one cooperatively-scheduled task (spec.md §3).
type Coroutine struct {
	ID    atom.Atom
	State State
	Queue *message.Queue

	frames []*Frame

	Observers []*Observer

	VDOM interface{}
	EDOM interface{}
	uri  string
}

// New creates a coroutine identified by id, ready to receive messages.
func New(id atom.Atom, uri string) *Coroutine {
	return &Coroutine{
		ID:    id,
		State: Ready,
		Queue: message.NewQueue(),
		uri:   uri,
	}
}

// PushFrame pushes fr onto the execution stack.
func (c *Coroutine) PushFrame(fr *Frame) {
	c.frames = append(c.frames, fr)
}

// PopFrame pops and returns the top frame, or nil if the stack is empty.
func (c *Coroutine) PopFrame() *Frame {
	n := len(c.frames)
	if n == 0 {
		return nil
	}
	fr := c.frames[n-1]
	c.frames = c.frames[:n-1]
	return fr
}

// TopFrame returns the top frame without popping it, or nil if empty.
func (c *Coroutine) TopFrame() *Frame {
	n := len(c.frames)
	if n == 0 {
		return nil
	}
	return c.frames[n-1]
}

// FrameDepth reports how many frames are currently stacked.
func (c *Coroutine) FrameDepth() int {
	return len(c.frames)
}

// Name and URI implement errors.Origin so error messages can name the
// offending coroutine.
func (c *Coroutine) Name() string {
	return atom.String(atom.Default, c.ID)
}

// URI returns the coroutine's backing URI string.
func (c *Coroutine) URI() string {
	return c.uri
}

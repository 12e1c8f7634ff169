package message

import "github.com/hvml/purc-go/event"

// Channel is the bidirectional renderer channel of spec.md §6: envelopes
// flow Out to the renderer and In from it. Each direction is an
// event.Stream so a full buffer drops rather than blocks the scheduler,
// matching how the rest of this tree treats the renderer as best-effort.
type Channel struct {
	In  event.Stream[*Envelope]
	Out event.Stream[*Envelope]
}

// NewChannel returns a Channel with both directions buffered to size.
func NewChannel(size int) *Channel {
	return &Channel{
		In:  event.NewStream[*Envelope](size),
		Out: event.NewStream[*Envelope](size),
	}
}

// Send queues env for the renderer, reporting false if the outbound
// buffer is full.
func (c *Channel) Send(env *Envelope) bool {
	return c.Out.Send(env)
}

// Close closes both directions. Must not be called more than once.
func (c *Channel) Close() {
	c.In.Close()
	c.Out.Close()
}

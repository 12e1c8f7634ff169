package message

import "github.com/hvml/purc-go/errors"

// Numeric codes for the message error segment, at the start of the
// BaseInstance range; packages coroutine and scheduler register no codes
// of their own.
const (
	CodeReservedMessageType errors.Code = errors.BaseInstance + iota
	CodeInvalidEventName
)

func init() {
	errors.RegisterSegment(errors.Segment{
		First: CodeReservedMessageType,
		Last:  CodeInvalidEventName,
		Messages: []string{
			"request/response/void messages are reserved in this revision",
			"invalid event name",
		},
	})
}

// ErrReserved reports receipt of a Request, Response, or Void message,
// which spec.md §4.H treats as a logic error in this revision.
func ErrReserved(t Type) error {
	return errors.E(errors.NotImplemented, "message type %s is reserved", t)
}

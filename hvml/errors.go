package hvml

import "github.com/hvml/purc-go/errors"

// Numeric codes for the tokenizer's last-error segment (spec.md §4.A),
// disjoint from variant's 100+ range per the component base assignment.
const (
	CodeUnexpectedData errors.Code = errors.BaseHVML + iota
	CodeInvalidCharRef
	CodeMaxDepthExceeded
	CodeInternal
	// CodeSurrogateCharRef is its own code, distinct from
	// CodeInvalidCharRef, so a caller can tell a numeric character
	// reference that resolved to a UTF-16 surrogate (spec.md §8's
	// SURROGATE_CHARACTER_REFERENCE) apart from one that was merely
	// out of range or a noncharacter.
	CodeSurrogateCharRef
)

func init() {
	errors.RegisterSegment(errors.Segment{
		First: CodeUnexpectedData,
		Last:  CodeSurrogateCharRef,
		Messages: []string{
			"unexpected data",
			"invalid character reference",
			"max depth exceeded",
			"internal tokenizer error",
			"surrogate character reference",
		},
	})
}

func codeForKind(k errors.Kind) errors.Code {
	switch k {
	case errors.UnexpectedData:
		return CodeUnexpectedData
	case errors.BadEncoding:
		return CodeSurrogateCharRef
	case errors.InvalidValue:
		return CodeInvalidCharRef
	case errors.TooLarge:
		return CodeMaxDepthExceeded
	case errors.ErrInternal:
		return CodeInternal
	default:
		return errors.OK
	}
}

// fail writes err's kind and code to the tokenizer's slot, if any, and
// returns err unchanged.
func (t *Tokenizer) fail(err error) error {
	if t.slot == nil || err == nil {
		return err
	}
	var e *errors.Error
	if errors.As(err, &e) {
		t.slot.Set(codeForKind(e.Kind), e.Kind, false)
	}
	return err
}

package variant

import "github.com/hvml/purc-go/errors"

// Numeric codes for the variant subsystem's last-error segment (spec.md
// §4.A, §4.C).
const (
	CodeInvalidValue errors.Code = errors.BaseVariant + iota
	CodeWrongDataType
	CodeInvalidOperand
	CodeOutOfMemory
	CodeDuplicated
)

func init() {
	errors.RegisterSegment(errors.Segment{
		First: CodeInvalidValue,
		Last:  CodeDuplicated,
		Messages: []string{
			"invalid value",
			"wrong data type",
			"invalid operand",
			"out of memory",
			"duplicated",
		},
	})
}

func codeForKind(k errors.Kind) errors.Code {
	switch k {
	case errors.InvalidValue:
		return CodeInvalidValue
	case errors.WrongDataType:
		return CodeWrongDataType
	case errors.InvalidOperand:
		return CodeInvalidOperand
	case errors.OutOfMemory:
		return CodeOutOfMemory
	case errors.Duplicated:
		return CodeDuplicated
	default:
		return errors.OK
	}
}

// report writes err's kind and code to slot unless silently is set, per the
// "silent mutator" rule: a caller that asked to fail silently must not
// disturb the last-error slot. It returns err unchanged so call sites can
// write `return report(slot, err, silently)`.
func report(slot *errors.Slot, err error, silently bool) error {
	if err == nil || silently || slot == nil {
		return err
	}
	var e *errors.Error
	if errors.As(err, &e) {
		slot.Set(codeForKind(e.Kind), e.Kind, false)
	}
	return err
}

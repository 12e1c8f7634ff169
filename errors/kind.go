package errors

// Canonical, subsystem-independent error kinds (spec.md §7).
const (
	BadSyscall      Kind = "bad syscall"
	BadStdlib       Kind = "bad stdlib call"
	OutOfMemory     Kind = "out of memory"
	InvalidValue    Kind = "invalid value"
	Duplicated      Kind = "duplicated"
	NotImplemented  Kind = "not implemented"
	NoInstance      Kind = "no instance"
	TooLarge        Kind = "too large"
	BadEncoding     Kind = "bad encoding"
	NotSupported    Kind = "not supported"
	OutputFailure   Kind = "output failure"
	TooSmallBuffer  Kind = "too small buffer"
	NullObject      Kind = "null object"
	IncompleteObject Kind = "incomplete object"
	NotExists       Kind = "not exists"
	WrongArgs       Kind = "wrong args"
	WrongStage      Kind = "wrong stage"
	UnexpectedData  Kind = "unexpected data"
	Overflow        Kind = "overflow"
	Unknown         Kind = "unknown error"

	// Variant-specific kinds (spec.md §4.C).
	WrongDataType   Kind = "wrong data type"
	InvalidOperand  Kind = "invalid operand"

	// ErrInternal flags an unreachable branch reached anyway: always a bug.
	ErrInternal Kind = "internal error"
)

// Code is a numeric error code, assigned from a subsystem's disjoint range.
type Code int32

// Subsystem base codes, mirroring the original PurC `purc-errors.h` ranges.
const (
	BaseVariant  Code = 100
	BaseRWStream Code = 200
	BaseEJSON    Code = 1100
	BaseHVML     Code = 1200
	BaseHTML     Code = 1300
	BaseXML      Code = 1500
	BaseVDOM     Code = 2100
	BaseEDOM     Code = 2200
	BaseVCM      Code = 2300
	BaseExecutor Code = 2400
	BaseInstance Code = 2500
)

// OK is the success code, shared by every subsystem.
const OK Code = 0

// Package errors implements the PurC standard error type.
// It's heavily influenced by Rob Pike's `errors` package in the Upspin
// project:
// 	https://commandcenter.blogspot.com/2017/12/error-handling-in-upspin.html
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error is the default PurC error type.
// At least one of the error fields must be set.
// See E() for its usage.
type Error struct {
	// Kind is the kind of error.
	Kind Kind

	// Description of the error.
	Description string

	// Range holds the error source location, when known.
	Range Range

	// Origin identifies the entity (coroutine, tokenizer instance, ...)
	// that originated the error.
	Origin Origin

	// Err holds the underlying error.
	Err error
}

type (
	// Kind defines the kind of an error.
	Kind string

	// Origin is the entity that originated an error. Coroutines implement
	// it so error messages can name the offending coroutine.
	Origin interface {
		Name() string
		URI() string
	}
)

const separator = ": "

// E builds an error value from its arguments.
// There must be at least one argument or E panics.
// The type of each argument determines its meaning.
// Multiple underlying errors can be provided and in such case E() builds a
// *List of errors as its underlying error.
// If multiple arguments of same type are presented (and it's not an
// underlying error type), only the last one is recorded.
//
// The supported types are:
//
//	errors.Kind
//		The kind of error (eg.: InvalidValue, NotExists, etc).
//	errors.Range
//		The source range where the error originated.
//	errors.Origin
//		The entity that originated the error.
//	string
//		The error description. It supports formatting using Go's fmt verbs
//		as long as the arguments are not one of the defined types.
//
// The underlying error types are:
//
//	*List
//		The underlying error list wrapped by this one.
//	error
//		The underlying error that triggered this one.
//
// When the underlying error is a single *Error, fields below are promoted
// from it when absent on this one: Kind, Origin, Range. This avoids
// duplicated messages when errors wrap other *Error values.
func E(args ...interface{}) *Error {
	if len(args) == 0 {
		panic("called with no args")
	}

	var format *string
	fmtargs := []interface{}{}

	e := &Error{}
	defer func() {
		if e.isEmpty() {
			panic(errors.New("empty error"))
		}
	}()

	errs := L()
	for _, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case Range:
			e.Range = arg
		case Origin:
			e.Origin = arg
		case *List:
			errs.Append(arg)
		case error:
			errs.Append(arg)
		case string:
			val := arg
			if format == nil {
				format = &val
			} else {
				fmtargs = append(fmtargs, val)
			}
		default:
			fmtargs = append(fmtargs, arg)
		}
	}

	if format != nil {
		e.Description = fmt.Sprintf(*format, fmtargs...)
	} else if len(fmtargs) > 0 {
		panic(fmt.Errorf("errors.E called with arbitrary types %#v and no format", fmtargs))
	}

	if len(errs.errs) == 0 {
		return e
	}

	if len(errs.errs) > 1 {
		wrappingArgs := []interface{}{}
		for _, arg := range args {
			switch arg.(type) {
			case error, *Error, *List:
			default:
				wrappingArgs = append(wrappingArgs, arg)
			}
		}

		for i, el := range errs.errs {
			args := make([]interface{}, len(wrappingArgs))
			copy(args, wrappingArgs)
			args = append(args, el)
			errs.errs[i] = E(args...)
		}

		e.Err = errs
		return e
	}

	e.Err = errs.errs[0]

	if prev, ok := e.Err.(*Error); ok {
		if e.Kind == "" {
			e.Kind = prev.Kind
		}
		if prev.Kind == e.Kind {
			prev.Kind = ""
		}
		if e.Range == (Range{}) {
			e.Range = prev.Range
		}
		if prev.Range == e.Range {
			prev.Range = Range{}
		}
		if e.Origin == nil {
			e.Origin = prev.Origin
		}
		if equalOrigin(prev.Origin, e.Origin) {
			prev.Origin = nil
		}
		if prev.Description == e.Description {
			prev.Description = ""
		}
		if prev.isEmpty() {
			e.Err = prev.Err
		}
	}

	return e
}

func (e *Error) isEmpty() bool {
	return e.Range.Empty() && e.Kind == "" && e.Description == "" && e.Origin == nil
}

func (e *Error) error(fields []interface{}, verbose bool) string {
	var errParts []string
	for _, arg := range fields {
		switch v := arg.(type) {
		case *List:
			return v.Error()
		case Range:
			if !v.Empty() {
				if verbose {
					errParts = append(errParts, v.Verbose())
				} else {
					errParts = append(errParts, v.String())
				}
			}
		case Kind:
			if v != "" {
				errParts = append(errParts, string(v))
			}
		case string:
			if v != "" {
				errParts = append(errParts, v)
			}
		case Origin:
			if v != nil {
				if verbose {
					errParts = append(errParts, fmt.Sprintf("at %q (uri=%q)", v.Name(), v.URI()))
				} else {
					errParts = append(errParts, fmt.Sprintf("at %q", v.Name()))
				}
			}
		case error:
			if v != nil {
				errmsg := ""
				if e2, ok := v.(*Error); ok {
					errmsg = e2.error(e2.defaultErrorFields(), verbose)
				} else {
					errmsg = v.Error()
				}
				errParts = append(errParts, errmsg)
			}
		case nil:
		default:
			panic(fmt.Errorf("unexpected errors.E type: %+v", arg))
		}
	}
	return strings.Join(errParts, separator)
}

func (e *Error) defaultErrorFields() []interface{} {
	return []interface{}{e.Range, e.Kind, e.Description, e.Origin, e.Err}
}

// Error returns the error message.
func (e *Error) Error() string {
	return e.error(e.defaultErrorFields(), false)
}

// Detailed returns a detailed error message.
func (e *Error) Detailed() string {
	return e.error(e.defaultErrorFields(), true)
}

// AsList returns the error as a list.
// If its underlying error is a *List, it just returns it, because they're
// already explicitly wrapped.
func (e *Error) AsList() *List {
	var el *List
	if errors.As(e, &el) {
		return el
	}
	return L(e)
}

// Message returns the error message without the range/origin metadata.
func (e *Error) Message() string {
	return e.error([]interface{}{e.Kind, e.Description, e.Origin, e.Err}, false)
}

// Is tells if err matches the target error.
// The target error must be of errors.Error type and it will try to match:
// - Kind
// - Description
// - Range
// Any fields absent (empty) on the target are ignored, even if present on e
// (partial match).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && e.Kind != t.Kind {
		return false
	}
	if t.Description != "" && e.Description != t.Description {
		return false
	}
	if !t.Range.Empty() && e.Range != t.Range {
		return false
	}
	return true
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind tells if err is of kind k.
func IsKind(err error, k Kind) bool {
	return Is(err, E(k))
}

// Is is just an alias to Go stdlib errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is just an alias to Go stdlib errors.As
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func equalOrigin(a, b Origin) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return a.Name() == b.Name() && a.URI() == b.URI()
}

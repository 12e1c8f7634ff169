// Package dvobj implements the built-in dynamic-variable objects exposed to
// every HVML document: logical, system, and doc (spec.md §4.I).
package dvobj

import (
	"context"
	"unicode/utf8"

	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/scheduler/resource"
	"github.com/hvml/purc-go/variant"
)

// nativeCallGate bounds how many DVObj native calls run concurrently
// across the whole process, reusing the teacher's semaphore-backed
// resource pool rather than letting every coroutine's call through
// unbounded.
var nativeCallGate = resource.NewBounded(runtimeGateWidth)

const runtimeGateWidth = 32

// Truthy coerces v to a boolean following the per-kind falsy table every
// DVObj predicate and every `<test>`/`<choose>` condition shares (spec.md
// §8 scenario 1): undefined, null, false, a zero number of any numeric
// kind, an empty string/atom-string, and an empty container are falsy;
// everything else, including every native-object and byte-sequence value
// regardless of length, is truthy.
func Truthy(v *variant.Variant) bool {
	switch v.Kind() {
	case variant.Undefined, variant.Null:
		return false
	case variant.Boolean:
		b, _ := v.AsBool()
		return b
	case variant.Number, variant.LongDouble:
		f, _ := v.AsFloat64()
		return f != 0
	case variant.LongInt, variant.ULongInt:
		f, _ := v.AsFloat64()
		return f != 0
	case variant.String, variant.AtomString:
		// StringCharCount only tracks String's precomputed rune count;
		// AtomString never sets it, so count runes directly here instead
		// of reporting every atom-string as empty.
		s, _ := v.AsString()
		return utf8.RuneCountInString(s) != 0
	case variant.Object:
		return v.AsObject().Len() != 0
	case variant.Array:
		return v.AsArray().Len() != 0
	case variant.Set:
		return v.AsSet().Len() != 0
	default:
		// Exception, Dynamic, Native, ByteSequence: always truthy.
		return true
	}
}

// NewLogical builds the logical DVObj: predicates `not`, `and`, `or` that
// coerce every argument via Truthy.
func NewLogical() *variant.Variant {
	obj := variant.NewObject()
	slot := errors.NewSlot()

	set(obj, slot, "not", func(args []*variant.Variant) (*variant.Variant, error) {
		if len(args) < 1 {
			return nil, errors.E(errors.WrongArgs, "logical.not requires one argument")
		}
		return variant.NewBoolean(!Truthy(args[0])), nil
	})

	set(obj, slot, "and", func(args []*variant.Variant) (*variant.Variant, error) {
		if len(args) < 1 {
			return nil, errors.E(errors.WrongArgs, "logical.and requires at least one argument")
		}
		result := true
		for _, a := range args {
			result = result && Truthy(a)
		}
		return variant.NewBoolean(result), nil
	})

	set(obj, slot, "or", func(args []*variant.Variant) (*variant.Variant, error) {
		if len(args) < 1 {
			return nil, errors.E(errors.WrongArgs, "logical.or requires at least one argument")
		}
		result := false
		for _, a := range args {
			result = result || Truthy(a)
		}
		return variant.NewBoolean(result), nil
	})

	return obj
}

func set(obj *variant.Variant, slot *errors.Slot, name string, get variant.Getter) {
	gated := func(args []*variant.Variant) (*variant.Variant, error) {
		ctx := context.Background()
		if !nativeCallGate.Acquire(ctx) {
			return nil, errors.E(errors.OutputFailure, "DVObj call gate could not be acquired")
		}
		defer nativeCallGate.Release()
		return get(args)
	}
	dyn := variant.NewDynamic(gated, nil)
	if err := obj.AsObject().Set(slot, name, dyn, false); err != nil {
		panic(err)
	}
}

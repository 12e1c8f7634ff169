// Package variant implements the interpreter's uniform tagged value
// (spec.md §3, §4.C): a reference-counted union of scalar, container, and
// native-object kinds shared by every other component in the tree.
package variant

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/internal/atom"
)

// Kind identifies a Variant's tag. Type predicates and casts switch on Kind
// alone and never allocate.
type Kind int

const (
	Undefined Kind = iota
	Null
	Boolean
	Exception
	Number
	LongInt
	ULongInt
	LongDouble
	AtomString
	String
	ByteSequence
	Dynamic
	Native
	Object
	Array
	Set
)

// String names a Kind for diagnostics and log fields.
func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Exception:
		return "exception"
	case Number:
		return "number"
	case LongInt:
		return "longint"
	case ULongInt:
		return "ulongint"
	case LongDouble:
		return "longdouble"
	case AtomString:
		return "atomstring"
	case String:
		return "string"
	case ByteSequence:
		return "bsequence"
	case Dynamic:
		return "dynamic"
	case Native:
		return "native"
	case Object:
		return "object"
	case Array:
		return "array"
	case Set:
		return "set"
	default:
		return "unknown"
	}
}

// Getter and Setter are a dynamic variant's property accessor pair. Both
// receive the calling coroutine's argument list as variants and return a
// result variant plus error.
type Getter func(args []*Variant) (*Variant, error)
type Setter func(args []*Variant) (*Variant, error)

// Variant is the interpreter's tagged value. The zero value is not valid;
// use one of the New* constructors. Every Variant starts life with a
// reference count of 1, held by whoever constructed it.
type Variant struct {
	kind Kind
	refc int32

	b    bool
	f64  float64
	i64  int64
	u64  uint64
	ld   float64
	atom atom.Atom

	str     string
	nrChars int

	bytes []byte

	getter Getter
	setter Setter

	native *NativeOps

	obj *Object
	arr *Array
	set *Set

	exc *Variant
}

func newVariant(k Kind) *Variant {
	return &Variant{kind: k, refc: 1}
}

// Kind reports the variant's tag.
func (v *Variant) Kind() Kind { return v.kind }

// RefCount reports the current reference count. Intended for tests and
// diagnostics only.
func (v *Variant) RefCount() int32 { return atomic.LoadInt32(&v.refc) }

// Ref increments the reference count and returns v, so callers can write
// `stored = value.Ref()`.
func (v *Variant) Ref() *Variant {
	atomic.AddInt32(&v.refc, 1)
	return v
}

// Unref decrements the reference count. When it reaches zero the variant's
// release routine runs (dropping references it holds on children) and the
// variant becomes unusable.
//
// Unlike the original C implementation, release does not return the slot to
// a per-type free list: the Go garbage collector already reclaims it, and a
// manual pool would fight the allocator rather than help it.
func (v *Variant) Unref() {
	if atomic.AddInt32(&v.refc, -1) > 0 {
		return
	}
	v.release()
}

func (v *Variant) release() {
	switch v.kind {
	case Object:
		v.obj.releaseAll()
	case Array:
		v.arr.releaseAll()
	case Set:
		v.set.releaseAll()
	case Exception:
		if v.exc != nil {
			v.exc.Unref()
		}
	case Native:
		if v.native != nil && v.native.OnRelease != nil {
			v.native.OnRelease(v.native.Entity)
		}
	}
}

// NewUndefined returns the singleton-shaped undefined variant. Each call
// allocates a fresh instance since the variant is mutable via reference
// counting; callers needing a shared sentinel should cache it themselves.
func NewUndefined() *Variant { return newVariant(Undefined) }

// NewNull returns a null variant.
func NewNull() *Variant { return newVariant(Null) }

// NewBoolean returns a boolean variant.
func NewBoolean(b bool) *Variant {
	v := newVariant(Boolean)
	v.b = b
	return v
}

// NewNumber returns a double-precision number variant.
func NewNumber(f float64) *Variant {
	v := newVariant(Number)
	v.f64 = f
	return v
}

// NewLongInt returns a signed 64-bit integer variant.
func NewLongInt(i int64) *Variant {
	v := newVariant(LongInt)
	v.i64 = i
	return v
}

// NewULongInt returns an unsigned 64-bit integer variant.
func NewULongInt(u uint64) *Variant {
	v := newVariant(ULongInt)
	v.u64 = u
	return v
}

// NewLongDouble returns an extended-precision number variant. Go has no
// native long double; it is represented as float64.
func NewLongDouble(f float64) *Variant {
	v := newVariant(LongDouble)
	v.ld = f
	return v
}

// NewString returns a string variant. s must be valid UTF-8.
func NewString(s string) (*Variant, error) {
	if !utf8.ValidString(s) {
		return nil, errors.E(errors.BadEncoding, "string is not valid UTF-8")
	}
	v := newVariant(String)
	v.str = s
	v.nrChars = utf8.RuneCountInString(s)
	return v, nil
}

// MustString is NewString but panics on invalid UTF-8. Intended for
// constants known at compile time.
func MustString(s string) *Variant {
	v, err := NewString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// NewAtomString interns s in the default atom bucket and returns a variant
// carrying its identity.
func NewAtomString(s string) *Variant {
	v := newVariant(AtomString)
	v.atom = atom.Intern(atom.Default, s)
	v.str = s
	return v
}

// NewByteSequence returns a byte-sequence variant. The bytes are copied.
func NewByteSequence(p []byte) *Variant {
	v := newVariant(ByteSequence)
	v.bytes = append([]byte(nil), p...)
	return v
}

// NewDynamic returns a dynamic variant wrapping a getter/setter pair.
func NewDynamic(get Getter, set Setter) *Variant {
	v := newVariant(Dynamic)
	v.getter = get
	v.setter = set
	return v
}

// NewException wraps another variant as the payload of an exception,
// grounded on the original implementation's exception-carries-a-sub-variant
// design (pcvariant_make_exception).
func NewException(payload *Variant) *Variant {
	v := newVariant(Exception)
	v.exc = payload
	return v
}

// ExceptionPayload returns the wrapped variant of an exception, or nil if v
// is not an exception.
func (v *Variant) ExceptionPayload() *Variant {
	if v.kind != Exception {
		return nil
	}
	return v.exc
}

// AsBool returns the boolean payload and whether v was a boolean variant.
func (v *Variant) AsBool() (bool, bool) {
	if v.kind != Boolean {
		return false, false
	}
	return v.b, true
}

// AsFloat64 coerces a numeric-kinded variant to float64, the common
// representation used for arithmetic and stringification.
func (v *Variant) AsFloat64() (float64, bool) {
	switch v.kind {
	case Number:
		return v.f64, true
	case LongInt:
		return float64(v.i64), true
	case ULongInt:
		return float64(v.u64), true
	case LongDouble:
		return v.ld, true
	default:
		return 0, false
	}
}

// AsString returns the string payload for String and AtomString variants.
func (v *Variant) AsString() (string, bool) {
	if v.kind == String || v.kind == AtomString {
		return v.str, true
	}
	return "", false
}

// StringCharCount returns the string variant's character count in O(1), the
// invariant spec.md §3 requires independent of its byte length.
func (v *Variant) StringCharCount() (int, bool) {
	if v.kind != String {
		return 0, false
	}
	return v.nrChars, true
}

// AsBytes returns the byte-sequence payload.
func (v *Variant) AsBytes() ([]byte, bool) {
	if v.kind != ByteSequence {
		return nil, false
	}
	return v.bytes, true
}

// Atom returns the interned identity of an AtomString variant.
func (v *Variant) Atom() (atom.Atom, bool) {
	if v.kind != AtomString {
		return 0, false
	}
	return v.atom, true
}

// Call invokes a dynamic or native variant's callable form.
func (v *Variant) Call(args []*Variant) (*Variant, error) {
	switch v.kind {
	case Dynamic:
		if v.getter == nil {
			return nil, errors.E(errors.NotSupported, "dynamic variant has no getter")
		}
		return v.getter(args)
	case Native:
		if v.native == nil || v.native.Getter == nil {
			return nil, errors.E(errors.NotSupported, "native variant has no getter")
		}
		return v.native.Getter(v.native.Entity, args)
	default:
		return nil, errors.E(errors.WrongDataType, "variant of kind %s is not callable", v.kind)
	}
}

// IsContainer reports whether v is one of the container kinds.
func (v *Variant) IsContainer() bool {
	switch v.kind {
	case Object, Array, Set:
		return true
	default:
		return false
	}
}

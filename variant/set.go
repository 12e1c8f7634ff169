package variant

import (
	"bytes"

	"github.com/google/go-cmp/cmp"

	"github.com/hvml/purc-go/errors"
)

// Comparator decides whether two variants are the same set member.
type Comparator func(a, b *Variant) bool

// Set is an unordered, unique-membership container (spec.md §4.C). Member
// identity is decided by a Comparator, defaulting to structural equality
// modulo numeric coercion.
type Set struct {
	hooks
	cmp   Comparator
	items []*Variant
}

// NewSet returns an empty set variant using the default comparator.
func NewSet() *Variant {
	return newSetWithComparator(DefaultComparator)
}

// NewSetWithComparator returns an empty set variant using a caller-supplied
// member comparator, e.g. keying a set of objects by one property.
func NewSetWithComparator(c Comparator) *Variant {
	return newSetWithComparator(c)
}

func newSetWithComparator(c Comparator) *Variant {
	v := newVariant(Set)
	v.set = &Set{cmp: c}
	return v
}

// AsSet returns the underlying Set container, or nil if v is not a set
// variant.
func (v *Variant) AsSet() *Set {
	if v.kind != Set {
		return nil
	}
	return v.set
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.items) }

// Contains reports whether a value matching val is already a member.
func (s *Set) Contains(val *Variant) (*Variant, bool) {
	for _, m := range s.items {
		if s.cmp(m, val) {
			return m, true
		}
	}
	return nil, false
}

// Add inserts val. If a matching member already exists, overwrite decides
// whether val replaces it (true) or the add is reported as Duplicated
// (false).
func (s *Set) Add(slot *errors.Slot, val *Variant, overwrite bool, silently bool) error {
	if existing, found := s.Contains(val); found {
		if !overwrite {
			val.Unref()
			return report(slot, errors.E(errors.Duplicated, "member already present"), silently)
		}
		s.removeValue(existing)
	}
	s.items = append(s.items, val)
	s.emit(Event{Kind: EventGrow, Affected: []*Variant{val}})
	return nil
}

// Remove deletes a member matching val, if any.
func (s *Set) Remove(slot *errors.Slot, val *Variant, silently bool) error {
	existing, found := s.Contains(val)
	if !found {
		return report(slot, errors.E(errors.InvalidValue, "no matching member"), silently)
	}
	s.removeValue(existing)
	return nil
}

func (s *Set) removeValue(v *Variant) {
	for i, m := range s.items {
		if m == v {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.emit(Event{Kind: EventShrink, Affected: []*Variant{v}})
	v.Unref()
}

// Iterate visits every member. Iteration stops early if fn returns false.
func (s *Set) Iterate(fn func(val *Variant) bool) {
	for _, v := range s.items {
		if !fn(v) {
			return
		}
	}
}

// Clear empties the set, releasing every member's reference.
func (s *Set) Clear() {
	for _, v := range s.items {
		v.Unref()
	}
	s.items = nil
}

func (s *Set) releaseAll() {
	for _, v := range s.items {
		v.Unref()
	}
}

// displace atomically replaces the set's contents with fresh, the result
// of a bulk operation's scratch computation. The set is never observed
// externally with a partially-computed result, per spec.md §4.C.
func (s *Set) displace(fresh []*Variant) {
	old := s.items
	s.items = fresh
	for _, v := range old {
		v.Unref()
	}
	s.emit(Event{Kind: EventChange})
}

// Unite computes the union of s and other into a scratch array, then
// displaces s's contents with it.
func (s *Set) Unite(other *Set) {
	fresh := append([]*Variant(nil), s.items...)
	for _, v := range other.items {
		found := false
		for _, m := range fresh {
			if s.cmp(m, v) {
				found = true
				break
			}
		}
		if !found {
			fresh = append(fresh, v.Ref())
		}
	}
	s.displace(fresh)
}

// Intersect computes the intersection of s and other into a scratch array,
// then displaces s's contents with it.
func (s *Set) Intersect(other *Set) {
	var fresh []*Variant
	for _, m := range s.items {
		for _, v := range other.items {
			if s.cmp(m, v) {
				fresh = append(fresh, m.Ref())
				break
			}
		}
	}
	s.displace(fresh)
}

// Subtract computes s minus other into a scratch array, then displaces s's
// contents with it.
func (s *Set) Subtract(other *Set) {
	var fresh []*Variant
	for _, m := range s.items {
		inOther := false
		for _, v := range other.items {
			if s.cmp(m, v) {
				inOther = true
				break
			}
		}
		if !inOther {
			fresh = append(fresh, m.Ref())
		}
	}
	s.displace(fresh)
}

// Xor computes the symmetric difference of s and other into a scratch
// array, then displaces s's contents with it.
func (s *Set) Xor(other *Set) {
	var fresh []*Variant
	for _, m := range s.items {
		inOther := false
		for _, v := range other.items {
			if s.cmp(m, v) {
				inOther = true
				break
			}
		}
		if !inOther {
			fresh = append(fresh, m.Ref())
		}
	}
	for _, v := range other.items {
		inSelf := false
		for _, m := range s.items {
			if s.cmp(m, v) {
				inSelf = true
				break
			}
		}
		if !inSelf {
			fresh = append(fresh, v.Ref())
		}
	}
	s.displace(fresh)
}

// Overwrite replaces every member of s matched by a member of other,
// in place, without changing s's size or adding unmatched members of
// other.
func (s *Set) Overwrite(slot *errors.Slot, other *Set, silently bool) error {
	var firstErr error
	for _, v := range other.items {
		if _, found := s.Contains(v); !found {
			if firstErr == nil {
				firstErr = report(slot, errors.E(errors.InvalidValue, "no matching member to overwrite"), silently)
			}
			continue
		}
		_ = s.Add(slot, v.Ref(), true, silently)
	}
	return firstErr
}

// DefaultComparator is the structural-equality-modulo-numeric-coercion
// comparator new sets use unless told otherwise. Numeric variants of
// different kinds compare equal by value; everything else compares by a
// recursive structural snapshot.
func DefaultComparator(a, b *Variant) bool {
	if af, aok := a.AsFloat64(); aok {
		bf, bok := b.AsFloat64()
		return bok && af == bf
	}
	if ab, aok := a.AsBytes(); aok {
		bb, bok := b.AsBytes()
		return bok && bytes.Equal(ab, bb)
	}
	return cmp.Equal(a.snapshot(), b.snapshot())
}

// snapshot converts a variant into a plain Go value tree suitable for
// cmp.Equal, normalizing every numeric kind to float64.
func (v *Variant) snapshot() interface{} {
	switch v.kind {
	case Undefined:
		return nil
	case Null:
		return "null"
	case Boolean:
		return v.b
	case Number, LongInt, ULongInt, LongDouble:
		f, _ := v.AsFloat64()
		return f
	case String, AtomString:
		return v.str
	case ByteSequence:
		return append([]byte(nil), v.bytes...)
	case Object:
		m := make(map[string]interface{}, v.obj.Len())
		v.obj.Iterate(func(key string, val *Variant) bool {
			m[key] = val.snapshot()
			return true
		})
		return m
	case Array:
		s := make([]interface{}, 0, v.arr.Len())
		v.arr.Iterate(func(_ int, val *Variant) bool {
			s = append(s, val.snapshot())
			return true
		})
		return s
	default:
		return v
	}
}

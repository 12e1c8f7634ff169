package variant

import "github.com/hvml/purc-go/errors"

// Displace replaces dst's contents with src's, dispatching on dst's kind
// per the source-type→behavior matrix (spec.md §4.C):
//
//	dst\src   object        array          set
//	object    merge kv      error          error
//	array     error         displace all   displace all
//	set       insert as one elementwise    elementwise
//
// dst and src must be different variants; self-displace fails with
// InvalidOperand.
func Displace(slot *errors.Slot, dst, src *Variant, silently bool) error {
	if dst == src {
		return report(slot, errors.E(errors.InvalidOperand, "cannot displace a container with itself"), silently)
	}
	switch dst.kind {
	case Object:
		if src.kind != Object {
			return report(slot, errors.E(errors.WrongDataType, "object can only be displaced by an object"), silently)
		}
		dst.obj.Clear()
		return dst.obj.MergeAnother(slot, src.obj, silently)
	case Array:
		fresh := containerElements(src)
		if fresh == nil {
			return report(slot, errors.E(errors.WrongDataType, "array can only be displaced by an array or set"), silently)
		}
		dst.arr.Clear()
		for _, v := range fresh {
			dst.arr.Append(v)
		}
		return nil
	case Set:
		switch src.kind {
		case Set:
			fresh := make([]*Variant, 0, src.set.Len())
			src.set.Iterate(func(val *Variant) bool {
				fresh = append(fresh, val.Ref())
				return true
			})
			dst.set.displace(fresh)
			return nil
		case Array:
			fresh := make([]*Variant, 0, src.arr.Len())
			src.arr.Iterate(func(_ int, val *Variant) bool {
				fresh = append(fresh, val.Ref())
				return true
			})
			dst.set.displace(fresh)
			return nil
		default:
			dst.set.displace([]*Variant{src.Ref()})
			return nil
		}
	default:
		return report(slot, errors.E(errors.WrongDataType, "kind %s is not a container", dst.kind), silently)
	}
}

// Remove deletes the members of src from dst, dispatching on dst's kind.
func Remove(slot *errors.Slot, dst, src *Variant, silently bool) error {
	if dst == src {
		return report(slot, errors.E(errors.InvalidOperand, "cannot remove a container from itself"), silently)
	}
	switch dst.kind {
	case Object:
		if src.kind != Object {
			return report(slot, errors.E(errors.WrongDataType, "object members can only be removed by key via an object"), silently)
		}
		var firstErr error
		src.obj.Iterate(func(key string, _ *Variant) bool {
			if err := dst.obj.Remove(slot, key, silently); err != nil && firstErr == nil {
				firstErr = err
			}
			return true
		})
		return firstErr
	case Array:
		elems := containerElements(src)
		if elems == nil {
			return report(slot, errors.E(errors.WrongDataType, "array members can only be removed via an array or set"), silently)
		}
		for _, v := range elems {
			removeFirstMatch(dst.arr, v)
			v.Unref()
		}
		return nil
	case Set:
		switch src.kind {
		case Set:
			dst.set.Subtract(src.set)
		case Array:
			scratch := &Set{cmp: dst.set.cmp}
			src.arr.Iterate(func(_ int, val *Variant) bool {
				scratch.items = append(scratch.items, val)
				return true
			})
			dst.set.Subtract(scratch)
		default:
			_ = dst.set.Remove(slot, src, silently)
		}
		return nil
	default:
		return report(slot, errors.E(errors.WrongDataType, "kind %s is not a container", dst.kind), silently)
	}
}

// Merge combines src into dst without first clearing dst, dispatching on
// dst's kind. For an object destination this is identical to MergeAnother;
// for array and set destinations it behaves like Displace's elementwise
// insertion but appends rather than replacing.
func Merge(slot *errors.Slot, dst, src *Variant, silently bool) error {
	switch dst.kind {
	case Object:
		if src.kind != Object {
			return report(slot, errors.E(errors.WrongDataType, "object can only be merged with an object"), silently)
		}
		return dst.obj.MergeAnother(slot, src.obj, silently)
	case Array:
		elems := containerElements(src)
		if elems == nil {
			return report(slot, errors.E(errors.WrongDataType, "array can only be merged with an array or set"), silently)
		}
		for _, v := range elems {
			dst.arr.Append(v)
		}
		return nil
	case Set:
		switch src.kind {
		case Set:
			dst.set.Unite(src.set)
		case Array:
			scratch := &Set{cmp: dst.set.cmp}
			src.arr.Iterate(func(_ int, val *Variant) bool {
				scratch.items = append(scratch.items, val)
				return true
			})
			dst.set.Unite(scratch)
		default:
			_ = dst.set.Add(slot, src.Ref(), false, true)
		}
		return nil
	default:
		return report(slot, errors.E(errors.WrongDataType, "kind %s is not a container", dst.kind), silently)
	}
}

// containerElements returns a fresh, Ref'd slice of src's elements if src
// is an array or set, or nil if src is neither.
func containerElements(src *Variant) []*Variant {
	switch src.kind {
	case Array:
		out := make([]*Variant, 0, src.arr.Len())
		src.arr.Iterate(func(_ int, val *Variant) bool {
			out = append(out, val.Ref())
			return true
		})
		return out
	case Set:
		out := make([]*Variant, 0, src.set.Len())
		src.set.Iterate(func(val *Variant) bool {
			out = append(out, val.Ref())
			return true
		})
		return out
	default:
		return nil
	}
}

func removeFirstMatch(a *Array, val *Variant) {
	for i, v := range a.items {
		if DefaultComparator(v, val) {
			v.Unref()
			a.items = append(a.items[:i], a.items[i+1:]...)
			a.emit(Event{Kind: EventShrink, Affected: []*Variant{val}})
			return
		}
	}
}

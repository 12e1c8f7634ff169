package variant

import "github.com/hvml/purc-go/errors"

// Array is a dynamic, zero-indexed sequence container (spec.md §4.C). Go's
// append already grows by doubling, so it stands in directly for the
// original's growth-doubling array-list.
type Array struct {
	hooks
	items []*Variant
}

// NewArray returns an array variant seeded with values, stored without an
// extra Ref (ownership is transferred from the caller).
func NewArray(values ...*Variant) *Variant {
	v := newVariant(Array)
	v.arr = &Array{items: append([]*Variant(nil), values...)}
	return v
}

// AsArray returns the underlying Array container, or nil if v is not an
// array variant.
func (v *Variant) AsArray() *Array {
	if v.kind != Array {
		return nil
	}
	return v.arr
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.items) }

// Get returns a new strong reference to the element at idx.
func (a *Array) Get(idx int) (*Variant, bool) {
	if idx < 0 || idx >= len(a.items) {
		return nil, false
	}
	return a.items[idx].Ref(), true
}

// Append adds val to the end of the array.
func (a *Array) Append(val *Variant) {
	a.items = append(a.items, val)
	a.emit(Event{Kind: EventGrow, Affected: []*Variant{val}})
}

// Prepend adds val to the front of the array.
func (a *Array) Prepend(val *Variant) {
	a.items = append([]*Variant{val}, a.items...)
	a.emit(Event{Kind: EventGrow, Affected: []*Variant{val}})
}

// InsertBefore inserts val before idx.
func (a *Array) InsertBefore(slot *errors.Slot, idx int, val *Variant, silently bool) error {
	if idx < 0 || idx > len(a.items) {
		return report(slot, errors.E(errors.InvalidValue, "index %d out of range", idx), silently)
	}
	a.items = append(a.items, nil)
	copy(a.items[idx+1:], a.items[idx:])
	a.items[idx] = val
	a.emit(Event{Kind: EventGrow, Affected: []*Variant{val}})
	return nil
}

// InsertAfter inserts val after idx.
func (a *Array) InsertAfter(slot *errors.Slot, idx int, val *Variant, silently bool) error {
	return a.InsertBefore(slot, idx+1, val, silently)
}

// Set replaces the element at idx, releasing the old value's reference.
func (a *Array) Set(slot *errors.Slot, idx int, val *Variant, silently bool) error {
	if idx < 0 || idx >= len(a.items) {
		return report(slot, errors.E(errors.InvalidValue, "index %d out of range", idx), silently)
	}
	old := a.items[idx]
	a.items[idx] = val
	old.Unref()
	a.emit(Event{Kind: EventChange, Affected: []*Variant{val}})
	return nil
}

// Remove deletes the element at idx, releasing its reference.
func (a *Array) Remove(slot *errors.Slot, idx int, silently bool) error {
	if idx < 0 || idx >= len(a.items) {
		return report(slot, errors.E(errors.InvalidValue, "index %d out of range", idx), silently)
	}
	old := a.items[idx]
	a.items = append(a.items[:idx], a.items[idx+1:]...)
	old.Unref()
	a.emit(Event{Kind: EventShrink, Affected: []*Variant{old}})
	return nil
}

// Sort orders the array in place using less, a caller-supplied comparator.
func (a *Array) Sort(less func(x, y *Variant) bool) {
	// insertion sort keeps this dependency-free and stable; arrays in
	// this interpreter are rarely large enough for the asymptotics to
	// matter.
	for i := 1; i < len(a.items); i++ {
		for j := i; j > 0 && less(a.items[j], a.items[j-1]); j-- {
			a.items[j], a.items[j-1] = a.items[j-1], a.items[j]
		}
	}
	a.emit(Event{Kind: EventChange})
}

// Iterate visits every element in order. Iteration stops early if fn
// returns false.
func (a *Array) Iterate(fn func(idx int, val *Variant) bool) {
	for i, v := range a.items {
		if !fn(i, v) {
			return
		}
	}
}

// Clear empties the array, releasing every element's reference.
func (a *Array) Clear() {
	for _, v := range a.items {
		v.Unref()
	}
	a.items = nil
}

func (a *Array) releaseAll() {
	for _, v := range a.items {
		v.Unref()
	}
}

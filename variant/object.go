package variant

import "github.com/hvml/purc-go/errors"

// Object is an insertion-ordered string-keyed map container (spec.md
// §4.C). Key uniqueness is by byte equality.
type Object struct {
	hooks
	keys []string
	m    map[string]*Variant
}

// NewObject returns an empty object variant.
func NewObject() *Variant {
	v := newVariant(Object)
	v.obj = &Object{m: make(map[string]*Variant)}
	return v
}

// AsObject returns the underlying Object container, or nil if v is not an
// object variant.
func (v *Variant) AsObject() *Object {
	if v.kind != Object {
		return nil
	}
	return v.obj
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Get returns a new strong reference to the value at key, which the caller
// must Unref.
func (o *Object) Get(key string) (*Variant, bool) {
	v, ok := o.m[key]
	if !ok {
		return nil, false
	}
	return v.Ref(), true
}

// Set inserts or replaces the value at key, taking ownership of val (it is
// not additionally Ref'd: callers pass a reference they are transferring).
// slot receives the error unless silently is set.
func (o *Object) Set(slot *errors.Slot, key string, val *Variant, silently bool) error {
	if val == nil {
		return report(slot, errors.E(errors.InvalidValue, "nil value for key %q", key), silently)
	}
	old, existed := o.m[key]
	o.m[key] = val
	if !existed {
		o.keys = append(o.keys, key)
	} else {
		old.Unref()
	}
	o.emit(Event{Kind: EventChange, Affected: []*Variant{val}})
	return nil
}

// Remove deletes key, releasing its value's reference. Removing a missing
// key is reported as InvalidValue unless silently is set.
func (o *Object) Remove(slot *errors.Slot, key string, silently bool) error {
	old, ok := o.m[key]
	if !ok {
		return report(slot, errors.E(errors.InvalidValue, "no such key %q", key), silently)
	}
	delete(o.m, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	old.Unref()
	o.emit(Event{Kind: EventShrink, Affected: []*Variant{old}})
	return nil
}

// Iterate visits every key/value pair in insertion order. The value is not
// Ref'd for the duration of the callback; fn must not retain it beyond the
// call without taking its own reference. Iteration stops early if fn
// returns false.
func (o *Object) Iterate(fn func(key string, val *Variant) bool) {
	for _, k := range o.keys {
		if !fn(k, o.m[k]) {
			return
		}
	}
}

// MergeAnother copies every key/value pair of other into o, applying Set
// (replace-or-insert) for each. Each copied value is Ref'd since it remains
// owned by other.
func (o *Object) MergeAnother(slot *errors.Slot, other *Object, silently bool) error {
	var firstErr error
	other.Iterate(func(key string, val *Variant) bool {
		if err := o.Set(slot, key, val.Ref(), silently); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	return firstErr
}

// Clear empties the object, releasing every value's reference.
func (o *Object) Clear() {
	for _, k := range o.keys {
		o.m[k].Unref()
	}
	o.keys = nil
	o.m = make(map[string]*Variant)
}

func (o *Object) releaseAll() {
	for _, k := range o.keys {
		o.m[k].Unref()
	}
}

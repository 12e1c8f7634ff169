package variant

import "github.com/hvml/purc-go/errors"

// NativeOps is the operations table a native-object variant borrows rather
// than owns, mirroring purc_native_ops (spec.md §4.C). Any field may be
// nil; the corresponding operation then fails with NotSupported.
type NativeOps struct {
	// Entity is the opaque wrapped value, borrowed for the variant's
	// lifetime. The table, not the variant, knows how to interpret it.
	Entity interface{}

	PropertyGetter func(entity interface{}, name string, args []*Variant) (*Variant, error)
	PropertySetter func(entity interface{}, name string, args []*Variant) (*Variant, error)
	PropertyEraser func(entity interface{}, name string) error
	PropertyCleaner func(entity interface{}, name string) error

	Getter func(entity interface{}, args []*Variant) (*Variant, error)
	Setter func(entity interface{}, args []*Variant) (*Variant, error)

	Cleaner  func(entity interface{}) error
	Eraser   func(entity interface{}) error
	OnObserve func(entity interface{}, event string) error
	OnRelease func(entity interface{})
	Updater  func(entity interface{}, args []*Variant) (*Variant, error)
}

// NewNative wraps entity with ops as a native-object variant.
func NewNative(entity interface{}, ops *NativeOps) *Variant {
	v := newVariant(Native)
	table := *ops
	table.Entity = entity
	v.native = &table
	return v
}

// NativeEntity returns the opaque wrapped value of a native-object variant.
func (v *Variant) NativeEntity() (interface{}, bool) {
	if v.kind != Native || v.native == nil {
		return nil, false
	}
	return v.native.Entity, true
}

// GetProperty invokes the native-object's property getter.
func (v *Variant) GetProperty(name string, args []*Variant) (*Variant, error) {
	if v.kind != Native || v.native == nil || v.native.PropertyGetter == nil {
		return nil, errors.E(errors.NotSupported, "native variant has no property getter")
	}
	return v.native.PropertyGetter(v.native.Entity, name, args)
}

// SetProperty invokes the native-object's property setter.
func (v *Variant) SetProperty(name string, args []*Variant) (*Variant, error) {
	if v.kind != Native || v.native == nil || v.native.PropertySetter == nil {
		return nil, errors.E(errors.NotSupported, "native variant has no property setter")
	}
	return v.native.PropertySetter(v.native.Entity, name, args)
}

// EraseProperty invokes the native-object's property eraser.
func (v *Variant) EraseProperty(name string) error {
	if v.kind != Native || v.native == nil || v.native.PropertyEraser == nil {
		return errors.E(errors.NotSupported, "native variant has no property eraser")
	}
	return v.native.PropertyEraser(v.native.Entity, name)
}

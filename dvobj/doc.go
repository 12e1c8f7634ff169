package dvobj

import (
	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/variant"
)

// NewDoc builds the doc DVObj: `doctype` and `query`. The EDOM data model
// itself is out of scope: doctype returns the original's placeholder
// strings, and query validates its argument and then reports NotSupported
// rather than inventing a tree to query.
func NewDoc() *variant.Variant {
	obj := variant.NewObject()
	slot := errors.NewSlot()

	set(obj, slot, "doctype", docDoctype)
	set(obj, slot, "query", docQuery)

	return obj
}

func docDoctype(args []*variant.Variant) (*variant.Variant, error) {
	if len(args) == 0 {
		return variant.NewString("doctype:not_implemented_yet")
	}
	if len(args) != 1 {
		return nil, errors.E(errors.WrongArgs, "doc.doctype takes at most one argument")
	}
	name, ok := args[0].AsString()
	if !ok {
		return nil, errors.E(errors.WrongArgs, "doc.doctype argument must be a string")
	}
	switch name {
	case "system":
		return variant.NewString("doctype.system:not_implemented_yet")
	case "public":
		return variant.NewString("doctype.public:not_implemented_yet")
	default:
		return nil, errors.E(errors.NotExists, "no such doctype part %q", name)
	}
}

func docQuery(args []*variant.Variant) (*variant.Variant, error) {
	if len(args) != 1 {
		return nil, errors.E(errors.WrongArgs, "doc.query takes one CSS selector argument")
	}
	if _, ok := args[0].AsString(); !ok {
		return nil, errors.E(errors.WrongArgs, "doc.query argument must be a string")
	}
	return nil, errors.E(errors.NotSupported, "doc.query requires an EDOM tree, which this build does not model")
}

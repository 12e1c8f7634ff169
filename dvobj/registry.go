package dvobj

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hvml/purc-go/di"
	"github.com/hvml/purc-go/variant"
)

// Provider resolves the interpreter's built-in dynamic-variable objects by
// name, scoped to one running instance. Bound through di.Bind so a
// coroutine's run context can look up each DVObj lazily (SPEC_FULL §11).
type Provider interface {
	Logical() *variant.Variant
	System() *variant.Variant
	Doc() *variant.Variant
}

// logicalObj, systemObj, docObj each wrap a *variant.Variant: di keys a
// binding by its interface type, and Logical/System/Doc are all
// *variant.Variant, so they need distinct interface types to get distinct
// di keys instead of colliding on one binding.
type logicalObj interface{ variant() *variant.Variant }
type systemObj interface{ variant() *variant.Variant }
type docObj interface{ variant() *variant.Variant }

type variantHolder struct{ v *variant.Variant }

func (h variantHolder) variant() *variant.Variant { return h.v }

type registry struct {
	ctx context.Context
}

func (r *registry) Logical() *variant.Variant { return mustGet[logicalObj](r.ctx) }
func (r *registry) System() *variant.Variant  { return mustGet[systemObj](r.ctx) }
func (r *registry) Doc() *variant.Variant     { return mustGet[docObj](r.ctx) }

func mustGet[T interface{ variant() *variant.Variant }](ctx context.Context) *variant.Variant {
	obj, err := di.Get[T](ctx)
	if err != nil {
		// Every key this package asks for was bound in NewProvider right
		// before InitAll; a lookup failure here means that invariant
		// broke, not a recoverable runtime condition.
		panic(err)
	}
	return obj.variant()
}

// NewProvider builds the three DVObjs concurrently (none depends on
// another's result), binds each behind di so it is resolved through the
// registry rather than captured as a bare field, and eagerly initializes
// every binding before returning.
func NewProvider(ctx context.Context, version string) (Provider, error) {
	var logical, system, doc *variant.Variant

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		logical = NewLogical()
		return nil
	})
	g.Go(func() error {
		system = NewSystem(version)
		return nil
	})
	g.Go(func() error {
		doc = NewDoc()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := di.NewBindings(ctx)
	if err := di.Bind[logicalObj](b, func(context.Context) (logicalObj, error) {
		return variantHolder{logical}, nil
	}); err != nil {
		return nil, err
	}
	if err := di.Bind[systemObj](b, func(context.Context) (systemObj, error) {
		return variantHolder{system}, nil
	}); err != nil {
		return nil, err
	}
	if err := di.Bind[docObj](b, func(context.Context) (docObj, error) {
		return variantHolder{doc}, nil
	}); err != nil {
		return nil, err
	}
	if err := di.Validate(b); err != nil {
		return nil, err
	}
	if err := di.InitAll(b); err != nil {
		return nil, err
	}

	return &registry{ctx: di.WithBindings(ctx, b)}, nil
}

package di_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/hvml/purc-go/di"
)

type MyService1 interface {
	DoStuff1() string
}

type MyService2 interface {
	DoStuff2() string
}

type MyService3 interface {
	DoStuff3()
}

type MyService1Impl struct {
}

type MyService2Impl struct {
}

func newService1Impl(ctx context.Context) (*MyService1Impl, error) {
	return &MyService1Impl{}, nil
}

func newService2Impl(ctx context.Context) (*MyService2Impl, error) {
	return &MyService2Impl{}, nil
}

func (*MyService1Impl) DoStuff1() string {
	return "hi"
}

func (*MyService2Impl) DoStuff2() string {
	return "bye"
}

func mustMatch(t *testing.T, pattern string, s string) {
	t.Helper()
	if !regexp.MustCompile(pattern).MatchString(s) {
		t.Fatalf("got %q, want match for %q", s, pattern)
	}
}

func TestDI(t *testing.T) {
	b := di.NewBindings(t.Context())
	if b == nil {
		t.Fatal("expected non-nil bindings")
	}

	di.Require[MyService1](b)

	err := di.Bind[MyService1](b, newService1Impl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = di.Bind[MyService1](b, newService2Impl)
	if err == nil {
		t.Fatal("expected an error rebinding an already-bound interface")
	}
	mustMatch(t, ".*already bound.*", err.Error())

	err = di.Bind[MyService2](b, newService2Impl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := di.Validate(b); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	di.Require[MyService3](b)
	err = di.Validate(b)
	if err == nil {
		t.Fatal("expected a validation error for the unbound MyService3")
	}
	mustMatch(t, "no initializer.*MyService3", err.Error())

	runCtx := di.WithBindings(t.Context(), b)

	svc1, err := di.Get[MyService1](runCtx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc2, err := di.Get[MyService2](runCtx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if svc1.DoStuff1() != "hi" {
		t.Fatalf("got %q", svc1.DoStuff1())
	}
	if svc2.DoStuff2() != "bye" {
		t.Fatalf("got %q", svc2.DoStuff2())
	}
}

func TestDep(t *testing.T) {
	newService1Impl := func(ctx context.Context) (*MyService1Impl, error) {
		_, err := di.Get[MyService2](ctx)
		if err != nil {
			return nil, err
		}
		return &MyService1Impl{}, nil
	}

	newService2Impl := func(ctx context.Context) (*MyService2Impl, error) {
		return &MyService2Impl{}, nil
	}

	b := di.NewBindings(t.Context())

	if err := di.Bind[MyService1](b, newService1Impl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := di.Bind[MyService2](b, newService2Impl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := di.InitAll(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCircularDep(t *testing.T) {
	newService1CircularImpl := func(ctx context.Context) (*MyService1Impl, error) {
		_, err := di.Get[MyService2](ctx)
		if err != nil {
			return nil, err
		}
		return &MyService1Impl{}, nil
	}

	newService2CircularImpl := func(ctx context.Context) (*MyService2Impl, error) {
		_, err := di.Get[MyService1](ctx)
		if err != nil {
			return nil, err
		}
		return &MyService2Impl{}, nil
	}

	b := di.NewBindings(t.Context())

	if err := di.Bind[MyService1](b, newService1CircularImpl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := di.Bind[MyService2](b, newService2CircularImpl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := di.InitAll(b)
	if err == nil {
		t.Fatal("expected a circular-initialization error")
	}
	mustMatch(t, "circular initialization.*", err.Error())
}

type MyService2ImplOverride struct {
	parent MyService2
}

func newService2ImplOverride(ctx context.Context, parent MyService2) (*MyService2ImplOverride, error) {
	return &MyService2ImplOverride{parent: parent}, nil
}

func (svc *MyService2ImplOverride) DoStuff2() string {
	return svc.parent.DoStuff2() + " and farewell"
}

func TestOverride(t *testing.T) {
	b := di.NewBindings(t.Context())
	if b == nil {
		t.Fatal("expected non-nil bindings")
	}

	di.Require[MyService2](b)

	err := di.Override[MyService2](b, newService2ImplOverride)
	if err == nil {
		t.Fatal("expected an error overriding an unbound interface")
	}
	mustMatch(t, "is not yet bound", err.Error())

	if err := di.Bind[MyService2](b, newService2Impl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := di.Override[MyService2](b, newService2ImplOverride); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := di.Validate(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runCtx := di.WithBindings(t.Context(), b)

	svc2, err := di.Get[MyService2](runCtx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc2.DoStuff2() != "bye and farewell" {
		t.Fatalf("got %q", svc2.DoStuff2())
	}
}

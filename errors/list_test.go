package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/hvml/purc-go/errors"
)

func TestListEmpty(t *testing.T) {
	l := errors.L()
	if l.AsError() != nil {
		t.Fatal("empty list must produce a nil error")
	}
}

func TestListAppendNilIgnored(t *testing.T) {
	l := errors.L()
	l.Append(nil)
	if l.AsError() != nil {
		t.Fatal("appending nil must not make the list non-empty")
	}
}

func TestListErrorElides(t *testing.T) {
	l := errors.L(E(kindA, "first"), E(kindB, "second"), E(kindA, "third"))
	got := l.Error()
	want := "kind a: first (and 2 elided errors)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestListIsMatchesAny(t *testing.T) {
	target := stderrors.New("needle")
	l := errors.L(E(kindA, "first"), target)
	if !l.Is(target) {
		t.Fatal("expected List.Is to find the wrapped target")
	}
}

func TestListErrorsFiltersNonPurCErrors(t *testing.T) {
	l := errors.L(E(kindA, "first"), stderrors.New("plain"))
	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d *Error values, want 1", len(errs))
	}
}

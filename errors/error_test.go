package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/hvml/purc-go/errors"
)

var E = errors.E

const (
	kindA errors.Kind = "kind a"
	kindB errors.Kind = "kind b"
)

func TestNoArgsPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("E() did not panic")
		}
	}()
	E()
}

func TestBasicFields(t *testing.T) {
	err := E(kindA, "something broke")
	if err.Kind != kindA {
		t.Fatalf("got kind %q want %q", err.Kind, kindA)
	}
	if err.Description != "something broke" {
		t.Fatalf("got description %q", err.Description)
	}
	if err.Error() != "kind a: something broke" {
		t.Fatalf("got message %q", err.Error())
	}
}

func TestFormatString(t *testing.T) {
	err := E("value %d out of range [%d,%d]", 7, 0, 3)
	want := "value 7 out of range [0,3]"
	if err.Error() != want {
		t.Fatalf("got %q want %q", err.Error(), want)
	}
}

func TestWrapPromotesKind(t *testing.T) {
	inner := E(kindA, "inner")
	outer := E("outer", inner)
	if outer.Kind != kindA {
		t.Fatalf("kind not promoted: got %q", outer.Kind)
	}
}

func TestIsKind(t *testing.T) {
	err := E(kindA, "boom")
	if !errors.IsKind(err, kindA) {
		t.Fatal("expected IsKind to match")
	}
	if errors.IsKind(err, kindB) {
		t.Fatal("did not expect IsKind to match a different kind")
	}
}

func TestWrapsStdlibError(t *testing.T) {
	cause := stderrors.New("boom")
	err := E(kindA, cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped stdlib error to be found by errors.Is")
	}
}

func TestRange(t *testing.T) {
	r := errors.Range{Source: "doc.hvml", Start: errors.Pos{Line: 3, Column: 5, Offset: 40}}
	err := E(kindA, r, "bad token")
	if err.Error() != "doc.hvml:3:5: kind a: bad token" {
		t.Fatalf("got %q", err.Error())
	}
}

func TestPartialMatchOnIs(t *testing.T) {
	err := E(kindA, "exact message")
	target := E(kindA)
	if !errors.Is(err, target) {
		t.Fatal("expected partial match on Kind alone")
	}
}

package variant_test

import (
	"testing"

	"github.com/hvml/purc-go/variant"
)

func TestRefcountStartsAtOne(t *testing.T) {
	v := variant.NewBoolean(true)
	if v.RefCount() != 1 {
		t.Fatalf("got refcount %d, want 1", v.RefCount())
	}
}

func TestRefUnrefRoundtrip(t *testing.T) {
	v := variant.NewLongInt(42)
	v.Ref()
	if v.RefCount() != 2 {
		t.Fatalf("got refcount %d, want 2", v.RefCount())
	}
	v.Unref()
	if v.RefCount() != 1 {
		t.Fatalf("got refcount %d, want 1", v.RefCount())
	}
}

func TestNewStringRejectsInvalidUTF8(t *testing.T) {
	_, err := variant.NewString(string([]byte{0xff, 0xfe}))
	if err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestStringCharCount(t *testing.T) {
	v := variant.MustString("héllo")
	n, ok := v.StringCharCount()
	if !ok || n != 5 {
		t.Fatalf("got %d, %v, want 5, true", n, ok)
	}
}

func TestNumericCoercion(t *testing.T) {
	cases := []*variant.Variant{
		variant.NewNumber(3),
		variant.NewLongInt(3),
		variant.NewULongInt(3),
		variant.NewLongDouble(3),
	}
	for _, v := range cases {
		f, ok := v.AsFloat64()
		if !ok || f != 3 {
			t.Fatalf("kind %s: got %v, %v", v.Kind(), f, ok)
		}
	}
}

func TestAtomStringIdentity(t *testing.T) {
	a := variant.NewAtomString("grow")
	b := variant.NewAtomString("grow")
	aa, _ := a.Atom()
	ba, _ := b.Atom()
	if aa != ba {
		t.Fatal("expected equal atom identity for equal strings")
	}
}

func TestExceptionPayload(t *testing.T) {
	payload := variant.MustString("boom")
	exc := variant.NewException(payload)
	if exc.Kind() != variant.Exception {
		t.Fatalf("got kind %s", exc.Kind())
	}
	if exc.ExceptionPayload() != payload {
		t.Fatal("expected exception to carry its payload")
	}
}

func TestDynamicCall(t *testing.T) {
	v := variant.NewDynamic(func(args []*variant.Variant) (*variant.Variant, error) {
		return variant.NewLongInt(int64(len(args))), nil
	}, nil)
	result, err := v.Call([]*variant.Variant{variant.NewNull(), variant.NewNull()})
	if err != nil {
		t.Fatal(err)
	}
	n, _ := result.AsFloat64()
	if n != 2 {
		t.Fatalf("got %v", n)
	}
}

func TestIsContainer(t *testing.T) {
	if !variant.NewObject().IsContainer() {
		t.Fatal("expected object to be a container")
	}
	if variant.NewNull().IsContainer() {
		t.Fatal("did not expect null to be a container")
	}
}

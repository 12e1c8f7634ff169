package variant_test

import (
	"testing"

	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/variant"
)

func TestSetAddDuplicateRejected(t *testing.T) {
	s := variant.NewSet().AsSet()
	slot := errors.NewSlot()
	if err := s.Add(slot, variant.NewLongInt(1), false, false); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(slot, variant.NewLongInt(1), false, false); err == nil {
		t.Fatal("expected duplicate to be rejected")
	}
	if s.Len() != 1 {
		t.Fatalf("got len %d", s.Len())
	}
}

func TestSetAddOverwriteReplaces(t *testing.T) {
	s := variant.NewSet().AsSet()
	slot := errors.NewSlot()
	_ = s.Add(slot, variant.NewLongInt(1), false, false)
	if err := s.Add(slot, variant.NewLongInt(1), true, false); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Fatalf("got len %d", s.Len())
	}
}

func TestSetNumericCoercionEquality(t *testing.T) {
	s := variant.NewSet().AsSet()
	slot := errors.NewSlot()
	_ = s.Add(slot, variant.NewLongInt(1), false, false)
	if err := s.Add(slot, variant.NewNumber(1), false, false); err == nil {
		t.Fatal("expected 1 (long-int) and 1.0 (number) to compare equal")
	}
}

func setOf(values ...int64) *variant.Set {
	s := variant.NewSet().AsSet()
	slot := errors.NewSlot()
	for _, v := range values {
		_ = s.Add(slot, variant.NewLongInt(v), false, false)
	}
	return s
}

func collect(s *variant.Set) []int64 {
	var out []int64
	s.Iterate(func(v *variant.Variant) bool {
		f, _ := v.AsFloat64()
		out = append(out, int64(f))
		return true
	})
	return out
}

func containsAll(got []int64, want ...int64) bool {
	if len(got) != len(want) {
		return false
	}
	seen := map[int64]bool{}
	for _, g := range got {
		seen[g] = true
	}
	for _, w := range want {
		if !seen[w] {
			return false
		}
	}
	return true
}

func TestSetUnite(t *testing.T) {
	a := setOf(1, 2)
	b := setOf(2, 3)
	a.Unite(b)
	if !containsAll(collect(a), 1, 2, 3) {
		t.Fatalf("got %v", collect(a))
	}
}

func TestSetIntersect(t *testing.T) {
	a := setOf(1, 2, 3)
	b := setOf(2, 3, 4)
	a.Intersect(b)
	if !containsAll(collect(a), 2, 3) {
		t.Fatalf("got %v", collect(a))
	}
}

func TestSetSubtract(t *testing.T) {
	a := setOf(1, 2, 3)
	b := setOf(2)
	a.Subtract(b)
	if !containsAll(collect(a), 1, 3) {
		t.Fatalf("got %v", collect(a))
	}
}

func TestSetXor(t *testing.T) {
	a := setOf(1, 2)
	b := setOf(2, 3)
	a.Xor(b)
	if !containsAll(collect(a), 1, 3) {
		t.Fatalf("got %v", collect(a))
	}
}

func TestSetDisplaceNotObservedPartially(t *testing.T) {
	av := variant.NewSet()
	a := av.AsSet()
	slot := errors.NewSlot()
	_ = a.Add(slot, variant.NewLongInt(1), false, false)

	var sawDuringCompute bool
	a.Observe(func(variant.Event) {
		if a.Len() != 2 {
			sawDuringCompute = true
		}
	})
	b := setOf(1, 2)
	a.Unite(b)
	if sawDuringCompute {
		t.Fatal("listener observed an intermediate state")
	}
}

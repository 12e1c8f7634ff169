package coroutine_test

import (
	"testing"

	"github.com/hvml/purc-go/coroutine"
	"github.com/hvml/purc-go/internal/atom"
	"github.com/hvml/purc-go/variant"
)

func TestFrameStackPushPop(t *testing.T) {
	co := coroutine.New(atom.Intern(atom.Default, "co1"), "file:///a.hvml")
	if co.TopFrame() != nil {
		t.Fatal("expected empty frame stack")
	}
	f1 := coroutine.NewFrame("init", nil, nil)
	f2 := coroutine.NewFrame("update", nil, nil)
	co.PushFrame(f1)
	co.PushFrame(f2)
	if co.FrameDepth() != 2 {
		t.Fatalf("got depth %d, want 2", co.FrameDepth())
	}
	if co.TopFrame() != f2 {
		t.Fatal("expected f2 on top")
	}
	if popped := co.PopFrame(); popped != f2 {
		t.Fatal("expected to pop f2")
	}
	if co.TopFrame() != f1 {
		t.Fatal("expected f1 on top after pop")
	}
}

func TestCoroutineNameAndURI(t *testing.T) {
	id := atom.Intern(atom.Default, "co-name-test")
	co := coroutine.New(id, "file:///b.hvml")
	if co.Name() != "co-name-test" {
		t.Fatalf("got %q", co.Name())
	}
	if co.URI() != "file:///b.hvml" {
		t.Fatalf("got %q", co.URI())
	}
}

func TestHeapOrdersById(t *testing.T) {
	h := coroutine.NewHeap()
	a := coroutine.New(atom.Atom(30), "")
	b := coroutine.New(atom.Atom(10), "")
	c := coroutine.New(atom.Atom(20), "")
	h.Add(a)
	h.Add(b)
	h.Add(c)

	ordered := h.Ordered()
	if len(ordered) != 3 {
		t.Fatalf("got %d coroutines", len(ordered))
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].ID >= ordered[i].ID {
			t.Fatalf("heap not ordered by id: %+v", ordered)
		}
	}

	h.Remove(b.ID)
	if _, ok := h.Get(b.ID); ok {
		t.Fatal("expected b to be removed")
	}
	if h.Len() != 2 {
		t.Fatalf("got len %d, want 2", h.Len())
	}
}

func TestObserverMatchEventTypeAndWildcardSubtype(t *testing.T) {
	observed := variant.NewObject()
	eventType := atom.Intern(atom.MSG, "change")
	ob := coroutine.NewObserver(observed, eventType, "disp*", atom.Atom(1))

	if !coroutine.IsObserverMatch(ob, observed, eventType, "displaced") {
		t.Fatal("expected wildcard sub-type to match")
	}
	if coroutine.IsObserverMatch(ob, observed, eventType, "other") {
		t.Fatal("expected non-matching sub-type to fail")
	}

	otherEvent := atom.Intern(atom.MSG, "grow")
	if coroutine.IsObserverMatch(ob, observed, otherEvent, "displaced") {
		t.Fatal("expected mismatched event type to fail")
	}

	unrelated := variant.NewObject()
	_ = unrelated.AsObject().Set(nil, "other", variant.NewNull(), true)
	if coroutine.IsObserverMatch(ob, unrelated, eventType, "displaced") {
		t.Fatal("expected mismatched observed entity to fail")
	}
}

func TestObserverMatchAnySubtypeWhenPatternAbsent(t *testing.T) {
	observed := variant.NewArray()
	eventType := atom.Intern(atom.MSG, "grow")
	ob := coroutine.NewObserver(observed, eventType, "", atom.Atom(1))

	if !coroutine.IsObserverMatch(ob, observed, eventType, "anything") {
		t.Fatal("expected absent pattern to match any sub-type")
	}
}

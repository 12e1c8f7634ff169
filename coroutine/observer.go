package coroutine

import (
	"github.com/gobwas/glob"
	"github.com/hvml/purc-go/internal/atom"
	"github.com/hvml/purc-go/variant"
)

// Observer is a registered watch on a variant, matched against incoming
// events by IsObserverMatch (spec.md §4.G, pcintr_is_observer_match).
type Observer struct {
	Observed       *variant.Variant
	EventType      atom.Atom
	SubPattern     string // empty means "match any sub-type"
	Scope          interface{}
	Element        interface{}
	// Position names the VDOM node the matched frame executes from,
	// the "observer's position node" of spec.md §4.H.
	Position       string
	PayloadBinding string
	RegisteredBy   atom.Atom

	sub glob.Glob
}

// NewObserver compiles subPattern (if non-empty) and returns an Observer
// ready to be matched. An invalid glob pattern falls back to exact
// string matching against subPattern.
func NewObserver(observed *variant.Variant, eventType atom.Atom, subPattern string, registeredBy atom.Atom) *Observer {
	ob := &Observer{
		Observed:     observed,
		EventType:    eventType,
		SubPattern:   subPattern,
		RegisteredBy: registeredBy,
	}
	if subPattern != "" {
		if g, err := glob.Compile(subPattern); err == nil {
			ob.sub = g
		}
	}
	return ob
}

// identicalNative reports whether a and b are the same native-object by
// entity pointer identity, per spec.md §4.G's "observed entity equal (by
// native-identity for native variants; by variant-compare for objects)".
func identicalNative(a, b *variant.Variant) bool {
	ea, _ := a.NativeEntity()
	eb, _ := b.NativeEntity()
	return ea == eb
}

// observedEqual implements the first clause of pcintr_is_observer_match.
func observedEqual(observed, incoming *variant.Variant) bool {
	if observed == incoming {
		return true
	}
	if observed == nil || incoming == nil {
		return false
	}
	if observed.Kind() == variant.Native && incoming.Kind() == variant.Native {
		return identicalNative(observed, incoming)
	}
	return variant.DefaultComparator(observed, incoming)
}

// IsObserverMatch implements pcintr_is_observer_match: the observed
// entity must match, the event-type atom must match exactly, and the
// sub-type pattern (if present) must wildcard-match the incoming
// sub-type.
func IsObserverMatch(ob *Observer, incoming *variant.Variant, eventType atom.Atom, subtype string) bool {
	if !observedEqual(ob.Observed, incoming) {
		return false
	}
	if ob.EventType != eventType {
		return false
	}
	if ob.SubPattern == "" {
		return true
	}
	if ob.sub != nil {
		return ob.sub.Match(subtype)
	}
	return ob.SubPattern == subtype
}

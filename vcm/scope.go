package vcm

import "github.com/hvml/purc-go/variant"

// Scope resolves a variable name to a variant. MapScope is the
// implementation this package provides; variants themselves do not
// implement Scope.
type Scope interface {
	Lookup(name string) (*variant.Variant, bool)
}

// MapScope is a plain name→variant scope, the kind a call frame or a
// `with` clause introduces.
type MapScope map[string]*variant.Variant

// Lookup implements Scope.
func (m MapScope) Lookup(name string) (*variant.Variant, bool) {
	v, ok := m[name]
	return v, ok
}

// Stack is an ordered list of scopes, most-recently-pushed first, as
// spec.md §4.D requires for variable resolution.
type Stack struct {
	scopes []Scope
}

// NewStack builds a stack with scopes pushed in the given order: the last
// argument ends up innermost (looked up first).
func NewStack(scopes ...Scope) *Stack {
	s := &Stack{}
	for _, sc := range scopes {
		s.Push(sc)
	}
	return s
}

// Push adds a new innermost scope.
func (s *Stack) Push(sc Scope) {
	s.scopes = append(s.scopes, sc)
}

// Pop removes the innermost scope.
func (s *Stack) Pop() {
	if len(s.scopes) == 0 {
		return
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Lookup walks the stack from innermost to outermost; the first match
// wins.
func (s *Stack) Lookup(name string) (*variant.Variant, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if v, ok := s.scopes[i].Lookup(name); ok {
			return v, true
		}
	}
	return nil, false
}

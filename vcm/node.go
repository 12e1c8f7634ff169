// Package vcm implements the Value Construction Model: the tree-shaped
// expression IR embedded in HVML source, and its evaluator (spec.md §4.D).
package vcm

import "github.com/hvml/purc-go/variant"

// NodeKind identifies a VCM node's evaluation rule.
type NodeKind int

const (
	// Literal embeds a pre-built variant, cloned (Ref'd) on evaluation.
	Literal NodeKind = iota
	// VariableRef names a variable resolved against a Scope stack.
	VariableRef
	// MemberAccess evaluates a base then looks up a member on it.
	MemberAccess
	// Call evaluates a callee and its arguments, then invokes the callee.
	Call
	// ConcatString evaluates every child and concatenates their string
	// forms.
	ConcatString
	// ExpressionVariable re-evaluates a stored subtree on each access.
	ExpressionVariable
)

// Node is one VCM tree node. Each node owns its Children.
type Node struct {
	Kind NodeKind

	// Literal
	Value *variant.Variant

	// VariableRef
	Name string

	// MemberAccess: Children[0] is the base, Member names the property.
	Member string

	// Call: Children[0] is the callee, Children[1:] are arguments.
	Children []*Node
}

// NewLiteral wraps an already-constructed variant.
func NewLiteral(v *variant.Variant) *Node {
	return &Node{Kind: Literal, Value: v}
}

// NewVariableRef names a variable to resolve against the scope stack.
func NewVariableRef(name string) *Node {
	return &Node{Kind: VariableRef, Name: name}
}

// NewMemberAccess builds base.member (or base[member] for arrays; sets have
// no member access).
func NewMemberAccess(base *Node, member string) *Node {
	return &Node{Kind: MemberAccess, Member: member, Children: []*Node{base}}
}

// NewCall builds callee(args...).
func NewCall(callee *Node, args ...*Node) *Node {
	return &Node{Kind: Call, Children: append([]*Node{callee}, args...)}
}

// NewConcatString builds a string concatenation of parts.
func NewConcatString(parts ...*Node) *Node {
	return &Node{Kind: ConcatString, Children: parts}
}

// NewExpressionVariable wraps a subtree as an expression-variable
// placeholder.
func NewExpressionVariable(expr *Node) *Node {
	return &Node{Kind: ExpressionVariable, Children: []*Node{expr}}
}

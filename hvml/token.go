package hvml

import "github.com/hvml/purc-go/vcm"

// TokenKind identifies the shape of a Token, the discriminated union
// spec.md §3 describes.
type TokenKind int

const (
	TokenStartTag TokenKind = iota
	TokenEndTag
	TokenText
	TokenComment
	TokenDoctype
	TokenCharacterReference
	TokenEOF
)

// Attribute is a start-tag attribute. Its value is either a literal string
// (Literal, ValueIsVCM false) or a VCM tree (VCM, ValueIsVCM true), for
// eJSON-embedded attribute values.
type Attribute struct {
	Name       string
	Literal    string
	VCM        *vcm.Node
	ValueIsVCM bool
}

// Token is one tokenizer output.
type Token struct {
	Kind TokenKind

	// StartTag / EndTag
	TagName       string
	Attributes    []Attribute
	SelfClose     bool
	IsOperation   bool
	HasRawAttr    bool

	// Text
	Text    string
	TextVCM *vcm.Node

	// Comment
	Comment string

	// Doctype
	DoctypeName     string
	DoctypeSystemID string
	DoctypePublicID string

	// CharacterReference
	CodePoint rune
}

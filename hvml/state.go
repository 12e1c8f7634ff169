// Package hvml implements the HVML tokenizer: a character-at-a-time state
// machine over a rewindable source that produces start-tag, end-tag, text,
// comment, doctype, and character-reference tokens, with eJSON subtrees
// embedded in attribute values and text (spec.md §4.E).
package hvml

// State names a tokenization phase. Each state has a single-char step
// function registered in the tokenizer's dispatch table.
type State int

const (
	StateData State = iota
	StateTagOpen
	StateEndTagOpen
	StateTagName
	StateBeforeAttributeName
	StateAttributeName
	StateAfterAttributeName
	StateBeforeAttributeValue
	StateAttributeValueDQ
	StateAttributeValueSQ
	StateAttributeValueUnquoted
	StateAfterAttributeValueQuoted
	StateSelfClosingStartTag
	StateCharacterReference
	StateNumericCharacterReference
	StateDoctype
	StateDoctypeName
	StateCommentStart
	StateComment
	StateCommentEnd
	StateEJSON
	StateEOF
)

// String names a State for diagnostics.
func (s State) String() string {
	switch s {
	case StateData:
		return "data"
	case StateTagOpen:
		return "tag-open"
	case StateEndTagOpen:
		return "end-tag-open"
	case StateTagName:
		return "tag-name"
	case StateBeforeAttributeName:
		return "before-attribute-name"
	case StateAttributeName:
		return "attribute-name"
	case StateAfterAttributeName:
		return "after-attribute-name"
	case StateBeforeAttributeValue:
		return "before-attribute-value"
	case StateAttributeValueDQ:
		return "attribute-value-dq"
	case StateAttributeValueSQ:
		return "attribute-value-sq"
	case StateAttributeValueUnquoted:
		return "attribute-value-unq"
	case StateAfterAttributeValueQuoted:
		return "after-attribute-value-quoted"
	case StateSelfClosingStartTag:
		return "self-closing-start-tag"
	case StateCharacterReference:
		return "character-reference"
	case StateNumericCharacterReference:
		return "numeric-character-reference"
	case StateDoctype:
		return "doctype"
	case StateDoctypeName:
		return "doctype-name"
	case StateCommentStart:
		return "comment-start"
	case StateComment:
		return "comment"
	case StateCommentEnd:
		return "comment-end"
	case StateEJSON:
		return "ejson"
	case StateEOF:
		return "eof"
	default:
		return "unknown"
	}
}

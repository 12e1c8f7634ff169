package hvml

import (
	"strings"

	"github.com/hvml/purc-go/buffer"
	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/vcm"
)

// MaxDepth bounds eJSON and VCM nesting; exceeding it fails with
// MAX_DEPTH_EXCEEDED (spec.md §4.E).
const MaxDepth = 256

// operationTags is the perfect-hash substitute for the tag re-classifier:
// on finishing a start-tag, its name is looked up here to set
// tag_is_operation. Grounded on the HVML operation-verb vocabulary
// (init, archetype, execute, observe, etc.) rather than any one source
// file, since the original's table is machine-generated at build time.
var operationTags = map[string]bool{
	"hvml": false, "head": false, "body": false,
	"init": true, "archetype": true, "archedata": true,
	"execute": true, "observe": true, "update": true,
	"call": true, "catch": true, "back": true,
	"test": true, "differ": true, "iterate": true,
	"reduce": true, "sort": true, "bind": true,
	"define": true, "load": true, "request": true,
	"fire": true, "exit": true, "return": true,
	"inherit": true, "include": true,
}

// Tokenizer is a character-at-a-time HVML state machine (spec.md §4.E).
type Tokenizer struct {
	src   *source
	state State
	slot  *errors.Slot

	tempBuffer   *buffer.Buffer
	tagNameBuf   *buffer.Buffer
	stringBuffer *buffer.Buffer

	vcmStack   []*vcm.Node
	ejsonStack []rune

	charRefCode   int64
	prevSeparator rune
	nrQuoted      int

	tagIsOperation bool
	tagHasRawAttr  bool

	pendingTag  *Token
	pendingAttr *Attribute
	quote       rune
}

// New creates a tokenizer over text. slot receives tokenizer errors
// (character-reference and MAX_DEPTH violations); it may be nil, in which
// case errors are only returned to the caller, never recorded.
func New(text string, slot *errors.Slot) *Tokenizer {
	return &Tokenizer{
		src:          newSource(text),
		state:        StateData,
		slot:         slot,
		tempBuffer:   buffer.New(),
		tagNameBuf:   buffer.New(),
		stringBuffer: buffer.New(),
	}
}

// Reset empties every buffer, clears the VCM stack (its nodes are
// dropped, not re-parented), and reinitializes the eJSON nesting stack,
// mirroring pchvml_reset.
func (t *Tokenizer) Reset(text string) {
	t.src = newSource(text)
	t.state = StateData
	t.tempBuffer.Reset()
	t.tagNameBuf.Reset()
	t.stringBuffer.Reset()
	t.vcmStack = t.vcmStack[:0]
	t.ejsonStack = t.ejsonStack[:0]
	t.charRefCode = 0
	t.prevSeparator = 0
	t.nrQuoted = 0
	t.tagIsOperation = false
	t.tagHasRawAttr = false
	t.pendingTag = nil
	t.pendingAttr = nil
}

func (t *Tokenizer) pushEJSON(delim rune) error {
	if len(t.ejsonStack) >= MaxDepth {
		return errors.E(errors.TooLarge, "eJSON nesting exceeds MAX_DEPTH")
	}
	t.ejsonStack = append(t.ejsonStack, delim)
	return nil
}

func (t *Tokenizer) popEJSON() {
	if len(t.ejsonStack) > 0 {
		t.ejsonStack = t.ejsonStack[:len(t.ejsonStack)-1]
	}
}

func (t *Tokenizer) ejsonDepth() int { return len(t.ejsonStack) }

// Next produces the next token, or a TokenEOF token once the source is
// exhausted. A tokenizer error sets the last-error slot but always
// recovers to StateData so that parsing may continue; the parser decides
// whether to abort (spec.md §4.E).
func (t *Tokenizer) Next() (*Token, error) {
	for {
		c := t.src.next()
		if c == runeEOF {
			if tok := t.flushPendingText(); tok != nil {
				return tok, nil
			}
			return &Token{Kind: TokenEOF}, nil
		}

		tok, err := t.step(c)
		if err != nil {
			t.state = StateData
			return nil, t.fail(err)
		}
		if tok != nil {
			return tok, nil
		}
	}
}

func (t *Tokenizer) step(c rune) (*Token, error) {
	switch t.state {
	case StateData:
		return t.stepData(c)
	case StateTagOpen:
		return t.stepTagOpen(c)
	case StateEndTagOpen:
		return t.stepEndTagOpen(c)
	case StateTagName:
		return t.stepTagName(c)
	case StateBeforeAttributeName:
		return t.stepBeforeAttributeName(c)
	case StateAttributeName:
		return t.stepAttributeName(c)
	case StateBeforeAttributeValue:
		return t.stepBeforeAttributeValue(c)
	case StateAttributeValueDQ, StateAttributeValueSQ:
		return t.stepAttributeValueQuoted(c)
	case StateAttributeValueUnquoted:
		return t.stepAttributeValueUnquoted(c)
	case StateAfterAttributeValueQuoted:
		return t.stepAfterAttributeValueQuoted(c)
	case StateSelfClosingStartTag:
		return t.stepSelfClosingStartTag(c)
	case StateCommentStart:
		return t.stepCommentStart(c)
	case StateComment:
		return t.stepComment(c)
	case StateCommentEnd:
		return t.stepCommentEnd(c)
	case StateDoctype:
		return t.stepDoctype(c)
	case StateDoctypeName:
		return t.stepDoctypeName(c)
	default:
		return nil, errors.E(errors.ErrInternal, "tokenizer reached unhandled state %s", t.state)
	}
}

func (t *Tokenizer) flushPendingText() *Token {
	if t.tempBuffer.IsEmpty() {
		return nil
	}
	text := t.tempBuffer.String()
	t.tempBuffer.Reset()
	return &Token{Kind: TokenText, Text: text}
}

func (t *Tokenizer) stepData(c rune) (*Token, error) {
	switch c {
	case '<':
		if tok := t.flushPendingText(); tok != nil {
			t.src.unread()
			return tok, nil
		}
		t.state = StateTagOpen
		return nil, nil
	case '&':
		r, err := t.readCharRef()
		if err != nil {
			t.tempBuffer.Append(r)
			return nil, err
		}
		t.tempBuffer.Append(r)
		return nil, nil
	default:
		t.tempBuffer.Append(c)
		return nil, nil
	}
}

func (t *Tokenizer) stepTagOpen(c rune) (*Token, error) {
	switch {
	case c == '/':
		t.state = StateEndTagOpen
		return nil, nil
	case c == '!':
		if t.src.peek() == '-' && t.src.peekAt(1) == '-' {
			t.src.next()
			t.src.next()
			t.state = StateCommentStart
			return nil, nil
		}
		t.state = StateDoctype
		return nil, nil
	case isAlpha(c):
		t.tagNameBuf.Reset()
		t.tagNameBuf.Append(c)
		t.pendingTag = &Token{Kind: TokenStartTag}
		t.state = StateTagName
		return nil, nil
	default:
		t.tempBuffer.Append('<')
		t.tempBuffer.Append(c)
		t.state = StateData
		return nil, nil
	}
}

func (t *Tokenizer) stepEndTagOpen(c rune) (*Token, error) {
	if isAlpha(c) {
		t.tagNameBuf.Reset()
		t.tagNameBuf.Append(c)
		t.pendingTag = &Token{Kind: TokenEndTag}
		t.state = StateTagName
		return nil, nil
	}
	return nil, errors.E(errors.UnexpectedData, "expected a tag name after </")
}

func (t *Tokenizer) stepTagName(c rune) (*Token, error) {
	switch {
	case isSpace(c):
		t.state = StateBeforeAttributeName
		return nil, nil
	case c == '/':
		t.state = StateSelfClosingStartTag
		return nil, nil
	case c == '>':
		return t.finishTag(), nil
	default:
		t.tagNameBuf.Append(c)
		return nil, nil
	}
}

func (t *Tokenizer) finishTag() *Token {
	name := t.tagNameBuf.String()
	t.pendingTag.TagName = name
	if t.pendingTag.Kind == TokenStartTag {
		t.pendingTag.IsOperation = operationTags[name]
		t.pendingTag.HasRawAttr = t.tagHasRawAttr
	}
	tok := t.pendingTag
	t.pendingTag = nil
	t.tagIsOperation = false
	t.tagHasRawAttr = false
	t.state = StateData
	return tok
}

func (t *Tokenizer) stepBeforeAttributeName(c rune) (*Token, error) {
	switch {
	case isSpace(c):
		return nil, nil
	case c == '/':
		t.state = StateSelfClosingStartTag
		return nil, nil
	case c == '>':
		return t.finishTag(), nil
	default:
		t.stringBuffer.Reset()
		t.stringBuffer.Append(c)
		t.pendingAttr = &Attribute{}
		t.state = StateAttributeName
		return nil, nil
	}
}

func (t *Tokenizer) stepAttributeName(c rune) (*Token, error) {
	switch {
	case c == '=':
		t.pendingAttr.Name = t.stringBuffer.String()
		t.stringBuffer.Reset()
		t.state = StateBeforeAttributeValue
		return nil, nil
	case isSpace(c):
		t.pendingAttr.Name = t.stringBuffer.String()
		t.pendingTag.Attributes = append(t.pendingTag.Attributes, *t.pendingAttr)
		t.pendingAttr = nil
		t.state = StateBeforeAttributeName
		return nil, nil
	case c == '>':
		t.pendingAttr.Name = t.stringBuffer.String()
		t.pendingTag.Attributes = append(t.pendingTag.Attributes, *t.pendingAttr)
		t.pendingAttr = nil
		return t.finishTag(), nil
	default:
		t.stringBuffer.Append(c)
		return nil, nil
	}
}

func (t *Tokenizer) stepBeforeAttributeValue(c rune) (*Token, error) {
	switch {
	case isSpace(c):
		return nil, nil
	case c == '"':
		t.quote = '"'
		t.state = StateAttributeValueDQ
		return nil, nil
	case c == '\'':
		t.quote = '\''
		t.state = StateAttributeValueSQ
		return nil, nil
	case c == '{' || c == '[':
		if err := t.pushEJSON(c); err != nil {
			return nil, err
		}
		t.stringBuffer.Append(c)
		t.state = StateAttributeValueUnquoted
		return nil, nil
	default:
		t.stringBuffer.Append(c)
		t.state = StateAttributeValueUnquoted
		return nil, nil
	}
}

func (t *Tokenizer) stepAttributeValueQuoted(c rune) (*Token, error) {
	if c == t.quote && t.ejsonDepth() == 0 {
		t.pendingAttr.Literal = t.stringBuffer.String()
		t.stringBuffer.Reset()
		t.pendingTag.Attributes = append(t.pendingTag.Attributes, *t.pendingAttr)
		t.pendingAttr = nil
		t.state = StateAfterAttributeValueQuoted
		return nil, nil
	}
	return t.accumulateAttrValue(c)
}

func (t *Tokenizer) stepAttributeValueUnquoted(c rune) (*Token, error) {
	if (isSpace(c) || c == '>') && t.ejsonDepth() == 0 {
		t.pendingAttr.Literal = t.stringBuffer.String()
		t.stringBuffer.Reset()
		t.pendingTag.Attributes = append(t.pendingTag.Attributes, *t.pendingAttr)
		t.pendingAttr = nil
		if c == '>' {
			return t.finishTag(), nil
		}
		t.state = StateBeforeAttributeName
		return nil, nil
	}
	return t.accumulateAttrValue(c)
}

// accumulateAttrValue tracks eJSON nesting while gathering an attribute
// value's raw text: `{`/`[` open a subtree (bounded by MaxDepth), their
// matching closers pop it, and an unescaped quote/tag delimiter only ends
// the value once nesting has returned to 0 (spec.md §4.E eJSON embedding).
func (t *Tokenizer) accumulateAttrValue(c rune) (*Token, error) {
	switch c {
	case '{', '[':
		if err := t.pushEJSON(c); err != nil {
			return nil, err
		}
	case '}', ']':
		t.popEJSON()
	case '&':
		if !t.tagHasRawAttr {
			r, err := t.readCharRef()
			if err != nil {
				t.stringBuffer.Append(r)
				return nil, err
			}
			t.stringBuffer.Append(r)
			return nil, nil
		}
	}
	t.stringBuffer.Append(c)
	return nil, nil
}

func (t *Tokenizer) stepAfterAttributeValueQuoted(c rune) (*Token, error) {
	switch {
	case isSpace(c):
		t.state = StateBeforeAttributeName
		return nil, nil
	case c == '/':
		t.state = StateSelfClosingStartTag
		return nil, nil
	case c == '>':
		return t.finishTag(), nil
	default:
		return nil, errors.E(errors.UnexpectedData, "expected whitespace or '>' after a quoted attribute value")
	}
}

func (t *Tokenizer) stepSelfClosingStartTag(c rune) (*Token, error) {
	if c == '>' {
		t.pendingTag.SelfClose = true
		return t.finishTag(), nil
	}
	return nil, errors.E(errors.UnexpectedData, "expected '>' after '/' in a start tag")
}

func (t *Tokenizer) stepCommentStart(c rune) (*Token, error) {
	t.stringBuffer.Reset()
	t.state = StateComment
	return t.stepComment(c)
}

func (t *Tokenizer) stepComment(c rune) (*Token, error) {
	if c == '-' && t.src.peek() == '-' {
		t.src.next()
		t.state = StateCommentEnd
		return nil, nil
	}
	t.stringBuffer.Append(c)
	return nil, nil
}

func (t *Tokenizer) stepCommentEnd(c rune) (*Token, error) {
	if c == '>' {
		text := t.stringBuffer.String()
		t.stringBuffer.Reset()
		t.state = StateData
		return &Token{Kind: TokenComment, Comment: text}, nil
	}
	t.stringBuffer.AppendString("--")
	t.stringBuffer.Append(c)
	t.state = StateComment
	return nil, nil
}

func (t *Tokenizer) stepDoctype(c rune) (*Token, error) {
	if isSpace(c) {
		return nil, nil
	}
	t.stringBuffer.Reset()
	t.stringBuffer.Append(c)
	t.state = StateDoctypeName
	return nil, nil
}

func (t *Tokenizer) stepDoctypeName(c rune) (*Token, error) {
	if c == '>' {
		name := t.stringBuffer.String()
		t.stringBuffer.Reset()
		t.state = StateData
		return &Token{Kind: TokenDoctype, DoctypeName: name}, nil
	}
	t.stringBuffer.Append(c)
	return nil, nil
}

// readCharRef consumes a character or numeric reference immediately
// following a '&' already read by the caller, returning a replacement
// code point to deliver even when it also returns an error (spec.md §4.E
// character-reference protocol).
func (t *Tokenizer) readCharRef() (rune, error) {
	if t.src.peek() == '#' {
		t.src.next()
		return t.readNumericCharRef()
	}

	var sb strings.Builder
	var runesRead []rune
	for {
		c := t.src.peek()
		if c == runeEOF || isSpace(c) || c == ';' || c == '<' || c == '&' || len(runesRead) >= 32 {
			break
		}
		sb.WriteRune(c)
		runesRead = append(runesRead, c)
		t.src.next()
	}
	rest := sb.String()
	// named references are ASCII, so the matched byte-length equals the
	// matched rune-count: unread whatever the longest-prefix match did
	// not claim.
	r, n, ok := matchNamedCharRef(rest)
	if !ok {
		n = 0
	}
	for i := len(runesRead); i > n; i-- {
		t.src.unread()
	}
	if ok && t.src.peek() == ';' {
		t.src.next()
	}
	if !ok {
		return '&', errors.E(errors.InvalidValue, "unrecognized character reference &%s", rest)
	}
	return r, nil
}

func (t *Tokenizer) readNumericCharRef() (rune, error) {
	hex := false
	if t.src.peek() == 'x' || t.src.peek() == 'X' {
		hex = true
		t.src.next()
	}
	var code int64
	var digits int
	for {
		c := t.src.peek()
		var d int64 = -1
		switch {
		case c >= '0' && c <= '9':
			d = int64(c - '0')
		case hex && c >= 'a' && c <= 'f':
			d = int64(c-'a') + 10
		case hex && c >= 'A' && c <= 'F':
			d = int64(c-'A') + 10
		}
		if d < 0 {
			break
		}
		base := int64(10)
		if hex {
			base = 16
		}
		code = code*base + d
		digits++
		t.src.next()
	}
	if t.src.peek() == ';' {
		t.src.next()
	}
	if digits == 0 {
		return '�', errors.E(errors.UnexpectedData, "empty numeric character reference")
	}
	t.charRefCode = code
	return decodeNumericCharRef(code)
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

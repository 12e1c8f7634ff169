// Package buffer implements a growable UTF-8 character buffer, the
// lexeme-accumulation primitive the HVML tokenizer builds every temporary
// string on top of (spec.md §4.B).
package buffer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hvml/purc-go/errors"
)

// Buffer is a growable sequence of Unicode scalar values, stored as UTF-8.
// Unlike a plain strings.Builder, it tracks the scalar (character) count in
// O(1) in addition to the byte length, and supports trimming from either
// end along UTF-8 boundaries.
//
// The zero value is an empty, ready to use Buffer.
type Buffer struct {
	buf     []byte
	nrChars int
}

// New creates an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewFromString creates a Buffer seeded with s.
func NewFromString(s string) *Buffer {
	b := New()
	b.AppendString(s)
	return b
}

// IsEmpty tells if the buffer holds no characters.
func (b *Buffer) IsEmpty() bool {
	return len(b.buf) == 0
}

// SizeInBytes returns the buffer's length in bytes.
func (b *Buffer) SizeInBytes() int {
	return len(b.buf)
}

// SizeInChars returns the number of Unicode scalar values in the buffer,
// in O(1).
func (b *Buffer) SizeInChars() int {
	return b.nrChars
}

// String returns the buffer's contents.
func (b *Buffer) String() string {
	return string(b.buf)
}

// Bytes returns the buffer's contents as a byte slice. Callers must not
// mutate the returned slice.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// AppendBytes appends raw, already-validated UTF-8 bytes to the buffer.
func (b *Buffer) AppendBytes(p []byte) error {
	if !utf8.Valid(p) {
		return errors.E(errors.BadEncoding, "appended bytes are not valid UTF-8")
	}
	b.buf = append(b.buf, p...)
	b.nrChars += utf8.RuneCount(p)
	return nil
}

// AppendString appends s to the buffer.
func (b *Buffer) AppendString(s string) {
	b.buf = append(b.buf, s...)
	b.nrChars += utf8.RuneCountInString(s)
}

// Append appends a single Unicode code point, encoded as 1-4 UTF-8 bytes.
func (b *Buffer) Append(c rune) error {
	if !utf8.ValidRune(c) {
		return errors.E(errors.BadEncoding, "invalid code point U+%04X", c)
	}
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], c)
	b.buf = append(b.buf, enc[:n]...)
	b.nrChars++
	return nil
}

// AppendRunes appends a sequence of code points.
func (b *Buffer) AppendRunes(cs []rune) error {
	for _, c := range cs {
		if err := b.Append(c); err != nil {
			return err
		}
	}
	return nil
}

// AppendAnother appends the contents of another buffer.
func (b *Buffer) AppendAnother(other *Buffer) {
	b.buf = append(b.buf, other.buf...)
	b.nrChars += other.nrChars
}

// DeleteHeadChars removes the first n characters. It is a no-op if n <= 0
// and truncates to empty if n exceeds the character count.
func (b *Buffer) DeleteHeadChars(n int) {
	if n <= 0 {
		return
	}
	if n >= b.nrChars {
		b.Reset()
		return
	}
	i := 0
	for count := 0; count < n; count++ {
		_, size := utf8.DecodeRune(b.buf[i:])
		i += size
	}
	b.buf = append([]byte(nil), b.buf[i:]...)
	b.nrChars -= n
}

// DeleteTailChars removes the last n characters, walking UTF-8 boundaries
// backward from the end of the buffer.
func (b *Buffer) DeleteTailChars(n int) {
	if n <= 0 {
		return
	}
	if n >= b.nrChars {
		b.Reset()
		return
	}
	end := len(b.buf)
	for count := 0; count < n; count++ {
		_, size := utf8.DecodeLastRune(b.buf[:end])
		end -= size
	}
	b.buf = b.buf[:end]
	b.nrChars -= n
}

// LastChar returns the last code point in the buffer, or utf8.RuneError if
// the buffer is empty.
func (b *Buffer) LastChar() rune {
	if len(b.buf) == 0 {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRune(b.buf)
	return r
}

// EndWith tells if the buffer's contents end with s.
func (b *Buffer) EndWith(s string) bool {
	return strings.HasSuffix(string(b.buf), s)
}

// EqualTo tells if the buffer's contents equal s exactly.
func (b *Buffer) EqualTo(s string) bool {
	return string(b.buf) == s
}

// Reset empties the buffer without releasing its backing array, so it can
// be reused for the next lexeme.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.nrChars = 0
}

// IsInt tells if the buffer's contents parse as a (possibly signed)
// integer literal.
func (b *Buffer) IsInt() bool {
	s := string(b.buf)
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsNumber tells if the buffer's contents parse as a decimal number
// literal (integer or floating point, optionally signed).
func (b *Buffer) IsNumber() bool {
	s := string(b.buf)
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	sawDigit := false
	sawDot := false
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			sawDigit = true
		case s[i] == '.' && !sawDot:
			sawDot = true
		default:
			return false
		}
	}
	return sawDigit
}

// IsWhitespace tells if every character in the buffer is Unicode whitespace.
// An empty buffer is not whitespace.
func (b *Buffer) IsWhitespace() bool {
	if len(b.buf) == 0 {
		return false
	}
	for _, r := range string(b.buf) {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

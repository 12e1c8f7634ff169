package hvml

import "github.com/hvml/purc-go/errors"

// namedCharRefs is a small, representative named-character-reference
// table (longest-prefix match). The original implementation resolves
// named references against a generated perfect-hash table
// (hvml-sbst.h/.c) covering the full HTML5 entity list; reproducing that
// table is outside what the retrieval pack grounds, so this tokenizer
// carries the common subset and documents the gap (see DESIGN.md).
var namedCharRefs = map[string]rune{
	"amp":  '&',
	"lt":   '<',
	"gt":   '>',
	"quot": '"',
	"apos": '\'',
	"nbsp": ' ',
}

// matchNamedCharRef consumes the longest registered name that is a prefix
// of s (s does not include the leading '&'). It returns the replacement
// rune and how many bytes of s were consumed, or ok=false if no name
// matches any prefix of s.
func matchNamedCharRef(s string) (r rune, n int, ok bool) {
	best := -1
	for name := range namedCharRefs {
		if len(name) > len(s) {
			continue
		}
		if s[:len(name)] == name && len(name) > best {
			best = len(name)
			r = namedCharRefs[name]
			ok = true
		}
	}
	return r, best, ok
}

const (
	maxUnicodeScalar = 0x10FFFF
	surrogateLow     = 0xD800
	surrogateHigh    = 0xDFFF
)

// decodeNumericCharRef validates a numeric character reference's code
// point against the Unicode scalar range, classifying surrogates, nulls,
// and noncharacters with the specific errors spec.md §7 requires. It
// always returns a deliverable replacement code point alongside any
// error, per the "error recovery delivers a replacement" protocol.
func decodeNumericCharRef(code int64) (rune, error) {
	switch {
	case code == 0:
		return '�', errors.E(errors.UnexpectedData, "character reference resolves to the null code point")
	case code > maxUnicodeScalar:
		return '�', errors.E(errors.InvalidValue, "character reference %#x exceeds the Unicode scalar range", code)
	case code >= surrogateLow && code <= surrogateHigh:
		return '�', errors.E(errors.BadEncoding, "character reference %#x is a surrogate", code)
	case isNoncharacter(rune(code)):
		return rune(code), errors.E(errors.InvalidValue, "character reference %#x is a noncharacter", code)
	default:
		return rune(code), nil
	}
}

func isNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	switch r & 0xFFFF {
	case 0xFFFE, 0xFFFF:
		return true
	}
	return false
}

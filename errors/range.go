package errors

import "fmt"

// Pos is a single position in a source stream: a byte offset plus the
// 1-based line/column derived from it.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Range identifies a span in a named source (a URI, a stream label).
type Range struct {
	Source string
	Start  Pos
	End    Pos
}

// Empty tells if r is the zero Range.
func (r Range) Empty() bool {
	return r == Range{}
}

// String renders a compact "source:line:col" representation.
func (r Range) String() string {
	if r.Empty() {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", r.Source, r.Start.Line, r.Start.Column)
}

// Verbose renders a fully qualified representation including byte offsets.
func (r Range) Verbose() string {
	if r.Empty() {
		return ""
	}
	return fmt.Sprintf(
		"source=%q, start line=%d, start col=%d, start byte=%d, end line=%d, end col=%d, end byte=%d",
		r.Source, r.Start.Line, r.Start.Column, r.Start.Offset, r.End.Line, r.End.Column, r.End.Offset,
	)
}

package source

import "fmt"

// BoundsError reports a caller-supplied coordinate that falls outside the
// buffer. It is never produced for offsets derived from parsed nodes, only
// for inverse lookups over user input, so it always indicates a caller-side
// coordinate mismatch.
type BoundsError struct {
	Line      int
	Column    int
	LineCount int // lines in the buffer at the time of the lookup
	LineLen   int // byte length of the addressed line, when the line was valid
}

func (e *BoundsError) Error() string {
	if e.Line < 1 || e.Line > e.LineCount {
		return fmt.Sprintf("line %d out of range: buffer has %d line(s)", e.Line, e.LineCount)
	}
	return fmt.Sprintf("column %d out of range on line %d: line is %d byte(s)", e.Column, e.Line, e.LineLen)
}

// UnsupportedEncodingError reports an encoding name for which no decoder is
// available. It is fatal for the requesting call only.
type UnsupportedEncodingError struct {
	Name string
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported encoding %q", e.Name)
}

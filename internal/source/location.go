package source

import "fmt"

// Location names a half-open byte range [Start, End) within a Buffer.
// The Buffer reference is non-owning; many Locations share one Buffer.
type Location struct {
	Start int
	End   int
	Buf   *Buffer
}

// NewLocation builds a Location over buf. Callers are expected to pass
// start <= end; the value is stored as given.
func NewLocation(buf *Buffer, start, end int) Location {
	return Location{Start: start, End: end, Buf: buf}
}

// Len returns the range length in bytes.
func (l Location) Len() int { return l.End - l.Start }

// Contains reports whether offset falls inside the range. A zero-width
// location matches exactly its own point, so markers with Start == End are
// still addressable.
func (l Location) Contains(offset int) bool {
	if l.Start == l.End {
		return offset == l.Start
	}
	return l.Start <= offset && offset < l.End
}

// ContainsLocation reports whether other lies fully within l. Equal
// boundaries count as contained, which admits zero-width children at either
// edge of their parent.
func (l Location) ContainsLocation(other Location) bool {
	return l.Start <= other.Start && other.End <= l.End
}

// SameBuffer reports whether two locations reference the same buffer,
// compared by content identity rather than pointer.
func (l Location) SameBuffer(other Location) bool {
	if l.Buf == other.Buf {
		return true
	}
	return l.Buf != nil && other.Buf != nil && l.Buf.ID() == other.Buf.ID()
}

func (l Location) String() string {
	return fmt.Sprintf("[%d,%d)", l.Start, l.End)
}

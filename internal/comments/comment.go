// Package comments assigns free-floating comment tokens to the syntax-tree
// nodes they belong to, as leading or trailing annotations.
package comments

import "github.com/standardbeagle/srcspan/internal/source"

// Kind classifies how a comment sits on its line.
type Kind uint8

const (
	// Standalone comments occupy their own line.
	Standalone Kind = iota
	// Inline comments follow code on the same line.
	Inline
)

func (k Kind) String() string {
	if k == Inline {
		return "inline"
	}
	return "standalone"
}

// Comment is one comment token: its byte range, its classification, and its
// raw text including the comment marker.
type Comment struct {
	Loc  source.Location
	Kind Kind
	Text string
}

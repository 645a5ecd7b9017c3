// Package source owns the coordinate systems over one source buffer: byte
// offsets, line/column positions, decoded-character offsets, and per-encoding
// code-unit offsets.
package source

import (
	"github.com/cespare/xxhash/v2"
)

// Buffer holds the raw bytes of one source file together with its declared
// text encoding and the precomputed byte offsets of every line start.
// A Buffer is immutable once built; Locations reference it without owning it.
type Buffer struct {
	content     []byte
	encoding    string
	lineOffsets []int
	fastHash    uint64 // xxhash for quick identity checks
}

// NewBuffer builds a Buffer over content. encoding is the declared source
// encoding name (IANA-style, e.g. "UTF-8", "ISO-8859-1"); empty means UTF-8.
func NewBuffer(content []byte, encoding string) *Buffer {
	if encoding == "" {
		encoding = "UTF-8"
	}
	return &Buffer{
		content:     content,
		encoding:    encoding,
		lineOffsets: computeLineOffsets(content),
		fastHash:    xxhash.Sum64(content),
	}
}

// Content returns the raw bytes. Callers must not mutate the slice.
func (b *Buffer) Content() []byte { return b.content }

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int { return len(b.content) }

// Encoding returns the declared source encoding name.
func (b *Buffer) Encoding() string { return b.encoding }

// ID returns the content hash used for fast same-buffer checks.
func (b *Buffer) ID() uint64 { return b.fastHash }

// LineCount returns the number of lines. A buffer always has at least one
// line; a trailing newline opens a final empty line.
func (b *Buffer) LineCount() int { return len(b.lineOffsets) }

// computeLineOffsets records the byte offset immediately following every
// newline as the start of the next line. Offset 0 is always a line start.
// A "\r\n" pair contributes a single line start (after the '\n'), so it acts
// as one terminator.
func computeLineOffsets(content []byte) []int {
	newlines := 0
	for _, c := range content {
		if c == '\n' {
			newlines++
		}
	}

	offsets := make([]int, 1, newlines+1)
	offsets[0] = 0
	for i, c := range content {
		if c == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

package source

// Line/column math over the precomputed line offsets. Lines are 1-based,
// columns are 0-based byte counts from the line start.

// LineForOffset returns the line containing the byte offset: the greatest
// line whose start offset is <= offset. Offsets past the end of the buffer
// clamp to the end-of-file position, never an out-of-range line.
func (b *Buffer) LineForOffset(offset int) int {
	offset = b.clampOffset(offset)

	// Binary search for the largest line start <= offset.
	lo, hi := 0, len(b.lineOffsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lineOffsets[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

// ColumnForOffset returns the byte column of offset within its line.
func (b *Buffer) ColumnForOffset(offset int) int {
	offset = b.clampOffset(offset)
	return offset - b.lineOffsets[b.LineForOffset(offset)-1]
}

// OffsetOf is the inverse lookup: it maps a 1-based line and 0-based byte
// column back to a byte offset. Unlike LineForOffset it never clamps; this
// path takes user-supplied coordinates, where out-of-range input is a caller
// error and is reported as *BoundsError.
func (b *Buffer) OffsetOf(line, column int) (int, error) {
	if line < 1 || line > len(b.lineOffsets) {
		return 0, &BoundsError{Line: line, Column: column, LineCount: len(b.lineOffsets)}
	}

	start := b.lineOffsets[line-1]
	// Interior lines own their terminator bytes; the column may address the
	// terminator but not the next line's start. The last line may be
	// addressed one past its final byte (the end-of-file position).
	var maxColumn int
	if line < len(b.lineOffsets) {
		maxColumn = b.lineOffsets[line] - start - 1
	} else {
		maxColumn = len(b.content) - start
	}
	if column < 0 || column > maxColumn {
		return 0, &BoundsError{Line: line, Column: column, LineCount: len(b.lineOffsets), LineLen: maxColumn}
	}
	return start + column, nil
}

// LineStart returns the byte offset at which the 1-based line begins.
// Panics on an out-of-range line; callers validate via OffsetOf first.
func (b *Buffer) LineStart(line int) int {
	return b.lineOffsets[line-1]
}

func (b *Buffer) clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(b.content) {
		return len(b.content)
	}
	return offset
}

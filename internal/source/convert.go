package source

// Converter answers character-offset and code-unit-offset queries against one
// Buffer. All answers are pure functions of the buffer content; the scan
// caches only change how much of the buffer a query has to re-decode.
//
// A Converter's caches are not safe for concurrent mutation. Concurrent
// readers each take their own Converter over the shared immutable Buffer.
type Converter struct {
	buf   *Buffer
	codec codec

	chars *scanState
	units map[string]*unitState
}

// scanState is the monotonic decode cursor for one measure: the last decode
// position, the count accumulated up to it, and lazily filled per-line base
// counts so a backward query rescans at most one line.
type scanState struct {
	byteOff   int
	count     int
	lineBase  []int // lineBase[i] = count at the start of line i+1, valid for i < lineKnown
	lineKnown int   // number of leading lineBase entries that are filled
}

type unitState struct {
	scan  scanState
	width unitWidth
}

// NewConverter builds a Converter for buf's declared encoding. It fails with
// *UnsupportedEncodingError when no decoder exists for that encoding.
func NewConverter(buf *Buffer) (*Converter, error) {
	c, err := resolveCodec(buf.Encoding())
	if err != nil {
		return nil, err
	}
	return &Converter{
		buf:   buf,
		codec: c,
		chars: newScanState(buf),
		units: make(map[string]*unitState),
	}, nil
}

// Buffer returns the buffer this converter reads.
func (c *Converter) Buffer() *Buffer { return c.buf }

// CharacterOffset returns the number of decoded codepoints that start
// strictly before byteOffset. Malformed byte sequences are not fatal: each
// undecodable byte counts as one character.
func (c *Converter) CharacterOffset(byteOffset int) int {
	return c.measure(c.chars, byteOffset, func(rune) int { return 1 })
}

// CodeUnitOffset is CharacterOffset weighted by how many code units each
// codepoint occupies under the target encoding. Each target keeps its own
// scan cache, since callers commonly interleave targets over one buffer.
func (c *Converter) CodeUnitOffset(byteOffset int, target string) (int, error) {
	st, ok := c.units[target]
	if !ok {
		width, err := resolveUnitWidth(target)
		if err != nil {
			return 0, err
		}
		st = &unitState{scan: *newScanState(c.buf), width: width}
		c.units[target] = st
	}
	return c.measure(&st.scan, byteOffset, st.width), nil
}

func newScanState(buf *Buffer) *scanState {
	st := &scanState{lineBase: make([]int, buf.LineCount()), lineKnown: 1}
	return st // line 1 starts at count 0
}

// measure counts weighted codepoints before byteOffset. Queries at or past
// the cursor decode forward from it; earlier queries restart from the start
// of the target's line, whose base count the forward scans have already
// recorded. Either way the cursor moves to the query point, so the common
// monotonic access pattern decodes each byte once.
func (c *Converter) measure(st *scanState, byteOffset int, width func(rune) int) int {
	target := c.buf.clampOffset(byteOffset)

	if target < st.byteOff {
		line := c.buf.LineForOffset(target)
		// The cursor is past this line's start, so the forward scan that
		// moved it there has filled the line's base count.
		st.byteOff = c.buf.LineStart(line)
		st.count = st.lineBase[line-1]
	}

	content := c.buf.Content()
	pos, count := st.byteOff, st.count
	for pos < target {
		if content[pos] == '\n' {
			count++
			pos++
			c.noteLineBase(st, pos, count)
			continue
		}
		r, size, valid := c.codec.decodeRune(content[pos:])
		if valid {
			count += width(r)
		} else {
			count++ // one byte, one character, one code unit
		}
		pos += size
	}

	st.byteOff = pos
	st.count = count
	return count
}

// noteLineBase records the running count at a line start crossed by a
// forward scan. Line starts always sit on decode boundaries: they follow a
// '\n' byte, which no multi-byte sequence contains.
func (c *Converter) noteLineBase(st *scanState, pos, count int) {
	if st.lineKnown < len(st.lineBase) && c.buf.lineOffsets[st.lineKnown] == pos {
		st.lineBase[st.lineKnown] = count
		st.lineKnown++
	}
}

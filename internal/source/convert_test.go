package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// "a", e-acute (2 bytes), musical G clef (4 bytes, needs a surrogate pair),
// "b", newline, "x".
const mixed = "a\xc3\xa9\xf0\x9d\x84\x9eb\nx"

func newTestConverter(t *testing.T, content, encoding string) *Converter {
	t.Helper()
	conv, err := NewConverter(NewBuffer([]byte(content), encoding))
	require.NoError(t, err)
	return conv
}

func TestCharacterOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"start", 0, 0},
		{"after ascii", 1, 1},
		{"after two-byte rune", 3, 2},
		{"mid-rune counts the straddling codepoint", 2, 2},
		{"after four-byte rune", 7, 3},
		{"after newline", 9, 5},
		{"end of buffer", 10, 6},
		{"clamped past end", 50, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := newTestConverter(t, mixed, "")
			assert.Equal(t, tt.want, conv.CharacterOffset(tt.offset))
		})
	}
}

func TestCodeUnitOffset_UTF16SurrogatePair(t *testing.T) {
	conv := newTestConverter(t, mixed, "")

	units, err := conv.CodeUnitOffset(7, "UTF-16")
	require.NoError(t, err)
	assert.Equal(t, 4, units, "a=1, e-acute=1, clef=2")

	units, err = conv.CodeUnitOffset(10, "UTF-16")
	require.NoError(t, err)
	assert.Equal(t, 7, units)

	// UTF-32 weighs every codepoint once, so it matches CharacterOffset.
	units, err = conv.CodeUnitOffset(10, "UTF-32")
	require.NoError(t, err)
	assert.Equal(t, conv.CharacterOffset(10), units)

	// UTF-8 code units are the bytes of the re-encoded codepoint.
	units, err = conv.CodeUnitOffset(7, "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, 7, units)
}

// Any access pattern must agree with a cache-free recomputation, here
// modelled by a fresh converter per query.
func TestConverter_CacheTransparency(t *testing.T) {
	content := "first line\nsecond \xc3\xa9 line\nthird \xf0\x9d\x84\x9e line\nfourth line\n"
	pattern := []int{0, 5, 40, 12, 39, 3, 27, 27, 52, 1, 52, 0, 18}

	conv := newTestConverter(t, content, "")
	for _, offset := range pattern {
		fresh := newTestConverter(t, content, "")
		assert.Equal(t, fresh.CharacterOffset(offset), conv.CharacterOffset(offset),
			"characters at %d", offset)

		want, err := fresh.CodeUnitOffset(offset, "UTF-16")
		require.NoError(t, err)
		got, err := conv.CodeUnitOffset(offset, "UTF-16")
		require.NoError(t, err)
		assert.Equal(t, want, got, "utf-16 units at %d", offset)
	}
}

func TestConverter_BackwardQueryAfterForwardScan(t *testing.T) {
	content := "alpha\nb\xc3\xa8ta\ngamma\ndelta\n"
	conv := newTestConverter(t, content, "")

	// Drive the cursor to the end, then jump back into the second line.
	_ = conv.CharacterOffset(len(content))
	fresh := newTestConverter(t, content, "")
	for offset := 0; offset <= len(content); offset++ {
		assert.Equal(t, fresh.CharacterOffset(offset), conv.CharacterOffset(offset), "offset %d", offset)
		fresh = newTestConverter(t, content, "")
	}
}

func TestConverter_MalformedBytes(t *testing.T) {
	// Lone continuation bytes and a truncated sequence: every invalid byte
	// is one character and one code unit, so the scan always terminates.
	conv := newTestConverter(t, "a\xff\xfe\xc3b", "")
	assert.Equal(t, 5, conv.CharacterOffset(5))

	units, err := conv.CodeUnitOffset(5, "UTF-16")
	require.NoError(t, err)
	assert.Equal(t, 5, units)
}

func TestConverter_SingleByteEncoding(t *testing.T) {
	// 0xE9 is e-acute in Latin-1; in Windows-1252 0x80 is the euro sign.
	conv := newTestConverter(t, "caf\xe9", "ISO-8859-1")
	assert.Equal(t, 4, conv.CharacterOffset(4))

	units, err := conv.CodeUnitOffset(4, "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, 5, units, "e-acute re-encodes to two utf-8 units")

	conv = newTestConverter(t, "\x80", "windows-1252")
	units, err = conv.CodeUnitOffset(1, "UTF-16")
	require.NoError(t, err)
	assert.Equal(t, 1, units)
}

func TestConverter_ASCII(t *testing.T) {
	conv := newTestConverter(t, "ok\x90ok", "US-ASCII")
	// The 0x90 byte is invalid under ASCII: one byte, one character.
	assert.Equal(t, 5, conv.CharacterOffset(5))
}

func TestConverter_UnsupportedEncodings(t *testing.T) {
	t.Run("unknown source encoding", func(t *testing.T) {
		_, err := NewConverter(NewBuffer([]byte("x"), "no-such-encoding"))
		var ue *UnsupportedEncodingError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, "no-such-encoding", ue.Name)
	})

	t.Run("multi-byte source encoding has no incremental decoder", func(t *testing.T) {
		_, err := NewConverter(NewBuffer([]byte("x"), "Shift_JIS"))
		var ue *UnsupportedEncodingError
		require.ErrorAs(t, err, &ue)
	})

	t.Run("unknown target leaves other conversions usable", func(t *testing.T) {
		conv := newTestConverter(t, "abc", "")
		_, err := conv.CodeUnitOffset(2, "EBCDIC")
		var ue *UnsupportedEncodingError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, 2, conv.CharacterOffset(2))
	})
}

func TestConverter_IndependentTargetCaches(t *testing.T) {
	conv := newTestConverter(t, mixed, "")

	u16a, err := conv.CodeUnitOffset(10, "UTF-16")
	require.NoError(t, err)
	u32, err := conv.CodeUnitOffset(3, "UTF-32")
	require.NoError(t, err)
	u16b, err := conv.CodeUnitOffset(10, "UTF-16")
	require.NoError(t, err)

	assert.Equal(t, u16a, u16b, "interleaving targets must not disturb each other")
	assert.Equal(t, 2, u32)
}

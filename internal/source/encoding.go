package source

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// codec decodes one codepoint from the front of p. size is always >= 1 when
// len(p) > 0, so scans make forward progress even over malformed input.
// valid is false for bytes the encoding cannot decode; such bytes are
// consumed one at a time and counted as one character and one code unit.
type codec interface {
	decodeRune(p []byte) (r rune, size int, valid bool)
}

type utf8Codec struct{}

func (utf8Codec) decodeRune(p []byte) (rune, int, bool) {
	r, size := utf8.DecodeRune(p)
	if r == utf8.RuneError && size <= 1 {
		return utf8.RuneError, 1, false
	}
	return r, size, true
}

type asciiCodec struct{}

func (asciiCodec) decodeRune(p []byte) (rune, int, bool) {
	if p[0] < 0x80 {
		return rune(p[0]), 1, true
	}
	return utf8.RuneError, 1, false
}

// charmapCodec decodes any single-byte encoding the IANA index resolves to a
// charmap table (Latin-1 family, windows-125x, KOI8, ...).
type charmapCodec struct {
	cm *charmap.Charmap
}

func (c charmapCodec) decodeRune(p []byte) (rune, int, bool) {
	r := c.cm.DecodeByte(p[0])
	if r == utf8.RuneError {
		return utf8.RuneError, 1, false
	}
	return r, 1, true
}

// resolveCodec maps a declared source encoding name to a decoder.
// Multi-byte legacy encodings have no incremental decoder here and are
// rejected rather than half-supported.
func resolveCodec(name string) (codec, error) {
	switch normalizeEncodingName(name) {
	case "utf8":
		return utf8Codec{}, nil
	case "ascii", "usascii":
		return asciiCodec{}, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, &UnsupportedEncodingError{Name: name}
	}
	if cm, ok := enc.(*charmap.Charmap); ok {
		return charmapCodec{cm: cm}, nil
	}
	return nil, &UnsupportedEncodingError{Name: name}
}

// unitWidth returns the number of code units r occupies under the target
// encoding's in-memory representation.
type unitWidth func(r rune) int

// resolveUnitWidth maps a target encoding name to its code-unit weighting.
func resolveUnitWidth(name string) (unitWidth, error) {
	switch normalizeEncodingName(name) {
	case "utf8":
		return utf8.RuneLen, nil
	case "utf16", "utf16le", "utf16be":
		return func(r rune) int {
			if r > 0xFFFF {
				return 2 // surrogate pair
			}
			return 1
		}, nil
	case "utf32", "utf32le", "utf32be", "ucs4":
		return func(rune) int { return 1 }, nil
	}
	return nil, &UnsupportedEncodingError{Name: name}
}

func normalizeEncodingName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r == '-' || r == '_' || r == ' ':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

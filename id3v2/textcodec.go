package id3v2

import (
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies one of the four ID3v2 text encodings by its wire
// value (spec.md §4.2).
type Encoding byte

const (
	EncISO88591 Encoding = 0
	EncUTF16    Encoding = 1 // with BOM, version > 2.2 only
	EncUTF16BE  Encoding = 2
	EncUTF8     Encoding = 3
)

// resolveEncoding maps an encoding byte to an Encoding. The second
// return value is false for anything outside 0..3, meaning (per
// spec.md §4.2) that the byte wasn't really an encoding marker at all.
func resolveEncoding(b byte) (Encoding, bool) {
	switch Encoding(b) {
	case EncISO88591, EncUTF16, EncUTF16BE, EncUTF8:
		return Encoding(b), true
	default:
		return EncISO88591, false
	}
}

// BOM describes a detected UTF-16 byte order mark: how many bytes it
// occupied and which endianness it signals. Only 2-byte UTF-16 BOMs are
// detected; UTF-8/UTF-32 BOMs are never probed for (spec.md §3, §9 note
// 3 — a 3-byte "FE FF 48"-style sequence mentioned in some
// implementations' comments is not a real BOM and is not special-cased
// here).
type BOM struct {
	Size   int
	Endian unicode.Endianness
}

// sniffBOM inspects the first two bytes of b for a UTF-16 BOM.
func sniffBOM(b []byte) (BOM, bool) {
	if len(b) < 2 {
		return BOM{}, false
	}
	switch {
	case b[0] == 0xFF && b[1] == 0xFE:
		return BOM{Size: 2, Endian: unicode.LittleEndian}, true
	case b[0] == 0xFE && b[1] == 0xFF:
		return BOM{Size: 2, Endian: unicode.BigEndian}, true
	default:
		return BOM{}, false
	}
}

// xtextEncoding resolves enc (with endian used only for the two UTF-16
// variants) to an x/text encoding.Encoding. The BOM, if any, must
// already have been stripped from the data the caller feeds the
// resulting decoder/encoder — BOM handling in this package happens one
// level up, in the frame reader/writer, because where a BOM is looked
// for (and how failure to find one is handled) is frame-shape specific
// (spec.md §4.6 steps 5 and 6).
func xtextEncoding(enc Encoding, endian unicode.Endianness) encoding.Encoding {
	switch enc {
	case EncISO88591:
		return charmap.ISO8859_1
	case EncUTF16, EncUTF16BE:
		return unicode.UTF16(endian, unicode.IgnoreBOM)
	case EncUTF8:
		return encoding.Nop
	default:
		return encoding.Nop
	}
}

// decodeText decodes data (BOM already stripped, if any) from enc/endian
// into a UTF-8 Go string with any trailing NUL padding removed.
func decodeText(enc Encoding, endian unicode.Endianness, data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	out, err := xtextEncoding(enc, endian).NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return stripTrailingZeros(string(out)), nil
}

// encodeText encodes s into enc/endian. For EncUTF16 the caller is
// responsible for prefixing the returned bytes with a BOM; encodeText
// only produces the body.
func encodeText(enc Encoding, endian unicode.Endianness, s string) ([]byte, error) {
	return xtextEncoding(enc, endian).NewEncoder().Bytes([]byte(s))
}

// stripTrailingZeros removes trailing NUL bytes/runes left over from a
// fixed terminator.
func stripTrailingZeros(s string) string {
	return strings.TrimRight(s, "\x00")
}

// readNullTerminatedRaw reads raw (still-encoded) bytes up to but not
// including the encoding-appropriate terminator: a single 0x00 for
// ISO-8859-1/UTF-8, or a 0x00 0x00 pair for the two UTF-16 variants. It
// returns the terminator-exclusive bytes; the terminator itself is
// consumed from r.
func readNullTerminatedRaw(r io.ByteReader, enc Encoding) ([]byte, error) {
	if enc == EncUTF16 || enc == EncUTF16BE {
		var buf []byte
		for {
			b0, err := r.ReadByte()
			if err != nil {
				return buf, err
			}
			b1, err := r.ReadByte()
			if err != nil {
				return buf, err
			}
			if b0 == 0 && b1 == 0 {
				return buf, nil
			}
			buf = append(buf, b0, b1)
		}
	}

	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return buf, err
		}
		if b == 0 {
			return buf, nil
		}
		buf = append(buf, b)
	}
}

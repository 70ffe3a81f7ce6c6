package id3v2

import (
	"testing"

	"golang.org/x/text/encoding/unicode"
)

func TestResolveEncoding(t *testing.T) {
	for b := 0; b <= 3; b++ {
		if _, ok := resolveEncoding(byte(b)); !ok {
			t.Errorf("resolveEncoding(%d) reported not-ok, want ok", b)
		}
	}
	if enc, ok := resolveEncoding(0x42); ok {
		t.Errorf("resolveEncoding(0x42) = (%v, true), want ok=false", enc)
	}
}

func TestSniffBOM(t *testing.T) {
	le := []byte{0xFF, 0xFE, 'h', 0}
	if bom, ok := sniffBOM(le); !ok || bom.Endian != unicode.LittleEndian || bom.Size != 2 {
		t.Errorf("sniffBOM(LE) = %+v, %v", bom, ok)
	}
	be := []byte{0xFE, 0xFF, 0, 'h'}
	if bom, ok := sniffBOM(be); !ok || bom.Endian != unicode.BigEndian || bom.Size != 2 {
		t.Errorf("sniffBOM(BE) = %+v, %v", bom, ok)
	}
	if _, ok := sniffBOM([]byte{'h', 'i'}); ok {
		t.Error("sniffBOM matched plain ASCII bytes")
	}
	if _, ok := sniffBOM([]byte{0xFF}); ok {
		t.Error("sniffBOM matched on a single byte")
	}
}

func TestDecodeEncodeTextISO88591(t *testing.T) {
	s := "Café"
	enc, err := encodeText(EncISO88591, unicode.LittleEndian, s)
	if err != nil {
		t.Fatalf("encodeText: %v", err)
	}
	got, err := decodeText(EncISO88591, unicode.LittleEndian, enc)
	if err != nil {
		t.Fatalf("decodeText: %v", err)
	}
	if got != s {
		t.Errorf("round trip ISO-8859-1: got %q, want %q", got, s)
	}
}

func TestDecodeEncodeTextUTF16(t *testing.T) {
	for _, endian := range []unicode.Endianness{unicode.LittleEndian, unicode.BigEndian} {
		s := "héllo wörld"
		enc, err := encodeText(EncUTF16, endian, s)
		if err != nil {
			t.Fatalf("encodeText: %v", err)
		}
		got, err := decodeText(EncUTF16, endian, enc)
		if err != nil {
			t.Fatalf("decodeText: %v", err)
		}
		if got != s {
			t.Errorf("round trip UTF-16 (%v): got %q, want %q", endian, got, s)
		}
	}
}

func TestStripTrailingZeros(t *testing.T) {
	if got := stripTrailingZeros("hello\x00\x00"); got != "hello" {
		t.Errorf("stripTrailingZeros = %q, want %q", got, "hello")
	}
	if got := stripTrailingZeros("hello"); got != "hello" {
		t.Errorf("stripTrailingZeros(no NULs) = %q, want %q", got, "hello")
	}
}

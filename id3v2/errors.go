package id3v2

import "github.com/pkg/errors"

// Sentinel errors for the taxonomy described in spec.md §7. AbsentTag is
// not actually an error condition callers need to branch on via errors.Is
// in the common case: Decode returns (nil, nil) when the tag magic
// doesn't match, exactly like "clean no-tag result" in §7.
var (
	// ErrAbsentTag is not returned by this package: both Decode and
	// ParseHeader report a missing tag as (nil, nil). It is exported as
	// a value callers can use for that condition in their own code.
	ErrAbsentTag = errors.New("id3v2: no ID3 tag present")

	// ErrUnsupportedVersion is returned when the header version byte is
	// outside {2,3,4}.
	ErrUnsupportedVersion = errors.New("id3v2: unsupported tag version")

	// ErrMalformedFrame is returned (wrapped) by the frame reader loop
	// when a frame id starts with a valid byte but contains an invalid
	// one further on. A first byte that cannot begin a frame id is taken
	// as padding and ends the loop without an error. The loop stops;
	// frames already parsed are preserved, and Decode returns them
	// together with the error.
	ErrMalformedFrame = errors.New("id3v2: malformed frame id")

	// ErrInvalidSynchSafe names a synch-safe integer with a high bit set
	// in one of its bytes. It is not returned by this package: the
	// synch-safe decoders mask a stray high bit instead.
	ErrInvalidSynchSafe = errors.New("id3v2: invalid synch-safe integer")

	// ErrBadBOM names a UTF-16 BOM byte pair that matches neither
	// endianness. It is not returned by this package: sniffBOM reports
	// such bytes as "no BOM found".
	ErrBadBOM = errors.New("id3v2: invalid UTF-16 byte order mark")

	// ErrUnknownEncoding names a text encoding byte outside 0..3. It is
	// not returned by this package: resolveEncoding treats such a byte as
	// an absent encoding marker and falls back to ISO-8859-1.
	ErrUnknownEncoding = errors.New("id3v2: unknown text encoding")
)

package id3v2

import (
	"io"

	"github.com/pkg/errors"
)

// Header flag bits (spec.md §3).
const (
	FlagUnsynchronisation = 1 << 7
	FlagExtendedHeader    = 1 << 6
	FlagExperimental      = 1 << 5
	FlagFooter            = 1 << 4
)

// Extended-header flag bits (spec.md §4.4).
const (
	extFlagIsUpdate     = 1 << 6
	extFlagCRCPresent   = 1 << 5
	extFlagRestrictions = 1 << 4
)

// TagInfo is the parsed state of an ID3v2 base header, plus the
// optional extended header, as described in spec.md §3.
type TagInfo struct {
	ID       [3]byte
	Version  uint8
	Revision uint8
	Flags    uint8
	Size     uint32 // synch-safe tag size, excludes the 10-byte base header
	FileSize int64  // bytes available from the tag's start offset to EOF

	HasExtendedHeader  bool
	ExtendedHeaderSize uint32
	ExtendedFlags      uint8
	HasCRC             bool
	CRC                uint64
	HasRestrictions    bool
	TagRestrictions    uint8
}

// Unsynchronized reports whether the tag uses the unsynchronization
// transform (spec.md §3 invariant 6).
func (t *TagInfo) Unsynchronized() bool { return t.Flags&FlagUnsynchronisation != 0 }

// HasFooter reports whether a 10-byte footer follows the tag (2.4+
// only).
func (t *TagInfo) HasFooter() bool { return t.Version > 3 && t.Flags&FlagFooter != 0 }

// Experimental reports the experimental indicator flag (2.4+ only).
func (t *TagInfo) Experimental() bool { return t.Version > 3 && t.Flags&FlagExperimental != 0 }

// TotalSize is 10 + Size + (10 if a footer is present), per spec.md §3
// invariant 3.
func (t *TagInfo) TotalSize() uint32 {
	n := 10 + t.Size
	if t.HasFooter() {
		n += 10
	}
	return n
}

// Clamped reports whether TotalSize exceeds the bytes actually
// available, in which case the tag must be treated as empty (spec.md §3
// invariant 3, §8 property 4).
func (t *TagInfo) Clamped() bool { return int64(t.TotalSize()) > t.FileSize }

// FrameAreaSize is the number of bytes available to the frame reader
// loop: Size, unless the tag is Clamped, in which case zero.
func (t *TagInfo) FrameAreaSize() uint32 {
	if t.Clamped() {
		return 0
	}
	return t.Size
}

// MaxFrames is the restriction-derived maximum frame count (spec.md §3
// restrictions table). Only meaningful when HasRestrictions is true.
func (t *TagInfo) MaxFrames() int {
	switch (t.TagRestrictions & 0xC0) >> 6 {
	case 0:
		return 128
	case 1:
		return 64
	default:
		return 32
	}
}

// MaxTagSizeKB is the restriction-derived maximum tag size in KB.
func (t *TagInfo) MaxTagSizeKB() int {
	switch (t.TagRestrictions & 0xC0) >> 6 {
	case 0:
		return 1024
	case 1:
		return 128
	case 2:
		return 40
	default:
		return 4
	}
}

// TextEncodingRestricted reports whether text fields are restricted to
// ISO-8859-1 or UTF-8.
func (t *TagInfo) TextEncodingRestricted() bool { return t.TagRestrictions&0x20 != 0 }

// TextFieldLengthCap is the restriction-derived maximum text field
// length in characters, or 0 for unlimited.
func (t *TagInfo) TextFieldLengthCap() int {
	switch (t.TagRestrictions & 0x18) >> 3 {
	case 0:
		return 0
	case 1:
		return 1024
	case 2:
		return 128
	default:
		return 30
	}
}

// PictureEncodingRestricted reports whether pictures are restricted to
// JPEG or PNG.
func (t *TagInfo) PictureEncodingRestricted() bool { return t.TagRestrictions&0x04 != 0 }

// PictureSizeRestriction describes the restriction-derived picture
// dimension cap: MaxDimension is 0 for "no cap", and Exact means the
// picture must be precisely MaxDimension x MaxDimension rather than at
// most that size.
type PictureSizeRestriction struct {
	MaxDimension int
	Exact        bool
}

func (t *TagInfo) PictureSizeRestriction() PictureSizeRestriction {
	switch t.TagRestrictions & 0x03 {
	case 0:
		return PictureSizeRestriction{}
	case 1:
		return PictureSizeRestriction{MaxDimension: 256}
	case 2:
		return PictureSizeRestriction{MaxDimension: 64}
	default:
		return PictureSizeRestriction{MaxDimension: 64, Exact: true}
	}
}

// ParseHeader reads the 10-byte base header (and optional extended
// header) from r, which must already be positioned at the start of the
// candidate tag. availableBytes is the number of bytes remaining in the
// underlying source from that position, used for the total-size bounds
// check (spec.md §3 invariant 3).
//
// A magic mismatch returns (nil, nil): an absent tag is not an error
// (spec.md §7). An unsupported version returns the partially-populated
// TagInfo together with ErrUnsupportedVersion, since the base header was
// still captured successfully (spec.md §7 "UnsupportedVersion... return
// partial success"). Any other error is a genuine I/O failure and is
// wrapped before being returned.
func ParseHeader(r io.Reader, availableBytes int64) (*TagInfo, error) {
	var hdr [10]byte
	if _, err := io.ReadFull(r, hdr[:3]); err != nil {
		return nil, errors.Wrap(err, "id3v2: read tag magic")
	}
	if string(hdr[:3]) != "ID3" {
		return nil, nil
	}

	if _, err := io.ReadFull(r, hdr[3:]); err != nil {
		return nil, errors.Wrap(err, "id3v2: read tag header")
	}

	ti := &TagInfo{
		Version:  hdr[3],
		Revision: hdr[4],
		Flags:    hdr[5],
		Size:     decodeSynchSafe28(hdr[6:10]),
		FileSize: availableBytes,
	}
	copy(ti.ID[:], hdr[:3])

	if ti.Version < 2 || ti.Version > 4 {
		return ti, ErrUnsupportedVersion
	}

	if ti.Flags&FlagExtendedHeader != 0 && ti.Version > 2 {
		if err := parseExtendedHeader(r, ti); err != nil {
			return ti, errors.Wrap(err, "id3v2: read extended header")
		}
	}

	return ti, nil
}

func parseExtendedHeader(r io.Reader, ti *TagInfo) error {
	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return err
	}
	ti.HasExtendedHeader = true
	ti.ExtendedHeaderSize = decodeSynchSafe28(sizeBuf[:])

	// Mandatory 1-byte flag count; its value is informational only and
	// is not validated (spec.md §4.4).
	var flagCount [1]byte
	if _, err := io.ReadFull(r, flagCount[:]); err != nil {
		return err
	}

	var extFlags [1]byte
	if _, err := io.ReadFull(r, extFlags[:]); err != nil {
		return err
	}
	ti.ExtendedFlags = extFlags[0]

	if ti.ExtendedFlags&extFlagCRCPresent != 0 {
		var crcBuf [5]byte
		if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
			return err
		}
		ti.HasCRC = true
		ti.CRC = decodeSynchSafe35(crcBuf[:])
	}

	if ti.ExtendedFlags&extFlagRestrictions != 0 {
		var restr [1]byte
		if _, err := io.ReadFull(r, restr[:]); err != nil {
			return err
		}
		ti.HasRestrictions = true
		ti.TagRestrictions = restr[0]
	}

	return nil
}

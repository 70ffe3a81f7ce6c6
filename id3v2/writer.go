package id3v2

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

// POPMRatingBehavior selects how SetRating resolves a new rating
// against one a tag already carries (spec.md §9 open question 1).
type POPMRatingBehavior int

const (
	// POPMRatingFixed clamps the resolved rating to the valid 0-255
	// byte range on both ends. This is the default: a new codec has no
	// installed base depending on the legacy defect, and clamping is the
	// only behavior guaranteed to produce a spec-valid byte.
	POPMRatingFixed POPMRatingBehavior = iota

	// POPMRatingFaithful reproduces the legacy defect this was modeled
	// on: it lower-bounds the value at zero but never upper-bounds it,
	// so a caller passing a value above 255 gets silent byte truncation
	// instead of a clamp.
	POPMRatingFaithful
)

func resolvePOPMRating(existing, requested int, behavior POPMRatingBehavior) byte {
	value := requested
	if value < existing {
		value = existing
	}
	if value < 0 {
		value = 0
	}
	if behavior == POPMRatingFixed && value > 255 {
		value = 255
	}
	return byte(value)
}

// WriteOptions configures EncodeTo.
type WriteOptions struct {
	// Unsynchronise, when true, runs the whole frame area through the
	// unsynchronization filter and sets the header's flag accordingly.
	// The synch-safe size written to the header is always the
	// *post*-unsynchronization byte count (spec.md §8 property: the
	// stored size must match what a reader will actually consume).
	Unsynchronise bool

	POPMRatingBehavior POPMRatingBehavior
}

// wrapFrame assembles one ID3v2.4 frame: a 4-character code, a
// synch-safe size, two zeroed status/format flag bytes, then data.
// EncodeTo always emits 2.4 frames regardless of the Tag's source
// version, so every per-kind encoder below feeds this directly.
func wrapFrame(code string, data []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(code)
	size := encodeSynchSafe28(uint32(len(data)))
	buf.Write(size[:])
	buf.Write([]byte{0, 0})
	buf.Write(data)
	return buf.Bytes()
}

func encodeTextFrame(code, value string) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(EncUTF8))
	body, _ := encodeText(EncUTF8, unicode.LittleEndian, value)
	buf.Write(body)
	return wrapFrame(code, buf.Bytes())
}

func encodeTXXX(desc, value string) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(EncUTF8))
	d, _ := encodeText(EncUTF8, unicode.LittleEndian, desc)
	buf.Write(d)
	buf.WriteByte(0)
	v, _ := encodeText(EncUTF8, unicode.LittleEndian, value)
	buf.Write(v)
	return wrapFrame("TXXX", buf.Bytes())
}

func encodeUserURLFrame(desc, value string) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(EncUTF8))
	d, _ := encodeText(EncUTF8, unicode.LittleEndian, desc)
	buf.Write(d)
	buf.WriteByte(0)
	buf.WriteString(value) // URLs stay ISO-8859-1/ASCII, never re-encoded
	return wrapFrame("WXXX", buf.Bytes())
}

func encodeCOMM(c Comment) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(EncUTF8))
	lang := c.Language
	if len(lang) != 3 {
		lang = "eng"
	}
	buf.WriteString(lang)
	d, _ := encodeText(EncUTF8, unicode.LittleEndian, c.Description)
	buf.Write(d)
	buf.WriteByte(0)
	t, _ := encodeText(EncUTF8, unicode.LittleEndian, c.Text)
	buf.Write(t)
	return wrapFrame("COMM", buf.Bytes())
}

func encodePOPM(p PopularityMeter) []byte {
	var buf bytes.Buffer
	e, _ := encodeText(EncISO88591, unicode.LittleEndian, p.Email)
	buf.Write(e)
	buf.WriteByte(0)
	buf.WriteByte(p.Rating)
	if p.HasCounter {
		cb := make([]byte, 4)
		v := p.Counter
		for i := 3; i >= 0; i-- {
			cb[i] = byte(v)
			v >>= 8
		}
		buf.Write(cb)
	}
	return wrapFrame("POPM", buf.Bytes())
}

func encodePicture(p Picture) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(EncUTF8))
	mime := p.MIME
	if mime == "" {
		mime = "image/jpeg"
	}
	buf.WriteString(mime)
	buf.WriteByte(0)
	buf.WriteByte(wirePictureType(p.Type))
	d, _ := encodeText(EncUTF8, unicode.LittleEndian, p.Description)
	buf.Write(d)
	buf.WriteByte(0)
	buf.Write(p.Data)
	return wrapFrame("APIC", buf.Bytes())
}

// v22to24FrameID best-effort maps a 3-character ID3v2.2 frame code to
// its ID3v2.4 4-character equivalent, for additional fields that came
// from a v2.2 source tag but are being re-encoded by a writer that
// always emits 2.4 (spec.md §5's "additional field" pass-through).
// Codes with no known successor, or already 4 characters, pass through
// unchanged — a conservative default for the long tail of rare frames.
var v22to24FrameID = map[string]string{
	"BUF": "RBUF", "CNT": "PCNT", "CRA": "AENC", "EQU": "EQU2",
	"GEO": "GEOB", "IPL": "TIPL", "LNK": "LINK", "MCI": "MCDI",
	"MLL": "MLLT", "REV": "RVRB", "RVA": "RVA2", "SLT": "SYLT",
	"STC": "SYTC", "TBP": "TBPM", "TDY": "TDLY", "TEN": "TENC",
	"TFT": "TFLT", "TKE": "TKEY", "TLA": "TLAN", "TLE": "TLEN",
	"TMT": "TMED", "TOF": "TOFN", "TOL": "TOLY", "TOR": "TDOR",
	"TP4": "TPE4", "TRC": "TSRC", "TSS": "TSSE", "TXT": "TEXT",
	"UFI": "UFID", "ULT": "USLT", "WAF": "WOAF", "WAR": "WOAR",
	"WAS": "WOAS", "WCM": "WCOM", "WCP": "WCOP", "WPB": "WPUB",
	"TT1": "TIT1", "TT2": "TIT2", "TP1": "TPE1", "TP2": "TPE2",
	"TP3": "TPE3", "TOA": "TOPE", "TAL": "TALB", "TOT": "TOAL",
	"TRK": "TRCK", "TPA": "TPOS", "TYE": "TYER", "TDA": "TDAT",
	"COM": "COMM", "TCM": "TCOM", "POP": "POPM", "TCO": "TCON",
	"TCR": "TCOP", "TPB": "TPUB",
}

func normalizeFrameIDFor24(id string) string {
	if len(id) != 3 {
		return id
	}
	if mapped, ok := v22to24FrameID[id]; ok {
		return mapped
	}
	return id
}

// encodeExtendedHeader re-emits the extended header byte-exact from the
// previously-parsed TagInfo (spec.md §4.7 step 2): synch-safe size,
// mandatory 1-byte flag count, flags byte, then the CRC and restrictions
// bytes the flags byte declares present, both copied as-is.
func encodeExtendedHeader(ti *TagInfo) []byte {
	var buf bytes.Buffer
	size := encodeSynchSafe28(ti.ExtendedHeaderSize)
	buf.Write(size[:])
	buf.WriteByte(1) // flag count is always 1 in 2.4
	buf.WriteByte(ti.ExtendedFlags)
	if ti.HasCRC {
		crc := encodeSynchSafe35(ti.CRC)
		buf.Write(crc[:])
	}
	if ti.HasRestrictions {
		buf.WriteByte(ti.TagRestrictions)
	}
	return buf.Bytes()
}

// EncodeTo writes t as a complete ID3v2.4 tag. A writer always emits
// 2.4 regardless of what version the tag was decoded from, matching
// spec.md §5's modernize-on-write design note: older frame shapes are
// upgraded (frame IDs via normalizeFrameIDFor24, encodings to UTF-8) as
// they're re-serialized rather than preserved byte-for-byte. Flags, any
// extended header, and restrictions are echoed from the TagInfo a prior
// Decode produced (spec.md §3's lifecycle invariant); a Tag built from
// scratch (Info == nil) gets a bare header with no extended header.
func (t *Tag) EncodeTo(w io.Writer, host *Host, opts WriteOptions) error {
	var body bytes.Buffer

	for _, wf := range writeFieldOrder {
		if wf.Token == FieldComment || wf.Token == FieldRating {
			continue // COMM/POPM carry richer structure, handled below
		}
		val, ok := t.Fields[wf.Token]
		if !ok {
			continue
		}
		body.Write(encodeTextFrame(wf.Code, val))
	}

	switch {
	case t.Comment != nil:
		body.Write(encodeCOMM(*t.Comment))
	default:
		if val, ok := t.Fields[FieldComment]; ok {
			body.Write(encodeCOMM(Comment{Language: "eng", Text: val}))
		}
	}

	if t.Popularity != nil {
		body.Write(encodePOPM(*t.Popularity))
	}

	for _, af := range t.Additional {
		if af.Deleted {
			continue
		}
		switch {
		case af.ID == "TXXX" || af.ID == "TXX":
			body.Write(encodeTXXX(af.Description, af.Value))
		case af.ID == "WXXX" || af.ID == "WXX":
			body.Write(encodeUserURLFrame(af.Description, af.Value))
		case len(af.RawValue) > 0:
			body.Write(wrapFrame(normalizeFrameIDFor24(af.ID), af.RawValue))
		case len(af.ID) > 0 && af.ID[0] == 'W':
			body.Write(wrapFrame(normalizeFrameIDFor24(af.ID), []byte(af.Value)))
		default:
			body.Write(encodeTextFrame(normalizeFrameIDFor24(af.ID), af.Value))
		}
	}

	for _, p := range t.Pictures {
		if p.Deleted {
			continue
		}
		body.Write(encodePicture(p))
	}

	var extHeader []byte
	if t.Info != nil && t.Info.HasExtendedHeader {
		extHeader = encodeExtendedHeader(t.Info)
	}

	frameBytes := append(extHeader, body.Bytes()...)
	var flags byte
	if t.Info != nil {
		flags = t.Info.Flags
	}
	if opts.Unsynchronise {
		var unsynced bytes.Buffer
		uw := newUnsyncWriter(&unsynced)
		if _, err := uw.Write(frameBytes); err != nil {
			return errors.Wrap(err, "id3v2: unsynchronise frame area")
		}
		if err := uw.Close(); err != nil {
			return errors.Wrap(err, "id3v2: flush unsynchronise writer")
		}
		frameBytes = unsynced.Bytes()
		flags |= FlagUnsynchronisation
	} else {
		flags &^= FlagUnsynchronisation
	}

	var header [10]byte
	copy(header[0:3], "ID3")
	header[3] = 4
	header[4] = 0
	header[5] = flags
	size := encodeSynchSafe28(uint32(len(frameBytes)))
	copy(header[6:10], size[:])

	if t.Info != nil && t.Info.HasRestrictions {
		maxKB := t.Info.MaxTagSizeKB()
		if (len(frameBytes)+10)/1024 > maxKB {
			host.logf("id3v2: encoded tag size exceeds restriction of %d KB", maxKB)
		}
	}

	if _, err := w.Write(header[:]); err != nil {
		return errors.Wrap(err, "id3v2: write header")
	}
	if _, err := w.Write(frameBytes); err != nil {
		return errors.Wrap(err, "id3v2: write frame area")
	}
	return nil
}

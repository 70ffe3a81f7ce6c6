package id3v2

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

// AdditionalField is a decoded frame that doesn't map to one of the
// semantic FieldTokens: an unrecognised frame kept verbatim, a
// user-defined TXXX/WXXX pair, or a frame this module couldn't decode
// (compressed/encrypted payload, carried as RawValue). Deleted marks a
// host-side tombstone that the writer skips on re-encode.
type AdditionalField struct {
	ID          string
	Description string // TXXX/WXXX only
	Value       string
	RawValue    []byte // set instead of Value when the payload couldn't be decoded as text
	Deleted     bool
}

// ParsedTag is the result of reading a tag's frame area: the semantic
// fields routed by frameids.go, everything else, and any pictures.
type ParsedTag struct {
	Fields     map[FieldToken]string
	Comment    *Comment
	Popularity *PopularityMeter
	Additional []AdditionalField
	Pictures   []Picture
}

// Comment is a decoded COMM/COM frame.
type Comment struct {
	Language    string
	Description string
	Text        string
}

// PopularityMeter is a decoded POPM/POP frame.
type PopularityMeter struct {
	Email      string
	Rating     byte
	Counter    uint64
	HasCounter bool
}

// frameFlags is the decoded form of a frame's status/format flags
// (absent entirely for ID3v2.2).
type frameFlags struct {
	TagAlterPreservation  bool
	FileAlterPreservation bool
	ReadOnly              bool
	GroupingIdentity      bool
	Compression           bool
	Encryption            bool
	Unsynchronised        bool // 2.4 only
	DataLengthIndicator   bool // 2.4 only
}

func decodeFrameFlagsV23(b [2]byte) frameFlags {
	return frameFlags{
		TagAlterPreservation:  b[0]&0x80 != 0,
		FileAlterPreservation: b[0]&0x40 != 0,
		ReadOnly:              b[0]&0x20 != 0,
		Compression:           b[1]&0x80 != 0,
		Encryption:            b[1]&0x40 != 0,
		GroupingIdentity:      b[1]&0x20 != 0,
	}
}

func decodeFrameFlagsV24(b [2]byte) frameFlags {
	return frameFlags{
		TagAlterPreservation:  b[0]&0x40 != 0,
		FileAlterPreservation: b[0]&0x20 != 0,
		ReadOnly:              b[0]&0x10 != 0,
		GroupingIdentity:      b[1]&0x40 != 0,
		Compression:           b[1]&0x08 != 0,
		Encryption:            b[1]&0x04 != 0,
		Unsynchronised:        b[1]&0x02 != 0,
		DataLengthIndicator:   b[1]&0x01 != 0,
	}
}

func isValidFrameIDByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// countingReader tracks how many bytes have been read through it, so
// the frame loop can report zone byte ranges to a Host without every
// call site threading an offset by hand.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// readFrames iterates the frame area of a tag (spec.md §4.6): r must
// already be limited to exactly the tag's frame-area byte count, and
// must already be unsynchronisation-decoded if the tag's header flag
// requires it. It stops, without error, as soon as it finds a byte that
// can't start a frame ID — the padding convention every version shares
// (spec.md §8 property 5) — or runs out of bytes while reading a frame
// ID. A frame whose size, flags or data are cut short returns an error,
// together with the frames parsed before it.
func readFrames(r io.Reader, ti *TagInfo, host *Host) (*ParsedTag, error) {
	pt := &ParsedTag{Fields: make(map[FieldToken]string)}
	cr := &countingReader{r: r}

	idLen := 4
	if ti.Version == 2 {
		idLen = 3
	}

	for {
		frameStart := cr.n
		idBuf := make([]byte, idLen)
		if _, err := io.ReadFull(cr, idBuf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return pt, errors.Wrap(err, "id3v2: read frame id")
		}
		if !isValidFrameIDByte(idBuf[0]) {
			break
		}
		valid := true
		for _, c := range idBuf[1:] {
			if !isValidFrameIDByte(c) {
				valid = false
				break
			}
		}
		if !valid {
			return pt, errors.Wrap(ErrMalformedFrame, "id3v2: invalid frame id")
		}
		frameID := string(idBuf)

		var size uint32
		switch ti.Version {
		case 2:
			var sb [3]byte
			if _, err := io.ReadFull(cr, sb[:]); err != nil {
				return pt, errors.Wrap(err, "id3v2: read frame size")
			}
			size = decodeBE24(sb[:])
		case 3:
			var sb [4]byte
			if _, err := io.ReadFull(cr, sb[:]); err != nil {
				return pt, errors.Wrap(err, "id3v2: read frame size")
			}
			size = decodeBE32(sb[:])
		default:
			var sb [4]byte
			if _, err := io.ReadFull(cr, sb[:]); err != nil {
				return pt, errors.Wrap(err, "id3v2: read frame size")
			}
			size = decodeSynchSafe28(sb[:])
		}

		var flags frameFlags
		if ti.Version > 2 {
			var fb [2]byte
			if _, err := io.ReadFull(cr, fb[:]); err != nil {
				return pt, errors.Wrap(err, "id3v2: read frame flags")
			}
			if ti.Version == 3 {
				flags = decodeFrameFlagsV23(fb)
			} else {
				flags = decodeFrameFlagsV24(fb)
			}
		}

		if size == 0 {
			continue
		}

		data := make([]byte, size)
		if _, err := io.ReadFull(cr, data); err != nil {
			return pt, errors.Wrap(err, "id3v2: read frame data")
		}
		host.zone("frame:"+frameID, frameStart, cr.n)

		if flags.DataLengthIndicator && len(data) > 4 {
			data = data[4:]
		}

		if flags.Unsynchronised {
			if decoded, err := io.ReadAll(newUnsyncReader(bytes.NewReader(data))); err == nil {
				data = decoded
			}
		}

		if flags.Compression || flags.Encryption {
			pt.Additional = append(pt.Additional, AdditionalField{ID: frameID, RawValue: data})
			continue
		}

		dispatchFrame(pt, ti.Version, frameID, data, host)
	}

	return pt, nil
}

// dispatchFrame implements spec.md §4.6 steps 4-7. The encoding byte,
// any COMM-specific language/description preamble, and any standalone
// UTF-16 BOM are consumed first; what's left (L bytes) is then gated
// purely by size: under textPictureThreshold it is always parsed as
// text (with POP*/TXX*/COMM sub-cases), at or above it it is always
// parsed as picture-shaped — even for a frame whose real id is neither
// PIC nor APIC. This is a deliberately preserved legacy quirk (spec.md
// §9), not a frame-id dispatch bug.
func dispatchFrame(pt *ParsedTag, version uint8, frameID string, data []byte, host *Host) {
	enc := EncISO88591
	body := data
	if len(data) > 0 {
		if e, ok := resolveEncoding(data[0]); ok {
			enc = e
			body = data[1:]
		}
	}

	endian := unicode.LittleEndian
	if enc == EncUTF16BE {
		endian = unicode.BigEndian
	}
	isComment := frameID == "COM" || frameID == "COMM"

	var lang string
	var commentDescRaw []byte

	if isComment {
		if len(body) < 3 {
			host.logf("id3v2: skipping malformed %s frame: too short for language", frameID)
			return
		}
		lang = string(body[:3])
		body = body[3:]

		if version > 2 && enc == EncUTF16 {
			if bom, found := sniffBOM(body); found {
				endian = bom.Endian
				body = body[bom.Size:]
			}
		}

		br := bytes.NewReader(body)
		descRaw, err := readNullTerminatedRaw(br, enc)
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
			return
		}
		commentDescRaw = descRaw
		body, _ = io.ReadAll(br)
	} else {
		preBOM := body
		if version > 2 && enc == EncUTF16 {
			if bom, found := sniffBOM(body); found {
				endian = bom.Endian
				body = body[bom.Size:]
			}
		}
		// A real picture frame's mime field is always ISO-8859-1, never
		// BOM-prefixed; if this frame turns out to be picture-shaped
		// below, give back one of the two presumed-BOM bytes so the mime
		// read starts at the position spec.md §4.6 step 7 expects.
		if len(body) != len(preBOM) && len(preBOM) > 1 {
			pictureBody := preBOM[1:]
			L := len(body)
			if L >= textPictureThreshold {
				dispatchPicture(pt, version, frameID, enc, pictureBody, host)
				return
			}
			if L > 0 {
				dispatchText(pt, version, frameID, enc, endian, "", nil, false, body, host)
			}
			return
		}
	}

	L := len(body)
	switch {
	case L <= 0:
		return
	case L < textPictureThreshold:
		dispatchText(pt, version, frameID, enc, endian, lang, commentDescRaw, isComment, body, host)
	default:
		dispatchPicture(pt, version, frameID, enc, body, host)
	}
}

// dispatchText implements the 0 < L < textPictureThreshold branch of
// spec.md §4.6 step 7. isComment callers have already had their
// language bytes and description consumed by dispatchFrame; body here
// is just the comment text.
func dispatchText(pt *ParsedTag, version uint8, frameID string, enc Encoding, endian unicode.Endianness, lang string, commentDescRaw []byte, isComment bool, body []byte, host *Host) {
	switch {
	case isComment:
		desc, err := decodeText(enc, endian, commentDescRaw)
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
			return
		}
		textEndian := endian
		textBody := body
		if enc == EncUTF16 {
			// Some encoders re-emit a BOM after the description terminator
			// rather than reusing the one before it.
			if bom, found := sniffBOM(textBody); found {
				textEndian = bom.Endian
				textBody = textBody[bom.Size:]
			}
		}
		text, err := decodeText(enc, textEndian, textBody)
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
			return
		}
		c := Comment{Language: lang, Description: desc, Text: text}
		pt.Comment = &c
		pt.Fields[FieldComment] = c.Text

	case frameID == "POP" || frameID == "POPM":
		br := bytes.NewReader(body)
		emailRaw, err := readNullTerminatedRaw(br, EncISO88591)
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
			return
		}
		email, err := decodeText(EncISO88591, unicode.LittleEndian, emailRaw)
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
			return
		}
		rating, err := br.ReadByte()
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: missing rating byte", frameID)
			return
		}
		pm := PopularityMeter{Email: email, Rating: rating}
		counterBytes, _ := io.ReadAll(br)
		if len(counterBytes) > 0 {
			pm.HasCounter = true
			for _, b := range counterBytes {
				pm.Counter = pm.Counter<<8 | uint64(b)
			}
		}
		pt.Popularity = &pm

	case frameID == "TXX" || frameID == "TXXX" || frameID == "WXX" || frameID == "WXXX":
		br := bytes.NewReader(body)
		descRaw, err := readNullTerminatedRaw(br, enc)
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
			return
		}
		desc, err := decodeText(enc, endian, descRaw)
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
			return
		}
		rest, _ := io.ReadAll(br)
		value, err := decodeText(enc, endian, rest)
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
			return
		}
		pt.Additional = append(pt.Additional, AdditionalField{ID: frameID, Description: desc, Value: value})

	case len(frameID) > 0 && frameID[0] == 'T':
		text, err := decodeText(enc, endian, body)
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
			return
		}
		if tok, ok := fieldToken(version, frameID); ok {
			if _, taken := pt.Fields[tok]; !taken {
				pt.Fields[tok] = text
				return
			}
		}
		pt.Additional = append(pt.Additional, AdditionalField{ID: frameID, Value: text})

	case len(frameID) > 0 && frameID[0] == 'W':
		// URL link frames are ISO-8859-1, not NUL-terminated, no encoding
		// byte (except WXXX, which carries one and is handled above).
		pt.Additional = append(pt.Additional, AdditionalField{ID: frameID, Value: string(body)})

	default:
		text, err := decodeText(enc, endian, body)
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
			return
		}
		pt.Additional = append(pt.Additional, AdditionalField{ID: frameID, Value: text})
	}
}

// dispatchPicture implements the L >= textPictureThreshold branch of
// spec.md §4.6 step 7: mime/format, picture-type byte, description, and
// image bytes are read from body regardless of frameID — the frame
// being parsed this way need not actually be PIC/APIC (spec.md §9).
func dispatchPicture(pt *ParsedTag, version uint8, frameID string, enc Encoding, body []byte, host *Host) {
	var mime string
	if version == 2 {
		if len(body) < 3 {
			host.logf("id3v2: skipping malformed %s frame: too short for picture format tag", frameID)
			return
		}
		mime = mimeForV22Format(toUpperASCII(body[:3]))
		body = body[3:]
	} else {
		br := bytes.NewReader(body)
		mimeRaw, err := readNullTerminatedRaw(br, EncISO88591)
		if err != nil {
			host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
			return
		}
		mime, _ = decodeText(EncISO88591, unicode.LittleEndian, mimeRaw)
		body, _ = io.ReadAll(br)
	}

	if len(body) < 1 {
		host.logf("id3v2: skipping malformed %s frame: missing picture type byte", frameID)
		return
	}
	rawType := body[0]
	body = body[1:]

	endian := unicode.LittleEndian
	if version > 2 && enc == EncUTF16 {
		if bom, found := sniffBOM(body); found {
			endian = bom.Endian
			body = body[bom.Size:]
		}
	} else if enc == EncUTF16BE {
		endian = unicode.BigEndian
	}

	br := bytes.NewReader(body)
	descRaw, err := readNullTerminatedRaw(br, enc)
	if err != nil {
		host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
		return
	}
	desc, err := decodeText(enc, endian, descRaw)
	if err != nil {
		host.logf("id3v2: skipping malformed %s frame: %v", frameID, err)
		return
	}

	imgData, _ := io.ReadAll(br)

	p := Picture{
		Type:        resolvePictureType(rawType),
		RawType:     rawType,
		MIME:        mime,
		Description: desc,
		Data:        imgData,
		Size:        len(imgData),
	}

	if host != nil && host.PictureStream != nil {
		streamed := p
		streamed.Data = nil
		if err := host.PictureStream(bytes.NewReader(p.Data), p.Size, streamed); err == nil {
			p.Data = nil
			p.Streamed = true
		}
	}

	pt.Pictures = append(pt.Pictures, p)
}

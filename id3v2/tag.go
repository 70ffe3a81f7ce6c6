package id3v2

import (
	"io"

	"github.com/pkg/errors"
)

// ReadOptions configures Decode. The zero value is the common case.
type ReadOptions struct {
	// MaxFrameAreaBytes, if non-zero, caps how many bytes of frame area
	// will be read regardless of what the header claims, guarding
	// against a corrupt or hostile size field. Zero means "trust the
	// header" (subject to the usual Clamped() bounds check).
	MaxFrameAreaBytes int64
}

// Tag is the decoded, host-facing form of an ID3v2 tag: the parsed
// header plus every frame, filed either under a semantic FieldToken or
// as an AdditionalField/Picture/Comment/PopularityMeter. It is built on
// top of, not instead of, the lower-level header/reader/writer
// functions — callers who only need header introspection can use
// ParseHeader directly.
type Tag struct {
	Info       *TagInfo
	Fields     map[FieldToken]string
	Comment    *Comment
	Popularity *PopularityMeter
	Additional []AdditionalField
	Pictures   []Picture
}

// Decode reads a tag starting at offset in rs (non-zero offsets occur
// when the tag is embedded in a larger container, e.g. an AIFF or DSF
// file's metadata chunk). A (nil, nil) result means no ID3v2 header was
// found at offset; that is a normal, expected outcome, not a failure
// worth logging.
func Decode(rs io.ReadSeeker, offset int64, host *Host, opts ReadOptions) (*Tag, error) {
	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.Wrap(err, "id3v2: seek to end")
	}
	if _, err := rs.Seek(offset, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "id3v2: seek to tag offset")
	}

	ti, err := ParseHeader(rs, end-offset)
	if ti == nil && err == nil {
		return nil, nil
	}
	if err != nil && err != ErrUnsupportedVersion {
		return nil, err
	}
	if err == ErrUnsupportedVersion {
		return &Tag{Info: ti}, err
	}
	host.zone("header", offset, offset+10)

	frameAreaSize := int64(ti.FrameAreaSize())
	if opts.MaxFrameAreaBytes > 0 && frameAreaSize > opts.MaxFrameAreaBytes {
		frameAreaSize = opts.MaxFrameAreaBytes
	}

	tag := &Tag{Info: ti, Fields: make(map[FieldToken]string)}
	if frameAreaSize == 0 {
		return tag, nil
	}

	var frameArea io.Reader = io.LimitReader(rs, frameAreaSize)
	if ti.Unsynchronized() {
		frameArea = newUnsyncReader(frameArea)
	}

	// readFrames always returns the frames it parsed, even alongside an
	// error, so they are kept on the returned tag.
	pt, err := readFrames(frameArea, ti, host)

	tag.Fields = pt.Fields
	tag.Comment = pt.Comment
	tag.Popularity = pt.Popularity
	tag.Additional = pt.Additional
	tag.Pictures = pt.Pictures
	return tag, err
}

// Get returns a semantic field's value and whether it was present.
func (t *Tag) Get(tok FieldToken) (string, bool) {
	v, ok := t.Fields[tok]
	return v, ok
}

// Set assigns a semantic field's value, creating the Fields map if
// necessary.
func (t *Tag) Set(tok FieldToken, value string) {
	if t.Fields == nil {
		t.Fields = make(map[FieldToken]string)
	}
	t.Fields[tok] = value
}

// SetRating sets the popularity rating, resolving any existing rating
// against value per opts.POPMRatingBehavior (spec.md §9 open question 1).
func (t *Tag) SetRating(email string, value int, opts WriteOptions) {
	existing := 0
	if t.Popularity != nil {
		existing = int(t.Popularity.Rating)
	}
	rating := resolvePOPMRating(existing, value, opts.POPMRatingBehavior)
	if t.Popularity == nil {
		t.Popularity = &PopularityMeter{}
	}
	t.Popularity.Email = email
	t.Popularity.Rating = rating
}

// AddPicture appends a picture, subject to any restrictions the tag's
// extended header declares (logged, not enforced — spec.md §4.4's
// restrictions are advisory for a writer that always emits 2.4).
func (t *Tag) AddPicture(p Picture, host *Host) {
	if t.Info != nil && t.Info.HasRestrictions {
		if t.Info.PictureEncodingRestricted() && p.MIME != "image/jpeg" && p.MIME != "image/png" {
			host.logf("id3v2: picture MIME %q violates tag's picture-encoding restriction", p.MIME)
		}
	}
	t.Pictures = append(t.Pictures, p)
}

// RemoveAdditional marks every additional field matching id (and, when
// desc != "", matching Description too) as deleted, so EncodeTo skips
// it rather than reproducing it verbatim.
func (t *Tag) RemoveAdditional(id, desc string) {
	for i := range t.Additional {
		if t.Additional[i].ID == id && (desc == "" || t.Additional[i].Description == desc) {
			t.Additional[i].Deleted = true
		}
	}
}

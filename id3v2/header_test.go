package id3v2

import (
	"bytes"
	"testing"
)

func buildHeader(version, revision, flags byte, size uint32) []byte {
	sz := encodeSynchSafe28(size)
	return append([]byte("ID3"), version, revision, flags, sz[0], sz[1], sz[2], sz[3])
}

func TestParseHeaderAbsentTag(t *testing.T) {
	r := bytes.NewReader([]byte("RIFFxxxxxxxxxxx"))
	ti, err := ParseHeader(r, 15)
	if ti != nil || err != nil {
		t.Fatalf("ParseHeader(no magic) = (%v, %v), want (nil, nil)", ti, err)
	}
}

func TestParseHeaderBasic(t *testing.T) {
	hdr := buildHeader(4, 0, 0, 100)
	ti, err := ParseHeader(bytes.NewReader(hdr), int64(len(hdr))+100)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if ti.Version != 4 || ti.Size != 100 {
		t.Errorf("ti = %+v", ti)
	}
	if ti.Clamped() {
		t.Error("header with enough available bytes reported Clamped")
	}
}

func TestParseHeaderUnsupportedVersion(t *testing.T) {
	hdr := buildHeader(9, 0, 0, 10)
	ti, err := ParseHeader(bytes.NewReader(hdr), int64(len(hdr))+10)
	if err != ErrUnsupportedVersion {
		t.Fatalf("err = %v, want ErrUnsupportedVersion", err)
	}
	if ti == nil || ti.Version != 9 {
		t.Errorf("expected partial TagInfo, got %+v", ti)
	}
}

func TestTagInfoClamped(t *testing.T) {
	hdr := buildHeader(4, 0, 0, 1000)
	ti, err := ParseHeader(bytes.NewReader(hdr), int64(len(hdr))+5)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if !ti.Clamped() {
		t.Error("tag claiming more bytes than available should be Clamped")
	}
	if ti.FrameAreaSize() != 0 {
		t.Errorf("FrameAreaSize() on a clamped tag = %d, want 0", ti.FrameAreaSize())
	}
}

func TestTagInfoFlags(t *testing.T) {
	ti := &TagInfo{Version: 4, Flags: FlagUnsynchronisation | FlagFooter}
	if !ti.Unsynchronized() {
		t.Error("Unsynchronized() = false")
	}
	if !ti.HasFooter() {
		t.Error("HasFooter() = false")
	}
	if ti.Experimental() {
		t.Error("Experimental() = true, want false")
	}
}

func TestPictureSizeRestriction(t *testing.T) {
	ti := &TagInfo{HasRestrictions: true, TagRestrictions: 0x03}
	r := ti.PictureSizeRestriction()
	if !r.Exact || r.MaxDimension != 64 {
		t.Errorf("PictureSizeRestriction(0x03) = %+v", r)
	}
}

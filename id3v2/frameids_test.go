package id3v2

import "testing"

func TestFieldTokenVersionSeparation(t *testing.T) {
	// A bare TCON frame under a v2.2 tag must not resolve: v2.2 uses the
	// 3-character TCO instead, and the two frame-code maps are disjoint.
	if _, ok := fieldToken(2, "TCON"); ok {
		t.Error("fieldToken(2, \"TCON\") resolved, want not-ok")
	}
	if tok, ok := fieldToken(2, "TCO"); !ok || tok != FieldGenre {
		t.Errorf("fieldToken(2, \"TCO\") = (%v, %v), want (FieldGenre, true)", tok, ok)
	}
	if tok, ok := fieldToken(4, "TCON"); !ok || tok != FieldGenre {
		t.Errorf("fieldToken(4, \"TCON\") = (%v, %v), want (FieldGenre, true)", tok, ok)
	}
	if _, ok := fieldToken(4, "TCO"); ok {
		t.Error("fieldToken(4, \"TCO\") resolved, want not-ok")
	}
}

func TestKnownFrameIDs(t *testing.T) {
	if !knownFrameIDs(2)["TT2"] {
		t.Error("knownFrameIDs(2) missing TT2")
	}
	if !knownFrameIDs(3)["APIC"] {
		t.Error("knownFrameIDs(3) missing APIC")
	}
	if !knownFrameIDs(4)["ASPI"] {
		t.Error("knownFrameIDs(4) missing ASPI (2.4-only frame)")
	}
	if knownFrameIDs(3)["ASPI"] {
		t.Error("knownFrameIDs(3) should not contain the 2.4-only ASPI frame")
	}
}

func TestWriteFieldOrderCoversAllTokens(t *testing.T) {
	seen := make(map[FieldToken]bool)
	for _, wf := range writeFieldOrder {
		if seen[wf.Token] {
			t.Errorf("duplicate token %v in writeFieldOrder", wf.Token)
		}
		seen[wf.Token] = true
	}
	if !seen[FieldTitle] || !seen[FieldRating] || !seen[FieldGenre] {
		t.Error("writeFieldOrder missing expected tokens")
	}
}

package playlist

import "testing"

func TestLookupKnownExtensions(t *testing.T) {
	cases := map[string]struct {
		id    string
		style URIStyle
	}{
		"song.m3u":          {"M3U", UndefinedURI},
		"song.M3U8":         {"M3U", UndefinedURI},
		"mix.pls":           {"PLS", UndefinedURI},
		"library.fpl":       {"FPL", MSURI},
		"shared.xspf":       {"XSPF", UndefinedURI},
		"presentation.smil": {"SMIL", RFCURI},
		"presentation.smi":  {"SMIL", RFCURI},
		"favorites.asx":     {"ASX", MSURI},
		"stream.wax":        {"ASX", MSURI},
		"video.wvx":         {"ASX", MSURI},
		"library.wpl":       {"SMIL", RFCURI},
		"library.zpl":       {"SMIL", RFCURI},
		"skin.b4s":          {"B4S", WinampURI},
	}
	for name, want := range cases {
		got := Lookup(name)
		if got.ID != want.id || got.URIStyle != want.style {
			t.Errorf("Lookup(%q) = {%s %v}, want {%s %v}", name, got.ID, got.URIStyle, want.id, want.style)
		}
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	lower := Lookup("mix.pls")
	upper := Lookup("MIX.PLS")
	if lower.ID != upper.ID {
		t.Errorf("case-insensitivity broken: %q vs %q", lower.ID, upper.ID)
	}
}

func TestLookupUppercaseWPLIsSMIL(t *testing.T) {
	got := Lookup("x.WPL")
	if got.ID != "SMIL" {
		t.Errorf("Lookup(%q) = %+v, want ID SMIL", "x.WPL", got)
	}
}

func TestLookupSMILDefaultsToRFCURI(t *testing.T) {
	got := Lookup("x.smil")
	if got.URIStyle != RFCURI {
		t.Errorf("Lookup(x.smil).URIStyle = %v, want RFCURI", got.URIStyle)
	}
}

func TestLookupUnknownExtension(t *testing.T) {
	got := Lookup("notes.txt")
	if got.URIStyle != UndefinedURI {
		t.Errorf("Lookup(unknown) = %+v, want UndefinedURI", got)
	}
}

func TestLookupNoExtension(t *testing.T) {
	got := Lookup("README")
	if got.URIStyle != UndefinedURI {
		t.Errorf("Lookup(no extension) = %+v, want UndefinedURI", got)
	}
}

// Package playlist dispatches a playlist file name to the descriptor
// for the format its extension identifies: an id, a display name, and
// the URI convention that format's entries are expected to follow.
//
// The registry and its lookup are generalized from moshee-sound's
// sound.RegisterFormat/sniff pattern (sound.go): that package matches a
// Sound format by peeking at a magic byte prefix, while playlist
// formats are conventionally told apart by file extension instead, so
// Lookup matches on extension rather than sniffed content.
package playlist

import (
	"strings"
	"sync"
)

// URIStyle describes how a playlist format's entries typically
// reference media: as Windows-style paths, RFC 3986 URIs, or the
// loose/relative convention Winamp's own formats popularized.
type URIStyle int

const (
	UndefinedURI URIStyle = iota
	MSURI
	RFCURI
	WinampURI
)

// Format identifies one playlist format and its default URI
// convention.
type Format struct {
	ID       string
	Name     string
	URIStyle URIStyle
}

var (
	unknownFormat = Format{ID: "UNKNOWN", Name: "Unknown playlist format", URIStyle: UndefinedURI}

	registerOnce sync.Once
	byExtension  map[string]Format
)

// registry lazily builds the extension->Format table exactly once,
// mirroring spec.md §9's guidance that the format table is effectively
// a process-wide singleton rather than something every caller rebuilds.
func registry() map[string]Format {
	registerOnce.Do(func() {
		byExtension = make(map[string]Format)

		register := func(f Format, extensions ...string) {
			for _, ext := range extensions {
				byExtension[ext] = f
			}
		}

		register(Format{ID: "M3U", Name: "M3U", URIStyle: UndefinedURI}, ".m3u", ".m3u8")
		register(Format{ID: "PLS", Name: "PLS", URIStyle: UndefinedURI}, ".pls")
		register(Format{ID: "FPL", Name: "foobar2000 Playlist", URIStyle: MSURI}, ".fpl")
		register(Format{ID: "XSPF", Name: "XML Shareable Playlist Format", URIStyle: UndefinedURI}, ".xspf")
		register(Format{ID: "SMIL", Name: "Synchronized Multimedia Integration Language", URIStyle: RFCURI}, ".smil", ".smi", ".wpl", ".zpl")
		register(Format{ID: "ASX", Name: "Windows Media Metafile", URIStyle: MSURI}, ".asx", ".wax", ".wvx")
		register(Format{ID: "B4S", Name: "Winamp3/5 Playlist", URIStyle: WinampURI}, ".b4s")
	})
	return byExtension
}

// Lookup resolves a playlist file name (or bare extension) to its
// Format descriptor. Matching is case-insensitive, per the filesystem
// conventions of every platform these formats originate from. An
// unrecognised extension returns unknownFormat (URIStyle UndefinedURI),
// never an error: a host application is expected to treat that as "I
// don't know how to parse this one" rather than a hard failure.
func Lookup(filename string) Format {
	ext := strings.ToLower(extensionOf(filename))
	if f, ok := registry()[ext]; ok {
		return f
	}
	return unknownFormat
}

func extensionOf(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return ""
	}
	return filename[i:]
}

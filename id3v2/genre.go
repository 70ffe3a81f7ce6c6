package id3v2

import (
	"strconv"
	"strings"
)

// id3v1Genres is the standard ID3v1 genre table, indexed by the numeric
// genre code embedded in ID3v2 genre frames as "(NN)...". Copied
// verbatim from moshee-sound's id3/id3v1/id3v1.go genres table: this is
// a fixed external standard (the original 80 Winamp genres plus later
// extensions), not implementation-specific prose, so it is reused
// rather than re-derived.
var id3v1Genres = []string{
	"Blues", "Classic Rock", "Country", "Dance", "Disco", "Funk", "Grunge",
	"Hip-Hop", "Jazz", "Metal", "New Age", "Oldies", "Other", "Pop", "R&B",
	"Rap", "Reggae", "Rock", "Techno", "Industrial", "Alternative", "Ska",
	"Death Metal", "Pranks", "Soundtrack", "Euro-Techno", "Ambient", "Trip-Hop",
	"Vocal", "Jazz+Funk", "Fusion", "Trance", "Classical", "Instrumental", "Acid",
	"House", "Game", "Sound Clip", "Gospel", "Noise", "Alternative Rock", "Bass",
	"Soul", "Punk", "Space", "Meditative", "Instrumental Pop", "Instrumental Rock",
	"Ethnic", "Gothic", "Darkwave", "Techno-Industrial", "Electronic", "Pop-Folk",
	"Eurodance", "Dream", "Southern Rock", "Comedy", "Cult", "Gangsta", "Top 40",
	"Christian Rap", "Pop/Funk", "Jungle", "Native US", "Cabaret", "New Wave",
	"Psychadelic", "Rave", "Showtunes", "Trailer", "Lo-Fi", "Tribal", "Acid Punk",
	"Acid Jazz", "Polka", "Retro", "Musical", "Rock & Roll", "Hard Rock", "Folk",
	"Folk-Rock", "National Folk", "Swing", "Fast Fusion", "Bebop", "Latin",
	"Revival", "Celtic", "Bluegrass", "Avantgarde", "Gothic Rock",
	"Progressive Rock", "Psychedelic Rock", "Symphonic Rock", "Slow Rock",
	"Big Band", "Chorus", "Easy Listening", "Acoustic", "Humour", "Speech",
	"Chanson", "Opera", "Chamber Music", "Sonata", "Symphony", "Booty Bass",
	"Primus", "Porn Groove", "Satire", "Slow Jam", "Club", "Tango", "Samba",
	"Folklore", "Ballad", "Power Ballad", "Rhytmic Soul", "Freestyle", "Duet",
	"Punk Rock", "Drum Solo", "Acapella", "Euro-House", "Dance Hall", "Goa",
	"Drum & Bass",
}

// ParseGenre implements spec.md §4.10's genre-code extraction: strip
// NULs, look for a "(NN)" prefix, and either substitute the standard
// ID3v1 genre name (when nothing follows the parenthesised code) or
// return whatever text follows it. Text with no parenthesised prefix is
// returned unchanged.
func ParseGenre(raw string) string {
	s := strings.ReplaceAll(raw, "\x00", "")

	if len(s) < 3 || s[0] != '(' {
		return s
	}

	end := strings.IndexByte(s, ')')
	if end < 2 {
		return s
	}

	numStr := s[1:end]
	if !isAllDigits(numStr) {
		return s
	}

	idx, err := strconv.Atoi(numStr)
	if err != nil {
		return s
	}

	rest := s[end+1:]
	if rest != "" {
		return rest
	}

	if idx >= 0 && idx < len(id3v1Genres) {
		return id3v1Genres[idx]
	}
	return ""
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

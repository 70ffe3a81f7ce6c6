// Command id3v2tool reads the ID3v2 tag from a file and prints the
// fields, pictures, and comment/rating frames it found.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/Bergader/id3v2/id3v2"
	"github.com/Bergader/id3v2/playlist"
)

var (
	offset = flag.Int64("offset", 0, "byte offset of the ID3v2 tag within the file")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalf("usage: %s [-offset N] <filename>", os.Args[0])
	}

	name := flag.Arg(0)
	f, err := os.Open(name)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	host := &id3v2.Host{Logger: log.Default()}

	tag, err := id3v2.Decode(f, *offset, host, id3v2.ReadOptions{})
	if err != nil && err != id3v2.ErrUnsupportedVersion {
		log.Fatal(err)
	}
	if tag == nil {
		log.Printf("%s: no ID3v2 tag found", name)
		return
	}
	if err == id3v2.ErrUnsupportedVersion {
		log.Printf("%s: unsupported tag version %d, header only", name, tag.Info.Version)
		return
	}

	log.Printf("%s: ID3v2.%d.%d, %d bytes", name, tag.Info.Version, tag.Info.Revision, tag.Info.Size)

	for _, wf := range []id3v2.FieldToken{
		id3v2.FieldTitle, id3v2.FieldArtist, id3v2.FieldAlbumArtist,
		id3v2.FieldAlbum, id3v2.FieldGenre, id3v2.FieldTrackNumber,
		id3v2.FieldDiscNumber, id3v2.FieldRecordingDate, id3v2.FieldComposer,
	} {
		if v, ok := tag.Get(wf); ok {
			log.Printf("%-16s %q", wf, v)
		}
	}

	if tag.Comment != nil {
		log.Printf("Comment:         [%s] %q: %q", tag.Comment.Language, tag.Comment.Description, tag.Comment.Text)
	}
	if tag.Popularity != nil {
		log.Printf("Rating:          %s = %d/255", tag.Popularity.Email, tag.Popularity.Rating)
	}
	for _, p := range tag.Pictures {
		if p.Streamed {
			log.Printf("Picture:         %s, %q, %d bytes (streamed)", p.MIME, p.Description, p.Size)
		} else {
			log.Printf("Picture:         %s, %q, %d bytes", p.MIME, p.Description, len(p.Data))
		}
	}

	if fmt := playlist.Lookup(name); fmt.URIStyle != playlist.UndefinedURI {
		log.Printf("(looks like it could sit next to a %s playlist)", fmt.Name)
	}
}

package id3v2

import "io"

// textPictureThreshold is the remaining-payload byte count that decides
// whether a frame is parsed as text or as a picture (spec.md §4.6 step
// 7): under the threshold, text; at or above it, picture-shaped,
// regardless of the frame's actual id. A picture decoded this way is
// also the one offered to the host's PictureStream capability.
const textPictureThreshold = 500

// Logger is the minimal logging capability a Host exposes.
// Implementations typically wrap the standard log package (a
// *log.Logger satisfies it); a Host with no Logger logs nothing.
type Logger interface {
	Printf(format string, args ...interface{})
}

// PictureStreamHandler receives every decoded picture's payload instead
// of having it buffered into a Picture's Data field. size is the
// picture's declared byte length; r yields exactly that many bytes. pic
// carries every other decoded field (Type, MIME, Description) with Data
// left nil.
type PictureStreamHandler func(r io.Reader, size int, pic Picture) error

// Zone is a named byte range within the tagged stream. The "header" zone
// is given in absolute stream offsets; "frame:<id>" zones are counted
// from the start of the frame area (after any unsynchronisation
// decoding), not from the tag's start offset.
type Zone struct {
	Name  string // "header" or "frame:<id>", e.g. "frame:TIT2"
	Start int64
	End   int64
}

// Host bundles the capabilities a caller can supply to customize
// decode/encode behavior beyond plain data structures: a logger, a
// picture-streaming sink for oversized payloads, and a zone observer for
// callers that want to track the byte ranges of the tag's internal
// structure (e.g. an editor highlighting frames in a hex view). A zero
// Host is valid: every capability is optional and decode/encode falls
// back to fully in-memory behavior.
type Host struct {
	Logger        Logger
	PictureStream PictureStreamHandler
	OnZone        func(zone Zone)
}

func (h *Host) logf(format string, args ...interface{}) {
	if h != nil && h.Logger != nil {
		h.Logger.Printf(format, args...)
	}
}

func (h *Host) zone(name string, start, end int64) {
	if h != nil && h.OnZone != nil {
		h.OnZone(Zone{Name: name, Start: start, End: end})
	}
}

func (h *Host) pictureStream(r io.Reader, size int, pic Picture) error {
	if h != nil && h.PictureStream != nil {
		return h.PictureStream(r, size, pic)
	}
	return nil
}

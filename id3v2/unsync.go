package id3v2

import "io"

// unsyncReader filters an unsynchronized byte stream back to its
// original form: whenever the previously emitted byte was 0xFF and the
// next byte read is 0x00, that 0x00 is dropped (spec.md §4.3 decode).
//
// Grounded on dhowden-tag's id3v2.go unsynchroniser, which implements
// exactly this filter; renamed and commented to this module's style.
type unsyncReader struct {
	r      io.Reader
	lastFF bool
	buf    [1]byte
}

func newUnsyncReader(r io.Reader) *unsyncReader {
	return &unsyncReader{r: r}
}

func (u *unsyncReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if _, err := io.ReadFull(u.r, u.buf[:]); err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}

		b := u.buf[0]
		if u.lastFF && b == 0x00 {
			u.lastFF = false
			continue
		}

		p[n] = b
		n++
		u.lastFF = b == 0xFF
	}
	return n, nil
}

// unsyncWriter filters a plain byte stream into its unsynchronized form
// as it's written: after any 0xFF byte, a 0x00 is inserted if the
// following byte is 0x00 or has its top three bits set (spec.md §4.3
// encode). Because the rule needs one byte of lookahead, the writer
// holds back the most recently written byte until it sees the next one
// (or Close, for the final byte of the stream).
type unsyncWriter struct {
	w       io.Writer
	pending byte
	has     bool
}

func newUnsyncWriter(w io.Writer) *unsyncWriter {
	return &unsyncWriter{w: w}
}

func (u *unsyncWriter) Write(p []byte) (int, error) {
	for _, c := range p {
		if u.has {
			if err := u.emit(u.pending, c); err != nil {
				return 0, err
			}
		}
		u.pending = c
		u.has = true
	}
	return len(p), nil
}

func (u *unsyncWriter) emit(b1, b2 byte) error {
	if _, err := u.w.Write([]byte{b1}); err != nil {
		return err
	}
	if b1 == 0xFF && (b2 == 0x00 || b2&0xE0 == 0xE0) {
		if _, err := u.w.Write([]byte{0x00}); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the final pending byte, which (per spec.md §4.3) is
// always emitted unconditionally since there is no following byte to
// check.
func (u *unsyncWriter) Close() error {
	if !u.has {
		return nil
	}
	u.has = false
	_, err := u.w.Write([]byte{u.pending})
	return err
}

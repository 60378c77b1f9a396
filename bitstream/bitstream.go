// Package bitstream provides buffered byte reading and writing, and the bit accumulator
// that packs variable width codes into bytes and unpacks them again.
package bitstream

import (
	"io"

	"github.com/pkg/errors"
)

// BufferSize is the size of the internal buffers of ByteReader and ByteWriter.
const BufferSize = 1024

// ErrNotSeekable is returned by Reset when the source cannot be rewound.
var ErrNotSeekable = errors.New("source is not seekable")

// A ByteReader reads a source one byte at a time through an internal buffer.
type ByteReader struct {
	src io.Reader
	buf []byte
	pos int // next unread index in buf
	n   int // number of valid bytes in buf
	err error
}

// NewByteReader returns a ByteReader reading from src.
func NewByteReader(src io.Reader) *ByteReader {
	return &ByteReader{src: src, buf: make([]byte, BufferSize)}
}

func (r *ByteReader) fill() {
	if r.err != nil {
		return
	}
	n, err := io.ReadFull(r.src, r.buf)
	r.pos, r.n = 0, n
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		// A short buffer is still served; the next fill reports the end.
		if n == 0 {
			r.err = io.EOF
		}
	default:
		r.err = err
	}
}

// ReadNext returns the next byte of the source.
// It returns io.EOF once the source is exhausted, and the underlying error if reading fails.
func (r *ByteReader) ReadNext() (byte, error) {
	if r.pos == r.n {
		r.fill()
		if r.pos == r.n {
			return 0, r.err
		}
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// Empty reports whether the source is cleanly exhausted.
// A pending read error is not emptiness: ReadNext surfaces it instead.
func (r *ByteReader) Empty() bool {
	if r.pos == r.n {
		r.fill()
	}
	return r.pos == r.n && r.err == io.EOF
}

// Reset rewinds the source to its start.
// The source must implement io.Seeker.
func (r *ByteReader) Reset() error {
	s, ok := r.src.(io.Seeker)
	if !ok {
		return ErrNotSeekable
	}
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "")
	}
	r.pos, r.n, r.err = 0, 0, nil
	return nil
}

// A ByteWriter stages bytes in an internal buffer and writes them out in blocks.
// Flush must be called once writing is done, or the last partial block is lost.
type ByteWriter struct {
	dst io.Writer
	buf []byte
	n   int
	err error
}

// NewByteWriter returns a ByteWriter writing to dst.
func NewByteWriter(dst io.Writer) *ByteWriter {
	return &ByteWriter{dst: dst, buf: make([]byte, BufferSize)}
}

// WriteNext stages b, writing the buffer out when it is full.
func (w *ByteWriter) WriteNext(b byte) error {
	if w.err != nil {
		return w.err
	}
	w.buf[w.n] = b
	w.n++
	if w.n == len(w.buf) {
		return w.Flush()
	}
	return nil
}

// Flush writes any staged bytes. Write errors are sticky.
func (w *ByteWriter) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.n == 0 {
		return nil
	}
	if _, err := w.dst.Write(w.buf[:w.n]); err != nil {
		w.err = errors.Wrap(err, "")
		return w.err
	}
	w.n = 0
	return nil
}

// Package binio provides the sequential big-endian writer used by the MHFC exporters.
package binio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrClosed is returned by writes issued after Close.
var ErrClosed = errors.New("binio: writer closed")

// Writer appends fixed-width big-endian values, NUL-terminated strings and raw
// byte blocks to a sink. There is no seeking or backpatching.
//
// The first failed write is remembered and every later write becomes a no-op,
// so callers can emit a whole record and check Err once.
type Writer struct {
	w      *bufio.Writer
	closer io.Closer
	err    error
	n      int64
	closed bool
}

// NewWriter returns a Writer appending to w. Close flushes but does not close w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Create truncates or creates the file at path and returns a Writer owning it.
// The file is released by Close.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &Writer{w: bufio.NewWriter(f), closer: f}, nil
}

// WriteBytes appends buf unchanged.
func (w *Writer) WriteBytes(buf []byte) {
	if !w.ok() {
		return
	}
	n, err := w.w.Write(buf)
	w.n += int64(n)
	w.err = err
}

// WriteString appends the UTF-8 bytes of s followed by a single 0x00.
// s must not contain a NUL byte.
func (w *Writer) WriteString(s string) {
	if !w.ok() {
		return
	}
	n, err := w.w.WriteString(s)
	w.n += int64(n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.w.WriteByte(0)
	if w.err == nil {
		w.n++
	}
}

// WritePacked appends each value in big-endian order. Values must be
// fixed-width (uint8, uint16, uint32, float32, ... or slices/arrays of them).
func (w *Writer) WritePacked(values ...any) {
	for _, v := range values {
		if !w.ok() {
			return
		}
		size := binary.Size(v)
		if size < 0 {
			w.err = fmt.Errorf("binio: cannot pack %T", v)
			return
		}
		if err := binary.Write(w.w, binary.BigEndian, v); err != nil {
			w.err = err
			return
		}
		w.n += int64(size)
	}
}

// WriteU8 appends a single byte.
func (w *Writer) WriteU8(v uint8) { w.WritePacked(v) }

// WriteU16 appends a big-endian uint16.
func (w *Writer) WriteU16(v uint16) { w.WritePacked(v) }

// WriteU32 appends a big-endian uint32.
func (w *Writer) WriteU32(v uint32) { w.WritePacked(v) }

// WriteF32 appends a big-endian IEEE-754 float32.
func (w *Writer) WriteF32(v float32) { w.WritePacked(v) }

// Len returns the number of bytes accepted so far.
func (w *Writer) Len() int64 {
	return w.n
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Flush pushes buffered bytes to the sink.
func (w *Writer) Flush() error {
	if !w.ok() {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

// Close flushes buffered bytes and releases the underlying file, if owned.
// It is safe to call more than once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	flushErr := w.w.Flush()
	w.closed = true
	var closeErr error
	if w.closer != nil {
		closeErr = w.closer.Close()
	}
	if w.err != nil {
		return w.err
	}
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func (w *Writer) ok() bool {
	if w.closed && w.err == nil {
		w.err = ErrClosed
	}
	return w.err == nil
}

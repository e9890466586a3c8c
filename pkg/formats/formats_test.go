package formats

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/Faultbox/mhfc-export/pkg/binio"
	"github.com/Faultbox/mhfc-export/pkg/report"
)

// encode dumps a body into memory.
func encode(t *testing.T, b body, r *report.Reporter) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := binio.NewWriter(&buf)
	b.dump(w, r)
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return buf.Bytes()
}

// fileReader decodes big-endian fields from an encoded file in tests.
type fileReader struct {
	t *testing.T
	r *bytes.Reader
}

func newFileReader(t *testing.T, data []byte) *fileReader {
	return &fileReader{t: t, r: bytes.NewReader(data)}
}

func (fr *fileReader) read(v any) {
	fr.t.Helper()
	if err := binary.Read(fr.r, binary.BigEndian, v); err != nil {
		fr.t.Fatalf("read %T at offset %d: %v", v, fr.offset(), err)
	}
}

func (fr *fileReader) offset() int64 {
	return fr.r.Size() - int64(fr.r.Len())
}

func (fr *fileReader) u8() uint8 {
	fr.t.Helper()
	var v uint8
	fr.read(&v)
	return v
}

func (fr *fileReader) u16() uint16 {
	fr.t.Helper()
	var v uint16
	fr.read(&v)
	return v
}

func (fr *fileReader) u32() uint32 {
	fr.t.Helper()
	var v uint32
	fr.read(&v)
	return v
}

func (fr *fileReader) f32s(n int) []float32 {
	fr.t.Helper()
	v := make([]float32, n)
	fr.read(v)
	return v
}

func (fr *fileReader) str() string {
	fr.t.Helper()
	var b []byte
	for {
		c, err := fr.r.ReadByte()
		if err != nil {
			fr.t.Fatalf("unterminated string at offset %d", fr.offset())
		}
		if c == 0 {
			return string(b)
		}
		b = append(b, c)
	}
}

func (fr *fileReader) expectEOF() {
	fr.t.Helper()
	if n := fr.r.Len(); n != 0 {
		fr.t.Errorf("%d trailing bytes", n)
	}
}

// approx reports whether got matches want element-wise within 1e-5.
func approx(got, want []float32) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		d := got[i] - want[i]
		if d > 1e-5 || d < -1e-5 {
			return false
		}
	}
	return true
}

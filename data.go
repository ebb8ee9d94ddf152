package pixview

import "io"

// ConstData is a read-only handle to a byte buffer. It does not own the buffer and
// exposes no way of obtaining a writable slice; the caller keeps the buffer alive
// and unmoved for as long as any view built from the handle is in use.
type ConstData struct {
	b []byte
}

// Constant returns a read-only handle to b. No data is copied.
func Constant(b []byte) ConstData { return ConstData{b: b} }

// Len returns the number of bytes addressed by the handle.
func (d ConstData) Len() int { return len(d.b) }

// IsNil reports whether the handle addresses no memory.
func (d ConstData) IsNil() bool { return len(d.b) == 0 }

// At returns the byte at index i.
func (d ConstData) At(i int) byte { return d.b[i] }

// Slice returns the read-only sub-range [i, j).
func (d ConstData) Slice(i, j int) ConstData { return ConstData{b: d.b[i:j]} }

// CopyTo copies the addressed bytes into dst and returns the number of bytes copied.
func (d ConstData) CopyTo(dst []byte) int { return copy(dst, d.b) }

// ReadAt implements [io.ReaderAt].
func (d ConstData) ReadAt(p []byte, off int64) (int, error) {
	return readAt(d.b, p, off)
}

// MutableData is a read-write handle to a byte buffer. Like [ConstData] it never owns
// the memory it addresses.
type MutableData struct {
	b []byte
}

// Mutable returns a read-write handle to b. No data is copied.
func Mutable(b []byte) MutableData { return MutableData{b: b} }

// Bytes returns the underlying buffer.
func (d MutableData) Bytes() []byte { return d.b }

// Len returns the number of bytes addressed by the handle.
func (d MutableData) Len() int { return len(d.b) }

// IsNil reports whether the handle addresses no memory.
func (d MutableData) IsNil() bool { return len(d.b) == 0 }

// Const narrows the handle to read-only access over the same memory.
func (d MutableData) Const() ConstData { return ConstData{b: d.b} }

// ReadAt implements [io.ReaderAt].
func (d MutableData) ReadAt(p []byte, off int64) (int, error) {
	return readAt(d.b, p, off)
}

// WriteAt implements [io.WriterAt]. Writes never grow the buffer.
func (d MutableData) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(d.b)) {
		return 0, ErrOutOfRange
	}
	n := copy(d.b[off:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func readAt(b, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrOutOfRange
	} else if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

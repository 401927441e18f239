// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

// ByteReader is a Reader over an in-memory []byte. The whole buffer is the
// window from construction onward, so no slow path ever fires except at
// end of stream: Pull simply reports whether any bytes remain.
//
// Grounded on the bytes.Reader-wrapping adapter shape used throughout the
// retrieval corpus (e.g. bytesReaderAdapter), generalized to this
// package's cursor contract instead of io.Reader.
type ByteReader struct {
	health
	data     []byte
	off      int
	closed   bool
}

// NewByteReader returns a Reader over data. data is borrowed: the caller
// must not mutate it while the reader is in use.
func NewByteReader(data []byte) *ByteReader {
	return &ByteReader{health: newHealth(), data: data}
}

func (r *ByteReader) Available() int { return len(r.data) - r.off }
func (r *ByteReader) Window() []byte { return r.data[r.off:] }
func (r *ByteReader) Pos() uint64    { return uint64(r.off) }

func (r *ByteReader) Skip(n int) {
	if n < 0 || n > r.Available() {
		panic("iox: Skip: precondition violation: n out of [0, Available()]")
	}
	r.off += n
}

func (r *ByteReader) Pull() bool {
	if !r.healthy {
		return false
	}
	return r.Available() > 0
}

func (r *ByteReader) Read(dst []byte) bool {
	if !r.healthy {
		return false
	}
	if len(dst) > r.Available() {
		n := copy(dst, r.data[r.off:])
		r.off += n
		return false
	}
	copy(dst, r.data[r.off:r.off+len(dst)])
	r.off += len(dst)
	return true
}

func (r *ByteReader) CopyTo(w Writer, n int64) bool {
	if !r.healthy {
		return false
	}
	if n > int64(r.Available()) {
		n = int64(r.Available())
		if n > 0 {
			_ = w.Write(r.data[r.off : r.off+int(n)])
			r.off += int(n)
		}
		return false
	}
	ok := w.Write(r.data[r.off : r.off+int(n)])
	r.off += int(n)
	if !ok {
		return r.failDownstream(w.Err())
	}
	return true
}

func (r *ByteReader) Seek(pos uint64) bool {
	if !r.healthy {
		return false
	}
	if pos > uint64(len(r.data)) {
		r.off = len(r.data)
		return false
	}
	r.off = int(pos)
	return true
}

func (r *ByteReader) Size() (uint64, bool)       { return uint64(len(r.data)), true }
func (r *ByteReader) SupportsRandomAccess() bool { return true }

func (r *ByteReader) String() string {
	return r.describeStream("ByteReader", r.Pos(), uint64(len(r.data)))
}

func (r *ByteReader) Close() bool {
	if r.closed {
		return r.healthy
	}
	r.closed = true
	return r.healthy
}

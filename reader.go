// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

// Reader is a buffer-cursor byte-stream source. Implementations expose a
// caller-visible buffer window; callers that want to avoid a virtual call
// per byte may read Window() directly and advance with Skip, falling back
// to Pull only once the window is exhausted.
//
// No Reader is safe for concurrent use. See package doc for the ownership
// and health model shared by every stream in this package.
type Reader interface {
	// Pull ensures Available() >= 1, refilling the buffer from the
	// underlying source if necessary. Returns false at end of stream or on
	// failure; check Healthy() to tell the two apart.
	Pull() bool

	// Window returns the not-yet-consumed bytes currently buffered. The
	// slice is only valid until the next call to Skip, Pull, Read, CopyTo,
	// Seek or Close.
	Window() []byte

	// Available is len(Window()); provided so hot loops can test it without
	// allocating a slice header they immediately discard.
	Available() int

	// Skip advances the cursor by n bytes within the current window. n must
	// not exceed Available(); callers that need more must Pull first.
	Skip(n int)

	// Read copies exactly len(dst) bytes into dst and advances the cursor.
	// Returns false on a short read (fewer bytes were available than
	// requested); Pos still reflects the bytes actually consumed.
	Read(dst []byte) bool

	// CopyTo transfers n bytes into w, avoiding an intermediate copy when
	// the implementation can manage it. Returns false if fewer than n bytes
	// could be transferred.
	CopyTo(w Writer, n int64) bool

	// Seek moves the cursor to an absolute stream position. Requires
	// SupportsRandomAccess(); returns false (without failing the stream) if
	// the target position is out of range for an implementation that
	// enforces a bound, such as LimitingReader.
	Seek(pos uint64) bool

	// Size reports the total logical length of the stream, if known.
	Size() (uint64, bool)

	// SupportsRandomAccess reports whether Seek is meaningful.
	SupportsRandomAccess() bool

	// Pos returns the current absolute stream position.
	Pos() uint64

	// Close finalizes the reader. Idempotent; legal even when unhealthy.
	Close() bool

	// Healthy reports whether the stream is still open to progress.
	Healthy() bool

	// Err returns the reason the stream became unhealthy, or nil.
	Err() error
}

// readerBackend is the virtual slow path a concrete BufferedReader
// subclass supplies. readerCore's fast-path methods (Pull, Read, CopyTo,
// Seek) dispatch here only once the current buffer window cannot satisfy
// the request, per the SyncBuffer/MakeBuffer pattern: pullSlow is expected
// to commit the current cursor position against the underlying resource
// and install a fresh window before returning.
type readerBackend interface {
	// pullSlow refills the window. Precondition: Available() == 0.
	pullSlow(c *readerCore) bool

	// seekSlow moves to an absolute position outside [startPos, limitPos].
	seekSlow(c *readerCore, pos uint64) bool

	// size reports the total logical length, if known.
	size(c *readerCore) (uint64, bool)

	// supportsRandomAccess reports whether seekSlow is meaningful.
	supportsRandomAccess() bool

	// closeImpl finalizes the backend. Idempotent.
	closeImpl(c *readerCore) bool
}

// readerCore is the layer-3 BufferedReader mixin: a re-fillable heap
// buffer shared by every adapter that wants pooling (FDReader, ZstdReader,
// ZlibReader, BrotliReader, ...). Adapters that manage their own buffer
// view directly (LimitingReader, ByteReader, ChainReader) implement Reader
// without embedding readerCore.
type readerCore struct {
	health
	window   []byte
	off      int
	startPos uint64
	backend  readerBackend
}

func newReaderCore(backend readerBackend) readerCore {
	return readerCore{health: newHealth(), backend: backend}
}

func (c *readerCore) Available() int     { return len(c.window) - c.off }
func (c *readerCore) Window() []byte     { return c.window[c.off:] }
func (c *readerCore) Pos() uint64        { return c.startPos + uint64(c.off) }
func (c *readerCore) limitPos() uint64   { return c.startPos + uint64(len(c.window)) }
func (c *readerCore) Healthy() bool      { return c.health.Healthy() }
func (c *readerCore) Err() error         { return c.health.Err() }
func (c *readerCore) SupportsRandomAccess() bool { return c.backend.supportsRandomAccess() }

func (c *readerCore) Skip(n int) {
	if n < 0 || n > c.Available() {
		panic("iox: Skip: precondition violation: n out of [0, Available()]")
	}
	c.off += n
}

func (c *readerCore) Pull() bool {
	if !c.healthy {
		return false
	}
	if c.Available() > 0 {
		return true
	}
	return c.backend.pullSlow(c)
}

// Read's slow path (len(dst) > Available()) is the same for every
// readerCore-based adapter: drain the window, then repeatedly pullSlow
// and drain again until dst is full or the source runs dry. Individual
// adapters only need to implement pullSlow itself.
func (c *readerCore) Read(dst []byte) bool {
	if !c.healthy {
		return false
	}
	got := 0
	for got < len(dst) {
		if c.Available() == 0 {
			if !c.backend.pullSlow(c) {
				return false
			}
			if c.Available() == 0 {
				return false
			}
		}
		n := copy(dst[got:], c.window[c.off:])
		c.off += n
		got += n
	}
	return true
}

func (c *readerCore) CopyTo(w Writer, n int64) bool {
	if !c.healthy {
		return false
	}
	if n < 0 {
		return c.fail("CopyTo", "negative length")
	}
	var got int64
	for got < n {
		if c.Available() == 0 {
			if !c.backend.pullSlow(c) {
				return false
			}
			if c.Available() == 0 {
				return false
			}
		}
		chunk := c.window[c.off:]
		if want := n - got; int64(len(chunk)) > want {
			chunk = chunk[:want]
		}
		if !w.Write(chunk) {
			return c.failDownstream(w.Err())
		}
		c.off += len(chunk)
		got += int64(len(chunk))
	}
	return true
}

func (c *readerCore) Seek(pos uint64) bool {
	if !c.healthy {
		return false
	}
	if !c.backend.supportsRandomAccess() {
		return c.fail("Seek", ErrRandomAccessUnsupported.Error())
	}
	if pos >= c.startPos && pos <= c.limitPos() {
		c.off = int(pos - c.startPos)
		return true
	}
	return c.backend.seekSlow(c, pos)
}

func (c *readerCore) Size() (uint64, bool) { return c.backend.size(c) }

func (c *readerCore) Close() bool {
	return c.backend.closeImpl(c)
}

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

// FlushKind distinguishes how hard a Writer should work to make buffered
// data visible to a downstream consumer on Flush.
type FlushKind uint8

const (
	// FlushHint leaves the decision to the implementation; cheap streams
	// may treat it as a no-op.
	FlushHint FlushKind = iota
	// FlushSeal pushes all buffered data through, including any codec
	// state, without ending the logical stream (e.g. a zstd flush block).
	FlushSeal
)

// Writer is a buffer-cursor byte-stream destination. Implementations
// expose a caller-visible writable buffer window; callers that want to
// avoid a virtual call per byte may write into Window() directly and
// advance with Skip, falling back to Push only once the window is
// exhausted.
type Writer interface {
	// Push ensures Available() >= 1, flushing buffered data downstream if
	// necessary to obtain fresh writable space.
	Push() bool

	// Window returns the not-yet-written space currently buffered.
	Window() []byte

	// Available is len(Window()).
	Available() int

	// Skip advances the cursor by n bytes within the current window,
	// committing the bytes the caller wrote directly into Window().
	Skip(n int)

	// Write copies src into the stream.
	Write(src []byte) bool

	// Flush makes buffered data visible to the downstream writer per kind.
	Flush(kind FlushKind) bool

	// Close finalizes the writer, flushing pending state. Idempotent.
	Close() bool

	// Pos returns the current absolute stream position.
	Pos() uint64

	// Healthy reports whether the stream is still open to progress.
	Healthy() bool

	// Err returns the reason the stream became unhealthy, or nil.
	Err() error
}

// writerBackend is the virtual slow path a concrete BufferedWriter
// subclass supplies.
type writerBackend interface {
	// pushSlow obtains fresh writable space. Precondition: Available() == 0.
	pushSlow(c *writerCore) bool

	// writeSlow satisfies a write the current window cannot. Precondition:
	// len(src) > Available().
	writeSlow(c *writerCore, src []byte) bool

	// flushSlow pushes buffered data downstream per kind.
	flushSlow(c *writerCore, kind FlushKind) bool

	// closeImpl finalizes the backend. Idempotent.
	closeImpl(c *writerCore) bool
}

// writerCore is the layer-3 BufferedWriter mixin: a re-fillable heap
// buffer shared by adapters that want pooling (FDWriter, ZstdWriter,
// ZlibWriter, BrotliWriter, ...). Adapters that manage their own buffer
// view directly (ChainBackwardWriter, BufferWriter, ChainWriter) implement
// Writer without embedding writerCore.
type writerCore struct {
	health
	window   []byte
	off      int
	startPos uint64
	backend  writerBackend
}

func newWriterCore(backend writerBackend) writerCore {
	return writerCore{health: newHealth(), backend: backend}
}

func (c *writerCore) Available() int   { return len(c.window) - c.off }
func (c *writerCore) Window() []byte   { return c.window[c.off:] }
func (c *writerCore) Pos() uint64      { return c.startPos + uint64(c.off) }
func (c *writerCore) limitPos() uint64 { return c.startPos + uint64(len(c.window)) }
func (c *writerCore) Healthy() bool    { return c.health.Healthy() }
func (c *writerCore) Err() error       { return c.health.Err() }

func (c *writerCore) Skip(n int) {
	if n < 0 || n > c.Available() {
		panic("iox: Skip: precondition violation: n out of [0, Available()]")
	}
	c.off += n
}

func (c *writerCore) Push() bool {
	if !c.healthy {
		return false
	}
	if c.Available() > 0 {
		return true
	}
	return c.backend.pushSlow(c)
}

func (c *writerCore) Write(src []byte) bool {
	if !c.healthy {
		return false
	}
	if len(src) <= c.Available() {
		copy(c.window[c.off:], src)
		c.off += len(src)
		return true
	}
	return c.backend.writeSlow(c, src)
}

func (c *writerCore) Flush(kind FlushKind) bool {
	if !c.healthy {
		return false
	}
	return c.backend.flushSlow(c, kind)
}

func (c *writerCore) Close() bool {
	return c.backend.closeImpl(c)
}

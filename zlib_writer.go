// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import (
	"fmt"

	"github.com/klauspost/compress/zlib"
)

const zlibWriterBufSize = 32 << 10

// ZlibWriter is ZstdWriter's sibling over github.com/klauspost/compress/zlib
// instead of libzstd: same lazy-initialized, buffer-then-flush shape, but
// the codec here already speaks io.Writer, so WriteInternal is just a
// Write into it rather than a manual compress/push loop.
type ZlibWriter struct {
	writerCore
	downstream Writer
	owned      bool
	closed     bool

	level int
	zw    *zlib.Writer
	buf   []byte
}

// ZlibWriterOption configures a ZlibWriter at construction.
type ZlibWriterOption func(*zlibWriterOptions)

type zlibWriterOptions struct{ level int }

var defaultZlibWriterOptions = zlibWriterOptions{level: zlib.DefaultCompression}

// WithZlibLevel sets the deflate compression level.
func WithZlibLevel(level int) ZlibWriterOption {
	return func(o *zlibWriterOptions) { o.level = level }
}

// NewZlibWriter returns a Writer that deflates into downstream. If owned
// is true, Close also closes downstream.
func NewZlibWriter(downstream Writer, owned bool, opts ...ZlibWriterOption) *ZlibWriter {
	o := defaultZlibWriterOptions
	for _, opt := range opts {
		opt(&o)
	}
	w := &ZlibWriter{
		downstream: downstream,
		owned:      owned,
		level:      o.level,
		buf:        make([]byte, zlibWriterBufSize),
	}
	w.writerCore = newWriterCore(w)
	w.window = w.buf
	return w
}

func (w *ZlibWriter) ensureCodec() bool {
	if w.zw != nil {
		return true
	}
	zw, err := zlib.NewWriterLevel(ioxWriterAsIO{w.downstream}, w.level)
	if err != nil {
		return w.fail("ZlibWriter", fmt.Sprintf("zlib.NewWriterLevel failed: %s", err))
	}
	w.zw = zw
	return true
}

func (w *ZlibWriter) flushBuffered(c *writerCore) bool {
	if c.off == 0 {
		return true
	}
	if _, err := w.zw.Write(w.buf[:c.off]); err != nil {
		return w.fail("ZlibWriter", fmt.Sprintf("zlib write failed: %s", err))
	}
	c.startPos += uint64(c.off)
	c.off = 0
	c.window = w.buf
	return true
}

func (w *ZlibWriter) pushSlow(c *writerCore) bool {
	if !w.ensureCodec() {
		return false
	}
	return w.flushBuffered(c)
}

func (w *ZlibWriter) writeSlow(c *writerCore, src []byte) bool {
	if addOverflows(c.Pos(), uint64(len(src))) {
		return w.failOverflow()
	}
	if !w.ensureCodec() {
		return false
	}
	if !w.flushBuffered(c) {
		return false
	}
	if len(src) >= len(w.buf) {
		if _, err := w.zw.Write(src); err != nil {
			return w.fail("ZlibWriter", fmt.Sprintf("zlib write failed: %s", err))
		}
		c.startPos += uint64(len(src))
		return true
	}
	copy(w.buf, src)
	c.off = len(src)
	return true
}

func (w *ZlibWriter) flushSlow(c *writerCore, kind FlushKind) bool {
	if !w.ensureCodec() {
		return false
	}
	if !w.flushBuffered(c) {
		return false
	}
	if err := w.zw.Flush(); err != nil {
		return w.fail("ZlibWriter", fmt.Sprintf("zlib flush failed: %s", err))
	}
	return w.downstream.Flush(kind)
}

func (w *ZlibWriter) String() string {
	return w.describeStream("ZlibWriter", w.Pos(), w.limitPos())
}

func (w *ZlibWriter) closeImpl(c *writerCore) bool {
	if w.closed {
		return c.healthy
	}
	w.closed = true
	if c.healthy && w.zw == nil && c.off > 0 {
		w.ensureCodec()
	}
	if c.healthy && w.zw != nil {
		if !w.flushBuffered(c) {
			goto closeDownstream
		}
		if err := w.zw.Close(); err != nil {
			w.fail("ZlibWriter", fmt.Sprintf("zlib close failed: %s", err))
		}
	}
closeDownstream:
	if w.owned {
		if !w.downstream.Close() {
			return w.failDownstream(w.downstream.Err())
		}
	}
	return c.healthy
}

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import (
	"fmt"
	"unsafe"
)

const zstdContentSizeUnknown = ^uint64(0)

// ZstdWriterOption configures a ZstdWriter at construction.
type ZstdWriterOption func(*zstdWriterOptions)

type zstdWriterOptions struct {
	level     int
	windowLog int
	sizeHint  int64
}

var defaultZstdWriterOptions = zstdWriterOptions{level: 3, windowLog: -1, sizeHint: -1}

// WithCompressionLevel sets the zstd compression level. The value is
// stored on the writer but is not passed to the codec.
func WithCompressionLevel(level int) ZstdWriterOption {
	return func(o *zstdWriterOptions) { o.level = level }
}

// WithWindowLog overrides the codec's window log; -1 selects the default
// for the chosen compression level.
func WithWindowLog(windowLog int) ZstdWriterOption {
	return func(o *zstdWriterOptions) { o.windowLog = windowLog }
}

// WithSizeHint tells the codec the exact uncompressed size in advance, if
// known, which it may use to pick better parameters and to embed the size
// in the frame header. A negative value means unknown.
func WithSizeHint(size int64) ZstdWriterOption {
	return func(o *zstdWriterOptions) { o.sizeHint = size }
}

const zstdWriterBufSize = 64 << 10

// ZstdWriter wraps a downstream Writer and an owned codec context: every
// byte written is compressed and forwarded. The codec context is created
// lazily on the first byte of actual data, so construction cannot fail for
// resource reasons (spec.md §4.4).
//
// Grounded on develerltd-zstd-purego's Writer (context.go), generalized
// from an io.Writer wrapper using ZSTD_compressStream2 to this package's
// buffer-cursor contract using the plain (non-"2") streaming API, whose
// separate init/compress/flush/end functions map directly onto the
// lazy-init / WriteInternal / Flush / Close states spec.md calls for.
type ZstdWriter struct {
	writerCore
	downstream Writer
	owned      bool
	closed     bool

	lib    *zstdLib
	stream uintptr

	level     int
	windowLog int
	sizeHint  int64

	buf []byte
}

// NewZstdWriter returns a Writer that compresses into downstream. If owned
// is true, Close also closes downstream.
func NewZstdWriter(downstream Writer, owned bool, opts ...ZstdWriterOption) *ZstdWriter {
	o := defaultZstdWriterOptions
	for _, opt := range opts {
		opt(&o)
	}
	w := &ZstdWriter{
		downstream: downstream,
		owned:      owned,
		level:      o.level,
		windowLog:  o.windowLog,
		sizeHint:   o.sizeHint,
		buf:        make([]byte, zstdWriterBufSize),
	}
	w.writerCore = newWriterCore(w)
	w.window = w.buf
	w.off = 0
	return w
}

func (w *ZstdWriter) ensureStream() bool {
	if w.stream != 0 {
		return true
	}
	lib, err := loadZstd()
	if err != nil {
		return w.failDownstream(err)
	}
	w.lib = lib
	cs := lib.createCStream()
	if cs == 0 {
		return w.fail("ZstdWriter", "ZSTD_createCStream() failed")
	}
	w.stream = cs

	// The advanced streaming init takes compression parameters directly
	// rather than a level; an explicit windowLog is honored, otherwise
	// a zeroed ZSTD_compressionParameters tells the codec to derive its
	// parameters from level and pledgedSrcSize on its own.
	params := zstdParams{}
	if w.windowLog >= 0 {
		params.windowLog = int32(w.windowLog)
	}
	pledged := zstdContentSizeUnknown
	if w.sizeHint >= 0 {
		pledged = uint64(w.sizeHint)
	}
	ret := lib.initCStreamAdvanced(cs, nil, 0, params, pledged)
	if lib.isError(ret) != 0 {
		return w.fail("ZstdWriter", fmt.Sprintf("ZSTD_initCStream_advanced() failed: %s", lib.getErrorName(ret)))
	}
	return true
}

// compressAndForward feeds src through the codec, pushing fresh downstream
// space (spec.md §4.4 "codec output pressure") until every byte of src has
// been consumed by the codec.
func (w *ZstdWriter) compressAndForward(src []byte) bool {
	if len(src) == 0 {
		return true
	}
	in := zstdInBuffer{src: unsafe.Pointer(&src[0]), size: uint64(len(src))}
	for in.pos < in.size {
		if !w.downstream.Push() {
			return w.failDownstream(w.downstream.Err())
		}
		dwin := w.downstream.Window()
		if len(dwin) == 0 {
			return w.failDownstream(w.downstream.Err())
		}
		out := zstdOutBuffer{dst: unsafe.Pointer(&dwin[0]), size: uint64(len(dwin))}
		ret := w.lib.compressStream(w.stream, &out, &in)
		if w.lib.isError(ret) != 0 {
			return w.fail("ZstdWriter", fmt.Sprintf("ZSTD_compressStream() failed: %s", w.lib.getErrorName(ret)))
		}
		w.downstream.Skip(int(out.pos))
	}
	return true
}

func (w *ZstdWriter) flushBuffered(c *writerCore) bool {
	if c.off == 0 {
		return true
	}
	if !w.compressAndForward(w.buf[:c.off]) {
		return false
	}
	c.startPos += uint64(c.off)
	c.off = 0
	c.window = w.buf
	return true
}

func (w *ZstdWriter) pushSlow(c *writerCore) bool {
	if !w.ensureStream() {
		return false
	}
	return w.flushBuffered(c)
}

func (w *ZstdWriter) writeSlow(c *writerCore, src []byte) bool {
	if addOverflows(c.Pos(), uint64(len(src))) {
		return w.failOverflow()
	}
	if !w.ensureStream() {
		return false
	}
	if !w.flushBuffered(c) {
		return false
	}
	if len(src) >= len(w.buf) {
		if !w.compressAndForward(src) {
			return false
		}
		c.startPos += uint64(len(src))
		return true
	}
	copy(w.buf, src)
	c.off = len(src)
	return true
}

func (w *ZstdWriter) flushSlow(c *writerCore, kind FlushKind) bool {
	if !w.ensureStream() {
		return false
	}
	if !w.flushBuffered(c) {
		return false
	}
	for {
		if !w.downstream.Push() {
			return w.failDownstream(w.downstream.Err())
		}
		dwin := w.downstream.Window()
		out := zstdOutBuffer{dst: unsafe.Pointer(&dwin[0]), size: uint64(len(dwin))}
		remaining := w.lib.flushStream(w.stream, &out)
		if w.lib.isError(remaining) != 0 {
			return w.fail("ZstdWriter", fmt.Sprintf("ZSTD_flushStream() failed: %s", w.lib.getErrorName(remaining)))
		}
		w.downstream.Skip(int(out.pos))
		if remaining == 0 {
			break
		}
	}
	return w.downstream.Flush(kind)
}

func (w *ZstdWriter) String() string {
	return w.describeStream("ZstdWriter", w.Pos(), w.limitPos())
}

func (w *ZstdWriter) closeImpl(c *writerCore) bool {
	if w.closed {
		return c.healthy
	}
	w.closed = true
	defer func() {
		if w.stream != 0 {
			w.lib.freeCStream(w.stream)
			w.stream = 0
		}
	}()
	if !c.healthy {
		if w.owned {
			w.downstream.Close()
		}
		return false
	}
	if c.off > 0 && !w.ensureStream() {
		goto closeDownstream
	}
	if w.stream != 0 {
		if !w.flushBuffered(c) {
			goto closeDownstream
		}
		for {
			if !w.downstream.Push() {
				w.failDownstream(w.downstream.Err())
				goto closeDownstream
			}
			dwin := w.downstream.Window()
			out := zstdOutBuffer{dst: unsafe.Pointer(&dwin[0]), size: uint64(len(dwin))}
			remaining := w.lib.endStream(w.stream, &out)
			if w.lib.isError(remaining) != 0 {
				w.fail("ZstdWriter", fmt.Sprintf("ZSTD_endStream() failed: %s", w.lib.getErrorName(remaining)))
				goto closeDownstream
			}
			w.downstream.Skip(int(out.pos))
			if remaining == 0 {
				break
			}
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

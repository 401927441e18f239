// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import (
	"fmt"

	"github.com/andybalholm/brotli"
)

const brotliWriterBufSize = 32 << 10

// BrotliWriter is ZstdWriter's other sibling, over
// github.com/andybalholm/brotli instead of libzstd.
type BrotliWriter struct {
	writerCore
	downstream Writer
	owned      bool
	closed     bool

	quality int
	bw      *brotli.Writer
	buf     []byte
}

// BrotliWriterOption configures a BrotliWriter at construction.
type BrotliWriterOption func(*brotliWriterOptions)

type brotliWriterOptions struct{ quality int }

// defaultBrotliQuality matches zstd's and zlib's "middling, fast default"
// convention rather than brotli's own quality-11-by-default NewWriter,
// since this package's ZstdWriter/ZlibWriter default low for streaming use.
const defaultBrotliQuality = 5

var defaultBrotliWriterOptions = brotliWriterOptions{quality: defaultBrotliQuality}

// WithBrotliQuality sets the brotli quality level.
func WithBrotliQuality(quality int) BrotliWriterOption {
	return func(o *brotliWriterOptions) { o.quality = quality }
}

// NewBrotliWriter returns a Writer that compresses into downstream. If
// owned is true, Close also closes downstream.
func NewBrotliWriter(downstream Writer, owned bool, opts ...BrotliWriterOption) *BrotliWriter {
	o := defaultBrotliWriterOptions
	for _, opt := range opts {
		opt(&o)
	}
	w := &BrotliWriter{
		downstream: downstream,
		owned:      owned,
		quality:    o.quality,
		buf:        make([]byte, brotliWriterBufSize),
	}
	w.writerCore = newWriterCore(w)
	w.window = w.buf
	return w
}

func (w *BrotliWriter) ensureCodec() bool {
	if w.bw != nil {
		return true
	}
	w.bw = brotli.NewWriterLevel(ioxWriterAsIO{w.downstream}, w.quality)
	return true
}

func (w *BrotliWriter) flushBuffered(c *writerCore) bool {
	if c.off == 0 {
		return true
	}
	if _, err := w.bw.Write(w.buf[:c.off]); err != nil {
		return w.fail("BrotliWriter", fmt.Sprintf("brotli write failed: %s", err))
	}
	c.startPos += uint64(c.off)
	c.off = 0
	c.window = w.buf
	return true
}

func (w *BrotliWriter) pushSlow(c *writerCore) bool {
	if !w.ensureCodec() {
		return false
	}
	return w.flushBuffered(c)
}

func (w *BrotliWriter) writeSlow(c *writerCore, src []byte) bool {
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
		if _, err := w.bw.Write(src); err != nil {
			return w.fail("BrotliWriter", fmt.Sprintf("brotli write failed: %s", err))
		}
		c.startPos += uint64(len(src))
		return true
	}
	copy(w.buf, src)
	c.off = len(src)
	return true
}

func (w *BrotliWriter) flushSlow(c *writerCore, kind FlushKind) bool {
	if !w.ensureCodec() {
		return false
	}
	if !w.flushBuffered(c) {
		return false
	}
	if err := w.bw.Flush(); err != nil {
		return w.fail("BrotliWriter", fmt.Sprintf("brotli flush failed: %s", err))
	}
	return w.downstream.Flush(kind)
}

func (w *BrotliWriter) String() string {
	return w.describeStream("BrotliWriter", w.Pos(), w.limitPos())
}

func (w *BrotliWriter) closeImpl(c *writerCore) bool {
	if w.closed {
		return c.healthy
	}
	w.closed = true
	if c.healthy && w.bw == nil && c.off > 0 {
		w.ensureCodec()
	}
	if c.healthy && w.bw != nil {
		if !w.flushBuffered(c) {
			goto closeDownstream
		}
		if err := w.bw.Close(); err != nil {
			w.fail("BrotliWriter", fmt.Sprintf("brotli close failed: %s", err))
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

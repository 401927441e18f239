// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import "os"

// FDWriter is a BufferedWriter over an *os.File, batching small writes
// through writerCore's heap buffer before issuing a syscall.
type FDWriter struct {
	writerCore
	f      *os.File
	owned  bool
	buf    []byte
	closed bool
}

// NewFDWriter returns a Writer over f, pooling writes through a bufSize
// buffer. If owned is true, Close also closes f. bufSize <= 0 selects a
// 4096-byte buffer.
func NewFDWriter(f *os.File, bufSize int, owned bool) *FDWriter {
	if bufSize <= 0 {
		bufSize = 4096
	}
	w := &FDWriter{f: f, owned: owned, buf: make([]byte, bufSize)}
	w.writerCore = newWriterCore(w)
	w.window = w.buf
	w.off = 0
	return w
}

func (w *FDWriter) flushBuffered(c *writerCore) bool {
	if c.off == 0 {
		return true
	}
	if _, err := w.f.Write(w.buf[:c.off]); err != nil {
		return c.failDownstream(err)
	}
	c.startPos += uint64(c.off)
	c.off = 0
	c.window = w.buf
	return true
}

func (w *FDWriter) pushSlow(c *writerCore) bool {
	return w.flushBuffered(c)
}

// writeSlow handles src larger than the remaining window: drain what's
// buffered, then either fill-and-drain in bufSize chunks or, for a src at
// least as large as the whole buffer, write it straight through.
func (w *FDWriter) writeSlow(c *writerCore, src []byte) bool {
	if !w.flushBuffered(c) {
		return false
	}
	for len(src) >= len(w.buf) {
		n, err := w.f.Write(src[:len(w.buf)])
		c.startPos += uint64(n)
		if err != nil {
			return c.failDownstream(err)
		}
		src = src[len(w.buf):]
	}
	if len(src) == 0 {
		return true
	}
	copy(w.buf, src)
	c.off = len(src)
	return true
}

func (w *FDWriter) flushSlow(c *writerCore, kind FlushKind) bool {
	return w.flushBuffered(c)
}

func (w *FDWriter) String() string {
	return w.describeStream("FDWriter", w.Pos(), w.limitPos())
}

func (w *FDWriter) closeImpl(c *writerCore) bool {
	if w.closed {
		return c.healthy
	}
	w.closed = true
	if !w.flushBuffered(c) {
		return false
	}
	if w.owned {
		if err := w.f.Close(); err != nil {
			return c.failDownstream(err)
		}
	}
	return c.healthy
}

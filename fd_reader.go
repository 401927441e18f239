// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import "os"

// FDReader is a BufferedReader over an *os.File, using readerCore's
// re-fillable heap buffer so repeated small reads don't each cost a
// syscall.
type FDReader struct {
	readerCore
	f      *os.File
	owned  bool
	buf    []byte
	closed bool
}

// NewFDReader returns a Reader over f, pooling reads through a bufSize
// buffer. If owned is true, Close also closes f. bufSize <= 0 selects a
// 4096-byte buffer.
func NewFDReader(f *os.File, bufSize int, owned bool) *FDReader {
	if bufSize <= 0 {
		bufSize = 4096
	}
	r := &FDReader{f: f, owned: owned, buf: make([]byte, bufSize)}
	r.readerCore = newReaderCore(r)
	return r
}

func (r *FDReader) pullSlow(c *readerCore) bool {
	newStart := c.startPos + uint64(len(c.window))
	n, err := r.f.Read(r.buf)
	if n > 0 {
		c.window = r.buf[:n]
		c.off = 0
		c.startPos = newStart
	}
	if err != nil {
		if n == 0 {
			return false
		}
		return true
	}
	return n > 0
}

func (r *FDReader) seekSlow(c *readerCore, pos uint64) bool {
	off, err := r.f.Seek(int64(pos), 0)
	if err != nil {
		return c.failDownstream(err)
	}
	c.startPos = uint64(off)
	c.window = nil
	c.off = 0
	return true
}

func (r *FDReader) size(c *readerCore) (uint64, bool) {
	fi, err := r.f.Stat()
	if err != nil {
		return 0, false
	}
	return uint64(fi.Size()), true
}

func (r *FDReader) supportsRandomAccess() bool { return true }

func (r *FDReader) String() string {
	return r.describeStream("FDReader", r.Pos(), r.limitPos())
}

func (r *FDReader) closeImpl(c *readerCore) bool {
	if r.closed {
		return c.healthy
	}
	r.closed = true
	if r.owned {
		if err := r.f.Close(); err != nil {
			return c.failDownstream(err)
		}
	}
	return c.healthy
}

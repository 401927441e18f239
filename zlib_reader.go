// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

const zlibReaderBufSize = 32 << 10

// ZlibReader pairs with ZlibWriter over github.com/klauspost/compress/zlib.
type ZlibReader struct {
	readerCore
	source Reader
	owned  bool
	closed bool

	zr  io.ReadCloser
	buf []byte
}

// NewZlibReader returns a Reader that inflates source. If owned is true,
// Close also closes source.
func NewZlibReader(source Reader, owned bool) *ZlibReader {
	r := &ZlibReader{source: source, owned: owned, buf: make([]byte, zlibReaderBufSize)}
	r.readerCore = newReaderCore(r)
	return r
}

func (r *ZlibReader) ensureCodec() bool {
	if r.zr != nil {
		return true
	}
	zr, err := zlib.NewReader(ioxReaderAsIO{r.source})
	if err != nil {
		return r.fail("ZlibReader", fmt.Sprintf("zlib.NewReader failed: %s", err))
	}
	r.zr = zr
	return true
}

func (r *ZlibReader) pullSlow(c *readerCore) bool {
	if !r.ensureCodec() {
		return false
	}
	newStart := c.startPos + uint64(len(c.window))
	n, err := r.zr.Read(r.buf)
	if n > 0 {
		c.window = r.buf[:n]
		c.off = 0
		c.startPos = newStart
	}
	if err != nil && err != io.EOF {
		return r.fail("ZlibReader", fmt.Sprintf("zlib read failed: %s", err))
	}
	return n > 0
}

func (r *ZlibReader) seekSlow(c *readerCore, pos uint64) bool {
	return r.fail("Seek", ErrRandomAccessUnsupported.Error())
}

func (r *ZlibReader) size(c *readerCore) (uint64, bool) { return 0, false }

func (r *ZlibReader) supportsRandomAccess() bool { return false }

func (r *ZlibReader) String() string {
	return r.describeStream("ZlibReader", r.Pos(), r.limitPos())
}

func (r *ZlibReader) closeImpl(c *readerCore) bool {
	if r.closed {
		return c.healthy
	}
	r.closed = true
	if r.zr != nil {
		if err := r.zr.Close(); err != nil {
			r.fail("ZlibReader", fmt.Sprintf("zlib close failed: %s", err))
		}
	}
	if r.owned {
		if !r.source.Close() {
			return r.failDownstream(r.source.Err())
		}
	}
	return c.healthy
}

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import (
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

const brotliReaderBufSize = 32 << 10

// BrotliReader pairs with BrotliWriter over github.com/andybalholm/brotli.
type BrotliReader struct {
	readerCore
	source Reader
	owned  bool
	closed bool

	br  *brotli.Reader
	buf []byte
}

// NewBrotliReader returns a Reader that decompresses source. If owned is
// true, Close also closes source.
func NewBrotliReader(source Reader, owned bool) *BrotliReader {
	r := &BrotliReader{source: source, owned: owned, buf: make([]byte, brotliReaderBufSize)}
	r.readerCore = newReaderCore(r)
	return r
}

func (r *BrotliReader) pullSlow(c *readerCore) bool {
	if r.br == nil {
		r.br = brotli.NewReader(ioxReaderAsIO{r.source})
	}
	newStart := c.startPos + uint64(len(c.window))
	n, err := r.br.Read(r.buf)
	if n > 0 {
		c.window = r.buf[:n]
		c.off = 0
		c.startPos = newStart
	}
	if err != nil && err != io.EOF {
		return r.fail("BrotliReader", fmt.Sprintf("brotli read failed: %s", err))
	}
	return n > 0
}

func (r *BrotliReader) seekSlow(c *readerCore, pos uint64) bool {
	return r.fail("Seek", ErrRandomAccessUnsupported.Error())
}

func (r *BrotliReader) size(c *readerCore) (uint64, bool) { return 0, false }

func (r *BrotliReader) supportsRandomAccess() bool { return false }

func (r *BrotliReader) String() string {
	return r.describeStream("BrotliReader", r.Pos(), r.limitPos())
}

func (r *BrotliReader) closeImpl(c *readerCore) bool {
	if r.closed {
		return c.healthy
	}
	r.closed = true
	if r.owned {
		if !r.source.Close() {
			return r.failDownstream(r.source.Err())
		}
	}
	return c.healthy
}

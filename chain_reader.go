// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import "container/list"

// ChainReader reads forward from a Chain, exposing each underlying block
// as its buffer window in turn with no copying. The chain is borrowed and
// must not be mutated while the reader is in use beyond what the reader
// itself consumes.
type ChainReader struct {
	health
	chain    *Chain
	elem     *list.Element // current block, nil once exhausted
	off      int           // offset within current block
	startPos uint64
	closed   bool
}

// NewChainReader returns a Reader over chain's current contents.
func NewChainReader(chain *Chain) *ChainReader {
	return &ChainReader{health: newHealth(), chain: chain, elem: chain.blocks.Front()}
}

func (r *ChainReader) currentBlock() []byte {
	if r.elem == nil {
		return nil
	}
	return r.elem.Value.(*chainBlock).data
}

func (r *ChainReader) Available() int { return len(r.currentBlock()) - r.off }
func (r *ChainReader) Window() []byte { return r.currentBlock()[r.off:] }
func (r *ChainReader) Pos() uint64    { return r.startPos }

func (r *ChainReader) Skip(n int) {
	if n < 0 || n > r.Available() {
		panic("iox: Skip: precondition violation: n out of [0, Available()]")
	}
	r.off += n
	r.startPos += uint64(n)
}

func (r *ChainReader) Pull() bool {
	if !r.healthy {
		return false
	}
	for r.elem != nil && r.off >= len(r.currentBlock()) {
		r.elem = r.elem.Next()
		r.off = 0
	}
	return r.elem != nil
}

func (r *ChainReader) Read(dst []byte) bool {
	if !r.healthy {
		return false
	}
	need := len(dst)
	got := 0
	for got < need {
		if !r.Pull() {
			return false
		}
		n := copy(dst[got:], r.Window())
		r.Skip(n)
		got += n
	}
	return true
}

func (r *ChainReader) CopyTo(w Writer, n int64) bool {
	if !r.healthy {
		return false
	}
	var got int64
	for got < n {
		if !r.Pull() {
			return false
		}
		chunk := r.Window()
		want := n - got
		if int64(len(chunk)) > want {
			chunk = chunk[:want]
		}
		if !w.Write(chunk) {
			return r.failDownstream(w.Err())
		}
		r.Skip(len(chunk))
		got += int64(len(chunk))
	}
	return true
}

func (r *ChainReader) Seek(pos uint64) bool {
	if !r.healthy {
		return false
	}
	if pos > uint64(r.chain.Size()) {
		return false
	}
	r.elem = r.chain.blocks.Front()
	r.off = 0
	r.startPos = 0
	remaining := pos
	for r.elem != nil && remaining >= uint64(len(r.currentBlock())) {
		remaining -= uint64(len(r.currentBlock()))
		r.startPos += uint64(len(r.currentBlock()))
		r.elem = r.elem.Next()
	}
	r.off = int(remaining)
	r.startPos += remaining
	return true
}

func (r *ChainReader) Size() (uint64, bool)          { return uint64(r.chain.Size()), true }
func (r *ChainReader) SupportsRandomAccess() bool    { return true }

func (r *ChainReader) String() string {
	return r.describeStream("ChainReader", r.Pos(), uint64(r.chain.Size()))
}

func (r *ChainReader) Close() bool {
	if r.closed {
		return r.healthy
	}
	r.closed = true
	return r.healthy
}

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

// ChainWriter appends forward to a Chain, reserving blocks directly from
// it with no intermediate heap buffer of its own. The forward-direction
// sibling of ChainBackwardWriter.
type ChainWriter struct {
	health
	chain     *Chain
	window    []byte
	off       int
	closed    bool
	blockSize int
}

// NewChainWriter returns a Writer that appends to chain. chain is
// borrowed: the writer never closes or frees it.
func NewChainWriter(chain *Chain, opts ...ChainWriterOption) *ChainWriter {
	o := defaultChainWriterOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &ChainWriter{health: newHealth(), chain: chain, blockSize: o.blockSize}
}

func (w *ChainWriter) Available() int { return len(w.window) - w.off }
func (w *ChainWriter) Window() []byte { return w.window[w.off:] }
func (w *ChainWriter) Pos() uint64    { return uint64(w.chain.Size()) - uint64(w.Available()) }

func (w *ChainWriter) Skip(n int) {
	if n < 0 || n > w.Available() {
		panic("iox: Skip: precondition violation: n out of [0, Available()]")
	}
	w.off += n
}

func (w *ChainWriter) Push() bool {
	if !w.healthy {
		return false
	}
	if w.Available() > 0 {
		return true
	}
	return w.pushSlow()
}

func (w *ChainWriter) pushSlow() bool {
	w.trimUnused()
	window := w.chain.AppendBuffer(1, w.blockSize)
	w.window = window
	w.off = 0
	return true
}

// trimUnused removes the not-yet-written tail of the current window from
// the back of the chain, keeping chain.Size() == Pos().
func (w *ChainWriter) trimUnused() {
	unused := len(w.window) - w.off
	if unused > 0 {
		w.chain.RemoveSuffix(int64(unused))
	}
	w.window = nil
	w.off = 0
}

func (w *ChainWriter) Write(src []byte) bool {
	if !w.healthy {
		return false
	}
	if len(src) <= w.Available() {
		copy(w.window[w.off:], src)
		w.off += len(src)
		return true
	}
	if w.Available() > 0 {
		n := w.Available()
		copy(w.window[w.off:], src[:n])
		w.off += n
		src = src[n:]
	}
	w.trimUnused()
	if len(src) == 0 {
		return true
	}
	w.chain.Append(src)
	return true
}

// WriteOwned copies nothing: b's backing array becomes a block of the
// chain directly.
func (w *ChainWriter) WriteOwned(b []byte) bool {
	if !w.healthy {
		return false
	}
	w.trimUnused()
	w.chain.AppendOwned(b)
	return true
}

func (w *ChainWriter) Flush(FlushKind) bool {
	if !w.healthy {
		return false
	}
	w.trimUnused()
	return true
}

func (w *ChainWriter) String() string {
	return w.describeStream("ChainWriter", w.Pos(), uint64(w.chain.Size()))
}

func (w *ChainWriter) Close() bool {
	if w.closed {
		return w.healthy
	}
	w.closed = true
	if !w.healthy {
		return false
	}
	w.trimUnused()
	return true
}

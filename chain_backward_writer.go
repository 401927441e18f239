// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import "math"

const defaultChainBlockSize = 4096

// ChainWriterOption configures a ChainBackwardWriter or ChainWriter.
type ChainWriterOption func(*chainWriterOptions)

type chainWriterOptions struct {
	blockSize int
}

var defaultChainWriterOptions = chainWriterOptions{blockSize: defaultChainBlockSize}

// WithBlockSize sets the size of buffers reserved from the backing Chain
// when the current buffer is exhausted. Larger values amortize the
// PrependBuffer/AppendBuffer call over more bytes at the cost of memory
// reserved-but-unused between flushes.
func WithBlockSize(n int) ChainWriterOption {
	return func(o *chainWriterOptions) {
		if n > 0 {
			o.blockSize = n
		}
	}
}

// ChainBackwardWriter writes bytes in reverse into a Chain, prepending at
// its front so that the bytes, read forward, come out in the order they
// were given to Write — even though successive Write calls land earlier
// in the logical stream than data already written. See package docs on
// BackwardWriter.
//
// The backing Chain must not be mutated by any other code for the
// lifetime of the writer; doing so is undefined behavior and is detected,
// best-effort, by a panic (see assertSynced).
type ChainBackwardWriter struct {
	health
	chain      *Chain
	window     []byte
	cursor     int
	expectSize int64
	closed     bool
	blockSize  int
}

// NewChainBackwardWriter returns a BackwardWriter that prepends to chain.
// chain is borrowed: the writer never closes or frees it.
func NewChainBackwardWriter(chain *Chain, opts ...ChainWriterOption) *ChainBackwardWriter {
	o := defaultChainWriterOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &ChainBackwardWriter{
		health:     newHealth(),
		chain:      chain,
		expectSize: chain.Size(),
		blockSize:  o.blockSize,
	}
}

// assertSynced panics if the backing chain was mutated by anything other
// than this writer since the last call — the external-change detection
// spec.md §4.3 calls for.
func (w *ChainBackwardWriter) assertSynced() {
	if w.chain.Size() != w.expectSize {
		panic(ErrRopeMutated)
	}
}

func (w *ChainBackwardWriter) Available() int { return w.cursor }
func (w *ChainBackwardWriter) Window() []byte { return w.window[:w.cursor] }
func (w *ChainBackwardWriter) Pos() uint64     { return uint64(w.expectSize - int64(w.cursor)) }

func (w *ChainBackwardWriter) Skip(n int) {
	if n < 0 || n > w.cursor {
		panic("iox: Skip: precondition violation: n out of [0, Available()]")
	}
	w.cursor -= n
}

func (w *ChainBackwardWriter) Push() bool {
	if !w.healthy {
		return false
	}
	if w.cursor > 0 {
		return true
	}
	return w.pushSlow()
}

func (w *ChainBackwardWriter) pushSlow() bool {
	w.assertSynced()
	w.commitUnused()
	if w.expectSize >= math.MaxInt64 {
		return w.failOverflow()
	}
	window := w.chain.PrependBuffer(1, w.blockSize)
	w.expectSize += int64(len(window))
	w.window = window
	w.cursor = len(window)
	return true
}

// commitUnused strips the not-yet-written portion of the current window
// off the front of the chain, restoring chain.Size() == Pos().
func (w *ChainBackwardWriter) commitUnused() {
	if w.cursor == 0 {
		return
	}
	w.chain.RemovePrefix(int64(w.cursor))
	w.expectSize -= int64(w.cursor)
	w.window = nil
	w.cursor = 0
}

func (w *ChainBackwardWriter) Write(src []byte) bool {
	if !w.healthy {
		return false
	}
	if len(src) <= w.cursor {
		copy(w.window[w.cursor-len(src):w.cursor], src)
		w.cursor -= len(src)
		return true
	}
	return w.writeSlow(src)
}

func (w *ChainBackwardWriter) writeSlow(src []byte) bool {
	w.assertSynced()
	if len(src) == 0 {
		return true
	}
	if uint64(len(src)) > uint64(math.MaxInt64)-uint64(w.expectSize) {
		return w.failOverflow()
	}
	w.commitUnused()
	w.chain.Prepend(src)
	w.expectSize += int64(len(src))
	return true
}

// WriteOwned is the zero-copy sibling of Write: chain takes ownership of
// b's backing array and no bytes are copied.
func (w *ChainBackwardWriter) WriteOwned(b []byte) bool {
	if !w.healthy {
		return false
	}
	w.assertSynced()
	if len(b) == 0 {
		return true
	}
	if uint64(len(b)) > uint64(math.MaxInt64)-uint64(w.expectSize) {
		return w.failOverflow()
	}
	w.commitUnused()
	w.chain.PrependOwned(b)
	w.expectSize += int64(len(b))
	return true
}

// WriteOwnedChain prepends other onto the destination chain without
// copying any bytes; other is left empty.
func (w *ChainBackwardWriter) WriteOwnedChain(other *Chain) bool {
	if !w.healthy {
		return false
	}
	w.assertSynced()
	if other.Size() == 0 {
		return true
	}
	if uint64(other.Size()) > uint64(math.MaxInt64)-uint64(w.expectSize) {
		return w.failOverflow()
	}
	w.commitUnused()
	added := other.Size()
	w.chain.PrependChain(other)
	w.expectSize += added
	return true
}

// Truncate shrinks the logical stream to newSize bytes, discarding the
// most-recently-written data — which, because this writer builds its
// result back-to-front, sits at the chain's front.
func (w *ChainBackwardWriter) Truncate(newSize uint64) bool {
	if !w.healthy {
		return false
	}
	pos := w.Pos()
	if newSize > pos {
		return false
	}
	spanStart := uint64(w.expectSize - int64(len(w.window)))
	if newSize >= spanStart {
		w.cursor = w.cursor + int(pos-newSize)
		return true
	}
	w.assertSynced()
	w.commitUnused()
	w.chain.RemovePrefix(int64(pos - newSize))
	w.expectSize -= int64(pos - newSize)
	return true
}

func (w *ChainBackwardWriter) String() string {
	return w.describeStream("ChainBackwardWriter", w.Pos(), uint64(w.expectSize))
}

func (w *ChainBackwardWriter) Flush(FlushKind) bool {
	if !w.healthy {
		return false
	}
	w.assertSynced()
	return true
}

// Close commits any pending unused prefix back to the chain, leaving the
// chain's length equal to Pos(). Idempotent.
func (w *ChainBackwardWriter) Close() bool {
	if w.closed {
		return w.healthy
	}
	w.closed = true
	if !w.healthy {
		return false
	}
	w.assertSynced()
	w.commitUnused()
	return true
}

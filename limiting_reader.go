// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

// LimitingReader composes over a source Reader and enforces a maximum
// absolute position (sizeLimit), fixed at construction. Because its pos is
// always exactly the source's pos, it shares the source's buffer window
// directly rather than copying through one of its own — the same approach
// oy3o-codec's LimitedReader takes wrapping io.LimitedReader, adapted to
// this package's cursor contract and its exact-position truncation rules.
type LimitingReader struct {
	health
	source    Reader
	sizeLimit uint64
	owned     bool
	closed    bool
}

// NewLimitingReader returns a Reader that forbids source from advancing
// past sizeLimit. If owned is true, Close also closes source; otherwise
// source is borrowed and Close only syncs it.
func NewLimitingReader(source Reader, sizeLimit uint64, owned bool) *LimitingReader {
	return &LimitingReader{health: newHealth(), source: source, sizeLimit: sizeLimit, owned: owned}
}

func (r *LimitingReader) limitPos() uint64 {
	lp, _ := r.remainingLimitPos()
	return lp
}

// remainingLimitPos returns min(source's limit_pos, sizeLimit). The source
// doesn't expose limit_pos directly, so it is reconstructed from Pos()
// plus however much of its current window is visible.
func (r *LimitingReader) remainingLimitPos() (uint64, bool) {
	srcLimitPos := r.source.Pos() + uint64(r.source.Available())
	if srcLimitPos > r.sizeLimit {
		return r.sizeLimit, true
	}
	return srcLimitPos, false
}

func (r *LimitingReader) Available() int {
	if r.source.Pos() >= r.sizeLimit {
		return 0
	}
	avail := r.source.Available()
	if remaining := r.sizeLimit - r.source.Pos(); uint64(avail) > remaining {
		avail = int(remaining)
	}
	return avail
}

func (r *LimitingReader) Window() []byte {
	w := r.source.Window()
	if n := r.Available(); n < len(w) {
		w = w[:n]
	}
	return w
}

func (r *LimitingReader) Pos() uint64 { return r.source.Pos() }

func (r *LimitingReader) Skip(n int) {
	if n < 0 || n > r.Available() {
		panic("iox: Skip: precondition violation: n out of [0, Available()]")
	}
	r.source.Skip(n)
}

// Pull ensures Available() >= 1. The fast path defers entirely to the
// source; the slow path (spec.md §4.2 PullSlow) returns false at the limit
// without failing the stream, which is not an error (spec.md §7 kind 4).
func (r *LimitingReader) Pull() bool {
	if !r.healthy {
		return false
	}
	if r.Available() > 0 {
		return true
	}
	if r.source.Pos() >= r.sizeLimit {
		return false
	}
	if !r.source.Pull() {
		if !r.source.Healthy() {
			return r.failDownstream(r.source.Err())
		}
		return false
	}
	return r.Available() > 0
}

func (r *LimitingReader) Read(dst []byte) bool {
	if !r.healthy {
		return false
	}
	remaining := r.sizeLimit - r.source.Pos()
	if uint64(len(dst)) > remaining {
		// Read what's available, then stop short without failing.
		if remaining > 0 {
			short := dst[:remaining]
			if !r.source.Read(short) && !r.source.Healthy() {
				return r.failDownstream(r.source.Err())
			}
		}
		return false
	}
	if !r.source.Read(dst) {
		if !r.source.Healthy() {
			return r.failDownstream(r.source.Err())
		}
		return false
	}
	return true
}

func (r *LimitingReader) CopyTo(w Writer, n int64) bool {
	if !r.healthy {
		return false
	}
	remaining := r.sizeLimit - r.source.Pos()
	if uint64(n) > remaining {
		if remaining > 0 {
			if !r.source.CopyTo(w, int64(remaining)) && !r.source.Healthy() {
				return r.failDownstream(r.source.Err())
			}
		}
		return false
	}
	if !r.source.CopyTo(w, n) {
		if !r.source.Healthy() {
			return r.failDownstream(r.source.Err())
		}
		return false
	}
	return true
}

// CopyToBackward transfers n bytes into a BackwardWriter. Per spec.md
// §4.2, a backward writer cannot accept a partial copy meaningfully: if n
// exceeds the remaining room under sizeLimit, the source is first seeked
// to sizeLimit (leaving it positioned at the boundary) and nothing is
// written, rather than writing a partial prefix.
func (r *LimitingReader) CopyToBackward(w BackwardWriter, n int64) bool {
	if !r.healthy {
		return false
	}
	remaining := r.sizeLimit - r.source.Pos()
	if uint64(n) > remaining {
		r.Seek(r.sizeLimit)
		return false
	}
	return CopyToBackward(r.source, w, n)
}

func (r *LimitingReader) Seek(pos uint64) bool {
	if !r.healthy {
		return false
	}
	if !r.source.SupportsRandomAccess() {
		return r.fail("Seek", ErrRandomAccessUnsupported.Error())
	}
	target := pos
	if target > r.sizeLimit {
		target = r.sizeLimit
	}
	ok := r.source.Seek(target)
	if !r.source.Healthy() {
		return r.failDownstream(r.source.Err())
	}
	return ok && pos <= r.sizeLimit
}

func (r *LimitingReader) Size() (uint64, bool) {
	sz, ok := r.source.Size()
	if !ok {
		return 0, false
	}
	if sz > r.sizeLimit {
		sz = r.sizeLimit
	}
	return sz, true
}

func (r *LimitingReader) SupportsRandomAccess() bool { return r.source.SupportsRandomAccess() }

func (r *LimitingReader) String() string {
	return r.describeStream("LimitingReader", r.Pos(), r.sizeLimit)
}

// Close syncs the source; if the source is owned, it also closes it.
func (r *LimitingReader) Close() bool {
	if r.closed {
		return r.healthy
	}
	r.closed = true
	if r.owned {
		if !r.source.Close() {
			return r.failDownstream(r.source.Err())
		}
	}
	return r.healthy
}

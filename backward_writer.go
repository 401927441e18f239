// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

// BackwardWriter writes bytes in reverse: successive Write calls land
// earlier in the logical stream than the bytes already written, so a
// serializer that computes a payload tail-first (e.g. length-prefixed
// framing) can still produce a forward-readable result without a second
// pass. See ChainBackwardWriter for the only adapter in this package.
//
// Buffer convention: [limit, cursor) is the not-yet-written space and
// cursor decreases toward limit as bytes are committed; callers that want
// the fast path write into Window() from its end backward and then Skip
// by the number of bytes written.
type BackwardWriter interface {
	// Push ensures Available() >= 1 of writable space immediately before
	// the already-written bytes.
	Push() bool

	// Window returns the not-yet-written space currently reserved, in
	// forward address order; a caller writing n bytes copies them into
	// Window()[len(Window())-n:] and then calls Skip(n).
	Window() []byte

	// Available is len(Window()).
	Available() int

	// Skip commits n bytes most recently placed at the end of Window().
	Skip(n int)

	// Write copies src so that, read forward, it precedes everything
	// already written to this BackwardWriter.
	Write(src []byte) bool

	// Truncate shrinks the logical stream to new_size bytes by discarding
	// the most recently written bytes, which sit at the front of the
	// forward-readable result. Returns false only if new_size > Pos() (a truncation that would grow
	// the stream).
	Truncate(newSize uint64) bool

	// Flush makes buffered data visible to the downstream resource.
	Flush(kind FlushKind) bool

	// Close finalizes the writer, committing any pending state. Idempotent.
	Close() bool

	// Pos returns the current absolute length of the written prefix.
	Pos() uint64

	// Healthy reports whether the stream is still open to progress.
	Healthy() bool

	// Err returns the reason the stream became unhealthy, or nil.
	Err() error
}

// backwardCopier is implemented by Readers that can optimize a copy to a
// BackwardWriter beyond the generic buffer-and-write fallback (for
// instance, LimitingReader's exact-position truncation rule).
type backwardCopier interface {
	CopyToBackward(w BackwardWriter, n int64) bool
}

// CopyToBackward transfers n bytes from r into w. Readers that implement
// backwardCopier get their specialized behavior; everything else falls
// back to buffering n bytes and writing them as one span.
func CopyToBackward(r Reader, w BackwardWriter, n int64) bool {
	if bc, ok := r.(backwardCopier); ok {
		return bc.CopyToBackward(w, n)
	}
	if n < 0 {
		return false
	}
	buf := make([]byte, n)
	if !r.Read(buf) {
		return false
	}
	return w.Write(buf)
}

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package iox provides a buffer-cursor byte-stream I/O layer: Reader,
// Writer and BackwardWriter abstractions that expose a direct,
// caller-advanceable cursor into a buffer window, plus concrete adapters
// over in-memory buffers, length-limited sub-streams, ropes (Chain) and
// streaming compression codecs (zstd, zlib, brotli).
//
// # Design
//
// Every stream carries a buffer window [0,len(window)) and a cursor
// position inside it. Callers that want to avoid a virtual call per byte
// read or write the window directly:
//
//	for r.Pull() {
//		b := r.Window()
//		... consume b, advance with r.Skip(n) ...
//	}
//
// Pull (readers) and Push (writers) are inlineable fast paths that return
// immediately when the window still has bytes/space available, and fall
// back to a virtual slow path (refill from the source, or commit to the
// destination and request a new window) only when it is exhausted. This
// amortizes the cost of the slow path's virtual dispatch and any syscalls
// or library calls it performs across potentially large spans of direct
// buffer access.
//
// # Health
//
// A stream is healthy until a slow-path operation fails, at which point it
// latches Healthy()==false with a message describing why, and every
// subsequent mutating call becomes a no-op that returns false. Close is
// always legal, including on an unhealthy stream, and is idempotent.
//
// # Concurrency
//
// A single stream is not safe for concurrent use. Independent streams may
// be used from independent goroutines. An underlying resource (Chain,
// *os.File, downstream Writer) shared by two wrappers at once is undefined
// behavior; see the ownership discussion on each concrete adapter's
// constructor.
package iox

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import "testing"

// scriptedReaderBackend feeds readerCore a fixed sequence of chunks,
// exercising the generic Read/CopyTo slow paths in reader.go against a
// minimal pullSlow implementation.
type scriptedReaderBackend struct {
	chunks [][]byte
	next   int
}

func (b *scriptedReaderBackend) pullSlow(c *readerCore) bool {
	if b.next >= len(b.chunks) {
		return false
	}
	chunk := b.chunks[b.next]
	b.next++
	c.startPos += uint64(len(c.window))
	c.window = chunk
	c.off = 0
	return len(chunk) > 0
}

func (b *scriptedReaderBackend) seekSlow(c *readerCore, pos uint64) bool { return false }
func (b *scriptedReaderBackend) size(c *readerCore) (uint64, bool)      { return 0, false }
func (b *scriptedReaderBackend) supportsRandomAccess() bool             { return false }
func (b *scriptedReaderBackend) closeImpl(c *readerCore) bool           { return c.healthy }

func newScriptedReader(chunks ...[]byte) *readerCore {
	backend := &scriptedReaderBackend{chunks: chunks}
	c := newReaderCore(backend)
	return &c
}

func TestReaderCoreReadAcrossChunks(t *testing.T) {
	r := newScriptedReader([]byte("hel"), []byte("lo "), []byte("world"))
	dst := make([]byte, 11)
	if !r.Read(dst) {
		t.Fatalf("Read() = false, want true")
	}
	if got, want := string(dst), "hello world"; got != want {
		t.Fatalf("Read() = %q, want %q", got, want)
	}
}

func TestReaderCoreReadShortReturnsFalse(t *testing.T) {
	r := newScriptedReader([]byte("ab"))
	dst := make([]byte, 5)
	if r.Read(dst) {
		t.Fatalf("Read() = true, want false on short read")
	}
	if !r.Healthy() {
		t.Fatalf("short read should not mark the stream unhealthy")
	}
}

func TestReaderCoreCopyTo(t *testing.T) {
	r := newScriptedReader([]byte("abc"), []byte("def"))
	w := NewBufferWriter(2)
	if !r.CopyTo(w, 6) {
		t.Fatalf("CopyTo() = false, want true")
	}
	if got, want := string(w.Bytes()), "abcdef"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

// scriptedWriterBackend is writerCore's counterpart fake, driving
// pushSlow/writeSlow/flushSlow/closeImpl against a growable []byte sink.
type scriptedWriterBackend struct {
	sink      []byte
	chunkSize int
	closed    bool
}

func (b *scriptedWriterBackend) pushSlow(c *writerCore) bool {
	c.startPos += uint64(c.off)
	c.window = make([]byte, b.chunkSize)
	c.off = 0
	return true
}

func (b *scriptedWriterBackend) writeSlow(c *writerCore, src []byte) bool {
	b.sink = append(b.sink, c.window[:c.off]...)
	c.startPos += uint64(c.off)
	c.off = 0
	b.sink = append(b.sink, src...)
	c.startPos += uint64(len(src))
	c.window = make([]byte, b.chunkSize)
	return true
}

func (b *scriptedWriterBackend) flushSlow(c *writerCore, kind FlushKind) bool {
	b.sink = append(b.sink, c.window[:c.off]...)
	c.startPos += uint64(c.off)
	c.off = 0
	return true
}

func (b *scriptedWriterBackend) closeImpl(c *writerCore) bool {
	if b.closed {
		return c.healthy
	}
	b.closed = true
	return b.flushSlow(c, FlushSeal)
}

func newScriptedWriter(chunkSize int) (*writerCore, *scriptedWriterBackend) {
	backend := &scriptedWriterBackend{chunkSize: chunkSize}
	c := newWriterCore(backend)
	c.window = make([]byte, chunkSize)
	return &c, backend
}

func TestWriterCoreWriteFastAndSlowPath(t *testing.T) {
	w, backend := newScriptedWriter(4)
	if !w.Write([]byte("ab")) {
		t.Fatalf("Write() = false, want true")
	}
	if !w.Write([]byte("cdefgh")) {
		t.Fatalf("Write() = false, want true")
	}
	if !w.Close() {
		t.Fatalf("Close() = false, want true")
	}
	if got, want := string(backend.sink), "abcdefgh"; got != want {
		t.Fatalf("sink = %q, want %q", got, want)
	}
}

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox_test

import (
	"bytes"
	"crypto/rand"
	"strings"
	"testing"

	"code.hybscloud.com/iox"
)

// requireZstd skips the test if no system libzstd could be loaded, rather
// than failing a test suite run on a host that lacks the shared library.
func requireZstd(t *testing.T, ok bool, err error) {
	t.Helper()
	if !ok && err != nil && strings.Contains(err.Error(), "failed to load") {
		t.Skipf("libzstd not available: %v", err)
	}
}

func TestZstdRoundTripSmall(t *testing.T) {
	bw := iox.NewBufferWriter(64)
	zw := iox.NewZstdWriter(bw, false)

	ok := zw.Write([]byte("abcabcabc"))
	requireZstd(t, ok, zw.Err())
	if !ok {
		t.Fatalf("Write() = false, err=%v", zw.Err())
	}
	if zw.Pos() != 9 {
		t.Fatalf("Pos() before Close() = %d, want 9", zw.Pos())
	}
	if !zw.Close() {
		t.Fatalf("Close() = false, err=%v", zw.Err())
	}

	zr := iox.NewZstdReader(iox.NewByteReader(bw.Bytes()), false)
	out := make([]byte, 9)
	if !zr.Read(out) {
		t.Fatalf("Read() = false, err=%v", zr.Err())
	}
	if got, want := string(out), "abcabcabc"; got != want {
		t.Fatalf("decompressed = %q, want %q", got, want)
	}
	zr.Close()
}

// oneByteWriter forces a Push per byte, exercising ZstdWriter's codec
// output pressure loop (spec.md §8 scenario 6).
type oneByteWriter struct {
	buf bytes.Buffer
	one [1]byte
}

func (w *oneByteWriter) Push() bool               { return true }
func (w *oneByteWriter) Window() []byte           { return w.one[:1] }
func (w *oneByteWriter) Available() int           { return 1 }
func (w *oneByteWriter) Skip(n int)               { w.buf.Write(w.one[:n]) }
func (w *oneByteWriter) Write(src []byte) bool    { w.buf.Write(src); return true }
func (w *oneByteWriter) Flush(iox.FlushKind) bool { return true }
func (w *oneByteWriter) Close() bool              { return true }
func (w *oneByteWriter) Pos() uint64              { return uint64(w.buf.Len()) }
func (w *oneByteWriter) Healthy() bool            { return true }
func (w *oneByteWriter) Err() error               { return nil }

func TestZstdDownstreamPressure(t *testing.T) {
	dst := &oneByteWriter{}
	zw := iox.NewZstdWriter(dst, false)

	data := make([]byte, 1<<20)
	_, _ = rand.Read(data)

	ok := zw.Write(data)
	requireZstd(t, ok, zw.Err())
	if !ok {
		t.Fatalf("Write(1MiB) = false, err=%v", zw.Err())
	}
	if !zw.Close() {
		t.Fatalf("Close() = false, err=%v", zw.Err())
	}

	zr := iox.NewZstdReader(iox.NewByteReader(dst.buf.Bytes()), false)
	out := make([]byte, len(data))
	if !zr.Read(out) {
		t.Fatalf("Read() = false, err=%v", zr.Err())
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("decompressed output does not match input")
	}
}

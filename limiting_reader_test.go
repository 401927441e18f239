// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox_test

import (
	"testing"

	"code.hybscloud.com/iox"
)

func TestLimitingReaderTruncatesRead(t *testing.T) {
	src := iox.NewByteReader([]byte("hello world"))
	r := iox.NewLimitingReader(src, 5, false)

	dst := make([]byte, 5)
	if !r.Read(dst) {
		t.Fatalf("Read() = false, want true, err=%v", r.Err())
	}
	if got, want := string(dst), "hello"; got != want {
		t.Fatalf("Read() = %q, want %q", got, want)
	}

	more := make([]byte, 1)
	if r.Read(more) {
		t.Fatalf("Read() past limit = true, want false")
	}
	if !r.Healthy() {
		t.Fatalf("reading past the limit must not fail the stream")
	}
}

func TestLimitingReaderSeekClampsToLimit(t *testing.T) {
	src := iox.NewByteReader([]byte("0123456789"))
	r := iox.NewLimitingReader(src, 4, false)

	if r.Seek(100) {
		t.Fatalf("Seek(100) = true, want false (beyond limit)")
	}
	if r.Pos() != 4 {
		t.Fatalf("Pos() = %d, want 4", r.Pos())
	}
	if !r.Healthy() {
		t.Fatalf("seeking past the limit must not fail the stream")
	}
}

func TestLimitingReaderSizeClampedToLimit(t *testing.T) {
	src := iox.NewByteReader([]byte("0123456789"))
	r := iox.NewLimitingReader(src, 4, false)

	sz, ok := r.Size()
	if !ok || sz != 4 {
		t.Fatalf("Size() = (%d, %v), want (4, true)", sz, ok)
	}
}

func TestLimitingReaderCopyToBackwardRejectsOverflow(t *testing.T) {
	src := iox.NewByteReader([]byte("0123456789"))
	r := iox.NewLimitingReader(src, 4, false)

	chain := iox.NewChain()
	w := iox.NewChainBackwardWriter(chain)

	if iox.CopyToBackward(r, w, 5) {
		t.Fatalf("CopyToBackward(n=5) over a 4-byte limit = true, want false")
	}
	if r.Pos() != 4 {
		t.Fatalf("Pos() after rejected CopyToBackward = %d, want 4 (seeked to limit)", r.Pos())
	}
}

func TestLimitingReaderCopyToBackwardWithinLimit(t *testing.T) {
	src := iox.NewByteReader([]byte("abcdef"))
	r := iox.NewLimitingReader(src, 4, false)

	chain := iox.NewChain()
	w := iox.NewChainBackwardWriter(chain)

	if !iox.CopyToBackward(r, w, 4) {
		t.Fatalf("CopyToBackward(n=4) = false, want true, err=%v", r.Err())
	}
	if !w.Close() {
		t.Fatalf("Close() = false")
	}
	if got, want := string(chain.Bytes()), "abcd"; got != want {
		t.Fatalf("chain contents = %q, want %q", got, want)
	}
}

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox_test

import (
	"testing"

	"code.hybscloud.com/iox"
)

func TestChainBackwardWriterOrder(t *testing.T) {
	chain := iox.NewChain()
	w := iox.NewChainBackwardWriter(chain)

	if !w.Write([]byte("world")) {
		t.Fatalf("Write(world) = false")
	}
	if !w.Write([]byte("hello ")) {
		t.Fatalf("Write(hello ) = false")
	}
	if !w.Close() {
		t.Fatalf("Close() = false, err=%v", w.Err())
	}

	if got, want := string(chain.Bytes()), "hello world"; got != want {
		t.Fatalf("chain contents = %q, want %q", got, want)
	}
	if chain.Size() != int64(w.Pos()) {
		t.Fatalf("chain.Size() = %d, want w.Pos() = %d", chain.Size(), w.Pos())
	}
}

func TestChainBackwardWriterLargeSpanBypassesBuffer(t *testing.T) {
	chain := iox.NewChain()
	w := iox.NewChainBackwardWriter(chain, iox.WithBlockSize(8))

	big := make([]byte, 1000)
	for i := range big {
		big[i] = byte(i)
	}
	if !w.Write(big) {
		t.Fatalf("Write(large) = false")
	}
	if !w.Write([]byte("tail")) {
		t.Fatalf("Write(tail) = false")
	}
	if !w.Close() {
		t.Fatalf("Close() = false, err=%v", w.Err())
	}

	got := chain.Bytes()
	if len(got) != len(big)+len("tail") {
		t.Fatalf("len(got) = %d, want %d", len(got), len(big)+len("tail"))
	}
	if string(got[:len("tail")]) != "tail" {
		t.Fatalf("tail span (written last) not at the front")
	}
	if string(got[len("tail"):]) != string(big) {
		t.Fatalf("large span (written first) not at the back")
	}
}

func TestChainBackwardWriterTruncate(t *testing.T) {
	chain := iox.NewChain()
	w := iox.NewChainBackwardWriter(chain)

	if !w.Write([]byte("hello world")) {
		t.Fatalf("Write() = false")
	}
	if !w.Truncate(5) {
		t.Fatalf("Truncate(5) = false")
	}
	if !w.Close() {
		t.Fatalf("Close() = false")
	}
	if got, want := string(chain.Bytes()), "world"; got != want {
		t.Fatalf("chain contents = %q, want %q", got, want)
	}
}

func TestChainBackwardWriterTruncateRejectsGrowth(t *testing.T) {
	chain := iox.NewChain()
	w := iox.NewChainBackwardWriter(chain)
	if !w.Write([]byte("abc")) {
		t.Fatalf("Write() = false")
	}
	if w.Truncate(10) {
		t.Fatalf("Truncate(10) = true, want false (would grow the stream)")
	}
}

func TestChainBackwardWriterTruncateAfterFastPathWrite(t *testing.T) {
	chain := iox.NewChain()
	w := iox.NewChainBackwardWriter(chain, iox.WithBlockSize(8))

	filler := make([]byte, 100)
	for i := range filler {
		filler[i] = 'a'
	}
	if !w.Write(filler) {
		t.Fatalf("Write(filler) = false")
	}

	if !w.Push() {
		t.Fatalf("Push() = false, err=%v", w.Err())
	}
	win := w.Window()
	if len(win) != 8 {
		t.Fatalf("Window() len = %d, want 8", len(win))
	}
	copy(win[len(win)-3:], []byte("xyz"))
	w.Skip(3)
	if got, want := w.Available(), 5; got != want {
		t.Fatalf("Available() after Skip(3) = %d, want %d", got, want)
	}
	if got, want := w.Pos(), uint64(103); got != want {
		t.Fatalf("Pos() = %d, want %d", got, want)
	}

	if !w.Truncate(101) {
		t.Fatalf("Truncate(101) = false")
	}
	if got, want := w.Available(), 7; got != want {
		t.Fatalf("Available() after Truncate(101) = %d, want %d (cursor must account for the partially-consumed window)", got, want)
	}

	if !w.Close() {
		t.Fatalf("Close() = false, err=%v", w.Err())
	}

	want := "z" + string(filler)
	if got := string(chain.Bytes()); got != want {
		t.Fatalf("chain contents = %q, want %q", got, want)
	}
}

func TestChainBackwardWriterDetectsExternalMutation(t *testing.T) {
	chain := iox.NewChain()
	w := iox.NewChainBackwardWriter(chain)
	if !w.Write([]byte("abc")) {
		t.Fatalf("Write() = false")
	}

	chain.Append([]byte("tampered"))

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic after external mutation of backing chain")
		}
	}()
	w.Close()
}

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import "testing"

func TestChainAppendPrependBytes(t *testing.T) {
	c := NewChain()
	c.Append([]byte("world"))
	c.Prepend([]byte("hello "))
	if got, want := string(c.Bytes()), "hello world"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
	if c.Size() != int64(len("hello world")) {
		t.Fatalf("Size() = %d, want %d", c.Size(), len("hello world"))
	}
}

func TestChainPrependOwnedOrderAcrossCalls(t *testing.T) {
	c := NewChain()
	c.PrependOwned([]byte("world"))
	c.PrependOwned([]byte("hello "))
	if got, want := string(c.Bytes()), "hello world"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

func TestChainRemovePrefixSuffix(t *testing.T) {
	c := NewChain()
	c.Append([]byte("0123456789"))
	c.RemovePrefix(3)
	c.RemoveSuffix(2)
	if got, want := string(c.Bytes()), "3456789"[:len("3456789")-2]; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

func TestChainPrependChainPreservesOrder(t *testing.T) {
	a := NewChain()
	a.Append([]byte("cd"))
	b := NewChain()
	b.Append([]byte("ab"))

	a.PrependChain(b)
	if got, want := string(a.Bytes()), "abcd"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
	if !b.Empty() {
		t.Fatalf("source chain should be emptied after PrependChain")
	}
}

func TestChainAppendChainPreservesOrder(t *testing.T) {
	a := NewChain()
	a.Append([]byte("ab"))
	b := NewChain()
	b.Append([]byte("cd"))

	a.AppendChain(b)
	if got, want := string(a.Bytes()), "abcd"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
	if !b.Empty() {
		t.Fatalf("source chain should be emptied after AppendChain")
	}
}

func TestChainSplit(t *testing.T) {
	c := NewChain()
	c.Append([]byte("abcdef"))
	head, tail := c.Split(3)
	if got, want := string(head.Bytes()), "abc"; got != want {
		t.Fatalf("head = %q, want %q", got, want)
	}
	if got, want := string(tail.Bytes()), "def"; got != want {
		t.Fatalf("tail = %q, want %q", got, want)
	}
	if !c.Empty() {
		t.Fatalf("original chain should be emptied after Split")
	}
}

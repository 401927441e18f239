// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import "container/list"

// Chain is an ordered, non-contiguous byte container (a rope) supporting
// O(1)-amortized prepend/append of spans and owned buffers, plus prefix and
// suffix removal and splitting. It is the rope collaborator spec.md treats
// as an external, out-of-scope primitive; no rope library appears anywhere
// in this module's reference corpus, so it is supplied here directly (see
// DESIGN.md).
//
// Chain is not safe for concurrent use, matching every other stream in
// this package.
type Chain struct {
	blocks *list.List // of *chainBlock, front-to-back in stream order
	size   int64
}

type chainBlock struct {
	data []byte
}

// NewChain returns an empty Chain.
func NewChain() *Chain {
	return &Chain{blocks: list.New()}
}

// Size reports the total number of bytes currently held.
func (c *Chain) Size() int64 { return c.size }

// Empty reports whether the chain holds no bytes.
func (c *Chain) Empty() bool { return c.size == 0 }

// PrependBuffer reserves a new block of at least minSize bytes (sized to
// recommended when that is larger) at the front of the chain and returns
// it for the caller to fill. The block is already logically part of the
// chain (Size grows immediately); a caller that does not fill all of it
// must call RemovePrefix on the unused portion to restore the invariant
// that Size reflects only genuinely written bytes.
func (c *Chain) PrependBuffer(minSize, recommended int) []byte {
	if recommended < minSize {
		recommended = minSize
	}
	if recommended < 1 {
		recommended = 1
	}
	blk := &chainBlock{data: make([]byte, recommended)}
	c.blocks.PushFront(blk)
	c.size += int64(recommended)
	return blk.data
}

// AppendBuffer is the symmetric operation at the back of the chain.
func (c *Chain) AppendBuffer(minSize, recommended int) []byte {
	if recommended < minSize {
		recommended = minSize
	}
	if recommended < 1 {
		recommended = 1
	}
	blk := &chainBlock{data: make([]byte, recommended)}
	c.blocks.PushBack(blk)
	c.size += int64(recommended)
	return blk.data
}

// Prepend copies p into a new block at the front of the chain.
func (c *Chain) Prepend(p []byte) {
	if len(p) == 0 {
		return
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	c.PrependOwned(cp)
}

// PrependOwned installs b as a new block at the front of the chain without
// copying; the chain takes ownership of b's backing array.
func (c *Chain) PrependOwned(b []byte) {
	if len(b) == 0 {
		return
	}
	c.blocks.PushFront(&chainBlock{data: b})
	c.size += int64(len(b))
}

// Append copies p into a new block at the back of the chain.
func (c *Chain) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	c.AppendOwned(cp)
}

// AppendOwned installs b as a new block at the back of the chain without
// copying; the chain takes ownership of b's backing array.
func (c *Chain) AppendOwned(b []byte) {
	if len(b) == 0 {
		return
	}
	c.blocks.PushBack(&chainBlock{data: b})
	c.size += int64(len(b))
}

// AppendChain moves other's blocks onto the back of c, leaving other
// empty. If other is the owned product of a ChainBackwardWriter this is
// zero-copy: no bytes are touched, only block pointers move.
func (c *Chain) AppendChain(other *Chain) {
	if other == nil || other.blocks.Len() == 0 {
		return
	}
	for e := other.blocks.Front(); e != nil; {
		next := e.Next()
		other.blocks.Remove(e)
		c.blocks.PushBack(e.Value)
		e = next
	}
	c.size += other.size
	other.size = 0
}

// PrependChain moves other's blocks onto the front of c, leaving other
// empty, preserving other's internal order (other's front becomes the new
// front of c). Zero-copy: only block pointers move.
func (c *Chain) PrependChain(other *Chain) {
	if other == nil || other.blocks.Len() == 0 {
		return
	}
	for e := other.blocks.Back(); e != nil; {
		prev := e.Prev()
		other.blocks.Remove(e)
		c.blocks.PushFront(e.Value)
		e = prev
	}
	c.size += other.size
	other.size = 0
}

// RemovePrefix discards the first n bytes, splitting the front block if n
// falls in its interior. Panics if n exceeds Size, the same contract a
// misused rope has in the source library this mirrors.
func (c *Chain) RemovePrefix(n int64) {
	if n < 0 || n > c.size {
		panic("iox: Chain.RemovePrefix: n out of range")
	}
	c.size -= n
	for n > 0 {
		front := c.blocks.Front()
		blk := front.Value.(*chainBlock)
		if int64(len(blk.data)) <= n {
			n -= int64(len(blk.data))
			c.blocks.Remove(front)
			continue
		}
		blk.data = blk.data[n:]
		n = 0
	}
}

// RemoveSuffix discards the last n bytes, splitting the back block if n
// falls in its interior.
func (c *Chain) RemoveSuffix(n int64) {
	if n < 0 || n > c.size {
		panic("iox: Chain.RemoveSuffix: n out of range")
	}
	c.size -= n
	for n > 0 {
		back := c.blocks.Back()
		blk := back.Value.(*chainBlock)
		if int64(len(blk.data)) <= n {
			n -= int64(len(blk.data))
			c.blocks.Remove(back)
			continue
		}
		blk.data = blk.data[:int64(len(blk.data))-n]
		n = 0
	}
}

// Split divides the chain at pos into two chains: the first holds bytes
// [0,pos), the second [pos,Size). c is left empty.
func (c *Chain) Split(pos int64) (head, tail *Chain) {
	if pos < 0 || pos > c.size {
		panic("iox: Chain.Split: pos out of range")
	}
	head, tail = NewChain(), NewChain()
	remaining := pos
	for e := c.blocks.Front(); e != nil; {
		next := e.Next()
		blk := e.Value.(*chainBlock)
		switch {
		case int64(len(blk.data)) <= remaining:
			remaining -= int64(len(blk.data))
			head.AppendOwned(blk.data)
		case remaining == 0:
			tail.AppendOwned(blk.data)
		default:
			head.AppendOwned(blk.data[:remaining])
			tail.AppendOwned(blk.data[remaining:])
			remaining = 0
		}
		e = next
	}
	c.blocks.Init()
	c.size = 0
	return head, tail
}

// Bytes materializes the full contents as a single contiguous slice.
// Intended for tests and small chains; large chains should be consumed
// through ChainReader instead.
func (c *Chain) Bytes() []byte {
	out := make([]byte, 0, c.size)
	for e := c.blocks.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*chainBlock).data...)
	}
	return out
}

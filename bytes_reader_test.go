// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox_test

import (
	"testing"

	"code.hybscloud.com/iox"
)

func TestByteReaderBufferWriterRoundTrip(t *testing.T) {
	r := iox.NewByteReader([]byte("the quick brown fox"))
	w := iox.NewBufferWriter(1)

	if !r.CopyTo(w, 19) {
		t.Fatalf("CopyTo() = false, want true, err=%v", r.Err())
	}
	if got, want := string(w.Bytes()), "the quick brown fox"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
	if !w.Close() {
		t.Fatalf("Close() = false")
	}
}

func TestByteReaderSeekOutOfRangeFails(t *testing.T) {
	r := iox.NewByteReader([]byte("abc"))
	if r.Seek(10) {
		t.Fatalf("Seek(10) on a 3-byte reader = true, want false")
	}
}

func TestByteReaderShortReadAdvancesPos(t *testing.T) {
	r := iox.NewByteReader([]byte("ab"))
	dst := make([]byte, 5)
	if r.Read(dst) {
		t.Fatalf("Read() = true, want false (short read)")
	}
	if r.Pos() != 2 {
		t.Fatalf("Pos() = %d, want 2", r.Pos())
	}
}

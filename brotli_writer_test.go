// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox_test

import (
	"testing"

	"code.hybscloud.com/iox"
)

func TestBrotliRoundTrip(t *testing.T) {
	bw := iox.NewBufferWriter(64)
	zw := iox.NewBrotliWriter(bw, false, iox.WithBrotliQuality(5))

	if !zw.Write([]byte("the quick brown fox jumps over the lazy dog")) {
		t.Fatalf("Write() = false, err=%v", zw.Err())
	}
	if !zw.Close() {
		t.Fatalf("Close() = false, err=%v", zw.Err())
	}

	zr := iox.NewBrotliReader(iox.NewByteReader(bw.Bytes()), false)
	out := make([]byte, len("the quick brown fox jumps over the lazy dog"))
	if !zr.Read(out) {
		t.Fatalf("Read() = false, err=%v", zr.Err())
	}
	if got, want := string(out), "the quick brown fox jumps over the lazy dog"; got != want {
		t.Fatalf("decompressed = %q, want %q", got, want)
	}
	zr.Close()
}

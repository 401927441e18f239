// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import "io"

// ioxWriterAsIO adapts a Writer to io.Writer, for driving third-party
// codec libraries (zlib, brotli) that only know how to write to an
// io.Writer. Every Write is forwarded as a single Writer.Write call, so
// the downstream Writer's own buffering applies.
type ioxWriterAsIO struct {
	w Writer
}

func (a ioxWriterAsIO) Write(p []byte) (int, error) {
	if !a.w.Write(p) {
		if err := a.w.Err(); err != nil {
			return 0, err
		}
		return 0, ErrClosed
	}
	return len(p), nil
}

// ioxReaderAsIO adapts a Reader to io.Reader, for driving third-party
// codec libraries (zlib, brotli) that only know how to read from an
// io.Reader.
type ioxReaderAsIO struct {
	r Reader
}

func (a ioxReaderAsIO) Read(p []byte) (int, error) {
	if !a.r.Pull() {
		if err := a.r.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	w := a.r.Window()
	n := copy(p, w)
	a.r.Skip(n)
	return n, nil
}

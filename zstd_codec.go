// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// zstdInBuffer and zstdOutBuffer mirror ZSTD_inBuffer/ZSTD_outBuffer's
// field layout exactly (src/dst pointer, size, pos), as required by
// ZSTD_compressStream/ZSTD_decompressStream's C ABI.
type zstdInBuffer struct {
	src unsafe.Pointer
	size uint64
	pos  uint64
}

type zstdOutBuffer struct {
	dst  unsafe.Pointer
	size uint64
	pos  uint64
}

// zstdLib holds the libzstd function pointers this package uses. Unlike
// develerltd-zstd-purego, which embeds prebuilt shared libraries for a
// fixed set of platforms and extracts them to a temp file before
// Dlopen-ing, this package has no embeddable binary to ship and instead
// opens whatever libzstd the host already provides. See DESIGN.md.
type zstdLib struct {
	createCStream func() uintptr
	freeCStream   func(zcs uintptr) uint64
	initCStreamAdvanced func(zcs uintptr, dict unsafe.Pointer, dictSize uint64, params zstdParams, pledgedSrcSize uint64) uint64
	compressStream func(zcs uintptr, out *zstdOutBuffer, in *zstdInBuffer) uint64
	flushStream    func(zcs uintptr, out *zstdOutBuffer) uint64
	endStream      func(zcs uintptr, out *zstdOutBuffer) uint64

	createDStream func() uintptr
	freeDStream   func(zds uintptr) uint64
	initDStream   func(zds uintptr) uint64
	decompressStream func(zds uintptr, out *zstdOutBuffer, in *zstdInBuffer) uint64

	isError      func(code uint64) int32
	getErrorName func(code uint64) string
}

// zstdParams mirrors ZSTD_parameters exactly: a ZSTD_compressionParameters
// (windowLog..strategy) followed by a ZSTD_frameParameters (the three
// *Flag fields). It has no compressionLevel field — the advanced
// streaming init this package uses takes cParams directly rather than a
// level, so the level set by WithCompressionLevel never reaches the codec;
// only WithWindowLog sets a field here. See DESIGN.md.
type zstdParams struct {
	windowLog    int32
	chainLog     int32
	hashLog      int32
	searchLog    int32
	minMatch     int32
	targetLength int32
	strategy     int32

	contentSizeFlag int32
	checksumFlag    int32
	noDictIDFlag    int32
}

var (
	zstdOnce sync.Once
	zstdLibP *zstdLib
	zstdErr  error
)

// loadZstd opens the system zstd shared library and binds the streaming
// API this package needs. Loaded lazily and once, on the first ZstdWriter
// or ZstdReader that actually touches data — matching the "construction
// cannot fail for resource reasons" contract those adapters expose.
func loadZstd() (*zstdLib, error) {
	zstdOnce.Do(func() {
		var libName string
		switch runtime.GOOS {
		case "linux":
			libName = "libzstd.so.1"
		case "darwin":
			libName = "libzstd.dylib"
		default:
			zstdErr = fmt.Errorf("iox: unsupported platform for zstd: %s/%s", runtime.GOOS, runtime.GOARCH)
			return
		}
		handle, err := purego.Dlopen(libName, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			zstdErr = fmt.Errorf("iox: failed to load %s: %w", libName, err)
			return
		}
		z := &zstdLib{}
		purego.RegisterLibFunc(&z.createCStream, handle, "ZSTD_createCStream")
		purego.RegisterLibFunc(&z.freeCStream, handle, "ZSTD_freeCStream")
		purego.RegisterLibFunc(&z.initCStreamAdvanced, handle, "ZSTD_initCStream_advanced")
		purego.RegisterLibFunc(&z.compressStream, handle, "ZSTD_compressStream")
		purego.RegisterLibFunc(&z.flushStream, handle, "ZSTD_flushStream")
		purego.RegisterLibFunc(&z.endStream, handle, "ZSTD_endStream")
		purego.RegisterLibFunc(&z.createDStream, handle, "ZSTD_createDStream")
		purego.RegisterLibFunc(&z.freeDStream, handle, "ZSTD_freeDStream")
		purego.RegisterLibFunc(&z.initDStream, handle, "ZSTD_initDStream")
		purego.RegisterLibFunc(&z.decompressStream, handle, "ZSTD_decompressStream")
		purego.RegisterLibFunc(&z.isError, handle, "ZSTD_isError")
		purego.RegisterLibFunc(&z.getErrorName, handle, "ZSTD_getErrorName")
		zstdLibP = z
	})
	return zstdLibP, zstdErr
}

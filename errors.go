// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iox

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument reports an invalid configuration or nil source/destination.
	ErrInvalidArgument = errors.New("iox: invalid argument")

	// ErrClosed is returned by the io.Writer adapter that the zlib and
	// brotli writers drive when the downstream Writer refuses a write
	// without recording an error. Streams do not check for calls made
	// after Close (Close itself is always legal and idempotent).
	ErrClosed = errors.New("iox: stream closed")

	// ErrOverflow reports that an absolute position plus a length would
	// exceed the representable range of an unsigned 64-bit offset.
	ErrOverflow = errors.New("iox: stream position overflow")

	// ErrRandomAccessUnsupported reports that Seek was called on a Reader
	// whose SupportsRandomAccess() is false.
	ErrRandomAccessUnsupported = errors.New("iox: random access not supported")

	// ErrRopeMutated reports that a ChainBackwardWriter observed its backing
	// Chain change length behind its back between calls. Per spec, recovery
	// is undefined; this is raised as a panic value, not returned.
	ErrRopeMutated = errors.New("iox: backing chain mutated externally")
)

// StreamError is the value returned by Err() once a stream has latched
// unhealthy. It carries the literal message recorded by the slow-path
// operation that failed.
type StreamError struct {
	Op      string // name of the operation/library call that failed, if any
	Message string
	Cause   error // wrapped downstream error, when failure is a propagated one
}

func (e *StreamError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *StreamError) Unwrap() error { return e.Cause }

// health is embedded by every Reader/Writer/BackwardWriter implementation.
// Streams expose it through Healthy()/Err(); the fields themselves stay
// unexported so only the owning adapter can latch a failure.
type health struct {
	healthy bool
	err     *StreamError
}

func newHealth() health { return health{healthy: true} }

// fail latches the stream unhealthy with the given message and op name.
// It always returns false so call sites can write `return h.fail(...)`.
func (h *health) fail(op, message string) bool {
	h.healthy = false
	h.err = &StreamError{Op: op, Message: message}
	return false
}

// failDownstream latches the stream unhealthy, surfacing a downstream
// failure's message unchanged (spec §7 kind 1: downstream failure).
func (h *health) failDownstream(cause error) bool {
	h.healthy = false
	if se, ok := cause.(*StreamError); ok {
		h.err = se
		return false
	}
	h.err = &StreamError{Message: cause.Error(), Cause: cause}
	return false
}

// failOverflow latches the stream unhealthy with the fixed overflow message
// (spec §7 kind 2: position overflow).
func (h *health) failOverflow() bool {
	h.healthy = false
	h.err = &StreamError{Message: "Stream position overflow", Cause: ErrOverflow}
	return false
}

func (h *health) Healthy() bool { return h.healthy }

func (h *health) Err() error {
	if h.healthy {
		return nil
	}
	return h.err
}

// addOverflows reports whether pos+delta would exceed the range of uint64.
func addOverflows(pos, delta uint64) bool {
	return delta > math.MaxUint64-pos
}

// describeStream formats the one diagnostic surface every Reader/Writer/
// BackwardWriter in this package exposes: a %v-friendly state dump of its
// position, the position its current window or logical bound reaches,
// whether it's still healthy, and the failure message if not.
func (h *health) describeStream(name string, pos, limitPos uint64) string {
	msg := ""
	if h.err != nil {
		msg = h.err.Message
	}
	return fmt.Sprintf("%s{pos=%d, limit_pos=%d, healthy=%t, message=%q}", name, pos, limitPos, h.healthy, msg)
}

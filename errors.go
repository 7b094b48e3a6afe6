package swr

import (
	"errors"
	"fmt"
	"os"
)

// Sentinel errors for the recoverable conditions in the renderer's error
// taxonomy. Fatal conditions (a routine returning an inconsistent output
// mask, and similar programming errors) do not have a sentinel: they go
// through fatal and never return to a caller.
var (
	// ErrInvalidConfig names a configuration file that fails to parse or
	// contains a value outside its valid range. LoadConfig does not return
	// it: on a parse failure it logs a warning and returns DefaultConfig,
	// and out-of-range values are replaced by defaults in normalize.
	ErrInvalidConfig = errors.New("swr: invalid configuration")

	// ErrNoContext is returned by draw when context is nil.
	ErrNoContext = errors.New("swr: draw requires a non-nil context")

	// ErrZeroCount is returned by draw when count is not > 0.
	ErrZeroCount = errors.New("swr: draw requires count > 0")

	// ErrNoEvents is returned by draw when events is nil.
	ErrNoEvents = errors.New("swr: draw requires a non-nil TaskEvents sink")

	// ErrPoolExhausted names a pool with no loan currently available. No
	// pool operation returns it: parallel.BoundedPool.TryBorrow reports
	// exhaustion with a false second result, and Borrow parks until a loan
	// is returned.
	ErrPoolExhausted = errors.New("swr: pool exhausted")

	// ErrRendererClosed is returned by operations attempted after Close.
	ErrRendererClosed = errors.New("swr: renderer is closed")
)

// fatal reports an unrecoverable programming-error condition and
// terminates the process. It is the core's only abort path, reserved for
// conditions the error taxonomy marks "Fatal abort" (e.g. a pixel routine
// returning an output mask wider than its input coverage mask). Every
// other failure kind is absorbed by the layer that detects it and
// returned or logged, never passed to fatal.
func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	Logger().Error(msg)
	fmt.Fprintln(os.Stderr, "swr: fatal: "+msg)
	os.Exit(1)
}

package decomp

import "errors"

// Fatal error kinds produced by the core decompressor (spec §7). All are
// terminal: on any of these, Decompress returns no output.
var (
	// ErrTruncatedInput is returned when the compressed payload is shorter
	// than the fixed 9-byte prefix (length + ignored byte + initial value).
	ErrTruncatedInput = errors.New("mischief: truncated compressed payload")

	// ErrEmptyHistory is returned when a reference token is decoded while
	// the output buffer is still empty.
	ErrEmptyHistory = errors.New("mischief: reference with empty output history")

	// ErrBadDistance is part of the core's documented error surface (spec
	// §7) but is not reachable from this implementation: the only source
	// of a degenerate distance value is the long-distance raw-bit path's
	// all-ones sentinel, which is handled as a clean stream terminator
	// (see the EndOfStream handling in Decompress) rather than as this
	// error.
	ErrBadDistance = errors.New("mischief: distance code resolved to an invalid value")

	// ErrStreamOverflow is returned when a copy would push the output past
	// its announced length.
	ErrStreamOverflow = errors.New("mischief: copy exceeds announced length")

	// ErrStreamUnderflow is returned when the stream terminates (via the
	// end-of-stream distance sentinel) before reaching the announced
	// length.
	ErrStreamUnderflow = errors.New("mischief: stream ended before announced length")
)

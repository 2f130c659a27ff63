package bits

import "errors"

// ErrUnaryOverflow is returned by ReadUnary when a unary run exceeds the
// caller-supplied bound, guarding against a corrupted bitstream (e.g. a
// run of all one-bits) hanging the decoder. See spec.md §9,
// "Unbounded Rice unary prefix".
var ErrUnaryOverflow = errors.New("bits: unary run exceeds maximum")

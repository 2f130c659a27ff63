package sparse

import "errors"

// ErrTruncated is returned by Deserialize when buf is too short to contain
// the header or the declared number of value/index entries.
var ErrTruncated = errors.New("sparse: truncated input")

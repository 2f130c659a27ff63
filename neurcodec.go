// Package neurcodec compresses and decompresses single-channel 16-bit
// integer signal recordings into a compact, self-describing container. It
// exposes three operating modes built from the same coding stages a FLAC
// stream composes (prediction, entropy coding, bit-exact framing): a
// strictly lossless mode (LPC + Rice), a lossy event-quantization mode
// (RMS detection + VQ), and an "elite" lossless mode that stacks LPC,
// sparse residual coding, and rANS entropy coding for higher ratio on
// sparse residuals.
package neurcodec

import "errors"

// Magic is the 4-byte signature that marks the beginning of a neurcodec
// container: "NEUR".
var Magic = [4]byte{'N', 'E', 'U', 'R'}

// Container version bytes selecting the body schema.
const (
	VersionLossless = 1
	VersionEvents   = 4
	VersionElite    = 5
)

// Mode selects the encoding pipeline.
type Mode int

const (
	ModeLossless Mode = iota
	ModeEvents
	ModeElite
)

// Options configures an encode call.
type Options struct {
	// Order is the LPC predictor order used by ModeLossless and ModeElite.
	Order int
	// BlockSize is the number of samples per block used by ModeLossless
	// and ModeElite.
	BlockSize int
	// ThresholdMultiplier is the RMS threshold multiplier used by
	// ModeEvents. It is not round-tripped through the container; decode
	// always reconstructs the codebook with eventsDecodeThreshold.
	ThresholdMultiplier float32
}

// DefaultOptions mirrors the CLI surface's default flag values
// (order=8, block-size=32, threshold=6.0).
func DefaultOptions() Options {
	return Options{Order: 8, BlockSize: 32, ThresholdMultiplier: 6.0}
}

// eventsDecodeThreshold is the threshold multiplier decode always uses to
// reconstruct the VQ codebook for ModeEvents containers, regardless of the
// multiplier the encoder used (spec.md §4.6, "Events-mode threshold is not
// round-tripped").
const eventsDecodeThreshold = 4.0

// Header carries the container's stream metadata.
type Header struct {
	SampleRate    uint32
	Channels      uint16
	BitsPerSample uint16
	TotalSamples  uint64
}

var (
	// ErrBadMagic is returned when a container's leading 4 bytes are not
	// "NEUR".
	ErrBadMagic = errors.New("neurcodec: bad magic")
	// ErrBadVersion is returned when a container's version byte is not
	// one of {1, 4, 5}.
	ErrBadVersion = errors.New("neurcodec: unsupported container version")
	// ErrTruncated is returned when a header or block prefix cannot be
	// read in full.
	ErrTruncated = errors.New("neurcodec: truncated container")
)

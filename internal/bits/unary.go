package bits

import "github.com/icza/bitio"

// WriteUnary writes q as a run of q one-bits terminated by a single
// zero-bit, writing to bw.
func WriteUnary(bw *bitio.Writer, q uint64) error {
	for ; q > 0; q-- {
		if err := bw.WriteBool(true); err != nil {
			return err
		}
	}

	return bw.WriteBool(false)
}

// ReadUnary reads a run of one-bits terminated by a zero-bit from br and
// returns the number of one-bits read.
//
// max bounds the number of one-bits ReadUnary is willing to consume before
// giving up with ErrUnaryOverflow; a corrupted bitstream of all one-bits
// would otherwise make ReadUnary loop until the underlying reader is
// exhausted. Pass 0 for no bound.
func ReadUnary(br *bitio.Reader, max uint64) (uint64, error) {
	var q uint64
	for {
		bit, err := br.ReadBool()
		if err != nil {
			return 0, err
		}

		if !bit {
			return q, nil
		}

		q++
		if max > 0 && q > max {
			return 0, ErrUnaryOverflow
		}
	}
}

// Package rice implements Golomb-Rice entropy coding of signed residuals,
// the way FLAC subframes Rice-code their LPC residuals, adapted to code a
// flat residual vector against a single per-block parameter k rather than
// FLAC's partitioned scheme.
package rice

import (
	"bytes"
	"errors"
	"io"
	"math"

	"github.com/icza/bitio"
	"github.com/neurcodec/neurcodec/internal/bits"
)

// MaxK is the largest Rice parameter ChooseK selects.
const MaxK = 15

// maxUnaryRun bounds the unary run Decode is willing to read per residual,
// guarding against an unbounded quotient from a corrupted stream or a
// pathological LPC fit. See spec.md §9, "Unbounded Rice unary prefix".
const maxUnaryRun = 1 << 24

// ErrBitstreamUnderflow is returned when the bitstream runs out of bits
// before the requested number of residuals has been decoded.
var ErrBitstreamUnderflow = errors.New("rice: bitstream underflow")

// Encode Rice-codes residuals using parameter k, returning a byte-aligned
// buffer. Each residual v is ZigZag-mapped to u, split into a quotient
// q = u>>k written as q one-bits followed by a terminating zero-bit, and a
// remainder r = u&(2^k-1) written as k bits, most-significant-bit first.
// The output is padded with zero bits to the next byte boundary.
func Encode(residuals []int32, k uint) ([]byte, error) {
	buf := &bytes.Buffer{}
	bw := bitio.NewWriter(buf)

	for _, v := range residuals {
		u := bits.EncodeZigZag(v)
		q := uint64(u >> k)
		r := uint64(u) & (1<<k - 1)

		if err := bits.WriteUnary(bw, q); err != nil {
			return nil, err
		}

		if k > 0 {
			if err := bw.WriteBits(r, uint8(k)); err != nil {
				return nil, err
			}
		}
	}

	if err := bw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode reconstructs count residuals Rice-coded with parameter k from data.
func Decode(data []byte, count int, k uint) ([]int32, error) {
	br := bitio.NewReader(bytes.NewReader(data))
	residuals := make([]int32, count)

	for i := 0; i < count; i++ {
		q, err := bits.ReadUnary(br, maxUnaryRun)
		if err != nil {
			if err == bits.ErrUnaryOverflow {
				return nil, err
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, ErrBitstreamUnderflow
			}
			return nil, err
		}

		var r uint64
		if k > 0 {
			r, err = br.ReadBits(uint8(k))
			if err != nil {
				if err == io.EOF {
					return nil, ErrBitstreamUnderflow
				}
				return nil, err
			}
		}

		u := uint32(q<<k) | uint32(r)
		residuals[i] = bits.DecodeZigZag(u)
	}

	return residuals, nil
}

// ChooseK picks the Rice parameter for a block of residuals as
// clamp(floor(log2(mean(|r|))), 0, MaxK), or 0 if the mean is zero.
func ChooseK(residuals []int32) uint {
	if len(residuals) == 0 {
		return 0
	}

	var sum float64
	for _, v := range residuals {
		if v < 0 {
			sum += float64(-v)
		} else {
			sum += float64(v)
		}
	}

	mean := sum / float64(len(residuals))
	if mean <= 0 {
		return 0
	}

	k := int(math.Floor(math.Log2(mean)))
	if k < 0 {
		k = 0
	}
	if k > MaxK {
		k = MaxK
	}

	return uint(k)
}

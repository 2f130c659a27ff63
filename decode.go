package neurcodec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/neurcodec/neurcodec/lpc"
	"github.com/neurcodec/neurcodec/rans"
	"github.com/neurcodec/neurcodec/rice"
	"github.com/neurcodec/neurcodec/sparse"
	"github.com/neurcodec/neurcodec/spike"
)

// Decode reads a neurcodec container from r and returns the reconstructed
// samples and stream header. The pipeline used is selected by the
// container's version byte; unknown versions are a fatal error.
func Decode(r io.Reader) ([]int32, Header, error) {
	version, h, err := readHeader(r)
	if err != nil {
		return nil, Header{}, err
	}

	switch version {
	case VersionLossless:
		samples, err := decodeBlocked(r, h.TotalSamples, decodeRiceBlock)
		return samples, h, err
	case VersionElite:
		samples, err := decodeBlocked(r, h.TotalSamples, decodeRansBlock)
		return samples, h, err
	case VersionEvents:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, Header{}, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		coder := spike.NewCoder(eventsDecodeThreshold)
		samples, err := coder.Decode(data, int(h.TotalSamples))
		if err != nil {
			return nil, Header{}, err
		}
		return samples, h, nil
	default:
		return nil, Header{}, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}
}

func readCoeffs(r io.Reader, order int) ([]float64, error) {
	buf := make([]byte, 8*order)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	coeffs := make([]float64, order)
	for i := range coeffs {
		coeffs[i] = math.Float64frombits(binary.BigEndian.Uint64(buf[i*8 : i*8+8]))
	}
	return coeffs, nil
}

// decodeBlocked reads repeated blocks until totalSamples have been
// reconstructed, delegating each block's own framing and residual-recovery
// to decodeBlock.
func decodeBlocked(r io.Reader, totalSamples uint64, decodeBlock func(r io.Reader) ([]int32, error)) ([]int32, error) {
	out := make([]int32, 0, totalSamples)

	var samplesRead uint64
	for samplesRead < totalSamples {
		signal, err := decodeBlock(r)
		if err != nil {
			return nil, err
		}

		out = append(out, signal...)
		samplesRead += uint64(len(signal))
	}

	return out, nil
}

// decodeRiceBlock reads a v1 block: block_size:u32 | order:u8 | k:u8 |
// coeffs:order×f64 BE | data_len:u32 | rice_bytes, matching encodeLossless.
func decodeRiceBlock(r io.Reader) ([]int32, error) {
	var prefix [4 + 1 + 1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	blockSize := int(binary.BigEndian.Uint32(prefix[0:4]))
	order := int(prefix[4])
	k := uint(prefix[5])

	coeffs, err := readCoeffs(r, order)
	if err != nil {
		return nil, err
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	dataLen := binary.BigEndian.Uint32(lenBuf[:])

	data := make([]byte, dataLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	residuals, err := rice.Decode(data, blockSize, k)
	if err != nil {
		return nil, err
	}

	return lpc.RestoreSignal(residuals, coeffs), nil
}

// decodeRansBlock reads a v5 block: block_size:u32 | order:u8 |
// coeffs:order×f64 BE | data_len:u32 | rans_bytes, matching encodeElite.
func decodeRansBlock(r io.Reader) ([]int32, error) {
	var prefix [4 + 1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	order := int(prefix[4])

	coeffs, err := readCoeffs(r, order)
	if err != nil {
		return nil, err
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	dataLen := binary.BigEndian.Uint32(lenBuf[:])

	data := make([]byte, dataLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	serialized, err := rans.Decode(data, 0)
	if err != nil {
		return nil, err
	}

	sparseData, err := sparse.Deserialize(serialized)
	if err != nil {
		return nil, err
	}

	residuals := sparse.Decode(sparseData)
	return lpc.RestoreSignal(residuals, coeffs), nil
}

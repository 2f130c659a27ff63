package neurcodec

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/neurcodec/neurcodec/lpc"
	"github.com/neurcodec/neurcodec/rans"
	"github.com/neurcodec/neurcodec/rice"
	"github.com/neurcodec/neurcodec/sparse"
	"github.com/neurcodec/neurcodec/spike"
)

// Encode writes samples to w as a neurcodec container using the pipeline
// selected by mode.
func Encode(w io.Writer, samples []int32, h Header, mode Mode, opts Options) error {
	h.TotalSamples = uint64(len(samples))

	switch mode {
	case ModeLossless:
		if err := writeHeader(w, VersionLossless, h); err != nil {
			return err
		}
		return encodeLossless(w, samples, opts.Order, opts.BlockSize)
	case ModeEvents:
		if err := writeHeader(w, VersionEvents, h); err != nil {
			return err
		}
		coder := spike.NewCoder(opts.ThresholdMultiplier)
		_, err := w.Write(coder.Encode(samples))
		return err
	case ModeElite:
		if err := writeHeader(w, VersionElite, h); err != nil {
			return err
		}
		return encodeElite(w, samples, opts.Order, opts.BlockSize)
	default:
		return ErrBadVersion
	}
}

func writeCoeffs(w io.Writer, coeffs []float64) error {
	buf := make([]byte, 8*len(coeffs))
	for i, c := range coeffs {
		binary.BigEndian.PutUint64(buf[i*8:i*8+8], math.Float64bits(c))
	}
	_, err := w.Write(buf)
	return err
}

func encodeLossless(w io.Writer, samples []int32, order, blockSize int) error {
	for start := 0; start < len(samples); start += blockSize {
		end := start + blockSize
		if end > len(samples) {
			end = len(samples)
		}
		chunk := samples[start:end]

		autocorr := lpc.Autocorrelation(chunk, order)
		coeffs := lpc.LevinsonDurbin(autocorr, order)
		residuals := lpc.ComputeResiduals(chunk, coeffs)
		k := rice.ChooseK(residuals)

		encoded, err := rice.Encode(residuals, k)
		if err != nil {
			return err
		}

		hdr := make([]byte, 4+1+1)
		binary.BigEndian.PutUint32(hdr[0:4], uint32(len(chunk)))
		hdr[4] = uint8(order)
		hdr[5] = uint8(k)
		if _, err := w.Write(hdr); err != nil {
			return err
		}

		if err := writeCoeffs(w, coeffs); err != nil {
			return err
		}

		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(encoded)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}

		if _, err := w.Write(encoded); err != nil {
			return err
		}
	}

	return nil
}

func encodeElite(w io.Writer, samples []int32, order, blockSize int) error {
	for start := 0; start < len(samples); start += blockSize {
		end := start + blockSize
		if end > len(samples) {
			end = len(samples)
		}
		chunk := samples[start:end]

		autocorr := lpc.Autocorrelation(chunk, order)
		coeffs := lpc.LevinsonDurbin(autocorr, order)
		residuals := lpc.ComputeResiduals(chunk, coeffs)

		sparseData := sparse.Encode(residuals)
		serialized, err := sparse.Serialize(sparseData)
		if err != nil {
			return err
		}

		compressed, err := rans.Encode(serialized)
		if err != nil {
			return err
		}

		hdr := make([]byte, 4+1)
		binary.BigEndian.PutUint32(hdr[0:4], uint32(len(chunk)))
		hdr[4] = uint8(order)
		if _, err := w.Write(hdr); err != nil {
			return err
		}

		if err := writeCoeffs(w, coeffs); err != nil {
			return err
		}

		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(compressed)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}

		if _, err := w.Write(compressed); err != nil {
			return err
		}
	}

	return nil
}

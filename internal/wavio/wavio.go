// Package wavio adapts between WAV files and the flat int32 sample slices
// neurcodec's coding pipelines operate on, the way mewkiz-flac's wav2flac
// command bridges a WAV front-end onto a FLAC encoder.
package wavio

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/neurcodec/neurcodec"
)

// ErrUnsupportedFormat is returned when a WAV file is not mono 16-bit PCM,
// the only input neurcodec's pipelines accept (spec.md §1, "single-channel
// 16-bit signal").
var ErrUnsupportedFormat = errors.New("wavio: only mono 16-bit PCM WAV is supported")

// Read decodes a mono 16-bit PCM WAV stream into a neurcodec header and
// sample slice.
func Read(r io.Reader) ([]int32, neurcodec.Header, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, neurcodec.Header{}, fmt.Errorf("wavio: read input: %w", err)
		}
		rs = &seekableBuffer{data: data}
	}

	decoder := wav.NewDecoder(rs)
	if !decoder.IsValidFile() {
		return nil, neurcodec.Header{}, fmt.Errorf("wavio: invalid WAV file")
	}

	if err := decoder.FwdToPCM(); err != nil {
		return nil, neurcodec.Header{}, fmt.Errorf("wavio: seek to PCM chunk: %w", err)
	}

	if decoder.NumChans != 1 || decoder.BitDepth != 16 {
		return nil, neurcodec.Header{}, fmt.Errorf("%w: channels=%d bit_depth=%d", ErrUnsupportedFormat, decoder.NumChans, decoder.BitDepth)
	}

	format := &audio.Format{SampleRate: int(decoder.SampleRate), NumChannels: 1}
	samples := make([]int32, 0, 4096)

	const chunkSize = 4096
	chunk := &audio.IntBuffer{Data: make([]int, chunkSize), Format: format}

	for {
		n, err := decoder.PCMBuffer(chunk)
		if err != nil {
			return nil, neurcodec.Header{}, fmt.Errorf("wavio: decode PCM: %w", err)
		}
		if n == 0 {
			break
		}
		for _, s := range chunk.Data[:n] {
			samples = append(samples, int32(s))
		}
	}

	h := neurcodec.Header{
		SampleRate:    decoder.SampleRate,
		Channels:      1,
		BitsPerSample: 16,
	}

	return samples, h, nil
}

// Write encodes samples as a mono 16-bit PCM WAV stream.
func Write(w io.WriteSeeker, samples []int32, h neurcodec.Header) error {
	enc := wav.NewEncoder(w, int(h.SampleRate), 16, 1, 1)

	buf := &audio.IntBuffer{
		Data:   make([]int, len(samples)),
		Format: &audio.Format{SampleRate: int(h.SampleRate), NumChannels: 1},
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write PCM: %w", err)
	}

	return enc.Close()
}

// seekableBuffer adapts a fully-buffered byte slice to io.ReadSeeker for
// inputs that do not natively support seeking.
type seekableBuffer struct {
	data []byte
	pos  int64
}

func (s *seekableBuffer) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *seekableBuffer) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = s.pos + offset
	case io.SeekEnd:
		newPos = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("wavio: invalid whence %d", whence)
	}
	if newPos < 0 {
		return 0, fmt.Errorf("wavio: negative seek position")
	}
	s.pos = newPos
	return newPos, nil
}

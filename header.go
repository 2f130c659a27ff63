package neurcodec

import (
	"encoding/binary"
	"fmt"
	"io"
)

// headerSize is the fixed byte length of the container header: magic(4) +
// version(4) + sample_rate(4) + channels(2) + bits_per_sample(2) +
// total_samples(8).
const headerSize = 4 + 4 + 4 + 2 + 2 + 8

func writeHeader(w io.Writer, version uint32, h Header) error {
	buf := make([]byte, headerSize)
	copy(buf[0:4], Magic[:])
	binary.BigEndian.PutUint32(buf[4:8], version)
	binary.BigEndian.PutUint32(buf[8:12], h.SampleRate)
	binary.BigEndian.PutUint16(buf[12:14], h.Channels)
	binary.BigEndian.PutUint16(buf[14:16], h.BitsPerSample)
	binary.BigEndian.PutUint64(buf[16:24], h.TotalSamples)

	_, err := w.Write(buf)
	return err
}

func readHeader(r io.Reader) (version uint32, h Header, err error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, Header{}, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	if buf[0] != Magic[0] || buf[1] != Magic[1] || buf[2] != Magic[2] || buf[3] != Magic[3] {
		return 0, Header{}, fmt.Errorf("%w: got %q", ErrBadMagic, buf[0:4])
	}

	version = binary.BigEndian.Uint32(buf[4:8])
	h.SampleRate = binary.BigEndian.Uint32(buf[8:12])
	h.Channels = binary.BigEndian.Uint16(buf[12:14])
	h.BitsPerSample = binary.BigEndian.Uint16(buf[14:16])
	h.TotalSamples = binary.BigEndian.Uint64(buf[16:24])

	return version, h, nil
}

// Package spike implements the lossy spike-event coder: RMS-based
// threshold detection of event windows and nearest-template vector
// quantization against a deterministically generated codebook, the way a
// FLAC-style subframe predictor is chosen per block except here the "model"
// selected per window is a codebook index rather than a predictor order.
package spike

import (
	"encoding/binary"
	"errors"
	"math"
)

// SnippetLen is the fixed length, in samples, of an extracted event
// snippet and of each codebook template.
const SnippetLen = 16

// CodebookSize is the fixed number of templates in the VQ codebook.
const CodebookSize = 256

// ErrTruncated is returned when encoded event data is too short to contain
// its declared header or event list.
var ErrTruncated = errors.New("spike: truncated input")

// Event is one detected spike: an absolute sample timestamp (used only
// during encoding to compute deltas) paired with the index of its nearest
// codebook template.
type Event struct {
	Timestamp   uint32
	TemplateIdx uint8
}

// Coder holds the deterministic VQ codebook for the lifetime of a spike
// compression session; it carries no other mutable state.
type Coder struct {
	thresholdMultiplier float32
	codebook            [CodebookSize][SnippetLen]int16
}

// NewCoder builds a Coder with the deterministic codebook template[i][j] =
// round((i/128 - 1) * sin(2π*j/16) * 1000) and the given RMS threshold
// multiplier.
func NewCoder(thresholdMultiplier float32) *Coder {
	c := &Coder{thresholdMultiplier: thresholdMultiplier}
	for i := 0; i < CodebookSize; i++ {
		for j := 0; j < SnippetLen; j++ {
			phase := (float64(j) / float64(SnippetLen)) * 2 * math.Pi
			val := (float64(i)/128.0 - 1.0) * math.Sin(phase) * 1000.0
			c.codebook[i][j] = int16(math.Round(val))
		}
	}
	return c
}

// quantize returns the index of the codebook template minimizing squared
// Euclidean distance to snippet, breaking ties toward the lowest index.
func (c *Coder) quantize(snippet [SnippetLen]int16) uint8 {
	bestIdx := 0
	minDist := math.MaxFloat64

	for idx := 0; idx < CodebookSize; idx++ {
		var dist float64
		for j := 0; j < SnippetLen; j++ {
			d := float64(snippet[j]) - float64(c.codebook[idx][j])
			dist += d * d
		}
		if dist < minDist {
			minDist = dist
			bestIdx = idx
		}
	}

	return uint8(bestIdx)
}

// Encode scans samples left to right, detects events where |x[i]| exceeds
// rms*thresholdMultiplier, quantizes a 16-sample snippet around each event,
// and returns rms:f32 BE | event_count:u32 BE | event_count ×
// (delta_ts:u32 BE, template_idx:u8).
func (c *Coder) Encode(samples []int32) []byte {
	rms := computeRMS(samples)
	threshold := float64(rms) * float64(c.thresholdMultiplier)

	var events []Event
	n := len(samples)
	for i := 0; i < n; {
		if math.Abs(float64(samples[i])) > threshold {
			start := i - SnippetLen/2
			if start < 0 {
				start = 0
			}

			var snippet [SnippetLen]int16
			for j := 0; j < SnippetLen; j++ {
				idx := start + j
				if idx >= n {
					idx = n - 1
				}
				snippet[j] = int16(samples[idx])
			}

			events = append(events, Event{Timestamp: uint32(i), TemplateIdx: c.quantize(snippet)})
			i += SnippetLen
		} else {
			i++
		}
	}

	buf := make([]byte, 0, 8+len(events)*5)
	var f32Buf [4]byte
	binary.BigEndian.PutUint32(f32Buf[:], math.Float32bits(rms))
	buf = append(buf, f32Buf[:]...)

	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(events)))
	buf = append(buf, countBuf[:]...)

	var lastTS uint32
	for _, e := range events {
		var deltaBuf [4]byte
		binary.BigEndian.PutUint32(deltaBuf[:], e.Timestamp-lastTS)
		buf = append(buf, deltaBuf[:]...)
		buf = append(buf, e.TemplateIdx)
		lastTS = e.Timestamp
	}

	return buf
}

// Decode reconstructs a lossy approximation of the original samples: a
// zero-filled vector of totalSamples entries with each event's codebook
// template written at max(0, ts-8); overlapping writes overwrite prior
// values, last write wins.
func (c *Coder) Decode(data []byte, totalSamples int) ([]int32, error) {
	out := make([]int32, totalSamples)

	if len(data) < 8 {
		if len(data) == 0 {
			return out, nil
		}
		return nil, ErrTruncated
	}

	eventCount := binary.BigEndian.Uint32(data[4:8])

	pos := 8
	var ts uint32
	for i := uint32(0); i < eventCount; i++ {
		if pos+5 > len(data) {
			return nil, ErrTruncated
		}

		delta := binary.BigEndian.Uint32(data[pos : pos+4])
		idx := data[pos+4]
		pos += 5

		ts += delta
		start := int(ts) - SnippetLen/2
		if start < 0 {
			start = 0
		}

		template := c.codebook[idx]
		for j := 0; j < SnippetLen; j++ {
			if start+j < totalSamples {
				out[start+j] = int32(template[j])
			}
		}
	}

	return out, nil
}

func computeRMS(samples []int32) float32 {
	if len(samples) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range samples {
		sumSq += float64(x) * float64(x)
	}

	return float32(math.Sqrt(sumSq / float64(len(samples))))
}

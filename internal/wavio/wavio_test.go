package wavio_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/neurcodec/neurcodec"
	"github.com/neurcodec/neurcodec/internal/wavio"
)

func TestRoundTrip(t *testing.T) {
	samples := make([]int32, 256)
	for i := range samples {
		samples[i] = int32(i%2000) - 1000
	}
	h := neurcodec.Header{SampleRate: 8000, Channels: 1, BitsPerSample: 16}

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := wavio.Write(f, samples, h); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err = os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	decoded, gotHeader, err := wavio.Read(f)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if gotHeader.SampleRate != h.SampleRate {
		t.Errorf("SampleRate = %d, want %d", gotHeader.SampleRate, h.SampleRate)
	}
	if gotHeader.Channels != 1 || gotHeader.BitsPerSample != 16 {
		t.Errorf("unexpected header: %+v", gotHeader)
	}

	if !reflect.DeepEqual(samples, decoded) {
		t.Fatalf("round-trip mismatch")
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	enc := wav.NewEncoder(f, 8000, 16, 2, 1)
	buf := &audio.IntBuffer{
		Data:   []int{1, -1, 2, -2},
		Format: &audio.Format{SampleRate: 8000, NumChannels: 2},
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	f.Close()

	f, err = os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if _, _, err := wavio.Read(f); err == nil {
		t.Fatalf("expected ErrUnsupportedFormat for stereo input")
	}
}

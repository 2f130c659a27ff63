package rice_test

import (
	"reflect"
	"testing"

	"github.com/neurcodec/neurcodec/rice"
)

func TestRoundTrip(t *testing.T) {
	residuals := []int32{0, 1, -1, 2, -2, 100, -100, 1 << 19, -(1 << 19)}
	for k := uint(0); k <= rice.MaxK; k++ {
		encoded, err := rice.Encode(residuals, k)
		if err != nil {
			t.Fatalf("k=%d: Encode: %v", k, err)
		}

		got, err := rice.Decode(encoded, len(residuals), k)
		if err != nil {
			t.Fatalf("k=%d: Decode: %v", k, err)
		}

		if !reflect.DeepEqual(residuals, got) {
			t.Errorf("k=%d: round trip mismatch; want %v, got %v", k, residuals, got)
		}
	}
}

// S5: encode_rice([0, 1, -1, 2, -2], k=0) decodes identically.
func TestS5ZeroK(t *testing.T) {
	residuals := []int32{0, 1, -1, 2, -2}
	encoded, err := rice.Encode(residuals, 0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := rice.Decode(encoded, 5, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !reflect.DeepEqual(residuals, got) {
		t.Fatalf("mismatch; want %v, got %v", residuals, got)
	}
}

func TestByteAligned(t *testing.T) {
	encoded, err := rice.Encode([]int32{1, 2, 3}, 2)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// ZigZag maps {1, 2, 3} to {2, 4, 6}; with k=2 that is 3+4+4 = 11 bits,
	// padded with zero bits to a whole number of bytes: 2.
	if len(encoded) != 2 {
		t.Fatalf("expected 11 bits padded to 2 bytes, got %d bytes", len(encoded))
	}
}

func TestChooseK(t *testing.T) {
	if got := rice.ChooseK(nil); got != 0 {
		t.Errorf("ChooseK(nil) = %d, want 0", got)
	}
	if got := rice.ChooseK([]int32{0, 0, 0}); got != 0 {
		t.Errorf("ChooseK(zeros) = %d, want 0", got)
	}
	if got := rice.ChooseK([]int32{8, 8, 8}); got != 3 {
		t.Errorf("ChooseK({8,8,8}) = %d, want 3", got)
	}
}

func TestUnderflow(t *testing.T) {
	if _, err := rice.Decode([]byte{}, 1, 2); err == nil {
		t.Fatalf("expected error decoding from empty data")
	}
}

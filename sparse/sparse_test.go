package sparse_test

import (
	"reflect"
	"testing"

	"github.com/neurcodec/neurcodec/sparse"
)

func TestRoundTrip(t *testing.T) {
	x := []int32{0, 5, 0, 0, -3, 0, 7, 0}
	data := sparse.Encode(x)
	got := sparse.Decode(data)
	if !reflect.DeepEqual(x, got) {
		t.Fatalf("round trip mismatch; want %v, got %v", x, got)
	}
}

func TestRoundTripAllZero(t *testing.T) {
	x := make([]int32, 16)
	data := sparse.Encode(x)
	if len(data.Values) != 0 {
		t.Fatalf("expected no nonzero values, got %d", len(data.Values))
	}
	got := sparse.Decode(data)
	if !reflect.DeepEqual(x, got) {
		t.Fatalf("round trip mismatch for all-zero input")
	}
}

func TestDecodeIgnoresOutOfRangeIndex(t *testing.T) {
	data := sparse.Data{
		Values:      []int32{1, 2},
		Indices:     []uint32{0, 100},
		OriginalLen: 4,
	}
	got := sparse.Decode(data)
	want := []int32{1, 0, 0, 0}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	x := []int32{0, 5, 0, 0, -3, 0, 7, 0}
	data := sparse.Encode(x)

	buf, err := sparse.Serialize(data)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := sparse.Deserialize(buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if !reflect.DeepEqual(data, got) {
		t.Fatalf("serialize round trip mismatch; want %+v, got %+v", data, got)
	}
}

func TestSerializeStrictRange(t *testing.T) {
	sparse.StrictRange = true
	defer func() { sparse.StrictRange = false }()

	data := sparse.Data{
		Values:      []int32{1 << 20},
		Indices:     []uint32{0},
		OriginalLen: 1,
	}

	if _, err := sparse.Serialize(data); err == nil {
		t.Fatalf("expected out-of-range error under StrictRange")
	}
}

func TestDeserializeTruncated(t *testing.T) {
	if _, err := sparse.Deserialize([]byte{0, 0}); err != sparse.ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

package sparse

import (
	"encoding/binary"

	"github.com/neurcodec/neurcodec/internal/bits"
)

// StrictRange, when set, makes Serialize return ErrValueOutOfRange instead
// of silently wrapping a residual whose ZigZag representation does not fit
// in 16 bits. Off by default so the wire format stays bit-exact with the
// legacy container layout described in spec.md §4.4/§9; callers that want
// the "surface an explicit error" behavior the spec recommends as an open
// issue resolution opt in by setting this to true before encoding.
var StrictRange = false

// ErrValueOutOfRange is returned by Serialize, under StrictRange, when a
// residual's ZigZag value does not fit in 16 bits.
type ErrValueOutOfRange struct {
	Value int32
}

func (e *ErrValueOutOfRange) Error() string {
	return "sparse: residual value out of representable range for 16-bit serialization"
}

// Serialize packs sparse data into the fixed big-endian wire layout:
//
//	original_len:u32 | count:u32 | count × value:u16 | count × index:u32
//
// Values are ZigZag-mapped then truncated to their low 16 bits; a residual
// whose ZigZag magnitude exceeds 16 bits silently wraps unless StrictRange
// is set (spec.md §4.4, §9).
func Serialize(data Data) ([]byte, error) {
	count := len(data.Values)
	out := make([]byte, 8+count*2+count*4)

	binary.BigEndian.PutUint32(out[0:4], data.OriginalLen)
	binary.BigEndian.PutUint32(out[4:8], uint32(count))

	valOff := 8
	idxOff := 8 + count*2
	for i := 0; i < count; i++ {
		u := bits.EncodeZigZag(data.Values[i])
		if StrictRange && u > 0xFFFF {
			return nil, &ErrValueOutOfRange{Value: data.Values[i]}
		}
		binary.BigEndian.PutUint16(out[valOff+i*2:valOff+i*2+2], uint16(u))
		binary.BigEndian.PutUint32(out[idxOff+i*4:idxOff+i*4+4], data.Indices[i])
	}

	return out, nil
}

// Deserialize reverses Serialize.
func Deserialize(buf []byte) (Data, error) {
	if len(buf) < 8 {
		return Data{}, ErrTruncated
	}

	originalLen := binary.BigEndian.Uint32(buf[0:4])
	count := int(binary.BigEndian.Uint32(buf[4:8]))

	valOff := 8
	idxOff := 8 + count*2
	if len(buf) < idxOff+count*4 {
		return Data{}, ErrTruncated
	}

	data := Data{OriginalLen: originalLen}
	data.Values = make([]int32, count)
	data.Indices = make([]uint32, count)

	for i := 0; i < count; i++ {
		u := uint32(binary.BigEndian.Uint16(buf[valOff+i*2 : valOff+i*2+2]))
		data.Values[i] = bits.DecodeZigZag(u)
		data.Indices[i] = binary.BigEndian.Uint32(buf[idxOff+i*4 : idxOff+i*4+4])
	}

	return data, nil
}

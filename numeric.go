package ndchunk

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
)

// elementsToBytes lays out src as a little-endian byte buffer, the in-memory
// convention this package uses before any layout-specific byte-order
// normalization (applied afterward, via utils.SwapElementBytes).
func elementsToBytes[T Numeric](src []T) []byte {
	width := dtypeOf[T]().ByteWidth()
	out := make([]byte, len(src)*width)
	encodeElements(out, src)
	return out
}

// encodeElements encodes src into dst, which must be exactly
// len(src)*sizeof(T) bytes. Split out from elementsToBytes so callers can
// encode into a pooled scratch buffer.
func encodeElements[T Numeric](dst []byte, src []T) {
	width := dtypeOf[T]().ByteWidth()
	for i, v := range src {
		putElement(dst[i*width:(i+1)*width], v)
	}
}

// bytesToElements decodes a little-endian byte buffer into dst, the inverse
// of elementsToBytes. len(data) must equal len(dst)*sizeof(T).
func bytesToElements[T Numeric](data []byte, dst []T) error {
	width := dtypeOf[T]().ByteWidth()
	if len(data) != len(dst)*width {
		return fmt.Errorf("byte length %d does not match %d elements of width %d", len(data), len(dst), width)
	}
	for i := range dst {
		dst[i] = getElement[T](data[i*width : (i+1)*width])
	}
	return nil
}

// putElement encodes one element of T into buf (len(buf) == sizeof(T)),
// little-endian.
func putElement[T Numeric](buf []byte, v T) {
	switch x := any(v).(type) {
	case int8:
		buf[0] = byte(x)
	case uint8:
		buf[0] = x
	case int16:
		binary.LittleEndian.PutUint16(buf, uint16(x))
	case uint16:
		binary.LittleEndian.PutUint16(buf, x)
	case int32:
		binary.LittleEndian.PutUint32(buf, uint32(x))
	case uint32:
		binary.LittleEndian.PutUint32(buf, x)
	case int64:
		binary.LittleEndian.PutUint64(buf, uint64(x))
	case uint64:
		binary.LittleEndian.PutUint64(buf, x)
	case float32:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(x))
	case float64:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(x))
	}
}

// convertFill parses the metadata document's numeric literal fill value
// into the engine's element type T. The literal is kept as a json.Number
// until this point so no precision is lost before the target type is known.
func convertFill[T Numeric](n json.Number) (T, error) {
	var zero T
	if n == "" {
		return zero, nil
	}
	switch any(zero).(type) {
	case float32, float64:
		f, err := n.Float64()
		if err != nil {
			return zero, fmt.Errorf("fill value %q is not a valid float: %w", n, err)
		}
		return any(floatAs[T](f)).(T), nil
	default:
		i, err := n.Int64()
		if err != nil {
			return zero, fmt.Errorf("fill value %q is not a valid integer: %w", n, err)
		}
		return intAs[T](i), nil
	}
}

func floatAs[T Numeric](f float64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(float32(f)).(T)
	default:
		return any(f).(T)
	}
}

func intAs[T Numeric](i int64) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return any(int8(i)).(T)
	case int16:
		return any(int16(i)).(T)
	case int32:
		return any(int32(i)).(T)
	case int64:
		return any(i).(T)
	case uint8:
		return any(uint8(i)).(T)
	case uint16:
		return any(uint16(i)).(T)
	case uint32:
		return any(uint32(i)).(T)
	case uint64:
		return any(uint64(i)).(T)
	case float32:
		return any(float32(i)).(T)
	case float64:
		return any(float64(i)).(T)
	}
	return zero
}

// getElement decodes one element of T from buf (len(buf) == sizeof(T)),
// little-endian.
func getElement[T Numeric](buf []byte) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return any(int8(buf[0])).(T)
	case uint8:
		return any(buf[0]).(T)
	case int16:
		return any(int16(binary.LittleEndian.Uint16(buf))).(T)
	case uint16:
		return any(binary.LittleEndian.Uint16(buf)).(T)
	case int32:
		return any(int32(binary.LittleEndian.Uint32(buf))).(T)
	case uint32:
		return any(binary.LittleEndian.Uint32(buf)).(T)
	case int64:
		return any(int64(binary.LittleEndian.Uint64(buf))).(T)
	case uint64:
		return any(binary.LittleEndian.Uint64(buf)).(T)
	case float32:
		return any(math.Float32frombits(binary.LittleEndian.Uint32(buf))).(T)
	case float64:
		return any(math.Float64frombits(binary.LittleEndian.Uint64(buf))).(T)
	}
	return zero
}

package ndchunk

import "fmt"

// DType is the persisted element type tag. It is independent of the
// in-memory generic parameter T; Dataset[T] checks the two agree at
// construction and on every request via CheckRequestType.
type DType string

// Supported element type tags. These are the exact strings persisted in the
// metadata document's "dtype" key.
const (
	Int8    DType = "int8"
	Int16   DType = "int16"
	Int32   DType = "int32"
	Int64   DType = "int64"
	Uint8   DType = "uint8"
	Uint16  DType = "uint16"
	Uint32  DType = "uint32"
	Uint64  DType = "uint64"
	Float32 DType = "float32"
	Float64 DType = "float64"
)

// ByteWidth returns the element byte width, always a power of two in
// {1, 2, 4, 8}.
func (d DType) ByteWidth() int {
	switch d {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether d is one of the ten recognized dtype tags.
func (d DType) Valid() bool {
	return d.ByteWidth() != 0
}

// ParseDType parses a persisted dtype string. Unknown tags are rejected at
// metadata-load time, before any chunk I/O can happen against them.
func ParseDType(s string) (DType, error) {
	d := DType(s)
	if !d.Valid() {
		return "", fmt.Errorf("unrecognized dtype %q", s)
	}
	return d, nil
}

// Numeric constrains the element types a Dataset[T] may be instantiated
// over: signed/unsigned integers of width 1/2/4/8 bytes, and floats of
// width 4/8 bytes.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// dtypeOf derives the runtime DType tag for a compile-time element type T,
// used to populate Metadata.Dtype at Create and to implement
// CheckRequestType.
func dtypeOf[T Numeric]() DType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		return ""
	}
}

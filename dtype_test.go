package ndchunk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDTypeByteWidth(t *testing.T) {
	cases := []struct {
		dt    DType
		width int
	}{
		{Int8, 1}, {Uint8, 1},
		{Int16, 2}, {Uint16, 2},
		{Int32, 4}, {Uint32, 4}, {Float32, 4},
		{Int64, 8}, {Uint64, 8}, {Float64, 8},
	}
	for _, c := range cases {
		require.Equal(t, c.width, c.dt.ByteWidth(), "%s", c.dt)
	}
	require.Equal(t, 0, DType("bogus").ByteWidth())
}

func TestParseDType(t *testing.T) {
	dt, err := ParseDType("float32")
	require.NoError(t, err)
	require.Equal(t, Float32, dt)

	_, err = ParseDType("complex128")
	require.Error(t, err)
}

func TestDtypeOf(t *testing.T) {
	require.Equal(t, Int8, dtypeOf[int8]())
	require.Equal(t, Int16, dtypeOf[int16]())
	require.Equal(t, Int32, dtypeOf[int32]())
	require.Equal(t, Int64, dtypeOf[int64]())
	require.Equal(t, Uint8, dtypeOf[uint8]())
	require.Equal(t, Uint16, dtypeOf[uint16]())
	require.Equal(t, Uint32, dtypeOf[uint32]())
	require.Equal(t, Uint64, dtypeOf[uint64]())
	require.Equal(t, Float32, dtypeOf[float32]())
	require.Equal(t, Float64, dtypeOf[float64]())
}

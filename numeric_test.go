package ndchunk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementsBytesRoundTrip(t *testing.T) {
	t.Run("int32", func(t *testing.T) {
		src := []int32{1, -2, 3, 2147483647, -2147483648}
		raw := elementsToBytes(src)
		dst := make([]int32, len(src))
		require.NoError(t, bytesToElements(raw, dst))
		require.Equal(t, src, dst)
	})

	t.Run("float64", func(t *testing.T) {
		src := []float64{0, 1.5, -1.5, 3.14159265358979}
		raw := elementsToBytes(src)
		dst := make([]float64, len(src))
		require.NoError(t, bytesToElements(raw, dst))
		require.Equal(t, src, dst)
	})

	t.Run("uint8", func(t *testing.T) {
		src := []uint8{0, 1, 255}
		raw := elementsToBytes(src)
		dst := make([]uint8, len(src))
		require.NoError(t, bytesToElements(raw, dst))
		require.Equal(t, src, dst)
	})
}

func TestBytesToElementsLengthMismatch(t *testing.T) {
	err := bytesToElements([]byte{1, 2, 3}, make([]int32, 1))
	require.Error(t, err)
}

func TestConvertFillInt(t *testing.T) {
	v, err := convertFill[int32](json.Number("-1"))
	require.NoError(t, err)
	require.Equal(t, int32(-1), v)
}

func TestConvertFillFloat(t *testing.T) {
	v, err := convertFill[float32](json.Number("3.5"))
	require.NoError(t, err)
	require.Equal(t, float32(3.5), v)
}

func TestConvertFillEmptyDefaultsToZero(t *testing.T) {
	v, err := convertFill[int16](json.Number(""))
	require.NoError(t, err)
	require.Equal(t, int16(0), v)
}

func TestConvertFillInvalid(t *testing.T) {
	_, err := convertFill[int32](json.Number("not-a-number"))
	require.Error(t, err)

	_, err = convertFill[float32](json.Number("not-a-number"))
	require.Error(t, err)
}

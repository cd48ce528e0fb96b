package ndchunk

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestMetadata(shape, chunks []int64, dtype string) Metadata {
	return Metadata{
		Shape:  shape,
		Chunks: chunks,
		Dtype:  dtype,
	}
}

// TestCreateAlreadyExists checks create-mode construction fails when the
// dataset path exists.
func TestCreateAlreadyExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{10}, []int64{4}, "int32")

	_, err := Create[int32](root, meta)
	require.NoError(t, err)

	_, err = Create[int32](root, meta)
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, ErrAlreadyExists, e.Kind)
}

// TestOpenNotFound checks open-mode construction fails when the path is
// absent.
func TestOpenNotFound(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	_, err := Open[int32](root)
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, ErrNotFound, e.Kind)
}

// TestReadMissingChunkReturnsFillLayoutA checks a never-written chunk
// reads back as the fill value: shape=(10,), chunkShape=(4,), fill=-1.
func TestReadMissingChunkReturnsFillLayoutA(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{10}, []int64{4}, "int32")
	meta.FillValue = "-1"

	ds, err := Create[int32](root, meta)
	require.NoError(t, err)

	buf := make([]int32, 4)
	require.NoError(t, ds.ReadChunk(ChunkID{2}, buf))
	require.Equal(t, []int32{-1, -1, -1, -1}, buf)
}

// TestReadMissingChunkReturnsFillLayoutB does the same under layout B,
// where the last chunk has actual size 2.
func TestReadMissingChunkReturnsFillLayoutB(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{10}, []int64{4}, "int32")
	meta.FillValue = "-1"

	ds, err := Create[int32](root, meta, WithLayoutB())
	require.NoError(t, err)

	buf := make([]int32, 2)
	require.NoError(t, ds.ReadChunk(ChunkID{2}, buf))
	require.Equal(t, []int32{-1, -1}, buf)
}

// TestWriteReadRoundTripLayoutAZlib writes one interior chunk through the
// zlib codec and reads it back.
func TestWriteReadRoundTripLayoutAZlib(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{8, 8}, []int64{4, 4}, "int16")

	ds, err := Create[int16](root, meta, WithCodec("zlib", CodecParams{Level: 5}))
	require.NoError(t, err)

	src := make([]int16, 16)
	for i := range src {
		src[i] = int16(i)
	}
	require.NoError(t, ds.WriteChunk(ChunkID{1, 1}, src))

	dst := make([]int16, 16)
	require.NoError(t, ds.ReadChunk(ChunkID{1, 1}, dst))
	require.Equal(t, src, dst)
}

// TestRoundTripAllCodecsAndLayouts sweeps every codec tag across both
// layouts on a boundary chunk.
func TestRoundTripAllCodecsAndLayouts(t *testing.T) {
	codecs := []string{"raw", "zlib", "bzip2", "blosc"}
	for _, tag := range codecs {
		for _, layoutB := range []bool{false, true} {
			name := tag + "/layoutA"
			if layoutB {
				name = tag + "/layoutB"
			}
			t.Run(name, func(t *testing.T) {
				root := filepath.Join(t.TempDir(), "ds")
				meta := newTestMetadata([]int64{10, 10}, []int64{4, 4}, "float32")

				opts := []CreateOption{WithCodec(tag, CodecParams{Level: 3, TypeSize: 4})}
				if layoutB {
					opts = append(opts, WithLayoutB())
				}
				ds, err := Create[float32](root, meta, opts...)
				require.NoError(t, err)

				// Chunk (2,2) is a boundary chunk covering rows/cols 8-9: its
				// actual size is 2x2 under layout B and the nominal 4x4 under
				// layout A.
				id := ChunkID{2, 2}
				shape, err := ds.GetChunkShape(id)
				require.NoError(t, err)
				n := shape.product()

				src := make([]float32, n)
				for i := range src {
					src[i] = float32(i) * 1.5
				}
				require.NoError(t, ds.WriteChunk(id, src))

				dst := make([]float32, n)
				require.NoError(t, ds.ReadChunk(id, dst))
				require.Equal(t, src, dst)
			})
		}
	}
}

// TestIdempotentWrites checks two successive writes of the same buffer
// leave identical on-disk state and read back identically.
func TestIdempotentWrites(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{8}, []int64{4}, "uint8")
	ds, err := Create[uint8](root, meta)
	require.NoError(t, err)

	src := []uint8{1, 2, 3, 4}
	path := filepath.Join(root, "0")
	require.NoError(t, ds.WriteChunk(ChunkID{0}, src))
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, ds.WriteChunk(ChunkID{0}, src))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	dst := make([]uint8, 4)
	require.NoError(t, ds.ReadChunk(ChunkID{0}, dst))
	require.Equal(t, src, dst)
}

// TestOutOfRangeRequest checks a request rectangle that exceeds the global
// shape is rejected.
func TestOutOfRangeRequest(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{10}, []int64{4}, "int32")
	ds, err := Create[int32](root, meta)
	require.NoError(t, err)

	err = ds.CheckRequestShape(Shape{5}, Shape{6})
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, ErrOutOfRange, e.Kind)
}

// TestTypeMismatchRejected checks CheckRequestType rejects a dtype other
// than the engine's own.
func TestTypeMismatchRejected(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{10}, []int64{4}, "float32")
	ds, err := Create[float32](root, meta)
	require.NoError(t, err)

	err = ds.CheckRequestType(Int32)
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, ErrTypeMismatch, e.Kind)
}

// TestWriteChunkWrongBufferLength checks a short/long source buffer is
// rejected before any filesystem access.
func TestWriteChunkWrongBufferLength(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{8}, []int64{4}, "int32")
	ds, err := Create[int32](root, meta)
	require.NoError(t, err)

	err = ds.WriteChunk(ChunkID{0}, make([]int32, 3))
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, ErrOutOfRange, e.Kind)
}

// TestChunkIDOutOfRange checks an out-of-bounds chunk index is rejected.
func TestChunkIDOutOfRange(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{8}, []int64{4}, "int32")
	ds, err := Create[int32](root, meta)
	require.NoError(t, err)

	err = ds.WriteChunk(ChunkID{2}, make([]int32, 4))
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, ErrOutOfRange, e.Kind)
}

// TestEndiannessLayoutB checks a decoded round trip survives the
// mandatory byte swap for a multi-byte type.
func TestEndiannessLayoutB(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{4}, []int64{4}, "int32")
	ds, err := Create[int32](root, meta, WithLayoutB())
	require.NoError(t, err)

	src := []int32{0x01020304, 0x11223344, 0x55667788, -1}
	require.NoError(t, ds.WriteChunk(ChunkID{0}, src))

	dst := make([]int32, 4)
	require.NoError(t, ds.ReadChunk(ChunkID{0}, dst))
	require.Equal(t, src, dst)
}

// TestAccessors covers the engine's geometry accessors.
func TestAccessors(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{20, 20, 20}, []int64{13, 5, 9}, "float32")
	ds, err := Create[float32](root, meta, WithLayoutB())
	require.NoError(t, err)

	require.Equal(t, 3, ds.Dimension())
	require.Equal(t, Shape{20, 20, 20}, ds.Shape())
	require.Equal(t, Shape{13, 5, 9}, ds.MaxChunkShape())
	require.Equal(t, Shape{2, 4, 3}, ds.ChunksPerDimension())
	require.Equal(t, int64(2*4*3), ds.NumberOfChunks())
	require.Equal(t, int64(20*20*20), ds.Size())
	require.False(t, ds.IsLayoutA())
	require.Equal(t, CodecTag("raw"), ds.Compressor())
	require.Equal(t, Float32, ds.Dtype())

	shape, err := ds.GetChunkShape(ChunkID{1, 0, 2})
	require.NoError(t, err)
	require.Equal(t, Shape{7, 5, 2}, shape)

	dim2, err := ds.GetChunkShapeDim(ChunkID{1, 0, 2}, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2), dim2)

	size, err := ds.GetChunkSize(ChunkID{1, 0, 2})
	require.NoError(t, err)
	require.Equal(t, int64(7*5*2), size)
}

// TestOpenRoundTrip checks that a dataset created with non-default codec
// and layout options round-trips through Create -> Open and still reads
// back a previously written chunk.
func TestOpenRoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{16}, []int64{4}, "float64")

	ds, err := Create[float64](root, meta, WithCodec("zlib", CodecParams{Level: 7}), WithLayoutB())
	require.NoError(t, err)
	require.NoError(t, ds.WriteChunk(ChunkID{0}, []float64{1, 2, 3, 4}))

	reopened, err := Open[float64](root)
	require.NoError(t, err)
	require.Equal(t, CodecTag("zlib"), reopened.Compressor())
	require.False(t, reopened.IsLayoutA())

	dst := make([]float64, 4)
	require.NoError(t, reopened.ReadChunk(ChunkID{0}, dst))
	require.Equal(t, []float64{1, 2, 3, 4}, dst)
}

// TestGetChunkRequestsAndCoordinates exercises the engine-level wrapper
// around grid geometry end to end.
func TestGetChunkRequestsAndCoordinates(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	meta := newTestMetadata([]int64{100}, []int64{10}, "int32")
	ds, err := Create[int32](root, meta)
	require.NoError(t, err)

	chunks, err := ds.GetChunkRequests(Shape{7}, Shape{15})
	require.NoError(t, err)
	require.Equal(t, []ChunkID{{0}, {1}, {2}}, chunks)

	coords, err := ds.GetCoordinatesInRequest(ChunkID{1}, Shape{7}, Shape{15})
	require.NoError(t, err)
	require.True(t, coords.CompleteOverlap)
}

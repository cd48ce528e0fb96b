package ndchunk

import (
	"fmt"

	"github.com/scigolib/ndchunk/internal/codec"
	"github.com/scigolib/ndchunk/internal/utils"
)

// Dataset is the engine that mediates between a typed in-memory
// representation of chunk data and the on-disk chunk files for one dataset
// directory. It owns a dataset handle, a codec instance, a chunk-I/O
// instance, the geometry derived from metadata, and the fill value. All of
// these are fixed at construction; nothing holds a reference back to the
// dataset.
type Dataset[T Numeric] struct {
	handle    DatasetHandle
	grid      *grid
	io        chunkIO
	codec     codec.Codec
	codecTag  CodecTag
	dtype     DType
	fillValue T
}

// CodecTag is the canonical codec name, re-exported from internal/codec so
// callers never need to import it directly.
type CodecTag = codec.Tag

// Create constructs a new dataset at root: it fails if root already exists,
// materializes the directory, and persists meta as the metadata document.
func Create[T Numeric](root string, meta Metadata, opts ...CreateOption) (*Dataset[T], error) {
	cfg := defaultCreateConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, newErr("Create", ErrMetadataError, err)
		}
	}
	meta.Compressor = cfg.compressor
	meta.LayoutA = cfg.layoutA
	if meta.Dtype == "" {
		meta.Dtype = string(dtypeOf[T]())
	}

	handle := newDatasetHandle(root)
	if handle.Exists() {
		return nil, newErr("Create", ErrAlreadyExists, fmt.Errorf("dataset path %q already exists", root))
	}

	ds, err := newDataset[T](handle, meta)
	if err != nil {
		return nil, err
	}

	if err := wrapErr("Create", ErrIoError, handle.CreateDirectory()); err != nil {
		return nil, err
	}
	if err := wrapErr("Create", ErrIoError, meta.save(handle.MetadataPath())); err != nil {
		return nil, err
	}
	return ds, nil
}

// Open loads an existing dataset at root, failing if the path does not
// exist.
func Open[T Numeric](root string, opts ...OpenOption) (*Dataset[T], error) {
	cfg := openConfig{}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, newErr("Open", ErrMetadataError, err)
		}
	}

	handle := newDatasetHandle(root)
	if !handle.Exists() {
		return nil, newErr("Open", ErrNotFound, fmt.Errorf("dataset path %q does not exist", root))
	}

	meta, err := loadMetadata(handle.MetadataPath())
	if err != nil {
		return nil, newErr("Open", ErrMetadataError, err)
	}
	return newDataset[T](handle, meta)
}

// newDataset validates meta against T and assembles the engine's owned
// collaborators; shared by Create and Open.
func newDataset[T Numeric](handle DatasetHandle, meta Metadata) (*Dataset[T], error) {
	dt, err := ParseDType(meta.Dtype)
	if err != nil {
		return nil, newErr("newDataset", ErrMetadataError, err)
	}
	if want := dtypeOf[T](); meta.Dtype != "" && dt != want {
		return nil, newErr("newDataset", ErrTypeMismatch,
			fmt.Errorf("metadata dtype %q does not match requested type %q", dt, want))
	}
	if meta.Dtype == "" {
		dt = dtypeOf[T]()
		meta.Dtype = string(dt)
	}

	g, err := newGrid(Shape(meta.Shape), Shape(meta.Chunks), meta.LayoutA)
	if err != nil {
		return nil, newErr("newDataset", ErrMetadataError, err)
	}

	c, err := codec.New(codec.Tag(meta.Compressor.ID), meta.codecParams())
	if err != nil {
		return nil, newErr("newDataset", ErrMetadataError, err)
	}

	fill, err := convertFill[T](meta.FillValue)
	if err != nil {
		return nil, newErr("newDataset", ErrMetadataError, err)
	}

	var io chunkIO
	if meta.LayoutA {
		io = layoutAIO{}
	} else {
		io = layoutBIO{}
	}

	return &Dataset[T]{
		handle:    handle,
		grid:      g,
		io:        io,
		codec:     c,
		codecTag:  codec.Tag(meta.Compressor.ID),
		dtype:     dt,
		fillValue: fill,
	}, nil
}

// WriteChunk produces a fully written chunk file for id from src, a
// contiguous sequence of elements of length equal to the chunk's actual
// element count. The previous file content, if any, is replaced atomically.
func (d *Dataset[T]) WriteChunk(id ChunkID, src []T) error {
	if !d.grid.validChunkID(id) {
		return newErr("WriteChunk", ErrOutOfRange, fmt.Errorf("chunk id %v out of range", id))
	}
	actual := d.grid.actualChunkShape(id)
	wantLen := actual.product()
	if int64(len(src)) != wantLen {
		return newErr("WriteChunk", ErrOutOfRange,
			fmt.Errorf("source buffer has %d elements, chunk %v needs %d", len(src), id, wantLen))
	}

	// The encoding buffer is scratch: the codec copies into its own output,
	// so it can go back to the pool as soon as Compress returns.
	width := d.dtype.ByteWidth()
	raw := utils.GetBuffer(len(src) * width)
	encodeElements(raw, src)
	if !d.grid.layoutA && width > 1 {
		utils.SwapElementBytes(raw, width)
	}

	payload, err := d.codec.Compress(raw)
	utils.ReleaseBuffer(raw)
	if err != nil {
		return newErr("WriteChunk", ErrCodecError, err)
	}

	path := d.io.pathFor(d.handle.Root(), id)
	if err := d.io.writeRaw(path, payload, actual); err != nil {
		return newErr("WriteChunk", ErrIoError, err)
	}
	return nil
}

// ReadChunk fills dst, which must be at least the chunk's actual element
// count, with the chunk's contents: the fill value if the chunk file is
// absent, or the decoded (and for layout B, byte-swapped) payload if
// present. A missing chunk file is not an error.
func (d *Dataset[T]) ReadChunk(id ChunkID, dst []T) error {
	if !d.grid.validChunkID(id) {
		return newErr("ReadChunk", ErrOutOfRange, fmt.Errorf("chunk id %v out of range", id))
	}
	nominal := d.grid.actualChunkShape(id)

	path := d.io.pathFor(d.handle.Root(), id)
	payload, actual, present, err := d.io.readRaw(path, nominal)
	if err != nil {
		return newErr("ReadChunk", ErrIoError, err)
	}

	if !present {
		n := nominal.product()
		if int64(len(dst)) < n {
			return newErr("ReadChunk", ErrOutOfRange,
				fmt.Errorf("destination buffer has %d elements, chunk %v needs %d", len(dst), id, n))
		}
		for i := int64(0); i < n; i++ {
			dst[i] = d.fillValue
		}
		return nil
	}

	n := actual.product()
	if int64(len(dst)) < n {
		return newErr("ReadChunk", ErrOutOfRange,
			fmt.Errorf("destination buffer has %d elements, chunk %v needs %d", len(dst), id, n))
	}

	width := d.dtype.ByteWidth()
	raw, err := d.codec.Decompress(payload, int(n)*width)
	if err != nil {
		return newErr("ReadChunk", ErrCodecError, err)
	}
	if !d.grid.layoutA && width > 1 {
		utils.SwapElementBytes(raw, width)
	}
	if err := bytesToElements(raw, dst[:n]); err != nil {
		return newErr("ReadChunk", ErrCodecError, err)
	}
	return nil
}

// CheckRequestShape fails unless offset and shape both have length D, every
// shape entry is strictly positive, and the request rectangle fits inside
// the global shape.
func (d *Dataset[T]) CheckRequestShape(offset, shape Shape) error {
	dim := d.grid.dimension()
	if len(offset) != dim || len(shape) != dim {
		return newErr("CheckRequestShape", ErrBadDimension,
			fmt.Errorf("expected length %d, got offset=%d shape=%d", dim, len(offset), len(shape)))
	}
	for i := 0; i < dim; i++ {
		if shape[i] <= 0 {
			return newErr("CheckRequestShape", ErrOutOfRange, fmt.Errorf("shape[%d] = %d must be > 0", i, shape[i]))
		}
		if offset[i] < 0 {
			return newErr("CheckRequestShape", ErrOutOfRange, fmt.Errorf("offset[%d] = %d must be >= 0", i, offset[i]))
		}
		if offset[i]+shape[i] > d.grid.shape[i] {
			return newErr("CheckRequestShape", ErrOutOfRange,
				fmt.Errorf("request [%d, %d) exceeds global extent %d in dimension %d",
					offset[i], offset[i]+shape[i], d.grid.shape[i], i))
		}
	}
	return nil
}

// CheckRequestType fails unless dt identifies the engine's T.
func (d *Dataset[T]) CheckRequestType(dt DType) error {
	if dt != d.dtype {
		return newErr("CheckRequestType", ErrTypeMismatch,
			fmt.Errorf("requested type %q does not match dataset type %q", dt, d.dtype))
	}
	return nil
}

// GetChunkRequests returns every chunk identifier intersecting the
// hyper-rectangle [offset, offset+shape), after validating the request.
// Results are enumerated in row-major order over the covering sub-grid.
func (d *Dataset[T]) GetChunkRequests(offset, shape Shape) ([]ChunkID, error) {
	if err := d.CheckRequestShape(offset, shape); err != nil {
		return nil, err
	}
	chunks, err := d.grid.coveringChunks(offset, shape)
	if err != nil {
		return nil, newErr("GetChunkRequests", ErrOutOfRange, err)
	}
	return chunks, nil
}

// GetCoordinatesInRequest computes the intersection geometry of chunk id
// against request [offset, offset+shape).
func (d *Dataset[T]) GetCoordinatesInRequest(id ChunkID, offset, shape Shape) (RequestCoords, error) {
	if !d.grid.validChunkID(id) {
		return RequestCoords{}, newErr("GetCoordinatesInRequest", ErrOutOfRange,
			fmt.Errorf("chunk id %v out of range", id))
	}
	if err := d.CheckRequestShape(offset, shape); err != nil {
		return RequestCoords{}, err
	}
	return d.grid.coordinatesInRequest(id, offset, shape), nil
}

// Dimension returns D, the dataset's dimensionality.
func (d *Dataset[T]) Dimension() int { return d.grid.dimension() }

// Shape returns the global shape.
func (d *Dataset[T]) Shape() Shape { return d.grid.shape.clone() }

// MaxChunkShape returns the nominal chunk shape.
func (d *Dataset[T]) MaxChunkShape() Shape { return d.grid.chunkShape.clone() }

// ChunksPerDimension returns the per-dimension chunk count.
func (d *Dataset[T]) ChunksPerDimension() Shape { return d.grid.chunksPerDim.clone() }

// NumberOfChunks returns the total chunk count.
func (d *Dataset[T]) NumberOfChunks() int64 { return d.grid.numChunks }

// Size returns the product of the global shape's entries.
func (d *Dataset[T]) Size() int64 { return d.grid.shape.product() }

// GetChunkShape returns the actual (possibly boundary-truncated) shape of
// chunk id.
func (d *Dataset[T]) GetChunkShape(id ChunkID) (Shape, error) {
	if !d.grid.validChunkID(id) {
		return nil, newErr("GetChunkShape", ErrOutOfRange, fmt.Errorf("chunk id %v out of range", id))
	}
	return d.grid.actualChunkShape(id), nil
}

// GetChunkShapeDim returns the actual extent of chunk id in dimension dim.
func (d *Dataset[T]) GetChunkShapeDim(id ChunkID, dim int) (int64, error) {
	shape, err := d.GetChunkShape(id)
	if err != nil {
		return 0, err
	}
	if dim < 0 || dim >= len(shape) {
		return 0, newErr("GetChunkShapeDim", ErrBadDimension, fmt.Errorf("dimension %d out of range", dim))
	}
	return shape[dim], nil
}

// GetChunkSize returns the actual element count of chunk id.
func (d *Dataset[T]) GetChunkSize(id ChunkID) (int64, error) {
	shape, err := d.GetChunkShape(id)
	if err != nil {
		return 0, err
	}
	return shape.product(), nil
}

// Dtype returns the dataset's element type tag.
func (d *Dataset[T]) Dtype() DType { return d.dtype }

// IsLayoutA reports whether the dataset uses Layout A.
func (d *Dataset[T]) IsLayoutA() bool { return d.grid.layoutA }

// Compressor returns the dataset's codec tag.
func (d *Dataset[T]) Compressor() CodecTag { return d.codecTag }

// Handle returns the dataset's filesystem handle.
func (d *Dataset[T]) Handle() DatasetHandle { return d.handle }

package ndchunk

import "fmt"

// Handle is the non-generic view of a dataset, for callers that need to
// hold engines of every element type behind one interface. It operates on
// untyped byte buffers plus the runtime DType tag rather than a Go generic
// parameter; each Dataset[T] implements it once via untypedDataset.
type Handle interface {
	WriteChunkBytes(id ChunkID, src []byte) error
	ReadChunkBytes(id ChunkID, dst []byte) error
	CheckRequestShape(offset, shape Shape) error
	CheckRequestType(dt DType) error
	GetChunkRequests(offset, shape Shape) ([]ChunkID, error)
	GetCoordinatesInRequest(id ChunkID, offset, shape Shape) (RequestCoords, error)

	Dimension() int
	Shape() Shape
	MaxChunkShape() Shape
	ChunksPerDimension() Shape
	NumberOfChunks() int64
	Size() int64
	GetChunkShape(id ChunkID) (Shape, error)
	GetChunkShapeDim(id ChunkID, dim int) (int64, error)
	GetChunkSize(id ChunkID) (int64, error)
	Dtype() DType
	IsLayoutA() bool
	Compressor() CodecTag
	DatasetHandle() DatasetHandle
}

// untypedDataset wraps a Dataset[T] behind the non-generic Handle interface,
// converting caller-supplied byte buffers to and from T at the boundary.
type untypedDataset[T Numeric] struct {
	ds *Dataset[T]
}

// AsHandle type-erases ds into a Handle, for callers that need to hold
// engines of more than one element type behind a single interface.
func AsHandle[T Numeric](ds *Dataset[T]) Handle {
	return &untypedDataset[T]{ds: ds}
}

func (u *untypedDataset[T]) WriteChunkBytes(id ChunkID, src []byte) error {
	width := u.ds.dtype.ByteWidth()
	if len(src)%width != 0 {
		return newErr("WriteChunkBytes", ErrTypeMismatch,
			fmt.Errorf("byte buffer length %d is not a multiple of element width %d", len(src), width))
	}
	elems := make([]T, len(src)/width)
	if err := bytesToElements(src, elems); err != nil {
		return newErr("WriteChunkBytes", ErrTypeMismatch, err)
	}
	return u.ds.WriteChunk(id, elems)
}

func (u *untypedDataset[T]) ReadChunkBytes(id ChunkID, dst []byte) error {
	width := u.ds.dtype.ByteWidth()
	if len(dst)%width != 0 {
		return newErr("ReadChunkBytes", ErrTypeMismatch,
			fmt.Errorf("byte buffer length %d is not a multiple of element width %d", len(dst), width))
	}
	elems := make([]T, len(dst)/width)
	if err := u.ds.ReadChunk(id, elems); err != nil {
		return err
	}
	copy(dst, elementsToBytes(elems))
	return nil
}

func (u *untypedDataset[T]) CheckRequestShape(offset, shape Shape) error { return u.ds.CheckRequestShape(offset, shape) }
func (u *untypedDataset[T]) CheckRequestType(dt DType) error             { return u.ds.CheckRequestType(dt) }
func (u *untypedDataset[T]) GetChunkRequests(offset, shape Shape) ([]ChunkID, error) {
	return u.ds.GetChunkRequests(offset, shape)
}
func (u *untypedDataset[T]) GetCoordinatesInRequest(id ChunkID, offset, shape Shape) (RequestCoords, error) {
	return u.ds.GetCoordinatesInRequest(id, offset, shape)
}
func (u *untypedDataset[T]) Dimension() int                  { return u.ds.Dimension() }
func (u *untypedDataset[T]) Shape() Shape                    { return u.ds.Shape() }
func (u *untypedDataset[T]) MaxChunkShape() Shape            { return u.ds.MaxChunkShape() }
func (u *untypedDataset[T]) ChunksPerDimension() Shape       { return u.ds.ChunksPerDimension() }
func (u *untypedDataset[T]) NumberOfChunks() int64           { return u.ds.NumberOfChunks() }
func (u *untypedDataset[T]) Size() int64                     { return u.ds.Size() }
func (u *untypedDataset[T]) GetChunkShape(id ChunkID) (Shape, error) { return u.ds.GetChunkShape(id) }
func (u *untypedDataset[T]) GetChunkShapeDim(id ChunkID, dim int) (int64, error) {
	return u.ds.GetChunkShapeDim(id, dim)
}
func (u *untypedDataset[T]) GetChunkSize(id ChunkID) (int64, error) { return u.ds.GetChunkSize(id) }
func (u *untypedDataset[T]) Dtype() DType                          { return u.ds.Dtype() }
func (u *untypedDataset[T]) IsLayoutA() bool                       { return u.ds.IsLayoutA() }
func (u *untypedDataset[T]) Compressor() CodecTag                  { return u.ds.Compressor() }
func (u *untypedDataset[T]) DatasetHandle() DatasetHandle          { return u.ds.Handle() }

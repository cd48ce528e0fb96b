package ndchunk

import (
	"fmt"

	"github.com/scigolib/ndchunk/internal/utils"
)

// grid holds the chunk-grid geometry derived from a dataset's metadata:
// global shape, chunk shape, and the per-dimension chunk counts and sizes
// derived from them. chunksPerDim[d] is ceil(shape[d]/chunkShape[d]);
// maxChunkSize and numChunks are the products of chunkShape and
// chunksPerDim respectively.
type grid struct {
	shape        Shape
	chunkShape   Shape
	chunksPerDim Shape
	maxChunkSize int64
	numChunks    int64
	layoutA      bool
}

func newGrid(shape, chunkShape Shape, layoutA bool) (*grid, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("dimension must be >= 1")
	}
	if len(shape) != len(chunkShape) {
		return nil, fmt.Errorf("shape has %d dims, chunkShape has %d", len(shape), len(chunkShape))
	}
	if !shape.validatePositive() || !chunkShape.validatePositive() {
		return nil, fmt.Errorf("shape and chunkShape entries must be strictly positive")
	}

	chunksPerDim := make(Shape, len(shape))
	for d := range shape {
		chunksPerDim[d] = ceilDiv(shape[d], chunkShape[d])
	}

	maxChunkSize, err := utils.SafeProduct(chunkShape)
	if err != nil {
		return nil, fmt.Errorf("chunk shape %v: %w", chunkShape, err)
	}
	numChunks, err := utils.SafeProduct(chunksPerDim)
	if err != nil {
		return nil, fmt.Errorf("chunk count %v: %w", chunksPerDim, err)
	}
	if err := utils.ValidateBufferSize(maxChunkSize, utils.MaxChunkElements, "chunk shape"); err != nil {
		return nil, err
	}

	return &grid{
		shape:        shape.clone(),
		chunkShape:   chunkShape.clone(),
		chunksPerDim: chunksPerDim,
		maxChunkSize: maxChunkSize,
		numChunks:    numChunks,
		layoutA:      layoutA,
	}, nil
}

func (g *grid) dimension() int { return len(g.shape) }

// validChunkID reports whether id has the right length and every entry is
// within its dimension's chunk count.
func (g *grid) validChunkID(id ChunkID) bool {
	if len(id) != g.dimension() {
		return false
	}
	for d, v := range id {
		if v < 0 || v >= g.chunksPerDim[d] {
			return false
		}
	}
	return true
}

// actualChunkShape returns the true stored extent of chunk id: the nominal
// chunk shape under layout A (boundary chunks are the caller's padding
// responsibility), or the global-shape-truncated extent under layout B.
func (g *grid) actualChunkShape(id ChunkID) Shape {
	if g.layoutA {
		return g.chunkShape.clone()
	}
	out := make(Shape, g.dimension())
	for d := range id {
		begin := id[d] * g.chunkShape[d]
		rem := g.shape[d] - begin
		if rem < g.chunkShape[d] {
			out[d] = rem
		} else {
			out[d] = g.chunkShape[d]
		}
	}
	return out
}

// coveringChunks returns every chunk identifier intersecting the
// hyper-rectangle [offset, offset+shape), enumerated in row-major order
// over the covering sub-grid (dimension 0 is the outer loop). Callers rely
// on this order.
func (g *grid) coveringChunks(offset, shape Shape) ([]ChunkID, error) {
	d := g.dimension()
	minID := make(Shape, d)
	maxID := make(Shape, d)
	for i := 0; i < d; i++ {
		minID[i] = offset[i] / g.chunkShape[i]
		endCoord := offset[i] + shape[i]
		endID := endCoord / g.chunkShape[i]
		if endCoord%g.chunkShape[i] == 0 {
			maxID[i] = endID - 1
		} else {
			maxID[i] = endID
		}
	}

	var result []ChunkID
	cur := make(ChunkID, d)
	var rec func(dim int)
	rec = func(dim int) {
		if dim == d {
			id := make(ChunkID, d)
			copy(id, cur)
			result = append(result, id)
			return
		}
		for v := minID[dim]; v <= maxID[dim]; v++ {
			cur[dim] = v
			rec(dim + 1)
		}
	}
	rec(0)
	return result, nil
}

// RequestCoords is the intersection geometry of one chunk against one
// request: where the intersection sits within the request
// (LocalOffset/LocalShape) and within the chunk (InChunkOffset). The
// global position is derivable from the chunk id and chunk shape.
type RequestCoords struct {
	LocalOffset     Shape
	LocalShape      Shape
	InChunkOffset   Shape
	CompleteOverlap bool
}

// coordinatesInRequest computes RequestCoords for chunk id against request
// [offset, offset+shape). Each dimension is one of three cases: the chunk
// starts before the request (leading partial), ends after it (trailing
// partial), or lies fully inside it.
func (g *grid) coordinatesInRequest(id ChunkID, offset, shape Shape) RequestCoords {
	d := g.dimension()
	actual := g.actualChunkShape(id)

	localOffset := make(Shape, d)
	localShape := make(Shape, d)
	inChunkOffset := make(Shape, d)
	complete := true

	for i := 0; i < d; i++ {
		chunkBegin := id[i] * g.chunkShape[i]
		chunkEnd := chunkBegin + actual[i]
		requestEnd := offset[i] + shape[i]
		offDiff := chunkBegin - offset[i]
		endDiff := requestEnd - chunkEnd

		switch {
		case offDiff < 0:
			localOffset[i] = 0
			inChunkOffset[i] = -offDiff
			if chunkEnd <= requestEnd {
				localShape[i] = chunkEnd - offset[i]
			} else {
				localShape[i] = requestEnd - offset[i]
			}
			complete = false
		case endDiff < 0:
			localOffset[i] = chunkBegin - offset[i]
			inChunkOffset[i] = 0
			localShape[i] = requestEnd - chunkBegin
			complete = false
		default:
			localOffset[i] = chunkBegin - offset[i]
			inChunkOffset[i] = 0
			localShape[i] = actual[i]
		}
	}

	return RequestCoords{
		LocalOffset:     localOffset,
		LocalShape:      localShape,
		InChunkOffset:   inChunkOffset,
		CompleteOverlap: complete,
	}
}

// Package codec implements the per-chunk byte-stream compression backends:
// a small tagged-variant dispatch table, since the engine selects and owns
// exactly one codec for its entire lifetime.
package codec

import "fmt"

// Tag is the canonical codec name persisted in metadata and returned by
// Codec.Tag.
type Tag string

// Supported codec tags.
const (
	Raw   Tag = "raw"
	Zlib  Tag = "zlib"
	Bzip2 Tag = "bzip2"
	Blosc Tag = "blosc"
)

// Shuffle selects the blosc byte-reordering preprocessing step.
type Shuffle uint8

const (
	NoShuffle Shuffle = iota
	ByteShuffle
)

// Params carries the codec parameters persisted in metadata: compression
// level, blosc block size, shuffle mode, and element typesize. Unused
// fields are ignored by codecs that don't need them.
type Params struct {
	Level     int
	BlockSize int
	Shuffle   Shuffle
	TypeSize  int
}

// Codec is the per-chunk compressor contract, operating on the raw byte
// buffer (the payload is always a byte stream; callers are responsible for
// element<->byte conversion and any byte-order normalization).
type Codec interface {
	// Compress encodes src, the chunk's elements already laid out as bytes,
	// into the on-disk payload.
	Compress(src []byte) ([]byte, error)
	// Decompress fully reconstructs dstLen bytes from the on-disk payload,
	// failing loudly if the reconstructed length disagrees with dstLen.
	Decompress(src []byte, dstLen int) ([]byte, error)
	// Tag returns the canonical codec name.
	Tag() Tag
}

// New constructs the Codec for tag with the given parameters, rejecting
// unknown tags at construction (= dataset-open) time.
func New(tag Tag, params Params) (Codec, error) {
	switch tag {
	case Raw, "":
		return rawCodec{}, nil
	case Zlib:
		return newZlibCodec(params), nil
	case Bzip2:
		return newBzip2Codec(params), nil
	case Blosc:
		return newBloscCodec(params), nil
	default:
		return nil, fmt.Errorf("unrecognized codec %q", tag)
	}
}

// errLenMismatch is the shared complaint every codec raises when a decode
// doesn't reconstruct the expected length.
func errLenMismatch(tag Tag, got, want int) error {
	return fmt.Errorf("%s: decoded length %d != expected %d", tag, got, want)
}

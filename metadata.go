package ndchunk

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/scigolib/ndchunk/internal/codec"
)

// metadataFileName is the JSON metadata document's name inside the dataset
// directory.
const metadataFileName = "metadata.json"

// CompressorConfig is the nested parameter map inside the metadata
// document's "compressor" key. Every nonzero field is persisted, whether or
// not the selected codec uses it; zero-valued fields are omitted.
type CompressorConfig struct {
	ID        string `json:"id"`
	Level     int    `json:"level,omitempty"`
	BlockSize int    `json:"blocksize,omitempty"`
	Shuffle   int    `json:"shuffle,omitempty"`
	TypeSize  int    `json:"typesize,omitempty"`
}

// Metadata is the JSON-serializable record describing a dataset's global
// shape, chunk shape, data type, fill value, codec configuration, and
// layout flag. FillValue stays a json.Number until engine construction so
// the literal survives the round trip losslessly for every element type.
type Metadata struct {
	Shape      []int64          `json:"shape"`
	Chunks     []int64          `json:"chunks"`
	Dtype      string           `json:"dtype"`
	Compressor CompressorConfig `json:"compressor"`
	FillValue  json.Number      `json:"fill_value"`
	LayoutA    bool             `json:"layout_a"`
}

// ReadMetadata loads and validates the metadata document for the dataset at
// root, without constructing a typed Dataset[T] engine. It exists for
// tooling that needs to inspect a dataset's geometry and codec
// configuration without knowing its element type at compile time (e.g.
// cmd/ndchunk-inspect).
func ReadMetadata(root string) (Metadata, error) {
	handle := newDatasetHandle(root)
	if !handle.Exists() {
		return Metadata{}, newErr("ReadMetadata", ErrNotFound, fmt.Errorf("dataset path %q does not exist", root))
	}
	return loadMetadata(handle.MetadataPath())
}

// loadMetadata reads and validates the metadata document at path.
func loadMetadata(path string) (Metadata, error) {
	//nolint:gosec // G304: caller-supplied dataset path is the whole point of this library
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("reading metadata: %w", err)
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("parsing metadata: %w", err)
	}
	if err := m.validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

// save writes m as the dataset's metadata document at path, with the same
// temp-and-rename durability as chunk writes.
func (m Metadata) save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := writeFileDurably(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// validate checks the document's internal consistency: shape/chunks length
// agreement, positivity, and a recognized dtype/codec tag.
func (m Metadata) validate() error {
	if len(m.Shape) == 0 {
		return fmt.Errorf("metadata: shape must have at least one dimension")
	}
	if len(m.Chunks) != len(m.Shape) {
		return fmt.Errorf("metadata: chunks length %d != shape length %d", len(m.Chunks), len(m.Shape))
	}
	for d, v := range m.Shape {
		if v <= 0 {
			return fmt.Errorf("metadata: shape[%d] = %d must be > 0", d, v)
		}
	}
	for d, v := range m.Chunks {
		if v <= 0 {
			return fmt.Errorf("metadata: chunks[%d] = %d must be > 0", d, v)
		}
	}
	if _, err := ParseDType(m.Dtype); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	if _, err := codec.New(codec.Tag(m.Compressor.ID), codec.Params{}); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	return nil
}

// codecParams derives the internal/codec.Params carried in Metadata.Compressor.
func (m Metadata) codecParams() codec.Params {
	shuffle := codec.NoShuffle
	if m.Compressor.Shuffle != 0 {
		shuffle = codec.ByteShuffle
	}
	return codec.Params{
		Level:     m.Compressor.Level,
		BlockSize: m.Compressor.BlockSize,
		Shuffle:   shuffle,
		TypeSize:  m.Compressor.TypeSize,
	}
}

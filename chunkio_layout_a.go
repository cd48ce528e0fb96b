package ndchunk

import (
	"errors"
	"fmt"
	"os"
)

// layoutAIO implements Layout A: one file per chunk, filename is chunk
// indices dot-joined, no header, every chunk (including boundary chunks)
// stores exactly maxChunkSize elements. Whole-file reads and writes only;
// the format has no addressable internal structure.
type layoutAIO struct{}

func (layoutAIO) pathFor(root string, id ChunkID) string {
	return chunkHandle{dataset: newDatasetHandle(root), id: id}.pathLayoutA()
}

func (layoutAIO) readRaw(path string, nominalShape Shape) ([]byte, Shape, bool, error) {
	//nolint:gosec // G304: path is derived from the dataset's own chunk grid, not arbitrary user input
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("reading chunk %s: %w", path, err)
	}
	return data, nominalShape.clone(), true, nil
}

func (layoutAIO) writeRaw(path string, payload []byte, _ Shape) error {
	if err := writeFileDurably(path, payload, 0o644); err != nil {
		return fmt.Errorf("writing chunk %s: %w", path, err)
	}
	return nil
}

package ndchunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// layoutBHeaderMode is the reserved 2-byte mode field at the start of every
// chunk header. This module always writes 0 and rejects nonzero values as
// a malformed header.
const layoutBHeaderMode = 0

// layoutBIO implements Layout B: one nested directory per leading chunk
// index, each file begins with a header recording the chunk's true
// per-dimension size, and the payload is always big-endian. The header's
// size vector is authoritative on read.
type layoutBIO struct{}

func (layoutBIO) pathFor(root string, id ChunkID) string {
	return chunkHandle{dataset: newDatasetHandle(root), id: id}.pathLayoutB()
}

func (layoutBIO) readRaw(path string, _ Shape) ([]byte, Shape, bool, error) {
	//nolint:gosec // G304: path is derived from the dataset's own chunk grid, not arbitrary user input
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("opening chunk %s: %w", path, err)
	}
	defer f.Close()

	var modeAndDim [4]byte
	if _, err := io.ReadFull(f, modeAndDim[:]); err != nil {
		return nil, nil, false, fmt.Errorf("reading chunk header %s: %w", path, err)
	}
	mode := binary.BigEndian.Uint16(modeAndDim[0:2])
	if mode != layoutBHeaderMode {
		return nil, nil, false, fmt.Errorf("chunk %s: unsupported header mode %d", path, mode)
	}
	d := int(binary.BigEndian.Uint16(modeAndDim[2:4]))
	if d <= 0 {
		return nil, nil, false, fmt.Errorf("chunk %s: header dimension count %d invalid", path, d)
	}

	sizeBytes := make([]byte, 4*d)
	if _, err := io.ReadFull(f, sizeBytes); err != nil {
		return nil, nil, false, fmt.Errorf("reading chunk size header %s: %w", path, err)
	}
	actual := make(Shape, d)
	for i := 0; i < d; i++ {
		actual[i] = int64(binary.BigEndian.Uint32(sizeBytes[i*4 : i*4+4]))
	}

	payload, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, false, fmt.Errorf("reading chunk payload %s: %w", path, err)
	}
	return payload, actual, true, nil
}

func (layoutBIO) writeRaw(path string, payload []byte, actual Shape) error {
	d := len(actual)
	header := make([]byte, 4+4*d)
	binary.BigEndian.PutUint16(header[0:2], layoutBHeaderMode)
	binary.BigEndian.PutUint16(header[2:4], uint16(d))
	for i, v := range actual {
		binary.BigEndian.PutUint32(header[4+i*4:4+i*4+4], uint32(v))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating parent directories for %s: %w", path, err)
	}

	data := make([]byte, 0, len(header)+len(payload))
	data = append(data, header...)
	data = append(data, payload...)
	if err := writeFileDurably(path, data, 0o644); err != nil {
		return fmt.Errorf("writing chunk %s: %w", path, err)
	}
	return nil
}


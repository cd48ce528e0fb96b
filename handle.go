package ndchunk

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DatasetHandle is the filesystem path a Dataset engine was constructed
// against. It never mutates after construction.
type DatasetHandle struct {
	root string
}

// newDatasetHandle returns a handle rooted at root, an absolute-or-relative
// directory path supplied by the caller.
func newDatasetHandle(root string) DatasetHandle {
	return DatasetHandle{root: root}
}

// Root returns the dataset directory path.
func (h DatasetHandle) Root() string { return h.root }

// Exists reports whether the dataset directory is already present.
func (h DatasetHandle) Exists() bool {
	info, err := os.Stat(h.root)
	return err == nil && info.IsDir()
}

// CreateDirectory materializes the dataset directory, failing if it
// already exists.
func (h DatasetHandle) CreateDirectory() error {
	return os.Mkdir(h.root, 0o755)
}

// MetadataPath returns the path to the dataset's JSON metadata document.
func (h DatasetHandle) MetadataPath() string {
	return filepath.Join(h.root, metadataFileName)
}

// chunkHandle is a dataset handle plus a chunk-index vector; it resolves
// to a chunk file path whose naming differs by layout.
type chunkHandle struct {
	dataset DatasetHandle
	id      ChunkID
}

// pathLayoutA joins chunk indices with "." into a single flat filename
// under the dataset root.
func (h chunkHandle) pathLayoutA() string {
	parts := make([]string, len(h.id))
	for i, v := range h.id {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return filepath.Join(h.dataset.root, strings.Join(parts, "."))
}

// pathLayoutB nests one directory per leading chunk index, with the last
// index as the file name.
func (h chunkHandle) pathLayoutB() string {
	parts := make([]string, len(h.id)+1)
	parts[0] = h.dataset.root
	for i, v := range h.id {
		parts[i+1] = strconv.FormatInt(v, 10)
	}
	return filepath.Join(parts...)
}

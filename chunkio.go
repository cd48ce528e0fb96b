package ndchunk

// chunkIO is the per-layout chunk reader/writer contract: it knows a
// chunk's file format (bare payload vs. header-prefixed), handles
// missing files as a first-class "not present" result rather than an error,
// and for layout B reports the chunk's actual per-dimension size as read
// from its header.
type chunkIO interface {
	// pathFor resolves the on-disk path of chunk id under the dataset root.
	pathFor(root string, id ChunkID) string

	// readRaw reads the codec payload of the chunk at path. present is false
	// and err is nil when the file does not exist. actual is only
	// meaningful for layout B, where it is read from the chunk header;
	// layout A returns the nominal chunk shape unconditionally (callers
	// already know it).
	readRaw(path string, nominalShape Shape) (payload []byte, actual Shape, present bool, err error)

	// writeRaw durably writes payload as the chunk at path, creating any
	// parent directories it needs. actual is the chunk's true per-dimension
	// element count, used by layout B to build the header.
	writeRaw(path string, payload []byte, actual Shape) error
}

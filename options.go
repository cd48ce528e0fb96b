package ndchunk

// CreateOption configures a dataset at Create time.
type CreateOption func(*createConfig) error

type createConfig struct {
	compressor CompressorConfig
	layoutA    bool
}

func defaultCreateConfig() createConfig {
	return createConfig{
		compressor: CompressorConfig{ID: "raw"},
		layoutA:    true,
	}
}

// WithCodec selects the codec tag and parameters persisted in the dataset's
// metadata document.
//
// Example:
//
//	ds, err := ndchunk.Create[float32]("out.arr", meta,
//	    ndchunk.WithCodec("zlib", ndchunk.CodecParams{Level: 5}),
//	)
func WithCodec(tag string, params CodecParams) CreateOption {
	return func(c *createConfig) error {
		c.compressor = CompressorConfig{
			ID:        tag,
			Level:     params.Level,
			BlockSize: params.BlockSize,
			TypeSize:  params.TypeSize,
		}
		if params.Shuffle {
			c.compressor.Shuffle = 1
		}
		return nil
	}
}

// WithLayoutB selects on-disk Layout B (nested directories, per-chunk
// header, big-endian payload) instead of the default Layout A.
func WithLayoutB() CreateOption {
	return func(c *createConfig) error {
		c.layoutA = false
		return nil
	}
}

// CodecParams is the engine-facing view of internal/codec.Params, exposed so
// callers can configure a codec without importing the internal package.
type CodecParams struct {
	Level     int
	BlockSize int
	Shuffle   bool
	TypeSize  int
}

// OpenOption configures a dataset at Open time. There are currently no
// open-time options; the type exists so Open's signature can grow options
// without breaking callers.
type OpenOption func(*openConfig) error

type openConfig struct{}
